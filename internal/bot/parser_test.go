package bot

import "testing"

func TestParseReceiverAndBody(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		receiver string
		body     string
		ok       bool
	}{
		{"正常指令", "@bob hello there", "bob", "hello there", true},
		{"没有@前缀", "hello", "", "", false},
		{"只有接收者没有正文", "@bob", "", "", false},
		{"正文只有空白", "@bob    ", "", "", false},
		{"@后直接是空白", "@ hello", "", "", false},
		{"只有一个@", "@", "", "", false},
		{"空字符串", "", "", "", false},
		{"纯空白", "   ", "", "", false},
		{"多余的@被剥掉", "@@bob hi", "bob", "hi", true},
		{"首尾空白被忽略", "  @bob hi  ", "bob", "hi", true},
		{"制表符分隔", "@bob\thi", "bob", "hi", true},
		{"正文保留内部空白", "@bob a  b", "bob", "a  b", true},
		{"换行分隔", "@bob\nhi", "bob", "hi", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			receiver, body, ok := ParseReceiverAndBody(tt.text)
			if ok != tt.ok {
				t.Fatalf("ParseReceiverAndBody(%q) ok = %v, want %v", tt.text, ok, tt.ok)
			}
			if receiver != tt.receiver || body != tt.body {
				t.Fatalf("ParseReceiverAndBody(%q) = (%q, %q), want (%q, %q)",
					tt.text, receiver, body, tt.receiver, tt.body)
			}
		})
	}
}

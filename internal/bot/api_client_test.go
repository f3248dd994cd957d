package bot

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"bridge_chat_server/internal/dto/request"
)

func TestSubmitMessageOk(t *testing.T) {
	var got request.BotMessageRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode request: %v", err)
		}
		_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	}))
	defer server.Close()

	client := NewApiClient(server.URL)
	result := client.SubmitMessage(context.Background(), request.BotMessageRequest{
		Sender:   "alice",
		Receiver: "bob",
		Text:     "hi",
		Source:   "telegram_group",
	})
	if result.Status != StatusOk {
		t.Fatalf("status = %q, want ok", result.Status)
	}
	if got.Sender != "alice" || got.Receiver != "bob" || got.Text != "hi" {
		t.Fatalf("server received %+v", got)
	}
}

func TestSubmitMessageError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]string{"status": "error", "reason": "user_not_found"})
	}))
	defer server.Close()

	client := NewApiClient(server.URL)
	result := client.SubmitMessage(context.Background(), request.BotMessageRequest{
		Sender: "alice", Receiver: "ghost", Text: "hi",
	})
	if result.Status != StatusError || result.Reason != "user_not_found" {
		t.Fatalf("result = %+v, want error/user_not_found", result)
	}
}

func TestSubmitMessageNetworkFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // 直接关掉，模拟网络不可达

	client := NewApiClient(server.URL)
	result := client.SubmitMessage(context.Background(), request.BotMessageRequest{
		Sender: "alice", Receiver: "bob", Text: "hi",
	})
	if result.Status != StatusError || result.Reason != "db_write_failed" {
		t.Fatalf("result = %+v, want error/db_write_failed", result)
	}
}

func TestSubmitMessageMalformedRespond(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("not json"))
	}))
	defer server.Close()

	client := NewApiClient(server.URL)
	result := client.SubmitMessage(context.Background(), request.BotMessageRequest{
		Sender: "alice", Receiver: "bob", Text: "hi",
	})
	if result.Status != StatusError || result.Reason != "db_write_failed" {
		t.Fatalf("result = %+v, want error/db_write_failed", result)
	}
}

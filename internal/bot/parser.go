// Package bot 实现 Telegram 群内机器人桥接
// 机器人从群里解析 "@接收者 内容" 形式的命令，
// 通过内部 HTTP 接口把消息写入系统，再把结果回显到群里
package bot

import "strings"

// ParseReceiverAndBody 解析群消息文本中的收件指令
// 合法形式："@接收者 正文"，即以 @ 开头，第一个连续空白之前是接收者，其余是正文
// 返回 ok=false 表示这不是一条收件指令，调用方应当静默忽略
// （群里的日常闲聊不是错误，也不是拒绝，只是与机器人无关）
//
// 以下情况都判为"不是指令"：
//   - 不以 "@" 开头
//   - 没有空白分隔的正文部分（如只有 "@bob"）
//   - 接收者为空（"@" 后直接是空白，或剥掉多余 "@" 后为空）
//   - 正文去除首尾空白后为空
func ParseReceiverAndBody(text string) (receiver, body string, ok bool) {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "@") {
		return "", "", false
	}

	idx := strings.IndexFunc(text, isSpace)
	if idx < 0 {
		return "", "", false
	}

	// 接收者允许写成 "@@bob" 之类，统一剥掉前导 "@"
	receiver = strings.TrimLeft(text[:idx], "@")
	if receiver == "" {
		return "", "", false
	}

	body = strings.TrimSpace(text[idx:])
	if body == "" {
		return "", "", false
	}
	return receiver, body, true
}

func isSpace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n' || r == '\r'
}

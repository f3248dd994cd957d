// Package relay 实现消息落库后的异步转发
// 转发是尽力而为的副作用：永远在持久化提交之后执行，失败只记日志，
// 绝不回滚已提交的消息，也绝不阻塞请求路径
package relay

import "fmt"

// Task 一次转发任务
type Task struct {
	Sender   string `json:"sender"`
	Receiver string `json:"receiver"`
	Text     string `json:"text"`
}

// Line 转发到群里的规范格式："sender receiver text"
func (t Task) Line() string {
	return fmt.Sprintf("%s %s %s", t.Sender, t.Receiver, t.Text)
}

// Sink 异步转发入口
// Enqueue 必须立即返回；队列满时任务被丢弃并记日志（转发本就尽力而为）
type Sink interface {
	Enqueue(task Task)
	Close()
}

// NopSink 空实现，转发未配置时使用
type NopSink struct{}

func (NopSink) Enqueue(Task) {}
func (NopSink) Close()       {}

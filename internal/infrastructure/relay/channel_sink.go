package relay

import (
	"context"
	"sync"

	"bridge_chat_server/internal/infrastructure/telegram"
	"bridge_chat_server/pkg/constants"

	"go.uber.org/zap"
)

// channelSink 进程内通道模式的转发队列
// 缓冲通道 + Worker 协程，与 Redis 缓存 Worker Pool 同构
type channelSink struct {
	client    *telegram.Client
	tasks     chan Task
	wg        sync.WaitGroup
	closeOnce sync.Once
}

// NewChannelSink 创建通道模式转发队列并启动 Worker
func NewChannelSink(client *telegram.Client, workerNum int) Sink {
	s := &channelSink{
		client: client,
		tasks:  make(chan Task, constants.RELAY_CHANNEL_SIZE),
	}
	for i := 0; i < workerNum; i++ {
		s.wg.Add(1)
		go s.worker()
	}
	return s
}

// Enqueue 提交转发任务，立即返回
// 队列满时丢弃任务：消息已经落库，转发失败不构成错误
func (s *channelSink) Enqueue(task Task) {
	select {
	case s.tasks <- task:
		// 成功放入
	default:
		zap.L().Warn("relay channel full, task dropped",
			zap.String("sender", task.Sender),
			zap.String("receiver", task.Receiver),
		)
	}
}

// worker 消费循环：逐条把任务发往 Telegram 群
func (s *channelSink) worker() {
	defer s.wg.Done()
	for task := range s.tasks {
		if ok := s.client.SendGroupMessage(context.Background(), task.Line()); !ok {
			// 未配置 token/chat_id 或网络失败，均记日志后继续
			zap.L().Warn("telegram relay not sent",
				zap.String("sender", task.Sender),
				zap.String("receiver", task.Receiver),
			)
		}
	}
}

// Close 关闭队列并等待 Worker 处理完剩余任务
func (s *channelSink) Close() {
	s.closeOnce.Do(func() {
		close(s.tasks)
	})
	s.wg.Wait()
}

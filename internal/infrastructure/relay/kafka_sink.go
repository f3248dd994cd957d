package relay

import (
	"context"
	"encoding/json"
	"strconv"
	"sync"
	"time"

	myconfig "bridge_chat_server/internal/config"
	"bridge_chat_server/internal/infrastructure/telegram"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// kafkaSink Kafka 模式的转发队列
// 生产者把转发任务写入 topic，消费者协程读出后发往 Telegram 群
// 单机部署用 channel 模式即可，Kafka 模式留给需要外置出站队列的场景
type kafkaSink struct {
	client    *telegram.Client
	writer    *kafka.Writer
	reader    *kafka.Reader
	cancel    context.CancelFunc
	wg        sync.WaitGroup
	closeOnce sync.Once
}

// NewKafkaSink 创建 Kafka 模式转发队列并启动消费协程
func NewKafkaSink(client *telegram.Client) Sink {
	relayConfig := myconfig.GetConfig().RelayConfig
	s := &kafkaSink{
		client: client,
		writer: &kafka.Writer{
			Addr:                   kafka.TCP(relayConfig.HostPort),
			Topic:                  relayConfig.RelayTopic,
			Balancer:               &kafka.Hash{},
			WriteTimeout:           relayConfig.Timeout * time.Second,
			RequiredAcks:           kafka.RequireNone,
			AllowAutoTopicCreation: false,
		},
		reader: kafka.NewReader(kafka.ReaderConfig{
			Brokers:        []string{relayConfig.HostPort},
			Topic:          relayConfig.RelayTopic,
			CommitInterval: relayConfig.Timeout * time.Second,
			GroupID:        "relay",
			StartOffset:    kafka.LastOffset,
		}),
	}

	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	s.wg.Add(1)
	go s.consume(ctx)
	return s
}

// Enqueue 把转发任务写入 Kafka
// 写入放到独立协程，请求路径不等待 broker 确认
func (s *kafkaSink) Enqueue(task Task) {
	value, err := json.Marshal(task)
	if err != nil {
		zap.L().Error("relay task marshal error", zap.Error(err))
		return
	}
	key := []byte(strconv.Itoa(myconfig.GetConfig().RelayConfig.Partition))
	go func() {
		if err := s.writer.WriteMessages(context.Background(), kafka.Message{
			Key:   key,
			Value: value,
		}); err != nil {
			zap.L().Warn("relay kafka write error", zap.Error(err))
		}
	}()
}

// consume 消费循环：从 topic 读任务并发往 Telegram 群
func (s *kafkaSink) consume(ctx context.Context) {
	defer s.wg.Done()
	for {
		message, err := s.reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return // 正常关闭
			}
			zap.L().Error("relay kafka read error", zap.Error(err))
			continue
		}
		var task Task
		if err := json.Unmarshal(message.Value, &task); err != nil {
			zap.L().Error("relay task unmarshal error", zap.Error(err))
			continue
		}
		if ok := s.client.SendGroupMessage(ctx, task.Line()); !ok {
			zap.L().Warn("telegram relay not sent",
				zap.String("sender", task.Sender),
				zap.String("receiver", task.Receiver),
			)
		}
	}
}

// Close 停止消费并关闭 Kafka 连接
func (s *kafkaSink) Close() {
	s.closeOnce.Do(func() {
		s.cancel()
		if err := s.writer.Close(); err != nil {
			zap.L().Error(err.Error())
		}
		if err := s.reader.Close(); err != nil {
			zap.L().Error(err.Error())
		}
	})
	s.wg.Wait()
}

package bot

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"bridge_chat_server/internal/dto/request"
	"bridge_chat_server/internal/infrastructure/telegram"
	"bridge_chat_server/pkg/enum/message/source_enum"
)

const defaultPollTimeout = 30 // getUpdates 长轮询秒数

const helpText = "用法：@接收者 消息内容\n" +
	"机器人会以你的 Telegram 用户名作为发送者，把消息投递给系统内的接收者。"

// Poller 群消息轮询器
// 用 getUpdates 长轮询拉取群里的消息，解析收件指令并提交到内部接口，
// 成功后把 "发送者 接收者 正文" 回显到群里作为可见确认
type Poller struct {
	client      *telegram.Client
	api         *ApiClient
	pollTimeout int
	offset      int64
}

// NewPoller 构造函数
// pollTimeout <= 0 时使用默认的 30 秒长轮询
func NewPoller(client *telegram.Client, api *ApiClient, pollTimeout int) *Poller {
	if pollTimeout <= 0 {
		pollTimeout = defaultPollTimeout
	}
	return &Poller{
		client:      client,
		api:         api,
		pollTimeout: pollTimeout,
	}
}

// Run 轮询主循环，阻塞直到 ctx 取消
// 单次拉取失败只记日志并退避重试，不会退出循环
func (p *Poller) Run(ctx context.Context) {
	zap.L().Info("telegram bot poller started")
	for {
		select {
		case <-ctx.Done():
			zap.L().Info("telegram bot poller stopped")
			return
		default:
		}

		updates, err := p.client.GetUpdates(ctx, p.offset, p.pollTimeout)
		if err != nil {
			if ctx.Err() != nil {
				zap.L().Info("telegram bot poller stopped")
				return
			}
			zap.L().Warn("telegram getUpdates error", zap.Error(err))
			time.Sleep(3 * time.Second)
			continue
		}

		for _, update := range updates {
			if update.UpdateId >= p.offset {
				p.offset = update.UpdateId + 1
			}
			p.handleUpdate(ctx, update)
		}
	}
}

// handleUpdate 处理单条更新
// 只响应群聊消息；配置了目标群时忽略其它群；忽略机器人自己和其它 bot
func (p *Poller) handleUpdate(ctx context.Context, update telegram.Update) {
	msg := update.Message
	if msg == nil || msg.From == nil || msg.From.IsBot {
		return
	}
	if msg.Chat.Type != "group" && msg.Chat.Type != "supergroup" {
		return
	}
	if groupId := p.client.GroupChatId(); groupId != 0 && msg.Chat.Id != groupId {
		return
	}

	text := strings.TrimSpace(msg.Text)
	if text == "" {
		return
	}

	// /start 与 /help 回复用法说明，兼容 "/help@botname" 形式
	if cmd := strings.SplitN(text, "@", 2)[0]; cmd == "/start" || cmd == "/help" {
		p.client.SendMessage(ctx, msg.Chat.Id, helpText)
		return
	}

	receiver, body, ok := ParseReceiverAndBody(text)
	if !ok {
		// 普通闲聊，与机器人无关
		return
	}

	// 发送者身份取自 Telegram 用户名，没有用户名就无法对应到系统用户
	sender := msg.From.Username
	if sender == "" {
		p.client.SendMessage(ctx, msg.Chat.Id, "发送失败：请先在 Telegram 设置用户名")
		return
	}

	result := p.api.SubmitMessage(ctx, request.BotMessageRequest{
		Sender:   sender,
		Receiver: receiver,
		Text:     body,
		Source:   source_enum.TelegramGroup,
	})
	if result.Status == StatusOk {
		// 规范格式回显，作为群内可见的投递确认
		p.client.SendMessage(ctx, msg.Chat.Id, fmt.Sprintf("%s %s %s", sender, receiver, body))
		return
	}

	zap.L().Info("bot message rejected",
		zap.String("sender", sender),
		zap.String("receiver", receiver),
		zap.String("reason", result.Reason))
	p.client.SendMessage(ctx, msg.Chat.Id, ReasonText(result.Reason))
}

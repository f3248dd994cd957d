// Package telegram 封装 Telegram Bot API 访问
// 不依赖外部 Telegram 库，直接用 net/http + encoding/json 调 Bot API
package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"bridge_chat_server/internal/config"
	"bridge_chat_server/pkg/constants"

	"go.uber.org/zap"
)

const defaultBaseURL = "https://api.telegram.org"

// Client Telegram Bot API 客户端
// token 或 groupChatId 未配置时客户端处于惰性状态：
// 所有发送调用直接上报失败（false），不报错、不发起网络请求
type Client struct {
	token       string
	groupChatId int64
	baseURL     string
	httpClient  *http.Client
}

// NewClient 根据配置创建客户端
// 超时固定为 8 秒，超时的调用按失败处理，不重试
func NewClient(cfg *config.TelegramConfig) *Client {
	baseURL := cfg.ApiBaseUrl
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		token:       cfg.BotToken,
		groupChatId: cfg.GroupChatId,
		baseURL:     baseURL,
		httpClient: &http.Client{
			Timeout: constants.TELEGRAM_TIMEOUT_SECONDS * time.Second,
		},
	}
}

// Configured 是否具备转发条件（token 和目标群聊都已配置）
func (c *Client) Configured() bool {
	return c.token != "" && c.groupChatId != 0
}

// GroupChatId 返回配置的目标群聊 id，0 表示未限定
func (c *Client) GroupChatId() int64 {
	return c.groupChatId
}

// sendMessageRequest sendMessage 接口请求体
type sendMessageRequest struct {
	ChatId int64  `json:"chat_id"`
	Text   string `json:"text"`
}

// apiRespond Bot API 通用响应外层
// ok 字段即对方是否确认接收
type apiRespond struct {
	Ok          bool            `json:"ok"`
	Result      json.RawMessage `json:"result"`
	Description string          `json:"description"`
}

// SendGroupMessage 向配置的群聊发送一条文本
// 返回 true 表示 Bot API 确认接收；任何网络错误、非 2xx、响应畸形都返回 false
func (c *Client) SendGroupMessage(ctx context.Context, text string) bool {
	if !c.Configured() {
		return false
	}
	return c.SendMessage(ctx, c.groupChatId, text)
}

// SendMessage 向任意聊天发送一条文本（用于机器人在群内回复）
func (c *Client) SendMessage(ctx context.Context, chatId int64, text string) bool {
	if c.token == "" {
		return false
	}
	payload, err := json.Marshal(sendMessageRequest{ChatId: chatId, Text: text})
	if err != nil {
		zap.L().Error("telegram sendMessage marshal error", zap.Error(err))
		return false
	}

	url := fmt.Sprintf("%s/bot%s/sendMessage", c.baseURL, c.token)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		zap.L().Error("telegram sendMessage request error", zap.Error(err))
		return false
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		zap.L().Warn("telegram sendMessage network error", zap.Error(err))
		return false
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		zap.L().Warn("telegram sendMessage non-2xx", zap.Int("status", resp.StatusCode))
		return false
	}

	var rsp apiRespond
	if err := json.NewDecoder(resp.Body).Decode(&rsp); err != nil {
		zap.L().Warn("telegram sendMessage malformed respond", zap.Error(err))
		return false
	}
	if !rsp.Ok {
		zap.L().Warn("telegram sendMessage not ok", zap.String("description", rsp.Description))
	}
	return rsp.Ok
}

// ==================== getUpdates 长轮询 ====================

// User 消息发送者
type User struct {
	Id       int64  `json:"id"`
	IsBot    bool   `json:"is_bot"`
	Username string `json:"username"`
}

// Chat 消息所属聊天
type Chat struct {
	Id   int64  `json:"id"`
	Type string `json:"type"` // "private", "group", "supergroup", "channel"
}

// IncomingMessage 群内收到的消息
type IncomingMessage struct {
	MessageId int64  `json:"message_id"`
	From      *User  `json:"from"`
	Chat      Chat   `json:"chat"`
	Text      string `json:"text"`
}

// Update getUpdates 返回的单个更新
type Update struct {
	UpdateId int64            `json:"update_id"`
	Message  *IncomingMessage `json:"message"`
}

// GetUpdates 长轮询拉取更新
// offset 为上次处理的 update_id + 1；timeoutSec 是服务端挂起时长
// HTTP 客户端超时需覆盖长轮询时长，因此这里临时放宽到 timeoutSec + 8 秒
func (c *Client) GetUpdates(ctx context.Context, offset int64, timeoutSec int) ([]Update, error) {
	if c.token == "" {
		return nil, fmt.Errorf("telegram bot token is not configured")
	}

	body, err := json.Marshal(map[string]any{
		"offset":          offset,
		"timeout":         timeoutSec,
		"allowed_updates": []string{"message"},
	})
	if err != nil {
		return nil, err
	}

	url := fmt.Sprintf("%s/bot%s/getUpdates", c.baseURL, c.token)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	pollClient := &http.Client{
		Timeout: time.Duration(timeoutSec+constants.TELEGRAM_TIMEOUT_SECONDS) * time.Second,
	}
	resp, err := pollClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("telegram getUpdates status %d", resp.StatusCode)
	}

	var rsp apiRespond
	if err := json.NewDecoder(resp.Body).Decode(&rsp); err != nil {
		return nil, err
	}
	if !rsp.Ok {
		return nil, fmt.Errorf("telegram getUpdates not ok: %s", rsp.Description)
	}

	var updates []Update
	if err := json.Unmarshal(rsp.Result, &updates); err != nil {
		return nil, err
	}
	return updates, nil
}

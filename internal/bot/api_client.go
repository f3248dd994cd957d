package bot

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"bridge_chat_server/internal/dto/request"
	"bridge_chat_server/pkg/constants"
)

// 内部持久化接口返回的 status 取值
const (
	StatusOk    = "ok"
	StatusError = "error"
)

// SubmitResult 内部持久化接口的结果
// Status 为 "ok" 或 "error"；Reason 仅在 error 时有值，
// 取值为 "user_not_found"、"empty_message"、"not_authorized"、"db_write_failed" 之一
type SubmitResult struct {
	Status string `json:"status"`
	Reason string `json:"reason,omitempty"`
}

// ApiClient 访问内部持久化接口的 HTTP 客户端
// bot 进程不直接写库，全部写入经由该接口走统一的消息路由
type ApiClient struct {
	apiUrl     string
	httpClient *http.Client
}

// NewApiClient 构造函数
func NewApiClient(apiUrl string) *ApiClient {
	return &ApiClient{
		apiUrl: apiUrl,
		httpClient: &http.Client{
			Timeout: constants.TELEGRAM_TIMEOUT_SECONDS * time.Second,
		},
	}
}

// SubmitMessage 把解析出的消息提交给内部持久化接口
// 网络错误与畸形响应按 db_write_failed 处理，调用方据此在群里回显失败原因
func (a *ApiClient) SubmitMessage(ctx context.Context, req request.BotMessageRequest) SubmitResult {
	payload, err := json.Marshal(req)
	if err != nil {
		return SubmitResult{Status: StatusError, Reason: "db_write_failed"}
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, a.apiUrl, bytes.NewReader(payload))
	if err != nil {
		return SubmitResult{Status: StatusError, Reason: "db_write_failed"}
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := a.httpClient.Do(httpReq)
	if err != nil {
		return SubmitResult{Status: StatusError, Reason: "db_write_failed"}
	}
	defer resp.Body.Close()

	var result SubmitResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return SubmitResult{Status: StatusError, Reason: "db_write_failed"}
	}
	if result.Status != StatusOk && result.Reason == "" {
		result.Status = StatusError
		result.Reason = "db_write_failed"
	}
	return result
}

// ReasonText 把机内原因码翻译成群里可读的提示
func ReasonText(reason string) string {
	switch reason {
	case "user_not_found":
		return "发送失败：用户不存在"
	case "empty_message":
		return "发送失败：消息内容为空"
	case "not_authorized":
		return "发送失败：对方还不是你的联系人"
	case "db_write_failed":
		return "发送失败：服务暂时不可用，请稍后再试"
	default:
		return fmt.Sprintf("发送失败：%s", reason)
	}
}

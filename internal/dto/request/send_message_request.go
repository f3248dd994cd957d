package request

// SendMessageRequest 发送消息请求
// 接收者以用户名指定，发送者取自认证上下文
type SendMessageRequest struct {
	ReceiverUsername string `json:"receiver_username" binding:"required"`
	Content          string `json:"content" binding:"required"`
}

package request

// GetMessageListRequest 获取聊天记录请求
// SinceId 为增量游标：只返回 id > SinceId 的消息，0 表示从头拉取
// 使用位置:
//   - internal/handler/message_handler.go: GetMessageList
type GetMessageListRequest struct {
	PeerUsername string `json:"peer_username" form:"peer_username" binding:"required"`
	SinceId      uint   `json:"since_id" form:"since_id"`
	Limit        int    `json:"limit" form:"limit" binding:"omitempty,min=1,max=200"`
}

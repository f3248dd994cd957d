package request

// BotMessageRequest 机器人桥接层的持久化请求
// 这是 bot 进程唯一允许使用的写入入口，bot 永远不直接写库
type BotMessageRequest struct {
	Sender   string `json:"sender" binding:"required"`
	Receiver string `json:"receiver" binding:"required"`
	Text     string `json:"text"`
	Source   string `json:"source"`
}

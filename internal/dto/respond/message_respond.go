package respond

// MessageRespond 单条已持久化消息
// Id 即数据库自增序号，随插入顺序严格递增，可作为 since_id 游标
// 使用位置:
//   - internal/service/message/service.go: Send, GetMessageList
type MessageRespond struct {
	Id        uint   `json:"id"`
	SendId    string `json:"send_id"`
	ReceiveId string `json:"receive_id"`
	Content   string `json:"content"`
	Source    string `json:"source"`
	CreatedAt string `json:"created_at"`
}

package request

// AddContactRequest 添加联系人请求
// 目标以用户名指定，Service 层负责解析为用户标识
type AddContactRequest struct {
	Username string `json:"username" binding:"required"`
}

package respond

// ContactListRespond 联系人列表项
// 按用户名（不区分大小写）升序返回
type ContactListRespond struct {
	Uuid     string `json:"uuid"`
	Username string `json:"username"`
}

// AddContactRespond 添加联系人结果
// AlreadyExists 区分"新添加"与"早已存在"，两者都不是错误
type AddContactRespond struct {
	ContactUuid   string `json:"contact_uuid"`
	Username      string `json:"username"`
	AlreadyExists bool   `json:"already_exists"`
}

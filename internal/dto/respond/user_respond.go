package respond

// UserRespond 目录查询结果：用户名到稳定标识的映射
type UserRespond struct {
	Uuid     string `json:"uuid"`
	Username string `json:"username"`
}

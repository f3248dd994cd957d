package service

import (
	"bridge_chat_server/internal/dao/mysql"
	"bridge_chat_server/internal/gateway/websocket"
	"bridge_chat_server/internal/infrastructure/relay"
	"bridge_chat_server/internal/service/contact"
	"bridge_chat_server/internal/service/message"
	"bridge_chat_server/internal/service/user"
)

// Services 聚合所有业务服务实例
type Services struct {
	User    UserService
	Contact ContactService
	Message MessageService
}

// Svc 全局服务实例，main 中初始化后各 handler 共享
var Svc *Services

// NewServices 依次装配三层服务
// user 服务是目录来源，contact 依赖目录做解析，
// message 同时依赖目录、授权器、转发通道与在线推送
func NewServices(repos *mysql.Repositories, sink relay.Sink, hub *websocket.Hub) *Services {
	userSvc := user.NewUserService(repos)
	contactSvc := contact.NewContactService(repos, userSvc)
	messageSvc := message.NewMessageService(repos, userSvc, contactSvc, sink, hub)

	return &Services{
		User:    userSvc,
		Contact: contactSvc,
		Message: messageSvc,
	}
}

// InitServices 初始化全局服务实例
func InitServices(repos *mysql.Repositories, sink relay.Sink, hub *websocket.Hub) {
	Svc = NewServices(repos, sink, hub)
}

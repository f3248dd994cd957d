// Package handler 提供 HTTP 请求处理器
// 本文件定义 Handler 聚合结构和构造函数
package handler

import (
	"bridge_chat_server/internal/gateway/websocket"
	"bridge_chat_server/internal/service"
)

// Handlers 聚合所有 Handler 实例
// Router 层通过此结构访问各个 Handler
type Handlers struct {
	User    *UserHandler
	Contact *ContactHandler
	Message *MessageHandler
	Bot     *BotHandler
	Ws      *WsHandler
}

// NewHandlers 创建并注入所有 Handler 实例
func NewHandlers(svc *service.Services, hub *websocket.Hub) *Handlers {
	return &Handlers{
		User:    NewUserHandler(svc.User),
		Contact: NewContactHandler(svc.Contact),
		Message: NewMessageHandler(svc.Message),
		Bot:     NewBotHandler(svc.User, svc.Message),
		Ws:      NewWsHandler(hub),
	}
}

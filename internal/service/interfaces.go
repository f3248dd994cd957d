// Package service 汇聚各业务子包，向 handler 层暴露统一接口
package service

import (
	"bridge_chat_server/internal/dto/request"
	"bridge_chat_server/internal/dto/respond"
)

// UserService 用户目录与认证接口
type UserService interface {
	// Resolve 按用户名精确解析用户，未找到返回 CodeUserNotExist
	Resolve(username string) (*respond.UserRespond, error)
	Register(req request.RegisterRequest) (*respond.RegisterRespond, error)
	Login(req request.LoginRequest) (*respond.LoginRespond, error)
	RefreshToken(req request.RefreshTokenRequest) (*respond.RefreshTokenRespond, error)
}

// ContactService 联系人授权图接口
type ContactService interface {
	AddContact(ownerId string, req request.AddContactRequest) (*respond.AddContactRespond, error)
	// Authorize 判断 senderId 能否向 receiverId 发消息
	Authorize(senderId, receiverId string) (bool, error)
	GetContactList(ownerId string) ([]respond.ContactListRespond, error)
}

// MessageService 消息路由接口
type MessageService interface {
	// Send 校验并持久化一条消息，source 标记来源渠道
	Send(senderId string, req request.SendMessageRequest, source string) (*respond.MessageRespond, error)
	GetMessageList(userId string, req request.GetMessageListRequest) ([]respond.MessageRespond, error)
}

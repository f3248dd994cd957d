// Package handler 提供 HTTP 请求处理器
// 本文件处理 Web 端消息发送与历史查询请求
package handler

import (
	"bridge_chat_server/internal/dto/request"
	"bridge_chat_server/internal/service"
	"bridge_chat_server/pkg/enum/message/source_enum"
	"bridge_chat_server/pkg/errorx"

	"github.com/gin-gonic/gin"
)

// MessageHandler 消息请求处理器
type MessageHandler struct {
	messageSvc service.MessageService
}

// NewMessageHandler 创建消息处理器实例
func NewMessageHandler(messageSvc service.MessageService) *MessageHandler {
	return &MessageHandler{messageSvc: messageSvc}
}

// SendMessage 发送消息
// POST /message/sendMessage
// 请求体: request.SendMessageRequest
// 响应: respond.MessageRespond (含数据库分配的消息 id)
func (h *MessageHandler) SendMessage(c *gin.Context) {
	var req request.SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}

	senderId := c.GetString("user_id")
	if senderId == "" {
		HandleError(c, errorx.New(errorx.CodeUnauthorized, "未登录"))
		return
	}

	data, err := h.messageSvc.Send(senderId, req, source_enum.Web)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// GetMessageList 获取与某个联系人的聊天记录
// GET /message/getMessageList?peer_username=xxx&since_id=0&limit=200
// 响应: []respond.MessageRespond，按 id 升序
func (h *MessageHandler) GetMessageList(c *gin.Context) {
	var req request.GetMessageListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		HandleParamError(c, err)
		return
	}

	userId := c.GetString("user_id")
	if userId == "" {
		HandleError(c, errorx.New(errorx.CodeUnauthorized, "未登录"))
		return
	}

	data, err := h.messageSvc.GetMessageList(userId, req)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// Package handler 提供 HTTP 请求处理器
// 本文件处理机器人桥接层的内部持久化请求
package handler

import (
	"net/http"

	"bridge_chat_server/internal/dto/request"
	"bridge_chat_server/internal/service"
	"bridge_chat_server/pkg/enum/message/source_enum"
	"bridge_chat_server/pkg/errorx"

	"github.com/gin-gonic/gin"
)

// BotHandler 机器人桥接入口处理器
// 响应格式与 Web 端不同，是固定的 {"status": ...} 形式，
// bot 进程按 status/reason 决定在群里回显什么
type BotHandler struct {
	userSvc    service.UserService
	messageSvc service.MessageService
}

// NewBotHandler 创建机器人桥接处理器实例
func NewBotHandler(userSvc service.UserService, messageSvc service.MessageService) *BotHandler {
	return &BotHandler{userSvc: userSvc, messageSvc: messageSvc}
}

// botOk 桥接成功响应
func botOk(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// botError 桥接失败响应，reason 是封闭集合：
// "user_not_found" | "empty_message" | "not_authorized" | "db_write_failed"
func botError(c *gin.Context, reason string) {
	c.JSON(http.StatusOK, gin.H{"status": "error", "reason": reason})
}

// SubmitMessage 机器人消息持久化入口
// POST /api/bot/message
// 请求体: {"sender", "receiver", "text", "source"}
// 发送者以用户名指定（来自 Telegram 用户名），先经目录解析再走统一消息路由，
// 校验规则与 Web 端发送完全一致
func (h *BotHandler) SubmitMessage(c *gin.Context) {
	var req request.BotMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		// 字段缺失等价于查无此人，与按名字查找失败走同一个出口
		botError(c, "user_not_found")
		return
	}

	sender, err := h.userSvc.Resolve(req.Sender)
	if err != nil {
		if errorx.GetCode(err) == errorx.CodeUserNotExist {
			botError(c, "user_not_found")
			return
		}
		botError(c, "db_write_failed")
		return
	}

	source := req.Source
	if source == "" {
		source = source_enum.TelegramGroup
	}

	_, err = h.messageSvc.Send(sender.Uuid, request.SendMessageRequest{
		ReceiverUsername: req.Receiver,
		Content:          req.Text,
	}, source)
	if err != nil {
		botError(c, botReason(err))
		return
	}
	botOk(c)
}

// botReason 把路由的拒绝码翻译成桥接协议的原因码
func botReason(err error) string {
	switch errorx.GetCode(err) {
	case errorx.CodeUserNotExist, errorx.CodeReceiverNotFound:
		return "user_not_found"
	case errorx.CodeEmptyContent:
		return "empty_message"
	case errorx.CodeNotContact:
		return "not_authorized"
	default:
		return "db_write_failed"
	}
}

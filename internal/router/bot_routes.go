package router

import (
	"bridge_chat_server/internal/handler"

	"github.com/gin-gonic/gin"
)

// RegisterBotRoutes 注册机器人桥接内部路由
// 该接口只应暴露在内网，bot 进程经由它持久化消息
func RegisterBotRoutes(r *gin.Engine, h *handler.Handlers) {
	r.POST("/api/bot/message", h.Bot.SubmitMessage)
}

package router

import (
	"bridge_chat_server/internal/handler"
	"bridge_chat_server/internal/infrastructure/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterMessageRoutes 注册消息相关路由
func RegisterMessageRoutes(r *gin.Engine, h *handler.Handlers) {
	messageGroup := r.Group("/message")
	messageGroup.Use(middleware.JWTAuth())
	{
		messageGroup.POST("/sendMessage", h.Message.SendMessage)
		messageGroup.GET("/getMessageList", h.Message.GetMessageList)
	}
}

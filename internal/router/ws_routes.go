package router

import (
	"bridge_chat_server/internal/handler"

	"github.com/gin-gonic/gin"
)

// RegisterWebSocketRoutes 注册 WebSocket 路由
// token 经查询参数传入，在 handler 内校验
func RegisterWebSocketRoutes(r *gin.Engine, h *handler.Handlers) {
	r.GET("/ws", h.Ws.Connect)
}

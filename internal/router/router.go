// Package router 提供 HTTP 路由注册
// 本文件是路由注册的入口，聚合所有子模块的路由
package router

import (
	"bridge_chat_server/internal/handler"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes 注册所有路由
// 在 https_server.Init() 中调用
func RegisterRoutes(r *gin.Engine, h *handler.Handlers) {
	RegisterUserRoutes(r, h)      // 用户与认证路由
	RegisterContactRoutes(r, h)   // 联系人路由
	RegisterMessageRoutes(r, h)   // 消息路由
	RegisterBotRoutes(r, h)       // 机器人桥接内部路由
	RegisterWebSocketRoutes(r, h) // WebSocket 路由
}

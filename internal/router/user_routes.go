package router

import (
	"bridge_chat_server/internal/handler"
	"bridge_chat_server/internal/infrastructure/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterUserRoutes 注册用户相关路由
func RegisterUserRoutes(r *gin.Engine, h *handler.Handlers) {
	// 公开接口 (无需认证)
	r.POST("/register", h.User.Register)
	r.POST("/login", h.User.Login)
	r.POST("/user/auth/refreshToken", h.User.RefreshToken)

	// 需要认证的接口
	userGroup := r.Group("/user")
	userGroup.Use(middleware.JWTAuth())
	{
		userGroup.GET("/resolve", h.User.Resolve)
	}
}

package router

import (
	"bridge_chat_server/internal/handler"
	"bridge_chat_server/internal/infrastructure/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterContactRoutes 注册联系人相关路由
func RegisterContactRoutes(r *gin.Engine, h *handler.Handlers) {
	contactGroup := r.Group("/contact")
	contactGroup.Use(middleware.JWTAuth())
	{
		contactGroup.POST("/addContact", h.Contact.AddContact)
		contactGroup.GET("/getContactList", h.Contact.GetContactList)
	}
}

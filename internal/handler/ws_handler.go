// Package handler 提供 HTTP 请求处理器
// 本文件处理 WebSocket 连接升级请求
package handler

import (
	"net/http"

	"bridge_chat_server/internal/gateway/websocket"
	"bridge_chat_server/pkg/errorx"
	"bridge_chat_server/pkg/util/jwt"

	"github.com/gin-gonic/gin"
)

// WsHandler WebSocket 接入处理器
type WsHandler struct {
	hub *websocket.Hub
}

// NewWsHandler 创建 WebSocket 处理器实例
func NewWsHandler(hub *websocket.Hub) *WsHandler {
	return &WsHandler{hub: hub}
}

// Connect 升级 HTTP 连接为 WebSocket
// GET /ws?token=xxx
// 浏览器的 WebSocket API 不能自定义请求头，token 从查询参数传入
func (h *WsHandler) Connect(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		c.JSON(http.StatusOK, gin.H{
			"code": errorx.CodeUnauthorized,
			"msg":  "缺少 token",
		})
		return
	}

	claims, err := jwt.ParseToken(token)
	if err != nil || claims.Subject != "access_token" {
		c.JSON(http.StatusOK, gin.H{
			"code": errorx.CodeUnauthorized,
			"msg":  "token 无效或已过期",
		})
		return
	}

	h.hub.HandleConn(c, claims.UserID)
}

// Package handler 提供 HTTP 请求处理器
// 本文件处理联系人相关的 API 请求
package handler

import (
	"bridge_chat_server/internal/dto/request"
	"bridge_chat_server/internal/service"
	"bridge_chat_server/pkg/errorx"

	"github.com/gin-gonic/gin"
)

// ContactHandler 联系人请求处理器
type ContactHandler struct {
	contactSvc service.ContactService
}

// NewContactHandler 创建联系人处理器实例
func NewContactHandler(contactSvc service.ContactService) *ContactHandler {
	return &ContactHandler{contactSvc: contactSvc}
}

// AddContact 添加联系人
// POST /contact/addContact
// 请求体: request.AddContactRequest
// 响应: respond.AddContactRespond (already_exists 区分新增与重复添加)
func (h *ContactHandler) AddContact(c *gin.Context) {
	var req request.AddContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}

	ownerId := c.GetString("user_id")
	if ownerId == "" {
		HandleError(c, errorx.New(errorx.CodeUnauthorized, "未登录"))
		return
	}

	data, err := h.contactSvc.AddContact(ownerId, req)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// GetContactList 获取联系人列表
// GET /contact/getContactList
// 响应: []respond.ContactListRespond
func (h *ContactHandler) GetContactList(c *gin.Context) {
	ownerId := c.GetString("user_id")
	if ownerId == "" {
		HandleError(c, errorx.New(errorx.CodeUnauthorized, "未登录"))
		return
	}

	data, err := h.contactSvc.GetContactList(ownerId)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

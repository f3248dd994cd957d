// Package mysql 定义数据访问层接口和聚合结构
// 采用 Repository 模式将数据访问逻辑与业务逻辑分离
// 所有 Repository 接口在此文件定义，具体实现在各自的模块中
package mysql

import (
	"bridge_chat_server/internal/model"
)

// ==================== Repository 接口定义 ====================

// UserRepository 用户数据访问接口
type UserRepository interface {
	// FindByUuid 根据 UUID 查找用户
	FindByUuid(uuid string) (*model.UserInfo, error)
	// FindByUsername 根据用户名查找用户（大小写敏感精确匹配）
	FindByUsername(username string) (*model.UserInfo, error)
	// FindByUuids 批量根据 UUID 查找用户
	FindByUuids(uuids []string) ([]model.UserInfo, error)
	// CreateUser 创建新用户，用户名重复返回 CodeUserExist
	CreateUser(user *model.UserInfo) error
}

// ContactRepository 联系人数据访问接口
// 管理有向的"可发消息"授权边
type ContactRepository interface {
	// ExistsEdge 判断是否存在 userId -> contactId 的授权边
	ExistsEdge(userId, contactId string) (bool, error)
	// CreateIgnoreDuplicate 插入授权边，依赖唯一约束做 insert-or-ignore
	// 返回 true 表示新插入，false 表示边已存在（并发重复添加安全）
	CreateIgnoreDuplicate(contact *model.UserContact) (bool, error)
	// FindByUserId 查找用户的所有出边
	FindByUserId(userId string) ([]model.UserContact, error)
}

// MessageRepository 消息数据访问接口
type MessageRepository interface {
	// Create 创建新消息，主键 id 由数据库自增分配
	Create(message *model.Message) error
	// FindConversation 查找两个用户之间的双向消息
	// 按 id 升序，sinceId > 0 时只返回 id > sinceId 的增量，最多 limit 条
	FindConversation(userOneId, userTwoId string, sinceId uint, limit int) ([]model.Message, error)
}

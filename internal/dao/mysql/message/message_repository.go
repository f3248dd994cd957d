// Package message 提供消息相关数据访问层的具体实现
// 本文件实现 MessageRepository 接口，处理消息相关的数据库操作
package message

import (
	"bridge_chat_server/internal/dao/mysql/internal"
	"bridge_chat_server/internal/model"

	"gorm.io/gorm"
)

// messageRepository MessageRepository 接口的实现
type messageRepository struct {
	db *gorm.DB // GORM 数据库实例
}

// NewMessageRepository 创建 MessageRepository 实例
func NewMessageRepository(db *gorm.DB) *messageRepository {
	return &messageRepository{db: db}
}

// Create 创建新消息
// 主键 id 由数据库自增分配，Create 之后结构体内即携带最终序号
func (r *messageRepository) Create(message *model.Message) error {
	if err := r.db.Create(message).Error; err != nil {
		return internal.WrapDBError(err, "创建消息")
	}
	return nil
}

// FindConversation 根据两个用户ID查找双向会话消息
// 查找 A->B 和 B->A 的所有消息，按 id 升序（即插入顺序）
// sinceId > 0 时只返回 id > sinceId 的增量，用于轮询式拉取
func (r *messageRepository) FindConversation(userOneId, userTwoId string, sinceId uint, limit int) ([]model.Message, error) {
	var messages []model.Message
	query := r.db.Where("(send_id = ? AND receive_id = ?) OR (send_id = ? AND receive_id = ?)",
		userOneId, userTwoId, userTwoId, userOneId)
	if sinceId > 0 {
		query = query.Where("id > ?", sinceId)
	}
	if err := query.Order("id ASC").Limit(limit).Find(&messages).Error; err != nil {
		return nil, internal.WrapDBErrorf(err, "查询会话消息 user1=%s user2=%s", userOneId, userTwoId)
	}
	return messages, nil
}

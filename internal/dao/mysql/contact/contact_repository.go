// Package contact 提供联系人授权边数据访问层的具体实现
package contact

import (
	"errors"

	"bridge_chat_server/internal/dao/mysql/internal"
	"bridge_chat_server/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// contactRepository ContactRepository 接口的实现
type contactRepository struct {
	db *gorm.DB // GORM 数据库实例
}

// NewContactRepository 创建 ContactRepository 实例
func NewContactRepository(db *gorm.DB) *contactRepository {
	return &contactRepository{db: db}
}

// ExistsEdge 判断是否存在 userId -> contactId 的授权边
func (r *contactRepository) ExistsEdge(userId, contactId string) (bool, error) {
	var count int64
	if err := r.db.Model(&model.UserContact{}).
		Where("user_id = ? AND contact_id = ?", userId, contactId).
		Count(&count).Error; err != nil {
		return false, internal.WrapDBErrorf(err, "查询授权边 %s->%s", userId, contactId)
	}
	return count > 0, nil
}

// CreateIgnoreDuplicate 插入授权边（insert-or-ignore 语义）
// 并发重复添加时由 (user_id, contact_id) 唯一约束兜底：
// 只有一个写入者的 RowsAffected 为 1，其余观察到"已存在"，不报错也不产生重复行
func (r *contactRepository) CreateIgnoreDuplicate(contact *model.UserContact) (bool, error) {
	result := r.db.Clauses(clause.OnConflict{DoNothing: true}).Create(contact)
	if result.Error != nil {
		// 某些方言下冲突仍以错误返回，同样归为"已存在"
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return false, nil
		}
		return false, internal.WrapDBErrorf(result.Error, "创建授权边 %s->%s", contact.UserId, contact.ContactId)
	}
	return result.RowsAffected > 0, nil
}

// FindByUserId 查找用户的所有出边
func (r *contactRepository) FindByUserId(userId string) ([]model.UserContact, error) {
	var contacts []model.UserContact
	if err := r.db.Where("user_id = ?", userId).Find(&contacts).Error; err != nil {
		return nil, internal.WrapDBErrorf(err, "查询联系人列表 user_id=%s", userId)
	}
	return contacts, nil
}

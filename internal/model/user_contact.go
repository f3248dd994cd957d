package model

import (
	"gorm.io/gorm"
)

// UserContact 联系人授权边，有向：UserId -> ContactId
// (user_id, contact_id) 唯一约束由数据库保证，重复添加走 ON CONFLICT DO NOTHING
// 不允许自环（user_id != contact_id），由 Service 层校验
type UserContact struct {
	gorm.Model
	UserId    string `gorm:"column:user_id;index;type:char(20);not null;uniqueIndex:idx_owner_contact;comment:用户唯一id"`
	ContactId string `gorm:"column:contact_id;index;type:char(20);not null;uniqueIndex:idx_owner_contact;comment:联系人唯一id"`
}

func (UserContact) TableName() string {
	return "user_contact"
}

// Package user 提供用户相关数据访问层的具体实现
package user

import (
	"errors"

	"bridge_chat_server/internal/dao/mysql/internal"
	"bridge_chat_server/internal/model"
	"bridge_chat_server/pkg/errorx"

	"gorm.io/gorm"
)

// userRepository UserRepository 接口的实现
type userRepository struct {
	db *gorm.DB // GORM 数据库实例
}

// NewUserRepository 创建 UserRepository 实例
func NewUserRepository(db *gorm.DB) *userRepository {
	return &userRepository{db: db}
}

// FindByUuid 根据 UUID 查找用户
func (r *userRepository) FindByUuid(uuid string) (*model.UserInfo, error) {
	var user model.UserInfo
	if err := r.db.Where("uuid = ?", uuid).First(&user).Error; err != nil {
		return nil, internal.WrapDBErrorf(err, "查询用户 uuid=%s", uuid)
	}
	return &user, nil
}

// FindByUsername 根据用户名查找用户
// BINARY 比较保证大小写敏感的精确匹配，不受表排序规则影响
func (r *userRepository) FindByUsername(username string) (*model.UserInfo, error) {
	var user model.UserInfo
	if err := r.db.Where("BINARY username = ?", username).First(&user).Error; err != nil {
		return nil, internal.WrapDBErrorf(err, "查询用户 username=%s", username)
	}
	return &user, nil
}

// FindByUuids 批量根据 UUID 查找用户
func (r *userRepository) FindByUuids(uuids []string) ([]model.UserInfo, error) {
	var users []model.UserInfo
	if err := r.db.Where("uuid IN ?", uuids).Find(&users).Error; err != nil {
		return nil, internal.WrapDBError(err, "批量查询用户")
	}
	return users, nil
}

// CreateUser 创建新用户
// 用户名唯一约束由数据库保证，冲突翻译为 CodeUserExist
func (r *userRepository) CreateUser(user *model.UserInfo) error {
	if err := r.db.Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errorx.Wrapf(err, errorx.CodeUserExist, "用户名 %s 已存在", user.Username)
		}
		return internal.WrapDBError(err, "创建用户")
	}
	return nil
}

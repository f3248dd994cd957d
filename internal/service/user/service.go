// Package user 实现用户目录与认证业务逻辑
// 目录职责：用户名 -> 稳定标识的精确解析，"查无此人"是正常业务结果
package user

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"bridge_chat_server/internal/dao/mysql"
	myredis "bridge_chat_server/internal/dao/redis"
	"bridge_chat_server/internal/dto/request"
	"bridge_chat_server/internal/dto/respond"
	"bridge_chat_server/internal/model"
	"bridge_chat_server/pkg/constants"
	"bridge_chat_server/pkg/errorx"
	"bridge_chat_server/pkg/util/jwt"
	"bridge_chat_server/pkg/util/random"
)

// userService 用户业务逻辑实现
// 通过构造函数注入 Repository 依赖
type userService struct {
	repos *mysql.Repositories
}

// NewUserService 构造函数，注入依赖的 Repository
func NewUserService(repos *mysql.Repositories) *userService {
	return &userService{repos: repos}
}

// Resolve 目录解析：按用户名精确查找用户
// 输入先去除首尾空白；大小写敏感；未找到返回 CodeUserNotExist 类型化结果，
// 调用方应把它当作正常业务结果处理，而不是故障
func (u *userService) Resolve(username string) (*respond.UserRespond, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, errorx.New(errorx.CodeUserNotExist, "用户不存在")
	}
	user, err := u.repos.User.FindByUsername(username)
	if err != nil {
		if errorx.GetCode(err) == errorx.CodeNotFound {
			return nil, errorx.Newf(errorx.CodeUserNotExist, "用户 %s 不存在", username)
		}
		zap.L().Error(err.Error())
		return nil, errorx.ErrServerBusy
	}
	return &respond.UserRespond{
		Uuid:     user.Uuid,
		Username: user.Username,
	}, nil
}

// Register 用户注册
// 用户名唯一性由数据库约束保证：并发注册同名只会有一个成功，
// 失败方拿到 CodeUserExist，而不是脏数据或崩溃
func (u *userService) Register(req request.RegisterRequest) (*respond.RegisterRespond, error) {
	username := strings.TrimSpace(req.Username)
	if username == "" {
		return nil, errorx.ErrInvalidParam
	}

	newUser := &model.UserInfo{
		Uuid:        "U" + random.GetNowAndLenRandomString(13),
		Username:    username,
		RawPassword: req.Password, // BeforeSave Hook 负责 bcrypt 加密
	}
	if err := u.repos.User.CreateUser(newUser); err != nil {
		if errorx.GetCode(err) == errorx.CodeUserExist {
			return nil, errorx.New(errorx.CodeUserExist, "用户名已被占用")
		}
		zap.L().Error(err.Error())
		return nil, errorx.ErrServerBusy
	}

	accessToken, refreshToken, err := u.issueTokens(newUser.Uuid, newUser.Username)
	if err != nil {
		return nil, err
	}

	return &respond.RegisterRespond{
		Uuid:         newUser.Uuid,
		Username:     newUser.Username,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

// Login 密码登录
func (u *userService) Login(req request.LoginRequest) (*respond.LoginRespond, error) {
	username := strings.TrimSpace(req.Username)
	user, err := u.repos.User.FindByUsername(username)
	if err != nil {
		if errorx.GetCode(err) == errorx.CodeNotFound {
			return nil, errorx.New(errorx.CodeUserNotExist, "用户名或密码不正确")
		}
		zap.L().Error(err.Error())
		return nil, errorx.ErrServerBusy
	}
	if !user.CheckPassword(req.Password) {
		return nil, errorx.New(errorx.CodeInvalidPassword, "用户名或密码不正确")
	}

	accessToken, refreshToken, err := u.issueTokens(user.Uuid, user.Username)
	if err != nil {
		return nil, err
	}

	loginRsp := &respond.LoginRespond{
		Uuid:         user.Uuid,
		Username:     user.Username,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}
	year, month, day := user.CreatedAt.Date()
	loginRsp.CreatedAt = fmt.Sprintf("%d.%d.%d", year, month, day)

	return loginRsp, nil
}

// RefreshToken 用 Refresh Token 换取新的 Access Token
// Redis 中只保留最近一次登录的 token_id，旧会话的 Refresh Token 自动失效
func (u *userService) RefreshToken(req request.RefreshTokenRequest) (*respond.RefreshTokenRespond, error) {
	claims, err := jwt.ParseToken(req.RefreshToken)
	if err != nil || claims.Subject != "refresh_token" {
		return nil, errorx.New(errorx.CodeUnauthorized, "Refresh Token 无效，请重新登录")
	}

	redisKey := "user_token:" + claims.UserID
	storedTokenID, err := myredis.GetKey(context.Background(), redisKey)
	if err != nil {
		zap.L().Error("读取 Token ID 失败", zap.Error(err))
		return nil, errorx.ErrServerBusy
	}
	if storedTokenID == "" || storedTokenID != claims.TokenID {
		return nil, errorx.New(errorx.CodeUnauthorized, "会话已失效，请重新登录")
	}

	accessToken, err := jwt.GenerateAccessToken(claims.UserID, claims.Username)
	if err != nil {
		zap.L().Error("生成 Access Token 失败", zap.Error(err))
		return nil, errorx.ErrServerBusy
	}
	return &respond.RefreshTokenRespond{AccessToken: accessToken}, nil
}

// issueTokens 生成双 Token 并把 Refresh Token ID 存入 Redis（单点互踢）
func (u *userService) issueTokens(uuid, username string) (accessToken, refreshToken string, err error) {
	accessToken, err = jwt.GenerateAccessToken(uuid, username)
	if err != nil {
		zap.L().Error("生成 Access Token 失败", zap.Error(err))
		return "", "", errorx.ErrServerBusy
	}

	refreshToken, tokenID, err := jwt.GenerateRefreshToken(uuid, username)
	if err != nil {
		zap.L().Error("生成 Refresh Token 失败", zap.Error(err))
		return "", "", errorx.ErrServerBusy
	}

	redisKey := "user_token:" + uuid
	if err := myredis.SetKeyEx(context.Background(), redisKey, tokenID,
		time.Duration(constants.REFRESH_TOKEN_EXPIRY_HOURS)*time.Hour); err != nil {
		zap.L().Error("存储 Token ID 到 Redis 失败", zap.Error(err))
		// 不阻塞登录流程，仅记录日志
	}
	return accessToken, refreshToken, nil
}

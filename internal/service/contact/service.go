// Package contact 实现联系人授权图业务逻辑
// 授权边是有向的：只检查发送方的出边，是否回加由对方自己决定，
// 因此联系人列表允许不对称，这是刻意保留的行为
package contact

import (
	"sort"
	"strings"

	"go.uber.org/zap"

	"bridge_chat_server/internal/dao/mysql"
	"bridge_chat_server/internal/dto/request"
	"bridge_chat_server/internal/dto/respond"
	"bridge_chat_server/internal/model"
	"bridge_chat_server/pkg/errorx"
)

// Directory 用户名解析接口，由 user 服务实现
type Directory interface {
	Resolve(username string) (*respond.UserRespond, error)
}

// contactService 联系人业务逻辑实现
type contactService struct {
	repos     *mysql.Repositories
	directory Directory
}

// NewContactService 构造函数
func NewContactService(repos *mysql.Repositories, directory Directory) *contactService {
	return &contactService{repos: repos, directory: directory}
}

// AddContact 添加联系人（建立 owner -> target 的授权边）
// 幂等：重复添加不报错，但通过 AlreadyExists 与新添加区分；
// 目标不存在返回 CodeUserNotExist，目标是自己返回 CodeSelfTarget
func (s *contactService) AddContact(ownerId string, req request.AddContactRequest) (*respond.AddContactRespond, error) {
	target, err := s.directory.Resolve(req.Username)
	if err != nil {
		return nil, err // CodeUserNotExist 或 ErrServerBusy，原样透传
	}
	if target.Uuid == ownerId {
		return nil, errorx.New(errorx.CodeSelfTarget, "不能添加自己为联系人")
	}

	// 不做"先查后插"：唯一约束就是并发安全机制，
	// 两个并发的相同添加只会有一个 added=true，另一个观察到已存在
	added, err := s.repos.Contact.CreateIgnoreDuplicate(&model.UserContact{
		UserId:    ownerId,
		ContactId: target.Uuid,
	})
	if err != nil {
		zap.L().Error(err.Error())
		return nil, errorx.ErrServerBusy
	}

	return &respond.AddContactRespond{
		ContactUuid:   target.Uuid,
		Username:      target.Username,
		AlreadyExists: !added,
	}, nil
}

// Authorize 判断 senderId 是否可以给 receiverId 发消息
// 自发自收一律拒绝；其余只看 sender -> receiver 的出边是否存在
func (s *contactService) Authorize(senderId, receiverId string) (bool, error) {
	if senderId == receiverId {
		return false, nil
	}
	exists, err := s.repos.Contact.ExistsEdge(senderId, receiverId)
	if err != nil {
		zap.L().Error(err.Error())
		return false, errorx.ErrServerBusy
	}
	return exists, nil
}

// GetContactList 获取用户的联系人列表
// 按用户名（不区分大小写）升序返回
func (s *contactService) GetContactList(ownerId string) ([]respond.ContactListRespond, error) {
	contacts, err := s.repos.Contact.FindByUserId(ownerId)
	if err != nil {
		zap.L().Error(err.Error())
		return nil, errorx.ErrServerBusy
	}
	if len(contacts) == 0 {
		return []respond.ContactListRespond{}, nil
	}

	contactIds := make([]string, 0, len(contacts))
	for _, c := range contacts {
		contactIds = append(contactIds, c.ContactId)
	}
	users, err := s.repos.User.FindByUuids(contactIds)
	if err != nil {
		zap.L().Error(err.Error())
		return nil, errorx.ErrServerBusy
	}

	contactList := make([]respond.ContactListRespond, 0, len(users))
	for _, u := range users {
		contactList = append(contactList, respond.ContactListRespond{
			Uuid:     u.Uuid,
			Username: u.Username,
		})
	}
	sort.Slice(contactList, func(i, j int) bool {
		return strings.ToLower(contactList[i].Username) < strings.ToLower(contactList[j].Username)
	})
	return contactList, nil
}

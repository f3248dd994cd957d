// Package message 实现消息路由核心
// 路由职责：校验 (发送者, 接收者, 文本) 三元组、恰好持久化一次、
// 再把已提交的记录交给次级通道（Telegram 转发、WebSocket 推送）
// 次级通道的成败与持久化无关：落库即算发送成功
package message

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"go.uber.org/zap"

	"bridge_chat_server/internal/dao/mysql"
	myredis "bridge_chat_server/internal/dao/redis"
	"bridge_chat_server/internal/dto/request"
	"bridge_chat_server/internal/dto/respond"
	"bridge_chat_server/internal/infrastructure/relay"
	"bridge_chat_server/internal/model"
	"bridge_chat_server/pkg/constants"
	"bridge_chat_server/pkg/enum/message/source_enum"
	"bridge_chat_server/pkg/errorx"
)

// Directory 用户名解析接口，由 user 服务实现
type Directory interface {
	Resolve(username string) (*respond.UserRespond, error)
}

// Authorizer 联系人授权接口，由 contact 服务实现
type Authorizer interface {
	Authorize(senderId, receiverId string) (bool, error)
}

// Pusher 在线推送接口，由 websocket 网关实现
type Pusher interface {
	Push(uuid string, payload any)
}

// messageService 消息路由实现
type messageService struct {
	repos      *mysql.Repositories
	directory  Directory
	authorizer Authorizer
	sink       relay.Sink
	pusher     Pusher
}

// NewMessageService 构造函数
func NewMessageService(repos *mysql.Repositories, directory Directory, authorizer Authorizer,
	sink relay.Sink, pusher Pusher) *messageService {
	return &messageService{
		repos:      repos,
		directory:  directory,
		authorizer: authorizer,
		sink:       sink,
		pusher:     pusher,
	}
}

// Send 发送一条消息，web 路径与 bot 桥接路径走同一套校验
// 校验按固定顺序进行，每一步对应一个独立的拒绝码：
//  1. 去除首尾空白，空文本 -> CodeEmptyContent
//  2. 目录解析接收者 -> CodeReceiverNotFound
//  3. 授权检查（必须已存在 sender -> receiver 的边）-> CodeNotContact
//  4. 落库，由数据库分配自增 id；写入失败 -> CodeDBError
//
// 持久化提交之后才会触碰转发与推送，两者都不会失败或拖慢本调用
func (m *messageService) Send(senderId string, req request.SendMessageRequest, source string) (*respond.MessageRespond, error) {
	// 1. 内容校验
	text := strings.TrimSpace(req.Content)
	if text == "" {
		return nil, errorx.New(errorx.CodeEmptyContent, "消息内容不能为空")
	}

	// 2. 解析接收者
	receiver, err := m.directory.Resolve(req.ReceiverUsername)
	if err != nil {
		if errorx.GetCode(err) == errorx.CodeUserNotExist {
			return nil, errorx.Newf(errorx.CodeReceiverNotFound, "接收者 %s 不存在", req.ReceiverUsername)
		}
		return nil, err
	}

	// 3. 授权检查（含拒绝自发自收）
	allowed, err := m.authorizer.Authorize(senderId, receiver.Uuid)
	if err != nil {
		return nil, err
	}
	if !allowed {
		return nil, errorx.New(errorx.CodeNotContact, "先将对方添加为联系人，才能发送消息")
	}

	// 发送者身份来自认证上下文或 bot 入口的前置解析，这里仍需用户名用于转发行
	sender, err := m.repos.User.FindByUuid(senderId)
	if err != nil {
		zap.L().Error(err.Error())
		return nil, errorx.ErrServerBusy
	}

	// 4. 持久化
	record := &model.Message{
		SendId:    senderId,
		ReceiveId: receiver.Uuid,
		Content:   text,
		Source:    source,
	}
	if err := m.repos.Message.Create(record); err != nil {
		zap.L().Error("消息写入失败", zap.Error(err))
		return nil, errorx.Wrap(err, errorx.CodeDBError, "消息写入失败，请稍后重试")
	}

	rsp := &respond.MessageRespond{
		Id:        record.ID,
		SendId:    record.SendId,
		ReceiveId: record.ReceiveId,
		Content:   record.Content,
		Source:    record.Source,
		CreatedAt: record.CreatedAt.Format("2006-01-02 15:04:05"),
	}

	// 会话缓存已过期，异步删除
	cacheKey := conversationCacheKey(senderId, receiver.Uuid)
	myredis.SubmitCacheTask(func() {
		if err := myredis.DelKey(context.Background(), cacheKey); err != nil {
			zap.L().Error("redis del key error", zap.Error(err))
		}
	})

	// 落库之后的副作用：转发与推送，尽力而为
	// bot 桥接路径不再转发——入站命令本来就在群里，回显由 bot 进程负责
	if source == source_enum.Web {
		m.sink.Enqueue(relay.Task{
			Sender:   sender.Username,
			Receiver: receiver.Username,
			Text:     text,
		})
	}
	m.pusher.Push(receiver.Uuid, rsp)
	m.pusher.Push(senderId, rsp)

	return rsp, nil
}

// GetMessageList 获取与某个联系人的会话记录
// 无序对 {user, peer} 的双向消息按 id 升序返回；
// since_id > 0 时只取增量（轮询游标），此时不走缓存
func (m *messageService) GetMessageList(userId string, req request.GetMessageListRequest) ([]respond.MessageRespond, error) {
	peer, err := m.directory.Resolve(req.PeerUsername)
	if err != nil {
		return nil, err
	}

	limit := req.Limit
	if limit <= 0 || limit > constants.MESSAGE_LIST_LIMIT {
		limit = constants.MESSAGE_LIST_LIMIT
	}

	// 全量读（从头、默认上限）优先走缓存
	cacheable := req.SinceId == 0 && limit == constants.MESSAGE_LIST_LIMIT
	cacheKey := conversationCacheKey(userId, peer.Uuid)
	if cacheable {
		rspString, err := myredis.GetKeyNilIsErr(context.Background(), cacheKey)
		if err == nil {
			var rsp []respond.MessageRespond
			if err := json.Unmarshal([]byte(rspString), &rsp); err != nil {
				zap.L().Error("json unmarshal cache error", zap.Error(err))
				// 即使缓存解析失败，也尝试查数据库
			} else {
				return rsp, nil
			}
		} else if errorx.GetCode(err) != errorx.CodeNotFound {
			// 缓存未命中属于正常情况，只记录真实故障
			zap.L().Error("redis get key error", zap.Error(err))
		}
	}

	messageList, err := m.repos.Message.FindConversation(userId, peer.Uuid, req.SinceId, limit)
	if err != nil {
		zap.L().Error("查询会话消息失败", zap.Error(err))
		return nil, errorx.ErrServerBusy
	}

	rspList := make([]respond.MessageRespond, 0, len(messageList))
	for _, msg := range messageList {
		rspList = append(rspList, respond.MessageRespond{
			Id:        msg.ID,
			SendId:    msg.SendId,
			ReceiveId: msg.ReceiveId,
			Content:   msg.Content,
			Source:    msg.Source,
			CreatedAt: msg.CreatedAt.Format("2006-01-02 15:04:05"),
		})
	}

	// 更新缓存
	if cacheable {
		myredis.SubmitCacheTask(func() {
			jsonBytes, err := json.Marshal(rspList)
			if err != nil {
				zap.L().Error("json marshal error", zap.Error(err))
				return
			}
			if err := myredis.SetKeyEx(context.Background(), cacheKey, string(jsonBytes),
				time.Duration(constants.REDIS_TIMEOUT)*time.Minute); err != nil {
				zap.L().Error("redis set key error", zap.Error(err))
			}
		})
	}

	return rspList, nil
}

// conversationCacheKey 会话缓存键
// 两个 uuid 排序后拼接，保证无序对 {A,B} 的键唯一
func conversationCacheKey(userOneId, userTwoId string) string {
	if userOneId > userTwoId {
		userOneId, userTwoId = userTwoId, userOneId
	}
	return "message_list_" + userOneId + "_" + userTwoId
}

package message

import (
	"testing"
	"time"

	"bridge_chat_server/internal/dao/mysql"
	"bridge_chat_server/internal/dto/request"
	"bridge_chat_server/internal/dto/respond"
	"bridge_chat_server/internal/infrastructure/relay"
	"bridge_chat_server/internal/model"
	"bridge_chat_server/pkg/enum/message/source_enum"
	"bridge_chat_server/pkg/errorx"
)

// fakeDirectory 用户名 -> uuid 的假目录
type fakeDirectory map[string]string

func (f fakeDirectory) Resolve(username string) (*respond.UserRespond, error) {
	uuid, ok := f[username]
	if !ok {
		return nil, errorx.New(errorx.CodeUserNotExist, "用户不存在")
	}
	return &respond.UserRespond{Uuid: uuid, Username: username}, nil
}

// fakeAuthorizer 放行集合里的有向对
type fakeAuthorizer map[[2]string]bool

func (f fakeAuthorizer) Authorize(senderId, receiverId string) (bool, error) {
	if senderId == receiverId {
		return false, nil
	}
	return f[[2]string{senderId, receiverId}], nil
}

// recordingSink 收集转发任务
type recordingSink struct {
	tasks []relay.Task
}

func (s *recordingSink) Enqueue(task relay.Task) { s.tasks = append(s.tasks, task) }
func (s *recordingSink) Close()                  {}

// recordingPusher 收集推送目标
type recordingPusher struct {
	uuids []string
}

func (p *recordingPusher) Push(uuid string, payload any) { p.uuids = append(p.uuids, uuid) }

// fakeMessageRepo 内存消息表，主键自增
type fakeMessageRepo struct {
	rows   []model.Message
	nextId uint
}

func (f *fakeMessageRepo) Create(message *model.Message) error {
	f.nextId++
	message.ID = f.nextId
	message.CreatedAt = time.Now()
	f.rows = append(f.rows, *message)
	return nil
}

func (f *fakeMessageRepo) FindConversation(userOneId, userTwoId string, sinceId uint, limit int) ([]model.Message, error) {
	var out []model.Message
	for _, row := range f.rows {
		pair := (row.SendId == userOneId && row.ReceiveId == userTwoId) ||
			(row.SendId == userTwoId && row.ReceiveId == userOneId)
		if !pair || row.ID <= sinceId {
			continue
		}
		out = append(out, row)
		if len(out) >= limit {
			break
		}
	}
	return out, nil
}

// fakeUserRepo 只支撑按 uuid 取用户名
type fakeUserRepo struct {
	byUuid map[string]model.UserInfo
}

func (f *fakeUserRepo) FindByUuid(uuid string) (*model.UserInfo, error) {
	u, ok := f.byUuid[uuid]
	if !ok {
		return nil, errorx.New(errorx.CodeNotFound, "record not found")
	}
	return &u, nil
}

func (f *fakeUserRepo) FindByUsername(username string) (*model.UserInfo, error) {
	for _, u := range f.byUuid {
		if u.Username == username {
			return &u, nil
		}
	}
	return nil, errorx.New(errorx.CodeNotFound, "record not found")
}

func (f *fakeUserRepo) FindByUuids(uuids []string) ([]model.UserInfo, error) {
	var out []model.UserInfo
	for _, uuid := range uuids {
		if u, ok := f.byUuid[uuid]; ok {
			out = append(out, u)
		}
	}
	return out, nil
}

func (f *fakeUserRepo) CreateUser(user *model.UserInfo) error {
	f.byUuid[user.Uuid] = *user
	return nil
}

type testEnv struct {
	svc    *messageService
	repo   *fakeMessageRepo
	sink   *recordingSink
	pusher *recordingPusher
	auth   fakeAuthorizer
}

func newTestEnv() *testEnv {
	messageRepo := &fakeMessageRepo{}
	userRepo := &fakeUserRepo{byUuid: map[string]model.UserInfo{
		"U1": {Uuid: "U1", Username: "alice"},
		"U2": {Uuid: "U2", Username: "bob"},
	}}
	repos := &mysql.Repositories{User: userRepo, Message: messageRepo}
	directory := fakeDirectory{"alice": "U1", "bob": "U2"}
	auth := fakeAuthorizer{}
	sink := &recordingSink{}
	pusher := &recordingPusher{}
	return &testEnv{
		svc:    NewMessageService(repos, directory, auth, sink, pusher),
		repo:   messageRepo,
		sink:   sink,
		pusher: pusher,
		auth:   auth,
	}
}

func (e *testEnv) allow(senderId, receiverId string) {
	e.auth[[2]string{senderId, receiverId}] = true
}

func TestSendTrimsAndPersists(t *testing.T) {
	env := newTestEnv()
	env.allow("U1", "U2")

	rsp, err := env.svc.Send("U1", request.SendMessageRequest{
		ReceiverUsername: "bob",
		Content:          "  hi  ",
	}, source_enum.Web)
	if err != nil {
		t.Fatal(err)
	}
	if rsp.Content != "hi" {
		t.Fatalf("content = %q, want trimmed %q", rsp.Content, "hi")
	}
	if rsp.Id != 1 || rsp.SendId != "U1" || rsp.ReceiveId != "U2" {
		t.Fatalf("rsp = %+v", rsp)
	}
	if len(env.repo.rows) != 1 || env.repo.rows[0].Content != "hi" {
		t.Fatalf("rows = %+v", env.repo.rows)
	}

	// Web 来源触发群转发，任务携带用户名
	if len(env.sink.tasks) != 1 {
		t.Fatalf("relay tasks = %d, want 1", len(env.sink.tasks))
	}
	if line := env.sink.tasks[0].Line(); line != "alice bob hi" {
		t.Fatalf("relay line = %q", line)
	}

	// 收发双方都收到推送
	if len(env.pusher.uuids) != 2 || env.pusher.uuids[0] != "U2" || env.pusher.uuids[1] != "U1" {
		t.Fatalf("pushed to %v", env.pusher.uuids)
	}
}

func TestSendIdsIncrease(t *testing.T) {
	env := newTestEnv()
	env.allow("U1", "U2")

	first, err := env.svc.Send("U1", request.SendMessageRequest{ReceiverUsername: "bob", Content: "x"}, source_enum.Web)
	if err != nil {
		t.Fatal(err)
	}
	second, err := env.svc.Send("U1", request.SendMessageRequest{ReceiverUsername: "bob", Content: "y"}, source_enum.Web)
	if err != nil {
		t.Fatal(err)
	}
	if second.Id <= first.Id {
		t.Fatalf("ids not increasing: %d then %d", first.Id, second.Id)
	}
}

func TestSendEmptyContent(t *testing.T) {
	env := newTestEnv()
	env.allow("U1", "U2")

	_, err := env.svc.Send("U1", request.SendMessageRequest{ReceiverUsername: "bob", Content: "   "}, source_enum.Web)
	if errorx.GetCode(err) != errorx.CodeEmptyContent {
		t.Fatalf("err = %v, want CodeEmptyContent", err)
	}
	if len(env.repo.rows) != 0 {
		t.Fatal("empty message was persisted")
	}
}

func TestSendReceiverNotFound(t *testing.T) {
	env := newTestEnv()
	_, err := env.svc.Send("U1", request.SendMessageRequest{ReceiverUsername: "ghost", Content: "hi"}, source_enum.Web)
	if errorx.GetCode(err) != errorx.CodeReceiverNotFound {
		t.Fatalf("err = %v, want CodeReceiverNotFound", err)
	}
	if len(env.repo.rows) != 0 {
		t.Fatal("message to unknown receiver was persisted")
	}
}

func TestSendUnauthorized(t *testing.T) {
	env := newTestEnv()
	// 没有 U1 -> U2 的边
	_, err := env.svc.Send("U1", request.SendMessageRequest{ReceiverUsername: "bob", Content: "hi"}, source_enum.Web)
	if errorx.GetCode(err) != errorx.CodeNotContact {
		t.Fatalf("err = %v, want CodeNotContact", err)
	}
	if len(env.repo.rows) != 0 {
		t.Fatal("unauthorized message was persisted")
	}
	if len(env.sink.tasks) != 0 {
		t.Fatal("unauthorized message was relayed")
	}
}

func TestSendBotSourceSkipsRelay(t *testing.T) {
	env := newTestEnv()
	env.allow("U1", "U2")

	// 群内指令本来就在群里，入库后不再转发，避免同一条消息出现两次
	rsp, err := env.svc.Send("U1", request.SendMessageRequest{ReceiverUsername: "bob", Content: "hi"}, source_enum.TelegramGroup)
	if err != nil {
		t.Fatal(err)
	}
	if rsp.Source != source_enum.TelegramGroup {
		t.Fatalf("source = %q", rsp.Source)
	}
	if len(env.sink.tasks) != 0 {
		t.Fatalf("bot-originated message relayed: %v", env.sink.tasks)
	}
}

func TestGetMessageListOrderAndSince(t *testing.T) {
	env := newTestEnv()
	env.allow("U1", "U2")
	env.allow("U2", "U1")

	x, _ := env.svc.Send("U1", request.SendMessageRequest{ReceiverUsername: "bob", Content: "x"}, source_enum.Web)
	if _, err := env.svc.Send("U2", request.SendMessageRequest{ReceiverUsername: "alice", Content: "y"}, source_enum.Web); err != nil {
		t.Fatal(err)
	}
	if _, err := env.svc.Send("U1", request.SendMessageRequest{ReceiverUsername: "bob", Content: "z"}, source_enum.Web); err != nil {
		t.Fatal(err)
	}

	// 双向消息按 id 升序
	list, err := env.svc.GetMessageList("U1", request.GetMessageListRequest{PeerUsername: "bob"})
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 3 || list[0].Content != "x" || list[1].Content != "y" || list[2].Content != "z" {
		t.Fatalf("list = %+v", list)
	}

	// 增量游标只取 id > sinceId 的部分
	tail, err := env.svc.GetMessageList("U1", request.GetMessageListRequest{PeerUsername: "bob", SinceId: x.Id})
	if err != nil {
		t.Fatal(err)
	}
	if len(tail) != 2 || tail[0].Content != "y" || tail[1].Content != "z" {
		t.Fatalf("tail = %+v", tail)
	}
}

func TestGetMessageListUnknownPeer(t *testing.T) {
	env := newTestEnv()
	_, err := env.svc.GetMessageList("U1", request.GetMessageListRequest{PeerUsername: "ghost"})
	if errorx.GetCode(err) != errorx.CodeUserNotExist {
		t.Fatalf("err = %v, want CodeUserNotExist", err)
	}
}

func TestGetMessageListLimit(t *testing.T) {
	env := newTestEnv()
	env.allow("U1", "U2")
	for _, content := range []string{"a", "b", "c"} {
		if _, err := env.svc.Send("U1", request.SendMessageRequest{ReceiverUsername: "bob", Content: content}, source_enum.Web); err != nil {
			t.Fatal(err)
		}
	}

	list, err := env.svc.GetMessageList("U1", request.GetMessageListRequest{PeerUsername: "bob", Limit: 2})
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 2 {
		t.Fatalf("len(list) = %d, want 2", len(list))
	}
}

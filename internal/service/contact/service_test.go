package contact

import (
	"testing"

	"bridge_chat_server/internal/dao/mysql"
	"bridge_chat_server/internal/dto/request"
	"bridge_chat_server/internal/dto/respond"
	"bridge_chat_server/internal/model"
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

// fakeContactRepo 内存版授权边存储
type fakeContactRepo struct {
	edges map[[2]string]struct{}
}

func newFakeContactRepo() *fakeContactRepo {
	return &fakeContactRepo{edges: make(map[[2]string]struct{})}
}

func (f *fakeContactRepo) ExistsEdge(userId, contactId string) (bool, error) {
	_, ok := f.edges[[2]string{userId, contactId}]
	return ok, nil
}

func (f *fakeContactRepo) CreateIgnoreDuplicate(contact *model.UserContact) (bool, error) {
	key := [2]string{contact.UserId, contact.ContactId}
	if _, ok := f.edges[key]; ok {
		return false, nil
	}
	f.edges[key] = struct{}{}
	return true, nil
}

func (f *fakeContactRepo) FindByUserId(userId string) ([]model.UserContact, error) {
	var out []model.UserContact
	for key := range f.edges {
		if key[0] == userId {
			out = append(out, model.UserContact{UserId: key[0], ContactId: key[1]})
		}
	}
	return out, nil
}

// fakeUserRepo 只实现联系人列表需要的批量查询
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

func newTestService() (*contactService, *fakeContactRepo) {
	contactRepo := newFakeContactRepo()
	userRepo := &fakeUserRepo{byUuid: map[string]model.UserInfo{
		"U1": {Uuid: "U1", Username: "alice"},
		"U2": {Uuid: "U2", Username: "Bob"},
		"U3": {Uuid: "U3", Username: "carol"},
	}}
	repos := &mysql.Repositories{User: userRepo, Contact: contactRepo}
	directory := fakeDirectory{"alice": "U1", "Bob": "U2", "carol": "U3"}
	return NewContactService(repos, directory), contactRepo
}

func TestAddContactTwice(t *testing.T) {
	svc, repo := newTestService()

	first, err := svc.AddContact("U1", request.AddContactRequest{Username: "Bob"})
	if err != nil {
		t.Fatal(err)
	}
	if first.AlreadyExists {
		t.Fatal("first add reported AlreadyExists")
	}
	if first.ContactUuid != "U2" || first.Username != "Bob" {
		t.Fatalf("first add = %+v", first)
	}

	second, err := svc.AddContact("U1", request.AddContactRequest{Username: "Bob"})
	if err != nil {
		t.Fatal(err)
	}
	if !second.AlreadyExists {
		t.Fatal("second add did not report AlreadyExists")
	}

	// 边表里只有一条 (U1, U2)
	if len(repo.edges) != 1 {
		t.Fatalf("edge count = %d, want 1", len(repo.edges))
	}
}

func TestAddContactSelf(t *testing.T) {
	svc, _ := newTestService()
	_, err := svc.AddContact("U1", request.AddContactRequest{Username: "alice"})
	if errorx.GetCode(err) != errorx.CodeSelfTarget {
		t.Fatalf("err = %v, want CodeSelfTarget", err)
	}
}

func TestAddContactUnknownTarget(t *testing.T) {
	svc, _ := newTestService()
	_, err := svc.AddContact("U1", request.AddContactRequest{Username: "ghost"})
	if errorx.GetCode(err) != errorx.CodeUserNotExist {
		t.Fatalf("err = %v, want CodeUserNotExist", err)
	}
}

func TestAuthorize(t *testing.T) {
	svc, _ := newTestService()

	// 自发自收一律拒绝
	if ok, _ := svc.Authorize("U1", "U1"); ok {
		t.Fatal("Authorize(self) = true")
	}

	// 没有边时拒绝
	if ok, _ := svc.Authorize("U1", "U2"); ok {
		t.Fatal("Authorize without edge = true")
	}

	// 添加后立即放行
	if _, err := svc.AddContact("U1", request.AddContactRequest{Username: "Bob"}); err != nil {
		t.Fatal(err)
	}
	if ok, _ := svc.Authorize("U1", "U2"); !ok {
		t.Fatal("Authorize with edge = false")
	}

	// 授权是有向的：反向边不存在则反向发送被拒
	if ok, _ := svc.Authorize("U2", "U1"); ok {
		t.Fatal("reverse Authorize = true without reverse edge")
	}
}

func TestGetContactListSorted(t *testing.T) {
	svc, _ := newTestService()
	for _, name := range []string{"carol", "Bob"} {
		if _, err := svc.AddContact("U1", request.AddContactRequest{Username: name}); err != nil {
			t.Fatal(err)
		}
	}

	list, err := svc.GetContactList("U1")
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 2 {
		t.Fatalf("len(list) = %d", len(list))
	}
	// 排序不区分大小写：Bob 在 carol 前
	if list[0].Username != "Bob" || list[1].Username != "carol" {
		t.Fatalf("list order = [%s, %s]", list[0].Username, list[1].Username)
	}
}

func TestGetContactListEmpty(t *testing.T) {
	svc, _ := newTestService()
	list, err := svc.GetContactList("U1")
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 0 {
		t.Fatalf("len(list) = %d, want 0", len(list))
	}
}

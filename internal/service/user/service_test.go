package user

import (
	"os"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"bridge_chat_server/internal/dao/mysql"
	"bridge_chat_server/internal/dto/request"
	"bridge_chat_server/internal/model"
	"bridge_chat_server/pkg/errorx"
	"bridge_chat_server/pkg/util/jwt"
)

func TestMain(m *testing.M) {
	jwt.Init("unit-test-secret", 30, 168)
	os.Exit(m.Run())
}

// fakeUserRepo 内存用户表，用户名大小写敏感唯一
type fakeUserRepo struct {
	byUuid map[string]*model.UserInfo
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byUuid: make(map[string]*model.UserInfo)}
}

func (f *fakeUserRepo) FindByUuid(uuid string) (*model.UserInfo, error) {
	if u, ok := f.byUuid[uuid]; ok {
		copied := *u
		return &copied, nil
	}
	return nil, errorx.New(errorx.CodeNotFound, "record not found")
}

func (f *fakeUserRepo) FindByUsername(username string) (*model.UserInfo, error) {
	for _, u := range f.byUuid {
		if u.Username == username {
			copied := *u
			return &copied, nil
		}
	}
	return nil, errorx.New(errorx.CodeNotFound, "record not found")
}

func (f *fakeUserRepo) FindByUuids(uuids []string) ([]model.UserInfo, error) {
	var out []model.UserInfo
	for _, uuid := range uuids {
		if u, ok := f.byUuid[uuid]; ok {
			out = append(out, *u)
		}
	}
	return out, nil
}

// CreateUser 模拟唯一约束与 BeforeSave 的密码加密
func (f *fakeUserRepo) CreateUser(user *model.UserInfo) error {
	for _, existing := range f.byUuid {
		if existing.Username == user.Username {
			return errorx.New(errorx.CodeUserExist, "用户已存在")
		}
	}
	if user.RawPassword != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(user.RawPassword), bcrypt.MinCost)
		if err != nil {
			return err
		}
		user.Password = string(hash)
		user.RawPassword = ""
	}
	copied := *user
	f.byUuid[user.Uuid] = &copied
	return nil
}

func newTestService() *userService {
	return NewUserService(&mysql.Repositories{User: newFakeUserRepo()})
}

func TestRegisterAndResolve(t *testing.T) {
	svc := newTestService()

	rsp, err := svc.Register(request.RegisterRequest{Username: "alice", Password: "secret1"})
	if err != nil {
		t.Fatal(err)
	}
	if rsp.Username != "alice" || rsp.Uuid == "" {
		t.Fatalf("register rsp = %+v", rsp)
	}
	if rsp.AccessToken == "" || rsp.RefreshToken == "" {
		t.Fatal("register did not issue tokens")
	}

	// 解析入参先去除首尾空白
	resolved, err := svc.Resolve("  alice  ")
	if err != nil {
		t.Fatal(err)
	}
	if resolved.Username != "alice" || resolved.Uuid != rsp.Uuid {
		t.Fatalf("resolved = %+v", resolved)
	}
}

func TestResolveCaseSensitive(t *testing.T) {
	svc := newTestService()
	if _, err := svc.Register(request.RegisterRequest{Username: "alice", Password: "secret1"}); err != nil {
		t.Fatal(err)
	}

	// 大小写敏感：Alice 不是 alice
	_, err := svc.Resolve("Alice")
	if errorx.GetCode(err) != errorx.CodeUserNotExist {
		t.Fatalf("err = %v, want CodeUserNotExist", err)
	}
}

func TestResolveUnknown(t *testing.T) {
	svc := newTestService()
	_, err := svc.Resolve("ghost")
	if errorx.GetCode(err) != errorx.CodeUserNotExist {
		t.Fatalf("err = %v, want CodeUserNotExist", err)
	}
}

func TestRegisterDuplicate(t *testing.T) {
	svc := newTestService()
	if _, err := svc.Register(request.RegisterRequest{Username: "alice", Password: "secret1"}); err != nil {
		t.Fatal(err)
	}

	// 换个密码也没用，用户名唯一
	_, err := svc.Register(request.RegisterRequest{Username: "alice", Password: "another1"})
	if errorx.GetCode(err) != errorx.CodeUserExist {
		t.Fatalf("err = %v, want CodeUserExist", err)
	}
}

func TestLogin(t *testing.T) {
	svc := newTestService()
	if _, err := svc.Register(request.RegisterRequest{Username: "alice", Password: "secret1"}); err != nil {
		t.Fatal(err)
	}

	rsp, err := svc.Login(request.LoginRequest{Username: "alice", Password: "secret1"})
	if err != nil {
		t.Fatal(err)
	}
	if rsp.Username != "alice" || rsp.AccessToken == "" {
		t.Fatalf("login rsp = %+v", rsp)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	svc := newTestService()
	if _, err := svc.Register(request.RegisterRequest{Username: "alice", Password: "secret1"}); err != nil {
		t.Fatal(err)
	}

	_, err := svc.Login(request.LoginRequest{Username: "alice", Password: "wrong"})
	if errorx.GetCode(err) != errorx.CodeInvalidPassword {
		t.Fatalf("err = %v, want CodeInvalidPassword", err)
	}
}

func TestLoginUnknownUser(t *testing.T) {
	svc := newTestService()
	_, err := svc.Login(request.LoginRequest{Username: "ghost", Password: "whatever"})
	if errorx.GetCode(err) != errorx.CodeUserNotExist {
		t.Fatalf("err = %v, want CodeUserNotExist", err)
	}
}

func TestRefreshTokenInvalid(t *testing.T) {
	svc := newTestService()

	// 随便一串不是 token 的东西
	_, err := svc.RefreshToken(request.RefreshTokenRequest{RefreshToken: "garbage"})
	if errorx.GetCode(err) != errorx.CodeUnauthorized {
		t.Fatalf("err = %v, want CodeUnauthorized", err)
	}

	// Access Token 不能当 Refresh Token 用
	accessToken, err := jwt.GenerateAccessToken("U1", "alice")
	if err != nil {
		t.Fatal(err)
	}
	_, err = svc.RefreshToken(request.RefreshTokenRequest{RefreshToken: accessToken})
	if errorx.GetCode(err) != errorx.CodeUnauthorized {
		t.Fatalf("err = %v, want CodeUnauthorized", err)
	}
}

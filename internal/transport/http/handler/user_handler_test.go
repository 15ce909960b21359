package handler_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"go-mpa-usercenter/internal/core/auth"
	"go-mpa-usercenter/internal/core/config"
	"go-mpa-usercenter/internal/render"
	"go-mpa-usercenter/internal/repo"
	"go-mpa-usercenter/internal/service"
	"go-mpa-usercenter/internal/transport/http/handler"
	"go-mpa-usercenter/internal/transport/http/router"
)

type userResp struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      *string   `json:"name"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func newTestEngine(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	userRepo := repo.NewUserRepoMemory()
	svc := service.NewUserService(userRepo, nil, zap.NewNop())
	jwter := &auth.JWTer{Secret: []byte("test-secret"), Issuer: "test", TTL: time.Hour}
	rdr, err := render.New("")
	if err != nil {
		t.Fatalf("renderer: %v", err)
	}

	return router.NewEngine(
		zap.NewNop(),
		&config.Config{},
		jwter,
		handler.NewUserHandler(svc),
		handler.NewAuthHandler(svc, jwter),
		handler.NewPageHandler(rdr, svc, zap.NewNop()),
	)
}

func do(t *testing.T, r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeUser(t *testing.T, w *httptest.ResponseRecorder) userResp {
	t.Helper()
	var u userResp
	if err := json.Unmarshal(w.Body.Bytes(), &u); err != nil {
		t.Fatalf("decode user: %v body=%s", err, w.Body.String())
	}
	return u
}

func TestUserCRUDFlow(t *testing.T) {
	r := newTestEngine(t)

	// 创建 → 201，投影不含密码
	w := do(t, r, http.MethodPost, "/api/users", gin.H{"email": "a@x.com", "password": "secret1"})
	if w.Code != http.StatusCreated {
		t.Fatalf("create: got %d body=%s", w.Code, w.Body.String())
	}
	var raw map[string]any
	_ = json.Unmarshal(w.Body.Bytes(), &raw)
	for _, forbidden := range []string{"password", "passwordHash", "PasswordHash"} {
		if _, ok := raw[forbidden]; ok {
			t.Fatalf("projection leaked %q: %s", forbidden, w.Body.String())
		}
	}
	created := decodeUser(t, w)
	if created.Email != "a@x.com" || created.Role != "USER" || created.Name != nil {
		t.Fatalf("unexpected created projection: %+v", created)
	}

	// 列表 → 200，一条
	w = do(t, r, http.MethodGet, "/api/users", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("list: got %d", w.Code)
	}
	var list []userResp
	if err := json.Unmarshal(w.Body.Bytes(), &list); err != nil || len(list) != 1 {
		t.Fatalf("list: err=%v body=%s", err, w.Body.String())
	}

	// 部分更新：只动 name
	w = do(t, r, http.MethodPatch, "/api/users/"+created.ID, gin.H{"name": "A"})
	if w.Code != http.StatusOK {
		t.Fatalf("patch: got %d body=%s", w.Code, w.Body.String())
	}
	updated := decodeUser(t, w)
	if updated.Name == nil || *updated.Name != "A" || updated.Email != created.Email || updated.Role != created.Role {
		t.Fatalf("patch result wrong: %+v", updated)
	}

	// 空 patch：字段不变，createdAt 不回退
	w = do(t, r, http.MethodPatch, "/api/users/"+created.ID, gin.H{})
	if w.Code != http.StatusOK {
		t.Fatalf("empty patch: got %d", w.Code)
	}
	same := decodeUser(t, w)
	if same.Email != created.Email || same.CreatedAt.After(same.UpdatedAt) {
		t.Fatalf("empty patch changed fields: %+v", same)
	}

	// 删除 → 200 返回被删投影
	w = do(t, r, http.MethodDelete, "/api/users/"+created.ID, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("delete: got %d", w.Code)
	}
	deleted := decodeUser(t, w)
	if deleted.ID != created.ID {
		t.Fatalf("delete should echo projection, got %+v", deleted)
	}

	// 再查 → 404，中文提示带 id
	w = do(t, r, http.MethodGet, "/api/users/"+created.ID, nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("get after delete: got %d", w.Code)
	}
	var errBody struct {
		Message string `json:"message"`
	}
	_ = json.Unmarshal(w.Body.Bytes(), &errBody)
	if errBody.Message != "用户 #"+created.ID+" 不存在" {
		t.Fatalf("unexpected 404 message: %q", errBody.Message)
	}
}

func TestCreateDuplicateEmail(t *testing.T) {
	r := newTestEngine(t)

	w := do(t, r, http.MethodPost, "/api/users", gin.H{"email": "dup@x.com", "password": "secret1"})
	if w.Code != http.StatusCreated {
		t.Fatalf("first create: got %d", w.Code)
	}
	first := decodeUser(t, w)

	w = do(t, r, http.MethodPost, "/api/users", gin.H{"email": "dup@x.com", "password": "secret2"})
	if w.Code != http.StatusConflict {
		t.Fatalf("duplicate create: got %d body=%s", w.Code, w.Body.String())
	}

	// 第一条仍可读
	w = do(t, r, http.MethodGet, "/api/users/"+first.ID, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("first record unreachable after conflict: %d", w.Code)
	}
}

func TestCreateValidation(t *testing.T) {
	r := newTestEngine(t)

	cases := []gin.H{
		{"email": "not-an-email", "password": "secret1"},
		{"email": "a@x.com", "password": "short"},
		{"password": "secret1"},
		// bcrypt 上限 72 字节，超长密码在入口就拒绝
		{"email": "a@x.com", "password": strings.Repeat("p", 80)},
	}
	for _, body := range cases {
		w := do(t, r, http.MethodPost, "/api/users", body)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("body %v: got %d, want 400", body, w.Code)
		}
	}

	// PATCH 的密码字段同样受限，且不会破坏既有账号
	w := do(t, r, http.MethodPost, "/api/users", gin.H{"email": "keep@x.com", "password": "secret1"})
	created := decodeUser(t, w)
	w = do(t, r, http.MethodPatch, "/api/users/"+created.ID, gin.H{"password": strings.Repeat("p", 80)})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("overlong patch password: got %d, want 400", w.Code)
	}
	w = do(t, r, http.MethodPost, "/api/auth/login", gin.H{"email": "keep@x.com", "password": "secret1"})
	if w.Code != http.StatusOK {
		t.Fatalf("account broken after rejected patch: got %d", w.Code)
	}
}

func TestPatchMissingUser(t *testing.T) {
	r := newTestEngine(t)
	w := do(t, r, http.MethodPatch, "/api/users/ghost", gin.H{"name": "A"})
	if w.Code != http.StatusNotFound {
		t.Fatalf("got %d, want 404", w.Code)
	}
}

func TestLoginAndMe(t *testing.T) {
	r := newTestEngine(t)

	w := do(t, r, http.MethodPost, "/api/users", gin.H{"email": "a@x.com", "password": "secret1"})
	created := decodeUser(t, w)

	// 密码错误 → 401
	w = do(t, r, http.MethodPost, "/api/auth/login", gin.H{"email": "a@x.com", "password": "wrong"})
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("bad login: got %d", w.Code)
	}

	// 正确登录 → token
	w = do(t, r, http.MethodPost, "/api/auth/login", gin.H{"email": "a@x.com", "password": "secret1"})
	if w.Code != http.StatusOK {
		t.Fatalf("login: got %d body=%s", w.Code, w.Body.String())
	}
	var lr struct {
		Token string   `json:"token"`
		User  userResp `json:"user"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &lr); err != nil || lr.Token == "" {
		t.Fatalf("login response: err=%v body=%s", err, w.Body.String())
	}

	// /api/me 无 token → 401
	w = do(t, r, http.MethodGet, "/api/me", nil)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("me without token: got %d", w.Code)
	}

	// /api/me 带 token → 本人投影
	req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
	req.Header.Set("Authorization", "Bearer "+lr.Token)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("me: got %d body=%s", rec.Code, rec.Body.String())
	}
	me := decodeUser(t, rec)
	if me.ID != created.ID {
		t.Fatalf("me returned wrong user: %+v", me)
	}
}

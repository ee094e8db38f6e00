package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"reflect"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/rizkypratama/go-blog-api/internal/application"
	"github.com/rizkypratama/go-blog-api/internal/domain/entity"
	repo "github.com/rizkypratama/go-blog-api/internal/domain/repository"
	handlers "github.com/rizkypratama/go-blog-api/internal/interface/http"
	"github.com/rizkypratama/go-blog-api/internal/router"
	"github.com/rizkypratama/go-blog-api/internal/router/modules"
	"github.com/rizkypratama/go-blog-api/pkg/helpers"
	"github.com/rizkypratama/go-blog-api/pkg/validation"
)

type memUserRepo struct {
	users []*entity.User
}

func (m *memUserRepo) GetByID(id int64) (*entity.User, error) {
	for _, u := range m.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, repo.ErrNotFound
}

func (m *memUserRepo) GetByUsername(username string) (*entity.User, error) {
	for _, u := range m.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, repo.ErrNotFound
}

type memPostRepo struct {
	posts  []*entity.Post
	nextID int64
	now    time.Time
}

func (m *memPostRepo) Create(p *entity.Post) error {
	p.ID = m.nextID
	p.CreatedAt = m.now
	m.nextID++
	cp := *p
	m.posts = append(m.posts, &cp)
	return nil
}

func (m *memPostRepo) GetByID(id int64) (*entity.Post, error) {
	for _, p := range m.posts {
		if p.ID == id {
			cp := *p
			return &cp, nil
		}
	}
	return nil, repo.ErrNotFound
}

func (m *memPostRepo) List() ([]*entity.Post, error) {
	out := make([]*entity.Post, len(m.posts))
	copy(out, m.posts)
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

// envelope mirrors pkg/response with the payload left raw for per-test decoding.
type envelope struct {
	Status  int             `json:"status"`
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   json.RawMessage `json:"error"`
}

func newTestAPI(t *testing.T) (*gin.Engine, *memPostRepo) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	validation.Init()

	hash, err := helpers.HashPassword("secret")
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	users := &memUserRepo{users: []*entity.User{
		{ID: 1, Username: "alice", Password: hash},
	}}
	store := &memPostRepo{nextID: 1, now: time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)}

	jwt := helpers.NewJWTManager("test-secret", time.Hour)
	authSvc := application.NewAuthService(users, jwt, nil, nil, false)
	postSvc := application.NewPostService(store, nil, nil, nil, "")

	engine := gin.New()
	reg := router.NewRegistry(engine)
	reg.Add(modules.NewAuthModule(handlers.NewAuthHandler(authSvc, nil)))
	reg.Add(modules.NewPostModule(handlers.NewPostHandler(postSvc, nil), users))
	reg.RegisterAll()
	return engine, store
}

func do(t *testing.T, engine *gin.Engine, method, path, body, token string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var rd *strings.Reader
	if body != "" {
		rd = strings.NewReader(body)
	} else {
		rd = strings.NewReader("")
	}
	req := httptest.NewRequest(method, path, rd)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	var env envelope
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatalf("%s %s: decode envelope: %v (body %s)", method, path, err, w.Body.String())
	}
	return w, env
}

func login(t *testing.T, engine *gin.Engine, username, password string) (string, int64, *httptest.ResponseRecorder) {
	t.Helper()
	w, env := do(t, engine, http.MethodPost, "/api/login",
		`{"username":"`+username+`","password":"`+password+`"}`, "")
	if w.Code != http.StatusOK {
		return "", 0, w
	}
	var data struct {
		Token  string `json:"token"`
		UserID int64  `json:"user_id"`
	}
	if err := json.Unmarshal(env.Data, &data); err != nil {
		t.Fatalf("decode login data: %v", err)
	}
	return data.Token, data.UserID, w
}

func TestLoginReturnsTokenAndUserID(t *testing.T) {
	engine, _ := newTestAPI(t)

	token, userID, w := login(t, engine, "alice", "secret")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body %s)", w.Code, w.Body.String())
	}
	if token == "" {
		t.Fatal("expected a token")
	}
	if userID != 1 {
		t.Fatalf("user_id = %d, want 1", userID)
	}
}

func TestLoginFailuresShareOneShape(t *testing.T) {
	engine, _ := newTestAPI(t)

	_, wrong := do(t, engine, http.MethodPost, "/api/login", `{"username":"alice","password":"wrong"}`, "")
	_, unknown := do(t, engine, http.MethodPost, "/api/login", `{"username":"nobody","password":"secret"}`, "")

	for _, env := range []envelope{wrong, unknown} {
		if env.Status != http.StatusUnauthorized {
			t.Fatalf("status = %d, want 401", env.Status)
		}
		if env.Message != "invalid credentials" {
			t.Fatalf("message = %q, want generic invalid credentials", env.Message)
		}
	}
	if wrong.Message != unknown.Message || wrong.Status != unknown.Status {
		t.Fatal("wrong-password and unknown-user responses must be identical")
	}
}

func TestCreatePostRequiresBearerToken(t *testing.T) {
	engine, store := newTestAPI(t)

	w, _ := do(t, engine, http.MethodPost, "/api/posts", `{"title":"T","content":"C"}`, "")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("anonymous create: status = %d, want 401", w.Code)
	}

	w, _ = do(t, engine, http.MethodPost, "/api/posts", `{"title":"T","content":"C"}`, "not-a-token")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("invalid token create: status = %d, want 401", w.Code)
	}

	if len(store.posts) != 0 {
		t.Fatalf("store has %d posts, rejected creates must not persist", len(store.posts))
	}
}

func TestCreatePostDerivesSummary(t *testing.T) {
	engine, _ := newTestAPI(t)
	token, _, _ := login(t, engine, "alice", "secret")

	body := `{"title":"Hello","content":"` + strings.Repeat("A", 150) + `"}`
	w, env := do(t, engine, http.MethodPost, "/api/posts", body, token)
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201 (body %s)", w.Code, w.Body.String())
	}

	var data struct {
		ID      int64  `json:"id"`
		Summary string `json:"summary"`
		Author  string `json:"author"`
	}
	if err := json.Unmarshal(env.Data, &data); err != nil {
		t.Fatalf("decode post: %v", err)
	}
	if want := strings.Repeat("A", 100); data.Summary != want {
		t.Fatalf("summary = %q, want first 100 characters", data.Summary)
	}
	if data.Author != "alice" {
		t.Fatalf("author = %q, want display name alice", data.Author)
	}
	if data.ID == 0 {
		t.Fatal("expected an assigned id")
	}
}

func TestCreatePostValidatesFields(t *testing.T) {
	engine, _ := newTestAPI(t)
	token, _, _ := login(t, engine, "alice", "secret")

	w, env := do(t, engine, http.MethodPost, "/api/posts", `{"content":"C"}`, token)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	var details map[string]string
	if err := json.Unmarshal(env.Error, &details); err != nil {
		t.Fatalf("decode error details: %v", err)
	}
	if _, ok := details["title"]; !ok {
		t.Fatalf("details = %v, want a message for title", details)
	}
}

func TestListPostsNewestFirst(t *testing.T) {
	engine, _ := newTestAPI(t)
	token, _, _ := login(t, engine, "alice", "secret")

	for _, body := range []string{
		`{"title":"first","content":"one"}`,
		`{"title":"second","content":"two"}`,
	} {
		if w, _ := do(t, engine, http.MethodPost, "/api/posts", body, token); w.Code != http.StatusCreated {
			t.Fatalf("create: status = %d, want 201", w.Code)
		}
	}

	// No credential needed to read.
	w, env := do(t, engine, http.MethodGet, "/api/posts", "", "")
	if w.Code != http.StatusOK {
		t.Fatalf("list: status = %d, want 200", w.Code)
	}
	var posts []struct {
		Title string `json:"title"`
	}
	if err := json.Unmarshal(env.Data, &posts); err != nil {
		t.Fatalf("decode posts: %v", err)
	}
	if len(posts) != 2 || posts[0].Title != "second" || posts[1].Title != "first" {
		t.Fatalf("list order = %v, want [second first]", posts)
	}
}

func TestGetPost(t *testing.T) {
	engine, _ := newTestAPI(t)
	token, _, _ := login(t, engine, "alice", "secret")

	w, env := do(t, engine, http.MethodPost, "/api/posts", `{"title":"T","content":"C"}`, token)
	if w.Code != http.StatusCreated {
		t.Fatalf("create: status = %d, want 201", w.Code)
	}
	var created struct {
		ID int64 `json:"id"`
	}
	if err := json.Unmarshal(env.Data, &created); err != nil {
		t.Fatalf("decode created post: %v", err)
	}

	w1, env1 := do(t, engine, http.MethodGet, "/api/posts/1", "", "")
	if w1.Code != http.StatusOK {
		t.Fatalf("get: status = %d, want 200", w1.Code)
	}

	// Repeated reads with no intervening writes return the same record.
	_, env2 := do(t, engine, http.MethodGet, "/api/posts/1", "", "")
	var first, second map[string]any
	if err := json.Unmarshal(env1.Data, &first); err != nil {
		t.Fatalf("decode first read: %v", err)
	}
	if err := json.Unmarshal(env2.Data, &second); err != nil {
		t.Fatalf("decode second read: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("repeated reads differ: %v vs %v", first, second)
	}

	w404, _ := do(t, engine, http.MethodGet, "/api/posts/9999", "", "")
	if w404.Code != http.StatusNotFound {
		t.Fatalf("missing post: status = %d, want 404", w404.Code)
	}

	wBad, _ := do(t, engine, http.MethodGet, "/api/posts/abc", "", "")
	if wBad.Code != http.StatusBadRequest {
		t.Fatalf("bad id: status = %d, want 400", wBad.Code)
	}
}

func TestSearchWithoutBackendReturnsEmpty(t *testing.T) {
	engine, _ := newTestAPI(t)

	w, env := do(t, engine, http.MethodGet, "/api/posts/search?q=hello", "", "")
	if w.Code != http.StatusOK {
		t.Fatalf("search: status = %d, want 200", w.Code)
	}
	// The envelope omits empty payloads entirely.
	var hits []map[string]any
	if len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, &hits); err != nil {
			t.Fatalf("decode hits: %v", err)
		}
	}
	if len(hits) != 0 {
		t.Fatalf("got %d hits, want none", len(hits))
	}
}

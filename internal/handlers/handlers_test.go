package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Akshay-Unavane/To-Do-App/internal/auth"
	dom "github.com/Akshay-Unavane/To-Do-App/internal/domain"
	"github.com/Akshay-Unavane/To-Do-App/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const testAdminSecret = "test-admin-secret"

// In-memory repos mirroring the Postgres filters, so handlers run against
// the real services and middleware.

type fakeUserRepo struct {
	nextID int64
	users  map[string]dom.User
}

func (r *fakeUserRepo) Create(_ context.Context, name, email, passwordHash string) (dom.User, error) {
	if _, ok := r.users[email]; ok {
		return dom.User{}, &pgconn.PgError{Code: "23505"}
	}
	r.nextID++
	u := dom.User{ID: r.nextID, Name: name, Email: email, PasswordHash: passwordHash}
	r.users[email] = u
	return u, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (dom.User, error) {
	u, ok := r.users[email]
	if !ok {
		return dom.User{}, pgx.ErrNoRows
	}
	return u, nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id int64) (dom.User, error) {
	for _, u := range r.users {
		if u.ID == id {
			return u, nil
		}
	}
	return dom.User{}, pgx.ErrNoRows
}

func (r *fakeUserRepo) UpdateName(_ context.Context, id int64, name string) (dom.User, error) {
	for email, u := range r.users {
		if u.ID == id {
			u.Name = name
			r.users[email] = u
			return u, nil
		}
	}
	return dom.User{}, pgx.ErrNoRows
}

func (r *fakeUserRepo) UpdatePasswordByEmail(_ context.Context, email, passwordHash string) (int64, error) {
	u, ok := r.users[email]
	if !ok {
		return 0, nil
	}
	u.PasswordHash = passwordHash
	r.users[email] = u
	return 1, nil
}

func (r *fakeUserRepo) ListAll(_ context.Context) ([]dom.User, error) {
	var out []dom.User
	for _, u := range r.users {
		out = append(out, u)
	}
	return out, nil
}

type fakeTodoRepo struct {
	nextID int64
	todos  []dom.Todo
}

func (r *fakeTodoRepo) Create(_ context.Context, t dom.Todo) (dom.Todo, error) {
	r.nextID++
	t.ID = r.nextID
	if t.CreatedAt == 0 {
		t.CreatedAt = time.Now().UnixMilli()
	}
	r.todos = append(r.todos, t)
	return t, nil
}

func (r *fakeTodoRepo) List(_ context.Context, userID int64) ([]dom.Todo, error) {
	var out []dom.Todo
	for i := len(r.todos) - 1; i >= 0; i-- {
		if r.todos[i].UserID == userID {
			out = append(out, r.todos[i])
		}
	}
	return out, nil
}

func (r *fakeTodoRepo) Update(_ context.Context, userID, id int64, text *string, completed *bool) (int64, error) {
	for i := range r.todos {
		if r.todos[i].ID == id && r.todos[i].UserID == userID {
			if text != nil {
				r.todos[i].Text = *text
			}
			if completed != nil {
				r.todos[i].Completed = *completed
			}
			return 1, nil
		}
	}
	return 0, nil
}

func (r *fakeTodoRepo) Delete(_ context.Context, userID, id int64) (int64, error) {
	for i := range r.todos {
		if r.todos[i].ID == id && r.todos[i].UserID == userID {
			r.todos = append(r.todos[:i], r.todos[i+1:]...)
			return 1, nil
		}
	}
	return 0, nil
}

func (r *fakeTodoRepo) ListAll(_ context.Context) ([]dom.Todo, error) {
	return append([]dom.Todo(nil), r.todos...), nil
}

type fakeRevoker struct {
	revoked map[string]bool
}

func (f *fakeRevoker) Revoke(_ context.Context, jti string, _ time.Duration) error {
	if f.revoked == nil {
		f.revoked = map[string]bool{}
	}
	f.revoked[jti] = true
	return nil
}

func (f *fakeRevoker) IsRevoked(_ context.Context, jti string) (bool, error) {
	return f.revoked[jti], nil
}

// newTestRouter wires the real services, token service and middleware over
// in-memory repos, registering the same routes as the app.
func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)

	tokens := auth.NewTokenService("test-secret", time.Hour)
	revoker := &fakeRevoker{}
	userRepo := &fakeUserRepo{users: map[string]dom.User{}}
	todoRepo := &fakeTodoRepo{}

	userSvc := service.NewUserService(userRepo)
	todoSvc := service.NewTodoService(todoRepo)
	adminSvc := service.NewAdminService(userRepo, todoRepo)

	authHandler := NewAuthHandler(tokens, revoker, userSvc)
	todoHandler := NewTodoHandler(todoSvc)
	adminHandler := NewAdminHandler(testAdminSecret, adminSvc)

	r := gin.New()
	api := r.Group("/api")
	api.POST("/register", authHandler.Register)
	api.POST("/login", authHandler.Login)
	api.POST("/reset-password", authHandler.ResetPassword)

	protected := api.Group("", auth.RequireAuth(tokens, revoker))
	protected.GET("/me", authHandler.Me)
	protected.PUT("/me", authHandler.UpdateProfile)
	protected.POST("/logout", authHandler.Logout)
	protected.GET("/todos", todoHandler.List)
	protected.POST("/todos", todoHandler.Create)
	protected.PUT("/todos/:id", todoHandler.Update)
	protected.DELETE("/todos/:id", todoHandler.Delete)

	r.GET("/admin/debug", adminHandler.Debug)
	return r
}

func do(t *testing.T, r *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, into interface{}) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), into); err != nil {
		t.Fatalf("unmarshal %q: %v", w.Body.String(), err)
	}
}

type authBody struct {
	User struct {
		ID    int64  `json:"id"`
		Name  string `json:"name"`
		Email string `json:"email"`
	} `json:"user"`
	Token string `json:"token"`
}

func register(t *testing.T, r *gin.Engine, name, email, password string) authBody {
	t.Helper()
	w := do(t, r, http.MethodPost, "/api/register", "", gin.H{"name": name, "email": email, "password": password})
	if w.Code != http.StatusOK {
		t.Fatalf("register %s: status = %d, body %s", email, w.Code, w.Body.String())
	}
	var body authBody
	decode(t, w, &body)
	return body
}

type todoBody struct {
	Todo struct {
		ID        int64  `json:"id"`
		UserID    int64  `json:"userId"`
		UserName  string `json:"userName"`
		Text      string `json:"text"`
		Completed bool   `json:"completed"`
		CreatedAt int64  `json:"createdAt"`
	} `json:"todo"`
}

type todosBody struct {
	Todos []struct {
		ID        int64  `json:"id"`
		Text      string `json:"text"`
		Completed bool   `json:"completed"`
		UserName  string `json:"userName"`
	} `json:"todos"`
}

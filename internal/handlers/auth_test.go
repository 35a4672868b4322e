package handlers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestRegisterReturnsUserAndToken(t *testing.T) {
	r := newTestRouter()

	body := register(t, r, "Alice", "a@x.com", "pw123")
	if body.Token == "" {
		t.Fatal("expected a token")
	}
	if body.User.Email != "a@x.com" || body.User.Name != "Alice" || body.User.ID == 0 {
		t.Fatalf("user = %+v", body.User)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	r := newTestRouter()
	register(t, r, "Alice", "a@x.com", "pw123")

	w := do(t, r, http.MethodPost, "/api/register", "", gin.H{"email": "a@x.com", "password": "other"})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	var body map[string]string
	decode(t, w, &body)
	if body["error"] != "email already in use" {
		t.Fatalf("error = %q", body["error"])
	}
}

func TestRegisterMissingFields(t *testing.T) {
	r := newTestRouter()

	for _, payload := range []gin.H{
		{},
		{"email": "a@x.com"},
		{"password": "pw"},
		{"email": "not-an-email", "password": "pw"},
	} {
		w := do(t, r, http.MethodPost, "/api/register", "", payload)
		if w.Code != http.StatusBadRequest {
			t.Errorf("payload %v: status = %d, want 400", payload, w.Code)
		}
	}
}

func TestLogin(t *testing.T) {
	r := newTestRouter()
	register(t, r, "Alice", "a@x.com", "pw123")

	w := do(t, r, http.MethodPost, "/api/login", "", gin.H{"email": "a@x.com", "password": "pw123"})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
	var body authBody
	decode(t, w, &body)
	if body.Token == "" || body.User.Email != "a@x.com" {
		t.Fatalf("body = %+v", body)
	}

	// Wrong password and unknown email get the same answer, no token.
	for _, payload := range []gin.H{
		{"email": "a@x.com", "password": "wrong"},
		{"email": "nobody@x.com", "password": "pw123"},
	} {
		w := do(t, r, http.MethodPost, "/api/login", "", payload)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("payload %v: status = %d, want 400", payload, w.Code)
		}
		var errBody map[string]string
		decode(t, w, &errBody)
		if errBody["error"] != "invalid credentials" {
			t.Fatalf("error = %q", errBody["error"])
		}
	}
}

func TestMe(t *testing.T) {
	r := newTestRouter()
	alice := register(t, r, "Alice", "a@x.com", "pw123")

	w := do(t, r, http.MethodGet, "/api/me", alice.Token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var body struct {
		User struct {
			ID    int64  `json:"id"`
			Name  string `json:"name"`
			Email string `json:"email"`
		} `json:"user"`
	}
	decode(t, w, &body)
	if body.User.ID != alice.User.ID || body.User.Email != "a@x.com" {
		t.Fatalf("user = %+v", body.User)
	}

	w = do(t, r, http.MethodGet, "/api/me", "", nil)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("no token: status = %d, want 401", w.Code)
	}
}

func TestResetPasswordFlow(t *testing.T) {
	r := newTestRouter()
	register(t, r, "Alice", "a@x.com", "old-pw")

	w := do(t, r, http.MethodPost, "/api/reset-password", "", gin.H{"email": "a@x.com", "newPassword": "new-pw"})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
	var body map[string]bool
	decode(t, w, &body)
	if !body["success"] {
		t.Fatal("expected success:true")
	}

	if w := do(t, r, http.MethodPost, "/api/login", "", gin.H{"email": "a@x.com", "password": "old-pw"}); w.Code != http.StatusBadRequest {
		t.Fatalf("old password: status = %d, want 400", w.Code)
	}
	if w := do(t, r, http.MethodPost, "/api/login", "", gin.H{"email": "a@x.com", "password": "new-pw"}); w.Code != http.StatusOK {
		t.Fatalf("new password: status = %d, want 200", w.Code)
	}

	if w := do(t, r, http.MethodPost, "/api/reset-password", "", gin.H{"email": "nobody@x.com", "newPassword": "x"}); w.Code != http.StatusBadRequest {
		t.Fatalf("unknown email: status = %d, want 400", w.Code)
	}
}

func TestProfileRenameKeepsTodoSnapshot(t *testing.T) {
	r := newTestRouter()
	alice := register(t, r, "Alice", "a@x.com", "pw123")

	if w := do(t, r, http.MethodPost, "/api/todos", alice.Token, gin.H{"text": "before rename"}); w.Code != http.StatusOK {
		t.Fatalf("create: status = %d", w.Code)
	}

	w := do(t, r, http.MethodPut, "/api/me", alice.Token, gin.H{"name": "Alicia"})
	if w.Code != http.StatusOK {
		t.Fatalf("rename: status = %d, body %s", w.Code, w.Body.String())
	}
	var renamed struct {
		User struct {
			Name string `json:"name"`
		} `json:"user"`
	}
	decode(t, w, &renamed)
	if renamed.User.Name != "Alicia" {
		t.Fatalf("name = %q, want Alicia", renamed.User.Name)
	}

	// The old todo keeps its creation-time name snapshot.
	w = do(t, r, http.MethodGet, "/api/todos", alice.Token, nil)
	var list todosBody
	decode(t, w, &list)
	if len(list.Todos) != 1 || list.Todos[0].UserName != "Alice" {
		t.Fatalf("todos = %+v, want the Alice snapshot", list.Todos)
	}
}

func TestLogoutRevokesToken(t *testing.T) {
	r := newTestRouter()
	alice := register(t, r, "Alice", "a@x.com", "pw123")

	if w := do(t, r, http.MethodGet, "/api/todos", alice.Token, nil); w.Code != http.StatusOK {
		t.Fatalf("before logout: status = %d", w.Code)
	}
	if w := do(t, r, http.MethodPost, "/api/logout", alice.Token, nil); w.Code != http.StatusNoContent {
		t.Fatalf("logout: status = %d, want 204", w.Code)
	}
	if w := do(t, r, http.MethodGet, "/api/todos", alice.Token, nil); w.Code != http.StatusUnauthorized {
		t.Fatalf("after logout: status = %d, want 401", w.Code)
	}
}

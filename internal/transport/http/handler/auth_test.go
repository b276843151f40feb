package handler_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/nurkanat-dev/lifelog/internal/domain"
	"github.com/nurkanat-dev/lifelog/internal/transport/http/handler"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// fakeAuthUsecase implements the unexported authUsecaser interface via
// method matching.
type fakeAuthUsecase struct {
	register func(ctx context.Context, username, email, password string) (*domain.User, string, error)
	login    func(ctx context.Context, email, password string) (*domain.User, string, error)
}

func (f *fakeAuthUsecase) Register(ctx context.Context, username, email, password string) (*domain.User, string, error) {
	return f.register(ctx, username, email, password)
}

func (f *fakeAuthUsecase) Login(ctx context.Context, email, password string) (*domain.User, string, error) {
	return f.login(ctx, email, password)
}

func newAuthEngine(uc *fakeAuthUsecase) *gin.Engine {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	h := handler.NewAuthHandler(uc, logger)

	r := gin.New()
	r.POST("/api/auth/register", h.Register)
	r.POST("/api/auth/login", h.Login)
	return r
}

func postJSON(t *testing.T, r *gin.Engine, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func decodeMessage(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body %q: %v", w.Body.String(), err)
	}
	return body.Message
}

// ---- Register ----

func TestRegister_Success_Returns201WithTokenAndUser(t *testing.T) {
	uc := &fakeAuthUsecase{
		register: func(_ context.Context, username, email, _ string) (*domain.User, string, error) {
			return &domain.User{ID: "user-1", Username: username, Email: email}, "signed-token", nil
		},
	}

	w := postJSON(t, newAuthEngine(uc), "/api/auth/register",
		`{"username":"aidana","email":"a@test.local","password":"secret1"}`)

	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201", w.Code)
	}

	var resp struct {
		Token string `json:"token"`
		User  struct {
			Username string `json:"username"`
			Email    string `json:"email"`
		} `json:"user"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Token != "signed-token" {
		t.Errorf("token = %q", resp.Token)
	}
	if resp.User.Username != "aidana" || resp.User.Email != "a@test.local" {
		t.Errorf("user = %+v", resp.User)
	}
	if strings.Contains(w.Body.String(), "password") {
		t.Error("response leaks password field")
	}
}

func TestRegister_InvalidJSON_Returns400(t *testing.T) {
	uc := &fakeAuthUsecase{}
	w := postJSON(t, newAuthEngine(uc), "/api/auth/register", `{bad json}`)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestRegister_ShortPassword_Returns400(t *testing.T) {
	uc := &fakeAuthUsecase{
		register: func(context.Context, string, string, string) (*domain.User, string, error) {
			return nil, "", domain.ErrPasswordTooShort
		},
	}

	w := postJSON(t, newAuthEngine(uc), "/api/auth/register",
		`{"username":"aidana","email":"a@test.local","password":"abc"}`)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
	if got := decodeMessage(t, w); got != "Password should be at least 6 characters long" {
		t.Errorf("message = %q", got)
	}
}

func TestRegister_DuplicateEmail_Returns400(t *testing.T) {
	uc := &fakeAuthUsecase{
		register: func(context.Context, string, string, string) (*domain.User, string, error) {
			return nil, "", domain.ErrDuplicateEmail
		},
	}

	w := postJSON(t, newAuthEngine(uc), "/api/auth/register",
		`{"username":"aidana","email":"a@test.local","password":"secret1"}`)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
	if got := decodeMessage(t, w); got != "Email already exists" {
		t.Errorf("message = %q", got)
	}
}

func TestRegister_UnexpectedError_Returns500WithoutDetail(t *testing.T) {
	uc := &fakeAuthUsecase{
		register: func(context.Context, string, string, string) (*domain.User, string, error) {
			return nil, "", errors.New("pq: connection reset")
		},
	}

	w := postJSON(t, newAuthEngine(uc), "/api/auth/register",
		`{"username":"aidana","email":"a@test.local","password":"secret1"}`)

	if w.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", w.Code)
	}
	if strings.Contains(w.Body.String(), "connection reset") {
		t.Error("response leaks internal error detail")
	}
}

// ---- Login ----

func TestLogin_Success_Returns200(t *testing.T) {
	uc := &fakeAuthUsecase{
		login: func(_ context.Context, email, _ string) (*domain.User, string, error) {
			return &domain.User{ID: "user-1", Username: "aidana", Email: email}, "signed-token", nil
		},
	}

	w := postJSON(t, newAuthEngine(uc), "/api/auth/login",
		`{"email":"a@test.local","password":"secret1"}`)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"signed-token"`) {
		t.Errorf("body = %q, want token", w.Body.String())
	}
}

func TestLogin_UnknownUser_Returns400(t *testing.T) {
	uc := &fakeAuthUsecase{
		login: func(context.Context, string, string) (*domain.User, string, error) {
			return nil, "", domain.ErrUserNotFound
		},
	}

	w := postJSON(t, newAuthEngine(uc), "/api/auth/login",
		`{"email":"ghost@test.local","password":"secret1"}`)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
	if got := decodeMessage(t, w); got != "User does not exist" {
		t.Errorf("message = %q", got)
	}
}

func TestLogin_WrongPassword_Returns400(t *testing.T) {
	uc := &fakeAuthUsecase{
		login: func(context.Context, string, string) (*domain.User, string, error) {
			return nil, "", domain.ErrWrongPassword
		},
	}

	w := postJSON(t, newAuthEngine(uc), "/api/auth/login",
		`{"email":"a@test.local","password":"nope"}`)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
	if got := decodeMessage(t, w); got != "Incorrect Password!" {
		t.Errorf("message = %q", got)
	}
}

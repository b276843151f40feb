package api_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/nurkanat-dev/lifelog/internal/client/api"
)

func TestLogin_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/auth/login" || r.Method != http.MethodPost {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		var body map[string]string
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if body["email"] != "a@test.local" || body["password"] != "secret1" {
			t.Errorf("body = %v", body)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"token": "signed-token",
			"user":  map[string]string{"username": "aidana", "email": "a@test.local"},
		})
	}))
	defer srv.Close()

	session, err := api.NewHTTPClient(srv.URL).Login(context.Background(), "a@test.local", "secret1")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if session.Token != "signed-token" || session.User.Username != "aidana" {
		t.Errorf("session = %+v", session)
	}
}

func TestLogin_ServerMessage_SurfacesAsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]string{"message": "Incorrect Password!"})
	}))
	defer srv.Close()

	_, err := api.NewHTTPClient(srv.URL).Login(context.Background(), "a@test.local", "nope")
	if err == nil {
		t.Fatal("expected error")
	}
	var apiErr *api.Error
	if !errors.As(err, &apiErr) {
		t.Fatalf("err = %T, want *api.Error", err)
	}
	if apiErr.Status != http.StatusBadRequest || apiErr.Message != "Incorrect Password!" {
		t.Errorf("apiErr = %+v", apiErr)
	}
}

func TestRegister_SendsAllFields(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		_ = json.NewDecoder(r.Body).Decode(&body)
		if body["username"] != "aidana" || body["email"] != "a@test.local" || body["password"] != "secret1" {
			t.Errorf("body = %v", body)
		}
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"token": "t",
			"user":  map[string]string{"username": "aidana", "email": "a@test.local"},
		})
	}))
	defer srv.Close()

	if _, err := api.NewHTTPClient(srv.URL).Register(context.Background(), "aidana", "a@test.local", "secret1"); err != nil {
		t.Fatalf("register: %v", err)
	}
}

func TestListPosts_AttachesBearerToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer my-token" {
			t.Errorf("authorization = %q", got)
		}
		_ = json.NewEncoder(w).Encode([]map[string]any{
			{"id": "post-1", "title": "Morning run", "image": "http://images.test/a.jpg",
				"user": map[string]string{"username": "aidana"}},
		})
	}))
	defer srv.Close()

	posts, err := api.NewHTTPClient(srv.URL).ListPosts(context.Background(), "my-token")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(posts) != 1 || posts[0].Title != "Morning run" {
		t.Errorf("posts = %+v", posts)
	}
}

func TestCreatePost_RejectedWithoutAuth(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]string{"message": "Authorization Denied, Token Missing"})
	}))
	defer srv.Close()

	err := api.NewHTTPClient(srv.URL).CreatePost(context.Background(), "", "t", "c", "eA==")
	var apiErr *api.Error
	if !errors.As(err, &apiErr) || apiErr.Status != http.StatusUnauthorized {
		t.Errorf("err = %v, want 401 api error", err)
	}
}

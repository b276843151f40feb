package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// User is the public profile subset the backend returns.
type User struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}

// Session is the {token, user} pair issued on register/login.
type Session struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// Post is a feed entry with its author embedded.
type Post struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Image     string    `json:"image"`
	User      User      `json:"user"`
	CreatedAt time.Time `json:"createdAt"`
}

// Error is a non-2xx response carrying the server's message string.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("server returned status %d", e.Status)
}

// Client talks to the lifelog REST API.
type Client interface {
	Register(ctx context.Context, username, email, password string) (*Session, error)
	Login(ctx context.Context, email, password string) (*Session, error)
	CreatePost(ctx context.Context, token, title, content, image string) error
	ListPosts(ctx context.Context, token string) ([]Post, error)
}

type httpClient struct {
	baseURL string
	client  *http.Client
}

// NewHTTPClient creates an API client for the given base URL,
// e.g. "http://localhost:8080".
func NewHTTPClient(baseURL string) Client {
	return &httpClient{
		baseURL: baseURL,
		client:  &http.Client{},
	}
}

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (c *httpClient) Register(ctx context.Context, username, email, password string) (*Session, error) {
	var session Session
	err := c.do(ctx, http.MethodPost, "/api/auth/register", "",
		registerRequest{Username: username, Email: email, Password: password},
		http.StatusCreated, &session)
	if err != nil {
		return nil, err
	}
	return &session, nil
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (c *httpClient) Login(ctx context.Context, email, password string) (*Session, error) {
	var session Session
	err := c.do(ctx, http.MethodPost, "/api/auth/login", "",
		loginRequest{Email: email, Password: password},
		http.StatusOK, &session)
	if err != nil {
		return nil, err
	}
	return &session, nil
}

type createPostRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
	Image   string `json:"image"`
}

func (c *httpClient) CreatePost(ctx context.Context, token, title, content, image string) error {
	return c.do(ctx, http.MethodPost, "/api/posts", token,
		createPostRequest{Title: title, Content: content, Image: image},
		http.StatusCreated, nil)
}

func (c *httpClient) ListPosts(ctx context.Context, token string) ([]Post, error) {
	var posts []Post
	if err := c.do(ctx, http.MethodGet, "/api/posts", token, nil, http.StatusOK, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// do performs one JSON round trip. A response with the wrong status is
// decoded as {message} and returned as *Error.
func (c *httpClient) do(ctx context.Context, method, path, token string, payload any, wantStatus int, out any) error {
	endpoint, err := url.JoinPath(c.baseURL, path)
	if err != nil {
		return fmt.Errorf("join url: %w", err)
	}

	var body *bytes.Buffer
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewBuffer(data)
	} else {
		body = &bytes.Buffer{}
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("perform request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != wantStatus {
		var errBody struct {
			Message string `json:"message"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&errBody)
		return &Error{Status: resp.StatusCode, Message: errBody.Message}
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

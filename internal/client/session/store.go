package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/gofrs/flock"
	"github.com/nurkanat-dev/lifelog/internal/client/api"
)

// fileName is the single durable-storage entry holding the serialized
// {user, token} session.
const fileName = "session.json"

// persisted is the on-disk session shape.
type persisted struct {
	User  *api.User `json:"user"`
	Token string    `json:"token"`
}

// Result is what every store action returns to the UI: no errors escape,
// call sites only branch on Success and show Message.
type Result struct {
	Success bool
	Message string
}

// Store is the single source of truth for the authenticated identity on
// the client. user and token are set and cleared together — never one
// without the other.
type Store struct {
	client api.Client
	path   string
	lock   *flock.Flock

	mu       sync.Mutex
	user     *api.User
	token    string
	loading  bool
	hydrated bool
}

// New creates a store persisting to the given file. An empty path uses
// the default location under the user config dir.
func New(client api.Client, path string) (*Store, error) {
	if path == "" {
		dir, err := os.UserConfigDir()
		if err != nil {
			return nil, fmt.Errorf("resolve config dir: %w", err)
		}
		path = filepath.Join(dir, "lifelog", fileName)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("create session dir: %w", err)
	}

	return &Store{
		client: client,
		path:   path,
		lock:   flock.New(path + ".lock"),
	}, nil
}

// Hydrate loads any previously persisted session. It is called once at
// process start; whether or not prior state existed, Hydrated() reports
// true afterwards and never flips back.
func (s *Store) Hydrate(_ context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.hydrated {
		return
	}
	defer func() { s.hydrated = true }()

	data, err := s.readFile()
	if err != nil {
		// Missing or unreadable state means signed out, not a failure.
		return
	}

	var p persisted
	if err := json.Unmarshal(data, &p); err != nil {
		return
	}
	// Both or neither: a token without a user (or vice versa) is invalid.
	if p.User == nil || p.Token == "" {
		return
	}
	s.user = p.User
	s.token = p.Token
}

// Register calls the backend and, on success, atomically installs and
// persists {user, token}.
func (s *Store) Register(ctx context.Context, username, email, password string) Result {
	s.setLoading(true)
	defer s.setLoading(false)

	session, err := s.client.Register(ctx, username, email, password)
	if err != nil {
		return failure(err, "Registration failed")
	}
	return s.install(session)
}

// Login calls the backend and, on success, atomically installs and
// persists {user, token}.
func (s *Store) Login(ctx context.Context, email, password string) Result {
	s.setLoading(true)
	defer s.setLoading(false)

	session, err := s.client.Login(ctx, email, password)
	if err != nil {
		return failure(err, "Login failed")
	}
	return s.install(session)
}

// Logout clears {user, token} together and persists the cleared state.
// It does not contact the server; the token stays valid until expiry.
func (s *Store) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.user = nil
	s.token = ""
	_ = s.writeFile(persisted{})
}

func (s *Store) User() *api.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.user
}

func (s *Store) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

// SignedIn reports whether both user and token are present.
func (s *Store) SignedIn() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.user != nil && s.token != ""
}

func (s *Store) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// Hydrated reports whether the initial load from disk has completed.
// UI must not route to the auth or main stack before this is true.
func (s *Store) Hydrated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hydrated
}

func (s *Store) install(session *api.Session) Result {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.user = &session.User
	s.token = session.Token
	if err := s.writeFile(persisted{User: s.user, Token: s.token}); err != nil {
		// The in-memory session is still valid for this process.
		return Result{Success: true, Message: "Session will not survive a restart: " + err.Error()}
	}
	return Result{Success: true}
}

func (s *Store) setLoading(v bool) {
	s.mu.Lock()
	s.loading = v
	s.mu.Unlock()
}

func (s *Store) readFile() ([]byte, error) {
	if err := s.lock.Lock(); err != nil {
		return nil, err
	}
	defer func() { _ = s.lock.Unlock() }()
	return os.ReadFile(s.path)
}

// writeFile persists atomically: write a temp file, then rename over the
// old state while holding the flock.
func (s *Store) writeFile(p persisted) error {
	data, err := json.Marshal(p)
	if err != nil {
		return err
	}

	if err := s.lock.Lock(); err != nil {
		return err
	}
	defer func() { _ = s.lock.Unlock() }()

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, s.path)
}

// failure turns any client error into a Result, preferring the server's
// own message when one exists.
func failure(err error, fallback string) Result {
	var apiErr *api.Error
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return Result{Success: false, Message: apiErr.Message}
	}
	return Result{Success: false, Message: fallback}
}

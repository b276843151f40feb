package session_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/nurkanat-dev/lifelog/internal/client/api"
	"github.com/nurkanat-dev/lifelog/internal/client/session"
)

type fakeClient struct {
	session *api.Session
	err     error
}

func (f *fakeClient) Register(context.Context, string, string, string) (*api.Session, error) {
	return f.session, f.err
}

func (f *fakeClient) Login(context.Context, string, string) (*api.Session, error) {
	return f.session, f.err
}

func (f *fakeClient) CreatePost(context.Context, string, string, string, string) error {
	return f.err
}

func (f *fakeClient) ListPosts(context.Context, string) ([]api.Post, error) {
	return nil, f.err
}

func sessionPath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "session.json")
}

func newStore(t *testing.T, client api.Client, path string) *session.Store {
	t.Helper()
	s, err := session.New(client, path)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	return s
}

func validSession() *api.Session {
	return &api.Session{
		Token: "signed-token",
		User:  api.User{Username: "aidana", Email: "a@test.local"},
	}
}

func TestHydrate_NoPriorState_SignedOut(t *testing.T) {
	s := newStore(t, &fakeClient{}, sessionPath(t))

	if s.Hydrated() {
		t.Error("hydrated before Hydrate")
	}
	s.Hydrate(context.Background())
	if !s.Hydrated() {
		t.Error("not hydrated after Hydrate")
	}
	if s.SignedIn() {
		t.Error("signed in with no prior state")
	}
}

func TestLogin_InstallsAndPersists(t *testing.T) {
	path := sessionPath(t)
	s := newStore(t, &fakeClient{session: validSession()}, path)

	res := s.Login(context.Background(), "a@test.local", "secret1")
	if !res.Success {
		t.Fatalf("login failed: %s", res.Message)
	}
	if !s.SignedIn() || s.Token() != "signed-token" || s.User().Username != "aidana" {
		t.Errorf("state after login: user=%+v token=%q", s.User(), s.Token())
	}

	// A fresh store hydrating from the same file sees the session.
	restarted := newStore(t, &fakeClient{}, path)
	restarted.Hydrate(context.Background())
	if !restarted.SignedIn() {
		t.Error("persisted session did not survive a restart")
	}
	if restarted.User().Email != "a@test.local" {
		t.Errorf("restored user = %+v", restarted.User())
	}
}

func TestLogin_Failure_DoesNotMutateState(t *testing.T) {
	s := newStore(t, &fakeClient{err: &api.Error{Status: 400, Message: "Incorrect Password!"}}, sessionPath(t))

	res := s.Login(context.Background(), "a@test.local", "nope")
	if res.Success {
		t.Fatal("login succeeded against failing client")
	}
	if res.Message != "Incorrect Password!" {
		t.Errorf("message = %q, want server message", res.Message)
	}
	if s.SignedIn() || s.Token() != "" || s.User() != nil {
		t.Error("failed login mutated state")
	}
}

func TestLogin_NetworkError_GenericMessage(t *testing.T) {
	s := newStore(t, &fakeClient{err: errors.New("dial tcp: connection refused")}, sessionPath(t))

	res := s.Login(context.Background(), "a@test.local", "secret1")
	if res.Success {
		t.Fatal("login succeeded")
	}
	if res.Message != "Login failed" {
		t.Errorf("message = %q, want generic fallback", res.Message)
	}
}

func TestRegister_InstallsSession(t *testing.T) {
	s := newStore(t, &fakeClient{session: validSession()}, sessionPath(t))

	res := s.Register(context.Background(), "aidana", "a@test.local", "secret1")
	if !res.Success {
		t.Fatalf("register failed: %s", res.Message)
	}
	if !s.SignedIn() {
		t.Error("not signed in after register")
	}
}

func TestLogout_ClearsBothAndPersists(t *testing.T) {
	path := sessionPath(t)
	s := newStore(t, &fakeClient{session: validSession()}, path)

	if res := s.Login(context.Background(), "a@test.local", "secret1"); !res.Success {
		t.Fatalf("login: %s", res.Message)
	}
	s.Logout()

	if s.SignedIn() || s.User() != nil || s.Token() != "" {
		t.Error("logout left state behind")
	}

	// A subsequent hydration read returns no session.
	restarted := newStore(t, &fakeClient{}, path)
	restarted.Hydrate(context.Background())
	if restarted.SignedIn() {
		t.Error("logout did not persist the cleared state")
	}
}

func TestHydrate_RunsExactlyOnce(t *testing.T) {
	path := sessionPath(t)
	s := newStore(t, &fakeClient{session: validSession()}, path)

	s.Hydrate(context.Background())
	if !s.Hydrated() {
		t.Fatal("not hydrated")
	}

	// Later writes to the file must not be picked up by a second call.
	other := newStore(t, &fakeClient{session: validSession()}, path)
	if res := other.Login(context.Background(), "a@test.local", "secret1"); !res.Success {
		t.Fatalf("login: %s", res.Message)
	}

	s.Hydrate(context.Background())
	if s.SignedIn() {
		t.Error("second Hydrate re-read the file")
	}
	if !s.Hydrated() {
		t.Error("hydrated flag flipped back")
	}
}

func TestHydrate_PartialState_TreatedAsSignedOut(t *testing.T) {
	path := sessionPath(t)
	// Token with no user is an invalid state and must not be restored.
	if err := os.WriteFile(path, []byte(`{"user":null,"token":"orphan-token"}`), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	s := newStore(t, &fakeClient{}, path)
	s.Hydrate(context.Background())

	if s.SignedIn() || s.Token() != "" {
		t.Error("partial session was restored")
	}
	if !s.Hydrated() {
		t.Error("hydration did not complete")
	}
}

func TestHydrate_CorruptFile_TreatedAsSignedOut(t *testing.T) {
	path := sessionPath(t)
	if err := os.WriteFile(path, []byte("{not json"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	s := newStore(t, &fakeClient{}, path)
	s.Hydrate(context.Background())

	if s.SignedIn() {
		t.Error("corrupt session restored")
	}
	if !s.Hydrated() {
		t.Error("hydration did not complete")
	}
}

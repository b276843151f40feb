package tui

import (
	"context"
	"encoding/base64"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/nurkanat-dev/lifelog/internal/client/api"
	"github.com/nurkanat-dev/lifelog/internal/client/session"
)

// Messages delivered back into Update by the commands below.

type hydratedMsg struct{}

type authDoneMsg struct {
	result session.Result
}

type feedLoadedMsg struct {
	posts []api.Post
	err   error
}

type postDoneMsg struct {
	err error
}

func hydrateCmd(store *session.Store) tea.Cmd {
	return func() tea.Msg {
		store.Hydrate(context.Background())
		return hydratedMsg{}
	}
}

func loginCmd(store *session.Store, email, password string) tea.Cmd {
	return func() tea.Msg {
		return authDoneMsg{result: store.Login(context.Background(), email, password)}
	}
}

func registerCmd(store *session.Store, username, email, password string) tea.Cmd {
	return func() tea.Msg {
		return authDoneMsg{result: store.Register(context.Background(), username, email, password)}
	}
}

func loadFeedCmd(client api.Client, token string) tea.Cmd {
	return func() tea.Msg {
		posts, err := client.ListPosts(context.Background(), token)
		return feedLoadedMsg{posts: posts, err: err}
	}
}

// createPostCmd reads the image file, wraps it in a data URI, and sends
// the post.
func createPostCmd(client api.Client, token, title, content, imagePath string) tea.Cmd {
	return func() tea.Msg {
		data, err := os.ReadFile(imagePath)
		if err != nil {
			return postDoneMsg{err: err}
		}
		uri := "data:" + mimeFor(imagePath) + ";base64," + base64.StdEncoding.EncodeToString(data)
		return postDoneMsg{err: client.CreatePost(context.Background(), token, title, content, uri)}
	}
}

func mimeFor(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return "image/png"
	case ".gif":
		return "image/gif"
	case ".webp":
		return "image/webp"
	default:
		return "image/jpeg"
	}
}

package tui

import (
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/nurkanat-dev/lifelog/internal/client/api"
	"github.com/nurkanat-dev/lifelog/internal/client/session"
)

type screen int

const (
	// screenLoading gates everything until the session store is hydrated.
	screenLoading screen = iota
	screenLogin
	screenRegister
	screenFeed
	screenCompose
	screenProfile
)

// Model is the root Bubble Tea model. The session store decides which
// stack (auth or main) is reachable; no auth-gated screen renders before
// hydration completes.
type Model struct {
	session *session.Store
	client  api.Client

	screen  screen
	spinner spinner.Model
	inputs  []textinput.Model
	focus   int

	posts   []api.Post
	errMsg  string
	infoMsg string
	busy    bool
}

func New(store *session.Store, client api.Client) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	return Model{
		session: store,
		client:  client,
		screen:  screenLoading,
		spinner: sp,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, hydrateCmd(m.session))
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		return m.updateKey(msg)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case hydratedMsg:
		// Route exactly once hydration settles: main stack when both
		// user and token survived, auth stack otherwise.
		if m.session.SignedIn() {
			return m.toFeed()
		}
		return m.toLogin(), nil

	case authDoneMsg:
		m.busy = false
		if !msg.result.Success {
			m.errMsg = msg.result.Message
			return m, nil
		}
		return m.toFeed()

	case feedLoadedMsg:
		m.busy = false
		if msg.err != nil {
			m.errMsg = msg.err.Error()
			return m, nil
		}
		m.posts = msg.posts
		return m, nil

	case postDoneMsg:
		m.busy = false
		if msg.err != nil {
			m.errMsg = msg.err.Error()
			return m, nil
		}
		m.infoMsg = "Post created"
		return m.toFeed()
	}

	return m, nil
}

func (m Model) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.busy || m.screen == screenLoading {
		return m, nil
	}

	switch m.screen {
	case screenLogin:
		return m.updateLogin(msg)
	case screenRegister:
		return m.updateRegister(msg)
	case screenFeed:
		return m.updateFeed(msg)
	case screenCompose:
		return m.updateCompose(msg)
	case screenProfile:
		return m.updateProfile(msg)
	}
	return m, nil
}

func (m Model) updateLogin(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlN:
		return m.toRegister(), nil
	case tea.KeyTab, tea.KeyShiftTab, tea.KeyUp, tea.KeyDown:
		return m.cycleFocus(msg.Type == tea.KeyShiftTab || msg.Type == tea.KeyUp), nil
	case tea.KeyEnter:
		email, password := m.inputs[0].Value(), m.inputs[1].Value()
		m.errMsg = ""
		m.busy = true
		return m, loginCmd(m.session, email, password)
	}
	return m.updateInputs(msg)
}

func (m Model) updateRegister(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		return m.toLogin(), nil
	case tea.KeyTab, tea.KeyShiftTab, tea.KeyUp, tea.KeyDown:
		return m.cycleFocus(msg.Type == tea.KeyShiftTab || msg.Type == tea.KeyUp), nil
	case tea.KeyEnter:
		username, email, password := m.inputs[0].Value(), m.inputs[1].Value(), m.inputs[2].Value()
		m.errMsg = ""
		m.busy = true
		return m, registerCmd(m.session, username, email, password)
	}
	return m.updateInputs(msg)
}

func (m Model) updateFeed(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "n":
		return m.toCompose(), nil
	case "p":
		m.screen = screenProfile
		m.errMsg = ""
		return m, nil
	case "r":
		m.busy = true
		return m, loadFeedCmd(m.client, m.session.Token())
	case "q":
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) updateCompose(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		return m.toFeedNoReload(), nil
	case tea.KeyTab, tea.KeyShiftTab, tea.KeyUp, tea.KeyDown:
		return m.cycleFocus(msg.Type == tea.KeyShiftTab || msg.Type == tea.KeyUp), nil
	case tea.KeyEnter:
		title, content, imagePath := m.inputs[0].Value(), m.inputs[1].Value(), m.inputs[2].Value()
		m.errMsg = ""
		m.busy = true
		return m, createPostCmd(m.client, m.session.Token(), title, content, imagePath)
	}
	return m.updateInputs(msg)
}

func (m Model) updateProfile(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "l":
		// Logout clears the persisted session; the token itself stays
		// valid server-side until it expires.
		m.session.Logout()
		m.posts = nil
		return m.toLogin(), nil
	case "esc", "q":
		return m.toFeedNoReload(), nil
	}
	return m, nil
}

// Screen transitions

func (m Model) toLogin() Model {
	m.screen = screenLogin
	m.errMsg = ""
	m.infoMsg = ""
	m.inputs = newInputs("email", "password")
	m.inputs[1].EchoMode = textinput.EchoPassword
	m.focus = 0
	m.inputs[0].Focus()
	return m
}

func (m Model) toRegister() Model {
	m.screen = screenRegister
	m.errMsg = ""
	m.inputs = newInputs("username", "email", "password")
	m.inputs[2].EchoMode = textinput.EchoPassword
	m.focus = 0
	m.inputs[0].Focus()
	return m
}

func (m Model) toCompose() Model {
	m.screen = screenCompose
	m.errMsg = ""
	m.infoMsg = ""
	m.inputs = newInputs("title", "content", "image path")
	m.focus = 0
	m.inputs[0].Focus()
	return m
}

func (m Model) toFeed() (tea.Model, tea.Cmd) {
	m.screen = screenFeed
	m.errMsg = ""
	m.inputs = nil
	m.busy = true
	return m, loadFeedCmd(m.client, m.session.Token())
}

func (m Model) toFeedNoReload() Model {
	m.screen = screenFeed
	m.errMsg = ""
	m.inputs = nil
	return m
}

// Input helpers

func newInputs(placeholders ...string) []textinput.Model {
	inputs := make([]textinput.Model, len(placeholders))
	for i, p := range placeholders {
		in := textinput.New()
		in.Placeholder = p
		in.CharLimit = 256
		inputs[i] = in
	}
	return inputs
}

func (m Model) cycleFocus(backwards bool) Model {
	if len(m.inputs) == 0 {
		return m
	}
	m.inputs[m.focus].Blur()
	if backwards {
		m.focus = (m.focus - 1 + len(m.inputs)) % len(m.inputs)
	} else {
		m.focus = (m.focus + 1) % len(m.inputs)
	}
	m.inputs[m.focus].Focus()
	return m
}

func (m Model) updateInputs(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if len(m.inputs) == 0 {
		return m, nil
	}
	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212")).MarginBottom(1)
	errStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	infoStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	helpStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).MarginTop(1)
	cardStyle  = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("238")).
			Padding(0, 1).
			MarginBottom(1)
	authorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("111"))
)

func (m Model) View() string {
	switch m.screen {
	case screenLoading:
		return m.spinner.View() + " loading session..."
	case screenLogin:
		return m.viewForm("lifelog — sign in",
			"enter: sign in · ctrl+n: create account · ctrl+c: quit")
	case screenRegister:
		return m.viewForm("lifelog — create account",
			"enter: register · esc: back to sign in · ctrl+c: quit")
	case screenFeed:
		return m.viewFeed()
	case screenCompose:
		return m.viewForm("new post",
			"enter: publish · esc: cancel · ctrl+c: quit")
	case screenProfile:
		return m.viewProfile()
	}
	return ""
}

func (m Model) viewForm(title, help string) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(title) + "\n")
	for _, in := range m.inputs {
		b.WriteString(in.View() + "\n")
	}
	if m.busy {
		b.WriteString("\n" + m.spinner.View() + " working...\n")
	}
	if m.errMsg != "" {
		b.WriteString("\n" + errStyle.Render(m.errMsg) + "\n")
	}
	b.WriteString(helpStyle.Render(help))
	return b.String()
}

func (m Model) viewFeed() string {
	var b strings.Builder
	user := m.session.User()
	heading := "your feed"
	if user != nil {
		heading = fmt.Sprintf("%s's feed", user.Username)
	}
	b.WriteString(titleStyle.Render(heading) + "\n")

	if m.busy {
		b.WriteString(m.spinner.View() + " loading...\n")
	} else if len(m.posts) == 0 {
		b.WriteString("nothing here yet — press n to log something\n")
	}
	for _, p := range m.posts {
		card := fmt.Sprintf("%s\n%s\n%s · %s",
			lipgloss.NewStyle().Bold(true).Render(p.Title),
			p.Content,
			authorStyle.Render("@"+p.User.Username),
			p.CreatedAt.Format("Jan 2 15:04"),
		)
		b.WriteString(cardStyle.Render(card) + "\n")
	}

	if m.infoMsg != "" {
		b.WriteString(infoStyle.Render(m.infoMsg) + "\n")
	}
	if m.errMsg != "" {
		b.WriteString(errStyle.Render(m.errMsg) + "\n")
	}
	b.WriteString(helpStyle.Render("n: new post · r: refresh · p: profile · q: quit"))
	return b.String()
}

func (m Model) viewProfile() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("profile") + "\n")
	if user := m.session.User(); user != nil {
		b.WriteString(fmt.Sprintf("username: %s\nemail:    %s\n", user.Username, user.Email))
	}
	b.WriteString(helpStyle.Render("l: log out · esc: back"))
	return b.String()
}

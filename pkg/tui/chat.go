package tui

import (
	"context"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vmmuthu31/ChainWatchdog-sub000/pkg/agent"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
	userStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	botStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("249"))
	dimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	inputStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
)

const analyzeTimeout = 60 * time.Second

type replyMsg string

// model is the chat loop state: the transcript, the line being typed,
// and whether an analysis is in flight.
type model struct {
	agent   *agent.Agent
	lines   []string
	input   string
	waiting bool
}

// Run starts the interactive chat session and blocks until the user quits.
func Run(a *agent.Agent) error {
	m := model{
		agent: a,
		lines: []string{
			titleStyle.Render("🐾 ChainWatchdog"),
			dimStyle.Render("Paste an address to scan it. Ctrl+C or 'quit' to exit."),
		},
	}
	_, err := tea.NewProgram(&m).Run()
	return err
}

func (m *model) Init() tea.Cmd { return nil }

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case replyMsg:
		m.waiting = false
		m.lines = append(m.lines, botStyle.Render(string(msg)), "")
		return m, nil

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyEnter:
			return m.submit()
		case tea.KeyBackspace:
			if len(m.input) > 0 {
				m.input = m.input[:len(m.input)-1]
			}
		case tea.KeySpace:
			m.input += " "
		case tea.KeyRunes:
			m.input += string(msg.Runes)
		}
	}
	return m, nil
}

func (m *model) submit() (tea.Model, tea.Cmd) {
	text := strings.TrimSpace(m.input)
	m.input = ""
	if text == "" || m.waiting {
		return m, nil
	}
	if text == "quit" || text == "exit" {
		return m, tea.Quit
	}

	m.lines = append(m.lines, userStyle.Render("you> ")+text)
	m.waiting = true

	a := m.agent
	return m, func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), analyzeTimeout)
		defer cancel()
		return replyMsg(a.Respond(ctx, text))
	}
}

func (m *model) View() string {
	var b strings.Builder
	for _, line := range m.lines {
		b.WriteString(line)
		b.WriteByte('\n')
	}
	if m.waiting {
		b.WriteString(dimStyle.Render("scanning..."))
		b.WriteByte('\n')
	}
	b.WriteString(inputStyle.Render("> " + m.input + "▌"))
	return b.String()
}

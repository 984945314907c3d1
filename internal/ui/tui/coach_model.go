package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// Session is the slice of the coach engine the TUI drives.
type Session interface {
	Submit(answer string) error
	Skip() error
	Hint() (string, error)
	DontRemember() error
	RemindLater(note string) error
	Running() bool
}

// SessionReadyMsg hands the running session to the model.
type SessionReadyMsg struct {
	Session Session
}

// SessionDoneMsg signals that the session finished and the program should
// wind down after a final render.
type SessionDoneMsg struct{}

// CoachModel is the interactive session view: the base display model plus
// a text input that feeds answers and /commands to the engine.
type CoachModel struct {
	Model
	input   textinput.Model
	session Session
	done    bool
}

func NewCoachModel(title string, totalSteps int) CoachModel {
	ti := textinput.New()
	ti.Placeholder = "Type your answer, or /skip /hint /forgot /remind <when>"
	ti.Focus()
	return CoachModel{
		Model: NewModel(title, totalSteps),
		input: ti,
	}
}

func (m CoachModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m CoachModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case SessionReadyMsg:
		m.session = msg.Session
		return m, nil

	case SessionDoneMsg:
		m.done = true
		return m, tea.Quit

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			m.Quitting = true
			return m, tea.Quit
		}
		if msg.Type == tea.KeyEnter && m.session != nil {
			m.handleInput(strings.TrimSpace(m.input.Value()))
			m.input.Reset()
			return m, nil
		}
	}

	base, cmd := m.Model.Update(msg)
	m.Model = base.(Model)

	var inputCmd tea.Cmd
	m.input, inputCmd = m.input.Update(msg)
	return m, tea.Batch(cmd, inputCmd)
}

func (m *CoachModel) handleInput(line string) {
	switch {
	case line == "":
		_ = m.session.Submit("")
	case line == "/skip":
		_ = m.session.Skip()
	case line == "/hint":
		if hint, err := m.session.Hint(); err == nil {
			msg := fmt.Sprintf("Hint: %s…", hint)
			if hint == m.PhotoTitle {
				msg = "Hint: " + hint
			}
			m.appendLog(msg)
		}
	case line == "/forgot":
		_ = m.session.DontRemember()
		m.appendLog("No problem. /remind <when> saves a reminder for later.")
	case strings.HasPrefix(line, "/remind "):
		if err := m.session.RemindLater(strings.TrimPrefix(line, "/remind ")); err == nil {
			m.appendLog("Reminder saved.")
		}
	default:
		_ = m.session.Submit(line)
	}
}

func (m *CoachModel) appendLog(s string) {
	m.Log = append(m.Log, s)
	m.Viewport.SetContent(strings.Join(m.Log, "\n"))
	m.Viewport.GotoBottom()
}

func (m CoachModel) View() string {
	view := m.Model.View()
	if m.done {
		return view + "\n  Session complete — see you next time.\n"
	}
	return view + "\n" + m.input.View() + "\n"
}

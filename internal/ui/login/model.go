package login

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/homereno/renoterm/internal/theme"
)

// SubmitMsg is dispatched when the user submits their credentials.
type SubmitMsg struct {
	Username string
	Password string
	Remember bool
	Register bool
}

// CancelMsg is dispatched when the user aborts the login form.
type CancelMsg struct{}

// formBindings holds form field values on the heap so that huh's Value()
// pointers remain valid across Bubble Tea model copies.
type formBindings struct {
	username string
	password string
	remember bool
	register bool
}

// Model is the Bubble Tea model for the login form.
type Model struct {
	form       *huh.Form
	fb         *formBindings
	errText    string
	noticeText string
	width      int
	height     int
}

// New creates a new login form model.
func New(width, height int) Model {
	return Model{
		fb:     &formBindings{remember: true},
		width:  width,
		height: height,
	}
}

// Start initializes the form, optionally pre-filling the username. Any
// banner set via SetError or SetNotice survives the restart so the user
// sees why the form came back.
func (m *Model) Start(username string) tea.Cmd {
	m.fb.username = username
	m.fb.password = ""
	m.fb.register = false
	m.form = m.buildForm()
	return m.form.Init()
}

// SetError shows an error line above the form, e.g. after a rejected login.
func (m *Model) SetError(text string) {
	m.errText = text
	m.noticeText = ""
}

// SetNotice shows a confirmation line above the form, e.g. after a
// successful registration.
func (m *Model) SetNotice(text string) {
	m.noticeText = text
	m.errText = ""
}

// Update handles messages for the login form.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if m.form == nil {
		return m, nil
	}

	mdl, cmd := m.form.Update(msg)
	if f, ok := mdl.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		return m, func() tea.Msg {
			return SubmitMsg{
				Username: strings.TrimSpace(m.fb.username),
				Password: m.fb.password,
				Remember: m.fb.remember,
				Register: m.fb.register,
			}
		}
	}
	if m.form.State == huh.StateAborted {
		return m, func() tea.Msg { return CancelMsg{} }
	}

	return m, cmd
}

// View renders the login form.
func (m Model) View() string {
	if m.form == nil {
		return ""
	}

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorWhite).
		MarginBottom(1)

	sections := []string{titleStyle.Render("Sign in to HomeReno")}
	if m.errText != "" {
		sections = append(sections, theme.ErrorStyle.Render(m.errText))
	}
	if m.noticeText != "" {
		sections = append(sections, theme.SuccessStyle.Render(m.noticeText))
	}
	sections = append(sections, m.form.View())

	content := lipgloss.JoinVertical(lipgloss.Left, sections...)

	return lipgloss.NewStyle().
		Padding(1, 2).
		Render(content)
}

// SetSize updates the form dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m *Model) buildForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Username").
				Value(&m.fb.username).
				Validate(validateRequired("Username")),
			huh.NewInput().
				Title("Password").
				EchoMode(huh.EchoModePassword).
				Value(&m.fb.password).
				Validate(validateRequired("Password")),
			huh.NewConfirm().
				Title("Remember me").
				Value(&m.fb.remember),
			huh.NewConfirm().
				Title("Create a new account?").
				Value(&m.fb.register),
		),
	).WithWidth(m.formWidth())
}

func (m Model) formWidth() int {
	w := m.width - 4
	if w < 40 {
		w = 40
	}
	if w > 80 {
		w = 80
	}
	return w
}

func validateRequired(fieldName string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", fieldName)
		}
		return nil
	}
}

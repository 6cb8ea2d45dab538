package app

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/homereno/renoterm/internal/api"
	"github.com/homereno/renoterm/internal/contractor"
	"github.com/homereno/renoterm/internal/credential"
	"github.com/homereno/renoterm/internal/geocode"
	"github.com/homereno/renoterm/internal/model"
	"github.com/homereno/renoterm/internal/session"
	"github.com/homereno/renoterm/internal/store"
	appsync "github.com/homereno/renoterm/internal/sync"
	"github.com/homereno/renoterm/internal/ui"
	helpview "github.com/homereno/renoterm/internal/ui/help"
	"github.com/homereno/renoterm/internal/ui/login"
	"github.com/homereno/renoterm/internal/ui/projectdetail"
	"github.com/homereno/renoterm/internal/ui/projectform"
	"github.com/homereno/renoterm/internal/ui/projectlist"
)

// Keyring keys for the remembered session.
const (
	credToken    = "api-token"
	credUsername = "username"
)

// requestTimeout bounds the one-off API calls issued by the root model.
const requestTimeout = 30 * time.Second

// ViewState represents the current active view in the application.
type ViewState int

const (
	ViewLogin ViewState = iota
	ViewList
	ViewDetail
	ViewCreate
	ViewHelp
)

// loginResultMsg carries the outcome of a login attempt.
type loginResultMsg struct {
	resp     *api.LoginResponse
	err      error
	remember bool
	username string
}

// registerResultMsg carries the outcome of an account registration.
type registerResultMsg struct {
	resp     *api.RegisterResponse
	err      error
	username string
}

// cachedDataMsg carries the locally cached projects and roster shown
// before the first refresh lands.
type cachedDataMsg struct {
	projects    []model.Project
	contractors []model.Contractor
}

// projectLoadedMsg carries a freshly fetched project for the detail view.
type projectLoadedMsg struct {
	project *model.Project
	err     error
}

// mutationDoneMsg reports a create or delete finishing.
type mutationDoneMsg struct {
	label string
	err   error
}

// Model is the root Bubble Tea model that manages view routing, layout,
// and the shared session.
type Model struct {
	currentView  ViewState
	previousView ViewState
	layout       ui.Layout
	keys         *KeyMap

	client    *api.Client
	store     *store.SQLiteStore
	refresher *appsync.Refresher
	session   *session.ProjectSession

	loginView  login.Model
	listView   projectlist.Model
	detailView projectdetail.Model
	formView   projectform.Model
	helpView   helpview.Model

	ready         bool
	statusMessage string
}

// New creates the root application model.
func New(cfg *model.AppConfig, client *api.Client, geocoder *geocode.Client, s *store.SQLiteStore) Model {
	keys := DefaultKeyMap()
	resolver := contractor.NewResolver(nil)
	sess := session.New(resolver)

	interval := time.Duration(cfg.RefreshIntervalSec) * time.Second
	refresher := appsync.New(client, s, interval)

	return Model{
		currentView: ViewLogin,
		keys:        keys,
		client:      client,
		store:       s,
		refresher:   refresher,
		session:     sess,
		loginView:   login.New(80, 24),
		listView:    projectlist.New(keys, resolver, 80, 24),
		detailView:  projectdetail.New(client, geocoder, sess, resolver, keys, 80, 24),
		formView:    projectform.New(resolver, 80, 24),
		helpView:    helpview.New(keys, 80, 24),
	}
}

// Init restores a remembered session from the keyring when one exists,
// otherwise it opens the login form.
func (m Model) Init() tea.Cmd {
	if token, err := credential.Get(credToken); err == nil && token != "" {
		m.client.SetToken(token)
		return tea.Batch(m.loadCached(), m.refresher.Start())
	}

	username, _ := credential.Get(credUsername)
	return m.loginView.Start(username)
}

// Update handles messages and dispatches to the active view.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.layout = ui.NewLayout(msg.Width, msg.Height)
		m.ready = true
		w := m.layout.ContentWidth()
		h := m.layout.ContentHeight()
		m.loginView.SetSize(w, h)
		m.listView.SetSize(w, h)
		m.detailView.SetSize(w, h)
		m.formView.SetSize(w, h)
		m.helpView.SetSize(w, h)
		// Forward to the active view so huh forms can lay out.
		return m.updateActiveView(msg)

	case login.SubmitMsg:
		if msg.Register {
			return m, m.doRegister(msg)
		}
		return m, m.doLogin(msg)

	case login.CancelMsg:
		return m, tea.Quit

	case loginResultMsg:
		if msg.err != nil {
			m.loginView.SetError(loginErrorText(msg.err))
			return m, m.loginView.Start(msg.username)
		}
		if msg.remember {
			_ = credential.Set(credToken, msg.resp.Token)
			_ = credential.Set(credUsername, msg.username)
		}
		m.currentView = ViewList
		m.statusMessage = ""
		return m, tea.Batch(m.loadCached(), m.refresher.Start())

	case registerResultMsg:
		if msg.err != nil {
			m.loginView.SetError(registerErrorText(msg.err))
			return m, m.loginView.Start(msg.username)
		}
		if msg.resp.Pending() {
			m.loginView.SetNotice("Account created. An administrator must approve it before you can sign in.")
		} else {
			m.loginView.SetNotice("Account created. You can sign in now.")
		}
		return m, m.loginView.Start(msg.username)

	case cachedDataMsg:
		m.listView.SetRoster(msg.contractors)
		m.session.SetRoster(msg.contractors)
		m.formView.SetRoster(msg.contractors)
		cmd := m.listView.SetProjects(msg.projects)
		if m.currentView == ViewLogin {
			m.currentView = ViewList
		}
		return m, cmd

	case appsync.RefreshResultMsg:
		waitCmd := m.refresher.WaitForNextResult()
		if msg.AuthError != nil {
			m.currentView = ViewLogin
			m.loginView.SetError(msg.AuthError.Message)
			_ = credential.Delete(credToken)
			username, _ := credential.Get(credUsername)
			return m, tea.Batch(waitCmd, m.loginView.Start(username))
		}
		if msg.Error != nil {
			m.statusMessage = "refresh failed: " + msg.Error.Error()
			return m, waitCmd
		}
		m.statusMessage = ""
		if m.currentView == ViewLogin {
			// A restored token passed its first refresh.
			m.currentView = ViewList
		}
		m.listView.SetRoster(msg.Contractors)
		m.session.SetRoster(msg.Contractors)
		m.formView.SetRoster(msg.Contractors)
		cmd := m.listView.SetProjects(msg.Projects)
		return m, tea.Batch(waitCmd, cmd)

	case projectlist.SelectedProjectMsg:
		return m, m.loadProject(msg.ProjectID)

	case projectlist.NewProjectMsg:
		m.previousView = m.currentView
		m.currentView = ViewCreate
		return m, m.formView.Start()

	case projectlist.DeleteProjectMsg:
		return m, m.deleteProject(msg.ProjectID, msg.Name)

	case projectLoadedMsg:
		if msg.err != nil {
			m.statusMessage = "loading project failed: " + msg.err.Error()
			return m, nil
		}
		m.previousView = m.currentView
		m.currentView = ViewDetail
		return m, m.detailView.Open(*msg.project)

	case projectform.CreatedMsg:
		m.currentView = ViewList
		return m, m.createProject(msg.Input)

	case projectform.CancelMsg:
		m.currentView = ViewList
		return m, nil

	case mutationDoneMsg:
		if msg.err != nil {
			m.statusMessage = msg.label + " failed: " + msg.err.Error()
			return m, nil
		}
		m.statusMessage = msg.label
		return m, m.refresher.Refresh()

	case projectdetail.BackMsg:
		m.currentView = ViewList
		return m, m.refresher.Refresh()

	case projectdetail.SavedMsg:
		// Keep the cached list in step with the confirmed save.
		return m, m.refresher.Refresh()

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			m.refresher.Stop()
			return m, tea.Quit

		case "q":
			if m.currentView == ViewList {
				m.refresher.Stop()
				return m, tea.Quit
			}

		case "?":
			if m.currentView == ViewHelp {
				m.currentView = m.previousView
				return m, nil
			}
			if m.currentView == ViewList || m.currentView == ViewDetail {
				m.previousView = m.currentView
				m.currentView = ViewHelp
				return m, nil
			}

		case "esc":
			if m.currentView == ViewHelp {
				m.currentView = m.previousView
				return m, nil
			}

		case "r":
			if m.currentView == ViewList {
				return m, m.refresher.Refresh()
			}
		}
	}

	return m.updateActiveView(msg)
}

// updateActiveView dispatches the message to the currently active view.
func (m Model) updateActiveView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch m.currentView {
	case ViewLogin:
		m.loginView, cmd = m.loginView.Update(msg)
	case ViewList:
		m.listView, cmd = m.listView.Update(msg)
	case ViewDetail:
		m.detailView, cmd = m.detailView.Update(msg)
	case ViewCreate:
		m.formView, cmd = m.formView.Update(msg)
	case ViewHelp:
		m.helpView, cmd = m.helpView.Update(msg)
	}

	return m, cmd
}

// View renders the full terminal UI using the layout manager.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	header := m.layout.RenderHeader("HomeReno", m.syncStatus())
	content := m.renderContent()
	statusBar := m.layout.RenderStatusBar(m.statusLine())

	return m.layout.RenderWithFrame(header, content, statusBar)
}

// renderContent returns the rendered string for the current active view.
func (m Model) renderContent() string {
	switch m.currentView {
	case ViewLogin:
		return m.loginView.View()
	case ViewList:
		return m.listView.View()
	case ViewDetail:
		return m.detailView.View()
	case ViewCreate:
		return m.formView.View()
	case ViewHelp:
		return m.helpView.View()
	default:
		return ""
	}
}

// syncStatus returns a short string describing the refresher state.
func (m Model) syncStatus() string {
	if m.currentView == ViewLogin {
		return "signed out"
	}
	status := m.refresher.Status()
	switch status.State {
	case appsync.Running:
		return "refreshing"
	case appsync.Error:
		return "⚠ unreachable"
	default:
		if status.LastSync.IsZero() {
			return "idle"
		}
		return "synced " + status.LastSync.Format("15:04")
	}
}

// statusLine returns the bottom bar: a pending message when one exists,
// keyboard hints otherwise.
func (m Model) statusLine() string {
	if m.statusMessage != "" {
		return m.statusMessage
	}

	switch m.currentView {
	case ViewLogin:
		return "enter submit | esc quit"
	case ViewDetail:
		if m.detailView.TaskFocused() {
			return "space cycle status | x remove | tab back to fields | esc back"
		}
		if m.detailView.ImageFocused() {
			return "x remove image | i back to fields | esc back"
		}
		return "n/a/b/w/p/e/c edit | f finish | tab tasks | i images | u add image | esc back"
	case ViewCreate:
		return "enter submit | esc cancel"
	case ViewHelp:
		return "? close help | esc back"
	default:
		return "q quit | ? help | n new | x delete | r refresh | enter open"
	}
}

// doLogin performs the credential exchange.
func (m Model) doLogin(msg login.SubmitMsg) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		resp, err := client.Login(ctx, msg.Username, msg.Password)
		return loginResultMsg{
			resp:     resp,
			err:      err,
			remember: msg.Remember,
			username: msg.Username,
		}
	}
}

// doRegister creates a new account and reports whether it still awaits
// administrator approval.
func (m Model) doRegister(msg login.SubmitMsg) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		resp, err := client.Register(ctx, msg.Username, msg.Password)
		return registerResultMsg{resp: resp, err: err, username: msg.Username}
	}
}

// loadCached reads the last fetched projects and roster from the local
// cache so the list renders before the first refresh completes.
func (m Model) loadCached() tea.Cmd {
	s := m.store
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		projects, err := s.GetProjects(ctx)
		if err != nil {
			return cachedDataMsg{}
		}
		contractors, _ := s.GetContractors(ctx)
		return cachedDataMsg{projects: projects, contractors: contractors}
	}
}

// loadProject fetches the full project for the detail view. The cache is
// only a render shortcut; edits always start from a server snapshot.
func (m Model) loadProject(id string) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		p, err := client.GetProject(ctx, id)
		return projectLoadedMsg{project: p, err: err}
	}
}

func (m Model) createProject(input api.CreateProjectInput) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		_, err := client.CreateProject(ctx, input)
		return mutationDoneMsg{label: fmt.Sprintf("created %q", input.Name), err: err}
	}
}

func (m Model) deleteProject(id, name string) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		err := client.DeleteProject(ctx, id)
		return mutationDoneMsg{label: fmt.Sprintf("deleted %q", name), err: err}
	}
}

// loginErrorText maps login failures to a short message for the form.
func loginErrorText(err error) string {
	if api.IsAuthError(err) {
		return "Invalid username or password."
	}
	return "Login failed: " + err.Error()
}

// registerErrorText maps registration failures to a short message for
// the form. The server answers 409 when the username is taken.
func registerErrorText(err error) string {
	if api.IsConflict(err) {
		return "That username is already taken."
	}
	return "Registration failed: " + err.Error()
}

package projectdetail

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/homereno/renoterm/internal/api"
	"github.com/homereno/renoterm/internal/contractor"
	"github.com/homereno/renoterm/internal/geocode"
	"github.com/homereno/renoterm/internal/keys"
	"github.com/homereno/renoterm/internal/model"
	"github.com/homereno/renoterm/internal/session"
	"github.com/homereno/renoterm/internal/theme"
)

// BackMsg signals the parent to navigate back to the list view.
type BackMsg struct{}

// SavedMsg tells the parent a field save landed, so it can refresh the
// cached project list.
type SavedMsg struct {
	Field session.Field
}

// saveResultMsg carries the outcome of one field save.
type saveResultMsg struct {
	field    session.Field
	snapshot *model.Project
	err      error
}

// tasksLoadedMsg carries the project's task list.
type tasksLoadedMsg struct {
	tasks []model.Task
	err   error
}

// imagesLoadedMsg carries the project's image list.
type imagesLoadedMsg struct {
	images []model.ProjectImage
	err    error
}

// contractorFetchedMsg carries a contractor fetched by id because the
// roster could not resolve the project's reference.
type contractorFetchedMsg struct {
	contractor *model.Contractor
	err        error
}

// geocodeDoneMsg carries an address lookup result, tagged with its
// session token.
type geocodeDoneMsg struct {
	token   string
	address string
	result  *geocode.Result
}

// requestTimeout bounds a single save or lookup issued from this view.
const requestTimeout = 30 * time.Second

// mode tracks what the keyboard is currently driving.
type mode int

const (
	modeView mode = iota
	modeEdit
	modePickContractor
	modeTasks
	modeNewTask
	modeImages
	modeNewImage
)

// Model is the project detail view component.
type Model struct {
	client   *api.Client
	geocoder *geocode.Client
	session  *session.ProjectSession
	resolver *contractor.Resolver
	keys     *keys.KeyMap
	viewport viewport.Model

	mode       mode
	editField  session.Field
	input      textinput.Model
	pickIndex  int
	taskIndex  int
	images     []model.ProjectImage
	imageIndex int
	errText    string

	width  int
	height int
}

// New creates a new detail view model.
func New(client *api.Client, geocoder *geocode.Client, sess *session.ProjectSession, res *contractor.Resolver, k *keys.KeyMap, width, height int) Model {
	vp := viewport.New(width, height-2)
	vp.Style = lipgloss.NewStyle()

	in := textinput.New()
	in.Prompt = "> "
	in.Width = width - 8

	return Model{
		client:   client,
		geocoder: geocoder,
		session:  sess,
		resolver: res,
		keys:     k,
		viewport: vp,
		input:    in,
		width:    width,
		height:   height,
	}
}

// Open loads a project into the session and starts loading its tasks
// and images. When the roster cannot name the assigned contractor but
// the reference carries an id, the contractor is fetched directly.
func (m *Model) Open(p model.Project) tea.Cmd {
	m.session.Load(p)
	m.mode = modeView
	m.editField = ""
	m.taskIndex = 0
	m.images = nil
	m.imageIndex = 0
	m.errText = ""
	m.refresh()

	cmds := []tea.Cmd{m.loadTasks(), m.loadImages()}
	if _, ok := m.session.ContractorName(); !ok {
		if id, ok := m.resolver.ResolveID(m.session.Project().Contractor); ok {
			cmds = append(cmds, m.fetchContractor(id))
		}
	}
	return tea.Batch(cmds...)
}

// Update handles messages for the detail view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case saveResultMsg:
		if msg.err != nil {
			m.session.ApplySaveError(msg.field, msg.err)
			m.errText = msg.err.Error()
			m.refresh()
			return m, nil
		}
		if msg.snapshot != nil {
			m.session.ApplySave(msg.field, *msg.snapshot)
		}
		m.errText = ""
		m.refresh()
		field := msg.field
		return m, func() tea.Msg { return SavedMsg{Field: field} }

	case tasksLoadedMsg:
		if msg.err == nil {
			m.session.SetTasks(msg.tasks)
		}
		if m.taskIndex >= len(msg.tasks) {
			m.taskIndex = 0
		}
		m.refresh()
		return m, nil

	case imagesLoadedMsg:
		if msg.err == nil {
			m.images = msg.images
		}
		if m.imageIndex >= len(m.images) {
			m.imageIndex = 0
		}
		m.refresh()
		return m, nil

	case contractorFetchedMsg:
		if msg.err == nil && msg.contractor != nil {
			m.session.SetRoster(append(m.session.Roster(), *msg.contractor))
			m.refresh()
		}
		return m, nil

	case geocodeDoneMsg:
		// A newer lookup supersedes this one; drop the stale result.
		if !m.session.AcceptGeocode(msg.token) {
			return m, nil
		}
		var coords *api.Coordinates
		if msg.result != nil {
			coords = &api.Coordinates{
				Latitude:  msg.result.Latitude,
				Longitude: msg.result.Longitude,
			}
		}
		return m, m.saveAddress(msg.address, coords)

	case tea.KeyMsg:
		switch m.mode {
		case modeEdit, modeNewTask, modeNewImage:
			return m.handleInputKeys(msg)
		case modePickContractor:
			return m.handlePickKeys(msg)
		case modeTasks:
			return m.handleTaskKeys(msg)
		case modeImages:
			return m.handleImageKeys(msg)
		default:
			return m.handleViewKeys(msg)
		}
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// handleViewKeys processes keys in plain viewing mode.
func (m Model) handleViewKeys(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back):
		return m, func() tea.Msg { return BackMsg{} }

	case key.Matches(msg, m.keys.EditName):
		return m.startEdit(session.FieldName, m.session.Project().Name), nil

	case key.Matches(msg, m.keys.EditAddress):
		return m.startEdit(session.FieldAddress, m.session.Project().Address), nil

	case key.Matches(msg, m.keys.EditBudget):
		return m.startEdit(session.FieldBudget, fmt.Sprintf("%g", m.session.Project().Budget)), nil

	case key.Matches(msg, m.keys.EditWorkers):
		return m.startEdit(session.FieldWorkers, strconv.Itoa(m.session.Project().Workers)), nil

	case key.Matches(msg, m.keys.EditProgress):
		return m.startEdit(session.FieldProgress, strconv.Itoa(m.session.DisplayProgress())), nil

	case key.Matches(msg, m.keys.EditEta):
		return m.startEdit(session.FieldEta, fmt.Sprintf("%g", m.session.Project().EtaWeeks)), nil

	case key.Matches(msg, m.keys.EditContractor):
		m.mode = modePickContractor
		m.pickIndex = 0
		m.refresh()
		return m, nil

	case key.Matches(msg, m.keys.Finish):
		if err := m.session.Finish(); err != nil {
			m.errText = err.Error()
			m.refresh()
			return m, nil
		}
		return m, m.saveFinished()

	case key.Matches(msg, m.keys.Tasks):
		if len(m.session.Tasks()) > 0 {
			m.mode = modeTasks
			m.refresh()
		}
		return m, nil

	case key.Matches(msg, m.keys.Images):
		if len(m.images) > 0 {
			m.mode = modeImages
			m.refresh()
		}
		return m, nil

	case key.Matches(msg, m.keys.AddImage):
		m.mode = modeNewImage
		m.input.SetValue("")
		m.input.Placeholder = "image URL"
		m.refresh()
		return m, m.input.Focus()

	case key.Matches(msg, m.keys.Refresh):
		return m, tea.Batch(m.loadTasks(), m.loadImages())
	}

	if msg.String() == "+" {
		m.mode = modeNewTask
		m.input.SetValue("")
		m.input.Placeholder = "task name"
		m.refresh()
		return m, m.input.Focus()
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// handleInputKeys processes keys while a single-line editor is open.
func (m Model) handleInputKeys(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		value := m.input.Value()
		m.input.Blur()
		if m.mode == modeNewTask {
			m.mode = modeView
			m.refresh()
			return m, m.addTask(value)
		}
		if m.mode == modeNewImage {
			m.mode = modeView
			m.refresh()
			return m, m.addImage(value)
		}
		field := m.editField
		m.mode = modeView
		m.editField = ""
		cmd := m.dispatchEdit(field, value)
		m.refresh()
		return m, cmd

	case "esc":
		m.input.Blur()
		m.mode = modeView
		m.editField = ""
		m.refresh()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// handlePickKeys processes keys while the contractor picker is open.
func (m Model) handlePickKeys(msg tea.KeyMsg) (Model, tea.Cmd) {
	roster := m.session.Roster()

	switch {
	case key.Matches(msg, m.keys.Down):
		if m.pickIndex < len(roster) {
			m.pickIndex++
		}
		m.refresh()
		return m, nil

	case key.Matches(msg, m.keys.Up):
		if m.pickIndex > 0 {
			m.pickIndex--
		}
		m.refresh()
		return m, nil

	case key.Matches(msg, m.keys.Select):
		m.mode = modeView
		// Index 0 is the "None" entry.
		if m.pickIndex == 0 {
			if err := m.session.RemoveContractor(); err != nil {
				m.errText = err.Error()
				m.refresh()
				return m, nil
			}
			m.refresh()
			return m, m.removeContractor()
		}
		c := roster[m.pickIndex-1]
		if err := m.session.AssignContractor(c.ID); err != nil {
			m.errText = err.Error()
			m.refresh()
			return m, nil
		}
		m.refresh()
		return m, m.assignContractor(c.ID)

	case key.Matches(msg, m.keys.Back):
		m.mode = modeView
		m.refresh()
		return m, nil
	}

	return m, nil
}

// handleTaskKeys processes keys while the task panel has focus.
func (m Model) handleTaskKeys(msg tea.KeyMsg) (Model, tea.Cmd) {
	tasks := m.session.Tasks()

	switch {
	case key.Matches(msg, m.keys.Down):
		if m.taskIndex < len(tasks)-1 {
			m.taskIndex++
		}
		m.refresh()
		return m, nil

	case key.Matches(msg, m.keys.Up):
		if m.taskIndex > 0 {
			m.taskIndex--
		}
		m.refresh()
		return m, nil

	case key.Matches(msg, m.keys.CycleTask):
		if m.taskIndex < len(tasks) {
			return m, m.cycleTask(tasks[m.taskIndex])
		}
		return m, nil

	case key.Matches(msg, m.keys.RemoveTask):
		if m.taskIndex < len(tasks) {
			return m, m.removeTask(tasks[m.taskIndex])
		}
		return m, nil

	case key.Matches(msg, m.keys.Back), key.Matches(msg, m.keys.Tasks):
		m.mode = modeView
		m.refresh()
		return m, nil
	}

	return m, nil
}

// handleImageKeys processes keys while the image panel has focus.
func (m Model) handleImageKeys(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Down):
		if m.imageIndex < len(m.images)-1 {
			m.imageIndex++
		}
		m.refresh()
		return m, nil

	case key.Matches(msg, m.keys.Up):
		if m.imageIndex > 0 {
			m.imageIndex--
		}
		m.refresh()
		return m, nil

	case key.Matches(msg, m.keys.RemoveImage):
		if m.imageIndex < len(m.images) {
			return m, m.deleteImage(m.images[m.imageIndex])
		}
		return m, nil

	case key.Matches(msg, m.keys.Back), key.Matches(msg, m.keys.Images):
		m.mode = modeView
		m.refresh()
		return m, nil
	}

	return m, nil
}

// startEdit opens the inline editor pre-filled with the current value.
func (m Model) startEdit(f session.Field, current string) Model {
	m.mode = modeEdit
	m.editField = f
	m.input.SetValue(current)
	m.input.Placeholder = ""
	m.input.CursorEnd()
	m.input.Focus()
	m.errText = ""
	m.refresh()
	return m
}

// dispatchEdit validates the typed value through the session and kicks
// off the matching save.
func (m *Model) dispatchEdit(f session.Field, raw string) tea.Cmd {
	switch f {
	case session.FieldName:
		name, err := m.session.EditName(raw)
		if err != nil {
			m.errText = err.Error()
			return nil
		}
		return m.saveName(name)

	case session.FieldAddress:
		address, err := m.session.EditAddress(raw)
		if err != nil {
			m.errText = err.Error()
			return nil
		}
		return m.geocodeThenSave(address)

	case session.FieldBudget:
		v, _ := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		budget, err := m.session.EditBudget(v)
		if err != nil {
			m.errText = err.Error()
			return nil
		}
		return m.saveBudget(budget)

	case session.FieldWorkers:
		v, _ := strconv.Atoi(strings.TrimSpace(raw))
		workers, err := m.session.EditWorkers(v)
		if err != nil {
			m.errText = err.Error()
			return nil
		}
		return m.saveWorkers(workers)

	case session.FieldProgress:
		v, _ := strconv.Atoi(strings.TrimSpace(raw))
		progress, err := m.session.EditProgress(v)
		if err != nil {
			m.errText = err.Error()
			return nil
		}
		return m.saveProgress(progress)

	case session.FieldEta:
		v, _ := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		weeks, err := m.session.EditEta(v)
		if err != nil {
			m.errText = err.Error()
			return nil
		}
		return m.saveEta(weeks)
	}
	return nil
}

// View renders the detail view.
func (m Model) View() string {
	if !m.session.Loaded() {
		emptyStyle := lipgloss.NewStyle().
			Width(m.width).
			Height(m.height).
			Align(lipgloss.Center, lipgloss.Center).
			Foreground(theme.ColorGray)
		return emptyStyle.Render("No project selected")
	}

	if m.mode == modeEdit || m.mode == modeNewTask || m.mode == modeNewImage {
		label := "New task"
		switch m.mode {
		case modeEdit:
			label = string(m.editField)
		case modeNewImage:
			label = "Image URL"
		}
		editor := lipgloss.NewStyle().
			Padding(0, 1).
			Render(fmt.Sprintf("%s: %s", label, m.input.View()))
		return lipgloss.JoinVertical(lipgloss.Left, editor, m.viewport.View())
	}

	return m.viewport.View()
}

// refresh re-renders the viewport content from the session state.
func (m *Model) refresh() {
	m.viewport.SetContent(m.renderContent())
}

// renderContent builds the full detail content string for the viewport.
func (m Model) renderContent() string {
	p := m.session.Project()
	var sections []string

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(theme.ColorWhite)
	title := titleStyle.Render(p.Name)
	if p.IsFinished() {
		title += "  " + theme.SuccessStyle.Render("FINISHED")
	}
	sections = append(sections, title, "")

	if m.errText != "" {
		sections = append(sections, theme.ErrorStyle.Render(m.errText), "")
	}

	sections = append(sections,
		m.fieldLine("n", "Name", p.Name, session.FieldName),
		m.fieldLine("a", "Address", addressLabel(p), session.FieldAddress),
		m.fieldLine("b", "Budget", fmt.Sprintf("$%.0f", p.Budget), session.FieldBudget),
		m.fieldLine("w", "Workers", strconv.Itoa(p.Workers), session.FieldWorkers),
		m.fieldLine("p", "Progress", fmt.Sprintf("%d%%", m.session.DisplayProgress()), session.FieldProgress),
		m.fieldLine("e", "ETA", m.etaLabel(p), session.FieldEta),
		m.fieldLine("c", "Contractor", m.contractorLabel(), session.FieldContractor),
	)

	sections = append(sections, "", m.renderTasks(), "", m.renderImages())

	if m.mode == modePickContractor {
		sections = append(sections, "", m.renderPicker())
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// fieldLine renders one labeled field with its save status marker.
func (m Model) fieldLine(hint, label, value string, f session.Field) string {
	keyStyle := lipgloss.NewStyle().Foreground(theme.ColorGray)
	labelStyle := lipgloss.NewStyle().Foreground(theme.ColorGray).Width(12)
	valStyle := lipgloss.NewStyle().Foreground(theme.ColorWhite)

	line := fmt.Sprintf(
		"%s %s %s",
		keyStyle.Render("["+hint+"]"),
		labelStyle.Render(label),
		valStyle.Render(value),
	)

	switch st := m.session.FieldStatus(f); st.State {
	case session.SaveInFlight:
		line += lipgloss.NewStyle().Foreground(theme.ColorYellow).Render("  saving…")
	case session.SaveFailed:
		line += theme.ErrorStyle.Render("  save failed")
	}
	return line
}

// etaLabel formats the remaining-days estimate.
func (m Model) etaLabel(p model.Project) string {
	if p.IsFinished() {
		return "done"
	}
	days, ok := m.session.EtaDays()
	if !ok {
		return "no estimate"
	}
	return fmt.Sprintf("~%d days (%g weeks planned)", days, p.EtaWeeks)
}

func (m Model) contractorLabel() string {
	name, ok := m.session.ContractorName()
	if !ok {
		return "none"
	}
	return name
}

func addressLabel(p model.Project) string {
	if p.Address == "" {
		return "none"
	}
	if p.HasCoordinates() {
		return fmt.Sprintf("%s (%.4f, %.4f)", p.Address, *p.Latitude, *p.Longitude)
	}
	return p.Address
}

// renderTasks draws the task panel with the completion summary.
func (m Model) renderTasks() string {
	headerStyle := lipgloss.NewStyle().Bold(true).Foreground(theme.ColorWhite)
	tasks := m.session.Tasks()

	percent := m.session.CompletionPercent()
	header := headerStyle.Render(fmt.Sprintf("Tasks (%d)", len(tasks))) +
		"  " + theme.ProgressStyle(percent).Render(fmt.Sprintf("%d%% complete", percent))
	if m.session.CanFinish() {
		header += "  " + theme.SuccessStyle.Render("[f] finish project")
	}

	lines := []string{header}
	for i, t := range tasks {
		badge := theme.StatusStyle(string(t.Status)).Render(string(t.Status))
		line := fmt.Sprintf("%s %s", badge, t.Name)
		if m.mode == modeTasks && i == m.taskIndex {
			line = theme.SelectedItemStyle.Render(line)
		} else {
			line = theme.ListItemStyle.Render(line)
		}
		lines = append(lines, line)
	}
	if len(tasks) == 0 {
		lines = append(lines, theme.HelpStyle.Render("  no tasks yet; press + to add one"))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

// renderImages draws the project image panel.
func (m Model) renderImages() string {
	headerStyle := lipgloss.NewStyle().Bold(true).Foreground(theme.ColorWhite)
	lines := []string{headerStyle.Render(fmt.Sprintf("Images (%d)", len(m.images)))}

	for i, img := range m.images {
		line := img.URL
		if img.Description != "" {
			line += "  " + theme.HelpStyle.Render(img.Description)
		}
		if m.mode == modeImages && i == m.imageIndex {
			line = theme.SelectedItemStyle.Render(line)
		} else {
			line = theme.ListItemStyle.Render(line)
		}
		lines = append(lines, line)
	}
	if len(m.images) == 0 {
		lines = append(lines, theme.HelpStyle.Render("  no images yet; press u to add one by URL"))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

// renderPicker draws the contractor picker overlay.
func (m Model) renderPicker() string {
	headerStyle := lipgloss.NewStyle().Bold(true).Foreground(theme.ColorWhite)
	lines := []string{headerStyle.Render("Pick a contractor")}

	entries := []string{"None"}
	for _, c := range m.session.Roster() {
		entries = append(entries, fmt.Sprintf("%s ($%.0f, %s)", c.FullName, c.Price, c.Expertise))
	}
	for i, e := range entries {
		if i == m.pickIndex {
			lines = append(lines, theme.SelectedItemStyle.Render(e))
		} else {
			lines = append(lines, theme.ListItemStyle.Render(e))
		}
	}

	return theme.BorderStyle.Padding(0, 1).Render(
		lipgloss.JoinVertical(lipgloss.Left, lines...),
	)
}

// SetSize updates the detail view dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.viewport.Width = width
	m.viewport.Height = height - 2
	m.input.Width = width - 8
}

// TaskFocused reports whether the task panel currently has focus.
func (m Model) TaskFocused() bool { return m.mode == modeTasks }

// ImageFocused reports whether the image panel currently has focus.
func (m Model) ImageFocused() bool { return m.mode == modeImages }

// commands

func (m Model) loadTasks() tea.Cmd {
	client := m.client
	projectID := m.session.Project().ID
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		tasks, err := client.ListTasksForProject(ctx, projectID)
		return tasksLoadedMsg{tasks: tasks, err: err}
	}
}

func (m Model) saveName(name string) tea.Cmd {
	return m.save(session.FieldName, func(ctx context.Context, id string) (*model.Project, error) {
		return m.client.UpdateName(ctx, id, name)
	})
}

// geocodeThenSave looks the address up first so the save can carry
// coordinates. Lookup misses and errors both fall back to saving the
// bare address.
func (m Model) geocodeThenSave(address string) tea.Cmd {
	token := m.session.BeginGeocode()
	geocoder := m.geocoder
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		result, err := geocoder.Geocode(ctx, address)
		if err != nil {
			result = nil
		}
		return geocodeDoneMsg{token: token, address: address, result: result}
	}
}

func (m Model) saveAddress(address string, coords *api.Coordinates) tea.Cmd {
	return m.save(session.FieldAddress, func(ctx context.Context, id string) (*model.Project, error) {
		return m.client.UpdateAddress(ctx, id, address, coords)
	})
}

func (m Model) saveBudget(budget float64) tea.Cmd {
	return m.save(session.FieldBudget, func(ctx context.Context, id string) (*model.Project, error) {
		return m.client.UpdateBudget(ctx, id, budget)
	})
}

func (m Model) saveWorkers(workers int) tea.Cmd {
	return m.save(session.FieldWorkers, func(ctx context.Context, id string) (*model.Project, error) {
		return m.client.UpdateWorkers(ctx, id, workers)
	})
}

func (m Model) saveProgress(progress int) tea.Cmd {
	return m.save(session.FieldProgress, func(ctx context.Context, id string) (*model.Project, error) {
		return m.client.UpdateProgress(ctx, id, progress)
	})
}

func (m Model) saveEta(weeks float64) tea.Cmd {
	return m.save(session.FieldEta, func(ctx context.Context, id string) (*model.Project, error) {
		return m.client.UpdateEta(ctx, id, weeks)
	})
}

func (m Model) saveFinished() tea.Cmd {
	return m.save(session.FieldFinished, func(ctx context.Context, id string) (*model.Project, error) {
		return m.client.UpdateFinished(ctx, id, true)
	})
}

func (m Model) assignContractor(contractorID string) tea.Cmd {
	return m.save(session.FieldContractor, func(ctx context.Context, id string) (*model.Project, error) {
		return m.client.AssignContractor(ctx, id, contractorID)
	})
}

func (m Model) removeContractor() tea.Cmd {
	return m.save(session.FieldContractor, func(ctx context.Context, id string) (*model.Project, error) {
		return m.client.RemoveContractor(ctx, id)
	})
}

// save wraps one field save in the request timeout and result message.
func (m Model) save(f session.Field, do func(ctx context.Context, id string) (*model.Project, error)) tea.Cmd {
	projectID := m.session.Project().ID
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		snapshot, err := do(ctx, projectID)
		return saveResultMsg{field: f, snapshot: snapshot, err: err}
	}
}

func (m Model) addTask(name string) tea.Cmd {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil
	}
	client := m.client
	projectID := m.session.Project().ID
	loadCmd := m.loadTasks()
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		task, err := client.CreateTask(ctx, model.Task{
			ProjectID: projectID,
			Name:      name,
			Status:    model.TaskNotStarted,
		})
		if err != nil {
			return tasksLoadedMsg{err: err}
		}
		if _, err := client.AddTask(ctx, projectID, *task); err != nil {
			return tasksLoadedMsg{err: err}
		}
		return loadCmd()
	}
}

// cycleTask advances a task to its next status. The task is re-fetched
// first so the cycle starts from the server's current status, not a
// stale list entry.
func (m Model) cycleTask(t model.Task) tea.Cmd {
	client := m.client
	loadCmd := m.loadTasks()
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		fresh, err := client.GetTask(ctx, t.ID)
		if err != nil {
			return tasksLoadedMsg{err: err}
		}
		fresh.Status = fresh.NextStatus()
		if _, err := client.UpdateTask(ctx, fresh.ID, *fresh); err != nil {
			return tasksLoadedMsg{err: err}
		}
		return loadCmd()
	}
}

func (m Model) loadImages() tea.Cmd {
	client := m.client
	projectID := m.session.Project().ID
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		images, err := client.ListProjectImages(ctx, projectID)
		return imagesLoadedMsg{images: images, err: err}
	}
}

func (m Model) addImage(url string) tea.Cmd {
	url = strings.TrimSpace(url)
	if url == "" {
		return nil
	}
	client := m.client
	projectID := m.session.Project().ID
	loadCmd := m.loadImages()
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		if _, err := client.CreateImageFromURL(ctx, projectID, url, ""); err != nil {
			return imagesLoadedMsg{err: err}
		}
		return loadCmd()
	}
}

func (m Model) deleteImage(img model.ProjectImage) tea.Cmd {
	client := m.client
	loadCmd := m.loadImages()
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		if err := client.DeleteImage(ctx, img.ID); err != nil {
			return imagesLoadedMsg{err: err}
		}
		return loadCmd()
	}
}

func (m Model) fetchContractor(id string) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		c, err := client.GetContractor(ctx, id)
		return contractorFetchedMsg{contractor: c, err: err}
	}
}

func (m Model) removeTask(t model.Task) tea.Cmd {
	client := m.client
	projectID := m.session.Project().ID
	loadCmd := m.loadTasks()
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		if err := client.RemoveTask(ctx, projectID, t.ID); err != nil {
			return tasksLoadedMsg{err: err}
		}
		if err := client.DeleteTask(ctx, t.ID); err != nil {
			return tasksLoadedMsg{err: err}
		}
		return loadCmd()
	}
}

package projectlist

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/homereno/renoterm/internal/contractor"
	"github.com/homereno/renoterm/internal/keys"
	"github.com/homereno/renoterm/internal/model"
	"github.com/homereno/renoterm/internal/theme"
)

// SelectedProjectMsg is sent when the user opens a project.
type SelectedProjectMsg struct {
	ProjectID string
}

// NewProjectMsg is sent when the user wants to create a project.
type NewProjectMsg struct{}

// DeleteProjectMsg is sent when the user asks to delete a project.
type DeleteProjectMsg struct {
	ProjectID string
	Name      string
}

// Model is the project list view component.
type Model struct {
	list     list.Model
	keys     *keys.KeyMap
	resolver *contractor.Resolver
	roster   []model.Contractor
	width    int
	height   int
}

// New creates a new project list model.
func New(k *keys.KeyMap, r *contractor.Resolver, width, height int) Model {
	l := list.New([]list.Item{}, ProjectDelegate{}, width, height-2)
	l.Title = "Projects"
	l.SetShowStatusBar(true)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)
	l.Styles.Title = theme.HeaderStyle

	return Model{
		list:     l,
		keys:     k,
		resolver: r,
		width:    width,
		height:   height,
	}
}

// SetProjects replaces the displayed projects.
func (m *Model) SetProjects(projects []model.Project) tea.Cmd {
	items := make([]list.Item, len(projects))
	for i, p := range projects {
		pi := ProjectItem{Project: p}
		if name, ok := m.resolver.ResolveName(p.Contractor, m.roster); ok {
			pi.ContractorName = name
		}
		if exp, ok := m.resolver.ResolveExpertise(p.Contractor, m.roster); ok {
			pi.Expertise = exp
		}
		items[i] = pi
	}
	return m.list.SetItems(items)
}

// SetRoster updates the contractor roster used for name resolution.
func (m *Model) SetRoster(roster []model.Contractor) {
	m.roster = roster
}

// SelectedProjectID returns the id of the highlighted project.
func (m Model) SelectedProjectID() (string, bool) {
	item, ok := m.list.SelectedItem().(ProjectItem)
	if !ok {
		return "", false
	}
	return item.Project.ID, true
}

// Init returns the initial command.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages for the project list view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, m.keys.Select):
			item, ok := m.list.SelectedItem().(ProjectItem)
			if !ok {
				return m, nil
			}
			return m, func() tea.Msg {
				return SelectedProjectMsg{ProjectID: item.Project.ID}
			}

		case key.Matches(msg, m.keys.New):
			return m, func() tea.Msg { return NewProjectMsg{} }

		case key.Matches(msg, m.keys.Delete):
			item, ok := m.list.SelectedItem().(ProjectItem)
			if !ok {
				return m, nil
			}
			return m, func() tea.Msg {
				return DeleteProjectMsg{
					ProjectID: item.Project.ID,
					Name:      item.Project.Name,
				}
			}
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// View renders the project list view.
func (m Model) View() string {
	if len(m.list.Items()) == 0 {
		return m.renderEmptyState()
	}
	return m.list.View()
}

func (m Model) renderEmptyState() string {
	style := lipgloss.NewStyle().
		Width(m.width).
		Height(m.height).
		Align(lipgloss.Center, lipgloss.Center).
		Foreground(theme.ColorGray)

	return style.Render("No projects yet.\n\nPress n to create one.")
}

// SetSize updates the list dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.list.SetSize(width, height-2)
}

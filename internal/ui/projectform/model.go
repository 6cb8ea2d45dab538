package projectform

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/homereno/renoterm/internal/api"
	"github.com/homereno/renoterm/internal/contractor"
	"github.com/homereno/renoterm/internal/model"
	"github.com/homereno/renoterm/internal/schedule"
	"github.com/homereno/renoterm/internal/theme"
)

// CreatedMsg is dispatched when the form is submitted with valid input.
type CreatedMsg struct {
	Input api.CreateProjectInput
}

// CancelMsg is dispatched when the user cancels the form.
type CancelMsg struct{}

// formBindings holds form field values on the heap so that huh's Value()
// pointers remain valid across Bubble Tea model copies.
type formBindings struct {
	name         string
	address      string
	budget       string
	etaWeeks     string
	contractorID string
}

// Model is the Bubble Tea model for the project creation form.
type Model struct {
	form     *huh.Form
	fb       *formBindings
	resolver *contractor.Resolver
	roster   []model.Contractor
	errText  string
	width    int
	height   int
}

// New creates a new project form model.
func New(r *contractor.Resolver, width, height int) Model {
	return Model{
		fb:       &formBindings{},
		resolver: r,
		width:    width,
		height:   height,
	}
}

// SetRoster sets the contractors offered by the form's selector.
func (m *Model) SetRoster(roster []model.Contractor) {
	m.roster = roster
}

// Start initializes the form for a new project.
func (m *Model) Start() tea.Cmd {
	m.fb.name = ""
	m.fb.address = ""
	m.fb.budget = ""
	m.fb.etaWeeks = ""
	m.fb.contractorID = ""
	m.errText = ""
	m.form = m.buildForm()
	return m.form.Init()
}

// Update handles messages for the project form.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if m.form == nil {
		return m, nil
	}

	mdl, cmd := m.form.Update(msg)
	if f, ok := mdl.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		return m.handleSubmit()
	}
	if m.form.State == huh.StateAborted {
		return m, func() tea.Msg { return CancelMsg{} }
	}

	return m, cmd
}

// handleSubmit assembles the create payload. The worker headcount is
// always derived from the budget; it only becomes editable once the
// project exists. Crews that blow the labor cap are rejected.
func (m Model) handleSubmit() (Model, tea.Cmd) {
	budget, _ := strconv.ParseFloat(strings.TrimSpace(m.fb.budget), 64)
	etaWeeks, _ := strconv.ParseFloat(strings.TrimSpace(m.fb.etaWeeks), 64)

	workers := schedule.AutoWorkers(budget)

	price := m.resolver.ResolvePrice(
		model.ContractorRef{ID: m.fb.contractorID}, m.roster,
	)
	if schedule.ViolatesLaborCap(workers, price, budget) {
		m.errText = schedule.LaborCapMessage(workers, price, budget)
		m.form = m.buildForm()
		return m, m.form.Init()
	}

	input := api.CreateProjectInput{
		Name:         strings.TrimSpace(m.fb.name),
		Address:      strings.TrimSpace(m.fb.address),
		Budget:       budget,
		EtaWeeks:     etaWeeks,
		Workers:      workers,
		ContractorID: m.fb.contractorID,
	}
	return m, func() tea.Msg { return CreatedMsg{Input: input} }
}

// View renders the project form.
func (m Model) View() string {
	if m.form == nil {
		return ""
	}

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorWhite).
		MarginBottom(1)

	sections := []string{titleStyle.Render("New Project")}
	if m.errText != "" {
		sections = append(sections, theme.ErrorStyle.Render(m.errText))
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
	fields := []huh.Field{
		huh.NewInput().
			Title("Name").
			Placeholder("Kitchen remodel").
			Value(&m.fb.name).
			Validate(validateRequired("Name")),
		huh.NewInput().
			Title("Address").
			Placeholder("Optional").
			Value(&m.fb.address),
		huh.NewInput().
			Title("Budget").
			Description("Workers are assigned automatically from the budget.").
			Placeholder("e.g. 24000").
			Value(&m.fb.budget).
			Validate(validateBudget),
		huh.NewInput().
			Title("ETA (weeks)").
			Placeholder("e.g. 6").
			Value(&m.fb.etaWeeks).
			Validate(validateOptionalNumber),
		m.contractorField(),
	}

	return huh.NewForm(
		huh.NewGroup(fields...),
	).WithWidth(m.formWidth()).WithHeight(m.formHeight())
}

func (m *Model) contractorField() huh.Field {
	opts := []huh.Option[string]{
		huh.NewOption("None", ""),
	}
	for _, c := range m.roster {
		label := fmt.Sprintf("%s ($%.0f, %s)", c.FullName, c.Price, c.Expertise)
		opts = append(opts, huh.NewOption(label, c.ID))
	}
	return huh.NewSelect[string]().
		Title("Contractor").
		Options(opts...).
		Value(&m.fb.contractorID)
}

func (m Model) formWidth() int {
	w := m.width - 4
	if w < 40 {
		w = 40
	}
	if w > 100 {
		w = 100
	}
	return w
}

func (m Model) formHeight() int {
	h := m.height - 4
	if h < 10 {
		h = 10
	}
	return h
}

func validateRequired(fieldName string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", fieldName)
		}
		return nil
	}
}

func validateBudget(s string) error {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || v <= 0 {
		return fmt.Errorf("Budget must be greater than 0.")
	}
	return nil
}

func validateOptionalNumber(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	if _, err := strconv.ParseFloat(s, 64); err != nil {
		return fmt.Errorf("must be a number")
	}
	return nil
}

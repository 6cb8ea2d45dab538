package projectlist

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/homereno/renoterm/internal/model"
	"github.com/homereno/renoterm/internal/schedule"
	"github.com/homereno/renoterm/internal/theme"
)

// ProjectItem wraps a model.Project so it can be used in a bubbles/list.
type ProjectItem struct {
	Project        model.Project
	ContractorName string
	Expertise      model.Expertise
}

// FilterValue returns the string used for fuzzy filtering.
func (i ProjectItem) FilterValue() string { return i.Project.Name }

// ProjectDelegate renders one project per line.
type ProjectDelegate struct{}

// Height returns the number of lines each item takes.
func (d ProjectDelegate) Height() int { return 1 }

// Spacing returns the number of blank lines between items.
func (d ProjectDelegate) Spacing() int { return 0 }

// Update handles per-item messages (unused).
func (d ProjectDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd {
	return nil
}

// Render draws a single project line.
func (d ProjectDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	pi, ok := item.(ProjectItem)
	if !ok {
		return
	}

	p := pi.Project
	isSelected := index == m.Index()

	var prefix string
	if p.IsFinished() {
		prefix = "✓"
	} else {
		prefix = "●"
	}

	progress := p.Progress
	if p.IsFinished() {
		progress = 100
	}
	progressBadge := theme.ProgressStyle(progress).Render(fmt.Sprintf("%3d%%", progress))

	etaBadge := lipgloss.NewStyle().
		Foreground(theme.ColorGray).
		Render(etaLabel(pi))

	budget := lipgloss.NewStyle().
		Foreground(theme.ColorGray).
		Render(fmt.Sprintf("$%.0f", p.Budget))

	contractor := ""
	if pi.ContractorName != "" {
		contractor = " " + theme.ExpertiseStyle(string(pi.Expertise)).Render(pi.ContractorName)
	}

	line := fmt.Sprintf(
		"%s %s %s  %s%s  %s",
		prefix, progressBadge, etaBadge, p.Name, contractor, budget,
	)

	if isSelected {
		line = theme.SelectedItemStyle.Render(line)
	} else {
		line = theme.ListItemStyle.Render(line)
	}

	fmt.Fprint(w, line)
}

// etaLabel formats the rough list-view estimate for a project.
func etaLabel(pi ProjectItem) string {
	p := pi.Project
	if p.IsFinished() {
		return "  done"
	}
	days, ok := schedule.LegacyEtaDays(p.EtaWeeks, p.Workers, float64(p.Progress), pi.Expertise)
	if !ok {
		return "   ~?d"
	}
	return fmt.Sprintf("~%4dd", days)
}

package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/dmitrijs2005/smarttask/internal/client/histogram"
	"github.com/dmitrijs2005/smarttask/internal/client/models"
	"github.com/dmitrijs2005/smarttask/internal/client/services"
)

// Dashboard texts.
const (
	DashboardTitle  = "Task Dashboard"
	SuggestionTitle = "AI Best Time to Work:"
	ChartTitle      = "Task Completion by Time"
	TasksTitle      = "Your Tasks"
	LoadingTasks    = "Loading tasks..."
	NoTasks         = "No tasks yet. Add some!"
	NoDeadline      = "no deadline"
)

// DashboardData is everything the dashboard shows.
type DashboardData struct {
	User       *models.User
	Suggestion string
	Tasks      []models.Task
	Filter     models.Filter
	Loading    bool
	Chart      histogram.Result
}

// Dashboard renders the full dashboard screen.
func (v *Renderer) Dashboard(d DashboardData) string {
	sections := []string{
		v.title.Render(DashboardTitle),
		v.Suggestion(d.Suggestion),
		v.Chart(d.Chart),
		v.TaskList(d.Tasks, d.Filter, d.Loading),
	}
	return strings.Join(sections, "\n\n") + "\n"
}

// Suggestion renders the suggestion box. Spans between
// services.EmphasisMarker pairs are bold.
func (v *Renderer) Suggestion(s string) string {
	if s == "" {
		s = "N/A"
	}
	body := v.heading.Render(SuggestionTitle) + "\n" + v.emphasize(s)
	return v.box.Render(body)
}

func (v *Renderer) emphasize(s string) string {
	const marker = services.EmphasisMarker
	for strings.Contains(s, marker+marker) {
		s = strings.ReplaceAll(s, marker+marker, marker)
	}
	parts := strings.Split(s, marker)
	// an unmatched marker is printed as is
	if len(parts)%2 == 0 {
		return v.text.Render(s)
	}
	var b strings.Builder
	for i, p := range parts {
		if p == "" {
			continue
		}
		if i%2 == 1 {
			b.WriteString(v.r.NewStyle().Foreground(v.theme.Accent).Bold(true).Render(p))
		} else {
			b.WriteString(v.text.Render(p))
		}
	}
	return b.String()
}

// TaskList renders the filtered task list with its heading.
func (v *Renderer) TaskList(tasks []models.Task, filter models.Filter, loading bool) string {
	var b strings.Builder
	b.WriteString(v.heading.Render(TasksTitle))
	b.WriteString(v.muted.Render(" · " + filter.Label()))
	b.WriteString("\n")

	switch {
	case loading:
		b.WriteString(v.muted.Render(LoadingTasks))
		return b.String()
	case len(tasks) == 0:
		b.WriteString(v.muted.Render(NoTasks))
		return b.String()
	}

	rows := make([][]string, 0, len(tasks))
	for _, t := range tasks {
		rows = append(rows, []string{t.ID, t.Title, t.Description, deadline(t), strings.ToUpper(string(t.Priority)), status(t)})
	}

	tbl := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(v.r.NewStyle().Foreground(v.theme.Border)).
		Headers("ID", "TITLE", "DESCRIPTION", "DEADLINE", "PRIORITY", "STATUS").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			cell := v.r.NewStyle().Padding(0, 1)
			if row == table.HeaderRow {
				return cell.Bold(true).Foreground(v.theme.Accent)
			}
			if col == 5 && row >= 0 && row < len(tasks) && tasks[row].IsCompleted() {
				return cell.Foreground(v.theme.Success)
			}
			if col == 4 && row >= 0 && row < len(tasks) && tasks[row].Priority == models.PriorityHigh {
				return cell.Foreground(v.theme.Danger)
			}
			return cell.Foreground(v.theme.Text)
		})

	b.WriteString(tbl.String())
	return b.String()
}

func deadline(t models.Task) string {
	if t.Deadline == "" {
		return NoDeadline
	}
	return t.Deadline
}

func status(t models.Task) string {
	if t.IsCompleted() {
		return SymbolComplete + " Completed"
	}
	return SymbolPending + " Pending"
}

// ChartWidth is the length of the longest bar.
const ChartWidth = 24

// Chart renders the completion histogram as horizontal bars.
func (v *Renderer) Chart(res histogram.Result) string {
	var b strings.Builder
	b.WriteString(v.heading.Render(ChartTitle))
	b.WriteString("\n")

	labelWidth := 0
	for _, bk := range res.Buckets {
		labelWidth = max(labelWidth, lipgloss.Width(bk.Label))
	}

	top := res.Max()
	bar := v.r.NewStyle().Foreground(v.theme.Accent)
	for _, bk := range res.Buckets {
		n := 0
		if top > 0 {
			n = bk.Count * ChartWidth / top
		}
		if bk.Count > 0 && n == 0 {
			n = 1
		}
		fmt.Fprintf(&b, "%-*s │%s %d\n", labelWidth, bk.Label, bar.Render(strings.Repeat(SymbolBar, n)), bk.Count)
	}
	return strings.TrimRight(b.String(), "\n")
}

package views

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/smarttask/internal/client/histogram"
	"github.com/dmitrijs2005/smarttask/internal/client/models"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
)

func plain(theme string) *Renderer {
	return NewWithProfile(&bytes.Buffer{}, theme, termenv.Ascii)
}

func TestThemeFor(t *testing.T) {
	assert.Equal(t, Dark, ThemeFor("dark"))
	assert.Equal(t, Light, ThemeFor("light"))
	assert.Equal(t, Light, ThemeFor(""))
	assert.Equal(t, "dark", plain("dark").Theme().Name)
}

func TestHome(t *testing.T) {
	out := plain("light").Home()

	assert.Contains(t, out, AppName)
	assert.Contains(t, out, "Boost your productivity")
	for _, f := range features {
		assert.Contains(t, out, f.title)
	}
	assert.Contains(t, out, "smarttask register")
	assert.Contains(t, out, "smarttask login")
}

func TestNavbar(t *testing.T) {
	v := plain("light")

	out := v.Navbar(RouteDashboard, nil)
	assert.Contains(t, out, SymbolActive+" Dashboard")
	assert.NotContains(t, out, SymbolActive+" Home")
	assert.Contains(t, out, "Login")
	assert.NotContains(t, out, "Logout")
	assert.Contains(t, out, "☾")

	out = plain("dark").Navbar(RouteHome, &models.User{Name: "Ann"})
	assert.Contains(t, out, SymbolActive+" Home")
	assert.Contains(t, out, "Ann")
	assert.Contains(t, out, "Logout")
	assert.Contains(t, out, "☀")
}

func TestFormHeaders(t *testing.T) {
	v := plain("light")
	assert.Equal(t, "Login", v.LoginHeader())
	assert.Equal(t, "Register", v.RegisterHeader())
}

func TestSuggestion_EmphasisMarkersRemoved(t *testing.T) {
	out := plain("light").Suggestion("Work **9 AM - 11 AM** or **2 PM - 4 PM**")

	assert.Contains(t, out, SuggestionTitle)
	assert.Contains(t, out, "Work 9 AM - 11 AM or 2 PM - 4 PM")
	assert.NotContains(t, out, "**")
}

func TestSuggestion_DoubledMarkersStillBold(t *testing.T) {
	v := NewWithProfile(&bytes.Buffer{}, "light", termenv.ANSI)

	want := v.Suggestion("at **9 AM - 11 AM**")
	got := v.Suggestion("at ****9 AM - 11 AM****")

	assert.Equal(t, want, got)
	assert.Contains(t, got, "\x1b[1")
	assert.NotContains(t, got, "**")
}

func TestSuggestion_Fallbacks(t *testing.T) {
	v := plain("light")
	assert.Contains(t, v.Suggestion(""), "N/A")
	assert.Contains(t, v.Suggestion("odd ** marker"), "odd ** marker")
}

func TestSuggestion_BoldWithColorProfile(t *testing.T) {
	v := NewWithProfile(&bytes.Buffer{}, "light", termenv.ANSI)
	out := v.Suggestion("at **9 AM - 11 AM**")
	assert.Contains(t, out, "\x1b[")
	assert.NotContains(t, out, "**")
}

func TestTaskList_States(t *testing.T) {
	v := plain("light")

	out := v.TaskList(nil, models.FilterAll, true)
	assert.Contains(t, out, LoadingTasks)
	assert.NotContains(t, out, NoTasks)

	out = v.TaskList(nil, models.FilterCompleted, false)
	assert.Contains(t, out, NoTasks)
	assert.Contains(t, out, "Completed Tasks")
}

func TestTaskList_Rows(t *testing.T) {
	tasks := []models.Task{
		{ID: "a1", Title: "Write report", Description: "Q3 numbers", Priority: models.PriorityHigh, Deadline: "2025-03-01", Status: models.StatusPending},
		{ID: "b2", Title: "Gym", Description: "Legs", Priority: models.PriorityLow, Status: models.StatusCompleted},
	}
	out := plain("light").TaskList(tasks, models.FilterAll, false)

	assert.Contains(t, out, "All Tasks")
	assert.Contains(t, out, "Write report")
	assert.Contains(t, out, "2025-03-01")
	assert.Contains(t, out, "HIGH")
	assert.Contains(t, out, "LOW")
	assert.Contains(t, out, NoDeadline)
	assert.Contains(t, out, SymbolComplete+" Completed")
	assert.Contains(t, out, SymbolPending+" Pending")
	assert.Less(t, strings.Index(out, "Write report"), strings.Index(out, "Gym"))
}

func TestChart(t *testing.T) {
	tasks := []models.Task{
		{Status: models.StatusCompleted, CompletionTime: "2025-01-01T07:30"},
		{Status: models.StatusCompleted, CompletionTime: "2025-01-01T08:10"},
		{Status: models.StatusCompleted, CompletionTime: "2025-01-01T14:00"},
	}
	res := histogram.Compute(tasks, time.UTC)
	out := plain("light").Chart(res)

	lines := strings.Split(out, "\n")
	assert.Equal(t, ChartTitle, lines[0])
	assert.Len(t, lines, 6)

	assert.True(t, strings.HasPrefix(lines[1], "6 AM - 9 AM"))
	assert.Contains(t, lines[1], strings.Repeat(SymbolBar, ChartWidth)+" 2")
	assert.Contains(t, lines[3], strings.Repeat(SymbolBar, ChartWidth/2)+" 1")
	assert.NotContains(t, lines[2], SymbolBar)
	assert.True(t, strings.HasSuffix(lines[5], " 0"))
}

func TestChart_Empty(t *testing.T) {
	out := plain("light").Chart(histogram.Compute(nil, time.UTC))
	assert.NotContains(t, out, SymbolBar)
	assert.Equal(t, 5, strings.Count(out, " 0"))
}

func TestDashboard(t *testing.T) {
	out := plain("dark").Dashboard(DashboardData{
		User:       &models.User{Name: "Ann"},
		Suggestion: "N/A",
		Tasks:      []models.Task{{ID: "1", Title: "Only", Description: "one", Priority: models.PriorityMedium}},
		Filter:     models.FilterIncomplete,
		Chart:      histogram.Compute(nil, time.UTC),
	})

	for _, want := range []string{DashboardTitle, SuggestionTitle, ChartTitle, TasksTitle, "Incomplete Tasks", "Only", "MEDIUM"} {
		assert.Contains(t, out, want)
	}
}

func TestAlertAndInfo(t *testing.T) {
	v := plain("light")
	assert.Equal(t, "⚠ Failed to add task.", v.Alert("Failed to add task."))
	assert.Equal(t, "Task added.", v.Info("Task added."))
}

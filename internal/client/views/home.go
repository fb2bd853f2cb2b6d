package views

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dmitrijs2005/smarttask/internal/client/models"
)

// AppName is shown in the navbar and the home banner.
const AppName = "Smart AI Task Manager"

// Routes of the navbar.
const (
	RouteHome      = "home"
	RouteDashboard = "dashboard"
	RouteLogin     = "login"
	RouteRegister  = "register"
)

type feature struct {
	title, text string
}

var features = []feature{
	{"AI-Powered Task Prioritization", "Never miss a deadline again. AI suggests what to do next based on urgency."},
	{"Voice Command Integration", "Use voice commands to add tasks hands-free in seconds."},
	{"AI Auto-Scheduling", "AI organizes your tasks efficiently for maximum productivity."},
}

// Home renders the landing banner.
func (v *Renderer) Home() string {
	var b strings.Builder

	b.WriteString(v.title.Render(AppName))
	b.WriteString("\n")
	b.WriteString(v.text.Render("Boost your productivity with AI-driven insights and smart task scheduling!"))
	b.WriteString("\n\n")
	b.WriteString(v.heading.Render("Why Choose " + AppName + "?"))
	b.WriteString("\n")
	for _, f := range features {
		b.WriteString("  ")
		b.WriteString(v.bold.Render(f.title))
		b.WriteString("\n    ")
		b.WriteString(v.muted.Render(f.text))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(v.warning.Render("Try Now - It's Free!  smarttask register"))
	b.WriteString("\n")
	b.WriteString(v.muted.Render("Already have an account?  smarttask login"))
	b.WriteString("\n")
	return b.String()
}

// Navbar renders the top bar: app name, routes with the active one marked,
// the session action and the theme indicator.
func (v *Renderer) Navbar(active string, user *models.User) string {
	items := []string{v.title.Render(AppName)}

	for _, r := range []struct{ route, label string }{
		{RouteHome, "Home"},
		{RouteDashboard, "Dashboard"},
	} {
		if r.route == active {
			items = append(items, v.bold.Render(SymbolActive+" "+r.label))
		} else {
			items = append(items, v.muted.Render(r.label))
		}
	}

	if user != nil {
		items = append(items, v.text.Render(user.DisplayName()), v.danger.Render("Logout"))
	} else {
		items = append(items, v.warning.Render("Login"))
	}

	mode := "☾"
	if v.theme.Name == Dark.Name {
		mode = "☀"
	}
	items = append(items, v.muted.Render(mode))

	bar := strings.Join(items, "  ")
	return v.r.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderBottom(true).
		BorderForeground(v.theme.Border).
		Render(bar)
}

// LoginHeader renders the heading of the login form.
func (v *Renderer) LoginHeader() string {
	return v.heading.Render("Login")
}

// RegisterHeader renders the heading of the registration form.
func (v *Renderer) RegisterHeader() string {
	return v.heading.Render("Register")
}

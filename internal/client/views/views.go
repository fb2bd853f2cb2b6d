// Package views renders the smarttask screens as styled terminal text. Views
// are pure: they read snapshots and never call services.
package views

import (
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Symbols used across views.
const (
	SymbolComplete = "✓"
	SymbolPending  = "○"
	SymbolActive   = "▸"
	SymbolBar      = "█"
)

// Renderer holds the styles of one output stream and theme.
type Renderer struct {
	r     *lipgloss.Renderer
	theme Theme

	title   lipgloss.Style
	heading lipgloss.Style
	text    lipgloss.Style
	muted   lipgloss.Style
	bold    lipgloss.Style
	success lipgloss.Style
	warning lipgloss.Style
	danger  lipgloss.Style
	box     lipgloss.Style
}

// New builds a Renderer for w, detecting its color support.
func New(w io.Writer, theme string) *Renderer {
	return newRenderer(lipgloss.NewRenderer(w), ThemeFor(theme))
}

// NewWithProfile builds a Renderer with a fixed color profile;
// termenv.Ascii produces plain text.
func NewWithProfile(w io.Writer, theme string, profile termenv.Profile) *Renderer {
	r := lipgloss.NewRenderer(w)
	r.SetColorProfile(profile)
	return newRenderer(r, ThemeFor(theme))
}

func newRenderer(r *lipgloss.Renderer, t Theme) *Renderer {
	return &Renderer{
		r:       r,
		theme:   t,
		title:   r.NewStyle().Foreground(t.Accent).Bold(true),
		heading: r.NewStyle().Foreground(t.Text).Bold(true),
		text:    r.NewStyle().Foreground(t.Text),
		muted:   r.NewStyle().Foreground(t.Muted),
		bold:    r.NewStyle().Bold(true),
		success: r.NewStyle().Foreground(t.Success).Bold(true),
		warning: r.NewStyle().Foreground(t.Warning),
		danger:  r.NewStyle().Foreground(t.Danger).Bold(true),
		box: r.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.Border).
			Padding(0, 1),
	}
}

// Theme returns the active palette.
func (v *Renderer) Theme() Theme { return v.theme }

// Alert renders a blocking error message.
func (v *Renderer) Alert(msg string) string {
	return v.danger.Render("⚠ " + msg)
}

// Info renders a confirmation message.
func (v *Renderer) Info(msg string) string {
	return v.success.Render(msg)
}

package services

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/smarttask/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/smarttask/internal/common"
)

// View themes.
const (
	ThemeLight = "light"
	ThemeDark  = "dark"
)

// Preferences stores view settings next to the session token.
type Preferences struct {
	repo metadata.Repository
}

func NewPreferences(db *sql.DB) *Preferences {
	return &Preferences{repo: metadata.NewSQLiteRepository(db)}
}

// Theme returns the stored theme, ThemeLight when none was chosen.
func (p *Preferences) Theme(ctx context.Context) (string, error) {
	v, err := p.repo.Get(ctx, common.ThemeKey)
	if err != nil {
		return ThemeLight, err
	}
	if string(v) == ThemeDark {
		return ThemeDark, nil
	}
	return ThemeLight, nil
}

func (p *Preferences) SetTheme(ctx context.Context, theme string) error {
	if theme != ThemeLight && theme != ThemeDark {
		return fmt.Errorf("unknown theme %q", theme)
	}
	return p.repo.Set(ctx, common.ThemeKey, []byte(theme))
}

// ToggleTheme flips between light and dark and returns the new theme.
func (p *Preferences) ToggleTheme(ctx context.Context) (string, error) {
	cur, err := p.Theme(ctx)
	if err != nil {
		return "", err
	}
	next := ThemeDark
	if cur == ThemeDark {
		next = ThemeLight
	}
	return next, p.SetTheme(ctx, next)
}

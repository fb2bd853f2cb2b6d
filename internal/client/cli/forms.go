package cli

import (
	"errors"
	"strings"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/dmitrijs2005/smarttask/internal/client/models"
)

func required(field string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return errors.New(field + " is required")
		}
		return nil
	}
}

func validDate(s string) error {
	if s == "" {
		return nil
	}
	if _, err := time.Parse(models.DateLayout, s); err != nil {
		return errors.New("use YYYY-MM-DD")
	}
	return nil
}

// credentials collects the fields of the login and registration forms.
type credentials struct {
	Name     string
	Email    string
	Password string
}

func newLoginForm(c *credentials) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Email").
				Value(&c.Email).
				Validate(required("email")),
			huh.NewInput().
				Title("Password").
				EchoMode(huh.EchoModePassword).
				Value(&c.Password).
				Validate(required("password")),
		).Title("Login"),
	)
}

func newRegisterForm(c *credentials) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Name").
				Value(&c.Name).
				Validate(required("name")),
			huh.NewInput().
				Title("Email").
				Value(&c.Email).
				Validate(required("email")),
			huh.NewInput().
				Title("Password").
				EchoMode(huh.EchoModePassword).
				Value(&c.Password).
				Validate(required("password")),
		).Title("Register"),
	)
}

func newTaskForm(d *models.Draft) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Title").
				Value(&d.Title).
				Validate(required("title")),
			huh.NewText().
				Title("Description").
				Value(&d.Description).
				Validate(required("description")),
			huh.NewInput().
				Title("Deadline").
				Placeholder(models.DateLayout).
				Value(&d.Deadline).
				Validate(validDate),
			huh.NewSelect[models.Priority]().
				Title("Priority").
				Options(
					huh.NewOption("Low", models.PriorityLow),
					huh.NewOption("Medium", models.PriorityMedium),
					huh.NewOption("High", models.PriorityHigh),
				).
				Value(&d.Priority),
		).Title("New task"),
	)
}

// fillCredentials and fillDraft run the interactive forms. They are test
// seams; tests fill the values directly.
var fillCredentials = func(c *credentials, withName bool) error {
	if withName {
		return newRegisterForm(c).Run()
	}
	return newLoginForm(c).Run()
}

var fillDraft = func(d *models.Draft) error {
	return newTaskForm(d).Run()
}

package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/smarttask/internal/client/histogram"
	"github.com/dmitrijs2005/smarttask/internal/client/models"
	"github.com/dmitrijs2005/smarttask/internal/client/services"
	"github.com/dmitrijs2005/smarttask/internal/client/validation"
	"github.com/dmitrijs2005/smarttask/internal/client/views"
)

// Alert texts of task commands.
const (
	MsgAddFailed      = "Failed to add task."
	MsgDeleteFailed   = "Failed to delete task."
	MsgCompleteFailed = "Failed to complete task."
	MsgFetchFailed    = "Failed to load tasks."
	MsgEmptySpeech    = "Please say something!"
	MsgVoiceFailed    = "Failed to process voice input."
)

// loadTasks fetches the list for a view. Failures are alerted.
func (a *App) loadTasks(ctx context.Context) error {
	if err := a.requireUser(ctx); err != nil {
		return err
	}
	if err := a.tasks.FetchAll(ctx); err != nil {
		return a.alert(ctx, MsgFetchFailed, err)
	}
	return nil
}

// Dashboard renders the full dashboard: navbar, suggestion, chart and list.
func (a *App) Dashboard(ctx context.Context) error {
	if err := a.loadTasks(ctx); err != nil {
		return err
	}
	v := a.view(ctx)
	tasks := a.tasks.Tasks()
	a.println(v.Navbar(views.RouteDashboard, a.session.Snapshot().User))
	a.println(v.Dashboard(views.DashboardData{
		User:       a.session.Snapshot().User,
		Suggestion: a.tasks.Suggestion(),
		Tasks:      a.tasks.Filtered(a.filter),
		Filter:     a.filter,
		Loading:    a.tasks.Loading(),
		Chart:      histogram.Compute(tasks, a.loc),
	}))
	return nil
}

// List prints the task list. A non-empty filter also becomes the filter of
// later dashboard renders.
func (a *App) List(ctx context.Context, filter string) error {
	if filter != "" {
		f, err := models.ParseFilter(filter)
		if err != nil {
			return err
		}
		a.filter = f
	}
	if err := a.loadTasks(ctx); err != nil {
		return err
	}
	a.println(a.view(ctx).TaskList(a.tasks.Filtered(a.filter), a.filter, a.tasks.Loading()))
	return nil
}

// AddTask prompts for a draft, prefilled from the voice draft, and creates it.
func (a *App) AddTask(ctx context.Context) error {
	if err := a.requireUser(ctx); err != nil {
		return err
	}
	draft := models.EmptyDraft()
	if a.voice != nil {
		draft = a.voice.Draft()
	}
	return a.addFromDraft(ctx, draft)
}

// addFromDraft prompts for a draft with def as defaults and creates it.
func (a *App) addFromDraft(ctx context.Context, def models.Draft) error {
	if err := a.tasks.FetchAll(ctx); err != nil {
		a.log.Warn(ctx, "task list not refreshed before add", "error", err)
	}

	draft := def
	var err error
	if a.forms {
		err = fillDraft(&draft)
	} else {
		draft, err = GetDraft(a.reader, def, a.out)
	}
	if err != nil {
		return err
	}

	return a.addDraft(ctx, draft)
}

func (a *App) addDraft(ctx context.Context, draft models.Draft) error {
	task, err := a.tasks.Add(ctx, draft)
	if err != nil {
		var ve *validation.ValidationError
		if errors.As(err, &ve) {
			return a.alert(ctx, validationMessage(ve), err)
		}
		return a.alert(ctx, MsgAddFailed, err)
	}

	if a.voice != nil {
		a.voice.MarkSubmitted()
	}
	a.println(a.view(ctx).Info(fmt.Sprintf("Task added: %s (%s)", task.Title, task.ID)))
	return nil
}

// validationMessage picks the alert of a rejected draft.
func validationMessage(ve *validation.ValidationError) string {
	switch {
	case ve.HasType(validation.ErrorTypeRequired):
		return validation.MsgEmptyFields
	case ve.HasType(validation.ErrorTypeDuplicate):
		return validation.MsgDuplicate
	default:
		return ve.GetUserFriendlyMessage()
	}
}

// Delete removes the task with the given id.
func (a *App) Delete(ctx context.Context, id string) error {
	if err := a.requireUser(ctx); err != nil {
		return err
	}
	if id == "" {
		var err error
		if id, err = getSimpleText(a.reader, "Enter task id to delete", a.out); err != nil {
			return err
		}
	}
	if err := a.tasks.Remove(ctx, id); err != nil {
		return a.alert(ctx, MsgDeleteFailed, err)
	}
	a.println("Task deleted.")
	return nil
}

// Complete marks a task done. Minutes are prompted for until a positive
// integer is given; a minutes argument is validated the same way.
func (a *App) Complete(ctx context.Context, id, minutes string) error {
	if err := a.requireUser(ctx); err != nil {
		return err
	}
	if id == "" {
		var err error
		if id, err = getSimpleText(a.reader, "Enter task id to complete", a.out); err != nil {
			return err
		}
	}

	var (
		n   int
		err error
	)
	if minutes != "" {
		n, err = validation.ParseMinutes(minutes)
		if err != nil {
			a.println("Please enter a valid number greater than 0.")
		}
	}
	if n == 0 {
		if n, err = GetMinutes(a.reader, a.out); err != nil {
			return err
		}
	}

	if err := a.tasks.Complete(ctx, id, n); err != nil {
		return a.alert(ctx, MsgCompleteFailed, err)
	}
	a.println(a.view(ctx).Info(fmt.Sprintf("Task completed in %d min.", n)))
	return nil
}

// Suggest prints the best-time-to-work suggestion.
func (a *App) Suggest(ctx context.Context) error {
	if err := a.loadTasks(ctx); err != nil {
		return err
	}
	a.println(a.view(ctx).Suggestion(a.tasks.Suggestion()))
	return nil
}

// Chart prints the completion-time histogram.
func (a *App) Chart(ctx context.Context) error {
	if err := a.loadTasks(ctx); err != nil {
		return err
	}
	a.println(a.view(ctx).Chart(histogram.Compute(a.tasks.Tasks(), a.loc)))
	return nil
}

// Voice interprets a transcript into a draft and offers it for adding. An
// empty transcript is prompted for.
func (a *App) Voice(ctx context.Context, transcript string) error {
	if err := a.requireUser(ctx); err != nil {
		return err
	}
	if strings.TrimSpace(transcript) == "" {
		var err error
		if transcript, err = getSimpleText(a.reader, "Say (type) your task", a.out); err != nil {
			return err
		}
	}

	draft, err := a.voice.Submit(ctx, transcript)
	if err != nil {
		if errors.Is(err, services.ErrEmptyTranscript) {
			return a.alert(ctx, MsgEmptySpeech, err)
		}
		return a.alert(ctx, MsgVoiceFailed, err)
	}

	a.println(fmt.Sprintf("AI suggested: %s", draft.Title))
	answer, err := getSimpleText(a.reader, "Add this task now? [Y/n]", a.out)
	if err != nil {
		return err
	}
	if answer != "" && !strings.EqualFold(answer, "y") && !strings.EqualFold(answer, "yes") {
		a.println("Draft kept; it resets shortly unless added.")
		return nil
	}
	return a.addFromDraft(ctx, draft)
}

// Theme sets or toggles the view theme.
func (a *App) Theme(ctx context.Context, name string) error {
	var err error
	if name == "" {
		name, err = a.prefs.ToggleTheme(ctx)
	} else {
		name = strings.ToLower(name)
		err = a.prefs.SetTheme(ctx, name)
	}
	if err != nil {
		return err
	}
	a.println("Theme:", name)
	return nil
}

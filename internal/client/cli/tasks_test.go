package cli

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/dmitrijs2005/smarttask/internal/client/models"
	"github.com/dmitrijs2005/smarttask/internal/client/validation"
	"github.com/dmitrijs2005/smarttask/internal/client/views"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleTasks() []models.Task {
	return []models.Task{
		{ID: "t1", Title: "Write report", Description: "Q3", Priority: models.PriorityHigh, Status: models.StatusPending},
		{ID: "t2", Title: "Gym", Description: "Legs", Priority: models.PriorityLow, Status: models.StatusCompleted,
			CompletionTime: "2026-10-17T09:30:00Z", CompletionMinutes: 60},
	}
}

func TestApp_Dashboard(t *testing.T) {
	ta := newTestApp(t, "")
	ta.signIn()
	ta.tasks.tasks = sampleTasks()
	ta.tasks.suggestion = "Work at **9 AM - 11 AM**"

	require.NoError(t, ta.Dashboard(context.Background()))

	out := ta.out.String()
	assert.Equal(t, 1, ta.tasks.fetches)
	for _, s := range []string{views.SuggestionTitle, views.ChartTitle, views.TasksTitle, "9 AM - 11 AM", "Write report", "Gym"} {
		assert.Contains(t, out, s)
	}
}

func TestApp_Dashboard_LogsInFirst(t *testing.T) {
	stubPassword(t, "pw")
	ta := newTestApp(t, "ada@example.com\n")

	require.NoError(t, ta.Dashboard(context.Background()))

	assert.Contains(t, ta.out.String(), "Please log in first.")
	assert.Len(t, ta.session.logins, 1)
	assert.Equal(t, 1, ta.tasks.fetches)
}

func TestApp_Dashboard_LoginFails(t *testing.T) {
	stubPassword(t, "pw")
	ta := newTestApp(t, "ada@example.com\n")
	ta.session.loginErr = errors.New("nope")

	err := ta.Dashboard(context.Background())
	assert.ErrorIs(t, err, errAlerted)
	assert.Zero(t, ta.tasks.fetches)
}

func TestApp_Dashboard_FetchFails(t *testing.T) {
	ta := newTestApp(t, "")
	ta.signIn()
	ta.tasks.fetchErr = errors.New("boom")

	err := ta.Dashboard(context.Background())
	assert.ErrorIs(t, err, errAlerted)
	assert.Contains(t, ta.out.String(), MsgFetchFailed)
}

func TestApp_List_Filter(t *testing.T) {
	ta := newTestApp(t, "")
	ta.signIn()
	ta.tasks.tasks = sampleTasks()

	require.NoError(t, ta.List(context.Background(), "completed"))

	out := ta.out.String()
	assert.Contains(t, out, "Gym")
	assert.NotContains(t, out, "Write report")
	assert.Equal(t, models.FilterCompleted, ta.filter, "filter sticks for later renders")

	ta.out.Reset()
	require.NoError(t, ta.List(context.Background(), ""))
	assert.NotContains(t, ta.out.String(), "Write report")
}

func TestApp_List_BadFilter(t *testing.T) {
	ta := newTestApp(t, "")
	ta.signIn()

	require.Error(t, ta.List(context.Background(), "someday"))
	assert.Equal(t, models.FilterAll, ta.filter)
	assert.Zero(t, ta.tasks.fetches)
}

func TestApp_AddTask(t *testing.T) {
	ta := newTestApp(t, "Buy milk\n2 liters\n2026-10-20\nhigh\n")
	ta.signIn()

	require.NoError(t, ta.AddTask(context.Background()))

	require.Len(t, ta.tasks.added, 1)
	assert.Equal(t, models.Draft{
		Title: "Buy milk", Description: "2 liters", Deadline: "2026-10-20", Priority: models.PriorityHigh,
	}, ta.tasks.added[0])
	assert.Equal(t, 1, ta.voice.marked)
	assert.Contains(t, ta.out.String(), "Task added: Buy milk (new-1)")
}

func TestApp_AddTask_RepromptsPriority(t *testing.T) {
	ta := newTestApp(t, "Title\nDesc\n\nurgent\nlow\n")
	ta.signIn()

	require.NoError(t, ta.AddTask(context.Background()))

	require.Len(t, ta.tasks.added, 1)
	assert.Equal(t, models.PriorityLow, ta.tasks.added[0].Priority)
	assert.Contains(t, ta.out.String(), `unknown priority "urgent"`)
}

func TestApp_AddTask_DefaultsFromVoiceDraft(t *testing.T) {
	ta := newTestApp(t, "\n\n\n\n")
	ta.signIn()
	ta.voice.draft = models.Draft{Title: "Call mom", Description: "Sunday", Deadline: "2026-10-19", Priority: models.PriorityHigh}

	require.NoError(t, ta.AddTask(context.Background()))

	require.Len(t, ta.tasks.added, 1)
	assert.Equal(t, "Call mom", ta.tasks.added[0].Title)
	assert.Equal(t, models.PriorityHigh, ta.tasks.added[0].Priority)
	assert.True(t, ta.voice.draft.IsEmpty(), "draft reset after submit")
}

func TestApp_AddTask_Rejected(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		message string
	}{
		{"empty fields", "\n\n\n\n", validation.MsgEmptyFields},
		{"duplicate title", "write REPORT\nagain\n\n\n", validation.MsgDuplicate},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ta := newTestApp(t, tt.input)
			ta.signIn()
			ta.tasks.tasks = sampleTasks()

			err := ta.AddTask(context.Background())
			assert.ErrorIs(t, err, errAlerted)
			assert.Contains(t, ta.out.String(), tt.message)
			assert.Empty(t, ta.tasks.added)
			assert.Zero(t, ta.voice.marked)
		})
	}
}

func TestApp_AddTask_ServerFailure(t *testing.T) {
	ta := newTestApp(t, "T\nD\n\n\n")
	ta.signIn()
	ta.tasks.addErr = errors.New("500")

	err := ta.AddTask(context.Background())
	assert.ErrorIs(t, err, errAlerted)
	assert.Contains(t, ta.out.String(), MsgAddFailed)
}

func TestApp_Delete(t *testing.T) {
	ta := newTestApp(t, "")
	ta.signIn()

	require.NoError(t, ta.Delete(context.Background(), "abc"))
	assert.Equal(t, []string{"abc"}, ta.tasks.removed)
	assert.Contains(t, ta.out.String(), "Task deleted.")

	ta.tasks.removeErr = errors.New("gone")
	err := ta.Delete(context.Background(), "abc")
	assert.ErrorIs(t, err, errAlerted)
	assert.Contains(t, ta.out.String(), MsgDeleteFailed)
}

func TestApp_Delete_PromptsForID(t *testing.T) {
	ta := newTestApp(t, "xyz\n")
	ta.signIn()

	require.NoError(t, ta.Delete(context.Background(), ""))
	assert.Equal(t, []string{"xyz"}, ta.tasks.removed)
}

func TestApp_Complete(t *testing.T) {
	ta := newTestApp(t, "")
	ta.signIn()

	require.NoError(t, ta.Complete(context.Background(), "abc", "30"))
	assert.Equal(t, map[string]int{"abc": 30}, ta.tasks.completed)
	assert.Contains(t, ta.out.String(), "Task completed in 30 min.")
}

func TestApp_Complete_RejectsUntilPositiveInteger(t *testing.T) {
	ta := newTestApp(t, "0\nabc\n45\n")
	ta.signIn()

	require.NoError(t, ta.Complete(context.Background(), "abc", "2.5"))

	assert.Equal(t, map[string]int{"abc": 45}, ta.tasks.completed)
	assert.Equal(t, 3, strings.Count(ta.out.String(), "Please enter a valid number greater than 0."))
}

func TestApp_Complete_Failure(t *testing.T) {
	ta := newTestApp(t, "")
	ta.signIn()
	ta.tasks.completeErr = errors.New("boom")

	err := ta.Complete(context.Background(), "abc", "10")
	assert.ErrorIs(t, err, errAlerted)
	assert.Contains(t, ta.out.String(), MsgCompleteFailed)
}

func TestApp_SuggestAndChart(t *testing.T) {
	ta := newTestApp(t, "")
	ta.signIn()
	ta.tasks.tasks = sampleTasks()
	ta.tasks.suggestion = "N/A"

	require.NoError(t, ta.Suggest(context.Background()))
	assert.Contains(t, ta.out.String(), views.SuggestionTitle)
	assert.Contains(t, ta.out.String(), "N/A")

	ta.out.Reset()
	require.NoError(t, ta.Chart(context.Background()))
	assert.Contains(t, ta.out.String(), views.ChartTitle)
	assert.Equal(t, 2, ta.tasks.fetches)
}

func TestApp_Voice(t *testing.T) {
	reply := models.Draft{Title: "Call mom", Description: "Sunday", Priority: models.PriorityMedium}

	t.Run("accepted", func(t *testing.T) {
		ta := newTestApp(t, "\n\n\n\n\n")
		ta.signIn()
		ta.voice.reply = reply

		require.NoError(t, ta.Voice(context.Background(), "call mom on sunday"))

		assert.Equal(t, []string{"call mom on sunday"}, ta.voice.submitted)
		assert.Contains(t, ta.out.String(), "AI suggested: Call mom")
		require.Len(t, ta.tasks.added, 1)
		assert.Equal(t, reply, ta.tasks.added[0])
		assert.Equal(t, 1, ta.voice.marked)
	})

	t.Run("accepted after the draft reset", func(t *testing.T) {
		ta := newTestApp(t, "y\n\n\n\n\n")
		ta.signIn()
		ta.voice.reply = reply
		ta.voice.reverted = true

		require.NoError(t, ta.Voice(context.Background(), "call mom on sunday"))

		require.Len(t, ta.tasks.added, 1)
		assert.Equal(t, reply, ta.tasks.added[0])
	})

	t.Run("declined keeps draft", func(t *testing.T) {
		ta := newTestApp(t, "n\n")
		ta.signIn()
		ta.voice.reply = reply

		require.NoError(t, ta.Voice(context.Background(), "call mom"))

		assert.Empty(t, ta.tasks.added)
		assert.Equal(t, reply, ta.voice.draft)
	})

	t.Run("empty transcript", func(t *testing.T) {
		ta := newTestApp(t, "\n")
		ta.signIn()

		err := ta.Voice(context.Background(), "  ")
		assert.ErrorIs(t, err, errAlerted)
		assert.Contains(t, ta.out.String(), MsgEmptySpeech)
	})

	t.Run("interpretation fails", func(t *testing.T) {
		ta := newTestApp(t, "")
		ta.signIn()
		ta.voice.submitErr = errors.New("bad gateway")

		err := ta.Voice(context.Background(), "something")
		assert.ErrorIs(t, err, errAlerted)
		assert.Contains(t, ta.out.String(), MsgVoiceFailed)
		assert.True(t, ta.voice.draft.IsEmpty())
	})
}

func TestApp_Theme(t *testing.T) {
	ta := newTestApp(t, "")

	require.NoError(t, ta.Theme(context.Background(), ""))
	assert.Equal(t, "dark", ta.prefs.theme)

	require.NoError(t, ta.Theme(context.Background(), "LIGHT"))
	assert.Equal(t, "light", ta.prefs.theme)

	require.Error(t, ta.Theme(context.Background(), "blue"))
	assert.Equal(t, "light", ta.prefs.theme)
}

package cli

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/smarttask/internal/client/models"
	"github.com/dmitrijs2005/smarttask/internal/client/services"
	"github.com/dmitrijs2005/smarttask/internal/client/validation"
	"github.com/dmitrijs2005/smarttask/internal/logging"
)

type fakeSession struct {
	mu        sync.Mutex
	user      *models.User
	token     string
	lastEmail string

	loginErr    error
	registerErr error
	logoutErr   error
	loginUser   *models.User

	logins    []string
	registers []string
	logouts   int
	resolves  int
}

func (f *fakeSession) Login(ctx context.Context, email string, password []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.logins = append(f.logins, email+":"+string(password))
	if f.loginErr != nil {
		return f.loginErr
	}
	f.user = f.loginUser
	if f.user == nil {
		f.user = &models.User{Email: email}
	}
	f.token = "tok"
	f.lastEmail = email
	return nil
}

func (f *fakeSession) Register(ctx context.Context, name, email string, password []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.registers = append(f.registers, name+":"+email+":"+string(password))
	return f.registerErr
}

func (f *fakeSession) Logout(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.logouts++
	f.user = nil
	f.token = ""
	return f.logoutErr
}

func (f *fakeSession) Resolve(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.resolves++
	return nil
}

func (f *fakeSession) Loading() bool { return false }
func (f *fakeSession) WaitResolved(ctx context.Context) error { return ctx.Err() }
func (f *fakeSession) Token() string { return f.token }
func (f *fakeSession) LastEmail(ctx context.Context) string { return f.lastEmail }
func (f *fakeSession) Snapshot() services.Session {
	f.mu.Lock()
	defer f.mu.Unlock()
	return services.Session{User: f.user, Token: f.token}
}

type fakeTasks struct {
	tasks      []models.Task
	suggestion string

	fetchErr    error
	addErr      error
	removeErr   error
	completeErr error

	fetches   int
	added     []models.Draft
	removed   []string
	completed map[string]int
}

func (f *fakeTasks) FetchAll(ctx context.Context) error {
	f.fetches++
	return f.fetchErr
}

func (f *fakeTasks) Add(ctx context.Context, d models.Draft) (*models.Task, error) {
	if f.addErr != nil {
		return nil, f.addErr
	}
	if err := validation.ValidateDraft(d, f.tasks); err != nil {
		return nil, err
	}
	d = d.Trimmed()
	f.added = append(f.added, d)
	t := models.Task{ID: "new-1", Title: d.Title, Description: d.Description, Priority: d.Priority, Status: models.StatusPending}
	f.tasks = append(f.tasks, t)
	return &t, nil
}

func (f *fakeTasks) Remove(ctx context.Context, id string) error {
	if f.removeErr != nil {
		return f.removeErr
	}
	f.removed = append(f.removed, id)
	return nil
}

func (f *fakeTasks) Complete(ctx context.Context, id string, minutes int) error {
	if f.completeErr != nil {
		return f.completeErr
	}
	if f.completed == nil {
		f.completed = map[string]int{}
	}
	f.completed[id] = minutes
	return nil
}

func (f *fakeTasks) Filtered(filter models.Filter) []models.Task {
	var out []models.Task
	for _, t := range f.tasks {
		if filter.Match(t) {
			out = append(out, t)
		}
	}
	return out
}

func (f *fakeTasks) Tasks() []models.Task { return f.tasks }
func (f *fakeTasks) Loading() bool { return false }
func (f *fakeTasks) Suggestion() string { return f.suggestion }

type fakeVoice struct {
	draft     models.Draft
	submitErr error
	reply     models.Draft
	submitted []string
	marked    int
	// reverted makes Draft report the empty defaults, as after the reset delay.
	reverted bool
}

func (f *fakeVoice) Submit(ctx context.Context, transcript string) (models.Draft, error) {
	f.submitted = append(f.submitted, transcript)
	if strings.TrimSpace(transcript) == "" {
		return f.draft, services.ErrEmptyTranscript
	}
	if f.submitErr != nil {
		return f.draft, f.submitErr
	}
	f.draft = f.reply
	return f.draft, nil
}

func (f *fakeVoice) Draft() models.Draft {
	if f.reverted {
		return models.EmptyDraft()
	}
	return f.draft
}

func (f *fakeVoice) MarkSubmitted() {
	f.marked++
	f.draft = models.EmptyDraft()
}

type fakeTheme struct {
	theme string
	err   error
}

func (f *fakeTheme) Theme(ctx context.Context) (string, error) {
	if f.theme == "" {
		return services.ThemeLight, f.err
	}
	return f.theme, f.err
}

func (f *fakeTheme) SetTheme(ctx context.Context, theme string) error {
	if theme != services.ThemeLight && theme != services.ThemeDark {
		return fmt.Errorf("unknown theme %q", theme)
	}
	f.theme = theme
	return nil
}

func (f *fakeTheme) ToggleTheme(ctx context.Context) (string, error) {
	next := services.ThemeDark
	if f.theme == services.ThemeDark {
		next = services.ThemeLight
	}
	return next, f.SetTheme(ctx, next)
}

type testApp struct {
	*App
	session *fakeSession
	tasks   *fakeTasks
	voice   *fakeVoice
	prefs   *fakeTheme
	out     *bytes.Buffer
}

// newTestApp builds an App over fakes with input read from in.
func newTestApp(t *testing.T, in string) *testApp {
	t.Helper()
	ta := &testApp{
		session: &fakeSession{},
		tasks:   &fakeTasks{},
		voice:   &fakeVoice{draft: models.EmptyDraft()},
		prefs:   &fakeTheme{},
		out:     &bytes.Buffer{},
	}
	ta.App = &App{
		log:     logging.Discard(),
		session: ta.session,
		tasks:   ta.tasks,
		voice:   ta.voice,
		prefs:   ta.prefs,
		reader:  bufio.NewReader(strings.NewReader(in)),
		out:     ta.out,
		filter:  models.FilterAll,
		loc:     time.UTC,
	}
	return ta
}

func (ta *testApp) signIn() {
	ta.session.user = &models.User{ID: "u1", Name: "Ada", Email: "ada@example.com"}
	ta.session.token = "tok"
}

// stubPassword replaces the terminal password prompt for the test.
func stubPassword(t *testing.T, pw string) {
	t.Helper()
	old := getPassword
	getPassword = func(io.Writer) ([]byte, error) {
		return []byte(pw), nil
	}
	t.Cleanup(func() { getPassword = old })
}

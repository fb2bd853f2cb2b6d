package cli

import (
	"bufio"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/dmitrijs2005/smarttask/internal/client/client"
	"github.com/dmitrijs2005/smarttask/internal/client/config"
	"github.com/dmitrijs2005/smarttask/internal/client/models"
	"github.com/dmitrijs2005/smarttask/internal/client/services"
	"github.com/dmitrijs2005/smarttask/internal/client/views"
	"github.com/dmitrijs2005/smarttask/internal/logging"
)

// errAlerted marks errors the user has already been shown.
var errAlerted = errors.New("reported")

// ErrNotLoggedIn is returned by commands that need a user when none signs in.
var ErrNotLoggedIn = errors.New("not logged in")

func alerted(err error) error {
	return fmt.Errorf("%w: %w", errAlerted, err)
}

// voiceIntake is the part of services.VoiceIntake the CLI uses.
type voiceIntake interface {
	Submit(ctx context.Context, transcript string) (models.Draft, error)
	Draft() models.Draft
	MarkSubmitted()
}

// themeStore is the part of services.Preferences the CLI uses.
type themeStore interface {
	Theme(ctx context.Context) (string, error)
	SetTheme(ctx context.Context, theme string) error
	ToggleTheme(ctx context.Context) (string, error)
}

// App owns one session and the stores built on it. Commands and the shell
// operate on the same App.
type App struct {
	config  *config.Config
	db      *sql.DB
	log     logging.Logger
	session services.AuthSession
	tasks   services.TaskStore
	voice   voiceIntake
	prefs   themeStore

	reader *bufio.Reader
	out    io.Writer
	// forms enables huh forms for credentials and task drafts.
	forms  bool
	filter models.Filter
	loc    *time.Location
}

// NewApp opens the local database, builds the HTTP client and the services,
// and returns an App reading from in and writing to out.
func NewApp(ctx context.Context, c *config.Config, in io.Reader, out io.Writer, log logging.Logger) (*App, error) {
	if log == nil {
		log = logging.Discard()
	}

	db, err := client.InitDatabase(ctx, c.DBPath)
	if err != nil {
		log.Error(ctx, "error initializing database", "path", c.DBPath, "error", err)
		return nil, err
	}

	// The transport reads the token of the session it serves.
	var session services.AuthSession
	apiClient, err := client.NewHTTPClient(client.Options{
		APIBaseURL:  c.APIBaseURL,
		AuthBaseURL: c.AuthBaseURL,
		Timeout:     c.RequestTimeout,
		Token:       func() string { return session.Token() },
		Logger:      log,
	})
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	session = services.NewAuthSession(apiClient, db, log)

	suggestions := services.NewSuggestionFetcher(apiClient, log)

	return &App{
		config:  c,
		db:      db,
		log:     log,
		session: session,
		tasks:   services.NewTaskStore(apiClient, suggestions, log),
		voice:   services.NewVoiceIntake(apiClient, c.DraftResetDelay, log),
		prefs:   services.NewPreferences(db),
		reader:  bufio.NewReader(in),
		out:     out,
		forms:   c.Forms && isTerminal(in),
		filter:  models.FilterAll,
		loc:     time.Local,
	}, nil
}

// Start resolves the stored session. A failed resolution leaves the user
// signed out; it is logged, not returned.
func (a *App) Start(ctx context.Context) {
	if err := a.session.Resolve(ctx); err != nil {
		a.log.Warn(ctx, "session resolution failed", "error", err)
	}
}

// Close releases the local database.
func (a *App) Close() error {
	if a.db == nil {
		return nil
	}
	return a.db.Close()
}

func (a *App) isLoggedIn() bool {
	return a.session.Snapshot().Authenticated()
}

func (a *App) getStatus() string {
	s := a.session.Snapshot()
	if s.User == nil {
		return ""
	}
	return fmt.Sprintf("(%s)", s.User.DisplayName())
}

func (a *App) view(ctx context.Context) *views.Renderer {
	theme := services.ThemeLight
	if a.prefs != nil {
		if t, err := a.prefs.Theme(ctx); err != nil {
			a.log.Debug(ctx, "theme unavailable", "error", err)
		} else {
			theme = t
		}
	}
	return views.New(a.out, theme)
}

func (a *App) println(args ...any) {
	fmt.Fprintln(a.out, args...)
}

// alert prints msg as a blocking alert and returns err marked as reported.
func (a *App) alert(ctx context.Context, msg string, err error) error {
	a.println(a.view(ctx).Alert(msg))
	return alerted(err)
}

// requireUser waits for session resolution and, when nobody is signed in,
// runs the login flow once.
func (a *App) requireUser(ctx context.Context) error {
	if err := a.session.WaitResolved(ctx); err != nil {
		return err
	}
	if a.isLoggedIn() {
		return nil
	}

	a.println("Please log in first.")
	if err := a.Login(ctx); err != nil {
		return err
	}
	if !a.isLoggedIn() {
		return alerted(ErrNotLoggedIn)
	}
	return nil
}

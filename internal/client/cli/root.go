package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/smarttask/internal/buildinfo"
	"github.com/dmitrijs2005/smarttask/internal/client/config"
	"github.com/dmitrijs2005/smarttask/internal/logging"
	"github.com/spf13/cobra"
)

// appFactory builds the App of a command run. Tests swap it for an App with
// fake services.
var appFactory = func(ctx context.Context, cfg *config.Config, in io.Reader, out io.Writer) (*App, error) {
	return NewApp(ctx, cfg, in, out, logging.New(os.Stderr, cfg.Debug))
}

// Shell runs the interactive shell until exit or EOF.
func (a *App) Shell(ctx context.Context) {
	printlnFn("Welcome to smarttask (type 'help' for commands)")
	runREPL(ctx, a, a.getStatus, a.reader)
}

// NewRootCmd builds the smarttask command tree reading from in and writing to out.
func NewRootCmd(in io.Reader, out io.Writer) *cobra.Command {
	var app *App
	getApp := func() *App { return app }

	root := &cobra.Command{
		Use:   "smarttask",
		Short: "Smart AI Task Manager in your terminal",
		Long: `smarttask manages your tasks against the Smart AI Task Manager API.

It suggests the best time to work from your completion history, charts when
you get things done and turns spoken (typed) requests into tasks.

Run without a command to open the interactive shell.`,
		Version:       buildinfo.String(),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cmd.Flags())
			if err != nil {
				return err
			}
			app, err = appFactory(cmd.Context(), cfg, in, out)
			if err != nil {
				return err
			}
			app.Start(cmd.Context())
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if app == nil {
				return nil
			}
			return app.Close()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			getApp().Shell(cmd.Context())
			return nil
		},
	}
	root.SetIn(in)
	root.SetOut(out)
	config.RegisterFlags(root.PersistentFlags())

	root.AddCommand(
		simpleCmd("home", "Show the landing page", getApp, (*App).Home),
		simpleCmd("register", "Create an account", getApp, (*App).Register),
		simpleCmd("login", "Log in", getApp, (*App).Login),
		simpleCmd("logout", "Log out and forget the stored token", getApp, (*App).Logout),
		simpleCmd("whoami", "Show the signed-in user", getApp, (*App).WhoAmI),
		simpleCmd("dashboard", "Show suggestion, chart and tasks", getApp, (*App).Dashboard),
		simpleCmd("suggest", "Show the AI best time to work", getApp, (*App).Suggest),
		simpleCmd("chart", "Show task completion by time of day", getApp, (*App).Chart),
		newTasksCmd(getApp),
		newVoiceCmd(getApp),
		newThemeCmd(getApp),
		&cobra.Command{
			Use:   "shell",
			Short: "Open the interactive shell",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				getApp().Shell(cmd.Context())
				return nil
			},
		},
	)
	return root
}

func simpleCmd(use, short string, getApp func() *App, run func(*App, context.Context) error) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(getApp(), cmd.Context())
		},
	}
}

func newTasksCmd(getApp func() *App) *cobra.Command {
	var filter string
	var minutes int

	tasks := &cobra.Command{
		Use:   "tasks",
		Short: "Manage tasks",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List tasks",
		Long: `List your tasks.

Examples:
  smarttask tasks list
  smarttask tasks list --filter completed`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return getApp().List(cmd.Context(), filter)
		},
	}
	list.Flags().StringVarP(&filter, "filter", "f", "all", "all, completed or incomplete")

	add := &cobra.Command{
		Use:   "add",
		Short: "Add a task",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return getApp().AddTask(cmd.Context())
		},
	}

	del := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return getApp().Delete(cmd.Context(), args[0])
		},
	}

	complete := &cobra.Command{
		Use:   "complete <id>",
		Short: "Mark a task completed",
		Long: `Mark a task completed, recording the minutes spent on it.

Without --minutes the time is prompted for until a positive number is given.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m := ""
			if cmd.Flags().Changed("minutes") {
				m = strconv.Itoa(minutes)
			}
			return getApp().Complete(cmd.Context(), args[0], m)
		},
	}
	complete.Flags().IntVarP(&minutes, "minutes", "m", 0, "minutes spent on the task")

	tasks.AddCommand(list, add, del, complete)
	return tasks
}

func newVoiceCmd(getApp func() *App) *cobra.Command {
	return &cobra.Command{
		Use:   "voice [text...]",
		Short: "Create a task from a spoken (typed) request",
		Long: `Send a transcript to the AI and turn the answer into a task draft.

Examples:
  smarttask voice remind me to call the dentist tomorrow
  echo "buy milk tonight" | smarttask voice`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return getApp().Voice(cmd.Context(), strings.Join(args, " "))
		},
	}
}

func newThemeCmd(getApp func() *App) *cobra.Command {
	return &cobra.Command{
		Use:       "theme [light|dark]",
		Short:     "Switch between light and dark theme",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{"light", "dark"},
		RunE: func(cmd *cobra.Command, args []string) error {
			return getApp().Theme(cmd.Context(), arg(args, 0))
		},
	}
}

// Execute runs the command tree and returns the process exit code.
func Execute(ctx context.Context, args []string, in io.Reader, out, errOut io.Writer) int {
	root := NewRootCmd(in, out)
	root.SetErr(errOut)
	if args == nil {
		args = []string{}
	}
	root.SetArgs(args)

	if err := root.ExecuteContext(ctx); err != nil {
		if !errors.Is(err, errAlerted) {
			fmt.Fprintln(errOut, "Error:", err)
		}
		return 1
	}
	return 0
}

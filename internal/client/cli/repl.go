package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Home(ctx context.Context) error
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	WhoAmI(ctx context.Context) error
	Dashboard(ctx context.Context) error
	List(ctx context.Context, filter string) error
	AddTask(ctx context.Context) error
	Delete(ctx context.Context, id string) error
	Complete(ctx context.Context, id, minutes string) error
	Suggest(ctx context.Context) error
	Chart(ctx context.Context) error
	Voice(ctx context.Context, transcript string) error
	Theme(ctx context.Context, name string) error
}

// runREPL starts a simple read–eval–print loop for the smarttask CLI.
//
// It reads a line from reader, parses the first token as the command, and
// dispatches to methods on 'a'. Commands that prompt read from the same
// reader. Unknown commands are reported back to the user. The loop exits on
// EOF, when ctx is done, or when the user types "exit" or "quit".
//
// Prompt & Commands
//
// The prompt shows the current status (from statusFn) and accepts commands:
//
//	Not logged in:
//	  - help                     show available commands
//	  - home                     landing page
//	  - register                 create an account
//	  - login                    authenticate
//	  - theme [light|dark]       switch theme
//	  - exit | quit              leave the program
//
//	Logged in, additionally:
//	  - dashboard | d            suggestion, chart and tasks
//	  - (l)ist [filter]          list tasks (all, completed, incomplete)
//	  - add                      add a task
//	  - delete <id>              delete a task
//	  - complete <id> [minutes]  mark a task completed
//	  - suggest                  best time to work
//	  - chart                    completion times
//	  - voice [text...]          create a task from speech
//	  - whoami                   current user
//	  - logout                   log out
//
// Errors that a handler already showed as an alert are not repeated; any
// other error is printed and the loop continues.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		if ctx.Err() != nil {
			return
		}
		printlnFn(fmt.Sprintf("smarttask%s> ", statusFn()))
		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: (d)ashboard, (l)ist [filter], add, delete <id>, complete <id> [minutes], suggest, chart, voice [text], theme, whoami, home, logout, exit")
			} else {
				printlnFn("Available commands: home, register, login, theme, exit")
			}

		case "home":
			report(a.Home(ctx))

		case "register":
			report(a.Register(ctx))

		case "login":
			report(a.Login(ctx))

		case "logout":
			report(a.Logout(ctx))

		case "whoami":
			report(a.WhoAmI(ctx))

		case "d", "dashboard":
			report(a.Dashboard(ctx))

		case "l", "list":
			report(a.List(ctx, arg(args, 0)))

		case "add":
			report(a.AddTask(ctx))

		case "delete":
			if len(args) == 0 {
				printlnFn("Usage: delete <id>")
				continue
			}
			report(a.Delete(ctx, args[0]))

		case "complete":
			if len(args) == 0 {
				printlnFn("Usage: complete <id> [minutes]")
				continue
			}
			report(a.Complete(ctx, args[0], arg(args, 1)))

		case "suggest":
			report(a.Suggest(ctx))

		case "chart":
			report(a.Chart(ctx))

		case "voice":
			report(a.Voice(ctx, strings.Join(args, " ")))

		case "theme":
			report(a.Theme(ctx, arg(args, 0)))

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}

// report prints err unless it is nil or was already alerted.
func report(err error) {
	if err != nil && !errors.Is(err, errAlerted) {
		printlnFn(err.Error())
	}
}

func arg(args []string, i int) string {
	if i < len(args) {
		return args[i]
	}
	return ""
}

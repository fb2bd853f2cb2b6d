package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dmitrijs2005/smarttask/internal/client/models"
	"github.com/dmitrijs2005/smarttask/internal/client/validation"
	"golang.org/x/term"
)

// readPassword is a test seam for term.ReadPassword.
// In tests you can replace it with a stub to avoid touching the terminal.
var readPassword = term.ReadPassword

// isTerminal reports whether r is an interactive terminal.
func isTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// GetSimpleText prints a prompt to w and reads a single line of input from reader.
// The trailing newline is trimmed. If EOF occurs after some input was read,
// the partial line is returned.
//
// Example prompt format:
//
//	Prompt text
//	> _
func GetSimpleText(reader *bufio.Reader, prompt string, w io.Writer) (string, error) {
	if _, err := fmt.Fprint(w, prompt+"\n> "); err != nil {
		return "", err
	}
	line, err := reader.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && len(line) > 0 {
			return strings.TrimSpace(line), nil
		}
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// GetTextWithDefault is GetSimpleText with a value kept on empty input.
func GetTextWithDefault(reader *bufio.Reader, prompt, def string, w io.Writer) (string, error) {
	if def != "" {
		prompt = fmt.Sprintf("%s [%s]", prompt, def)
	}
	s, err := getSimpleText(reader, prompt, w)
	if err != nil {
		return "", err
	}
	if s == "" {
		return def, nil
	}
	return s, nil
}

// GetPassword prints a password prompt to w and reads a password
// from the user's terminal without echo. A newline is printed after
// the read to keep the UI tidy.
//
// The returned byte slice should be wiped by the caller when no longer needed.
func GetPassword(w io.Writer) ([]byte, error) {
	if _, err := fmt.Fprint(w, "Enter password: "); err != nil {
		return nil, err
	}
	pw, err := readPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(w)
	if err != nil {
		return nil, err
	}
	return pw, nil
}

// GetMinutes asks for the minutes spent on a task until a positive integer
// is confirmed. Every rejected entry prints the validation message.
func GetMinutes(reader *bufio.Reader, w io.Writer) (int, error) {
	in := validation.NewDurationInput()
	for in.State() != validation.StateConfirmed {
		s, err := getSimpleText(reader, "Enter time to complete (minutes):", w)
		if err != nil {
			return 0, err
		}
		if in.Feed(s) == validation.StateInvalid {
			fmt.Fprintln(w, "Please enter a valid number greater than 0.")
		}
	}
	return in.Minutes(), nil
}

// GetDraft prompts for every field of a task draft, offering the values of
// def as defaults.
func GetDraft(reader *bufio.Reader, def models.Draft, w io.Writer) (models.Draft, error) {
	var (
		d   models.Draft
		err error
	)
	if d.Title, err = GetTextWithDefault(reader, "Title", def.Title, w); err != nil {
		return d, err
	}
	if d.Description, err = GetTextWithDefault(reader, "Description", def.Description, w); err != nil {
		return d, err
	}
	if d.Deadline, err = GetTextWithDefault(reader, "Deadline (YYYY-MM-DD)", def.Deadline, w); err != nil {
		return d, err
	}

	for {
		p, err := GetTextWithDefault(reader, "Priority (low, medium, high)", string(def.Priority), w)
		if err != nil {
			return d, err
		}
		if d.Priority, err = models.ParsePriority(p); err == nil {
			return d, nil
		}
		fmt.Fprintln(w, err)
	}
}

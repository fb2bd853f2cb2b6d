package validation

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidDuration is returned for minutes that are not a positive integer.
var ErrInvalidDuration = errors.New("please enter a valid number greater than 0")

// ParseMinutes accepts only a positive base-10 integer.
func ParseMinutes(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidDuration, s)
	}
	return n, nil
}

// InputState is the state of a DurationInput.
type InputState string

const (
	StateAwaitingInput InputState = "awaiting-input"
	StateInvalid       InputState = "invalid"
	StateConfirmed     InputState = "confirmed"
)

// DurationInput collects the minutes spent on a task. It starts in
// StateAwaitingInput, moves to StateInvalid on every rejected entry and to
// StateConfirmed on the first positive integer. StateConfirmed is terminal.
type DurationInput struct {
	state   InputState
	minutes int
	lastErr error
}

func NewDurationInput() *DurationInput {
	return &DurationInput{state: StateAwaitingInput}
}

// Feed submits one entry and returns the resulting state. Feeding a confirmed
// input leaves it unchanged.
func (d *DurationInput) Feed(input string) InputState {
	if d.state == StateConfirmed {
		return d.state
	}

	n, err := ParseMinutes(input)
	if err != nil {
		d.transition(StateInvalid)
		d.lastErr = err
		return d.state
	}

	d.transition(StateConfirmed)
	d.minutes = n
	d.lastErr = nil
	return d.state
}

func (d *DurationInput) transition(to InputState) {
	if !isAllowedTransition(d.state, to) {
		panic(fmt.Sprintf("disallowed duration input transition: %s -> %s", d.state, to))
	}
	d.state = to
}

func isAllowedTransition(from, to InputState) bool {
	switch from {
	case StateAwaitingInput, StateInvalid:
		return to == StateInvalid || to == StateConfirmed
	default:
		return false
	}
}

func (d *DurationInput) State() InputState { return d.state }

// Minutes returns the confirmed value, or 0 before confirmation.
func (d *DurationInput) Minutes() int { return d.minutes }

// Err returns the reason the last entry was rejected.
func (d *DurationInput) Err() error { return d.lastErr }

package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/smarttask/internal/client/client"
	"github.com/dmitrijs2005/smarttask/internal/client/models"
	"github.com/dmitrijs2005/smarttask/internal/logging"
)

// ErrEmptyTranscript is returned for a blank transcript.
var ErrEmptyTranscript = errors.New("empty transcript")

// DefaultDraftResetDelay is how long an interpreted draft is kept unless it
// gets submitted.
const DefaultDraftResetDelay = 5 * time.Second

type stopper interface {
	Stop() bool
}

// VoiceIntake turns a spoken (or typed) transcript into a task draft using
// the server's interpretation endpoint. The draft reverts to the empty form
// after a delay unless it was submitted first.
type VoiceIntake struct {
	client    client.Client
	log       logging.Logger
	delay     time.Duration
	afterFunc func(time.Duration, func()) stopper

	mu    sync.Mutex
	draft models.Draft
	gen   uint64
	timer stopper
}

func NewVoiceIntake(c client.Client, delay time.Duration, log logging.Logger) *VoiceIntake {
	if log == nil {
		log = logging.Discard()
	}
	if delay <= 0 {
		delay = DefaultDraftResetDelay
	}
	return &VoiceIntake{
		client: c,
		log:    log.With("component", "voice"),
		delay:  delay,
		afterFunc: func(d time.Duration, f func()) stopper {
			return time.AfterFunc(d, f)
		},
		draft: models.EmptyDraft(),
	}
}

// Submit interprets transcript and makes the result the current draft. On
// failure the current draft is kept.
func (v *VoiceIntake) Submit(ctx context.Context, transcript string) (models.Draft, error) {
	transcript = strings.TrimSpace(transcript)
	if transcript == "" {
		return v.Draft(), ErrEmptyTranscript
	}

	task, err := v.client.VoiceTask(ctx, transcript)
	if err != nil {
		v.log.Error(ctx, "voice interpretation failed", "error", err)
		return v.Draft(), fmt.Errorf("voice task: %w", err)
	}
	draft := models.FromTask(*task)

	v.mu.Lock()
	defer v.mu.Unlock()

	v.stopLocked()
	v.draft = draft
	gen := v.gen
	v.timer = v.afterFunc(v.delay, func() { v.revert(gen) })

	return draft, nil
}

func (v *VoiceIntake) revert(gen uint64) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.gen != gen {
		return
	}
	v.draft = models.EmptyDraft()
	v.timer = nil
}

// MarkSubmitted cancels a pending revert and clears the draft, which is what
// the form does after a successful add.
func (v *VoiceIntake) MarkSubmitted() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.stopLocked()
	v.draft = models.EmptyDraft()
}

// stopLocked invalidates any armed revert; v.mu must be held.
func (v *VoiceIntake) stopLocked() {
	v.gen++
	if v.timer != nil {
		v.timer.Stop()
		v.timer = nil
	}
}

// Draft returns the current draft.
func (v *VoiceIntake) Draft() models.Draft {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.draft
}

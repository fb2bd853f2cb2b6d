package services

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/dmitrijs2005/smarttask/internal/client/client"
	"github.com/dmitrijs2005/smarttask/internal/client/models"
	"github.com/dmitrijs2005/smarttask/internal/client/validation"
	"github.com/dmitrijs2005/smarttask/internal/logging"
)

// ErrDuplicateTitle marks a draft whose title is already in the list.
var ErrDuplicateTitle = errors.New("duplicate task title")

// TaskStore holds the signed-in user's task list as immutable snapshots.
// Mutations replace the snapshot only after the server accepted them; when
// requests race, the last write wins.
type TaskStore interface {
	FetchAll(ctx context.Context) error
	Add(ctx context.Context, draft models.Draft) (*models.Task, error)
	Remove(ctx context.Context, id string) error
	Complete(ctx context.Context, id string, minutes int) error

	Filtered(filter models.Filter) []models.Task
	Tasks() []models.Task
	Loading() bool
	Suggestion() string
}

type taskStore struct {
	client      client.Client
	suggestions *SuggestionFetcher
	log         logging.Logger

	mu       sync.RWMutex
	tasks    []models.Task
	inFlight int
}

func NewTaskStore(c client.Client, suggestions *SuggestionFetcher, log logging.Logger) TaskStore {
	if log == nil {
		log = logging.Discard()
	}
	if suggestions == nil {
		suggestions = NewSuggestionFetcher(c, log)
	}
	return &taskStore{
		client:      c,
		suggestions: suggestions,
		log:         log.With("component", "tasks"),
		tasks:       []models.Task{},
	}
}

// FetchAll replaces the list with the server's and refreshes the suggestion
// when there is completion history. On failure the list is kept.
func (s *taskStore) FetchAll(ctx context.Context) error {
	s.setLoading(1)
	defer s.setLoading(-1)

	tasks, err := s.client.ListTasks(ctx)
	if err != nil {
		s.log.Error(ctx, "fetch tasks failed", "error", err)
		return fmt.Errorf("fetch tasks: %w", err)
	}

	s.replace(slices.Clone(tasks))
	s.log.Debug(ctx, "tasks fetched", "count", len(tasks))

	if slices.ContainsFunc(tasks, models.Task.IsCompleted) {
		s.suggestions.Refresh(ctx)
	} else {
		s.suggestions.Reset()
	}
	return nil
}

// Add validates the draft against the current list and creates the task.
// Invalid drafts never reach the server.
func (s *taskStore) Add(ctx context.Context, draft models.Draft) (*models.Task, error) {
	draft = draft.Trimmed()
	if err := validation.ValidateDraft(draft, s.Tasks()); err != nil {
		var ve *validation.ValidationError
		if errors.As(err, &ve) && ve.HasType(validation.ErrorTypeDuplicate) {
			return nil, fmt.Errorf("%w: %w", ErrDuplicateTitle, err)
		}
		return nil, err
	}

	task, err := s.client.CreateTask(ctx, draft)
	if err != nil {
		s.log.Error(ctx, "add task failed", "error", err)
		return nil, fmt.Errorf("add task: %w", err)
	}

	s.mu.Lock()
	next := make([]models.Task, 0, len(s.tasks)+1)
	next = append(next, s.tasks...)
	s.tasks = append(next, *task)
	s.mu.Unlock()

	return task, nil
}

// Remove deletes the task on the server, then drops it from the list.
func (s *taskStore) Remove(ctx context.Context, id string) error {
	if err := s.client.DeleteTask(ctx, id); err != nil {
		s.log.Error(ctx, "delete task failed", "id", id, "error", err)
		return fmt.Errorf("delete task: %w", err)
	}

	s.mu.Lock()
	next := make([]models.Task, 0, len(s.tasks))
	for _, t := range s.tasks {
		if t.ID != id {
			next = append(next, t)
		}
	}
	s.tasks = next
	s.mu.Unlock()
	return nil
}

// Complete records minutes spent on a task and resynchronizes the list. Once
// the server accepted the completion, a failed refetch is only logged; the
// list keeps its previous snapshot until the next FetchAll.
func (s *taskStore) Complete(ctx context.Context, id string, minutes int) error {
	if minutes <= 0 {
		return fmt.Errorf("%w: %d", validation.ErrInvalidDuration, minutes)
	}

	if err := s.client.CompleteTask(ctx, id, minutes); err != nil {
		s.log.Error(ctx, "complete task failed", "id", id, "error", err)
		return fmt.Errorf("complete task: %w", err)
	}
	if err := s.FetchAll(ctx); err != nil {
		s.log.Warn(ctx, "refetch after completion failed", "id", id, "error", err)
	}
	return nil
}

// Filtered projects the current list; order is preserved.
func (s *taskStore) Filtered(filter models.Filter) []models.Task {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Task, 0, len(s.tasks))
	for _, t := range s.tasks {
		if filter.Match(t) {
			out = append(out, t)
		}
	}
	return out
}

func (s *taskStore) Tasks() []models.Task {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.tasks)
}

// Loading reports whether a fetch is in flight.
func (s *taskStore) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.inFlight > 0
}

func (s *taskStore) Suggestion() string {
	return s.suggestions.Current()
}

func (s *taskStore) replace(tasks []models.Task) {
	s.mu.Lock()
	s.tasks = tasks
	s.mu.Unlock()
}

func (s *taskStore) setLoading(delta int) {
	s.mu.Lock()
	s.inFlight += delta
	s.mu.Unlock()
}

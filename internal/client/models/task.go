package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// Priority is the urgency assigned to a task.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// DefaultPriority is used by new drafts.
const DefaultPriority = PriorityMedium

// Valid reports whether p is one of the known priorities.
func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// ParsePriority accepts any letter case. An empty string yields DefaultPriority.
func ParsePriority(s string) (Priority, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return DefaultPriority, nil
	}
	p := Priority(s)
	if !p.Valid() {
		return "", fmt.Errorf("unknown priority %q (want low, medium or high)", s)
	}
	return p, nil
}

// Status is the lifecycle state of a task.
type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
)

// DateLayout is the calendar-date format of task deadlines.
const DateLayout = "2006-01-02"

// Task is a server-owned task as seen by the client.
//
// CompletionTime holds the raw completion timestamp and is set only for
// completed tasks. It is kept as text so that unparsable values can be
// skipped by consumers instead of failing the whole list.
type Task struct {
	ID                string
	Title             string
	Description       string
	Priority          Priority
	Deadline          string
	Status            Status
	CompletionTime    string
	CompletionMinutes int
}

// IsCompleted reports whether the task has been marked done.
func (t Task) IsCompleted() bool {
	return t.Status == StatusCompleted
}

type taskJSON struct {
	ID             string          `json:"id,omitempty"`
	MongoID        string          `json:"_id,omitempty"`
	Title          string          `json:"title"`
	Description    string          `json:"description"`
	Priority       Priority        `json:"priority"`
	Deadline       string          `json:"deadline"`
	Status         Status          `json:"status"`
	CompletionTime json.RawMessage `json:"completion_time,omitempty"`
	CompletedAt    string          `json:"completed_at,omitempty"`
	TimeSpent      int             `json:"time_spent,omitempty"`
}

// UnmarshalJSON decodes the task API representation. "completion_time" may
// carry either the completion timestamp or the minutes spent; both are kept.
// An unreadable completion value never fails the decode.
func (t *Task) UnmarshalJSON(data []byte) error {
	var raw taskJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*t = Task{
		ID:                firstNonEmpty(raw.MongoID, raw.ID),
		Title:             raw.Title,
		Description:       raw.Description,
		Priority:          raw.Priority,
		Deadline:          normalizeDate(raw.Deadline),
		Status:            raw.Status,
		CompletionMinutes: raw.TimeSpent,
	}

	// Values of any other shape are skipped; the histogram ignores tasks
	// without a readable completion time.
	ct := bytes.TrimSpace(raw.CompletionTime)
	switch {
	case len(ct) == 0 || bytes.Equal(ct, []byte("null")):
	case ct[0] == '"':
		var ts string
		if json.Unmarshal(ct, &ts) == nil {
			t.CompletionTime = ts
		}
	default:
		var minutes float64
		if json.Unmarshal(ct, &minutes) == nil {
			t.CompletionMinutes = int(minutes)
		}
	}

	if t.CompletionTime == "" {
		t.CompletionTime = raw.CompletedAt
	}
	return nil
}

// MarshalJSON writes the API representation, using "_id" for the identifier.
func (t Task) MarshalJSON() ([]byte, error) {
	raw := taskJSON{
		MongoID:     t.ID,
		Title:       t.Title,
		Description: t.Description,
		Priority:    t.Priority,
		Deadline:    t.Deadline,
		Status:      t.Status,
		TimeSpent:   t.CompletionMinutes,
	}
	if t.CompletionTime != "" {
		ct, err := json.Marshal(t.CompletionTime)
		if err != nil {
			return nil, err
		}
		raw.CompletionTime = ct
	}
	return json.Marshal(raw)
}

// normalizeDate strips the time part of an ISO timestamp ("2025-03-01T00:00:00.000Z").
func normalizeDate(s string) string {
	if len(s) > len(DateLayout) && s[len(DateLayout)] == 'T' {
		return s[:len(DateLayout)]
	}
	return s
}

package models

import "strings"

// Draft is the unsaved form state of a task being composed. Its JSON form is
// the body of a task-create request.
type Draft struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Priority    Priority `json:"priority"`
	Deadline    string   `json:"deadline"`
}

// EmptyDraft returns the form defaults: blank fields and medium priority.
func EmptyDraft() Draft {
	return Draft{Priority: DefaultPriority}
}

// IsEmpty reports whether the draft equals the form defaults.
func (d Draft) IsEmpty() bool {
	return d == EmptyDraft()
}

// Trimmed returns a copy with surrounding whitespace removed from text fields
// and the priority defaulted when missing.
func (d Draft) Trimmed() Draft {
	d.Title = strings.TrimSpace(d.Title)
	d.Description = strings.TrimSpace(d.Description)
	d.Deadline = normalizeDate(strings.TrimSpace(d.Deadline))
	if d.Priority == "" {
		d.Priority = DefaultPriority
	}
	return d
}

// FromTask builds a draft from a task-shaped payload, such as the one returned
// by the voice interpretation endpoint.
func FromTask(t Task) Draft {
	d := Draft{
		Title:       t.Title,
		Description: t.Description,
		Priority:    t.Priority,
		Deadline:    t.Deadline,
	}
	if !d.Priority.Valid() {
		d.Priority = DefaultPriority
	}
	return d
}

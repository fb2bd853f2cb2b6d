package validation

import (
	"strings"
	"time"

	"github.com/dmitrijs2005/smarttask/internal/client/models"
)

// Messages of the blocking alerts raised by draft validation.
const (
	MsgEmptyFields = "Title and Description cannot be empty!"
	MsgDuplicate   = "This task already exists!"
)

// ValidateDraft checks a draft against the current task list. Title and
// description must be non-empty after trimming, the title must not match an
// existing title case-insensitively, the priority must be known and the
// deadline, when present, must be a calendar date.
//
// It returns nil or a *ValidationError.
func ValidateDraft(d models.Draft, existing []models.Task) error {
	d = d.Trimmed()
	ve := NewValidationError()

	if d.Title == "" || d.Description == "" {
		if d.Title == "" {
			ve.AddError("title", ErrorTypeRequired, MsgEmptyFields, nil)
		}
		if d.Description == "" {
			ve.AddError("description", ErrorTypeRequired, MsgEmptyFields, nil)
		}
	}

	if d.Title != "" && hasTitle(existing, d.Title) {
		ve.AddError("title", ErrorTypeDuplicate, MsgDuplicate, d.Title)
	}

	if !d.Priority.Valid() {
		ve.AddInvalidValueError("priority", d.Priority, "want low, medium or high")
	}

	if d.Deadline != "" {
		if _, err := time.Parse(models.DateLayout, d.Deadline); err != nil {
			ve.AddInvalidFormatError("deadline", d.Deadline, models.DateLayout)
		}
	}

	if ve.HasErrors() {
		return ve
	}
	return nil
}

func hasTitle(tasks []models.Task, title string) bool {
	for _, t := range tasks {
		if strings.EqualFold(strings.TrimSpace(t.Title), title) {
			return true
		}
	}
	return false
}

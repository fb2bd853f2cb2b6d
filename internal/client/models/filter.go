package models

import (
	"fmt"
	"strings"
)

// Filter selects which tasks a list view shows.
type Filter string

const (
	FilterAll        Filter = "all"
	FilterCompleted  Filter = "completed"
	FilterIncomplete Filter = "incomplete"
)

// ParseFilter maps user input to a Filter. An empty string means FilterAll.
func ParseFilter(s string) (Filter, error) {
	switch f := Filter(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return FilterAll, nil
	case FilterAll, FilterCompleted, FilterIncomplete:
		return f, nil
	default:
		return "", fmt.Errorf("unknown filter %q (want all, completed or incomplete)", s)
	}
}

// Match reports whether t passes the filter. Any status other than completed
// counts as incomplete.
func (f Filter) Match(t Task) bool {
	switch f {
	case FilterCompleted:
		return t.IsCompleted()
	case FilterIncomplete:
		return !t.IsCompleted()
	default:
		return true
	}
}

// Label is the heading shown above a filtered list.
func (f Filter) Label() string {
	switch f {
	case FilterCompleted:
		return "Completed Tasks"
	case FilterIncomplete:
		return "Incomplete Tasks"
	default:
		return "All Tasks"
	}
}

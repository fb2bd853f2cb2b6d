package services

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"sync"

	"github.com/dmitrijs2005/smarttask/internal/client/client"
	"github.com/dmitrijs2005/smarttask/internal/logging"
)

// Fixed suggestion texts.
const (
	SuggestionNoHistory     = "N/A"
	SuggestionEmpty         = "No valid suggestion"
	SuggestionNoTaskHistory = "No task history available"
	SuggestionError         = "Error fetching time"
)

// EmphasisMarker delimits emphasized spans in a suggestion string.
const EmphasisMarker = "**"

var timeRangePattern = regexp.MustCompile(`(\d{1,2} [APM]{2} - \d{1,2} [APM]{2})`)

// Emphasize wraps every time range such as "9 AM - 11 AM" in EmphasisMarker.
// Markers already present in s are dropped first so ranges are never wrapped
// twice.
func Emphasize(s string) string {
	s = strings.ReplaceAll(s, EmphasisMarker, "")
	return timeRangePattern.ReplaceAllString(s, EmphasisMarker+"$1"+EmphasisMarker)
}

// SuggestionFetcher keeps the advisory "best time to work" text. Failures
// are folded into fixed messages and never reach the caller.
type SuggestionFetcher struct {
	client client.Client
	log    logging.Logger

	mu      sync.RWMutex
	current string
}

func NewSuggestionFetcher(c client.Client, log logging.Logger) *SuggestionFetcher {
	if log == nil {
		log = logging.Discard()
	}
	return &SuggestionFetcher{
		client:  c,
		log:     log.With("component", "suggestion"),
		current: SuggestionNoHistory,
	}
}

// Refresh asks the server for a suggestion and returns the displayable text.
func (f *SuggestionFetcher) Refresh(ctx context.Context) string {
	text, err := f.client.SuggestTime(ctx)

	var s string
	switch {
	case errors.Is(err, client.ErrBadRequest):
		s = SuggestionNoTaskHistory
	case err != nil:
		f.log.Warn(ctx, "suggestion failed", "error", err)
		s = SuggestionError
	case strings.TrimSpace(text) == "":
		s = SuggestionEmpty
	default:
		s = Emphasize(text)
	}

	f.set(s)
	return s
}

// Reset shows the no-history marker.
func (f *SuggestionFetcher) Reset() {
	f.set(SuggestionNoHistory)
}

func (f *SuggestionFetcher) set(s string) {
	f.mu.Lock()
	f.current = s
	f.mu.Unlock()
}

// Current returns the last displayed text.
func (f *SuggestionFetcher) Current() string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.current
}

package report

import (
	"sync"

	"github.com/paveup/paveup/internal/models"
)

// Generation tags one in-flight classification request.
type Generation uint64

// Session enforces the last-submitted-image-wins policy for classification
// results: a completion for a superseded image is discarded instead of being
// applied. Generation tokens make the behavior deterministic rather than
// depending on completion timing.
type Session struct {
	mu      sync.Mutex
	current Generation
	result  *models.ClassificationResult
}

// NewSession creates an empty session.
func NewSession() *Session {
	return &Session{}
}

// Begin registers a new image submission and returns its generation token.
// Any classification still in flight for an earlier generation becomes stale.
func (s *Session) Begin() Generation {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current++
	s.result = nil
	return s.current
}

// Complete applies a finished classification if its generation is still
// current. It reports whether the result was applied; stale completions are
// dropped.
func (s *Session) Complete(gen Generation, result models.ClassificationResult) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.current {
		return false
	}
	s.result = &result
	return true
}

// Current returns the applied classification for the active generation,
// if any.
func (s *Session) Current() (models.ClassificationResult, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.result == nil {
		return models.ClassificationResult{}, false
	}
	return *s.result, true
}

// Reset discards the session state, as on submit-success or explicit reset.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current++
	s.result = nil
}

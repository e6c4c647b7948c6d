// Package api provides the HTTP surface and the local emission sink for
// accepted reports.
package api

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/paveup/paveup/internal/models"
	"github.com/rs/zerolog/log"
)

// Sink receives accepted submission payloads. The current system emits
// locally only; no network submission endpoint exists.
type Sink interface {
	Emit(payload models.SubmissionPayload) error
}

// LogSink emits each payload as a structured log event.
type LogSink struct{}

// Emit logs the payload.
func (LogSink) Emit(payload models.SubmissionPayload) error {
	log.Info().
		Str("reference_id", payload.ReferenceID).
		Str("issue_type", payload.IssueType).
		Float64("lat", payload.Location.Lat).
		Float64("lng", payload.Location.Lng).
		Str("authority", payload.Authority.Name).
		Time("timestamp", payload.Timestamp).
		Msg("Report submitted")
	return nil
}

// FileSink appends each payload as one JSON line to a local file, in addition
// to logging it.
type FileSink struct {
	mu   sync.Mutex
	path string
}

// NewFileSink creates a sink appending to the given path.
func NewFileSink(path string) *FileSink {
	return &FileSink{path: path}
}

// Emit appends the payload to the file.
func (s *FileSink) Emit(payload models.SubmissionPayload) error {
	LogSink{}.Emit(payload)

	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode payload: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := os.OpenFile(s.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to open sink file: %w", err)
	}
	defer f.Close()

	if _, err := f.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("failed to write payload: %w", err)
	}
	return nil
}

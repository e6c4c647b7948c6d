// Package report assembles user submissions: it validates the report draft,
// picks the responsible authority and resolution estimate, and produces the
// final payload for local emission.
package report

import (
	"fmt"
	"strings"

	"github.com/paveup/paveup/internal/models"
)

// Validation field codes.
const (
	FieldMissingPhoto       = "missing_photo"
	FieldMissingCoordinates = "missing_coordinates"
	FieldInvalidPhone       = "invalid_phone"
)

// ValidationError reports a draft field that blocks submission. It is
// recoverable by user correction; nothing in this taxonomy is fatal.
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("report validation failed: %s", e.Field)
}

// SanitizePhone keeps digits only and caps the value at 10 characters,
// matching the keystroke-time sanitation of the form.
func SanitizePhone(raw string) string {
	var b strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
		if b.Len() == 10 {
			break
		}
	}
	return b.String()
}

// ValidateDraft enforces the submit-time requirements: photo and coordinates
// present, and a non-empty phone exactly 10 digits. A shorter non-empty phone
// is a submit-time error, not a keystroke-time one.
func ValidateDraft(draft models.ReportDraft) error {
	if draft.PhotoName == "" {
		return &ValidationError{Field: FieldMissingPhoto}
	}
	if draft.Coordinates == nil {
		return &ValidationError{Field: FieldMissingCoordinates}
	}
	if draft.Phone != "" && len(draft.Phone) != 10 {
		return &ValidationError{Field: FieldInvalidPhone}
	}
	return nil
}

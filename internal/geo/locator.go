// Package geo provides one-shot position acquisition and best-effort reverse
// geocoding. Neither operation retries: location failures surface as a status
// the caller can show, and geocoding failures leave the address empty without
// blocking submission.
package geo

import (
	"context"
	"errors"
	"time"

	"github.com/paveup/paveup/internal/models"
)

// DetectTimeout is the bounded wait for a single position request.
const DetectTimeout = 10 * time.Second

var (
	// ErrTimeout indicates the position source did not answer in time.
	ErrTimeout = errors.New("geo: position request timed out")
	// ErrDenied indicates the position source refused the request.
	ErrDenied = errors.New("geo: position access denied")
)

// PositionSource supplies the device position. Implementations are expected
// to honor context cancellation.
type PositionSource interface {
	Position(ctx context.Context) (models.Coordinates, error)
}

// Locator wraps a PositionSource with the one-shot timeout policy.
type Locator struct {
	source PositionSource
}

// NewLocator creates a locator over the given source.
func NewLocator(source PositionSource) *Locator {
	return &Locator{source: source}
}

// Detect performs a single position request with the bounded wait. On timeout
// or denial the coordinates stay unset; there is no automatic retry.
func (l *Locator) Detect(ctx context.Context) (models.Coordinates, error) {
	ctx, cancel := context.WithTimeout(ctx, DetectTimeout)
	defer cancel()

	coords, err := l.source.Position(ctx)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return models.Coordinates{}, ErrTimeout
		}
		return models.Coordinates{}, err
	}
	return coords, nil
}

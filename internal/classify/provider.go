// Package classify turns an uploaded image into a normalized civic-issue
// classification, wrapping an external vision model behind a pluggable
// provider interface.
package classify

import (
	"context"
	"fmt"

	"github.com/paveup/paveup/internal/config"
)

// ImageData is one image prepared for transport.
type ImageData struct {
	Bytes    []byte
	MIMEType string
	Name     string
}

// Provider defines the interface for vision model providers.
type Provider interface {
	// AnalyzeImage sends the image and instruction to the model and returns
	// the raw reply text.
	AnalyzeImage(ctx context.Context, image ImageData, prompt string) (string, error)

	// Name returns the provider name.
	Name() string
}

// NewProvider creates a new vision provider based on configuration.
func NewProvider(cfg *config.ClassifierConfig) (Provider, error) {
	switch cfg.Provider {
	case "openai":
		return NewOpenAIProvider(cfg)
	case "gemini":
		return NewGeminiProvider(cfg)
	default:
		return nil, fmt.Errorf("unsupported classifier provider: %s", cfg.Provider)
	}
}

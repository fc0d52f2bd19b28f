// Package extraction defines the provider interface and registry for
// named-entity extraction backends.
//
// It follows the same pluggable provider pattern as the transcription
// package: backends register a factory and are created by name.
//
//	reg := extraction.NewRegistry()
//	reg.RegisterFactory(huggingface.ProviderName, huggingface.Factory())
package extraction

import (
	"context"

	"github.com/skillsenselab/medvoice/entity"
	"github.com/skillsenselab/medvoice/provider"
)

// Provider is the interface that entity extraction backends must implement.
type Provider interface {
	provider.Provider // embeds Name() and IsAvailable()

	// Extract sends text for named-entity recognition and returns the raw
	// entity list in model output order. Failures are returned as
	// *errors.AppError values distinguishing an unavailable upstream from a
	// malformed payload.
	Extract(ctx context.Context, text string) ([]entity.Entity, error)
}

// NewRegistry creates a new provider registry for extraction providers.
func NewRegistry() *provider.Registry[Provider] {
	return provider.NewRegistry[Provider]()
}

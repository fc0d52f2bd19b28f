// Package provider implements the pluggable backend pattern used by the
// transcription and extraction gateways: a base Provider interface, typed
// factories, and a concurrency-safe registry of named instances.
package provider

import "context"

// Provider is the base interface all providers must implement.
type Provider interface {
	// Name returns the provider's unique name.
	Name() string
	// IsAvailable checks if the provider is ready to handle requests.
	IsAvailable(ctx context.Context) bool
}

// Factory creates a provider instance from configuration.
type Factory[T Provider] func(cfg map[string]any) (T, error)

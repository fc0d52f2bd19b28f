// Package transcription defines the provider interface and common types for
// interacting with speech-to-text-translate backends.
package transcription

import (
	"context"

	"github.com/skillsenselab/medvoice/provider"
)

// Request holds parameters for a transcription call.
type Request struct {
	// AudioPath is the path to the audio file to transcribe.
	AudioPath string `json:"audio_path"`
	// Model is the transcription model to use.
	Model string `json:"model,omitempty"`
}

// Result holds the outcome of a transcription call.
type Result struct {
	// Text is the full translated transcript.
	Text string `json:"text"`
	// LanguageCode is the detected source language (e.g. "hi-IN"), or
	// "unknown" when the backend does not report one.
	LanguageCode string `json:"language_code"`
}

// Provider is the interface that transcription backends must implement.
type Provider interface {
	provider.Provider // embeds Name() and IsAvailable()

	// Transcribe sends audio for transcription and returns the result.
	Transcribe(ctx context.Context, req Request) (*Result, error)
}

// NewRegistry creates a new provider registry for transcription providers.
func NewRegistry() *provider.Registry[Provider] {
	return provider.NewRegistry[Provider]()
}

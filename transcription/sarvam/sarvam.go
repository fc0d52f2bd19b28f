// Package sarvam implements transcription.Provider against the Sarvam AI
// speech-to-text-translate API.
package sarvam

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"time"

	apperrors "github.com/skillsenselab/medvoice/errors"
	"github.com/skillsenselab/medvoice/provider"
	"github.com/skillsenselab/medvoice/transcription"
)

const (
	// ProviderName is the registered name for the Sarvam provider.
	ProviderName = "sarvam"

	// serviceName tags errors and health output.
	serviceName = "sarvam"

	defaultAPIURL  = "https://api.sarvam.ai/speech-to-text-translate"
	defaultModel   = "saaras:v2.5"
	defaultTimeout = 120 * time.Second
)

// Config holds configuration for the Sarvam transcription provider.
type Config struct {
	APIURL  string        `yaml:"api_url" mapstructure:"api_url"`
	APIKey  string        `yaml:"api_key" mapstructure:"api_key" validate:"required"`
	Model   string        `yaml:"model" mapstructure:"model"`
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"`
}

// ApplyDefaults sets default values for unset fields.
func (c *Config) ApplyDefaults() {
	if c.APIURL == "" {
		c.APIURL = defaultAPIURL
	}
	if c.Model == "" {
		c.Model = defaultModel
	}
	if c.Timeout == 0 {
		c.Timeout = defaultTimeout
	}
}

// Provider implements transcription.Provider using the Sarvam HTTP API.
type Provider struct {
	cfg    Config
	client *http.Client
}

// NewProvider creates a new Sarvam transcription provider.
func NewProvider(cfg Config) *Provider {
	cfg.ApplyDefaults()
	return &Provider{
		cfg: cfg,
		client: &http.Client{
			Timeout: cfg.Timeout,
		},
	}
}

// Factory returns a provider.Factory that creates Sarvam Provider instances
// from a generic config map.
func Factory() provider.Factory[transcription.Provider] {
	return func(cfg map[string]any) (transcription.Provider, error) {
		sc := Config{}
		if v, ok := cfg["api_url"].(string); ok {
			sc.APIURL = v
		}
		if v, ok := cfg["api_key"].(string); ok {
			sc.APIKey = v
		}
		if v, ok := cfg["model"].(string); ok {
			sc.Model = v
		}
		if v, ok := cfg["timeout"].(time.Duration); ok {
			sc.Timeout = v
		}
		return NewProvider(sc), nil
	}
}

// Name returns the provider name.
func (p *Provider) Name() string { return ProviderName }

// IsAvailable reports whether the Sarvam endpoint answers at all. The API
// has no health route, so any HTTP response counts as reachable.
func (p *Provider) IsAvailable(ctx context.Context) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.cfg.APIURL, nil)
	if err != nil {
		return false
	}
	resp, err := p.client.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	return true
}

// sarvamResponse mirrors the speech-to-text-translate success payload.
type sarvamResponse struct {
	Transcript   string `json:"transcript"`
	LanguageCode string `json:"language_code"`
}

// Transcribe uploads the audio file and returns the translated transcript.
func (p *Provider) Transcribe(ctx context.Context, req transcription.Request) (*transcription.Result, error) {
	audioData, err := os.ReadFile(req.AudioPath)
	if err != nil {
		return nil, fmt.Errorf("read audio file: %w", err)
	}

	model := p.cfg.Model
	if req.Model != "" {
		model = req.Model
	}

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	part, err := writer.CreateFormFile("file", filepath.Base(req.AudioPath))
	if err != nil {
		return nil, fmt.Errorf("create form file: %w", err)
	}
	if _, err := part.Write(audioData); err != nil {
		return nil, fmt.Errorf("write audio data: %w", err)
	}
	_ = writer.WriteField("model", model)
	writer.Close()

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.cfg.APIURL, &buf)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", writer.FormDataContentType())
	httpReq.Header.Set("api-subscription-key", p.cfg.APIKey)

	resp, err := p.client.Do(httpReq)
	if err != nil {
		return nil, apperrors.ExternalServiceError(serviceName, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read transcription response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, apperrors.UpstreamUnavailable(serviceName, resp.StatusCode, string(body))
	}

	var result sarvamResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, apperrors.MalformedPayload(serviceName, "response is not valid JSON")
	}

	lang := result.LanguageCode
	if lang == "" {
		lang = "unknown"
	}

	return &transcription.Result{
		Text:         result.Transcript,
		LanguageCode: lang,
	}, nil
}

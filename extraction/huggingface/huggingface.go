// Package huggingface implements extraction.Provider against the HuggingFace
// inference API for token-classification models.
package huggingface

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/skillsenselab/medvoice/entity"
	apperrors "github.com/skillsenselab/medvoice/errors"
	"github.com/skillsenselab/medvoice/extraction"
	"github.com/skillsenselab/medvoice/provider"
)

const (
	// ProviderName is the registered name for the HuggingFace provider.
	ProviderName = "huggingface"

	// serviceName tags errors and health output.
	serviceName = "huggingface"

	defaultAPIURL  = "https://router.huggingface.co/hf-inference/models/d4data/biomedical-ner-all"
	defaultTimeout = 60 * time.Second
)

// Config holds configuration for the HuggingFace extraction provider.
type Config struct {
	APIURL   string        `yaml:"api_url" mapstructure:"api_url"`
	APIToken string        `yaml:"api_token" mapstructure:"api_token" validate:"required"`
	Timeout  time.Duration `yaml:"timeout" mapstructure:"timeout"`
}

// ApplyDefaults sets default values for unset fields.
func (c *Config) ApplyDefaults() {
	if c.APIURL == "" {
		c.APIURL = defaultAPIURL
	}
	if c.Timeout == 0 {
		c.Timeout = defaultTimeout
	}
}

// Provider implements extraction.Provider using the HuggingFace inference API.
type Provider struct {
	cfg    Config
	client *http.Client
}

// NewProvider creates a new HuggingFace extraction provider.
func NewProvider(cfg Config) *Provider {
	cfg.ApplyDefaults()
	return &Provider{
		cfg: cfg,
		client: &http.Client{
			Timeout: cfg.Timeout,
		},
	}
}

// Factory returns a provider.Factory that creates HuggingFace Provider
// instances from a generic config map.
func Factory() provider.Factory[extraction.Provider] {
	return func(cfg map[string]any) (extraction.Provider, error) {
		hc := Config{}
		if v, ok := cfg["api_url"].(string); ok {
			hc.APIURL = v
		}
		if v, ok := cfg["api_token"].(string); ok {
			hc.APIToken = v
		}
		if v, ok := cfg["timeout"].(time.Duration); ok {
			hc.Timeout = v
		}
		return NewProvider(hc), nil
	}
}

// Name returns the provider name.
func (p *Provider) Name() string { return ProviderName }

// IsAvailable reports whether the inference endpoint answers at all. The
// router rejects unauthenticated GETs, so any HTTP response counts as
// reachable; only transport errors count as down.
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

// inferenceRequest is the payload for the token-classification endpoint.
type inferenceRequest struct {
	Inputs string `json:"inputs"`
}

// wireEntity mirrors one element of the model's JSON output. End and Score
// are pointers so absent fields can be defaulted explicitly.
type wireEntity struct {
	Word        string   `json:"word"`
	Entity      string   `json:"entity"`
	EntityGroup string   `json:"entity_group"`
	Start       int      `json:"start"`
	End         *int     `json:"end"`
	Score       *float64 `json:"score"`
}

// Extract sends text to the inference API and returns the raw entity list.
func (p *Provider) Extract(ctx context.Context, text string) ([]entity.Entity, error) {
	payload, err := json.Marshal(inferenceRequest{Inputs: text})
	if err != nil {
		return nil, fmt.Errorf("marshal inference request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.cfg.APIURL, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+p.cfg.APIToken)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(httpReq)
	if err != nil {
		return nil, apperrors.ExternalServiceError(serviceName, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read inference response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, apperrors.UpstreamUnavailable(serviceName, resp.StatusCode, string(body))
	}

	return decodeEntities(body)
}

// decodeEntities distinguishes the three shapes the inference API returns:
// a JSON array of entities (success), a JSON object with an "error" key
// (error envelope), or anything else (malformed). Only a JSON array counts
// as an entity list; null or any other non-array value never decodes to an
// empty result.
func decodeEntities(body []byte) ([]entity.Entity, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return decodeFailure(trimmed)
	}

	var wire []wireEntity
	if err := json.Unmarshal(trimmed, &wire); err == nil {
		entities := make([]entity.Entity, len(wire))
		for i, w := range wire {
			e := entity.Entity{
				Word:        w.Word,
				Entity:      w.Entity,
				EntityGroup: w.EntityGroup,
				Start:       w.Start,
				End:         w.Start,
			}
			if w.End != nil {
				e.End = *w.End
			}
			if w.Score != nil {
				e.Score = *w.Score
			}
			entities[i] = e
		}
		return entities, nil
	}

	return decodeFailure(trimmed)
}

// decodeFailure classifies a non-entity-list body as either an error
// envelope or a plain malformed payload.
func decodeFailure(body []byte) ([]entity.Entity, error) {
	var envelope struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(body, &envelope); err == nil && envelope.Error != "" {
		return nil, apperrors.MalformedPayload(serviceName, "error envelope: "+envelope.Error)
	}

	return nil, apperrors.MalformedPayload(serviceName, "response is not an entity list")
}

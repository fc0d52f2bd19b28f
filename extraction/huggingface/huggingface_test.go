package huggingface

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	apperrors "github.com/skillsenselab/medvoice/errors"
)

func newTestProvider(t *testing.T, handler http.HandlerFunc) (*Provider, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewProvider(Config{APIURL: srv.URL, APIToken: "hf_test"}), srv
}

func TestExtract_Success(t *testing.T) {
	var gotAuth, gotBody string
	p, _ := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		buf := make([]byte, r.ContentLength)
		r.Body.Read(buf)
		gotBody = string(buf)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[
			{"word":"hyper","entity":"DISEASE","start":12,"end":17,"score":0.9},
			{"word":"tension","entity":"DISEASE","start":17,"end":24,"score":0.8}
		]`))
	})

	entities, err := p.Extract(context.Background(), "Patient has hypertension today.")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotAuth != "Bearer hf_test" {
		t.Errorf("expected bearer auth, got %q", gotAuth)
	}
	if !strings.Contains(gotBody, `"inputs"`) {
		t.Errorf("expected inputs payload, got %q", gotBody)
	}
	if len(entities) != 2 {
		t.Fatalf("expected 2 entities, got %d", len(entities))
	}
	if entities[0].Word != "hyper" || entities[0].Entity != "DISEASE" {
		t.Errorf("unexpected first entity: %+v", entities[0])
	}
	if entities[1].Start != 17 || entities[1].End != 24 {
		t.Errorf("unexpected offsets: %+v", entities[1])
	}
}

func TestExtract_MissingEndDefaultsToStart(t *testing.T) {
	p, _ := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"word":"fever","entity_group":"Sign_symptom","start":5,"score":0.7}]`))
	})

	entities, err := p.Extract(context.Background(), "text")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if entities[0].End != 5 {
		t.Errorf("expected end defaulted to start (5), got %d", entities[0].End)
	}
}

func TestExtract_MissingScoreDefaultsToZero(t *testing.T) {
	p, _ := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"word":"fever","entity":"SYMPTOM","start":0,"end":5}]`))
	})

	entities, err := p.Extract(context.Background(), "fever")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if entities[0].Score != 0 {
		t.Errorf("expected score 0, got %v", entities[0].Score)
	}
}

func TestExtract_UpstreamUnavailable(t *testing.T) {
	p, _ := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte("model loading"))
	})

	_, err := p.Extract(context.Background(), "text")
	appErr, ok := apperrors.AsAppError(err)
	if !ok {
		t.Fatalf("expected AppError, got %v", err)
	}
	if appErr.Code != apperrors.ErrCodeUpstreamUnavailable {
		t.Errorf("expected UPSTREAM_UNAVAILABLE, got %s", appErr.Code)
	}
	if appErr.Details["upstream_status"] != 503 {
		t.Errorf("expected upstream_status 503, got %v", appErr.Details["upstream_status"])
	}
	if appErr.Details["upstream_body"] != "model loading" {
		t.Errorf("expected raw body carried, got %v", appErr.Details["upstream_body"])
	}
}

func TestExtract_ErrorEnvelopeIsMalformed(t *testing.T) {
	p, _ := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"error":"rate limited"}`))
	})

	_, err := p.Extract(context.Background(), "text")
	appErr, ok := apperrors.AsAppError(err)
	if !ok {
		t.Fatalf("expected AppError, got %v", err)
	}
	if appErr.Code != apperrors.ErrCodeMalformedPayload {
		t.Errorf("expected MALFORMED_PAYLOAD, got %s", appErr.Code)
	}
	if !strings.Contains(appErr.Message, "rate limited") {
		t.Errorf("expected envelope message carried, got %q", appErr.Message)
	}
}

func TestExtract_NonListPayloadIsMalformed(t *testing.T) {
	p, _ := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"unexpected":"shape"}`))
	})

	_, err := p.Extract(context.Background(), "text")
	appErr, ok := apperrors.AsAppError(err)
	if !ok {
		t.Fatalf("expected AppError, got %v", err)
	}
	if appErr.Code != apperrors.ErrCodeMalformedPayload {
		t.Errorf("expected MALFORMED_PAYLOAD, got %s", appErr.Code)
	}
}

func TestExtract_NullPayloadIsMalformed(t *testing.T) {
	bodies := []string{`null`, `  null `, `""`, `42`, ``}
	for _, body := range bodies {
		p, _ := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(body))
		})

		entities, err := p.Extract(context.Background(), "text")
		if err == nil {
			t.Errorf("body %q: expected error, got success with %d entities", body, len(entities))
			continue
		}
		appErr, ok := apperrors.AsAppError(err)
		if !ok || appErr.Code != apperrors.ErrCodeMalformedPayload {
			t.Errorf("body %q: expected MALFORMED_PAYLOAD, got %v", body, err)
		}
	}
}

func TestExtract_MalformedDistinctFromUnavailable(t *testing.T) {
	down, _ := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})
	garbage, _ := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`"not a list"`))
	})

	_, errDown := down.Extract(context.Background(), "text")
	_, errGarbage := garbage.Extract(context.Background(), "text")

	downErr, _ := apperrors.AsAppError(errDown)
	garbageErr, _ := apperrors.AsAppError(errGarbage)
	if downErr == nil || garbageErr == nil {
		t.Fatal("expected AppErrors from both providers")
	}
	if downErr.Code == garbageErr.Code {
		t.Error("service-down and malformed-payload must be distinguishable")
	}
}

func TestExtract_EmptyList(t *testing.T) {
	p, _ := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	})

	entities, err := p.Extract(context.Background(), "nothing medical here")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(entities) != 0 {
		t.Errorf("expected empty list, got %v", entities)
	}
}

func TestFactory_BuildsFromConfigMap(t *testing.T) {
	factory := Factory()
	p, err := factory(map[string]any{
		"api_url":   "http://localhost:9999",
		"api_token": "tok",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Name() != ProviderName {
		t.Errorf("expected provider name %q, got %q", ProviderName, p.Name())
	}
}

func TestConfig_ApplyDefaults(t *testing.T) {
	var cfg Config
	cfg.ApplyDefaults()
	if cfg.APIURL == "" {
		t.Error("expected default API URL")
	}
	if cfg.Timeout == 0 {
		t.Error("expected default timeout")
	}
}

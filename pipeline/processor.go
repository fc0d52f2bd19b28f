// Package pipeline orchestrates one audio-processing request: transcribe the
// recording, extract entities from the transcript, and categorize them.
//
// Processing is all-or-nothing: a gateway failure aborts the request before
// aggregation and no partial entity set is ever returned alongside an error.
// The processor holds only its two providers and a logger, so concurrent
// requests never share mutable state.
package pipeline

import (
	"context"
	"path/filepath"

	"github.com/skillsenselab/medvoice/entity"
	"github.com/skillsenselab/medvoice/extraction"
	"github.com/skillsenselab/medvoice/logger"
	"github.com/skillsenselab/medvoice/observability"
	"github.com/skillsenselab/medvoice/transcription"
)

// Transcription carries the transcript portion of a processing result.
type Transcription struct {
	Text         string `json:"text"`
	LanguageCode string `json:"language_code"`
}

// Result is the successful outcome of processing one audio file.
type Result struct {
	Transcription   Transcription          `json:"transcription"`
	MedicalEntities *entity.CategorizedSet `json:"medical_entities"`
	AudioFile       string                 `json:"audio_file"`
}

// Processor runs the transcribe-extract-categorize pipeline.
type Processor struct {
	transcriber transcription.Provider
	extractor   extraction.Provider
	log         *logger.Logger
}

// NewProcessor creates a Processor over the given gateway providers.
func NewProcessor(transcriber transcription.Provider, extractor extraction.Provider, log *logger.Logger) *Processor {
	return &Processor{
		transcriber: transcriber,
		extractor:   extractor,
		log:         log.WithComponent("pipeline"),
	}
}

// Process transcribes audioPath, extracts medical entities from the
// transcript, and returns the categorized result. Gateway errors are
// returned as-is so the HTTP layer can derive status and messaging.
func (p *Processor) Process(ctx context.Context, audioPath string) (*Result, error) {
	ctx, span := observability.StartSpan(ctx, observability.SpanProcessAudio)
	defer span.End()

	transcript, err := p.transcribe(ctx, audioPath)
	if err != nil {
		observability.SetSpanError(ctx, err)
		return nil, err
	}

	entities, err := p.extract(ctx, transcript.Text)
	if err != nil {
		observability.SetSpanError(ctx, err)
		return nil, err
	}

	set := p.categorize(ctx, transcript.Text, entities)

	return &Result{
		Transcription: Transcription{
			Text:         transcript.Text,
			LanguageCode: transcript.LanguageCode,
		},
		MedicalEntities: set,
		AudioFile:       filepath.Base(audioPath),
	}, nil
}

func (p *Processor) transcribe(ctx context.Context, audioPath string) (*transcription.Result, error) {
	ctx, span := observability.StartSpan(ctx, observability.SpanTranscribe)
	defer span.End()

	result, err := p.transcriber.Transcribe(ctx, transcription.Request{AudioPath: audioPath})
	if err != nil {
		p.log.Error("transcription failed", logger.ErrorFields("transcribe", err))
		return nil, err
	}

	observability.SetSpanAttribute(ctx, "transcript.language", result.LanguageCode)
	p.log.Info("audio transcribed", logger.Fields(
		"provider", p.transcriber.Name(),
		"language", result.LanguageCode,
		"chars", len(result.Text),
	))
	return result, nil
}

func (p *Processor) extract(ctx context.Context, text string) ([]entity.Entity, error) {
	ctx, span := observability.StartSpan(ctx, observability.SpanExtract)
	defer span.End()

	entities, err := p.extractor.Extract(ctx, text)
	if err != nil {
		p.log.Error("entity extraction failed", logger.ErrorFields("extract", err))
		return nil, err
	}

	observability.SetSpanAttribute(ctx, "entities.raw_count", len(entities))
	return entities, nil
}

func (p *Processor) categorize(ctx context.Context, text string, entities []entity.Entity) *entity.CategorizedSet {
	ctx, span := observability.StartSpan(ctx, observability.SpanCategorize)
	defer span.End()

	set := entity.Categorize(text, entities)
	observability.SetSpanAttribute(ctx, "entities.diseases", len(set.Diseases))
	observability.SetSpanAttribute(ctx, "entities.medications", len(set.Medications))
	observability.SetSpanAttribute(ctx, "entities.symptoms", len(set.Symptoms))
	observability.SetSpanAttribute(ctx, "entities.procedures", len(set.Procedures))
	observability.SetSpanAttribute(ctx, "entities.other", len(set.Other))

	p.log.Info("entities categorized", logger.Fields(
		"diseases", len(set.Diseases),
		"medications", len(set.Medications),
		"symptoms", len(set.Symptoms),
		"procedures", len(set.Procedures),
		"other", len(set.Other),
	))
	return set
}

package entity

import "unicode/utf8"

// minTermLen is the minimum cleaned-word length in characters for an entity
// to count.
// Anything shorter is tokenizer noise (stray punctuation, lone sub-word
// characters). Inherited heuristic; kept for output compatibility.
const minTermLen = 2

// OtherEntity is an uncategorized term with its raw label and confidence.
type OtherEntity struct {
	Word       string  `json:"word"`
	Type       string  `json:"type"`
	Confidence float64 `json:"confidence"`
}

// CategorizedSet is the final categorized result. The four named buckets
// hold unique cleaned terms in first-occurrence order; Other holds every
// uncategorized term without deduplication.
type CategorizedSet struct {
	Diseases    []string      `json:"diseases"`
	Medications []string      `json:"medications"`
	Symptoms    []string      `json:"symptoms"`
	Procedures  []string      `json:"procedures"`
	Other       []OtherEntity `json:"other"`
}

// NewCategorizedSet returns an empty set with all buckets allocated so they
// marshal as [] rather than null.
func NewCategorizedSet() *CategorizedSet {
	return &CategorizedSet{
		Diseases:    []string{},
		Medications: []string{},
		Symptoms:    []string{},
		Procedures:  []string{},
		Other:       []OtherEntity{},
	}
}

// bucketSlice returns a pointer to the slice backing the named bucket.
func (s *CategorizedSet) bucketSlice(b Bucket) *[]string {
	switch b {
	case BucketDiseases:
		return &s.Diseases
	case BucketMedications:
		return &s.Medications
	case BucketSymptoms:
		return &s.Symptoms
	case BucketProcedures:
		return &s.Procedures
	}
	return nil
}

// add appends term to the named bucket unless it is already present.
func (s *CategorizedSet) add(b Bucket, term string) {
	slice := s.bucketSlice(b)
	if slice == nil {
		return
	}
	for _, existing := range *slice {
		if existing == term {
			return
		}
	}
	*slice = append(*slice, term)
}

// Categorize runs the full entity pipeline: reconstruct sub-word fragments
// against text, then clean, map, and deduplicate each entity into a fresh
// CategorizedSet.
//
// Degenerate entities — missing word, missing label, or a cleaned word
// shorter than the minimum — are dropped silently; they are expected
// tokenizer noise, not faults.
func Categorize(text string, raw []Entity) *CategorizedSet {
	set := NewCategorizedSet()

	for _, e := range Reconstruct(raw, text) {
		word := e.Word
		label := e.Label()
		if word == "" || label == "" {
			continue
		}

		clean := cleanWord(word)
		if utf8.RuneCountInString(clean) < minTermLen {
			continue
		}

		if bucket, ok := Category(label); ok {
			set.add(bucket, clean)
			continue
		}

		set.Other = append(set.Other, OtherEntity{
			Word:       clean,
			Type:       label,
			Confidence: e.Score,
		})
	}

	return set
}

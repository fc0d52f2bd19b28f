// Package entity implements the medical entity pipeline core: offset-based
// reconstruction of sub-word NER fragments, label-to-category mapping, and
// aggregation into a deduplicated, categorized result.
//
// Everything here is a pure function of its inputs. No state is shared
// between invocations, so concurrent requests never interfere.
package entity

import "strings"

// trailingPunct is stripped from the end of reconstructed and cleaned words.
const trailingPunct = ".,;:!?"

// Entity is one unit of NER model output. Word may be a sub-word fragment;
// Start and End are character offsets into the source text. Models emit the
// label under either "entity" or "entity_group", so both are kept.
type Entity struct {
	Word        string  `json:"word"`
	Entity      string  `json:"entity,omitempty"`
	EntityGroup string  `json:"entity_group,omitempty"`
	Start       int     `json:"start"`
	End         int     `json:"end"`
	Score       float64 `json:"score"`
}

// Label returns the entity label, preferring Entity over EntityGroup.
func (e Entity) Label() string {
	if e.Entity != "" {
		return e.Entity
	}
	return e.EntityGroup
}

// cleanWord trims surrounding whitespace and strips trailing punctuation.
func cleanWord(word string) string {
	return strings.TrimRight(strings.TrimSpace(word), trailingPunct)
}

package entity

// mergeGapLimit is the maximum character gap between one fragment's end and
// the next fragment's start for them to be merged. The value 2 tolerates a
// separating space or a single punctuation mark. Inherited from the model's
// observed tokenization behavior; kept for output compatibility.
const mergeGapLimit = 2

// Reconstruct collapses sub-word NER fragments back into whole words and
// phrases using their character offsets into text. The input is assumed
// sorted by Start ascending.
//
// Adjacent fragments are merged while the next fragment starts within
// mergeGapLimit characters of the current merge window's end. The merged
// word is the exact substring of text over the extended window, whitespace
// trimmed and trailing punctuation stripped. Label and score are taken from
// the first fragment of each group, and output order follows the first
// fragment of each group.
//
// If a window's offsets fall outside text, the first fragment's own word is
// kept unchanged rather than slicing out of bounds. An inverted in-bounds
// window (end before start) yields an empty word, which aggregation later
// drops as degenerate.
func Reconstruct(entities []Entity, text string) []Entity {
	if len(entities) == 0 {
		return nil
	}

	reconstructed := make([]Entity, 0, len(entities))
	i := 0

	for i < len(entities) {
		current := entities[i]
		start := current.Start
		end := current.End

		j := i + 1
		for j < len(entities) {
			next := entities[j]
			if next.Start > end+mergeGapLimit {
				break
			}
			if next.End > end {
				end = next.End
			}
			j++
		}

		if start >= 0 && start < len(text) && end <= len(text) {
			if end < start {
				current.Word = ""
			} else {
				current.Word = cleanWord(text[start:end])
			}
		}

		reconstructed = append(reconstructed, current)
		i = j
	}

	return reconstructed
}

package extract

import (
	"github.com/quillhq/quill/internal/vocab"
	"github.com/quillhq/quill/pkg/models"
)

// demotedConfidence is the ceiling applied to an enumeration value that does
// not canonicalize. The value is kept as a low-confidence hint for question
// phrasing, but can never cross the acceptance threshold.
const demotedConfidence = 0.3

// Normalize validates one candidate value at the boundary and produces the
// ExtractedValue that is allowed into conversation state.
//
// Free-text fields pass through unchanged. Enumeration values are mapped to
// their canonical form; a value outside the vocabulary is kept but demoted
// rather than rejected, so a later follow-up can still use it as a hint.
// Confidence is clamped to [0,1] and forced to 0 for absent values.
func Normalize(field models.Field, value string, present bool, confidence float64, provenance models.Provenance) models.ExtractedValue {
	confidence = clamp(confidence)

	if !present {
		return models.ExtractedValue{Provenance: provenance}
	}

	if field.IsEnum() {
		if canonical, ok := vocab.Canonicalize(field, value); ok {
			value = canonical
		} else if confidence > demotedConfidence {
			confidence = demotedConfidence
		}
	}

	return models.ExtractedValue{
		Value:      value,
		Present:    true,
		Confidence: confidence,
		Provenance: provenance,
	}
}

func clamp(confidence float64) float64 {
	if confidence < 0 {
		return 0
	}
	if confidence > 1 {
		return 1
	}
	return confidence
}

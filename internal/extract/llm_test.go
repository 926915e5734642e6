package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quillhq/quill/pkg/models"
)

func TestParseExtraction(t *testing.T) {
	raw := `{
		"title": {"value": "Login page crashes", "confidence": 0.85},
		"type": {"value": "Bug", "confidence": 0.9},
		"project": {"value": null, "confidence": 0},
		"priority": {"value": "High", "confidence": 0.4},
		"description": {"value": "", "confidence": 0.7}
	}`

	guesses, err := parseExtraction(raw)
	require.NoError(t, err)

	assert.Equal(t, Guess{Value: "Login page crashes", Present: true, Confidence: 0.85}, guesses[models.FieldTitle])
	assert.Equal(t, Guess{Value: "Bug", Present: true, Confidence: 0.9}, guesses[models.FieldType])
	assert.False(t, guesses[models.FieldProject].Present, "null value means absent")
	assert.False(t, guesses[models.FieldDescription].Present, "blank value means absent")
	assert.Equal(t, 0.4, guesses[models.FieldPriority].Confidence)
}

func TestParseExtractionStripsCodeFence(t *testing.T) {
	raw := "```json\n{\"title\": {\"value\": \"A title\", \"confidence\": 0.8}}\n```"

	guesses, err := parseExtraction(raw)
	require.NoError(t, err)
	assert.Equal(t, "A title", guesses[models.FieldTitle].Value)
	assert.False(t, guesses[models.FieldType].Present, "missing fields are absent")
}

func TestParseExtractionRejectsGarbage(t *testing.T) {
	for _, raw := range []string{"", "I could not extract anything.", "{not json}"} {
		_, err := parseExtraction(raw)
		assert.Error(t, err, "raw: %q", raw)
	}
}

func TestAllAbsent(t *testing.T) {
	guesses := AllAbsent()

	require.Len(t, guesses, len(models.AllFields))
	for field, g := range guesses {
		assert.False(t, g.Present, "field %s", field)
		assert.Equal(t, 0.0, g.Confidence, "field %s", field)
	}
}

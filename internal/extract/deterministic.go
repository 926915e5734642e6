// Package extract turns raw utterances into field values. It contains the
// deterministic, rule-based extractor used for follow-up answers and the
// first pass over a triggering utterance, the language-model adapter used
// once per new issue, and the validator that normalizes everything either
// one produces before it reaches conversation state.
package extract

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/quillhq/quill/internal/vocab"
	"github.com/quillhq/quill/pkg/models"
)

// minTitleLength is the shortest unquoted answer accepted as a title.
const minTitleLength = 5

var (
	intentPattern = regexp.MustCompile(`(?i)\b(create|file|open|report|raise|log|make)\b.*\b(issue|ticket|bug|task|story|epic)\b`)
	quotedPattern = regexp.MustCompile(`"([^"]+)"|'([^']+)'`)
)

// skipAnswers are the literal answers meaning "no description". They yield
// an explicit empty description, which is distinct from no answer at all.
var skipAnswers = map[string]bool{
	"skip":           true,
	"none":           true,
	"no description": true,
}

// DetectIntent reports whether the utterance expresses issue-creation
// intent, e.g. "file a bug" or "create a ticket".
func DetectIntent(utterance string) bool {
	return intentPattern.MatchString(utterance)
}

// Extract recognizes a value for one field from the answer to an explicit
// follow-up question. It returns ok=false when no usable value was found.
// For description, a skip answer yields ("", true): an explicit empty
// description.
func Extract(field models.Field, utterance string) (string, bool) {
	trimmed := strings.TrimSpace(utterance)

	switch field {
	case models.FieldTitle:
		if quoted, ok := quotedText(trimmed); ok {
			return quoted, true
		}
		if len(trimmed) > minTitleLength {
			return trimmed, true
		}
		return "", false

	case models.FieldDescription:
		if skipAnswers[strings.ToLower(trimmed)] {
			return "", true
		}
		if trimmed != "" {
			return trimmed, true
		}
		return "", false

	default:
		return scanEnum(field, trimmed)
	}
}

// FirstPass scans a triggering utterance for any field the user stated
// unprompted. Titles are only taken from quoted text here: the utterance
// itself is a command, not a summary. Description is never pre-filled.
func FirstPass(utterance string) map[models.Field]string {
	found := make(map[models.Field]string)

	if quoted, ok := quotedText(utterance); ok {
		found[models.FieldTitle] = quoted
	}
	for _, field := range []models.Field{models.FieldType, models.FieldProject, models.FieldPriority} {
		if value, ok := scanEnum(field, utterance); ok {
			found[field] = value
		}
	}

	return found
}

// quotedText returns the first quoted substring of the utterance.
func quotedText(utterance string) (string, bool) {
	match := quotedPattern.FindStringSubmatch(utterance)
	if match == nil {
		return "", false
	}
	if match[1] != "" {
		return strings.TrimSpace(match[1]), true
	}
	return strings.TrimSpace(match[2]), true
}

// scanEnum scans the utterance left to right for the first token that
// canonicalizes for the field. First match wins; there is no weighting.
func scanEnum(field models.Field, utterance string) (string, bool) {
	tokens := strings.FieldsFunc(utterance, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	for _, token := range tokens {
		if canonical, ok := vocab.Canonicalize(field, token); ok {
			return canonical, true
		}
	}
	return "", false
}

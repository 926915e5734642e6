// Package models defines data structures shared across the application.
package models

// Field identifies one slot of the issue record being collected.
type Field string

const (
	// FieldTitle is the issue summary line.
	FieldTitle Field = "title"

	// FieldType is the issue type (Bug, Task, Story, Epic).
	FieldType Field = "type"

	// FieldProject is the canonical project the issue belongs to.
	FieldProject Field = "project"

	// FieldPriority is the issue priority (Lowest through Highest).
	FieldPriority Field = "priority"

	// FieldDescription is the free-text body of the issue.
	FieldDescription Field = "description"
)

// AllFields lists every field of the record. Title precedes description
// because the title drives the duplicate search before creation.
var AllFields = []Field{FieldTitle, FieldType, FieldProject, FieldPriority, FieldDescription}

// IsEnum reports whether the field draws its values from a closed
// vocabulary rather than free text.
func (f Field) IsEnum() bool {
	return f == FieldType || f == FieldProject || f == FieldPriority
}

// Provenance records how a field's value was obtained.
type Provenance string

const (
	// ProvenanceModel marks a value inferred by the language model.
	ProvenanceModel Provenance = "model-inferred"

	// ProvenanceUser marks a value the user stated directly in the
	// triggering utterance.
	ProvenanceUser Provenance = "user-confirmed"

	// ProvenanceFollowup marks a value parsed from the answer to an
	// explicit follow-up question.
	ProvenanceFollowup Provenance = "deterministic-followup"

	// ProvenanceDefault marks a value filled from the built-in defaults.
	ProvenanceDefault Provenance = "defaulted"
)

// ExtractedValue is one field's value together with how certain we are of
// it and where it came from.
type ExtractedValue struct {
	// Value is the extracted text. Meaningless when Present is false.
	Value string

	// Present distinguishes "extracted an empty string" (a valid answer
	// for description) from "no value extracted at all".
	Present bool

	// Confidence is in [0,1]. An absent value always carries 0.
	Confidence float64

	// Provenance records how the value was obtained.
	Provenance Provenance
}

// IssueRecord is the finished, validated record handed to a tracker backend.
type IssueRecord struct {
	// Project is the canonical project name (e.g., "Engineering").
	Project string

	// Type is the canonical issue type (e.g., "Bug").
	Type string

	// Title is the issue summary.
	Title string

	// Description is the issue body. May be empty if the user skipped it.
	Description string

	// Priority is the canonical priority name (e.g., "Medium").
	Priority string
}

// SimilarIssue is one advisory match from the tracker's duplicate search.
type SimilarIssue struct {
	// ID is the tracker-side identifier (e.g., "ENG-123" or "#42").
	ID string

	// Summary is the matched issue's title.
	Summary string
}

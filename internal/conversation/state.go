// Package conversation implements the turn-based slot-filling engine that
// collects a complete issue record through dialogue and hands it to a
// tracker backend.
package conversation

import (
	"github.com/quillhq/quill/pkg/models"
)

// AcceptanceThreshold is the single confidence boundary separating "known"
// from "needs a follow-up question". Values at or above it are accepted
// without confirmation.
const AcceptanceThreshold = 0.6

// Mode is the conversation's current state.
type Mode int

const (
	// ModeIdle means no issue is being collected; utterances without
	// creation intent pass through as regular chat.
	ModeIdle Mode = iota

	// ModeCollecting means follow-up questions are being asked for the
	// fields still pending.
	ModeCollecting

	// ModeConfirming means the full record has been shown and an explicit
	// yes/no is awaited.
	ModeConfirming

	// ModeCreated and ModeCancelled are one-turn terminal states. The
	// engine resets them to idle before processing the next utterance.
	ModeCreated
	ModeCancelled
)

// SlotState is the evolving record of one conversation: the per-field
// values with their provenance, the fields still pending collection, and
// the fields already asked about. It is owned exclusively by the engine
// for the session's lifetime and never shared.
type SlotState struct {
	// Mode is the current conversation mode.
	Mode Mode

	// Values maps each field to its extracted value, if any.
	Values map[models.Field]models.ExtractedValue

	// Pending holds the fields still needing collection, in asking order.
	Pending []models.Field

	// Asked records fields a question has been emitted for, so the same
	// question is not repeated forever after a non-answer.
	Asked map[models.Field]bool
}

// NewSlotState returns an empty, idle state.
func NewSlotState() *SlotState {
	s := &SlotState{}
	s.Reset()
	return s
}

// Reset discards all collected values and returns the state to idle.
func (s *SlotState) Reset() {
	s.Mode = ModeIdle
	s.Values = make(map[models.Field]models.ExtractedValue)
	s.Pending = nil
	s.Asked = make(map[models.Field]bool)
}

// Accepted reports whether the field holds a value at or above the
// acceptance threshold.
func (s *SlotState) Accepted(field models.Field) bool {
	v, ok := s.Values[field]
	return ok && v.Present && v.Confidence >= AcceptanceThreshold
}

// Record assembles the finished issue record from the collected values.
// Only meaningful once no field is pending.
func (s *SlotState) Record() models.IssueRecord {
	return models.IssueRecord{
		Project:     s.Values[models.FieldProject].Value,
		Type:        s.Values[models.FieldType].Value,
		Title:       s.Values[models.FieldTitle].Value,
		Description: s.Values[models.FieldDescription].Value,
		Priority:    s.Values[models.FieldPriority].Value,
	}
}

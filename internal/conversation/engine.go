package conversation

import (
	"context"
	"fmt"
	"strings"
	"unicode"

	"github.com/quillhq/quill/internal/extract"
	"github.com/quillhq/quill/internal/logging"
	"github.com/quillhq/quill/internal/vocab"
	"github.com/quillhq/quill/pkg/models"
)

// Extractor produces a best-effort guess for every field of the record from
// one free-text utterance. Implementations must degrade to all-absent
// guesses on failure rather than returning an error.
type Extractor interface {
	ExtractAll(ctx context.Context, utterance string) map[models.Field]extract.Guess
}

// Tracker files finished records in an external tracking system and runs
// the advisory duplicate search.
type Tracker interface {
	CreateTicket(ctx context.Context, record models.IssueRecord) (string, error)
	SearchSimilar(ctx context.Context, title string) ([]models.SimilarIssue, error)
}

// Engine is the conversation state machine. It owns no state of its own:
// the SlotState for a session is passed into every turn, so one engine can
// serve any number of sequential sessions.
type Engine struct {
	extractor      Extractor
	tracker        Tracker
	defaultProject string
}

// NewEngine creates an engine. extractor may be nil, in which case every
// new issue is collected entirely through follow-up questions.
// defaultProject overrides the vocabulary's default project when non-empty.
func NewEngine(extractor Extractor, tracker Tracker, defaultProject string) *Engine {
	return &Engine{
		extractor:      extractor,
		tracker:        tracker,
		defaultProject: defaultProject,
	}
}

// collectOrder is the fixed asking order for fields that cannot be
// defaulted. Title comes first: the duplicate search needs it.
var collectOrder = []models.Field{models.FieldTitle, models.FieldDescription}

// HandleUtterance processes one user utterance to completion and returns
// the decision for the turn. Exactly one utterance is in flight at a time;
// external calls are awaited within the turn.
func (e *Engine) HandleUtterance(ctx context.Context, state *SlotState, utterance string) TurnResult {
	// Terminal modes are one-turn effects; the next utterance starts clean.
	if state.Mode == ModeCreated || state.Mode == ModeCancelled {
		state.Reset()
	}

	switch state.Mode {
	case ModeCollecting:
		return e.handleCollecting(ctx, state, utterance)
	case ModeConfirming:
		return e.handleConfirming(ctx, state, utterance)
	default:
		return e.handleIdle(ctx, state, utterance)
	}
}

// handleIdle watches for issue-creation intent and, on a match, seeds the
// slot state from one language-model extraction pass merged with a
// deterministic scan of the same utterance.
func (e *Engine) handleIdle(ctx context.Context, state *SlotState, utterance string) TurnResult {
	if !extract.DetectIntent(utterance) {
		return TurnResult{Kind: ResultRegularChat}
	}

	state.Reset()

	guesses := extract.AllAbsent()
	if e.extractor != nil {
		guesses = e.extractor.ExtractAll(ctx, utterance)
	}
	for _, field := range models.AllFields {
		g := guesses[field]
		state.Values[field] = extract.Normalize(field, g.Value, g.Present, g.Confidence, models.ProvenanceModel)
	}

	// Anything the user stated literally beats an inferred guess. Quoted
	// titles win over whatever the model picked out of the prose.
	for field, value := range extract.FirstPass(utterance) {
		state.Values[field] = extract.Normalize(field, value, true, 1.0, models.ProvenanceUser)
	}

	// Enumeration fields below the threshold are defaulted outright; only
	// title and description are ever asked for.
	for _, field := range models.AllFields {
		if field.IsEnum() && !state.Accepted(field) {
			state.Values[field] = models.ExtractedValue{
				Value:      e.defaultFor(field),
				Present:    true,
				Confidence: 1.0,
				Provenance: models.ProvenanceDefault,
			}
		}
	}

	for _, field := range collectOrder {
		if !state.Accepted(field) {
			state.Pending = append(state.Pending, field)
		}
	}

	logging.Debug("issue collection started",
		"pending", len(state.Pending),
		"project", state.Values[models.FieldProject].Value,
		"type", state.Values[models.FieldType].Value)

	if len(state.Pending) == 0 {
		return e.enterConfirming(ctx, state)
	}

	state.Mode = ModeCollecting
	return TurnResult{Kind: ResultAskQuestion, Question: e.question(state, state.Pending[0], false)}
}

// handleCollecting interprets the utterance as the answer to the question
// for the field at the head of the pending list.
func (e *Engine) handleCollecting(ctx context.Context, state *SlotState, utterance string) TurnResult {
	if isCancellation(utterance, false) {
		return cancel(state)
	}

	field := state.Pending[0]
	value, ok := extract.Extract(field, utterance)
	if !ok {
		// No usable answer. Re-ask the same question; do not advance.
		state.Asked[field] = true
		return TurnResult{Kind: ResultAskQuestion, Question: e.question(state, field, true)}
	}

	state.Values[field] = extract.Normalize(field, value, true, 1.0, models.ProvenanceFollowup)
	state.Asked[field] = true
	state.Pending = state.Pending[1:]

	if len(state.Pending) == 0 {
		return e.enterConfirming(ctx, state)
	}
	return TurnResult{Kind: ResultAskQuestion, Question: e.question(state, state.Pending[0], false)}
}

// handleConfirming waits for an explicit yes or no over the full record.
func (e *Engine) handleConfirming(ctx context.Context, state *SlotState, utterance string) TurnResult {
	if isCancellation(utterance, true) {
		return cancel(state)
	}

	if !isAffirmative(utterance) {
		return TurnResult{
			Kind:     ResultAskQuestion,
			Question: "Please answer yes or no: should I create this issue?",
		}
	}

	record := state.Record()
	if e.tracker == nil {
		state.Reset()
		return TurnResult{Kind: ResultCreateFailed, Error: "no tracker backend configured"}
	}

	id, err := e.tracker.CreateTicket(ctx, record)
	if err != nil {
		// The attempt is discarded; a fresh creation intent starts over.
		logging.Error("ticket creation failed", "error", err)
		state.Reset()
		return TurnResult{Kind: ResultCreateFailed, Error: err.Error()}
	}

	logging.Info("ticket created", "id", id, "project", record.Project, "type", record.Type)
	state.Mode = ModeCreated
	return TurnResult{Kind: ResultCreated, CreatedID: id}
}

// enterConfirming assembles the record, runs the advisory duplicate search,
// and emits the summary for confirmation.
func (e *Engine) enterConfirming(ctx context.Context, state *SlotState) TurnResult {
	state.Mode = ModeConfirming
	record := state.Record()

	var similar []models.SimilarIssue
	if e.tracker != nil {
		matches, err := e.tracker.SearchSimilar(ctx, record.Title)
		if err != nil {
			// Advisory only; never blocks confirmation.
			logging.Debug("similar-issue search failed", "error", err)
		} else {
			similar = matches
		}
	}

	return TurnResult{Kind: ResultConfirm, Record: &record, Similar: similar}
}

// defaultFor returns the default value for an enumeration field, honoring
// the configured project override.
func (e *Engine) defaultFor(field models.Field) string {
	if field == models.FieldProject && e.defaultProject != "" {
		if canonical, ok := vocab.Canonicalize(models.FieldProject, e.defaultProject); ok {
			return canonical
		}
		logging.Warn("configured default project not in catalog, using built-in default",
			"configured", e.defaultProject)
	}
	value, _ := vocab.Default(field)
	return value
}

// question phrases the follow-up for one field. The first question of a
// conversation carries a context summary of what is already known; a
// retry appends an explicit request for a valid response.
func (e *Engine) question(state *SlotState, field models.Field, retry bool) string {
	var b strings.Builder

	if len(state.Asked) == 0 && !retry {
		b.WriteString(contextSummary(state))
	}

	switch field {
	case models.FieldTitle:
		b.WriteString("What should the title be?")
	case models.FieldDescription:
		b.WriteString(`Add a description, or say "skip".`)
	default:
		fmt.Fprintf(&b, "Which %s should this issue have? (%s)",
			field, strings.Join(vocab.Values(field), ", "))
		if hint, ok := state.Values[field]; ok && hint.Present && !state.Accepted(field) && hint.Value != "" {
			fmt.Fprintf(&b, " I heard %q but could not match it.", hint.Value)
		}
	}

	if retry {
		b.WriteString(" Please provide a valid response.")
	}
	return b.String()
}

// contextSummary describes the already-known fields, e.g.
// "I'll create a Bug in Engineering at Medium priority. ".
func contextSummary(state *SlotState) string {
	var b strings.Builder
	fmt.Fprintf(&b, "I'll create a %s in %s at %s priority",
		state.Values[models.FieldType].Value,
		state.Values[models.FieldProject].Value,
		state.Values[models.FieldPriority].Value)
	if state.Accepted(models.FieldTitle) {
		fmt.Fprintf(&b, " titled %q", state.Values[models.FieldTitle].Value)
	}
	b.WriteString(". ")
	return b.String()
}

// cancel clears the state and emits the one-turn cancelled result.
func cancel(state *SlotState) TurnResult {
	state.Reset()
	state.Mode = ModeCancelled
	return TurnResult{Kind: ResultCancelled}
}

// cancelWords end the conversation in any collecting or confirming turn.
var cancelWords = map[string]bool{
	"cancel": true,
	"stop":   true,
	"abort":  true,
}

// affirmativeWords accept the record while confirming.
var affirmativeWords = map[string]bool{
	"yes":     true,
	"yep":     true,
	"confirm": true,
	"create":  true,
}

// isCancellation reports whether the utterance is a cancellation. While
// collecting, the whole answer must be the keyword so that free-text
// answers containing words like "stop" are not eaten. While confirming no
// free text is expected, so any cancellation or "no" token counts.
func isCancellation(utterance string, confirming bool) bool {
	toks := tokens(utterance)
	if !confirming {
		return len(toks) == 1 && cancelWords[toks[0]]
	}
	for _, token := range toks {
		if cancelWords[token] || token == "no" || token == "nope" {
			return true
		}
	}
	return false
}

// isAffirmative reports whether the utterance contains an explicit
// confirmation keyword.
func isAffirmative(utterance string) bool {
	for _, token := range tokens(utterance) {
		if affirmativeWords[token] {
			return true
		}
	}
	return false
}

func tokens(utterance string) []string {
	return strings.FieldsFunc(strings.ToLower(utterance), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

package conversation

import (
	"github.com/quillhq/quill/pkg/models"
)

// ResultKind discriminates the per-turn outcomes the front end renders.
type ResultKind int

const (
	// ResultRegularChat means the utterance had nothing to do with issue
	// creation and should pass through to whatever else handles chat.
	ResultRegularChat ResultKind = iota

	// ResultAskQuestion means one follow-up question must be shown.
	ResultAskQuestion

	// ResultConfirm means the full record should be shown for an explicit
	// yes/no.
	ResultConfirm

	// ResultCreated means the issue was filed successfully.
	ResultCreated

	// ResultCancelled means the user abandoned the conversation.
	ResultCancelled

	// ResultCreateFailed means the tracker rejected the record; the
	// conversation has returned to idle.
	ResultCreateFailed
)

// TurnResult is the engine's decision for one turn.
type TurnResult struct {
	// Kind discriminates which of the remaining fields are meaningful.
	Kind ResultKind

	// Question is the follow-up or re-prompt text for ResultAskQuestion.
	Question string

	// Record is the assembled record for ResultConfirm.
	Record *models.IssueRecord

	// Similar holds advisory duplicate-search matches for ResultConfirm.
	Similar []models.SimilarIssue

	// CreatedID is the tracker-side identifier for ResultCreated.
	CreatedID string

	// Error is the backend's failure text for ResultCreateFailed.
	Error string
}

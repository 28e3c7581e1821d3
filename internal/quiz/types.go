package quiz

import (
	"context"

	sqlcgen "github.com/gokatarajesh/trivia-api/internal/db/sqlc"
	"github.com/gokatarajesh/trivia-api/internal/question"
)

// SessionHeader carries the round session id when it is not in the query string.
const SessionHeader = "X-Quiz-Session"

// NextRequest asks for the next question of a round.
type NextRequest struct {
	// Category is the raw category id from the path; empty means every category.
	Category string
	// PrevQuestionID is set once the caller has consumed a question of the round.
	// Without it a new round starts.
	PrevQuestionID *int32
	// SessionID names the round. Empty means the latest round started without a session.
	SessionID string
}

// NextResult is either a question with the remaining count, or Done.
type NextResult struct {
	SessionID string
	Question  *question.Record
	Remaining int
	Done      bool
}

// RoundStore keeps the remaining question ids of each round.
type RoundStore interface {
	// Start replaces the round under sessionID with ids.
	Start(ctx context.Context, sessionID string, ids []int32) error
	// Pop removes one arbitrary id. ok is false when the round is exhausted, unknown or expired.
	Pop(ctx context.Context, sessionID string) (id int32, remaining int, ok bool, err error)
	// SetLatest records sessionID as the round used by callers without a session.
	SetLatest(ctx context.Context, sessionID string) error
	// Latest returns the latest session id, or "" when there is none.
	Latest(ctx context.Context) (string, error)
}

// QuestionSource reads questions for the selector (implemented by repository.QuestionRepository).
type QuestionSource interface {
	IDs(ctx context.Context, categoryID *int32) ([]int32, error)
	Get(ctx context.Context, id int32) (sqlcgen.Question, error)
}

package quiz

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"

	"github.com/gokatarajesh/trivia-api/internal/question"
)

var sessionPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)

// ErrInvalidSession rejects session ids that cannot be used as store keys.
var ErrInvalidSession = errors.New("invalid quiz session id")

// Service hands out non-repeating questions per round until the round is exhausted.
type Service struct {
	questions QuestionSource
	store     RoundStore
	logger    zerolog.Logger
}

func NewService(questions QuestionSource, store RoundStore, logger zerolog.Logger) *Service {
	return &Service{
		questions: questions,
		store:     store,
		logger:    logger.With().Str("component", "quiz_service").Logger(),
	}
}

// Next starts a round when req has no previous question, then pops one question
// from the round. Exhausted, unknown and expired rounds report Done.
func (s *Service) Next(ctx context.Context, req NextRequest) (NextResult, error) {
	const op = "next quiz question"

	sessionID := req.SessionID
	if sessionID != "" && !sessionPattern.MatchString(sessionID) {
		return NextResult{}, question.BadRequest(op, ErrInvalidSession)
	}

	if req.PrevQuestionID == nil {
		started, err := s.startRound(ctx, sessionID, req.Category)
		if err != nil {
			return NextResult{}, question.Unprocessable(op, err)
		}
		sessionID = started
	} else if sessionID == "" {
		latest, err := s.store.Latest(ctx)
		if err != nil {
			return NextResult{}, question.Unprocessable(op, err)
		}
		sessionID = latest
	}

	if sessionID == "" {
		return NextResult{Done: true}, nil
	}

	for {
		id, remaining, ok, err := s.store.Pop(ctx, sessionID)
		if err != nil {
			return NextResult{}, question.Unprocessable(op, err)
		}
		if !ok {
			return NextResult{SessionID: sessionID, Done: true}, nil
		}

		row, err := s.questions.Get(ctx, id)
		if errors.Is(err, pgx.ErrNoRows) {
			// deleted after the round started
			s.logger.Debug().Int32("question_id", id).Str("session", sessionID).Msg("skipping vanished question")
			continue
		}
		if err != nil {
			return NextResult{}, question.Unprocessable(op, err)
		}

		questionsServed.Inc()
		if remaining == 0 {
			roundsCompleted.Inc()
		}
		rec := question.Format(row)
		return NextResult{SessionID: sessionID, Question: &rec, Remaining: remaining}, nil
	}
}

func (s *Service) startRound(ctx context.Context, sessionID, category string) (string, error) {
	ids, scope, err := s.eligible(ctx, category)
	if err != nil {
		return "", err
	}

	shared := sessionID == ""
	if shared {
		sessionID = uuid.NewString()
	}
	if err := s.store.Start(ctx, sessionID, ids); err != nil {
		return "", fmt.Errorf("start round: %w", err)
	}
	if shared {
		if err := s.store.SetLatest(ctx, sessionID); err != nil {
			return "", fmt.Errorf("record latest round: %w", err)
		}
	}

	roundsStarted.WithLabelValues(scope).Inc()
	s.logger.Debug().
		Str("session", sessionID).
		Str("category", category).
		Int("questions", len(ids)).
		Msg("quiz round started")
	return sessionID, nil
}

// eligible lists the ids a new round draws from. A category id that does not
// parse matches nothing.
func (s *Service) eligible(ctx context.Context, category string) ([]int32, string, error) {
	if category == "" {
		ids, err := s.questions.IDs(ctx, nil)
		if err != nil {
			return nil, "", fmt.Errorf("list question ids: %w", err)
		}
		return ids, "all", nil
	}

	categoryID, err := question.ParseID(category)
	if err != nil {
		return nil, "category", nil
	}
	ids, err := s.questions.IDs(ctx, &categoryID)
	if err != nil {
		return nil, "", fmt.Errorf("list question ids for category %d: %w", categoryID, err)
	}
	return ids, "category", nil
}

package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"

	sqlcgen "github.com/gokatarajesh/trivia-api/internal/db/sqlc"
)

type questionStore interface {
	ListQuestions(ctx context.Context) ([]sqlcgen.Question, error)
	ListQuestionsByCategory(ctx context.Context, category pgtype.Int4) ([]sqlcgen.Question, error)
	SearchQuestions(ctx context.Context, pattern string) ([]sqlcgen.Question, error)
	CountQuestions(ctx context.Context) (int64, error)
	GetQuestion(ctx context.Context, id int32) (sqlcgen.Question, error)
	ListQuestionIDs(ctx context.Context) ([]int32, error)
	ListQuestionIDsByCategory(ctx context.Context, category pgtype.Int4) ([]int32, error)
	InsertQuestion(ctx context.Context, arg sqlcgen.InsertQuestionParams) (sqlcgen.Question, error)
	DeleteQuestion(ctx context.Context, id int32) (int64, error)
}

// QuestionRepository wraps sqlc queries for question access.
type QuestionRepository struct {
	store questionStore
}

func NewQuestionRepository(store questionStore) *QuestionRepository {
	return &QuestionRepository{store: store}
}

// List returns every question ordered by id.
func (r *QuestionRepository) List(ctx context.Context) ([]sqlcgen.Question, error) {
	return r.store.ListQuestions(ctx)
}

// ListByCategory returns the questions of one category ordered by id.
func (r *QuestionRepository) ListByCategory(ctx context.Context, categoryID int32) ([]sqlcgen.Question, error) {
	return r.store.ListQuestionsByCategory(ctx, pgtype.Int4{Int32: categoryID, Valid: true})
}

// Search matches question text against an ILIKE pattern. The caller owns escaping.
func (r *QuestionRepository) Search(ctx context.Context, pattern string) ([]sqlcgen.Question, error) {
	return r.store.SearchQuestions(ctx, pattern)
}

func (r *QuestionRepository) Count(ctx context.Context) (int64, error) {
	return r.store.CountQuestions(ctx)
}

func (r *QuestionRepository) Get(ctx context.Context, id int32) (sqlcgen.Question, error) {
	return r.store.GetQuestion(ctx, id)
}

// IDs returns the ids of all questions, or of one category when categoryID is set.
func (r *QuestionRepository) IDs(ctx context.Context, categoryID *int32) ([]int32, error) {
	if categoryID == nil {
		return r.store.ListQuestionIDs(ctx)
	}
	return r.store.ListQuestionIDsByCategory(ctx, pgtype.Int4{Int32: *categoryID, Valid: true})
}

func (r *QuestionRepository) Insert(ctx context.Context, params sqlcgen.InsertQuestionParams) (sqlcgen.Question, error) {
	return r.store.InsertQuestion(ctx, params)
}

// Delete removes a question and reports how many rows went away (0 or 1).
func (r *QuestionRepository) Delete(ctx context.Context, id int32) (int64, error) {
	return r.store.DeleteQuestion(ctx, id)
}

package repository

import (
	"github.com/jackc/pgx/v5/pgtype"

	sqlcgen "github.com/gokatarajesh/trivia-api/internal/db/sqlc"
)

func categoryRef(id int32) pgtype.Int4 {
	return pgtype.Int4{Int32: id, Valid: true}
}

func sqlQuestion(id, category int32) sqlcgen.Question {
	return sqlcgen.Question{
		ID:         id,
		Question:   "Question?",
		Answer:     "Answer",
		Category:   categoryRef(category),
		Difficulty: 2,
	}
}

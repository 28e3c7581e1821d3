package quiz

import (
	"context"
	"sort"
	"sync"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	sqlcgen "github.com/gokatarajesh/trivia-api/internal/db/sqlc"
)

type fakeSource struct {
	mu        sync.Mutex
	questions map[int32]sqlcgen.Question
	failIDs   error
}

// newFakeSource seeds ids 1..n, with the category cycling 1..3.
func newFakeSource(n int) *fakeSource {
	s := &fakeSource{questions: make(map[int32]sqlcgen.Question)}
	for i := int32(1); i <= int32(n); i++ {
		s.questions[i] = sqlcgen.Question{
			ID:         i,
			Question:   "question",
			Answer:     "answer",
			Category:   pgtype.Int4{Int32: (i-1)%3 + 1, Valid: true},
			Difficulty: 1,
		}
	}
	return s
}

func (s *fakeSource) IDs(_ context.Context, categoryID *int32) ([]int32, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failIDs != nil {
		return nil, s.failIDs
	}
	ids := []int32{}
	for id, q := range s.questions {
		if categoryID == nil || (q.Category.Valid && q.Category.Int32 == *categoryID) {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}

func (s *fakeSource) Get(_ context.Context, id int32) (sqlcgen.Question, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	q, ok := s.questions[id]
	if !ok {
		return sqlcgen.Question{}, pgx.ErrNoRows
	}
	return q, nil
}

func (s *fakeSource) remove(id int32) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.questions, id)
}

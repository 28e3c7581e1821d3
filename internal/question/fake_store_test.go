package question

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/rs/zerolog"

	"github.com/gokatarajesh/trivia-api/internal/db/repository"
	sqlcgen "github.com/gokatarajesh/trivia-api/internal/db/sqlc"
)

var errStoreDown = errors.New("store down")

// fakeStore is an in-memory stand-in for the sqlc queries.
type fakeStore struct {
	mu             sync.Mutex
	questions      []sqlcgen.Question
	categories     []sqlcgen.Category
	nextID         int32
	categoryCalls  int
	failInsert     error
	failDelete     error
	failCategories error
}

func newFakeStore() *fakeStore {
	s := &fakeStore{
		categories: []sqlcgen.Category{
			{ID: 1, Type: "Science"},
			{ID: 2, Type: "Art"},
			{ID: 3, Type: "Geography"},
			{ID: 4, Type: "History"},
			{ID: 5, Type: "Entertainment"},
			{ID: 6, Type: "Sports"},
		},
	}
	seed := []struct {
		text     string
		category int32
	}{
		{"Whose autobiography is entitled 'I Know Why the Caged Bird Sings'?", 4},
		{"What was the title of the 1990 fantasy directed by Tim Burton?", 5},
		{"What is the heaviest organ in the human body?", 1},
		{"Who discovered penicillin?", 1},
		{"Hematology is a branch of medicine involving the study of what?", 1},
		{"What is the largest lake in Africa?", 3},
		{"La Giaconda is better known as what?", 2},
		{"Which country won the first ever soccer World Cup in 1930?", 6},
		{"Which is the only team to play in every soccer World Cup tournament?", 6},
		{"What boxer's original name is Cassius Clay?", 4},
		{"Who invented Peanut Butter?", 4},
		{"The Taj Mahal is located in which Indian city?", 3},
	}
	for _, q := range seed {
		s.insert(q.text, "answer", pgtype.Int4{Int32: q.category, Valid: true}, 2)
	}
	return s
}

func (s *fakeStore) insert(text, answer string, category pgtype.Int4, difficulty int32) sqlcgen.Question {
	s.nextID++
	row := sqlcgen.Question{ID: s.nextID, Question: text, Answer: answer, Category: category, Difficulty: difficulty}
	s.questions = append(s.questions, row)
	return row
}

func (s *fakeStore) ListQuestions(_ context.Context) ([]sqlcgen.Question, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]sqlcgen.Question(nil), s.questions...), nil
}

func (s *fakeStore) ListQuestionsByCategory(_ context.Context, category pgtype.Int4) ([]sqlcgen.Question, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []sqlcgen.Question
	for _, q := range s.questions {
		if q.Category == category {
			out = append(out, q)
		}
	}
	return out, nil
}

// SearchQuestions understands the %term% patterns built by the service.
func (s *fakeStore) SearchQuestions(_ context.Context, pattern string) ([]sqlcgen.Question, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	term := strings.TrimSuffix(strings.TrimPrefix(pattern, "%"), "%")
	term = strings.NewReplacer(`\%`, `%`, `\_`, `_`, `\\`, `\`).Replace(term)
	var out []sqlcgen.Question
	for _, q := range s.questions {
		if strings.Contains(strings.ToLower(q.Question), strings.ToLower(term)) {
			out = append(out, q)
		}
	}
	return out, nil
}

func (s *fakeStore) CountQuestions(_ context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return int64(len(s.questions)), nil
}

func (s *fakeStore) GetQuestion(_ context.Context, id int32) (sqlcgen.Question, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, q := range s.questions {
		if q.ID == id {
			return q, nil
		}
	}
	return sqlcgen.Question{}, pgx.ErrNoRows
}

func (s *fakeStore) ListQuestionIDs(_ context.Context) ([]int32, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ids := make([]int32, 0, len(s.questions))
	for _, q := range s.questions {
		ids = append(ids, q.ID)
	}
	return ids, nil
}

func (s *fakeStore) ListQuestionIDsByCategory(ctx context.Context, category pgtype.Int4) ([]int32, error) {
	rows, _ := s.ListQuestionsByCategory(ctx, category)
	ids := make([]int32, 0, len(rows))
	for _, q := range rows {
		ids = append(ids, q.ID)
	}
	return ids, nil
}

func (s *fakeStore) InsertQuestion(_ context.Context, arg sqlcgen.InsertQuestionParams) (sqlcgen.Question, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failInsert != nil {
		return sqlcgen.Question{}, s.failInsert
	}
	return s.insert(arg.Question, arg.Answer, arg.Category, arg.Difficulty), nil
}

func (s *fakeStore) DeleteQuestion(_ context.Context, id int32) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failDelete != nil {
		return 0, s.failDelete
	}
	for i, q := range s.questions {
		if q.ID == id {
			s.questions = append(s.questions[:i], s.questions[i+1:]...)
			return 1, nil
		}
	}
	return 0, nil
}

func (s *fakeStore) ListCategories(_ context.Context) ([]sqlcgen.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.categoryCalls++
	if s.failCategories != nil {
		return nil, s.failCategories
	}
	return append([]sqlcgen.Category(nil), s.categories...), nil
}

type memoryCache struct {
	categories []Category
}

func (c *memoryCache) Get(_ context.Context) ([]Category, error) {
	return c.categories, nil
}

func (c *memoryCache) Set(_ context.Context, categories []Category) error {
	c.categories = categories
	return nil
}

func newTestService(store *fakeStore, cache CategoryCache) *Service {
	return NewService(
		repository.NewQuestionRepository(store),
		repository.NewCategoryRepository(store),
		cache,
		zerolog.Nop(),
	)
}

func strPtr(s string) *string { return &s }

func numPtr(n int32) *NumericField {
	v := NumericField(n)
	return &v
}

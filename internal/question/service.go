package question

import (
	"context"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/rs/zerolog"

	"github.com/gokatarajesh/trivia-api/internal/db/repository"
	sqlcgen "github.com/gokatarajesh/trivia-api/internal/db/sqlc"
)

// ErrEmptySearchTerm rejects a search body whose term is present but blank.
var ErrEmptySearchTerm = errors.New("search term is empty")

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// Service implements question listing, search, creation and deletion.
type Service struct {
	questions  *repository.QuestionRepository
	categories *repository.CategoryRepository
	cache      CategoryCache
	validate   *validator.Validate
	logger     zerolog.Logger
}

func NewService(questions *repository.QuestionRepository, categories *repository.CategoryRepository, cache CategoryCache, logger zerolog.Logger) *Service {
	return &Service{
		questions:  questions,
		categories: categories,
		cache:      cache,
		validate:   validator.New(),
		logger:     logger.With().Str("component", "question_service").Logger(),
	}
}

// Categories returns every category ordered by id, reading through the cache.
func (s *Service) Categories(ctx context.Context) ([]Category, error) {
	if s.cache != nil {
		cached, err := s.cache.Get(ctx)
		if err != nil {
			s.logger.Warn().Err(err).Msg("category cache read failed")
		} else if cached != nil {
			return cached, nil
		}
	}

	rows, err := s.categories.List(ctx)
	if err != nil {
		return nil, Unprocessable("list categories", err)
	}
	categories := make([]Category, 0, len(rows))
	for _, row := range rows {
		categories = append(categories, Category{ID: row.ID, Type: row.Type})
	}

	// An empty list is not cached so freshly seeded categories show up at once.
	if s.cache != nil && len(categories) > 0 {
		if err := s.cache.Set(ctx, categories); err != nil {
			s.logger.Warn().Err(err).Msg("category cache write failed")
		}
	}
	return categories, nil
}

// ListCategories returns all category names; not found when there are none.
func (s *Service) ListCategories(ctx context.Context) (CategoryList, error) {
	categories, err := s.Categories(ctx)
	if err != nil {
		return CategoryList{}, err
	}
	if len(categories) == 0 {
		return CategoryList{}, NotFound("list categories", nil)
	}
	return CategoryList{Names: categoryNames(categories), Total: len(categories)}, nil
}

// ListQuestions returns one page of questions. An empty page is not found.
func (s *Service) ListQuestions(ctx context.Context, req ListRequest) (QuestionPage, error) {
	const op = "list questions"

	categories, err := s.Categories(ctx)
	if err != nil {
		return QuestionPage{}, err
	}

	var rows []sqlcgen.Question
	current := AllCategories
	if req.CategoryID == nil {
		rows, err = s.questions.List(ctx)
	} else {
		rows, err = s.questions.ListByCategory(ctx, *req.CategoryID)
		for _, c := range categories {
			if c.ID == *req.CategoryID {
				current = c.Type
				break
			}
		}
	}
	if err != nil {
		return QuestionPage{}, Unprocessable(op, err)
	}

	page := Paginate(FormatAll(rows), req.Page)
	if len(page) == 0 {
		return QuestionPage{}, NotFound(op, nil)
	}

	total, err := s.questions.Count(ctx)
	if err != nil {
		return QuestionPage{}, Unprocessable(op, err)
	}

	return QuestionPage{
		Questions:       page,
		Total:           total,
		CurrentCategory: current,
		Categories:      categoryNames(categories),
	}, nil
}

// Search returns one page of questions whose text contains term, ignoring case.
func (s *Service) Search(ctx context.Context, term string, page int) (SearchResult, error) {
	const op = "search questions"
	if term == "" {
		return SearchResult{}, Unprocessable(op, ErrEmptySearchTerm)
	}

	rows, err := s.questions.Search(ctx, "%"+likeEscaper.Replace(term)+"%")
	if err != nil {
		return SearchResult{}, Unprocessable(op, err)
	}
	records := FormatAll(rows)
	return SearchResult{
		Questions: Paginate(records, page),
		Total:     len(records),
	}, nil
}

// Create stores a new question and returns its id with the new total.
func (s *Service) Create(ctx context.Context, req CreateRequest) (Created, error) {
	const op = "create question"
	if err := s.validate.Struct(req); err != nil {
		return Created{}, Unprocessable(op, err)
	}

	row, err := s.questions.Insert(ctx, sqlcgen.InsertQuestionParams{
		Question:   *req.Question,
		Answer:     *req.Answer,
		Category:   pgtype.Int4{Int32: int32(*req.Category), Valid: true},
		Difficulty: int32(*req.Difficulty),
	})
	if err != nil {
		return Created{}, Unprocessable(op, err)
	}

	total, err := s.questions.Count(ctx)
	if err != nil {
		return Created{}, Unprocessable(op, err)
	}

	s.logger.Info().Int32("question_id", row.ID).Msg("question created")
	return Created{ID: row.ID, Total: total}, nil
}

// Delete removes a question. A missing id is not found; anything else that
// fails is logged and reported unprocessable.
func (s *Service) Delete(ctx context.Context, id int32) (Deleted, error) {
	const op = "delete question"

	rows, err := s.questions.Delete(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Int32("question_id", id).Msg("delete failed")
		return Deleted{}, Unprocessable(op, err)
	}
	if rows == 0 {
		return Deleted{}, NotFound(op, nil)
	}

	total, err := s.questions.Count(ctx)
	if err != nil {
		s.logger.Error().Err(err).Int32("question_id", id).Msg("count after delete failed")
		return Deleted{}, Unprocessable(op, err)
	}

	s.logger.Info().Int32("question_id", id).Msg("question deleted")
	return Deleted{ID: id, Total: total}, nil
}

package question

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListCategoriesUsesCache(t *testing.T) {
	store := newFakeStore()
	cache := &memoryCache{}
	service := newTestService(store, cache)

	list, err := service.ListCategories(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Science", "Art", "Geography", "History", "Entertainment", "Sports"}, list.Names)
	assert.Equal(t, 6, list.Total)

	_, err = service.ListCategories(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, store.categoryCalls, "second listing should be served from cache")
	assert.Len(t, cache.categories, 6)
}

func TestListCategoriesEmptyIsNotFound(t *testing.T) {
	store := newFakeStore()
	store.categories = nil
	service := newTestService(store, nil)

	_, err := service.ListCategories(context.Background())
	assert.Equal(t, KindNotFound, KindOf(err))
}

func TestListCategoriesStoreFailure(t *testing.T) {
	store := newFakeStore()
	store.failCategories = errStoreDown
	service := newTestService(store, nil)

	_, err := service.ListCategories(context.Background())
	assert.ErrorIs(t, err, errStoreDown)
	assert.Equal(t, KindUnprocessable, KindOf(err))
}

func TestListQuestionsPages(t *testing.T) {
	service := newTestService(newFakeStore(), nil)

	first, err := service.ListQuestions(context.Background(), ListRequest{Page: 1})
	require.NoError(t, err)
	assert.Len(t, first.Questions, 10)
	assert.Equal(t, int64(12), first.Total)
	assert.Equal(t, AllCategories, first.CurrentCategory)
	assert.Len(t, first.Categories, 6)

	second, err := service.ListQuestions(context.Background(), ListRequest{Page: 2})
	require.NoError(t, err)
	assert.Len(t, second.Questions, 2)
	assert.Equal(t, int32(11), second.Questions[0].ID)

	_, err = service.ListQuestions(context.Background(), ListRequest{Page: 999})
	assert.Equal(t, KindNotFound, KindOf(err))
}

func TestListQuestionsByCategory(t *testing.T) {
	service := newTestService(newFakeStore(), nil)

	science := int32(1)
	page, err := service.ListQuestions(context.Background(), ListRequest{Page: 1, CategoryID: &science})
	require.NoError(t, err)
	assert.Equal(t, "Science", page.CurrentCategory)
	assert.Len(t, page.Questions, 3)
	assert.Equal(t, int64(12), page.Total, "total stays unfiltered")
	for _, q := range page.Questions {
		require.NotNil(t, q.Category)
		assert.Equal(t, science, *q.Category)
	}

	unknown := int32(42)
	_, err = service.ListQuestions(context.Background(), ListRequest{Page: 1, CategoryID: &unknown})
	assert.Equal(t, KindNotFound, KindOf(err))
}

func TestSearchIsCaseInsensitiveAndReadOnly(t *testing.T) {
	store := newFakeStore()
	service := newTestService(store, nil)

	result, err := service.Search(context.Background(), "TITLE", 1)
	require.NoError(t, err)
	assert.Equal(t, 2, result.Total)
	for _, q := range result.Questions {
		assert.Contains(t, q.Question, "title")
	}

	count, _ := store.CountQuestions(context.Background())
	assert.Equal(t, int64(12), count)
}

func TestSearchTreatsWildcardsLiterally(t *testing.T) {
	service := newTestService(newFakeStore(), nil)

	result, err := service.Search(context.Background(), "%", 1)
	require.NoError(t, err)
	assert.Zero(t, result.Total)
	assert.Empty(t, result.Questions)
}

func TestSearchEmptyTermIsUnprocessable(t *testing.T) {
	service := newTestService(newFakeStore(), nil)

	_, err := service.Search(context.Background(), "", 1)
	assert.ErrorIs(t, err, ErrEmptySearchTerm)
	assert.Equal(t, KindUnprocessable, KindOf(err))
}

func TestCreateQuestion(t *testing.T) {
	store := newFakeStore()
	service := newTestService(store, nil)

	created, err := service.Create(context.Background(), CreateRequest{
		Question:   strPtr("Q"),
		Answer:     strPtr("A"),
		Category:   numPtr(1),
		Difficulty: numPtr(3),
	})
	require.NoError(t, err)
	assert.Equal(t, int32(13), created.ID)
	assert.Equal(t, int64(13), created.Total)

	row, err := store.GetQuestion(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Q", row.Question)
	assert.Equal(t, int32(1), row.Category.Int32)
	assert.Equal(t, int32(3), row.Difficulty)
}

func TestCreateQuestionMissingFields(t *testing.T) {
	service := newTestService(newFakeStore(), nil)

	_, err := service.Create(context.Background(), CreateRequest{
		Question: strPtr("Q"),
		Answer:   strPtr("A"),
	})
	assert.Equal(t, KindUnprocessable, KindOf(err))
}

func TestCreateQuestionZeroValuesArePresent(t *testing.T) {
	service := newTestService(newFakeStore(), nil)

	_, err := service.Create(context.Background(), CreateRequest{
		Question:   strPtr(""),
		Answer:     strPtr(""),
		Category:   numPtr(0),
		Difficulty: numPtr(0),
	})
	assert.NoError(t, err)
}

func TestCreateQuestionStoreFailure(t *testing.T) {
	store := newFakeStore()
	store.failInsert = errors.New("violates foreign key constraint")
	service := newTestService(store, nil)

	_, err := service.Create(context.Background(), CreateRequest{
		Question:   strPtr("Q"),
		Answer:     strPtr("A"),
		Category:   numPtr(99),
		Difficulty: numPtr(1),
	})
	assert.Equal(t, KindUnprocessable, KindOf(err))
}

func TestDeleteQuestion(t *testing.T) {
	store := newFakeStore()
	service := newTestService(store, nil)

	deleted, err := service.Delete(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, int32(5), deleted.ID)
	assert.Equal(t, int64(11), deleted.Total)

	_, err = store.GetQuestion(context.Background(), 5)
	assert.Error(t, err)

	_, err = service.Delete(context.Background(), 5)
	assert.Equal(t, KindNotFound, KindOf(err))
}

func TestDeleteQuestionStoreFailure(t *testing.T) {
	store := newFakeStore()
	store.failDelete = errStoreDown
	service := newTestService(store, nil)

	_, err := service.Delete(context.Background(), 1)
	assert.ErrorIs(t, err, errStoreDown)
	assert.Equal(t, KindUnprocessable, KindOf(err))
}

func TestKindOfUntypedError(t *testing.T) {
	assert.Equal(t, KindUnprocessable, KindOf(errors.New("boom")))
	assert.Equal(t, KindBadRequest, KindOf(BadRequest("op", nil)))
	assert.Equal(t, "op: not found", NotFound("op", nil).Error())
}

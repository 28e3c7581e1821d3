package question

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	sqlcgen "github.com/gokatarajesh/trivia-api/internal/db/sqlc"
)

// PageSize is the fixed number of records per page.
const PageSize = 10

// AllCategories labels listings that are not narrowed to a known category.
const AllCategories = "All"

// Record is the formatted question delivered to clients.
type Record struct {
	ID         int32  `json:"id"`
	Question   string `json:"question"`
	Answer     string `json:"answer"`
	Category   *int32 `json:"category"`
	Difficulty int32  `json:"difficulty"`
}

// Category is a read-only question category.
type Category struct {
	ID   int32  `json:"id"`
	Type string `json:"type"`
}

// CategoryList is the response model for the category listing.
type CategoryList struct {
	Names []string
	Total int
}

// ListRequest selects a page of questions, optionally narrowed to one category.
type ListRequest struct {
	Page       int
	CategoryID *int32
}

// QuestionPage holds one page of questions plus listing metadata.
type QuestionPage struct {
	Questions       []Record
	Total           int64
	CurrentCategory string
	Categories      []string
}

// SearchResult holds one page of matches and the unpaged match count.
type SearchResult struct {
	Questions []Record
	Total     int
}

// CreateRequest carries the fields of a new question.
type CreateRequest struct {
	Question   *string       `json:"question" validate:"required"`
	Answer     *string       `json:"answer" validate:"required"`
	Category   *NumericField `json:"category" validate:"required"`
	Difficulty *NumericField `json:"difficulty" validate:"required"`
}

// Created reports a newly inserted question.
type Created struct {
	ID    int32
	Total int64
}

// Deleted reports a removed question.
type Deleted struct {
	ID    int32
	Total int64
}

// NumericField accepts either a JSON number or a numeric string ("3"),
// since form-driven clients post select values as strings.
type NumericField int32

func (n *NumericField) UnmarshalJSON(data []byte) error {
	raw := string(bytes.TrimSpace(data))
	if strings.HasPrefix(raw, `"`) {
		var s string
		if err := json.Unmarshal([]byte(raw), &s); err != nil {
			return fmt.Errorf("numeric field: %w", err)
		}
		raw = strings.TrimSpace(s)
	}
	v, err := strconv.ParseInt(raw, 10, 32)
	if err != nil {
		return fmt.Errorf("numeric field: %w", err)
	}
	*n = NumericField(v)
	return nil
}

// Format projects a stored question into its client representation.
func Format(row sqlcgen.Question) Record {
	rec := Record{
		ID:         row.ID,
		Question:   row.Question,
		Answer:     row.Answer,
		Difficulty: row.Difficulty,
	}
	if row.Category.Valid {
		category := row.Category.Int32
		rec.Category = &category
	}
	return rec
}

// FormatAll formats rows preserving their order.
func FormatAll(rows []sqlcgen.Question) []Record {
	out := make([]Record, 0, len(rows))
	for _, row := range rows {
		out = append(out, Format(row))
	}
	return out
}

func categoryNames(categories []Category) []string {
	names := make([]string, 0, len(categories))
	for _, c := range categories {
		names = append(names, c.Type)
	}
	return names
}

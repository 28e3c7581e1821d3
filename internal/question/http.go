package question

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/gokatarajesh/trivia-api/internal/logging"
	httperrors "github.com/gokatarajesh/trivia-api/pkg/http/errors"
)

// HTTPHandlers provides REST endpoints for questions and categories.
type HTTPHandlers struct {
	service *Service
	logger  zerolog.Logger
}

// NewHTTPHandlers creates HTTP handlers for question endpoints.
func NewHTTPHandlers(service *Service, logger zerolog.Logger) *HTTPHandlers {
	return &HTTPHandlers{
		service: service,
		logger:  logger.With().Str("component", "question_http").Logger(),
	}
}

// Register registers the question and category routes.
func (h *HTTPHandlers) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /categories", h.ListCategories)
	mux.HandleFunc("GET /categories/{id}/questions", h.ListCategoryQuestions)
	mux.HandleFunc("GET /questions", h.ListQuestions)
	mux.HandleFunc("POST /questions", h.CreateOrSearch)
	mux.HandleFunc("DELETE /questions/{id}", h.Delete)
}

// questionBody is the POST /questions payload. A searchTerm switches the
// request from create to search.
type questionBody struct {
	CreateRequest
	SearchTerm *string `json:"searchTerm"`
}

// ListCategories handles GET /categories
func (h *HTTPHandlers) ListCategories(w http.ResponseWriter, r *http.Request) {
	list, err := h.service.ListCategories(r.Context())
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success":          true,
		"categories":       list.Names,
		"total_categories": list.Total,
	})
}

// ListQuestions handles GET /questions?page=N
func (h *HTTPHandlers) ListQuestions(w http.ResponseWriter, r *http.Request) {
	h.listQuestions(w, r, nil)
}

// ListCategoryQuestions handles GET /categories/{id}/questions?page=N
func (h *HTTPHandlers) ListCategoryQuestions(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		// an id that does not parse names no category, so the page is empty
		h.respondError(w, r, NotFound("list category questions", err))
		return
	}
	h.listQuestions(w, r, &id)
}

func (h *HTTPHandlers) listQuestions(w http.ResponseWriter, r *http.Request, categoryID *int32) {
	page, err := h.service.ListQuestions(r.Context(), ListRequest{
		Page:       ParsePage(r.URL.Query().Get("page")),
		CategoryID: categoryID,
	})
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success":          true,
		"questions":        page.Questions,
		"total_questions":  page.Total,
		"current_category": page.CurrentCategory,
		"categories":       page.Categories,
	})
}

// CreateOrSearch handles POST /questions
func (h *HTTPHandlers) CreateOrSearch(w http.ResponseWriter, r *http.Request) {
	var body questionBody
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&body); err != nil {
		h.respondError(w, r, Unprocessable("decode question body", err))
		return
	}

	if body.SearchTerm != nil {
		result, err := h.service.Search(r.Context(), *body.SearchTerm, ParsePage(r.URL.Query().Get("page")))
		if err != nil {
			h.respondError(w, r, err)
			return
		}
		respondJSON(w, http.StatusOK, map[string]interface{}{
			"success":         true,
			"questions":       result.Questions,
			"total_questions": result.Total,
		})
		return
	}

	created, err := h.service.Create(r.Context(), body.CreateRequest)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success":         true,
		"created":         created.ID,
		"total_questions": created.Total,
	})
}

// Delete handles DELETE /questions/{id}
func (h *HTTPHandlers) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		h.respondError(w, r, NotFound("delete question", err))
		return
	}

	deleted, err := h.service.Delete(r.Context(), id)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success":         true,
		"deleted":         deleted.ID,
		"total_questions": deleted.Total,
	})
}

func (h *HTTPHandlers) respondError(w http.ResponseWriter, r *http.Request, err error) {
	logger := logging.Ctx(r.Context(), h.logger)
	if KindOf(err) == KindNotFound {
		logger.Debug().Err(err).Msg("request matched nothing")
	} else {
		logger.Warn().Err(err).Msg("request failed")
	}
	RespondError(w, err)
}

// RespondError writes the error envelope matching the kind of err.
func RespondError(w http.ResponseWriter, err error) {
	switch KindOf(err) {
	case KindNotFound:
		httperrors.RespondNotFound(w)
	case KindBadRequest:
		httperrors.RespondBadRequest(w)
	default:
		httperrors.RespondUnprocessable(w)
	}
}

// ParseID parses an int32 identifier.
func ParseID(raw string) (int32, error) {
	v, err := strconv.ParseInt(raw, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid id %q: %w", raw, err)
	}
	return int32(v), nil
}

func pathID(r *http.Request, name string) (int32, error) {
	return ParseID(r.PathValue(name))
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

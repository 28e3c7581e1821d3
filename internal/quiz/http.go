package quiz

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/gokatarajesh/trivia-api/internal/logging"
	"github.com/gokatarajesh/trivia-api/internal/question"
)

// HTTPHandlers provides the quiz-play endpoint.
type HTTPHandlers struct {
	service *Service
	logger  zerolog.Logger
}

// NewHTTPHandlers creates HTTP handlers for quiz endpoints.
func NewHTTPHandlers(service *Service, logger zerolog.Logger) *HTTPHandlers {
	return &HTTPHandlers{
		service: service,
		logger:  logger.With().Str("component", "quiz_http").Logger(),
	}
}

// Register registers the quiz routes.
func (h *HTTPHandlers) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /quizzes", h.Next)
	mux.HandleFunc("POST /quizzes/{category_id}", h.Next)
}

// Next handles POST /quizzes[/{category_id}]?prev_q=id&session=S
func (h *HTTPHandlers) Next(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	req := NextRequest{
		Category:  r.PathValue("category_id"),
		SessionID: query.Get("session"),
	}
	if req.SessionID == "" {
		req.SessionID = r.Header.Get(SessionHeader)
	}
	if raw := query.Get("prev_q"); raw != "" {
		if id, err := question.ParseID(raw); err == nil {
			req.PrevQuestionID = &id
		}
	}

	result, err := h.service.Next(r.Context(), req)
	if err != nil {
		logger := logging.Ctx(r.Context(), h.logger)
		logger.Warn().Err(err).Msg("quiz play failed")
		question.RespondError(w, err)
		return
	}

	resp := map[string]interface{}{
		"success": true,
	}
	if result.SessionID != "" {
		resp["session"] = result.SessionID
	}
	if result.Done {
		resp["done"] = true
	} else {
		resp["question"] = result.Question
		resp["remaining_questions"] = result.Remaining
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(resp)
}

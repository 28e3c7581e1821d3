package errors

import (
	"encoding/json"
	"net/http"
)

// ErrorResponse is the failure envelope shared by every endpoint.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   int    `json:"error"`
	Message string `json:"message"`
}

// RespondError writes the failure envelope with an explicit message.
func RespondError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(ErrorResponse{
		Success: false,
		Error:   status,
		Message: message,
	})
}

// RespondStatus writes the failure envelope with the standard message for status.
func RespondStatus(w http.ResponseWriter, status int) {
	RespondError(w, status, MessageFor(status))
}

// RespondBadRequest writes a 400 envelope.
func RespondBadRequest(w http.ResponseWriter) {
	RespondStatus(w, http.StatusBadRequest)
}

// RespondNotFound writes a 404 envelope.
func RespondNotFound(w http.ResponseWriter) {
	RespondStatus(w, http.StatusNotFound)
}

// RespondUnprocessable writes a 422 envelope.
func RespondUnprocessable(w http.ResponseWriter) {
	RespondStatus(w, http.StatusUnprocessableEntity)
}

// RespondMethodNotAllowed writes a 405 envelope.
func RespondMethodNotAllowed(w http.ResponseWriter) {
	RespondStatus(w, http.StatusMethodNotAllowed)
}

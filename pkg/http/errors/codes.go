package errors

import "net/http"

// Messages carried by the error envelope, keyed by the status they accompany.
const (
	MsgBadRequest       = "bad request"
	MsgNotFound         = "resource not found"
	MsgMethodNotAllowed = "method not allowed"
	MsgUnprocessable    = "unprocessable"
	MsgInternalError    = "internal server error"
	MsgUpstreamError    = "upstream error"
)

var messages = map[int]string{
	http.StatusBadRequest:          MsgBadRequest,
	http.StatusNotFound:            MsgNotFound,
	http.StatusMethodNotAllowed:    MsgMethodNotAllowed,
	http.StatusUnprocessableEntity: MsgUnprocessable,
	http.StatusInternalServerError: MsgInternalError,
	http.StatusBadGateway:          MsgUpstreamError,
}

// MessageFor returns the envelope message for status, falling back to the
// standard status text.
func MessageFor(status int) string {
	if msg, ok := messages[status]; ok {
		return msg
	}
	return http.StatusText(status)
}

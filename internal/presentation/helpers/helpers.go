package helpers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/RaikyD/digital-link/internal/domain"
)

func DecodeJSON(r io.Reader, v any) error {
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// Notice is what the UI shows as a toast.
type Notice struct {
	Error       string `json:"error"`
	Description string `json:"description,omitempty"`
	Field       string `json:"field,omitempty"`
}

func HttpError(w http.ResponseWriter, status int, msg string) {
	WriteJSON(w, status, Notice{Error: msg})
}

// DomainError maps workflow errors onto status codes. Anything unknown is a 500.
func DomainError(w http.ResponseWriter, err error) {
	var ve *domain.ValidationError
	switch {
	case errors.As(err, &ve):
		WriteJSON(w, http.StatusUnprocessableEntity, Notice{Error: ve.Message, Field: ve.Field})
	case errors.Is(err, domain.ErrShipmentNotFound), errors.Is(err, domain.ErrItemNotFound):
		WriteJSON(w, http.StatusNotFound, Notice{Error: "Not found", Description: err.Error()})
	case errors.Is(err, domain.ErrNotPending),
		errors.Is(err, domain.ErrSigningInProgress),
		errors.Is(err, domain.ErrNoSigningSession):
		WriteJSON(w, http.StatusConflict, Notice{Error: "Not allowed", Description: err.Error()})
	default:
		HttpError(w, http.StatusInternalServerError, "internal error")
	}
}

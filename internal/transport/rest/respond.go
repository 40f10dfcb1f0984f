package rest

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/medikeep/cabinet-backend/internal/domain"
)

// fieldErrorJSON is the wire form of a single validation failure.
type fieldErrorJSON struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// errorJSON is the uniform error envelope for all REST endpoints.
type errorJSON struct {
	Error  string           `json:"error"`
	Kind   string           `json:"kind,omitempty"`
	Fields []fieldErrorJSON `json:"fields,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorJSON{Error: message})
}

// writeServiceError maps a service error onto an HTTP status and the error
// envelope. Unknown errors are logged and reported as 500.
func writeServiceError(w http.ResponseWriter, r *http.Request, log *slog.Logger, err error) {
	kind := domain.KindOf(err)

	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		fields := make([]fieldErrorJSON, 0, len(verr.Errors))
		for _, fe := range verr.Errors {
			fields = append(fields, fieldErrorJSON{Field: fe.Field, Message: fe.Message})
		}
		writeJSON(w, http.StatusBadRequest, errorJSON{
			Error:  "validation failed",
			Kind:   kind.String(),
			Fields: fields,
		})
		return
	}

	switch kind {
	case domain.ErrorKindNotFound:
		writeJSON(w, http.StatusNotFound, errorJSON{Error: "not found", Kind: kind.String()})
	case domain.ErrorKindInsufficientStock:
		writeJSON(w, http.StatusConflict, errorJSON{Error: err.Error(), Kind: kind.String()})
	case domain.ErrorKindConflict:
		writeJSON(w, http.StatusConflict, errorJSON{Error: "conflict, retry the request", Kind: kind.String()})
	case domain.ErrorKindStoreUnavailable:
		writeJSON(w, http.StatusServiceUnavailable, errorJSON{Error: "storage unavailable", Kind: kind.String()})
	default:
		log.ErrorContext(r.Context(), "internal error", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorJSON{Error: "internal server error", Kind: domain.ErrorKindInternal.String()})
	}
}

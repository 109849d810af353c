package shared

import (
	"encoding/json"
	"net/http"
)

// RespondJSON writes v as a JSON body with the given status.
func RespondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// RespondError maps the error kind to an HTTP status and writes the single
// descriptive message the caller contract promises.
func RespondError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch KindOf(err) {
	case KindValidation:
		status = http.StatusUnprocessableEntity
	case KindNotFound:
		status = http.StatusNotFound
	case KindConflict:
		status = http.StatusConflict
	case KindIO:
		status = http.StatusBadRequest
	case KindUnauthorized:
		status = http.StatusUnauthorized
	}
	RespondJSON(w, status, map[string]string{"error": err.Error()})
}

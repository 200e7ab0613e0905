package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	svcErr "github.com/soulai-app/soulai/internal/errors"
)

type errorBody struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		_ = json.NewEncoder(w).Encode(v)
	}
}

// writeError maps service errors onto HTTP statuses. Internal errors are
// logged with detail but reported opaquely.
func writeError(w http.ResponseWriter, log *slog.Logger, err error) {
	status := svcErr.Status(err)
	if status == http.StatusInternalServerError {
		log.Error("request failed", "err", err)
		writeJSON(w, status, errorBody{Error: "internal error"})
		return
	}
	writeJSON(w, status, errorBody{Error: err.Error()})
}

// decodeJSON reads the request body into dst, rejecting unknown fields.
func decodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return svcErr.Wrap(svcErr.ErrInvalidArgument, "invalid request body: %v", err)
	}
	return nil
}

package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/jmsalcedo/obrakit/internal/domain/units"
)

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

type errBody struct {
	Error string `json:"error"`
}

// respondErr maps the domain error taxonomy onto HTTP: validation
// failures are the caller's fault (422), invariant conflicts are 409,
// everything else is a 500 that gets logged.
func respondErr(w http.ResponseWriter, log *slog.Logger, err error) {
	var ve *units.ValidationError
	if errors.As(err, &ve) {
		respondJSON(w, http.StatusUnprocessableEntity, errBody{Error: ve.Reason})
		return
	}
	var ce *units.ConflictError
	if errors.As(err, &ce) {
		respondJSON(w, http.StatusConflict, errBody{Error: ce.Reason})
		return
	}
	log.Error("request failed", "err", err)
	respondJSON(w, http.StatusInternalServerError, errBody{Error: "internal error"})
}

func respondNotFound(w http.ResponseWriter) {
	respondJSON(w, http.StatusNotFound, errBody{Error: "not found"})
}

func respondBadRequest(w http.ResponseWriter, msg string) {
	respondJSON(w, http.StatusBadRequest, errBody{Error: msg})
}

func idParam(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	return id, err == nil && id > 0
}

func chiURLParamID(r *http.Request) string {
	return chi.URLParam(r, "id")
}

func decode(r *http.Request, v any) error {
	return json.NewDecoder(r.Body).Decode(v)
}

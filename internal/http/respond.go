package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/crispy-paddle/internal/league"
	"github.com/mauv0809/crispy-paddle/internal/store"
)

type errorBody struct {
	Error string `json:"error"`
}

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Error("Failed to encode response", "error", err)
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, errorBody{Error: message})
}

// respondWorkflowError maps a league error onto an HTTP status. Unexpected
// errors become a generic 500 so storage details never leak to callers.
func respondWorkflowError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, league.ErrValidation):
		respondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, league.ErrSiteNotFound),
		errors.Is(err, league.ErrPlayerNotFound),
		errors.Is(err, store.ErrNotFound):
		respondError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, league.ErrForbidden):
		respondError(w, http.StatusForbidden, err.Error())
	default:
		log.Error("Workflow error", "error", err)
		respondError(w, http.StatusInternalServerError, "internal server error")
	}
}

package main

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Simplici0/dogsclub/internal/metrics"
	"github.com/Simplici0/dogsclub/internal/notify"
)

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string, details any) {
	writeJSON(w, status, map[string]errorBody{
		"error": {Code: code, Message: message, Details: details},
	})
}

// writeAnalysisError maps pipeline and delivery errors to API responses.
func (s *server) writeAnalysisError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *metrics.ValidationError
	switch {
	case errors.As(err, &verr):
		writeError(w, http.StatusBadRequest, "validation_failed", "invalid business input", verr.Fields)
	case errors.Is(err, notify.ErrNotConfigured):
		writeError(w, http.StatusServiceUnavailable, "mail_not_configured", "email delivery is not configured", nil)
	case errors.Is(err, errMailDelivery):
		writeError(w, http.StatusBadGateway, "mail_failed", "failed to send email", err.Error())
	default:
		s.logger.Error().Err(err).Str("path", r.URL.Path).Msg("analysis failed")
		writeError(w, http.StatusInternalServerError, "analysis_failed", "failed to analyze business", nil)
	}
}

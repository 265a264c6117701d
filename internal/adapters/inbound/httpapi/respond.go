package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/ErVaaL/argos-resource-service/pkg/logger"
)

func writeJSON(w http.ResponseWriter, r *http.Request, log logger.Logger, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(payload); err != nil {
		ctxLog := log.WithContext(r.Context())
		ctxLog.Error().Err(err).Msg("failed to encode response body")
	}
}

func writeError(w http.ResponseWriter, r *http.Request, log logger.Logger, err error) {
	status := statusFromError(err)

	if status >= http.StatusInternalServerError {
		ctxLog := log.WithContext(r.Context())
		ctxLog.Error().Err(err).
			Str("path", r.URL.Path).
			Msg("request failed")
	}

	writeJSON(w, r, log, status, toErrorPayload(err))
}

package httpapi

import (
	"net/http"

	"github.com/ErVaaL/argos-resource-service/internal/usecases"
	"github.com/ErVaaL/argos-resource-service/internal/usecases/queries"
	"github.com/ErVaaL/argos-resource-service/pkg/logger"
)

// HealthHandler serves the liveness, readiness and health report endpoints.
type HealthHandler struct {
	app    *usecases.Application
	logger logger.Logger
}

func NewHealthHandler(app *usecases.Application, log logger.Logger) *HealthHandler {
	return &HealthHandler{app: app, logger: log}
}

func (h *HealthHandler) Liveness(w http.ResponseWriter, r *http.Request) {
	result, err := h.app.Queries.FetchLiveness.Execute(r.Context(), queries.FetchLivenessQuery{})
	if err != nil {
		writeError(w, r, h.logger, err)

		return
	}

	writeJSON(w, r, h.logger, http.StatusOK, result)
}

func (h *HealthHandler) Readiness(w http.ResponseWriter, r *http.Request) {
	result, err := h.app.Queries.FetchReadiness.Execute(r.Context(), queries.FetchReadinessQuery{})
	if err != nil {
		writeError(w, r, h.logger, err)

		return
	}

	status := http.StatusOK
	if !result.Ready {
		status = http.StatusServiceUnavailable
	}

	writeJSON(w, r, h.logger, status, result)
}

func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	result, err := h.app.Queries.FetchHealthReport.Execute(r.Context(), queries.FetchHealthReportQuery{})
	if err != nil {
		writeError(w, r, h.logger, err)

		return
	}

	status := http.StatusOK
	if result.Status != "healthy" {
		status = http.StatusServiceUnavailable
	}

	writeJSON(w, r, h.logger, status, result)
}

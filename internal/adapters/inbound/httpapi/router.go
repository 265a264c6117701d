package httpapi

import (
	"fmt"
	"net/http"

	"github.com/ErVaaL/argos-resource-service/internal/usecases"
	"github.com/ErVaaL/argos-resource-service/pkg/logger"
	"github.com/gorilla/mux"
)

// NewRouter registers the HTTP surface: health probes at the root and the
// resource endpoints under /api/<version>.
func NewRouter(app *usecases.Application, apiVersion string, log logger.Logger) *mux.Router {
	devices := NewDeviceHandler(app, log)
	measurements := NewMeasurementHandler(app, log)
	health := NewHealthHandler(app, log)

	router := mux.NewRouter()
	router.Use(requestLogging(log))

	router.HandleFunc("/healthz", health.Liveness).Methods(http.MethodGet)
	router.HandleFunc("/readyz", health.Readiness).Methods(http.MethodGet)
	router.HandleFunc("/health", health.Health).Methods(http.MethodGet)

	api := router.PathPrefix(fmt.Sprintf("/api/%s", apiVersion)).Subrouter()

	api.HandleFunc("/devices", devices.Create).Methods(http.MethodPost)
	api.HandleFunc("/devices", devices.List).Methods(http.MethodGet)
	api.HandleFunc("/devices/{id}", devices.Get).Methods(http.MethodGet)
	api.HandleFunc("/devices/{id}", devices.Update).Methods(http.MethodPatch)
	api.HandleFunc("/devices/{id}", devices.Delete).Methods(http.MethodDelete)
	api.HandleFunc("/devices/{id}/measurements", devices.DeleteMeasurements).Methods(http.MethodDelete)
	api.HandleFunc("/devices/{id}/measurements/last", devices.LastMeasurements).Methods(http.MethodGet)

	api.HandleFunc("/measurements", measurements.Create).Methods(http.MethodPost)
	api.HandleFunc("/measurements", measurements.List).Methods(http.MethodGet)
	api.HandleFunc("/measurements/{id}", measurements.Get).Methods(http.MethodGet)
	api.HandleFunc("/measurements/{id}", measurements.Delete).Methods(http.MethodDelete)

	return router
}

func requestLogging(log logger.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctxLog := log.WithContext(r.Context())
			ctxLog.Debug().
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Msg("handling request")

			next.ServeHTTP(w, r)
		})
	}
}

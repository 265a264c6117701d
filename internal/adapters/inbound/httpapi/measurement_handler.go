package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/ErVaaL/argos-resource-service/internal/domain/model"
	"github.com/ErVaaL/argos-resource-service/internal/usecases"
	"github.com/ErVaaL/argos-resource-service/internal/usecases/commands"
	"github.com/ErVaaL/argos-resource-service/internal/usecases/queries"
	"github.com/ErVaaL/argos-resource-service/pkg/logger"
	"github.com/gorilla/mux"
)

// MeasurementHandler exposes the measurement surface over HTTP.
type MeasurementHandler struct {
	app    *usecases.Application
	logger logger.Logger
}

func NewMeasurementHandler(app *usecases.Application, log logger.Logger) *MeasurementHandler {
	return &MeasurementHandler{app: app, logger: log}
}

func (h *MeasurementHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createMeasurementRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeValidationError(w, r, "body", "malformed JSON")

		return
	}

	validation := model.NewValidationErrors()

	deviceID, err := model.ParseDeviceID(req.DeviceID)
	if err != nil {
		validation.Add("deviceId", "must be a UUID")
	}

	measurementType, err := model.ParseDeviceType(req.Type)
	if err != nil {
		validation.Add("type", "unknown measurement type")
	}

	if validation.HasErrors() {
		h.writeError(w, r, validation)

		return
	}

	measurement, err := h.app.Commands.CreateMeasurement.Handle(r.Context(), commands.CreateMeasurementCommand{
		DeviceID:  deviceID,
		Type:      measurementType,
		Value:     req.Value,
		Timestamp: req.Timestamp,
	})
	if err != nil {
		h.writeError(w, r, err)

		return
	}

	h.writeJSON(w, r, http.StatusCreated, toMeasurementPayload(measurement))
}

func (h *MeasurementHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := h.measurementID(w, r)
	if !ok {
		return
	}

	measurement, err := h.app.Queries.GetMeasurement.Execute(r.Context(), queries.GetMeasurementQuery{ID: id})
	if err != nil {
		h.writeError(w, r, err)

		return
	}

	h.writeJSON(w, r, http.StatusOK, toMeasurementPayload(measurement))
}

func (h *MeasurementHandler) List(w http.ResponseWriter, r *http.Request) {
	filter, err := parseMeasurementFilter(r.URL.Query())
	if err != nil {
		h.writeError(w, r, err)

		return
	}

	page, err := parsePageRequest(r.URL.Query(), model.DefaultPageSize, model.MeasurementDefaultSort)
	if err != nil {
		h.writeError(w, r, err)

		return
	}

	result, err := h.app.Queries.ListMeasurements.Execute(r.Context(), queries.ListMeasurementsQuery{
		Filter: filter,
		Page:   page,
	})
	if err != nil {
		h.writeError(w, r, err)

		return
	}

	h.writeJSON(w, r, http.StatusOK, toMeasurementPage(result))
}

func (h *MeasurementHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.measurementID(w, r)
	if !ok {
		return
	}

	cmd := commands.DeleteMeasurementCommand{ID: id}
	if _, err := h.app.Commands.DeleteMeasurement.Handle(r.Context(), cmd); err != nil {
		h.writeError(w, r, err)

		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *MeasurementHandler) measurementID(w http.ResponseWriter, r *http.Request) (model.MeasurementID, bool) {
	id, err := model.ParseMeasurementID(mux.Vars(r)["id"])
	if err != nil {
		h.writeValidationError(w, r, "id", "must be a UUID")

		return model.MeasurementID{}, false
	}

	return id, true
}

func (h *MeasurementHandler) writeJSON(w http.ResponseWriter, r *http.Request, status int, payload any) {
	writeJSON(w, r, h.logger, status, payload)
}

func (h *MeasurementHandler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	writeError(w, r, h.logger, err)
}

func (h *MeasurementHandler) writeValidationError(w http.ResponseWriter, r *http.Request, field, message string) {
	validation := model.NewValidationErrors()
	validation.Add(field, message)
	h.writeError(w, r, validation)
}

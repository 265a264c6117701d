package httpapi

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/ErVaaL/argos-resource-service/internal/domain/model"
	"github.com/ErVaaL/argos-resource-service/internal/usecases"
	"github.com/ErVaaL/argos-resource-service/internal/usecases/commands"
	"github.com/ErVaaL/argos-resource-service/internal/usecases/queries"
	"github.com/ErVaaL/argos-resource-service/pkg/logger"
	"github.com/gorilla/mux"
)

// DeviceHandler exposes the device surface over HTTP.
type DeviceHandler struct {
	app    *usecases.Application
	logger logger.Logger
}

func NewDeviceHandler(app *usecases.Application, log logger.Logger) *DeviceHandler {
	return &DeviceHandler{app: app, logger: log}
}

func (h *DeviceHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createDeviceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeValidationError(w, r, "body", "malformed JSON")

		return
	}

	validation := model.NewValidationErrors()
	if strings.TrimSpace(req.Name) == "" {
		validation.Add("name", "is required")
	}

	deviceType, err := model.ParseDeviceType(req.Type)
	if err != nil {
		validation.Add("type", "unknown device type")
	}

	if validation.HasErrors() {
		h.writeError(w, r, validation)

		return
	}

	device, err := h.app.Commands.CreateDevice.Handle(r.Context(), commands.CreateDeviceCommand{
		Name:     req.Name,
		Type:     deviceType,
		Building: req.Building,
		Room:     req.Room,
	})
	if err != nil {
		h.writeError(w, r, err)

		return
	}

	h.writeJSON(w, r, http.StatusCreated, toDevicePayload(device))
}

func (h *DeviceHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := h.deviceID(w, r)
	if !ok {
		return
	}

	device, err := h.app.Queries.GetDevice.Execute(r.Context(), queries.GetDeviceQuery{ID: id})
	if err != nil {
		h.writeError(w, r, err)

		return
	}

	h.writeJSON(w, r, http.StatusOK, toDevicePayload(device))
}

func (h *DeviceHandler) List(w http.ResponseWriter, r *http.Request) {
	filter, err := parseDeviceFilter(r.URL.Query())
	if err != nil {
		h.writeError(w, r, err)

		return
	}

	page, err := parsePageRequest(r.URL.Query(), model.DefaultPageSize, model.DeviceDefaultSort)
	if err != nil {
		h.writeError(w, r, err)

		return
	}

	result, err := h.app.Queries.ListDevices.Execute(r.Context(), queries.ListDevicesQuery{
		Filter: filter,
		Page:   page,
	})
	if err != nil {
		h.writeError(w, r, err)

		return
	}

	h.writeJSON(w, r, http.StatusOK, toDevicePage(result))
}

func (h *DeviceHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := h.deviceID(w, r)
	if !ok {
		return
	}

	var req updateDeviceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeValidationError(w, r, "body", "malformed JSON")

		return
	}

	update := model.DeviceUpdate{
		Name:     req.Name,
		Building: req.Building,
		Room:     req.Room,
		Active:   req.Active,
	}

	if req.Type != nil {
		deviceType, err := model.ParseDeviceType(*req.Type)
		if err != nil {
			h.writeValidationError(w, r, "type", "unknown device type")

			return
		}
		update.Type = &deviceType
	}

	device, err := h.app.Commands.UpdateDevice.Handle(r.Context(), commands.UpdateDeviceCommand{
		ID:     id,
		Update: update,
	})
	if err != nil {
		h.writeError(w, r, err)

		return
	}

	h.writeJSON(w, r, http.StatusOK, toDevicePayload(device))
}

func (h *DeviceHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.deviceID(w, r)
	if !ok {
		return
	}

	if _, err := h.app.Commands.DeleteDevice.Handle(r.Context(), commands.DeleteDeviceCommand{ID: id}); err != nil {
		h.writeError(w, r, err)

		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *DeviceHandler) DeleteMeasurements(w http.ResponseWriter, r *http.Request) {
	id, ok := h.deviceID(w, r)
	if !ok {
		return
	}

	cmd := commands.DeleteDeviceMeasurementsCommand{DeviceID: id}
	if _, err := h.app.Commands.DeleteDeviceMeasurements.Handle(r.Context(), cmd); err != nil {
		h.writeError(w, r, err)

		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *DeviceHandler) LastMeasurements(w http.ResponseWriter, r *http.Request) {
	id, ok := h.deviceID(w, r)
	if !ok {
		return
	}

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			h.writeValidationError(w, r, "limit", "must be an integer")

			return
		}
		limit = parsed
	}

	content, err := h.app.Queries.GetLastMeasurements.Execute(r.Context(), queries.GetLastMeasurementsQuery{
		DeviceID: id,
		Limit:    limit,
	})
	if err != nil {
		h.writeError(w, r, err)

		return
	}

	payload := make([]measurementPayload, 0, len(content))
	for _, measurement := range content {
		payload = append(payload, toMeasurementPayload(measurement))
	}

	h.writeJSON(w, r, http.StatusOK, payload)
}

func (h *DeviceHandler) deviceID(w http.ResponseWriter, r *http.Request) (model.DeviceID, bool) {
	id, err := model.ParseDeviceID(mux.Vars(r)["id"])
	if err != nil {
		h.writeValidationError(w, r, "id", "must be a UUID")

		return model.DeviceID{}, false
	}

	return id, true
}

func (h *DeviceHandler) writeJSON(w http.ResponseWriter, r *http.Request, status int, payload any) {
	writeJSON(w, r, h.logger, status, payload)
}

func (h *DeviceHandler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	writeError(w, r, h.logger, err)
}

func (h *DeviceHandler) writeValidationError(w http.ResponseWriter, r *http.Request, field, message string) {
	validation := model.NewValidationErrors()
	validation.Add(field, message)
	h.writeError(w, r, validation)
}

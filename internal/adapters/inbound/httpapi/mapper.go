package httpapi

import (
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/ErVaaL/argos-resource-service/internal/domain/model"
)

type (
	devicePayload struct {
		ID       string              `json:"id"`
		Name     string              `json:"name"`
		Type     string              `json:"type"`
		Building string              `json:"building"`
		Room     string              `json:"room"`
		Active   bool                `json:"active"`
		Config   *model.DeviceConfig `json:"config,omitempty"`
	}

	measurementPayload struct {
		ID             string    `json:"id"`
		DeviceID       string    `json:"deviceId"`
		Type           string    `json:"type"`
		Value          float64   `json:"value"`
		SequenceNumber int       `json:"sequenceNumber"`
		Timestamp      time.Time `json:"timestamp"`
		Tags           []string  `json:"tags,omitempty"`
	}

	pagePayload[T any] struct {
		Content       []T   `json:"content"`
		TotalElements int64 `json:"totalElements"`
		TotalPages    int   `json:"totalPages"`
		Page          int   `json:"page"`
		Size          int   `json:"size"`
	}

	createDeviceRequest struct {
		Name     string `json:"name"`
		Type     string `json:"type"`
		Building string `json:"building"`
		Room     string `json:"room"`
	}

	updateDeviceRequest struct {
		Name     *string `json:"name"`
		Type     *string `json:"type"`
		Building *string `json:"building"`
		Room     *string `json:"room"`
		Active   *bool   `json:"active"`
	}

	createMeasurementRequest struct {
		DeviceID  string     `json:"deviceId"`
		Type      string     `json:"type"`
		Value     float64    `json:"value"`
		Timestamp *time.Time `json:"timestamp"`
	}

	errorPayload struct {
		Error  string              `json:"error"`
		Fields []fieldErrorPayload `json:"fields,omitempty"`
	}

	fieldErrorPayload struct {
		Field   string `json:"field"`
		Message string `json:"message"`
	}
)

func toDevicePayload(d *model.Device) devicePayload {
	return devicePayload{
		ID:       d.ID.String(),
		Name:     d.Name,
		Type:     d.Type.String(),
		Building: d.Building,
		Room:     d.Room,
		Active:   d.Active,
		Config:   d.Config,
	}
}

func toMeasurementPayload(m *model.Measurement) measurementPayload {
	return measurementPayload{
		ID:             m.ID.String(),
		DeviceID:       m.DeviceID.String(),
		Type:           m.Type.String(),
		Value:          m.Value,
		SequenceNumber: m.SequenceNumber,
		Timestamp:      m.Timestamp,
		Tags:           m.Tags,
	}
}

func toDevicePage(result *model.PageResult[*model.Device]) pagePayload[devicePayload] {
	content := make([]devicePayload, 0, len(result.Content))
	for _, device := range result.Content {
		content = append(content, toDevicePayload(device))
	}

	return pagePayload[devicePayload]{
		Content:       content,
		TotalElements: result.TotalElements,
		TotalPages:    result.TotalPages(),
		Page:          result.Page,
		Size:          result.Size,
	}
}

func toMeasurementPage(result *model.PageResult[*model.Measurement]) pagePayload[measurementPayload] {
	content := make([]measurementPayload, 0, len(result.Content))
	for _, measurement := range result.Content {
		content = append(content, toMeasurementPayload(measurement))
	}

	return pagePayload[measurementPayload]{
		Content:       content,
		TotalElements: result.TotalElements,
		TotalPages:    result.TotalPages(),
		Page:          result.Page,
		Size:          result.Size,
	}
}

// parsePageRequest reads page, size, sortBy and direction query params and
// normalizes them with the entity's defaults. Unknown directions are
// rejected rather than silently defaulted.
func parsePageRequest(values url.Values, defaultSize int, defaultSortBy string) (model.PageRequest, error) {
	validation := model.NewValidationErrors()

	var rawPage, rawSize *int

	if raw := values.Get("page"); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil {
			validation.Add("page", "must be an integer")
		} else {
			rawPage = &page
		}
	}

	if raw := values.Get("size"); raw != "" {
		size, err := strconv.Atoi(raw)
		if err != nil {
			validation.Add("size", "must be an integer")
		} else {
			rawSize = &size
		}
	}

	var rawSortBy *string
	if raw := values.Get("sortBy"); raw != "" {
		rawSortBy = &raw
	}

	var rawDirection *model.SortDirection
	if raw := values.Get("direction"); raw != "" {
		switch strings.ToUpper(raw) {
		case string(model.SortAsc):
			direction := model.SortAsc
			rawDirection = &direction
		case string(model.SortDesc):
			direction := model.SortDesc
			rawDirection = &direction
		default:
			validation.Add("direction", "must be ASC or DESC")
		}
	}

	if validation.HasErrors() {
		return model.PageRequest{}, validation
	}

	return model.NormalizePageRequest(rawPage, rawSize, rawSortBy, rawDirection, defaultSize, defaultSortBy), nil
}

func parseDeviceFilter(values url.Values) (*model.DeviceFilter, error) {
	validation := model.NewValidationErrors()
	filter := &model.DeviceFilter{}

	if raw := values.Get("building"); raw != "" {
		filter.Building = &raw
	}

	if raw := values.Get("room"); raw != "" {
		filter.Room = &raw
	}

	if raw := values.Get("type"); raw != "" {
		deviceType, err := model.ParseDeviceType(raw)
		if err != nil {
			validation.Add("type", "unknown device type")
		} else {
			filter.Type = &deviceType
		}
	}

	if raw := values.Get("active"); raw != "" {
		active, err := strconv.ParseBool(raw)
		if err != nil {
			validation.Add("active", "must be a boolean")
		} else {
			filter.Active = &active
		}
	}

	if validation.HasErrors() {
		return nil, validation
	}

	return filter, nil
}

func parseMeasurementFilter(values url.Values) (*model.MeasurementFilter, error) {
	validation := model.NewValidationErrors()
	filter := &model.MeasurementFilter{}

	if raw := values.Get("deviceId"); raw != "" {
		deviceID, err := model.ParseDeviceID(raw)
		if err != nil {
			validation.Add("deviceId", "must be a UUID")
		} else {
			filter.DeviceID = &deviceID
		}
	}

	if raw := values.Get("type"); raw != "" {
		measurementType, err := model.ParseDeviceType(raw)
		if err != nil {
			validation.Add("type", "unknown measurement type")
		} else {
			filter.Type = &measurementType
		}
	}

	if raw := values.Get("from"); raw != "" {
		from, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			validation.Add("from", "must be an RFC 3339 timestamp")
		} else {
			filter.From = &from
		}
	}

	if raw := values.Get("to"); raw != "" {
		to, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			validation.Add("to", "must be an RFC 3339 timestamp")
		} else {
			filter.To = &to
		}
	}

	if validation.HasErrors() {
		return nil, validation
	}

	return filter, nil
}

func statusFromError(err error) int {
	var validation *model.ValidationErrors
	if errors.As(err, &validation) {
		return http.StatusBadRequest
	}

	switch {
	case errors.Is(err, model.ErrDeviceNotFound), errors.Is(err, model.ErrMeasurementNotFound):
		return http.StatusNotFound
	case errors.Is(err, model.ErrDuplicateDeviceName):
		return http.StatusConflict
	case errors.Is(err, model.ErrInvalidDeviceID), errors.Is(err, model.ErrInvalidDeviceType):
		return http.StatusBadRequest
	case errors.Is(err, model.ErrStorageUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func toErrorPayload(err error) errorPayload {
	var validation *model.ValidationErrors
	if errors.As(err, &validation) {
		fields := make([]fieldErrorPayload, 0, len(validation.Errors))
		for _, fieldErr := range validation.Errors {
			fields = append(fields, fieldErrorPayload{
				Field:   fieldErr.Field,
				Message: fieldErr.Message,
			})
		}

		return errorPayload{Error: "validation failed", Fields: fields}
	}

	if statusFromError(err) == http.StatusInternalServerError {
		// Internal details stay in the logs.
		return errorPayload{Error: "internal error"}
	}

	return errorPayload{Error: err.Error()}
}

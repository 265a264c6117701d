package httpapi_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ErVaaL/argos-resource-service/internal/adapters/inbound/httpapi"
	"github.com/ErVaaL/argos-resource-service/internal/domain/model"
	"github.com/ErVaaL/argos-resource-service/internal/infrastructure"
	"github.com/ErVaaL/argos-resource-service/internal/usecases"
	"github.com/ErVaaL/argos-resource-service/pkg/logger"
	"github.com/ErVaaL/argos-resource-service/pkg/metrics/noop"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/require"
)

type mockDevicesService struct {
	createDeviceFn func(ctx context.Context, name string, deviceType model.DeviceType, building, room string) (*model.Device, error)
	updateDeviceFn func(ctx context.Context, id model.DeviceID, update model.DeviceUpdate) (*model.Device, error)
	deleteDeviceFn func(ctx context.Context, id model.DeviceID) error
	getDeviceFn    func(ctx context.Context, id model.DeviceID) (*model.Device, error)
	findDevicesFn  func(ctx context.Context, filter *model.DeviceFilter, page model.PageRequest) (*model.PageResult[*model.Device], error)
}

func (m *mockDevicesService) CreateDevice(ctx context.Context, name string, deviceType model.DeviceType, building, room string) (*model.Device, error) {
	if m.createDeviceFn != nil {
		return m.createDeviceFn(ctx, name, deviceType, building, room)
	}

	return model.NewDevice(name, deviceType, building, room), nil
}

func (m *mockDevicesService) UpdateDevice(ctx context.Context, id model.DeviceID, update model.DeviceUpdate) (*model.Device, error) {
	if m.updateDeviceFn != nil {
		return m.updateDeviceFn(ctx, id, update)
	}

	return nil, model.ErrDeviceNotFound
}

func (m *mockDevicesService) DeleteDevice(ctx context.Context, id model.DeviceID) error {
	if m.deleteDeviceFn != nil {
		return m.deleteDeviceFn(ctx, id)
	}

	return nil
}

func (m *mockDevicesService) GetDevice(ctx context.Context, id model.DeviceID) (*model.Device, error) {
	if m.getDeviceFn != nil {
		return m.getDeviceFn(ctx, id)
	}

	return nil, model.ErrDeviceNotFound
}

func (m *mockDevicesService) FindDevices(ctx context.Context, filter *model.DeviceFilter, page model.PageRequest) (*model.PageResult[*model.Device], error) {
	if m.findDevicesFn != nil {
		return m.findDevicesFn(ctx, filter, page)
	}

	return &model.PageResult[*model.Device]{Content: []*model.Device{}, Page: page.Page, Size: page.Size}, nil
}

type mockMeasurementsService struct {
	createMeasurementFn func(ctx context.Context, deviceID model.DeviceID, measurementType model.MeasurementType, value float64, timestamp *time.Time) (*model.Measurement, error)
	deleteMeasurementFn func(ctx context.Context, id model.MeasurementID) error
	deleteByDeviceFn    func(ctx context.Context, deviceID model.DeviceID) error
	getMeasurementFn    func(ctx context.Context, id model.MeasurementID) (*model.Measurement, error)
	findMeasurementsFn  func(ctx context.Context, filter *model.MeasurementFilter, page model.PageRequest) (*model.PageResult[*model.Measurement], error)
}

func (m *mockMeasurementsService) CreateMeasurement(ctx context.Context, deviceID model.DeviceID, measurementType model.MeasurementType, value float64, timestamp *time.Time) (*model.Measurement, error) {
	if m.createMeasurementFn != nil {
		return m.createMeasurementFn(ctx, deviceID, measurementType, value, timestamp)
	}

	ts := time.Now().UTC()
	if timestamp != nil {
		ts = *timestamp
	}

	measurement := model.NewMeasurement(deviceID, measurementType, value, ts)
	measurement.ID = model.NewMeasurementID()

	return measurement, nil
}

func (m *mockMeasurementsService) DeleteMeasurement(ctx context.Context, id model.MeasurementID) error {
	if m.deleteMeasurementFn != nil {
		return m.deleteMeasurementFn(ctx, id)
	}

	return nil
}

func (m *mockMeasurementsService) DeleteMeasurementsByDevice(ctx context.Context, deviceID model.DeviceID) error {
	if m.deleteByDeviceFn != nil {
		return m.deleteByDeviceFn(ctx, deviceID)
	}

	return nil
}

func (m *mockMeasurementsService) GetMeasurement(ctx context.Context, id model.MeasurementID) (*model.Measurement, error) {
	if m.getMeasurementFn != nil {
		return m.getMeasurementFn(ctx, id)
	}

	return nil, model.ErrMeasurementNotFound
}

func (m *mockMeasurementsService) FindMeasurements(ctx context.Context, filter *model.MeasurementFilter, page model.PageRequest) (*model.PageResult[*model.Measurement], error) {
	if m.findMeasurementsFn != nil {
		return m.findMeasurementsFn(ctx, filter, page)
	}

	return &model.PageResult[*model.Measurement]{Content: []*model.Measurement{}, Page: page.Page, Size: page.Size}, nil
}

type mockHealthChecker struct {
	pingFn func(ctx context.Context) error
}

func (m *mockHealthChecker) Ping(ctx context.Context) error {
	if m.pingFn != nil {
		return m.pingFn(ctx)
	}

	return nil
}

func newTestRouter(devices *mockDevicesService, measurements *mockMeasurementsService, health *mockHealthChecker) *mux.Router {
	log := logger.New("error", "console")
	app := usecases.NewApplication(
		devices,
		measurements,
		health,
		log,
		noop.NewMetricsClient(),
		infrastructure.NewNoopTracerProvider(),
	)

	return httpapi.NewRouter(app, "v1", log)
}

func doRequest(t *testing.T, router *mux.Router, method, target string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(encoded)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, target, reader)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	return recorder
}

func decodeBody[T any](t *testing.T, recorder *httptest.ResponseRecorder) T {
	t.Helper()

	var out T
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &out))

	return out
}

func TestDeviceEndpoints_Create(t *testing.T) {
	t.Parallel()

	t.Run("creates a device and returns 201", func(t *testing.T) {
		t.Parallel()

		router := newTestRouter(&mockDevicesService{}, &mockMeasurementsService{}, &mockHealthChecker{})

		recorder := doRequest(t, router, http.MethodPost, "/api/v1/devices", map[string]any{
			"name":     "lobby-temp",
			"type":     "temp",
			"building": "B1",
			"room":     "R100",
		})

		require.Equal(t, http.StatusCreated, recorder.Code)

		body := decodeBody[map[string]any](t, recorder)
		require.Equal(t, "lobby-temp", body["name"])
		require.Equal(t, "TEMP", body["type"])
		require.Equal(t, true, body["active"])
		require.NotEmpty(t, body["id"])
	})

	t.Run("rejects an unknown device type", func(t *testing.T) {
		t.Parallel()

		router := newTestRouter(&mockDevicesService{}, &mockMeasurementsService{}, &mockHealthChecker{})

		recorder := doRequest(t, router, http.MethodPost, "/api/v1/devices", map[string]any{
			"name": "lobby-temp",
			"type": "barometer",
		})

		require.Equal(t, http.StatusBadRequest, recorder.Code)
		require.Contains(t, recorder.Body.String(), "type")
	})

	t.Run("maps a duplicate name to 409", func(t *testing.T) {
		t.Parallel()

		devices := &mockDevicesService{
			createDeviceFn: func(_ context.Context, name string, _ model.DeviceType, _, _ string) (*model.Device, error) {
				return nil, fmt.Errorf("%w: %s", model.ErrDuplicateDeviceName, name)
			},
		}
		router := newTestRouter(devices, &mockMeasurementsService{}, &mockHealthChecker{})

		recorder := doRequest(t, router, http.MethodPost, "/api/v1/devices", map[string]any{
			"name": "lobby-temp",
			"type": "temp",
		})

		require.Equal(t, http.StatusConflict, recorder.Code)
	})

	t.Run("rejects malformed JSON", func(t *testing.T) {
		t.Parallel()

		router := newTestRouter(&mockDevicesService{}, &mockMeasurementsService{}, &mockHealthChecker{})

		req := httptest.NewRequest(http.MethodPost, "/api/v1/devices", bytes.NewReader([]byte("{not json")))
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, req)

		require.Equal(t, http.StatusBadRequest, recorder.Code)
	})
}

func TestDeviceEndpoints_Get(t *testing.T) {
	t.Parallel()

	t.Run("returns the device", func(t *testing.T) {
		t.Parallel()

		device := model.NewDevice("lobby-temp", model.DeviceTypeTemp, "B1", "R100")
		devices := &mockDevicesService{
			getDeviceFn: func(_ context.Context, id model.DeviceID) (*model.Device, error) {
				require.Equal(t, device.ID, id)

				return device, nil
			},
		}
		router := newTestRouter(devices, &mockMeasurementsService{}, &mockHealthChecker{})

		recorder := doRequest(t, router, http.MethodGet, "/api/v1/devices/"+device.ID.String(), nil)

		require.Equal(t, http.StatusOK, recorder.Code)

		body := decodeBody[map[string]any](t, recorder)
		require.Equal(t, device.ID.String(), body["id"])
	})

	t.Run("returns 404 when the device is missing", func(t *testing.T) {
		t.Parallel()

		router := newTestRouter(&mockDevicesService{}, &mockMeasurementsService{}, &mockHealthChecker{})

		recorder := doRequest(t, router, http.MethodGet, "/api/v1/devices/"+model.NewDeviceID().String(), nil)

		require.Equal(t, http.StatusNotFound, recorder.Code)
	})

	t.Run("rejects a malformed id", func(t *testing.T) {
		t.Parallel()

		router := newTestRouter(&mockDevicesService{}, &mockMeasurementsService{}, &mockHealthChecker{})

		recorder := doRequest(t, router, http.MethodGet, "/api/v1/devices/not-a-uuid", nil)

		require.Equal(t, http.StatusBadRequest, recorder.Code)
	})
}

func TestDeviceEndpoints_List(t *testing.T) {
	t.Parallel()

	t.Run("passes filter and paging to the service", func(t *testing.T) {
		t.Parallel()

		var gotFilter *model.DeviceFilter
		var gotPage model.PageRequest

		devices := &mockDevicesService{
			findDevicesFn: func(_ context.Context, filter *model.DeviceFilter, page model.PageRequest) (*model.PageResult[*model.Device], error) {
				gotFilter = filter
				gotPage = page

				return &model.PageResult[*model.Device]{
					Content:       []*model.Device{model.NewDevice("d1", model.DeviceTypeCO2, "B2", "R1")},
					TotalElements: 31,
					Page:          page.Page,
					Size:          page.Size,
				}, nil
			},
		}
		router := newTestRouter(devices, &mockMeasurementsService{}, &mockHealthChecker{})

		target := "/api/v1/devices?building=B2&type=co2&active=true&page=1&size=10&sortBy=building&direction=desc"
		recorder := doRequest(t, router, http.MethodGet, target, nil)

		require.Equal(t, http.StatusOK, recorder.Code)

		require.NotNil(t, gotFilter)
		require.NotNil(t, gotFilter.Building)
		require.Equal(t, "B2", *gotFilter.Building)
		require.NotNil(t, gotFilter.Type)
		require.Equal(t, model.DeviceTypeCO2, *gotFilter.Type)
		require.NotNil(t, gotFilter.Active)
		require.True(t, *gotFilter.Active)
		require.Nil(t, gotFilter.Room)

		require.Equal(t, 1, gotPage.Page)
		require.Equal(t, 10, gotPage.Size)
		require.Equal(t, "building", gotPage.SortBy)
		require.Equal(t, model.SortDesc, gotPage.Direction)

		body := decodeBody[map[string]any](t, recorder)
		require.EqualValues(t, 31, body["totalElements"])
		require.EqualValues(t, 4, body["totalPages"])
	})

	t.Run("defaults paging when no params are given", func(t *testing.T) {
		t.Parallel()

		var gotPage model.PageRequest

		devices := &mockDevicesService{
			findDevicesFn: func(_ context.Context, _ *model.DeviceFilter, page model.PageRequest) (*model.PageResult[*model.Device], error) {
				gotPage = page

				return &model.PageResult[*model.Device]{Content: []*model.Device{}, Page: page.Page, Size: page.Size}, nil
			},
		}
		router := newTestRouter(devices, &mockMeasurementsService{}, &mockHealthChecker{})

		recorder := doRequest(t, router, http.MethodGet, "/api/v1/devices", nil)

		require.Equal(t, http.StatusOK, recorder.Code)
		require.Equal(t, 0, gotPage.Page)
		require.Equal(t, model.DefaultPageSize, gotPage.Size)
		require.Equal(t, model.DeviceDefaultSort, gotPage.SortBy)
		require.Equal(t, model.SortAsc, gotPage.Direction)
	})

	t.Run("rejects an unknown direction", func(t *testing.T) {
		t.Parallel()

		router := newTestRouter(&mockDevicesService{}, &mockMeasurementsService{}, &mockHealthChecker{})

		recorder := doRequest(t, router, http.MethodGet, "/api/v1/devices?direction=sideways", nil)

		require.Equal(t, http.StatusBadRequest, recorder.Code)
		require.Contains(t, recorder.Body.String(), "direction")
	})
}

func TestDeviceEndpoints_Update(t *testing.T) {
	t.Parallel()

	t.Run("applies a partial update", func(t *testing.T) {
		t.Parallel()

		device := model.NewDevice("lobby-temp", model.DeviceTypeTemp, "B1", "R100")
		devices := &mockDevicesService{
			updateDeviceFn: func(_ context.Context, id model.DeviceID, update model.DeviceUpdate) (*model.Device, error) {
				require.Equal(t, device.ID, id)
				require.Nil(t, update.Name)
				require.NotNil(t, update.Room)
				require.Equal(t, "R200", *update.Room)

				device.Apply(update)

				return device, nil
			},
		}
		router := newTestRouter(devices, &mockMeasurementsService{}, &mockHealthChecker{})

		recorder := doRequest(t, router, http.MethodPatch, "/api/v1/devices/"+device.ID.String(), map[string]any{
			"room": "R200",
		})

		require.Equal(t, http.StatusOK, recorder.Code)

		body := decodeBody[map[string]any](t, recorder)
		require.Equal(t, "R200", body["room"])
	})

	t.Run("rejects an unknown type in the update", func(t *testing.T) {
		t.Parallel()

		router := newTestRouter(&mockDevicesService{}, &mockMeasurementsService{}, &mockHealthChecker{})

		recorder := doRequest(t, router, http.MethodPatch, "/api/v1/devices/"+model.NewDeviceID().String(), map[string]any{
			"type": "barometer",
		})

		require.Equal(t, http.StatusBadRequest, recorder.Code)
	})

	t.Run("returns 404 for a missing device", func(t *testing.T) {
		t.Parallel()

		router := newTestRouter(&mockDevicesService{}, &mockMeasurementsService{}, &mockHealthChecker{})

		recorder := doRequest(t, router, http.MethodPatch, "/api/v1/devices/"+model.NewDeviceID().String(), map[string]any{
			"room": "R200",
		})

		require.Equal(t, http.StatusNotFound, recorder.Code)
	})
}

func TestDeviceEndpoints_Delete(t *testing.T) {
	t.Parallel()

	var gotID model.DeviceID
	devices := &mockDevicesService{
		deleteDeviceFn: func(_ context.Context, id model.DeviceID) error {
			gotID = id

			return nil
		},
	}
	router := newTestRouter(devices, &mockMeasurementsService{}, &mockHealthChecker{})

	id := model.NewDeviceID()
	recorder := doRequest(t, router, http.MethodDelete, "/api/v1/devices/"+id.String(), nil)

	require.Equal(t, http.StatusNoContent, recorder.Code)
	require.Equal(t, id, gotID)
}

func TestDeviceEndpoints_DeleteMeasurements(t *testing.T) {
	t.Parallel()

	var gotDeviceID model.DeviceID
	measurements := &mockMeasurementsService{
		deleteByDeviceFn: func(_ context.Context, deviceID model.DeviceID) error {
			gotDeviceID = deviceID

			return nil
		},
	}
	router := newTestRouter(&mockDevicesService{}, measurements, &mockHealthChecker{})

	id := model.NewDeviceID()
	recorder := doRequest(t, router, http.MethodDelete, "/api/v1/devices/"+id.String()+"/measurements", nil)

	require.Equal(t, http.StatusNoContent, recorder.Code)
	require.Equal(t, id, gotDeviceID)
}

func TestDeviceEndpoints_LastMeasurements(t *testing.T) {
	t.Parallel()

	t.Run("queries the latest readings newest first", func(t *testing.T) {
		t.Parallel()

		deviceID := model.NewDeviceID()
		now := time.Now().UTC()

		var gotFilter *model.MeasurementFilter
		var gotPage model.PageRequest

		measurements := &mockMeasurementsService{
			findMeasurementsFn: func(_ context.Context, filter *model.MeasurementFilter, page model.PageRequest) (*model.PageResult[*model.Measurement], error) {
				gotFilter = filter
				gotPage = page

				reading := model.NewMeasurement(deviceID, model.DeviceTypeTemp, 21.5, now)
				reading.ID = model.NewMeasurementID()

				return &model.PageResult[*model.Measurement]{
					Content:       []*model.Measurement{reading},
					TotalElements: 1,
					Page:          page.Page,
					Size:          page.Size,
				}, nil
			},
		}
		router := newTestRouter(&mockDevicesService{}, measurements, &mockHealthChecker{})

		target := "/api/v1/devices/" + deviceID.String() + "/measurements/last?limit=25"
		recorder := doRequest(t, router, http.MethodGet, target, nil)

		require.Equal(t, http.StatusOK, recorder.Code)

		require.NotNil(t, gotFilter)
		require.NotNil(t, gotFilter.DeviceID)
		require.Equal(t, deviceID, *gotFilter.DeviceID)

		require.Equal(t, 0, gotPage.Page)
		require.Equal(t, 25, gotPage.Size)
		require.Equal(t, model.MeasurementDefaultSort, gotPage.SortBy)
		require.Equal(t, model.SortDesc, gotPage.Direction)

		body := decodeBody[[]map[string]any](t, recorder)
		require.Len(t, body, 1)
		require.Equal(t, deviceID.String(), body[0]["deviceId"])
	})

	t.Run("rejects a non-numeric limit", func(t *testing.T) {
		t.Parallel()

		router := newTestRouter(&mockDevicesService{}, &mockMeasurementsService{}, &mockHealthChecker{})

		target := "/api/v1/devices/" + model.NewDeviceID().String() + "/measurements/last?limit=many"
		recorder := doRequest(t, router, http.MethodGet, target, nil)

		require.Equal(t, http.StatusBadRequest, recorder.Code)
	})
}

func TestMeasurementEndpoints_Create(t *testing.T) {
	t.Parallel()

	t.Run("stores a reading and returns 201", func(t *testing.T) {
		t.Parallel()

		deviceID := model.NewDeviceID()
		ts := time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)

		measurements := &mockMeasurementsService{
			createMeasurementFn: func(_ context.Context, gotDeviceID model.DeviceID, measurementType model.MeasurementType, value float64, timestamp *time.Time) (*model.Measurement, error) {
				require.Equal(t, deviceID, gotDeviceID)
				require.Equal(t, model.DeviceTypeHumidity, measurementType)
				require.InEpsilon(t, 64.2, value, 1e-9)
				require.NotNil(t, timestamp)
				require.True(t, timestamp.Equal(ts))

				reading := model.NewMeasurement(gotDeviceID, measurementType, value, *timestamp)
				reading.ID = model.NewMeasurementID()

				return reading, nil
			},
		}
		router := newTestRouter(&mockDevicesService{}, measurements, &mockHealthChecker{})

		recorder := doRequest(t, router, http.MethodPost, "/api/v1/measurements", map[string]any{
			"deviceId":  deviceID.String(),
			"type":      "humidity",
			"value":     64.2,
			"timestamp": ts.Format(time.RFC3339),
		})

		require.Equal(t, http.StatusCreated, recorder.Code)

		body := decodeBody[map[string]any](t, recorder)
		require.Equal(t, deviceID.String(), body["deviceId"])
		require.EqualValues(t, 0, body["sequenceNumber"])
	})

	t.Run("rejects a malformed device id", func(t *testing.T) {
		t.Parallel()

		router := newTestRouter(&mockDevicesService{}, &mockMeasurementsService{}, &mockHealthChecker{})

		recorder := doRequest(t, router, http.MethodPost, "/api/v1/measurements", map[string]any{
			"deviceId": "not-a-uuid",
			"type":     "temp",
			"value":    1.0,
		})

		require.Equal(t, http.StatusBadRequest, recorder.Code)
		require.Contains(t, recorder.Body.String(), "deviceId")
	})

	t.Run("maps an unknown device to 404", func(t *testing.T) {
		t.Parallel()

		measurements := &mockMeasurementsService{
			createMeasurementFn: func(_ context.Context, deviceID model.DeviceID, _ model.MeasurementType, _ float64, _ *time.Time) (*model.Measurement, error) {
				return nil, fmt.Errorf("%w: %s", model.ErrDeviceNotFound, deviceID)
			},
		}
		router := newTestRouter(&mockDevicesService{}, measurements, &mockHealthChecker{})

		recorder := doRequest(t, router, http.MethodPost, "/api/v1/measurements", map[string]any{
			"deviceId": model.NewDeviceID().String(),
			"type":     "temp",
			"value":    1.0,
		})

		require.Equal(t, http.StatusNotFound, recorder.Code)
	})
}

func TestMeasurementEndpoints_List(t *testing.T) {
	t.Parallel()

	t.Run("passes the time window to the service", func(t *testing.T) {
		t.Parallel()

		deviceID := model.NewDeviceID()
		from := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
		to := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

		var gotFilter *model.MeasurementFilter

		measurements := &mockMeasurementsService{
			findMeasurementsFn: func(_ context.Context, filter *model.MeasurementFilter, page model.PageRequest) (*model.PageResult[*model.Measurement], error) {
				gotFilter = filter

				return &model.PageResult[*model.Measurement]{Content: []*model.Measurement{}, Page: page.Page, Size: page.Size}, nil
			},
		}
		router := newTestRouter(&mockDevicesService{}, measurements, &mockHealthChecker{})

		target := "/api/v1/measurements?deviceId=" + deviceID.String() +
			"&from=" + from.Format(time.RFC3339) + "&to=" + to.Format(time.RFC3339)
		recorder := doRequest(t, router, http.MethodGet, target, nil)

		require.Equal(t, http.StatusOK, recorder.Code)

		require.NotNil(t, gotFilter)
		require.NotNil(t, gotFilter.DeviceID)
		require.Equal(t, deviceID, *gotFilter.DeviceID)
		require.NotNil(t, gotFilter.From)
		require.True(t, gotFilter.From.Equal(from))
		require.NotNil(t, gotFilter.To)
		require.True(t, gotFilter.To.Equal(to))
	})

	t.Run("rejects a malformed from timestamp", func(t *testing.T) {
		t.Parallel()

		router := newTestRouter(&mockDevicesService{}, &mockMeasurementsService{}, &mockHealthChecker{})

		recorder := doRequest(t, router, http.MethodGet, "/api/v1/measurements?from=yesterday", nil)

		require.Equal(t, http.StatusBadRequest, recorder.Code)
		require.Contains(t, recorder.Body.String(), "from")
	})
}

func TestMeasurementEndpoints_GetAndDelete(t *testing.T) {
	t.Parallel()

	t.Run("returns 404 for a missing measurement", func(t *testing.T) {
		t.Parallel()

		router := newTestRouter(&mockDevicesService{}, &mockMeasurementsService{}, &mockHealthChecker{})

		recorder := doRequest(t, router, http.MethodGet, "/api/v1/measurements/"+model.NewMeasurementID().String(), nil)

		require.Equal(t, http.StatusNotFound, recorder.Code)
	})

	t.Run("deletes by id", func(t *testing.T) {
		t.Parallel()

		var gotID model.MeasurementID
		measurements := &mockMeasurementsService{
			deleteMeasurementFn: func(_ context.Context, id model.MeasurementID) error {
				gotID = id

				return nil
			},
		}
		router := newTestRouter(&mockDevicesService{}, measurements, &mockHealthChecker{})

		id := model.NewMeasurementID()
		recorder := doRequest(t, router, http.MethodDelete, "/api/v1/measurements/"+id.String(), nil)

		require.Equal(t, http.StatusNoContent, recorder.Code)
		require.Equal(t, id, gotID)
	})
}

func TestHealthEndpoints(t *testing.T) {
	t.Parallel()

	t.Run("liveness is always ok", func(t *testing.T) {
		t.Parallel()

		router := newTestRouter(&mockDevicesService{}, &mockMeasurementsService{}, &mockHealthChecker{})

		recorder := doRequest(t, router, http.MethodGet, "/healthz", nil)

		require.Equal(t, http.StatusOK, recorder.Code)
		require.Contains(t, recorder.Body.String(), `"status":"ok"`)
	})

	t.Run("readiness reflects the database", func(t *testing.T) {
		t.Parallel()

		down := &mockHealthChecker{
			pingFn: func(_ context.Context) error {
				return errors.New("connection refused")
			},
		}
		router := newTestRouter(&mockDevicesService{}, &mockMeasurementsService{}, down)

		recorder := doRequest(t, router, http.MethodGet, "/readyz", nil)

		require.Equal(t, http.StatusServiceUnavailable, recorder.Code)
		require.Contains(t, recorder.Body.String(), `"ready":false`)
	})

	t.Run("health report includes the database dependency", func(t *testing.T) {
		t.Parallel()

		router := newTestRouter(&mockDevicesService{}, &mockMeasurementsService{}, &mockHealthChecker{})

		recorder := doRequest(t, router, http.MethodGet, "/health", nil)

		require.Equal(t, http.StatusOK, recorder.Code)
		require.Contains(t, recorder.Body.String(), `"status":"healthy"`)
		require.Contains(t, recorder.Body.String(), `"postgres"`)
	})
}

func TestServiceFailuresMapToStatusCodes(t *testing.T) {
	t.Parallel()

	t.Run("storage unavailable yields 503", func(t *testing.T) {
		t.Parallel()

		devices := &mockDevicesService{
			findDevicesFn: func(_ context.Context, _ *model.DeviceFilter, _ model.PageRequest) (*model.PageResult[*model.Device], error) {
				return nil, fmt.Errorf("%w: circuit open", model.ErrStorageUnavailable)
			},
		}
		router := newTestRouter(devices, &mockMeasurementsService{}, &mockHealthChecker{})

		recorder := doRequest(t, router, http.MethodGet, "/api/v1/devices", nil)

		require.Equal(t, http.StatusServiceUnavailable, recorder.Code)
	})

	t.Run("unexpected errors stay generic", func(t *testing.T) {
		t.Parallel()

		devices := &mockDevicesService{
			getDeviceFn: func(_ context.Context, _ model.DeviceID) (*model.Device, error) {
				return nil, errors.New("column mismatch on devices")
			},
		}
		router := newTestRouter(devices, &mockMeasurementsService{}, &mockHealthChecker{})

		recorder := doRequest(t, router, http.MethodGet, "/api/v1/devices/"+model.NewDeviceID().String(), nil)

		require.Equal(t, http.StatusInternalServerError, recorder.Code)
		require.Contains(t, recorder.Body.String(), "internal error")
		require.NotContains(t, recorder.Body.String(), "column mismatch")
	})
}

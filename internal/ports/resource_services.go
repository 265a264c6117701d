package ports

import (
	"context"
	"time"

	"github.com/ErVaaL/argos-resource-service/internal/domain/model"
)

// DevicesService defines the device write and read path.
type DevicesService interface {
	// CreateDevice creates a new active device with a fresh id.
	CreateDevice(ctx context.Context, name string, deviceType model.DeviceType, building, room string) (*model.Device, error)

	// UpdateDevice partially updates a device; absent fields keep their
	// stored values.
	UpdateDevice(ctx context.Context, id model.DeviceID, update model.DeviceUpdate) (*model.Device, error)

	// DeleteDevice removes a device by id, idempotently.
	DeleteDevice(ctx context.Context, id model.DeviceID) error

	// GetDevice retrieves a device by its ID.
	GetDevice(ctx context.Context, id model.DeviceID) (*model.Device, error)

	// FindDevices retrieves a page of devices matching the filter.
	FindDevices(ctx context.Context, filter *model.DeviceFilter, page model.PageRequest) (*model.PageResult[*model.Device], error)
}

// MeasurementsService defines the measurement write and read path.
type MeasurementsService interface {
	// CreateMeasurement stores a reading for an existing device. A nil
	// timestamp defaults to the current time.
	CreateMeasurement(ctx context.Context, deviceID model.DeviceID, measurementType model.MeasurementType, value float64, timestamp *time.Time) (*model.Measurement, error)

	// DeleteMeasurement removes a measurement by id, idempotently.
	DeleteMeasurement(ctx context.Context, id model.MeasurementID) error

	// DeleteMeasurementsByDevice removes every measurement for a device.
	DeleteMeasurementsByDevice(ctx context.Context, deviceID model.DeviceID) error

	// GetMeasurement retrieves a measurement by its ID.
	GetMeasurement(ctx context.Context, id model.MeasurementID) (*model.Measurement, error)

	// FindMeasurements retrieves a page of measurements matching the filter.
	FindMeasurements(ctx context.Context, filter *model.MeasurementFilter, page model.PageRequest) (*model.PageResult[*model.Measurement], error)
}

package ports

import (
	"context"

	"github.com/ErVaaL/argos-resource-service/internal/domain/model"
)

// MeasurementRepository defines the persistence contract for measurements.
type MeasurementRepository interface {
	// Save persists a measurement, assigning a store-generated id when
	// the measurement carries none.
	Save(ctx context.Context, measurement *model.Measurement) (*model.Measurement, error)

	// FindByID retrieves a measurement by its ID.
	FindByID(ctx context.Context, id model.MeasurementID) (*model.Measurement, error)

	// FindAll retrieves a page of measurements without filtering.
	FindAll(ctx context.Context, page model.PageRequest) (*model.PageResult[*model.Measurement], error)

	// FindByFilter retrieves a page of measurements matching the filter.
	// A nil filter matches everything.
	FindByFilter(ctx context.Context, filter *model.MeasurementFilter, page model.PageRequest) (*model.PageResult[*model.Measurement], error)

	// DeleteByID removes a measurement; a missing id is not an error.
	DeleteByID(ctx context.Context, id model.MeasurementID) error

	// DeleteByDeviceID removes every measurement referencing the device.
	// A device with no measurements is a no-op, not an error.
	DeleteByDeviceID(ctx context.Context, deviceID model.DeviceID) error

	// DeleteAll removes every measurement.
	DeleteAll(ctx context.Context) error
}

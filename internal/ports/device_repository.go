package ports

import (
	"context"

	"github.com/ErVaaL/argos-resource-service/internal/domain/model"
)

// DeviceRepository defines the persistence contract for devices.
// It is implemented by the Postgres engine and by an in-memory store
// used as a test double.
type DeviceRepository interface {
	// Save persists a device, inserting or replacing by id.
	Save(ctx context.Context, device *model.Device) (*model.Device, error)

	// FindByID retrieves a device by its ID.
	FindByID(ctx context.Context, id model.DeviceID) (*model.Device, error)

	// FindByName retrieves a device by its unique name. Used by the
	// write path as a fast-path uniqueness check; the store's unique
	// constraint remains the authoritative guard.
	FindByName(ctx context.Context, name string) (*model.Device, error)

	// FindAll retrieves a page of devices without filtering.
	FindAll(ctx context.Context, page model.PageRequest) (*model.PageResult[*model.Device], error)

	// FindByFilter retrieves a page of devices matching the filter.
	// A nil filter matches everything.
	FindByFilter(ctx context.Context, filter *model.DeviceFilter, page model.PageRequest) (*model.PageResult[*model.Device], error)

	// DeleteByID removes a device; a missing id is not an error.
	DeleteByID(ctx context.Context, id model.DeviceID) error

	// DeleteAll removes every device.
	DeleteAll(ctx context.Context) error
}

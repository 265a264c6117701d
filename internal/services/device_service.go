package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/ErVaaL/argos-resource-service/internal/domain/model"
	"github.com/ErVaaL/argos-resource-service/internal/ports"
)

// DevicesService enforces the device write-path invariants: identity
// generation, partial-update merge, and name uniqueness.
type DevicesService struct {
	repo ports.DeviceRepository
}

func NewDevicesService(repo ports.DeviceRepository) *DevicesService {
	return &DevicesService{repo: repo}
}

func (s *DevicesService) CreateDevice(ctx context.Context, name string, deviceType model.DeviceType, building, room string) (*model.Device, error) {
	device := model.NewDevice(name, deviceType, building, room)

	if err := s.checkNameUnique(ctx, name, device.ID); err != nil {
		return nil, err
	}

	return s.repo.Save(ctx, device)
}

func (s *DevicesService) UpdateDevice(ctx context.Context, id model.DeviceID, update model.DeviceUpdate) (*model.Device, error) {
	device, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	device.Apply(update)

	if err := s.checkNameUnique(ctx, device.Name, id); err != nil {
		return nil, err
	}

	return s.repo.Save(ctx, device)
}

func (s *DevicesService) DeleteDevice(ctx context.Context, id model.DeviceID) error {
	return s.repo.DeleteByID(ctx, id)
}

func (s *DevicesService) GetDevice(ctx context.Context, id model.DeviceID) (*model.Device, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *DevicesService) FindDevices(ctx context.Context, filter *model.DeviceFilter, page model.PageRequest) (*model.PageResult[*model.Device], error) {
	return s.repo.FindByFilter(ctx, filter, page)
}

// checkNameUnique is a fast-path rejection only: the read and the later
// write are not atomic, so the store's unique constraint on the name
// stays the authoritative guard. A match on the record's own id is fine,
// which lets a no-op update with an unchanged name succeed.
func (s *DevicesService) checkNameUnique(ctx context.Context, name string, selfID model.DeviceID) error {
	existing, err := s.repo.FindByName(ctx, name)
	if err != nil {
		if errors.Is(err, model.ErrDeviceNotFound) {
			return nil
		}

		return err
	}

	if existing.ID != selfID {
		return fmt.Errorf("%w: %s", model.ErrDuplicateDeviceName, name)
	}

	return nil
}

// Package memory implements the repository ports on plain maps. It backs
// service tests and local development where no Postgres is available,
// honoring the same filter, ordering and paging semantics as the real
// engine.
package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/ErVaaL/argos-resource-service/internal/domain/model"
)

type DeviceStore struct {
	mu      sync.RWMutex
	devices map[model.DeviceID]model.Device
}

func NewDeviceStore() *DeviceStore {
	return &DeviceStore{
		devices: make(map[model.DeviceID]model.Device),
	}
}

func (s *DeviceStore) Save(_ context.Context, device *model.Device) (*model.Device, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.devices {
		if existing.Name == device.Name && existing.ID != device.ID {
			return nil, fmt.Errorf("%w: %s", model.ErrDuplicateDeviceName, device.Name)
		}
	}

	stored := *device
	s.devices[device.ID] = stored
	saved := stored

	return &saved, nil
}

func (s *DeviceStore) FindByID(_ context.Context, id model.DeviceID) (*model.Device, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	device, ok := s.devices[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", model.ErrDeviceNotFound, id)
	}

	found := device

	return &found, nil
}

func (s *DeviceStore) FindByName(_ context.Context, name string) (*model.Device, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, device := range s.devices {
		if device.Name == name {
			found := device

			return &found, nil
		}
	}

	return nil, fmt.Errorf("%w: name %q", model.ErrDeviceNotFound, name)
}

func (s *DeviceStore) FindAll(ctx context.Context, page model.PageRequest) (*model.PageResult[*model.Device], error) {
	return s.FindByFilter(ctx, nil, page)
}

func (s *DeviceStore) FindByFilter(_ context.Context, filter *model.DeviceFilter, page model.PageRequest) (*model.PageResult[*model.Device], error) {
	s.mu.RLock()

	matched := make([]*model.Device, 0, len(s.devices))
	for _, device := range s.devices {
		if matchesDeviceFilter(device, filter) {
			copied := device
			matched = append(matched, &copied)
		}
	}

	s.mu.RUnlock()

	sortDevices(matched, page.SortBy, page.Direction)

	return &model.PageResult[*model.Device]{
		Content:       pageSlice(matched, page),
		TotalElements: int64(len(matched)),
		Page:          page.Page,
		Size:          page.Size,
	}, nil
}

func (s *DeviceStore) DeleteByID(_ context.Context, id model.DeviceID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.devices, id)

	return nil
}

func (s *DeviceStore) DeleteAll(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.devices = make(map[model.DeviceID]model.Device)

	return nil
}

func matchesDeviceFilter(device model.Device, filter *model.DeviceFilter) bool {
	if filter == nil {
		return true
	}

	if hasText(filter.Building) && device.Building != *filter.Building {
		return false
	}

	if hasText(filter.Room) && device.Room != *filter.Room {
		return false
	}

	if filter.Type != nil && device.Type != *filter.Type {
		return false
	}

	if filter.Active != nil && device.Active != *filter.Active {
		return false
	}

	return true
}

func sortDevices(devices []*model.Device, sortBy string, direction model.SortDirection) {
	less := func(a, b *model.Device) bool {
		switch sortBy {
		case "building":
			return a.Building < b.Building
		case "room":
			return a.Room < b.Room
		case "type":
			return a.Type < b.Type
		case "id":
			return a.ID.String() < b.ID.String()
		default:
			return a.Name < b.Name
		}
	}

	sort.SliceStable(devices, func(i, j int) bool {
		if direction == model.SortDesc {
			return less(devices[j], devices[i])
		}

		return less(devices[i], devices[j])
	})
}

func pageSlice[T any](items []T, page model.PageRequest) []T {
	if page.Size <= 0 {
		return items
	}

	start := page.Offset()
	if start >= len(items) {
		return []T{}
	}

	end := start + page.Size
	if end > len(items) {
		end = len(items)
	}

	return items[start:end]
}

func hasText(s *string) bool {
	return s != nil && strings.TrimSpace(*s) != ""
}

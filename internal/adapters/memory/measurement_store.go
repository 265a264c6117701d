package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/ErVaaL/argos-resource-service/internal/domain/model"
)

type MeasurementStore struct {
	mu           sync.RWMutex
	measurements map[model.MeasurementID]model.Measurement
}

func NewMeasurementStore() *MeasurementStore {
	return &MeasurementStore{
		measurements: make(map[model.MeasurementID]model.Measurement),
	}
}

func (s *MeasurementStore) Save(_ context.Context, measurement *model.Measurement) (*model.Measurement, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := *measurement
	if stored.ID.IsZero() {
		stored.ID = model.NewMeasurementID()
	}

	s.measurements[stored.ID] = stored
	saved := stored

	return &saved, nil
}

func (s *MeasurementStore) FindByID(_ context.Context, id model.MeasurementID) (*model.Measurement, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	measurement, ok := s.measurements[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", model.ErrMeasurementNotFound, id)
	}

	found := measurement

	return &found, nil
}

func (s *MeasurementStore) FindAll(ctx context.Context, page model.PageRequest) (*model.PageResult[*model.Measurement], error) {
	return s.FindByFilter(ctx, nil, page)
}

func (s *MeasurementStore) FindByFilter(_ context.Context, filter *model.MeasurementFilter, page model.PageRequest) (*model.PageResult[*model.Measurement], error) {
	s.mu.RLock()

	matched := make([]*model.Measurement, 0, len(s.measurements))
	for _, measurement := range s.measurements {
		if matchesMeasurementFilter(measurement, filter) {
			copied := measurement
			matched = append(matched, &copied)
		}
	}

	s.mu.RUnlock()

	sortMeasurements(matched, page.SortBy, page.Direction)

	return &model.PageResult[*model.Measurement]{
		Content:       pageSlice(matched, page),
		TotalElements: int64(len(matched)),
		Page:          page.Page,
		Size:          page.Size,
	}, nil
}

func (s *MeasurementStore) DeleteByID(_ context.Context, id model.MeasurementID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.measurements, id)

	return nil
}

func (s *MeasurementStore) DeleteByDeviceID(_ context.Context, deviceID model.DeviceID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, measurement := range s.measurements {
		if measurement.DeviceID == deviceID {
			delete(s.measurements, id)
		}
	}

	return nil
}

func (s *MeasurementStore) DeleteAll(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.measurements = make(map[model.MeasurementID]model.Measurement)

	return nil
}

func matchesMeasurementFilter(measurement model.Measurement, filter *model.MeasurementFilter) bool {
	if filter == nil {
		return true
	}

	if filter.DeviceID != nil && !filter.DeviceID.IsZero() && measurement.DeviceID != *filter.DeviceID {
		return false
	}

	if filter.Type != nil && measurement.Type != *filter.Type {
		return false
	}

	if filter.From != nil && measurement.Timestamp.Before(*filter.From) {
		return false
	}

	if filter.To != nil && measurement.Timestamp.After(*filter.To) {
		return false
	}

	return true
}

func sortMeasurements(measurements []*model.Measurement, sortBy string, direction model.SortDirection) {
	less := func(a, b *model.Measurement) bool {
		switch sortBy {
		case "value":
			return a.Value < b.Value
		case "type":
			return a.Type < b.Type
		case "deviceId":
			return a.DeviceID.String() < b.DeviceID.String()
		case "id":
			return a.ID.String() < b.ID.String()
		default:
			return a.Timestamp.Before(b.Timestamp)
		}
	}

	sort.SliceStable(measurements, func(i, j int) bool {
		if direction == model.SortDesc {
			return less(measurements[j], measurements[i])
		}

		return less(measurements[i], measurements[j])
	})
}

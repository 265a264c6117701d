package services

import (
	"context"
	"time"

	"github.com/ErVaaL/argos-resource-service/internal/domain/model"
	"github.com/ErVaaL/argos-resource-service/internal/ports"
)

// MeasurementsService enforces the measurement write-path invariants:
// the referenced device must exist, ids come from the store, sequence
// numbers start at zero and timestamps default to now.
type MeasurementsService struct {
	measurementRepo ports.MeasurementRepository
	deviceRepo      ports.DeviceRepository
	now             func() time.Time
}

func NewMeasurementsService(measurementRepo ports.MeasurementRepository, deviceRepo ports.DeviceRepository) *MeasurementsService {
	return &MeasurementsService{
		measurementRepo: measurementRepo,
		deviceRepo:      deviceRepo,
		now:             func() time.Time { return time.Now().UTC() },
	}
}

func (s *MeasurementsService) CreateMeasurement(ctx context.Context, deviceID model.DeviceID, measurementType model.MeasurementType, value float64, timestamp *time.Time) (*model.Measurement, error) {
	if _, err := s.deviceRepo.FindByID(ctx, deviceID); err != nil {
		return nil, err
	}

	ts := s.now()
	if timestamp != nil {
		ts = *timestamp
	}

	measurement := model.NewMeasurement(deviceID, measurementType, value, ts)

	return s.measurementRepo.Save(ctx, measurement)
}

func (s *MeasurementsService) DeleteMeasurement(ctx context.Context, id model.MeasurementID) error {
	return s.measurementRepo.DeleteByID(ctx, id)
}

// DeleteMeasurementsByDevice removes a device's measurements in bulk.
// Deleting a device does not invoke this; callers wanting cascade
// semantics issue it explicitly.
func (s *MeasurementsService) DeleteMeasurementsByDevice(ctx context.Context, deviceID model.DeviceID) error {
	return s.measurementRepo.DeleteByDeviceID(ctx, deviceID)
}

func (s *MeasurementsService) GetMeasurement(ctx context.Context, id model.MeasurementID) (*model.Measurement, error) {
	return s.measurementRepo.FindByID(ctx, id)
}

func (s *MeasurementsService) FindMeasurements(ctx context.Context, filter *model.MeasurementFilter, page model.PageRequest) (*model.PageResult[*model.Measurement], error) {
	return s.measurementRepo.FindByFilter(ctx, filter, page)
}

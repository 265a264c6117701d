package model

import (
	"time"

	"github.com/google/uuid"
)

type MeasurementID struct {
	uuid.UUID
}

func NewMeasurementID() MeasurementID {
	return MeasurementID{UUID: uuid.Must(uuid.NewV7())}
}

func ParseMeasurementID(s string) (MeasurementID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return MeasurementID{}, err
	}

	return MeasurementID{UUID: id}, nil
}

func (m MeasurementID) String() string {
	return m.UUID.String()
}

func (m MeasurementID) IsZero() bool {
	return m.UUID == uuid.Nil
}

// MeasurementType mirrors DeviceType; a device only ever produces
// measurements of its own kind.
type MeasurementType = DeviceType

// Measurement is a single time-stamped reading produced by a device.
// The id is assigned by the store; the sequence number is always
// initialized to zero by the write path.
type Measurement struct {
	ID             MeasurementID
	DeviceID       DeviceID
	Type           MeasurementType
	Value          float64
	SequenceNumber int
	Timestamp      time.Time
	Tags           []string
}

// NewMeasurement builds a measurement for the write path. The store
// assigns the id on save.
func NewMeasurement(deviceID DeviceID, measurementType MeasurementType, value float64, timestamp time.Time) *Measurement {
	return &Measurement{
		DeviceID:       deviceID,
		Type:           measurementType,
		Value:          value,
		SequenceNumber: 0,
		Timestamp:      timestamp,
	}
}

// MeasurementFilter narrows measurement queries. Nil fields add no
// constraint; From and To bound the same timestamp inclusively.
type MeasurementFilter struct {
	DeviceID *DeviceID
	Type     *MeasurementType
	From     *time.Time
	To       *time.Time
}

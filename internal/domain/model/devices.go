package model

import (
	"strings"

	"github.com/google/uuid"
)

type DeviceID struct {
	uuid.UUID
}

func NewDeviceID() DeviceID {
	return DeviceID{UUID: uuid.Must(uuid.NewV7())}
}

func ParseDeviceID(s string) (DeviceID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return DeviceID{}, err
	}

	return DeviceID{UUID: id}, nil
}

func (d DeviceID) String() string {
	return d.UUID.String()
}

func (d DeviceID) IsZero() bool {
	return d.UUID == uuid.Nil
}

type DeviceType string

const (
	DeviceTypeTemp     DeviceType = "TEMP"
	DeviceTypeHumidity DeviceType = "HUMIDITY"
	DeviceTypeCO2      DeviceType = "CO2"
	DeviceTypeMotion   DeviceType = "MOTION"
)

func ParseDeviceType(s string) (DeviceType, error) {
	switch DeviceType(strings.ToUpper(s)) {
	case DeviceTypeTemp:
		return DeviceTypeTemp, nil
	case DeviceTypeHumidity:
		return DeviceTypeHumidity, nil
	case DeviceTypeCO2:
		return DeviceTypeCO2, nil
	case DeviceTypeMotion:
		return DeviceTypeMotion, nil
	default:
		return "", ErrInvalidDeviceType
	}
}

func (t DeviceType) String() string {
	return string(t)
}

// DeviceConfig holds threshold and tagging metadata for a device.
// It is managed out of band; the update path never touches it.
type DeviceConfig struct {
	MinValue         *float64 `json:"min_value,omitempty"`
	MaxValue         *float64 `json:"max_value,omitempty"`
	AlertOnThreshold *bool    `json:"alert_on_threshold,omitempty"`
	Tags             []string `json:"tags,omitempty"`
}

// Device is the aggregate for a physical or virtual sensor.
type Device struct {
	ID       DeviceID
	Name     string
	Type     DeviceType
	Building string
	Room     string
	Active   bool
	Config   *DeviceConfig
}

// NewDevice creates a device with a fresh identity. New devices start
// active with no config attached.
func NewDevice(name string, deviceType DeviceType, building, room string) *Device {
	return &Device{
		ID:       NewDeviceID(),
		Name:     name,
		Type:     deviceType,
		Building: building,
		Room:     room,
		Active:   true,
	}
}

// DeviceUpdate carries a partial update. Nil fields keep the stored value.
// Active is tri-state: nil preserves the prior value, a non-nil false
// deactivates the device. It is never collapsed into a plain bool.
type DeviceUpdate struct {
	Name     *string
	Type     *DeviceType
	Building *string
	Room     *string
	Active   *bool
}

// Apply merges the update into the device. ID and Config are immutable
// through this path.
func (d *Device) Apply(update DeviceUpdate) {
	if update.Name != nil {
		d.Name = *update.Name
	}

	if update.Type != nil {
		d.Type = *update.Type
	}

	if update.Building != nil {
		d.Building = *update.Building
	}

	if update.Room != nil {
		d.Room = *update.Room
	}

	if update.Active != nil {
		d.Active = *update.Active
	}
}

// DeviceFilter narrows device queries. Nil (or blank, for strings) fields
// add no constraint; present fields combine with logical AND.
type DeviceFilter struct {
	Building *string
	Room     *string
	Type     *DeviceType
	Active   *bool
}

package model

import "time"

// AlertComparison is the operator an alert rule applies to incoming values.
type AlertComparison string

const (
	AlertComparisonGreaterThan AlertComparison = "GREATER_THAN"
	AlertComparisonLessThan    AlertComparison = "LESS_THAN"
)

// AlertRule describes when an alert should fire for a device. Rules are
// carried as data only; no evaluation happens in this service.
type AlertRule struct {
	ID         string
	DeviceID   DeviceID
	Type       MeasurementType
	Threshold  float64
	Comparison AlertComparison
	Active     bool
}

// Alert records a rule firing for a device.
type Alert struct {
	ID          string
	RuleID      string
	DeviceID    DeviceID
	Description string
	Timestamp   time.Time
}

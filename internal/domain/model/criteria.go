package model

import "strings"

type (
	// Criteria couples a predicate tree with the resolved paging and
	// sorting for one query. The count side of a paged query reuses the
	// same spec, so totals and slices never drift apart.
	Criteria struct {
		spec Specification
		page PageRequest
	}
)

func (c Criteria) Spec() Specification { return c.spec }
func (c Criteria) Page() PageRequest   { return c.page }
func (c Criteria) HasSpec() bool       { return c.spec != nil }

// FromDeviceFilter translates an optional device filter into match
// predicates. A nil filter, like a filter with every field absent,
// yields no predicates at all.
func FromDeviceFilter(filter *DeviceFilter, page PageRequest) Criteria {
	builder := NewCriteria().Paginate(page)

	if filter == nil {
		return builder.Build()
	}

	if hasText(filter.Building) {
		builder.Where("building", *filter.Building)
	}

	if hasText(filter.Room) {
		builder.Where("room", *filter.Room)
	}

	if filter.Type != nil {
		builder.Where("type", filter.Type.String())
	}

	if filter.Active != nil {
		builder.Where("active", *filter.Active)
	}

	return builder.Build()
}

// FromMeasurementFilter translates an optional measurement filter.
// A time window with both bounds becomes a single inclusive range on the
// timestamp field rather than two independent predicates.
func FromMeasurementFilter(filter *MeasurementFilter, page PageRequest) Criteria {
	builder := NewCriteria().Paginate(page)

	if filter == nil {
		return builder.Build()
	}

	if filter.DeviceID != nil && !filter.DeviceID.IsZero() {
		builder.Where("deviceId", filter.DeviceID.String())
	}

	if filter.Type != nil {
		builder.Where("type", filter.Type.String())
	}

	switch {
	case filter.From != nil && filter.To != nil:
		builder.WhereBetween("timestamp", *filter.From, *filter.To)
	case filter.From != nil:
		builder.WhereGte("timestamp", *filter.From)
	case filter.To != nil:
		builder.WhereLte("timestamp", *filter.To)
	}

	return builder.Build()
}

func hasText(s *string) bool {
	return s != nil && strings.TrimSpace(*s) != ""
}

package model

import "strings"

type SortDirection string

const (
	SortAsc  SortDirection = "ASC"
	SortDesc SortDirection = "DESC"
)

const (
	// DefaultPageSize applies to general listings.
	DefaultPageSize = 20

	// DefaultLastMeasurementsSize applies to latest-readings lookups,
	// which dashboards request in bigger batches.
	DefaultLastMeasurementsSize = 100

	// MaxPageSize caps every page regardless of caller input.
	MaxPageSize = 500

	// DeviceDefaultSort and MeasurementDefaultSort are the per-entity
	// sort fields used when the caller supplies none.
	DeviceDefaultSort      = "name"
	MeasurementDefaultSort = "timestamp"
)

// PageRequest describes one page of a larger result set. Page is
// zero-based. A normalized request never carries a blank SortBy or a
// size outside (0, MaxPageSize].
type PageRequest struct {
	Page      int
	Size      int
	SortBy    string
	Direction SortDirection
}

func (p PageRequest) Offset() int {
	return p.Page * p.Size
}

// NormalizePageRequest resolves raw caller input into a valid PageRequest.
// Nil rawPage/rawSize mean "absent". The default sort field substitutes
// whenever the caller's sort is nil or blank, never the other way around.
func NormalizePageRequest(rawPage, rawSize *int, rawSortBy *string, rawDirection *SortDirection, defaultSize int, defaultSortBy string) PageRequest {
	page := 0
	if rawPage != nil && *rawPage > 0 {
		page = *rawPage
	}

	size := defaultSize
	if rawSize != nil && *rawSize > 0 {
		size = *rawSize
	}

	if size > MaxPageSize {
		size = MaxPageSize
	}

	sortBy := defaultSortBy
	if rawSortBy != nil && strings.TrimSpace(*rawSortBy) != "" {
		sortBy = *rawSortBy
	}

	direction := SortAsc
	if rawDirection != nil && *rawDirection == SortDesc {
		direction = SortDesc
	}

	return PageRequest{
		Page:      page,
		Size:      size,
		SortBy:    sortBy,
		Direction: direction,
	}
}

// PageResult is one slice of a result set plus the total count matching
// the same predicate set.
type PageResult[T any] struct {
	Content       []T
	TotalElements int64
	Page          int
	Size          int
}

// TotalPages derives the page count, 0 when the size is 0.
func (p PageResult[T]) TotalPages() int {
	if p.Size == 0 {
		return 0
	}

	pages := p.TotalElements / int64(p.Size)
	if p.TotalElements%int64(p.Size) != 0 {
		pages++
	}

	return int(pages)
}

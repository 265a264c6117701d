package repos

import (
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/ErVaaL/argos-resource-service/internal/domain/model"
	"github.com/ErVaaL/argos-resource-service/pkg/logger"
)

var (
	deviceColumns = map[string]string{
		"id":       "id",
		"name":     "name",
		"type":     "type",
		"building": "building",
		"room":     "room",
		"active":   "active",
	}

	measurementColumns = map[string]string{
		"id":             "id",
		"deviceId":       "device_id",
		"type":           "type",
		"value":          "value",
		"sequenceNumber": "sequence_number",
		"timestamp":      "timestamp",
	}
)

// CriteriaTranslator turns a criteria tree into squirrel conditions for
// one entity's table. Each repository owns an instance configured with
// its column mapping and default sort column.
type CriteriaTranslator struct {
	columns        map[string]string
	defaultSortCol string
	logger         *logger.Logger
}

func NewDeviceCriteriaTranslator(log *logger.Logger) *CriteriaTranslator {
	return &CriteriaTranslator{
		columns:        deviceColumns,
		defaultSortCol: "name",
		logger:         log,
	}
}

func NewMeasurementCriteriaTranslator(log *logger.Logger) *CriteriaTranslator {
	return &CriteriaTranslator{
		columns:        measurementColumns,
		defaultSortCol: "timestamp",
		logger:         log,
	}
}

func (t *CriteriaTranslator) ApplyToSelect(builder sq.SelectBuilder, criteria model.Criteria) sq.SelectBuilder {
	if criteria.HasSpec() {
		builder = builder.Where(t.translateSpec(criteria.Spec()))
	}

	builder = t.applySorting(builder, criteria.Page())
	builder = t.applyPagination(builder, criteria.Page())

	return builder
}

// ApplyConditionsOnly applies the filter predicates without sorting or
// pagination, so counts run against the same condition set as the slice.
func (t *CriteriaTranslator) ApplyConditionsOnly(builder sq.SelectBuilder, criteria model.Criteria) sq.SelectBuilder {
	if criteria.HasSpec() {
		builder = builder.Where(t.translateSpec(criteria.Spec()))
	}

	return builder
}

func (t *CriteriaTranslator) translateSpec(spec model.Specification) sq.Sqlizer {
	switch spec.Operator() {
	case model.SpecOpEq:
		return sq.Eq{t.col(spec.Field()): spec.Value()}

	case model.SpecOpGte:
		return sq.GtOrEq{t.col(spec.Field()): spec.Value()}

	case model.SpecOpLte:
		return sq.LtOrEq{t.col(spec.Field()): spec.Value()}

	case model.SpecOpBetween:
		values := spec.Value().([]any)
		col := t.col(spec.Field())

		return sq.And{sq.GtOrEq{col: values[0]}, sq.LtOrEq{col: values[1]}}

	case model.SpecOpMust:
		conditions := make(sq.And, 0, len(spec.Children()))
		for _, child := range spec.Children() {
			conditions = append(conditions, t.translateSpec(child))
		}

		return conditions
	}

	return nil
}

func (t *CriteriaTranslator) col(field string) string {
	if col, ok := t.columns[field]; ok {
		return col
	}

	if t.logger != nil {
		t.logger.Warn().
			Str("field", field).
			Str("fallback", t.defaultSortCol).
			Msg("unknown field requested, falling back to default column")
	}

	return t.defaultSortCol
}

func (t *CriteriaTranslator) applySorting(builder sq.SelectBuilder, page model.PageRequest) sq.SelectBuilder {
	sortBy := page.SortBy
	if sortBy == "" {
		sortBy = t.defaultSortCol
	}

	direction := page.Direction
	if direction == "" {
		direction = model.SortAsc
	}

	return builder.OrderBy(fmt.Sprintf("%s %s", t.col(sortBy), direction))
}

func (t *CriteriaTranslator) applyPagination(builder sq.SelectBuilder, page model.PageRequest) sq.SelectBuilder {
	if page.Size <= 0 {
		return builder
	}

	return builder.Limit(uint64(page.Size)).Offset(uint64(page.Offset()))
}

package repos

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/ErVaaL/argos-resource-service/internal/domain/model"
	"github.com/ErVaaL/argos-resource-service/pkg/logger"
)

const measurementsTable = "measurements"

type (
	// MeasurementsRepository handles measurement persistence operations.
	MeasurementsRepository struct {
		pool       PoolOps
		scanner    Scanner
		translator *CriteriaTranslator
		logger     *logger.Logger
	}

	measurementRow struct {
		ID             string    `db:"id"`
		DeviceID       string    `db:"device_id"`
		Type           string    `db:"type"`
		Value          float64   `db:"value"`
		SequenceNumber int       `db:"sequence_number"`
		Timestamp      time.Time `db:"timestamp"`
		Tags           []string  `db:"tags"`
	}
)

var measurementSelectColumns = []string{
	"id", "device_id", "type", "value", "sequence_number", "timestamp", "tags",
}

// NewMeasurementsRepository creates a new MeasurementsRepository with the given dependencies.
func NewMeasurementsRepository(
	pool PoolOps,
	scanner Scanner,
	translator *CriteriaTranslator,
	log *logger.Logger,
) *MeasurementsRepository {
	return &MeasurementsRepository{
		pool:       pool,
		scanner:    scanner,
		translator: translator,
		logger:     log,
	}
}

// Save inserts the measurement, assigning an identity at the storage
// edge when the caller provided none. Measurements are immutable, so
// there is no conflict clause.
func (r *MeasurementsRepository) Save(ctx context.Context, measurement *model.Measurement) (*model.Measurement, error) {
	if measurement.ID.IsZero() {
		measurement.ID = model.NewMeasurementID()
	}

	query, args, err := psql.Insert(measurementsTable).
		Columns(measurementSelectColumns...).
		Values(
			measurement.ID.String(),
			measurement.DeviceID.String(),
			measurement.Type.String(),
			measurement.Value,
			measurement.SequenceNumber,
			measurement.Timestamp,
			measurement.Tags,
		).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build insert query: %w", err)
	}

	if _, err := r.pool.Exec(ctx, query, args...); err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrDatabaseQuery, err)
	}

	return measurement, nil
}

func (r *MeasurementsRepository) FindByID(ctx context.Context, id model.MeasurementID) (*model.Measurement, error) {
	query, args, err := psql.Select(measurementSelectColumns...).
		From(measurementsTable).
		Where(sq.Eq{"id": id.String()}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build select query: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrDatabaseQuery, err)
	}
	defer rows.Close()

	var row measurementRow
	if err := r.scanner.ScanOne(&row, rows); err != nil {
		if r.scanner.IsNotFound(err) {
			return nil, fmt.Errorf("%w: id %s", model.ErrMeasurementNotFound, id.String())
		}

		return nil, fmt.Errorf("%w: %v", model.ErrDatabaseQuery, err)
	}

	return r.convertRowToMeasurement(row)
}

func (r *MeasurementsRepository) FindAll(ctx context.Context, page model.PageRequest) (*model.PageResult[*model.Measurement], error) {
	return r.FindByFilter(ctx, nil, page)
}

// FindByFilter runs the count and the slice as separate queries against
// the same predicate set, keeping the total independent of the page.
func (r *MeasurementsRepository) FindByFilter(
	ctx context.Context,
	filter *model.MeasurementFilter,
	page model.PageRequest,
) (*model.PageResult[*model.Measurement], error) {
	criteria := model.FromMeasurementFilter(filter, page)

	total, err := r.countByCriteria(ctx, criteria)
	if err != nil {
		return nil, err
	}

	selectBuilder := psql.Select(measurementSelectColumns...).From(measurementsTable)
	selectBuilder = r.translator.ApplyToSelect(selectBuilder, criteria)

	measurements, err := r.queryMeasurements(ctx, selectBuilder)
	if err != nil {
		return nil, err
	}

	return &model.PageResult[*model.Measurement]{
		Content:       measurements,
		TotalElements: total,
		Page:          page.Page,
		Size:          page.Size,
	}, nil
}

// DeleteByID removes the measurement row; deleting a missing id is a no-op.
func (r *MeasurementsRepository) DeleteByID(ctx context.Context, id model.MeasurementID) error {
	return r.deleteWhere(ctx, sq.Eq{"id": id.String()})
}

// DeleteByDeviceID removes every measurement referencing the device.
func (r *MeasurementsRepository) DeleteByDeviceID(ctx context.Context, deviceID model.DeviceID) error {
	return r.deleteWhere(ctx, sq.Eq{"device_id": deviceID.String()})
}

func (r *MeasurementsRepository) DeleteAll(ctx context.Context) error {
	query, args, err := psql.Delete(measurementsTable).ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete query: %w", err)
	}

	if _, err := r.pool.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: %v", model.ErrDatabaseQuery, err)
	}

	return nil
}

func (r *MeasurementsRepository) deleteWhere(ctx context.Context, criteria sq.Sqlizer) error {
	query, args, err := psql.Delete(measurementsTable).
		Where(criteria).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete query: %w", err)
	}

	if _, err := r.pool.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: %v", model.ErrDatabaseQuery, err)
	}

	return nil
}

func (r *MeasurementsRepository) countByCriteria(ctx context.Context, criteria model.Criteria) (int64, error) {
	countBuilder := psql.Select("COUNT(*)").From(measurementsTable)
	countBuilder = r.translator.ApplyConditionsOnly(countBuilder, criteria)

	query, args, err := countBuilder.ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build count query: %w", err)
	}

	var total int64
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("%w: %v", model.ErrDatabaseQuery, err)
	}

	return total, nil
}

func (r *MeasurementsRepository) queryMeasurements(ctx context.Context, builder sq.SelectBuilder) ([]*model.Measurement, error) {
	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build select query: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrDatabaseQuery, err)
	}
	defer rows.Close()

	var measurementRows []measurementRow
	if err := r.scanner.ScanAll(&measurementRows, rows); err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrDatabaseQuery, err)
	}

	measurements := make([]*model.Measurement, 0, len(measurementRows))
	for index := range measurementRows {
		measurement, err := r.convertRowToMeasurement(measurementRows[index])
		if err != nil {
			return nil, fmt.Errorf("%w: %v", model.ErrDatabaseQuery, err)
		}
		measurements = append(measurements, measurement)
	}

	return measurements, nil
}

func (r *MeasurementsRepository) convertRowToMeasurement(row measurementRow) (*model.Measurement, error) {
	id, err := model.ParseMeasurementID(row.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to parse measurement ID: %w", err)
	}

	deviceID, err := model.ParseDeviceID(row.DeviceID)
	if err != nil {
		return nil, fmt.Errorf("failed to parse device ID: %w", err)
	}

	measurementType, err := model.ParseDeviceType(row.Type)
	if err != nil {
		return nil, fmt.Errorf("failed to parse measurement type: %w", err)
	}

	return &model.Measurement{
		ID:             id,
		DeviceID:       deviceID,
		Type:           measurementType,
		Value:          row.Value,
		SequenceNumber: row.SequenceNumber,
		Timestamp:      row.Timestamp,
		Tags:           row.Tags,
	}, nil
}

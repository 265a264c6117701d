package repos

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/ErVaaL/argos-resource-service/internal/domain/model"
	"github.com/ErVaaL/argos-resource-service/pkg/logger"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const devicesTable = "devices"

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

type (
	// PoolOps defines the interface for database operations.
	// This allows injecting mock implementations for testing.
	PoolOps interface {
		QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
		Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
		Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
		Ping(ctx context.Context) error
	}

	// DevicesRepository handles device persistence operations.
	DevicesRepository struct {
		pool       PoolOps
		scanner    Scanner
		translator *CriteriaTranslator
		logger     *logger.Logger
	}

	deviceRow struct {
		ID       string `db:"id"`
		Name     string `db:"name"`
		Type     string `db:"type"`
		Building string `db:"building"`
		Room     string `db:"room"`
		Active   bool   `db:"active"`
		Config   []byte `db:"config"`
	}
)

var deviceSelectColumns = []string{"id", "name", "type", "building", "room", "active", "config"}

// NewDevicesRepository creates a new DevicesRepository with the given dependencies.
func NewDevicesRepository(
	pool PoolOps,
	scanner Scanner,
	translator *CriteriaTranslator,
	log *logger.Logger,
) *DevicesRepository {
	return &DevicesRepository{
		pool:       pool,
		scanner:    scanner,
		translator: translator,
		logger:     log,
	}
}

// Save inserts the device or, when the id already exists, replaces the
// stored row. The unique index on name is the authoritative duplicate
// guard; its violation surfaces as ErrDuplicateDeviceName.
func (r *DevicesRepository) Save(ctx context.Context, device *model.Device) (*model.Device, error) {
	config, err := marshalConfig(device.Config)
	if err != nil {
		return nil, fmt.Errorf("failed to encode device config: %w", err)
	}

	query, args, err := psql.Insert(devicesTable).
		Columns(deviceSelectColumns...).
		Values(
			device.ID.String(),
			device.Name,
			device.Type.String(),
			device.Building,
			device.Room,
			device.Active,
			config,
		).
		Suffix(`ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			type = EXCLUDED.type,
			building = EXCLUDED.building,
			room = EXCLUDED.room,
			active = EXCLUDED.active,
			config = EXCLUDED.config`).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build insert query: %w", err)
	}

	if _, err := r.pool.Exec(ctx, query, args...); err != nil {
		if isDuplicateKeyError(err) {
			return nil, fmt.Errorf("%w: %s", model.ErrDuplicateDeviceName, device.Name)
		}

		return nil, fmt.Errorf("%w: %v", model.ErrDatabaseQuery, err)
	}

	return device, nil
}

func (r *DevicesRepository) FindByID(ctx context.Context, id model.DeviceID) (*model.Device, error) {
	return r.findByCriteria(
		ctx,
		sq.Eq{"id": id.String()},
		fmt.Sprintf("id %s", id.String()),
	)
}

func (r *DevicesRepository) FindByName(ctx context.Context, name string) (*model.Device, error) {
	return r.findByCriteria(
		ctx,
		sq.Eq{"name": name},
		fmt.Sprintf("name %q", name),
	)
}

func (r *DevicesRepository) FindAll(ctx context.Context, page model.PageRequest) (*model.PageResult[*model.Device], error) {
	return r.FindByFilter(ctx, nil, page)
}

// FindByFilter runs two queries against the same predicate set: one for
// the page slice and one for the total, so the count stays correct even
// when the requested page is past the end of the result set.
func (r *DevicesRepository) FindByFilter(
	ctx context.Context,
	filter *model.DeviceFilter,
	page model.PageRequest,
) (*model.PageResult[*model.Device], error) {
	criteria := model.FromDeviceFilter(filter, page)

	total, err := r.countByCriteria(ctx, criteria)
	if err != nil {
		return nil, err
	}

	selectBuilder := psql.Select(deviceSelectColumns...).From(devicesTable)
	selectBuilder = r.translator.ApplyToSelect(selectBuilder, criteria)

	devices, err := r.queryDevices(ctx, selectBuilder)
	if err != nil {
		return nil, err
	}

	return &model.PageResult[*model.Device]{
		Content:       devices,
		TotalElements: total,
		Page:          page.Page,
		Size:          page.Size,
	}, nil
}

// DeleteByID removes the device row; deleting a missing id is a no-op.
func (r *DevicesRepository) DeleteByID(ctx context.Context, id model.DeviceID) error {
	query, args, err := psql.Delete(devicesTable).
		Where(sq.Eq{"id": id.String()}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete query: %w", err)
	}

	if _, err := r.pool.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: %v", model.ErrDatabaseQuery, err)
	}

	return nil
}

func (r *DevicesRepository) DeleteAll(ctx context.Context) error {
	query, args, err := psql.Delete(devicesTable).ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete query: %w", err)
	}

	if _, err := r.pool.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: %v", model.ErrDatabaseQuery, err)
	}

	return nil
}

func (r *DevicesRepository) Ping(ctx context.Context) error {
	return r.pool.Ping(ctx)
}

func (r *DevicesRepository) findByCriteria(
	ctx context.Context,
	criteria sq.Sqlizer,
	notFoundContext string,
) (*model.Device, error) {
	query, args, err := psql.Select(deviceSelectColumns...).
		From(devicesTable).
		Where(criteria).
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

	var row deviceRow
	if err := r.scanner.ScanOne(&row, rows); err != nil {
		if r.scanner.IsNotFound(err) {
			return nil, fmt.Errorf("%w: %s", model.ErrDeviceNotFound, notFoundContext)
		}

		return nil, fmt.Errorf("%w: %v", model.ErrDatabaseQuery, err)
	}

	return r.convertRowToDevice(row)
}

func (r *DevicesRepository) countByCriteria(ctx context.Context, criteria model.Criteria) (int64, error) {
	countBuilder := psql.Select("COUNT(*)").From(devicesTable)
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

func (r *DevicesRepository) queryDevices(ctx context.Context, builder sq.SelectBuilder) ([]*model.Device, error) {
	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build select query: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrDatabaseQuery, err)
	}
	defer rows.Close()

	var deviceRows []deviceRow
	if err := r.scanner.ScanAll(&deviceRows, rows); err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrDatabaseQuery, err)
	}

	devices := make([]*model.Device, 0, len(deviceRows))
	for index := range deviceRows {
		device, err := r.convertRowToDevice(deviceRows[index])
		if err != nil {
			return nil, fmt.Errorf("%w: %v", model.ErrDatabaseQuery, err)
		}
		devices = append(devices, device)
	}

	return devices, nil
}

func (r *DevicesRepository) convertRowToDevice(row deviceRow) (*model.Device, error) {
	id, err := model.ParseDeviceID(row.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to parse device ID: %w", err)
	}

	deviceType, err := model.ParseDeviceType(row.Type)
	if err != nil {
		return nil, fmt.Errorf("failed to parse device type: %w", err)
	}

	config, err := unmarshalConfig(row.Config)
	if err != nil {
		return nil, fmt.Errorf("failed to decode device config: %w", err)
	}

	return &model.Device{
		ID:       id,
		Name:     row.Name,
		Type:     deviceType,
		Building: row.Building,
		Room:     row.Room,
		Active:   row.Active,
		Config:   config,
	}, nil
}

func marshalConfig(config *model.DeviceConfig) ([]byte, error) {
	if config == nil {
		return nil, nil
	}

	return json.Marshal(config)
}

func unmarshalConfig(raw []byte) (*model.DeviceConfig, error) {
	if len(raw) == 0 {
		return nil, nil
	}

	var config model.DeviceConfig
	if err := json.Unmarshal(raw, &config); err != nil {
		return nil, err
	}

	return &config, nil
}

func isDuplicateKeyError(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}

	return false
}

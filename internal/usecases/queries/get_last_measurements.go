package queries

import (
	"context"
	"time"

	"github.com/ErVaaL/argos-resource-service/internal/domain/model"
	"github.com/ErVaaL/argos-resource-service/internal/ports"
	"github.com/ErVaaL/argos-resource-service/pkg/decorator"
	"github.com/ErVaaL/argos-resource-service/pkg/logger"
	"github.com/ErVaaL/argos-resource-service/pkg/metrics"
	otelTrace "go.opentelemetry.io/otel/trace"
)

type (
	// GetLastMeasurementsQuery returns the most recent readings for one
	// device, newest first. A Limit of zero falls back to the default;
	// anything above the page cap is clamped.
	GetLastMeasurementsQuery struct {
		DeviceID model.DeviceID
		Limit    int
	}

	GetLastMeasurementsQueryHandler = decorator.QueryHandler[GetLastMeasurementsQuery, []*model.Measurement]

	getLastMeasurementsQueryHandler struct {
		measurementsService ports.MeasurementsService
	}
)

func NewGetLastMeasurementsQueryHandler(
	svc ports.MeasurementsService,
	log logger.Logger,
	metricsClient metrics.Client,
	tracerProvider otelTrace.TracerProvider,
) GetLastMeasurementsQueryHandler {
	return decorator.ApplyQueryDecorators[GetLastMeasurementsQuery, []*model.Measurement](
		getLastMeasurementsQueryHandler{measurementsService: svc},
		log,
		metricsClient,
		tracerProvider,
	)
}

func (h getLastMeasurementsQueryHandler) Execute(ctx context.Context, query GetLastMeasurementsQuery) ([]*model.Measurement, error) {
	limit := query.Limit
	if limit <= 0 {
		limit = model.DefaultLastMeasurementsSize
	}
	if limit > model.MaxPageSize {
		limit = model.MaxPageSize
	}

	// Bound the window at now so readings stamped in the future never
	// shadow the latest real ones.
	now := time.Now().UTC()
	filter := &model.MeasurementFilter{DeviceID: &query.DeviceID, To: &now}
	page := model.PageRequest{
		Page:      0,
		Size:      limit,
		SortBy:    model.MeasurementDefaultSort,
		Direction: model.SortDesc,
	}

	result, err := h.measurementsService.FindMeasurements(ctx, filter, page)
	if err != nil {
		return nil, err
	}

	return result.Content, nil
}

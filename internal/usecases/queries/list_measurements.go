package queries

import (
	"context"

	"github.com/ErVaaL/argos-resource-service/internal/domain/model"
	"github.com/ErVaaL/argos-resource-service/internal/ports"
	"github.com/ErVaaL/argos-resource-service/pkg/decorator"
	"github.com/ErVaaL/argos-resource-service/pkg/logger"
	"github.com/ErVaaL/argos-resource-service/pkg/metrics"
	otelTrace "go.opentelemetry.io/otel/trace"
)

type (
	ListMeasurementsQuery struct {
		Filter *model.MeasurementFilter
		Page   model.PageRequest
	}

	ListMeasurementsQueryHandler = decorator.QueryHandler[ListMeasurementsQuery, *model.PageResult[*model.Measurement]]

	listMeasurementsQueryHandler struct {
		measurementsService ports.MeasurementsService
	}
)

func NewListMeasurementsQueryHandler(
	svc ports.MeasurementsService,
	log logger.Logger,
	metricsClient metrics.Client,
	tracerProvider otelTrace.TracerProvider,
) ListMeasurementsQueryHandler {
	return decorator.ApplyQueryDecorators[ListMeasurementsQuery, *model.PageResult[*model.Measurement]](
		listMeasurementsQueryHandler{measurementsService: svc},
		log,
		metricsClient,
		tracerProvider,
	)
}

func (h listMeasurementsQueryHandler) Execute(ctx context.Context, query ListMeasurementsQuery) (*model.PageResult[*model.Measurement], error) {
	return h.measurementsService.FindMeasurements(ctx, query.Filter, query.Page)
}

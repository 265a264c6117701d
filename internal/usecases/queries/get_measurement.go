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
	GetMeasurementQuery struct {
		ID model.MeasurementID
	}

	GetMeasurementQueryHandler = decorator.QueryHandler[GetMeasurementQuery, *model.Measurement]

	getMeasurementQueryHandler struct {
		measurementsService ports.MeasurementsService
	}
)

func NewGetMeasurementQueryHandler(
	svc ports.MeasurementsService,
	log logger.Logger,
	metricsClient metrics.Client,
	tracerProvider otelTrace.TracerProvider,
) GetMeasurementQueryHandler {
	return decorator.ApplyQueryDecorators[GetMeasurementQuery, *model.Measurement](
		getMeasurementQueryHandler{measurementsService: svc},
		log,
		metricsClient,
		tracerProvider,
	)
}

func (h getMeasurementQueryHandler) Execute(ctx context.Context, query GetMeasurementQuery) (*model.Measurement, error) {
	return h.measurementsService.GetMeasurement(ctx, query.ID)
}

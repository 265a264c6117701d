package commands

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
	DeleteMeasurementCommand struct {
		ID model.MeasurementID
	}

	DeleteMeasurementCommandHandler = decorator.CommandHandler[DeleteMeasurementCommand, struct{}]

	deleteMeasurementCommandHandler struct {
		measurementsService ports.MeasurementsService
	}
)

func NewDeleteMeasurementCommandHandler(
	svc ports.MeasurementsService,
	log logger.Logger,
	metricsClient metrics.Client,
	tracerProvider otelTrace.TracerProvider,
) DeleteMeasurementCommandHandler {
	return decorator.ApplyCommandDecorators[DeleteMeasurementCommand, struct{}](
		deleteMeasurementCommandHandler{measurementsService: svc},
		log,
		metricsClient,
		tracerProvider,
	)
}

func (h deleteMeasurementCommandHandler) Handle(ctx context.Context, cmd DeleteMeasurementCommand) (struct{}, error) {
	if err := h.measurementsService.DeleteMeasurement(ctx, cmd.ID); err != nil {
		return struct{}{}, err
	}

	return struct{}{}, nil
}

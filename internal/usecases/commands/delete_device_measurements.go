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
	// DeleteDeviceMeasurementsCommand drops every measurement a device
	// has produced. Deleting the device itself does not run this;
	// callers chain the two explicitly when they want both.
	DeleteDeviceMeasurementsCommand struct {
		DeviceID model.DeviceID
	}

	DeleteDeviceMeasurementsCommandHandler = decorator.CommandHandler[DeleteDeviceMeasurementsCommand, struct{}]

	deleteDeviceMeasurementsCommandHandler struct {
		measurementsService ports.MeasurementsService
	}
)

func NewDeleteDeviceMeasurementsCommandHandler(
	svc ports.MeasurementsService,
	log logger.Logger,
	metricsClient metrics.Client,
	tracerProvider otelTrace.TracerProvider,
) DeleteDeviceMeasurementsCommandHandler {
	return decorator.ApplyCommandDecorators[DeleteDeviceMeasurementsCommand, struct{}](
		deleteDeviceMeasurementsCommandHandler{measurementsService: svc},
		log,
		metricsClient,
		tracerProvider,
	)
}

func (h deleteDeviceMeasurementsCommandHandler) Handle(ctx context.Context, cmd DeleteDeviceMeasurementsCommand) (struct{}, error) {
	if err := h.measurementsService.DeleteMeasurementsByDevice(ctx, cmd.DeviceID); err != nil {
		return struct{}{}, err
	}

	return struct{}{}, nil
}

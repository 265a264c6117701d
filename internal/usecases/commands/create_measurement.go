package commands

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
	// CreateMeasurementCommand records a reading for an existing device.
	// A nil Timestamp defaults to the time of recording.
	CreateMeasurementCommand struct {
		DeviceID  model.DeviceID
		Type      model.MeasurementType
		Value     float64
		Timestamp *time.Time
	}

	CreateMeasurementCommandHandler = decorator.CommandHandler[CreateMeasurementCommand, *model.Measurement]

	createMeasurementCommandHandler struct {
		measurementsService ports.MeasurementsService
	}
)

func NewCreateMeasurementCommandHandler(
	svc ports.MeasurementsService,
	log logger.Logger,
	metricsClient metrics.Client,
	tracerProvider otelTrace.TracerProvider,
) CreateMeasurementCommandHandler {
	return decorator.ApplyCommandDecorators[CreateMeasurementCommand, *model.Measurement](
		createMeasurementCommandHandler{measurementsService: svc},
		log,
		metricsClient,
		tracerProvider,
	)
}

func (h createMeasurementCommandHandler) Handle(ctx context.Context, cmd CreateMeasurementCommand) (*model.Measurement, error) {
	return h.measurementsService.CreateMeasurement(ctx, cmd.DeviceID, cmd.Type, cmd.Value, cmd.Timestamp)
}

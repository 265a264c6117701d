package usecases

import (
	"github.com/ErVaaL/argos-resource-service/internal/ports"
	"github.com/ErVaaL/argos-resource-service/internal/usecases/commands"
	"github.com/ErVaaL/argos-resource-service/internal/usecases/queries"
	"github.com/ErVaaL/argos-resource-service/pkg/logger"
	"github.com/ErVaaL/argos-resource-service/pkg/metrics"
	otelTrace "go.opentelemetry.io/otel/trace"
)

type (
	Commands struct {
		CreateDevice             commands.CreateDeviceCommandHandler
		UpdateDevice             commands.UpdateDeviceCommandHandler
		DeleteDevice             commands.DeleteDeviceCommandHandler
		CreateMeasurement        commands.CreateMeasurementCommandHandler
		DeleteMeasurement        commands.DeleteMeasurementCommandHandler
		DeleteDeviceMeasurements commands.DeleteDeviceMeasurementsCommandHandler
	}

	Queries struct {
		GetDevice           queries.GetDeviceQueryHandler
		ListDevices         queries.ListDevicesQueryHandler
		GetMeasurement      queries.GetMeasurementQueryHandler
		ListMeasurements    queries.ListMeasurementsQueryHandler
		GetLastMeasurements queries.GetLastMeasurementsQueryHandler
		FetchLiveness       queries.FetchLivenessQueryHandler
		FetchReadiness      queries.FetchReadinessQueryHandler
		FetchHealthReport   queries.FetchHealthReportQueryHandler
	}

	Application struct {
		Commands Commands
		Queries  Queries
	}
)

func NewApplication(
	devicesSvc ports.DevicesService,
	measurementsSvc ports.MeasurementsService,
	dbHealthChecker ports.DatabaseHealthChecker,
	log logger.Logger,
	metricsClient metrics.Client,
	tracerProvider otelTrace.TracerProvider,
) *Application {
	return &Application{
		Commands: Commands{
			CreateDevice:             commands.NewCreateDeviceCommandHandler(devicesSvc, log, metricsClient, tracerProvider),
			UpdateDevice:             commands.NewUpdateDeviceCommandHandler(devicesSvc, log, metricsClient, tracerProvider),
			DeleteDevice:             commands.NewDeleteDeviceCommandHandler(devicesSvc, log, metricsClient, tracerProvider),
			CreateMeasurement:        commands.NewCreateMeasurementCommandHandler(measurementsSvc, log, metricsClient, tracerProvider),
			DeleteMeasurement:        commands.NewDeleteMeasurementCommandHandler(measurementsSvc, log, metricsClient, tracerProvider),
			DeleteDeviceMeasurements: commands.NewDeleteDeviceMeasurementsCommandHandler(measurementsSvc, log, metricsClient, tracerProvider),
		},
		Queries: Queries{
			GetDevice:           queries.NewGetDeviceQueryHandler(devicesSvc, log, metricsClient, tracerProvider),
			ListDevices:         queries.NewListDevicesQueryHandler(devicesSvc, log, metricsClient, tracerProvider),
			GetMeasurement:      queries.NewGetMeasurementQueryHandler(measurementsSvc, log, metricsClient, tracerProvider),
			ListMeasurements:    queries.NewListMeasurementsQueryHandler(measurementsSvc, log, metricsClient, tracerProvider),
			GetLastMeasurements: queries.NewGetLastMeasurementsQueryHandler(measurementsSvc, log, metricsClient, tracerProvider),
			FetchLiveness:       queries.NewFetchLivenessQueryHandler(log, metricsClient, tracerProvider),
			FetchReadiness:      queries.NewFetchReadinessQueryHandler(dbHealthChecker, log, metricsClient, tracerProvider),
			FetchHealthReport:   queries.NewFetchHealthReportQueryHandler(dbHealthChecker, log, metricsClient, tracerProvider),
		},
	}
}

package runtime

import (
	"context"
	"fmt"
	"net/http"

	"github.com/ErVaaL/argos-resource-service/internal/adapters/repos"
	"github.com/ErVaaL/argos-resource-service/internal/config"
	"github.com/ErVaaL/argos-resource-service/internal/ports"
	"github.com/ErVaaL/argos-resource-service/internal/usecases"
	"github.com/ErVaaL/argos-resource-service/pkg/logger"
	"github.com/ErVaaL/argos-resource-service/pkg/metrics"
	"github.com/jackc/pgx/v5/pgxpool"
	otelTrace "go.opentelemetry.io/otel/trace"
)

type (
	infrastructureDep struct {
		httpServer     *http.Server
		tracerProvider otelTrace.TracerProvider
		tracerShutdown func(ctx context.Context) error
		metricsClient  metrics.Client
		logger         logger.Logger
		dbPool         *pgxpool.Pool
		guardedPool    repos.PoolOps
	}

	repositories struct {
		deviceRepo      ports.DeviceRepository
		measurementRepo ports.MeasurementRepository
	}

	dependencies struct {
		config              *config.ServiceConfig
		infra               infrastructureDep
		repos               repositories
		devicesService      ports.DevicesService
		measurementsService ports.MeasurementsService
		app                 *usecases.Application
		cleanupFuncs        map[string]func(ctx context.Context) error
	}

	DependencyOption func(*dependencies) error
)

func initializeDependencies(ctx context.Context, opts ...DependencyOption) (*dependencies, error) {
	deps := &dependencies{
		cleanupFuncs: make(map[string]func(ctx context.Context) error),
	}

	allOpts := append(defaultOptions(ctx), opts...)

	for _, opt := range allOpts {
		if err := opt(deps); err != nil {
			return nil, fmt.Errorf("failed to apply dependency option: %w", err)
		}
	}

	return deps, nil
}

func (d *dependencies) getDBHealthChecker() ports.DatabaseHealthChecker {
	return d.repos.deviceRepo.(*repos.DevicesRepository)
}

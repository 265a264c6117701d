package runtime

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/ErVaaL/argos-resource-service/internal/adapters/cache"
	"github.com/ErVaaL/argos-resource-service/internal/adapters/inbound/httpapi"
	"github.com/ErVaaL/argos-resource-service/internal/adapters/repos"
	"github.com/ErVaaL/argos-resource-service/internal/config"
	"github.com/ErVaaL/argos-resource-service/internal/domain/model"
	"github.com/ErVaaL/argos-resource-service/internal/infrastructure"
	infraPostgres "github.com/ErVaaL/argos-resource-service/internal/infrastructure/postgres"
	"github.com/ErVaaL/argos-resource-service/internal/services"
	"github.com/ErVaaL/argos-resource-service/internal/usecases"
	"github.com/ErVaaL/argos-resource-service/internal/usecases/queries"
	"github.com/ErVaaL/argos-resource-service/migrations"
	"github.com/ErVaaL/argos-resource-service/pkg/decorator"
	"github.com/ErVaaL/argos-resource-service/pkg/logger"
	"github.com/ErVaaL/argos-resource-service/pkg/metrics/noop"
)

func defaultOptions(ctx context.Context) []DependencyOption {
	return []DependencyOption{
		WithConfig(),
		WithLogger(),
		WithTracing(ctx),
		WithMetrics(ctx),
		WithDatabase(ctx),
		WithRepositories(),
		WithServices(),
		WithApplication(),
		WithQueryCache(),
		WithHTTPServer(),
	}
}

func WithConfig() DependencyOption {
	return func(d *dependencies) error {
		cfg, err := config.Init()
		if err != nil {
			return fmt.Errorf("initializing configuration: %w", err)
		}

		d.config = cfg

		return nil
	}
}

func WithLogger() DependencyOption {
	return func(d *dependencies) error {
		d.infra.logger = logger.New(d.config.Logging.Level, d.config.Logging.Format)

		return nil
	}
}

func WithTracing(_ context.Context) DependencyOption {
	return func(d *dependencies) error {
		if !d.config.Telemetry.Enabled || d.config.Telemetry.OTLPEndpoint == "" {
			d.infra.tracerProvider = infrastructure.NewNoopTracerProvider()

			return nil
		}

		tp, shutdown, err := infrastructure.NewTracerProvider(
			d.config.Telemetry.ServiceName,
			d.config.Telemetry.ServiceVersion,
			d.config.Telemetry.OTLPEndpoint,
		)
		if err != nil {
			return fmt.Errorf("initializing tracer: %w", err)
		}

		d.infra.tracerProvider = tp
		d.infra.tracerShutdown = shutdown
		d.cleanupFuncs["tracer"] = shutdown

		return nil
	}
}

func WithMetrics(_ context.Context) DependencyOption {
	return func(d *dependencies) error {
		d.infra.metricsClient = noop.NewMetricsClient()

		return nil
	}
}

func WithDatabase(ctx context.Context) DependencyOption {
	return func(d *dependencies) error {
		pool, err := infraPostgres.NewPool(ctx, d.config.Database)
		if err != nil {
			return fmt.Errorf("connecting to database: %w", err)
		}

		if d.config.Database.RunMigrations {
			applyStatement := func(ctx context.Context, sql string) error {
				_, execErr := pool.Exec(ctx, sql)

				return execErr
			}
			if err := migrations.Apply(ctx, applyStatement); err != nil {
				pool.Close()

				return fmt.Errorf("running migrations: %w", err)
			}
		}

		d.infra.dbPool = pool
		d.infra.guardedPool = infraPostgres.NewGuardedPool(pool, d.config.Breaker)
		d.cleanupFuncs["database"] = func(_ context.Context) error {
			pool.Close()

			return nil
		}

		return nil
	}
}

func WithRepositories() DependencyOption {
	return func(d *dependencies) error {
		scanner := repos.NewPgxScanner()

		d.repos.deviceRepo = repos.NewDevicesRepository(
			d.infra.guardedPool,
			scanner,
			repos.NewDeviceCriteriaTranslator(&d.infra.logger),
			&d.infra.logger,
		)
		d.repos.measurementRepo = repos.NewMeasurementsRepository(
			d.infra.guardedPool,
			scanner,
			repos.NewMeasurementCriteriaTranslator(&d.infra.logger),
			&d.infra.logger,
		)

		return nil
	}
}

func WithServices() DependencyOption {
	return func(d *dependencies) error {
		d.devicesService = services.NewDevicesService(d.repos.deviceRepo)
		d.measurementsService = services.NewMeasurementsService(d.repos.measurementRepo, d.repos.deviceRepo)

		return nil
	}
}

func WithApplication() DependencyOption {
	return func(d *dependencies) error {
		d.app = usecases.NewApplication(
			d.devicesService,
			d.measurementsService,
			d.getDBHealthChecker(),
			d.infra.logger,
			d.infra.metricsClient,
			d.infra.tracerProvider,
		)

		return nil
	}
}

// WithQueryCache wraps the device listing with an in-process LRU. The
// cache is bounded and TTL-driven, so stale pages age out on their own;
// writes are not invalidated synchronously.
func WithQueryCache() DependencyOption {
	return func(d *dependencies) error {
		if !d.config.QueryCache.Enabled {
			return nil
		}

		lru := cache.NewLRU[queries.ListDevicesQuery, *model.PageResult[*model.Device]](
			d.config.QueryCache.Size,
			d.config.QueryCache.TTL,
			listDevicesCacheKey,
		)

		d.app.Queries.ListDevices = decorator.NewQueryCachingDecorator(
			d.app.Queries.ListDevices,
			lru,
			decorator.CacheConfig{Enabled: true, TTL: d.config.QueryCache.TTL},
		)

		return nil
	}
}

func WithHTTPServer() DependencyOption {
	return func(d *dependencies) error {
		router := httpapi.NewRouter(d.app, d.config.App.APIVersion, d.infra.logger)

		d.infra.httpServer = &http.Server{
			Addr:         fmt.Sprintf("%s:%d", d.config.HTTPServer.Host, d.config.HTTPServer.Port),
			Handler:      router,
			ReadTimeout:  d.config.HTTPServer.ReadTimeout,
			WriteTimeout: d.config.HTTPServer.WriteTimeout,
			IdleTimeout:  d.config.HTTPServer.IdleTimeout,
		}

		return nil
	}
}

func listDevicesCacheKey(query queries.ListDevicesQuery) string {
	var parts []string

	if filter := query.Filter; filter != nil {
		if filter.Building != nil {
			parts = append(parts, "building="+*filter.Building)
		}

		if filter.Room != nil {
			parts = append(parts, "room="+*filter.Room)
		}

		if filter.Type != nil {
			parts = append(parts, "type="+filter.Type.String())
		}

		if filter.Active != nil {
			parts = append(parts, fmt.Sprintf("active=%t", *filter.Active))
		}
	}

	parts = append(parts, fmt.Sprintf("page=%d", query.Page.Page))
	parts = append(parts, fmt.Sprintf("size=%d", query.Page.Size))
	parts = append(parts, "sortBy="+query.Page.SortBy)
	parts = append(parts, "direction="+string(query.Page.Direction))

	return strings.Join(parts, "&")
}

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
	// ListDevicesQuery pages through devices. A nil filter matches
	// everything; the page carries sorting and bounds.
	ListDevicesQuery struct {
		Filter *model.DeviceFilter
		Page   model.PageRequest
	}

	ListDevicesQueryHandler = decorator.QueryHandler[ListDevicesQuery, *model.PageResult[*model.Device]]

	listDevicesQueryHandler struct {
		devicesService ports.DevicesService
	}
)

func NewListDevicesQueryHandler(
	svc ports.DevicesService,
	log logger.Logger,
	metricsClient metrics.Client,
	tracerProvider otelTrace.TracerProvider,
) ListDevicesQueryHandler {
	return decorator.ApplyQueryDecorators[ListDevicesQuery, *model.PageResult[*model.Device]](
		listDevicesQueryHandler{devicesService: svc},
		log,
		metricsClient,
		tracerProvider,
	)
}

func (h listDevicesQueryHandler) Execute(ctx context.Context, query ListDevicesQuery) (*model.PageResult[*model.Device], error) {
	return h.devicesService.FindDevices(ctx, query.Filter, query.Page)
}

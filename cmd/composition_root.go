package cmd

import (
	"log/slog"
	"os"

	httpadapter "okdelivery/internal/adapters/in/http"
	"okdelivery/internal/adapters/out/broadcast"
	"okdelivery/internal/adapters/out/postgres"
	"okdelivery/internal/adapters/out/postgres/locationlog"
	"okdelivery/internal/core/application/usecases/commands"
	"okdelivery/internal/core/application/usecases/queries"
	"okdelivery/internal/core/ports"

	"github.com/labstack/gommon/log"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type CompositionRoot struct {
	config     Config
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	hub        *broadcast.Hub
	bus        *broadcast.InProcessBus
	logger     *slog.Logger
}

func NewCompositionRoot(config Config, gormDB *gorm.DB) CompositionRoot {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	bus := broadcast.NewInProcessBus()
	sinks := []broadcast.Sink{bus}

	if config.RelayPushURL != "" {
		relay, err := broadcast.NewRelaySink(config.RelayPushURL, config.RelayPushToken)
		if err != nil {
			log.Fatalf("failed to configure relay sink: %v", err)
		}
		sinks = append(sinks, relay)
	}

	if config.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{Addr: config.RedisAddr})
		redisSink, err := broadcast.NewRedisSink(client, config.RedisEventsChannel)
		if err != nil {
			log.Fatalf("failed to configure redis sink: %v", err)
		}
		sinks = append(sinks, redisSink)
	}

	hub, err := broadcast.NewHub(logger, sinks...)
	if err != nil {
		log.Fatalf("failed to create broadcast hub: %v", err)
	}

	return CompositionRoot{
		config:     config,
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		hub:        hub,
		bus:        bus,
		logger:     logger,
	}
}

// EventBus exposes the in-process subscriber bus, e.g. for a websocket-push
// adapter running in the same process.
func (c *CompositionRoot) EventBus() *broadcast.InProcessBus {
	return c.bus
}

func (c *CompositionRoot) Logger() *slog.Logger {
	return c.logger
}

func (c *CompositionRoot) CreateChangePackageStatusCommandHandler() commands.ChangePackageStatusCommandHandler {
	var f commands.PackageUoWFactory = FuncPackageUoWFactory(func() commands.PackageUoW {
		return c.uowFactory.Create()
	})
	return commands.NewChangePackageStatusCommandHandler(f, c.hub)
}

func (c *CompositionRoot) CreateAssignRiderCommandHandler() commands.AssignRiderCommandHandler {
	return commands.NewAssignRiderCommandHandler(c.assignUoWFactory(), c.hub)
}

func (c *CompositionRoot) CreateBulkAssignRiderCommandHandler() commands.BulkAssignRiderCommandHandler {
	return commands.NewBulkAssignRiderCommandHandler(c.assignUoWFactory(), c.hub, c.logger)
}

func (c *CompositionRoot) CreateAssignMerchantPickupCommandHandler() commands.AssignMerchantPickupCommandHandler {
	return commands.NewAssignMerchantPickupCommandHandler(c.assignUoWFactory(), c.hub)
}

func (c *CompositionRoot) CreateReportRiderLocationCommandHandler() commands.ReportRiderLocationCommandHandler {
	var locationLog ports.RiderLocationLog = locationlog.NewGormRiderLocationLog(c.gormDB)
	return commands.NewReportRiderLocationCommandHandler(c.riderUoWFactory(), locationLog, c.hub, c.logger)
}

func (c *CompositionRoot) CreateMarkIdleRidersOfflineCommandHandler() commands.MarkIdleRidersOfflineCommandHandler {
	return commands.NewMarkIdleRidersOfflineCommandHandler(c.riderUoWFactory(), c.logger)
}

func (c *CompositionRoot) CreateListPackagesQueryHandler() queries.ListPackagesQueryHandler {
	return queries.NewListPackagesQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetPackageQueryHandler() queries.GetPackageQueryHandler {
	return queries.NewGetPackageQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetArrivedPackagesQueryHandler() queries.GetArrivedPackagesQueryHandler {
	return queries.NewGetArrivedPackagesQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetRiderLocationQueryHandler() queries.GetRiderLocationQueryHandler {
	return queries.NewGetRiderLocationQueryHandler(c.gormDB)
}

// CreateHTTPServer wires every route handler into the REST server.
func (c *CompositionRoot) CreateHTTPServer() *httpadapter.Server {
	return httpadapter.NewServer(
		c.CreateChangePackageStatusCommandHandler(),
		c.CreateAssignRiderCommandHandler(),
		c.CreateBulkAssignRiderCommandHandler(),
		c.CreateAssignMerchantPickupCommandHandler(),
		c.CreateReportRiderLocationCommandHandler(),
		c.CreateListPackagesQueryHandler(),
		c.CreateGetPackageQueryHandler(),
		c.CreateGetArrivedPackagesQueryHandler(),
		c.CreateGetRiderLocationQueryHandler(),
		c.config.TrackerSharedSecret,
	)
}

func (c *CompositionRoot) assignUoWFactory() commands.AssignUoWFactory {
	return FuncAssignUoWFactory(func() commands.AssignUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) riderUoWFactory() commands.RiderUoWFactory {
	return FuncRiderUoWFactory(func() commands.RiderUoW {
		return c.uowFactory.Create()
	})
}

type FuncPackageUoWFactory func() commands.PackageUoW

func (f FuncPackageUoWFactory) Create() commands.PackageUoW {
	return f()
}

type FuncRiderUoWFactory func() commands.RiderUoW

func (f FuncRiderUoWFactory) Create() commands.RiderUoW {
	return f()
}

type FuncAssignUoWFactory func() commands.AssignUoW

func (f FuncAssignUoWFactory) Create() commands.AssignUoW {
	return f()
}

package cmd

import (
	"errors"
	"fmt"
	"log/slog"

	"fooddelivery/api"
	httpadapter "fooddelivery/internal/adapters/in/http"
	"fooddelivery/internal/adapters/out/memory"
	"fooddelivery/internal/adapters/out/notify"
	"fooddelivery/internal/adapters/out/postgres"
	"fooddelivery/internal/adapters/out/postgres/actorrepo"
	"fooddelivery/internal/adapters/out/postgres/inboxrepo"
	"fooddelivery/internal/adapters/out/postgres/orderrepo"
	"fooddelivery/internal/adapters/out/postgres/restaurantrepo"
	redisadapter "fooddelivery/internal/adapters/out/redis"
	"fooddelivery/internal/core/application/dispatch"
	"fooddelivery/internal/core/application/usecases/commands"
	"fooddelivery/internal/core/application/usecases/queries"
	"fooddelivery/internal/core/domain/services"
	"fooddelivery/internal/core/ports"
	"fooddelivery/internal/jobs"
	"fooddelivery/internal/pkg/metrics"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	amqp "github.com/rabbitmq/amqp091-go"
	goredis "github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// CompositionRoot owns every long-lived dependency of the service and builds
// the use cases from them.
type CompositionRoot struct {
	cfg    Config
	logger *slog.Logger

	uowFactory  commands.OrderUoWFactory
	orders      queries.OrderReader
	actors      ports.ActorDirectory
	restaurants ports.RestaurantDirectory
	inbox       ports.NotificationInbox

	registry    *prometheus.Registry
	metrics     *metrics.Metrics
	planner     services.NotificationPlanner
	coordinator *dispatch.Coordinator
	openapi     *openapi3.T

	closers []func() error
}

// NewCompositionRoot wires the configured drivers. gormDB may be nil when
// StoreDriver is memory.
func NewCompositionRoot(cfg Config, gormDB *gorm.DB, logger *slog.Logger) (*CompositionRoot, error) {
	c := &CompositionRoot{
		cfg:      cfg,
		logger:   logger,
		registry: prometheus.NewRegistry(),
		planner: services.NewNotificationPlanner(services.NotificationPolicy{
			NotifyCustomerOnAccept:   cfg.NotifyCustomerOnAccept,
			NotifyManagerOnCancel:    cfg.NotifyManagerOnCancel,
			NotifyManagerOnDelivered: cfg.NotifyManagerOnDelivered,
		}),
	}
	c.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	c.metrics = metrics.New(c.registry)

	doc, err := api.Load()
	if err != nil {
		return nil, err
	}
	c.openapi = doc

	if err = c.wireStore(gormDB); err != nil {
		return nil, errors.Join(err, c.Close())
	}

	gateway, err := c.wireGateway()
	if err != nil {
		return nil, errors.Join(err, c.Close())
	}

	c.coordinator = dispatch.NewCoordinator(c.actors, gateway,
		dispatch.WithInbox(c.inbox),
		dispatch.WithLogger(logger),
		dispatch.WithMetrics(c.metrics),
		dispatch.WithConcurrency(cfg.DispatchConcurrency),
	)
	return c, nil
}

func (c *CompositionRoot) wireStore(gormDB *gorm.DB) error {
	switch c.cfg.StoreDriver {
	case StoreDriverMemory:
		store := memory.NewOrderStore()
		factory := memory.NewUnitOfWorkFactory(store)
		c.uowFactory = commands.OrderUoWFactoryFunc(func() commands.OrderUoW { return factory.Create() })
		c.orders = store
		c.actors = memory.NewActorDirectory()
		c.restaurants = memory.NewRestaurantDirectory()
		c.inbox = memory.NewInbox()
		return nil

	case StoreDriverPostgres, "":
		if gormDB == nil {
			return errors.New("postgres store requires a database connection")
		}
		factory := postgres.NewGormUnitOfWorkFactory(gormDB)
		c.uowFactory = commands.OrderUoWFactoryFunc(func() commands.OrderUoW { return factory.Create() })
		c.orders = orderrepo.NewGormOrderRepository(gormDB, nil)
		c.restaurants = restaurantrepo.NewGormRestaurantDirectory(gormDB)
		c.inbox = inboxrepo.NewGormInbox(gormDB)

		actors, err := c.wireActorDirectory(gormDB)
		if err != nil {
			return err
		}
		c.actors = actors
		return nil

	default:
		return fmt.Errorf("unknown STORE_DRIVER %q", c.cfg.StoreDriver)
	}
}

func (c *CompositionRoot) wireActorDirectory(gormDB *gorm.DB) (ports.ActorDirectory, error) {
	switch c.cfg.DirectoryDriver {
	case DirectoryDriverPostgres, "":
		return actorrepo.NewGormActorDirectory(gormDB), nil

	case DirectoryDriverRedis:
		client := goredis.NewClient(&goredis.Options{Addr: c.cfg.RedisAddr})
		c.closers = append(c.closers, client.Close)
		return actorrepo.NewGormActorDirectory(gormDB,
			actorrepo.WithTokenStore(redisadapter.NewDeviceTokenStore(client)),
		), nil

	default:
		return nil, fmt.Errorf("unknown DIRECTORY_DRIVER %q", c.cfg.DirectoryDriver)
	}
}

func (c *CompositionRoot) wireGateway() (ports.NotificationGateway, error) {
	switch c.cfg.NotifyGateway {
	case NotifyGatewayLog, "":
		return notify.NewLogGateway(c.logger), nil

	case NotifyGatewayKafka:
		if len(c.cfg.KafkaBrokers) == 0 {
			return nil, errors.New("kafka gateway requires KAFKA_BROKERS")
		}
		writer := notify.NewKafkaWriter(c.cfg.KafkaBrokers, c.cfg.KafkaNotifyTopic)
		c.closers = append(c.closers, writer.Close)
		return notify.NewKafkaGateway(writer), nil

	case NotifyGatewayAMQP:
		conn, err := amqp.Dial(c.cfg.AMQPURL)
		if err != nil {
			return nil, fmt.Errorf("connect to rabbitmq: %w", err)
		}
		c.closers = append(c.closers, conn.Close)

		ch, err := conn.Channel()
		if err != nil {
			return nil, fmt.Errorf("open rabbitmq channel: %w", err)
		}
		c.closers = append(c.closers, ch.Close)

		if err = notify.DeclareExchange(ch, c.cfg.AMQPNotifyExchange); err != nil {
			return nil, err
		}
		return notify.NewAMQPGateway(ch, c.cfg.AMQPNotifyExchange), nil

	default:
		return nil, fmt.Errorf("unknown NOTIFY_GATEWAY %q", c.cfg.NotifyGateway)
	}
}

// Close releases broker and cache connections in reverse order of opening.
func (c *CompositionRoot) Close() error {
	var errs []error
	for i := len(c.closers) - 1; i >= 0; i-- {
		errs = append(errs, c.closers[i]())
	}
	c.closers = nil
	return errors.Join(errs...)
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	return commands.NewCreateOrderCommandHandler(c.uowFactory, c.actors, c.restaurants, c.planner, c.coordinator)
}

func (c *CompositionRoot) CreateApplyTransitionCommandHandler() commands.ApplyTransitionCommandHandler {
	return commands.NewApplyTransitionCommandHandler(c.uowFactory, c.actors, c.restaurants, c.planner, c.coordinator)
}

func (c *CompositionRoot) CreateClaimOrderCommandHandler() commands.ClaimOrderCommandHandler {
	return commands.NewClaimOrderCommandHandler(c.uowFactory, c.actors, c.planner, c.coordinator)
}

func (c *CompositionRoot) CreateRegisterDeviceTokenCommandHandler() commands.RegisterDeviceTokenCommandHandler {
	return commands.NewRegisterDeviceTokenCommandHandler(c.actors)
}

func (c *CompositionRoot) CreateUpdateCourierLocationCommandHandler() commands.UpdateCourierLocationCommandHandler {
	return commands.NewUpdateCourierLocationCommandHandler(c.uowFactory, c.actors)
}

func (c *CompositionRoot) CreateRemindUnclaimedOrdersCommandHandler() commands.RemindUnclaimedOrdersCommandHandler {
	return commands.NewRemindUnclaimedOrdersCommandHandler(c.uowFactory, c.planner, c.coordinator)
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.orders, c.actors, c.restaurants)
}

func (c *CompositionRoot) CreateListCustomerOrdersQueryHandler() queries.ListCustomerOrdersQueryHandler {
	return queries.NewListCustomerOrdersQueryHandler(c.orders, c.actors)
}

func (c *CompositionRoot) CreateListRestaurantOrdersQueryHandler() queries.ListRestaurantOrdersQueryHandler {
	return queries.NewListRestaurantOrdersQueryHandler(c.orders, c.actors, c.restaurants)
}

func (c *CompositionRoot) CreateListAvailableOrdersQueryHandler() queries.ListAvailableOrdersQueryHandler {
	return queries.NewListAvailableOrdersQueryHandler(c.orders, c.actors)
}

func (c *CompositionRoot) CreateListNotificationsQueryHandler() queries.ListNotificationsQueryHandler {
	return queries.NewListNotificationsQueryHandler(c.inbox, c.actors)
}

func (c *CompositionRoot) CreateServer() *httpadapter.Server {
	handlers := httpadapter.Handlers{
		CreateOrder:           c.CreateCreateOrderCommandHandler(),
		ApplyTransition:       c.CreateApplyTransitionCommandHandler(),
		ClaimOrder:            c.CreateClaimOrderCommandHandler(),
		RegisterDeviceToken:   c.CreateRegisterDeviceTokenCommandHandler(),
		UpdateCourierLocation: c.CreateUpdateCourierLocationCommandHandler(),

		GetOrder:             c.CreateGetOrderQueryHandler(),
		ListCustomerOrders:   c.CreateListCustomerOrdersQueryHandler(),
		ListRestaurantOrders: c.CreateListRestaurantOrdersQueryHandler(),
		ListAvailableOrders:  c.CreateListAvailableOrdersQueryHandler(),
		ListNotifications:    c.CreateListNotificationsQueryHandler(),
	}
	return httpadapter.NewServer(handlers, httpadapter.NewTokenService(c.cfg.JWTSecret), c.openapi, c.metrics, c.registry, c.logger)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(
		c.CreateRemindUnclaimedOrdersCommandHandler(),
		c.cfg.ReminderSchedule,
		c.cfg.ReminderMinAge,
		c.logger,
	)
}

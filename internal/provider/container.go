package provider

import (
	"github.com/tawseel-next/internal/authz"
	"github.com/tawseel-next/internal/cache"
	"github.com/tawseel-next/internal/config"
	"github.com/tawseel-next/internal/logger"
	"github.com/tawseel-next/internal/models"
	"github.com/tawseel-next/internal/notify"
	"github.com/tawseel-next/internal/presenter"
	"github.com/tawseel-next/internal/queue"
	"github.com/tawseel-next/internal/repository"
	"github.com/tawseel-next/internal/service"
)

// Container dependency container shared by handlers, the worker and commands
type Container struct {
	Config      *config.Config
	QueueClient *queue.Client
	Publisher   notify.Publisher
	Presenter   *presenter.Formatter

	// Repositories
	UserRepo           repository.UserRepository
	OrderRepo          repository.OrderRepository
	OrderStatusLogRepo repository.OrderStatusLogRepository
	DriverRepo         repository.DriverRepository
	CityRepo           repository.CityRepository
	DelegateSheetRepo  repository.DelegateSheetRepository
	ProductRepo        repository.ProductRepository
	DashboardRepo      repository.DashboardRepository

	// Services
	AuthzService         *authz.Service
	AuthService          *service.AuthService
	CaptchaService       *service.CaptchaService
	UserService          *service.UserService
	OrderService         *service.OrderService
	DelegateSheetService *service.DelegateSheetService
	DriverService        *service.DriverService
	CityService          *service.CityService
	ProductService       *service.ProductService
	ImportService        *service.ImportService
	ExportService        *service.ExportService
	DashboardService     *service.DashboardService
}

// NewContainer wires every repository and service against models.DB
func NewContainer(cfg *config.Config) *Container {
	if err := cache.InitRedis(&cfg.Redis); err != nil {
		logger.Warnw("provider_init_redis_failed", "error", err)
	}

	queueClient, err := queue.NewClient(&cfg.Queue)
	if err != nil {
		logger.Errorw("provider_init_queue_client_failed", "error", err)
		queueClient, _ = queue.NewClient(nil)
	}

	publisher, err := notify.New(&cfg.Notify)
	if err != nil {
		logger.Warnw("provider_init_notify_failed", "error", err)
		publisher = notify.LogPublisher{}
	}

	c := &Container{
		Config:      cfg,
		QueueClient: queueClient,
		Publisher:   publisher,
		Presenter:   presenter.New(cfg.Presenter),
	}

	c.initRepositories()
	c.initServices()

	return c
}

func (c *Container) initRepositories() {
	db := models.DB
	c.UserRepo = repository.NewUserRepository(db)
	c.OrderRepo = repository.NewOrderRepository(db)
	c.OrderStatusLogRepo = repository.NewOrderStatusLogRepository(db)
	c.DriverRepo = repository.NewDriverRepository(db)
	c.CityRepo = repository.NewCityRepository(db)
	c.DelegateSheetRepo = repository.NewDelegateSheetRepository(db)
	c.ProductRepo = repository.NewProductRepository(db)
	c.DashboardRepo = repository.NewDashboardRepository(db)
}

func (c *Container) initServices() {
	authzService, err := authz.NewService(models.DB)
	if err != nil {
		logger.Errorw("provider_init_authz_failed", "error", err)
		panic(err)
	}
	c.AuthzService = authzService
	if err := c.AuthzService.BootstrapBuiltinRoles(); err != nil {
		logger.Errorw("provider_bootstrap_builtin_roles_failed", "error", err)
		panic(err)
	}

	barcodes := service.NewBarcodeGenerator()

	c.DashboardService = service.NewDashboardService(c.DashboardRepo, cache.DefaultStore(), c.Config.Dashboard, c.Config.Inventory)
	c.AuthService = service.NewAuthService(c.Config, c.UserRepo)
	c.CaptchaService = service.NewCaptchaService(c.Config.Captcha)
	c.UserService = service.NewUserService(c.UserRepo, c.AuthzService, c.Config.Security.PasswordPolicy)
	c.OrderService = service.NewOrderService(c.OrderRepo, c.DriverRepo, c.OrderStatusLogRepo, c.QueueClient, barcodes, c.DashboardService)
	c.DelegateSheetService = service.NewDelegateSheetService(c.DelegateSheetRepo, c.OrderRepo, c.DriverRepo, c.OrderStatusLogRepo, c.QueueClient, barcodes, c.DashboardService)
	c.DriverService = service.NewDriverService(c.DriverRepo, c.OrderRepo)
	c.CityService = service.NewCityService(c.CityRepo)
	c.ProductService = service.NewProductService(c.ProductRepo, c.Config.Inventory, c.DashboardService)
	c.ImportService = service.NewImportService(c.OrderRepo, c.DriverRepo, c.CityRepo, c.UserRepo, c.OrderStatusLogRepo, barcodes, c.AuthzService, c.DashboardService, c.Config.Import.MaxSize)
	c.ExportService = service.NewExportService(c.OrderRepo, c.DriverRepo, c.CityRepo, c.UserRepo)
}

// Close releases the queue producer and the notification publisher
func (c *Container) Close() {
	if c.QueueClient != nil {
		if err := c.QueueClient.Close(); err != nil {
			logger.Warnw("provider_close_queue_client_failed", "error", err)
		}
	}
	if c.Publisher != nil {
		if err := c.Publisher.Close(); err != nil {
			logger.Warnw("provider_close_publisher_failed", "error", err)
		}
	}
}

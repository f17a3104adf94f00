package provider

import (
	"github.com/vendor-payments/internal/authz"
	"github.com/vendor-payments/internal/cache"
	"github.com/vendor-payments/internal/config"
	"github.com/vendor-payments/internal/logger"
	"github.com/vendor-payments/internal/models"
	"github.com/vendor-payments/internal/queue"
	"github.com/vendor-payments/internal/repository"
	"github.com/vendor-payments/internal/service"
)

// Container 依赖注入容器
type Container struct {
	Config      *config.Config
	QueueClient *queue.Client

	// Repositories
	AdminRepo         repository.AdminRepository
	VendorRepo        repository.VendorRepository
	ProductRepo       repository.ProductRepository
	OrderRepo         repository.OrderRepository
	VendorPaymentRepo repository.VendorPaymentRepository

	// Services
	AuthzService         *authz.Service
	AuthService          *service.AuthService
	VendorAuthService    *service.VendorAuthService
	VendorService        *service.VendorService
	ProductService       *service.ProductService
	OrderService         *service.OrderService
	VendorPaymentService *service.VendorPaymentService
}

// NewContainer 初始化容器
func NewContainer(cfg *config.Config) *Container {
	// 初始化缓存
	if err := cache.InitRedis(&cfg.Redis); err != nil {
		logger.Warnw("provider_init_redis_failed", "error", err)
	}

	// 初始化队列客户端
	var queueClient *queue.Client
	if cfg.Queue.Enabled {
		qc, err := queue.NewClient(&cfg.Queue)
		if err != nil {
			logger.Errorw("provider_init_queue_client_failed", "error", err)
		} else {
			queueClient = qc
		}
	}

	c := &Container{
		Config:      cfg,
		QueueClient: queueClient,
	}

	// 1. 初始化 Repositories
	c.initRepositories()

	// 2. 初始化 Services
	c.initServices()

	return c
}

func (c *Container) initRepositories() {
	db := models.DB
	c.AdminRepo = repository.NewAdminRepository(db)
	c.VendorRepo = repository.NewVendorRepository(db)
	c.ProductRepo = repository.NewProductRepository(db)
	c.OrderRepo = repository.NewOrderRepository(db)
	c.VendorPaymentRepo = repository.NewVendorPaymentRepository(db)
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

	c.AuthService = service.NewAuthService(c.Config, c.AdminRepo)
	c.VendorAuthService = service.NewVendorAuthService(c.Config, c.VendorRepo)
	c.VendorService = service.NewVendorService(c.Config, c.VendorRepo)
	c.ProductService = service.NewProductService(c.ProductRepo, c.VendorRepo)
	c.OrderService = service.NewOrderService(c.OrderRepo)
	c.VendorPaymentService = service.NewVendorPaymentService(c.VendorPaymentRepo, c.OrderRepo, c.ProductRepo)
}

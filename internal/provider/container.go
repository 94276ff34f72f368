package provider

import (
	"github.com/grocer-next/internal/cache"
	"github.com/grocer-next/internal/cart"
	"github.com/grocer-next/internal/config"
	"github.com/grocer-next/internal/logger"
	"github.com/grocer-next/internal/models"
	"github.com/grocer-next/internal/queue"
	"github.com/grocer-next/internal/repository"
	"github.com/grocer-next/internal/service"
)

// Container wires repositories and services together.
type Container struct {
	Config      *config.Config
	QueueClient *queue.Client

	// Repositories
	UserRepo     repository.UserRepository
	CategoryRepo repository.CategoryRepository
	ProductRepo  repository.ProductRepository
	VariantRepo  repository.ProductVariantRepository
	OrderRepo    repository.OrderRepository
	RequestRepo  repository.CustomRequestRepository

	// Cart persistence
	CartStore cart.Store

	// Services
	AuthService     *service.AuthService
	EmailService    *service.EmailService
	CaptchaService  *service.CaptchaService
	ProductService  *service.ProductService
	CategoryService *service.CategoryService
	CartService     *service.CartService
	OrderService    *service.OrderService
	RequestService  *service.RequestService
	QuickAddService *service.QuickAddService
}

// NewContainer initializes the container.
func NewContainer(cfg *config.Config) *Container {
	if err := cache.InitRedis(&cfg.Redis); err != nil {
		logger.Warnw("provider_init_redis_failed", "error", err)
	}

	queueClient, err := queue.NewClient(&cfg.Queue)
	if err != nil {
		logger.Errorw("provider_init_queue_client_failed", "error", err)
		queueClient = nil
	}

	c := &Container{
		Config:      cfg,
		QueueClient: queueClient,
	}

	c.initRepositories()
	c.initServices()

	return c
}

func (c *Container) initRepositories() {
	db := models.DB
	c.UserRepo = repository.NewUserRepository(db)
	c.CategoryRepo = repository.NewCategoryRepository(db)
	c.ProductRepo = repository.NewProductRepository(db)
	c.VariantRepo = repository.NewProductVariantRepository(db)
	c.OrderRepo = repository.NewOrderRepository(db)
	c.RequestRepo = repository.NewCustomRequestRepository(db)
}

func (c *Container) initServices() {
	// Carts live in Redis when available, in process memory otherwise.
	if cache.Enabled() {
		c.CartStore = cart.NewRedisStore(cache.Client())
	} else {
		logger.Warnw("provider_cart_store_fallback_memory", "reason", "redis_disabled")
		c.CartStore = cart.NewMemoryStore()
	}

	c.EmailService = service.NewEmailService(&c.Config.Email)
	c.CaptchaService = service.NewCaptchaService(c.Config.Captcha)
	c.AuthService = service.NewAuthService(c.Config, c.UserRepo)
	c.ProductService = service.NewProductService(c.ProductRepo, c.VariantRepo)
	c.CategoryService = service.NewCategoryService(c.CategoryRepo)
	c.CartService = service.NewCartService(c.CartStore, c.ProductRepo)
	c.OrderService = service.NewOrderService(c.OrderRepo, c.ProductRepo, c.CartService, c.QueueClient)
	c.RequestService = service.NewRequestService(c.RequestRepo, c.QueueClient)

	var matcher service.Matcher
	if m := service.NewHTTPMatcher(c.Config.Matcher); m != nil {
		matcher = m
	}
	c.QuickAddService = service.NewQuickAddService(c.ProductRepo, c.CartService, matcher)
}

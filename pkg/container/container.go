package container

import (
	"context"
	"fmt"
	"log"
	"time"

	"propertypro-backend/internal/config"
	infraCache "propertypro-backend/internal/infrastructure/cache"
	"propertypro-backend/internal/infrastructure/database"
	"propertypro-backend/internal/infrastructure/storage"
	"propertypro-backend/pkg/cache"
	"propertypro-backend/pkg/jwt"

	// Property domain imports
	propertyHandler "propertypro-backend/internal/domains/property/handler"
	propertyRepo "propertypro-backend/internal/domains/property/repository"
	propertyService "propertypro-backend/internal/domains/property/service"

	// User domain imports
	"propertypro-backend/internal/domains/user"
	userHandler "propertypro-backend/internal/domains/user/handler"
	userRepo "propertypro-backend/internal/domains/user/repository"
	userService "propertypro-backend/internal/domains/user/service"
)

// ========================================
// CONTAINER STRUCT
// ========================================

// Container chứa TẤT CẢ dependencies của application
// Struct này là "root" của dependency graph
type Container struct {
	// ========================================
	// INFRASTRUCTURE LAYER
	// ========================================
	Config      *config.Config
	DB          *database.PostgresDB // nil khi DB_DRIVER=memory
	Redis       *infraCache.RedisClient
	Revocations cache.RevocationStore
	Storage     *storage.MinIOStorage
	Images      *storage.ImageProcessor
	JWTManager  *jwt.Manager

	// ========================================
	// REPOSITORY LAYER (DATA ACCESS)
	// ========================================
	UserRepo     user.Repository
	PropertyRepo propertyRepo.RepositoryInterface

	// ========================================
	// SERVICE LAYER (BUSINESS LOGIC)
	// ========================================
	UserService     user.Service
	PropertyService propertyService.ServiceInterface

	// ========================================
	// HANDLER LAYER (HTTP)
	// ========================================
	UserHandler     *userHandler.UserHandler
	PropertyHandler *propertyHandler.PropertyHandler
}

// ========================================
// CONSTRUCTOR: BUILD CONTAINER
// ========================================

// NewContainer tạo và initialize toàn bộ dependency graph
//
// Thứ tự initialization:
// 1. Config
// 2. Infrastructure (DB, Redis, MinIO)
// 3. Repositories
// 4. Services
// 5. Handlers
func NewContainer() (*Container, error) {
	log.Println("🔧 Initializing DI Container...")

	c := &Container{}

	// ========================================
	// STEP 1: LOAD CONFIGURATION
	// ========================================
	log.Println("📋 Loading configuration...")

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	c.Config = cfg
	log.Printf("✅ Config loaded (Environment: %s, DB driver: %s)", cfg.App.Environment, cfg.Database.Driver)

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	// ========================================
	// STEP 2: INITIALIZE INFRASTRUCTURE
	// ========================================
	if err := c.initDatabase(ctx); err != nil {
		return nil, err
	}

	c.initRedis(ctx)

	log.Println("🪣 Connecting to MinIO...")
	minioStorage, err := storage.NewMinIOStorage(ctx, cfg.MinIO)
	if err != nil {
		return nil, fmt.Errorf("failed to init minio storage: %w", err)
	}
	c.Storage = minioStorage
	c.Images = storage.NewImageProcessor(cfg.Upload.MaxImageBytes, cfg.Upload.MaxImageWidth)
	log.Println("✅ MinIO ready")

	c.JWTManager = jwt.NewManager(cfg.JWT.Secret, time.Duration(cfg.JWT.AccessTokenExpiry)*time.Hour)

	// ========================================
	// STEP 3-5: REPOSITORIES -> SERVICES -> HANDLERS
	// ========================================
	log.Println("📦 Initializing repositories...")
	c.initRepositories()

	log.Println("⚙️  Initializing services...")
	c.initServices()

	log.Println("🎯 Initializing handlers...")
	c.initHandlers()

	// ========================================
	// STEP 6: SEED ADMIN
	// ========================================
	if cfg.Admin.Email != "" {
		if err := c.UserService.EnsureAdmin(ctx, cfg.Admin.Email, cfg.Admin.Password); err != nil {
			return nil, fmt.Errorf("failed to seed admin: %w", err)
		}
		log.Printf("👑 Admin account ready: %s", cfg.Admin.Email)
	}

	log.Println("🎉 DI Container initialized successfully")
	return c, nil
}

// ========================================
// PRIVATE INITIALIZATION METHODS
// ========================================

func (c *Container) initDatabase(ctx context.Context) error {
	if c.Config.Database.Driver == "memory" {
		log.Println("⚠️  DB_DRIVER=memory: data is lost on restart")
		return nil
	}

	log.Println("🗄️  Connecting to PostgreSQL...")

	dbConfig, err := config.LoadDatabaseConfig()
	if err != nil {
		return fmt.Errorf("failed to load database config: %w", err)
	}

	db := database.NewPostgresDB(dbConfig)
	if err := db.Connect(ctx); err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := db.HealthCheck(ctx); err != nil {
		db.Close()
		return fmt.Errorf("database health check failed: %w", err)
	}

	// Migrate sau khi pool đã connect (DB chắc chắn đã sẵn sàng)
	if c.Config.Database.AutoMigrate {
		if err := database.Migrate(ctx, dbConfig.DSN()); err != nil {
			db.Close()
			return fmt.Errorf("failed to migrate database: %w", err)
		}
	}

	c.DB = db
	log.Println("✅ Database connected")
	return nil
}

// initRedis: Redis failure không critical, signout sẽ lỗi nhưng auth vẫn chạy
func (c *Container) initRedis(ctx context.Context) {
	log.Println("🔴 Connecting to Redis...")

	c.Redis = infraCache.NewRedisClient(c.Config.Redis.Host, c.Config.Redis.Password, c.Config.Redis.DB)
	if err := c.Redis.Connect(ctx); err != nil {
		log.Printf("⚠️  Redis connection failed (non-critical): %v", err)
	} else {
		log.Println("✅ Redis connected")
	}
	c.Revocations = c.Redis
}

func (c *Container) initRepositories() {
	if c.DB == nil {
		c.UserRepo = userRepo.NewMemoryRepository()
		c.PropertyRepo = propertyRepo.NewMemoryRepository()
		return
	}

	c.UserRepo = userRepo.NewPostgresRepository(c.DB.Pool)
	c.PropertyRepo = propertyRepo.NewPostgresRepository(c.DB.Pool)
}

func (c *Container) initServices() {
	c.UserService = userService.NewUserService(
		c.UserRepo,
		c.JWTManager,
		c.Revocations,
		userService.DefaultBcryptCost,
	)

	c.PropertyService = propertyService.NewPropertyService(
		c.PropertyRepo,
		c.Storage, // image host
		c.Images,
	)
}

func (c *Container) initHandlers() {
	c.UserHandler = userHandler.NewUserHandler(c.UserService)
	c.PropertyHandler = propertyHandler.NewPropertyHandler(c.PropertyService)
}

// ========================================
// HEALTH
// ========================================

// HealthCheck trả về trạng thái từng dependency; error != nil nếu có cái nào down
func (c *Container) HealthCheck(ctx context.Context) (map[string]string, error) {
	status := map[string]string{}
	var firstErr error

	check := func(name string, fn func(context.Context) error) {
		if err := fn(ctx); err != nil {
			status[name] = "down: " + err.Error()
			if firstErr == nil {
				firstErr = fmt.Errorf("%s: %w", name, err)
			}
			return
		}
		status[name] = "up"
	}

	if c.DB != nil {
		check("database", c.DB.HealthCheck)
	} else {
		status["database"] = "memory"
	}
	if c.Redis != nil {
		check("redis", c.Redis.HealthCheck)
	}
	if c.Storage != nil {
		check("storage", c.Storage.HealthCheck)
	}

	return status, firstErr
}

// Cleanup dọn dẹp resources khi shutdown
func (c *Container) Cleanup() {
	log.Println("🧹 Cleaning up container resources...")

	if c.DB != nil {
		c.DB.Close()
		log.Println("✅ Database connections closed")
	}

	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			log.Printf("⚠️  Failed to close Redis: %v", err)
		} else {
			log.Println("✅ Redis connections closed")
		}
	}

	log.Println("✅ Container cleanup completed")
}

package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"certmart_v1_202608/internal/authz"
	"certmart_v1_202608/internal/controller"
	"certmart_v1_202608/internal/middleware"
	"certmart_v1_202608/internal/model"
	"certmart_v1_202608/internal/repository"
	"certmart_v1_202608/internal/router"
	"certmart_v1_202608/internal/service"
	"certmart_v1_202608/internal/task"
	"certmart_v1_202608/pkg/database"
)

func main() {
	// 1. 初始化数据库
	db := initDatabase()

	// 2. 初始化依赖
	deps := initDependencies(db)

	// 3. 启动定时任务
	initTasks(deps)

	// 4. 初始化路由
	r := gin.Default()
	router.InitRoutes(r, deps.Controllers.User, deps.Controllers.Shop,
		deps.Controllers.Product, deps.Controllers.Order)

	// 5. 启动服务
	startServer(r)
}

// ==================== 依赖容器 ====================

// Dependencies 依赖容器
type Dependencies struct {
	DB          *gorm.DB
	Repos       *Repositories
	Services    *Services
	Controllers *Controllers
}

// Repositories 仓库集合
type Repositories struct {
	User    repository.UserRepository
	Shop    repository.ShopRepository
	Product repository.ProductRepository
	Order   repository.OrderRepository
}

// Services 服务集合
type Services struct {
	User     *service.UserService
	Shop     *service.ShopService
	Product  *service.ProductService
	Order    *service.OrderService
	Tracking *service.TrackingService
}

// Controllers 控制器集合
type Controllers struct {
	User    *controller.UserController
	Shop    *controller.ShopController
	Product *controller.ProductController
	Order   *controller.OrderController
}

// ==================== 初始化函数 ====================

// initDatabase 初始化数据库
func initDatabase() *gorm.DB {
	dsn := getEnv("DATABASE_DSN", fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=UTC",
		getEnv("DB_HOST", "localhost"),
		getEnv("DB_USER", "certmart"),
		getEnv("DB_PASSWORD", "certmart"),
		getEnv("DB_NAME", "certmart"),
		getEnv("DB_PORT", "5432"),
	))

	return database.InitDB(dsn,
		// Manager
		&model.SysUser{},
		// Shop
		&model.Shop{}, &model.ShopMember{},
		// Product
		&model.Product{},
		// Order
		&model.Order{}, &model.OrderItem{},
	)
}

// initDependencies 初始化所有依赖
func initDependencies(db *gorm.DB) *Dependencies {
	// -------- JWT 配置 --------
	if secret := getEnv("JWT_SECRET", ""); secret != "" {
		cfg := middleware.DefaultJWTConfig()
		cfg.SecretKey = secret
		middleware.SetJWTConfig(cfg)
	}

	// -------- Repo 层 --------
	repos := &Repositories{
		User:    repository.NewUserRepository(db),
		Shop:    repository.NewShopRepository(db),
		Product: repository.NewProductRepository(db),
		Order:   repository.NewOrderRepository(db),
	}

	// -------- 授权器 --------
	// 权限矩阵在进程启动时构建一次，之后只读
	auth := authz.NewAuthorizer(authz.DefaultMatrix())

	// -------- 业务服务 --------
	services := &Services{
		User:    service.NewUserService(repos.User, repos.Shop),
		Shop:    service.NewShopService(repos.Shop, repos.User, auth),
		Product: service.NewProductService(repos.Product, repos.Shop, auth),
		Order:   service.NewOrderService(repository.NewOrderUnitOfWork(db), auth),
		Tracking: service.NewTrackingService(&service.TrackingConfig{
			BaseURL: getEnv("TRACKING_API_URL", "https://api.trackingmore.com/v4"),
			ApiKey:  getEnv("TRACKING_API_KEY", ""),
		}),
	}

	// -------- Controller 层 --------
	controllers := &Controllers{
		User:    controller.NewUserController(services.User),
		Shop:    controller.NewShopController(services.Shop),
		Product: controller.NewProductController(services.Product),
		Order:   controller.NewOrderController(services.Order),
	}

	return &Dependencies{
		DB:          db,
		Repos:       repos,
		Services:    services,
		Controllers: controllers,
	}
}

// ==================== 定时任务 ====================

// initTasks 初始化定时任务
func initTasks(deps *Dependencies) {
	// 缺货标记巡检
	stockTask := task.NewStockTask(deps.Repos.Product)
	stockTask.Start()

	// 物流轮询（没配密钥就不启动，避免空转）
	if getEnv("TRACKING_API_KEY", "") != "" {
		trackingTask := task.NewTrackingTask(
			deps.Repos.Order,
			deps.Services.Order,
			deps.Services.Tracking,
		)
		trackingTask.Start()
	}

	log.Println("定时任务已启动")
}

// ==================== 服务启动 ====================

// startServer 启动服务
func startServer(r *gin.Engine) {
	port := getEnv("SERVER_PORT", "8080")

	srv := &http.Server{
		Addr:    ":" + port,
		Handler: r,
	}

	// 异步启动服务
	go func() {
		log.Printf("服务启动在 :%s", port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("服务启动失败: %v", err)
		}
	}()

	// 等待退出信号
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("正在关闭服务...")

	// 优雅关闭
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("服务强制关闭: %v", err)
	}

	log.Println("服务已退出")
}

// ==================== 工具函数 ====================

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

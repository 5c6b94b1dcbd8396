package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/ewceniza9009/wmsc-sub000/internal/config"
	"github.com/ewceniza9009/wmsc-sub000/internal/middleware"
	"github.com/ewceniza9009/wmsc-sub000/internal/wms/entity"
	"github.com/ewceniza9009/wmsc-sub000/internal/wms/handler"
	"github.com/ewceniza9009/wmsc-sub000/internal/wms/repository"
	"github.com/ewceniza9009/wmsc-sub000/internal/wms/service"
)

var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	// 加载 .env 文件
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found, using environment variables")
	}

	// 加载配置
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 初始化日志
	zapLogger, err := initLogger(cfg.Log)
	if err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	defer zapLogger.Sync()

	zapLogger.Info("Starting wmsc service",
		zap.String("version", Version),
		zap.String("build_time", BuildTime),
	)

	// 初始化数据库
	db, err := initDatabase(cfg.Database)
	if err != nil {
		zapLogger.Fatal("Failed to connect to database", zap.Error(err))
	}

	if err := entity.AutoMigrate(db); err != nil {
		zapLogger.Fatal("Failed to auto-migrate WMS tables", zap.Error(err))
	}
	zapLogger.Info("WMS database migration completed")

	// 初始化 Redis
	rdb := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
		PoolSize: cfg.Redis.PoolSize,
	})
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		zapLogger.Warn("Redis not reachable, cache and hardened sequence disabled", zap.Error(err))
	}

	// 初始化依赖
	repos := repository.NewRepositories(db)
	services := service.NewServices(repos, rdb, cfg)
	handlers := handler.NewHandlers(services)

	// 设置Gin模式
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	// 创建路由
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.Logger(zapLogger))
	router.Use(middleware.CORS())
	router.Use(middleware.RequestID())

	// 健康检查
	router.GET("/health/live", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "service": "wmsc"})
	})
	router.GET("/health/ready", func(c *gin.Context) {
		sqlDB, err := db.DB()
		if err != nil || sqlDB.Ping() != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "service": "wmsc"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok", "service": "wmsc"})
	})

	// 版本信息
	router.GET("/version", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"service":    "wmsc",
			"version":    Version,
			"build_time": BuildTime,
		})
	})

	// Prometheus 指标
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	registerRoutes(router, handlers, cfg.JWT.Secret)

	// 创建HTTP服务器
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// 启动服务器
	go func() {
		zapLogger.Info("WMS Server starting", zap.Int("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLogger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// 优雅关闭
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zapLogger.Info("Shutting down WMS server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		zapLogger.Error("Server forced to shutdown", zap.Error(err))
	}

	zapLogger.Info("WMS Server exited")
}

func registerRoutes(router *gin.Engine, handlers *handler.Handlers, jwtSecret string) {
	v1 := router.Group("/api/v1")
	v1.Use(middleware.JWTAuth(jwtSecret))

	read := middleware.RequireRole("admin", "manager", "user")
	write := middleware.RequireRole("admin", "manager")

	// 账号管理
	accounts := v1.Group("/accounts")
	{
		accounts.GET("", read, handlers.Master.ListAccounts)
		accounts.POST("", middleware.RequireRole("admin"), handlers.Master.CreateAccount)
		accounts.GET("/:id", read, handlers.Master.GetAccount)
		accounts.PUT("/:id", middleware.RequireRole("admin"), handlers.Master.UpdateAccount)
		accounts.DELETE("/:id", middleware.RequireRole("admin"), handlers.Master.DeleteAccount)
	}

	// 客户管理
	customers := v1.Group("/customers")
	{
		customers.GET("", read, handlers.Master.ListCustomers)
		customers.POST("", write, handlers.Master.CreateCustomer)
		customers.GET("/:id", read, handlers.Master.GetCustomer)
		customers.PUT("/:id", write, handlers.Master.UpdateCustomer)
		customers.DELETE("/:id", write, handlers.Master.DeleteCustomer)
	}

	// 物料管理
	materials := v1.Group("/materials")
	{
		materials.GET("", read, handlers.Master.ListMaterials)
		materials.POST("", write, handlers.Master.CreateMaterial)
		materials.GET("/:id", read, handlers.Master.GetMaterial)
		materials.PUT("/:id", write, handlers.Master.UpdateMaterial)
		materials.DELETE("/:id", write, handlers.Master.DeleteMaterial)
	}

	// 计量单位
	units := v1.Group("/units")
	{
		units.GET("", read, handlers.Master.ListUnits)
		units.POST("", write, handlers.Master.CreateUnit)
		units.PUT("/:id", write, handlers.Master.UpdateUnit)
		units.DELETE("/:id", write, handlers.Master.DeleteUnit)
	}

	// 仓库、库房、库位
	warehouses := v1.Group("/warehouses")
	{
		warehouses.GET("", read, handlers.Master.ListWarehouses)
		warehouses.POST("", write, handlers.Master.CreateWarehouse)
		warehouses.GET("/:id", read, handlers.Master.GetWarehouse)
		warehouses.PUT("/:id", write, handlers.Master.UpdateWarehouse)
		warehouses.DELETE("/:id", write, handlers.Master.DeleteWarehouse)
	}
	rooms := v1.Group("/rooms")
	{
		rooms.GET("", read, handlers.Master.ListRooms)
		rooms.POST("", write, handlers.Master.CreateRoom)
		rooms.PUT("/:id", write, handlers.Master.UpdateRoom)
		rooms.DELETE("/:id", write, handlers.Master.DeleteRoom)
	}
	locations := v1.Group("/locations")
	{
		locations.GET("", read, handlers.Master.ListLocations)
		locations.POST("", write, handlers.Master.CreateLocation)
		locations.PUT("/:id", write, handlers.Master.UpdateLocation)
		locations.DELETE("/:id", write, handlers.Master.DeleteLocation)
	}

	// 入库单
	receivings := v1.Group("/receivings")
	{
		receivings.GET("", read, handlers.Receiving.List)
		receivings.POST("", write, handlers.Receiving.Create)
		receivings.GET("/export", read, handlers.Receiving.Export)
		receivings.GET("/:id", read, handlers.Receiving.Get)
		receivings.PUT("/:id", write, handlers.Receiving.Update)
		receivings.DELETE("/:id", write, handlers.Receiving.Delete)
		receivings.POST("/:id/attachments", write, handlers.Receiving.UploadAttachment)
		receivings.GET("/:id/attachments", read, handlers.Receiving.ListAttachments)
	}
	attachments := v1.Group("/attachments")
	{
		attachments.GET("/:attachmentId", read, handlers.Receiving.DownloadAttachment)
		attachments.DELETE("/:attachmentId", write, handlers.Receiving.DeleteAttachment)
	}

	// 托盘
	pallets := v1.Group("/pallets")
	{
		pallets.GET("", read, handlers.Pallet.List)
		pallets.POST("", write, handlers.Pallet.Create)
		pallets.GET("/:id", read, handlers.Pallet.Get)
		pallets.PUT("/:id", write, handlers.Pallet.Update)
		pallets.POST("/:id/cancel", write, handlers.Pallet.Cancel)
		pallets.DELETE("/:id", write, handlers.Pallet.Delete)
	}

	// 收货录入工作流
	intake := v1.Group("/intake-sessions")
	{
		intake.POST("", write, handlers.Intake.Start)
		intake.GET("/:id", read, handlers.Intake.Get)
		intake.PUT("/:id/info", write, handlers.Intake.SetInfo)
		intake.PUT("/:id/weights", write, handlers.Intake.SetWeights)
		intake.POST("/:id/advance", write, handlers.Intake.Advance)
		intake.POST("/:id/save", write, handlers.Intake.Save)
		intake.POST("/:id/cancel", write, handlers.Intake.Cancel)
	}

	// 移库单
	transfers := v1.Group("/transfers")
	{
		transfers.GET("", read, handlers.Transfer.List)
		transfers.POST("", write, handlers.Transfer.Create)
		transfers.GET("/:id", read, handlers.Transfer.Get)
		transfers.PUT("/:id", write, handlers.Transfer.Update)
		transfers.DELETE("/:id", write, handlers.Transfer.Delete)
	}
}

func initLogger(cfg config.LogConfig) (*zap.Logger, error) {
	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
	}
	switch cfg.Level {
	case "debug":
		zapCfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	case "info":
		zapCfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	case "warn":
		zapCfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	case "error":
		zapCfg.Level = zap.NewAtomicLevelAt(zap.ErrorLevel)
	}
	return zapCfg.Build()
}

func initDatabase(cfg config.DatabaseConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.DBName, cfg.SSLMode,
	)
	gormConfig := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	}
	db, err := gorm.Open(postgres.Open(dsn), gormConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	sqlDB.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)
	return db, nil
}

package main

import (
	"log"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/sarcaxticlarka/urbanmeet/config"
	"github.com/sarcaxticlarka/urbanmeet/internal/api"
	"github.com/sarcaxticlarka/urbanmeet/internal/handlers"
	"github.com/sarcaxticlarka/urbanmeet/internal/repositories"
	"github.com/sarcaxticlarka/urbanmeet/internal/services"
	"github.com/sarcaxticlarka/urbanmeet/internal/storage"
	"github.com/sarcaxticlarka/urbanmeet/internal/utils"
	"github.com/sarcaxticlarka/urbanmeet/middleware/jwt"
	logger "github.com/sarcaxticlarka/urbanmeet/middleware/log"
)

func main() {
	cfg, err := config.LoadConfig("./config.toml")
	if err != nil {
		log.Fatalf("配置初始化失败: %v", err)
	}

	// 初始化日志
	zlog, err := logger.NewLogger(&cfg.Logging)
	if err != nil {
		log.Fatalf("日志初始化失败: %v", err)
	}
	defer zlog.Close()

	// 初始化全局 Worker Pool (协程池)
	// 用于异步处理请求，防止高并发下 Goroutine 暴涨
	utils.InitGlobalWorkerPool(cfg.WorkerPool.Size, cfg.WorkerPool.QueueSize)

	// 初始化 PostgreSQL
	dsn := storage.BuildDSN(cfg.Postgres.Host, cfg.Postgres.Port, cfg.Postgres.User, cfg.Postgres.Password, cfg.Postgres.DBName)
	postgres, err := storage.InitPostgres(dsn, cfg.Postgres.MaxIdleConns, cfg.Postgres.MaxOpenConns)
	if err != nil {
		log.Fatalf("postgres 初始化失败: %v", err)
	}

	// 初始化 Redis
	redisClient, err := storage.InitRedis(cfg.Redis.Host, cfg.Redis.Port, cfg.Redis.Password, cfg.Redis.DB, cfg.Redis.PoolSize, cfg.Redis.MinIdleConns)
	if err != nil {
		log.Fatalf("redis 初始化失败: %v", err)
	}

	// 初始化仓储层
	userRepo := repositories.NewUserRepository(postgres)
	groupRepo := repositories.NewGroupRepository(postgres)
	eventRepo := repositories.NewEventRepository(postgres)
	commentRepo := repositories.NewCommentRepository(postgres)
	notificationRepo := repositories.NewNotificationRepository(postgres)
	resetTokenRepo := repositories.NewResetTokenRepository(postgres)

	// 初始化令牌管理器
	tokenManager := jwt.NewTokenManager(cfg.JWT.Secret, cfg.JWT.ExpireHours, cfg.JWT.RefreshHours)

	// 初始化服务层
	authService := services.NewAuthService(
		userRepo,
		resetTokenRepo,
		tokenManager,
		zlog,
		time.Duration(cfg.Auth.ResetTokenTTLMinutes)*time.Minute,
		cfg.Server.PublicURL,
	)
	userService := services.NewUserService(userRepo, notificationRepo)
	groupService := services.NewGroupService(groupRepo)
	eventService := services.NewEventService(eventRepo, groupRepo)
	commentService := services.NewCommentService(commentRepo, eventRepo)
	notificationService := services.NewNotificationService(notificationRepo)
	searchService := services.NewSearchService(eventRepo, groupRepo, userRepo)

	// 初始化处理器
	h := &api.Handlers{
		Auth:         handlers.NewAuthHandler(authService),
		User:         handlers.NewUserHandler(userService),
		Group:        handlers.NewGroupHandler(groupService),
		Event:        handlers.NewEventHandler(eventService),
		Comment:      handlers.NewCommentHandler(commentService),
		Notification: handlers.NewNotificationHandler(notificationService),
		Search:       handlers.NewSearchHandler(searchService),
	}

	mw := api.NewMiddlewareManager(tokenManager, redisClient, zlog.Logger, &cfg.RateLimit)

	// 配置并创建 Gin 引擎
	gin.SetMode(cfg.Server.Mode)

	r := gin.New()

	// 设置路由
	api.RegisterRoutes(r, h, mw)

	// 启动服务器
	log.Printf("正在启动服务器，监听端口 :%d\n", cfg.Server.Port)
	if err := r.Run(":" + strconv.FormatInt(int64(cfg.Server.Port), 10)); err != nil {
		log.Fatalf("启动服务器失败: %v", err)
	}
}

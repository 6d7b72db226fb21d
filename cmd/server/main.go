package main

import (
	"log"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jobsoutcuba/backend/internal/cache"
	"github.com/jobsoutcuba/backend/internal/config"
	"github.com/jobsoutcuba/backend/internal/database"
	"github.com/jobsoutcuba/backend/internal/handler"
	"github.com/jobsoutcuba/backend/internal/journal"
	"github.com/jobsoutcuba/backend/internal/middleware"
	"github.com/jobsoutcuba/backend/internal/repository"
	"github.com/jobsoutcuba/backend/internal/service"
	"github.com/jobsoutcuba/backend/internal/telegram"
	"github.com/jobsoutcuba/backend/pkg/logger"
	"go.uber.org/zap"
)

func main() {
	cfg := config.Load()

	if err := logger.Init(!cfg.IsProduction()); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	database.Connect(cfg)
	database.Migrate()

	redisClient, err := cache.NewClient(cfg.RedisURL)
	if err != nil {
		logger.Log.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	defer redisClient.Close()
	recentCache := cache.NewPublicacionCache(redisClient, cfg.PostingCacheTTL)

	jrnl, err := journal.New(cfg.JournalPath)
	if err != nil {
		logger.Log.Fatal("Failed to open broadcast journal", zap.Error(err))
	}
	defer jrnl.Close()

	// Repositories
	usuarioRepo := repository.NewUsuarioRepository(database.DB)
	trabajoRepo := repository.NewTrabajoRepository(database.DB)
	publicacionRepo := repository.NewPublicacionRepository(database.DB)
	guardadoRepo := repository.NewGuardadoRepository(database.DB)
	configRepo := repository.NewConfiguracionRepository(database.DB)
	ubicacionRepo := repository.NewUbicacionRepository(database.DB)

	// Telegram bot + verification code registry
	registry := telegram.NewCodeRegistry(cfg.CodeTTL)
	defer registry.Stop()

	bot, err := telegram.NewBot(cfg.TelegramBotToken, cfg.TelegramBotUsername, registry, configRepo, usuarioRepo)
	if err != nil {
		logger.Log.Fatal("Failed to initialize Telegram bot", zap.Error(err))
	}
	bot.Start()
	defer bot.Stop()

	// Services
	authService := service.NewAuthService(usuarioRepo, cfg.JWTSecret, cfg.JWTExpiry, cfg.RefreshExpiry)
	trabajoService := service.NewTrabajoService(trabajoRepo, usuarioRepo)
	publicacionService := service.NewPublicacionService(publicacionRepo, trabajoRepo, recentCache)
	guardadoService := service.NewGuardadoService(guardadoRepo, publicacionRepo)
	usuarioService := service.NewUsuarioService(usuarioRepo)
	ubicacionService := service.NewUbicacionService(ubicacionRepo)
	telegramService := service.NewTelegramService(registry, configRepo, usuarioRepo, bot, bot, cfg.CodeTTL)
	notificationService := service.NewNotificationService(configRepo, bot, jrnl, cfg.BroadcastBatchSize, cfg.BroadcastBatchDelay)

	// Handlers
	authHandler := handler.NewAuthHandler(authService)
	trabajoHandler := handler.NewTrabajoHandler(trabajoService)
	publicacionHandler := handler.NewPublicacionHandler(publicacionService)
	guardadoHandler := handler.NewGuardadoHandler(guardadoService)
	telegramHandler := handler.NewTelegramHandler(telegramService)
	adminHandler := handler.NewAdminHandler(notificationService, usuarioService, jrnl)
	ubicacionHandler := handler.NewUbicacionHandler(ubicacionService)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())

	router.Use(middleware.SecurityHeadersMiddleware())
	router.Use(middleware.HSTSMiddleware(cfg.IsProduction()))
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: false,
	}))

	rateLimiter := middleware.NewRateLimiter(redisClient, middleware.RateLimiterConfig{
		MaxRequests: cfg.RateLimitMaxRequests,
		Window:      cfg.RateLimitWindow,
	})
	router.Use(rateLimiter.Middleware())

	requireAuth := middleware.AuthMiddleware(cfg.JWTSecret)
	optionalAuth := middleware.OptionalAuthMiddleware(cfg.JWTSecret)

	api := router.Group("/api")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
			auth.POST("/refresh", authHandler.Refresh)
			auth.GET("/disponible/:username", authHandler.UsernameDisponible)
			auth.GET("/perfil", requireAuth, authHandler.Perfil)
			auth.PUT("/password", requireAuth, authHandler.ChangePassword)
		}

		trabajos := api.Group("/trabajos")
		{
			trabajos.GET("", optionalAuth, trabajoHandler.List)
			trabajos.GET("/estadisticas", requireAuth, trabajoHandler.Estadisticas)
			trabajos.GET("/usuario/:id", optionalAuth, trabajoHandler.ListByUsuario)
			trabajos.GET("/:id", optionalAuth, trabajoHandler.GetByID)
			trabajos.POST("", requireAuth, trabajoHandler.Create)
			trabajos.PUT("/:id", requireAuth, trabajoHandler.Update)
			trabajos.DELETE("/:id", requireAuth, trabajoHandler.Delete)
			trabajos.POST("/:id/publicar", requireAuth, trabajoHandler.Publicar)
			trabajos.POST("/:id/archivar", requireAuth, trabajoHandler.Archivar)
			trabajos.POST("/:id/contactos", requireAuth, trabajoHandler.AgregarContacto)
			trabajos.DELETE("/:id/contactos", requireAuth, trabajoHandler.EliminarContacto)
		}

		publicaciones := api.Group("/publicaciones")
		{
			publicaciones.GET("", publicacionHandler.List)
			publicaciones.GET("/mis-publicaciones", requireAuth, publicacionHandler.ListMine)
			publicaciones.GET("/estadisticas", requireAuth, publicacionHandler.Estadisticas)
			publicaciones.GET("/:id", optionalAuth, publicacionHandler.GetByID)
			publicaciones.POST("", requireAuth, publicacionHandler.Crear)
			publicaciones.PUT("/:id", requireAuth, publicacionHandler.Actualizar)
			publicaciones.DELETE("/:id", requireAuth, publicacionHandler.Eliminar)
			publicaciones.POST("/republicar", requireAuth, publicacionHandler.Republicar)
		}

		guardados := api.Group("/guardados", requireAuth)
		{
			guardados.POST("", guardadoHandler.Guardar)
			guardados.GET("", guardadoHandler.List)
			guardados.DELETE("/:id", guardadoHandler.Eliminar)
			guardados.GET("/:id/verificar", guardadoHandler.Verificar)
		}

		tg := api.Group("/telegram", requireAuth)
		{
			tg.POST("/activate", telegramHandler.Activate)
			tg.POST("/deactivate", telegramHandler.Deactivate)
			tg.GET("/status", telegramHandler.Status)
			tg.POST("/test", telegramHandler.SendTest)
			tg.PUT("/settings", telegramHandler.UpdateSettings)
		}

		admin := api.Group("/admin", requireAuth, middleware.AdminMiddleware())
		{
			admin.POST("/notifications", adminHandler.Broadcast)
			admin.GET("/usuarios", adminHandler.ListUsuarios)
			admin.DELETE("/usuarios/:id", adminHandler.DeleteUsuario)
			admin.POST("/usuarios/:id/restore", adminHandler.RestoreUsuario)
			admin.GET("/logs", adminHandler.Logs)
		}

		ubicaciones := api.Group("/ubicaciones")
		{
			ubicaciones.GET("/provincias", ubicacionHandler.ListProvincias)
			ubicaciones.GET("/provincias/:id", ubicacionHandler.GetProvincia)
			ubicaciones.GET("/municipios", ubicacionHandler.ListMunicipios)
		}
	}

	port := cfg.ServerPort
	if port == "" {
		port = ":8080"
	}

	logger.Log.Info("Server starting",
		zap.String("port", port),
		zap.String("environment", cfg.Environment),
		zap.Bool("telegram_bot", bot.IsActive()),
	)
	if err := router.Run(port); err != nil {
		logger.Log.Fatal("Server failed", zap.Error(err))
	}
}

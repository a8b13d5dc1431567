package main

import (
	"context"
	"time"

	"ventas-service/internal/cache"
	"ventas-service/internal/config"
	"ventas-service/internal/database"
	"ventas-service/internal/handlers"
	"ventas-service/internal/middleware"
	"ventas-service/internal/repository"
	"ventas-service/internal/routes"
	"ventas-service/internal/services"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	// Configuración
	cfg, err := config.Load()
	if err != nil {
		panic("Error cargando configuración: " + err.Error())
	}

	// Logger estructurado
	var logger *zap.Logger
	if cfg.Server.GinMode == "debug" {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		panic("Error inicializando logger: " + err.Error())
	}
	defer logger.Sync()

	gin.SetMode(cfg.Server.GinMode)

	// Conexiones
	postgresDB, err := database.NewPostgresDB(cfg.Database, logger)
	if err != nil {
		logger.Fatal("Error conectando a PostgreSQL", zap.Error(err))
	}
	defer postgresDB.Close()

	redisDB, err := database.NewRedisDB(cfg.Redis, logger)
	if err != nil {
		logger.Fatal("Error conectando a Redis", zap.Error(err))
	}
	defer redisDB.Close()

	// Repositories
	articuloRepo, err := repository.NewArticuloRepository(postgresDB.DB)
	if err != nil {
		logger.Fatal("Error inicializando repository de artículos", zap.Error(err))
	}
	clienteRepo, err := repository.NewClienteRepository(postgresDB.DB)
	if err != nil {
		logger.Fatal("Error inicializando repository de clientes", zap.Error(err))
	}
	ventaRepo, err := repository.NewVentaRepository(postgresDB.DB)
	if err != nil {
		logger.Fatal("Error inicializando repository de ventas", zap.Error(err))
	}
	cobroRepo, err := repository.NewCobroRepository(postgresDB.DB)
	if err != nil {
		logger.Fatal("Error inicializando repository de cobros", zap.Error(err))
	}
	usuarioRepo, err := repository.NewUsuarioRepository(postgresDB.DB)
	if err != nil {
		logger.Fatal("Error inicializando repository de usuarios", zap.Error(err))
	}

	// Caché de reportes
	reportCache := cache.NewReportCache(redisDB.Client, 100, 5*time.Minute, logger)

	// Services
	articuloService := services.NewArticuloService(articuloRepo, logger)
	clienteService := services.NewClienteService(clienteRepo, logger)
	ventaService := services.NewVentaService(ventaRepo, cobroRepo, articuloRepo, clienteRepo, reportCache, logger)
	reporteService := services.NewReporteService(ventaRepo, cobroRepo, articuloRepo, clienteRepo, logger)
	authService := services.NewAuthService(usuarioRepo, cfg.JWT, logger)
	if err := authService.SeedUsuarioInicial(context.Background(), cfg.Admin); err != nil {
		logger.Fatal("Error creando usuario inicial", zap.Error(err))
	}
	monitoringService := services.NewMonitoringService(cfg, redisDB.Client, postgresDB.DB, reportCache)

	// Handlers
	authHandler := handlers.NewAuthHandler(authService, logger)
	articuloHandler := handlers.NewArticuloHandler(articuloService, logger)
	clienteHandler := handlers.NewClienteHandler(clienteService, logger)
	ventaHandler := handlers.NewVentaHandler(ventaService, logger)
	reporteHandler := handlers.NewReporteHandler(reporteService, reportCache, logger)
	monitoringHandler := handlers.NewMonitoringHandler(monitoringService, logger)
	healthChecker := middleware.NewHealthChecker(postgresDB, redisDB, logger)

	// Router y middleware globales
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware(logger))
	router.Use(middleware.RequestIDMiddleware())

	middleware.InitMetrics()
	router.Use(middleware.PrometheusMiddleware())
	router.Use(middleware.MonitoringMiddleware(monitoringService))

	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORS.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
	}))

	routes.SetupRoutes(
		router,
		middleware.AuthMiddleware(authService),
		authHandler,
		articuloHandler,
		clienteHandler,
		ventaHandler,
		reporteHandler,
		monitoringHandler,
		healthChecker,
	)

	middleware.ServerInfo(cfg.Server.Port, logger)

	if err := router.Run(":" + cfg.Server.Port); err != nil {
		logger.Fatal("Error iniciando servidor", zap.Error(err))
	}
}

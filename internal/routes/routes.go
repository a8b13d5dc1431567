package routes

import (
	"ventas-service/internal/handlers"
	"ventas-service/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// SetupRoutes configura todas las rutas de la aplicación. Todo lo que vive
// bajo /api/v1 excepto el login requiere un JWT válido.
func SetupRoutes(
	router *gin.Engine,
	authMiddleware gin.HandlerFunc,
	authHandler *handlers.AuthHandler,
	articuloHandler *handlers.ArticuloHandler,
	clienteHandler *handlers.ClienteHandler,
	ventaHandler *handlers.VentaHandler,
	reporteHandler *handlers.ReporteHandler,
	monitoringHandler *handlers.MonitoringHandler,
	healthChecker *middleware.HealthChecker,
) {
	// API v1 group
	v1 := router.Group("/api/v1")
	{
		// Auth (público)
		auth := v1.Group("/auth")
		{
			auth.POST("/login", authHandler.Login)
		}

		// El resto del API requiere sesión
		protegido := v1.Group("")
		protegido.Use(authMiddleware)
		{
			// Artículos (inventario)
			articulos := protegido.Group("/articulos")
			{
				articulos.GET("", articuloHandler.List)
				articulos.GET("/stock-bajo", articuloHandler.StockBajo)
				articulos.GET("/codigo/:codigo", articuloHandler.GetByCodigo)
				articulos.GET("/:id", articuloHandler.GetByID)
				articulos.POST("", articuloHandler.Create)
				articulos.PUT("/:id", articuloHandler.Update)
				articulos.DELETE("/:id", articuloHandler.Delete)
			}

			// Clientes
			clientes := protegido.Group("/clientes")
			{
				clientes.GET("", clienteHandler.List)
				clientes.GET("/:id", clienteHandler.GetByID)
				clientes.POST("", clienteHandler.Create)
				clientes.PUT("/:id", clienteHandler.Update)
				clientes.DELETE("/:id", clienteHandler.Delete)
			}

			// Ventas y cobros
			ventas := protegido.Group("/ventas")
			{
				ventas.GET("", ventaHandler.List)
				ventas.GET("/:id", ventaHandler.GetByID)
				ventas.POST("", ventaHandler.Create)
				ventas.DELETE("/:id", ventaHandler.Delete)
				ventas.POST("/:id/cobros", ventaHandler.RegistrarCobro)
			}
			protegido.DELETE("/cobros/:id", ventaHandler.DeleteCobro)

			// Reportes
			reportes := protegido.Group("/reportes")
			{
				reportes.GET("/ventas", reporteHandler.Ventas)
				reportes.GET("/ventas/resumen", reporteHandler.ResumenVentas)
				reportes.GET("/ventas/csv", reporteHandler.ExportarVentasCSV)
				reportes.GET("/liquidaciones", reporteHandler.Liquidaciones)
				reportes.GET("/cobranza", reporteHandler.ResumenCobranza)
				reportes.GET("/pagos", reporteHandler.Pagos)
				reportes.GET("/pendientes", reporteHandler.VentasPendientes)
				reportes.GET("/top-clientes", reporteHandler.TopClientes)
				reportes.GET("/clientes-con-deuda", reporteHandler.ClientesConDeuda)
				reportes.GET("/clientes/csv", reporteHandler.ExportarClientesCSV)
				reportes.GET("/articulos-mas-vendidos", reporteHandler.ArticulosMasVendidos)
				reportes.GET("/etiquetas", reporteHandler.Etiquetas)
			}

			// Dashboard
			protegido.GET("/dashboard", reporteHandler.Dashboard)

			// Monitoring interno
			monitoring := protegido.Group("/monitoring")
			{
				monitoring.GET("/metrics", monitoringHandler.GetMetrics)
				monitoring.GET("/ws", monitoringHandler.WebSocketMetrics)
			}
		}
	}

	// Health check en raíz
	router.GET("/health", healthChecker.HealthCheck)

	// Métricas Prometheus
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// API info en raíz
	router.GET("/", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "Ventas Service API",
			"version": "1.0.0",
			"status":  "running",
			"endpoints": gin.H{
				"health":  "/health",
				"metrics": "/metrics",
				"api":     "/api/v1",
				"auth":    "POST /api/v1/auth/login",
				"ventas": gin.H{
					"listado":  "GET /api/v1/ventas",
					"crear":    "POST /api/v1/ventas",
					"detalle":  "GET /api/v1/ventas/:id",
					"cobro":    "POST /api/v1/ventas/:id/cobros",
					"reportes": "GET /api/v1/reportes/ventas",
				},
				"dashboard": "GET /api/v1/dashboard",
			},
		})
	})
}

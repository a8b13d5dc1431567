package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"ventas-service/internal/cache"
	"ventas-service/internal/models"
	"ventas-service/internal/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ReporteHandler maneja las peticiones HTTP de reportes, dashboard y
// exportaciones. Las respuestas JSON se sirven desde el caché de reportes
// cuando hay una versión vigente.
type ReporteHandler struct {
	service services.ReporteService
	cache   *cache.ReportCache
	logger  *zap.Logger
}

// NewReporteHandler crea una nueva instancia del handler
func NewReporteHandler(service services.ReporteService, reportCache *cache.ReportCache, logger *zap.Logger) *ReporteHandler {
	return &ReporteHandler{
		service: service,
		cache:   reportCache,
		logger:  logger,
	}
}

// filtroDeQuery extrae el filtro de período de los query params
func filtroDeQuery(c *gin.Context) (filtro string, inicio, fin time.Time) {
	filtro = c.DefaultQuery("periodo", models.PeriodoTodos)
	if v := c.Query("fecha_inicio"); v != "" {
		inicio, _ = time.ParseInLocation("2006-01-02", v, time.Local)
	}
	if v := c.Query("fecha_fin"); v != "" {
		fin, _ = time.ParseInLocation("2006-01-02", v, time.Local)
	}
	return filtro, inicio, fin
}

// responderConCache sirve el payload cacheado si existe, o genera el
// reporte, lo cachea y lo responde
func (h *ReporteHandler) responderConCache(c *gin.Context, genera func() (interface{}, error)) {
	key := c.Request.URL.Path
	if c.Request.URL.RawQuery != "" {
		key += "?" + c.Request.URL.RawQuery
	}

	ctx := c.Request.Context()
	if h.cache != nil {
		if payload, ok := h.cache.Get(ctx, key); ok {
			c.Data(http.StatusOK, "application/json; charset=utf-8", payload)
			return
		}
	}

	data, err := genera()
	if err != nil {
		responderError(c, h.logger, err)
		return
	}

	payload, err := json.Marshal(gin.H{
		"success": true,
		"data":    data,
	})
	if err != nil {
		responderError(c, h.logger, err)
		return
	}

	if h.cache != nil {
		if err := h.cache.Set(ctx, key, payload); err != nil {
			h.logger.Warn("⚠️ No se pudo cachear el reporte",
				zap.String("reporte", key),
				zap.Error(err))
		}
	}

	c.Data(http.StatusOK, "application/json; charset=utf-8", payload)
}

// Ventas maneja GET /reportes/ventas agrupado por ciudad y cliente, con
// filtro opcional por estado
func (h *ReporteHandler) Ventas(c *gin.Context) {
	filtro, inicio, fin := filtroDeQuery(c)
	h.responderConCache(c, func() (interface{}, error) {
		return h.service.ReporteVentas(c.Request.Context(), filtro, inicio, fin, c.Query("estado"))
	})
}

// ResumenVentas maneja GET /reportes/ventas/resumen
func (h *ReporteHandler) ResumenVentas(c *gin.Context) {
	filtro, inicio, fin := filtroDeQuery(c)
	h.responderConCache(c, func() (interface{}, error) {
		return h.service.ResumenVentas(c.Request.Context(), filtro, inicio, fin)
	})
}

// Liquidaciones maneja GET /reportes/liquidaciones
func (h *ReporteHandler) Liquidaciones(c *gin.Context) {
	filtro, inicio, fin := filtroDeQuery(c)
	h.responderConCache(c, func() (interface{}, error) {
		return h.service.ResumenLiquidaciones(c.Request.Context(), filtro, inicio, fin)
	})
}

// ResumenCobranza maneja GET /reportes/cobranza
func (h *ReporteHandler) ResumenCobranza(c *gin.Context) {
	h.responderConCache(c, func() (interface{}, error) {
		return h.service.ResumenCobranza(c.Request.Context())
	})
}

// Pagos maneja GET /reportes/pagos
func (h *ReporteHandler) Pagos(c *gin.Context) {
	filtro, inicio, fin := filtroDeQuery(c)
	h.responderConCache(c, func() (interface{}, error) {
		return h.service.ListPagos(c.Request.Context(), filtro, inicio, fin)
	})
}

// VentasPendientes maneja GET /reportes/pendientes
func (h *ReporteHandler) VentasPendientes(c *gin.Context) {
	h.responderConCache(c, func() (interface{}, error) {
		return h.service.VentasPendientes(c.Request.Context())
	})
}

// TopClientes maneja GET /reportes/top-clientes
func (h *ReporteHandler) TopClientes(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	h.responderConCache(c, func() (interface{}, error) {
		return h.service.TopClientes(c.Request.Context(), limit)
	})
}

// ClientesConDeuda maneja GET /reportes/clientes-con-deuda
func (h *ReporteHandler) ClientesConDeuda(c *gin.Context) {
	h.responderConCache(c, func() (interface{}, error) {
		return h.service.ClientesConDeuda(c.Request.Context())
	})
}

// ArticulosMasVendidos maneja GET /reportes/articulos-mas-vendidos
func (h *ReporteHandler) ArticulosMasVendidos(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	h.responderConCache(c, func() (interface{}, error) {
		return h.service.ArticulosMasVendidos(c.Request.Context(), limit)
	})
}

// Dashboard maneja GET /dashboard
func (h *ReporteHandler) Dashboard(c *gin.Context) {
	filtro, inicio, fin := filtroDeQuery(c)
	h.responderConCache(c, func() (interface{}, error) {
		return h.service.Dashboard(c.Request.Context(), filtro, inicio, fin)
	})
}

// Etiquetas maneja GET /reportes/etiquetas agrupadas por ciudad
func (h *ReporteHandler) Etiquetas(c *gin.Context) {
	filtro, inicio, fin := filtroDeQuery(c)
	h.responderConCache(c, func() (interface{}, error) {
		return h.service.EtiquetasVentas(c.Request.Context(), filtro, inicio, fin)
	})
}

// ExportarVentasCSV maneja GET /reportes/ventas/csv como descarga
func (h *ReporteHandler) ExportarVentasCSV(c *gin.Context) {
	filtro, inicio, fin := filtroDeQuery(c)

	csvData, err := h.service.ExportarVentasCSV(c.Request.Context(), filtro, inicio, fin, c.Query("estado"))
	if err != nil {
		responderError(c, h.logger, err)
		return
	}

	nombre := fmt.Sprintf("reporte_ventas_%s.csv", time.Now().Format("2006-01-02"))
	c.Header("Content-Disposition", "attachment; filename="+nombre)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", csvData)
}

// ExportarClientesCSV maneja GET /reportes/clientes/csv como descarga
func (h *ReporteHandler) ExportarClientesCSV(c *gin.Context) {
	csvData, err := h.service.ExportarClientesCSV(c.Request.Context())
	if err != nil {
		responderError(c, h.logger, err)
		return
	}

	nombre := fmt.Sprintf("reporte_clientes_%s.csv", time.Now().Format("2006-01-02"))
	c.Header("Content-Disposition", "attachment; filename="+nombre)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", csvData)
}

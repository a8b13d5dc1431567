package handlers

import (
	"net/http"

	"ventas-service/internal/models"
	"ventas-service/internal/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// VentaHandler maneja las peticiones HTTP de ventas y cobros
type VentaHandler struct {
	service services.VentaService
	logger  *zap.Logger
}

// NewVentaHandler crea una nueva instancia del handler
func NewVentaHandler(service services.VentaService, logger *zap.Logger) *VentaHandler {
	return &VentaHandler{
		service: service,
		logger:  logger,
	}
}

// List maneja GET /ventas con búsqueda por cliente y paginación
func (h *VentaHandler) List(c *gin.Context) {
	resultado, err := h.service.List(c.Request.Context(), c.Query("search"), paginacionDeQuery(c))
	if err != nil {
		responderError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    resultado.Items,
		"pagination": gin.H{
			"page":        resultado.Page,
			"limit":       resultado.Limit,
			"total":       resultado.Total,
			"total_pages": resultado.TotalPages,
		},
	})
}

// GetByID maneja GET /ventas/:id con cliente, detalles y cobros
func (h *VentaHandler) GetByID(c *gin.Context) {
	id, ok := idDeRuta(c)
	if !ok {
		return
	}

	venta, err := h.service.GetDetalle(c.Request.Context(), id)
	if err != nil {
		responderError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    venta,
		"totales": gin.H{
			"total":     venta.Total(),
			"cobrado":   venta.TotalCobrado(),
			"pendiente": venta.Total() - venta.TotalCobrado(),
		},
	})
}

// Create maneja POST /ventas
func (h *VentaHandler) Create(c *gin.Context) {
	var req models.CrearVentaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Error en el formato de datos",
			"error":   err.Error(),
		})
		return
	}

	resp, err := h.service.Crear(c.Request.Context(), &req)
	if err != nil {
		responderError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// Delete maneja DELETE /ventas/:id
func (h *VentaHandler) Delete(c *gin.Context) {
	id, ok := idDeRuta(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		responderError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Venta eliminada exitosamente",
	})
}

// RegistrarCobro maneja POST /ventas/:id/cobros
func (h *VentaHandler) RegistrarCobro(c *gin.Context) {
	id, ok := idDeRuta(c)
	if !ok {
		return
	}

	var req models.CobroRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Error en el formato de datos",
			"error":   err.Error(),
		})
		return
	}

	resp, err := h.service.RegistrarCobro(c.Request.Context(), id, &req)
	if err != nil {
		responderError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// DeleteCobro maneja DELETE /cobros/:id
func (h *VentaHandler) DeleteCobro(c *gin.Context) {
	id, ok := idDeRuta(c)
	if !ok {
		return
	}

	resultado, err := h.service.DeleteCobro(c.Request.Context(), id)
	if err != nil {
		responderError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Cobro eliminado exitosamente",
		"data":    resultado,
	})
}

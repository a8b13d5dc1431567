package handlers

import (
	"net/http"

	"ventas-service/internal/models"
	"ventas-service/internal/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ArticuloHandler maneja las peticiones HTTP de artículos
type ArticuloHandler struct {
	service services.ArticuloService
	logger  *zap.Logger
}

// NewArticuloHandler crea una nueva instancia del handler
func NewArticuloHandler(service services.ArticuloService, logger *zap.Logger) *ArticuloHandler {
	return &ArticuloHandler{
		service: service,
		logger:  logger,
	}
}

// List maneja GET /articulos con búsqueda y paginación. Con all=true
// retorna el inventario completo sin paginar.
func (h *ArticuloHandler) List(c *gin.Context) {
	if c.Query("all") == "true" {
		articulos, err := h.service.ListAll(c.Request.Context())
		if err != nil {
			responderError(c, h.logger, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"data":    articulos,
		})
		return
	}

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

// GetByID maneja GET /articulos/:id
func (h *ArticuloHandler) GetByID(c *gin.Context) {
	id, ok := idDeRuta(c)
	if !ok {
		return
	}

	articulo, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		responderError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    articulo,
		"margen":  articulo.MargenGanancia(),
	})
}

// GetByCodigo maneja GET /articulos/codigo/:codigo
func (h *ArticuloHandler) GetByCodigo(c *gin.Context) {
	articulo, err := h.service.GetByCodigo(c.Request.Context(), c.Param("codigo"))
	if err != nil {
		responderError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    articulo,
	})
}

// Create maneja POST /articulos
func (h *ArticuloHandler) Create(c *gin.Context) {
	var req models.ArticuloRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Error en el formato de datos",
			"error":   err.Error(),
		})
		return
	}

	articulo, err := h.service.Create(c.Request.Context(), &req)
	if err != nil {
		responderError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Artículo creado exitosamente",
		"data":    articulo,
	})
}

// Update maneja PUT /articulos/:id
func (h *ArticuloHandler) Update(c *gin.Context) {
	id, ok := idDeRuta(c)
	if !ok {
		return
	}

	var req models.ArticuloRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Error en el formato de datos",
			"error":   err.Error(),
		})
		return
	}

	articulo, err := h.service.Update(c.Request.Context(), id, &req)
	if err != nil {
		responderError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Artículo actualizado exitosamente",
		"data":    articulo,
	})
}

// Delete maneja DELETE /articulos/:id
func (h *ArticuloHandler) Delete(c *gin.Context) {
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
		"message": "Artículo eliminado exitosamente",
	})
}

// StockBajo maneja GET /articulos/stock-bajo
func (h *ArticuloHandler) StockBajo(c *gin.Context) {
	articulos, err := h.service.GetStockBajo(c.Request.Context())
	if err != nil {
		responderError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    articulos,
		"total":   len(articulos),
	})
}

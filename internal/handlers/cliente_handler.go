package handlers

import (
	"net/http"

	"ventas-service/internal/models"
	"ventas-service/internal/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ClienteHandler maneja las peticiones HTTP de clientes
type ClienteHandler struct {
	service services.ClienteService
	logger  *zap.Logger
}

// NewClienteHandler crea una nueva instancia del handler
func NewClienteHandler(service services.ClienteService, logger *zap.Logger) *ClienteHandler {
	return &ClienteHandler{
		service: service,
		logger:  logger,
	}
}

// List maneja GET /clientes con búsqueda y paginación. Con tipo=VIP (o
// Normal, Mayorista) filtra por tipo sin paginar.
func (h *ClienteHandler) List(c *gin.Context) {
	if tipo := c.Query("tipo"); tipo != "" {
		clientes, err := h.service.ListByTipo(c.Request.Context(), tipo)
		if err != nil {
			responderError(c, h.logger, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"data":    clientes,
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

// GetByID maneja GET /clientes/:id
func (h *ClienteHandler) GetByID(c *gin.Context) {
	id, ok := idDeRuta(c)
	if !ok {
		return
	}

	cliente, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		responderError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    cliente,
	})
}

// Create maneja POST /clientes
func (h *ClienteHandler) Create(c *gin.Context) {
	var req models.ClienteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Error en el formato de datos",
			"error":   err.Error(),
		})
		return
	}

	cliente, err := h.service.Create(c.Request.Context(), &req)
	if err != nil {
		responderError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Cliente creado exitosamente",
		"data":    cliente,
	})
}

// Update maneja PUT /clientes/:id
func (h *ClienteHandler) Update(c *gin.Context) {
	id, ok := idDeRuta(c)
	if !ok {
		return
	}

	var req models.ClienteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Error en el formato de datos",
			"error":   err.Error(),
		})
		return
	}

	cliente, err := h.service.Update(c.Request.Context(), id, &req)
	if err != nil {
		responderError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Cliente actualizado exitosamente",
		"data":    cliente,
	})
}

// Delete maneja DELETE /clientes/:id
func (h *ClienteHandler) Delete(c *gin.Context) {
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
		"message": "Cliente eliminado exitosamente",
	})
}

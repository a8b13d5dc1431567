package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"ventas-service/internal/models"
	"ventas-service/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// responderError traduce los errores de negocio a códigos HTTP con el
// formato de respuesta estándar del servicio. Los fallos de validación de
// campos conservan el detalle del validador en el mensaje.
func responderError(c *gin.Context, logger *zap.Logger, err error) {
	var errsValidacion validator.ValidationErrors
	switch {
	case errors.As(err, &errsValidacion):
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": err.Error(),
		})
	case errors.Is(err, services.ErrArticuloNoEncontrado),
		errors.Is(err, services.ErrClienteNoEncontrado),
		errors.Is(err, services.ErrVentaNoEncontrada),
		errors.Is(err, services.ErrCobroNoEncontrado):
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"message": err.Error(),
		})
	case errors.Is(err, services.ErrCodigoDuplicado),
		errors.Is(err, services.ErrClienteDuplicado),
		errors.Is(err, services.ErrStockInsuficiente),
		errors.Is(err, services.ErrLiquidacionInvalida),
		errors.Is(err, services.ErrBancoRequerido),
		errors.Is(err, services.ErrMontoInvalido):
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": err.Error(),
		})
	default:
		logger.Error("❌ Error interno", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Error interno del servidor",
		})
	}
}

// idDeRuta parsea el parámetro :id de la ruta
func idDeRuta(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "ID inválido",
		})
		return 0, false
	}
	return id, true
}

// paginacionDeQuery arma la paginación desde los query params page y limit
func paginacionDeQuery(c *gin.Context) models.Paginacion {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	return models.NuevaPaginacion(page, limit)
}

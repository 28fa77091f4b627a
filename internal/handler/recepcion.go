package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Restaurante-SanFrancisco/RestauranteSanFrancisco/internal/apierror"
	"github.com/Restaurante-SanFrancisco/RestauranteSanFrancisco/internal/dto"
	"github.com/Restaurante-SanFrancisco/RestauranteSanFrancisco/internal/middleware"
	"github.com/Restaurante-SanFrancisco/RestauranteSanFrancisco/internal/service"
)

// RecepcionHandler serves the reception panel: deferred-charge ledgers and the
// pending invoice queue.
type RecepcionHandler struct{ svc service.RecepcionService }

func NewRecepcionHandler(svc service.RecepcionService) *RecepcionHandler {
	return &RecepcionHandler{svc: svc}
}

func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return 0, false
	}
	return id, true
}

// ListarHabitaciones godoc
// @Summary Cargos a habitacion pendientes
// @Tags recepcion
// @Produce json
// @Security BearerAuth
// @Param fecha query string false "Fecha YYYY-MM-DD"
// @Success 200 {array} dto.CargoResponse
// @Router /v1/recepcion/habitaciones [get]
func (h *RecepcionHandler) ListarHabitaciones(c *gin.Context) {
	var filter dto.CargoFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	resp, err := h.svc.ListarHabitaciones(c.Request.Context(), filter.Fecha)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *RecepcionHandler) ListarEmpleados(c *gin.Context) {
	var filter dto.CargoFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	resp, err := h.svc.ListarEmpleados(c.Request.Context(), filter.Fecha)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *RecepcionHandler) ListarEventos(c *gin.Context) {
	var filter dto.CargoFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	resp, err := h.svc.ListarEventos(c.Request.Context(), filter.Fecha)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// CobrarHabitacion godoc
// @Summary Cobrar cargo a habitacion
// @Description Liquida el cargo al hacer checkout; opcionalmente emite factura con el NIT entregado.
// @Tags recepcion
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID del cargo"
// @Param body body dto.CobrarCargoRequest true "Metodo de pago real"
// @Success 204
// @Failure 404 {object} apierror.APIError
// @Router /v1/recepcion/habitaciones/{id}/cobrar [post]
func (h *RecepcionHandler) CobrarHabitacion(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req dto.CobrarCargoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)
	if err := h.svc.CobrarHabitacion(c.Request.Context(), id, claims.Nombre, req); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *RecepcionHandler) CobrarEmpleado(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.svc.CobrarEmpleado(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *RecepcionHandler) CobrarEvento(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.svc.CobrarEvento(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ── Facturas ─────────────────────────────────────────────────────────────────

// ListarFacturas godoc
// @Summary Facturas pendientes de emision
// @Tags recepcion
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.FacturaResponse
// @Router /v1/recepcion/facturas [get]
func (h *RecepcionHandler) ListarFacturas(c *gin.Context) {
	resp, err := h.svc.ListarFacturasPendientes(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *RecepcionHandler) MarcarFacturada(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req dto.MarcarFacturadaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	if err := h.svc.MarcarFacturada(c.Request.Context(), id, req.Facturado); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *RecepcionHandler) EliminarFactura(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.svc.EliminarFactura(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

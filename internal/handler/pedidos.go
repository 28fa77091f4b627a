package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Restaurante-SanFrancisco/RestauranteSanFrancisco/internal/dto"
	"github.com/Restaurante-SanFrancisco/RestauranteSanFrancisco/internal/middleware"
	"github.com/Restaurante-SanFrancisco/RestauranteSanFrancisco/internal/service"
)

// PedidosHandler serves the waiter panel: the per-user draft and the dispatch
// that turns a draft into a kitchen order.
type PedidosHandler struct {
	borradores service.BorradorService
	despacho   service.DespachoService
}

func NewPedidosHandler(borradores service.BorradorService, despacho service.DespachoService) *PedidosHandler {
	return &PedidosHandler{borradores: borradores, despacho: despacho}
}

// VerBorrador godoc
// @Summary Borrador actual del mesero
// @Tags pedidos
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.BorradorResponse
// @Router /v1/borrador [get]
func (h *PedidosHandler) VerBorrador(c *gin.Context) {
	claims := middleware.GetClaims(c)
	c.JSON(http.StatusOK, h.borradores.Ver(c.Request.Context(), claims.UserID))
}

// AgregarItem godoc
// @Summary Agregar linea al borrador
// @Description Misma combinacion platillo+opciones colapsa cantidades; una nota distinta no separa la linea.
// @Tags pedidos
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.AgregarItemRequest true "Linea"
// @Success 200 {object} dto.BorradorResponse
// @Failure 422 {object} apierror.APIError
// @Router /v1/borrador/items [post]
func (h *PedidosHandler) AgregarItem(c *gin.Context) {
	var req dto.AgregarItemRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)
	resp, err := h.borradores.Agregar(c.Request.Context(), claims.UserID, req.Item)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *PedidosHandler) QuitarItem(c *gin.Context) {
	var req dto.QuitarItemRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)
	c.JSON(http.StatusOK, h.borradores.Quitar(c.Request.Context(), claims.UserID, req))
}

func (h *PedidosHandler) CambiarCantidad(c *gin.Context) {
	var req dto.CantidadItemRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)
	c.JSON(http.StatusOK, h.borradores.Cantidad(c.Request.Context(), claims.UserID, req))
}

func (h *PedidosHandler) LimpiarBorrador(c *gin.Context) {
	claims := middleware.GetClaims(c)
	h.borradores.Limpiar(claims.UserID)
	c.Status(http.StatusNoContent)
}

// Despachar godoc
// @Summary Despachar pedido a cocina
// @Description Destino libre abre pedido nuevo. Destino ocupado requiere confirmar_agregado=true; sin confirmacion responde 409.
// @Tags pedidos
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.DespacharRequest true "Destino y lineas"
// @Success 201 {object} dto.PedidoResponse
// @Failure 409 {object} apierror.APIError
// @Failure 422 {object} apierror.APIError
// @Router /v1/pedidos [post]
func (h *PedidosHandler) Despachar(c *gin.Context) {
	var req dto.DespacharRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)

	resp, err := h.despacho.Despachar(c.Request.Context(), claims.Nombre, req)
	if err != nil {
		respondError(c, err)
		return
	}
	// The draft is spent once its lines reach the kitchen.
	h.borradores.Limpiar(claims.UserID)
	c.JSON(http.StatusCreated, resp)
}

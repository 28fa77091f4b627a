package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Restaurante-SanFrancisco/RestauranteSanFrancisco/internal/dto"
	"github.com/Restaurante-SanFrancisco/RestauranteSanFrancisco/internal/middleware"
	"github.com/Restaurante-SanFrancisco/RestauranteSanFrancisco/internal/service"
)

type PagosHandler struct{ svc service.PagoService }

func NewPagosHandler(svc service.PagoService) *PagosHandler { return &PagosHandler{svc: svc} }

// Cobrar godoc
// @Summary Cobrar el pedido activo de un destino
// @Description Cierra el pedido exactamente una vez, libera el destino y registra el cargo diferido o la factura segun el metodo. El cobro queda atribuido a quien lo realiza.
// @Tags pagos
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.CobrarRequest true "Destino, metodo de pago y datos de facturacion"
// @Success 200 {object} dto.CobroResponse
// @Failure 404 {object} apierror.APIError
// @Failure 422 {object} apierror.APIError
// @Router /v1/pagos [post]
func (h *PagosHandler) Cobrar(c *gin.Context) {
	var req dto.CobrarRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)
	resp, err := h.svc.Cobrar(c.Request.Context(), claims.Nombre, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

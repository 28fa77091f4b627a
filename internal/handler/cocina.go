package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Restaurante-SanFrancisco/RestauranteSanFrancisco/internal/apierror"
	"github.com/Restaurante-SanFrancisco/RestauranteSanFrancisco/internal/feed"
	"github.com/Restaurante-SanFrancisco/RestauranteSanFrancisco/internal/vista"
)

// CocinaHandler serves the kitchen screen projection and the "order ready"
// action.
type CocinaHandler struct {
	cocina     *vista.CocinaVista
	publicador *feed.Publicador
}

func NewCocinaHandler(cocina *vista.CocinaVista, publicador *feed.Publicador) *CocinaHandler {
	return &CocinaHandler{cocina: cocina, publicador: publicador}
}

// Pantalla godoc
// @Summary Pantalla de cocina
// @Description Los primeros pedidos pendientes en orden de llegada mas el conteo de los que esperan turno.
// @Tags cocina
// @Produce json
// @Security BearerAuth
// @Success 200 {object} vista.Pantalla
// @Router /v1/cocina [get]
func (h *CocinaHandler) Pantalla(c *gin.Context) {
	c.JSON(http.StatusOK, h.cocina.Snapshot())
}

// MarcarTerminado godoc
// @Summary Marcar pedido terminado
// @Description Saca el pedido de la pantalla y promueve al siguiente en cola.
// @Tags cocina
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID del pedido"
// @Success 200 {object} vista.Pantalla
// @Failure 404 {object} apierror.APIError
// @Router /v1/cocina/{id}/terminado [post]
func (h *CocinaHandler) MarcarTerminado(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	if err := h.cocina.MarcarTerminado(c.Request.Context(), h.publicador, id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.cocina.Snapshot())
}

package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Restaurante-SanFrancisco/RestauranteSanFrancisco/internal/vista"
)

// MesasHandler serves the occupancy board from the in-memory projection.
type MesasHandler struct{ mesas *vista.MesasVista }

func NewMesasHandler(mesas *vista.MesasVista) *MesasHandler {
	return &MesasHandler{mesas: mesas}
}

// Listar godoc
// @Summary Mesas y habitaciones ocupadas
// @Tags mesas
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.MesaOcupada
// @Router /v1/mesas [get]
func (h *MesasHandler) Listar(c *gin.Context) {
	c.JSON(http.StatusOK, h.mesas.Snapshot())
}

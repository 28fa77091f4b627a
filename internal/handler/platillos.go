package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Restaurante-SanFrancisco/RestauranteSanFrancisco/internal/apierror"
	"github.com/Restaurante-SanFrancisco/RestauranteSanFrancisco/internal/dto"
	"github.com/Restaurante-SanFrancisco/RestauranteSanFrancisco/internal/service"
)

type PlatillosHandler struct{ svc service.PlatilloService }

func NewPlatillosHandler(svc service.PlatilloService) *PlatillosHandler {
	return &PlatillosHandler{svc: svc}
}

// Carta godoc
// @Summary Carta activa agrupada por categoria
// @Tags carta
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.CategoriaResponse
// @Router /v1/carta [get]
func (h *PlatillosHandler) Carta(c *gin.Context) {
	resp, err := h.svc.Carta(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Crear godoc
// @Summary Crear platillo
// @Tags carta
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.CrearPlatilloRequest true "Platillo"
// @Success 201 {object} dto.PlatilloResponse
// @Failure 422 {object} apierror.APIError
// @Router /v1/platillos [post]
func (h *PlatillosHandler) Crear(c *gin.Context) {
	var req dto.CrearPlatilloRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Crear(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *PlatillosHandler) Actualizar(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	var req dto.ActualizarPlatilloRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Actualizar(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *PlatillosHandler) Desactivar(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	if err := h.svc.Desactivar(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *PlatillosHandler) CrearCategoria(c *gin.Context) {
	var req dto.CrearCategoriaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CrearCategoria(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

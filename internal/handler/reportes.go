package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Restaurante-SanFrancisco/RestauranteSanFrancisco/internal/apierror"
	"github.com/Restaurante-SanFrancisco/RestauranteSanFrancisco/internal/dto"
	"github.com/Restaurante-SanFrancisco/RestauranteSanFrancisco/internal/service"
	"github.com/Restaurante-SanFrancisco/RestauranteSanFrancisco/internal/turno"
)

type ReportesHandler struct{ svc service.ReporteService }

func NewReportesHandler(svc service.ReporteService) *ReportesHandler {
	return &ReportesHandler{svc: svc}
}

// Preview godoc
// @Summary Vista previa del turno en curso
// @Description Agrega los pedidos terminados de la ventana de turno actual sin persistir nada.
// @Tags reportes
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.ReporteResponse
// @Router /v1/reportes/preview [get]
func (h *ReportesHandler) Preview(c *gin.Context) {
	resp, err := h.svc.Preview(c.Request.Context(), turno.Ahora())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Publicar godoc
// @Summary Publicar reporte del turno
// @Description Persiste el corte del turno actual, genera el PDF y encola el correo. Publicar dos veces el mismo turno reemplaza el corte anterior.
// @Tags reportes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.PublicarReporteRequest true "Responsable del corte"
// @Success 201 {object} dto.ReporteResponse
// @Failure 422 {object} apierror.APIError
// @Router /v1/reportes [post]
func (h *ReportesHandler) Publicar(c *gin.Context) {
	var req dto.PublicarReporteRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Publicar(c.Request.Context(), req.MeseroRecepcionista, turno.Ahora())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Listar godoc
// @Summary Historial de reportes publicados
// @Tags reportes
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Maximo de filas (default 30)"
// @Success 200 {array} dto.ReporteResponse
// @Router /v1/reportes [get]
func (h *ReportesHandler) Listar(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "30"))
	resp, err := h.svc.Listar(c.Request.Context(), limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// DescargarPDF godoc
// @Summary Descargar PDF de un reporte
// @Tags reportes
// @Produce application/pdf
// @Security BearerAuth
// @Param id path int true "ID del reporte"
// @Success 200 {file} file
// @Failure 404 {object} apierror.APIError
// @Router /v1/reportes/{id}/pdf [get]
func (h *ReportesHandler) DescargarPDF(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	rep, err := h.svc.Obtener(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	if rep.RutaPDF == nil {
		c.JSON(http.StatusNotFound, apierror.New("el reporte no tiene PDF generado"))
		return
	}
	c.FileAttachment(*rep.RutaPDF, "reporte_"+rep.Fecha+"_"+rep.Turno+".pdf")
}

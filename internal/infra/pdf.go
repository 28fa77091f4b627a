package infra

// pdf.go — shift report rendering with go-pdf/fpdf.
// Produces an A4 document with:
//   - Restaurant name header, shift date and AM/PM label
//   - Totals table per payment method plus grand total
//   - One line per settled order (destination, waiter, method, total)
//
// The output file is saved to storagePath/reporte_{fecha}_{turno}.pdf.

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-pdf/fpdf"

	"github.com/Restaurante-SanFrancisco/RestauranteSanFrancisco/internal/model"
)

// GeneradorReportePDF renders shift reports to disk. It satisfies the
// generator dependency of the report service.
type GeneradorReportePDF struct {
	storagePath string
}

func NewGeneradorReportePDF(storagePath string) *GeneradorReportePDF {
	return &GeneradorReportePDF{storagePath: storagePath}
}

// GenerarReporte writes the PDF for a shift report and returns its path.
func (g *GeneradorReportePDF) GenerarReporte(r *model.ReporteEnviado) (string, error) {
	if err := os.MkdirAll(g.storagePath, 0755); err != nil {
		return "", fmt.Errorf("pdf: create storage dir: %w", err)
	}

	fileName := fmt.Sprintf("reporte_%s_%s.pdf", r.Fecha, r.Turno)
	filePath := filepath.Join(g.storagePath, fileName)

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 30 // total margins = 30mm

	// ── Header ───────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(contentW, 9, "Restaurante San Francisco", "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(contentW, 6, "Reporte de turno", "", 1, "C", false, 0, "")
	pdf.Ln(2)

	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(contentW/2, 6, "Fecha: "+r.Fecha, "", 0, "L", false, 0, "")
	pdf.CellFormat(contentW/2, 6, "Turno: "+r.Turno, "", 1, "R", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(contentW, 5, "Responsable: "+r.MeseroRecepcionista, "", 1, "L", false, 0, "")
	pdf.Ln(3)

	pdf.Line(15, pdf.GetY(), pageW-15, pdf.GetY())
	pdf.Ln(3)

	// ── Totals per payment method ────────────────────────────────────────────
	labelW := contentW * 0.6
	valueW := contentW * 0.4

	totales := []struct {
		label string
		valor string
	}{
		{"Efectivo", r.TotalEfectivo.StringFixed(2)},
		{"Tarjeta", r.TotalTarjeta.StringFixed(2)},
		{"Transferencia", r.TotalTransferencia.StringFixed(2)},
		{"Recargado a habitación", r.TotalRecargado.StringFixed(2)},
		{"Empleados", r.TotalEmpleados.StringFixed(2)},
		{"Eventos", r.TotalEventos.StringFixed(2)},
	}

	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(labelW, 7, "Método de pago", "B", 0, "L", false, 0, "")
	pdf.CellFormat(valueW, 7, "Total", "B", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	general := r.TotalEfectivo.Add(r.TotalTarjeta).
		Add(r.TotalTransferencia).Add(r.TotalRecargado).
		Add(r.TotalEmpleados).Add(r.TotalEventos)
	for _, t := range totales {
		pdf.CellFormat(labelW, 6, t.label, "", 0, "L", false, 0, "")
		pdf.CellFormat(valueW, 6, "Q"+t.valor, "", 1, "R", false, 0, "")
	}

	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(labelW, 8, "TOTAL GENERAL", "T", 0, "L", false, 0, "")
	pdf.CellFormat(valueW, 8, "Q"+general.StringFixed(2), "T", 1, "R", false, 0, "")
	pdf.Ln(6)

	// ── Settled orders ───────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(contentW, 7, fmt.Sprintf("Pedidos del turno (%d)", r.TotalPedidos), "", 1, "L", false, 0, "")

	col1 := contentW * 0.25 // destination
	col2 := contentW * 0.25 // waiter
	col3 := contentW * 0.30 // payment method
	col4 := contentW * 0.20 // total

	pdf.SetFont("Helvetica", "B", 8)
	pdf.CellFormat(col1, 6, "Destino", "B", 0, "L", false, 0, "")
	pdf.CellFormat(col2, 6, "Mesero", "B", 0, "L", false, 0, "")
	pdf.CellFormat(col3, 6, "Método", "B", 0, "L", false, 0, "")
	pdf.CellFormat(col4, 6, "Total", "B", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 8)
	for _, p := range r.DatosReportes {
		metodo := ""
		if p.MetodoPago != nil {
			metodo = *p.MetodoPago
		}
		pdf.CellFormat(col1, 5, p.Destino, "", 0, "L", false, 0, "")
		pdf.CellFormat(col2, 5, p.Mesero, "", 0, "L", false, 0, "")
		pdf.CellFormat(col3, 5, metodo, "", 0, "L", false, 0, "")
		pdf.CellFormat(col4, 5, "Q"+p.Total.StringFixed(2), "", 1, "R", false, 0, "")
	}

	if err := pdf.OutputFileAndClose(filePath); err != nil {
		return "", fmt.Errorf("pdf: write file: %w", err)
	}

	return filePath, nil
}

package infra

// pdf.go: close report PDF using go-pdf/fpdf. A4 portrait with
//   - gym name and register date header
//   - totals per concept and per payment method
//   - net cash and net electronic drawer figures
//   - desvio against the operator's totals, when informed
//   - itemized payments, drink sales and expenses
//
// The output file is saved to storagePath/cierre_{fecha}_{id8}.pdf.

import (
	"fmt"
	"os"
	"path/filepath"

	"gympos/internal/model"

	"github.com/go-pdf/fpdf"
	"github.com/shopspring/decimal"
)

// GenerateCierrePDF writes the report of a close snapshot and returns its path.
// storagePath is created if needed.
func GenerateCierrePDF(cierre *model.CierreCaja, gymName, storagePath string) (string, error) {
	if err := os.MkdirAll(storagePath, 0755); err != nil {
		return "", fmt.Errorf("pdf: create storage dir: %w", err)
	}

	fileName := fmt.Sprintf("cierre_%s_%s.pdf", cierre.Fecha, cierre.ID.String()[:8])
	filePath := filepath.Join(storagePath, fileName)

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 30

	// ── Header ───────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(contentW, 9, tr(gymName), "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(contentW, 6, tr(fmt.Sprintf("Cierre %s de caja - %s", cierre.Tipo, cierre.Fecha)), "", 1, "C", false, 0, "")
	pdf.CellFormat(contentW, 5, cierre.CreatedAt.Format("02/01/2006 15:04"), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	labelW := contentW * 0.65
	valueW := contentW * 0.35
	row := func(label string, v decimal.Decimal, bold bool) {
		style := ""
		if bold {
			style = "B"
		}
		pdf.SetFont("Helvetica", style, 10)
		pdf.CellFormat(labelW, 6, tr(label), "", 0, "L", false, 0, "")
		pdf.CellFormat(valueW, 6, "$"+v.StringFixed(2), "", 1, "R", false, 0, "")
	}
	section := func(title string) {
		pdf.Ln(2)
		pdf.SetFont("Helvetica", "B", 11)
		pdf.CellFormat(contentW, 7, tr(title), "B", 1, "L", false, 0, "")
	}

	// ── Totals ───────────────────────────────────────────────────────────────
	section("Totales")
	row(fmt.Sprintf("Cuotas y pases (%d)", cierre.CantidadPagos), cierre.TotalCuotas, false)
	row(fmt.Sprintf("Bebidas (%d)", cierre.CantidadVentasBebidas), cierre.TotalBebidas, false)
	row("Total ingresos", cierre.TotalGeneral, true)
	row(fmt.Sprintf("Gastos (%d)", cierre.CantidadGastos), cierre.TotalGastos, false)
	row("Total neto", cierre.TotalNeto, true)

	section("Por metodo de pago")
	row("Efectivo", cierre.Efectivo, false)
	row("Electronico", cierre.Electronico, false)
	row("Mixto (parte efectivo)", cierre.MixtoEfectivo, false)
	row("Mixto (parte electronica)", cierre.MixtoElectronico, false)
	row("Neto en efectivo", cierre.NetoEfectivo, true)
	row("Neto electronico", cierre.NetoElectronico, true)

	if cierre.TotalInformado != nil && cierre.Desvio != nil {
		section("Desvio")
		row("Total informado", *cierre.TotalInformado, false)
		row("Diferencia", *cierre.Desvio, true)
		if cierre.DesvioPct != nil && cierre.ClasificacionDesvio != nil {
			pdf.SetFont("Helvetica", "", 10)
			pdf.CellFormat(contentW, 6, tr(fmt.Sprintf("%s%% (%s)", cierre.DesvioPct.StringFixed(2), *cierre.ClasificacionDesvio)), "", 1, "R", false, 0, "")
		}
	}

	// ── Detail ───────────────────────────────────────────────────────────────
	det := cierre.Detalle.Data()
	col := []float64{contentW * 0.45, contentW * 0.2, contentW * 0.35}
	table := func(header []string) {
		pdf.SetFont("Helvetica", "B", 9)
		for i, h := range header {
			pdf.CellFormat(col[i], 6, tr(h), "B", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
		pdf.SetFont("Helvetica", "", 9)
	}
	line := func(a, b string, v decimal.Decimal) {
		if len(a) > 40 {
			a = a[:39] + "."
		}
		pdf.CellFormat(col[0], 5, tr(a), "", 0, "L", false, 0, "")
		pdf.CellFormat(col[1], 5, tr(b), "", 0, "L", false, 0, "")
		pdf.CellFormat(col[2], 5, "$"+v.StringFixed(2), "", 1, "R", false, 0, "")
	}

	if len(det.Pagos) > 0 {
		section("Pagos")
		table([]string{"Socio", "Metodo", "Monto"})
		for _, p := range det.Pagos {
			line(p.SocioNombre, p.MetodoPago, p.Monto)
		}
	}
	if len(det.VentasBebidas) > 0 {
		section("Bebidas")
		table([]string{"Bebida", "Cantidad", "Total"})
		for _, v := range det.VentasBebidas {
			line(v.Nombre, fmt.Sprintf("x%d", v.Cantidad), v.PrecioTotal)
		}
	}
	if len(det.Gastos) > 0 {
		section("Gastos")
		table([]string{"Descripcion", "Metodo", "Monto"})
		for _, g := range det.Gastos {
			line(g.Descripcion, g.MetodoPago, g.Monto)
		}
	}
	if len(det.SociosNuevos) > 0 {
		section(fmt.Sprintf("Socios nuevos (%d)", cierre.CantidadSociosNuevos))
		pdf.SetFont("Helvetica", "", 9)
		for _, s := range det.SociosNuevos {
			pdf.CellFormat(contentW, 5, tr(fmt.Sprintf("%s - DNI %s - %s", s.Nombre, s.DNI, s.Actividad)), "", 1, "L", false, 0, "")
		}
	}

	if cierre.Observaciones != nil && *cierre.Observaciones != "" {
		section("Observaciones")
		pdf.SetFont("Helvetica", "I", 9)
		pdf.MultiCell(contentW, 5, tr(*cierre.Observaciones), "", "L", false)
	}

	if err := pdf.OutputFileAndClose(filePath); err != nil {
		return "", fmt.Errorf("pdf: write file: %w", err)
	}
	return filePath, nil
}

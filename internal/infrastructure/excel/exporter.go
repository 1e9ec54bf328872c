// Package excel exporta los reportes de varianza y anomalías como libros xlsx.
package excel

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/ObraStock-api/internal/application/reports"
)

var varianceHeaders = []string{
	"Conteo", "Clase", "Fecha", "Contratista", "Material", "Unidad",
	"Esperado", "Contado", "Varianza", "Varianza %", "Umbral %", "Anómala",
}

var anomalyHeaders = []string{
	"Contratista", "Material", "Tipo", "Esperado", "Real", "Varianza", "Varianza %", "Resuelta", "Creada",
}

func headerStyle(f *excelize.File) int {
	style, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 11},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#D9E1F2"}},
		Border: []excelize.Border{
			{Type: "bottom", Color: "000000", Style: 1},
		},
	})
	return style
}

func writeHeaders(f *excelize.File, sheet string, headers []string) {
	style := headerStyle(f)
	for i, h := range headers {
		col, _ := excelize.ColumnNumberToName(i + 1)
		cell := col + "1"
		f.SetCellValue(sheet, cell, h)
		f.SetCellStyle(sheet, cell, cell, style)
	}
}

func boolCell(v bool) string {
	if v {
		return "SÍ"
	}
	return "NO"
}

// VarianceWorkbook libro con una fila por línea de conteo analizada.
func VarianceWorkbook(rows []reports.VarianceRow) *excelize.File {
	f := excelize.NewFile()
	sheet := "Varianzas"
	f.SetSheetName("Sheet1", sheet)
	writeHeaders(f, sheet, varianceHeaders)

	for i, r := range rows {
		row := i + 2
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), r.CheckNumber)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), r.CheckKind)
		f.SetCellValue(sheet, fmt.Sprintf("C%d", row), r.CheckDate.Format("2006-01-02"))
		f.SetCellValue(sheet, fmt.Sprintf("D%d", row), r.Contractor)
		f.SetCellValue(sheet, fmt.Sprintf("E%d", row), r.Material)
		f.SetCellValue(sheet, fmt.Sprintf("F%d", row), r.Unit)
		f.SetCellValue(sheet, fmt.Sprintf("G%d", row), r.Expected.InexactFloat64())
		f.SetCellValue(sheet, fmt.Sprintf("H%d", row), r.Counted.InexactFloat64())
		f.SetCellValue(sheet, fmt.Sprintf("I%d", row), r.Variance.InexactFloat64())
		f.SetCellValue(sheet, fmt.Sprintf("J%d", row), r.VariancePct.Round(2).InexactFloat64())
		f.SetCellValue(sheet, fmt.Sprintf("K%d", row), r.ThresholdPct.InexactFloat64())
		f.SetCellValue(sheet, fmt.Sprintf("L%d", row), boolCell(r.IsAnomaly))
	}
	return f
}

// AnomalyWorkbook libro con una fila por anomalía registrada.
func AnomalyWorkbook(rows []reports.AnomalyRow) *excelize.File {
	f := excelize.NewFile()
	sheet := "Anomalías"
	f.SetSheetName("Sheet1", sheet)
	writeHeaders(f, sheet, anomalyHeaders)

	for i, r := range rows {
		row := i + 2
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), r.Contractor)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), r.Material)
		f.SetCellValue(sheet, fmt.Sprintf("C%d", row), r.AnomalyType)
		f.SetCellValue(sheet, fmt.Sprintf("D%d", row), r.Expected.InexactFloat64())
		f.SetCellValue(sheet, fmt.Sprintf("E%d", row), r.Actual.InexactFloat64())
		f.SetCellValue(sheet, fmt.Sprintf("F%d", row), r.Variance.InexactFloat64())
		f.SetCellValue(sheet, fmt.Sprintf("G%d", row), r.VariancePct.Round(2).InexactFloat64())
		f.SetCellValue(sheet, fmt.Sprintf("H%d", row), boolCell(r.Resolved))
		f.SetCellValue(sheet, fmt.Sprintf("I%d", row), r.CreatedAt.Format("2006-01-02 15:04"))
	}
	return f
}

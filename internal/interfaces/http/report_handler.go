package http

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/ObraStock-api/internal/application/reports"
	"github.com/jhoicas/ObraStock-api/internal/infrastructure/excel"
)

// ReportHandler expone los reportes de lectura en JSON y xlsx.
type ReportHandler struct {
	uc *reports.ReportsUseCase
}

// NewReportHandler construye el handler de reportes.
func NewReportHandler(uc *reports.ReportsUseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// Variance godoc
// @Summary      Reporte de varianzas
// @Description  Una fila por línea de conteo analizada. format=xlsx descarga el libro Excel.
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        kind    query  string  false  "AUDIT | SELF_REPORT | vacío = ambas"
// @Param        format  query  string  false  "json (default) | xlsx"
// @Success      200  {array}  reports.VarianceRow
// @Router       /api/reports/variance [get]
func (h *ReportHandler) Variance(c *fiber.Ctx) error {
	rows, err := h.uc.VarianceReport(c.Query("kind"))
	if err != nil {
		return respondDomainError(c, err)
	}
	if c.Query("format") == "xlsx" {
		return sendWorkbook(c, excel.VarianceWorkbook(rows), "varianzas")
	}
	return c.JSON(rows)
}

// Anomalies godoc
// @Summary      Reporte de anomalías
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        status  query  string  false  "open | resolved | vacío = todas"
// @Param        format  query  string  false  "json (default) | xlsx"
// @Success      200  {array}  reports.AnomalyRow
// @Router       /api/reports/anomalies [get]
func (h *ReportHandler) Anomalies(c *fiber.Ctx) error {
	rows, err := h.uc.AnomalyReport(c.Query("status"))
	if err != nil {
		return respondDomainError(c, err)
	}
	if c.Query("format") == "xlsx" {
		return sendWorkbook(c, excel.AnomalyWorkbook(rows), "anomalias")
	}
	return c.JSON(rows)
}

// Reorder devuelve los materiales de bodega bajo punto de reorden.
func (h *ReportHandler) Reorder(c *fiber.Ctx) error {
	rows, err := h.uc.ReorderReport()
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(rows)
}

func sendWorkbook(c *fiber.Ctx, f *excelize.File, name string) error {
	filename := fmt.Sprintf("%s-%s.xlsx", name, time.Now().Format("2006-01-02"))
	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename=%q`, filename))
	return f.Write(c.Response().BodyWriter())
}

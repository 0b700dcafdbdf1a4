package http

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/almacen-api/internal/application/report"
	"github.com/jhoicas/almacen-api/internal/application/usecase"
)

// StatsHandler estadísticas de usuarios y reportes (solo admin).
type StatsHandler struct {
	stats   *usecase.StatsUseCase
	reports *report.ReportUseCase
}

// NewStatsHandler construye el handler de estadísticas y reportes.
func NewStatsHandler(stats *usecase.StatsUseCase, reports *report.ReportUseCase) *StatsHandler {
	return &StatsHandler{stats: stats, reports: reports}
}

// Statistics godoc
// @Summary      Conteo de usuarios por rol
// @Tags         statistics
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.StatisticsResponse
// @Router       /statistics [get]
func (h *StatsHandler) Statistics(c *fiber.Ctx) error {
	out, err := h.stats.GetRoleStatistics(c.Context())
	if err != nil {
		return internalError(c, err)
	}
	return c.JSON(out)
}

// InventoryReport godoc
// @Summary      Reporte PDF del inventario actual
// @Tags         reports
// @Security     Bearer
// @Produce      application/pdf
// @Success      200  {file}  binary
// @Router       /reports/inventory [get]
func (h *StatsHandler) InventoryReport(c *fiber.Ctx) error {
	pdf, err := h.reports.InventoryPDF(c.Context())
	if err != nil {
		return internalError(c, err)
	}
	fileName := fmt.Sprintf("inventario_%s.pdf", time.Now().Format("20060102"))
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+fileName+`"`)
	return c.Send(pdf)
}

package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stock-ledger-api/internal/application/dto"
	"github.com/jhoicas/stock-ledger-api/internal/application/inventory"
)

// ForecastHandler pronóstico de agotamiento por producto y del catálogo.
type ForecastHandler struct {
	forecast *inventory.ForecastUseCase
	reports  *inventory.ReportUseCase
}

// NewForecastHandler construye el handler.
func NewForecastHandler(forecast *inventory.ForecastUseCase, reports *inventory.ReportUseCase) *ForecastHandler {
	return &ForecastHandler{forecast: forecast, reports: reports}
}

// Catalog godoc
// @Summary      Pronóstico de todo el catálogo
// @Tags         forecast
// @Security     Bearer
// @Produce      json
// @Param        days    query  int   false  "Ventana en días [7, 365]"  default(30)
// @Param        active  query  bool  false  "Solo productos activos"
// @Success      200  {object}  dto.ForecastListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/forecast [get]
func (h *ForecastHandler) Catalog(c *fiber.Ctx) error {
	days, ok := parseDays(c)
	if !ok {
		return invalidWindow(c)
	}
	out, err := h.forecast.ForecastCatalog(c.UserContext(), days, c.QueryBool("active", false))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Product godoc
// @Summary      Pronóstico de un producto
// @Tags         forecast
// @Security     Bearer
// @Produce      json
// @Param        product_id  path   string  true   "ID del producto"
// @Param        days        query  int     false  "Ventana en días [7, 365]"  default(30)
// @Success      200  {object}  dto.ForecastResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/forecast/{product_id} [get]
func (h *ForecastHandler) Product(c *fiber.Ctx) error {
	days, ok := parseDays(c)
	if !ok {
		return invalidWindow(c)
	}
	out, err := h.forecast.Forecast(c.UserContext(), c.Params("product_id"), days)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ReportPDF godoc
// @Summary      Reporte PDF del pronóstico del catálogo
// @Tags         forecast
// @Security     Bearer
// @Produce      application/pdf
// @Param        days    query  int   false  "Ventana en días [7, 365]"  default(30)
// @Param        active  query  bool  false  "Solo productos activos"
// @Success      200  {file}  binary
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/forecast/report.pdf [get]
func (h *ForecastHandler) ReportPDF(c *fiber.Ctx) error {
	days, ok := parseDays(c)
	if !ok {
		return invalidWindow(c)
	}
	body, filename, err := h.reports.ForecastPDF(c.UserContext(), days, c.QueryBool("active", false))
	if err != nil {
		return writeError(c, err)
	}
	c.Attachment(filename)
	c.Set(fiber.HeaderContentType, "application/pdf")
	return c.Send(body)
}

// parseDays lee ?days. Ausente => 0 (ventana por defecto). No numérico o 0 explícito => inválido;
// el rango lo valida el caso de uso.
func parseDays(c *fiber.Ctx) (int, bool) {
	raw := c.Query("days")
	if raw == "" {
		return 0, true
	}
	days, err := strconv.Atoi(raw)
	if err != nil || days == 0 {
		return 0, false
	}
	return days, true
}

func invalidWindow(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_WINDOW", Message: "days debe ser un entero entre 7 y 365"})
}

package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stock-ledger-api/internal/application/dto"
	"github.com/jhoicas/stock-ledger-api/internal/application/inventory"
)

// MovementHandler registro y consulta del ledger de movimientos.
type MovementHandler struct {
	register *inventory.RegisterMovementUseCase
	reports  *inventory.ReportUseCase
}

// NewMovementHandler construye el handler.
func NewMovementHandler(register *inventory.RegisterMovementUseCase, reports *inventory.ReportUseCase) *MovementHandler {
	return &MovementHandler{register: register, reports: reports}
}

// Create godoc
// @Summary      Registrar movimiento de inventario
// @Description  Agrega una fila al ledger. ID (M001...) y fecha los asigna el servidor.
// @Tags         movements
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateMovementRequest  true  "product_id, movement_type, quantity"
// @Success      201   {object}  dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/movements [post]
func (h *MovementHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if in.ProductID == "" || in.Type == "" || in.Quantity == nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "product_id, movement_type y quantity son requeridos"})
	}
	out, err := h.register.Register(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar movimientos (más recientes primero)
// @Tags         movements
// @Security     Bearer
// @Produce      json
// @Param        product_id  query  string  false  "Filtrar por producto"
// @Success      200  {object}  dto.MovementListResponse
// @Router       /api/movements [get]
func (h *MovementHandler) List(c *fiber.Ctx) error {
	out, err := h.register.List(c.UserContext(), c.Query("product_id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ExportXML godoc
// @Summary      Exportar el ledger en XML
// @Tags         movements
// @Security     Bearer
// @Produce      application/xml
// @Param        product_id  query  string  false  "Filtrar por producto"
// @Success      200  {file}  binary
// @Router       /api/movements/export.xml [get]
func (h *MovementHandler) ExportXML(c *fiber.Ctx) error {
	body, filename, err := h.reports.LedgerXML(c.UserContext(), c.Query("product_id"))
	if err != nil {
		return writeError(c, err)
	}
	c.Attachment(filename)
	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationXMLCharsetUTF8)
	return c.Send(body)
}

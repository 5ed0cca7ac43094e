package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jcastano/control-inventario/internal/application/dto"
	"github.com/jcastano/control-inventario/internal/application/purchase"
)

// PurchaseHandler maneja las peticiones HTTP para compras y sus detalles.
type PurchaseHandler struct {
	uc     *purchase.UseCase
	report *purchase.ReportUseCase
}

// NewPurchaseHandler construye el handler.
func NewPurchaseHandler(uc *purchase.UseCase, report *purchase.ReportUseCase) *PurchaseHandler {
	return &PurchaseHandler{uc: uc, report: report}
}

// Create godoc
// @Summary      Crear compra (genera un detalle en cero por producto del proveedor)
// @Tags         compras
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreatePurchaseRequest  true  "Datos de la compra"
// @Success      201   {object}  dto.PurchaseWithDetailsResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/compras [post]
func (h *PurchaseHandler) Create(c *fiber.Ctx) error {
	var in dto.CreatePurchaseRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.ProviderID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDACION", Message: "proveedor_id es requerido"})
	}
	out, err := h.uc.Create(c.Context(), GetUser(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetWithDetails godoc
// @Summary      Obtener compra con sus detalles en orden de producto
// @Tags         compras
// @Security     Bearer
// @Produce      json
// @Param        compra_id  path  int  true  "ID de la compra"
// @Success      200  {object}  dto.PurchaseWithDetailsResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/compras/{compra_id} [get]
func (h *PurchaseHandler) GetWithDetails(c *fiber.Ctx) error {
	id, err := c.ParamsInt("compra_id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDACION", Message: "compra_id debe ser un entero positivo"})
	}
	out, err := h.uc.GetWithDetails(GetUser(c), int64(id))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ListByRange godoc
// @Summary      Listar compras por rango de fechas (solo tiendas visibles)
// @Tags         compras
// @Security     Bearer
// @Produce      json
// @Param        fecha_inicio  query  string  false  "YYYY-MM-DD"
// @Param        fecha_fin     query  string  false  "YYYY-MM-DD"
// @Param        limit         query  int     false  "Máximo de compras (alias: limite)"  default(3)
// @Success      200  {array}  dto.PurchaseWithDetailsResponse
// @Router       /api/compras/rango [get]
func (h *PurchaseHandler) ListByRange(c *fiber.Ctx) error {
	var start, end *time.Time
	if s := c.Query("fecha_inicio"); s != "" {
		t, err := time.Parse(purchase.DateLayout, s)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDACION", Message: "fecha_inicio debe ser YYYY-MM-DD"})
		}
		start = &t
	}
	if s := c.Query("fecha_fin"); s != "" {
		t, err := time.Parse(purchase.DateLayout, s)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDACION", Message: "fecha_fin debe ser YYYY-MM-DD"})
		}
		end = &t
	}
	// "limite" se mantiene como alias para clientes heredados.
	limit := c.QueryInt("limit", 0)
	if limit <= 0 {
		limit = c.QueryInt("limite", purchase.DefaultRangeLimit)
	}

	out, err := h.uc.ListByRange(GetUser(c), start, end, limit)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Cambiar la fecha de una compra
// @Tags         compras
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        compra_id  path  int  true  "ID de la compra"
// @Param        body  body  dto.UpdatePurchaseRequest  true  "Datos de la compra"
// @Success      200   {object}  dto.PurchaseResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/compras/{compra_id} [put]
func (h *PurchaseHandler) Update(c *fiber.Ctx) error {
	id, err := c.ParamsInt("compra_id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDACION", Message: "compra_id debe ser un entero positivo"})
	}
	var in dto.UpdatePurchaseRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Update(int64(id), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar compra con sus detalles
// @Tags         compras
// @Security     Bearer
// @Produce      json
// @Param        compra_id  path  int  true  "ID de la compra"
// @Success      200  {object}  dto.MessageResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/compras/{compra_id} [delete]
func (h *PurchaseHandler) Delete(c *fiber.Ctx) error {
	id, err := c.ParamsInt("compra_id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDACION", Message: "compra_id debe ser un entero positivo"})
	}
	if err := h.uc.Delete(int64(id)); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "compra eliminada"})
}

// CreateDetail godoc
// @Summary      Crear detalle de compra (cantidad con coerción tolerante)
// @Tags         compras
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        compra_id  path  int  true  "ID de la compra"
// @Param        body  body  dto.CreateDetailRequest  true  "Datos del detalle"
// @Success      201   {object}  dto.DetailResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/compras/{compra_id}/detalles [post]
func (h *PurchaseHandler) CreateDetail(c *fiber.Ctx) error {
	id, err := c.ParamsInt("compra_id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDACION", Message: "compra_id debe ser un entero positivo"})
	}
	var in dto.CreateDetailRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.ProductID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDACION", Message: "producto_id es requerido"})
	}
	out, err := h.uc.CreateDetail(GetUser(c), int64(id), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// UpdateDetail godoc
// @Summary      Actualizar detalle de compra (cantidad con coerción tolerante)
// @Tags         compras
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        detalle_id  path  int  true  "ID del detalle"
// @Param        body  body  dto.UpdateDetailRequest  true  "Datos del detalle"
// @Success      200   {object}  dto.DetailResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/compras/detalles/{detalle_id} [put]
func (h *PurchaseHandler) UpdateDetail(c *fiber.Ctx) error {
	id, err := c.ParamsInt("detalle_id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDACION", Message: "detalle_id debe ser un entero positivo"})
	}
	var in dto.UpdateDetailRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.UpdateDetail(GetUser(c), int64(id), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// DeleteDetail godoc
// @Summary      Eliminar detalle de compra
// @Tags         compras
// @Security     Bearer
// @Produce      json
// @Param        detalle_id  path  int  true  "ID del detalle"
// @Success      200  {object}  dto.MessageResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/compras/detalles/{detalle_id} [delete]
func (h *PurchaseHandler) DeleteDetail(c *fiber.Ctx) error {
	id, err := c.ParamsInt("detalle_id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDACION", Message: "detalle_id debe ser un entero positivo"})
	}
	if err := h.uc.DeleteDetail(int64(id)); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "detalle eliminado"})
}

// Report godoc
// @Summary      Descargar el reporte PDF de una compra
// @Tags         compras
// @Security     Bearer
// @Produce      application/pdf
// @Param        compra_id  path  int  true  "ID de la compra"
// @Success      200  {file}  binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/compras/{compra_id}/reporte [get]
func (h *PurchaseHandler) Report(c *fiber.Ctx) error {
	id, err := c.ParamsInt("compra_id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDACION", Message: "compra_id debe ser un entero positivo"})
	}
	pdfBytes, err := h.report.Generate(c.Context(), GetUser(c), int64(id))
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="reporte-compra.pdf"`)
	return c.Send(pdfBytes)
}

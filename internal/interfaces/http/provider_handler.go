package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jcastano/control-inventario/internal/application/dto"
	"github.com/jcastano/control-inventario/internal/application/usecase"
)

// ProviderHandler maneja las peticiones HTTP para proveedores.
type ProviderHandler struct {
	uc *usecase.ProviderUseCase
}

// NewProviderHandler construye el handler.
func NewProviderHandler(uc *usecase.ProviderUseCase) *ProviderHandler {
	return &ProviderHandler{uc: uc}
}

// Create godoc
// @Summary      Crear proveedor en una tienda
// @Tags         proveedores
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateProviderRequest  true  "Datos del proveedor"
// @Success      201   {object}  dto.ProviderResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/proveedores [post]
func (h *ProviderHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateProviderRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.Name == "" || in.StoreID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDACION", Message: "nombre y tienda_id son requeridos"})
	}
	out, err := h.uc.Create(in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListByStore godoc
// @Summary      Listar proveedores de una tienda
// @Tags         proveedores
// @Security     Bearer
// @Produce      json
// @Param        tienda_id  path  int  true  "ID de la tienda"
// @Success      200  {array}  dto.ProviderResponse
// @Router       /api/tiendas/{tienda_id}/proveedores [get]
func (h *ProviderHandler) ListByStore(c *fiber.Ctx) error {
	id, err := c.ParamsInt("tienda_id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDACION", Message: "tienda_id debe ser un entero positivo"})
	}
	out, err := h.uc.ListByStore(GetUser(c), int64(id))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Renombrar proveedor
// @Tags         proveedores
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        proveedor_id  path  int  true  "ID del proveedor"
// @Param        body  body  dto.UpdateProviderRequest  true  "Datos del proveedor"
// @Success      200   {object}  dto.ProviderResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/proveedores/{proveedor_id} [put]
func (h *ProviderHandler) Update(c *fiber.Ctx) error {
	id, err := c.ParamsInt("proveedor_id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDACION", Message: "proveedor_id debe ser un entero positivo"})
	}
	var in dto.UpdateProviderRequest
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
// @Summary      Eliminar proveedor y todo su contenido
// @Tags         proveedores
// @Security     Bearer
// @Produce      json
// @Param        proveedor_id  path  int  true  "ID del proveedor"
// @Success      200  {object}  dto.MessageResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/proveedores/{proveedor_id} [delete]
func (h *ProviderHandler) Delete(c *fiber.Ctx) error {
	id, err := c.ParamsInt("proveedor_id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDACION", Message: "proveedor_id debe ser un entero positivo"})
	}
	if err := h.uc.Delete(int64(id)); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "proveedor eliminado"})
}

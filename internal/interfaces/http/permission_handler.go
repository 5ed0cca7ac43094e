package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jcastano/control-inventario/internal/application/dto"
	"github.com/jcastano/control-inventario/internal/application/usecase"
)

// PermissionHandler maneja las peticiones HTTP para grants de permisos (solo superadmin).
type PermissionHandler struct {
	uc *usecase.PermissionUseCase
}

// NewPermissionHandler construye el handler.
func NewPermissionHandler(uc *usecase.PermissionUseCase) *PermissionHandler {
	return &PermissionHandler{uc: uc}
}

// Create godoc
// @Summary      Crear grant de permisos usuario-tienda (superadmin)
// @Tags         permisos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreatePermissionRequest  true  "Datos del grant"
// @Success      201   {object}  dto.PermissionResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/permisos [post]
func (h *PermissionHandler) Create(c *fiber.Ctx) error {
	var in dto.CreatePermissionRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.UserID <= 0 || in.StoreID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDACION", Message: "usuario_id y tienda_id son requeridos"})
	}
	out, err := h.uc.Create(in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListByUser godoc
// @Summary      Listar grants de un usuario (superadmin)
// @Tags         permisos
// @Security     Bearer
// @Produce      json
// @Param        usuario_id  path  int  true  "ID del usuario"
// @Success      200  {array}  dto.PermissionResponse
// @Router       /api/usuarios/{usuario_id}/permisos [get]
func (h *PermissionHandler) ListByUser(c *fiber.Ctx) error {
	id, err := c.ParamsInt("usuario_id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDACION", Message: "usuario_id debe ser un entero positivo"})
	}
	out, err := h.uc.ListByUser(int64(id))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Reemplazar los flags de un grant (superadmin)
// @Tags         permisos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        permiso_id  path  int  true  "ID del grant"
// @Param        body  body  dto.UpdatePermissionRequest  true  "Flags del grant"
// @Success      200   {object}  dto.PermissionResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/permisos/{permiso_id} [put]
func (h *PermissionHandler) Update(c *fiber.Ctx) error {
	id, err := c.ParamsInt("permiso_id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDACION", Message: "permiso_id debe ser un entero positivo"})
	}
	var in dto.UpdatePermissionRequest
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
// @Summary      Eliminar un grant (superadmin)
// @Tags         permisos
// @Security     Bearer
// @Produce      json
// @Param        permiso_id  path  int  true  "ID del grant"
// @Success      200  {object}  dto.MessageResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/permisos/{permiso_id} [delete]
func (h *PermissionHandler) Delete(c *fiber.Ctx) error {
	id, err := c.ParamsInt("permiso_id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDACION", Message: "permiso_id debe ser un entero positivo"})
	}
	if err := h.uc.Delete(int64(id)); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "permiso eliminado"})
}

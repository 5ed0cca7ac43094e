package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jcastano/control-inventario/internal/application/dto"
	"github.com/jcastano/control-inventario/internal/application/ordering"
	"github.com/jcastano/control-inventario/internal/application/usecase"
)

// ProductHandler maneja las peticiones HTTP para productos, incluido el
// movimiento de posición.
type ProductHandler struct {
	uc       *usecase.ProductUseCase
	ordering *ordering.UseCase
}

// NewProductHandler construye el handler.
func NewProductHandler(uc *usecase.ProductUseCase, orderingUC *ordering.UseCase) *ProductHandler {
	return &ProductHandler{uc: uc, ordering: orderingUC}
}

// Create godoc
// @Summary      Crear producto de un proveedor (se añade al final del orden)
// @Tags         productos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateProductRequest  true  "Datos del producto"
// @Success      201   {object}  dto.ProductResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/productos [post]
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateProductRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.Name == "" || in.ProviderID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDACION", Message: "nombre y proveedor_id son requeridos"})
	}
	out, err := h.uc.Create(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListByProvider godoc
// @Summary      Listar productos de un proveedor en su orden de despliegue
// @Tags         productos
// @Security     Bearer
// @Produce      json
// @Param        proveedor_id  path  int  true  "ID del proveedor"
// @Success      200  {array}  dto.ProductResponse
// @Router       /api/proveedores/{proveedor_id}/productos [get]
func (h *ProductHandler) ListByProvider(c *fiber.Ctx) error {
	id, err := c.ParamsInt("proveedor_id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDACION", Message: "proveedor_id debe ser un entero positivo"})
	}
	out, err := h.uc.ListByProvider(GetUser(c), int64(id))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Renombrar producto
// @Tags         productos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        producto_id  path  int  true  "ID del producto"
// @Param        body  body  dto.UpdateProductRequest  true  "Datos del producto"
// @Success      200   {object}  dto.ProductResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/productos/{producto_id} [put]
func (h *ProductHandler) Update(c *fiber.Ctx) error {
	id, err := c.ParamsInt("producto_id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDACION", Message: "producto_id debe ser un entero positivo"})
	}
	var in dto.UpdateProductRequest
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
// @Summary      Eliminar producto
// @Tags         productos
// @Security     Bearer
// @Produce      json
// @Param        producto_id  path  int  true  "ID del producto"
// @Success      200  {object}  dto.MessageResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/productos/{producto_id} [delete]
func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	id, err := c.ParamsInt("producto_id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDACION", Message: "producto_id debe ser un entero positivo"})
	}
	if err := h.uc.Delete(int64(id)); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "producto eliminado"})
}

// Move godoc
// @Summary      Mover producto una posición arriba o abajo
// @Tags         productos
// @Security     Bearer
// @Produce      json
// @Param        producto_id  path   int     true  "ID del producto"
// @Param        direccion    query  string  true  "up o down"
// @Success      200  {object}  dto.MoveProductResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/productos/{producto_id}/mover [put]
func (h *ProductHandler) Move(c *fiber.Ctx) error {
	id, err := c.ParamsInt("producto_id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDACION", Message: "producto_id debe ser un entero positivo"})
	}
	dir, err := ordering.ParseDirection(c.Query("direccion"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDACION", Message: "direccion debe ser up o down"})
	}
	result, err := h.ordering.Move(c.Context(), int64(id), dir)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.MoveProductResponse{
		Product:  toRankChange(result.Product),
		Neighbor: toRankChange(result.Neighbor),
	})
}

func toRankChange(rc ordering.RankChange) dto.RankChangeResponse {
	return dto.RankChangeResponse{
		ProductID:  rc.ProductID,
		RankBefore: rc.RankBefore,
		RankAfter:  rc.RankAfter,
	}
}

package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jcastano/control-inventario/internal/application/dto"
	"github.com/jcastano/control-inventario/internal/domain"
)

// respondError mapea los errores sentinela del dominio a su respuesta HTTP.
// Todo lo no reconocido es un 500 genérico: el detalle queda en el log, no en
// el cliente.
func respondError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NO_ENCONTRADO", Message: "recurso no encontrado"})
	case errors.Is(err, domain.ErrUserNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "USUARIO_NO_ENCONTRADO", Message: "usuario no encontrado"})
	case errors.Is(err, domain.ErrDuplicate):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICADO", Message: "ya existe un registro con esos datos"})
	case errors.Is(err, domain.ErrConflict):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CONFLICTO", Message: "la operación entra en conflicto con el estado actual"})
	case errors.Is(err, domain.ErrMoveBoundary):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MOVIMIENTO_FUERA_DE_RANGO", Message: "el producto ya está en el extremo de la lista"})
	case errors.Is(err, domain.ErrScopeMissing):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "TIENDA_NO_DETERMINADA", Message: "falta referencia a la tienda (ruta, query o body)"})
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDACION", Message: "datos de entrada inválidos"})
	case errors.Is(err, domain.ErrUnauthorized):
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "NO_AUTENTICADO", Message: "credenciales inválidas"})
	case errors.Is(err, domain.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "NO_AUTORIZADO", Message: "no autorizado para esta operación"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "error interno"})
	}
}

package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/jcastano/control-inventario/internal/application/authz"
	"github.com/jcastano/control-inventario/internal/application/dto"
	"github.com/jcastano/control-inventario/internal/domain/entity"
)

// Locals key para el usuario autenticado en Fiber.
const LocalUser = "user"

// bearerToken extrae la credencial del header Authorization. Acepta tanto
// "Bearer <token>" como el token crudo, que es lo que envían los clientes
// heredados.
func bearerToken(c *fiber.Ctx) string {
	authHeader := strings.TrimSpace(c.Get("Authorization"))
	if authHeader == "" {
		return ""
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
		return strings.TrimSpace(parts[1])
	}
	return authHeader
}

// RequireUser valida la credencial de sesión contra la base y deja el usuario
// en c.Locals. Sin sesión vigente: 401.
func RequireUser(svc *authz.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, err := svc.ResolveUser(bearerToken(c))
		if err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{Code: "AUTH_CHECK_FAILED", Message: "no se pudo verificar la sesión, intente más tarde"})
		}
		if user == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "TOKEN_INVALIDO", Message: "token inválido o no proporcionado"})
		}
		c.Locals(LocalUser, user)
		return c.Next()
	}
}

// OptionalUser resuelve la credencial si viene, sin rechazar la petición: las
// lecturas degradan a vacío para un llamador sin sesión en vez de fallar.
func OptionalUser(svc *authz.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := bearerToken(c)
		if token != "" {
			user, err := svc.ResolveUser(token)
			if err != nil {
				return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{Code: "AUTH_CHECK_FAILED", Message: "no se pudo verificar la sesión, intente más tarde"})
			}
			if user != nil {
				c.Locals(LocalUser, user)
			}
		}
		return c.Next()
	}
}

// GetUser devuelve el usuario del contexto (nil si no hubo sesión).
func GetUser(c *fiber.Ctx) *entity.User {
	v := c.Locals(LocalUser)
	if v == nil {
		return nil
	}
	u, _ := v.(*entity.User)
	return u
}

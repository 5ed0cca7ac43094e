package http

import (
	"encoding/json"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/jcastano/control-inventario/internal/application/authz"
	"github.com/jcastano/control-inventario/internal/application/dto"
	"github.com/jcastano/control-inventario/internal/domain/entity"
)

// hintKeys claves de identificador que el guard busca en ruta, query y body,
// en el orden de prioridad de la resolución de tienda.
var hintKeys = [...]string{"tienda_id", "proveedor_id", "compra_id", "detalle_id", "producto_id"}

// extractHints junta los identificadores candidatos de la petición: parámetros
// de ruta primero, luego query, luego body JSON. El primer valor encontrado por
// clave gana; los demás se ignoran.
func extractHints(c *fiber.Ctx) authz.ScopeHints {
	var h authz.ScopeHints
	for _, key := range hintKeys {
		if v := paramOrQuery(c, key); v != 0 {
			setHint(&h, key, v)
		}
	}

	if len(c.Body()) > 0 {
		var body map[string]any
		if err := json.Unmarshal(c.Body(), &body); err == nil {
			for _, key := range hintKeys {
				if hintValue(&h, key) != 0 {
					continue
				}
				if v := numericField(body, key); v != 0 {
					setHint(&h, key, v)
				}
			}
		}
	}
	return h
}

func paramOrQuery(c *fiber.Ctx, key string) int64 {
	if s := c.Params(key); s != "" {
		if v, err := strconv.ParseInt(s, 10, 64); err == nil {
			return v
		}
	}
	if s := c.Query(key); s != "" {
		if v, err := strconv.ParseInt(s, 10, 64); err == nil {
			return v
		}
	}
	return 0
}

// numericField tolera número JSON o string numérico en el body.
func numericField(body map[string]any, key string) int64 {
	raw, ok := body[key]
	if !ok {
		return 0
	}
	switch v := raw.(type) {
	case float64:
		return int64(v)
	case string:
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return 0
		}
		return n
	default:
		return 0
	}
}

func setHint(h *authz.ScopeHints, key string, v int64) {
	switch key {
	case "tienda_id":
		h.StoreID = v
	case "proveedor_id":
		h.ProviderID = v
	case "compra_id":
		h.PurchaseID = v
	case "detalle_id":
		h.DetailID = v
	case "producto_id":
		h.ProductID = v
	}
}

func hintValue(h *authz.ScopeHints, key string) int64 {
	switch key {
	case "tienda_id":
		return h.StoreID
	case "proveedor_id":
		return h.ProviderID
	case "compra_id":
		return h.PurchaseID
	case "detalle_id":
		return h.DetailID
	case "producto_id":
		return h.ProductID
	default:
		return 0
	}
}

// RequireCapability devuelve un middleware que ejecuta la comprobación de
// admisión completa: identidad, tienda que gobierna la operación y permiso.
// Deja el principal en c.Locals si la operación procede.
func RequireCapability(svc *authz.Service, cap entity.Capability) fiber.Handler {
	return func(c *fiber.Ctx) error {
		decision, err := svc.Authorize(bearerToken(c), extractHints(c), cap)
		if err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{Code: "AUTH_CHECK_FAILED", Message: "no se pudo verificar el permiso, intente más tarde"})
		}
		if !decision.Allowed() {
			return respondDecision(c, decision)
		}
		c.Locals(LocalUser, decision.User)
		return c.Next()
	}
}

// RequireSuperadmin devuelve el guard reducido de operaciones administrativas.
func RequireSuperadmin(svc *authz.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		decision, err := svc.RequireSuperadmin(bearerToken(c))
		if err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{Code: "AUTH_CHECK_FAILED", Message: "no se pudo verificar el permiso, intente más tarde"})
		}
		if !decision.Allowed() {
			return respondDecision(c, decision)
		}
		c.Locals(LocalUser, decision.User)
		return c.Next()
	}
}

// respondDecision mapea el veredicto del guard a su respuesta HTTP.
func respondDecision(c *fiber.Ctx, d authz.Decision) error {
	switch d.Kind {
	case authz.DecisionUnauthenticated:
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "TOKEN_INVALIDO", Message: d.Reason})
	case authz.DecisionBadRequest:
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "TIENDA_NO_DETERMINADA", Message: d.Reason})
	default:
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "NO_AUTORIZADO", Message: d.Reason})
	}
}

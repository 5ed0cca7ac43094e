package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound     = errors.New("recurso no encontrado")
	ErrUserNotFound = errors.New("usuario no encontrado")
	ErrInvalidInput = errors.New("entrada inválida")
	ErrDuplicate    = errors.New("recurso duplicado")
	ErrUnauthorized = errors.New("no autorizado")
	ErrForbidden    = errors.New("acceso denegado")
	ErrConflict     = errors.New("conflicto con el estado actual")

	// ErrScopeMissing indica que no se pudo determinar la tienda que gobierna la
	// operación; es un error del cliente, distinto de ErrForbidden.
	ErrScopeMissing = errors.New("no se pudo determinar la tienda de la operación")

	// ErrMoveBoundary indica que el producto no tiene vecino en la dirección pedida
	// (ya es el primero o el último de su proveedor).
	ErrMoveBoundary = errors.New("no hay vecino en esa dirección")
)

package entity

// Store representa una tienda: la raíz del árbol multi-tenant. Eliminar una
// tienda cascadea a proveedores, productos, compras, detalles y permisos.
type Store struct {
	ID   int64
	Name string // único global
}

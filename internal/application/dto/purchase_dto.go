package dto

import (
	"encoding/json"

	"github.com/jcastano/control-inventario/internal/domain/inventory"
)

// CreatePurchaseRequest datos para crear una compra. FechaCompra vacía = hoy.
type CreatePurchaseRequest struct {
	ProviderID int64  `json:"proveedor_id"`
	Date       string `json:"fecha_compra"` // YYYY-MM-DD
}

// UpdatePurchaseRequest campos actualizables de una compra.
type UpdatePurchaseRequest struct {
	Date *string `json:"fecha_compra"` // YYYY-MM-DD
}

// CreateDetailRequest datos para crear un detalle de compra. Cantidad e
// inventario se reciben como JSON crudo: la coerción tolerante acepta números,
// floats y strings numéricos.
type CreateDetailRequest struct {
	ProductID      int64           `json:"producto_id"`
	Quantity       json.RawMessage `json:"cantidad"`
	PriorInventory json.RawMessage `json:"inventario_anterior"`
}

// UpdateDetailRequest campos actualizables de un detalle de compra.
type UpdateDetailRequest struct {
	Quantity       json.RawMessage `json:"cantidad"`
	PriorInventory json.RawMessage `json:"inventario_anterior"`
}

// PurchaseResponse representación plana de una compra.
type PurchaseResponse struct {
	ID         int64  `json:"id"`
	ProviderID int64  `json:"proveedor_id"`
	Date       string `json:"fecha_compra"`
}

// DetailResponse línea de detalle dentro de una compra. InventarioAnterior se
// aplana al marcador de redacción solo aquí, en el borde de serialización.
type DetailResponse struct {
	ID             int64              `json:"id"`
	PurchaseID     int64              `json:"compra_id"`
	ProductID      int64              `json:"producto_id"`
	Quantity       int64              `json:"cantidad"`
	PriorInventory PriorInventoryJSON `json:"inventario_anterior"`
	ProductName    string             `json:"producto_nombre"`
}

// PurchaseWithDetailsResponse compra anidada con sus detalles ordenados por el
// orden del producto.
type PurchaseWithDetailsResponse struct {
	ID         int64            `json:"id"`
	ProviderID int64            `json:"proveedor_id"`
	Date       string           `json:"fecha_compra"`
	Details    []DetailResponse `json:"detalles"`
}

// PriorInventoryJSON serializa la variante Visible(n) | Oculto: el valor real
// como número, u "oculto" como string para que el cliente distinga redacción de
// un cero legítimo.
type PriorInventoryJSON struct {
	Inv inventory.PriorInventory
}

// MarshalJSON implementa json.Marshaler.
func (p PriorInventoryJSON) MarshalJSON() ([]byte, error) {
	if v, ok := p.Inv.Value(); ok {
		return json.Marshal(v)
	}
	return json.Marshal(inventory.RedactedMarker)
}

package entity

import "time"

// Purchase representa una compra a un proveedor en una fecha dada.
// Hay a lo sumo una compra por (proveedor, fecha): un segundo intento es conflicto.
type Purchase struct {
	ID         int64
	ProviderID int64
	Date       time.Time // solo la parte de fecha es significativa
}

// PurchaseDetail es la línea de un producto dentro de una compra.
//
// Ciclo de vida: al crear una compra se genera un detalle (cantidad=0,
// inventario_anterior=0) por cada producto del proveedor; al crear un producto
// se genera el detalle equivalente en cada compra existente del proveedor.
// A lo sumo un detalle por (compra, producto).
type PurchaseDetail struct {
	ID             int64
	PurchaseID     int64
	ProductID      int64
	Quantity       int64
	PriorInventory int64 // stock conocido antes de sumar la cantidad de esta compra

	// ProductName y ProductRank vienen del join con producto en los listados;
	// en inserciones quedan en cero.
	ProductName string
	ProductRank *int32
}

package dto

// CreateProductRequest datos para crear un producto de un proveedor.
type CreateProductRequest struct {
	Name       string `json:"nombre"`
	ProviderID int64  `json:"proveedor_id"`
}

// UpdateProductRequest campos actualizables de un producto.
type UpdateProductRequest struct {
	Name *string `json:"nombre"`
}

// ProductResponse representación de un producto con su posición.
type ProductResponse struct {
	ID         int64  `json:"id"`
	ProviderID int64  `json:"proveedor_id"`
	Name       string `json:"nombre"`
	Rank       *int32 `json:"orden"`
}

// RankChangeResponse orden antes/después de un producto afectado por un movimiento.
type RankChangeResponse struct {
	ProductID  int64 `json:"producto_id"`
	RankBefore int32 `json:"orden_anterior"`
	RankAfter  int32 `json:"orden_nuevo"`
}

// MoveProductResponse resultado del intercambio de posiciones.
type MoveProductResponse struct {
	Product  RankChangeResponse `json:"producto"`
	Neighbor RankChangeResponse `json:"vecino"`
}

package dto

// CreateProviderRequest datos para crear un proveedor en una tienda.
type CreateProviderRequest struct {
	Name    string `json:"nombre"`
	StoreID int64  `json:"tienda_id"`
}

// UpdateProviderRequest campos actualizables de un proveedor.
type UpdateProviderRequest struct {
	Name *string `json:"nombre"`
}

// ProviderResponse representación de un proveedor.
type ProviderResponse struct {
	ID      int64  `json:"id"`
	StoreID int64  `json:"tienda_id"`
	Name    string `json:"nombre"`
}

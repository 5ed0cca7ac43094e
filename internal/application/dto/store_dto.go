package dto

// CreateStoreRequest datos para crear una tienda.
type CreateStoreRequest struct {
	Name string `json:"nombre"`
}

// UpdateStoreRequest datos para actualizar una tienda.
type UpdateStoreRequest struct {
	Name string `json:"nombre"`
}

// StoreResponse representación de una tienda.
type StoreResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"nombre"`
}

package dto

// CreatePermissionRequest grant de permisos de un usuario sobre una tienda.
type CreatePermissionRequest struct {
	UserID                int64 `json:"usuario_id"`
	StoreID               int64 `json:"tienda_id"`
	ManageProviders       bool  `json:"puede_gestionar_proveedores"`
	ManageProducts        bool  `json:"puede_gestionar_productos"`
	ManagePurchases       bool  `json:"puede_gestionar_compras"`
	EditPurchases         bool  `json:"puede_editar_compras"`
	ViewPurchaseInventory bool  `json:"puede_ver_inventario_compras"`
}

// UpdatePermissionRequest reemplaza los cinco flags del grant.
type UpdatePermissionRequest struct {
	ManageProviders       bool `json:"puede_gestionar_proveedores"`
	ManageProducts        bool `json:"puede_gestionar_productos"`
	ManagePurchases       bool `json:"puede_gestionar_compras"`
	EditPurchases         bool `json:"puede_editar_compras"`
	ViewPurchaseInventory bool `json:"puede_ver_inventario_compras"`
}

// PermissionResponse representación de un grant.
type PermissionResponse struct {
	ID                    int64 `json:"id"`
	UserID                int64 `json:"usuario_id"`
	StoreID               int64 `json:"tienda_id"`
	ManageProviders       bool  `json:"puede_gestionar_proveedores"`
	ManageProducts        bool  `json:"puede_gestionar_productos"`
	ManagePurchases       bool  `json:"puede_gestionar_compras"`
	EditPurchases         bool  `json:"puede_editar_compras"`
	ViewPurchaseInventory bool  `json:"puede_ver_inventario_compras"`
}

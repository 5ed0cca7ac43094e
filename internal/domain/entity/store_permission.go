package entity

// Capability es uno de los permisos por (usuario, tienda). Reemplaza el acceso
// por nombre de atributo del sistema original con un tipo enumerado.
type Capability int

const (
	CapManageProviders Capability = iota
	CapManageProducts
	CapManagePurchases
	CapEditPurchases
	CapViewPurchaseInventory
)

// String devuelve el nombre del permiso tal como viaja en la API.
func (c Capability) String() string {
	switch c {
	case CapManageProviders:
		return "puede_gestionar_proveedores"
	case CapManageProducts:
		return "puede_gestionar_productos"
	case CapManagePurchases:
		return "puede_gestionar_compras"
	case CapEditPurchases:
		return "puede_editar_compras"
	case CapViewPurchaseInventory:
		return "puede_ver_inventario_compras"
	default:
		return "desconocido"
	}
}

// StorePermission es el grant de permisos de un usuario sobre una tienda.
// A lo sumo un grant por (usuario, tienda); nunca se crean para superadmins.
type StorePermission struct {
	ID                    int64
	UserID                int64
	StoreID               int64
	ManageProviders       bool
	ManageProducts        bool
	ManagePurchases       bool
	EditPurchases         bool
	ViewPurchaseInventory bool
}

// Has reporta si el grant incluye el permiso c.
func (p *StorePermission) Has(c Capability) bool {
	if p == nil {
		return false
	}
	switch c {
	case CapManageProviders:
		return p.ManageProviders
	case CapManageProducts:
		return p.ManageProducts
	case CapManagePurchases:
		return p.ManagePurchases
	case CapEditPurchases:
		return p.EditPurchases
	case CapViewPurchaseInventory:
		return p.ViewPurchaseInventory
	default:
		return false
	}
}

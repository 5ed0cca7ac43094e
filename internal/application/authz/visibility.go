package authz

import (
	"github.com/jcastano/control-inventario/internal/domain/entity"
	"github.com/jcastano/control-inventario/internal/domain/inventory"
)

// RenderPriorInventory decide, línea por línea, si el inventario anterior de un
// detalle se revela o se oculta: camina detalle -> compra -> proveedor -> tienda
// y exige puede_ver_inventario_compras en esa tienda (superadmin siempre ve).
//
// La decisión no se cachea entre líneas de una misma respuesta: si los datos
// quedaran inconsistentes y dos detalles resolvieran a tiendas distintas, cada
// línea se evalúa por su cuenta. Ante cualquier fallo al resolver la cadena se
// oculta el valor.
func (s *Service) RenderPriorInventory(user *entity.User, detail *entity.PurchaseDetail) inventory.PriorInventory {
	if user == nil {
		return inventory.HiddenPriorInventory()
	}
	if user.IsSuperadmin {
		return inventory.VisiblePriorInventory(detail.PriorInventory)
	}

	storeID, ok, err := s.storeOfPurchase(detail.PurchaseID)
	if err != nil || !ok {
		return inventory.HiddenPriorInventory()
	}
	grant, err := s.perms.GetByUserAndStore(user.ID, storeID)
	if err != nil || !grant.Has(entity.CapViewPurchaseInventory) {
		return inventory.HiddenPriorInventory()
	}
	return inventory.VisiblePriorInventory(detail.PriorInventory)
}

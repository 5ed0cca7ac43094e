package authz

import (
	"fmt"

	"github.com/jcastano/control-inventario/internal/domain"
)

// ScopeHints son los identificadores candidatos extraídos de una petición
// (ruta, query o body). Cero significa ausente.
type ScopeHints struct {
	StoreID    int64
	ProviderID int64
	PurchaseID int64
	DetailID   int64
	ProductID  int64
}

// Empty reporta si no hay ningún identificador candidato.
func (h ScopeHints) Empty() bool {
	return h.StoreID == 0 && h.ProviderID == 0 && h.PurchaseID == 0 &&
		h.DetailID == 0 && h.ProductID == 0
}

// ResolveStore determina la única tienda que gobierna la operación caminando
// las cadenas de claves foráneas desde el identificador disponible.
//
// El orden de prioridad es fijo y los llamadores dependen de él: tienda_id,
// luego proveedor_id, luego compra_id, luego detalle_id, luego producto_id.
// La resolución es best-effort: si el identificador de mayor prioridad apunta a
// una fila que ya no existe se intenta el siguiente; agotados todos, el
// resultado es domain.ErrScopeMissing (error del cliente, no un 403).
func (s *Service) ResolveStore(h ScopeHints) (int64, error) {
	if h.StoreID != 0 {
		store, err := s.stores.GetByID(h.StoreID)
		if err != nil {
			return 0, fmt.Errorf("resolver tienda %d: %w", h.StoreID, err)
		}
		if store != nil {
			return store.ID, nil
		}
	}
	if h.ProviderID != 0 {
		if storeID, ok, err := s.storeOfProvider(h.ProviderID); err != nil {
			return 0, err
		} else if ok {
			return storeID, nil
		}
	}
	if h.PurchaseID != 0 {
		if storeID, ok, err := s.storeOfPurchase(h.PurchaseID); err != nil {
			return 0, err
		} else if ok {
			return storeID, nil
		}
	}
	if h.DetailID != 0 {
		detail, err := s.details.GetByID(h.DetailID)
		if err != nil {
			return 0, fmt.Errorf("resolver detalle %d: %w", h.DetailID, err)
		}
		if detail != nil {
			if storeID, ok, err := s.storeOfPurchase(detail.PurchaseID); err != nil {
				return 0, err
			} else if ok {
				return storeID, nil
			}
		}
	}
	if h.ProductID != 0 {
		product, err := s.products.GetByID(h.ProductID)
		if err != nil {
			return 0, fmt.Errorf("resolver producto %d: %w", h.ProductID, err)
		}
		if product != nil {
			if storeID, ok, err := s.storeOfProvider(product.ProviderID); err != nil {
				return 0, err
			} else if ok {
				return storeID, nil
			}
		}
	}
	return 0, domain.ErrScopeMissing
}

// storeOfProvider camina proveedor -> tienda. ok=false si la fila no existe.
func (s *Service) storeOfProvider(providerID int64) (int64, bool, error) {
	provider, err := s.providers.GetByID(providerID)
	if err != nil {
		return 0, false, fmt.Errorf("resolver proveedor %d: %w", providerID, err)
	}
	if provider == nil {
		return 0, false, nil
	}
	return provider.StoreID, true, nil
}

// storeOfPurchase camina compra -> proveedor -> tienda.
func (s *Service) storeOfPurchase(purchaseID int64) (int64, bool, error) {
	purchase, err := s.purchases.GetByID(purchaseID)
	if err != nil {
		return 0, false, fmt.Errorf("resolver compra %d: %w", purchaseID, err)
	}
	if purchase == nil {
		return 0, false, nil
	}
	return s.storeOfProvider(purchase.ProviderID)
}

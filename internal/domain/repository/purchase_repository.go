package repository

import (
	"time"

	"github.com/jcastano/control-inventario/internal/domain/entity"
)

// PurchaseRepository define el puerto de persistencia para Purchase (DIP).
type PurchaseRepository interface {
	// Create devuelve domain.ErrDuplicate si ya existe compra para (proveedor, fecha).
	Create(purchase *entity.Purchase) error
	GetByID(id int64) (*entity.Purchase, error)
	ListByProvider(providerID int64) ([]*entity.Purchase, error)

	// ListRange devuelve hasta limit compras, las más recientes primero, con
	// filtro opcional de fechas. storeIDs nil = sin filtro de tienda (superadmin);
	// slice vacío = ninguna tienda visible.
	ListRange(start, end *time.Time, limit int, storeIDs []int64) ([]*entity.Purchase, error)

	Update(purchase *entity.Purchase) error
	Delete(id int64) error
}

// PurchaseDetailRepository define el puerto de persistencia para PurchaseDetail.
type PurchaseDetailRepository interface {
	// Create devuelve domain.ErrDuplicate si ya existe detalle para (compra, producto).
	Create(detail *entity.PurchaseDetail) error

	// CreateMissing inserta los detalles que aún no existan para su par
	// (compra, producto); los pares ya presentes se ignoran en silencio.
	CreateMissing(details []*entity.PurchaseDetail) error

	GetByID(id int64) (*entity.PurchaseDetail, error)

	// ListByPurchase devuelve los detalles con nombre y orden del producto
	// (join), ordenados por (orden ASC NULLS LAST, id ASC).
	ListByPurchase(purchaseID int64) ([]*entity.PurchaseDetail, error)

	Update(detail *entity.PurchaseDetail) error
	Delete(id int64) error
}

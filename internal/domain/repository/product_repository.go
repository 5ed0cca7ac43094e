package repository

import "github.com/jcastano/control-inventario/internal/domain/entity"

// ProductRepository define el puerto de persistencia para Product (DIP).
//
// ListByProvider y ListByProviderForUpdate devuelven los productos ordenados por
// (orden ASC NULLS LAST, id ASC): el orden canónico que asume la normalización.
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id int64) (*entity.Product, error)
	GetByProviderAndName(providerID int64, name string) (*entity.Product, error)
	ListByProvider(providerID int64) ([]*entity.Product, error)

	// ListByProviderForUpdate bloquea todas las filas del proveedor
	// (SELECT ... FOR UPDATE); solo tiene sentido dentro de una transacción.
	ListByProviderForUpdate(providerID int64) ([]*entity.Product, error)

	// MaxRank devuelve el mayor orden asignado del proveedor (0 si no hay).
	MaxRank(providerID int64) (int32, error)

	UpdateRank(id int64, rank int32) error
	Update(product *entity.Product) error
	Delete(id int64) error
}

package repository

import "github.com/jcastano/control-inventario/internal/domain/entity"

// ProviderRepository define el puerto de persistencia para Provider (DIP).
type ProviderRepository interface {
	Create(provider *entity.Provider) error
	GetByID(id int64) (*entity.Provider, error)
	GetByStoreAndName(storeID int64, name string) (*entity.Provider, error)
	ListByStore(storeID int64) ([]*entity.Provider, error)
	Update(provider *entity.Provider) error
	Delete(id int64) error
}

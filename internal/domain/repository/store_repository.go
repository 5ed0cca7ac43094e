package repository

import "github.com/jcastano/control-inventario/internal/domain/entity"

// StoreRepository define el puerto de persistencia para Store (DIP).
// Los métodos Get* devuelven (nil, nil) cuando la fila no existe.
type StoreRepository interface {
	Create(store *entity.Store) error
	GetByID(id int64) (*entity.Store, error)
	GetByName(name string) (*entity.Store, error)
	List() ([]*entity.Store, error)
	ListByIDs(ids []int64) ([]*entity.Store, error)
	Update(store *entity.Store) error
	Delete(id int64) error
}

package repository

import "github.com/jcastano/control-inventario/internal/domain/entity"

// PermissionRepository define el puerto de persistencia para StorePermission.
type PermissionRepository interface {
	// Create devuelve domain.ErrDuplicate si ya existe grant para (usuario, tienda).
	Create(perm *entity.StorePermission) error
	GetByID(id int64) (*entity.StorePermission, error)
	GetByUserAndStore(userID, storeID int64) (*entity.StorePermission, error)
	ListByUser(userID int64) ([]*entity.StorePermission, error)

	// ListStoreIDs devuelve las tiendas con algún grant para el usuario
	// (la visibilidad de lectura, independiente de qué permisos tenga el grant).
	ListStoreIDs(userID int64) ([]int64, error)

	Update(perm *entity.StorePermission) error
	Delete(id int64) error
}

package usecase

import (
	"github.com/jcastano/control-inventario/internal/application/dto"
	"github.com/jcastano/control-inventario/internal/domain"
	"github.com/jcastano/control-inventario/internal/domain/entity"
	"github.com/jcastano/control-inventario/internal/domain/repository"
)

// PermissionUseCase administración de grants usuario-tienda (solo superadmin
// vía el guard HTTP).
type PermissionUseCase struct {
	repo   repository.PermissionRepository
	users  repository.UserRepository
	stores repository.StoreRepository
}

// NewPermissionUseCase construye el caso de uso.
func NewPermissionUseCase(
	repo repository.PermissionRepository,
	users repository.UserRepository,
	stores repository.StoreRepository,
) *PermissionUseCase {
	return &PermissionUseCase{repo: repo, users: users, stores: stores}
}

// Create crea el grant (usuario, tienda). Usuario o tienda inexistentes:
// domain.ErrNotFound; usuario superadmin: domain.ErrForbidden (los superadmins
// no llevan grants); par repetido: domain.ErrDuplicate.
func (uc *PermissionUseCase) Create(in dto.CreatePermissionRequest) (*dto.PermissionResponse, error) {
	user, err := uc.users.GetByID(in.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if user.IsSuperadmin {
		return nil, domain.ErrForbidden
	}
	store, err := uc.stores.GetByID(in.StoreID)
	if err != nil {
		return nil, err
	}
	if store == nil {
		return nil, domain.ErrNotFound
	}
	existing, err := uc.repo.GetByUserAndStore(in.UserID, in.StoreID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}

	perm := &entity.StorePermission{
		UserID:                in.UserID,
		StoreID:               in.StoreID,
		ManageProviders:       in.ManageProviders,
		ManageProducts:        in.ManageProducts,
		ManagePurchases:       in.ManagePurchases,
		EditPurchases:         in.EditPurchases,
		ViewPurchaseInventory: in.ViewPurchaseInventory,
	}
	if err := uc.repo.Create(perm); err != nil {
		return nil, err
	}
	return toPermissionResponse(perm), nil
}

// ListByUser lista los grants de un usuario.
func (uc *PermissionUseCase) ListByUser(userID int64) ([]dto.PermissionResponse, error) {
	perms, err := uc.repo.ListByUser(userID)
	if err != nil {
		return nil, err
	}
	items := make([]dto.PermissionResponse, 0, len(perms))
	for _, p := range perms {
		items = append(items, *toPermissionResponse(p))
	}
	return items, nil
}

// Update reemplaza los cinco flags del grant.
func (uc *PermissionUseCase) Update(id int64, in dto.UpdatePermissionRequest) (*dto.PermissionResponse, error) {
	perm, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if perm == nil {
		return nil, domain.ErrNotFound
	}
	perm.ManageProviders = in.ManageProviders
	perm.ManageProducts = in.ManageProducts
	perm.ManagePurchases = in.ManagePurchases
	perm.EditPurchases = in.EditPurchases
	perm.ViewPurchaseInventory = in.ViewPurchaseInventory
	if err := uc.repo.Update(perm); err != nil {
		return nil, err
	}
	return toPermissionResponse(perm), nil
}

// Delete elimina un grant.
func (uc *PermissionUseCase) Delete(id int64) error {
	perm, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if perm == nil {
		return domain.ErrNotFound
	}
	return uc.repo.Delete(id)
}

func toPermissionResponse(p *entity.StorePermission) *dto.PermissionResponse {
	return &dto.PermissionResponse{
		ID:                    p.ID,
		UserID:                p.UserID,
		StoreID:               p.StoreID,
		ManageProviders:       p.ManageProviders,
		ManageProducts:        p.ManageProducts,
		ManagePurchases:       p.ManagePurchases,
		EditPurchases:         p.EditPurchases,
		ViewPurchaseInventory: p.ViewPurchaseInventory,
	}
}

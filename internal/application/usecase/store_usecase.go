package usecase

import (
	"github.com/jcastano/control-inventario/internal/application/authz"
	"github.com/jcastano/control-inventario/internal/application/dto"
	"github.com/jcastano/control-inventario/internal/domain"
	"github.com/jcastano/control-inventario/internal/domain/entity"
	"github.com/jcastano/control-inventario/internal/domain/repository"
)

// StoreUseCase casos de uso CRUD para tiendas. Las mutaciones son de
// superadmin (no existe permiso por tienda para crear tiendas); el listado se
// intersecta con las tiendas visibles del solicitante.
type StoreUseCase struct {
	repo  repository.StoreRepository
	authz *authz.Service
}

// NewStoreUseCase construye el caso de uso.
func NewStoreUseCase(repo repository.StoreRepository, authzSvc *authz.Service) *StoreUseCase {
	return &StoreUseCase{repo: repo, authz: authzSvc}
}

// Create crea una tienda; nombre repetido devuelve domain.ErrDuplicate.
func (uc *StoreUseCase) Create(in dto.CreateStoreRequest) (*dto.StoreResponse, error) {
	existing, err := uc.repo.GetByName(in.Name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	store := &entity.Store{Name: in.Name}
	if err := uc.repo.Create(store); err != nil {
		return nil, err
	}
	return toStoreResponse(store), nil
}

// List devuelve las tiendas visibles para el solicitante: todas para un
// superadmin, las de sus grants para un usuario normal, ninguna sin sesión.
func (uc *StoreUseCase) List(requester *entity.User) ([]dto.StoreResponse, error) {
	all, storeIDs, err := uc.authz.AllowedStores(requester)
	if err != nil {
		return nil, err
	}

	var stores []*entity.Store
	if all {
		stores, err = uc.repo.List()
	} else if len(storeIDs) > 0 {
		stores, err = uc.repo.ListByIDs(storeIDs)
	}
	if err != nil {
		return nil, err
	}

	items := make([]dto.StoreResponse, 0, len(stores))
	for _, s := range stores {
		items = append(items, *toStoreResponse(s))
	}
	return items, nil
}

// Update renombra una tienda; nombre ya usado devuelve domain.ErrDuplicate.
func (uc *StoreUseCase) Update(id int64, in dto.UpdateStoreRequest) (*dto.StoreResponse, error) {
	store, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if store == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != "" && in.Name != store.Name {
		existing, err := uc.repo.GetByName(in.Name)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, domain.ErrDuplicate
		}
		store.Name = in.Name
	}
	if err := uc.repo.Update(store); err != nil {
		return nil, err
	}
	return toStoreResponse(store), nil
}

// Delete elimina la tienda; proveedores, productos, compras, detalles y grants
// caen por cascade.
func (uc *StoreUseCase) Delete(id int64) error {
	store, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if store == nil {
		return domain.ErrNotFound
	}
	return uc.repo.Delete(id)
}

func toStoreResponse(s *entity.Store) *dto.StoreResponse {
	return &dto.StoreResponse{ID: s.ID, Name: s.Name}
}

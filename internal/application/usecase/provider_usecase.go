package usecase

import (
	"github.com/jcastano/control-inventario/internal/application/authz"
	"github.com/jcastano/control-inventario/internal/application/dto"
	"github.com/jcastano/control-inventario/internal/domain"
	"github.com/jcastano/control-inventario/internal/domain/entity"
	"github.com/jcastano/control-inventario/internal/domain/repository"
)

// ProviderUseCase casos de uso CRUD para proveedores.
type ProviderUseCase struct {
	repo   repository.ProviderRepository
	stores repository.StoreRepository
	authz  *authz.Service
}

// NewProviderUseCase construye el caso de uso.
func NewProviderUseCase(repo repository.ProviderRepository, stores repository.StoreRepository, authzSvc *authz.Service) *ProviderUseCase {
	return &ProviderUseCase{repo: repo, stores: stores, authz: authzSvc}
}

// Create crea un proveedor en una tienda; nombre repetido dentro de la tienda
// devuelve domain.ErrDuplicate.
func (uc *ProviderUseCase) Create(in dto.CreateProviderRequest) (*dto.ProviderResponse, error) {
	store, err := uc.stores.GetByID(in.StoreID)
	if err != nil {
		return nil, err
	}
	if store == nil {
		return nil, domain.ErrNotFound
	}
	existing, err := uc.repo.GetByStoreAndName(in.StoreID, in.Name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	provider := &entity.Provider{StoreID: in.StoreID, Name: in.Name}
	if err := uc.repo.Create(provider); err != nil {
		return nil, err
	}
	return toProviderResponse(provider), nil
}

// ListByStore lista los proveedores de una tienda. Si la tienda no está en el
// conjunto visible del solicitante la respuesta es la lista vacía (las
// lecturas degradan, no prohíben).
func (uc *ProviderUseCase) ListByStore(requester *entity.User, storeID int64) ([]dto.ProviderResponse, error) {
	visible, err := uc.authz.CanSeeStore(requester, storeID)
	if err != nil {
		return nil, err
	}
	if !visible {
		return []dto.ProviderResponse{}, nil
	}
	providers, err := uc.repo.ListByStore(storeID)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProviderResponse, 0, len(providers))
	for _, p := range providers {
		items = append(items, *toProviderResponse(p))
	}
	return items, nil
}

// Update renombra un proveedor; nombre ya usado en su tienda devuelve
// domain.ErrDuplicate.
func (uc *ProviderUseCase) Update(id int64, in dto.UpdateProviderRequest) (*dto.ProviderResponse, error) {
	provider, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if provider == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil && *in.Name != "" && *in.Name != provider.Name {
		existing, err := uc.repo.GetByStoreAndName(provider.StoreID, *in.Name)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, domain.ErrDuplicate
		}
		provider.Name = *in.Name
	}
	if err := uc.repo.Update(provider); err != nil {
		return nil, err
	}
	return toProviderResponse(provider), nil
}

// Delete elimina el proveedor; sus productos y compras caen por cascade.
func (uc *ProviderUseCase) Delete(id int64) error {
	provider, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if provider == nil {
		return domain.ErrNotFound
	}
	return uc.repo.Delete(id)
}

func toProviderResponse(p *entity.Provider) *dto.ProviderResponse {
	return &dto.ProviderResponse{ID: p.ID, StoreID: p.StoreID, Name: p.Name}
}

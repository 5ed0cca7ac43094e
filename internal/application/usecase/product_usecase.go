package usecase

import (
	"context"

	"github.com/jcastano/control-inventario/internal/application/authz"
	"github.com/jcastano/control-inventario/internal/application/dto"
	"github.com/jcastano/control-inventario/internal/application/ordering"
	"github.com/jcastano/control-inventario/internal/domain"
	"github.com/jcastano/control-inventario/internal/domain/entity"
	"github.com/jcastano/control-inventario/internal/domain/repository"
	"github.com/jcastano/control-inventario/pkg/logger"
)

// catalogTxRunner contrato mínimo de transacción que necesita la creación de
// productos (producto + relleno de detalles). Lo implementa postgres.TxRunner;
// la interfaz local evita acoplar este paquete al de compras.
type catalogTxRunner interface {
	RunPurchase(ctx context.Context, fn func(
		purchases repository.PurchaseRepository,
		details repository.PurchaseDetailRepository,
		products repository.ProductRepository,
	) error) error
}

// ProductUseCase casos de uso CRUD para productos. La posición (orden) la
// asigna el motor de ordenamiento al crear; el movimiento vive en
// ordering.UseCase.
type ProductUseCase struct {
	repo      repository.ProductRepository
	providers repository.ProviderRepository
	txRunner  catalogTxRunner
	authz     *authz.Service
	log       *logger.Logger
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(
	repo repository.ProductRepository,
	providers repository.ProviderRepository,
	txRunner catalogTxRunner,
	authzSvc *authz.Service,
	log *logger.Logger,
) *ProductUseCase {
	return &ProductUseCase{repo: repo, providers: providers, txRunner: txRunner, authz: authzSvc, log: log}
}

// Create crea el producto con orden = 1 + max(orden) del proveedor y, en la
// misma transacción, rellena un detalle (cantidad=0, inventario_anterior=0) en
// cada compra existente del proveedor: la consistencia bidireccional con la
// creación de compras. Nombre repetido devuelve domain.ErrDuplicate.
func (uc *ProductUseCase) Create(ctx context.Context, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	provider, err := uc.providers.GetByID(in.ProviderID)
	if err != nil {
		return nil, err
	}
	if provider == nil {
		return nil, domain.ErrNotFound
	}
	existing, err := uc.repo.GetByProviderAndName(in.ProviderID, in.Name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}

	product := &entity.Product{ProviderID: in.ProviderID, Name: in.Name}
	err = uc.txRunner.RunPurchase(ctx, func(
		purchases repository.PurchaseRepository,
		details repository.PurchaseDetailRepository,
		products repository.ProductRepository,
	) error {
		rank, err := ordering.NextRank(products, in.ProviderID)
		if err != nil {
			return err
		}
		product.Rank = &rank
		if err := products.Create(product); err != nil {
			return err
		}

		existing, err := purchases.ListByProvider(in.ProviderID)
		if err != nil {
			return err
		}
		backfill := make([]*entity.PurchaseDetail, 0, len(existing))
		for _, p := range existing {
			backfill = append(backfill, &entity.PurchaseDetail{
				PurchaseID: p.ID,
				ProductID:  product.ID,
			})
		}
		return details.CreateMissing(backfill)
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().
		Int64("producto_id", product.ID).
		Int64("proveedor_id", product.ProviderID).
		Int32("orden", product.RankValue()).
		Msg("producto creado")
	return toProductResponse(product), nil
}

// ListByProvider lista los productos de un proveedor en su orden de
// despliegue. Proveedor inexistente: domain.ErrNotFound; proveedor en tienda
// no visible para el solicitante: lista vacía.
func (uc *ProductUseCase) ListByProvider(requester *entity.User, providerID int64) ([]dto.ProductResponse, error) {
	provider, err := uc.providers.GetByID(providerID)
	if err != nil {
		return nil, err
	}
	if provider == nil {
		return nil, domain.ErrNotFound
	}
	visible, err := uc.authz.CanSeeStore(requester, provider.StoreID)
	if err != nil {
		return nil, err
	}
	if !visible {
		return []dto.ProductResponse{}, nil
	}

	products, err := uc.repo.ListByProvider(providerID)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(products))
	for _, p := range products {
		items = append(items, *toProductResponse(p))
	}
	return items, nil
}

// Update renombra un producto; nombre ya usado en su proveedor devuelve
// domain.ErrDuplicate.
func (uc *ProductUseCase) Update(id int64, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil && *in.Name != "" && *in.Name != product.Name {
		existing, err := uc.repo.GetByProviderAndName(product.ProviderID, *in.Name)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, domain.ErrDuplicate
		}
		product.Name = *in.Name
	}
	if err := uc.repo.Update(product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// Delete elimina un producto. El hueco que deja en el orden lo repara la
// normalización del siguiente Move.
func (uc *ProductUseCase) Delete(id int64) error {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if product == nil {
		return domain.ErrNotFound
	}
	return uc.repo.Delete(id)
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	return &dto.ProductResponse{ID: p.ID, ProviderID: p.ProviderID, Name: p.Name, Rank: p.Rank}
}

package purchase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jcastano/control-inventario/internal/application/authz"
	"github.com/jcastano/control-inventario/internal/application/dto"
	"github.com/jcastano/control-inventario/internal/domain"
	"github.com/jcastano/control-inventario/internal/domain/entity"
	"github.com/jcastano/control-inventario/internal/domain/inventory"
	"github.com/jcastano/control-inventario/internal/domain/repository"
	"github.com/jcastano/control-inventario/pkg/logger"
)

// DateLayout formato de fecha_compra en la API.
const DateLayout = "2006-01-02"

// DefaultRangeLimit máximo de compras por defecto en el listado por rango.
const DefaultRangeLimit = 3

// TxRunner ejecuta fn dentro de una transacción con los repos atados a la tx.
// Lo implementa postgres.TxRunner.
type TxRunner interface {
	RunPurchase(ctx context.Context, fn func(
		purchases repository.PurchaseRepository,
		details repository.PurchaseDetailRepository,
		products repository.ProductRepository,
	) error) error
}

// UseCase crea compras con su relleno de detalles, edita detalles con coerción
// tolerante y arma la respuesta anidada aplicando orden de producto y el filtro
// de visibilidad de inventario.
type UseCase struct {
	txRunner  TxRunner
	purchases repository.PurchaseRepository
	details   repository.PurchaseDetailRepository
	products  repository.ProductRepository
	providers repository.ProviderRepository
	authz     *authz.Service
	log       *logger.Logger
}

// NewUseCase construye el caso de uso.
func NewUseCase(
	txRunner TxRunner,
	purchases repository.PurchaseRepository,
	details repository.PurchaseDetailRepository,
	products repository.ProductRepository,
	providers repository.ProviderRepository,
	authzSvc *authz.Service,
	log *logger.Logger,
) *UseCase {
	return &UseCase{
		txRunner:  txRunner,
		purchases: purchases,
		details:   details,
		products:  products,
		providers: providers,
		authz:     authzSvc,
		log:       log,
	}
}

// Create crea la compra y, en la misma transacción, un detalle (cantidad=0,
// inventario_anterior=0) por cada producto del proveedor. Fecha duplicada para
// el mismo proveedor devuelve domain.ErrDuplicate y no toca la compra original.
func (uc *UseCase) Create(ctx context.Context, requester *entity.User, in dto.CreatePurchaseRequest) (*dto.PurchaseWithDetailsResponse, error) {
	provider, err := uc.providers.GetByID(in.ProviderID)
	if err != nil {
		return nil, err
	}
	if provider == nil {
		return nil, domain.ErrNotFound
	}

	date := time.Now()
	if in.Date != "" {
		date, err = time.Parse(DateLayout, in.Date)
		if err != nil {
			return nil, domain.ErrInvalidInput
		}
	}

	p := &entity.Purchase{ProviderID: in.ProviderID, Date: date}
	err = uc.txRunner.RunPurchase(ctx, func(
		purchases repository.PurchaseRepository,
		details repository.PurchaseDetailRepository,
		products repository.ProductRepository,
	) error {
		if err := purchases.Create(p); err != nil {
			return err
		}
		siblings, err := products.ListByProvider(in.ProviderID)
		if err != nil {
			return err
		}
		backfill := make([]*entity.PurchaseDetail, 0, len(siblings))
		for _, product := range siblings {
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
		Int64("compra_id", p.ID).
		Int64("proveedor_id", p.ProviderID).
		Str("fecha", p.Date.Format(DateLayout)).
		Msg("compra creada con detalles en cero")
	return uc.GetWithDetails(requester, p.ID)
}

// GetWithDetails arma la compra anidada: detalles ordenados por el orden del
// producto (los sin orden al final) y el inventario anterior pasado por el
// filtro de visibilidad línea por línea. Una compra de una tienda fuera del
// conjunto visible del solicitante degrada a domain.ErrNotFound, igual que el
// listado degrada a vacío.
func (uc *UseCase) GetWithDetails(requester *entity.User, purchaseID int64) (*dto.PurchaseWithDetailsResponse, error) {
	p, err := uc.purchases.GetByID(purchaseID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	visible, err := uc.visibleTo(requester, p.ID)
	if err != nil {
		return nil, err
	}
	if !visible {
		return nil, domain.ErrNotFound
	}
	return uc.assemble(requester, p)
}

// visibleTo reporta si la tienda de la compra está dentro del conjunto visible
// del solicitante. Una cadena irresoluble cuenta como no visible.
func (uc *UseCase) visibleTo(requester *entity.User, purchaseID int64) (bool, error) {
	if requester != nil && requester.IsSuperadmin {
		return true, nil
	}
	storeID, err := uc.authz.ResolveStore(authz.ScopeHints{PurchaseID: purchaseID})
	if err != nil {
		if errors.Is(err, domain.ErrScopeMissing) {
			return false, nil
		}
		return false, err
	}
	return uc.authz.CanSeeStore(requester, storeID)
}

// ListByRange devuelve hasta limit compras (las más recientes primero) con
// filtro opcional [inicio, fin], intersectadas con las tiendas visibles del
// solicitante. Sin tiendas visibles la respuesta es la lista vacía, no un 403:
// las lecturas degradan a "nada visible".
func (uc *UseCase) ListByRange(requester *entity.User, start, end *time.Time, limit int) ([]dto.PurchaseWithDetailsResponse, error) {
	if limit <= 0 {
		limit = DefaultRangeLimit
	}

	all, storeIDs, err := uc.authz.AllowedStores(requester)
	if err != nil {
		return nil, err
	}
	if !all && len(storeIDs) == 0 {
		return []dto.PurchaseWithDetailsResponse{}, nil
	}
	var filter []int64
	if !all {
		filter = storeIDs
	}

	purchases, err := uc.purchases.ListRange(start, end, limit, filter)
	if err != nil {
		return nil, err
	}
	result := make([]dto.PurchaseWithDetailsResponse, 0, len(purchases))
	for _, p := range purchases {
		resp, err := uc.assemble(requester, p)
		if err != nil {
			return nil, err
		}
		result = append(result, *resp)
	}
	return result, nil
}

// Update cambia la fecha de una compra. Fecha ya usada por otra compra del
// mismo proveedor devuelve domain.ErrDuplicate.
func (uc *UseCase) Update(purchaseID int64, in dto.UpdatePurchaseRequest) (*dto.PurchaseResponse, error) {
	p, err := uc.purchases.GetByID(purchaseID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	if in.Date != nil {
		date, err := time.Parse(DateLayout, *in.Date)
		if err != nil {
			return nil, domain.ErrInvalidInput
		}
		p.Date = date
	}
	if err := uc.purchases.Update(p); err != nil {
		return nil, err
	}
	return toPurchaseResponse(p), nil
}

// Delete elimina la compra; sus detalles caen por cascade.
func (uc *UseCase) Delete(purchaseID int64) error {
	p, err := uc.purchases.GetByID(purchaseID)
	if err != nil {
		return err
	}
	if p == nil {
		return domain.ErrNotFound
	}
	return uc.purchases.Delete(purchaseID)
}

// CreateDetail crea un detalle manual para una compra existente. Cantidad e
// inventario pasan por la coerción tolerante; un par (compra, producto)
// repetido devuelve domain.ErrDuplicate.
func (uc *UseCase) CreateDetail(requester *entity.User, purchaseID int64, in dto.CreateDetailRequest) (*dto.DetailResponse, error) {
	p, err := uc.purchases.GetByID(purchaseID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	product, err := uc.products.GetByID(in.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}

	quantity, err := uc.coerce("cantidad", in.Quantity)
	if err != nil {
		return nil, err
	}
	prior, err := uc.coerce("inventario_anterior", in.PriorInventory)
	if err != nil {
		return nil, err
	}

	d := &entity.PurchaseDetail{
		PurchaseID:     purchaseID,
		ProductID:      in.ProductID,
		Quantity:       quantity,
		PriorInventory: prior,
	}
	if err := uc.details.Create(d); err != nil {
		return nil, err
	}
	d.ProductName = product.Name
	resp := uc.toDetailResponse(requester, d)
	return &resp, nil
}

// UpdateDetail edita cantidad e inventario anterior de un detalle.
func (uc *UseCase) UpdateDetail(requester *entity.User, detailID int64, in dto.UpdateDetailRequest) (*dto.DetailResponse, error) {
	d, err := uc.details.GetByID(detailID)
	if err != nil {
		return nil, err
	}
	if d == nil {
		return nil, domain.ErrNotFound
	}

	if len(in.Quantity) > 0 {
		quantity, err := uc.coerce("cantidad", in.Quantity)
		if err != nil {
			return nil, err
		}
		d.Quantity = quantity
	}
	if len(in.PriorInventory) > 0 {
		prior, err := uc.coerce("inventario_anterior", in.PriorInventory)
		if err != nil {
			return nil, err
		}
		d.PriorInventory = prior
	}
	if err := uc.details.Update(d); err != nil {
		return nil, err
	}
	resp := uc.toDetailResponse(requester, d)
	return &resp, nil
}

// DeleteDetail elimina un detalle de compra.
func (uc *UseCase) DeleteDetail(detailID int64) error {
	d, err := uc.details.GetByID(detailID)
	if err != nil {
		return err
	}
	if d == nil {
		return domain.ErrNotFound
	}
	return uc.details.Delete(detailID)
}

// coerce aplica la coerción tolerante y deja rastro en el log cuando hubo
// recorte, para que la política de corrección silenciosa sea visible.
func (uc *UseCase) coerce(field string, raw []byte) (int64, error) {
	value, clamped, err := inventory.CoerceQuantity(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %s debe ser numérico", domain.ErrInvalidInput, field)
	}
	if clamped {
		uc.log.Warn().
			Str("campo", field).
			Str("recibido", string(raw)).
			Int64("usado", value).
			Msg("valor numérico recortado por coerción tolerante")
	}
	return value, nil
}

func (uc *UseCase) assemble(requester *entity.User, p *entity.Purchase) (*dto.PurchaseWithDetailsResponse, error) {
	lines, err := uc.details.ListByPurchase(p.ID)
	if err != nil {
		return nil, err
	}
	details := make([]dto.DetailResponse, 0, len(lines))
	for _, d := range lines {
		details = append(details, uc.toDetailResponse(requester, d))
	}
	return &dto.PurchaseWithDetailsResponse{
		ID:         p.ID,
		ProviderID: p.ProviderID,
		Date:       p.Date.Format(DateLayout),
		Details:    details,
	}, nil
}

func (uc *UseCase) toDetailResponse(requester *entity.User, d *entity.PurchaseDetail) dto.DetailResponse {
	return dto.DetailResponse{
		ID:             d.ID,
		PurchaseID:     d.PurchaseID,
		ProductID:      d.ProductID,
		Quantity:       d.Quantity,
		PriorInventory: dto.PriorInventoryJSON{Inv: uc.authz.RenderPriorInventory(requester, d)},
		ProductName:    d.ProductName,
	}
}

func toPurchaseResponse(p *entity.Purchase) *dto.PurchaseResponse {
	return &dto.PurchaseResponse{
		ID:         p.ID,
		ProviderID: p.ProviderID,
		Date:       p.Date.Format(DateLayout),
	}
}

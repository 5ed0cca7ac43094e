package purchase

import (
	"context"

	"github.com/jcastano/control-inventario/internal/domain"
	"github.com/jcastano/control-inventario/internal/domain/entity"
	"github.com/jcastano/control-inventario/internal/domain/inventory"
)

// ReportLine línea del reporte de compra; el inventario viaja como variante
// para que el generador respete la redacción.
type ReportLine struct {
	ProductName    string
	Quantity       int64
	PriorInventory inventory.PriorInventory
}

// ReportGenerator genera el documento del reporte (puerto; lo implementa
// pdf.MarotoReportGenerator).
type ReportGenerator interface {
	GeneratePurchaseReport(
		ctx context.Context,
		store *entity.Store,
		provider *entity.Provider,
		purchase *entity.Purchase,
		lines []ReportLine,
	) ([]byte, error)
}

// ReportUseCase arma el reporte PDF de una compra con sus detalles.
type ReportUseCase struct {
	purchases *UseCase
	stores    storeGetter
	generator ReportGenerator
}

// storeGetter contrato mínimo sobre tiendas que necesita el reporte.
type storeGetter interface {
	GetByID(id int64) (*entity.Store, error)
}

// NewReportUseCase construye el caso de uso del reporte.
func NewReportUseCase(purchases *UseCase, stores storeGetter, generator ReportGenerator) *ReportUseCase {
	return &ReportUseCase{purchases: purchases, stores: stores, generator: generator}
}

// Generate produce los bytes del PDF de la compra para el solicitante dado.
// Las líneas siguen el orden de producto y pasan por el filtro de visibilidad,
// igual que la respuesta JSON.
func (uc *ReportUseCase) Generate(ctx context.Context, requester *entity.User, purchaseID int64) ([]byte, error) {
	p, err := uc.purchases.purchases.GetByID(purchaseID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	provider, err := uc.purchases.providers.GetByID(p.ProviderID)
	if err != nil {
		return nil, err
	}
	if provider == nil {
		return nil, domain.ErrNotFound
	}
	store, err := uc.stores.GetByID(provider.StoreID)
	if err != nil {
		return nil, err
	}
	if store == nil {
		return nil, domain.ErrNotFound
	}

	rows, err := uc.purchases.details.ListByPurchase(p.ID)
	if err != nil {
		return nil, err
	}
	lines := make([]ReportLine, 0, len(rows))
	for _, d := range rows {
		lines = append(lines, ReportLine{
			ProductName:    d.ProductName,
			Quantity:       d.Quantity,
			PriorInventory: uc.purchases.authz.RenderPriorInventory(requester, d),
		})
	}

	return uc.generator.GeneratePurchaseReport(ctx, store, provider, p, lines)
}

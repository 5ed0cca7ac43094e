package purchase_test

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jcastano/control-inventario/internal/application/authz"
	"github.com/jcastano/control-inventario/internal/application/dto"
	"github.com/jcastano/control-inventario/internal/application/purchase"
	"github.com/jcastano/control-inventario/internal/domain"
	"github.com/jcastano/control-inventario/internal/domain/entity"
	"github.com/jcastano/control-inventario/internal/domain/repository"
	"github.com/jcastano/control-inventario/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type fakeProviders struct{ rows map[int64]*entity.Provider }

func (f *fakeProviders) Create(p *entity.Provider) error            { f.rows[p.ID] = p; return nil }
func (f *fakeProviders) GetByID(id int64) (*entity.Provider, error) { return f.rows[id], nil }
func (f *fakeProviders) GetByStoreAndName(int64, string) (*entity.Provider, error) {
	return nil, nil
}
func (f *fakeProviders) ListByStore(int64) ([]*entity.Provider, error) { return nil, nil }
func (f *fakeProviders) Update(*entity.Provider) error                 { return nil }
func (f *fakeProviders) Delete(id int64) error                         { delete(f.rows, id); return nil }

type fakeProducts struct{ rows map[int64]*entity.Product }

func (f *fakeProducts) Create(p *entity.Product) error            { f.rows[p.ID] = p; return nil }
func (f *fakeProducts) GetByID(id int64) (*entity.Product, error) { return f.rows[id], nil }
func (f *fakeProducts) GetByProviderAndName(int64, string) (*entity.Product, error) {
	return nil, nil
}
func (f *fakeProducts) ListByProvider(providerID int64) ([]*entity.Product, error) {
	var out []*entity.Product
	for _, p := range f.rows {
		if p.ProviderID == providerID {
			out = append(out, p)
		}
	}
	sortByRank(out)
	return out, nil
}
func (f *fakeProducts) ListByProviderForUpdate(providerID int64) ([]*entity.Product, error) {
	return f.ListByProvider(providerID)
}
func (f *fakeProducts) MaxRank(int64) (int32, error)  { return 0, nil }
func (f *fakeProducts) UpdateRank(int64, int32) error { return nil }
func (f *fakeProducts) Update(*entity.Product) error  { return nil }
func (f *fakeProducts) Delete(id int64) error         { delete(f.rows, id); return nil }

func sortByRank(products []*entity.Product) {
	sort.Slice(products, func(i, j int) bool {
		a, b := products[i], products[j]
		switch {
		case a.Rank == nil && b.Rank == nil:
			return a.ID < b.ID
		case a.Rank == nil:
			return false
		case b.Rank == nil:
			return true
		case *a.Rank != *b.Rank:
			return *a.Rank < *b.Rank
		default:
			return a.ID < b.ID
		}
	})
}

type fakePurchases struct {
	rows      map[int64]*entity.Purchase
	providers *fakeProviders
	nextID    int64
}

func (f *fakePurchases) Create(p *entity.Purchase) error {
	for _, other := range f.rows {
		if other.ProviderID == p.ProviderID && sameDay(other.Date, p.Date) {
			return domain.ErrDuplicate
		}
	}
	f.nextID++
	p.ID = f.nextID
	cp := *p
	f.rows[p.ID] = &cp
	return nil
}
func (f *fakePurchases) GetByID(id int64) (*entity.Purchase, error) {
	p, ok := f.rows[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}
func (f *fakePurchases) ListByProvider(int64) ([]*entity.Purchase, error) { return nil, nil }
func (f *fakePurchases) ListRange(start, end *time.Time, limit int, storeIDs []int64) ([]*entity.Purchase, error) {
	var out []*entity.Purchase
	for _, p := range f.rows {
		if start != nil && p.Date.Before(*start) {
			continue
		}
		if end != nil && p.Date.After(*end) {
			continue
		}
		if storeIDs != nil && !f.visible(p.ProviderID, storeIDs) {
			continue
		}
		cp := *p
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
func (f *fakePurchases) visible(providerID int64, storeIDs []int64) bool {
	provider, ok := f.providers.rows[providerID]
	if !ok {
		return false
	}
	for _, id := range storeIDs {
		if id == provider.StoreID {
			return true
		}
	}
	return false
}
func (f *fakePurchases) Update(p *entity.Purchase) error {
	cp := *p
	f.rows[p.ID] = &cp
	return nil
}
func (f *fakePurchases) Delete(id int64) error { delete(f.rows, id); return nil }

type fakeDetails struct {
	rows     map[int64]*entity.PurchaseDetail
	products *fakeProducts
	nextID   int64

	failCreateMissing bool
}

func (f *fakeDetails) Create(d *entity.PurchaseDetail) error {
	for _, other := range f.rows {
		if other.PurchaseID == d.PurchaseID && other.ProductID == d.ProductID {
			return domain.ErrDuplicate
		}
	}
	f.nextID++
	d.ID = f.nextID
	cp := *d
	f.rows[d.ID] = &cp
	return nil
}
func (f *fakeDetails) CreateMissing(details []*entity.PurchaseDetail) error {
	if f.failCreateMissing {
		return errors.New("fallo inducido")
	}
	for _, d := range details {
		if err := f.Create(d); err != nil && !errors.Is(err, domain.ErrDuplicate) {
			return err
		}
	}
	return nil
}
func (f *fakeDetails) GetByID(id int64) (*entity.PurchaseDetail, error) {
	d, ok := f.rows[id]
	if !ok {
		return nil, nil
	}
	cp := *d
	return &cp, nil
}
func (f *fakeDetails) ListByPurchase(purchaseID int64) ([]*entity.PurchaseDetail, error) {
	var out []*entity.PurchaseDetail
	for _, d := range f.rows {
		if d.PurchaseID != purchaseID {
			continue
		}
		cp := *d
		if p, ok := f.products.rows[d.ProductID]; ok {
			cp.ProductName = p.Name
			cp.ProductRank = p.Rank
		}
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		switch {
		case a.ProductRank == nil && b.ProductRank == nil:
			return a.ProductID < b.ProductID
		case a.ProductRank == nil:
			return false
		case b.ProductRank == nil:
			return true
		case *a.ProductRank != *b.ProductRank:
			return *a.ProductRank < *b.ProductRank
		default:
			return a.ProductID < b.ProductID
		}
	})
	return out, nil
}
func (f *fakeDetails) Update(d *entity.PurchaseDetail) error {
	cp := *d
	f.rows[d.ID] = &cp
	return nil
}
func (f *fakeDetails) Delete(id int64) error { delete(f.rows, id); return nil }

type fakePerms struct{ rows []*entity.StorePermission }

func (f *fakePerms) Create(p *entity.StorePermission) error { f.rows = append(f.rows, p); return nil }
func (f *fakePerms) GetByID(int64) (*entity.StorePermission, error) { return nil, nil }
func (f *fakePerms) GetByUserAndStore(userID, storeID int64) (*entity.StorePermission, error) {
	for _, p := range f.rows {
		if p.UserID == userID && p.StoreID == storeID {
			return p, nil
		}
	}
	return nil, nil
}
func (f *fakePerms) ListByUser(int64) ([]*entity.StorePermission, error) { return nil, nil }
func (f *fakePerms) ListStoreIDs(userID int64) ([]int64, error) {
	var ids []int64
	for _, p := range f.rows {
		if p.UserID == userID {
			ids = append(ids, p.StoreID)
		}
	}
	return ids, nil
}
func (f *fakePerms) Update(*entity.StorePermission) error { return nil }
func (f *fakePerms) Delete(int64) error                   { return nil }

// fakeTxRunner pasa los mismos fakes como repos "de la transacción" y, si fn
// falla, restaura el estado previo para emular el rollback.
type fakeTxRunner struct {
	purchases *fakePurchases
	details   *fakeDetails
	products  *fakeProducts
}

func (f *fakeTxRunner) RunPurchase(_ context.Context, fn func(
	purchases repository.PurchaseRepository,
	details repository.PurchaseDetailRepository,
	products repository.ProductRepository,
) error) error {
	purchasesBefore := snapshotPurchases(f.purchases.rows)
	detailsBefore := snapshotDetails(f.details.rows)
	if err := fn(f.purchases, f.details, f.products); err != nil {
		f.purchases.rows = purchasesBefore
		f.details.rows = detailsBefore
		return err
	}
	return nil
}

func snapshotPurchases(rows map[int64]*entity.Purchase) map[int64]*entity.Purchase {
	out := make(map[int64]*entity.Purchase, len(rows))
	for id, p := range rows {
		cp := *p
		out[id] = &cp
	}
	return out
}

func snapshotDetails(rows map[int64]*entity.PurchaseDetail) map[int64]*entity.PurchaseDetail {
	out := make(map[int64]*entity.PurchaseDetail, len(rows))
	for id, d := range rows {
		cp := *d
		out[id] = &cp
	}
	return out
}

// ──────────────────────────────────────────────────────────────────────────────
// Fixture
// ──────────────────────────────────────────────────────────────────────────────

type fixture struct {
	providers *fakeProviders
	products  *fakeProducts
	purchases *fakePurchases
	details   *fakeDetails
	perms     *fakePerms
	uc        *purchase.UseCase
}

func newFixture() *fixture {
	f := &fixture{
		providers: &fakeProviders{rows: map[int64]*entity.Provider{}},
		products:  &fakeProducts{rows: map[int64]*entity.Product{}},
		perms:     &fakePerms{},
	}
	f.purchases = &fakePurchases{rows: map[int64]*entity.Purchase{}, providers: f.providers}
	f.details = &fakeDetails{rows: map[int64]*entity.PurchaseDetail{}, products: f.products}

	// users y stores no participan en estos flujos: el solicitante llega ya
	// resuelto y la tienda se camina desde compra -> proveedor.
	authzSvc := authz.NewService(nil, f.perms, nil, f.providers, f.products, f.purchases, f.details, nil)
	tx := &fakeTxRunner{purchases: f.purchases, details: f.details, products: f.products}
	log := logger.New(logger.Config{Env: "development", Level: "error"})
	f.uc = purchase.NewUseCase(tx, f.purchases, f.details, f.products, f.providers, authzSvc, log)

	// Tienda 1: proveedor 10 con dos productos ordenados.
	// Tienda 2: proveedor 20 sin productos.
	f.providers.rows[10] = &entity.Provider{ID: 10, StoreID: 1, Name: "Molinos"}
	f.providers.rows[20] = &entity.Provider{ID: 20, StoreID: 2, Name: "Lácteos"}
	f.products.rows[100] = &entity.Product{ID: 100, ProviderID: 10, Name: "harina", Rank: intPtr(1)}
	f.products.rows[101] = &entity.Product{ID: 101, ProviderID: 10, Name: "azúcar", Rank: intPtr(2)}
	return f
}

func superadmin() *entity.User {
	return &entity.User{ID: 1, Username: "root", IsSuperadmin: true}
}

func intPtr(v int32) *int32 { return &v }

func raw(s string) json.RawMessage { return json.RawMessage(s) }

// ──────────────────────────────────────────────────────────────────────────────
// Create
// ──────────────────────────────────────────────────────────────────────────────

func TestCreate_RellenaDetallesEnCero(t *testing.T) {
	f := newFixture()

	resp, err := f.uc.Create(context.Background(), superadmin(), dto.CreatePurchaseRequest{
		ProviderID: 10,
		Date:       "2026-08-30",
	})
	require.NoError(t, err)
	require.Len(t, resp.Details, 2, "un detalle por cada producto del proveedor")
	assert.Equal(t, "2026-08-30", resp.Date)
	assert.Equal(t, "harina", resp.Details[0].ProductName)
	assert.Equal(t, "azúcar", resp.Details[1].ProductName)
	for _, d := range resp.Details {
		assert.Zero(t, d.Quantity)
		v, ok := d.PriorInventory.Inv.Value()
		require.True(t, ok)
		assert.Zero(t, v)
	}
}

func TestCreate_SinProductosNiFecha(t *testing.T) {
	f := newFixture()

	resp, err := f.uc.Create(context.Background(), superadmin(), dto.CreatePurchaseRequest{ProviderID: 20})
	require.NoError(t, err)
	assert.Empty(t, resp.Details)
	assert.Equal(t, time.Now().Format(purchase.DateLayout), resp.Date, "sin fecha se usa hoy")
}

func TestCreate_FechaDuplicada(t *testing.T) {
	f := newFixture()

	_, err := f.uc.Create(context.Background(), superadmin(), dto.CreatePurchaseRequest{ProviderID: 10, Date: "2026-08-30"})
	require.NoError(t, err)

	_, err = f.uc.Create(context.Background(), superadmin(), dto.CreatePurchaseRequest{ProviderID: 10, Date: "2026-08-30"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
	assert.Len(t, f.purchases.rows, 1, "la compra original no se toca")

	// El mismo día en otro proveedor sí es válido.
	_, err = f.uc.Create(context.Background(), superadmin(), dto.CreatePurchaseRequest{ProviderID: 20, Date: "2026-08-30"})
	assert.NoError(t, err)
}

func TestCreate_ProveedorInexistente(t *testing.T) {
	f := newFixture()

	_, err := f.uc.Create(context.Background(), superadmin(), dto.CreatePurchaseRequest{ProviderID: 99, Date: "2026-08-30"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCreate_FechaInvalida(t *testing.T) {
	f := newFixture()

	_, err := f.uc.Create(context.Background(), superadmin(), dto.CreatePurchaseRequest{ProviderID: 10, Date: "30/08/2026"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Empty(t, f.purchases.rows)
}

func TestCreate_RollbackSiFallaElRelleno(t *testing.T) {
	f := newFixture()
	f.details.failCreateMissing = true

	_, err := f.uc.Create(context.Background(), superadmin(), dto.CreatePurchaseRequest{ProviderID: 10, Date: "2026-08-30"})
	require.Error(t, err)
	assert.Empty(t, f.purchases.rows, "la compra no debe quedar huérfana sin detalles")
}

// ──────────────────────────────────────────────────────────────────────────────
// Listado por rango
// ──────────────────────────────────────────────────────────────────────────────

func seedPurchases(t *testing.T, f *fixture, providerID int64, dates ...string) {
	t.Helper()
	for _, d := range dates {
		_, err := f.uc.Create(context.Background(), superadmin(), dto.CreatePurchaseRequest{ProviderID: providerID, Date: d})
		require.NoError(t, err)
	}
}

func TestListByRange_LimitePorDefecto(t *testing.T) {
	f := newFixture()
	seedPurchases(t, f, 10, "2026-08-25", "2026-08-26", "2026-08-27", "2026-08-28", "2026-08-29")

	result, err := f.uc.ListByRange(superadmin(), nil, nil, 0)
	require.NoError(t, err)
	require.Len(t, result, purchase.DefaultRangeLimit)
	assert.Equal(t, "2026-08-29", result[0].Date, "las más recientes primero")
	assert.Equal(t, "2026-08-27", result[2].Date)
}

func TestListByRange_FiltroDeFechas(t *testing.T) {
	f := newFixture()
	seedPurchases(t, f, 10, "2026-08-25", "2026-08-26", "2026-08-27")

	start, _ := time.Parse(purchase.DateLayout, "2026-08-26")
	end, _ := time.Parse(purchase.DateLayout, "2026-08-26")
	result, err := f.uc.ListByRange(superadmin(), &start, &end, 10)
	require.NoError(t, err)
	require.Len(t, result, 1)
	assert.Equal(t, "2026-08-26", result[0].Date)
}

func TestListByRange_SinTiendasVisibles(t *testing.T) {
	f := newFixture()
	seedPurchases(t, f, 10, "2026-08-25")

	ana := &entity.User{ID: 2, Username: "ana"}
	result, err := f.uc.ListByRange(ana, nil, nil, 10)
	require.NoError(t, err)
	assert.NotNil(t, result)
	assert.Empty(t, result, "sin grants la lectura degrada a lista vacía, no a error")
}

func TestListByRange_FiltroPorTienda(t *testing.T) {
	f := newFixture()
	seedPurchases(t, f, 10, "2026-08-25")
	seedPurchases(t, f, 20, "2026-08-26")

	ana := &entity.User{ID: 2, Username: "ana"}
	f.perms.rows = append(f.perms.rows, &entity.StorePermission{ID: 1, UserID: 2, StoreID: 2})

	result, err := f.uc.ListByRange(ana, nil, nil, 10)
	require.NoError(t, err)
	require.Len(t, result, 1)
	assert.Equal(t, int64(20), result[0].ProviderID, "solo compras de tiendas con grant")
}

// ──────────────────────────────────────────────────────────────────────────────
// Detalles
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateDetail_CoercionTolerante(t *testing.T) {
	f := newFixture()
	seedPurchases(t, f, 20, "2026-08-25")
	f.products.rows[200] = &entity.Product{ID: 200, ProviderID: 20, Name: "leche"}

	resp, err := f.uc.CreateDetail(superadmin(), 1, dto.CreateDetailRequest{
		ProductID:      200,
		Quantity:       raw(`"7.9"`),
		PriorInventory: raw(`-3`),
	})
	require.NoError(t, err)
	assert.Equal(t, int64(7), resp.Quantity, "float en string se trunca")
	v, ok := resp.PriorInventory.Inv.Value()
	require.True(t, ok)
	assert.Zero(t, v, "negativo se recorta a cero")
	assert.Equal(t, "leche", resp.ProductName)
}

func TestCreateDetail_ParDuplicado(t *testing.T) {
	f := newFixture()
	seedPurchases(t, f, 10, "2026-08-25")

	// El relleno de Create ya generó el detalle (compra 1, producto 100).
	_, err := f.uc.CreateDetail(superadmin(), 1, dto.CreateDetailRequest{
		ProductID: 100,
		Quantity:  raw(`1`),
	})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestCreateDetail_ValorNoNumerico(t *testing.T) {
	f := newFixture()
	seedPurchases(t, f, 20, "2026-08-25")
	f.products.rows[200] = &entity.Product{ID: 200, ProviderID: 20, Name: "leche"}

	_, err := f.uc.CreateDetail(superadmin(), 1, dto.CreateDetailRequest{
		ProductID: 200,
		Quantity:  raw(`"abc"`),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestUpdateDetail_Parcial(t *testing.T) {
	f := newFixture()
	seedPurchases(t, f, 10, "2026-08-25")

	detailID := int64(1)
	resp, err := f.uc.UpdateDetail(superadmin(), detailID, dto.UpdateDetailRequest{
		Quantity: raw(`12`),
	})
	require.NoError(t, err)
	assert.Equal(t, int64(12), resp.Quantity)
	v, ok := resp.PriorInventory.Inv.Value()
	require.True(t, ok)
	assert.Zero(t, v, "el campo no enviado conserva su valor")
}

func TestUpdateDetail_Inexistente(t *testing.T) {
	f := newFixture()

	_, err := f.uc.UpdateDetail(superadmin(), 99, dto.UpdateDetailRequest{Quantity: raw(`1`)})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Visibilidad del inventario anterior en la respuesta anidada
// ──────────────────────────────────────────────────────────────────────────────

func TestGetWithDetails_RedaccionPorLinea(t *testing.T) {
	f := newFixture()
	seedPurchases(t, f, 10, "2026-08-25")

	ana := &entity.User{ID: 2, Username: "ana"}
	f.perms.rows = append(f.perms.rows, &entity.StorePermission{ID: 1, UserID: 2, StoreID: 1})

	// Grant sin puede_ver_inventario_compras: la compra se ve, el inventario no.
	resp, err := f.uc.GetWithDetails(ana, 1)
	require.NoError(t, err)
	require.Len(t, resp.Details, 2)
	for _, d := range resp.Details {
		assert.True(t, d.PriorInventory.Inv.Hidden())
	}

	// Con el permiso el valor se revela.
	f.perms.rows[0].ViewPurchaseInventory = true
	resp, err = f.uc.GetWithDetails(ana, 1)
	require.NoError(t, err)
	for _, d := range resp.Details {
		_, ok := d.PriorInventory.Inv.Value()
		assert.True(t, ok)
	}
}

func TestGetWithDetails_TiendaNoVisible(t *testing.T) {
	f := newFixture()
	seedPurchases(t, f, 10, "2026-08-25")

	// Sin grant en la tienda 1 la compra no existe para ana; tampoco para un
	// llamador anónimo. Las cantidades no deben filtrarse por lectura puntual.
	ana := &entity.User{ID: 2, Username: "ana"}
	_, err := f.uc.GetWithDetails(ana, 1)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = f.uc.GetWithDetails(nil, 1)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	// Un grant vacío en la tienda otorga visibilidad de lectura.
	f.perms.rows = append(f.perms.rows, &entity.StorePermission{ID: 1, UserID: 2, StoreID: 1})
	resp, err := f.uc.GetWithDetails(ana, 1)
	require.NoError(t, err)
	assert.Len(t, resp.Details, 2)
}

func TestGetWithDetails_OrdenDeProductos(t *testing.T) {
	f := newFixture()
	// Producto sin orden asignado: va al final.
	f.products.rows[102] = &entity.Product{ID: 102, ProviderID: 10, Name: "sal"}
	seedPurchases(t, f, 10, "2026-08-25")

	resp, err := f.uc.GetWithDetails(superadmin(), 1)
	require.NoError(t, err)
	require.Len(t, resp.Details, 3)
	assert.Equal(t, "harina", resp.Details[0].ProductName)
	assert.Equal(t, "azúcar", resp.Details[1].ProductName)
	assert.Equal(t, "sal", resp.Details[2].ProductName, "sin orden va al final")
}

func sameDay(a, b time.Time) bool {
	return a.Format(purchase.DateLayout) == b.Format(purchase.DateLayout)
}

package authz_test

import (
	"time"

	"github.com/jcastano/control-inventario/internal/application/authz"
	"github.com/jcastano/control-inventario/internal/domain"
	"github.com/jcastano/control-inventario/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria de los puertos de persistencia
// ──────────────────────────────────────────────────────────────────────────────

type memUsers struct{ rows map[int64]*entity.User }

func (m *memUsers) Create(u *entity.User) error { m.rows[u.ID] = u; return nil }
func (m *memUsers) GetByID(id int64) (*entity.User, error) {
	return m.rows[id], nil
}
func (m *memUsers) GetByUsername(username string) (*entity.User, error) {
	for _, u := range m.rows {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, nil
}
func (m *memUsers) GetByToken(token string) (*entity.User, error) {
	for _, u := range m.rows {
		if u.Token != nil && *u.Token == token {
			return u, nil
		}
	}
	return nil, nil
}
func (m *memUsers) List() ([]*entity.User, error) { return nil, nil }
func (m *memUsers) UpdateToken(id int64, token *string) error {
	u, ok := m.rows[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.Token = token
	return nil
}
func (m *memUsers) UpdatePassword(id int64, hash string) error {
	u, ok := m.rows[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.PasswordHash = hash
	return nil
}
func (m *memUsers) Delete(id int64) error { delete(m.rows, id); return nil }

type memPerms struct{ rows []*entity.StorePermission }

func (m *memPerms) Create(p *entity.StorePermission) error { m.rows = append(m.rows, p); return nil }
func (m *memPerms) GetByID(id int64) (*entity.StorePermission, error) {
	for _, p := range m.rows {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, nil
}
func (m *memPerms) GetByUserAndStore(userID, storeID int64) (*entity.StorePermission, error) {
	for _, p := range m.rows {
		if p.UserID == userID && p.StoreID == storeID {
			return p, nil
		}
	}
	return nil, nil
}
func (m *memPerms) ListByUser(userID int64) ([]*entity.StorePermission, error) {
	var out []*entity.StorePermission
	for _, p := range m.rows {
		if p.UserID == userID {
			out = append(out, p)
		}
	}
	return out, nil
}
func (m *memPerms) ListStoreIDs(userID int64) ([]int64, error) {
	var ids []int64
	for _, p := range m.rows {
		if p.UserID == userID {
			ids = append(ids, p.StoreID)
		}
	}
	return ids, nil
}
func (m *memPerms) Update(*entity.StorePermission) error { return nil }
func (m *memPerms) Delete(int64) error                   { return nil }

type memStores struct{ rows map[int64]*entity.Store }

func (m *memStores) Create(s *entity.Store) error             { m.rows[s.ID] = s; return nil }
func (m *memStores) GetByID(id int64) (*entity.Store, error)  { return m.rows[id], nil }
func (m *memStores) GetByName(string) (*entity.Store, error)  { return nil, nil }
func (m *memStores) List() ([]*entity.Store, error)           { return nil, nil }
func (m *memStores) ListByIDs([]int64) ([]*entity.Store, error) { return nil, nil }
func (m *memStores) Update(*entity.Store) error               { return nil }
func (m *memStores) Delete(id int64) error                    { delete(m.rows, id); return nil }

type memProviders struct{ rows map[int64]*entity.Provider }

func (m *memProviders) Create(p *entity.Provider) error            { m.rows[p.ID] = p; return nil }
func (m *memProviders) GetByID(id int64) (*entity.Provider, error) { return m.rows[id], nil }
func (m *memProviders) GetByStoreAndName(int64, string) (*entity.Provider, error) {
	return nil, nil
}
func (m *memProviders) ListByStore(int64) ([]*entity.Provider, error) { return nil, nil }
func (m *memProviders) Update(*entity.Provider) error                 { return nil }
func (m *memProviders) Delete(id int64) error                         { delete(m.rows, id); return nil }

type memCatalog struct{ rows map[int64]*entity.Product }

func (m *memCatalog) Create(p *entity.Product) error            { m.rows[p.ID] = p; return nil }
func (m *memCatalog) GetByID(id int64) (*entity.Product, error) { return m.rows[id], nil }
func (m *memCatalog) GetByProviderAndName(int64, string) (*entity.Product, error) {
	return nil, nil
}
func (m *memCatalog) ListByProvider(int64) ([]*entity.Product, error)          { return nil, nil }
func (m *memCatalog) ListByProviderForUpdate(int64) ([]*entity.Product, error) { return nil, nil }
func (m *memCatalog) MaxRank(int64) (int32, error)                             { return 0, nil }
func (m *memCatalog) UpdateRank(int64, int32) error                            { return nil }
func (m *memCatalog) Update(*entity.Product) error                             { return nil }
func (m *memCatalog) Delete(id int64) error                                    { delete(m.rows, id); return nil }

type memPurchases struct{ rows map[int64]*entity.Purchase }

func (m *memPurchases) Create(p *entity.Purchase) error            { m.rows[p.ID] = p; return nil }
func (m *memPurchases) GetByID(id int64) (*entity.Purchase, error) { return m.rows[id], nil }
func (m *memPurchases) ListByProvider(int64) ([]*entity.Purchase, error) { return nil, nil }
func (m *memPurchases) ListRange(*time.Time, *time.Time, int, []int64) ([]*entity.Purchase, error) {
	return nil, nil
}
func (m *memPurchases) Update(*entity.Purchase) error { return nil }
func (m *memPurchases) Delete(id int64) error         { delete(m.rows, id); return nil }

type memDetails struct{ rows map[int64]*entity.PurchaseDetail }

func (m *memDetails) Create(d *entity.PurchaseDetail) error        { m.rows[d.ID] = d; return nil }
func (m *memDetails) CreateMissing([]*entity.PurchaseDetail) error { return nil }
func (m *memDetails) GetByID(id int64) (*entity.PurchaseDetail, error) {
	return m.rows[id], nil
}
func (m *memDetails) ListByPurchase(int64) ([]*entity.PurchaseDetail, error) { return nil, nil }
func (m *memDetails) Update(*entity.PurchaseDetail) error                    { return nil }
func (m *memDetails) Delete(id int64) error                                  { delete(m.rows, id); return nil }

// ──────────────────────────────────────────────────────────────────────────────
// Fixture: un árbol tienda→proveedor→producto/compra→detalle con dos tiendas
// ──────────────────────────────────────────────────────────────────────────────

type fixture struct {
	users     *memUsers
	perms     *memPerms
	stores    *memStores
	providers *memProviders
	products  *memCatalog
	purchases *memPurchases
	details   *memDetails
	svc       *authz.Service
}

func newFixture() *fixture {
	f := &fixture{
		users:     &memUsers{rows: map[int64]*entity.User{}},
		perms:     &memPerms{},
		stores:    &memStores{rows: map[int64]*entity.Store{}},
		providers: &memProviders{rows: map[int64]*entity.Provider{}},
		products:  &memCatalog{rows: map[int64]*entity.Product{}},
		purchases: &memPurchases{rows: map[int64]*entity.Purchase{}},
		details:   &memDetails{rows: map[int64]*entity.PurchaseDetail{}},
	}
	f.svc = authz.NewService(f.users, f.perms, f.stores, f.providers, f.products, f.purchases, f.details, nil)

	// Tienda 1: proveedor 10, producto 100, compra 1000, detalle 10000.
	// Tienda 2: proveedor 20.
	f.stores.rows[1] = &entity.Store{ID: 1, Name: "Central"}
	f.stores.rows[2] = &entity.Store{ID: 2, Name: "Sucursal"}
	f.providers.rows[10] = &entity.Provider{ID: 10, StoreID: 1, Name: "Molinos"}
	f.providers.rows[20] = &entity.Provider{ID: 20, StoreID: 2, Name: "Lácteos"}
	f.products.rows[100] = &entity.Product{ID: 100, ProviderID: 10, Name: "harina"}
	f.purchases.rows[1000] = &entity.Purchase{ID: 1000, ProviderID: 10}
	f.details.rows[10000] = &entity.PurchaseDetail{ID: 10000, PurchaseID: 1000, ProductID: 100, PriorInventory: 44}
	return f
}

func (f *fixture) addUser(id int64, username string, superadmin bool) *entity.User {
	token := "token-" + username
	u := &entity.User{ID: id, Username: username, Token: &token, IsSuperadmin: superadmin}
	f.users.rows[id] = u
	return u
}

func (f *fixture) grant(userID, storeID int64, set func(*entity.StorePermission)) {
	p := &entity.StorePermission{ID: int64(len(f.perms.rows) + 1), UserID: userID, StoreID: storeID}
	if set != nil {
		set(p)
	}
	f.perms.rows = append(f.perms.rows, p)
}

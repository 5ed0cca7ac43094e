package http_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jcastano/control-inventario/internal/application/authz"
	"github.com/jcastano/control-inventario/internal/application/purchase"
	"github.com/jcastano/control-inventario/internal/domain/entity"
	apphttp "github.com/jcastano/control-inventario/internal/interfaces/http"
	"github.com/jcastano/control-inventario/pkg/logger"
)

// rangePurchases registra los argumentos del último listado por rango.
type rangePurchases struct {
	lastLimit int
}

func (r *rangePurchases) Create(*entity.Purchase) error            { return nil }
func (r *rangePurchases) GetByID(int64) (*entity.Purchase, error)  { return nil, nil }
func (r *rangePurchases) ListByProvider(int64) ([]*entity.Purchase, error) { return nil, nil }
func (r *rangePurchases) ListRange(start, end *time.Time, limit int, storeIDs []int64) ([]*entity.Purchase, error) {
	r.lastLimit = limit
	return nil, nil
}
func (r *rangePurchases) Update(*entity.Purchase) error { return nil }
func (r *rangePurchases) Delete(int64) error            { return nil }

type stubDetails struct{}

func (stubDetails) Create(*entity.PurchaseDetail) error                   { return nil }
func (stubDetails) CreateMissing([]*entity.PurchaseDetail) error          { return nil }
func (stubDetails) GetByID(int64) (*entity.PurchaseDetail, error)         { return nil, nil }
func (stubDetails) ListByPurchase(int64) ([]*entity.PurchaseDetail, error) { return nil, nil }
func (stubDetails) Update(*entity.PurchaseDetail) error                   { return nil }
func (stubDetails) Delete(int64) error                                    { return nil }

// buildRangeApp arma la ruta del listado por rango sobre fakes, con un
// superadmin autenticado para que el filtro de tiendas no intervenga.
func buildRangeApp(purchases *rangePurchases) *fiber.App {
	users := &stubUsers{byToken: map[string]*entity.User{
		adminToken: {ID: 1, Username: "root", IsSuperadmin: true},
	}}
	svc := authz.NewService(users, &stubPerms{}, &stubStores{}, nil, nil, purchases, stubDetails{}, nil)
	log := logger.New(logger.Config{Env: "development", Level: "error"})
	uc := purchase.NewUseCase(nil, purchases, stubDetails{}, nil, nil, svc, log)
	h := apphttp.NewPurchaseHandler(uc, nil)

	app := fiber.New()
	app.Get("/api/compras/rango", apphttp.OptionalUser(svc), h.ListByRange)
	return app
}

// El parámetro del contrato es "limit"; "limite" se acepta como alias y la
// ausencia de ambos cae al máximo por defecto.
func TestListByRange_ParametroLimite(t *testing.T) {
	cases := []struct {
		name   string
		target string
		want   int
	}{
		{"limit del contrato", "/api/compras/rango?limit=10", 10},
		{"alias limite", "/api/compras/rango?limite=7", 7},
		{"sin parámetro", "/api/compras/rango", purchase.DefaultRangeLimit},
		{"limit no numérico", "/api/compras/rango?limit=abc", purchase.DefaultRangeLimit},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			purchases := &rangePurchases{}
			app := buildRangeApp(purchases)

			resp := doRequest(t, app, http.MethodGet, tc.target, adminToken, "")
			defer resp.Body.Close()

			require.Equal(t, http.StatusOK, resp.StatusCode)
			assert.Equal(t, tc.want, purchases.lastLimit,
				"el límite recibido por el repositorio debe salir de la query")
		})
	}
}

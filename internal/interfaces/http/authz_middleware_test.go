package http_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jcastano/control-inventario/internal/application/authz"
	"github.com/jcastano/control-inventario/internal/domain/entity"
	apphttp "github.com/jcastano/control-inventario/internal/interfaces/http"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes mínimos: solo lo que el guard toca en estas rutas
// ──────────────────────────────────────────────────────────────────────────────

type stubUsers struct{ byToken map[string]*entity.User }

func (s *stubUsers) Create(*entity.User) error              { return nil }
func (s *stubUsers) GetByID(int64) (*entity.User, error)    { return nil, nil }
func (s *stubUsers) GetByUsername(string) (*entity.User, error) { return nil, nil }
func (s *stubUsers) GetByToken(token string) (*entity.User, error) {
	return s.byToken[token], nil
}
func (s *stubUsers) List() ([]*entity.User, error)        { return nil, nil }
func (s *stubUsers) UpdateToken(int64, *string) error     { return nil }
func (s *stubUsers) UpdatePassword(int64, string) error   { return nil }
func (s *stubUsers) Delete(int64) error                   { return nil }

type stubPerms struct{ rows []*entity.StorePermission }

func (s *stubPerms) Create(*entity.StorePermission) error          { return nil }
func (s *stubPerms) GetByID(int64) (*entity.StorePermission, error) { return nil, nil }
func (s *stubPerms) GetByUserAndStore(userID, storeID int64) (*entity.StorePermission, error) {
	for _, p := range s.rows {
		if p.UserID == userID && p.StoreID == storeID {
			return p, nil
		}
	}
	return nil, nil
}
func (s *stubPerms) ListByUser(int64) ([]*entity.StorePermission, error) { return nil, nil }
func (s *stubPerms) ListStoreIDs(int64) ([]int64, error)                 { return nil, nil }
func (s *stubPerms) Update(*entity.StorePermission) error                { return nil }
func (s *stubPerms) Delete(int64) error                                  { return nil }

type stubStores struct{ rows map[int64]*entity.Store }

func (s *stubStores) Create(*entity.Store) error               { return nil }
func (s *stubStores) GetByID(id int64) (*entity.Store, error)  { return s.rows[id], nil }
func (s *stubStores) GetByName(string) (*entity.Store, error)  { return nil, nil }
func (s *stubStores) List() ([]*entity.Store, error)           { return nil, nil }
func (s *stubStores) ListByIDs([]int64) ([]*entity.Store, error) { return nil, nil }
func (s *stubStores) Update(*entity.Store) error               { return nil }
func (s *stubStores) Delete(int64) error                       { return nil }

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	adminToken = "token-admin"
	anaToken   = "token-ana"
	betoToken  = "token-beto"
)

// buildTestApp arma una aplicación Fiber mínima con tres rutas protegidas:
// una con tienda en la ruta, una que extrae la tienda del body o query y una
// administrativa. Los handlers devuelven 200 con el usuario cargado en locals.
//
// Grants: ana tiene puede_gestionar_proveedores en la tienda 1; beto tiene un
// grant vacío en la misma tienda.
func buildTestApp() *fiber.App {
	users := &stubUsers{byToken: map[string]*entity.User{}}
	admin := &entity.User{ID: 1, Username: "root", IsSuperadmin: true}
	ana := &entity.User{ID: 2, Username: "ana"}
	beto := &entity.User{ID: 3, Username: "beto"}
	users.byToken[adminToken] = admin
	users.byToken[anaToken] = ana
	users.byToken[betoToken] = beto

	perms := &stubPerms{rows: []*entity.StorePermission{
		{ID: 1, UserID: 2, StoreID: 1, ManageProviders: true},
		{ID: 2, UserID: 3, StoreID: 1},
	}}
	stores := &stubStores{rows: map[int64]*entity.Store{
		1: {ID: 1, Name: "Central"},
	}}
	svc := authz.NewService(users, perms, stores, nil, nil, nil, nil, nil)

	ok := func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"ok":      true,
			"usuario": apphttp.GetUser(c).Username,
		})
	}

	app := fiber.New()
	app.Post("/tiendas/:tienda_id/proveedores",
		apphttp.RequireCapability(svc, entity.CapManageProviders), ok)
	app.Post("/proveedores",
		apphttp.RequireCapability(svc, entity.CapManageProviders), ok)
	app.Post("/admin",
		apphttp.RequireSuperadmin(svc), ok)
	return app
}

// doRequest lanza una petición y devuelve la respuesta.
func doRequest(t *testing.T, app *fiber.App, method, target, token, body string) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set("Content-Type", fiber.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func assertCode(t *testing.T, resp *http.Response, code string) {
	t.Helper()
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), code,
		"la respuesta de error debe incluir el código %s", code)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests RequireCapability
// ──────────────────────────────────────────────────────────────────────────────

// Caso 1: sin header Authorization → HTTP 401 TOKEN_INVALIDO.
func TestRequireCapability_SinToken_Retorna401(t *testing.T) {
	app := buildTestApp()
	resp := doRequest(t, app, http.MethodPost, "/tiendas/1/proveedores", "", "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assertCode(t, resp, "TOKEN_INVALIDO")
}

// Caso 2: token sin sesión asociada → HTTP 401.
func TestRequireCapability_TokenDesconocido_Retorna401(t *testing.T) {
	app := buildTestApp()
	resp := doRequest(t, app, http.MethodPost, "/tiendas/1/proveedores", "token-falso", "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

// Caso 3: superadmin pasa sin grant alguno → HTTP 200.
func TestRequireCapability_SuperadminAccede(t *testing.T) {
	app := buildTestApp()
	resp := doRequest(t, app, http.MethodPost, "/tiendas/1/proveedores", adminToken, "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

// Caso 4: grant con el permiso requerido → HTTP 200 y usuario en locals.
func TestRequireCapability_GrantConPermisoAccede(t *testing.T) {
	app := buildTestApp()
	resp := doRequest(t, app, http.MethodPost, "/tiendas/1/proveedores", anaToken, "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "ana", "el principal debe quedar en locals")
}

// Caso 5: grant sin el permiso requerido → HTTP 403 NO_AUTORIZADO.
func TestRequireCapability_GrantSinPermiso_Retorna403(t *testing.T) {
	app := buildTestApp()
	resp := doRequest(t, app, http.MethodPost, "/tiendas/1/proveedores", betoToken, "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assertCode(t, resp, "NO_AUTORIZADO")
}

// Caso 6: sin referencia a tienda en ruta, query ni body → HTTP 400.
func TestRequireCapability_SinTienda_Retorna400(t *testing.T) {
	app := buildTestApp()
	resp := doRequest(t, app, http.MethodPost, "/proveedores", anaToken, "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assertCode(t, resp, "TIENDA_NO_DETERMINADA")
}

// Caso 7: la tienda llega en el body JSON → HTTP 200.
func TestRequireCapability_TiendaEnBody(t *testing.T) {
	app := buildTestApp()
	resp := doRequest(t, app, http.MethodPost, "/proveedores", anaToken,
		`{"tienda_id": 1, "nombre": "Molinos"}`)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

// Caso 7b: también se acepta como string numérico.
func TestRequireCapability_TiendaEnBodyComoString(t *testing.T) {
	app := buildTestApp()
	resp := doRequest(t, app, http.MethodPost, "/proveedores", anaToken,
		`{"tienda_id": "1"}`)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

// Caso 8: la tienda llega en la query → HTTP 200.
func TestRequireCapability_TiendaEnQuery(t *testing.T) {
	app := buildTestApp()
	resp := doRequest(t, app, http.MethodPost, "/proveedores?tienda_id=1", anaToken, "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests RequireSuperadmin
// ──────────────────────────────────────────────────────────────────────────────

func TestRequireSuperadmin_AdminAccede(t *testing.T) {
	app := buildTestApp()
	resp := doRequest(t, app, http.MethodPost, "/admin", adminToken, "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRequireSuperadmin_UsuarioNormal_Retorna403(t *testing.T) {
	app := buildTestApp()
	resp := doRequest(t, app, http.MethodPost, "/admin", anaToken, "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assertCode(t, resp, "NO_AUTORIZADO")
}

func TestRequireSuperadmin_SinToken_Retorna401(t *testing.T) {
	app := buildTestApp()
	resp := doRequest(t, app, http.MethodPost, "/admin", "", "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

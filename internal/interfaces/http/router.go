package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jcastano/control-inventario/internal/application/auth"
	"github.com/jcastano/control-inventario/internal/application/authz"
	"github.com/jcastano/control-inventario/internal/application/ordering"
	"github.com/jcastano/control-inventario/internal/application/purchase"
	"github.com/jcastano/control-inventario/internal/application/usecase"
	"github.com/jcastano/control-inventario/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Authz        *authz.Service
	AuthUC       *auth.AuthUseCase
	UserUC       *usecase.UserUseCase
	PermissionUC *usecase.PermissionUseCase
	StoreUC      *usecase.StoreUseCase
	ProviderUC   *usecase.ProviderUseCase
	ProductUC    *usecase.ProductUseCase
	OrderingUC   *ordering.UseCase
	PurchaseUC   *purchase.UseCase
	ReportUC     *purchase.ReportUseCase
}

// Router registra las rutas de la API. Las escrituras pasan por el guard de
// permiso que corresponde; las lecturas aceptan sesión opcional y degradan a
// vacío para quien no ve la tienda.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/logout", RequireUser(deps.Authz), authHandler.Logout)
	authGroup.Put("/password", RequireUser(deps.Authz), authHandler.ChangePassword)

	// Usuarios y permisos (solo superadmin)
	admin := api.Group("/", RequireSuperadmin(deps.Authz))
	userHandler := NewUserHandler(deps.UserUC)
	admin.Post("/usuarios", userHandler.Create)
	admin.Get("/usuarios", userHandler.List)
	admin.Delete("/usuarios/:usuario_id", userHandler.Delete)
	admin.Put("/usuarios/:usuario_id/password", authHandler.ResetPassword)

	permissionHandler := NewPermissionHandler(deps.PermissionUC)
	admin.Post("/permisos", permissionHandler.Create)
	admin.Get("/usuarios/:usuario_id/permisos", permissionHandler.ListByUser)
	admin.Put("/permisos/:permiso_id", permissionHandler.Update)
	admin.Delete("/permisos/:permiso_id", permissionHandler.Delete)

	// Tiendas: mutaciones de superadmin, listado degradado por visibilidad
	storeHandler := NewStoreHandler(deps.StoreUC)
	api.Post("/tiendas", RequireSuperadmin(deps.Authz), storeHandler.Create)
	api.Get("/tiendas", OptionalUser(deps.Authz), storeHandler.List)
	api.Put("/tiendas/:tienda_id", RequireSuperadmin(deps.Authz), storeHandler.Update)
	api.Delete("/tiendas/:tienda_id", RequireSuperadmin(deps.Authz), storeHandler.Delete)

	// Proveedores
	providerHandler := NewProviderHandler(deps.ProviderUC)
	manageProviders := RequireCapability(deps.Authz, entity.CapManageProviders)
	api.Post("/proveedores", manageProviders, providerHandler.Create)
	api.Get("/tiendas/:tienda_id/proveedores", OptionalUser(deps.Authz), providerHandler.ListByStore)
	api.Put("/proveedores/:proveedor_id", manageProviders, providerHandler.Update)
	api.Delete("/proveedores/:proveedor_id", manageProviders, providerHandler.Delete)

	// Productos
	productHandler := NewProductHandler(deps.ProductUC, deps.OrderingUC)
	manageProducts := RequireCapability(deps.Authz, entity.CapManageProducts)
	api.Post("/productos", manageProducts, productHandler.Create)
	api.Get("/proveedores/:proveedor_id/productos", OptionalUser(deps.Authz), productHandler.ListByProvider)
	api.Put("/productos/:producto_id", manageProducts, productHandler.Update)
	api.Delete("/productos/:producto_id", manageProducts, productHandler.Delete)
	api.Put("/productos/:producto_id/mover", manageProducts, productHandler.Move)

	// Compras: crear y eliminar exigen gestión; los cambios, edición
	purchaseHandler := NewPurchaseHandler(deps.PurchaseUC, deps.ReportUC)
	managePurchases := RequireCapability(deps.Authz, entity.CapManagePurchases)
	editPurchases := RequireCapability(deps.Authz, entity.CapEditPurchases)
	api.Post("/compras", managePurchases, purchaseHandler.Create)
	api.Get("/compras/rango", OptionalUser(deps.Authz), purchaseHandler.ListByRange)
	api.Get("/compras/:compra_id", OptionalUser(deps.Authz), purchaseHandler.GetWithDetails)
	api.Put("/compras/:compra_id", editPurchases, purchaseHandler.Update)
	api.Delete("/compras/:compra_id", managePurchases, purchaseHandler.Delete)
	api.Post("/compras/:compra_id/detalles", editPurchases, purchaseHandler.CreateDetail)
	api.Put("/compras/detalles/:detalle_id", editPurchases, purchaseHandler.UpdateDetail)
	api.Delete("/compras/detalles/:detalle_id", editPurchases, purchaseHandler.DeleteDetail)
	api.Get("/compras/:compra_id/reporte", RequireCapability(deps.Authz, entity.CapViewPurchaseInventory), purchaseHandler.Report)
}

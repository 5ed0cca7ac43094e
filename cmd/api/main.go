package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jcastano/control-inventario/internal/application/auth"
	"github.com/jcastano/control-inventario/internal/application/authz"
	"github.com/jcastano/control-inventario/internal/application/ordering"
	"github.com/jcastano/control-inventario/internal/application/purchase"
	"github.com/jcastano/control-inventario/internal/application/usecase"
	infrapdf "github.com/jcastano/control-inventario/internal/infrastructure/pdf"
	"github.com/jcastano/control-inventario/internal/infrastructure/postgres"
	httpRouter "github.com/jcastano/control-inventario/internal/interfaces/http"
	"github.com/jcastano/control-inventario/pkg/config"
	pkgjwt "github.com/jcastano/control-inventario/pkg/jwt"
	"github.com/jcastano/control-inventario/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	storeRepo := postgres.NewStoreRepository(pool)
	providerRepo := postgres.NewProviderRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	purchaseRepo := postgres.NewPurchaseRepository(pool)
	detailRepo := postgres.NewPurchaseDetailRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	permissionRepo := postgres.NewPermissionRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// La firma y la expiración del token se verifican antes del lookup en la
	// base; la base sigue siendo la fuente de verdad de la sesión (logout).
	authzSvc := authz.NewService(
		userRepo, permissionRepo,
		storeRepo, providerRepo, productRepo, purchaseRepo, detailRepo,
		func(token string) error {
			_, _, err := pkgjwt.Parse(cfg.JWT.Secret, token)
			return err
		},
	)

	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	userUC := usecase.NewUserUseCase(userRepo)
	permissionUC := usecase.NewPermissionUseCase(permissionRepo, userRepo, storeRepo)
	storeUC := usecase.NewStoreUseCase(storeRepo, authzSvc)
	providerUC := usecase.NewProviderUseCase(providerRepo, storeRepo, authzSvc)
	productUC := usecase.NewProductUseCase(productRepo, providerRepo, txRunner, authzSvc, log)
	orderingUC := ordering.NewUseCase(txRunner, productRepo, log)
	purchaseUC := purchase.NewUseCase(
		txRunner, purchaseRepo, detailRepo, productRepo, providerRepo, authzSvc, log,
	)
	reportUC := purchase.NewReportUseCase(purchaseUC, storeRepo, infrapdf.NewMarotoReportGenerator())

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Control Inventario API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		Authz:        authzSvc,
		AuthUC:       authUC,
		UserUC:       userUC,
		PermissionUC: permissionUC,
		StoreUC:      storeUC,
		ProviderUC:   providerUC,
		ProductUC:    productUC,
		OrderingUC:   orderingUC,
		PurchaseUC:   purchaseUC,
		ReportUC:     reportUC,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}

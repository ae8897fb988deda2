package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	appaudit "github.com/auditoriapp/auditoria-api/internal/application/audit"
	"github.com/auditoriapp/auditoria-api/internal/application/auth"
	appinv "github.com/auditoriapp/auditoria-api/internal/application/inventories"
	"github.com/auditoriapp/auditoria-api/internal/application/organization"
	"github.com/auditoriapp/auditoria-api/internal/infrastructure/postgres"
	httpRouter "github.com/auditoriapp/auditoria-api/internal/interfaces/http"
	"github.com/auditoriapp/auditoria-api/pkg/config"
	"github.com/auditoriapp/auditoria-api/pkg/logger"
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

	auditRepo := postgres.NewAuditRepository(pool)
	categoryRepo := postgres.NewCategoryRepository(pool)
	itemRepo := postgres.NewItemRepository(pool)
	areaRepo := postgres.NewAreaRepository(pool)
	inventoryRepo := postgres.NewInventoryRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	assignmentRepo := postgres.NewAssignmentRepository(pool)
	companyRepo := postgres.NewCompanyRepository(pool)
	localRepo := postgres.NewLocalRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	perms := auth.NewPermissionChecker(assignmentRepo)
	authUC := auth.NewUseCase(userRepo, assignmentRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	auditUC := appaudit.NewUseCase(auditRepo, categoryRepo, itemRepo, localRepo, perms, txRunner, log)
	inventoriesUC := appinv.NewUseCase(areaRepo, inventoryRepo, perms, txRunner, log)
	orgUC := organization.NewUseCase(companyRepo, localRepo)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:        authUC,
		AuditUC:       auditUC,
		InventoriesUC: inventoriesUC,
		OrgUC:         orgUC,
		JWTSecret:     cfg.JWT.Secret,
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

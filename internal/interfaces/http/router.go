package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/auditoriapp/auditoria-api/internal/application/audit"
	"github.com/auditoriapp/auditoria-api/internal/application/auth"
	"github.com/auditoriapp/auditoria-api/internal/application/inventories"
	"github.com/auditoriapp/auditoria-api/internal/application/organization"
	"github.com/auditoriapp/auditoria-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC        *auth.UseCase
	AuditUC       *audit.UseCase
	InventoriesUC *inventories.UseCase
	OrgUC         *organization.UseCase
	JWTSecret     string
}

// Router registra las rutas de la API. Las escrituras exigen
// ADMIN o SUPERVISOR; las lecturas admiten también AUDITOR; la gestión
// de usuarios y organización es solo ADMIN.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	writers := RequireRole(entity.RoleAdmin, entity.RoleSupervisor)
	adminOnly := RequireRole(entity.RoleAdmin)

	// Auth (login público, el resto protegido)
	authHandler := NewAuthHandler(deps.AuthUC)
	api.Post("/auth/login", authHandler.Login)

	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	protected.Get("/auth/me", authHandler.Me)
	protected.Get("/roles", authHandler.ListRoles)

	// Usuarios (solo ADMIN)
	users := protected.Group("/users", adminOnly)
	users.Post("/", authHandler.Register)
	users.Get("/", authHandler.ListUsers)
	users.Put("/:id", authHandler.UpdateUser)
	users.Delete("/:id", authHandler.DeleteUser)

	// Supervisores (lectura para todos los roles)
	protected.Get("/supervisors", authHandler.ListSupervisors)
	protected.Get("/supervisors/:id", authHandler.GetSupervisor)
	protected.Get("/locals/:localId/supervisors", authHandler.ListSupervisorsByLocal)

	// Organización: altas solo ADMIN, lecturas para todos
	orgHandler := NewOrganizationHandler(deps.OrgUC)
	protected.Get("/companies", orgHandler.ListCompanies)
	protected.Post("/companies", adminOnly, orgHandler.CreateCompany)
	protected.Get("/companies/:companyId/locals", orgHandler.ListLocals)
	protected.Post("/companies/:companyId/locals", adminOnly, orgHandler.CreateLocal)

	// Auditorías. La única pareja ambigua es GET /audits/{id}: auditoría
	// por uuid contra auditoría por local, que se desambigua con /local.
	auditHandler := NewAuditHandler(deps.AuditUC)
	protected.Get("/items", auditHandler.ListItems)
	protected.Get("/locals/:localId/categories", auditHandler.LocalCategories)

	audits := protected.Group("/audits")
	audits.Get("/", auditHandler.List)
	audits.Get("/enums", auditHandler.Enums)
	audits.Get("/local/:localId", auditHandler.GetByLocal)
	audits.Get("/categories/:categoryId/items", auditHandler.CategoryItems)
	audits.Get("/:localId/export", auditHandler.Export)
	audits.Get("/:uuid", auditHandler.GetByUUID)

	audits.Post("/:localId/open", writers, auditHandler.Open)
	audits.Post("/:localId/categories", writers, auditHandler.AddCategory)
	audits.Post("/:localId/import", writers, auditHandler.Import)
	audits.Post("/categories/:categoryId/items", writers, auditHandler.AddItems)
	audits.Put("/categories/:categoryId", writers, auditHandler.RenameCategory)
	audits.Delete("/categories/:categoryId", writers, auditHandler.DeleteCategory)
	audits.Put("/categories/:categoryId/items/:itemId", writers, auditHandler.UpdateItem)
	audits.Delete("/categories/:categoryId/items/:itemId", writers, auditHandler.DeleteItem)
	audits.Post("/:uuid/close", writers, auditHandler.Close)

	// Inventarios
	invHandler := NewInventoriesHandler(deps.InventoriesUC)
	protected.Get("/locals/:localId/inventories-areas", invHandler.ListAreas)
	protected.Post("/locals/:localId/inventories-areas", writers, invHandler.AddArea)

	inv := protected.Group("/inventories")
	inv.Get("/", invHandler.Index)
	inv.Get("/local/:localId/export", invHandler.Export)
	inv.Post("/local/:localId/import", writers, invHandler.Import)

	areas := protected.Group("/inventories-areas")
	areas.Get("/:areaId/inventories", invHandler.ListByArea)
	areas.Post("/:areaId/inventories", writers, invHandler.AddInventories)
	areas.Put("/:areaId", writers, invHandler.RenameArea)
	areas.Delete("/:areaId", writers, invHandler.DeleteArea)
	areas.Put("/:areaId/inventories/:inventoryId", writers, invHandler.UpdateInventory)
	areas.Delete("/:areaId/inventories/:inventoryId", writers, invHandler.DeleteInventory)
}

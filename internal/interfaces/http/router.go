package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/vtcwoerden/materiaal-api/internal/application/auth"
	"github.com/vtcwoerden/materiaal-api/internal/application/export"
	"github.com/vtcwoerden/materiaal-api/internal/application/migration"
	"github.com/vtcwoerden/materiaal-api/internal/application/usecase"
	"github.com/vtcwoerden/materiaal-api/internal/domain/entity"
)

// RouterDeps dependencies for the router.
type RouterDeps struct {
	ItemUC      *usecase.ItemUseCase
	SettingsUC  *usecase.SettingsUseCase
	DashboardUC *usecase.DashboardUseCase
	ExportUC    *export.ExportUseCase
	Migration   *migration.Engine
	AuthUC      *auth.AuthUseCase
	JWTSecret   string
}

// Router registers the API routes.
//
// Access tiers:
//   - browse (items, lookup, terms): anonymous when public_access is on
//   - manage and export: admin or manager
//   - migration, settings, dashboard: admin
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (public)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	itemHandler := NewItemHandler(deps.ItemUC)

	// Browse routes: gated by the access policy, not by a fixed login wall.
	browse := api.Group("/", OptionalAuthMiddleware(deps.JWTSecret), RequireView(deps.SettingsUC))
	browse.Get("/items", itemHandler.List)
	browse.Get("/items/:id", itemHandler.GetByID)
	browse.Get("/lookup", itemHandler.Lookup)
	browse.Get("/taxonomies/:taxonomy/terms", itemHandler.ListTerms)

	// Manage routes (admin or manager)
	manage := api.Group("/", AuthMiddleware(deps.JWTSecret), RequireRole(entity.RoleAdmin, entity.RoleManager))
	manage.Post("/items", itemHandler.Create)
	manage.Put("/items/:id", itemHandler.Update)
	manage.Delete("/items/:id", itemHandler.Delete)
	manage.Post("/items/:id/photos", itemHandler.AddPhotos)

	exportHandler := NewExportHandler(deps.ExportUC)
	manage.Get("/export/csv", exportHandler.ExportCSV)
	manage.Post("/export/sheet", exportHandler.GenerateSheet)

	// Admin routes
	admin := api.Group("/", AuthMiddleware(deps.JWTSecret), RequireRole(entity.RoleAdmin))

	migrationHandler := NewMigrationHandler(deps.Migration)
	admin.Get("/migration/status", migrationHandler.Status)
	admin.Post("/migration/import", migrationHandler.Import)
	admin.Post("/migration/rollback", migrationHandler.Rollback)
	admin.Get("/migration/sweep", migrationHandler.PreviewSweep)
	admin.Post("/migration/sweep", migrationHandler.Sweep)

	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	admin.Get("/dashboard", dashboardHandler.Summary)

	settingsHandler := NewSettingsHandler(deps.SettingsUC)
	admin.Get("/settings", settingsHandler.Get)
	admin.Put("/settings", settingsHandler.Update)
}

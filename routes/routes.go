package routes

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/aom0101z1/gestion-ventas-sub001/config"
	"github.com/aom0101z1/gestion-ventas-sub001/controllers"
	"github.com/aom0101z1/gestion-ventas-sub001/middleware"
	"github.com/aom0101z1/gestion-ventas-sub001/schedule"
)

func SetupRoutes(app *fiber.App, db *gorm.DB, engine *schedule.Engine, cfg *config.Config) {
	// Auth routes
	authController := controllers.NewAuthController(db, cfg)
	app.Post("/api/auth/register", authController.Register)
	app.Post("/api/auth/login", authController.Login)

	// Middleware
	authMiddleware := middleware.AuthMiddleware(cfg)
	adminMiddleware := middleware.AdminMiddleware(cfg)

	// Group routes
	groupsController := controllers.NewGroupsController(db, cfg)
	groups := app.Group("/api/groups", authMiddleware)
	groups.Get("/", groupsController.ListGroups)
	groups.Get("/:id", groupsController.GetGroup)
	groups.Post("/", adminMiddleware, groupsController.CreateGroup)
	groups.Put("/:id", adminMiddleware, groupsController.UpdateGroup)

	// Progress routes
	progressController := controllers.NewProgressController(engine)
	groups.Get("/:id/progress", progressController.GetGroupProgress)
	groups.Get("/:id/expected", progressController.GetExpectedProgress)
	groups.Post("/:id/progress/:date", progressController.SaveProgress)
	groups.Delete("/:id/progress/:date", progressController.DeleteProgress)

	// Calendar routes
	calendarController := controllers.NewCalendarController(engine)
	calendar := app.Group("/api/calendar", authMiddleware)
	calendar.Get("/day/:date", calendarController.GetDay)
	calendar.Get("/:year/:month", calendarController.GetMonth)

	// Report routes
	reportsController := controllers.NewReportsController(engine)
	reports := app.Group("/api/reports", authMiddleware)
	reports.Get("/weekly", reportsController.GetWeeklySummary)
	reports.Get("/teacher/:id", reportsController.GetTeacherStats)
	reports.Get("/behind", reportsController.GetBehindGroups)
	app.Get("/api/alerts/today", authMiddleware, reportsController.GetTodayAlerts)
}

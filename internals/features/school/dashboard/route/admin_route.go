package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	dashCtrl "schooladmin_backend/internals/features/school/dashboard/controller"
)

func DashboardAdminRoutes(r fiber.Router, db *gorm.DB) {
	handler := dashCtrl.NewDashboardController(db)

	dashboard := r.Group("/dashboard")
	{
		dashboard.Get("/stats", handler.Stats)
		dashboard.Get("/recent-activity", handler.RecentActivity)
	}
}

package routes

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	attendanceRoute "schooladmin_backend/internals/features/school/attendance/route"
	classRoute "schooladmin_backend/internals/features/school/classes/route"
	dashboardRoute "schooladmin_backend/internals/features/school/dashboard/route"
	studentRoute "schooladmin_backend/internals/features/school/students/route"
)

func SetupRoutes(app *fiber.App, db *gorm.DB) {
	// ===================== ADMIN =====================
	log.Println("[INFO] Setting up ADMIN group...")
	admin := app.Group("/api/a")

	classRoute.ClassAdminRoutes(admin, db)
	studentRoute.StudentAdminRoutes(admin, db)
	attendanceRoute.AttendanceAdminRoutes(admin, db)
	dashboardRoute.DashboardAdminRoutes(admin, db)
}

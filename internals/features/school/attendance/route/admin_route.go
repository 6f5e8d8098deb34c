package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	attCtrl "schooladmin_backend/internals/features/school/attendance/controller"
)

func AttendanceAdminRoutes(r fiber.Router, db *gorm.DB) {
	handler := attCtrl.NewAttendanceController(db)

	attendance := r.Group("/attendance")
	{
		attendance.Get("/", handler.List)
		attendance.Post("/", handler.BatchUpsert)
		attendance.Get("/export", handler.Export)
	}
}

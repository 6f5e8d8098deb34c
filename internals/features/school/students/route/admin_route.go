package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	studentCtrl "schooladmin_backend/internals/features/school/students/controller"
)

func StudentAdminRoutes(r fiber.Router, db *gorm.DB) {
	handler := studentCtrl.NewStudentController(db)

	students := r.Group("/students")
	{
		students.Get("/", handler.List)
		students.Post("/", handler.Create)
		students.Get("/:id", handler.GetByID)
		students.Put("/:id", handler.Update)
		students.Delete("/:id", handler.Delete)
	}
}

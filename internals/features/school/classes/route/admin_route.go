package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	classCtrl "schooladmin_backend/internals/features/school/classes/controller"
)

func ClassAdminRoutes(r fiber.Router, db *gorm.DB) {
	handler := classCtrl.NewClassController(db)

	classes := r.Group("/classes")
	{
		classes.Get("/", handler.List)
		classes.Post("/", handler.Create)
		classes.Get("/:id", handler.GetByID)
		classes.Put("/:id", handler.Update)
		classes.Delete("/:id", handler.Delete)
	}
}

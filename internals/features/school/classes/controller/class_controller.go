package controller

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	attendanceModel "schooladmin_backend/internals/features/school/attendance/model"
	classDTO "schooladmin_backend/internals/features/school/classes/dto"
	classModel "schooladmin_backend/internals/features/school/classes/model"
	studentModel "schooladmin_backend/internals/features/school/students/model"
	helper "schooladmin_backend/internals/helpers"
)

type ClassController struct {
	DB        *gorm.DB
	Validator *validator.Validate
}

func NewClassController(db *gorm.DB) *ClassController {
	return &ClassController{
		DB:        db,
		Validator: validator.New(),
	}
}

// GET /classes
func (ctl *ClassController) List(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 20, 200)

	var total int64
	if err := ctl.DB.WithContext(c.UserContext()).
		Model(&classModel.ClassModel{}).
		Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch classes")
	}

	var rows []classModel.ClassModel
	if err := ctl.DB.WithContext(c.UserContext()).
		Order("class_created_at DESC").
		Offset(paging.Offset).Limit(paging.Limit).
		Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch classes")
	}

	return helper.JsonList(c, "ok",
		classDTO.NewClassResponses(rows),
		helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage))
}

// POST /classes
func (ctl *ClassController) Create(c *fiber.Ctx) error {
	var req classDTO.CreateClassRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	req.Normalize()
	if err := ctl.Validator.Struct(&req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	m := req.ToModel()
	if err := ctl.DB.WithContext(c.UserContext()).Create(m).Error; err != nil {
		if helper.IsDuplicateKey(err) {
			return helper.JsonError(c, fiber.StatusConflict, "Class with this name already exists")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to create class")
	}

	c.Set("Location", "/api/a/classes/"+m.ClassID.String())
	return helper.JsonCreated(c, "Class created", classDTO.NewClassResponse(m))
}

// GET /classes/:id
func (ctl *ClassController) GetByID(c *fiber.Ctx) error {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid class id")
	}

	var m classModel.ClassModel
	if err := ctl.DB.WithContext(c.UserContext()).
		Take(&m, "class_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Class not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch class")
	}

	return helper.JsonOK(c, "ok", classDTO.NewClassResponse(&m))
}

// PUT /classes/:id
// Renaming a class rewrites the denormalized name snapshots on students and
// attendance inside the same transaction, so the class-name reference
// invariant survives the rename.
func (ctl *ClassController) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid class id")
	}

	var req classDTO.UpdateClassRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	req.Normalize()
	if err := ctl.Validator.Struct(&req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	var updated classModel.ClassModel
	if err := ctl.DB.WithContext(c.UserContext()).Transaction(func(tx *gorm.DB) error {
		var m classModel.ClassModel
		if err := tx.Take(&m, "class_id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Class not found")
			}
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}

		oldName := m.ClassName
		m.ClassName = req.ClassName
		m.ClassTeacher = req.ClassTeacher
		m.ClassDescription = req.ClassDescription

		// Only the editable columns. The counter belongs to concurrent student
		// mutations and must never be written back from this read.
		if err := tx.Model(&m).
			Select("class_name", "class_teacher", "class_description", "class_updated_at").
			Updates(&m).Error; err != nil {
			if helper.IsDuplicateKey(err) {
				return fiber.NewError(fiber.StatusConflict, "Class with this name already exists")
			}
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}

		if oldName != m.ClassName {
			if err := tx.Model(&studentModel.StudentModel{}).
				Where("student_class_name = ?", oldName).
				Update("student_class_name", m.ClassName).Error; err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, err.Error())
			}
			if err := tx.Model(&attendanceModel.AttendanceModel{}).
				Where("attendance_class_id = ?", m.ClassID).
				Update("attendance_class_name", m.ClassName).Error; err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, err.Error())
			}
		}

		// Reload so the response carries the live counter, not the one read
		// before the update.
		if err := tx.Take(&m, "class_id = ?", m.ClassID).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}

		updated = m
		return nil
	}); err != nil {
		if fe, ok := err.(*fiber.Error); ok {
			return helper.JsonError(c, fe.Code, fe.Message)
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update class")
	}

	return helper.JsonUpdated(c, "Class updated", classDTO.NewClassResponse(&updated))
}

// DELETE /classes/:id
// One transaction, three effects: students by class name, attendance by class
// id, then the class row. All or nothing.
func (ctl *ClassController) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid class id")
	}

	var deletedStudents, deletedAttendance int64
	if err := ctl.DB.WithContext(c.UserContext()).Transaction(func(tx *gorm.DB) error {
		var m classModel.ClassModel
		if err := tx.Take(&m, "class_id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Class not found")
			}
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}

		res := tx.Where("student_class_name = ?", m.ClassName).
			Delete(&studentModel.StudentModel{})
		if res.Error != nil {
			return fiber.NewError(fiber.StatusInternalServerError, res.Error.Error())
		}
		deletedStudents = res.RowsAffected

		res = tx.Where("attendance_class_id = ?", m.ClassID).
			Delete(&attendanceModel.AttendanceModel{})
		if res.Error != nil {
			return fiber.NewError(fiber.StatusInternalServerError, res.Error.Error())
		}
		deletedAttendance = res.RowsAffected

		if err := tx.Delete(&classModel.ClassModel{}, "class_id = ?", m.ClassID).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return nil
	}); err != nil {
		if fe, ok := err.(*fiber.Error); ok {
			return helper.JsonError(c, fe.Code, fe.Message)
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to delete class and associated data")
	}

	return helper.JsonDeleted(c, "Class and associated data deleted", fiber.Map{
		"class_id":                 id,
		"deleted_students":         deletedStudents,
		"deleted_attendance_count": deletedAttendance,
	})
}

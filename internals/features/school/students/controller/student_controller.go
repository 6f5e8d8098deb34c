package controller

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	attendanceModel "schooladmin_backend/internals/features/school/attendance/model"
	classModel "schooladmin_backend/internals/features/school/classes/model"
	studentDTO "schooladmin_backend/internals/features/school/students/dto"
	studentModel "schooladmin_backend/internals/features/school/students/model"
	helper "schooladmin_backend/internals/helpers"
)

type StudentController struct {
	DB        *gorm.DB
	Validator *validator.Validate
}

func NewStudentController(db *gorm.DB) *StudentController {
	return &StudentController{
		DB:        db,
		Validator: validator.New(),
	}
}

// Counter helpers. The counter floor guard (> 0) keeps the invariant
// class_number_of_students >= 0 even if the roster and counter ever drift.
func incrementClassCounter(tx *gorm.DB, classID uuid.UUID) error {
	return tx.Model(&classModel.ClassModel{}).
		Where("class_id = ?", classID).
		UpdateColumn("class_number_of_students", gorm.Expr("class_number_of_students + 1")).Error
}

func decrementClassCounterByName(tx *gorm.DB, className string) error {
	return tx.Model(&classModel.ClassModel{}).
		Where("class_name = ? AND class_number_of_students > 0", className).
		UpdateColumn("class_number_of_students", gorm.Expr("class_number_of_students - 1")).Error
}

// GET /students?class_name=&status=
func (ctl *StudentController) List(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 20, 200)

	q := ctl.DB.WithContext(c.UserContext()).Model(&studentModel.StudentModel{})
	if cn := strings.TrimSpace(c.Query("class_name")); cn != "" {
		q = q.Where("student_class_name = ?", cn)
	}
	if st := strings.TrimSpace(c.Query("status")); st != "" {
		if st != studentModel.StudentStatusActive && st != studentModel.StudentStatusInactive {
			return helper.JsonError(c, fiber.StatusBadRequest, "status must be Active or Inactive")
		}
		q = q.Where("student_status = ?", st)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch students")
	}

	var rows []studentModel.StudentModel
	if err := q.Order("student_created_at DESC").
		Offset(paging.Offset).Limit(paging.Limit).
		Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch students")
	}

	return helper.JsonList(c, "ok",
		studentDTO.NewStudentResponses(rows),
		helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage))
}

// POST /students
// The student row and the class counter increment commit together or not at
// all; a missing class aborts before anything is written.
func (ctl *StudentController) Create(c *fiber.Ctx) error {
	var req studentDTO.CreateStudentRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	req.Normalize()
	if err := ctl.Validator.Struct(&req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	var created *studentModel.StudentModel
	if err := ctl.DB.WithContext(c.UserContext()).Transaction(func(tx *gorm.DB) error {
		var cls classModel.ClassModel
		if err := tx.Take(&cls, "class_name = ?", req.StudentClassName).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound,
					fmt.Sprintf("Class '%s' not found", req.StudentClassName))
			}
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}

		m := req.ToModel()
		if err := tx.Create(m).Error; err != nil {
			if helper.IsDuplicateKey(err) {
				return fiber.NewError(fiber.StatusConflict, "Student with this email already exists")
			}
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}

		if err := incrementClassCounter(tx, cls.ClassID); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}

		created = m
		return nil
	}); err != nil {
		if fe, ok := err.(*fiber.Error); ok {
			return helper.JsonError(c, fe.Code, fe.Message)
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to create student")
	}

	c.Set("Location", "/api/a/students/"+created.StudentID.String())
	return helper.JsonCreated(c, "Student created", studentDTO.NewStudentResponse(created))
}

// GET /students/:id
func (ctl *StudentController) GetByID(c *fiber.Ctx) error {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid student id")
	}

	var m studentModel.StudentModel
	if err := ctl.DB.WithContext(c.UserContext()).
		Take(&m, "student_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Student not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch student")
	}

	return helper.JsonOK(c, "ok", studentDTO.NewStudentResponse(&m))
}

// PUT /students/:id
// Partial update. When student_class_name changes from A to B, all four
// effects (counter A-1, counter B+1, the row update, B's existence check)
// happen inside one transaction; if B is missing nothing changes, including
// A's counter.
func (ctl *StudentController) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid student id")
	}

	var req studentDTO.UpdateStudentRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	req.Normalize()
	if err := ctl.Validator.Struct(&req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	var updated studentModel.StudentModel
	if err := ctl.DB.WithContext(c.UserContext()).Transaction(func(tx *gorm.DB) error {
		var m studentModel.StudentModel
		if err := tx.Take(&m, "student_id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Student not found")
			}
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}

		if req.StudentClassName != nil && *req.StudentClassName != m.StudentClassName {
			var newClass classModel.ClassModel
			if err := tx.Take(&newClass, "class_name = ?", *req.StudentClassName).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return fiber.NewError(fiber.StatusNotFound,
						fmt.Sprintf("Class '%s' not found", *req.StudentClassName))
				}
				return fiber.NewError(fiber.StatusInternalServerError, err.Error())
			}
			if m.StudentClassName != "" {
				if err := decrementClassCounterByName(tx, m.StudentClassName); err != nil {
					return fiber.NewError(fiber.StatusInternalServerError, err.Error())
				}
			}
			if err := incrementClassCounter(tx, newClass.ClassID); err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, err.Error())
			}
		}

		req.Apply(&m)
		if err := tx.Save(&m).Error; err != nil {
			if helper.IsDuplicateKey(err) {
				return fiber.NewError(fiber.StatusConflict, "Student with this email already exists")
			}
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}

		updated = m
		return nil
	}); err != nil {
		if fe, ok := err.(*fiber.Error); ok {
			return helper.JsonError(c, fe.Code, fe.Message)
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update student")
	}

	return helper.JsonUpdated(c, "Student updated", studentDTO.NewStudentResponse(&updated))
}

// DELETE /students/:id
// One atomic unit: remove the row, decrement the class counter (skipped when
// the student has no class), purge the attendance history.
func (ctl *StudentController) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid student id")
	}

	var purgedAttendance int64
	if err := ctl.DB.WithContext(c.UserContext()).Transaction(func(tx *gorm.DB) error {
		var m studentModel.StudentModel
		if err := tx.Take(&m, "student_id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Student not found")
			}
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}

		if err := tx.Delete(&studentModel.StudentModel{}, "student_id = ?", m.StudentID).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}

		if m.StudentClassName != "" {
			if err := decrementClassCounterByName(tx, m.StudentClassName); err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, err.Error())
			}
		}

		res := tx.Where("attendance_student_id = ?", m.StudentID).
			Delete(&attendanceModel.AttendanceModel{})
		if res.Error != nil {
			return fiber.NewError(fiber.StatusInternalServerError, res.Error.Error())
		}
		purgedAttendance = res.RowsAffected

		return nil
	}); err != nil {
		if fe, ok := err.(*fiber.Error); ok {
			return helper.JsonError(c, fe.Code, fe.Message)
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to delete student and associated data")
	}

	return helper.JsonDeleted(c, "Student and associated attendance records deleted", fiber.Map{
		"student_id":              id,
		"purged_attendance_count": purgedAttendance,
	})
}

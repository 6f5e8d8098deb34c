package controller

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	attDTO "schooladmin_backend/internals/features/school/attendance/dto"
	attModel "schooladmin_backend/internals/features/school/attendance/model"
	helper "schooladmin_backend/internals/helpers"
)

type AttendanceController struct {
	DB        *gorm.DB
	Validator *validator.Validate
}

func NewAttendanceController(db *gorm.DB) *AttendanceController {
	return &AttendanceController{
		DB:        db,
		Validator: validator.New(),
	}
}

// buildListQuery applies the class_id / date / status filters shared by List
// and Export.
func (ctl *AttendanceController) buildListQuery(c *fiber.Ctx) (*gorm.DB, error) {
	q := ctl.DB.WithContext(c.UserContext()).Model(&attModel.AttendanceModel{})

	if cid := strings.TrimSpace(c.Query("class_id")); cid != "" {
		classID, err := uuid.Parse(cid)
		if err != nil {
			return nil, fiber.NewError(fiber.StatusBadRequest, "Invalid class id")
		}
		q = q.Where("attendance_class_id = ?", classID)
	}
	if ds := strings.TrimSpace(c.Query("date")); ds != "" {
		day, err := attDTO.ParseDay(ds)
		if err != nil {
			return nil, fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		q = q.Where("attendance_date = ?", datatypes.Date(day))
	}
	if st := strings.TrimSpace(c.Query("status")); st != "" {
		if st != attModel.AttendanceStatusPresent && st != attModel.AttendanceStatusAbsent {
			return nil, fiber.NewError(fiber.StatusBadRequest, "status must be Present or Absent")
		}
		q = q.Where("attendance_status = ?", st)
	}

	return q.Order("attendance_student_name ASC"), nil
}

// GET /attendance?class_id=&date=&status=
func (ctl *AttendanceController) List(c *fiber.Ctx) error {
	q, err := ctl.buildListQuery(c)
	if err != nil {
		if fe, ok := err.(*fiber.Error); ok {
			return helper.JsonError(c, fe.Code, fe.Message)
		}
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	var rows []attModel.AttendanceModel
	if err := q.Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch attendance records")
	}

	return helper.JsonList(c, "ok", attDTO.NewAttendanceResponses(rows), nil)
}

// POST /attendance {records: [...]}
// Per-entry idempotent upserts keyed on (student, class, day) — deliberately
// NOT one transaction across the batch: partial success is a reported outcome
// (207), and the uniqueness index is the idempotence mechanism.
func (ctl *AttendanceController) BatchUpsert(c *fiber.Ctx) error {
	var req attDTO.BatchAttendanceRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	if err := ctl.Validator.Struct(&req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	saved := make([]attDTO.AttendanceResponse, 0, len(req.Records))
	var failures []string

	for _, rec := range req.Records {
		studentID, sErr := uuid.Parse(strings.TrimSpace(rec.AttendanceStudentID))
		classID, cErr := uuid.Parse(strings.TrimSpace(rec.AttendanceClassID))
		if sErr != nil || cErr != nil {
			failures = append(failures,
				fmt.Sprintf("invalid student or class id in record for student_id: %s", rec.AttendanceStudentID))
			continue
		}

		day, err := attDTO.ParseDay(rec.AttendanceDate)
		if err != nil {
			failures = append(failures,
				fmt.Sprintf("failed to save attendance for student %s: %s", rec.AttendanceStudentName, err.Error()))
			continue
		}

		now := time.Now().UTC()
		m := attModel.AttendanceModel{
			AttendanceStudentID:   studentID,
			AttendanceStudentName: rec.AttendanceStudentName,
			AttendanceClassID:     classID,
			AttendanceClassName:   rec.AttendanceClassName,
			AttendanceDate:        datatypes.Date(day),
			AttendanceStatus:      rec.AttendanceStatus,
			AttendanceCreatedAt:   now,
		}

		// Overwrite, never duplicate: existing tuples get fresh snapshots,
		// status and created_at.
		err = ctl.DB.WithContext(c.UserContext()).
			Clauses(clause.OnConflict{
				Columns: []clause.Column{
					{Name: "attendance_student_id"},
					{Name: "attendance_class_id"},
					{Name: "attendance_date"},
				},
				DoUpdates: clause.Assignments(map[string]interface{}{
					"attendance_student_name": rec.AttendanceStudentName,
					"attendance_class_name":   rec.AttendanceClassName,
					"attendance_status":       rec.AttendanceStatus,
					"attendance_created_at":   now,
				}),
			}).Create(&m).Error
		if err != nil {
			log.Printf("[ERROR] attendance upsert student=%s class=%s: %v", studentID, classID, err)
			failures = append(failures,
				fmt.Sprintf("failed to save attendance for student %s: %s", rec.AttendanceStudentName, err.Error()))
			continue
		}

		// Re-read by the tuple so overwritten rows report their real id.
		var row attModel.AttendanceModel
		if err := ctl.DB.WithContext(c.UserContext()).
			Take(&row, "attendance_student_id = ? AND attendance_class_id = ? AND attendance_date = ?",
				studentID, classID, datatypes.Date(day)).Error; err != nil {
			log.Printf("[ERROR] attendance readback student=%s class=%s: %v", studentID, classID, err)
			failures = append(failures,
				fmt.Sprintf("failed to save attendance for student %s: %s", rec.AttendanceStudentName, err.Error()))
			continue
		}
		saved = append(saved, *attDTO.NewAttendanceResponse(&row))
	}

	if len(failures) > 0 {
		return c.Status(fiber.StatusMultiStatus).JSON(fiber.Map{
			"success":             false,
			"message":             "Some attendance records failed to save",
			"saved_records_count": len(saved),
			"errors":              failures,
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success":             true,
		"message":             "Attendance records saved successfully",
		"saved_records_count": len(saved),
		"records":             saved,
	})
}

// GET /attendance/export?class_id=&date=&status=
// Spreadsheet of the filtered records.
func (ctl *AttendanceController) Export(c *fiber.Ctx) error {
	q, err := ctl.buildListQuery(c)
	if err != nil {
		if fe, ok := err.(*fiber.Error); ok {
			return helper.JsonError(c, fe.Code, fe.Message)
		}
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	var rows []attModel.AttendanceModel
	if err := q.Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch attendance records")
	}

	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			log.Printf("[WARN] closing export workbook: %v", err)
		}
	}()

	const sheet = "Attendance"
	f.SetSheetName("Sheet1", sheet)

	headers := []string{"Student", "Class", "Date", "Status", "Recorded At"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}
	for i, row := range rows {
		values := []interface{}{
			row.AttendanceStudentName,
			row.AttendanceClassName,
			time.Time(row.AttendanceDate).Format("2006-01-02"),
			row.AttendanceStatus,
			row.AttendanceCreatedAt.Format(time.RFC3339),
		}
		for j, v := range values {
			cell, _ := excelize.CoordinatesToCellName(j+1, i+2)
			_ = f.SetCellValue(sheet, cell, v)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to build export file")
	}

	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="attendance.xlsx"`)
	return c.Send(buf.Bytes())
}

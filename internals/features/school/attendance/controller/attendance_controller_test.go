package controller_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/xuri/excelize/v2"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	database "schooladmin_backend/internals/databases"
	attendanceModel "schooladmin_backend/internals/features/school/attendance/model"
	routes "schooladmin_backend/internals/route"
)

func newTestEnv(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormLogger.Default.LogMode(gormLogger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	app := fiber.New()
	routes.SetupRoutes(app, db)
	return app, db
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body any) (*http.Response, []byte) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return resp, data
}

func record(studentID, studentName, classID, className, date, status string) fiber.Map {
	return fiber.Map{
		"attendance_student_id":   studentID,
		"attendance_student_name": studentName,
		"attendance_class_id":     classID,
		"attendance_class_name":   className,
		"attendance_date":         date,
		"attendance_status":       status,
	}
}

type batchResult struct {
	Success           bool     `json:"success"`
	SavedRecordsCount int      `json:"saved_records_count"`
	Errors            []string `json:"errors"`
	Records           []struct {
		AttendanceID     string `json:"attendance_id"`
		AttendanceDate   string `json:"attendance_date"`
		AttendanceStatus string `json:"attendance_status"`
	} `json:"records"`
}

func TestBatchUpsert_OverwritesSameTuple(t *testing.T) {
	app, db := newTestEnv(t)
	studentID := uuid.NewString()
	classID := uuid.NewString()

	resp, body := doJSON(t, app, http.MethodPost, "/api/a/attendance", fiber.Map{
		"records": []fiber.Map{record(studentID, "Alice", classID, "Math-101", "2024-01-10", "Present")},
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	var first batchResult
	assert.NoError(t, json.Unmarshal(body, &first))
	assert.Equal(t, 1, first.SavedRecordsCount)

	// Same (student, class, day): second submission overwrites, never duplicates.
	resp, body = doJSON(t, app, http.MethodPost, "/api/a/attendance", fiber.Map{
		"records": []fiber.Map{record(studentID, "Alice", classID, "Math-101", "2024-01-10", "Absent")},
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	var second batchResult
	assert.NoError(t, json.Unmarshal(body, &second))
	assert.Equal(t, 1, second.SavedRecordsCount)
	if assert.Len(t, second.Records, 1) && assert.Len(t, first.Records, 1) {
		assert.Equal(t, first.Records[0].AttendanceID, second.Records[0].AttendanceID)
		assert.Equal(t, "Absent", second.Records[0].AttendanceStatus)
	}

	var count int64
	db.Model(&attendanceModel.AttendanceModel{}).Count(&count)
	assert.EqualValues(t, 1, count)

	var row attendanceModel.AttendanceModel
	assert.NoError(t, db.Take(&row).Error)
	assert.Equal(t, "Absent", row.AttendanceStatus)
}

func TestBatchUpsert_DatetimeInputsCollapseToOneDay(t *testing.T) {
	app, db := newTestEnv(t)
	studentID := uuid.NewString()
	classID := uuid.NewString()

	resp, _ := doJSON(t, app, http.MethodPost, "/api/a/attendance", fiber.Map{
		"records": []fiber.Map{record(studentID, "Alice", classID, "Math-101", "2024-01-10T08:15:00Z", "Present")},
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	// A plain date on the same calendar day hits the same row.
	resp, body := doJSON(t, app, http.MethodPost, "/api/a/attendance", fiber.Map{
		"records": []fiber.Map{record(studentID, "Alice", classID, "Math-101", "2024-01-10", "Absent")},
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	var res batchResult
	assert.NoError(t, json.Unmarshal(body, &res))
	if assert.Len(t, res.Records, 1) {
		assert.Equal(t, "2024-01-10", res.Records[0].AttendanceDate)
	}

	var count int64
	db.Model(&attendanceModel.AttendanceModel{}).Count(&count)
	assert.EqualValues(t, 1, count)
}

func TestBatchUpsert_PartialFailureReportsMultiStatus(t *testing.T) {
	app, db := newTestEnv(t)
	classID := uuid.NewString()

	resp, body := doJSON(t, app, http.MethodPost, "/api/a/attendance", fiber.Map{
		"records": []fiber.Map{
			record(uuid.NewString(), "Alice", classID, "Math-101", "2024-01-10", "Present"),
			record("not-a-uuid", "Bob", classID, "Math-101", "2024-01-10", "Present"),
			record(uuid.NewString(), "Cara", classID, "Math-101", "2024-01-10", "Absent"),
		},
	})
	assert.Equal(t, http.StatusMultiStatus, resp.StatusCode)

	var res batchResult
	assert.NoError(t, json.Unmarshal(body, &res))
	assert.False(t, res.Success)
	assert.Equal(t, 2, res.SavedRecordsCount)
	if assert.Len(t, res.Errors, 1) {
		assert.Contains(t, res.Errors[0], "not-a-uuid")
	}

	// the valid entries still landed
	var count int64
	db.Model(&attendanceModel.AttendanceModel{}).Count(&count)
	assert.EqualValues(t, 2, count)
}

func TestBatchUpsert_BadDateIsPerRecordError(t *testing.T) {
	app, db := newTestEnv(t)

	resp, body := doJSON(t, app, http.MethodPost, "/api/a/attendance", fiber.Map{
		"records": []fiber.Map{
			record(uuid.NewString(), "Alice", uuid.NewString(), "Math-101", "10/01/2024", "Present"),
		},
	})
	assert.Equal(t, http.StatusMultiStatus, resp.StatusCode)

	var res batchResult
	assert.NoError(t, json.Unmarshal(body, &res))
	assert.Equal(t, 0, res.SavedRecordsCount)
	if assert.Len(t, res.Errors, 1) {
		assert.Contains(t, res.Errors[0], "Alice")
	}

	var count int64
	db.Model(&attendanceModel.AttendanceModel{}).Count(&count)
	assert.EqualValues(t, 0, count)
}

func TestBatchUpsert_InvalidShapeRejected(t *testing.T) {
	app, _ := newTestEnv(t)

	resp, body := doJSON(t, app, http.MethodPost, "/api/a/attendance", fiber.Map{
		"records": []fiber.Map{},
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, string(body), "VALIDATION_ERROR")

	resp, body = doJSON(t, app, http.MethodPost, "/api/a/attendance", fiber.Map{
		"records": []fiber.Map{
			record(uuid.NewString(), "Alice", uuid.NewString(), "Math-101", "2024-01-10", "Late"),
		},
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, string(body), "VALIDATION_ERROR")
}

func TestListAttendance_Filters(t *testing.T) {
	app, _ := newTestEnv(t)
	classA := uuid.NewString()
	classB := uuid.NewString()

	resp, _ := doJSON(t, app, http.MethodPost, "/api/a/attendance", fiber.Map{
		"records": []fiber.Map{
			record(uuid.NewString(), "Alice", classA, "Math-101", "2024-01-10", "Present"),
			record(uuid.NewString(), "Bob", classA, "Math-101", "2024-01-10", "Absent"),
			record(uuid.NewString(), "Cara", classB, "Sci-201", "2024-01-11", "Present"),
		},
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	list := func(query string) []struct {
		AttendanceStudentName string `json:"attendance_student_name"`
	} {
		resp, body := doJSON(t, app, http.MethodGet, "/api/a/attendance"+query, nil)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		var env struct {
			Data []struct {
				AttendanceStudentName string `json:"attendance_student_name"`
			} `json:"data"`
		}
		assert.NoError(t, json.Unmarshal(body, &env))
		return env.Data
	}

	assert.Len(t, list(""), 3)
	assert.Len(t, list("?class_id="+classA), 2)
	assert.Len(t, list("?date=2024-01-11"), 1)

	byStatus := list("?status=Present")
	assert.Len(t, byStatus, 2)
	// ordered by student name
	assert.Equal(t, "Alice", byStatus[0].AttendanceStudentName)
	assert.Equal(t, "Cara", byStatus[1].AttendanceStudentName)

	resp, _ = doJSON(t, app, http.MethodGet, "/api/a/attendance?class_id=nope", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = doJSON(t, app, http.MethodGet, "/api/a/attendance?status=Late", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestExportAttendance_ProducesWorkbook(t *testing.T) {
	app, _ := newTestEnv(t)
	classID := uuid.NewString()

	resp, _ := doJSON(t, app, http.MethodPost, "/api/a/attendance", fiber.Map{
		"records": []fiber.Map{
			record(uuid.NewString(), "Alice", classID, "Math-101", "2024-01-10", "Present"),
		},
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, body := doJSON(t, app, http.MethodGet, "/api/a/attendance/export?class_id="+classID, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		resp.Header.Get(fiber.HeaderContentType))
	assert.Contains(t, resp.Header.Get(fiber.HeaderContentDisposition), "attendance.xlsx")

	f, err := excelize.OpenReader(bytes.NewReader(body))
	if !assert.NoError(t, err) {
		return
	}
	defer f.Close()

	rows, err := f.GetRows("Attendance")
	assert.NoError(t, err)
	if assert.Len(t, rows, 2) {
		assert.Equal(t, []string{"Student", "Class", "Date", "Status", "Recorded At"}, rows[0])
		assert.Equal(t, "Alice", rows[1][0])
		assert.Equal(t, "Math-101", rows[1][1])
		assert.Equal(t, "2024-01-10", rows[1][2])
		assert.Equal(t, "Present", rows[1][3])
	}
}

package controller

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	attModel "schooladmin_backend/internals/features/school/attendance/model"
	classModel "schooladmin_backend/internals/features/school/classes/model"
	dashDTO "schooladmin_backend/internals/features/school/dashboard/dto"
	studentModel "schooladmin_backend/internals/features/school/students/model"
	helper "schooladmin_backend/internals/helpers"
)

type DashboardController struct {
	DB *gorm.DB
}

func NewDashboardController(db *gorm.DB) *DashboardController {
	return &DashboardController{DB: db}
}

// GET /dashboard/stats
// total_students counts Active students only, while per-class counters also
// include Inactive ones; the two numbers diverge on purpose.
func (ctl *DashboardController) Stats(c *fiber.Ctx) error {
	db := ctl.DB.WithContext(c.UserContext())

	var totalClasses int64
	if err := db.Model(&classModel.ClassModel{}).Count(&totalClasses).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to compute dashboard stats")
	}

	var activeStudents int64
	if err := db.Model(&studentModel.StudentModel{}).
		Where("student_status = ?", studentModel.StudentStatusActive).
		Count(&activeStudents).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to compute dashboard stats")
	}

	now := time.Now().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	var presentToday int64
	if err := db.Model(&attModel.AttendanceModel{}).
		Where("attendance_date = ? AND attendance_status = ?",
			datatypes.Date(today), attModel.AttendanceStatusPresent).
		Count(&presentToday).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to compute dashboard stats")
	}

	percentage := 0.0
	if activeStudents > 0 {
		percentage = math.Round(float64(presentToday) / float64(activeStudents) * 100)
	}

	return helper.JsonOK(c, "ok", dashDTO.DashboardStatsResponse{
		TotalClasses:         totalClasses,
		TotalStudents:        activeStudents,
		PresentToday:         presentToday,
		AttendancePercentage: percentage,
	})
}

// GET /dashboard/recent-activity
// Five newest creations across classes and students, merged by created_at.
func (ctl *DashboardController) RecentActivity(c *fiber.Ctx) error {
	db := ctl.DB.WithContext(c.UserContext())

	var classes []classModel.ClassModel
	if err := db.Order("class_created_at DESC").Limit(5).Find(&classes).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch recent activity")
	}
	var students []studentModel.StudentModel
	if err := db.Order("student_created_at DESC").Limit(5).Find(&students).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch recent activity")
	}

	items := make([]dashDTO.RecentActivityItem, 0, len(classes)+len(students))
	for i := range classes {
		items = append(items, dashDTO.RecentActivityItem{
			Type:      "class",
			Name:      classes[i].ClassName,
			Detail:    fmt.Sprintf("taught by %s", classes[i].ClassTeacher),
			CreatedAt: classes[i].ClassCreatedAt,
		})
	}
	for i := range students {
		items = append(items, dashDTO.RecentActivityItem{
			Type:      "student",
			Name:      students[i].StudentName,
			Detail:    fmt.Sprintf("joined %s", students[i].StudentClassName),
			CreatedAt: students[i].StudentCreatedAt,
		})
	}

	sort.Slice(items, func(i, j int) bool {
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})
	if len(items) > 5 {
		items = items[:5]
	}

	return helper.JsonOK(c, "ok", items)
}

package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	AttendanceStatusPresent = "Present"
	AttendanceStatusAbsent  = "Absent"
)

// AttendanceModel represents the `attendance` table.
// The (student_id, class_id, date) tuple is unique: at most one record per
// student per class per calendar day. The date column is day-granular
// (datatypes.Date truncates the time-of-day), so the uniqueness index doubles
// as the idempotence key for batch upserts.
type AttendanceModel struct {
	AttendanceID uuid.UUID `json:"attendance_id" gorm:"column:attendance_id;type:uuid;primaryKey"`

	AttendanceStudentID   uuid.UUID `json:"attendance_student_id"   gorm:"column:attendance_student_id;type:uuid;not null;uniqueIndex:uq_attendance_student_class_date,priority:1"`
	AttendanceStudentName string    `json:"attendance_student_name" gorm:"column:attendance_student_name;type:varchar(120);not null"`

	AttendanceClassID   uuid.UUID `json:"attendance_class_id"   gorm:"column:attendance_class_id;type:uuid;not null;uniqueIndex:uq_attendance_student_class_date,priority:2"`
	AttendanceClassName string    `json:"attendance_class_name" gorm:"column:attendance_class_name;type:varchar(120);not null"`

	AttendanceDate   datatypes.Date `json:"attendance_date"   gorm:"column:attendance_date;type:date;not null;uniqueIndex:uq_attendance_student_class_date,priority:3"`
	AttendanceStatus string         `json:"attendance_status" gorm:"column:attendance_status;type:varchar(16);not null"`

	// Reset to now() whenever an upsert overwrites the record.
	AttendanceCreatedAt time.Time `json:"attendance_created_at" gorm:"column:attendance_created_at;not null"`
}

func (AttendanceModel) TableName() string {
	return "attendance"
}

func (m *AttendanceModel) BeforeCreate(tx *gorm.DB) error {
	if m.AttendanceID == uuid.Nil {
		m.AttendanceID = uuid.New()
	}
	if m.AttendanceCreatedAt.IsZero() {
		m.AttendanceCreatedAt = time.Now().UTC()
	}
	return nil
}

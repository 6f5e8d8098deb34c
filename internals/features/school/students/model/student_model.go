package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	StudentStatusActive   = "Active"
	StudentStatusInactive = "Inactive"
)

// StudentModel represents the `students` table.
// student_class_name stores the class *name* (not its id); the class-exists
// invariant is enforced by the student controller inside the same transaction
// that touches the class counter.
type StudentModel struct {
	StudentID uuid.UUID `json:"student_id" gorm:"column:student_id;type:uuid;primaryKey"`

	StudentName      string `json:"student_name"       gorm:"column:student_name;type:varchar(120);not null"`
	StudentClassName string `json:"student_class_name" gorm:"column:student_class_name;type:varchar(120);not null;index"`

	// Nullable + unique: absent emails never collide. Empty strings are
	// normalized to NULL before persistence.
	StudentEmail *string `json:"student_email,omitempty" gorm:"column:student_email;type:varchar(160);uniqueIndex:uq_students_student_email"`

	StudentStatus string `json:"student_status" gorm:"column:student_status;type:varchar(16);not null;default:'Active'"`

	StudentCreatedAt time.Time `json:"student_created_at" gorm:"column:student_created_at;autoCreateTime"`
	StudentUpdatedAt time.Time `json:"student_updated_at" gorm:"column:student_updated_at;autoUpdateTime"`
}

func (StudentModel) TableName() string {
	return "students"
}

func (m *StudentModel) BeforeCreate(tx *gorm.DB) error {
	if m.StudentID == uuid.Nil {
		m.StudentID = uuid.New()
	}
	if m.StudentStatus == "" {
		m.StudentStatus = StudentStatusActive
	}
	return nil
}

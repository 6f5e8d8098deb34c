package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ClassModel represents the `classes` table.
// class_number_of_students is a derived counter: it must always equal the
// number of students whose student_class_name matches class_name. Every
// mutation that changes a student's membership updates it in the same
// transaction.
type ClassModel struct {
	ClassID uuid.UUID `json:"class_id" gorm:"column:class_id;type:uuid;primaryKey"`

	// Identity
	ClassName    string `json:"class_name"    gorm:"column:class_name;type:varchar(120);not null;uniqueIndex:uq_classes_class_name"`
	ClassTeacher string `json:"class_teacher" gorm:"column:class_teacher;type:varchar(120);not null"`

	// Derived counter (never authoritative, kept in sync transactionally)
	ClassNumberOfStudents int `json:"class_number_of_students" gorm:"column:class_number_of_students;not null;default:0"`

	ClassDescription *string `json:"class_description,omitempty" gorm:"column:class_description;type:text"`

	ClassCreatedAt time.Time `json:"class_created_at" gorm:"column:class_created_at;autoCreateTime"`
	ClassUpdatedAt time.Time `json:"class_updated_at" gorm:"column:class_updated_at;autoUpdateTime"`
}

func (ClassModel) TableName() string {
	return "classes"
}

func (m *ClassModel) BeforeCreate(tx *gorm.DB) error {
	if m.ClassID == uuid.Nil {
		m.ClassID = uuid.New()
	}
	return nil
}

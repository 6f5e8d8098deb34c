package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	model "schooladmin_backend/internals/features/school/classes/model"
)

/*
=========================================================
REQUEST: CREATE / UPDATE
=========================================================
*/
type CreateClassRequest struct {
	ClassName        string  `json:"class_name"                  validate:"required,min=1,max=120"`
	ClassTeacher     string  `json:"class_teacher"               validate:"required,min=1,max=120"`
	ClassDescription *string `json:"class_description,omitempty" validate:"omitempty,max=2000"`
}

func (r *CreateClassRequest) Normalize() {
	r.ClassName = strings.TrimSpace(r.ClassName)
	r.ClassTeacher = strings.TrimSpace(r.ClassTeacher)
	if r.ClassDescription != nil {
		s := strings.TrimSpace(*r.ClassDescription)
		if s == "" {
			r.ClassDescription = nil
		} else {
			r.ClassDescription = &s
		}
	}
}

func (r *CreateClassRequest) ToModel() *model.ClassModel {
	return &model.ClassModel{
		ClassName:        r.ClassName,
		ClassTeacher:     r.ClassTeacher,
		ClassDescription: r.ClassDescription,
	}
}

// UpdateClassRequest carries the full editable shape; all three fields are
// re-validated on every PUT, matching the create contract.
type UpdateClassRequest struct {
	ClassName        string  `json:"class_name"                  validate:"required,min=1,max=120"`
	ClassTeacher     string  `json:"class_teacher"               validate:"required,min=1,max=120"`
	ClassDescription *string `json:"class_description,omitempty" validate:"omitempty,max=2000"`
}

func (r *UpdateClassRequest) Normalize() {
	r.ClassName = strings.TrimSpace(r.ClassName)
	r.ClassTeacher = strings.TrimSpace(r.ClassTeacher)
	if r.ClassDescription != nil {
		s := strings.TrimSpace(*r.ClassDescription)
		if s == "" {
			r.ClassDescription = nil
		} else {
			r.ClassDescription = &s
		}
	}
}

/*
=========================================================
RESPONSE
=========================================================
*/
type ClassResponse struct {
	ClassID               uuid.UUID `json:"class_id"`
	ClassName             string    `json:"class_name"`
	ClassTeacher          string    `json:"class_teacher"`
	ClassNumberOfStudents int       `json:"class_number_of_students"`
	ClassDescription      *string   `json:"class_description,omitempty"`
	ClassCreatedAt        time.Time `json:"class_created_at"`
	ClassUpdatedAt        time.Time `json:"class_updated_at"`
}

func NewClassResponse(m *model.ClassModel) *ClassResponse {
	return &ClassResponse{
		ClassID:               m.ClassID,
		ClassName:             m.ClassName,
		ClassTeacher:          m.ClassTeacher,
		ClassNumberOfStudents: m.ClassNumberOfStudents,
		ClassDescription:      m.ClassDescription,
		ClassCreatedAt:        m.ClassCreatedAt,
		ClassUpdatedAt:        m.ClassUpdatedAt,
	}
}

func NewClassResponses(ms []model.ClassModel) []ClassResponse {
	out := make([]ClassResponse, 0, len(ms))
	for i := range ms {
		out = append(out, *NewClassResponse(&ms[i]))
	}
	return out
}

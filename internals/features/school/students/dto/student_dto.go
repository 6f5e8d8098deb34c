package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	model "schooladmin_backend/internals/features/school/students/model"
)

/*
=========================================================
REQUEST: CREATE
=========================================================
*/
type CreateStudentRequest struct {
	StudentName      string  `json:"student_name"            validate:"required,min=1,max=120"`
	StudentClassName string  `json:"student_class_name"      validate:"required,min=1,max=120"`
	StudentEmail     *string `json:"student_email,omitempty" validate:"omitempty,email,max=160"`
	StudentStatus    string  `json:"student_status"          validate:"omitempty,oneof=Active Inactive"`
}

func (r *CreateStudentRequest) Normalize() {
	r.StudentName = strings.TrimSpace(r.StudentName)
	r.StudentClassName = strings.TrimSpace(r.StudentClassName)
	r.StudentStatus = strings.TrimSpace(r.StudentStatus)
	// empty email → NULL so the unique index never sees it
	if r.StudentEmail != nil {
		e := strings.ToLower(strings.TrimSpace(*r.StudentEmail))
		if e == "" {
			r.StudentEmail = nil
		} else {
			r.StudentEmail = &e
		}
	}
}

func (r *CreateStudentRequest) ToModel() *model.StudentModel {
	status := r.StudentStatus
	if status == "" {
		status = model.StudentStatusActive
	}
	return &model.StudentModel{
		StudentName:      r.StudentName,
		StudentClassName: r.StudentClassName,
		StudentEmail:     r.StudentEmail,
		StudentStatus:    status,
	}
}

/*
=========================================================
REQUEST: UPDATE (partial — absent fields stay untouched)
=========================================================
*/
type UpdateStudentRequest struct {
	StudentName      *string `json:"student_name,omitempty"       validate:"omitempty,min=1,max=120"`
	StudentClassName *string `json:"student_class_name,omitempty" validate:"omitempty,min=1,max=120"`
	StudentEmail     *string `json:"student_email,omitempty"      validate:"omitempty,email,max=160"`
	StudentStatus    *string `json:"student_status,omitempty"     validate:"omitempty,oneof=Active Inactive"`
}

func (r *UpdateStudentRequest) Normalize() {
	if r.StudentName != nil {
		s := strings.TrimSpace(*r.StudentName)
		r.StudentName = &s
	}
	if r.StudentClassName != nil {
		s := strings.TrimSpace(*r.StudentClassName)
		r.StudentClassName = &s
	}
	if r.StudentEmail != nil {
		e := strings.ToLower(strings.TrimSpace(*r.StudentEmail))
		if e == "" {
			r.StudentEmail = nil
		} else {
			r.StudentEmail = &e
		}
	}
	if r.StudentStatus != nil {
		s := strings.TrimSpace(*r.StudentStatus)
		r.StudentStatus = &s
	}
}

// Apply copies the present fields onto the model. Class reassignment side
// effects (counter moves) are handled by the controller, not here.
func (r *UpdateStudentRequest) Apply(m *model.StudentModel) {
	if r.StudentName != nil {
		m.StudentName = *r.StudentName
	}
	if r.StudentClassName != nil {
		m.StudentClassName = *r.StudentClassName
	}
	if r.StudentEmail != nil {
		m.StudentEmail = r.StudentEmail
	}
	if r.StudentStatus != nil {
		m.StudentStatus = *r.StudentStatus
	}
}

/*
=========================================================
RESPONSE
=========================================================
*/
type StudentResponse struct {
	StudentID        uuid.UUID `json:"student_id"`
	StudentName      string    `json:"student_name"`
	StudentClassName string    `json:"student_class_name"`
	StudentEmail     *string   `json:"student_email,omitempty"`
	StudentStatus    string    `json:"student_status"`
	StudentCreatedAt time.Time `json:"student_created_at"`
	StudentUpdatedAt time.Time `json:"student_updated_at"`
}

func NewStudentResponse(m *model.StudentModel) *StudentResponse {
	return &StudentResponse{
		StudentID:        m.StudentID,
		StudentName:      m.StudentName,
		StudentClassName: m.StudentClassName,
		StudentEmail:     m.StudentEmail,
		StudentStatus:    m.StudentStatus,
		StudentCreatedAt: m.StudentCreatedAt,
		StudentUpdatedAt: m.StudentUpdatedAt,
	}
}

func NewStudentResponses(ms []model.StudentModel) []StudentResponse {
	out := make([]StudentResponse, 0, len(ms))
	for i := range ms {
		out = append(out, *NewStudentResponse(&ms[i]))
	}
	return out
}

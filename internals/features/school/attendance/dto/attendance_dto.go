package dto

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	model "schooladmin_backend/internals/features/school/attendance/model"
)

const dateLayout = "2006-01-02"

// ParseDay accepts YYYY-MM-DD or RFC3339 and truncates to the start of the
// calendar day in UTC. The truncated value is the matching key for upserts,
// never the literal input.
func ParseDay(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		t, err = time.Parse(time.RFC3339, s)
		if err != nil {
			return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD or RFC3339", s)
		}
	}
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
}

/*
=========================================================
REQUEST: BATCH UPSERT
=========================================================
*/
type AttendanceRecordRequest struct {
	AttendanceStudentID   string `json:"attendance_student_id"   validate:"required"`
	AttendanceStudentName string `json:"attendance_student_name" validate:"required,min=1,max=120"`
	AttendanceClassID     string `json:"attendance_class_id"     validate:"required"`
	AttendanceClassName   string `json:"attendance_class_name"   validate:"required,min=1,max=120"`
	AttendanceDate        string `json:"attendance_date"         validate:"required"`
	AttendanceStatus      string `json:"attendance_status"       validate:"required,oneof=Present Absent"`
}

type BatchAttendanceRequest struct {
	Records []AttendanceRecordRequest `json:"records" validate:"required,min=1,dive"`
}

/*
=========================================================
RESPONSE
=========================================================
*/
type AttendanceResponse struct {
	AttendanceID          uuid.UUID `json:"attendance_id"`
	AttendanceStudentID   uuid.UUID `json:"attendance_student_id"`
	AttendanceStudentName string    `json:"attendance_student_name"`
	AttendanceClassID     uuid.UUID `json:"attendance_class_id"`
	AttendanceClassName   string    `json:"attendance_class_name"`
	AttendanceDate        string    `json:"attendance_date"`
	AttendanceStatus      string    `json:"attendance_status"`
	AttendanceCreatedAt   time.Time `json:"attendance_created_at"`
}

func NewAttendanceResponse(m *model.AttendanceModel) *AttendanceResponse {
	return &AttendanceResponse{
		AttendanceID:          m.AttendanceID,
		AttendanceStudentID:   m.AttendanceStudentID,
		AttendanceStudentName: m.AttendanceStudentName,
		AttendanceClassID:     m.AttendanceClassID,
		AttendanceClassName:   m.AttendanceClassName,
		AttendanceDate:        time.Time(m.AttendanceDate).Format(dateLayout),
		AttendanceStatus:      m.AttendanceStatus,
		AttendanceCreatedAt:   m.AttendanceCreatedAt,
	}
}

func NewAttendanceResponses(ms []model.AttendanceModel) []AttendanceResponse {
	out := make([]AttendanceResponse, 0, len(ms))
	for i := range ms {
		out = append(out, *NewAttendanceResponse(&ms[i]))
	}
	return out
}

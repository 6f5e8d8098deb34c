package dto

import "time"

type DashboardStatsResponse struct {
	TotalClasses         int64   `json:"total_classes"`
	TotalStudents        int64   `json:"total_students"` // Active only
	PresentToday         int64   `json:"present_today"`
	AttendancePercentage float64 `json:"attendance_percentage"`
}

type RecentActivityItem struct {
	Type      string    `json:"type"` // "class" | "student"
	Name      string    `json:"name"`
	Detail    string    `json:"detail,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

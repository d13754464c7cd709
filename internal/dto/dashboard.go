package dto

import "github.com/carebridge/carebridge-api/internal/models"

// DashboardResponse is the landing-page snapshot for a care worker.
type DashboardResponse struct {
	Date          string                    `json:"date"`
	Greeting      string                    `json:"greeting"`
	TodayShifts   []ShiftCard               `json:"today_shifts"`
	OpenShifts    int                       `json:"open_shifts"`
	UpcomingCount int                       `json:"upcoming_count"`
	UnreadCount   int                       `json:"unread_count"`
	Compliance    *models.ComplianceSummary `json:"compliance,omitempty"`
}

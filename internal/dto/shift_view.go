package dto

import "github.com/carebridge/carebridge-api/internal/models"

// ShiftViewRequest carries the query parameters of the shifts view.
type ShiftViewRequest struct {
	WorkerID string
	Date     string
	Tab      models.ShiftTab
}

// ShiftCard is a display-ready shift entry.
type ShiftCard struct {
	ID         string   `json:"id"`
	ClientName string   `json:"client_name"`
	Location   string   `json:"location"`
	Date       string   `json:"date"`
	DateLabel  string   `json:"date_label"`
	TimeLabel  string   `json:"time_label"`
	Hours      float64  `json:"hours"`
	Status     string   `json:"status"`
	JobTitle   *string  `json:"job_title,omitempty"`
	PayAmount  *float64 `json:"pay_amount,omitempty"`
	Notes      *string  `json:"notes,omitempty"`
}

// BucketCounts reports the post-filter size of every bucket so tab badges
// stay correct regardless of which tab is active.
type BucketCounts struct {
	Upcoming  int `json:"upcoming"`
	Available int `json:"available"`
	Completed int `json:"completed"`
}

// ShiftViewResponse is the composed payload for one tab of the shifts view.
type ShiftViewResponse struct {
	Tab          models.ShiftTab `json:"tab"`
	Date         string          `json:"date,omitempty"`
	Shifts       []ShiftCard     `json:"shifts"`
	Counts       BucketCounts    `json:"counts"`
	EmptyMessage string          `json:"empty_message,omitempty"`
	MarkedDates  []string        `json:"marked_dates"`
}

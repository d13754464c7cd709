package models

import (
	"time"

	"github.com/lib/pq"
)

// Participant is a care recipient or support worker tracked alongside the
// worker's clients.
type Participant struct {
	ID              string         `db:"id" json:"id"`
	Name            string         `db:"name" json:"name"`
	Image           *string        `db:"image" json:"image,omitempty"`
	Address         string         `db:"address" json:"address"`
	Age             int            `db:"age" json:"age"`
	SupportNeeds    pq.StringArray `db:"support_needs" json:"support_needs"`
	Skills          pq.StringArray `db:"skills" json:"skills,omitempty"`
	Availability    pq.StringArray `db:"availability" json:"availability,omitempty"`
	Rating          *float64       `db:"rating" json:"rating,omitempty"`
	NextAppointment *string        `db:"next_appointment" json:"next_appointment,omitempty"`
	LastVisit       *string        `db:"last_visit" json:"last_visit,omitempty"`
	CreatedAt       time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time      `db:"updated_at" json:"updated_at"`
}

// ParticipantFilter narrows down participant listings.
type ParticipantFilter struct {
	Search   string
	Skill    string
	Page     int
	PageSize int
}

// ParticipantMatch scores how well a participant fits an available shift.
type ParticipantMatch struct {
	Participant   Participant `json:"participant"`
	DateAvailable bool        `json:"date_available"`
	SkillMatches  []string    `json:"skill_matches"`
	Score         float64     `json:"score"`
}

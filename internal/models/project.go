package models

import "time"

type ProjectStatus string

const (
	ProjectActive    ProjectStatus = "active"
	ProjectCompleted ProjectStatus = "completed"
	ProjectOnHold    ProjectStatus = "on-hold"
)

func (s ProjectStatus) Valid() bool {
	switch s {
	case ProjectActive, ProjectCompleted, ProjectOnHold:
		return true
	}
	return false
}

type Project struct {
	ID                string        `json:"_id"`
	NGOID             string        `json:"ngoId"`
	Title             string        `json:"title"`
	Description       string        `json:"description"`
	Status            ProjectStatus `json:"status"`
	Progress          int           `json:"progress"`
	StartDate         time.Time     `json:"startDate"`
	EndDate           time.Time     `json:"endDate"`
	RequiredSkills    []string      `json:"requiredSkills"`
	Location          string        `json:"location"`
	MaxVolunteers     int           `json:"maxVolunteers"`
	CurrentVolunteers int           `json:"currentVolunteers"`
	CreatedAt         time.Time     `json:"createdAt"`
	UpdatedAt         time.Time     `json:"updatedAt"`
}

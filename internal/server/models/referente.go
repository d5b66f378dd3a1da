package models

import "time"

// Referente is a technical sponsor who can lead or mentor talents.
type Referente struct {
	ID              int64     `json:"id"`
	NombreYApellido string    `json:"nombre_y_apellido"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`

	LiderTalentos  []TalentSummary `json:"liderTalentos,omitempty"`
	MentorTalentos []TalentSummary `json:"mentorTalentos,omitempty"`
}

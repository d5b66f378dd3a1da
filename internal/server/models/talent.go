package models

import "time"

// Talent is a tracked employee or candidate. Both referente links are
// optional.
type Talent struct {
	ID                int64        `json:"id"`
	NombreYApellido   string       `json:"nombre_y_apellido"`
	Seniority         Seniority    `json:"seniority"`
	Rol               string       `json:"rol"`
	Estado            TalentStatus `json:"estado"`
	ReferenteLiderID  *int64       `json:"referenteLiderId"`
	ReferenteMentorID *int64       `json:"referenteMentorId"`
	CreatedAt         time.Time    `json:"createdAt"`
	UpdatedAt         time.Time    `json:"updatedAt"`

	ReferenteLider  *Referente    `json:"referenteLider,omitempty"`
	ReferenteMentor *Referente    `json:"referenteMentor,omitempty"`
	Interacciones   []Interaction `json:"interacciones,omitempty"`
}

// TalentSummary is the short form of a talent embedded in a referente.
type TalentSummary struct {
	ID              int64        `json:"id"`
	NombreYApellido string       `json:"nombre_y_apellido"`
	Seniority       Seniority    `json:"seniority"`
	Rol             string       `json:"rol"`
	Estado          TalentStatus `json:"estado"`
}

func (t *Talent) Summary() TalentSummary {
	return TalentSummary{
		ID:              t.ID,
		NombreYApellido: t.NombreYApellido,
		Seniority:       t.Seniority,
		Rol:             t.Rol,
		Estado:          t.Estado,
	}
}

package models

import "time"

type Interaction struct {
	ID                int64             `json:"id"`
	TalentoID         *int64            `json:"talentoId"`
	TipoDeInteraccion string            `json:"tipo_de_interaccion"`
	Fecha             time.Time         `json:"fecha"`
	Detalle           string            `json:"detalle"`
	Estado            InteractionStatus `json:"estado"`
	CreatedAt         time.Time         `json:"createdAt"`
	UpdatedAt         time.Time         `json:"updatedAt"`

	Talento *Talent `json:"talento,omitempty"`
}

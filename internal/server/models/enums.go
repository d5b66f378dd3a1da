package models

type Seniority string

const (
	SeniorityJunior     Seniority = "JUNIOR"
	SenioritySemiSenior Seniority = "SEMI_SENIOR"
	SenioritySenior     Seniority = "SENIOR"
)

func (s Seniority) Valid() bool {
	switch s {
	case SeniorityJunior, SenioritySemiSenior, SenioritySenior:
		return true
	}
	return false
}

type TalentStatus string

const (
	TalentActive   TalentStatus = "ACTIVO"
	TalentInactive TalentStatus = "INACTIVO"
)

func (s TalentStatus) Valid() bool {
	return s == TalentActive || s == TalentInactive
}

// InteractionStatus tracks an interaction from INICIADA to FINALIZADA.
type InteractionStatus string

const (
	InteractionStarted    InteractionStatus = "INICIADA"
	InteractionInProgress InteractionStatus = "EN_PROGRESO"
	InteractionFinished   InteractionStatus = "FINALIZADA"
)

func (s InteractionStatus) Valid() bool {
	switch s {
	case InteractionStarted, InteractionInProgress, InteractionFinished:
		return true
	}
	return false
}

package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// ValidationError carries a client-facing message for a rejected input.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func invalid(msg string) error { return &ValidationError{Message: msg} }

const (
	MsgMissingFields    = "Campos obligatorios faltantes"
	MsgNameRequired     = "El nombre es obligatorio"
	MsgInvalidSeniority = "Seniority inválido"
	MsgInvalidStatus    = "Estado inválido"
	MsgInvalidDate      = "Fecha inválida"
)

// MissingReferenceError reports a foreign key that points nowhere, e.g.
// a talent naming a referente that does not exist.
type MissingReferenceError struct {
	Entity string
	ID     int64
}

func (e *MissingReferenceError) Error() string {
	return fmt.Sprintf("El %s con id %d no existe", e.Entity, e.ID)
}

const (
	EntityLeader = "referente líder"
	EntityMentor = "referente mentor"
	EntityTalent = "talento"
)

// OptionalID distinguishes an absent JSON key (Set == false) from an explicit
// null (Set == true, ID == nil) in partial updates. Numeric strings such as
// "12" are accepted as ids; an empty string reads as null.
type OptionalID struct {
	Set bool
	ID  *int64
}

func (o *OptionalID) UnmarshalJSON(b []byte) error {
	o.Set = true
	o.ID = nil
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		s = strings.TrimSpace(s)
		if s == "" {
			return nil
		}
		v, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid id %q", s)
		}
		o.ID = &v
		return nil
	}
	var v int64
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	o.ID = &v
	return nil
}

// MarshalJSON writes the id or null. Pair it with omitzero so an unset
// value is left out.
func (o OptionalID) MarshalJSON() ([]byte, error) {
	if o.ID == nil {
		return []byte("null"), nil
	}
	return json.Marshal(*o.ID)
}

// SomeID is a convenience for building a set OptionalID.
func SomeID(v int64) OptionalID { return OptionalID{Set: true, ID: &v} }

// normalizeID treats a zero id as "no reference".
func normalizeID(id *int64) *int64 {
	if id == nil || *id == 0 {
		return nil
	}
	return id
}

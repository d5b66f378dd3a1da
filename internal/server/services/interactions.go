package services

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/dmitrijs2005/talentdesk/internal/common"
	"github.com/dmitrijs2005/talentdesk/internal/server/models"
	"github.com/dmitrijs2005/talentdesk/internal/server/repositories/repomanager"
)

// InteractionInput creates an interaction. TalentoID is optional; Estado
// defaults to INICIADA. Fecha accepts RFC 3339 or a plain YYYY-MM-DD date.
type InteractionInput struct {
	TalentoID         *int64 `json:"talentoId"`
	TipoDeInteraccion string `json:"tipo_de_interaccion"`
	Fecha             string `json:"fecha"`
	Detalle           string `json:"detalle"`
	Estado            string `json:"estado"`
}

func (in *InteractionInput) UnmarshalJSON(b []byte) error {
	type plain InteractionInput
	aux := struct {
		*plain
		TalentoID OptionalID `json:"talentoId"`
	}{plain: (*plain)(in)}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	in.TalentoID = aux.TalentoID.ID
	return nil
}

type InteractionPatch struct {
	TalentoID         OptionalID `json:"talentoId,omitzero"`
	TipoDeInteraccion *string    `json:"tipo_de_interaccion,omitempty"`
	Fecha             *string    `json:"fecha,omitempty"`
	Detalle           *string    `json:"detalle,omitempty"`
	Estado            *string    `json:"estado,omitempty"`
}

type InteractionService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewInteractionService(db *sql.DB, m repomanager.RepositoryManager) *InteractionService {
	return &InteractionService{db: db, repomanager: m}
}

// List returns every interaction with its talent, newest first.
func (s *InteractionService) List(ctx context.Context) ([]models.Interaction, error) {
	list, err := s.repomanager.Interactions(s.db).List(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.attachTalents(ctx, list); err != nil {
		return nil, err
	}
	return list, nil
}

func (s *InteractionService) Get(ctx context.Context, id int64) (*models.Interaction, error) {
	in, err := s.repomanager.Interactions(s.db).GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	list := []models.Interaction{*in}
	if err := s.attachTalents(ctx, list); err != nil {
		return nil, err
	}
	return &list[0], nil
}

func (s *InteractionService) attachTalents(ctx context.Context, list []models.Interaction) error {
	var ids []int64
	seen := map[int64]bool{}
	for _, in := range list {
		if in.TalentoID != nil && !seen[*in.TalentoID] {
			seen[*in.TalentoID] = true
			ids = append(ids, *in.TalentoID)
		}
	}
	if len(ids) == 0 {
		return nil
	}

	found, err := s.repomanager.Talents(s.db).GetMany(ctx, ids)
	if err != nil {
		return err
	}
	byID := make(map[int64]models.Talent, len(found))
	for _, t := range found {
		byID[t.ID] = t
	}
	for i := range list {
		if list[i].TalentoID == nil {
			continue
		}
		if t, ok := byID[*list[i].TalentoID]; ok {
			list[i].Talento = &t
		}
	}
	return nil
}

func (s *InteractionService) Create(ctx context.Context, in InteractionInput) (*models.Interaction, error) {
	tipo := strings.TrimSpace(in.TipoDeInteraccion)
	detalle := strings.TrimSpace(in.Detalle)
	if tipo == "" || detalle == "" || strings.TrimSpace(in.Fecha) == "" {
		return nil, invalid(MsgMissingFields)
	}
	fecha, err := ParseDate(in.Fecha)
	if err != nil {
		return nil, err
	}
	estado := models.InteractionStatus(in.Estado)
	if in.Estado == "" {
		estado = models.InteractionStarted
	}
	if !estado.Valid() {
		return nil, invalid(MsgInvalidStatus)
	}

	talento := normalizeID(in.TalentoID)
	if err := s.checkTalent(ctx, talento); err != nil {
		return nil, err
	}

	return s.repomanager.Interactions(s.db).Create(ctx, &models.Interaction{
		TalentoID:         talento,
		TipoDeInteraccion: tipo,
		Fecha:             fecha,
		Detalle:           detalle,
		Estado:            estado,
	})
}

// Update applies a partial change, e.g. only a new estado.
func (s *InteractionService) Update(ctx context.Context, id int64, in InteractionPatch) (*models.Interaction, error) {
	repo := s.repomanager.Interactions(s.db)
	cur, err := repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.TipoDeInteraccion != nil && strings.TrimSpace(*in.TipoDeInteraccion) != "" {
		cur.TipoDeInteraccion = strings.TrimSpace(*in.TipoDeInteraccion)
	}
	if in.Detalle != nil && strings.TrimSpace(*in.Detalle) != "" {
		cur.Detalle = strings.TrimSpace(*in.Detalle)
	}
	if in.Fecha != nil && strings.TrimSpace(*in.Fecha) != "" {
		fecha, err := ParseDate(*in.Fecha)
		if err != nil {
			return nil, err
		}
		cur.Fecha = fecha
	}
	if in.Estado != nil {
		cur.Estado = models.InteractionStatus(*in.Estado)
		if !cur.Estado.Valid() {
			return nil, invalid(MsgInvalidStatus)
		}
	}
	if in.TalentoID.Set {
		cur.TalentoID = normalizeID(in.TalentoID.ID)
		if err := s.checkTalent(ctx, cur.TalentoID); err != nil {
			return nil, err
		}
	}

	return repo.Update(ctx, cur)
}

func (s *InteractionService) Delete(ctx context.Context, id int64) error {
	return s.repomanager.Interactions(s.db).Delete(ctx, id)
}

func (s *InteractionService) checkTalent(ctx context.Context, id *int64) error {
	if id == nil {
		return nil
	}
	_, err := s.repomanager.Talents(s.db).GetByID(ctx, *id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return &MissingReferenceError{Entity: EntityTalent, ID: *id}
		}
		return err
	}
	return nil
}

// ParseDate accepts an RFC 3339 timestamp or a YYYY-MM-DD date (UTC midnight).
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.DateOnly, s); err == nil {
		return t, nil
	}
	return time.Time{}, invalid(MsgInvalidDate)
}

package services

import (
	"context"
	"database/sql"
	"encoding/json"
	"math"
	"strings"

	"github.com/dmitrijs2005/talentdesk/internal/server/models"
	"github.com/dmitrijs2005/talentdesk/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/talentdesk/internal/server/repositories/talents"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

type ListTalentsParams struct {
	Page  int
	Limit int
	// Sort is "asc" or "desc" by name; anything else means desc.
	Sort string
}

type TalentInput struct {
	NombreYApellido   string `json:"nombre_y_apellido"`
	Seniority         string `json:"seniority"`
	Rol               string `json:"rol"`
	Estado            string `json:"estado"`
	ReferenteLiderID  *int64 `json:"referenteLiderId"`
	ReferenteMentorID *int64 `json:"referenteMentorId"`
}

// UnmarshalJSON accepts the referente ids as numbers or numeric strings.
func (in *TalentInput) UnmarshalJSON(b []byte) error {
	type plain TalentInput
	aux := struct {
		*plain
		ReferenteLiderID  OptionalID `json:"referenteLiderId"`
		ReferenteMentorID OptionalID `json:"referenteMentorId"`
	}{plain: (*plain)(in)}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	in.ReferenteLiderID = aux.ReferenteLiderID.ID
	in.ReferenteMentorID = aux.ReferenteMentorID.ID
	return nil
}

// TalentPatch is a partial update. A referente set to null is unlinked.
type TalentPatch struct {
	NombreYApellido   *string    `json:"nombre_y_apellido,omitempty"`
	Seniority         *string    `json:"seniority,omitempty"`
	Rol               *string    `json:"rol,omitempty"`
	Estado            *string    `json:"estado,omitempty"`
	ReferenteLiderID  OptionalID `json:"referenteLiderId,omitzero"`
	ReferenteMentorID OptionalID `json:"referenteMentorId,omitzero"`
}

type TalentService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewTalentService(db *sql.DB, m repomanager.RepositoryManager) *TalentService {
	return &TalentService{db: db, repomanager: m}
}

// List returns one page of talents ordered by name, each with its referentes
// and interactions. A page or limit below 1 falls back to the default, a
// limit above MaxLimit is capped, and a page whose offset would overflow
// falls back to the first page.
func (s *TalentService) List(ctx context.Context, p ListTalentsParams) ([]models.Talent, error) {
	if p.Page < 1 {
		p.Page = DefaultPage
	}
	if p.Limit < 1 {
		p.Limit = DefaultLimit
	}
	if p.Limit > MaxLimit {
		p.Limit = MaxLimit
	}
	if p.Page-1 > math.MaxInt/p.Limit {
		p.Page = DefaultPage
	}

	list, err := s.repomanager.Talents(s.db).List(ctx, talents.ListParams{
		Limit:  p.Limit,
		Offset: (p.Page - 1) * p.Limit,
		Desc:   !strings.EqualFold(p.Sort, "asc"),
	})
	if err != nil {
		return nil, err
	}
	if err := s.hydrate(ctx, list); err != nil {
		return nil, err
	}
	return list, nil
}

func (s *TalentService) Get(ctx context.Context, id int64) (*models.Talent, error) {
	t, err := s.repomanager.Talents(s.db).GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	list := []models.Talent{*t}
	if err := s.hydrate(ctx, list); err != nil {
		return nil, err
	}
	return &list[0], nil
}

// hydrate attaches referentes and interactions with two batched queries.
func (s *TalentService) hydrate(ctx context.Context, list []models.Talent) error {
	if len(list) == 0 {
		return nil
	}

	var refIDs []int64
	seen := map[int64]bool{}
	talentIDs := make([]int64, len(list))
	index := make(map[int64]int, len(list))
	for i, t := range list {
		talentIDs[i] = t.ID
		index[t.ID] = i
		for _, id := range []*int64{t.ReferenteLiderID, t.ReferenteMentorID} {
			if id != nil && !seen[*id] {
				seen[*id] = true
				refIDs = append(refIDs, *id)
			}
		}
	}

	refs, err := s.repomanager.Referentes(s.db).GetMany(ctx, refIDs)
	if err != nil {
		return err
	}
	byID := make(map[int64]models.Referente, len(refs))
	for _, r := range refs {
		byID[r.ID] = r
	}

	inters, err := s.repomanager.Interactions(s.db).ListByTalents(ctx, talentIDs)
	if err != nil {
		return err
	}

	for i := range list {
		t := &list[i]
		if t.ReferenteLiderID != nil {
			if r, ok := byID[*t.ReferenteLiderID]; ok {
				t.ReferenteLider = &r
			}
		}
		if t.ReferenteMentorID != nil {
			if r, ok := byID[*t.ReferenteMentorID]; ok {
				t.ReferenteMentor = &r
			}
		}
		t.Interacciones = []models.Interaction{}
	}
	for _, in := range inters {
		if in.TalentoID == nil {
			continue
		}
		if i, ok := index[*in.TalentoID]; ok {
			list[i].Interacciones = append(list[i].Interacciones, in)
		}
	}
	return nil
}

func (s *TalentService) Create(ctx context.Context, in TalentInput) (*models.Talent, error) {
	t := &models.Talent{
		NombreYApellido:   strings.TrimSpace(in.NombreYApellido),
		Seniority:         models.Seniority(in.Seniority),
		Rol:               strings.TrimSpace(in.Rol),
		Estado:            models.TalentStatus(in.Estado),
		ReferenteLiderID:  normalizeID(in.ReferenteLiderID),
		ReferenteMentorID: normalizeID(in.ReferenteMentorID),
	}
	if t.NombreYApellido == "" || in.Seniority == "" || t.Rol == "" || in.Estado == "" {
		return nil, invalid(MsgMissingFields)
	}
	if err := validateTalent(t); err != nil {
		return nil, err
	}
	if err := s.checkReferentes(ctx, t.ReferenteLiderID, t.ReferenteMentorID); err != nil {
		return nil, err
	}
	return s.repomanager.Talents(s.db).Create(ctx, t)
}

func (s *TalentService) Update(ctx context.Context, id int64, in TalentPatch) (*models.Talent, error) {
	repo := s.repomanager.Talents(s.db)
	t, err := repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.NombreYApellido != nil && strings.TrimSpace(*in.NombreYApellido) != "" {
		t.NombreYApellido = strings.TrimSpace(*in.NombreYApellido)
	}
	if in.Seniority != nil {
		t.Seniority = models.Seniority(*in.Seniority)
	}
	if in.Rol != nil && strings.TrimSpace(*in.Rol) != "" {
		t.Rol = strings.TrimSpace(*in.Rol)
	}
	if in.Estado != nil {
		t.Estado = models.TalentStatus(*in.Estado)
	}
	if err := validateTalent(t); err != nil {
		return nil, err
	}

	var lider, mentor *int64
	if in.ReferenteLiderID.Set {
		t.ReferenteLiderID = normalizeID(in.ReferenteLiderID.ID)
		lider = t.ReferenteLiderID
	}
	if in.ReferenteMentorID.Set {
		t.ReferenteMentorID = normalizeID(in.ReferenteMentorID.ID)
		mentor = t.ReferenteMentorID
	}
	if err := s.checkReferentes(ctx, lider, mentor); err != nil {
		return nil, err
	}

	return repo.Update(ctx, t)
}

func (s *TalentService) Delete(ctx context.Context, id int64) error {
	return s.repomanager.Talents(s.db).Delete(ctx, id)
}

func validateTalent(t *models.Talent) error {
	if !t.Seniority.Valid() {
		return invalid(MsgInvalidSeniority)
	}
	if !t.Estado.Valid() {
		return invalid(MsgInvalidStatus)
	}
	return nil
}

// checkReferentes verifies that the given referentes exist with one batched
// lookup. A missing líder is reported before a missing mentor.
func (s *TalentService) checkReferentes(ctx context.Context, lider, mentor *int64) error {
	var ids []int64
	if lider != nil {
		ids = append(ids, *lider)
	}
	if mentor != nil && (lider == nil || *mentor != *lider) {
		ids = append(ids, *mentor)
	}
	if len(ids) == 0 {
		return nil
	}

	found, err := s.repomanager.Referentes(s.db).GetMany(ctx, ids)
	if err != nil {
		return err
	}
	exists := make(map[int64]bool, len(found))
	for _, r := range found {
		exists[r.ID] = true
	}

	if lider != nil && !exists[*lider] {
		return &MissingReferenceError{Entity: EntityLeader, ID: *lider}
	}
	if mentor != nil && !exists[*mentor] {
		return &MissingReferenceError{Entity: EntityMentor, ID: *mentor}
	}
	return nil
}

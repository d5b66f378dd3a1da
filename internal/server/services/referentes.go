package services

import (
	"context"
	"database/sql"
	"strings"

	"github.com/dmitrijs2005/talentdesk/internal/server/models"
	"github.com/dmitrijs2005/talentdesk/internal/server/repositories/repomanager"
)

type ReferenteInput struct {
	NombreYApellido string `json:"nombre_y_apellido"`
}

type ReferentePatch struct {
	NombreYApellido *string `json:"nombre_y_apellido,omitempty"`
}

type ReferenteService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewReferenteService(db *sql.DB, m repomanager.RepositoryManager) *ReferenteService {
	return &ReferenteService{db: db, repomanager: m}
}

// List returns every referente with the talents it leads and mentors.
func (s *ReferenteService) List(ctx context.Context) ([]models.Referente, error) {
	refs, err := s.repomanager.Referentes(s.db).List(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.attachTalents(ctx, refs); err != nil {
		return nil, err
	}
	return refs, nil
}

func (s *ReferenteService) Get(ctx context.Context, id int64) (*models.Referente, error) {
	ref, err := s.repomanager.Referentes(s.db).GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	refs := []models.Referente{*ref}
	if err := s.attachTalents(ctx, refs); err != nil {
		return nil, err
	}
	return &refs[0], nil
}

func (s *ReferenteService) attachTalents(ctx context.Context, refs []models.Referente) error {
	if len(refs) == 0 {
		return nil
	}
	ids := make([]int64, len(refs))
	index := make(map[int64]int, len(refs))
	for i, r := range refs {
		ids[i] = r.ID
		index[r.ID] = i
	}

	linked, err := s.repomanager.Talents(s.db).ListByReferentes(ctx, ids)
	if err != nil {
		return err
	}

	for _, t := range linked {
		if t.ReferenteLiderID != nil {
			if i, ok := index[*t.ReferenteLiderID]; ok {
				refs[i].LiderTalentos = append(refs[i].LiderTalentos, t.Summary())
			}
		}
		if t.ReferenteMentorID != nil {
			if i, ok := index[*t.ReferenteMentorID]; ok {
				refs[i].MentorTalentos = append(refs[i].MentorTalentos, t.Summary())
			}
		}
	}
	return nil
}

func (s *ReferenteService) Create(ctx context.Context, in ReferenteInput) (*models.Referente, error) {
	name := strings.TrimSpace(in.NombreYApellido)
	if name == "" {
		return nil, invalid(MsgNameRequired)
	}
	return s.repomanager.Referentes(s.db).Create(ctx, &models.Referente{NombreYApellido: name})
}

// Update renames the referente; an absent or blank name leaves it unchanged.
func (s *ReferenteService) Update(ctx context.Context, id int64, in ReferentePatch) (*models.Referente, error) {
	repo := s.repomanager.Referentes(s.db)
	ref, err := repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.NombreYApellido != nil && strings.TrimSpace(*in.NombreYApellido) != "" {
		ref.NombreYApellido = strings.TrimSpace(*in.NombreYApellido)
	}
	return repo.Update(ctx, ref)
}

func (s *ReferenteService) Delete(ctx context.Context, id int64) error {
	return s.repomanager.Referentes(s.db).Delete(ctx, id)
}

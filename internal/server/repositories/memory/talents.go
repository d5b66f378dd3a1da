package memory

import (
	"context"
	"sort"
	"strings"

	"github.com/dmitrijs2005/talentdesk/internal/common"
	"github.com/dmitrijs2005/talentdesk/internal/server/models"
	"github.com/dmitrijs2005/talentdesk/internal/server/repositories/talents"
)

type talentRepo struct {
	s *store
}

func plainTalent(t models.Talent) models.Talent {
	t.ReferenteLider, t.ReferenteMentor, t.Interacciones = nil, nil, nil
	return t
}

func (r *talentRepo) Create(_ context.Context, t *models.Talent) (*models.Talent, error) {
	defer r.s.lock("talents.Create")()
	now := r.s.now()
	t.ID = r.s.next("talents")
	t.CreatedAt, t.UpdatedAt = now, now
	r.s.talents[t.ID] = plainTalent(*t)
	return t, nil
}

func (r *talentRepo) GetByID(_ context.Context, id int64) (*models.Talent, error) {
	defer r.s.lock("talents.GetByID")()
	t, ok := r.s.talents[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return &t, nil
}

func (r *talentRepo) GetMany(_ context.Context, ids []int64) ([]models.Talent, error) {
	defer r.s.lock("talents.GetMany")()
	result := make([]models.Talent, 0, len(ids))
	for _, id := range ids {
		if t, ok := r.s.talents[id]; ok {
			result = append(result, t)
		}
	}
	return result, nil
}

func (r *talentRepo) List(_ context.Context, p talents.ListParams) ([]models.Talent, error) {
	defer r.s.lock("talents.List")()
	all := make([]models.Talent, 0, len(r.s.talents))
	for _, t := range r.s.talents {
		all = append(all, t)
	}
	sort.Slice(all, func(i, j int) bool {
		c := strings.Compare(all[i].NombreYApellido, all[j].NombreYApellido)
		if c == 0 {
			return all[i].ID < all[j].ID
		}
		if p.Desc {
			return c > 0
		}
		return c < 0
	})
	if p.Offset < 0 || p.Offset >= len(all) {
		return []models.Talent{}, nil
	}
	end := p.Offset + p.Limit
	if end > len(all) || end < p.Offset {
		end = len(all)
	}
	return all[p.Offset:end], nil
}

func (r *talentRepo) ListByReferentes(_ context.Context, ids []int64) ([]models.Talent, error) {
	defer r.s.lock("talents.ListByReferentes")()
	want := make(map[int64]bool, len(ids))
	for _, id := range ids {
		want[id] = true
	}
	result := make([]models.Talent, 0)
	for _, t := range r.s.talents {
		if (t.ReferenteLiderID != nil && want[*t.ReferenteLiderID]) ||
			(t.ReferenteMentorID != nil && want[*t.ReferenteMentorID]) {
			result = append(result, t)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (r *talentRepo) Update(_ context.Context, t *models.Talent) (*models.Talent, error) {
	defer r.s.lock("talents.Update")()
	old, ok := r.s.talents[t.ID]
	if !ok {
		return nil, common.ErrorNotFound
	}
	t.CreatedAt = old.CreatedAt
	t.UpdatedAt = r.s.now()
	r.s.talents[t.ID] = plainTalent(*t)
	return t, nil
}

func (r *talentRepo) Delete(_ context.Context, id int64) error {
	defer r.s.lock("talents.Delete")()
	if _, ok := r.s.talents[id]; !ok {
		return common.ErrorNotFound
	}
	delete(r.s.talents, id)
	for iid, i := range r.s.interactions {
		if i.TalentoID != nil && *i.TalentoID == id {
			i.TalentoID = nil
			r.s.interactions[iid] = i
		}
	}
	return nil
}

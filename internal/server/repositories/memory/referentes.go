package memory

import (
	"context"
	"sort"

	"github.com/dmitrijs2005/talentdesk/internal/common"
	"github.com/dmitrijs2005/talentdesk/internal/server/models"
)

type referenteRepo struct {
	s *store
}

func plainReferente(r models.Referente) models.Referente {
	r.LiderTalentos, r.MentorTalentos = nil, nil
	return r
}

func (r *referenteRepo) Create(_ context.Context, ref *models.Referente) (*models.Referente, error) {
	defer r.s.lock("referentes.Create")()
	now := r.s.now()
	ref.ID = r.s.next("referentes")
	ref.CreatedAt, ref.UpdatedAt = now, now
	r.s.referentes[ref.ID] = plainReferente(*ref)
	return ref, nil
}

func (r *referenteRepo) GetByID(_ context.Context, id int64) (*models.Referente, error) {
	defer r.s.lock("referentes.GetByID")()
	ref, ok := r.s.referentes[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return &ref, nil
}

func (r *referenteRepo) GetMany(_ context.Context, ids []int64) ([]models.Referente, error) {
	defer r.s.lock("referentes.GetMany")()
	result := make([]models.Referente, 0, len(ids))
	for _, id := range ids {
		if ref, ok := r.s.referentes[id]; ok {
			result = append(result, ref)
		}
	}
	return result, nil
}

func (r *referenteRepo) List(context.Context) ([]models.Referente, error) {
	defer r.s.lock("referentes.List")()
	result := make([]models.Referente, 0, len(r.s.referentes))
	for _, ref := range r.s.referentes {
		result = append(result, ref)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (r *referenteRepo) Update(_ context.Context, ref *models.Referente) (*models.Referente, error) {
	defer r.s.lock("referentes.Update")()
	old, ok := r.s.referentes[ref.ID]
	if !ok {
		return nil, common.ErrorNotFound
	}
	ref.CreatedAt = old.CreatedAt
	ref.UpdatedAt = r.s.now()
	r.s.referentes[ref.ID] = plainReferente(*ref)
	return ref, nil
}

// Delete removes the referente and clears it from talents, like the
// ON DELETE SET NULL foreign keys do.
func (r *referenteRepo) Delete(_ context.Context, id int64) error {
	defer r.s.lock("referentes.Delete")()
	if _, ok := r.s.referentes[id]; !ok {
		return common.ErrorNotFound
	}
	delete(r.s.referentes, id)
	for tid, t := range r.s.talents {
		if t.ReferenteLiderID != nil && *t.ReferenteLiderID == id {
			t.ReferenteLiderID = nil
		}
		if t.ReferenteMentorID != nil && *t.ReferenteMentorID == id {
			t.ReferenteMentorID = nil
		}
		r.s.talents[tid] = t
	}
	return nil
}

package memory

import (
	"context"
	"sort"

	"github.com/dmitrijs2005/talentdesk/internal/common"
	"github.com/dmitrijs2005/talentdesk/internal/server/models"
)

type interactionRepo struct {
	s *store
}

func (r *interactionRepo) Create(_ context.Context, i *models.Interaction) (*models.Interaction, error) {
	defer r.s.lock("interactions.Create")()
	now := r.s.now()
	i.ID = r.s.next("interactions")
	i.CreatedAt, i.UpdatedAt = now, now
	stored := *i
	stored.Talento = nil
	r.s.interactions[i.ID] = stored
	return i, nil
}

func (r *interactionRepo) GetByID(_ context.Context, id int64) (*models.Interaction, error) {
	defer r.s.lock("interactions.GetByID")()
	i, ok := r.s.interactions[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return &i, nil
}

func (r *interactionRepo) List(context.Context) ([]models.Interaction, error) {
	defer r.s.lock("interactions.List")()
	return r.sorted(func(models.Interaction) bool { return true }), nil
}

func (r *interactionRepo) ListByTalents(_ context.Context, ids []int64) ([]models.Interaction, error) {
	defer r.s.lock("interactions.ListByTalents")()
	want := make(map[int64]bool, len(ids))
	for _, id := range ids {
		want[id] = true
	}
	return r.sorted(func(i models.Interaction) bool {
		return i.TalentoID != nil && want[*i.TalentoID]
	}), nil
}

// sorted orders by fecha descending, newest first, like the SQL repository.
func (r *interactionRepo) sorted(keep func(models.Interaction) bool) []models.Interaction {
	result := make([]models.Interaction, 0)
	for _, i := range r.s.interactions {
		if keep(i) {
			result = append(result, i)
		}
	}
	sort.Slice(result, func(a, b int) bool {
		if result[a].Fecha.Equal(result[b].Fecha) {
			return result[a].ID > result[b].ID
		}
		return result[a].Fecha.After(result[b].Fecha)
	})
	return result
}

func (r *interactionRepo) Update(_ context.Context, i *models.Interaction) (*models.Interaction, error) {
	defer r.s.lock("interactions.Update")()
	old, ok := r.s.interactions[i.ID]
	if !ok {
		return nil, common.ErrorNotFound
	}
	i.CreatedAt = old.CreatedAt
	i.UpdatedAt = r.s.now()
	stored := *i
	stored.Talento = nil
	r.s.interactions[i.ID] = stored
	return i, nil
}

func (r *interactionRepo) Delete(_ context.Context, id int64) error {
	defer r.s.lock("interactions.Delete")()
	if _, ok := r.s.interactions[id]; !ok {
		return common.ErrorNotFound
	}
	delete(r.s.interactions, id)
	return nil
}

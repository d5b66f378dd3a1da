package talents

import (
	"context"

	"github.com/dmitrijs2005/talentdesk/internal/server/models"
)

// ListParams selects one page of talents ordered by name.
type ListParams struct {
	Limit  int
	Offset int
	Desc   bool
}

type Repository interface {
	Create(ctx context.Context, t *models.Talent) (*models.Talent, error)
	GetByID(ctx context.Context, id int64) (*models.Talent, error)
	GetMany(ctx context.Context, ids []int64) ([]models.Talent, error)
	List(ctx context.Context, p ListParams) ([]models.Talent, error)
	// ListByReferentes returns talents led or mentored by any of ids.
	ListByReferentes(ctx context.Context, ids []int64) ([]models.Talent, error)
	Update(ctx context.Context, t *models.Talent) (*models.Talent, error)
	Delete(ctx context.Context, id int64) error
}

package referentes

import (
	"context"

	"github.com/dmitrijs2005/talentdesk/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, r *models.Referente) (*models.Referente, error)
	GetByID(ctx context.Context, id int64) (*models.Referente, error)
	// GetMany returns the referentes whose ids are in ids, in one query.
	// Unknown ids are simply absent from the result.
	GetMany(ctx context.Context, ids []int64) ([]models.Referente, error)
	List(ctx context.Context) ([]models.Referente, error)
	Update(ctx context.Context, r *models.Referente) (*models.Referente, error)
	Delete(ctx context.Context, id int64) error
}

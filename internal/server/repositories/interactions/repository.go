package interactions

import (
	"context"

	"github.com/dmitrijs2005/talentdesk/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, i *models.Interaction) (*models.Interaction, error)
	GetByID(ctx context.Context, id int64) (*models.Interaction, error)
	List(ctx context.Context) ([]models.Interaction, error)
	// ListByTalents returns the interactions of any talent in ids.
	ListByTalents(ctx context.Context, ids []int64) ([]models.Interaction, error)
	Update(ctx context.Context, i *models.Interaction) (*models.Interaction, error)
	Delete(ctx context.Context, id int64) error
}

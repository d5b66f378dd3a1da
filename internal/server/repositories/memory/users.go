package memory

import (
	"context"
	"sort"

	"github.com/dmitrijs2005/talentdesk/internal/common"
	"github.com/dmitrijs2005/talentdesk/internal/server/models"
)

type userRepo struct {
	s *store
}

func (r *userRepo) emailTaken(email, exceptID string) bool {
	for _, u := range r.s.users {
		if u.Email == email && u.ID != exceptID {
			return true
		}
	}
	return false
}

func (r *userRepo) Create(_ context.Context, user *models.User) (*models.User, error) {
	defer r.s.lock("users.Create")()
	if r.emailTaken(user.Email, "") {
		return nil, common.ErrEmailTaken
	}
	now := r.s.now()
	user.CreatedAt, user.UpdatedAt = now, now
	r.s.users[user.ID] = *user
	return user, nil
}

func (r *userRepo) GetByID(_ context.Context, id string) (*models.User, error) {
	defer r.s.lock("users.GetByID")()
	u, ok := r.s.users[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return &u, nil
}

func (r *userRepo) GetByEmail(_ context.Context, email string) (*models.User, error) {
	defer r.s.lock("users.GetByEmail")()
	for _, u := range r.s.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (r *userRepo) List(context.Context) ([]models.User, error) {
	defer r.s.lock("users.List")()
	result := make([]models.User, 0, len(r.s.users))
	for _, u := range r.s.users {
		result = append(result, u)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CreatedAt.Before(result[j].CreatedAt) })
	return result, nil
}

func (r *userRepo) Update(_ context.Context, user *models.User) (*models.User, error) {
	defer r.s.lock("users.Update")()
	old, ok := r.s.users[user.ID]
	if !ok {
		return nil, common.ErrorNotFound
	}
	if r.emailTaken(user.Email, user.ID) {
		return nil, common.ErrEmailTaken
	}
	user.CreatedAt = old.CreatedAt
	user.UpdatedAt = r.s.now()
	r.s.users[user.ID] = *user
	return user, nil
}

func (r *userRepo) Delete(_ context.Context, id string) error {
	defer r.s.lock("users.Delete")()
	if _, ok := r.s.users[id]; !ok {
		return common.ErrorNotFound
	}
	delete(r.s.users, id)
	return nil
}

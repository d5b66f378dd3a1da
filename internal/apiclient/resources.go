package apiclient

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/dmitrijs2005/talentdesk/internal/server/models"
	"github.com/dmitrijs2005/talentdesk/internal/server/services"
)

type message struct {
	Message string `json:"message"`
}

// Login checks credentials against POST /api/auth.
func (c *Client) Login(ctx context.Context, email, password string) (*models.User, error) {
	body, err := c.do(ctx, http.MethodPost, "/api/auth", map[string]string{"email": email, "password": password})
	if err != nil {
		return nil, err
	}
	var u models.User
	if err := json.Unmarshal(body, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (c *Client) ListUsers(ctx context.Context) ([]models.User, error) {
	var out []models.User
	if err := c.cachedGet(ctx, TagUsers, "/api/users", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetUser(ctx context.Context, id string) (*models.User, error) {
	var u models.User
	if err := c.cachedGet(ctx, TagUsers, "/api/users/"+url.PathEscape(id), &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// GetUserByEmail returns nil, nil when no user has that email.
func (c *Client) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var u *models.User
	err := c.cachedGet(ctx, TagUsers, "/api/users?email="+url.QueryEscape(email), &u)
	return u, err
}

func (c *Client) CreateUser(ctx context.Context, in services.CreateUserInput) (*models.User, error) {
	var u models.User
	if err := c.mutate(ctx, TagUsers, http.MethodPost, "/api/users", in, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (c *Client) UpdateUser(ctx context.Context, id string, in services.UpdateUserInput) (*models.User, error) {
	var u models.User
	if err := c.mutate(ctx, TagUsers, http.MethodPut, "/api/users/"+url.PathEscape(id), in, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (c *Client) DeleteUser(ctx context.Context, id string) error {
	return c.mutate(ctx, TagUsers, http.MethodDelete, "/api/users/"+url.PathEscape(id), nil, &message{})
}

// ListTalents fetches one page; zero page or limit and empty sort use the
// server defaults.
func (c *Client) ListTalents(ctx context.Context, page, limit int, sort string) ([]models.Talent, error) {
	q := url.Values{}
	if page > 0 {
		q.Set("page", strconv.Itoa(page))
	}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	if sort != "" {
		q.Set("sort", sort)
	}
	path := "/api/talents"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	var out []models.Talent
	if err := c.cachedGet(ctx, TagTalents, path, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateTalent(ctx context.Context, in services.TalentInput) (*models.Talent, error) {
	var t models.Talent
	if err := c.mutate(ctx, TagTalents, http.MethodPost, "/api/talents", in, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

func (c *Client) UpdateTalent(ctx context.Context, id int64, in services.TalentPatch) (*models.Talent, error) {
	var t models.Talent
	if err := c.mutate(ctx, TagTalents, http.MethodPut, fmt.Sprintf("/api/talents/%d", id), in, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

func (c *Client) DeleteTalent(ctx context.Context, id int64) error {
	return c.mutate(ctx, TagTalents, http.MethodDelete, fmt.Sprintf("/api/talents/%d", id), nil, &message{})
}

func (c *Client) ListReferentes(ctx context.Context) ([]models.Referente, error) {
	var out []models.Referente
	if err := c.cachedGet(ctx, TagReferentes, "/api/technical-reference", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateReferente(ctx context.Context, name string) (*models.Referente, error) {
	var r models.Referente
	if err := c.mutate(ctx, TagReferentes, http.MethodPost, "/api/technical-reference", services.ReferenteInput{NombreYApellido: name}, &r); err != nil {
		return nil, err
	}
	return &r, nil
}

func (c *Client) UpdateReferente(ctx context.Context, id int64, name string) (*models.Referente, error) {
	var r models.Referente
	in := services.ReferentePatch{NombreYApellido: &name}
	if err := c.mutate(ctx, TagReferentes, http.MethodPut, fmt.Sprintf("/api/technical-reference/%d", id), in, &r); err != nil {
		return nil, err
	}
	return &r, nil
}

func (c *Client) DeleteReferente(ctx context.Context, id int64) error {
	return c.mutate(ctx, TagReferentes, http.MethodDelete, fmt.Sprintf("/api/technical-reference/%d", id), nil, &message{})
}

func (c *Client) ListInteractions(ctx context.Context) ([]models.Interaction, error) {
	var out []models.Interaction
	if err := c.cachedGet(ctx, TagInteractions, "/api/interactions", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateInteraction(ctx context.Context, in services.InteractionInput) (*models.Interaction, error) {
	var i models.Interaction
	if err := c.mutate(ctx, TagInteractions, http.MethodPost, "/api/interactions", in, &i); err != nil {
		return nil, err
	}
	return &i, nil
}

func (c *Client) UpdateInteraction(ctx context.Context, id int64, in services.InteractionPatch) (*models.Interaction, error) {
	var i models.Interaction
	if err := c.mutate(ctx, TagInteractions, http.MethodPut, fmt.Sprintf("/api/interactions/%d", id), in, &i); err != nil {
		return nil, err
	}
	return &i, nil
}

func (c *Client) DeleteInteraction(ctx context.Context, id int64) error {
	return c.mutate(ctx, TagInteractions, http.MethodDelete, fmt.Sprintf("/api/interactions/%d", id), nil, &message{})
}

package session

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/talentdesk/internal/common"
	"github.com/dmitrijs2005/talentdesk/internal/logging"
	"github.com/dmitrijs2005/talentdesk/internal/server/auth"
	"github.com/dmitrijs2005/talentdesk/internal/server/metrics"
	"github.com/dmitrijs2005/talentdesk/internal/server/models"
	"github.com/dmitrijs2005/talentdesk/internal/server/oauth"
	"github.com/dmitrijs2005/talentdesk/internal/server/services"
)

// Users is the part of the user service the manager relies on.
type Users interface {
	Login(ctx context.Context, email, password string) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Create(ctx context.Context, in services.CreateUserInput) (*models.User, error)
}

type Manager struct {
	users    Users
	secret   []byte
	validity time.Duration
	metrics  *metrics.Metrics
	logger   logging.Logger
	now      func() time.Time
}

func NewManager(users Users, tokenSecret []byte, validity time.Duration, m *metrics.Metrics, l logging.Logger) *Manager {
	return &Manager{
		users:    users,
		secret:   tokenSecret,
		validity: validity,
		metrics:  m,
		logger:   l.With("module", "session"),
		now:      time.Now,
	}
}

// IssueSession builds fresh claims for an already verified user.
func (m *Manager) IssueSession(u *models.User) (Claims, error) {
	token, exp, err := m.sign(u)
	if err != nil {
		return Claims{}, err
	}
	return Claims{
		SubjectID:    u.ID,
		Email:        u.Email,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		BearerToken:  token,
		BearerExpiry: exp,
	}, nil
}

// GetClaims returns c, refreshed when its bearer is stale and the subject
// still exists. The bool reports a refresh; the caller must then re-save the
// cookie. A failed refresh returns c unchanged.
func (m *Manager) GetClaims(ctx context.Context, c Claims) (Claims, bool) {
	if c.State(m.now()) != StateStale {
		return c, false
	}

	u, token, exp, ok := m.refresh(ctx, c.SubjectID)
	if !ok {
		return c, false
	}

	c.Email = u.Email
	c.FirstName = u.FirstName
	c.LastName = u.LastName
	c.BearerToken = token
	c.BearerExpiry = exp
	return c, true
}

// RefreshBearer re-reads the subject and signs a new bearer for it. ok is
// false when the subject no longer exists or the lookup fails.
func (m *Manager) RefreshBearer(ctx context.Context, subjectID string) (string, int64, bool) {
	_, token, exp, ok := m.refresh(ctx, subjectID)
	return token, exp, ok
}

func (m *Manager) refresh(ctx context.Context, subjectID string) (*models.User, string, int64, bool) {
	u, err := m.users.GetByID(ctx, subjectID)
	if err != nil {
		if !errors.Is(err, common.ErrorNotFound) {
			m.logger.Warn(ctx, "bearer refresh lookup failed", "subject", subjectID, "error", err)
		}
		m.metrics.SessionRefresh(metrics.RefreshSkipped)
		return nil, "", 0, false
	}

	token, exp, err := m.sign(u)
	if err != nil {
		m.logger.Error(ctx, "bearer refresh signing failed", "subject", subjectID, "error", err)
		m.metrics.SessionRefresh(metrics.RefreshSkipped)
		return nil, "", 0, false
	}

	m.metrics.SessionRefresh(metrics.RefreshRefreshed)
	m.logger.Debug(ctx, "bearer refreshed", "subject", subjectID)
	return u, token, exp, true
}

func (m *Manager) sign(u *models.User) (string, int64, error) {
	return auth.GenerateToken(auth.Identity{
		ID:        u.ID,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
	}, m.secret, m.validity, m.now())
}

// SignInWithCredentials runs the authentication gate and issues a session.
func (m *Manager) SignInWithCredentials(ctx context.Context, email, password string) (Claims, error) {
	u, err := m.users.Login(ctx, email, password)
	if err != nil {
		return Claims{}, err
	}
	return m.IssueSession(u)
}

// SignInWithProvider issues a session for an identity vouched for by an
// external provider. The first sign-in of an email registers it with a
// random password nobody knows; if that fails the sign-in is refused.
func (m *Manager) SignInWithProvider(ctx context.Context, id oauth.Identity) (Claims, error) {
	if id.Email == "" {
		return Claims{}, fmt.Errorf("%w: provider returned no email", common.ErrorUnauthorized)
	}

	u, err := m.users.GetByEmail(ctx, id.Email)
	switch {
	case err == nil:
	case errors.Is(err, common.ErrorNotFound):
		first, last := id.GivenName, id.FamilyName
		if first == "" && last == "" {
			first, last = splitName(id.Name)
		}
		u, err = m.users.Create(ctx, services.CreateUserInput{
			Email:     id.Email,
			Password:  rand.Text(),
			FirstName: first,
			LastName:  last,
		})
		if err != nil {
			m.logger.Error(ctx, "provider sign-in registration failed", "provider", id.Provider, "error", err)
			return Claims{}, fmt.Errorf("%w: registration failed: %v", common.ErrorUnauthorized, err)
		}
		m.logger.Info(ctx, "registered user from provider", "provider", id.Provider, "user_id", u.ID)
	default:
		return Claims{}, fmt.Errorf("error looking up user: %w", err)
	}

	return m.IssueSession(u)
}

// splitName puts the first word in first and the rest in last.
func splitName(name string) (first, last string) {
	parts := strings.Fields(name)
	if len(parts) == 0 {
		return "", ""
	}
	return parts[0], strings.Join(parts[1:], " ")
}

package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dmitrijs2005/talentdesk/internal/common"
	"github.com/dmitrijs2005/talentdesk/internal/logging"
	"github.com/dmitrijs2005/talentdesk/internal/server/auth"
	"github.com/dmitrijs2005/talentdesk/internal/server/metrics"
	"github.com/dmitrijs2005/talentdesk/internal/server/models"
	"github.com/dmitrijs2005/talentdesk/internal/server/oauth"
	"github.com/dmitrijs2005/talentdesk/internal/server/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUsers struct {
	byID      map[string]*models.User
	lookupErr error
	createErr error
	created   []services.CreateUserInput
	getByID   int
}

func newFakeUsers(us ...*models.User) *fakeUsers {
	f := &fakeUsers{byID: map[string]*models.User{}}
	for _, u := range us {
		f.byID[u.ID] = u
	}
	return f
}

func (f *fakeUsers) Login(_ context.Context, email, password string) (*models.User, error) {
	for _, u := range f.byID {
		if u.Email == email {
			if password != "right" {
				return nil, common.ErrInvalidPassword
			}
			return u, nil
		}
	}
	return nil, common.ErrInvalidCredentials
}

func (f *fakeUsers) GetByID(_ context.Context, id string) (*models.User, error) {
	f.getByID++
	if f.lookupErr != nil {
		return nil, f.lookupErr
	}
	u, ok := f.byID[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUsers) GetByEmail(_ context.Context, email string) (*models.User, error) {
	for _, u := range f.byID {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (f *fakeUsers) Create(_ context.Context, in services.CreateUserInput) (*models.User, error) {
	f.created = append(f.created, in)
	if f.createErr != nil {
		return nil, f.createErr
	}
	u := &models.User{ID: "new-id", Email: in.Email, FirstName: in.FirstName, LastName: in.LastName}
	f.byID[u.ID] = u
	return u, nil
}

var (
	secret = []byte("token-secret")
	t0     = time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	ana    = &models.User{ID: "u-1", Email: "ana@example.com", FirstName: "Ana", LastName: "Martínez"}
)

func newManager(t *testing.T, users Users) (*Manager, *metrics.Metrics, *time.Time) {
	t.Helper()
	met, err := metrics.New()
	require.NoError(t, err)
	m := NewManager(users, secret, 30*24*time.Hour, met, logging.Nop())
	now := t0
	m.now = func() time.Time { return now }
	return m, met, &now
}

func refreshes(t *testing.T, met *metrics.Metrics, result string) float64 {
	t.Helper()
	mfs, err := met.Registry().Gather()
	require.NoError(t, err)
	for _, mf := range mfs {
		if mf.GetName() != "talentdesk_session_refreshes_total" {
			continue
		}
		for _, m := range mf.GetMetric() {
			if m.GetLabel()[0].GetValue() == result {
				return m.GetCounter().GetValue()
			}
		}
	}
	return 0
}

func TestIssueSession(t *testing.T) {
	m, _, _ := newManager(t, newFakeUsers(ana))

	c, err := m.IssueSession(ana)
	require.NoError(t, err)
	assert.Equal(t, "u-1", c.SubjectID)
	assert.Equal(t, t0.Add(30*24*time.Hour).Unix(), c.BearerExpiry)
	assert.Equal(t, StateFresh, c.State(t0))

	parsed, err := auth.ParseToken(c.BearerToken, secret)
	require.NoError(t, err)
	assert.Equal(t, "ana@example.com", parsed.Email)
	assert.Equal(t, "u-1", parsed.Identity.ID)
}

func TestClaimsState(t *testing.T) {
	var nilClaims *Claims
	assert.Equal(t, StateUnauthenticated, nilClaims.State(t0))
	assert.Equal(t, StateUnauthenticated, (&Claims{}).State(t0))

	c := &Claims{SubjectID: "u", BearerExpiry: t0.Unix()}
	assert.Equal(t, StateStale, c.State(t0), "expiry equal to now is stale")
	assert.Equal(t, StateFresh, c.State(t0.Add(-time.Second)))
	assert.Equal(t, "stale", StateStale.String())
}

func TestGetClaims_FreshUntouched(t *testing.T) {
	users := newFakeUsers(ana)
	m, _, _ := newManager(t, users)
	c, err := m.IssueSession(ana)
	require.NoError(t, err)

	got, refreshed := m.GetClaims(context.Background(), c)
	assert.False(t, refreshed)
	assert.Equal(t, c, got)
	assert.Zero(t, users.getByID)
}

func TestGetClaims_StaleRefreshed(t *testing.T) {
	users := newFakeUsers(ana)
	m, met, now := newManager(t, users)
	c, err := m.IssueSession(ana)
	require.NoError(t, err)

	users.byID["u-1"] = &models.User{ID: "u-1", Email: "ana@example.com", FirstName: "Ana María", LastName: "Martínez"}
	*now = t0.Add(31 * 24 * time.Hour)
	require.Equal(t, StateStale, c.State(*now))

	got, refreshed := m.GetClaims(context.Background(), c)
	require.True(t, refreshed)
	assert.Greater(t, got.BearerExpiry, c.BearerExpiry)
	assert.Greater(t, got.BearerExpiry, now.Unix())
	assert.NotEqual(t, c.BearerToken, got.BearerToken)
	assert.Equal(t, "Ana María", got.FirstName, "profile edits are picked up")
	assert.Equal(t, StateFresh, got.State(*now))
	assert.Equal(t, 1.0, refreshes(t, met, metrics.RefreshRefreshed))
}

func TestGetClaims_DeletedSubjectUnchanged(t *testing.T) {
	users := newFakeUsers(ana)
	m, met, now := newManager(t, users)
	c, err := m.IssueSession(ana)
	require.NoError(t, err)

	delete(users.byID, "u-1")
	*now = t0.Add(40 * 24 * time.Hour)

	got, refreshed := m.GetClaims(context.Background(), c)
	assert.False(t, refreshed)
	assert.Equal(t, c, got)

	again, refreshed := m.GetClaims(context.Background(), got)
	assert.False(t, refreshed)
	assert.Equal(t, c, again)
	assert.Equal(t, 2.0, refreshes(t, met, metrics.RefreshSkipped))
}

func TestRefreshBearer_LookupFailureIsSoft(t *testing.T) {
	users := newFakeUsers(ana)
	users.lookupErr = errors.New("connection reset")
	m, _, _ := newManager(t, users)

	tok, exp, ok := m.RefreshBearer(context.Background(), "u-1")
	assert.False(t, ok)
	assert.Empty(t, tok)
	assert.Zero(t, exp)
}

func TestRefreshBearer_OK(t *testing.T) {
	m, _, _ := newManager(t, newFakeUsers(ana))

	tok, exp, ok := m.RefreshBearer(context.Background(), "u-1")
	require.True(t, ok)
	assert.Equal(t, t0.Add(30*24*time.Hour).Unix(), exp)
	_, err := auth.ParseToken(tok, secret)
	assert.NoError(t, err)
}

func TestSignInWithCredentials(t *testing.T) {
	m, _, _ := newManager(t, newFakeUsers(ana))
	ctx := context.Background()

	c, err := m.SignInWithCredentials(ctx, "ana@example.com", "right")
	require.NoError(t, err)
	assert.Equal(t, "u-1", c.SubjectID)

	_, err = m.SignInWithCredentials(ctx, "ana@example.com", "wrong")
	assert.ErrorIs(t, err, common.ErrInvalidPassword)
	_, err = m.SignInWithCredentials(ctx, "nobody@example.com", "right")
	assert.ErrorIs(t, err, common.ErrInvalidCredentials)
}

func TestSignInWithProvider_ExistingUser(t *testing.T) {
	users := newFakeUsers(ana)
	m, _, _ := newManager(t, users)

	c, err := m.SignInWithProvider(context.Background(), oauth.Identity{Provider: "google", Email: "ana@example.com"})
	require.NoError(t, err)
	assert.Equal(t, "u-1", c.SubjectID)
	assert.Empty(t, users.created)
}

func TestSignInWithProvider_FirstSightRegisters(t *testing.T) {
	users := newFakeUsers()
	m, _, _ := newManager(t, users)

	c, err := m.SignInWithProvider(context.Background(), oauth.Identity{Provider: "google", Email: "luis@example.com", Name: "Luis Alberto Fernández"})
	require.NoError(t, err)
	assert.Equal(t, "new-id", c.SubjectID)
	require.Len(t, users.created, 1)
	assert.Equal(t, "Luis", users.created[0].FirstName)
	assert.Equal(t, "Alberto Fernández", users.created[0].LastName)
	assert.NotEmpty(t, users.created[0].Password)
}

func TestSignInWithProvider_RegistrationFailureRefuses(t *testing.T) {
	users := newFakeUsers()
	users.createErr = errors.New("db down")
	m, _, _ := newManager(t, users)

	c, err := m.SignInWithProvider(context.Background(), oauth.Identity{Email: "x@example.com"})
	assert.ErrorIs(t, err, common.ErrorUnauthorized)
	assert.Equal(t, Claims{}, c)
}

func TestSignInWithProvider_NoEmail(t *testing.T) {
	users := newFakeUsers()
	m, _, _ := newManager(t, users)

	_, err := m.SignInWithProvider(context.Background(), oauth.Identity{Provider: "google"})
	assert.ErrorIs(t, err, common.ErrorUnauthorized)
	assert.Empty(t, users.created)
}

func TestAuthorizationHeader(t *testing.T) {
	assert.Equal(t, "Bearer abc.def", AuthorizationHeader("abc.def"))
}

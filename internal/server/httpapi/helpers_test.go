package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/talentdesk/internal/logging"
	"github.com/dmitrijs2005/talentdesk/internal/server/metrics"
	"github.com/dmitrijs2005/talentdesk/internal/server/oauth"
	"github.com/dmitrijs2005/talentdesk/internal/server/repositories/memory"
	"github.com/dmitrijs2005/talentdesk/internal/server/services"
	"github.com/dmitrijs2005/talentdesk/internal/server/session"
	"github.com/stretchr/testify/require"
)

const anyBearer = "Bearer whatever"

var tokenSecret = []byte("test-token-secret")

type stubProvider struct {
	identity oauth.Identity
	err      error
}

func (p *stubProvider) Name() string { return "stub" }

func (p *stubProvider) AuthCodeURL(state string) string {
	return "https://idp.example.com/auth?state=" + state
}

func (p *stubProvider) Exchange(_ context.Context, code string) (oauth.Identity, error) {
	if p.err != nil {
		return oauth.Identity{}, p.err
	}
	return p.identity, nil
}

type env struct {
	t      *testing.T
	router http.Handler
	repos  *memory.RepositoryManager
	deps   Deps
}

func newEnv(t *testing.T, opts ...func(*Deps)) *env {
	t.Helper()
	repos := memory.NewRepositoryManager()
	users := services.NewUserService(nil, repos)

	met, err := metrics.New()
	require.NoError(t, err)
	cookies, err := session.NewCookieStore([]byte("cookie-hash-key"), nil, time.Hour, false)
	require.NoError(t, err)

	d := Deps{
		Users:        users,
		Talents:      services.NewTalentService(nil, repos),
		Referentes:   services.NewReferenteService(nil, repos),
		Interactions: services.NewInteractionService(nil, repos),
		Sessions:     session.NewManager(users, tokenSecret, 30*24*time.Hour, met, logging.Nop()),
		Cookies:      cookies,
		Providers:    oauth.NewRegistry(&stubProvider{identity: oauth.Identity{Provider: "stub", Email: "sso@example.com", Name: "Sara Oliva"}}),
		Metrics:      met,
		Logger:       logging.Nop(),
		TokenSecret:  tokenSecret,
	}
	for _, o := range opts {
		o(&d)
	}
	return &env{t: t, router: NewRouter(d), repos: repos, deps: d}
}

// do sends a request; auth is the raw Authorization header, if any.
func (e *env) do(method, path, body, auth string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	e.t.Helper()
	var r *http.Request
	if body == "" {
		r = httptest.NewRequest(method, path, nil)
	} else {
		r = httptest.NewRequest(method, path, strings.NewReader(body))
		r.Header.Set("Content-Type", "application/json")
	}
	if auth != "" {
		r.Header.Set("Authorization", auth)
	}
	for _, c := range cookies {
		r.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, r)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func errorOf(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	return decode[errorBody](t, rec).Error
}

package session

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStore(t *testing.T) *CookieStore {
	t.Helper()
	s, err := NewCookieStore([]byte("hash-key-0123456789"), []byte("0123456789abcdef0123456789abcdef"), 30*24*time.Hour, true)
	require.NoError(t, err)
	return s
}

// roundTrip builds a request carrying the cookies set on rec.
func roundTrip(rec *httptest.ResponseRecorder) *http.Request {
	r := httptest.NewRequest(http.MethodGet, "/session", nil)
	for _, c := range rec.Result().Cookies() {
		r.AddCookie(c)
	}
	return r
}

func TestCookieStore_SaveLoad(t *testing.T) {
	s := newStore(t)
	want := Claims{SubjectID: "u-1", Email: "ana@example.com", BearerToken: "tok", BearerExpiry: 42}

	rec := httptest.NewRecorder()
	require.NoError(t, s.Save(rec, httptest.NewRequest(http.MethodPost, "/session/login", nil), want))

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	c := cookies[0]
	assert.Equal(t, CookieName, c.Name)
	assert.True(t, c.HttpOnly)
	assert.True(t, c.Secure)
	assert.Equal(t, http.SameSiteLaxMode, c.SameSite)
	assert.Equal(t, 30*24*3600, c.MaxAge)
	assert.NotContains(t, c.Value, "ana@example.com")

	got, ok := s.Load(roundTrip(rec))
	require.True(t, ok)
	assert.Equal(t, want, got)
}

func TestCookieStore_LoadMissingOrTampered(t *testing.T) {
	s := newStore(t)

	_, ok := s.Load(httptest.NewRequest(http.MethodGet, "/session", nil))
	assert.False(t, ok)

	r := httptest.NewRequest(http.MethodGet, "/session", nil)
	r.AddCookie(&http.Cookie{Name: CookieName, Value: "forged"})
	_, ok = s.Load(r)
	assert.False(t, ok)

	other, err := NewCookieStore([]byte("another-hash-key"), nil, time.Hour, false)
	require.NoError(t, err)
	rec := httptest.NewRecorder()
	require.NoError(t, other.Save(rec, httptest.NewRequest(http.MethodPost, "/", nil), Claims{SubjectID: "u-1"}))
	_, ok = s.Load(roundTrip(rec))
	assert.False(t, ok, "cookie signed with a different key")
}

func TestCookieStore_Clear(t *testing.T) {
	s := newStore(t)
	rec := httptest.NewRecorder()
	require.NoError(t, s.Clear(rec, httptest.NewRequest(http.MethodPost, "/session/logout", nil)))

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, CookieName, cookies[0].Name)
	assert.Less(t, cookies[0].MaxAge, 0)
}

func TestCookieStore_State(t *testing.T) {
	s := newStore(t)
	rec := httptest.NewRecorder()
	require.NoError(t, s.SaveState(rec, httptest.NewRequest(http.MethodGet, "/session/oauth/google", nil), "st-1"))
	require.Len(t, rec.Result().Cookies(), 1)
	assert.Equal(t, 600, rec.Result().Cookies()[0].MaxAge)

	out := httptest.NewRecorder()
	state, ok := s.PopState(out, roundTrip(rec))
	require.True(t, ok)
	assert.Equal(t, "st-1", state)
	assert.Less(t, out.Result().Cookies()[0].MaxAge, 0)

	_, ok = s.PopState(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	assert.False(t, ok)
}

func TestNewCookieStore_KeyValidation(t *testing.T) {
	_, err := NewCookieStore(nil, nil, time.Hour, false)
	assert.Error(t, err)
	_, err = NewCookieStore([]byte("k"), []byte("short"), time.Hour, false)
	assert.Error(t, err)
}

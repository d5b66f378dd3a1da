package session

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/sessions"
)

const (
	CookieName      = "talentdesk_session"
	stateCookieName = "talentdesk_oauth_state"

	claimsKey = "claims"
	stateKey  = "state"

	stateMaxAge = 10 * time.Minute
)

// CookieStore keeps Claims in an HMAC-signed, optionally encrypted cookie.
type CookieStore struct {
	store *sessions.CookieStore
}

// NewCookieStore signs cookies with hashKey. A non-empty blockKey (16, 24 or
// 32 bytes, AES) also encrypts them.
func NewCookieStore(hashKey, blockKey []byte, maxAge time.Duration, secure bool) (*CookieStore, error) {
	if len(hashKey) == 0 {
		return nil, fmt.Errorf("session: empty signing key")
	}
	keys := [][]byte{hashKey}
	if len(blockKey) > 0 {
		switch len(blockKey) {
		case 16, 24, 32:
		default:
			return nil, fmt.Errorf("session: encryption key must be 16, 24 or 32 bytes, got %d", len(blockKey))
		}
		keys = append(keys, blockKey)
	}

	s := sessions.NewCookieStore(keys...)
	s.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   int(maxAge.Seconds()),
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
	s.MaxAge(s.Options.MaxAge)
	return &CookieStore{store: s}, nil
}

// Load returns the claims in the request cookie. A missing, tampered or
// undecodable cookie reports false.
func (s *CookieStore) Load(r *http.Request) (Claims, bool) {
	sess, err := s.store.Get(r, CookieName)
	if err != nil {
		return Claims{}, false
	}
	raw, ok := sess.Values[claimsKey].(string)
	if !ok {
		return Claims{}, false
	}
	var c Claims
	if err := json.Unmarshal([]byte(raw), &c); err != nil {
		return Claims{}, false
	}
	return c, c.SubjectID != ""
}

// Save re-signs the cookie with c.
func (s *CookieStore) Save(w http.ResponseWriter, r *http.Request, c Claims) error {
	b, err := json.Marshal(c)
	if err != nil {
		return err
	}
	// A stale or foreign cookie makes Get fail but still yields a usable
	// new session.
	sess, _ := s.store.Get(r, CookieName)
	sess.Values[claimsKey] = string(b)
	return sess.Save(r, w)
}

// Clear expires the session cookie.
func (s *CookieStore) Clear(w http.ResponseWriter, r *http.Request) error {
	sess, _ := s.store.Get(r, CookieName)
	sess.Values = map[interface{}]interface{}{}
	sess.Options.MaxAge = -1
	return sess.Save(r, w)
}

// SaveState keeps an OAuth state value in a short-lived signed cookie.
func (s *CookieStore) SaveState(w http.ResponseWriter, r *http.Request, state string) error {
	sess, _ := s.store.Get(r, stateCookieName)
	opts := *s.store.Options
	opts.MaxAge = int(stateMaxAge.Seconds())
	sess.Options = &opts
	sess.Values[stateKey] = state
	return sess.Save(r, w)
}

// PopState returns the saved OAuth state and expires its cookie.
func (s *CookieStore) PopState(w http.ResponseWriter, r *http.Request) (string, bool) {
	sess, err := s.store.Get(r, stateCookieName)
	if err != nil {
		return "", false
	}
	state, ok := sess.Values[stateKey].(string)
	opts := *s.store.Options
	opts.MaxAge = -1
	sess.Options = &opts
	_ = sess.Save(r, w)
	return state, ok && state != ""
}

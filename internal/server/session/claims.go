// Package session implements the browser session lifecycle: a signed cookie
// carrying identity claims plus an embedded bearer token that is re-minted
// lazily once it expires.
//
// The lifecycle is a three-state machine:
//
//	Unauthenticated -> Fresh   IssueSession after a credentials or provider sign-in
//	Fresh -> Stale             time passes, see Claims.State
//	Stale -> Fresh             GetClaims re-reads the user and re-signs the bearer
//	Stale -> Stale             GetClaims when the user is gone (fail-soft)
//	any -> Unauthenticated     logout discards the cookie
//
// There is no server-side revocation: a bearer minted before logout stays
// valid until it expires.
package session

import (
	"time"

	"github.com/dmitrijs2005/talentdesk/internal/common"
)

// Claims are the identity claims kept in the session cookie. They are never
// stored server-side.
type Claims struct {
	SubjectID    string `json:"subjectId"`
	Email        string `json:"email"`
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
	BearerToken  string `json:"bearerToken"`
	BearerExpiry int64  `json:"bearerExpiry"`
}

type State int

const (
	StateUnauthenticated State = iota
	StateFresh
	StateStale
)

func (s State) String() string {
	switch s {
	case StateFresh:
		return "fresh"
	case StateStale:
		return "stale"
	default:
		return "unauthenticated"
	}
}

// State evaluates the claims at now. A bearer whose expiry is not strictly in
// the future is stale.
func (c *Claims) State(now time.Time) State {
	if c == nil || c.SubjectID == "" {
		return StateUnauthenticated
	}
	if now.Unix() >= c.BearerExpiry {
		return StateStale
	}
	return StateFresh
}

// AuthorizationHeader formats a bearer token for the Authorization header.
func AuthorizationHeader(token string) string {
	return common.BearerPrefix + token
}

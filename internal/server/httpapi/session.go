package httpapi

import (
	"crypto/rand"
	"crypto/subtle"
	"errors"
	"net/http"
	"strings"

	"github.com/dmitrijs2005/talentdesk/internal/common"
	"github.com/dmitrijs2005/talentdesk/internal/server/services"
	"github.com/dmitrijs2005/talentdesk/internal/server/session"
	"github.com/go-chi/chi/v5"
)

const (
	msgUnknownProvider = "Proveedor no soportado"
	msgInvalidState    = "Estado de autenticación inválido"
	msgSignInFailed    = "No se pudo iniciar sesión"
	msgLoggedOut       = "Sesión cerrada"
)

type sessionUser struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

type sessionView struct {
	User    sessionUser `json:"user"`
	Token   string      `json:"token,omitempty"`
	Expires int64       `json:"expires"`
}

func viewOf(c session.Claims, withToken bool) sessionView {
	v := sessionView{
		User: sessionUser{
			ID:        c.SubjectID,
			Email:     c.Email,
			FirstName: c.FirstName,
			LastName:  c.LastName,
		},
		Expires: c.BearerExpiry,
	}
	if withToken {
		v.Token = c.BearerToken
	}
	return v
}

// currentSession returns the claims in the cookie, refreshing the bearer and
// re-saving the cookie when it is stale.
func (h *handlers) currentSession(w http.ResponseWriter, r *http.Request) {
	c, ok := h.Cookies.Load(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, msgUnauthorized)
		return
	}

	c, refreshed := h.Sessions.GetClaims(r.Context(), c)
	if refreshed {
		if err := h.Cookies.Save(w, r, c); err != nil {
			h.logger.Error(r.Context(), "session save failed", "error", err)
			writeError(w, http.StatusInternalServerError, msgInternalError)
			return
		}
	}
	writeJSON(w, http.StatusOK, viewOf(c, true))
}

func (h *handlers) register(w http.ResponseWriter, r *http.Request) {
	var in services.CreateUserInput
	if err := readJSON(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, msgInvalidBody)
		return
	}
	u, err := h.Users.Create(r.Context(), in)
	if err != nil {
		h.fail(w, r, err, msgUserNotFound, "Error al registrar usuario")
		return
	}
	writeJSON(w, http.StatusCreated, u)
}

func (h *handlers) sessionLogin(w http.ResponseWriter, r *http.Request) {
	var in credentials
	if err := readJSON(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, msgInvalidBody)
		return
	}
	if strings.TrimSpace(in.Email) == "" || in.Password == "" {
		writeError(w, http.StatusBadRequest, msgCredentialsRequired)
		return
	}

	c, err := h.Sessions.SignInWithCredentials(r.Context(), in.Email, in.Password)
	if err != nil {
		if errors.Is(err, common.ErrInvalidCredentials) || errors.Is(err, common.ErrInvalidPassword) {
			writeError(w, http.StatusUnauthorized, msgWrongPassword)
			return
		}
		h.logger.Error(r.Context(), "session login failed", "error", err)
		writeError(w, http.StatusInternalServerError, msgInternalError)
		return
	}

	if err := h.Cookies.Save(w, r, c); err != nil {
		h.logger.Error(r.Context(), "session save failed", "error", err)
		writeError(w, http.StatusInternalServerError, msgInternalError)
		return
	}
	writeJSON(w, http.StatusOK, viewOf(c, false))
}

func (h *handlers) logout(w http.ResponseWriter, r *http.Request) {
	if err := h.Cookies.Clear(w, r); err != nil {
		h.logger.Error(r.Context(), "session clear failed", "error", err)
		writeError(w, http.StatusInternalServerError, msgInternalError)
		return
	}
	writeMessage(w, msgLoggedOut)
}

func (h *handlers) oauthStart(w http.ResponseWriter, r *http.Request) {
	p, ok := h.Providers.Get(chi.URLParam(r, "provider"))
	if !ok {
		writeError(w, http.StatusNotFound, msgUnknownProvider)
		return
	}

	state := rand.Text()
	if err := h.Cookies.SaveState(w, r, state); err != nil {
		h.logger.Error(r.Context(), "oauth state save failed", "error", err)
		writeError(w, http.StatusInternalServerError, msgInternalError)
		return
	}
	http.Redirect(w, r, p.AuthCodeURL(state), http.StatusFound)
}

func (h *handlers) oauthCallback(w http.ResponseWriter, r *http.Request) {
	p, ok := h.Providers.Get(chi.URLParam(r, "provider"))
	if !ok {
		writeError(w, http.StatusNotFound, msgUnknownProvider)
		return
	}

	q := r.URL.Query()
	saved, ok := h.Cookies.PopState(w, r)
	if !ok || subtle.ConstantTimeCompare([]byte(saved), []byte(q.Get("state"))) != 1 {
		writeError(w, http.StatusBadRequest, msgInvalidState)
		return
	}
	if q.Get("error") != "" || q.Get("code") == "" {
		writeError(w, http.StatusUnauthorized, msgSignInFailed)
		return
	}

	id, err := p.Exchange(r.Context(), q.Get("code"))
	if err != nil {
		h.logger.Warn(r.Context(), "oauth exchange failed", "provider", p.Name(), "error", err)
		writeError(w, http.StatusUnauthorized, msgSignInFailed)
		return
	}

	c, err := h.Sessions.SignInWithProvider(r.Context(), id)
	if err != nil {
		h.logger.Warn(r.Context(), "provider sign-in refused", "provider", p.Name(), "error", err)
		writeError(w, http.StatusUnauthorized, msgSignInFailed)
		return
	}

	if err := h.Cookies.Save(w, r, c); err != nil {
		h.logger.Error(r.Context(), "session save failed", "error", err)
		writeError(w, http.StatusInternalServerError, msgInternalError)
		return
	}
	http.Redirect(w, r, "/", http.StatusFound)
}

package httpapi

import (
	"errors"
	"net/http"
	"strings"

	"github.com/dmitrijs2005/talentdesk/internal/common"
	"github.com/dmitrijs2005/talentdesk/internal/server/services"
	"github.com/go-chi/chi/v5"
)

const (
	msgCredentialsRequired = "Email y password son requeridos"
	msgInvalidCredentials  = "Credenciales inválidas"
	msgWrongPassword       = "Email o contraseña incorrectos"
	msgUserNotFound        = "Usuario no encontrado"
)

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// login is the authentication gate exposed at POST /api/auth.
func (h *handlers) login(w http.ResponseWriter, r *http.Request) {
	var in credentials
	if err := readJSON(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, msgInvalidBody)
		return
	}
	if strings.TrimSpace(in.Email) == "" || in.Password == "" {
		writeError(w, http.StatusBadRequest, msgCredentialsRequired)
		return
	}

	u, err := h.Users.Login(r.Context(), in.Email, in.Password)
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, u)
	case errors.Is(err, common.ErrInvalidCredentials):
		writeError(w, http.StatusUnauthorized, msgInvalidCredentials)
	case errors.Is(err, common.ErrInvalidPassword):
		writeError(w, http.StatusUnauthorized, msgWrongPassword)
	default:
		h.logger.Error(r.Context(), "login failed", "error", err)
		writeError(w, http.StatusInternalServerError, msgInternalError)
	}
}

// listUsers returns every user, or with ?email= the single match or null.
func (h *handlers) listUsers(w http.ResponseWriter, r *http.Request) {
	if email := r.URL.Query().Get("email"); email != "" {
		u, err := h.Users.GetByEmail(r.Context(), email)
		if errors.Is(err, common.ErrorNotFound) {
			writeJSON(w, http.StatusOK, nil)
			return
		}
		if err != nil {
			h.fail(w, r, err, msgUserNotFound, "Error al obtener usuario")
			return
		}
		writeJSON(w, http.StatusOK, u)
		return
	}

	list, err := h.Users.List(r.Context())
	if err != nil {
		h.fail(w, r, err, msgUserNotFound, "Error al obtener usuarios")
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (h *handlers) createUser(w http.ResponseWriter, r *http.Request) {
	var in services.CreateUserInput
	if err := readJSON(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, msgInvalidBody)
		return
	}
	u, err := h.Users.Create(r.Context(), in)
	if err != nil {
		h.fail(w, r, err, msgUserNotFound, "Error al crear usuario")
		return
	}
	writeJSON(w, http.StatusCreated, u)
}

func (h *handlers) getUser(w http.ResponseWriter, r *http.Request) {
	u, err := h.Users.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.fail(w, r, err, msgUserNotFound, "Error al obtener usuario")
		return
	}
	writeJSON(w, http.StatusOK, u)
}

func (h *handlers) updateUser(w http.ResponseWriter, r *http.Request) {
	var in services.UpdateUserInput
	if err := readJSON(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, msgInvalidBody)
		return
	}
	u, err := h.Users.Update(r.Context(), chi.URLParam(r, "id"), in)
	if err != nil {
		h.fail(w, r, err, msgUserNotFound, "Error al actualizar usuario")
		return
	}
	writeJSON(w, http.StatusOK, u)
}

func (h *handlers) deleteUser(w http.ResponseWriter, r *http.Request) {
	if err := h.Users.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.fail(w, r, err, msgUserNotFound, "Error al eliminar usuario")
		return
	}
	writeMessage(w, "Usuario eliminado")
}

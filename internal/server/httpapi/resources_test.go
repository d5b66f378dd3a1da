package httpapi

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/dmitrijs2005/talentdesk/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogin(t *testing.T) {
	e := newEnv(t)

	rec := e.do(http.MethodPost, "/api/users", `{"email":"ana@example.com","password":"s3cret","firstName":"Ana"}`, anyBearer)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.NotContains(t, rec.Body.String(), "password")

	rec = e.do(http.MethodPost, "/api/auth", `{"email":"ana@example.com"}`, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, msgCredentialsRequired, errorOf(t, rec))

	rec = e.do(http.MethodPost, "/api/auth", `{not json`, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, msgInvalidBody, errorOf(t, rec))

	rec = e.do(http.MethodPost, "/api/auth", `{"email":"ana@example.com","password":"bad"}`, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, msgWrongPassword, errorOf(t, rec))

	rec = e.do(http.MethodPost, "/api/auth", `{"email":"ana@example.com","password":"s3cret"}`, "")
	require.Equal(t, http.StatusOK, rec.Code)
	u := decode[models.User](t, rec)
	assert.Equal(t, "Ana", u.FirstName)
	assert.NotContains(t, rec.Body.String(), "$2a$")
}

func TestUsers(t *testing.T) {
	e := newEnv(t)

	rec := e.do(http.MethodPost, "/api/users", `{"email":"ana@example.com"}`, anyBearer)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Campos obligatorios faltantes", errorOf(t, rec))

	rec = e.do(http.MethodPost, "/api/users", `{"email":"ana@example.com","password":"x"}`, anyBearer)
	require.Equal(t, http.StatusCreated, rec.Code)
	id := decode[models.User](t, rec).ID

	rec = e.do(http.MethodPost, "/api/users", `{"email":"ana@example.com","password":"y"}`, anyBearer)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, msgEmailTaken, errorOf(t, rec))

	rec = e.do(http.MethodGet, "/api/users?email=ana@example.com", "", anyBearer)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, id, decode[models.User](t, rec).ID)

	rec = e.do(http.MethodGet, "/api/users?email=nobody@example.com", "", anyBearer)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "null", string(rec.Body.Bytes()[:4]))

	rec = e.do(http.MethodPut, "/api/users/"+id, `{"lastName":"Martínez"}`, anyBearer)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Martínez", decode[models.User](t, rec).LastName)

	rec = e.do(http.MethodGet, "/api/users", "", anyBearer)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]models.User](t, rec), 1)

	rec = e.do(http.MethodDelete, "/api/users/"+id, "", anyBearer)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Usuario eliminado", decode[messageBody](t, rec).Message)
}

func TestUsers_DeleteUnknownIs404(t *testing.T) {
	e := newEnv(t)

	for _, id := range []string{"0b6f1c2e-5f0a-4a55-9d8e-111111111111", "not-a-uuid"} {
		rec := e.do(http.MethodDelete, "/api/users/"+id, "", anyBearer)
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, msgUserNotFound, errorOf(t, rec))
	}

	rec := e.do(http.MethodGet, "/api/users/0b6f1c2e-5f0a-4a55-9d8e-111111111111", "", anyBearer)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestReferentes_CreateThenList(t *testing.T) {
	e := newEnv(t)

	rec := e.do(http.MethodPost, "/api/technical-reference", `{"nombre_y_apellido":"Juan Pérez"}`, anyBearer)
	require.Equal(t, http.StatusCreated, rec.Code)
	created := decode[map[string]any](t, rec)
	id, ok := created["id"].(float64)
	require.True(t, ok, "id is a JSON number")
	assert.Equal(t, float64(int64(id)), id)
	assert.Equal(t, "Juan Pérez", created["nombre_y_apellido"])

	rec = e.do(http.MethodGet, "/api/technical-reference", "", anyBearer)
	require.Equal(t, http.StatusOK, rec.Code)
	list := decode[[]models.Referente](t, rec)
	require.Len(t, list, 1)
	assert.Equal(t, int64(id), list[0].ID)
	assert.Equal(t, "Juan Pérez", list[0].NombreYApellido)

	rec = e.do(http.MethodPost, "/api/technical-reference", `{"nombre_y_apellido":""}`, anyBearer)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "El nombre es obligatorio", errorOf(t, rec))

	path := fmt.Sprintf("/api/technical-reference/%d", int64(id))
	rec = e.do(http.MethodPut, path, `{"nombre_y_apellido":"Juan P. Pérez"}`, anyBearer)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = e.do(http.MethodDelete, path, "", anyBearer)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Referente eliminado correctamente", decode[messageBody](t, rec).Message)

	rec = e.do(http.MethodGet, path, "", anyBearer)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, msgReferenteNotFound, errorOf(t, rec))
}

func TestTalents_MissingLeader(t *testing.T) {
	e := newEnv(t)

	rec := e.do(http.MethodPost, "/api/talents",
		`{"nombre_y_apellido":"Ana Martínez","seniority":"JUNIOR","rol":"Frontend Developer","estado":"ACTIVO","referenteLiderId":7}`, anyBearer)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "El referente líder con id 7 no existe", errorOf(t, rec))
	assert.Zero(t, e.repos.Calls("talents.Create"))
}

func TestTalents_CRUD(t *testing.T) {
	e := newEnv(t)

	rec := e.do(http.MethodPost, "/api/technical-reference", `{"nombre_y_apellido":"Juan Pérez"}`, anyBearer)
	require.Equal(t, http.StatusCreated, rec.Code)
	lider := decode[models.Referente](t, rec).ID

	rec = e.do(http.MethodPost, "/api/talents", `{"nombre_y_apellido":"Ana"}`, anyBearer)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Campos obligatorios faltantes", errorOf(t, rec))

	body := fmt.Sprintf(`{"nombre_y_apellido":"Ana Martínez","seniority":"JUNIOR","rol":"Frontend Developer","estado":"ACTIVO","referenteLiderId":%d}`, lider)
	rec = e.do(http.MethodPost, "/api/talents", body, anyBearer)
	require.Equal(t, http.StatusCreated, rec.Code)
	id := decode[models.Talent](t, rec).ID

	rec = e.do(http.MethodGet, fmt.Sprintf("/api/talents/%d", id), "", anyBearer)
	require.Equal(t, http.StatusOK, rec.Code)
	got := decode[models.Talent](t, rec)
	require.NotNil(t, got.ReferenteLider)
	assert.Equal(t, "Juan Pérez", got.ReferenteLider.NombreYApellido)

	rec = e.do(http.MethodPut, fmt.Sprintf("/api/talents/%d", id), `{"referenteMentorId":99}`, anyBearer)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "El referente mentor con id 99 no existe", errorOf(t, rec))

	rec = e.do(http.MethodPut, fmt.Sprintf("/api/talents/%d", id), `{"estado":"INACTIVO"}`, anyBearer)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, models.TalentInactive, decode[models.Talent](t, rec).Estado)

	rec = e.do(http.MethodGet, "/api/talents?page=1&limit=10&sort=asc", "", anyBearer)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]models.Talent](t, rec), 1)

	for _, q := range []string{
		"?page=3&limit=9223372036854775807",
		"?page=9223372036854775807&limit=100",
		"?page=-1&limit=abc",
	} {
		rec = e.do(http.MethodGet, "/api/talents"+q, "", anyBearer)
		require.Equal(t, http.StatusOK, rec.Code, q)
		assert.NotNil(t, decode[[]models.Talent](t, rec), q)
	}

	rec = e.do(http.MethodGet, "/api/talents/abc", "", anyBearer)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, msgInvalidID, errorOf(t, rec))

	rec = e.do(http.MethodPut, fmt.Sprintf("/api/talents/%d", id), `[`, anyBearer)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, msgInvalidBody, errorOf(t, rec))

	rec = e.do(http.MethodDelete, fmt.Sprintf("/api/talents/%d", id), "", anyBearer)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Talento eliminado", decode[messageBody](t, rec).Message)

	rec = e.do(http.MethodDelete, fmt.Sprintf("/api/talents/%d", id), "", anyBearer)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, msgTalentNotFound, errorOf(t, rec))
}

func TestInteractions(t *testing.T) {
	e := newEnv(t)

	rec := e.do(http.MethodPost, "/api/interactions",
		`{"talentoId":5,"tipo_de_interaccion":"Reunión","fecha":"2025-01-10","detalle":"Reunión inicial"}`, anyBearer)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "El talento con id 5 no existe", errorOf(t, rec))
	assert.Zero(t, e.repos.Calls("interactions.Create"))

	rec = e.do(http.MethodPost, "/api/interactions",
		`{"talentoId":"123","tipo_de_interaccion":"Reunión","fecha":"2025-01-10","detalle":"Reunión inicial"}`, anyBearer)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "El talento con id 123 no existe", errorOf(t, rec))

	rec = e.do(http.MethodPost, "/api/interactions",
		`{"talentoId":"abc","tipo_de_interaccion":"Reunión","fecha":"2025-01-10","detalle":"x"}`, anyBearer)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, msgInvalidBody, errorOf(t, rec))

	rec = e.do(http.MethodPost, "/api/interactions",
		`{"tipo_de_interaccion":"Reunión","fecha":"2025-01-10","detalle":"Reunión inicial"}`, anyBearer)
	require.Equal(t, http.StatusCreated, rec.Code)
	created := decode[models.Interaction](t, rec)
	assert.Nil(t, created.TalentoID)
	assert.Equal(t, models.InteractionStarted, created.Estado)

	path := fmt.Sprintf("/api/interactions/%d", created.ID)
	rec = e.do(http.MethodPut, path, `{"estado":"EN_PROGRESO"}`, anyBearer)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, models.InteractionInProgress, decode[models.Interaction](t, rec).Estado)

	rec = e.do(http.MethodPost, "/api/interactions", `{"tipo_de_interaccion":"Reunión","fecha":"mañana","detalle":"x"}`, anyBearer)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Fecha inválida", errorOf(t, rec))

	rec = e.do(http.MethodGet, "/api/interactions", "", anyBearer)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]models.Interaction](t, rec), 1)

	rec = e.do(http.MethodDelete, path, "", anyBearer)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Interacción eliminada", decode[messageBody](t, rec).Message)

	rec = e.do(http.MethodGet, path, "", anyBearer)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, msgInteractionNotFound, errorOf(t, rec))
}

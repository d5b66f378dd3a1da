package httpapi

import (
	"net/http"
	"strconv"

	"github.com/dmitrijs2005/talentdesk/internal/server/services"
)

const msgTalentNotFound = "Talento no encontrado"

func (h *handlers) listTalents(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page, _ := strconv.Atoi(q.Get("page"))
	limit, _ := strconv.Atoi(q.Get("limit"))

	list, err := h.Talents.List(r.Context(), services.ListTalentsParams{
		Page:  page,
		Limit: limit,
		Sort:  q.Get("sort"),
	})
	if err != nil {
		h.fail(w, r, err, msgTalentNotFound, "Error al obtener talentos")
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (h *handlers) createTalent(w http.ResponseWriter, r *http.Request) {
	var in services.TalentInput
	if err := readJSON(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, msgInvalidBody)
		return
	}
	t, err := h.Talents.Create(r.Context(), in)
	if err != nil {
		h.fail(w, r, err, msgTalentNotFound, "Error al crear talento")
		return
	}
	writeJSON(w, http.StatusCreated, t)
}

func (h *handlers) getTalent(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, msgInvalidID)
		return
	}
	t, err := h.Talents.Get(r.Context(), id)
	if err != nil {
		h.fail(w, r, err, msgTalentNotFound, "Error al obtener talento")
		return
	}
	writeJSON(w, http.StatusOK, t)
}

func (h *handlers) updateTalent(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, msgInvalidID)
		return
	}
	var in services.TalentPatch
	if err := readJSON(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, msgInvalidBody)
		return
	}
	t, err := h.Talents.Update(r.Context(), id, in)
	if err != nil {
		h.fail(w, r, err, msgTalentNotFound, "Error al actualizar talento")
		return
	}
	writeJSON(w, http.StatusOK, t)
}

func (h *handlers) deleteTalent(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, msgInvalidID)
		return
	}
	if err := h.Talents.Delete(r.Context(), id); err != nil {
		h.fail(w, r, err, msgTalentNotFound, "Error al eliminar talento")
		return
	}
	writeMessage(w, "Talento eliminado")
}

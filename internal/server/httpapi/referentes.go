package httpapi

import (
	"net/http"

	"github.com/dmitrijs2005/talentdesk/internal/server/services"
)

const msgReferenteNotFound = "Referente no encontrado"

func (h *handlers) listReferentes(w http.ResponseWriter, r *http.Request) {
	list, err := h.Referentes.List(r.Context())
	if err != nil {
		h.fail(w, r, err, msgReferenteNotFound, "Error al obtener referentes")
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (h *handlers) createReferente(w http.ResponseWriter, r *http.Request) {
	var in services.ReferenteInput
	if err := readJSON(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, msgInvalidBody)
		return
	}
	ref, err := h.Referentes.Create(r.Context(), in)
	if err != nil {
		h.fail(w, r, err, msgReferenteNotFound, "Error al crear referente")
		return
	}
	writeJSON(w, http.StatusCreated, ref)
}

func (h *handlers) getReferente(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, msgInvalidID)
		return
	}
	ref, err := h.Referentes.Get(r.Context(), id)
	if err != nil {
		h.fail(w, r, err, msgReferenteNotFound, "Error al obtener referente")
		return
	}
	writeJSON(w, http.StatusOK, ref)
}

func (h *handlers) updateReferente(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, msgInvalidID)
		return
	}
	var in services.ReferentePatch
	if err := readJSON(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, msgInvalidBody)
		return
	}
	ref, err := h.Referentes.Update(r.Context(), id, in)
	if err != nil {
		h.fail(w, r, err, msgReferenteNotFound, "Error al actualizar referente")
		return
	}
	writeJSON(w, http.StatusOK, ref)
}

func (h *handlers) deleteReferente(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, msgInvalidID)
		return
	}
	if err := h.Referentes.Delete(r.Context(), id); err != nil {
		h.fail(w, r, err, msgReferenteNotFound, "Error al eliminar referente")
		return
	}
	writeMessage(w, "Referente eliminado correctamente")
}

package httpapi

import (
	"net/http"

	"github.com/dmitrijs2005/talentdesk/internal/server/services"
)

const msgInteractionNotFound = "Interacción no encontrada"

func (h *handlers) listInteractions(w http.ResponseWriter, r *http.Request) {
	list, err := h.Interactions.List(r.Context())
	if err != nil {
		h.fail(w, r, err, msgInteractionNotFound, "Error al obtener interacciones")
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (h *handlers) createInteraction(w http.ResponseWriter, r *http.Request) {
	var in services.InteractionInput
	if err := readJSON(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, msgInvalidBody)
		return
	}
	it, err := h.Interactions.Create(r.Context(), in)
	if err != nil {
		h.fail(w, r, err, msgInteractionNotFound, "Error al crear interacción")
		return
	}
	writeJSON(w, http.StatusCreated, it)
}

func (h *handlers) getInteraction(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, msgInvalidID)
		return
	}
	it, err := h.Interactions.Get(r.Context(), id)
	if err != nil {
		h.fail(w, r, err, msgInteractionNotFound, "Error al obtener interacción")
		return
	}
	writeJSON(w, http.StatusOK, it)
}

func (h *handlers) updateInteraction(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, msgInvalidID)
		return
	}
	var in services.InteractionPatch
	if err := readJSON(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, msgInvalidBody)
		return
	}
	it, err := h.Interactions.Update(r.Context(), id, in)
	if err != nil {
		h.fail(w, r, err, msgInteractionNotFound, "Error al actualizar interacción")
		return
	}
	writeJSON(w, http.StatusOK, it)
}

func (h *handlers) deleteInteraction(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, msgInvalidID)
		return
	}
	if err := h.Interactions.Delete(r.Context(), id); err != nil {
		h.fail(w, r, err, msgInteractionNotFound, "Error al eliminar interacción")
		return
	}
	writeMessage(w, "Interacción eliminada")
}

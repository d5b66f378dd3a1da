package httpapi

import (
	"errors"
	"net/http"

	"github.com/dmitrijs2005/talentdesk/internal/common"
	"github.com/dmitrijs2005/talentdesk/internal/server/services"
)

// fail maps a service error to a response. Only the internal case is
// logged; its text never reaches the client.
func (h *handlers) fail(w http.ResponseWriter, r *http.Request, err error, notFound, internal string) {
	var (
		ve   *services.ValidationError
		miss *services.MissingReferenceError
	)
	switch {
	case errors.As(err, &ve):
		writeError(w, http.StatusBadRequest, ve.Message)
	case errors.As(err, &miss):
		writeError(w, http.StatusNotFound, miss.Error())
	case errors.Is(err, common.ErrorNotFound):
		writeError(w, http.StatusNotFound, notFound)
	case errors.Is(err, common.ErrEmailTaken):
		writeError(w, http.StatusConflict, msgEmailTaken)
	default:
		h.logger.Error(r.Context(), internal, "method", r.Method, "path", r.URL.Path, "error", err)
		writeError(w, http.StatusInternalServerError, internal)
	}
}

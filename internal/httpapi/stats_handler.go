package httpapi

import (
	"net/http"

	"vitrine-be/internal/utils"
)

func (h *Handlers) dashboard(w http.ResponseWriter, r *http.Request) {
	companyID, ok := h.ownCompanyID(w, r)
	if !ok {
		return
	}

	dashboard, err := h.stats.Dashboard(r.Context(), companyID)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, dashboard)
}

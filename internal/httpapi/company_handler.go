package httpapi

import (
	"encoding/json"
	"net/http"
	"strconv"

	"vitrine-be/internal/company"
	"vitrine-be/internal/utils"

	"github.com/go-chi/chi/v5"
)

func (h *Handlers) createCompany(w http.ResponseWriter, r *http.Request) {
	userID, _ := utils.GetUserIDFromContext(r.Context())

	var input company.CreateInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.WriteJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	c, err := h.companies.Create(r.Context(), userID, input)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusCreated, c)
}

func (h *Handlers) myCompany(w http.ResponseWriter, r *http.Request) {
	userID, _ := utils.GetUserIDFromContext(r.Context())

	c, err := h.companies.GetForOwner(r.Context(), userID)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, c)
}

func (h *Handlers) listCompanies(w http.ResponseWriter, r *http.Request) {
	if !utils.IsAdmin(r.Context()) {
		utils.WriteJSONError(w, "forbidden", http.StatusForbidden)
		return
	}

	limit, offset := paginationParams(r)
	companies, err := h.companies.List(r.Context(), limit, offset)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, companies)
}

func (h *Handlers) updateCompany(w http.ResponseWriter, r *http.Request) {
	userID, _ := utils.GetUserIDFromContext(r.Context())

	companyID, err := utils.ToUint(chi.URLParam(r, "id"))
	if err != nil {
		utils.WriteJSONError(w, "invalid company id", http.StatusBadRequest)
		return
	}

	var input company.UpdateInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.WriteJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	c, err := h.companies.Update(r.Context(), userID, companyID, input)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, c)
}

func (h *Handlers) bindDomain(w http.ResponseWriter, r *http.Request) {
	userID, _ := utils.GetUserIDFromContext(r.Context())

	var input struct {
		Domain string `json:"domain"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.WriteJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	check, err := h.companies.BindDomain(r.Context(), userID, input.Domain)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, check)
}

// storefront is the public company lookup used by customer-facing sites,
// resolved by slug or by bound custom domain.
func (h *Handlers) storefront(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	c, err := h.companies.GetBySlug(r.Context(), slug)
	if err != nil {
		c, err = h.companies.GetByDomain(r.Context(), slug)
	}
	if err != nil {
		writeDomainError(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, c)
}

func paginationParams(r *http.Request) (limit, offset int32) {
	limit = 20
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 32); err == nil {
			limit = int32(n)
		}
	}
	if v := r.URL.Query().Get("offset"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 32); err == nil {
			offset = int32(n)
		}
	}
	return limit, offset
}

package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"vitrine-be/internal/catalog"
	"vitrine-be/internal/company"
	"vitrine-be/internal/utils"

	"github.com/go-chi/chi/v5"
)

// ownCompanyID resolves the caller's company or writes an error response.
func (h *Handlers) ownCompanyID(w http.ResponseWriter, r *http.Request) (uint, bool) {
	userID, _ := utils.GetUserIDFromContext(r.Context())

	c, err := h.companies.GetForOwner(r.Context(), userID)
	if err != nil {
		if errors.Is(err, company.ErrCompanyNotFound) {
			utils.WriteJSONError(w, "no company registered for this user", http.StatusNotFound)
			return 0, false
		}
		writeDomainError(w, err)
		return 0, false
	}
	return c.ID, true
}

func (h *Handlers) createProduct(w http.ResponseWriter, r *http.Request) {
	companyID, ok := h.ownCompanyID(w, r)
	if !ok {
		return
	}

	var input catalog.CreateInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.WriteJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	p, err := h.products.Create(r.Context(), companyID, input)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusCreated, p)
}

func (h *Handlers) listProducts(w http.ResponseWriter, r *http.Request) {
	companyID, ok := h.ownCompanyID(w, r)
	if !ok {
		return
	}

	limit, offset := paginationParams(r)
	products, err := h.products.List(r.Context(), companyID, false, limit, offset)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, products)
}

func (h *Handlers) getProduct(w http.ResponseWriter, r *http.Request) {
	companyID, ok := h.ownCompanyID(w, r)
	if !ok {
		return
	}

	productID, err := utils.ToUint(chi.URLParam(r, "id"))
	if err != nil {
		utils.WriteJSONError(w, "invalid product id", http.StatusBadRequest)
		return
	}

	p, err := h.products.Get(r.Context(), companyID, productID)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, p)
}

func (h *Handlers) updateProduct(w http.ResponseWriter, r *http.Request) {
	companyID, ok := h.ownCompanyID(w, r)
	if !ok {
		return
	}

	productID, err := utils.ToUint(chi.URLParam(r, "id"))
	if err != nil {
		utils.WriteJSONError(w, "invalid product id", http.StatusBadRequest)
		return
	}

	var input catalog.UpdateInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.WriteJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	p, err := h.products.Update(r.Context(), companyID, productID, input)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, p)
}

// storefrontProducts lists a company's active products for the public
// storefront, resolved by slug.
func (h *Handlers) storefrontProducts(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	c, err := h.companies.GetBySlug(r.Context(), slug)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	limit, offset := paginationParams(r)
	products, err := h.products.List(r.Context(), c.ID, true, limit, offset)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, products)
}

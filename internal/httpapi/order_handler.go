package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"vitrine-be/internal/company"
	"vitrine-be/internal/order"
	"vitrine-be/internal/utils"

	"github.com/go-chi/chi/v5"
)

type placeOrderRequest struct {
	CompanyID uint                    `json:"company_id"`
	Items     []order.LineItemRequest `json:"items"`
}

// actorFrom builds the order-service actor for the authenticated caller,
// resolving the company they own (if any).
func (h *Handlers) actorFrom(r *http.Request) (order.Actor, error) {
	ctx := r.Context()
	userID, _ := utils.GetUserIDFromContext(ctx)

	actor := order.Actor{
		UserID:  userID,
		IsAdmin: utils.IsAdmin(ctx),
	}

	c, err := h.companies.GetForOwner(ctx, userID)
	if err != nil {
		if errors.Is(err, company.ErrCompanyNotFound) {
			return actor, nil
		}
		return actor, err
	}
	actor.CompanyID = c.ID

	return actor, nil
}

func (h *Handlers) placeOrder(w http.ResponseWriter, r *http.Request) {
	actor, err := h.actorFrom(r)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	var req placeOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if req.CompanyID == 0 {
		utils.WriteJSONError(w, "company_id is required", http.StatusBadRequest)
		return
	}

	o, err := h.orders.PlaceOrder(r.Context(), actor, req.CompanyID, req.Items)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusCreated, o)
}

func (h *Handlers) listOrders(w http.ResponseWriter, r *http.Request) {
	actor, err := h.actorFrom(r)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	limit, offset := paginationParams(r)
	orders, err := h.orders.List(r.Context(), actor, limit, offset)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, orders)
}

func (h *Handlers) getOrder(w http.ResponseWriter, r *http.Request) {
	actor, err := h.actorFrom(r)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	orderID, err := utils.ToUint(chi.URLParam(r, "id"))
	if err != nil {
		utils.WriteJSONError(w, "invalid order id", http.StatusBadRequest)
		return
	}

	o, err := h.orders.Get(r.Context(), actor, orderID)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, o)
}

func (h *Handlers) updateOrderStatus(w http.ResponseWriter, r *http.Request) {
	actor, err := h.actorFrom(r)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	orderID, err := utils.ToUint(chi.URLParam(r, "id"))
	if err != nil {
		utils.WriteJSONError(w, "invalid order id", http.StatusBadRequest)
		return
	}

	var body struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		utils.WriteJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	newStatus, ok := order.ParseStatus(body.Status)
	if !ok {
		utils.WriteJSONError(w, "unknown status: "+body.Status, http.StatusBadRequest)
		return
	}

	o, err := h.orders.Transition(r.Context(), actor, orderID, newStatus)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, o)
}

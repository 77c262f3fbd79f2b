package httpapi

import (
	"errors"
	"net/http"

	"vitrine-be/internal/catalog"
	"vitrine-be/internal/company"
	"vitrine-be/internal/order"
	"vitrine-be/internal/user"

	"vitrine-be/internal/utils"
)

// writeDomainError maps domain errors onto HTTP responses. Anything not
// recognized is treated as an internal error without leaking details.
func writeDomainError(w http.ResponseWriter, err error) {
	var (
		notFoundErr   *order.ProductNotFoundError
		stockErr      *order.InsufficientStockError
		transitionErr *order.IllegalTransitionError
	)

	switch {
	case errors.As(err, &notFoundErr):
		utils.WriteJSONError(w, notFoundErr.Error(), http.StatusNotFound)
	case errors.As(err, &stockErr):
		utils.WriteJSONError(w, stockErr.Error(), http.StatusConflict)
	case errors.As(err, &transitionErr):
		utils.WriteJSONError(w, transitionErr.Error(), http.StatusUnprocessableEntity)

	case errors.Is(err, order.ErrEmptyOrder),
		errors.Is(err, order.ErrInvalidQuantity):
		utils.WriteJSONError(w, err.Error(), http.StatusBadRequest)

	case errors.Is(err, order.ErrReservationConflict),
		errors.Is(err, order.ErrTransitionConflict):
		utils.WriteJSONError(w, err.Error(), http.StatusConflict)

	case errors.Is(err, order.ErrOrderNotFound),
		errors.Is(err, catalog.ErrProductNotFound),
		errors.Is(err, company.ErrCompanyNotFound),
		errors.Is(err, user.ErrUserNotFound):
		utils.WriteJSONError(w, err.Error(), http.StatusNotFound)

	case errors.Is(err, order.ErrForbidden),
		errors.Is(err, company.ErrForbidden):
		utils.WriteJSONError(w, err.Error(), http.StatusForbidden)

	case errors.Is(err, user.ErrInvalidCredentials):
		utils.WriteJSONError(w, err.Error(), http.StatusUnauthorized)

	case errors.Is(err, user.ErrEmailExists),
		errors.Is(err, company.ErrAlreadyOwner),
		errors.Is(err, company.ErrInvalidDomain),
		errors.Is(err, company.ErrDomainTaken),
		errors.Is(err, company.ErrSlugTaken):
		utils.WriteJSONError(w, err.Error(), http.StatusBadRequest)

	default:
		utils.WriteJSONError(w, "internal server error", http.StatusInternalServerError)
	}
}

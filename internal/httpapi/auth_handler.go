package httpapi

import (
	"encoding/json"
	"net/http"

	"vitrine-be/internal/user"
	"vitrine-be/internal/utils"
)

type userResponse struct {
	ID       uint   `json:"id"`
	Email    string `json:"email"`
	FullName string `json:"full_name"`
	Phone    string `json:"phone"`
	Role     string `json:"role"`
}

func toUserResponse(u *user.User) userResponse {
	return userResponse{
		ID:       u.ID,
		Email:    u.Email,
		FullName: u.FullName,
		Phone:    u.Phone,
		Role:     u.Role,
	}
}

func (h *Handlers) register(w http.ResponseWriter, r *http.Request) {
	var input user.RegisterInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.WriteJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	u, err := h.users.Register(r.Context(), input)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusCreated, toUserResponse(u))
}

func (h *Handlers) login(w http.ResponseWriter, r *http.Request) {
	var input user.LoginInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.WriteJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	token, u, err := h.users.Login(r.Context(), input)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     "access_token",
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	utils.WriteJSON(w, http.StatusOK, map[string]any{
		"access_token": token,
		"token_type":   "bearer",
		"user":         toUserResponse(u),
	})
}

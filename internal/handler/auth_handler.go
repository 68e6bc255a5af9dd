package handlers

import (
	"encoding/json"
	"net/http"

	"blogCPT/internal/middleware"
	"blogCPT/internal/service"
)

type RegisterRequest struct {
	Name      string `json:"name" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=6"`
	Password2 string `json:"password2" validate:"required"`
}

// LoginResponse - токен сессии плюс идентификация владельца
type LoginResponse struct {
	Token string `json:"token"`
	ID    string `json:"id"`
	Name  string `json:"name"`
}

func (h *Handlers) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "Неверный формат запроса", http.StatusBadRequest)
		return
	}

	if err := h.Validate.Struct(req); err != nil {
		WriteError(w, "Неверные данные", http.StatusUnprocessableEntity)
		return
	}

	// registering a user in the service
	user, err := h.AuthService.Register(r.Context(), service.RegisterRequest{
		Name:      req.Name,
		Email:     req.Email,
		Password:  req.Password,
		Password2: req.Password2,
	})
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteSuccess(w, user, http.StatusCreated)
}

func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "Неверный формат запроса", http.StatusBadRequest)
		return
	}

	if err := h.Validate.Struct(req); err != nil {
		// та же ошибка, что и при неверном пароле
		WriteAppError(w, service.ErrInvalidCredentials)
		return
	}

	user, token, err := h.AuthService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteSuccess(w, LoginResponse{
		Token: token,
		ID:    user.UserID,
		Name:  user.Name,
	}, http.StatusOK)
}

// GetCurrentUser возвращает пользователя текущей сессии
func (h *Handlers) GetCurrentUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		WriteError(w, "Требуется авторизация", http.StatusUnauthorized)
		return
	}

	user, err := h.UserService.GetUser(r.Context(), userID)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteSuccess(w, user, http.StatusOK)
}

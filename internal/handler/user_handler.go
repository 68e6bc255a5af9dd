package handlers

import (
	"encoding/json"
	"net/http"

	"blogCPT/internal/middleware"
	"blogCPT/internal/service"

	"github.com/gorilla/mux"
)

func (h *Handlers) GetUser(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["id"]

	user, err := h.UserService.GetUser(r.Context(), userID)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteSuccess(w, user, http.StatusOK)
}

func (h *Handlers) GetAuthors(w http.ResponseWriter, r *http.Request) {
	users, err := h.UserService.GetAuthors(r.Context())
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteSuccess(w, users, http.StatusOK)
}

func (h *Handlers) ChangeAvatar(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		WriteError(w, "Требуется авторизация", http.StatusUnauthorized)
		return
	}

	if err := r.ParseMultipartForm(h.Cfg.AvatarMaxSize); err != nil {
		WriteError(w, "Ошибка при обработке файла", http.StatusUnprocessableEntity)
		return
	}

	file, fileHeader, err := r.FormFile("avatar")
	if err != nil {
		WriteError(w, "Выберите изображение", http.StatusUnprocessableEntity)
		return
	}
	defer file.Close()

	user, err := h.UserService.ChangeAvatar(r.Context(), userID, fileHeader.Filename, file, fileHeader.Size)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteSuccess(w, user, http.StatusOK)
}

func (h *Handlers) EditUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		WriteError(w, "Требуется авторизация", http.StatusUnauthorized)
		return
	}

	var req struct {
		Name               string `json:"name" validate:"required"`
		Email              string `json:"email" validate:"required,email"`
		CurrentPassword    string `json:"currentPassword" validate:"required"`
		NewPassword        string `json:"newPassword" validate:"required,min=6"`
		NewConfirmPassword string `json:"newConfirmPassword" validate:"required"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "Неверный формат запроса", http.StatusBadRequest)
		return
	}

	if err := h.Validate.Struct(req); err != nil {
		WriteError(w, "Неверные данные", http.StatusUnprocessableEntity)
		return
	}

	user, err := h.UserService.EditUser(r.Context(), service.EditUserRequest{
		UserID:             userID,
		Name:               req.Name,
		Email:              req.Email,
		CurrentPassword:    req.CurrentPassword,
		NewPassword:        req.NewPassword,
		NewConfirmPassword: req.NewConfirmPassword,
	})
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteSuccess(w, user, http.StatusOK)
}

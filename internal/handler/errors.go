package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"blogCPT/internal/apperrors"
)

// ErrorResponse - стандартный ответ с ошибкой
type ErrorResponse struct {
	Error string `json:"error"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

// WriteError - универсальная функция для отправки ошибок
func WriteError(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(ErrorResponse{Error: message})
}

// WriteSuccess - функция для успешных ответов
func WriteSuccess(w http.ResponseWriter, data interface{}, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(data)
}

// WriteAppError отправляет ошибку со статусом по её категории
func WriteAppError(w http.ResponseWriter, err error) {
	statusCode := http.StatusInternalServerError

	switch apperrors.KindOf(err) {
	case apperrors.Validation, apperrors.Asset, apperrors.Conflict:
		statusCode = http.StatusUnprocessableEntity
	case apperrors.Unauthenticated:
		statusCode = http.StatusUnauthorized
	case apperrors.Forbidden:
		statusCode = http.StatusForbidden
	case apperrors.NotFound:
		statusCode = http.StatusNotFound
	}

	if statusCode == http.StatusInternalServerError {
		log.Printf("внутренняя ошибка: %v", err)
	}

	WriteError(w, apperrors.MessageOf(err), statusCode)
}

package handlers

import (
	"fmt"
	"mime/multipart"
	"net/http"

	"blogCPT/internal/middleware"
	"blogCPT/internal/service"

	"github.com/gorilla/mux"
)

// formats image
var allowedTypes = map[string]bool{
	"image/jpeg": true,
	"image/jpg":  true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

func checkImageType(fileHeader *multipart.FileHeader) error {
	contentType := fileHeader.Header.Get("Content-Type")
	if !allowedTypes[contentType] {
		return fmt.Errorf("неподдерживаемый тип файла: %s", contentType)
	}
	return nil
}

func (h *Handlers) CreatePost(w http.ResponseWriter, r *http.Request) {
	creatorID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		WriteError(w, "Требуется авторизация", http.StatusUnauthorized)
		return
	}

	if err := r.ParseMultipartForm(h.Cfg.ThumbnailMaxSize); err != nil {
		WriteError(w, "Ошибка при обработке файла", http.StatusUnprocessableEntity)
		return
	}

	file, fileHeader, err := r.FormFile("thumbnail")
	if err != nil {
		WriteError(w, "Заполните все поля и выберите миниатюру", http.StatusUnprocessableEntity)
		return
	}
	defer file.Close()

	if err := checkImageType(fileHeader); err != nil {
		WriteError(w, "Неподдерживаемый тип файла. Разрешены: JPEG, PNG, GIF, WebP", http.StatusUnprocessableEntity)
		return
	}

	post, err := h.PostService.CreatePost(r.Context(), service.CreatePostRequest{
		CreatorID:   creatorID,
		Title:       r.FormValue("title"),
		Category:    r.FormValue("category"),
		Description: r.FormValue("description"),
		FileName:    fileHeader.Filename,
		File:        file,
		FileSize:    fileHeader.Size,
	})
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteSuccess(w, post, http.StatusCreated)
}

func (h *Handlers) GetPosts(w http.ResponseWriter, r *http.Request) {
	posts, err := h.PostService.GetPosts(r.Context())
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteSuccess(w, posts, http.StatusOK)
}

func (h *Handlers) GetPost(w http.ResponseWriter, r *http.Request) {
	postID := mux.Vars(r)["id"]

	post, err := h.PostService.GetPost(r.Context(), postID)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteSuccess(w, post, http.StatusOK)
}

func (h *Handlers) GetCatPosts(w http.ResponseWriter, r *http.Request) {
	category := mux.Vars(r)["category"]

	posts, err := h.PostService.GetCatPosts(r.Context(), category)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteSuccess(w, posts, http.StatusOK)
}

func (h *Handlers) GetUserPosts(w http.ResponseWriter, r *http.Request) {
	creatorID := mux.Vars(r)["id"]

	posts, err := h.PostService.GetUserPosts(r.Context(), creatorID)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteSuccess(w, posts, http.StatusOK)
}

// UpdatePost принимает multipart форму, миниатюра необязательна
func (h *Handlers) UpdatePost(w http.ResponseWriter, r *http.Request) {
	actorID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		WriteError(w, "Требуется авторизация", http.StatusUnauthorized)
		return
	}

	postID := mux.Vars(r)["id"]

	if err := r.ParseMultipartForm(h.Cfg.ThumbnailMaxSize); err != nil {
		WriteError(w, "Ошибка при обработке файла", http.StatusUnprocessableEntity)
		return
	}

	req := service.UpdatePostRequest{
		PostID:      postID,
		ActorID:     actorID,
		Title:       r.FormValue("title"),
		Category:    r.FormValue("category"),
		Description: r.FormValue("description"),
	}

	file, fileHeader, err := r.FormFile("thumbnail")
	if err == nil {
		defer file.Close()

		if err := checkImageType(fileHeader); err != nil {
			WriteError(w, "Неподдерживаемый тип файла. Разрешены: JPEG, PNG, GIF, WebP", http.StatusUnprocessableEntity)
			return
		}

		req.FileName = fileHeader.Filename
		req.File = file
		req.FileSize = fileHeader.Size
	} else if err != http.ErrMissingFile {
		WriteError(w, "Не удалось получить файл", http.StatusUnprocessableEntity)
		return
	}

	post, err := h.PostService.UpdatePost(r.Context(), req)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteSuccess(w, post, http.StatusOK)
}

func (h *Handlers) DeletePost(w http.ResponseWriter, r *http.Request) {
	actorID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		WriteError(w, "Требуется авторизация", http.StatusUnauthorized)
		return
	}

	postID := mux.Vars(r)["id"]

	if err := h.PostService.DeletePost(r.Context(), postID, actorID); err != nil {
		WriteAppError(w, err)
		return
	}

	WriteSuccess(w, MessageResponse{
		Message: fmt.Sprintf("Пост %s успешно удален", postID),
	}, http.StatusAccepted)
}

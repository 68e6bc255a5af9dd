package test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"blogCPT/internal/apperrors"
	"blogCPT/internal/middleware"
	"blogCPT/internal/models"
	"blogCPT/internal/service"
)

func TestCreatePostHandler(t *testing.T) {
	t.Run("Успешное создание поста", func(t *testing.T) {
		mockPostService := new(MockPostService)
		handler := createTestHandler(new(MockAuthService), new(MockUserService), mockPostService)

		mockPostService.On("CreatePost", mock.Anything, mock.MatchedBy(func(req service.CreatePostRequest) bool {
			return req.CreatorID == "user-123" &&
				req.Title == "Заголовок" &&
				req.Category == "Education" &&
				req.FileName == "cover.png"
		})).Return(&models.Post{
			PostID:    "post-1",
			Title:     "Заголовок",
			Category:  "Education",
			CreatorID: "user-123",
			Thumbnail: "coverabc.png",
		}, nil)

		body, contentType := multipartImage(t, "thumbnail", "cover.png", "image/png", []byte("img"), map[string]string{
			"title":       "Заголовок",
			"category":    "Education",
			"description": "Описание",
		})

		req := httptest.NewRequest(http.MethodPost, "/api/posts", body)
		req.Header.Set("Content-Type", contentType)
		req = req.WithContext(middleware.WithUser(req.Context(), "user-123", "Ada"))
		rr := httptest.NewRecorder()

		handler.CreatePost(rr, req)

		response := assertJSONSuccess(t, rr, http.StatusCreated)
		assert.Equal(t, "post-1", response["postId"])
		assert.Equal(t, "user-123", response["creator"])
		mockPostService.AssertExpectations(t)
	})

	t.Run("Неподдерживаемый тип файла - 422", func(t *testing.T) {
		mockPostService := new(MockPostService)
		handler := createTestHandler(new(MockAuthService), new(MockUserService), mockPostService)

		body, contentType := multipartImage(t, "thumbnail", "doc.pdf", "application/pdf", []byte("pdf"), map[string]string{
			"title":       "Заголовок",
			"description": "Описание",
		})

		req := httptest.NewRequest(http.MethodPost, "/api/posts", body)
		req.Header.Set("Content-Type", contentType)
		req = req.WithContext(middleware.WithUser(req.Context(), "user-123", "Ada"))
		rr := httptest.NewRecorder()

		handler.CreatePost(rr, req)

		assertJSONError(t, rr, http.StatusUnprocessableEntity, "Неподдерживаемый тип файла")
		mockPostService.AssertNotCalled(t, "CreatePost", mock.Anything, mock.Anything)
	})

	t.Run("Без авторизации - 401", func(t *testing.T) {
		mockPostService := new(MockPostService)
		handler := createTestHandler(new(MockAuthService), new(MockUserService), mockPostService)

		req := httptest.NewRequest(http.MethodPost, "/api/posts", nil)
		rr := httptest.NewRecorder()

		handler.CreatePost(rr, req)

		assertJSONError(t, rr, http.StatusUnauthorized, "Требуется авторизация")
	})
}

func TestGetPostsHandler(t *testing.T) {
	mockPostService := new(MockPostService)
	handler := createTestHandler(new(MockAuthService), new(MockUserService), mockPostService)

	mockPostService.On("GetPosts", mock.Anything).
		Return([]models.Post{
			{PostID: "p1", Title: "Первый"},
			{PostID: "p2", Title: "Второй"},
		}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/posts", nil)
	rr := httptest.NewRecorder()

	handler.GetPosts(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)

	var posts []map[string]interface{}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &posts))
	assert.Len(t, posts, 2)
}

func TestGetPostHandler(t *testing.T) {
	t.Run("Пост найден", func(t *testing.T) {
		mockPostService := new(MockPostService)
		handler := createTestHandler(new(MockAuthService), new(MockUserService), mockPostService)

		mockPostService.On("GetPost", mock.Anything, "post-1").
			Return(&models.Post{PostID: "post-1", Title: "Заголовок"}, nil)

		req := httptest.NewRequest(http.MethodGet, "/api/posts/post-1", nil)
		req = mux.SetURLVars(req, map[string]string{"id": "post-1"})
		rr := httptest.NewRecorder()

		handler.GetPost(rr, req)

		response := assertJSONSuccess(t, rr, http.StatusOK)
		assert.Equal(t, "Заголовок", response["title"])
	})

	t.Run("Пост не найден - 404", func(t *testing.T) {
		mockPostService := new(MockPostService)
		handler := createTestHandler(new(MockAuthService), new(MockUserService), mockPostService)

		mockPostService.On("GetPost", mock.Anything, "ghost").
			Return(nil, apperrors.New(apperrors.NotFound, "Пост не найден"))

		req := httptest.NewRequest(http.MethodGet, "/api/posts/ghost", nil)
		req = mux.SetURLVars(req, map[string]string{"id": "ghost"})
		rr := httptest.NewRecorder()

		handler.GetPost(rr, req)

		assertJSONError(t, rr, http.StatusNotFound, "Пост не найден")
	})
}

func TestGetCatPostsHandler(t *testing.T) {
	mockPostService := new(MockPostService)
	handler := createTestHandler(new(MockAuthService), new(MockUserService), mockPostService)

	mockPostService.On("GetCatPosts", mock.Anything, "Weather").
		Return([]models.Post{{PostID: "p1", Category: "Weather"}}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/posts/categories/Weather", nil)
	req = mux.SetURLVars(req, map[string]string{"category": "Weather"})
	rr := httptest.NewRecorder()

	handler.GetCatPosts(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)

	var posts []map[string]interface{}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &posts))
	require.Len(t, posts, 1)
	assert.Equal(t, "Weather", posts[0]["category"])
}

func TestUpdatePostHandler(t *testing.T) {
	t.Run("Обновление без файла", func(t *testing.T) {
		mockPostService := new(MockPostService)
		handler := createTestHandler(new(MockAuthService), new(MockUserService), mockPostService)

		mockPostService.On("UpdatePost", mock.Anything, mock.MatchedBy(func(req service.UpdatePostRequest) bool {
			// файл не передан, миниатюра не меняется
			return req.PostID == "post-1" &&
				req.ActorID == "user-123" &&
				req.Title == "Новый заголовок" &&
				req.File == nil
		})).Return(&models.Post{PostID: "post-1", Title: "Новый заголовок"}, nil)

		body, contentType := multipartFields(t, map[string]string{
			"title":       "Новый заголовок",
			"category":    "Business",
			"description": "Новое описание",
		})

		req := httptest.NewRequest(http.MethodPatch, "/api/posts/post-1", body)
		req.Header.Set("Content-Type", contentType)
		req = mux.SetURLVars(req, map[string]string{"id": "post-1"})
		req = req.WithContext(middleware.WithUser(req.Context(), "user-123", "Ada"))
		rr := httptest.NewRecorder()

		handler.UpdatePost(rr, req)

		response := assertJSONSuccess(t, rr, http.StatusOK)
		assert.Equal(t, "Новый заголовок", response["title"])
		mockPostService.AssertExpectations(t)
	})

	t.Run("Чужой пост - 403", func(t *testing.T) {
		mockPostService := new(MockPostService)
		handler := createTestHandler(new(MockAuthService), new(MockUserService), mockPostService)

		mockPostService.On("UpdatePost", mock.Anything, mock.Anything).
			Return(nil, apperrors.New(apperrors.Forbidden, "Можно изменять только свои посты"))

		body, contentType := multipartFields(t, map[string]string{
			"title":       "Новый заголовок",
			"description": "Новое описание",
		})

		req := httptest.NewRequest(http.MethodPatch, "/api/posts/post-1", body)
		req.Header.Set("Content-Type", contentType)
		req = mux.SetURLVars(req, map[string]string{"id": "post-1"})
		req = req.WithContext(middleware.WithUser(req.Context(), "user-456", "Grace"))
		rr := httptest.NewRecorder()

		handler.UpdatePost(rr, req)

		assertJSONError(t, rr, http.StatusForbidden, "Можно изменять только свои посты")
	})
}

func TestDeletePostHandler(t *testing.T) {
	t.Run("Владелец удаляет пост", func(t *testing.T) {
		mockPostService := new(MockPostService)
		handler := createTestHandler(new(MockAuthService), new(MockUserService), mockPostService)

		mockPostService.On("DeletePost", mock.Anything, "post-1", "user-123").Return(nil)

		req := httptest.NewRequest(http.MethodDelete, "/api/posts/post-1", nil)
		req = mux.SetURLVars(req, map[string]string{"id": "post-1"})
		req = req.WithContext(middleware.WithUser(req.Context(), "user-123", "Ada"))
		rr := httptest.NewRecorder()

		handler.DeletePost(rr, req)

		response := assertJSONSuccess(t, rr, http.StatusAccepted)
		assert.Contains(t, response["message"], "post-1")
		mockPostService.AssertExpectations(t)
	})

	t.Run("Чужой пост - 403", func(t *testing.T) {
		mockPostService := new(MockPostService)
		handler := createTestHandler(new(MockAuthService), new(MockUserService), mockPostService)

		mockPostService.On("DeletePost", mock.Anything, "post-1", "user-456").
			Return(apperrors.New(apperrors.Forbidden, "Можно изменять только свои посты"))

		req := httptest.NewRequest(http.MethodDelete, "/api/posts/post-1", nil)
		req = mux.SetURLVars(req, map[string]string{"id": "post-1"})
		req = req.WithContext(middleware.WithUser(req.Context(), "user-456", "Grace"))
		rr := httptest.NewRecorder()

		handler.DeletePost(rr, req)

		assertJSONError(t, rr, http.StatusForbidden, "Можно изменять только свои посты")
	})

	t.Run("Без авторизации - 401", func(t *testing.T) {
		mockPostService := new(MockPostService)
		handler := createTestHandler(new(MockAuthService), new(MockUserService), mockPostService)

		req := httptest.NewRequest(http.MethodDelete, "/api/posts/post-1", nil)
		req = mux.SetURLVars(req, map[string]string{"id": "post-1"})
		rr := httptest.NewRecorder()

		handler.DeletePost(rr, req)

		assertJSONError(t, rr, http.StatusUnauthorized, "Требуется авторизация")
		mockPostService.AssertNotCalled(t, "DeletePost", mock.Anything, mock.Anything, mock.Anything)
	})
}

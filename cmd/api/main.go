package main

import (
	"fmt"
	"log"
	"net/http"

	"blogCPT/cmd/app"
	"blogCPT/internal/config"
	handlers "blogCPT/internal/handler"
	"blogCPT/internal/middleware"

	"github.com/gorilla/mux"
)

func main() {
	// setting up config
	cfg := config.LoadConfig()

	if cfg.JWTSecretKey == "" {
		log.Fatal("JWT_SECRET_KEY не установлен в .env файле")
	}

	db, _, services := app.App(cfg)
	defer db.CloseDB()

	handler := handlers.NewHandlers(services, cfg)

	auth := middleware.RequireAuth(services.Auth)

	// setting up routes
	router := mux.NewRouter()
	router.HandleFunc("/health", handler.HealthHandler).Methods(http.MethodGet)

	api := router.PathPrefix("/api").Subrouter()

	api.HandleFunc("/users/register", handler.Register).Methods(http.MethodPost)
	api.HandleFunc("/users/login", handler.Login).Methods(http.MethodPost)
	api.HandleFunc("/users", handler.GetAuthors).Methods(http.MethodGet)
	api.Handle("/users/change-avatar", auth(http.HandlerFunc(handler.ChangeAvatar))).Methods(http.MethodPost)
	api.Handle("/users/edit-user", auth(http.HandlerFunc(handler.EditUser))).Methods(http.MethodPatch)
	api.HandleFunc("/users/{id}", handler.GetUser).Methods(http.MethodGet)

	api.Handle("/me", auth(http.HandlerFunc(handler.GetCurrentUser))).Methods(http.MethodGet)

	api.Handle("/posts", auth(http.HandlerFunc(handler.CreatePost))).Methods(http.MethodPost)
	api.HandleFunc("/posts", handler.GetPosts).Methods(http.MethodGet)
	api.HandleFunc("/posts/categories/{category}", handler.GetCatPosts).Methods(http.MethodGet)
	api.HandleFunc("/posts/users/{id}", handler.GetUserPosts).Methods(http.MethodGet)
	api.HandleFunc("/posts/{id}", handler.GetPost).Methods(http.MethodGet)
	api.Handle("/posts/{id}", auth(http.HandlerFunc(handler.UpdatePost))).Methods(http.MethodPatch)
	api.Handle("/posts/{id}", auth(http.HandlerFunc(handler.DeletePost))).Methods(http.MethodDelete)

	// загруженные файлы раздаются только на чтение
	if cfg.StorageBackend == "local" {
		router.PathPrefix("/uploads/").Handler(
			http.StripPrefix("/uploads/", http.FileServer(http.Dir(cfg.UploadDir))))
	}

	handlerChain := middleware.Chain(
		router,
		middleware.LoggingMiddleware,
		middleware.CORSMiddleware,
	)

	// Starting the server
	addr := fmt.Sprintf(":%d", cfg.ServerPort)
	fmt.Printf("Сервер запущен на %s\n", addr)
	fmt.Printf("База данных: %s\n", cfg.DB.DbNAME)

	if err := http.ListenAndServe(addr, handlerChain); err != nil {
		log.Fatalf("Ошибка запуска сервера: %v", err)
	}
}

package handlers

import (
	"encoding/json"
	"net/http"

	"blogCPT/internal/config"
	"blogCPT/internal/service"

	"github.com/go-playground/validator/v10"
)

type Handlers struct {
	AuthService service.AuthService
	UserService service.UserService
	PostService service.PostService
	Cfg         *config.Config
	Validate    *validator.Validate
}

func NewHandlers(services *service.Service, config *config.Config) *Handlers {
	return &Handlers{
		AuthService: services.Auth,
		UserService: services.User,
		PostService: services.Post,
		Cfg:         config,
		Validate:    validator.New(),
	}
}

func (h *Handlers) HealthHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		WriteError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

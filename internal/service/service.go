package service

import (
	"blogCPT/internal/config"
	"blogCPT/internal/repository"
	"blogCPT/internal/storage"
)

type Service struct {
	Auth AuthService
	User UserService
	Post PostService
}

func NewService(rep *repository.Repository, cfg *config.Config, store storage.Storage) *Service {
	assets := storage.NewAssetManager(store)
	counter := NewCounterSync(rep.User)

	return &Service{
		Auth: NewAuthService(rep.User, cfg),
		User: NewUserService(rep.User, assets, cfg),
		Post: NewPostService(rep.Post, assets, counter, cfg),
	}
}

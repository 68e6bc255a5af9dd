package app

import (
	"log"

	"blogCPT/internal/config"
	"blogCPT/internal/database"
	"blogCPT/internal/repository"
	"blogCPT/internal/service"
	"blogCPT/internal/storage"
)

func App(cfg *config.Config) (*database.DB, *repository.Repository, *service.Service) {
	// connection DB
	db, err := database.ConnectDB(cfg)
	if err != nil {
		log.Fatalf("Не удалось подключиться к БД: %v", err)
	}

	// storage backend
	store, err := NewStorage(cfg)
	if err != nil {
		log.Fatalf("Не удалось инициализировать хранилище файлов: %v", err)
	}

	// enabling dependencies
	repo := repository.NewRepository(db.DB)

	services := service.NewService(repo, cfg, store)

	return db, repo, services
}

// NewStorage выбирает backend области загрузок по конфигурации
func NewStorage(cfg *config.Config) (storage.Storage, error) {
	if cfg.StorageBackend == "minio" {
		return storage.NewMinIOClient(cfg)
	}
	return storage.NewLocalStorage(cfg.UploadDir)
}

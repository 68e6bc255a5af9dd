package storage

import (
	"context"
	"fmt"
	"io"
	"log"
	"path/filepath"
	"strings"

	"blogCPT/internal/apperrors"

	"github.com/google/uuid"
)

// AssetManager связывает поля записей с файлами в области загрузок.
// Проверка размера выполняется до записи, имя делается
// устойчивым к коллизиям через случайный uuid.
type AssetManager struct {
	storage Storage
}

func NewAssetManager(storage Storage) *AssetManager {
	return &AssetManager{storage: storage}
}

// GenerateFilename: <имя-без-расширения><uuid>.<расширение>
func GenerateFilename(originalName string) string {
	base := filepath.Base(originalName)

	ext := strings.ToLower(filepath.Ext(base))
	if ext == "" {
		ext = ".jpg"
	}

	return strings.TrimSuffix(base, filepath.Ext(base)) + uuid.New().String() + ext
}

func (m *AssetManager) Store(ctx context.Context, originalName string, file io.Reader, size, limit int64) (string, error) {
	// отклоняем до любых побочных эффектов
	if size > limit {
		return "", apperrors.New(apperrors.Asset,
			fmt.Sprintf("Файл слишком большой (макс. %d KB)", limit/1024))
	}

	name := GenerateFilename(originalName)

	if err := m.storage.Save(ctx, name, file, size); err != nil {
		return "", err
	}

	return name, nil
}

// Replace удаляет старый файл и записывает новый.
// Неудачное удаление старого файла не блокирует запись нового,
// доступность нового файла важнее очистки.
func (m *AssetManager) Replace(ctx context.Context, oldName, originalName string, file io.Reader, size, limit int64) (string, error) {
	if size > limit {
		return "", apperrors.New(apperrors.Asset,
			fmt.Sprintf("Файл слишком большой (макс. %d KB)", limit/1024))
	}

	if oldName != "" {
		if err := m.storage.Remove(ctx, oldName); err != nil {
			log.Printf("не удалось удалить старый файл %s: %v", oldName, err)
		}
	}

	return m.Store(ctx, originalName, file, size, limit)
}

func (m *AssetManager) Remove(ctx context.Context, name string) error {
	return m.storage.Remove(ctx, name)
}

package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"blogCPT/internal/apperrors"
)

// LocalStorage хранит файлы в каталоге загрузок.
// Каталог задаётся при создании, глобального пути нет.
type LocalStorage struct {
	dir string
}

func NewLocalStorage(dir string) (*LocalStorage, error) {
	if dir == "" {
		return nil, fmt.Errorf("не задан каталог загрузок")
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("не удалось создать каталог загрузок: %w", err)
	}

	return &LocalStorage{dir: dir}, nil
}

func (s *LocalStorage) Save(ctx context.Context, name string, file io.Reader, size int64) error {
	path := filepath.Join(s.dir, filepath.Base(name))

	dst, err := os.Create(path)
	if err != nil {
		return apperrors.Wrap(apperrors.Persistence, "ошибка при создании файла", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, file); err != nil {
		return apperrors.Wrap(apperrors.Persistence, "ошибка при записи файла", err)
	}

	return nil
}

func (s *LocalStorage) Remove(ctx context.Context, name string) error {
	path := filepath.Join(s.dir, filepath.Base(name))

	err := os.Remove(path)
	if err != nil {
		if os.IsNotExist(err) {
			return apperrors.New(apperrors.NotFound, fmt.Sprintf("файл %s не найден", name))
		}
		return apperrors.Wrap(apperrors.Persistence, "ошибка при удалении файла", err)
	}

	return nil
}

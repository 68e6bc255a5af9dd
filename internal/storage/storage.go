package storage

import (
	"context"
	"io"
)

// Storage - область загрузок, адресуемая по имени файла
type Storage interface {
	Save(ctx context.Context, name string, file io.Reader, size int64) error
	Remove(ctx context.Context, name string) error
}

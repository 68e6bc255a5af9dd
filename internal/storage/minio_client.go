package storage

import (
	"context"
	"fmt"
	"io"
	"mime"
	"path/filepath"
	"strings"

	"blogCPT/internal/apperrors"
	"blogCPT/internal/config"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// MinIOClient - альтернативный backend загрузок в object storage
type MinIOClient struct {
	client *minio.Client
	bucket string
}

func NewMinIOClient(cfg *config.Config) (*MinIOClient, error) {
	client, err := minio.New(cfg.MinIO.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.MinIO.AccessKey, cfg.MinIO.SecretKey, ""),
		Secure: cfg.MinIO.UseSSL,
		Region: cfg.MinIO.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("ошибка подключения к MinIO: %w", err)
	}

	ctx := context.Background()

	exists, err := client.BucketExists(ctx, cfg.MinIO.BucketName)
	if err != nil {
		return nil, fmt.Errorf("ошибка проверки bucket: %w", err)
	}

	if !exists {
		err = client.MakeBucket(ctx, cfg.MinIO.BucketName, minio.MakeBucketOptions{Region: cfg.MinIO.Region})
		if err != nil {
			return nil, fmt.Errorf("ошибка создания bucket: %w", err)
		}
	}

	return &MinIOClient{client: client, bucket: cfg.MinIO.BucketName}, nil
}

func (m *MinIOClient) Save(ctx context.Context, name string, file io.Reader, size int64) error {
	contentType := mime.TypeByExtension(strings.ToLower(filepath.Ext(name)))
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	_, err := m.client.PutObject(ctx, m.bucket, name, file, size,
		minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return apperrors.Wrap(apperrors.Persistence, "ошибка загрузки в MinIO", err)
	}

	return nil
}

func (m *MinIOClient) Remove(ctx context.Context, name string) error {
	_, err := m.client.StatObject(ctx, m.bucket, name, minio.StatObjectOptions{})
	if err != nil {
		if minio.ToErrorResponse(err).Code == "NoSuchKey" {
			return apperrors.New(apperrors.NotFound, fmt.Sprintf("файл %s не найден", name))
		}
		return apperrors.Wrap(apperrors.Persistence, "ошибка проверки файла в MinIO", err)
	}

	err = m.client.RemoveObject(ctx, m.bucket, name, minio.RemoveObjectOptions{})
	if err != nil {
		return apperrors.Wrap(apperrors.Persistence, "ошибка удаления из MinIO", err)
	}

	return nil
}

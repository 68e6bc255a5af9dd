package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"blogCPT/internal/apperrors"
	"blogCPT/internal/models"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type PostRepositoryImpl struct {
	db *sqlx.DB
}

func NewPostRepository(db *sqlx.DB) *PostRepositoryImpl {
	return &PostRepositoryImpl{db: db}
}

func (r *PostRepositoryImpl) Create(ctx context.Context, post *models.Post) error {
	query := `
		INSERT INTO posts
		(post_id, title, category, description, creator_id, thumbnail, created_at, updated_at)
		VALUES
		(:post_id, :title, :category, :description, :creator_id, :thumbnail, :created_at, :updated_at)
	`

	if post.PostID == "" {
		post.PostID = uuid.New().String()
	}

	now := time.Now()
	post.CreatedAt = now
	post.UpdatedAt = now

	_, err := r.db.NamedExecContext(ctx, query, post)
	if err != nil {
		return apperrors.Wrap(apperrors.Persistence, "ошибка при создании поста", err)
	}

	return nil
}

func (r *PostRepositoryImpl) GetByID(ctx context.Context, postID string) (*models.Post, error) {
	query := `SELECT * FROM posts WHERE post_id = $1`

	var post models.Post
	err := r.db.GetContext(ctx, &post, query, postID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.New(apperrors.NotFound, fmt.Sprintf("пост с ID %s не найден", postID))
		}
		return nil, apperrors.Wrap(apperrors.Persistence, "ошибка при получении поста", err)
	}

	return &post, nil
}

// GetAll - все посты, сначала недавно обновлённые
func (r *PostRepositoryImpl) GetAll(ctx context.Context) ([]models.Post, error) {
	query := `SELECT * FROM posts ORDER BY updated_at DESC`

	var posts []models.Post
	err := r.db.SelectContext(ctx, &posts, query)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.Persistence, "ошибка при получении постов", err)
	}

	return posts, nil
}

func (r *PostRepositoryImpl) GetByCategory(ctx context.Context, category string) ([]models.Post, error) {
	query := `SELECT * FROM posts WHERE category = $1 ORDER BY created_at DESC`

	var posts []models.Post
	err := r.db.SelectContext(ctx, &posts, query, category)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.Persistence, "ошибка при получении постов категории", err)
	}

	return posts, nil
}

func (r *PostRepositoryImpl) GetByCreatorID(ctx context.Context, creatorID string) ([]models.Post, error) {
	query := `SELECT * FROM posts WHERE creator_id = $1 ORDER BY created_at DESC`

	var posts []models.Post
	err := r.db.SelectContext(ctx, &posts, query, creatorID)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.Persistence, "ошибка при получении постов пользователя", err)
	}

	return posts, nil
}

// Update не трогает creator_id, автор поста неизменяем
func (r *PostRepositoryImpl) Update(ctx context.Context, post *models.Post) error {
	query := `
		UPDATE posts SET
			title = :title,
			category = :category,
			description = :description,
			thumbnail = :thumbnail,
			updated_at = :updated_at
		WHERE post_id = :post_id
	`

	post.UpdatedAt = time.Now()

	result, err := r.db.NamedExecContext(ctx, query, post)
	if err != nil {
		return apperrors.Wrap(apperrors.Persistence, "ошибка при обновлении поста", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(apperrors.Persistence, "ошибка при проверке обновленных строк", err)
	}

	if rowsAffected == 0 {
		return apperrors.New(apperrors.NotFound, fmt.Sprintf("пост с ID %s не найден", post.PostID))
	}

	return nil
}

func (r *PostRepositoryImpl) Delete(ctx context.Context, postID string) error {
	query := `DELETE FROM posts WHERE post_id = $1`

	result, err := r.db.ExecContext(ctx, query, postID)
	if err != nil {
		return apperrors.Wrap(apperrors.Persistence, "ошибка при удалении поста", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(apperrors.Persistence, "ошибка при проверке удаленных строк", err)
	}

	if rowsAffected == 0 {
		return apperrors.New(apperrors.NotFound, fmt.Sprintf("пост с ID %s не найден", postID))
	}

	return nil
}

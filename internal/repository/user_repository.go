package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"blogCPT/internal/apperrors"
	"blogCPT/internal/models"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"golang.org/x/crypto/bcrypt"
)

type userRepository struct {
	db *sqlx.DB
}

func NewUserRepository(db *sqlx.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) CreateUser(ctx context.Context, user *models.User, password string) error {
	// create password hash
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return apperrors.Wrap(apperrors.Internal, "ошибка при хешировании пароля", err)
	}

	// create user id
	user.UserID = uuid.New().String()
	user.PasswordHash = string(hashedPassword)

	query := `
		INSERT INTO users (user_id, name, email, password_hash, avatar, post_count)
		VALUES (:user_id, :name, :email, :password_hash, :avatar, :post_count)
	`

	_, err = r.db.NamedExecContext(ctx, query, user)
	if err != nil {
		if strings.Contains(err.Error(), "duplicate key value") {
			return apperrors.Wrap(apperrors.Conflict, "Email уже существует", err)
		}
		return apperrors.Wrap(apperrors.Persistence, "ошибка при создании пользователя", err)
	}

	return nil
}

func (r *userRepository) GetUserByID(ctx context.Context, userID string) (*models.User, error) {
	var user models.User

	query := `SELECT * FROM users WHERE user_id = $1`

	err := r.db.GetContext(ctx, &user, query, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.New(apperrors.NotFound, fmt.Sprintf("пользователь с ID %s не найден", userID))
		}
		return nil, apperrors.Wrap(apperrors.Persistence, "ошибка при получении пользователя", err)
	}

	return &user, nil
}

func (r *userRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User

	query := `SELECT * FROM users WHERE email = $1`

	err := r.db.GetContext(ctx, &user, query, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.New(apperrors.NotFound, fmt.Sprintf("пользователь с email %s не найден", email))
		}
		return nil, apperrors.Wrap(apperrors.Persistence, "ошибка при получении пользователя по email", err)
	}

	return &user, nil
}

func (r *userRepository) GetAllUsers(ctx context.Context) ([]models.User, error) {
	query := `SELECT * FROM users ORDER BY name`

	var users []models.User
	err := r.db.SelectContext(ctx, &users, query)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.Persistence, "ошибка при получении пользователей", err)
	}

	return users, nil
}

func (r *userRepository) UpdateUser(ctx context.Context, user *models.User) error {
	query := `
		UPDATE users
		SET name = :name, email = :email, password_hash = :password_hash
		WHERE user_id = :user_id
	`

	result, err := r.db.NamedExecContext(ctx, query, user)
	if err != nil {
		if strings.Contains(err.Error(), "duplicate key value") {
			return apperrors.Wrap(apperrors.Conflict, "Email уже существует", err)
		}
		return apperrors.Wrap(apperrors.Persistence, "ошибка при обновлении пользователя", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(apperrors.Persistence, "ошибка при проверке обновленных строк", err)
	}

	if rowsAffected == 0 {
		return apperrors.New(apperrors.NotFound, fmt.Sprintf("пользователь с ID %s не найден", user.UserID))
	}

	return nil
}

func (r *userRepository) UpdateAvatar(ctx context.Context, userID, avatar string) error {
	query := `UPDATE users SET avatar = $1 WHERE user_id = $2`

	result, err := r.db.ExecContext(ctx, query, avatar, userID)
	if err != nil {
		return apperrors.Wrap(apperrors.Persistence, "ошибка при обновлении аватара", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(apperrors.Persistence, "ошибка при проверке обновленных строк", err)
	}

	if rowsAffected == 0 {
		return apperrors.New(apperrors.NotFound, fmt.Sprintf("пользователь с ID %s не найден", userID))
	}

	return nil
}

// AdjustPostCount меняет денормализованный счётчик постов на delta.
// Возвращает новое значение, отрицательное значение не ограничивается.
func (r *userRepository) AdjustPostCount(ctx context.Context, userID string, delta int) (int, error) {
	query := `UPDATE users SET post_count = post_count + $1 WHERE user_id = $2 RETURNING post_count`

	var count int
	err := r.db.GetContext(ctx, &count, query, delta, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, apperrors.New(apperrors.NotFound, fmt.Sprintf("пользователь с ID %s не найден", userID))
		}
		return 0, apperrors.Wrap(apperrors.Persistence, "ошибка при обновлении счётчика постов", err)
	}

	return count, nil
}

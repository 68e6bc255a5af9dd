package service

import (
	"context"
	"io"
	"log"
	"strings"
	"unicode/utf8"

	"blogCPT/internal/apperrors"
	"blogCPT/internal/config"
	"blogCPT/internal/models"
	"blogCPT/internal/repository"
	"blogCPT/internal/storage"

	"golang.org/x/crypto/bcrypt"
)

type EditUserRequest struct {
	UserID             string
	Name               string
	Email              string
	CurrentPassword    string
	NewPassword        string
	NewConfirmPassword string
}

type UserService interface {
	GetUser(ctx context.Context, userID string) (*models.User, error)
	GetAuthors(ctx context.Context) ([]models.User, error)
	ChangeAvatar(ctx context.Context, userID, fileName string, file io.Reader, size int64) (*models.User, error)
	EditUser(ctx context.Context, req EditUserRequest) (*models.User, error)
}

type userService struct {
	userRepo repository.UserRepository
	assets   *storage.AssetManager
	cfg      *config.Config
}

func NewUserService(userRepo repository.UserRepository, assets *storage.AssetManager, cfg *config.Config) UserService {
	return &userService{
		userRepo: userRepo,
		assets:   assets,
		cfg:      cfg,
	}
}

func (s *userService) GetUser(ctx context.Context, userID string) (*models.User, error) {
	return s.userRepo.GetUserByID(ctx, userID)
}

func (s *userService) GetAuthors(ctx context.Context) ([]models.User, error) {
	return s.userRepo.GetAllUsers(ctx)
}

func (s *userService) ChangeAvatar(ctx context.Context, userID, fileName string, file io.Reader, size int64) (*models.User, error) {
	// get user by id
	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	// файл записывается до обновления записи: при сбое записи
	// файла запись продолжает ссылаться на старый аватар
	newAvatar, err := s.assets.Replace(ctx, user.Avatar, fileName, file, size, s.cfg.AvatarMaxSize)
	if err != nil {
		return nil, err
	}

	err = s.userRepo.UpdateAvatar(ctx, userID, newAvatar)
	if err != nil {
		// файл уже записан, запись не обновлена - осиротевший файл
		log.Printf("осиротевший файл %s: запись не обновлена: %v", newAvatar, err)
		return nil, apperrors.Wrap(apperrors.Persistence, "Не удалось обновить аватар", err)
	}

	user.Avatar = newAvatar
	return user, nil
}

func (s *userService) EditUser(ctx context.Context, req EditUserRequest) (*models.User, error) {
	if req.Name == "" || req.Email == "" || req.CurrentPassword == "" || req.NewPassword == "" {
		return nil, apperrors.New(apperrors.Validation, "Заполните все поля")
	}

	user, err := s.userRepo.GetUserByID(ctx, req.UserID)
	if err != nil {
		return nil, err
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	// email может остаться прежним, но не должен принадлежать другому
	other, err := s.userRepo.GetUserByEmail(ctx, email)
	if err == nil && other != nil && other.UserID != req.UserID {
		return nil, apperrors.New(apperrors.Conflict, "Email уже существует")
	}

	err = bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.CurrentPassword))
	if err != nil {
		return nil, apperrors.New(apperrors.Validation, "Неверный текущий пароль")
	}

	if utf8.RuneCountInString(strings.TrimSpace(req.NewPassword)) < 6 {
		return nil, apperrors.New(apperrors.Validation, "Пароль должен быть не менее 6 символов")
	}

	if req.NewPassword != req.NewConfirmPassword {
		return nil, apperrors.New(apperrors.Validation, "Новые пароли не совпадают")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.Internal, "ошибка при хешировании пароля", err)
	}

	user.Name = req.Name
	user.Email = email
	user.PasswordHash = string(hashedPassword)

	err = s.userRepo.UpdateUser(ctx, user)
	if err != nil {
		return nil, err
	}

	return user, nil
}

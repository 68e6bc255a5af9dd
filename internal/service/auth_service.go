package service

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"blogCPT/internal/apperrors"
	"blogCPT/internal/config"
	"blogCPT/internal/models"
	"blogCPT/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// единая ошибка для неизвестного email и неверного пароля,
// чтобы не раскрывать существование аккаунта
var ErrInvalidCredentials = apperrors.New(apperrors.Validation, "Неверный email или пароль")

type RegisterRequest struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	Password2 string `json:"password2"`
}

// Claims - содержимое подписанного токена сессии
type Claims struct {
	UserID string
	Name   string
}

type AuthService interface {
	Register(ctx context.Context, req RegisterRequest) (*models.User, error)
	Login(ctx context.Context, email, password string) (*models.User, string, error)
	IssueToken(user *models.User) (string, error)
	VerifyToken(tokenString string) (*Claims, error)
}

type authService struct {
	userRepo repository.UserRepository
	cfg      *config.Config
}

func NewAuthService(userRepo repository.UserRepository, cfg *config.Config) AuthService {
	return &authService{
		userRepo: userRepo,
		cfg:      cfg,
	}
}

func (s *authService) Register(ctx context.Context, req RegisterRequest) (*models.User, error) {
	if req.Name == "" || req.Email == "" || req.Password == "" {
		return nil, apperrors.New(apperrors.Validation, "Заполните все поля")
	}

	// email храним только в нижнем регистре
	email := strings.ToLower(strings.TrimSpace(req.Email))

	if utf8.RuneCountInString(strings.TrimSpace(req.Password)) < 6 {
		return nil, apperrors.New(apperrors.Validation, "Пароль должен быть не менее 6 символов")
	}

	if req.Password != req.Password2 {
		return nil, apperrors.New(apperrors.Validation, "Пароли не совпадают")
	}

	existingUser, err := s.userRepo.GetUserByEmail(ctx, email)
	if err == nil && existingUser != nil {
		return nil, apperrors.New(apperrors.Conflict, "Email уже существует")
	}

	user := &models.User{
		Name:  req.Name,
		Email: email,
	}

	err = s.userRepo.CreateUser(ctx, user, req.Password)
	if err != nil {
		return nil, err
	}

	return user, nil
}

func (s *authService) Login(ctx context.Context, email, password string) (*models.User, string, error) {
	if email == "" || password == "" {
		return nil, "", apperrors.New(apperrors.Validation, "Заполните все поля")
	}

	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.userRepo.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, "", ErrInvalidCredentials
	}

	err = bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password))
	if err != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.IssueToken(user)
	if err != nil {
		return nil, "", err
	}

	return user, token, nil
}

// IssueToken выдаёт подписанный токен с фиксированным сроком действия
func (s *authService) IssueToken(user *models.User) (string, error) {
	claims := jwt.MapClaims{
		"id":   user.UserID,
		"name": user.Name,
		"exp":  time.Now().Add(s.cfg.TokenDuration).Unix(),
		"iat":  time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	tokenString, err := token.SignedString([]byte(s.cfg.JWTSecretKey))
	if err != nil {
		return "", apperrors.Wrap(apperrors.Internal, "ошибка подписи токена", err)
	}

	return tokenString, nil
}

// VerifyToken отклоняет просроченный и неверно подписанный токен
// одинаково, у защищённых маршрутов один путь отказа
func (s *authService) VerifyToken(tokenString string) (*Claims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(s.cfg.JWTSecretKey), nil
	})

	if err != nil || !token.Valid {
		return nil, apperrors.New(apperrors.Unauthenticated, "Недействительный токен")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, apperrors.New(apperrors.Unauthenticated, "Неверный формат claims")
	}

	userID, ok1 := claims["id"].(string)
	name, ok2 := claims["name"].(string)
	if !ok1 || !ok2 {
		return nil, apperrors.New(apperrors.Unauthenticated, "Неверные данные в токене")
	}

	return &Claims{UserID: userID, Name: name}, nil
}

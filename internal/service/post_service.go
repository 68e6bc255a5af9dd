package service

import (
	"context"
	"io"
	"log"

	"blogCPT/internal/apperrors"
	"blogCPT/internal/authz"
	"blogCPT/internal/config"
	"blogCPT/internal/models"
	"blogCPT/internal/repository"
	"blogCPT/internal/storage"
)

type CreatePostRequest struct {
	CreatorID   string
	Title       string
	Category    string
	Description string
	FileName    string
	File        io.Reader
	FileSize    int64
}

type UpdatePostRequest struct {
	PostID      string
	ActorID     string
	Title       string
	Category    string
	Description string
	// File == nil означает, что миниатюра не меняется
	FileName string
	File     io.Reader
	FileSize int64
}

type PostService interface {
	CreatePost(ctx context.Context, req CreatePostRequest) (*models.Post, error)
	GetPost(ctx context.Context, postID string) (*models.Post, error)
	GetPosts(ctx context.Context) ([]models.Post, error)
	GetCatPosts(ctx context.Context, category string) ([]models.Post, error)
	GetUserPosts(ctx context.Context, creatorID string) ([]models.Post, error)
	UpdatePost(ctx context.Context, req UpdatePostRequest) (*models.Post, error)
	DeletePost(ctx context.Context, postID, actorID string) error
}

type postService struct {
	postRepo repository.PostRepository
	assets   *storage.AssetManager
	counter  *CounterSync
	cfg      *config.Config
}

func NewPostService(postRepo repository.PostRepository, assets *storage.AssetManager, counter *CounterSync, cfg *config.Config) PostService {
	return &postService{
		postRepo: postRepo,
		assets:   assets,
		counter:  counter,
		cfg:      cfg,
	}
}

// CreatePost: проверка полей -> запись миниатюры -> запись поста -> счётчик.
// Падение записи поста после записи файла оставляет осиротевший файл,
// это известное окно несогласованности, оно логируется.
func (p *postService) CreatePost(ctx context.Context, req CreatePostRequest) (*models.Post, error) {
	if req.Title == "" || req.Description == "" || req.File == nil {
		return nil, apperrors.New(apperrors.Validation, "Заполните все поля и выберите миниатюру")
	}

	category := req.Category
	if category == "" {
		category = models.DefaultCategory
	}
	if !models.ValidCategory(category) {
		return nil, apperrors.New(apperrors.Validation, "Неподдерживаемая категория")
	}

	thumbnail, err := p.assets.Store(ctx, req.FileName, req.File, req.FileSize, p.cfg.ThumbnailMaxSize)
	if err != nil {
		return nil, err
	}

	post := &models.Post{
		Title:       req.Title,
		Category:    category,
		Description: req.Description,
		CreatorID:   req.CreatorID,
		Thumbnail:   thumbnail,
	}

	err = p.postRepo.Create(ctx, post)
	if err != nil {
		log.Printf("осиротевший файл %s: пост не создан: %v", thumbnail, err)
		return nil, apperrors.Wrap(apperrors.Persistence, "Не удалось создать пост", err)
	}

	// счётчик только после успешной записи поста
	if err := p.counter.OnCreate(ctx, req.CreatorID); err != nil {
		log.Printf("расхождение счётчика у пользователя %s: %v", req.CreatorID, err)
	}

	return post, nil
}

func (p *postService) GetPost(ctx context.Context, postID string) (*models.Post, error) {
	return p.postRepo.GetByID(ctx, postID)
}

func (p *postService) GetPosts(ctx context.Context) ([]models.Post, error) {
	return p.postRepo.GetAll(ctx)
}

func (p *postService) GetCatPosts(ctx context.Context, category string) ([]models.Post, error) {
	return p.postRepo.GetByCategory(ctx, category)
}

func (p *postService) GetUserPosts(ctx context.Context, creatorID string) ([]models.Post, error) {
	return p.postRepo.GetByCreatorID(ctx, creatorID)
}

func (p *postService) UpdatePost(ctx context.Context, req UpdatePostRequest) (*models.Post, error) {
	post, err := p.postRepo.GetByID(ctx, req.PostID)
	if err != nil {
		return nil, err
	}

	// проверка владельца строго до файловых эффектов
	if err := authz.Authorize(req.ActorID, post); err != nil {
		return nil, err
	}

	if req.Title == "" || req.Description == "" {
		return nil, apperrors.New(apperrors.Validation, "Заполните все поля")
	}

	category := req.Category
	if category == "" {
		category = models.DefaultCategory
	}
	if !models.ValidCategory(category) {
		return nil, apperrors.New(apperrors.Validation, "Неподдерживаемая категория")
	}

	if req.File != nil {
		newThumbnail, err := p.assets.Replace(ctx, post.Thumbnail, req.FileName, req.File, req.FileSize, p.cfg.ThumbnailMaxSize)
		if err != nil {
			return nil, err
		}
		post.Thumbnail = newThumbnail
	}

	post.Title = req.Title
	post.Category = category
	post.Description = req.Description

	err = p.postRepo.Update(ctx, post)
	if err != nil {
		if req.File != nil {
			log.Printf("осиротевший файл %s: пост не обновлён: %v", post.Thumbnail, err)
		}
		return nil, err
	}

	return post, nil
}

func (p *postService) DeletePost(ctx context.Context, postID, actorID string) error {
	post, err := p.postRepo.GetByID(ctx, postID)
	if err != nil {
		return err
	}

	if err := authz.Authorize(actorID, post); err != nil {
		return err
	}

	// file first: пока пост существует, миниатюра должна существовать
	err = p.assets.Remove(ctx, post.Thumbnail)
	if err != nil {
		if !apperrors.Is(err, apperrors.NotFound) {
			return err
		}
		log.Printf("миниатюра %s уже отсутствует", post.Thumbnail)
	}

	err = p.postRepo.Delete(ctx, postID)
	if err != nil {
		return err
	}

	if err := p.counter.OnDelete(ctx, post.CreatorID); err != nil {
		log.Printf("расхождение счётчика у пользователя %s: %v", post.CreatorID, err)
	}

	return nil
}

package service

import (
	"context"
	"log"

	"blogCPT/internal/repository"
)

// CounterSync держит post_count пользователя в соответствии
// с мутациями постов. Вызывается только после успешной записи
// поста; падение между двумя шагами даёт расхождение счётчика,
// транзакции здесь нет сознательно.
type CounterSync struct {
	userRepo repository.UserRepository
}

func NewCounterSync(userRepo repository.UserRepository) *CounterSync {
	return &CounterSync{userRepo: userRepo}
}

func (c *CounterSync) OnCreate(ctx context.Context, creatorID string) error {
	_, err := c.userRepo.AdjustPostCount(ctx, creatorID, 1)
	return err
}

func (c *CounterSync) OnDelete(ctx context.Context, creatorID string) error {
	count, err := c.userRepo.AdjustPostCount(ctx, creatorID, -1)
	if err != nil {
		return err
	}

	// счётчик ниже нуля не ограничиваем, но фиксируем как аномалию
	if count < 0 {
		log.Printf("аномалия счётчика: post_count=%d у пользователя %s", count, creatorID)
	}

	return nil
}

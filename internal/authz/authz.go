package authz

import (
	"blogCPT/internal/apperrors"
)

// Owned - запись с владельцем
type Owned interface {
	OwnerID() string
}

// Authorize разрешает изменение записи только её владельцу.
// Вызывается до любых побочных эффектов (файлы, счётчики).
func Authorize(actorID string, rec Owned) error {
	if actorID == "" {
		return apperrors.New(apperrors.Unauthenticated, "Требуется авторизация")
	}

	if rec == nil || rec.OwnerID() != actorID {
		return apperrors.New(apperrors.Forbidden, "Доступ запрещен")
	}

	return nil
}

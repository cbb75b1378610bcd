package repository

import (
	"context"

	"github.com/jhoicas/Peminjaman-api/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para User (DIP).
type UserRepository interface {
	// Create persiste un usuario; ErrDuplicate si el username ya existe.
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id int64) (*entity.User, error)
	// GetByUsername devuelve nil, nil si no existe.
	GetByUsername(ctx context.Context, username string) (*entity.User, error)
}

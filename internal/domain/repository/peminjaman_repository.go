package repository

import (
	"context"
	"time"

	"github.com/jhoicas/Peminjaman-api/internal/domain/entity"
)

// PeminjamanFilter filtros de listado de préstamos.
type PeminjamanFilter struct {
	Status entity.LoanStatus // vacío = todos
}

// PeminjamanRepository define el puerto del Loan Record Store (DIP).
type PeminjamanRepository interface {
	// Create persiste el préstamo con RemainingItems = Items y estado active; rellena ID y timestamps.
	Create(ctx context.Context, loan *entity.Peminjaman) error
	// GetByID devuelve nil, nil si no existe.
	GetByID(ctx context.Context, id int64) (*entity.Peminjaman, error)
	// GetForUpdate igual que GetByID pero bloquea la fila.
	GetForUpdate(ctx context.Context, id int64) (*entity.Peminjaman, error)
	// List devuelve los préstamos del más reciente al más antiguo.
	List(ctx context.Context, filter PeminjamanFilter) ([]*entity.Peminjaman, error)
	// UpdateReturn reemplaza pendientes y estado, agrega detail al historial y fija returned_at
	// la primera vez que el estado pasa a partial_return o returned.
	UpdateReturn(ctx context.Context, id int64, remaining []entity.LoanLine, status entity.LoanStatus, detail entity.ReturnDetail, now time.Time) error
}

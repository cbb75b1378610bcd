package repository

import (
	"context"
	"time"

	"github.com/jhoicas/Peminjaman-api/internal/domain/entity"
)

// KomoditasFilter filtros de listado: subcadena sin distinguir mayúsculas sobre categoría y nombre.
type KomoditasFilter struct {
	Category string
	Name     string
}

// KomoditasRepository define el puerto del Inventory Store (DIP).
// Las implementaciones reciben un pool o una tx; los métodos ForUpdate bloquean la fila
// hasta el fin de la transacción cuando el motor lo soporta.
type KomoditasRepository interface {
	// FindByKey busca por (categoría, nombre) normalizados. Devuelve nil, nil si no existe.
	FindByKey(ctx context.Context, categoryKey, nameKey string) (*entity.Komoditas, error)
	// FindByKeyForUpdate igual que FindByKey pero bloquea la fila (SELECT FOR UPDATE).
	FindByKeyForUpdate(ctx context.Context, categoryKey, nameKey string) (*entity.Komoditas, error)
	GetByID(ctx context.Context, id int64) (*entity.Komoditas, error)
	// Create inserta un ítem nuevo y rellena ID, CreatedAt y UpdatedAt.
	Create(ctx context.Context, item *entity.Komoditas) error
	// Restock suma quantity a total y disponible; prestado no cambia.
	Restock(ctx context.Context, id int64, quantity int, now time.Time) (*entity.Komoditas, error)
	// ApplyDelta es la única primitiva de mutación de contadores:
	// disponible += availableDelta, prestado += loanedDelta; total se mantiene como la suma de ambos.
	// ErrNotFound si el ítem no existe; ErrNegativeQuantity si algún contador quedaría negativo.
	ApplyDelta(ctx context.Context, id int64, availableDelta, loanedDelta int, now time.Time) (*entity.Komoditas, error)
	// List devuelve el catálogo ordenado por categoría y nombre.
	List(ctx context.Context, filter KomoditasFilter) ([]*entity.Komoditas, error)
}

package inventory

import (
	"context"

	"github.com/jhoicas/Peminjaman-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando el repositorio de
// komoditas atado a esa tx. Garantiza atomicidad para altas y reposiciones del catálogo.
type TxRunner interface {
	Run(ctx context.Context, fn func(items repository.KomoditasRepository) error) error
}

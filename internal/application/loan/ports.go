package loan

import (
	"context"
	"time"

	"github.com/jhoicas/Peminjaman-api/internal/domain/entity"
	"github.com/jhoicas/Peminjaman-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción que abarca el catálogo y los préstamos.
// La reserva o liberación de stock y la escritura del préstamo se confirman juntas o no se confirman.
type TxRunner interface {
	RunLoan(ctx context.Context, fn func(
		items repository.KomoditasRepository,
		loans repository.PeminjamanRepository,
	) error) error
}

// IdempotencyStore registra claves Idempotency-Key ya vistas.
// Acquire devuelve false si la clave ya estaba registrada y no ha expirado.
type IdempotencyStore interface {
	Acquire(ctx context.Context, key string, ttl time.Duration) (bool, error)
	Release(ctx context.Context, key string) error
}

// Recorder recibe los eventos del ciclo de vida para métricas.
type Recorder interface {
	LoanCreated()
	ReturnProcessed(status entity.LoanStatus)
	OperationRejected(operation, reason string)
}

// ReceiptRenderer genera el comprobante PDF de un préstamo.
type ReceiptRenderer interface {
	Render(loan *entity.Peminjaman, now time.Time) ([]byte, error)
}

// Actor miembro del personal autenticado que ejecuta la operación.
type Actor struct {
	UserID   int64
	Username string
}

type noopRecorder struct{}

func (noopRecorder) LoanCreated()                      {}
func (noopRecorder) ReturnProcessed(entity.LoanStatus) {}
func (noopRecorder) OperationRejected(string, string)  {}

package loan

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/Peminjaman-api/internal/domain"
	"github.com/jhoicas/Peminjaman-api/internal/domain/repository"
)

// ReceiptUseCase genera el comprobante PDF de un préstamo.
type ReceiptUseCase struct {
	loans    repository.PeminjamanRepository
	renderer ReceiptRenderer
	now      func() time.Time
}

// NewReceiptUseCase construye el caso de uso.
func NewReceiptUseCase(loans repository.PeminjamanRepository, renderer ReceiptRenderer) *ReceiptUseCase {
	return &ReceiptUseCase{loans: loans, renderer: renderer, now: time.Now}
}

// Receipt devuelve el PDF y un nombre de archivo sugerido.
func (uc *ReceiptUseCase) Receipt(ctx context.Context, id int64) ([]byte, string, error) {
	l, err := uc.loans.GetByID(ctx, id)
	if err != nil {
		return nil, "", err
	}
	if l == nil {
		return nil, "", domain.NotFound("préstamo", id)
	}
	pdf, err := uc.renderer.Render(l, uc.now())
	if err != nil {
		return nil, "", fmt.Errorf("render receipt: %w", err)
	}
	return pdf, fmt.Sprintf("peminjaman-%d.pdf", id), nil
}

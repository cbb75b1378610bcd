package loan_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Peminjaman-api/internal/application/loan"
	"github.com/jhoicas/Peminjaman-api/internal/domain"
	"github.com/jhoicas/Peminjaman-api/internal/domain/entity"
)

type fakeRenderer struct {
	got *entity.Peminjaman
	err error
}

func (r *fakeRenderer) Render(l *entity.Peminjaman, _ time.Time) ([]byte, error) {
	r.got = l
	if r.err != nil {
		return nil, r.err
	}
	return []byte("%PDF-fake"), nil
}

func TestReceipt(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.seed(t, "Laptop", "Dell", 5)
	created, err := f.uc.CreateLoan(ctx, actor, "", loanRequest(line("Laptop", "Dell", 1)))
	require.NoError(t, err)

	renderer := &fakeRenderer{}
	uc := loan.NewReceiptUseCase(f.loans, renderer)

	pdf, name, err := uc.Receipt(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF-fake"), pdf)
	assert.Equal(t, "peminjaman-1.pdf", name)
	assert.Equal(t, "Budi", renderer.got.BorrowerName)

	_, _, err = uc.Receipt(ctx, 42)
	assert.True(t, errors.Is(err, domain.ErrNotFound))

	renderer.err = errors.New("fuente no disponible")
	_, _, err = uc.Receipt(ctx, created.ID)
	assert.Error(t, err)
}

package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/Peminjaman-api/internal/application/inventory"
	"github.com/jhoicas/Peminjaman-api/internal/application/loan"
	"github.com/jhoicas/Peminjaman-api/internal/domain"
	"github.com/jhoicas/Peminjaman-api/internal/domain/repository"
)

// Ensure TxRunner implements inventory.TxRunner and loan.TxRunner.
var _ inventory.TxRunner = (*TxRunner)(nil)
var _ loan.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con el repo de komoditas atado a la tx y hace Commit o Rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(items repository.KomoditasRepository) error) error {
	return r.RunLoan(ctx, func(items repository.KomoditasRepository, _ repository.PeminjamanRepository) error {
		return fn(items)
	})
}

// RunLoan inicia una transacción con los repos de catálogo y préstamos (creación y devolución).
func (r *TxRunner) RunLoan(ctx context.Context, fn func(
	items repository.KomoditasRepository,
	loans repository.PeminjamanRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w: %w", domain.ErrStorage, err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewKomoditasRepository(tx), NewPeminjamanRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w: %w", domain.ErrStorage, err)
	}
	return nil
}

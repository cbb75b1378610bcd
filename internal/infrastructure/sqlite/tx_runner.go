package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jhoicas/Peminjaman-api/internal/application/inventory"
	"github.com/jhoicas/Peminjaman-api/internal/application/loan"
	"github.com/jhoicas/Peminjaman-api/internal/domain"
	"github.com/jhoicas/Peminjaman-api/internal/domain/repository"
)

var _ inventory.TxRunner = (*TxRunner)(nil)
var _ loan.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción SQLite.
// Con el pool de una conexión, dentro de fn no debe usarse el *sql.DB: solo los repos recibidos.
type TxRunner struct {
	db *sql.DB
}

// NewTxRunner construye el runner.
func NewTxRunner(db *sql.DB) *TxRunner {
	return &TxRunner{db: db}
}

// Run ejecuta fn con el repo de komoditas atado a la tx.
func (r *TxRunner) Run(ctx context.Context, fn func(items repository.KomoditasRepository) error) error {
	return r.RunLoan(ctx, func(items repository.KomoditasRepository, _ repository.PeminjamanRepository) error {
		return fn(items)
	})
}

// RunLoan ejecuta fn con los repos de catálogo y préstamos atados a la misma tx.
func (r *TxRunner) RunLoan(ctx context.Context, fn func(
	items repository.KomoditasRepository,
	loans repository.PeminjamanRepository,
) error) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w: %w", domain.ErrStorage, err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := fn(NewKomoditasRepository(tx), NewPeminjamanRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w: %w", domain.ErrStorage, err)
	}
	return nil
}

// Package store abre el motor de persistencia configurado (PostgreSQL o SQLite), aplica las
// migraciones y expone los repositorios y el runner transaccional detrás de los puertos.
package store

import (
	"context"
	"fmt"

	"github.com/jhoicas/Peminjaman-api/internal/application/inventory"
	"github.com/jhoicas/Peminjaman-api/internal/application/loan"
	"github.com/jhoicas/Peminjaman-api/internal/domain/repository"
	"github.com/jhoicas/Peminjaman-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Peminjaman-api/internal/infrastructure/sqlite"
	"github.com/jhoicas/Peminjaman-api/pkg/config"
)

// TxRunner transacción que sirve tanto al catálogo como al ciclo de préstamos.
type TxRunner interface {
	inventory.TxRunner
	loan.TxRunner
}

// Store repositorios listos para usar sobre el driver elegido.
type Store struct {
	Driver    string
	TxRunner  TxRunner
	Komoditas repository.KomoditasRepository
	Loans     repository.PeminjamanRepository
	Users     repository.UserRepository

	ping  func(ctx context.Context) error
	close func()
}

// Open conecta, migra y construye los repositorios según cfg.Store.Driver.
func Open(ctx context.Context, cfg *config.Config) (*Store, error) {
	switch cfg.Store.Driver {
	case config.DriverSQLite:
		db, err := sqlite.Open(ctx, cfg.Store.SQLitePath)
		if err != nil {
			return nil, err
		}
		if err := sqlite.Migrate(ctx, db); err != nil {
			_ = db.Close()
			return nil, err
		}
		return &Store{
			Driver:    config.DriverSQLite,
			TxRunner:  sqlite.NewTxRunner(db),
			Komoditas: sqlite.NewKomoditasRepository(db),
			Loans:     sqlite.NewPeminjamanRepository(db),
			Users:     sqlite.NewUserRepository(db),
			ping:      db.PingContext,
			close:     func() { _ = db.Close() },
		}, nil
	case config.DriverPostgres:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			return nil, err
		}
		if err := postgres.Migrate(ctx, pool); err != nil {
			pool.Close()
			return nil, err
		}
		return &Store{
			Driver:    config.DriverPostgres,
			TxRunner:  postgres.NewTxRunner(pool),
			Komoditas: postgres.NewKomoditasRepository(pool),
			Loans:     postgres.NewPeminjamanRepository(pool),
			Users:     postgres.NewUserRepository(pool),
			ping:      pool.Ping,
			close:     pool.Close,
		}, nil
	default:
		return nil, fmt.Errorf("store: driver %q no soportado", cfg.Store.Driver)
	}
}

// Ping comprueba la conexión con la base.
func (s *Store) Ping(ctx context.Context) error { return s.ping(ctx) }

// Close libera el pool o la base.
func (s *Store) Close() { s.close() }

package sqlite_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Peminjaman-api/internal/domain"
	"github.com/jhoicas/Peminjaman-api/internal/domain/entity"
	"github.com/jhoicas/Peminjaman-api/internal/domain/inventory"
	"github.com/jhoicas/Peminjaman-api/internal/domain/repository"
	"github.com/jhoicas/Peminjaman-api/internal/infrastructure/sqlite"
)

func openDB(t *testing.T) *sql.DB {
	t.Helper()
	ctx := context.Background()
	db, err := sqlite.Open(ctx, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, sqlite.Migrate(ctx, db))
	return db
}

func newItem(category, name string, qty int) *entity.Komoditas {
	now := time.Now()
	return &entity.Komoditas{
		DeviceCategory:    category,
		DeviceName:        name,
		CategoryKey:       inventory.NormalizeKey(category),
		NameKey:           inventory.NormalizeKey(name),
		TotalQuantity:     qty,
		AvailableQuantity: qty,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Komoditas
// ──────────────────────────────────────────────────────────────────────────────

func TestKomoditasRepo_CreateYBuscarPorClave(t *testing.T) {
	ctx := context.Background()
	repo := sqlite.NewKomoditasRepository(openDB(t))

	item := newItem("Laptop", "Dell XPS", 5)
	require.NoError(t, repo.Create(ctx, item))
	assert.NotZero(t, item.ID)

	found, err := repo.FindByKey(ctx, inventory.NormalizeKey("LAPTOP"), inventory.NormalizeKey("dell xps"))
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "Dell XPS", found.DeviceName)
	assert.True(t, found.Balanced())

	missing, err := repo.FindByKey(ctx, "camera", "canon")
	require.NoError(t, err)
	assert.Nil(t, missing, "no encontrado devuelve nil, nil")

	err = repo.Create(ctx, newItem("laptop", "DELL XPS", 1))
	assert.True(t, errors.Is(err, domain.ErrDuplicate), "la clave es única sin distinguir mayúsculas")
}

func TestKomoditasRepo_ApplyDeltaRespetaLimites(t *testing.T) {
	ctx := context.Background()
	repo := sqlite.NewKomoditasRepository(openDB(t))
	item := newItem("Camera", "Canon", 2)
	require.NoError(t, repo.Create(ctx, item))

	after, err := repo.ApplyDelta(ctx, item.ID, -2, 2, time.Now())
	require.NoError(t, err)
	assert.Equal(t, 0, after.AvailableQuantity)
	assert.Equal(t, 2, after.LoanedQuantity)
	assert.Equal(t, 2, after.TotalQuantity)

	_, err = repo.ApplyDelta(ctx, item.ID, -1, 1, time.Now())
	assert.True(t, errors.Is(err, domain.ErrNegativeQuantity))

	_, err = repo.ApplyDelta(ctx, item.ID+100, 1, -1, time.Now())
	assert.True(t, errors.Is(err, domain.ErrNotFound))

	unchanged, err := repo.GetByID(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, unchanged.AvailableQuantity, "un delta rechazado no modifica la fila")
}

func TestKomoditasRepo_Restock(t *testing.T) {
	ctx := context.Background()
	repo := sqlite.NewKomoditasRepository(openDB(t))
	item := newItem("Projector", "Epson", 1)
	require.NoError(t, repo.Create(ctx, item))
	_, err := repo.ApplyDelta(ctx, item.ID, -1, 1, time.Now())
	require.NoError(t, err)

	after, err := repo.Restock(ctx, item.ID, 3, time.Now())
	require.NoError(t, err)
	assert.Equal(t, 4, after.TotalQuantity)
	assert.Equal(t, 3, after.AvailableQuantity)
	assert.Equal(t, 1, after.LoanedQuantity)
}

func TestKomoditasRepo_ListFiltraPorSubcadena(t *testing.T) {
	ctx := context.Background()
	repo := sqlite.NewKomoditasRepository(openDB(t))
	for _, it := range []*entity.Komoditas{
		newItem("Laptop", "Dell", 1),
		newItem("Laptop", "Lenovo", 1),
		newItem("Camera", "Canon_EOS", 1),
		newItem("Camera", "CanonXEOS", 1),
	} {
		require.NoError(t, repo.Create(ctx, it))
	}

	all, err := repo.List(ctx, repository.KomoditasFilter{})
	require.NoError(t, err)
	require.Len(t, all, 4)
	assert.Equal(t, "Camera", all[0].DeviceCategory, "ordenado por categoría")

	laptops, err := repo.List(ctx, repository.KomoditasFilter{Category: "lap"})
	require.NoError(t, err)
	assert.Len(t, laptops, 2)

	underscore, err := repo.List(ctx, repository.KomoditasFilter{Name: "canon_"})
	require.NoError(t, err)
	require.Len(t, underscore, 1, "_ es literal, no comodín")
	assert.Equal(t, "Canon_EOS", underscore[0].DeviceName)
}

// ──────────────────────────────────────────────────────────────────────────────
// Peminjaman
// ──────────────────────────────────────────────────────────────────────────────

func newLoan() *entity.Peminjaman {
	now := time.Now()
	return &entity.Peminjaman{
		BorrowerName:      "Budi",
		LoanDate:          time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC),
		ProgramName:       "Workshop",
		PlannedReturnDate: time.Date(2026, 10, 5, 0, 0, 0, 0, time.UTC),
		OperatorName:      "admin",
		Items:             []entity.LoanLine{{Category: "Laptop", Name: "Dell", Quantity: 2}},
		UserID:            1,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
}

func TestPeminjamanRepo_CreateYGet(t *testing.T) {
	ctx := context.Background()
	repo := sqlite.NewPeminjamanRepository(openDB(t))

	l := newLoan()
	require.NoError(t, repo.Create(ctx, l))
	require.NotZero(t, l.ID)

	got, err := repo.GetByID(ctx, l.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, entity.LoanStatusActive, got.Status)
	assert.Equal(t, got.Items, got.RemainingItems, "al crear, pendientes = originales")
	assert.Empty(t, got.ReturnDetails)
	assert.Nil(t, got.ReturnedAt)
	assert.Equal(t, "2026-10-05", got.PlannedReturnDate.Format("2006-01-02"))

	none, err := repo.GetByID(ctx, l.ID+1)
	require.NoError(t, err)
	assert.Nil(t, none)
}

func TestPeminjamanRepo_UpdateReturnAgregaHistorial(t *testing.T) {
	ctx := context.Background()
	repo := sqlite.NewPeminjamanRepository(openDB(t))
	l := newLoan()
	require.NoError(t, repo.Create(ctx, l))

	first := time.Date(2026, 10, 2, 9, 0, 0, 0, time.UTC)
	require.NoError(t, repo.UpdateReturn(ctx, l.ID,
		[]entity.LoanLine{{Category: "Laptop", Name: "Dell", Quantity: 1}},
		entity.LoanStatusPartialReturn,
		entity.ReturnDetail{ReturnedAt: first, Devices: []entity.ReturnLine{{Category: "Laptop", Name: "Dell", ReturnedCount: 1}}, Status: entity.LoanStatusPartialReturn},
		first,
	))
	second := first.Add(24 * time.Hour)
	require.NoError(t, repo.UpdateReturn(ctx, l.ID, nil, entity.LoanStatusReturned,
		entity.ReturnDetail{ReturnedAt: second, Devices: []entity.ReturnLine{{Category: "Laptop", Name: "Dell", ReturnedCount: 1}}, Status: entity.LoanStatusReturned},
		second,
	))

	got, err := repo.GetByID(ctx, l.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.LoanStatusReturned, got.Status)
	assert.Empty(t, got.RemainingItems)
	require.Len(t, got.ReturnDetails, 2)
	assert.Equal(t, entity.LoanStatusPartialReturn, got.ReturnDetails[0].Status)
	assert.Equal(t, entity.LoanStatusReturned, got.ReturnDetails[1].Status)
	require.NotNil(t, got.ReturnedAt)
	assert.True(t, first.Equal(*got.ReturnedAt), "returned_at conserva la primera devolución")
	assert.Equal(t, []entity.LoanLine{{Category: "Laptop", Name: "Dell", Quantity: 2}}, got.Items, "las líneas originales no cambian")

	err = repo.UpdateReturn(ctx, l.ID+99, nil, entity.LoanStatusReturned, entity.ReturnDetail{}, second)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestPeminjamanRepo_ListMasRecientePrimeroYFiltro(t *testing.T) {
	ctx := context.Background()
	repo := sqlite.NewPeminjamanRepository(openDB(t))
	older := newLoan()
	older.CreatedAt = time.Now().Add(-time.Hour)
	require.NoError(t, repo.Create(ctx, older))
	newer := newLoan()
	require.NoError(t, repo.Create(ctx, newer))
	require.NoError(t, repo.UpdateReturn(ctx, older.ID, nil, entity.LoanStatusReturned,
		entity.ReturnDetail{Status: entity.LoanStatusReturned}, time.Now()))

	list, err := repo.List(ctx, repository.PeminjamanFilter{})
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, newer.ID, list[0].ID)

	returned, err := repo.List(ctx, repository.PeminjamanFilter{Status: entity.LoanStatusReturned})
	require.NoError(t, err)
	require.Len(t, returned, 1)
	assert.Equal(t, older.ID, returned[0].ID)
}

// ──────────────────────────────────────────────────────────────────────────────
// TxRunner
// ──────────────────────────────────────────────────────────────────────────────

func TestTxRunner_RollbackAnteError(t *testing.T) {
	ctx := context.Background()
	db := openDB(t)
	runner := sqlite.NewTxRunner(db)
	boom := errors.New("boom")

	err := runner.Run(ctx, func(items repository.KomoditasRepository) error {
		if err := items.Create(ctx, newItem("Laptop", "Dell", 3)); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	found, err := sqlite.NewKomoditasRepository(db).FindByKey(ctx, "laptop", "dell")
	require.NoError(t, err)
	assert.Nil(t, found, "el insert se revierte")
}

func TestUserRepo_CreateDuplicado(t *testing.T) {
	ctx := context.Background()
	repo := sqlite.NewUserRepository(openDB(t))
	u := &entity.User{Username: "admin", PasswordHash: "x", CreatedAt: time.Now()}
	require.NoError(t, repo.Create(ctx, u))

	err := repo.Create(ctx, &entity.User{Username: "admin", PasswordHash: "y", CreatedAt: time.Now()})
	assert.True(t, errors.Is(err, domain.ErrDuplicate))

	got, err := repo.GetByUsername(ctx, "admin")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)
}

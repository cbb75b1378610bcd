package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jhoicas/Peminjaman-api/internal/domain"
	"github.com/jhoicas/Peminjaman-api/internal/domain/entity"
	"github.com/jhoicas/Peminjaman-api/internal/domain/repository"
)

var _ repository.KomoditasRepository = (*KomoditasRepo)(nil)

// KomoditasRepo implementación de KomoditasRepository sobre SQLite (usable con db o tx).
type KomoditasRepo struct {
	q Querier
}

// NewKomoditasRepository construye el adaptador del catálogo.
func NewKomoditasRepository(q Querier) *KomoditasRepo {
	return &KomoditasRepo{q: q}
}

const komoditasColumns = `id, device_category, device_name, category_key, name_key,
	total_quantity, available_quantity, loaned_quantity, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanKomoditas(row rowScanner) (*entity.Komoditas, error) {
	var (
		k                entity.Komoditas
		created, updated string
	)
	err := row.Scan(&k.ID, &k.DeviceCategory, &k.DeviceName, &k.CategoryKey, &k.NameKey,
		&k.TotalQuantity, &k.AvailableQuantity, &k.LoanedQuantity, &created, &updated)
	if err != nil {
		return nil, err
	}
	if k.CreatedAt, err = parseTime(created); err != nil {
		return nil, err
	}
	if k.UpdatedAt, err = parseTime(updated); err != nil {
		return nil, err
	}
	return &k, nil
}

func (r *KomoditasRepo) findOne(ctx context.Context, op, query string, args ...any) (*entity.Komoditas, error) {
	k, err := scanKomoditas(r.q.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w: %w", op, domain.ErrStorage, err)
	}
	return k, nil
}

// FindByKey busca por (categoría, nombre) normalizados.
func (r *KomoditasRepo) FindByKey(ctx context.Context, categoryKey, nameKey string) (*entity.Komoditas, error) {
	query := `SELECT ` + komoditasColumns + ` FROM komoditas WHERE category_key = ?1 AND name_key = ?2`
	return r.findOne(ctx, "find komoditas", query, categoryKey, nameKey)
}

// FindByKeyForUpdate equivale a FindByKey: con una sola conexión la tx ya es exclusiva.
func (r *KomoditasRepo) FindByKeyForUpdate(ctx context.Context, categoryKey, nameKey string) (*entity.Komoditas, error) {
	return r.FindByKey(ctx, categoryKey, nameKey)
}

// GetByID obtiene un ítem por id.
func (r *KomoditasRepo) GetByID(ctx context.Context, id int64) (*entity.Komoditas, error) {
	return r.findOne(ctx, "get komoditas", `SELECT `+komoditasColumns+` FROM komoditas WHERE id = ?1`, id)
}

// Create inserta un ítem nuevo. ErrDuplicate si ya existe otro con la misma clave.
func (r *KomoditasRepo) Create(ctx context.Context, item *entity.Komoditas) error {
	query := `
		INSERT INTO komoditas (device_category, device_name, category_key, name_key,
			total_quantity, available_quantity, loaned_quantity, created_at, updated_at)
		VALUES (?1, ?2, ?3, ?4, ?5, ?6, ?7, ?8, ?9)
		RETURNING id`
	err := r.q.QueryRowContext(ctx, query,
		item.DeviceCategory, item.DeviceName, item.CategoryKey, item.NameKey,
		item.TotalQuantity, item.AvailableQuantity, item.LoanedQuantity,
		formatTime(item.CreatedAt), formatTime(item.UpdatedAt),
	).Scan(&item.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("create komoditas: %w: %w", domain.ErrStorage, err)
	}
	return nil
}

// Restock suma quantity a total y disponible.
func (r *KomoditasRepo) Restock(ctx context.Context, id int64, quantity int, now time.Time) (*entity.Komoditas, error) {
	query := `
		UPDATE komoditas
		SET total_quantity = total_quantity + ?2, available_quantity = available_quantity + ?2, updated_at = ?3
		WHERE id = ?1
		RETURNING ` + komoditasColumns
	k, err := r.findOne(ctx, "restock komoditas", query, id, quantity, formatTime(now))
	if err != nil {
		return nil, err
	}
	if k == nil {
		return nil, domain.NotFound("komoditas", id)
	}
	return k, nil
}

// ApplyDelta aplica los deltas solo si ningún contador queda negativo.
func (r *KomoditasRepo) ApplyDelta(ctx context.Context, id int64, availableDelta, loanedDelta int, now time.Time) (*entity.Komoditas, error) {
	query := `
		UPDATE komoditas
		SET available_quantity = available_quantity + ?2,
		    loaned_quantity = loaned_quantity + ?3,
		    total_quantity = total_quantity + ?2 + ?3,
		    updated_at = ?4
		WHERE id = ?1 AND available_quantity + ?2 >= 0 AND loaned_quantity + ?3 >= 0
		RETURNING ` + komoditasColumns
	k, err := scanKomoditas(r.q.QueryRowContext(ctx, query, id, availableDelta, loanedDelta, formatTime(now)))
	if err == nil {
		return k, nil
	}
	if isCheckViolation(err) {
		return nil, fmt.Errorf("apply delta %d: %w", id, domain.ErrNegativeQuantity)
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("apply delta: %w: %w", domain.ErrStorage, err)
	}
	existing, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, fmt.Errorf("apply delta: %w", domain.NotFound("komoditas", id))
	}
	return nil, fmt.Errorf("apply delta %d: %w", id, domain.ErrNegativeQuantity)
}

// List devuelve el catálogo filtrado por subcadena de las claves normalizadas.
func (r *KomoditasRepo) List(ctx context.Context, filter repository.KomoditasFilter) ([]*entity.Komoditas, error) {
	query := `
		SELECT ` + komoditasColumns + `
		FROM komoditas
		WHERE category_key LIKE ?1 ESCAPE '\' AND name_key LIKE ?2 ESCAPE '\'
		ORDER BY category_key, name_key`
	rows, err := r.q.QueryContext(ctx, query, containsPattern(filter.Category), containsPattern(filter.Name))
	if err != nil {
		return nil, fmt.Errorf("list komoditas: %w: %w", domain.ErrStorage, err)
	}
	defer rows.Close()
	var list []*entity.Komoditas
	for rows.Next() {
		k, err := scanKomoditas(rows)
		if err != nil {
			return nil, fmt.Errorf("scan komoditas: %w: %w", domain.ErrStorage, err)
		}
		list = append(list, k)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list komoditas: %w: %w", domain.ErrStorage, err)
	}
	return list, nil
}

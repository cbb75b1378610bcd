package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Peminjaman-api/internal/domain"
	"github.com/jhoicas/Peminjaman-api/internal/domain/entity"
	"github.com/jhoicas/Peminjaman-api/internal/domain/repository"
)

var _ repository.PeminjamanRepository = (*PeminjamanRepo)(nil)

// PeminjamanRepo implementación de PeminjamanRepository sobre PostgreSQL.
// Las listas de líneas y el historial de devoluciones se guardan como JSONB.
type PeminjamanRepo struct {
	q Querier
}

// NewPeminjamanRepository construye el adaptador de préstamos. Pasar pool o tx (Querier).
func NewPeminjamanRepository(q Querier) *PeminjamanRepo {
	return &PeminjamanRepo{q: q}
}

const peminjamanColumns = `id, nama_peminjam, tanggal_peminjaman, nama_program, rencana_pengembalian,
	nama_operator, alat_yang_dipinjam, remaining_items, status, return_details, returned_at,
	COALESCE(user_id, 0), created_at, updated_at`

func scanPeminjaman(row pgx.Row) (*entity.Peminjaman, error) {
	var (
		p                        entity.Peminjaman
		items, remaining, detail []byte
		status                   string
	)
	err := row.Scan(&p.ID, &p.BorrowerName, &p.LoanDate, &p.ProgramName, &p.PlannedReturnDate,
		&p.OperatorName, &items, &remaining, &status, &detail, &p.ReturnedAt,
		&p.UserID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	p.Status = entity.LoanStatus(status)
	if err := decodeJSON(items, &p.Items); err != nil {
		return nil, fmt.Errorf("alat_yang_dipinjam: %w", err)
	}
	if err := decodeJSON(remaining, &p.RemainingItems); err != nil {
		return nil, fmt.Errorf("remaining_items: %w", err)
	}
	if err := decodeJSON(detail, &p.ReturnDetails); err != nil {
		return nil, fmt.Errorf("return_details: %w", err)
	}
	return &p, nil
}

func decodeJSON(raw []byte, dst any) error {
	if len(raw) == 0 {
		return nil
	}
	return json.Unmarshal(raw, dst)
}

func (r *PeminjamanRepo) findOne(ctx context.Context, op, query string, id int64) (*entity.Peminjaman, error) {
	p, err := scanPeminjaman(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w: %w", op, domain.ErrStorage, err)
	}
	return p, nil
}

// Create inserta el préstamo con remaining_items = alat_yang_dipinjam y estado active.
func (r *PeminjamanRepo) Create(ctx context.Context, loan *entity.Peminjaman) error {
	items, err := json.Marshal(loan.Items)
	if err != nil {
		return fmt.Errorf("encode items: %w", err)
	}
	loan.Status = entity.LoanStatusActive
	loan.RemainingItems = append([]entity.LoanLine(nil), loan.Items...)
	loan.ReturnDetails = nil
	query := `
		INSERT INTO peminjaman (nama_peminjam, tanggal_peminjaman, nama_program, rencana_pengembalian,
			nama_operator, alat_yang_dipinjam, remaining_items, status, user_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6::jsonb, $6::jsonb, $7, NULLIF($8::bigint, 0), $9, $10)
		RETURNING id`
	err = r.q.QueryRow(ctx, query,
		loan.BorrowerName, loan.LoanDate, loan.ProgramName, loan.PlannedReturnDate,
		loan.OperatorName, string(items), string(loan.Status), loan.UserID, loan.CreatedAt, loan.UpdatedAt,
	).Scan(&loan.ID)
	if err != nil {
		return fmt.Errorf("create peminjaman: %w: %w", domain.ErrStorage, err)
	}
	return nil
}

// GetByID obtiene un préstamo por id.
func (r *PeminjamanRepo) GetByID(ctx context.Context, id int64) (*entity.Peminjaman, error) {
	return r.findOne(ctx, "get peminjaman", `SELECT `+peminjamanColumns+` FROM peminjaman WHERE id = $1`, id)
}

// GetForUpdate obtiene el préstamo y bloquea la fila (SELECT FOR UPDATE).
func (r *PeminjamanRepo) GetForUpdate(ctx context.Context, id int64) (*entity.Peminjaman, error) {
	return r.findOne(ctx, "get peminjaman for update", `SELECT `+peminjamanColumns+` FROM peminjaman WHERE id = $1 FOR UPDATE`, id)
}

// List devuelve los préstamos del más reciente al más antiguo.
func (r *PeminjamanRepo) List(ctx context.Context, filter repository.PeminjamanFilter) ([]*entity.Peminjaman, error) {
	query := `
		SELECT ` + peminjamanColumns + `
		FROM peminjaman
		WHERE ($1 = '' OR status = $1)
		ORDER BY created_at DESC, id DESC`
	rows, err := r.q.Query(ctx, query, string(filter.Status))
	if err != nil {
		return nil, fmt.Errorf("list peminjaman: %w: %w", domain.ErrStorage, err)
	}
	defer rows.Close()
	var list []*entity.Peminjaman
	for rows.Next() {
		p, err := scanPeminjaman(rows)
		if err != nil {
			return nil, fmt.Errorf("scan peminjaman: %w: %w", domain.ErrStorage, err)
		}
		list = append(list, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list peminjaman: %w: %w", domain.ErrStorage, err)
	}
	return list, nil
}

// UpdateReturn reemplaza pendientes y estado y agrega detail al historial en una sola sentencia.
// returned_at conserva el primer valor asignado.
func (r *PeminjamanRepo) UpdateReturn(ctx context.Context, id int64, remaining []entity.LoanLine, status entity.LoanStatus, detail entity.ReturnDetail, now time.Time) error {
	if remaining == nil {
		remaining = []entity.LoanLine{}
	}
	rem, err := json.Marshal(remaining)
	if err != nil {
		return fmt.Errorf("encode remaining: %w", err)
	}
	det, err := json.Marshal(detail)
	if err != nil {
		return fmt.Errorf("encode detail: %w", err)
	}
	query := `
		UPDATE peminjaman
		SET remaining_items = $2::jsonb,
		    status = $3,
		    return_details = COALESCE(return_details, '[]'::jsonb) || jsonb_build_array($4::jsonb),
		    returned_at = COALESCE(returned_at, $5),
		    updated_at = $5
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query, id, string(rem), string(status), string(det), now)
	if err != nil {
		return fmt.Errorf("update return: %w: %w", domain.ErrStorage, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.NotFound("préstamo", id)
	}
	return nil
}

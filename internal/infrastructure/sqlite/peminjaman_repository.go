package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jhoicas/Peminjaman-api/internal/domain"
	"github.com/jhoicas/Peminjaman-api/internal/domain/entity"
	"github.com/jhoicas/Peminjaman-api/internal/domain/repository"
)

var _ repository.PeminjamanRepository = (*PeminjamanRepo)(nil)

// PeminjamanRepo implementación de PeminjamanRepository sobre SQLite.
// Líneas e historial se guardan como texto JSON y se manipulan con las funciones json_* de SQLite.
type PeminjamanRepo struct {
	q Querier
}

// NewPeminjamanRepository construye el adaptador de préstamos.
func NewPeminjamanRepository(q Querier) *PeminjamanRepo {
	return &PeminjamanRepo{q: q}
}

const peminjamanColumns = `id, nama_peminjam, tanggal_peminjaman, nama_program, rencana_pengembalian,
	nama_operator, alat_yang_dipinjam, remaining_items, status, return_details, returned_at,
	COALESCE(user_id, 0), created_at, updated_at`

func scanPeminjaman(row rowScanner) (*entity.Peminjaman, error) {
	var (
		p                         entity.Peminjaman
		loanDate, plannedDate     string
		items, remaining, details string
		status, created, updated  string
		returnedAt                sql.NullString
	)
	err := row.Scan(&p.ID, &p.BorrowerName, &loanDate, &p.ProgramName, &plannedDate,
		&p.OperatorName, &items, &remaining, &status, &details, &returnedAt,
		&p.UserID, &created, &updated)
	if err != nil {
		return nil, err
	}
	p.Status = entity.LoanStatus(status)
	if p.LoanDate, err = parseDate(loanDate); err != nil {
		return nil, err
	}
	if p.PlannedReturnDate, err = parseDate(plannedDate); err != nil {
		return nil, err
	}
	if p.CreatedAt, err = parseTime(created); err != nil {
		return nil, err
	}
	if p.UpdatedAt, err = parseTime(updated); err != nil {
		return nil, err
	}
	if returnedAt.Valid {
		t, err := parseTime(returnedAt.String)
		if err != nil {
			return nil, err
		}
		p.ReturnedAt = &t
	}
	if err := json.Unmarshal([]byte(items), &p.Items); err != nil {
		return nil, fmt.Errorf("alat_yang_dipinjam: %w", err)
	}
	if err := json.Unmarshal([]byte(remaining), &p.RemainingItems); err != nil {
		return nil, fmt.Errorf("remaining_items: %w", err)
	}
	if err := json.Unmarshal([]byte(details), &p.ReturnDetails); err != nil {
		return nil, fmt.Errorf("return_details: %w", err)
	}
	return &p, nil
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
		VALUES (?1, ?2, ?3, ?4, ?5, ?6, ?6, ?7, NULLIF(?8, 0), ?9, ?10)
		RETURNING id`
	err = r.q.QueryRowContext(ctx, query,
		loan.BorrowerName, formatDate(loan.LoanDate), loan.ProgramName, formatDate(loan.PlannedReturnDate),
		loan.OperatorName, string(items), string(loan.Status), loan.UserID,
		formatTime(loan.CreatedAt), formatTime(loan.UpdatedAt),
	).Scan(&loan.ID)
	if err != nil {
		return fmt.Errorf("create peminjaman: %w: %w", domain.ErrStorage, err)
	}
	return nil
}

// GetByID obtiene un préstamo por id.
func (r *PeminjamanRepo) GetByID(ctx context.Context, id int64) (*entity.Peminjaman, error) {
	p, err := scanPeminjaman(r.q.QueryRowContext(ctx, `SELECT `+peminjamanColumns+` FROM peminjaman WHERE id = ?1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get peminjaman: %w: %w", domain.ErrStorage, err)
	}
	return p, nil
}

// GetForUpdate equivale a GetByID: con una sola conexión la tx ya es exclusiva.
func (r *PeminjamanRepo) GetForUpdate(ctx context.Context, id int64) (*entity.Peminjaman, error) {
	return r.GetByID(ctx, id)
}

// List devuelve los préstamos del más reciente al más antiguo.
func (r *PeminjamanRepo) List(ctx context.Context, filter repository.PeminjamanFilter) ([]*entity.Peminjaman, error) {
	query := `
		SELECT ` + peminjamanColumns + `
		FROM peminjaman
		WHERE (?1 = '' OR status = ?1)
		ORDER BY created_at DESC, id DESC`
	rows, err := r.q.QueryContext(ctx, query, string(filter.Status))
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

// UpdateReturn reemplaza pendientes y estado y agrega detail al final del historial.
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
		SET remaining_items = ?2,
		    status = ?3,
		    return_details = json_insert(COALESCE(return_details, '[]'), '$[#]', json(?4)),
		    returned_at = COALESCE(returned_at, ?5),
		    updated_at = ?5
		WHERE id = ?1`
	res, err := r.q.ExecContext(ctx, query, id, string(rem), string(status), string(det), formatTime(now))
	if err != nil {
		return fmt.Errorf("update return: %w: %w", domain.ErrStorage, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update return: %w: %w", domain.ErrStorage, err)
	}
	if n == 0 {
		return domain.NotFound("préstamo", id)
	}
	return nil
}

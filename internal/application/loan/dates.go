package loan

import (
	"strings"
	"time"

	"github.com/jhoicas/Peminjaman-api/internal/domain"
)

// DateLayout formato de fecha de préstamo y devolución planificada.
const DateLayout = "2006-01-02"

// parseDate acepta YYYY-MM-DD o RFC3339 y devuelve la fecha a medianoche UTC.
func parseDate(field, s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, domain.Invalid(field, "es obligatorio")
	}
	if t, err := time.Parse(DateLayout, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, domain.Invalid(field, "formato de fecha inválido, use YYYY-MM-DD")
	}
	return dateOnly(t), nil
}

// dateOnly trunca t al día calendario UTC.
func dateOnly(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

package entity

import "time"

// LoanStatus estados del ciclo de vida de un préstamo.
type LoanStatus string

const (
	LoanStatusActive        LoanStatus = "active"
	LoanStatusPartialReturn LoanStatus = "partial_return"
	LoanStatusReturned      LoanStatus = "returned"
)

// Valid indica si el estado es uno de los persistibles.
func (s LoanStatus) Valid() bool {
	switch s {
	case LoanStatusActive, LoanStatusPartialReturn, LoanStatusReturned:
		return true
	}
	return false
}

// Open indica si el préstamo aún tiene equipos pendientes de devolución.
func (s LoanStatus) Open() bool {
	return s == LoanStatusActive || s == LoanStatusPartialReturn
}

// LoanLine línea de un préstamo. Se persiste como JSON con las claves históricas del sistema.
type LoanLine struct {
	Category string `json:"kategoriAlat"`
	Name     string `json:"namaAlat"`
	Quantity int    `json:"jumlah"`
}

// ReturnLine línea de una devolución.
type ReturnLine struct {
	Category      string `json:"kategoriAlat"`
	Name          string `json:"namaAlat"`
	ReturnedCount int    `json:"returnedCount"`
}

// ReturnDetail entrada del historial de devoluciones de un préstamo.
type ReturnDetail struct {
	ReturnedAt time.Time    `json:"returnedAt"`
	Devices    []ReturnLine `json:"devices"`
	Status     LoanStatus   `json:"status"`
	UserID     int64        `json:"userId,omitempty"`
}

// Peminjaman representa una transacción de préstamo.
// Items es inmutable después de crearse; RemainingItems y Status solo cambian por devoluciones.
type Peminjaman struct {
	ID                int64
	BorrowerName      string
	LoanDate          time.Time
	ProgramName       string
	PlannedReturnDate time.Time
	OperatorName      string
	Items             []LoanLine
	RemainingItems    []LoanLine
	Status            LoanStatus
	ReturnDetails     []ReturnDetail
	ReturnedAt        *time.Time
	UserID            int64
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// Overdue es una vista derivada (no persistida): el préstamo sigue abierto y la fecha
// planificada de devolución ya pasó. Se compara por día calendario en UTC, la misma
// referencia con la que se guardan las fechas, sea cual sea la zona de now.
func (p *Peminjaman) Overdue(now time.Time) bool {
	if !p.Status.Open() {
		return false
	}
	y, m, d := now.UTC().Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	py, pm, pd := p.PlannedReturnDate.UTC().Date()
	planned := time.Date(py, pm, pd, 0, 0, 0, 0, time.UTC)
	return planned.Before(today)
}

// Baseline devuelve el conjunto pendiente sobre el que se calcula una devolución:
// RemainingItems si no está vacío, si no Items (primera devolución).
func (p *Peminjaman) Baseline() []LoanLine {
	if len(p.RemainingItems) > 0 {
		return p.RemainingItems
	}
	return p.Items
}

package dto

import "time"

// LoanLineDTO línea de préstamo tal como la envía y recibe la capa de presentación.
type LoanLineDTO struct {
	Category string `json:"kategoriAlat"`
	Name     string `json:"namaAlat"`
	Quantity int    `json:"jumlah"`
}

// ReturnLineDTO línea de devolución.
type ReturnLineDTO struct {
	Category      string `json:"kategoriAlat"`
	Name          string `json:"namaAlat"`
	ReturnedCount int    `json:"returnedCount"`
}

// CreatePeminjamanRequest body para POST /api/peminjaman.
// Fechas en formato YYYY-MM-DD (se acepta también RFC3339).
type CreatePeminjamanRequest struct {
	NamaPeminjam        string        `json:"namaPeminjam" validate:"required"`
	TanggalPeminjaman   string        `json:"tanggalPeminjaman"`
	NamaProgram         string        `json:"namaProgram" validate:"required"`
	RencanaPengembalian string        `json:"rencanaPengembalian" validate:"required"`
	AlatYangDipinjam    []LoanLineDTO `json:"alatYangDipinjam" validate:"required,min=1"`
	NamaOperator        string        `json:"namaOperator"`
}

// CreatePeminjamanResponse salida de POST /api/peminjaman.
type CreatePeminjamanResponse struct {
	ID              int64               `json:"id"`
	Message         string              `json:"message"`
	Status          string              `json:"status"`
	QuantityUpdates []QuantityUpdateDTO `json:"quantityUpdates"`
}

// ReturnPeminjamanRequest body para PATCH /api/peminjaman/:id/return.
type ReturnPeminjamanRequest struct {
	ReturnedDevices []ReturnLineDTO `json:"returnedDevices" validate:"required,min=1"`
}

// ReturnPeminjamanResponse salida de una devolución.
type ReturnPeminjamanResponse struct {
	Message         string              `json:"message"`
	ReturnDetails   []ReturnLineDTO     `json:"returnDetails"`
	RemainingItems  []LoanLineDTO       `json:"remainingItems"`
	Status          string              `json:"status"`
	QuantityUpdates []QuantityUpdateDTO `json:"quantityUpdates"`
}

// ReturnDetailDTO entrada del historial de devoluciones.
type ReturnDetailDTO struct {
	ReturnedAt time.Time       `json:"returnedAt"`
	Devices    []ReturnLineDTO `json:"devices"`
	Status     string          `json:"status"`
}

// PeminjamanResponse préstamo con listas ya decodificadas y la vista derivada overdue.
type PeminjamanResponse struct {
	ID                  int64             `json:"id"`
	NamaPeminjam        string            `json:"nama_peminjam"`
	TanggalPeminjaman   string            `json:"tanggal_peminjaman"`
	NamaProgram         string            `json:"nama_program"`
	RencanaPengembalian string            `json:"rencana_pengembalian"`
	NamaOperator        string            `json:"nama_operator"`
	Status              string            `json:"status"`
	Overdue             bool              `json:"overdue"`
	AlatYangDipinjam    []LoanLineDTO     `json:"alatYangDipinjam"`
	RemainingItems      []LoanLineDTO     `json:"remainingItems"`
	ReturnDetails       []ReturnDetailDTO `json:"returnDetails"`
	ReturnedAt          *time.Time        `json:"returned_at"`
	UserID              int64             `json:"user_id"`
	CreatedAt           time.Time         `json:"created_at"`
	UpdatedAt           time.Time         `json:"updated_at"`
}

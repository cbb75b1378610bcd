package dto

import "time"

// CreateKomoditasRequest body para POST /api/komoditas (alta o reposición).
type CreateKomoditasRequest struct {
	DeviceCategory string `json:"device_category" validate:"required"`
	DeviceName     string `json:"device_name" validate:"required"`
	Quantity       int    `json:"quantity" validate:"min=1"`
}

// KomoditasMutationResponse salida de POST /api/komoditas.
// AddedQuantity y NewTotal solo se informan en una reposición.
type KomoditasMutationResponse struct {
	ID            int64  `json:"id"`
	Message       string `json:"message"`
	Created       bool   `json:"created"`
	AddedQuantity *int   `json:"added_quantity,omitempty"`
	NewTotal      *int   `json:"new_total,omitempty"`
}

// KomoditasResponse ítem del catálogo.
type KomoditasResponse struct {
	ID                int64     `json:"id"`
	DeviceCategory    string    `json:"device_category"`
	DeviceName        string    `json:"device_name"`
	TotalQuantity     int       `json:"total_quantity"`
	AvailableQuantity int       `json:"available_quantity"`
	LoanedQuantity    int       `json:"loaned_quantity"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// QuantityUpdateDTO resultado por línea de una reserva o liberación de stock.
type QuantityUpdateDTO struct {
	ItemID            int64  `json:"itemId"`
	Category          string `json:"kategoriAlat"`
	Name              string `json:"namaAlat"`
	Quantity          int    `json:"quantity"`
	PreviousAvailable int    `json:"previousAvailable"`
	NewAvailable      int    `json:"newAvailable"`
	PreviousLoaned    int    `json:"previousLoaned"`
	NewLoaned         int    `json:"newLoaned"`
}

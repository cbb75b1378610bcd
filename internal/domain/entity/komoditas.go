package entity

import "time"

// Komoditas representa un ítem del catálogo de equipos con sus contadores de stock.
// Identidad de negocio: (DeviceCategory, DeviceName) sin distinguir mayúsculas.
type Komoditas struct {
	ID                int64
	DeviceCategory    string
	DeviceName        string
	CategoryKey       string // DeviceCategory normalizada (case folding)
	NameKey           string // DeviceName normalizada (case folding)
	TotalQuantity     int
	AvailableQuantity int
	LoanedQuantity    int
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// Balanced indica si se cumple total == disponible + prestado y ningún contador es negativo.
func (k *Komoditas) Balanced() bool {
	return k.AvailableQuantity >= 0 && k.LoanedQuantity >= 0 &&
		k.TotalQuantity == k.AvailableQuantity+k.LoanedQuantity
}

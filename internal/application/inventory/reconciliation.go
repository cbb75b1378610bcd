package inventory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/jhoicas/Peminjaman-api/internal/domain"
	"github.com/jhoicas/Peminjaman-api/internal/domain/entity"
	"github.com/jhoicas/Peminjaman-api/internal/domain/inventory"
	"github.com/jhoicas/Peminjaman-api/internal/domain/repository"
)

// QuantityUpdate resultado por línea de una reserva o liberación: contadores antes y después.
type QuantityUpdate struct {
	ItemID            int64
	Category          string // grafía del catálogo
	Name              string
	Quantity          int
	PreviousAvailable int
	NewAvailable      int
	PreviousLoaned    int
	NewLoaned         int
}

// Reconciler es el único escritor de los contadores de stock.
// Todas las operaciones son por lote: se bloquean las filas en orden de clave, se valida
// cada línea y solo si todas pasan se aplican los deltas. Debe llamarse con un repositorio
// atado a la transacción del caller; un error deja la tx para Rollback.
//
// No deduplica: repetir una llamada repite el efecto.
type Reconciler struct {
	now func() time.Time
}

// NewReconciler construye el servicio de conciliación.
func NewReconciler() *Reconciler {
	return &Reconciler{now: time.Now}
}

type stagedLine struct {
	category string
	name     string
	qty      int
	item     *entity.Komoditas
}

// ReserveForLoan descuenta disponible y suma a prestado por cada línea del préstamo.
// ErrItemNotFound si algún ítem no existe; ErrInsufficientQuantity si disponible < solicitado.
// Las líneas repetidas se agrupan antes de validar.
func (r *Reconciler) ReserveForLoan(ctx context.Context, items repository.KomoditasRepository, lines []entity.LoanLine) ([]QuantityUpdate, error) {
	merged := inventory.MergeLoanLines(lines)
	staged := make([]stagedLine, 0, len(merged))
	for _, l := range merged {
		if l.Quantity < 1 {
			return nil, domain.Invalid("jumlah", "debe ser mayor que 0")
		}
		if l.Quantity > domain.MaxQuantity {
			return nil, domain.Invalid("jumlah", fmt.Sprintf("no puede superar %d", domain.MaxQuantity))
		}
		staged = append(staged, stagedLine{category: l.Category, name: l.Name, qty: l.Quantity})
	}
	if err := lockInKeyOrder(ctx, items, staged); err != nil {
		return nil, err
	}

	for _, s := range staged {
		if s.item.AvailableQuantity-s.qty < 0 {
			return nil, &domain.LineError{
				Err: domain.ErrInsufficientQuantity, Category: s.item.DeviceCategory, Name: s.item.DeviceName,
				Requested: s.qty, Available: s.item.AvailableQuantity,
			}
		}
	}
	return r.apply(ctx, items, staged, -1)
}

// ReleaseFromReturn suma a disponible y descuenta de prestado por cada línea devuelta.
// ErrItemNotFound si algún ítem no existe; ErrOverReturn si prestado < devuelto.
func (r *Reconciler) ReleaseFromReturn(ctx context.Context, items repository.KomoditasRepository, lines []entity.ReturnLine) ([]QuantityUpdate, error) {
	merged := inventory.MergeReturnLines(lines)
	staged := make([]stagedLine, 0, len(merged))
	for _, l := range merged {
		if l.ReturnedCount < 1 {
			return nil, domain.Invalid("returnedCount", "debe ser mayor que 0")
		}
		staged = append(staged, stagedLine{category: l.Category, name: l.Name, qty: l.ReturnedCount})
	}
	if err := lockInKeyOrder(ctx, items, staged); err != nil {
		return nil, err
	}

	for _, s := range staged {
		if s.item.LoanedQuantity-s.qty < 0 {
			return nil, &domain.LineError{
				Err: domain.ErrOverReturn, Category: s.item.DeviceCategory, Name: s.item.DeviceName,
				Requested: s.qty, Loaned: s.item.LoanedQuantity,
			}
		}
	}
	return r.apply(ctx, items, staged, +1)
}

// lockInKeyOrder bloquea las filas del lote en orden de clave para que dos lotes concurrentes
// no se bloqueen mutuamente. Rellena staged[i].item.
func lockInKeyOrder(ctx context.Context, items repository.KomoditasRepository, staged []stagedLine) error {
	order := make([]int, len(staged))
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(a, b int) bool {
		return inventory.LineKey(staged[order[a]].category, staged[order[a]].name) <
			inventory.LineKey(staged[order[b]].category, staged[order[b]].name)
	})

	firstMissing := -1
	for _, i := range order {
		s := &staged[i]
		item, err := items.FindByKeyForUpdate(ctx, inventory.NormalizeKey(s.category), inventory.NormalizeKey(s.name))
		if err != nil {
			return err
		}
		if item == nil {
			if firstMissing == -1 || i < firstMissing {
				firstMissing = i
			}
			continue
		}
		s.item = item
	}
	if firstMissing >= 0 {
		s := staged[firstMissing]
		return &domain.LineError{Err: domain.ErrItemNotFound, Category: s.category, Name: s.name, Requested: s.qty}
	}
	return nil
}

// apply aplica los deltas ya validados. sign -1 reserva (disponible→prestado), +1 libera.
func (r *Reconciler) apply(ctx context.Context, items repository.KomoditasRepository, staged []stagedLine, sign int) ([]QuantityUpdate, error) {
	now := r.now()
	updates := make([]QuantityUpdate, 0, len(staged))
	for _, s := range staged {
		after, err := items.ApplyDelta(ctx, s.item.ID, sign*s.qty, -sign*s.qty, now)
		if err != nil {
			return nil, err
		}
		updates = append(updates, QuantityUpdate{
			ItemID:            s.item.ID,
			Category:          s.item.DeviceCategory,
			Name:              s.item.DeviceName,
			Quantity:          s.qty,
			PreviousAvailable: s.item.AvailableQuantity,
			NewAvailable:      after.AvailableQuantity,
			PreviousLoaned:    s.item.LoanedQuantity,
			NewLoaned:         after.LoanedQuantity,
		})
	}
	return updates, nil
}

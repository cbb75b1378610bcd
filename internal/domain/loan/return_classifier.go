// Package loan contiene la lógica pura del ciclo de vida de un préstamo: cálculo del conjunto
// pendiente tras una devolución y clasificación del estado resultante. No depende de persistencia.
package loan

import (
	"github.com/jhoicas/Peminjaman-api/internal/domain"
	"github.com/jhoicas/Peminjaman-api/internal/domain/entity"
	"github.com/jhoicas/Peminjaman-api/internal/domain/inventory"
)

// ReturnOutcome resultado de aplicar una devolución sobre el conjunto pendiente (baseline).
type ReturnOutcome struct {
	Returned  []entity.ReturnLine // líneas devueltas con la grafía del préstamo
	Remaining []entity.LoanLine   // nuevo conjunto pendiente, sin líneas en cero
	Status    entity.LoanStatus
}

// ApplyReturn calcula el nuevo conjunto pendiente y el estado del préstamo.
//
// Reglas:
//   - Las líneas devueltas se emparejan con el baseline por (categoría, nombre) sin distinguir mayúsculas.
//   - Una línea que no está pendiente, o que devuelve más de lo pendiente, produce ErrInvalidReturn.
//   - Líneas con cantidad 0 se ignoran; una cantidad negativa es un error de validación.
//   - Las líneas del baseline sin devolución quedan igual; las que llegan a cero desaparecen.
func ApplyReturn(baseline []entity.LoanLine, returned []entity.ReturnLine) (*ReturnOutcome, error) {
	nonZero := make([]entity.ReturnLine, 0, len(returned))
	for _, r := range returned {
		if r.ReturnedCount < 0 {
			return nil, domain.Invalid("returnedCount", "no puede ser negativo")
		}
		if r.ReturnedCount > 0 {
			nonZero = append(nonZero, r)
		}
	}
	returned = inventory.MergeReturnLines(nonZero)
	if len(returned) == 0 {
		return nil, domain.Invalid("returnedDevices", "debe incluir al menos un equipo")
	}

	pending := make(map[string]entity.LoanLine, len(baseline))
	for _, b := range inventory.MergeLoanLines(baseline) {
		pending[inventory.LineKey(b.Category, b.Name)] = b
	}

	canonical := make([]entity.ReturnLine, 0, len(returned))
	returnedByKey := make(map[string]int, len(returned))
	for _, r := range returned {
		key := inventory.LineKey(r.Category, r.Name)
		b, ok := pending[key]
		if !ok {
			return nil, &domain.LineError{
				Err: domain.ErrInvalidReturn, Category: r.Category, Name: r.Name,
				Requested: r.ReturnedCount,
			}
		}
		if r.ReturnedCount > b.Quantity {
			return nil, &domain.LineError{
				Err: domain.ErrInvalidReturn, Category: b.Category, Name: b.Name,
				Requested: r.ReturnedCount, Outstanding: b.Quantity,
			}
		}
		returnedByKey[key] = r.ReturnedCount
		canonical = append(canonical, entity.ReturnLine{
			Category: b.Category, Name: b.Name, ReturnedCount: r.ReturnedCount,
		})
	}

	remaining := make([]entity.LoanLine, 0, len(baseline))
	for _, b := range inventory.MergeLoanLines(baseline) {
		qty := b.Quantity - returnedByKey[inventory.LineKey(b.Category, b.Name)]
		if qty == 0 {
			continue
		}
		remaining = append(remaining, entity.LoanLine{Category: b.Category, Name: b.Name, Quantity: qty})
	}

	return &ReturnOutcome{
		Returned:  canonical,
		Remaining: remaining,
		Status:    Classify(baseline, canonical),
	}, nil
}

// Classify deriva el estado tras una devolución a partir del baseline y de lo devuelto.
// Es returned solo si toda línea pendiente se devuelve completa; partial_return si alguna línea
// se devuelve parcialmente o alguna línea pendiente no se toca en este evento.
func Classify(baseline []entity.LoanLine, returned []entity.ReturnLine) entity.LoanStatus {
	counts := make(map[string]int, len(returned))
	for _, r := range returned {
		counts[inventory.LineKey(r.Category, r.Name)] += r.ReturnedCount
	}

	partialLine, untouched := false, false
	for _, b := range inventory.MergeLoanLines(baseline) {
		n, ok := counts[inventory.LineKey(b.Category, b.Name)]
		switch {
		case !ok:
			untouched = true
		case n < b.Quantity:
			partialLine = true
		}
	}

	if partialLine || untouched {
		return entity.LoanStatusPartialReturn
	}
	return entity.LoanStatusReturned
}

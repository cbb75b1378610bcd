package inventory

import (
	"strings"

	"golang.org/x/text/cases"

	"github.com/jhoicas/Peminjaman-api/internal/domain/entity"
)

// NormalizeKey normaliza un nombre de categoría o de equipo para compararlo sin distinguir
// mayúsculas: recorta, colapsa espacios internos y aplica case folding Unicode.
// Un cases.Caser no es seguro entre goroutines, por eso se crea uno por llamada.
func NormalizeKey(s string) string {
	return cases.Fold().String(strings.Join(strings.Fields(s), " "))
}

// LineKey clave compuesta (categoría, nombre) normalizada.
func LineKey(category, name string) string {
	return NormalizeKey(category) + "\x1f" + NormalizeKey(name)
}

// MergeLoanLines agrupa líneas repetidas por clave sumando cantidades.
// Conserva el orden y la grafía de la primera aparición.
func MergeLoanLines(lines []entity.LoanLine) []entity.LoanLine {
	out := make([]entity.LoanLine, 0, len(lines))
	idx := make(map[string]int, len(lines))
	for _, l := range lines {
		k := LineKey(l.Category, l.Name)
		if i, ok := idx[k]; ok {
			out[i].Quantity += l.Quantity
			continue
		}
		idx[k] = len(out)
		out = append(out, entity.LoanLine{
			Category: strings.TrimSpace(l.Category),
			Name:     strings.TrimSpace(l.Name),
			Quantity: l.Quantity,
		})
	}
	return out
}

// MergeReturnLines agrupa líneas de devolución repetidas por clave sumando cantidades.
func MergeReturnLines(lines []entity.ReturnLine) []entity.ReturnLine {
	out := make([]entity.ReturnLine, 0, len(lines))
	idx := make(map[string]int, len(lines))
	for _, l := range lines {
		k := LineKey(l.Category, l.Name)
		if i, ok := idx[k]; ok {
			out[i].ReturnedCount += l.ReturnedCount
			continue
		}
		idx[k] = len(out)
		out = append(out, entity.ReturnLine{
			Category:      strings.TrimSpace(l.Category),
			Name:          strings.TrimSpace(l.Name),
			ReturnedCount: l.ReturnedCount,
		})
	}
	return out
}

package inventory_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Peminjaman-api/internal/domain/entity"
	"github.com/jhoicas/Peminjaman-api/internal/domain/inventory"
)

func TestNormalizeKey_IgnoraMayusculasYEspacios(t *testing.T) {
	assert.Equal(t, inventory.NormalizeKey("dell xps"), inventory.NormalizeKey("  Dell   XPS "))
	assert.Equal(t, inventory.LineKey("laptop", "dell xps"), inventory.LineKey("Laptop", "Dell XPS"))
	assert.NotEqual(t, inventory.LineKey("Laptop", "Dell"), inventory.LineKey("Camera", "Dell"))
}

func TestLineKey_NoColisionaEntreCampos(t *testing.T) {
	assert.NotEqual(t, inventory.LineKey("a b", "c"), inventory.LineKey("a", "b c"))
}

func TestMergeLoanLines_SumaRepetidosConservandoOrden(t *testing.T) {
	merged := inventory.MergeLoanLines([]entity.LoanLine{
		{Category: "Laptop", Name: "Dell", Quantity: 2},
		{Category: "Camera", Name: "Canon", Quantity: 1},
		{Category: "laptop", Name: "DELL", Quantity: 3},
	})
	assert.Equal(t, []entity.LoanLine{
		{Category: "Laptop", Name: "Dell", Quantity: 5},
		{Category: "Camera", Name: "Canon", Quantity: 1},
	}, merged)
}

func TestMergeReturnLines_SumaRepetidos(t *testing.T) {
	merged := inventory.MergeReturnLines([]entity.ReturnLine{
		{Category: "Laptop", Name: "Dell", ReturnedCount: 1},
		{Category: " Laptop", Name: "dell ", ReturnedCount: 1},
	})
	assert.Equal(t, []entity.ReturnLine{{Category: "Laptop", Name: "Dell", ReturnedCount: 2}}, merged)
}

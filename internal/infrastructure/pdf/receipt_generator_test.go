package pdf_test

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Peminjaman-api/internal/domain/entity"
	"github.com/jhoicas/Peminjaman-api/internal/infrastructure/pdf"
)

func TestReceiptGenerator_GeneraPDF(t *testing.T) {
	returnedAt := time.Date(2026, 10, 3, 10, 0, 0, 0, time.UTC)
	l := &entity.Peminjaman{
		ID:                12,
		BorrowerName:      "Siti",
		LoanDate:          time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC),
		ProgramName:       "Pelatihan",
		PlannedReturnDate: time.Date(2026, 10, 4, 0, 0, 0, 0, time.UTC),
		OperatorName:      "admin",
		Items: []entity.LoanLine{
			{Category: "Laptop", Name: "Dell", Quantity: 2},
			{Category: "Camera", Name: "Canon", Quantity: 1},
		},
		RemainingItems: []entity.LoanLine{{Category: "Laptop", Name: "Dell", Quantity: 1}},
		Status:         entity.LoanStatusPartialReturn,
		ReturnDetails: []entity.ReturnDetail{{
			ReturnedAt: returnedAt,
			Devices: []entity.ReturnLine{
				{Category: "Laptop", Name: "Dell", ReturnedCount: 1},
				{Category: "Camera", Name: "Canon", ReturnedCount: 1},
			},
			Status: entity.LoanStatusPartialReturn,
		}},
		ReturnedAt: &returnedAt,
	}

	out, err := pdf.NewReceiptGenerator("Peminjaman API").Render(l, time.Date(2026, 10, 6, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")), "la salida es un PDF")
}

func TestReceiptGenerator_SinHistorial(t *testing.T) {
	l := &entity.Peminjaman{
		ID:                1,
		BorrowerName:      "Budi",
		ProgramName:       "Workshop",
		Items:             []entity.LoanLine{{Category: "Projector", Name: "Epson", Quantity: 1}},
		RemainingItems:    []entity.LoanLine{{Category: "Projector", Name: "Epson", Quantity: 1}},
		Status:            entity.LoanStatusActive,
		LoanDate:          time.Now(),
		PlannedReturnDate: time.Now().AddDate(0, 0, 3),
	}
	out, err := pdf.NewReceiptGenerator("Peminjaman API").Render(l, time.Now())
	require.NoError(t, err)
	assert.NotEmpty(t, out)
}

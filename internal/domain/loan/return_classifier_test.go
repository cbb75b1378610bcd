package loan_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Peminjaman-api/internal/domain"
	"github.com/jhoicas/Peminjaman-api/internal/domain/entity"
	"github.com/jhoicas/Peminjaman-api/internal/domain/loan"
)

func TestApplyReturn_DevolucionParcialDeUnaLinea(t *testing.T) {
	baseline := []entity.LoanLine{{Category: "Laptop", Name: "Dell", Quantity: 3}}

	out, err := loan.ApplyReturn(baseline, []entity.ReturnLine{{Category: "Laptop", Name: "Dell", ReturnedCount: 1}})
	require.NoError(t, err)
	assert.Equal(t, []entity.LoanLine{{Category: "Laptop", Name: "Dell", Quantity: 2}}, out.Remaining)
	assert.Equal(t, entity.LoanStatusPartialReturn, out.Status)

	out, err = loan.ApplyReturn(out.Remaining, []entity.ReturnLine{{Category: "Laptop", Name: "Dell", ReturnedCount: 2}})
	require.NoError(t, err)
	assert.Empty(t, out.Remaining)
	assert.Equal(t, entity.LoanStatusReturned, out.Status)
}

func TestApplyReturn_LineaNoTocadaEsParcial(t *testing.T) {
	baseline := []entity.LoanLine{
		{Category: "Laptop", Name: "Dell", Quantity: 2},
		{Category: "Camera", Name: "Canon", Quantity: 1},
	}
	out, err := loan.ApplyReturn(baseline, []entity.ReturnLine{{Category: "Camera", Name: "Canon", ReturnedCount: 1}})
	require.NoError(t, err)
	assert.Equal(t, []entity.LoanLine{{Category: "Laptop", Name: "Dell", Quantity: 2}}, out.Remaining)
	assert.Equal(t, entity.LoanStatusPartialReturn, out.Status)
}

func TestApplyReturn_TodoEnUnEvento(t *testing.T) {
	baseline := []entity.LoanLine{
		{Category: "Laptop", Name: "Dell", Quantity: 2},
		{Category: "Camera", Name: "Canon", Quantity: 1},
	}
	out, err := loan.ApplyReturn(baseline, []entity.ReturnLine{
		{Category: "laptop", Name: "dell", ReturnedCount: 2},
		{Category: "Camera", Name: "Canon", ReturnedCount: 1},
	})
	require.NoError(t, err)
	assert.Empty(t, out.Remaining)
	assert.Equal(t, entity.LoanStatusReturned, out.Status)
	// La grafía devuelta es la del préstamo, no la de la solicitud.
	assert.Equal(t, "Laptop", out.Returned[0].Category)
	assert.Equal(t, "Dell", out.Returned[0].Name)
}

func TestApplyReturn_DevolverDeMasEsInvalido(t *testing.T) {
	baseline := []entity.LoanLine{{Category: "Laptop", Name: "Dell", Quantity: 2}}
	_, err := loan.ApplyReturn(baseline, []entity.ReturnLine{{Category: "Laptop", Name: "Dell", ReturnedCount: 3}})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidReturn))

	var lineErr *domain.LineError
	require.True(t, errors.As(err, &lineErr))
	assert.Equal(t, 2, lineErr.Outstanding)
	assert.Equal(t, 3, lineErr.Requested)
}

func TestApplyReturn_LineaAjenaAlPrestamoEsInvalida(t *testing.T) {
	baseline := []entity.LoanLine{{Category: "Laptop", Name: "Dell", Quantity: 2}}
	_, err := loan.ApplyReturn(baseline, []entity.ReturnLine{{Category: "Projector", Name: "Epson", ReturnedCount: 1}})
	assert.True(t, errors.Is(err, domain.ErrInvalidReturn))
}

func TestApplyReturn_SinLineasEsValidacion(t *testing.T) {
	_, err := loan.ApplyReturn([]entity.LoanLine{{Category: "Laptop", Name: "Dell", Quantity: 2}}, nil)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

func TestApplyReturn_LineasRepetidasSeSuman(t *testing.T) {
	baseline := []entity.LoanLine{{Category: "Laptop", Name: "Dell", Quantity: 3}}
	out, err := loan.ApplyReturn(baseline, []entity.ReturnLine{
		{Category: "Laptop", Name: "Dell", ReturnedCount: 1},
		{Category: "Laptop", Name: "Dell", ReturnedCount: 2},
	})
	require.NoError(t, err)
	assert.Empty(t, out.Remaining)
	assert.Equal(t, entity.LoanStatusReturned, out.Status)
}

func TestClassify(t *testing.T) {
	baseline := []entity.LoanLine{
		{Category: "Laptop", Name: "Dell", Quantity: 2},
		{Category: "Camera", Name: "Canon", Quantity: 1},
	}
	tests := []struct {
		name     string
		returned []entity.ReturnLine
		want     entity.LoanStatus
	}{
		{
			name: "todo devuelto",
			returned: []entity.ReturnLine{
				{Category: "Laptop", Name: "Dell", ReturnedCount: 2},
				{Category: "Camera", Name: "Canon", ReturnedCount: 1},
			},
			want: entity.LoanStatusReturned,
		},
		{
			name: "una línea parcial",
			returned: []entity.ReturnLine{
				{Category: "Laptop", Name: "Dell", ReturnedCount: 1},
				{Category: "Camera", Name: "Canon", ReturnedCount: 1},
			},
			want: entity.LoanStatusPartialReturn,
		},
		{
			name:     "una línea sin tocar",
			returned: []entity.ReturnLine{{Category: "Laptop", Name: "Dell", ReturnedCount: 2}},
			want:     entity.LoanStatusPartialReturn,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, loan.Classify(baseline, tt.returned))
		})
	}
}

func TestApplyReturn_CantidadCeroSeIgnoraYNegativaEsInvalida(t *testing.T) {
	baseline := []entity.LoanLine{
		{Category: "Laptop", Name: "Dell", Quantity: 2},
		{Category: "Camera", Name: "Canon", Quantity: 1},
	}
	out, err := loan.ApplyReturn(baseline, []entity.ReturnLine{
		{Category: "Laptop", Name: "Dell", ReturnedCount: 2},
		{Category: "Camera", Name: "Canon", ReturnedCount: 0},
	})
	require.NoError(t, err)
	assert.Len(t, out.Returned, 1)
	assert.Equal(t, []entity.LoanLine{{Category: "Camera", Name: "Canon", Quantity: 1}}, out.Remaining)
	assert.Equal(t, entity.LoanStatusPartialReturn, out.Status)

	_, err = loan.ApplyReturn(baseline, []entity.ReturnLine{{Category: "Laptop", Name: "Dell", ReturnedCount: -1}})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))

	_, err = loan.ApplyReturn(baseline, []entity.ReturnLine{{Category: "Laptop", Name: "Dell", ReturnedCount: 0}})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput), "solo ceros equivale a lista vacía")
}

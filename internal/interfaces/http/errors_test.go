package http

import (
	"fmt"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Peminjaman-api/internal/domain"
)

func TestMapError_NotFoundNombraElRecurso(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		message string
	}{
		{"préstamo", domain.NotFound("préstamo", 7), "préstamo 7 no encontrado"},
		{"komoditas envuelto", fmt.Errorf("apply delta: %w", domain.NotFound("komoditas", 3)), "komoditas 3 no encontrado"},
		{"sin recurso", domain.ErrNotFound, "recurso no encontrado"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, resp := mapError(tt.err)
			assert.Equal(t, fiber.StatusNotFound, status)
			assert.Equal(t, "NOT_FOUND", resp.Code)
			assert.Equal(t, tt.message, resp.Message)
		})
	}
}

func TestMapError_CantidadSobreElTopeEs400(t *testing.T) {
	status, resp := mapError(domain.Invalid("quantity", "no puede superar 2147483647"))
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, "VALIDATION", resp.Code)
}

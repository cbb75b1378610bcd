package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Peminjaman-api/internal/application/dto"
	"github.com/jhoicas/Peminjaman-api/internal/application/loan"
	"github.com/jhoicas/Peminjaman-api/internal/domain"
)

// HeaderIdempotencyKey header opcional para deduplicar reintentos de escritura.
const HeaderIdempotencyKey = "Idempotency-Key"

// PeminjamanHandler maneja préstamos y devoluciones (protegido).
type PeminjamanHandler struct {
	uc      *loan.LoanUseCase
	receipt *loan.ReceiptUseCase
}

// NewPeminjamanHandler construye el handler.
func NewPeminjamanHandler(uc *loan.LoanUseCase, receipt *loan.ReceiptUseCase) *PeminjamanHandler {
	return &PeminjamanHandler{uc: uc, receipt: receipt}
}

// Create godoc
// @Summary      Registrar préstamo
// @Description  Reserva el stock de todas las líneas o de ninguna y guarda el préstamo en estado active.
// @Tags         peminjaman
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        Idempotency-Key  header  string                        false  "clave para deduplicar reintentos"
// @Param        body             body    dto.CreatePeminjamanRequest  true   "datos del préstamo"
// @Success      201  {object}  dto.CreatePeminjamanResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/peminjaman [post]
func (h *PeminjamanHandler) Create(c *fiber.Ctx) error {
	var in dto.CreatePeminjamanRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.NewError("INVALID_BODY", "cuerpo inválido"))
	}
	out, err := h.uc.CreateLoan(c.Context(), actorFrom(c), c.Get(HeaderIdempotencyKey), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar préstamos
// @Description  Del más reciente al más antiguo, con líneas, pendientes, historial y overdue.
// @Tags         peminjaman
// @Security     Bearer
// @Produce      json
// @Param        status  query  string  false  "active | partial_return | returned"
// @Success      200  {array}   dto.PeminjamanResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/peminjaman [get]
func (h *PeminjamanHandler) List(c *fiber.Ctx) error {
	list, err := h.uc.List(c.Context(), c.Query("status"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(list)
}

// GetByID godoc
// @Summary      Obtener préstamo
// @Tags         peminjaman
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID del préstamo"
// @Success      200  {object}  dto.PeminjamanResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/peminjaman/{id} [get]
func (h *PeminjamanHandler) GetByID(c *fiber.Ctx) error {
	id, err := loanID(c)
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.GetByID(c.Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Return godoc
// @Summary      Registrar devolución
// @Description  Devolución total o parcial. El estado pasa a returned solo si no queda nada pendiente.
// @Tags         peminjaman
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id               path    int                           true   "ID del préstamo"
// @Param        Idempotency-Key  header  string                        false  "clave para deduplicar reintentos"
// @Param        body             body    dto.ReturnPeminjamanRequest  true   "returnedDevices"
// @Success      200  {object}  dto.ReturnPeminjamanResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/peminjaman/{id}/return [patch]
func (h *PeminjamanHandler) Return(c *fiber.Ctx) error {
	id, err := loanID(c)
	if err != nil {
		return writeError(c, err)
	}
	var in dto.ReturnPeminjamanRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.NewError("INVALID_BODY", "cuerpo inválido"))
	}
	out, err := h.uc.ProcessReturn(c.Context(), actorFrom(c), id, c.Get(HeaderIdempotencyKey), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Receipt godoc
// @Summary      Comprobante PDF del préstamo
// @Tags         peminjaman
// @Security     Bearer
// @Produce      application/pdf
// @Param        id   path  int  true  "ID del préstamo"
// @Success      200  {file}    binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/peminjaman/{id}/receipt [get]
func (h *PeminjamanHandler) Receipt(c *fiber.Ctx) error {
	id, err := loanID(c)
	if err != nil {
		return writeError(c, err)
	}
	pdf, filename, err := h.receipt.Receipt(c.Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`inline; filename="%s"`, filename))
	return c.Send(pdf)
}

func loanID(c *fiber.Ctx) (int64, error) {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return 0, domain.Invalid("id", "debe ser un entero positivo")
	}
	return int64(id), nil
}

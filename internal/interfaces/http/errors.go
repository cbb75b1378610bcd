package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Peminjaman-api/internal/application/dto"
	"github.com/jhoicas/Peminjaman-api/internal/application/loan"
	"github.com/jhoicas/Peminjaman-api/internal/domain"
)

// writeError traduce un error de dominio a status HTTP + ErrorResponse.
// Los fallos de línea y de campo incluyen details para que el cliente sepa qué corregir.
func writeError(c *fiber.Ctx, err error) error {
	status, resp := mapError(err)
	return c.Status(status).JSON(resp)
}

func mapError(err error) (int, dto.ErrorResponse) {
	var (
		lineErr     *domain.LineError
		fieldErr    *domain.ValidationError
		notFoundErr *domain.NotFoundError
	)
	switch {
	case errors.As(err, &fieldErr):
		resp := dto.NewError("VALIDATION", fieldErr.Field+": "+fieldErr.Message)
		resp.Details = dto.FieldErrorDetail{Field: fieldErr.Field, Message: fieldErr.Message}
		return fiber.StatusBadRequest, resp
	case errors.As(err, &lineErr):
		resp := dto.NewError(lineCode(lineErr.Err), err.Error())
		resp.Details = lineDetail(lineErr)
		return fiber.StatusBadRequest, resp
	case errors.Is(err, domain.ErrInvalidInput):
		return fiber.StatusBadRequest, dto.NewError("VALIDATION", err.Error())
	case errors.Is(err, domain.ErrInvalidReturn):
		return fiber.StatusBadRequest, dto.NewError("INVALID_RETURN", err.Error())
	case errors.Is(err, domain.ErrNegativeQuantity):
		return fiber.StatusBadRequest, dto.NewError("NEGATIVE_QUANTITY", err.Error())
	case errors.As(err, &notFoundErr):
		return fiber.StatusNotFound, dto.NewError("NOT_FOUND", notFoundErr.Error())
	case errors.Is(err, domain.ErrNotFound):
		return fiber.StatusNotFound, dto.NewError("NOT_FOUND", domain.ErrNotFound.Error())
	case errors.Is(err, domain.ErrDuplicateRequest):
		return fiber.StatusConflict, dto.NewError("DUPLICATE_REQUEST", "la solicitud con esta Idempotency-Key ya fue procesada")
	case errors.Is(err, domain.ErrDuplicate):
		return fiber.StatusConflict, dto.NewError("DUPLICATE", err.Error())
	case errors.Is(err, domain.ErrUserNotFound), errors.Is(err, domain.ErrUnauthorized):
		return fiber.StatusUnauthorized, dto.NewError("UNAUTHORIZED", "credenciales inválidas")
	default:
		return fiber.StatusInternalServerError, dto.NewError("INTERNAL", "error interno del servidor")
	}
}

func lineCode(err error) string {
	switch {
	case errors.Is(err, domain.ErrItemNotFound):
		return "ITEM_NOT_FOUND"
	case errors.Is(err, domain.ErrInsufficientQuantity):
		return "INSUFFICIENT_QUANTITY"
	case errors.Is(err, domain.ErrOverReturn):
		return "OVER_RETURN"
	case errors.Is(err, domain.ErrInvalidReturn):
		return "INVALID_RETURN"
	default:
		return "VALIDATION"
	}
}

func lineDetail(e *domain.LineError) dto.LineErrorDetail {
	d := dto.LineErrorDetail{
		Reason:    loan.RejectionReason(e),
		Category:  e.Category,
		Name:      e.Name,
		Requested: e.Requested,
	}
	switch {
	case errors.Is(e.Err, domain.ErrInsufficientQuantity):
		d.Available = &e.Available
	case errors.Is(e.Err, domain.ErrOverReturn):
		d.Loaned = &e.Loaned
	case errors.Is(e.Err, domain.ErrInvalidReturn):
		d.Outstanding = &e.Outstanding
	}
	return d
}

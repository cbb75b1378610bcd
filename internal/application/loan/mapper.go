package loan

import (
	"time"

	"github.com/jhoicas/Peminjaman-api/internal/application/dto"
	"github.com/jhoicas/Peminjaman-api/internal/domain/entity"
)

// ToPeminjamanResponse mapea un préstamo al DTO de salida calculando overdue respecto a now.
func ToPeminjamanResponse(l *entity.Peminjaman, now time.Time) dto.PeminjamanResponse {
	details := make([]dto.ReturnDetailDTO, 0, len(l.ReturnDetails))
	for _, d := range l.ReturnDetails {
		details = append(details, dto.ReturnDetailDTO{
			ReturnedAt: d.ReturnedAt,
			Devices:    toReturnLineDTOs(d.Devices),
			Status:     string(d.Status),
		})
	}
	return dto.PeminjamanResponse{
		ID:                  l.ID,
		NamaPeminjam:        l.BorrowerName,
		TanggalPeminjaman:   l.LoanDate.Format(DateLayout),
		NamaProgram:         l.ProgramName,
		RencanaPengembalian: l.PlannedReturnDate.Format(DateLayout),
		NamaOperator:        l.OperatorName,
		Status:              string(l.Status),
		Overdue:             l.Overdue(now),
		AlatYangDipinjam:    toLoanLineDTOs(l.Items),
		RemainingItems:      toLoanLineDTOs(l.RemainingItems),
		ReturnDetails:       details,
		ReturnedAt:          l.ReturnedAt,
		UserID:              l.UserID,
		CreatedAt:           l.CreatedAt,
		UpdatedAt:           l.UpdatedAt,
	}
}

func toLoanLineDTOs(lines []entity.LoanLine) []dto.LoanLineDTO {
	out := make([]dto.LoanLineDTO, 0, len(lines))
	for _, l := range lines {
		out = append(out, dto.LoanLineDTO{Category: l.Category, Name: l.Name, Quantity: l.Quantity})
	}
	return out
}

func toReturnLineDTOs(lines []entity.ReturnLine) []dto.ReturnLineDTO {
	out := make([]dto.ReturnLineDTO, 0, len(lines))
	for _, l := range lines {
		out = append(out, dto.ReturnLineDTO{Category: l.Category, Name: l.Name, ReturnedCount: l.ReturnedCount})
	}
	return out
}

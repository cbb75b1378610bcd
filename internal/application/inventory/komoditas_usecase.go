package inventory

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/Peminjaman-api/internal/application/dto"
	"github.com/jhoicas/Peminjaman-api/internal/domain"
	"github.com/jhoicas/Peminjaman-api/internal/domain/entity"
	"github.com/jhoicas/Peminjaman-api/internal/domain/inventory"
	"github.com/jhoicas/Peminjaman-api/internal/domain/repository"
)

// KomoditasUseCase casos de uso del catálogo: alta/reposición y listado.
type KomoditasUseCase struct {
	txRunner TxRunner
	repo     repository.KomoditasRepository
	now      func() time.Time
}

// NewKomoditasUseCase construye el caso de uso.
func NewKomoditasUseCase(txRunner TxRunner, repo repository.KomoditasRepository) *KomoditasUseCase {
	return &KomoditasUseCase{txRunner: txRunner, repo: repo, now: time.Now}
}

// CreateOrRestock repone un ítem existente (misma categoría y nombre sin distinguir mayúsculas)
// o crea uno nuevo con total = disponible = quantity.
func (uc *KomoditasUseCase) CreateOrRestock(ctx context.Context, in dto.CreateKomoditasRequest) (*dto.KomoditasMutationResponse, error) {
	category := strings.TrimSpace(in.DeviceCategory)
	name := strings.TrimSpace(in.DeviceName)
	if category == "" {
		return nil, domain.Invalid("device_category", "es obligatorio")
	}
	if name == "" {
		return nil, domain.Invalid("device_name", "es obligatorio")
	}
	if in.Quantity < 1 {
		return nil, domain.Invalid("quantity", "debe ser mayor que 0")
	}
	if in.Quantity > domain.MaxQuantity {
		return nil, domain.Invalid("quantity", fmt.Sprintf("no puede superar %d", domain.MaxQuantity))
	}

	var out *dto.KomoditasMutationResponse
	run := func() error {
		return uc.txRunner.Run(ctx, func(items repository.KomoditasRepository) error {
			now := uc.now()
			existing, err := items.FindByKeyForUpdate(ctx, inventory.NormalizeKey(category), inventory.NormalizeKey(name))
			if err != nil {
				return err
			}
			if existing != nil {
				if existing.TotalQuantity > domain.MaxQuantity-in.Quantity {
					return domain.Invalid("quantity", fmt.Sprintf("el total no puede superar %d", domain.MaxQuantity))
				}
				updated, err := items.Restock(ctx, existing.ID, in.Quantity, now)
				if err != nil {
					return err
				}
				added, total := in.Quantity, updated.TotalQuantity
				out = &dto.KomoditasMutationResponse{
					ID:            updated.ID,
					Message:       "Stock actualizado correctamente",
					AddedQuantity: &added,
					NewTotal:      &total,
				}
				return nil
			}
			item := &entity.Komoditas{
				DeviceCategory:    category,
				DeviceName:        name,
				CategoryKey:       inventory.NormalizeKey(category),
				NameKey:           inventory.NormalizeKey(name),
				TotalQuantity:     in.Quantity,
				AvailableQuantity: in.Quantity,
				CreatedAt:         now,
				UpdatedAt:         now,
			}
			if err := items.Create(ctx, item); err != nil {
				return err
			}
			out = &dto.KomoditasMutationResponse{ID: item.ID, Message: "Komoditas creada correctamente", Created: true}
			return nil
		})
	}

	err := run()
	// Otra transacción creó el mismo ítem entre la búsqueda y el insert: se reintenta como reposición.
	if errors.Is(err, domain.ErrDuplicate) {
		err = run()
	}
	if err != nil {
		return nil, err
	}
	return out, nil
}

// List lista el catálogo filtrando por subcadena de categoría y nombre.
func (uc *KomoditasUseCase) List(ctx context.Context, category, name string) ([]dto.KomoditasResponse, error) {
	list, err := uc.repo.List(ctx, repository.KomoditasFilter{
		Category: inventory.NormalizeKey(category),
		Name:     inventory.NormalizeKey(name),
	})
	if err != nil {
		return nil, err
	}
	out := make([]dto.KomoditasResponse, 0, len(list))
	for _, k := range list {
		out = append(out, ToKomoditasResponse(k))
	}
	return out, nil
}

// ToKomoditasResponse mapea la entidad al DTO de salida.
func ToKomoditasResponse(k *entity.Komoditas) dto.KomoditasResponse {
	return dto.KomoditasResponse{
		ID:                k.ID,
		DeviceCategory:    k.DeviceCategory,
		DeviceName:        k.DeviceName,
		TotalQuantity:     k.TotalQuantity,
		AvailableQuantity: k.AvailableQuantity,
		LoanedQuantity:    k.LoanedQuantity,
		CreatedAt:         k.CreatedAt,
		UpdatedAt:         k.UpdatedAt,
	}
}

// ToQuantityUpdateDTOs mapea los resultados de conciliación al DTO de salida.
func ToQuantityUpdateDTOs(updates []QuantityUpdate) []dto.QuantityUpdateDTO {
	out := make([]dto.QuantityUpdateDTO, 0, len(updates))
	for _, u := range updates {
		out = append(out, dto.QuantityUpdateDTO{
			ItemID:            u.ItemID,
			Category:          u.Category,
			Name:              u.Name,
			Quantity:          u.Quantity,
			PreviousAvailable: u.PreviousAvailable,
			NewAvailable:      u.NewAvailable,
			PreviousLoaned:    u.PreviousLoaned,
			NewLoaned:         u.NewLoaned,
		})
	}
	return out
}

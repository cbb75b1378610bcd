package loan

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/jhoicas/Peminjaman-api/internal/application/dto"
	"github.com/jhoicas/Peminjaman-api/internal/application/inventory"
	"github.com/jhoicas/Peminjaman-api/internal/domain"
	"github.com/jhoicas/Peminjaman-api/internal/domain/entity"
	"github.com/jhoicas/Peminjaman-api/internal/domain/loan"
	"github.com/jhoicas/Peminjaman-api/internal/domain/repository"
)

// LoanUseCase motor del ciclo de vida de préstamos: creación con reserva de stock y
// devoluciones totales o parciales. Cada operación es una única transacción sobre ambos stores.
type LoanUseCase struct {
	txRunner   TxRunner
	loans      repository.PeminjamanRepository
	reconciler *inventory.Reconciler
	idem       IdempotencyStore
	idemTTL    time.Duration
	metrics    Recorder
	log        zerolog.Logger
	now        func() time.Time
}

// NewLoanUseCase construye el caso de uso. idem y metrics pueden ser nil.
func NewLoanUseCase(
	txRunner TxRunner,
	loans repository.PeminjamanRepository,
	reconciler *inventory.Reconciler,
	idem IdempotencyStore,
	idemTTL time.Duration,
	metrics Recorder,
	log zerolog.Logger,
) *LoanUseCase {
	if metrics == nil {
		metrics = noopRecorder{}
	}
	return &LoanUseCase{
		txRunner:   txRunner,
		loans:      loans,
		reconciler: reconciler,
		idem:       idem,
		idemTTL:    idemTTL,
		metrics:    metrics,
		log:        log,
		now:        time.Now,
	}
}

// CreateLoan valida la solicitud, reserva el stock de todas las líneas y persiste el préstamo
// en estado active. Si la reserva o el insert fallan no queda ningún contador modificado.
func (uc *LoanUseCase) CreateLoan(ctx context.Context, actor Actor, idempotencyKey string, in dto.CreatePeminjamanRequest) (*dto.CreatePeminjamanResponse, error) {
	now := uc.now()
	draft, err := uc.validateCreate(actor, in, now)
	if err != nil {
		uc.reject("create", err)
		return nil, err
	}

	release, err := uc.acquire(ctx, "peminjaman:create:"+idempotencyKey, idempotencyKey != "")
	if err != nil {
		uc.reject("create", err)
		return nil, err
	}

	var updates []inventory.QuantityUpdate
	err = uc.txRunner.RunLoan(ctx, func(items repository.KomoditasRepository, loans repository.PeminjamanRepository) error {
		var err error
		updates, err = uc.reconciler.ReserveForLoan(ctx, items, draft.Items)
		if err != nil {
			return err
		}
		// Las líneas se guardan con la grafía del catálogo.
		canonical := make([]entity.LoanLine, 0, len(updates))
		for _, u := range updates {
			canonical = append(canonical, entity.LoanLine{Category: u.Category, Name: u.Name, Quantity: u.Quantity})
		}
		draft.Items = canonical
		draft.RemainingItems = append([]entity.LoanLine(nil), canonical...)
		return loans.Create(ctx, draft)
	})
	if err != nil {
		release()
		uc.reject("create", err)
		return nil, err
	}

	uc.metrics.LoanCreated()
	uc.log.Info().
		Int64("loan_id", draft.ID).
		Int64("user_id", actor.UserID).
		Str("borrower", draft.BorrowerName).
		Int("lines", len(draft.Items)).
		Msg("préstamo registrado")

	return &dto.CreatePeminjamanResponse{
		ID:              draft.ID,
		Message:         "Préstamo registrado correctamente",
		Status:          string(draft.Status),
		QuantityUpdates: inventory.ToQuantityUpdateDTOs(updates),
	}, nil
}

func (uc *LoanUseCase) validateCreate(actor Actor, in dto.CreatePeminjamanRequest, now time.Time) (*entity.Peminjaman, error) {
	borrower := strings.TrimSpace(in.NamaPeminjam)
	if borrower == "" {
		return nil, domain.Invalid("namaPeminjam", "es obligatorio")
	}
	program := strings.TrimSpace(in.NamaProgram)
	if program == "" {
		return nil, domain.Invalid("namaProgram", "es obligatorio")
	}
	planned, err := parseDate("rencanaPengembalian", in.RencanaPengembalian)
	if err != nil {
		return nil, err
	}
	loanDate := dateOnly(now)
	if strings.TrimSpace(in.TanggalPeminjaman) != "" {
		if loanDate, err = parseDate("tanggalPeminjaman", in.TanggalPeminjaman); err != nil {
			return nil, err
		}
	}
	if planned.Before(loanDate) {
		return nil, domain.Invalid("rencanaPengembalian", "no puede ser anterior a la fecha de préstamo")
	}
	if len(in.AlatYangDipinjam) == 0 {
		return nil, domain.Invalid("alatYangDipinjam", "debe incluir al menos un equipo")
	}
	lines := make([]entity.LoanLine, 0, len(in.AlatYangDipinjam))
	for i, l := range in.AlatYangDipinjam {
		switch {
		case strings.TrimSpace(l.Category) == "":
			return nil, domain.Invalid(fmt.Sprintf("alatYangDipinjam[%d].kategoriAlat", i), "es obligatorio")
		case strings.TrimSpace(l.Name) == "":
			return nil, domain.Invalid(fmt.Sprintf("alatYangDipinjam[%d].namaAlat", i), "es obligatorio")
		case l.Quantity < 1:
			return nil, domain.Invalid(fmt.Sprintf("alatYangDipinjam[%d].jumlah", i), "debe ser mayor que 0")
		case l.Quantity > domain.MaxQuantity:
			return nil, domain.Invalid(fmt.Sprintf("alatYangDipinjam[%d].jumlah", i), fmt.Sprintf("no puede superar %d", domain.MaxQuantity))
		}
		lines = append(lines, entity.LoanLine{Category: l.Category, Name: l.Name, Quantity: l.Quantity})
	}
	operator := strings.TrimSpace(in.NamaOperator)
	if operator == "" {
		operator = actor.Username
	}
	return &entity.Peminjaman{
		BorrowerName:      borrower,
		LoanDate:          loanDate,
		ProgramName:       program,
		PlannedReturnDate: planned,
		OperatorName:      operator,
		Items:             lines,
		Status:            entity.LoanStatusActive,
		UserID:            actor.UserID,
		CreatedAt:         now,
		UpdatedAt:         now,
	}, nil
}

// ProcessReturn aplica una devolución total o parcial: calcula el nuevo conjunto pendiente,
// libera el stock devuelto y registra el evento en el historial, todo en una transacción.
// Un préstamo en estado returned no admite más devoluciones.
func (uc *LoanUseCase) ProcessReturn(ctx context.Context, actor Actor, id int64, idempotencyKey string, in dto.ReturnPeminjamanRequest) (*dto.ReturnPeminjamanResponse, error) {
	if len(in.ReturnedDevices) == 0 {
		err := domain.Invalid("returnedDevices", "debe incluir al menos un equipo")
		uc.reject("return", err)
		return nil, err
	}
	returned := make([]entity.ReturnLine, 0, len(in.ReturnedDevices))
	for _, r := range in.ReturnedDevices {
		returned = append(returned, entity.ReturnLine{Category: r.Category, Name: r.Name, ReturnedCount: r.ReturnedCount})
	}

	release, err := uc.acquire(ctx, fmt.Sprintf("peminjaman:return:%d:%s", id, idempotencyKey), idempotencyKey != "")
	if err != nil {
		uc.reject("return", err)
		return nil, err
	}

	var (
		outcome *loan.ReturnOutcome
		updates []inventory.QuantityUpdate
	)
	err = uc.txRunner.RunLoan(ctx, func(items repository.KomoditasRepository, loans repository.PeminjamanRepository) error {
		current, err := loans.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if current == nil {
			return domain.NotFound("préstamo", id)
		}
		if current.Status == entity.LoanStatusReturned {
			return fmt.Errorf("%w: el préstamo %d ya fue devuelto", domain.ErrInvalidReturn, id)
		}
		outcome, err = loan.ApplyReturn(current.Baseline(), returned)
		if err != nil {
			return err
		}
		updates, err = uc.reconciler.ReleaseFromReturn(ctx, items, outcome.Returned)
		if err != nil {
			return err
		}
		now := uc.now()
		detail := entity.ReturnDetail{
			ReturnedAt: now,
			Devices:    outcome.Returned,
			Status:     outcome.Status,
			UserID:     actor.UserID,
		}
		return loans.UpdateReturn(ctx, id, outcome.Remaining, outcome.Status, detail, now)
	})
	if err != nil {
		release()
		uc.reject("return", err)
		return nil, err
	}

	uc.metrics.ReturnProcessed(outcome.Status)
	uc.log.Info().
		Int64("loan_id", id).
		Int64("user_id", actor.UserID).
		Str("status", string(outcome.Status)).
		Int("returned_lines", len(outcome.Returned)).
		Int("remaining_lines", len(outcome.Remaining)).
		Msg("devolución registrada")

	msg := "Devolución parcial registrada"
	if outcome.Status == entity.LoanStatusReturned {
		msg = "Todos los equipos fueron devueltos"
	}
	return &dto.ReturnPeminjamanResponse{
		Message:         msg,
		ReturnDetails:   toReturnLineDTOs(outcome.Returned),
		RemainingItems:  toLoanLineDTOs(outcome.Remaining),
		Status:          string(outcome.Status),
		QuantityUpdates: inventory.ToQuantityUpdateDTOs(updates),
	}, nil
}

// List lista préstamos del más reciente al más antiguo, opcionalmente filtrados por estado.
func (uc *LoanUseCase) List(ctx context.Context, status string) ([]dto.PeminjamanResponse, error) {
	filter := repository.PeminjamanFilter{Status: entity.LoanStatus(strings.TrimSpace(status))}
	if filter.Status != "" && !filter.Status.Valid() {
		return nil, domain.Invalid("status", "debe ser active, partial_return o returned")
	}
	list, err := uc.loans.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	now := uc.now()
	out := make([]dto.PeminjamanResponse, 0, len(list))
	for _, l := range list {
		out = append(out, ToPeminjamanResponse(l, now))
	}
	return out, nil
}

// GetByID devuelve un préstamo o ErrNotFound.
func (uc *LoanUseCase) GetByID(ctx context.Context, id int64) (*dto.PeminjamanResponse, error) {
	l, err := uc.loans.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if l == nil {
		return nil, domain.NotFound("préstamo", id)
	}
	resp := ToPeminjamanResponse(l, uc.now())
	return &resp, nil
}

// acquire registra la clave de idempotencia si enabled; devuelve una función que la libera
// para permitir reintentos cuando la operación falla.
func (uc *LoanUseCase) acquire(ctx context.Context, key string, enabled bool) (func(), error) {
	if !enabled || uc.idem == nil {
		return func() {}, nil
	}
	ok, err := uc.idem.Acquire(ctx, key, uc.idemTTL)
	if err != nil {
		return nil, fmt.Errorf("idempotency acquire: %w: %w", domain.ErrStorage, err)
	}
	if !ok {
		return nil, domain.ErrDuplicateRequest
	}
	return func() {
		if err := uc.idem.Release(context.WithoutCancel(ctx), key); err != nil {
			uc.log.Warn().Err(err).Str("key", key).Msg("no se pudo liberar la clave de idempotencia")
		}
	}, nil
}

func (uc *LoanUseCase) reject(operation string, err error) {
	reason := RejectionReason(err)
	uc.metrics.OperationRejected(operation, reason)
	ev := uc.log.Warn()
	if reason == "storage" {
		ev = uc.log.Error()
	}
	var lineErr *domain.LineError
	if errors.As(err, &lineErr) {
		ev = ev.Str("kategori", lineErr.Category).Str("nama", lineErr.Name).Int("requested", lineErr.Requested)
	}
	ev.Err(err).Str("operation", operation).Str("reason", reason).Msg("operación rechazada")
}

// RejectionReason clasifica un error de dominio en una etiqueta estable para métricas y logs.
func RejectionReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return "validation"
	case errors.Is(err, domain.ErrItemNotFound):
		return "item_not_found"
	case errors.Is(err, domain.ErrInsufficientQuantity):
		return "insufficient_quantity"
	case errors.Is(err, domain.ErrOverReturn):
		return "over_return"
	case errors.Is(err, domain.ErrInvalidReturn):
		return "invalid_return"
	case errors.Is(err, domain.ErrNotFound):
		return "not_found"
	case errors.Is(err, domain.ErrDuplicateRequest):
		return "duplicate_request"
	case errors.Is(err, domain.ErrNegativeQuantity):
		return "negative_quantity"
	default:
		return "storage"
	}
}

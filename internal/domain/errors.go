package domain

import (
	"errors"
	"fmt"
	"math"
)

// MaxQuantity tope de cualquier contador o cantidad de línea; las columnas son INTEGER de 32 bits.
const MaxQuantity = math.MaxInt32

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound             = errors.New("recurso no encontrado")
	ErrUserNotFound         = errors.New("usuario no encontrado")
	ErrInvalidInput         = errors.New("entrada inválida")
	ErrDuplicate            = errors.New("recurso duplicado")
	ErrUnauthorized         = errors.New("no autorizado")
	ErrConflict             = errors.New("conflicto con el estado actual")
	ErrItemNotFound         = errors.New("komoditas no encontrada")
	ErrInsufficientQuantity = errors.New("cantidad disponible insuficiente")
	ErrNegativeQuantity     = errors.New("el contador quedaría negativo")
	ErrOverReturn           = errors.New("devolución mayor a lo prestado")
	ErrInvalidReturn        = errors.New("devolución inválida")
	ErrDuplicateRequest     = errors.New("solicitud duplicada")
	ErrStorage              = errors.New("fallo de almacenamiento")
)

// LineError detalla el fallo de una línea concreta (categoría + nombre) de un préstamo o devolución.
// Envuelve uno de los errores de dominio, por lo que errors.Is sigue funcionando.
type LineError struct {
	Err         error
	Category    string
	Name        string
	Requested   int
	Available   int
	Loaned      int
	Outstanding int
}

func (e *LineError) Error() string {
	switch {
	case errors.Is(e.Err, ErrInsufficientQuantity):
		return fmt.Sprintf("%s: %s (%s) disponible %d, solicitado %d", e.Err, e.Name, e.Category, e.Available, e.Requested)
	case errors.Is(e.Err, ErrOverReturn):
		return fmt.Sprintf("%s: %s (%s) prestado %d, devuelto %d", e.Err, e.Name, e.Category, e.Loaned, e.Requested)
	case errors.Is(e.Err, ErrInvalidReturn):
		return fmt.Sprintf("%s: %s (%s) pendiente %d, devuelto %d", e.Err, e.Name, e.Category, e.Outstanding, e.Requested)
	default:
		return fmt.Sprintf("%s: %s (%s)", e.Err, e.Name, e.Category)
	}
}

func (e *LineError) Unwrap() error { return e.Err }

// NewLineError construye un LineError para la línea indicada.
func NewLineError(err error, category, name string) *LineError {
	return &LineError{Err: err, Category: category, Name: name}
}

// NotFoundError indica qué recurso no existe; envuelve ErrNotFound.
type NotFoundError struct {
	Resource string
	ID       int64
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %d no encontrado", e.Resource, e.ID)
}

func (e *NotFoundError) Unwrap() error { return ErrNotFound }

// NotFound construye un NotFoundError.
func NotFound(resource string, id int64) error {
	return &NotFoundError{Resource: resource, ID: id}
}

// ValidationError describe un campo de entrada inválido; envuelve ErrInvalidInput.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s: %s", ErrInvalidInput, e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error { return ErrInvalidInput }

// Invalid construye un ValidationError.
func Invalid(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

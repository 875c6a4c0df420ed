package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrDuplicate         = errors.New("recurso duplicado")
	ErrConflict          = errors.New("conflicto con el estado actual")
	ErrInsufficientStock = errors.New("stock insuficiente")
	ErrAlreadyDispensed  = errors.New("prescripción ya dispensada")
)

// ValidationError lista los campos requeridos que faltan o son inválidos.
// errors.Is(err, ErrInvalidInput) == true.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return "campos inválidos o faltantes: " + strings.Join(e.Fields, ", ")
}

func (e *ValidationError) Is(target error) bool { return target == ErrInvalidInput }

// NewValidationError construye el error con los campos ofensores.
func NewValidationError(fields ...string) *ValidationError {
	return &ValidationError{Fields: fields}
}

// StockShortageError identifica la línea de medicamento sin stock suficiente.
// errors.Is(err, ErrInsufficientStock) == true.
type StockShortageError struct {
	ProductName string
	Batch       string
	Available   int64
	Requested   int64
}

func (e *StockShortageError) Error() string {
	return fmt.Sprintf("stock insuficiente para %s lote %s: disponible %d, solicitado %d",
		e.ProductName, e.Batch, e.Available, e.Requested)
}

func (e *StockShortageError) Is(target error) bool { return target == ErrInsufficientStock }

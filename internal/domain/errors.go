package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound     = errors.New("recurso no encontrado")
	ErrInvalidInput = errors.New("entrada inválida")
	ErrConflict     = errors.New("conflicto con el estado actual")
)

// InvalidProductError referencia a producto que no es un entero o no existe.
// El mensaje es parte del contrato HTTP: "Invalid product id: <valor>".
type InvalidProductError struct {
	Value string
}

func (e *InvalidProductError) Error() string {
	return fmt.Sprintf("Invalid product id: %s", e.Value)
}

// Is permite errors.Is(err, ErrInvalidInput).
func (e *InvalidProductError) Is(target error) bool {
	return target == ErrInvalidInput
}

package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound            = errors.New("recurso no encontrado")
	ErrDuplicate           = errors.New("recurso duplicado")
	ErrInvalidOperation    = errors.New("operación inválida")
	ErrConcurrencyConflict = errors.New("conflicto de concurrencia")
	ErrInvalidInput        = errors.New("entrada inválida")
	ErrUnauthorized        = errors.New("no autorizado")
	ErrForbidden           = errors.New("acceso denegado")
)

// NotFoundError referencia (id o código) inexistente.
type NotFoundError struct {
	EntityType string
	Key        string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s no encontrado: %s", e.EntityType, e.Key)
}

// Is permite errors.Is(err, ErrNotFound).
func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// NewNotFound construye un NotFoundError.
func NewNotFound(entityType, key string) error {
	return &NotFoundError{EntityType: entityType, Key: key}
}

// DuplicateResourceError violación de unicidad en una creación.
type DuplicateResourceError struct {
	EntityType string
	Field      string
	Value      string
}

func (e *DuplicateResourceError) Error() string {
	return fmt.Sprintf("%s duplicado: %s=%s", e.EntityType, e.Field, e.Value)
}

func (e *DuplicateResourceError) Is(target error) bool { return target == ErrDuplicate }

// NewDuplicate construye un DuplicateResourceError.
func NewDuplicate(entityType, field, value string) error {
	return &DuplicateResourceError{EntityType: entityType, Field: field, Value: value}
}

// InvalidOperationError violación de una regla de negocio.
type InvalidOperationError struct {
	Message string
}

func (e *InvalidOperationError) Error() string { return e.Message }

func (e *InvalidOperationError) Is(target error) bool { return target == ErrInvalidOperation }

// NewInvalidOperation construye un InvalidOperationError.
func NewInvalidOperation(format string, args ...any) error {
	return &InvalidOperationError{Message: fmt.Sprintf(format, args...)}
}

// ConcurrencyConflictError escritura sobre una versión obsoleta; el llamador debe releer y reintentar.
type ConcurrencyConflictError struct {
	EntityType string
	ID         string
	Version    int64
}

func (e *ConcurrencyConflictError) Error() string {
	return fmt.Sprintf("%s %s: la versión %d ya no es la vigente", e.EntityType, e.ID, e.Version)
}

func (e *ConcurrencyConflictError) Is(target error) bool { return target == ErrConcurrencyConflict }

// NewConcurrencyConflict construye un ConcurrencyConflictError.
func NewConcurrencyConflict(entityType, id string, version int64) error {
	return &ConcurrencyConflictError{EntityType: entityType, ID: id, Version: version}
}

package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas). Los handlers los traducen a códigos HTTP con errors.Is.
var (
	ErrNotFound     = errors.New("recurso no encontrado")
	ErrInvalidInput = errors.New("entrada inválida")
	ErrConflict     = errors.New("conflicto con el estado actual")
	ErrUnauthorized = errors.New("no autorizado")
	ErrForbidden    = errors.New("acceso denegado")
)

// Variantes con detalle; conservan la categoría de su error base.
var (
	ErrDuplicate          = fmt.Errorf("%w: recurso duplicado", ErrConflict)
	ErrEmailAlreadyExists = fmt.Errorf("%w: el email ya está registrado", ErrConflict)
	ErrInsufficientStock  = fmt.Errorf("%w: stock insuficiente", ErrConflict)
	ErrInvalidTransition  = fmt.Errorf("%w: transición de estado no permitida", ErrConflict)
	ErrInvalidCredentials = fmt.Errorf("%w: credenciales inválidas", ErrUnauthorized)
)

// Invalid construye un error de validación con detalle.
func Invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}

// Duplicate construye un conflicto de clave única sobre el campo indicado.
func Duplicate(entity, field, value string) error {
	return fmt.Errorf("%w: ya existe %s con %s %q", ErrDuplicate, entity, field, value)
}

// Blocked construye el error de borrado bloqueado por dependientes activos.
func Blocked(entity string, count int64, children string) error {
	return fmt.Errorf("%w: no se puede eliminar %s, tiene %d %s activos", ErrForbidden, entity, count, children)
}

// NotFound construye el error de entidad inexistente o de otro tenant (mismo mensaje en ambos casos).
func NotFound(entity string) error {
	return fmt.Errorf("%w: %s", ErrNotFound, entity)
}

// Package apperr define los tipos de error que la capa de dominio devuelve a sus llamadores.
//
// Cada error lleva un Kind (validación, no encontrado, regla de negocio, duplicado) y,
// opcionalmente, un Reason más específico. Ambos se comparan con errors.Is.
package apperr

import (
	"errors"
	"fmt"
)

var (
	ErrValidation   = errors.New("validation error")
	ErrNotFound     = errors.New("not found")
	ErrBusinessRule = errors.New("business rule violation")
	ErrDuplicate    = errors.New("duplicate")
)

// Refinamientos de ErrBusinessRule.
var (
	ErrInvalidTransition = errors.New("invalid state transition")
	ErrConflict          = errors.New("scheduling conflict")
)

type Error struct {
	Kind   error
	Reason error // opcional
	Msg    string
}

func (e *Error) Error() string {
	return e.Msg
}

func (e *Error) Is(target error) bool {
	if target == e.Kind {
		return true
	}
	return e.Reason != nil && target == e.Reason
}

func newError(kind, reason error, format string, args ...any) *Error {
	return &Error{Kind: kind, Reason: reason, Msg: fmt.Sprintf(format, args...)}
}

func Validation(format string, args ...any) error {
	return newError(ErrValidation, nil, format, args...)
}

func NotFound(format string, args ...any) error {
	return newError(ErrNotFound, nil, format, args...)
}

func BusinessRule(format string, args ...any) error {
	return newError(ErrBusinessRule, nil, format, args...)
}

func Duplicate(format string, args ...any) error {
	return newError(ErrDuplicate, nil, format, args...)
}

// InvalidTransition es un BusinessRule causado por una guarda de la máquina de estados.
func InvalidTransition(format string, args ...any) error {
	return newError(ErrBusinessRule, ErrInvalidTransition, format, args...)
}

// Conflict es un BusinessRule causado por solape de citas del mismo veterinario.
func Conflict(format string, args ...any) error {
	return newError(ErrBusinessRule, ErrConflict, format, args...)
}

// KindOf devuelve el Kind de err, o nil si err no proviene de este paquete.
func KindOf(err error) error {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return nil
}

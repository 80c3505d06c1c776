package appointments

import (
	"strings"
	"time"

	"vet-clinic/internal/domain/apperr"
)

// State es el estado del ciclo de vida de una cita.
// @Enum Programada, En curso, Completada, Cancelada
type State string

const (
	StateScheduled  State = "Programada"
	StateInProgress State = "En curso"
	StateCompleted  State = "Completada"
	StateCancelled  State = "Cancelada"
)

func (s State) Valid() bool {
	switch s {
	case StateScheduled, StateInProgress, StateCompleted, StateCancelled:
		return true
	}
	return false
}

// Terminal: Completada y Cancelada no admiten más transiciones.
func (s State) Terminal() bool {
	return s == StateCompleted || s == StateCancelled
}

const (
	DefaultDurationMinutes = 30
	MaxDurationMinutes     = 480

	minVetNameLen = 2
	minTextLen    = 3
)

// Appointment es una cita de una mascota con un veterinario.
// El nombre del veterinario es la clave de recurso para detectar solapes.
type Appointment struct {
	ID       string
	ClientID string
	PetID    string

	Veterinarian    string
	StartsAt        time.Time
	DurationMinutes int
	Reason          string

	State State
	Notes string

	Diagnosis          string
	Treatment          string
	CancellationReason string

	CreatedAt  time.Time
	ModifiedAt *time.Time
}

// Validate comprueba los invariantes de la cita.
// Solo las citas nuevas (sin ID) exigen fecha futura; las ya persistidas pueden ser históricas.
func (a Appointment) Validate(now time.Time) error {
	if strings.TrimSpace(a.ClientID) == "" {
		return apperr.Validation("debe asociarse a un cliente válido")
	}
	if strings.TrimSpace(a.PetID) == "" {
		return apperr.Validation("debe asociarse a una mascota válida")
	}
	if len([]rune(strings.TrimSpace(a.Veterinarian))) < minVetNameLen {
		return apperr.Validation("el nombre del veterinario es obligatorio")
	}
	if a.StartsAt.IsZero() {
		return apperr.Validation("la fecha y hora son obligatorias")
	}
	if a.ID == "" && a.StartsAt.Before(now) {
		return apperr.Validation("la fecha y hora deben ser futuras")
	}
	if len([]rune(strings.TrimSpace(a.Reason))) < minTextLen {
		return apperr.Validation("el motivo debe tener al menos %d caracteres", minTextLen)
	}
	if !a.State.Valid() {
		return apperr.Validation("estado de cita inválido: %q", a.State)
	}
	if a.DurationMinutes < 1 || a.DurationMinutes > MaxDurationMinutes {
		return apperr.Validation("la duración debe estar entre 1 y %d minutos", MaxDurationMinutes)
	}
	if a.State == StateCancelled && strings.TrimSpace(a.CancellationReason) == "" {
		return apperr.Validation("debe especificar el motivo de cancelación")
	}
	return nil
}

// EndsAt = inicio + duración.
func (a Appointment) EndsAt() time.Time {
	return a.StartsAt.Add(time.Duration(a.DurationMinutes) * time.Minute)
}

// Overlaps: mismo veterinario y los intervalos [inicio, fin) se cortan.
// Citas consecutivas (fin de una == inicio de otra) no se solapan.
func (a Appointment) Overlaps(other Appointment) bool {
	if a.Veterinarian != other.Veterinarian {
		return false
	}
	return a.StartsAt.Before(other.EndsAt()) && other.StartsAt.Before(a.EndsAt())
}

// Start: Programada -> En curso.
func (a *Appointment) Start(now time.Time) error {
	if a.State != StateScheduled {
		return apperr.InvalidTransition("solo se pueden iniciar citas programadas (estado actual: %s)", a.State)
	}
	a.State = StateInProgress
	a.touch(now)
	return nil
}

// Complete admite Programada o En curso -> Completada.
// Completar directamente desde Programada es el comportamiento existente y se mantiene.
func (a *Appointment) Complete(diagnosis, treatment string, now time.Time) error {
	if a.State == StateCancelled {
		return apperr.InvalidTransition("no se puede completar una cita cancelada")
	}
	if a.State == StateCompleted {
		return apperr.InvalidTransition("la cita ya está completada")
	}
	if len([]rune(strings.TrimSpace(diagnosis))) < minTextLen {
		return apperr.Validation("el diagnóstico es obligatorio y debe tener al menos %d caracteres", minTextLen)
	}
	a.State = StateCompleted
	a.Diagnosis = strings.TrimSpace(diagnosis)
	a.Treatment = strings.TrimSpace(treatment)
	a.touch(now)
	return nil
}

// Cancel admite Programada o En curso -> Cancelada.
func (a *Appointment) Cancel(reason string, now time.Time) error {
	if a.State == StateCompleted {
		return apperr.InvalidTransition("no se puede cancelar una cita completada")
	}
	if a.State == StateCancelled {
		return apperr.InvalidTransition("la cita ya está cancelada")
	}
	if len([]rune(strings.TrimSpace(reason))) < minTextLen {
		return apperr.Validation("debe especificar el motivo de cancelación")
	}
	a.State = StateCancelled
	a.CancellationReason = strings.TrimSpace(reason)
	a.touch(now)
	return nil
}

// Reschedule mueve la cita a newStart (estrictamente futura) y la devuelve a Programada,
// aunque estuviera En curso.
func (a *Appointment) Reschedule(newStart, now time.Time) error {
	if a.State != StateScheduled && a.State != StateInProgress {
		return apperr.InvalidTransition("solo se pueden reprogramar citas programadas o en curso")
	}
	if !newStart.After(now) {
		return apperr.Validation("la nueva fecha debe ser futura")
	}
	a.StartsAt = newStart
	a.State = StateScheduled
	a.touch(now)
	return nil
}

func (a *Appointment) touch(now time.Time) {
	t := now
	a.ModifiedAt = &t
}

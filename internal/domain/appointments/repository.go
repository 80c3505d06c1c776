package appointments

import (
	"context"
	"time"
)

type Repository interface {
	Create(ctx context.Context, a Appointment) error
	// Update falla con apperr.ErrNotFound si el id no existe.
	Update(ctx context.Context, a Appointment) error
	GetByID(ctx context.Context, id string) (Appointment, error)
	// ListByVeterinarianAndDate devuelve las citas del veterinario cuyo inicio cae en el
	// día calendario de day (en day.Location()).
	ListByVeterinarianAndDate(ctx context.Context, vet string, day time.Time) ([]Appointment, error)
	// ListByDateRange incluye ambos extremos.
	ListByDateRange(ctx context.Context, from, to time.Time) ([]Appointment, error)
	ListByState(ctx context.Context, state State) ([]Appointment, error)
	ListAll(ctx context.Context) ([]Appointment, error)
	// Delete es borrado físico (solo citas). false si no existía.
	Delete(ctx context.Context, id string) (bool, error)
}

// DayBounds devuelve [inicio del día, inicio del día siguiente) en la zona de day.
func DayBounds(day time.Time) (time.Time, time.Time) {
	y, m, d := day.Date()
	start := time.Date(y, m, d, 0, 0, 0, 0, day.Location())
	return start, start.AddDate(0, 0, 1)
}

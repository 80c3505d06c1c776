package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"vet-clinic/internal/domain/appointments"
	"vet-clinic/internal/domain/apperr"
)

type appointmentRepo struct {
	mu   sync.RWMutex
	byID map[string]appointments.Appointment
}

func NewAppointmentRepo() appointments.Repository {
	return &appointmentRepo{
		byID: make(map[string]appointments.Appointment),
	}
}

func (r *appointmentRepo) Create(ctx context.Context, a appointments.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(a.ID) == "" {
		return apperr.Validation("appointment id required")
	}
	if _, exists := r.byID[a.ID]; exists {
		return apperr.Duplicate("appointment %s already exists", a.ID)
	}
	r.byID[a.ID] = a
	return nil
}

func (r *appointmentRepo) Update(ctx context.Context, a appointments.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[a.ID]; !exists {
		return apperr.NotFound("cita %s no encontrada", a.ID)
	}
	r.byID[a.ID] = a
	return nil
}

func (r *appointmentRepo) GetByID(ctx context.Context, id string) (appointments.Appointment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.byID[id]
	if !ok {
		return appointments.Appointment{}, apperr.NotFound("cita %s no encontrada", id)
	}
	return a, nil
}

func (r *appointmentRepo) Delete(ctx context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[id]; !ok {
		return false, nil
	}
	delete(r.byID, id)
	return true, nil
}

func (r *appointmentRepo) ListAll(ctx context.Context) ([]appointments.Appointment, error) {
	return r.filter(func(appointments.Appointment) bool { return true }), nil
}

func (r *appointmentRepo) ListByVeterinarianAndDate(ctx context.Context, vet string, day time.Time) ([]appointments.Appointment, error) {
	from, to := appointments.DayBounds(day)
	return r.filter(func(a appointments.Appointment) bool {
		return a.Veterinarian == vet && !a.StartsAt.Before(from) && a.StartsAt.Before(to)
	}), nil
}

func (r *appointmentRepo) ListByDateRange(ctx context.Context, from, to time.Time) ([]appointments.Appointment, error) {
	return r.filter(func(a appointments.Appointment) bool {
		return !a.StartsAt.Before(from) && !a.StartsAt.After(to)
	}), nil
}

func (r *appointmentRepo) ListByState(ctx context.Context, state appointments.State) ([]appointments.Appointment, error) {
	return r.filter(func(a appointments.Appointment) bool {
		return a.State == state
	}), nil
}

func (r *appointmentRepo) filter(keep func(appointments.Appointment) bool) []appointments.Appointment {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]appointments.Appointment, 0)
	for _, a := range r.byID {
		if keep(a) {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].StartsAt.Before(out[j].StartsAt)
	})
	return out
}

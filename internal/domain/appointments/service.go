package appointments

import (
	"context"
	"strings"
	"time"

	"vet-clinic/internal/domain/apperr"
	"vet-clinic/internal/domain/clients"
	"vet-clinic/internal/domain/pets"
	"vet-clinic/internal/platform/logger"

	"github.com/google/uuid"
)

// Service orquesta la agenda. No hay bloqueo entre la comprobación de solapes y la
// inserción: dos peticiones concurrentes para el mismo hueco pueden reservar ambas.
type Service struct {
	repo    Repository
	clients clients.Repository
	pets    pets.Repository
	now     func() time.Time
	loc     *time.Location
	log     logger.Logger
}

type Option func(*Service)

func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func WithLogger(l logger.Logger) Option {
	return func(s *Service) { s.log = l }
}

// WithLocation fija la zona usada para determinar el día calendario de una cita.
func WithLocation(loc *time.Location) Option {
	return func(s *Service) {
		if loc != nil {
			s.loc = loc
		}
	}
}

func NewService(repo Repository, clientsRepo clients.Repository, petsRepo pets.Repository, opts ...Option) *Service {
	s := &Service{
		repo:    repo,
		clients: clientsRepo,
		pets:    petsRepo,
		now:     time.Now,
		loc:     time.Local,
		log:     logger.Nop(),
	}
	for _, o := range opts {
		o(s)
	}
	s.log = s.log.With(map[string]any{"module": "appointments"})
	return s
}

type ScheduleInput struct {
	ClientID        string
	PetID           string
	Veterinarian    string
	StartsAt        time.Time
	Reason          string
	DurationMinutes int // 0 = DefaultDurationMinutes
	Notes           string
}

// Schedule valida cliente y mascota, construye la cita, comprueba solapes con las citas
// del mismo veterinario ese día y persiste.
func (s *Service) Schedule(ctx context.Context, in ScheduleInput) (Appointment, error) {
	clientID := strings.TrimSpace(in.ClientID)
	petID := strings.TrimSpace(in.PetID)

	c, err := s.clients.GetByID(ctx, clientID)
	if err != nil {
		return Appointment{}, err
	}
	if !c.Active {
		return Appointment{}, apperr.BusinessRule("el cliente %s está inactivo", c.Name)
	}

	p, err := s.pets.GetByID(ctx, petID)
	if err != nil {
		return Appointment{}, err
	}
	if !p.Active {
		return Appointment{}, apperr.BusinessRule("la mascota %s está inactiva", p.Name)
	}
	if p.ClientID != c.ID {
		return Appointment{}, apperr.BusinessRule("la mascota %s no pertenece al cliente %s", p.Name, c.Name)
	}

	duration := in.DurationMinutes
	if duration == 0 {
		duration = DefaultDurationMinutes
	}

	now := s.now()
	a := Appointment{
		ClientID:        c.ID,
		PetID:           p.ID,
		Veterinarian:    strings.TrimSpace(in.Veterinarian),
		StartsAt:        in.StartsAt,
		DurationMinutes: duration,
		Reason:          strings.TrimSpace(in.Reason),
		State:           StateScheduled,
		Notes:           strings.TrimSpace(in.Notes),
		CreatedAt:       now,
	}
	if err := a.Validate(now); err != nil {
		return Appointment{}, err
	}

	if err := s.ensureNoConflict(ctx, a); err != nil {
		return Appointment{}, err
	}

	a.ID = uuid.NewString()
	if err := s.repo.Create(ctx, a); err != nil {
		return Appointment{}, err
	}

	s.log.Info("appointment scheduled", map[string]any{
		"appointment_id": a.ID,
		"veterinarian":   a.Veterinarian,
		"starts_at":      a.StartsAt.Format(time.RFC3339),
	})
	return a, nil
}

// Reschedule mueve la cita. Si la nueva franja choca, el registro persistido no se toca.
func (s *Service) Reschedule(ctx context.Context, id string, newStart time.Time) (Appointment, error) {
	a, err := s.repo.GetByID(ctx, strings.TrimSpace(id))
	if err != nil {
		return Appointment{}, err
	}

	prevStart, prevState, prevModified := a.StartsAt, a.State, a.ModifiedAt
	if err := a.Reschedule(newStart, s.now()); err != nil {
		return Appointment{}, err
	}

	if err := s.ensureNoConflict(ctx, a); err != nil {
		a.StartsAt, a.State, a.ModifiedAt = prevStart, prevState, prevModified
		return Appointment{}, err
	}

	if err := s.repo.Update(ctx, a); err != nil {
		return Appointment{}, err
	}
	s.log.Info("appointment rescheduled", map[string]any{
		"appointment_id": a.ID,
		"starts_at":      a.StartsAt.Format(time.RFC3339),
	})
	return a, nil
}

func (s *Service) Start(ctx context.Context, id string) (Appointment, error) {
	return s.transition(ctx, id, "started", func(a *Appointment, now time.Time) error {
		return a.Start(now)
	})
}

func (s *Service) Complete(ctx context.Context, id, diagnosis, treatment string) (Appointment, error) {
	return s.transition(ctx, id, "completed", func(a *Appointment, now time.Time) error {
		return a.Complete(diagnosis, treatment, now)
	})
}

func (s *Service) Cancel(ctx context.Context, id, reason string) (Appointment, error) {
	return s.transition(ctx, id, "cancelled", func(a *Appointment, now time.Time) error {
		return a.Cancel(reason, now)
	})
}

// Delete es borrado físico; a diferencia de clientes y mascotas, las citas no tienen baja lógica.
func (s *Service) Delete(ctx context.Context, id string) (bool, error) {
	deleted, err := s.repo.Delete(ctx, strings.TrimSpace(id))
	if err != nil {
		return false, err
	}
	if deleted {
		s.log.Info("appointment deleted", map[string]any{"appointment_id": id})
	}
	return deleted, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Appointment, error) {
	return s.repo.GetByID(ctx, strings.TrimSpace(id))
}

func (s *Service) List(ctx context.Context) ([]Appointment, error) {
	return s.repo.ListAll(ctx)
}

func (s *Service) ListByDateRange(ctx context.Context, from, to time.Time) ([]Appointment, error) {
	if to.Before(from) {
		return nil, apperr.Validation("el rango de fechas es inválido")
	}
	return s.repo.ListByDateRange(ctx, from, to)
}

// ListForDay devuelve las citas del día; vet vacío = todos los veterinarios.
func (s *Service) ListForDay(ctx context.Context, day time.Time, vet string) ([]Appointment, error) {
	day = day.In(s.loc)
	if vet = strings.TrimSpace(vet); vet != "" {
		return s.repo.ListByVeterinarianAndDate(ctx, vet, day)
	}
	from, to := DayBounds(day)
	items, err := s.repo.ListByDateRange(ctx, from, to)
	if err != nil {
		return nil, err
	}
	// el rango es inclusivo; se excluye la medianoche del día siguiente
	out := items[:0]
	for _, a := range items {
		if a.StartsAt.Before(to) {
			out = append(out, a)
		}
	}
	return out, nil
}

func (s *Service) ListByState(ctx context.Context, state State) ([]Appointment, error) {
	if !state.Valid() {
		return nil, apperr.Validation("estado de cita inválido: %q", state)
	}
	return s.repo.ListByState(ctx, state)
}

func (s *Service) transition(ctx context.Context, id, verb string, fn func(*Appointment, time.Time) error) (Appointment, error) {
	a, err := s.repo.GetByID(ctx, strings.TrimSpace(id))
	if err != nil {
		return Appointment{}, err
	}
	if err := fn(&a, s.now()); err != nil {
		return Appointment{}, err
	}
	if err := s.repo.Update(ctx, a); err != nil {
		return Appointment{}, err
	}
	s.log.Info("appointment "+verb, map[string]any{"appointment_id": a.ID, "state": string(a.State)})
	return a, nil
}

func (s *Service) ensureNoConflict(ctx context.Context, a Appointment) error {
	existing, err := s.repo.ListByVeterinarianAndDate(ctx, a.Veterinarian, a.StartsAt.In(s.loc))
	if err != nil {
		return err
	}
	for _, other := range existing {
		if other.ID == a.ID || other.State == StateCancelled {
			continue
		}
		if a.Overlaps(other) {
			s.log.Warn("appointment conflict", map[string]any{
				"veterinarian": a.Veterinarian,
				"starts_at":    a.StartsAt.Format(time.RFC3339),
				"conflict_id":  other.ID,
			})
			return apperr.Conflict("%s ya tiene una cita de %s a %s",
				a.Veterinarian, other.StartsAt.In(s.loc).Format("15:04"), other.EndsAt().In(s.loc).Format("15:04"))
		}
	}
	return nil
}

package pets

import (
	"context"
	"errors"
	"strings"
	"time"

	"vet-clinic/internal/domain/apperr"
	"vet-clinic/internal/domain/clients"
	"vet-clinic/internal/platform/logger"

	"github.com/google/uuid"
)

const minSearchLen = 2

type Service struct {
	repo    Repository
	clients clients.Repository
	now     func() time.Time
	log     logger.Logger
}

type Option func(*Service)

func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func WithLogger(l logger.Logger) Option {
	return func(s *Service) { s.log = l }
}

func NewService(repo Repository, clientsRepo clients.Repository, opts ...Option) *Service {
	s := &Service{
		repo:    repo,
		clients: clientsRepo,
		now:     time.Now,
		log:     logger.Nop(),
	}
	for _, o := range opts {
		o(s)
	}
	s.log = s.log.With(map[string]any{"module": "pets"})
	return s
}

type RegisterInput struct {
	ClientID  string
	Name      string
	Species   Species
	Breed     string
	BirthDate time.Time
	Sex       Sex
	Color     string
	WeightKg  *float64
	Microchip string
	Notes     string
}

func (s *Service) Register(ctx context.Context, in RegisterInput) (Pet, error) {
	clientID := strings.TrimSpace(in.ClientID)

	c, err := s.clients.GetByID(ctx, clientID)
	if err != nil {
		return Pet{}, err
	}
	if !c.Active {
		return Pet{}, apperr.BusinessRule("el cliente %s está inactivo", c.Name)
	}

	now := s.now()
	p := Pet{
		ClientID:     clientID,
		Name:         strings.TrimSpace(in.Name),
		Species:      in.Species,
		Breed:        strings.TrimSpace(in.Breed),
		Sex:          in.Sex,
		BirthDate:    in.BirthDate,
		Color:        strings.TrimSpace(in.Color),
		WeightKg:     in.WeightKg,
		Microchip:    strings.TrimSpace(in.Microchip),
		Notes:        strings.TrimSpace(in.Notes),
		Active:       true,
		RegisteredAt: now,
	}
	if err := p.Validate(now); err != nil {
		return Pet{}, err
	}

	// Duplicado por (cliente, nombre, fecha de nacimiento)
	existing, err := s.repo.ListByClient(ctx, clientID, false)
	if err != nil {
		return Pet{}, err
	}
	for _, other := range existing {
		if strings.EqualFold(other.Name, p.Name) && sameDay(other.BirthDate, p.BirthDate) {
			return Pet{}, apperr.Duplicate("ya existe una mascota llamada %q con la misma fecha de nacimiento para este cliente", p.Name)
		}
	}

	if err := s.ensureMicrochipFree(ctx, p.Microchip, ""); err != nil {
		return Pet{}, err
	}

	p.ID = uuid.NewString()
	if err := s.repo.Create(ctx, p); err != nil {
		return Pet{}, err
	}

	s.log.Info("pet registered", map[string]any{"pet_id": p.ID, "client_id": p.ClientID})
	return p, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Pet, error) {
	return s.repo.GetByID(ctx, strings.TrimSpace(id))
}

func (s *Service) ListByClient(ctx context.Context, clientID string, includeInactive bool) ([]Pet, error) {
	return s.repo.ListByClient(ctx, strings.TrimSpace(clientID), includeInactive)
}

func (s *Service) List(ctx context.Context, includeInactive bool) ([]Pet, error) {
	return s.repo.List(ctx, includeInactive)
}

func (s *Service) Search(ctx context.Context, term string) ([]Pet, error) {
	term = strings.TrimSpace(term)
	if len(term) < minSearchLen {
		return nil, apperr.Validation("el término de búsqueda debe tener al menos %d caracteres", minSearchLen)
	}
	return s.repo.Search(ctx, term)
}

func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (Pet, error) {
	p, err := s.repo.GetByID(ctx, strings.TrimSpace(id))
	if err != nil {
		return Pet{}, err
	}
	if err := p.Apply(in, s.now()); err != nil {
		return Pet{}, err
	}
	if in.Microchip != nil {
		if err := s.ensureMicrochipFree(ctx, p.Microchip, p.ID); err != nil {
			return Pet{}, err
		}
	}
	if err := s.repo.Update(ctx, p); err != nil {
		return Pet{}, err
	}
	return p, nil
}

// Deactivate es baja lógica: la mascota sigue referenciada por citas y facturas.
func (s *Service) Deactivate(ctx context.Context, id string) (Pet, error) {
	return s.setActive(ctx, id, false)
}

func (s *Service) Reactivate(ctx context.Context, id string) (Pet, error) {
	return s.setActive(ctx, id, true)
}

// AgeOf calcula la edad de la mascota a la fecha actual.
func (s *Service) AgeOf(ctx context.Context, id string) (Age, error) {
	p, err := s.repo.GetByID(ctx, strings.TrimSpace(id))
	if err != nil {
		return Age{}, err
	}
	return p.Age(s.now()), nil
}

func (s *Service) setActive(ctx context.Context, id string, active bool) (Pet, error) {
	p, err := s.repo.GetByID(ctx, strings.TrimSpace(id))
	if err != nil {
		return Pet{}, err
	}
	if active {
		p.Activate()
	} else {
		p.Deactivate()
	}
	if err := s.repo.Update(ctx, p); err != nil {
		return Pet{}, err
	}
	return p, nil
}

func (s *Service) ensureMicrochipFree(ctx context.Context, microchip, selfID string) error {
	if microchip == "" {
		return nil
	}
	other, err := s.repo.GetByMicrochip(ctx, microchip)
	if err == nil && other.ID != selfID {
		return apperr.Duplicate("el microchip %s ya está registrado", microchip)
	}
	if err != nil && !errors.Is(err, apperr.ErrNotFound) {
		return err
	}
	return nil
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

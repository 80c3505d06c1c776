package clients

import (
	"context"
	"errors"
	"strings"
	"time"

	"vet-clinic/internal/domain/apperr"
	"vet-clinic/internal/platform/logger"

	"github.com/google/uuid"
)

const minSearchLen = 2

type Service struct {
	repo Repository
	now  func() time.Time
	log  logger.Logger
}

type Option func(*Service)

func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func WithLogger(l logger.Logger) Option {
	return func(s *Service) { s.log = l }
}

func NewService(repo Repository, opts ...Option) *Service {
	s := &Service{
		repo: repo,
		now:  time.Now,
		log:  logger.Nop(),
	}
	for _, o := range opts {
		o(s)
	}
	s.log = s.log.With(map[string]any{"module": "clients"})
	return s
}

type RegisterInput struct {
	Name    string
	DNI     string
	Phone   string
	Email   string
	Address string
	Notes   string
}

// Register da de alta un cliente. El DNI es único: se comprueba antes de persistir.
func (s *Service) Register(ctx context.Context, in RegisterInput) (Client, error) {
	c := Client{
		Name:         strings.TrimSpace(in.Name),
		DNI:          NormalizeDNI(in.DNI),
		Phone:        strings.TrimSpace(in.Phone),
		Email:        strings.TrimSpace(in.Email),
		Address:      strings.TrimSpace(in.Address),
		Notes:        strings.TrimSpace(in.Notes),
		Active:       true,
		RegisteredAt: s.now(),
	}
	if err := c.Validate(); err != nil {
		return Client{}, err
	}

	if _, err := s.repo.GetByDNI(ctx, c.DNI); err == nil {
		return Client{}, apperr.Duplicate("ya existe un cliente registrado con el DNI %s", c.DNI)
	} else if !errors.Is(err, apperr.ErrNotFound) {
		return Client{}, err
	}

	c.ID = uuid.NewString()
	if err := s.repo.Create(ctx, c); err != nil {
		return Client{}, err
	}

	s.log.Info("client registered", map[string]any{"client_id": c.ID})
	return c, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Client, error) {
	return s.repo.GetByID(ctx, strings.TrimSpace(id))
}

func (s *Service) GetByDNI(ctx context.Context, dni string) (Client, error) {
	return s.repo.GetByDNI(ctx, NormalizeDNI(dni))
}

func (s *Service) List(ctx context.Context, includeInactive bool) ([]Client, error) {
	return s.repo.List(ctx, includeInactive)
}

func (s *Service) Search(ctx context.Context, term string) ([]Client, error) {
	term = strings.TrimSpace(term)
	if len(term) < minSearchLen {
		return nil, apperr.Validation("el término de búsqueda debe tener al menos %d caracteres", minSearchLen)
	}
	return s.repo.Search(ctx, term)
}

func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (Client, error) {
	c, err := s.repo.GetByID(ctx, strings.TrimSpace(id))
	if err != nil {
		return Client{}, err
	}
	if err := c.Apply(in); err != nil {
		return Client{}, err
	}
	if err := s.repo.Update(ctx, c); err != nil {
		return Client{}, err
	}
	return c, nil
}

// Deactivate es la baja lógica; los clientes nunca se eliminan.
func (s *Service) Deactivate(ctx context.Context, id string) (Client, error) {
	return s.setActive(ctx, id, false)
}

func (s *Service) Reactivate(ctx context.Context, id string) (Client, error) {
	return s.setActive(ctx, id, true)
}

func (s *Service) setActive(ctx context.Context, id string, active bool) (Client, error) {
	c, err := s.repo.GetByID(ctx, strings.TrimSpace(id))
	if err != nil {
		return Client{}, err
	}
	if active {
		c.Activate()
	} else {
		c.Deactivate()
	}
	if err := s.repo.Update(ctx, c); err != nil {
		return Client{}, err
	}
	s.log.Info("client active flag changed", map[string]any{"client_id": c.ID, "active": active})
	return c, nil
}

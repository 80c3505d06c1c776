package invoices

import (
	"context"
	"errors"
	"strings"
	"time"

	"vet-clinic/internal/domain/appointments"
	"vet-clinic/internal/domain/apperr"
	"vet-clinic/internal/domain/clients"
	"vet-clinic/internal/platform/logger"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DefaultNumberYear es el año fijo de la numeración de facturas.
const DefaultNumberYear = 2025

type Service struct {
	repo         Repository
	appointments appointments.Repository
	clients      clients.Repository
	now          func() time.Time
	year         int
	log          logger.Logger
}

type Option func(*Service)

func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func WithLogger(l logger.Logger) Option {
	return func(s *Service) { s.log = l }
}

// WithNumberYear cambia el año usado en F-<año>-NNNNN.
func WithNumberYear(year int) Option {
	return func(s *Service) {
		if year > 0 {
			s.year = year
		}
	}
}

func NewService(repo Repository, apptRepo appointments.Repository, clientsRepo clients.Repository, opts ...Option) *Service {
	s := &Service{
		repo:         repo,
		appointments: apptRepo,
		clients:      clientsRepo,
		now:          time.Now,
		year:         DefaultNumberYear,
		log:          logger.Nop(),
	}
	for _, o := range opts {
		o(s)
	}
	s.log = s.log.With(map[string]any{"module": "invoices"})
	return s
}

type LineInput struct {
	Concept    string
	Quantity   int
	UnitPrice  decimal.Decimal
	TaxPercent decimal.Decimal
}

// CreateFromAppointment factura una cita completada. Una cita solo se factura una vez.
func (s *Service) CreateFromAppointment(ctx context.Context, appointmentID string, lines []LineInput, notes string) (Invoice, error) {
	a, err := s.appointments.GetByID(ctx, strings.TrimSpace(appointmentID))
	if err != nil {
		return Invoice{}, err
	}
	if a.State != appointments.StateCompleted {
		return Invoice{}, apperr.BusinessRule("solo se pueden facturar citas completadas (estado actual: %s)", a.State)
	}

	all, err := s.repo.ListAll(ctx)
	if err != nil {
		return Invoice{}, err
	}
	for _, other := range all {
		if other.AppointmentID == a.ID {
			return Invoice{}, apperr.BusinessRule("la cita ya tiene la factura %s", other.Number)
		}
	}

	c, err := s.clients.GetByID(ctx, a.ClientID)
	if err != nil {
		return Invoice{}, err
	}

	number, err := s.nextNumber(ctx)
	if err != nil {
		return Invoice{}, err
	}

	if len(lines) == 0 {
		return Invoice{}, apperr.Validation("la factura debe tener al menos una línea")
	}

	now := s.now()
	inv := Invoice{
		ID:            uuid.NewString(),
		Number:        number,
		AppointmentID: a.ID,
		ClientID:      c.ID,
		IssuedAt:      now,
		Notes:         strings.TrimSpace(notes),
		CreatedAt:     now,
	}
	for _, in := range lines {
		l, err := NewLine(in.Concept, in.Quantity, in.UnitPrice, in.TaxPercent)
		if err != nil {
			return Invoice{}, err
		}
		if err := inv.AddLine(l); err != nil {
			return Invoice{}, err
		}
	}
	if err := inv.Validate(now); err != nil {
		return Invoice{}, err
	}

	if err := s.repo.Create(ctx, inv); err != nil {
		return Invoice{}, err
	}

	s.log.Info("invoice created", map[string]any{
		"invoice_id":     inv.ID,
		"number":         inv.Number,
		"appointment_id": inv.AppointmentID,
		"total":          inv.Total().StringFixed(2),
	})
	return inv, nil
}

// MarkAsPaid registra el pago; paidAt nil = ahora.
func (s *Service) MarkAsPaid(ctx context.Context, id string, method PaymentMethod, paidAt *time.Time) (Invoice, error) {
	inv, err := s.repo.GetByID(ctx, strings.TrimSpace(id))
	if err != nil {
		return Invoice{}, err
	}
	if err := inv.MarkPaid(method, paidAt, s.now()); err != nil {
		return Invoice{}, err
	}
	if err := s.repo.Update(ctx, inv); err != nil {
		return Invoice{}, err
	}
	s.log.Info("invoice paid", map[string]any{"invoice_id": inv.ID, "method": string(method)})
	return inv, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Invoice, error) {
	return s.repo.GetByID(ctx, strings.TrimSpace(id))
}

func (s *Service) GetByNumber(ctx context.Context, number string) (Invoice, error) {
	return s.repo.GetByNumber(ctx, strings.ToUpper(strings.TrimSpace(number)))
}

func (s *Service) List(ctx context.Context) ([]Invoice, error) {
	return s.repo.ListAll(ctx)
}

func (s *Service) ListByClient(ctx context.Context, clientID string) ([]Invoice, error) {
	return s.repo.ListByClient(ctx, strings.TrimSpace(clientID))
}

// IncomeForPeriod agrega las facturas emitidas en [from, to].
func (s *Service) IncomeForPeriod(ctx context.Context, from, to time.Time) (Income, error) {
	if to.Before(from) {
		return Income{}, apperr.Validation("el rango de fechas es inválido")
	}
	all, err := s.repo.ListAll(ctx)
	if err != nil {
		return Income{}, err
	}
	return ComputeIncome(all, from, to), nil
}

// TopClients ordena clientes por importe facturado. limit <= 0 usa DefaultTopClients.
func (s *Service) TopClients(ctx context.Context, limit int) ([]ClientTotal, error) {
	all, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return RankClients(all, limit), nil
}

// nextNumber genera el número y comprueba que no esté ya usado.
func (s *Service) nextNumber(ctx context.Context) (string, error) {
	last, count, ok, err := s.repo.LastNumber(ctx)
	if err != nil {
		return "", err
	}
	number := NextNumber(s.year, last, ok, count)

	if _, err := s.repo.GetByNumber(ctx, number); err == nil {
		return "", apperr.Duplicate("el número de factura %s ya existe", number)
	} else if !errors.Is(err, apperr.ErrNotFound) {
		return "", err
	}
	return number, nil
}

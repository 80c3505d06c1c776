package invoices_test

import (
	"context"
	"testing"
	"time"

	mem "vet-clinic/internal/adapters/storage/memory"
	"vet-clinic/internal/domain/appointments"
	"vet-clinic/internal/domain/apperr"
	"vet-clinic/internal/domain/clients"
	"vet-clinic/internal/domain/invoices"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

type fixture struct {
	appts appointments.Repository
	repo  invoices.Repository
	svc   *invoices.Service
}

func newFixture(t *testing.T, opts ...invoices.Option) fixture {
	t.Helper()
	ctx := context.Background()

	clientRepo := mem.NewClientRepo()
	require.NoError(t, clientRepo.Create(ctx, clients.Client{
		ID: "c1", Name: "Ana García", DNI: "12345678Z", Phone: "612345678", Email: "ana@example.com", Active: true,
	}))

	apptRepo := mem.NewAppointmentRepo()
	for id, state := range map[string]appointments.State{
		"done":      appointments.StateCompleted,
		"done2":     appointments.StateCompleted,
		"scheduled": appointments.StateScheduled,
	} {
		require.NoError(t, apptRepo.Create(ctx, appointments.Appointment{
			ID: id, ClientID: "c1", PetID: "p1", Veterinarian: "Dr. X",
			StartsAt: now.Add(-time.Hour), DurationMinutes: 30, Reason: "Revisión", State: state,
		}))
	}
	require.NoError(t, apptRepo.Create(ctx, appointments.Appointment{
		ID: "orphan", ClientID: "ghost", PetID: "p1", Veterinarian: "Dr. X",
		StartsAt: now.Add(-time.Hour), DurationMinutes: 30, Reason: "Revisión", State: appointments.StateCompleted,
	}))

	repo := mem.NewInvoiceRepo()
	opts = append([]invoices.Option{invoices.WithClock(func() time.Time { return now })}, opts...)
	return fixture{
		appts: apptRepo,
		repo:  repo,
		svc:   invoices.NewService(repo, apptRepo, clientRepo, opts...),
	}
}

func consult() []invoices.LineInput {
	return []invoices.LineInput{{
		Concept:    "Consulta",
		Quantity:   2,
		UnitPrice:  decimal.RequireFromString("50.00"),
		TaxPercent: decimal.NewFromInt(21),
	}}
}

func TestCreateFromAppointment_OK(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	inv, err := f.svc.CreateFromAppointment(ctx, "done", consult(), "  gracias  ")
	require.NoError(t, err)
	assert.Equal(t, "F-2025-00001", inv.Number)
	assert.Equal(t, "c1", inv.ClientID)
	assert.Equal(t, now, inv.IssuedAt)
	assert.Equal(t, "gracias", inv.Notes)
	assert.True(t, inv.Total().Equal(decimal.RequireFromString("121")))

	second, err := f.svc.CreateFromAppointment(ctx, "done2", consult(), "")
	require.NoError(t, err)
	assert.Equal(t, "F-2025-00002", second.Number)

	got, err := f.svc.GetByNumber(ctx, "f-2025-00002")
	require.NoError(t, err)
	assert.Equal(t, second.ID, got.ID)

	byClient, err := f.svc.ListByClient(ctx, "c1")
	require.NoError(t, err)
	assert.Len(t, byClient, 2)
}

func TestCreateFromAppointment_Rules(t *testing.T) {
	ctx := context.Background()

	t.Run("unknown appointment", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.svc.CreateFromAppointment(ctx, "nope", consult(), "")
		assert.ErrorIs(t, err, apperr.ErrNotFound)
	})

	t.Run("not completed", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.svc.CreateFromAppointment(ctx, "scheduled", consult(), "")
		assert.ErrorIs(t, err, apperr.ErrBusinessRule)
	})

	t.Run("already invoiced", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.svc.CreateFromAppointment(ctx, "done", consult(), "")
		require.NoError(t, err)
		_, err = f.svc.CreateFromAppointment(ctx, "done", consult(), "")
		assert.ErrorIs(t, err, apperr.ErrBusinessRule)
	})

	t.Run("missing client", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.svc.CreateFromAppointment(ctx, "orphan", consult(), "")
		assert.ErrorIs(t, err, apperr.ErrNotFound)
	})

	t.Run("no lines", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.svc.CreateFromAppointment(ctx, "done", nil, "")
		assert.ErrorIs(t, err, apperr.ErrValidation)
	})

	t.Run("bad line stores nothing", func(t *testing.T) {
		f := newFixture(t)
		lines := append(consult(), invoices.LineInput{Concept: "x", Quantity: 1})
		_, err := f.svc.CreateFromAppointment(ctx, "done", lines, "")
		assert.ErrorIs(t, err, apperr.ErrValidation)

		all, err := f.svc.List(ctx)
		require.NoError(t, err)
		assert.Empty(t, all)
	})
}

func TestCreateFromAppointment_NumberYear(t *testing.T) {
	f := newFixture(t, invoices.WithNumberYear(2026))

	inv, err := f.svc.CreateFromAppointment(context.Background(), "done", consult(), "")
	require.NoError(t, err)
	assert.Equal(t, "F-2026-00001", inv.Number)
}

func TestMarkAsPaid(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	inv, err := f.svc.CreateFromAppointment(ctx, "done", consult(), "")
	require.NoError(t, err)

	_, err = f.svc.MarkAsPaid(ctx, inv.ID, "Cheque", nil)
	assert.ErrorIs(t, err, apperr.ErrValidation)

	paid, err := f.svc.MarkAsPaid(ctx, inv.ID, invoices.PaymentTransfer, nil)
	require.NoError(t, err)
	assert.True(t, paid.Paid)
	require.NotNil(t, paid.PaidAt)
	assert.Equal(t, now, *paid.PaidAt)

	_, err = f.svc.MarkAsPaid(ctx, inv.ID, invoices.PaymentTransfer, nil)
	assert.ErrorIs(t, err, apperr.ErrBusinessRule)

	stored, err := f.svc.GetByID(ctx, inv.ID)
	require.NoError(t, err)
	assert.True(t, stored.Paid)
	assert.Equal(t, invoices.PaymentTransfer, stored.PaymentMethod)

	_, err = f.svc.MarkAsPaid(ctx, "nope", invoices.PaymentCash, nil)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestReports_Service(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	inv, err := f.svc.CreateFromAppointment(ctx, "done", consult(), "")
	require.NoError(t, err)
	_, err = f.svc.MarkAsPaid(ctx, inv.ID, invoices.PaymentCash, nil)
	require.NoError(t, err)

	income, err := f.svc.IncomeForPeriod(ctx, now.AddDate(0, 0, -1), now)
	require.NoError(t, err)
	assert.Equal(t, 1, income.PaidCount)
	assert.True(t, income.Paid.Equal(decimal.RequireFromString("121")))

	_, err = f.svc.IncomeForPeriod(ctx, now, now.AddDate(0, 0, -1))
	assert.ErrorIs(t, err, apperr.ErrValidation)

	top, err := f.svc.TopClients(ctx, 0)
	require.NoError(t, err)
	require.Len(t, top, 1)
	assert.Equal(t, "c1", top[0].ClientID)
}

package memory

import (
	"context"
	"testing"
	"time"

	"vet-clinic/internal/domain/appointments"
	"vet-clinic/internal/domain/apperr"
	"vet-clinic/internal/domain/clients"
	"vet-clinic/internal/domain/invoices"
	"vet-clinic/internal/domain/pets"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientRepo(t *testing.T) {
	ctx := context.Background()
	r := NewClientRepo()

	c := clients.Client{ID: "c1", Name: "Ana García", DNI: "12345678Z", Email: "ana@example.com", Active: true}
	require.NoError(t, r.Create(ctx, c))

	dup := c
	dup.ID = "c2"
	assert.ErrorIs(t, r.Create(ctx, dup), apperr.ErrDuplicate)
	assert.ErrorIs(t, r.Update(ctx, clients.Client{ID: "nope"}), apperr.ErrNotFound)

	got, err := r.Search(ctx, "EXAMPLE")
	require.NoError(t, err)
	assert.Len(t, got, 1)

	c.Active = false
	require.NoError(t, r.Update(ctx, c))
	active, err := r.List(ctx, false)
	require.NoError(t, err)
	assert.Empty(t, active)
}

func TestPetRepo_DoesNotShareWeight(t *testing.T) {
	ctx := context.Background()
	r := NewPetRepo()

	w := 10.0
	require.NoError(t, r.Create(ctx, pets.Pet{ID: "p1", ClientID: "c1", Name: "Luna", WeightKg: &w, Active: true}))
	w = 99

	got, err := r.GetByID(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, 10.0, *got.WeightKg)

	_, err = r.GetByMicrochip(ctx, "")
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestAppointmentRepo_Ranges(t *testing.T) {
	ctx := context.Background()
	r := NewAppointmentRepo()

	madrid, err := time.LoadLocation("Europe/Madrid")
	require.NoError(t, err)

	// 23:30 en Madrid es otro día en UTC
	late := time.Date(2025, 6, 16, 23, 30, 0, 0, madrid)
	require.NoError(t, r.Create(ctx, appointments.Appointment{ID: "a1", Veterinarian: "Dr. X", StartsAt: late}))
	require.NoError(t, r.Create(ctx, appointments.Appointment{ID: "a2", Veterinarian: "Dr. X", StartsAt: late.Add(time.Hour)}))

	got, err := r.ListByVeterinarianAndDate(ctx, "Dr. X", time.Date(2025, 6, 16, 0, 0, 0, 0, madrid))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "a1", got[0].ID)

	got, err = r.ListByDateRange(ctx, late, late.Add(time.Hour))
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestInvoiceRepo(t *testing.T) {
	ctx := context.Background()
	r := NewInvoiceRepo()

	_, _, ok, err := r.LastNumber(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	inv := invoices.Invoice{ID: "i1", Number: "F-2025-00002", ClientID: "c1"}
	inv.Lines = []invoices.Line{{ID: "l1", Concept: "Consulta", Quantity: 1, UnitPrice: decimal.NewFromInt(10)}}
	require.NoError(t, r.Create(ctx, inv))
	require.NoError(t, r.Create(ctx, invoices.Invoice{ID: "i0", Number: "F-2025-00001", ClientID: "c2"}))

	dup := inv
	dup.ID = "i9"
	assert.ErrorIs(t, r.Create(ctx, dup), apperr.ErrDuplicate)

	last, count, ok, err := r.LastNumber(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 2, count)
	assert.Equal(t, "F-2025-00002", last)

	// la copia devuelta no altera lo almacenado
	got, err := r.GetByID(ctx, "i1")
	require.NoError(t, err)
	got.Lines[0].Concept = "Cambiado"
	again, err := r.GetByNumber(ctx, "F-2025-00002")
	require.NoError(t, err)
	assert.Equal(t, "Consulta", again.Lines[0].Concept)

	byClient, err := r.ListByClient(ctx, "c2")
	require.NoError(t, err)
	require.Len(t, byClient, 1)
	assert.Equal(t, "i0", byClient[0].ID)
}

func TestInvoiceRepo_LastNumberPastFiveDigits(t *testing.T) {
	ctx := context.Background()
	r := NewInvoiceRepo()

	require.NoError(t, r.Create(ctx, invoices.Invoice{ID: "i1", Number: "F-2025-99999", ClientID: "c1"}))
	require.NoError(t, r.Create(ctx, invoices.Invoice{ID: "i2", Number: "F-2025-100000", ClientID: "c1"}))

	last, count, ok, err := r.LastNumber(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "F-2025-100000", last)

	next := invoices.NextNumber(2025, last, ok, count)
	assert.Equal(t, "F-2025-100001", next)
	_, err = r.GetByNumber(ctx, next)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

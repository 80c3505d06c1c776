package appointments

import (
	"testing"
	"time"

	"vet-clinic/internal/domain/apperr"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2025, 6, 15, 9, 0, 0, 0, time.UTC)

func at(h, m int) time.Time {
	return time.Date(2025, 6, 16, h, m, 0, 0, time.UTC)
}

func newAppt(vet string, start time.Time, minutes int) Appointment {
	return Appointment{
		ID:              "a",
		ClientID:        "c1",
		PetID:           "p1",
		Veterinarian:    vet,
		StartsAt:        start,
		DurationMinutes: minutes,
		Reason:          "Revisión",
		State:           StateScheduled,
	}
}

func TestOverlaps(t *testing.T) {
	cases := []struct {
		name string
		a, b Appointment
		want bool
	}{
		{"partial", newAppt("Dr. X", at(10, 0), 30), newAppt("Dr. X", at(10, 15), 30), true},
		{"contained", newAppt("Dr. X", at(10, 0), 60), newAppt("Dr. X", at(10, 15), 15), true},
		{"same start", newAppt("Dr. X", at(10, 0), 30), newAppt("Dr. X", at(10, 0), 30), true},
		{"back to back", newAppt("Dr. X", at(10, 0), 30), newAppt("Dr. X", at(10, 30), 30), false},
		{"disjoint", newAppt("Dr. X", at(10, 0), 30), newAppt("Dr. X", at(12, 0), 30), false},
		{"different vet", newAppt("Dr. X", at(10, 0), 30), newAppt("Dra. Y", at(10, 0), 30), false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.a.Overlaps(tc.b))
			assert.Equal(t, tc.want, tc.b.Overlaps(tc.a), "overlap must be symmetric")
		})
	}
}

func TestValidate(t *testing.T) {
	t.Run("new appointment in the past", func(t *testing.T) {
		a := newAppt("Dr. X", now.Add(-time.Hour), 30)
		a.ID = ""
		assert.ErrorIs(t, a.Validate(now), apperr.ErrValidation)
	})

	t.Run("persisted appointment in the past is allowed", func(t *testing.T) {
		a := newAppt("Dr. X", now.Add(-time.Hour), 30)
		assert.NoError(t, a.Validate(now))
	})

	t.Run("duration bounds", func(t *testing.T) {
		a := newAppt("Dr. X", at(10, 0), 0)
		assert.ErrorIs(t, a.Validate(now), apperr.ErrValidation)
		a.DurationMinutes = MaxDurationMinutes + 1
		assert.ErrorIs(t, a.Validate(now), apperr.ErrValidation)
		a.DurationMinutes = MaxDurationMinutes
		assert.NoError(t, a.Validate(now))
	})

	t.Run("short reason", func(t *testing.T) {
		a := newAppt("Dr. X", at(10, 0), 30)
		a.Reason = " ab "
		assert.ErrorIs(t, a.Validate(now), apperr.ErrValidation)
	})

	t.Run("cancelled without reason", func(t *testing.T) {
		a := newAppt("Dr. X", at(10, 0), 30)
		a.State = StateCancelled
		assert.ErrorIs(t, a.Validate(now), apperr.ErrValidation)
	})
}

func TestStateMachine(t *testing.T) {
	t.Run("start only from scheduled", func(t *testing.T) {
		a := newAppt("Dr. X", at(10, 0), 30)
		require.NoError(t, a.Start(now))
		assert.Equal(t, StateInProgress, a.State)
		require.NotNil(t, a.ModifiedAt)

		err := a.Start(now)
		assert.ErrorIs(t, err, apperr.ErrInvalidTransition)
		assert.ErrorIs(t, err, apperr.ErrBusinessRule)
	})

	t.Run("complete from scheduled is allowed", func(t *testing.T) {
		a := newAppt("Dr. X", at(10, 0), 30)
		require.NoError(t, a.Complete("  Otitis  ", "Gotas", now))
		assert.Equal(t, StateCompleted, a.State)
		assert.Equal(t, "Otitis", a.Diagnosis)
	})

	t.Run("complete requires diagnosis", func(t *testing.T) {
		a := newAppt("Dr. X", at(10, 0), 30)
		assert.ErrorIs(t, a.Complete("ok", "", now), apperr.ErrValidation)
		assert.Equal(t, StateScheduled, a.State)
	})

	t.Run("complete cancelled fails", func(t *testing.T) {
		a := newAppt("Dr. X", at(10, 0), 30)
		require.NoError(t, a.Cancel("No puede venir", now))
		assert.ErrorIs(t, a.Complete("Otitis", "", now), apperr.ErrBusinessRule)
	})

	t.Run("cancel completed fails", func(t *testing.T) {
		a := newAppt("Dr. X", at(10, 0), 30)
		require.NoError(t, a.Complete("Otitis", "", now))
		assert.ErrorIs(t, a.Cancel("Cambio de planes", now), apperr.ErrBusinessRule)
	})

	t.Run("terminal states stay terminal", func(t *testing.T) {
		done := newAppt("Dr. X", at(10, 0), 30)
		require.NoError(t, done.Complete("Otitis", "", now))
		assert.ErrorIs(t, done.Complete("Otitis", "", now), apperr.ErrInvalidTransition)

		gone := newAppt("Dr. X", at(10, 0), 30)
		require.NoError(t, gone.Cancel("No puede venir", now))
		assert.ErrorIs(t, gone.Cancel("Otra vez", now), apperr.ErrInvalidTransition)
		assert.ErrorIs(t, gone.Reschedule(at(12, 0), now), apperr.ErrInvalidTransition)
	})

	t.Run("cancel requires reason", func(t *testing.T) {
		a := newAppt("Dr. X", at(10, 0), 30)
		assert.ErrorIs(t, a.Cancel("  ", now), apperr.ErrValidation)
	})
}

func TestReschedule(t *testing.T) {
	t.Run("must be strictly future", func(t *testing.T) {
		a := newAppt("Dr. X", at(10, 0), 30)
		assert.ErrorIs(t, a.Reschedule(now, now), apperr.ErrValidation)
		assert.ErrorIs(t, a.Reschedule(now.Add(-time.Minute), now), apperr.ErrValidation)
		assert.Equal(t, at(10, 0), a.StartsAt)
	})

	t.Run("in progress goes back to scheduled", func(t *testing.T) {
		a := newAppt("Dr. X", at(10, 0), 30)
		require.NoError(t, a.Start(now))
		require.NoError(t, a.Reschedule(at(12, 0), now))
		assert.Equal(t, StateScheduled, a.State)
		assert.Equal(t, at(12, 0), a.StartsAt)
	})
}

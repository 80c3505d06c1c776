package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"vet-clinic/internal/domain/appointments"
	"vet-clinic/internal/domain/apperr"
)

type AppointmentsRepo struct {
	db *sql.DB
}

func NewAppointmentsRepo(db *sql.DB) *AppointmentsRepo {
	return &AppointmentsRepo{db: db}
}

const appointmentColumns = `
	id, client_id, pet_id,
	veterinarian, starts_at, duration_minutes, reason,
	state, notes, diagnosis, treatment, cancellation_reason,
	created_at, modified_at`

func (r *AppointmentsRepo) Create(ctx context.Context, a appointments.Appointment) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO appointments (`+appointmentColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14)
	`,
		a.ID,
		a.ClientID,
		a.PetID,
		a.Veterinarian,
		a.StartsAt,
		a.DurationMinutes,
		a.Reason,
		a.State,
		a.Notes,
		a.Diagnosis,
		a.Treatment,
		a.CancellationReason,
		a.CreatedAt,
		nullTime(a.ModifiedAt),
	)
	return mapWriteErr(err, "appointment %s already exists", a.ID)
}

func (r *AppointmentsRepo) Update(ctx context.Context, a appointments.Appointment) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE appointments
		SET
			veterinarian = $2,
			starts_at = $3,
			duration_minutes = $4,
			reason = $5,
			state = $6,
			notes = $7,
			diagnosis = $8,
			treatment = $9,
			cancellation_reason = $10,
			modified_at = $11
		WHERE id = $1
	`,
		a.ID,
		a.Veterinarian,
		a.StartsAt,
		a.DurationMinutes,
		a.Reason,
		a.State,
		a.Notes,
		a.Diagnosis,
		a.Treatment,
		a.CancellationReason,
		nullTime(a.ModifiedAt),
	)
	if err != nil {
		return err
	}
	return checkAffected(res, "cita %s no encontrada", a.ID)
}

func (r *AppointmentsRepo) GetByID(ctx context.Context, id string) (appointments.Appointment, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+appointmentColumns+` FROM appointments WHERE id = $1`, id)
	a, err := scanAppointment(row)
	if errors.Is(err, sql.ErrNoRows) {
		return appointments.Appointment{}, apperr.NotFound("cita %s no encontrada", id)
	}
	return a, err
}

func (r *AppointmentsRepo) Delete(ctx context.Context, id string) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM appointments WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *AppointmentsRepo) ListAll(ctx context.Context) ([]appointments.Appointment, error) {
	return r.query(ctx, `SELECT `+appointmentColumns+` FROM appointments ORDER BY starts_at ASC`)
}

func (r *AppointmentsRepo) ListByVeterinarianAndDate(ctx context.Context, vet string, day time.Time) ([]appointments.Appointment, error) {
	from, to := appointments.DayBounds(day)
	return r.query(ctx, `
		SELECT `+appointmentColumns+`
		FROM appointments
		WHERE veterinarian = $1 AND starts_at >= $2 AND starts_at < $3
		ORDER BY starts_at ASC
	`, vet, from, to)
}

func (r *AppointmentsRepo) ListByDateRange(ctx context.Context, from, to time.Time) ([]appointments.Appointment, error) {
	return r.query(ctx, `
		SELECT `+appointmentColumns+`
		FROM appointments
		WHERE starts_at BETWEEN $1 AND $2
		ORDER BY starts_at ASC
	`, from, to)
}

func (r *AppointmentsRepo) ListByState(ctx context.Context, state appointments.State) ([]appointments.Appointment, error) {
	return r.query(ctx, `
		SELECT `+appointmentColumns+`
		FROM appointments
		WHERE state = $1
		ORDER BY starts_at ASC
	`, state)
}

func (r *AppointmentsRepo) query(ctx context.Context, q string, args ...any) ([]appointments.Appointment, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]appointments.Appointment, 0)
	for rows.Next() {
		a, err := scanAppointment(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func scanAppointment(s scanner) (appointments.Appointment, error) {
	var (
		a        appointments.Appointment
		modified sql.NullTime
	)
	err := s.Scan(
		&a.ID,
		&a.ClientID,
		&a.PetID,
		&a.Veterinarian,
		&a.StartsAt,
		&a.DurationMinutes,
		&a.Reason,
		&a.State,
		&a.Notes,
		&a.Diagnosis,
		&a.Treatment,
		&a.CancellationReason,
		&a.CreatedAt,
		&modified,
	)
	if err != nil {
		return appointments.Appointment{}, err
	}
	a.ModifiedAt = timePtr(modified)
	return a, nil
}

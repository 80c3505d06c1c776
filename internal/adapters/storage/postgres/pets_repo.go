package postgres

import (
	"context"
	"database/sql"
	"errors"

	"vet-clinic/internal/domain/apperr"
	"vet-clinic/internal/domain/pets"
)

type PetsRepo struct {
	db *sql.DB
}

func NewPetsRepo(db *sql.DB) *PetsRepo {
	return &PetsRepo{db: db}
}

const petColumns = `
	id, client_id,
	name, species, breed, sex,
	birth_date, color, weight_kg, microchip, notes,
	active, registered_at`

func (r *PetsRepo) Create(ctx context.Context, p pets.Pet) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO pets (`+petColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)
	`,
		p.ID,
		p.ClientID,
		p.Name,
		p.Species,
		p.Breed,
		p.Sex,
		p.BirthDate,
		p.Color,
		toNullFloat(p.WeightKg),
		nullString(p.Microchip),
		p.Notes,
		p.Active,
		p.RegisteredAt,
	)
	return mapWriteErr(err, "el microchip %s ya está registrado", p.Microchip)
}

func (r *PetsRepo) Update(ctx context.Context, p pets.Pet) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE pets
		SET
			name = $2,
			breed = $3,
			color = $4,
			weight_kg = $5,
			microchip = $6,
			notes = $7,
			active = $8
		WHERE id = $1
	`,
		p.ID,
		p.Name,
		p.Breed,
		p.Color,
		toNullFloat(p.WeightKg),
		nullString(p.Microchip),
		p.Notes,
		p.Active,
	)
	if err != nil {
		return mapWriteErr(err, "el microchip %s ya está registrado", p.Microchip)
	}
	return checkAffected(res, "mascota %s no encontrada", p.ID)
}

func (r *PetsRepo) GetByID(ctx context.Context, id string) (pets.Pet, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+petColumns+` FROM pets WHERE id = $1`, id)
	p, err := scanPet(row)
	if errors.Is(err, sql.ErrNoRows) {
		return pets.Pet{}, apperr.NotFound("mascota %s no encontrada", id)
	}
	return p, err
}

func (r *PetsRepo) GetByMicrochip(ctx context.Context, microchip string) (pets.Pet, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+petColumns+` FROM pets WHERE microchip = $1`, microchip)
	p, err := scanPet(row)
	if errors.Is(err, sql.ErrNoRows) {
		return pets.Pet{}, apperr.NotFound("no existe mascota con microchip %s", microchip)
	}
	return p, err
}

func (r *PetsRepo) ListByClient(ctx context.Context, clientID string, includeInactive bool) ([]pets.Pet, error) {
	return r.query(ctx, `
		SELECT `+petColumns+`
		FROM pets
		WHERE client_id = $1 AND (active OR $2)
		ORDER BY registered_at ASC
	`, clientID, includeInactive)
}

func (r *PetsRepo) List(ctx context.Context, includeInactive bool) ([]pets.Pet, error) {
	return r.query(ctx, `
		SELECT `+petColumns+`
		FROM pets
		WHERE active OR $1
		ORDER BY registered_at ASC
	`, includeInactive)
}

func (r *PetsRepo) Search(ctx context.Context, term string) ([]pets.Pet, error) {
	return r.query(ctx, `
		SELECT `+petColumns+`
		FROM pets
		WHERE name ILIKE '%' || $1 || '%'
		   OR microchip ILIKE '%' || $1 || '%'
		ORDER BY registered_at ASC
	`, term)
}

func (r *PetsRepo) query(ctx context.Context, q string, args ...any) ([]pets.Pet, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]pets.Pet, 0)
	for rows.Next() {
		p, err := scanPet(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func scanPet(s scanner) (pets.Pet, error) {
	var (
		p         pets.Pet
		weight    sql.NullFloat64
		microchip sql.NullString
	)
	err := s.Scan(
		&p.ID,
		&p.ClientID,
		&p.Name,
		&p.Species,
		&p.Breed,
		&p.Sex,
		&p.BirthDate,
		&p.Color,
		&weight,
		&microchip,
		&p.Notes,
		&p.Active,
		&p.RegisteredAt,
	)
	if err != nil {
		return pets.Pet{}, err
	}
	if weight.Valid {
		w := weight.Float64
		p.WeightKg = &w
	}
	p.Microchip = microchip.String
	return p, nil
}

func toNullFloat(f *float64) sql.NullFloat64 {
	if f == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *f, Valid: true}
}

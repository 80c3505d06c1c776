package postgres

import (
	"context"
	"database/sql"
	"errors"

	"vet-clinic/internal/domain/apperr"
	"vet-clinic/internal/domain/clients"
)

type ClientsRepo struct {
	db *sql.DB
}

func NewClientsRepo(db *sql.DB) *ClientsRepo {
	return &ClientsRepo{db: db}
}

const clientColumns = `id, name, dni, phone, email, address, notes, active, registered_at`

func (r *ClientsRepo) Create(ctx context.Context, c clients.Client) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO clients (`+clientColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
	`,
		c.ID,
		c.Name,
		c.DNI,
		c.Phone,
		c.Email,
		c.Address,
		c.Notes,
		c.Active,
		c.RegisteredAt,
	)
	return mapWriteErr(err, "ya existe un cliente registrado con el DNI %s", c.DNI)
}

func (r *ClientsRepo) Update(ctx context.Context, c clients.Client) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE clients
		SET
			name = $2,
			phone = $3,
			email = $4,
			address = $5,
			notes = $6,
			active = $7
		WHERE id = $1
	`,
		c.ID,
		c.Name,
		c.Phone,
		c.Email,
		c.Address,
		c.Notes,
		c.Active,
	)
	if err != nil {
		return err
	}
	return checkAffected(res, "cliente %s no encontrado", c.ID)
}

func (r *ClientsRepo) GetByID(ctx context.Context, id string) (clients.Client, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+clientColumns+` FROM clients WHERE id = $1`, id)
	c, err := scanClient(row)
	if errors.Is(err, sql.ErrNoRows) {
		return clients.Client{}, apperr.NotFound("cliente %s no encontrado", id)
	}
	return c, err
}

func (r *ClientsRepo) GetByDNI(ctx context.Context, dni string) (clients.Client, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+clientColumns+` FROM clients WHERE dni = $1`, dni)
	c, err := scanClient(row)
	if errors.Is(err, sql.ErrNoRows) {
		return clients.Client{}, apperr.NotFound("no existe cliente con DNI %s", dni)
	}
	return c, err
}

func (r *ClientsRepo) List(ctx context.Context, includeInactive bool) ([]clients.Client, error) {
	return r.query(ctx, `
		SELECT `+clientColumns+`
		FROM clients
		WHERE active OR $1
		ORDER BY name ASC
	`, includeInactive)
}

func (r *ClientsRepo) Search(ctx context.Context, term string) ([]clients.Client, error) {
	return r.query(ctx, `
		SELECT `+clientColumns+`
		FROM clients
		WHERE name ILIKE '%' || $1 || '%'
		   OR dni ILIKE '%' || $1 || '%'
		   OR phone LIKE '%' || $1 || '%'
		   OR email ILIKE '%' || $1 || '%'
		ORDER BY name ASC
	`, term)
}

func (r *ClientsRepo) query(ctx context.Context, q string, args ...any) ([]clients.Client, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]clients.Client, 0)
	for rows.Next() {
		c, err := scanClient(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func scanClient(s scanner) (clients.Client, error) {
	var c clients.Client
	err := s.Scan(
		&c.ID,
		&c.Name,
		&c.DNI,
		&c.Phone,
		&c.Email,
		&c.Address,
		&c.Notes,
		&c.Active,
		&c.RegisteredAt,
	)
	return c, err
}

package postgres

import (
	"context"
	"database/sql"
	"errors"

	"vet-clinic/internal/domain/apperr"
	"vet-clinic/internal/domain/invoices"
)

type InvoicesRepo struct {
	db *sql.DB
}

func NewInvoicesRepo(db *sql.DB) *InvoicesRepo {
	return &InvoicesRepo{db: db}
}

const invoiceColumns = `
	id, number, appointment_id, client_id,
	issued_at, paid, paid_at, payment_method,
	notes, created_at`

// Create inserta cabecera y líneas en una sola transacción.
func (r *InvoicesRepo) Create(ctx context.Context, inv invoices.Invoice) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO invoices (`+invoiceColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
	`,
		inv.ID,
		inv.Number,
		inv.AppointmentID,
		inv.ClientID,
		inv.IssuedAt,
		inv.Paid,
		nullTime(inv.PaidAt),
		inv.PaymentMethod,
		inv.Notes,
		inv.CreatedAt,
	)
	if err != nil {
		return mapWriteErr(err, "el número de factura %s ya existe", inv.Number)
	}

	if err := insertLines(ctx, tx, inv); err != nil {
		return err
	}
	return tx.Commit()
}

// Update persiste la cabecera y reescribe las líneas dentro de la misma transacción.
func (r *InvoicesRepo) Update(ctx context.Context, inv invoices.Invoice) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx, `
		UPDATE invoices
		SET
			paid = $2,
			paid_at = $3,
			payment_method = $4,
			notes = $5
		WHERE id = $1
	`,
		inv.ID,
		inv.Paid,
		nullTime(inv.PaidAt),
		inv.PaymentMethod,
		inv.Notes,
	)
	if err != nil {
		return err
	}
	if err := checkAffected(res, "factura %s no encontrada", inv.ID); err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM invoice_lines WHERE invoice_id = $1`, inv.ID); err != nil {
		return err
	}
	if err := insertLines(ctx, tx, inv); err != nil {
		return err
	}
	return tx.Commit()
}

func insertLines(ctx context.Context, tx *sql.Tx, inv invoices.Invoice) error {
	for i, l := range inv.Lines {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO invoice_lines (id, invoice_id, position, concept, quantity, unit_price, tax_percent)
			VALUES ($1,$2,$3,$4,$5,$6,$7)
		`,
			l.ID,
			inv.ID,
			i,
			l.Concept,
			l.Quantity,
			l.UnitPrice,
			l.TaxPercent,
		)
		if err != nil {
			return err
		}
	}
	return nil
}

func (r *InvoicesRepo) GetByID(ctx context.Context, id string) (invoices.Invoice, error) {
	return r.getOne(ctx, `SELECT `+invoiceColumns+` FROM invoices WHERE id = $1`, id)
}

func (r *InvoicesRepo) GetByNumber(ctx context.Context, number string) (invoices.Invoice, error) {
	return r.getOne(ctx, `SELECT `+invoiceColumns+` FROM invoices WHERE number = $1`, number)
}

func (r *InvoicesRepo) ListAll(ctx context.Context) ([]invoices.Invoice, error) {
	return r.query(ctx, `SELECT `+invoiceColumns+` FROM invoices ORDER BY number ASC`)
}

func (r *InvoicesRepo) ListByClient(ctx context.Context, clientID string) ([]invoices.Invoice, error) {
	return r.query(ctx, `
		SELECT `+invoiceColumns+`
		FROM invoices
		WHERE client_id = $1
		ORDER BY number ASC
	`, clientID)
}

// LastNumber elige el máximo por secuencia numérica; ORDER BY number fallaría
// al pasar de 5 a 6 dígitos.
func (r *InvoicesRepo) LastNumber(ctx context.Context) (string, int, bool, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT number FROM invoices`)
	if err != nil {
		return "", 0, false, err
	}
	defer rows.Close()

	var numbers []string
	for rows.Next() {
		var n string
		if err := rows.Scan(&n); err != nil {
			return "", 0, false, err
		}
		numbers = append(numbers, n)
	}
	if err := rows.Err(); err != nil {
		return "", 0, false, err
	}
	last, ok := invoices.HighestNumber(numbers)
	return last, len(numbers), ok, nil
}

func (r *InvoicesRepo) getOne(ctx context.Context, q string, key string) (invoices.Invoice, error) {
	inv, err := scanInvoice(r.db.QueryRowContext(ctx, q, key))
	if errors.Is(err, sql.ErrNoRows) {
		return invoices.Invoice{}, apperr.NotFound("factura %s no encontrada", key)
	}
	if err != nil {
		return invoices.Invoice{}, err
	}
	lines, err := r.linesOf(ctx, []string{inv.ID})
	if err != nil {
		return invoices.Invoice{}, err
	}
	inv.Lines = lines[inv.ID]
	return inv, nil
}

func (r *InvoicesRepo) query(ctx context.Context, q string, args ...any) ([]invoices.Invoice, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]invoices.Invoice, 0)
	ids := make([]string, 0)
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, inv)
		ids = append(ids, inv.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return out, nil
	}

	lines, err := r.linesOf(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range out {
		out[i].Lines = lines[out[i].ID]
	}
	return out, nil
}

func (r *InvoicesRepo) linesOf(ctx context.Context, ids []string) (map[string][]invoices.Line, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, invoice_id, concept, quantity, unit_price, tax_percent
		FROM invoice_lines
		WHERE invoice_id = ANY($1)
		ORDER BY invoice_id, position ASC
	`, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[string][]invoices.Line, len(ids))
	for rows.Next() {
		var l invoices.Line
		if err := rows.Scan(&l.ID, &l.InvoiceID, &l.Concept, &l.Quantity, &l.UnitPrice, &l.TaxPercent); err != nil {
			return nil, err
		}
		out[l.InvoiceID] = append(out[l.InvoiceID], l)
	}
	return out, rows.Err()
}

func scanInvoice(s scanner) (invoices.Invoice, error) {
	var (
		inv    invoices.Invoice
		paidAt sql.NullTime
	)
	err := s.Scan(
		&inv.ID,
		&inv.Number,
		&inv.AppointmentID,
		&inv.ClientID,
		&inv.IssuedAt,
		&inv.Paid,
		&paidAt,
		&inv.PaymentMethod,
		&inv.Notes,
		&inv.CreatedAt,
	)
	if err != nil {
		return invoices.Invoice{}, err
	}
	inv.PaidAt = timePtr(paidAt)
	return inv, nil
}

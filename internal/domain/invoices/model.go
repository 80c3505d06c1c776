package invoices

import (
	"strings"
	"time"

	"vet-clinic/internal/domain/apperr"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PaymentMethod es la forma de pago de una factura.
// @Enum Efectivo, Tarjeta, Transferencia
type PaymentMethod string

const (
	PaymentCash     PaymentMethod = "Efectivo"
	PaymentCard     PaymentMethod = "Tarjeta"
	PaymentTransfer PaymentMethod = "Transferencia"
)

func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentCash, PaymentCard, PaymentTransfer:
		return true
	}
	return false
}

const minConceptLen = 3

var hundred = decimal.NewFromInt(100)

// Line es una línea de factura. Los importes usan aritmética decimal exacta.
type Line struct {
	ID         string
	InvoiceID  string
	Concept    string
	Quantity   int
	UnitPrice  decimal.Decimal
	TaxPercent decimal.Decimal
}

// NewLine construye y valida una línea.
func NewLine(concept string, quantity int, unitPrice, taxPercent decimal.Decimal) (Line, error) {
	l := Line{
		ID:         uuid.NewString(),
		Concept:    strings.TrimSpace(concept),
		Quantity:   quantity,
		UnitPrice:  unitPrice,
		TaxPercent: taxPercent,
	}
	if err := l.Validate(); err != nil {
		return Line{}, err
	}
	return l, nil
}

func (l Line) Validate() error {
	if len([]rune(strings.TrimSpace(l.Concept))) < minConceptLen {
		return apperr.Validation("el concepto debe tener al menos %d caracteres", minConceptLen)
	}
	if l.Quantity <= 0 {
		return apperr.Validation("la cantidad debe ser positiva")
	}
	if l.UnitPrice.IsNegative() {
		return apperr.Validation("el precio unitario no puede ser negativo")
	}
	if l.TaxPercent.IsNegative() || l.TaxPercent.GreaterThan(hundred) {
		return apperr.Validation("el IVA debe estar entre 0 y 100")
	}
	return nil
}

// Subtotal = cantidad * precio unitario.
func (l Line) Subtotal() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Tax = subtotal * (IVA / 100).
func (l Line) Tax() decimal.Decimal {
	return l.Subtotal().Mul(l.TaxPercent.Shift(-2))
}

func (l Line) Total() decimal.Decimal {
	return l.Subtotal().Add(l.Tax())
}

// Invoice se emite a partir de una cita completada. Las líneas van en orden de alta.
type Invoice struct {
	ID            string
	Number        string
	AppointmentID string
	ClientID      string

	IssuedAt time.Time
	Lines    []Line

	Paid          bool
	PaidAt        *time.Time
	PaymentMethod PaymentMethod

	Notes     string
	CreatedAt time.Time
}

// Validate comprueba los invariantes de cabecera; las líneas se validan al crearse.
func (inv Invoice) Validate(now time.Time) error {
	if strings.TrimSpace(inv.Number) == "" {
		return apperr.Validation("el número de factura es obligatorio")
	}
	if strings.TrimSpace(inv.AppointmentID) == "" {
		return apperr.Validation("debe asociarse a una cita válida")
	}
	if strings.TrimSpace(inv.ClientID) == "" {
		return apperr.Validation("debe asociarse a un cliente válido")
	}
	if inv.IssuedAt.IsZero() {
		return apperr.Validation("la fecha de emisión es obligatoria")
	}
	if inv.IssuedAt.After(now) {
		return apperr.Validation("la fecha de emisión no puede ser futura")
	}
	if inv.PaidAt != nil && inv.PaidAt.Before(inv.IssuedAt) {
		return apperr.Validation("la fecha de pago no puede ser anterior a la de emisión")
	}
	if inv.Paid {
		if inv.PaidAt == nil {
			return apperr.Validation("una factura pagada debe tener fecha de pago")
		}
		if !inv.PaymentMethod.Valid() {
			return apperr.Validation("método de pago inválido: %q", inv.PaymentMethod)
		}
	}
	return nil
}

// AddLine añade una línea al final. Las facturas pagadas no se modifican.
func (inv *Invoice) AddLine(l Line) error {
	if inv.Paid {
		return apperr.BusinessRule("no se pueden añadir líneas a una factura pagada")
	}
	if err := l.Validate(); err != nil {
		return err
	}
	l.InvoiceID = inv.ID
	inv.Lines = append(inv.Lines, l)
	return nil
}

func (inv *Invoice) RemoveLine(lineID string) error {
	if inv.Paid {
		return apperr.BusinessRule("no se pueden eliminar líneas de una factura pagada")
	}
	for i, l := range inv.Lines {
		if l.ID == lineID {
			inv.Lines = append(inv.Lines[:i], inv.Lines[i+1:]...)
			return nil
		}
	}
	return apperr.Validation("la línea %s no pertenece a la factura", lineID)
}

func (inv Invoice) Subtotal() decimal.Decimal {
	sum := decimal.Zero
	for _, l := range inv.Lines {
		sum = sum.Add(l.Subtotal())
	}
	return sum
}

func (inv Invoice) TotalTax() decimal.Decimal {
	sum := decimal.Zero
	for _, l := range inv.Lines {
		sum = sum.Add(l.Tax())
	}
	return sum
}

func (inv Invoice) Total() decimal.Decimal {
	sum := decimal.Zero
	for _, l := range inv.Lines {
		sum = sum.Add(l.Total())
	}
	return sum
}

// MarkPaid registra el pago. paidAt nil = now.
func (inv *Invoice) MarkPaid(method PaymentMethod, paidAt *time.Time, now time.Time) error {
	if inv.Paid {
		return apperr.BusinessRule("la factura %s ya está pagada", inv.Number)
	}
	if len(inv.Lines) == 0 {
		return apperr.BusinessRule("no se puede pagar una factura sin líneas")
	}
	if !method.Valid() {
		return apperr.Validation("método de pago inválido: %q", method)
	}

	at := now
	if paidAt != nil {
		at = *paidAt
	}
	if at.Before(inv.IssuedAt) {
		return apperr.Validation("la fecha de pago no puede ser anterior a la de emisión")
	}

	inv.Paid = true
	inv.PaidAt = &at
	inv.PaymentMethod = method
	return nil
}

// Summary es la vista resumida de una factura.
type Summary struct {
	Number        string          `json:"number"`
	IssuedAt      time.Time       `json:"issued_at"`
	LineCount     int             `json:"line_count"`
	Subtotal      decimal.Decimal `json:"subtotal"`
	TotalTax      decimal.Decimal `json:"total_tax"`
	Total         decimal.Decimal `json:"total"`
	Paid          bool            `json:"paid"`
	PaymentMethod PaymentMethod   `json:"payment_method,omitempty"`
	PaidAt        *time.Time      `json:"paid_at,omitempty"`
}

func (inv Invoice) Summary() Summary {
	return Summary{
		Number:        inv.Number,
		IssuedAt:      inv.IssuedAt,
		LineCount:     len(inv.Lines),
		Subtotal:      inv.Subtotal(),
		TotalTax:      inv.TotalTax(),
		Total:         inv.Total(),
		Paid:          inv.Paid,
		PaymentMethod: inv.PaymentMethod,
		PaidAt:        inv.PaidAt,
	}
}

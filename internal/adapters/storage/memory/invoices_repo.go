package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"vet-clinic/internal/domain/apperr"
	"vet-clinic/internal/domain/invoices"
)

// invoiceRepo guarda factura y líneas bajo el mismo lock: el alta es atómica.
type invoiceRepo struct {
	mu       sync.RWMutex
	byID     map[string]invoices.Invoice
	byNumber map[string]string
}

func NewInvoiceRepo() invoices.Repository {
	return &invoiceRepo{
		byID:     make(map[string]invoices.Invoice),
		byNumber: make(map[string]string),
	}
}

func (r *invoiceRepo) Create(ctx context.Context, inv invoices.Invoice) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(inv.ID) == "" {
		return apperr.Validation("invoice id required")
	}
	if _, exists := r.byID[inv.ID]; exists {
		return apperr.Duplicate("invoice %s already exists", inv.ID)
	}
	if _, exists := r.byNumber[inv.Number]; exists {
		return apperr.Duplicate("el número de factura %s ya existe", inv.Number)
	}
	r.byID[inv.ID] = cloneInvoice(inv)
	r.byNumber[inv.Number] = inv.ID
	return nil
}

func (r *invoiceRepo) Update(ctx context.Context, inv invoices.Invoice) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	prev, exists := r.byID[inv.ID]
	if !exists {
		return apperr.NotFound("factura %s no encontrada", inv.ID)
	}
	if prev.Number != inv.Number {
		delete(r.byNumber, prev.Number)
		r.byNumber[inv.Number] = inv.ID
	}
	r.byID[inv.ID] = cloneInvoice(inv)
	return nil
}

func (r *invoiceRepo) GetByID(ctx context.Context, id string) (invoices.Invoice, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	inv, ok := r.byID[id]
	if !ok {
		return invoices.Invoice{}, apperr.NotFound("factura %s no encontrada", id)
	}
	return cloneInvoice(inv), nil
}

func (r *invoiceRepo) GetByNumber(ctx context.Context, number string) (invoices.Invoice, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byNumber[number]
	if !ok {
		return invoices.Invoice{}, apperr.NotFound("factura %s no encontrada", number)
	}
	return cloneInvoice(r.byID[id]), nil
}

func (r *invoiceRepo) ListAll(ctx context.Context) ([]invoices.Invoice, error) {
	return r.filter(func(invoices.Invoice) bool { return true }), nil
}

func (r *invoiceRepo) ListByClient(ctx context.Context, clientID string) ([]invoices.Invoice, error) {
	return r.filter(func(inv invoices.Invoice) bool {
		return inv.ClientID == clientID
	}), nil
}

// LastNumber devuelve el número con la secuencia más alta emitida.
func (r *invoiceRepo) LastNumber(ctx context.Context) (string, int, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	numbers := make([]string, 0, len(r.byNumber))
	for number := range r.byNumber {
		numbers = append(numbers, number)
	}
	last, ok := invoices.HighestNumber(numbers)
	return last, len(r.byID), ok, nil
}

func (r *invoiceRepo) filter(keep func(invoices.Invoice) bool) []invoices.Invoice {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]invoices.Invoice, 0)
	for _, inv := range r.byID {
		if keep(inv) {
			out = append(out, cloneInvoice(inv))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Number < out[j].Number
	})
	return out
}

// cloneInvoice copia el slice de líneas y el puntero de pago.
func cloneInvoice(inv invoices.Invoice) invoices.Invoice {
	inv.Lines = append([]invoices.Line(nil), inv.Lines...)
	if inv.PaidAt != nil {
		t := *inv.PaidAt
		inv.PaidAt = &t
	}
	return inv
}

package invoices

import "context"

type Repository interface {
	// Create persiste la factura y todas sus líneas de forma atómica.
	Create(ctx context.Context, inv Invoice) error
	// Update persiste la cabecera y reemplaza las líneas; apperr.ErrNotFound si no existe.
	Update(ctx context.Context, inv Invoice) error
	GetByID(ctx context.Context, id string) (Invoice, error)
	GetByNumber(ctx context.Context, number string) (Invoice, error)
	ListAll(ctx context.Context) ([]Invoice, error)
	ListByClient(ctx context.Context, clientID string) ([]Invoice, error)
	// LastNumber devuelve el número de la última factura creada y el total de facturas.
	LastNumber(ctx context.Context) (number string, count int, ok bool, err error)
}

package clients

import "context"

type Repository interface {
	Create(ctx context.Context, c Client) error
	Update(ctx context.Context, c Client) error
	GetByID(ctx context.Context, id string) (Client, error)
	GetByDNI(ctx context.Context, dni string) (Client, error)
	List(ctx context.Context, includeInactive bool) ([]Client, error)
	// Search busca por nombre, DNI, teléfono o email (case-insensitive, substring).
	Search(ctx context.Context, term string) ([]Client, error)
}

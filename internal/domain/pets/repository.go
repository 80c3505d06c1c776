package pets

import "context"

type Repository interface {
	Create(ctx context.Context, p Pet) error
	Update(ctx context.Context, p Pet) error
	GetByID(ctx context.Context, id string) (Pet, error)
	GetByMicrochip(ctx context.Context, microchip string) (Pet, error)
	ListByClient(ctx context.Context, clientID string, includeInactive bool) ([]Pet, error)
	List(ctx context.Context, includeInactive bool) ([]Pet, error)
	// Search busca por nombre o microchip (case-insensitive, substring).
	Search(ctx context.Context, term string) ([]Pet, error)
}

package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"vet-clinic/internal/domain/apperr"
	"vet-clinic/internal/domain/pets"
)

type petRepo struct {
	mu   sync.RWMutex
	byID map[string]pets.Pet
}

func NewPetRepo() pets.Repository {
	return &petRepo{
		byID: make(map[string]pets.Pet),
	}
}

func (r *petRepo) Create(ctx context.Context, p pets.Pet) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(p.ID) == "" {
		return apperr.Validation("pet id required")
	}
	if _, exists := r.byID[p.ID]; exists {
		return apperr.Duplicate("pet %s already exists", p.ID)
	}
	r.byID[p.ID] = clonePet(p)
	return nil
}

func (r *petRepo) Update(ctx context.Context, p pets.Pet) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[p.ID]; !exists {
		return apperr.NotFound("mascota %s no encontrada", p.ID)
	}
	r.byID[p.ID] = clonePet(p)
	return nil
}

func (r *petRepo) GetByID(ctx context.Context, id string) (pets.Pet, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.byID[id]
	if !ok {
		return pets.Pet{}, apperr.NotFound("mascota %s no encontrada", id)
	}
	return clonePet(p), nil
}

func (r *petRepo) GetByMicrochip(ctx context.Context, microchip string) (pets.Pet, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, p := range r.byID {
		if p.Microchip != "" && p.Microchip == microchip {
			return clonePet(p), nil
		}
	}
	return pets.Pet{}, apperr.NotFound("no existe mascota con microchip %s", microchip)
}

func (r *petRepo) ListByClient(ctx context.Context, clientID string, includeInactive bool) ([]pets.Pet, error) {
	return r.filter(func(p pets.Pet) bool {
		return p.ClientID == clientID && (includeInactive || p.Active)
	}), nil
}

func (r *petRepo) List(ctx context.Context, includeInactive bool) ([]pets.Pet, error) {
	return r.filter(func(p pets.Pet) bool {
		return includeInactive || p.Active
	}), nil
}

func (r *petRepo) Search(ctx context.Context, term string) ([]pets.Pet, error) {
	term = strings.ToLower(term)
	return r.filter(func(p pets.Pet) bool {
		return strings.Contains(strings.ToLower(p.Name), term) ||
			strings.Contains(strings.ToLower(p.Microchip), term)
	}), nil
}

func (r *petRepo) filter(keep func(pets.Pet) bool) []pets.Pet {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]pets.Pet, 0)
	for _, p := range r.byID {
		if keep(p) {
			out = append(out, clonePet(p))
		}
	}

	// Orden estable por fecha de alta
	sort.Slice(out, func(i, j int) bool {
		return out[i].RegisteredAt.Before(out[j].RegisteredAt)
	})
	return out
}

// clonePet evita compartir el puntero de peso entre llamadores.
func clonePet(p pets.Pet) pets.Pet {
	if p.WeightKg != nil {
		w := *p.WeightKg
		p.WeightKg = &w
	}
	return p
}

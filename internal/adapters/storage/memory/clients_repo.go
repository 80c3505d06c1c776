package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"vet-clinic/internal/domain/apperr"
	"vet-clinic/internal/domain/clients"
)

type clientRepo struct {
	mu   sync.RWMutex
	byID map[string]clients.Client
}

func NewClientRepo() clients.Repository {
	return &clientRepo{
		byID: make(map[string]clients.Client),
	}
}

func (r *clientRepo) Create(ctx context.Context, c clients.Client) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(c.ID) == "" {
		return apperr.Validation("client id required")
	}
	if _, exists := r.byID[c.ID]; exists {
		return apperr.Duplicate("client %s already exists", c.ID)
	}
	for _, other := range r.byID {
		if other.DNI == c.DNI {
			return apperr.Duplicate("ya existe un cliente registrado con el DNI %s", c.DNI)
		}
	}
	r.byID[c.ID] = c
	return nil
}

func (r *clientRepo) Update(ctx context.Context, c clients.Client) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[c.ID]; !exists {
		return apperr.NotFound("cliente %s no encontrado", c.ID)
	}
	r.byID[c.ID] = c
	return nil
}

func (r *clientRepo) GetByID(ctx context.Context, id string) (clients.Client, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.byID[id]
	if !ok {
		return clients.Client{}, apperr.NotFound("cliente %s no encontrado", id)
	}
	return c, nil
}

func (r *clientRepo) GetByDNI(ctx context.Context, dni string) (clients.Client, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, c := range r.byID {
		if c.DNI == dni {
			return c, nil
		}
	}
	return clients.Client{}, apperr.NotFound("no existe cliente con DNI %s", dni)
}

func (r *clientRepo) List(ctx context.Context, includeInactive bool) ([]clients.Client, error) {
	return r.filter(func(c clients.Client) bool {
		return includeInactive || c.Active
	}), nil
}

func (r *clientRepo) Search(ctx context.Context, term string) ([]clients.Client, error) {
	term = strings.ToLower(term)
	return r.filter(func(c clients.Client) bool {
		return strings.Contains(strings.ToLower(c.Name), term) ||
			strings.Contains(strings.ToLower(c.DNI), term) ||
			strings.Contains(c.Phone, term) ||
			strings.Contains(strings.ToLower(c.Email), term)
	}), nil
}

func (r *clientRepo) filter(keep func(clients.Client) bool) []clients.Client {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]clients.Client, 0)
	for _, c := range r.byID {
		if keep(c) {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Name < out[j].Name
	})
	return out
}

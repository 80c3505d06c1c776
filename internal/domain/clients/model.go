package clients

import (
	"strings"
	"time"

	"vet-clinic/internal/domain/apperr"
)

// Client es el titular de una o más mascotas.
// Nunca se borra: la baja es lógica vía Active=false.
type Client struct {
	ID string

	Name  string
	DNI   string
	Phone string
	Email string

	Address string
	Notes   string

	Active       bool
	RegisteredAt time.Time
}

func (c Client) Validate() error {
	if len(strings.TrimSpace(c.Name)) < 2 {
		return apperr.Validation("el nombre debe tener al menos 2 caracteres")
	}
	if !ValidDNI(c.DNI) {
		return apperr.Validation("DNI/NIF inválido")
	}
	if !ValidPhone(c.Phone) {
		return apperr.Validation("teléfono inválido")
	}
	if !ValidEmail(c.Email) {
		return apperr.Validation("email inválido")
	}
	return nil
}

// UpdateInput enumera los únicos campos editables de un cliente.
// nil = no tocar. DNI, ID y fecha de alta no son editables.
type UpdateInput struct {
	Name    *string
	Phone   *string
	Email   *string
	Address *string
	Notes   *string
}

// Apply aplica los cambios sobre una copia y re-valida; si falla, c queda intacto.
func (c *Client) Apply(in UpdateInput) error {
	next := *c
	if in.Name != nil {
		next.Name = strings.TrimSpace(*in.Name)
	}
	if in.Phone != nil {
		next.Phone = strings.TrimSpace(*in.Phone)
	}
	if in.Email != nil {
		next.Email = strings.TrimSpace(*in.Email)
	}
	if in.Address != nil {
		next.Address = strings.TrimSpace(*in.Address)
	}
	if in.Notes != nil {
		next.Notes = strings.TrimSpace(*in.Notes)
	}
	if err := next.Validate(); err != nil {
		return err
	}
	*c = next
	return nil
}

func (c *Client) Deactivate() { c.Active = false }
func (c *Client) Activate()   { c.Active = true }

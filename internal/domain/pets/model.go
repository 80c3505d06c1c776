package pets

import (
	"strings"
	"time"

	"vet-clinic/internal/domain/apperr"
)

// Species define las especies soportadas.
// @Enum Perro, Gato, Conejo, Ave, Roedor, Reptil, Otro
type Species string

const (
	SpeciesDog     Species = "Perro"
	SpeciesCat     Species = "Gato"
	SpeciesRabbit  Species = "Conejo"
	SpeciesBird    Species = "Ave"
	SpeciesRodent  Species = "Roedor"
	SpeciesReptile Species = "Reptil"
	SpeciesOther   Species = "Otro"
)

func (s Species) Valid() bool {
	switch s {
	case SpeciesDog, SpeciesCat, SpeciesRabbit, SpeciesBird, SpeciesRodent, SpeciesReptile, SpeciesOther:
		return true
	}
	return false
}

// Sex es opcional ("" = sin informar).
// @Enum M, F
type Sex string

const (
	SexMale   Sex = "M"
	SexFemale Sex = "F"
)

// Pet pertenece a exactamente un cliente (por referencia).
type Pet struct {
	ID       string
	ClientID string

	Name    string
	Species Species
	Breed   string
	Sex     Sex

	BirthDate time.Time
	Color     string
	WeightKg  *float64 // opcional; si viene, > 0
	Microchip string   // opcional; único si viene

	Notes string

	Active       bool
	RegisteredAt time.Time
}

// Validate comprueba los invariantes; now se usa para rechazar nacimientos futuros.
func (p Pet) Validate(now time.Time) error {
	if strings.TrimSpace(p.Name) == "" {
		return apperr.Validation("el nombre es obligatorio")
	}
	if !p.Species.Valid() {
		return apperr.Validation("especie inválida: %q", p.Species)
	}
	if strings.TrimSpace(p.Breed) == "" {
		return apperr.Validation("la raza es obligatoria")
	}
	if p.BirthDate.IsZero() {
		return apperr.Validation("la fecha de nacimiento es obligatoria")
	}
	if dateOnly(p.BirthDate).After(dateOnly(now)) {
		return apperr.Validation("la fecha de nacimiento no puede ser futura")
	}
	if strings.TrimSpace(p.ClientID) == "" {
		return apperr.Validation("debe asociarse a un cliente válido")
	}
	if p.Sex != "" && p.Sex != SexMale && p.Sex != SexFemale {
		return apperr.Validation("el sexo debe ser 'M' o 'F'")
	}
	if p.WeightKg != nil && *p.WeightKg <= 0 {
		return apperr.Validation("el peso debe ser positivo")
	}
	return nil
}

// UpdateInput enumera los campos editables. nil = no tocar.
type UpdateInput struct {
	Name      *string
	Breed     *string
	WeightKg  *float64
	Color     *string
	Notes     *string
	Microchip *string
}

// Apply aplica sobre una copia y re-valida; si falla, p queda intacto.
func (p *Pet) Apply(in UpdateInput, now time.Time) error {
	next := *p
	if in.Name != nil {
		next.Name = strings.TrimSpace(*in.Name)
	}
	if in.Breed != nil {
		next.Breed = strings.TrimSpace(*in.Breed)
	}
	if in.WeightKg != nil {
		w := *in.WeightKg
		next.WeightKg = &w
	}
	if in.Color != nil {
		next.Color = strings.TrimSpace(*in.Color)
	}
	if in.Notes != nil {
		next.Notes = strings.TrimSpace(*in.Notes)
	}
	if in.Microchip != nil {
		next.Microchip = strings.TrimSpace(*in.Microchip)
	}
	if err := next.Validate(now); err != nil {
		return err
	}
	*p = next
	return nil
}

func (p *Pet) Deactivate() { p.Active = false }
func (p *Pet) Activate()   { p.Active = true }

// Age es la edad en años y meses cumplidos a la fecha now.
type Age struct {
	Years  int `json:"years"`
	Months int `json:"months"`
}

func (p Pet) Age(now time.Time) Age {
	years := now.Year() - p.BirthDate.Year()
	months := int(now.Month()) - int(p.BirthDate.Month())
	if months < 0 {
		years--
		months += 12
	}
	if now.Day() < p.BirthDate.Day() {
		months--
		if months < 0 {
			years--
			months += 12
		}
	}
	return Age{Years: years, Months: months}
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

package pets

import (
	"net/http"
	"time"

	"vet-clinic/internal/platform/httpjson"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/pets", func(pr chi.Router) {
		pr.Post("/", createPetHandler(svc))
		pr.Get("/", listPetsHandler(svc))

		pr.Get("/{petID}", getPetHandler(svc))
		pr.Patch("/{petID}", updatePetHandler(svc))
		pr.Get("/{petID}/age", petAgeHandler(svc))
		pr.Post("/{petID}/deactivate", setActiveHandler(svc, false))
		pr.Post("/{petID}/reactivate", setActiveHandler(svc, true))
	})

	// Mascotas de un cliente
	r.Get("/clients/{clientID}/pets", listClientPetsHandler(svc))
}

type createPetRequest struct {
	ClientID  string   `json:"client_id" validate:"required"`
	Name      string   `json:"name" validate:"required"`
	Species   Species  `json:"species" validate:"required" enums:"Perro,Gato,Conejo,Ave,Roedor,Reptil,Otro"`
	Breed     string   `json:"breed" validate:"required"`
	BirthDate string   `json:"birth_date" validate:"required"` // YYYY-MM-DD
	Sex       Sex      `json:"sex" enums:"M,F"`
	Color     string   `json:"color"`
	WeightKg  *float64 `json:"weight_kg" validate:"omitempty,gt=0"`
	Microchip string   `json:"microchip"`
	Notes     string   `json:"notes"`
}

type updatePetRequest struct {
	// Punteros para PATCH real: nil = no tocar.
	Name      *string  `json:"name"`
	Breed     *string  `json:"breed"`
	WeightKg  *float64 `json:"weight_kg" validate:"omitempty,gt=0"`
	Color     *string  `json:"color"`
	Notes     *string  `json:"notes"`
	Microchip *string  `json:"microchip"`
}

type petResponse struct {
	ID           string    `json:"id"`
	ClientID     string    `json:"client_id"`
	Name         string    `json:"name"`
	Species      Species   `json:"species"`
	Breed        string    `json:"breed"`
	Sex          Sex       `json:"sex,omitempty"`
	BirthDate    string    `json:"birth_date"`
	Color        string    `json:"color,omitempty"`
	WeightKg     *float64  `json:"weight_kg,omitempty"`
	Microchip    string    `json:"microchip,omitempty"`
	Notes        string    `json:"notes"`
	Active       bool      `json:"active"`
	RegisteredAt time.Time `json:"registered_at"`
}

// createPetHandler godoc
// @Summary Registrar mascota
// @Description Registra una mascota para un cliente activo. No se admiten dos mascotas con el mismo nombre y fecha de nacimiento para el mismo cliente, ni microchips repetidos.
// @Tags pets
// @Accept json
// @Produce json
// @Param payload body createPetRequest true "Datos de la mascota; birth_date en formato YYYY-MM-DD"
// @Success 201 {object} petResponse
// @Failure 400 {object} httpjson.ErrorResponse "datos inválidos"
// @Failure 404 {object} httpjson.ErrorResponse "client not found"
// @Failure 409 {object} httpjson.ErrorResponse "mascota o microchip duplicado"
// @Failure 422 {object} httpjson.ErrorResponse "cliente inactivo"
// @Router /pets [post]
func createPetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createPetRequest
		if err := httpjson.Decode(r, &req); err != nil {
			httpjson.WriteError(w, err)
			return
		}

		bd, err := httpjson.ParseDate(req.BirthDate, time.UTC)
		if err != nil {
			httpjson.WriteError(w, err)
			return
		}

		p, err := svc.Register(r.Context(), RegisterInput{
			ClientID:  req.ClientID,
			Name:      req.Name,
			Species:   req.Species,
			Breed:     req.Breed,
			BirthDate: bd,
			Sex:       req.Sex,
			Color:     req.Color,
			WeightKg:  req.WeightKg,
			Microchip: req.Microchip,
			Notes:     req.Notes,
		})
		if err != nil {
			httpjson.WriteError(w, err)
			return
		}

		httpjson.WriteJSON(w, http.StatusCreated, toPetResponse(p))
	}
}

// listPetsHandler godoc
// @Summary Listar o buscar mascotas
// @Description Sin `q` lista las mascotas (activas por defecto). Con `q` busca por nombre o microchip.
// @Tags pets
// @Produce json
// @Param q query string false "Término de búsqueda (mínimo 2 caracteres)"
// @Param include_inactive query bool false "Incluir mascotas dadas de baja"
// @Success 200 {array} petResponse
// @Router /pets [get]
func listPetsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var (
			items []Pet
			err   error
		)
		if q := r.URL.Query().Get("q"); q != "" {
			items, err = svc.Search(r.Context(), q)
		} else {
			items, err = svc.List(r.Context(), httpjson.QueryBool(r, "include_inactive"))
		}
		if err != nil {
			httpjson.WriteError(w, err)
			return
		}
		httpjson.WriteJSON(w, http.StatusOK, toPetResponses(items))
	}
}

// listClientPetsHandler godoc
// @Summary Mascotas de un cliente
// @Tags pets
// @Produce json
// @Param clientID path string true "ID del cliente"
// @Param include_inactive query bool false "Incluir mascotas dadas de baja"
// @Success 200 {array} petResponse
// @Router /clients/{clientID}/pets [get]
func listClientPetsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.ListByClient(r.Context(), chi.URLParam(r, "clientID"), httpjson.QueryBool(r, "include_inactive"))
		if err != nil {
			httpjson.WriteError(w, err)
			return
		}
		httpjson.WriteJSON(w, http.StatusOK, toPetResponses(items))
	}
}

// getPetHandler godoc
// @Summary Obtener mascota
// @Tags pets
// @Produce json
// @Param petID path string true "ID de la mascota"
// @Success 200 {object} petResponse
// @Failure 404 {object} httpjson.ErrorResponse "pet not found"
// @Router /pets/{petID} [get]
func getPetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, err := svc.GetByID(r.Context(), chi.URLParam(r, "petID"))
		if err != nil {
			httpjson.WriteError(w, err)
			return
		}
		httpjson.WriteJSON(w, http.StatusOK, toPetResponse(p))
	}
}

// petAgeHandler godoc
// @Summary Edad de la mascota
// @Tags pets
// @Produce json
// @Param petID path string true "ID de la mascota"
// @Success 200 {object} Age
// @Failure 404 {object} httpjson.ErrorResponse "pet not found"
// @Router /pets/{petID}/age [get]
func petAgeHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		age, err := svc.AgeOf(r.Context(), chi.URLParam(r, "petID"))
		if err != nil {
			httpjson.WriteError(w, err)
			return
		}
		httpjson.WriteJSON(w, http.StatusOK, age)
	}
}

// updatePetHandler godoc
// @Summary Actualizar mascota
// @Description Nombre, raza, peso, color, notas y microchip son editables. Especie, sexo, fecha de nacimiento y titular no.
// @Tags pets
// @Accept json
// @Produce json
// @Param petID path string true "ID de la mascota"
// @Param payload body updatePetRequest true "Campos a modificar"
// @Success 200 {object} petResponse
// @Failure 400 {object} httpjson.ErrorResponse "datos inválidos"
// @Failure 404 {object} httpjson.ErrorResponse "pet not found"
// @Failure 409 {object} httpjson.ErrorResponse "microchip duplicado"
// @Router /pets/{petID} [patch]
func updatePetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req updatePetRequest
		if err := httpjson.Decode(r, &req); err != nil {
			httpjson.WriteError(w, err)
			return
		}

		p, err := svc.Update(r.Context(), chi.URLParam(r, "petID"), UpdateInput{
			Name:      req.Name,
			Breed:     req.Breed,
			WeightKg:  req.WeightKg,
			Color:     req.Color,
			Notes:     req.Notes,
			Microchip: req.Microchip,
		})
		if err != nil {
			httpjson.WriteError(w, err)
			return
		}
		httpjson.WriteJSON(w, http.StatusOK, toPetResponse(p))
	}
}

// setActiveHandler godoc
// @Summary Dar de baja / reactivar mascota
// @Tags pets
// @Produce json
// @Param petID path string true "ID de la mascota"
// @Success 200 {object} petResponse
// @Failure 404 {object} httpjson.ErrorResponse "pet not found"
// @Router /pets/{petID}/deactivate [post]
// @Router /pets/{petID}/reactivate [post]
func setActiveHandler(svc *Service, active bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "petID")

		var (
			p   Pet
			err error
		)
		if active {
			p, err = svc.Reactivate(r.Context(), id)
		} else {
			p, err = svc.Deactivate(r.Context(), id)
		}
		if err != nil {
			httpjson.WriteError(w, err)
			return
		}
		httpjson.WriteJSON(w, http.StatusOK, toPetResponse(p))
	}
}

func toPetResponses(items []Pet) []petResponse {
	out := make([]petResponse, 0, len(items))
	for _, p := range items {
		out = append(out, toPetResponse(p))
	}
	return out
}

func toPetResponse(p Pet) petResponse {
	return petResponse{
		ID:           p.ID,
		ClientID:     p.ClientID,
		Name:         p.Name,
		Species:      p.Species,
		Breed:        p.Breed,
		Sex:          p.Sex,
		BirthDate:    p.BirthDate.Format("2006-01-02"),
		Color:        p.Color,
		WeightKg:     p.WeightKg,
		Microchip:    p.Microchip,
		Notes:        p.Notes,
		Active:       p.Active,
		RegisteredAt: p.RegisteredAt,
	}
}

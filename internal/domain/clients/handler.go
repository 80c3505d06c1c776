package clients

import (
	"net/http"
	"time"

	"vet-clinic/internal/platform/httpjson"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/clients", func(cr chi.Router) {
		cr.Post("/", createClientHandler(svc))
		cr.Get("/", listClientsHandler(svc))
		cr.Get("/by-dni/{dni}", getClientByDNIHandler(svc))

		cr.Get("/{clientID}", getClientHandler(svc))
		cr.Patch("/{clientID}", updateClientHandler(svc))
		cr.Post("/{clientID}/deactivate", setActiveHandler(svc, false))
		cr.Post("/{clientID}/reactivate", setActiveHandler(svc, true))
	})
}

type createClientRequest struct {
	Name    string `json:"name" validate:"required,min=2"`
	DNI     string `json:"dni" validate:"required"`
	Phone   string `json:"phone" validate:"required"`
	Email   string `json:"email" validate:"required,email"`
	Address string `json:"address"`
	Notes   string `json:"notes"`
}

type updateClientRequest struct {
	// Punteros para PATCH real: nil = no tocar.
	Name    *string `json:"name" validate:"omitempty,min=2"`
	Phone   *string `json:"phone"`
	Email   *string `json:"email"`
	Address *string `json:"address"`
	Notes   *string `json:"notes"`
}

type clientResponse struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	DNI          string    `json:"dni"`
	Phone        string    `json:"phone"`
	Email        string    `json:"email"`
	Address      string    `json:"address"`
	Notes        string    `json:"notes"`
	Active       bool      `json:"active"`
	RegisteredAt time.Time `json:"registered_at"`
}

// createClientHandler godoc
// @Summary Registrar cliente
// @Description Da de alta un cliente. El DNI/NIF debe ser válido (letra de control) y único.
// @Tags clients
// @Accept json
// @Produce json
// @Param payload body createClientRequest true "Datos del cliente"
// @Success 201 {object} clientResponse
// @Failure 400 {object} httpjson.ErrorResponse "datos inválidos"
// @Failure 409 {object} httpjson.ErrorResponse "DNI duplicado"
// @Router /clients [post]
func createClientHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createClientRequest
		if err := httpjson.Decode(r, &req); err != nil {
			httpjson.WriteError(w, err)
			return
		}

		c, err := svc.Register(r.Context(), RegisterInput{
			Name:    req.Name,
			DNI:     req.DNI,
			Phone:   req.Phone,
			Email:   req.Email,
			Address: req.Address,
			Notes:   req.Notes,
		})
		if err != nil {
			httpjson.WriteError(w, err)
			return
		}

		httpjson.WriteJSON(w, http.StatusCreated, toClientResponse(c))
	}
}

// listClientsHandler godoc
// @Summary Listar o buscar clientes
// @Description Sin `q` lista los clientes (activos por defecto). Con `q` busca por nombre, DNI, teléfono o email.
// @Tags clients
// @Produce json
// @Param q query string false "Término de búsqueda (mínimo 2 caracteres)"
// @Param include_inactive query bool false "Incluir clientes dados de baja"
// @Success 200 {array} clientResponse
// @Failure 400 {object} httpjson.ErrorResponse "término demasiado corto"
// @Router /clients [get]
func listClientsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var (
			items []Client
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

		out := make([]clientResponse, 0, len(items))
		for _, c := range items {
			out = append(out, toClientResponse(c))
		}
		httpjson.WriteJSON(w, http.StatusOK, out)
	}
}

// getClientHandler godoc
// @Summary Obtener cliente
// @Tags clients
// @Produce json
// @Param clientID path string true "ID del cliente"
// @Success 200 {object} clientResponse
// @Failure 404 {object} httpjson.ErrorResponse "client not found"
// @Router /clients/{clientID} [get]
func getClientHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, err := svc.GetByID(r.Context(), chi.URLParam(r, "clientID"))
		if err != nil {
			httpjson.WriteError(w, err)
			return
		}
		httpjson.WriteJSON(w, http.StatusOK, toClientResponse(c))
	}
}

// getClientByDNIHandler godoc
// @Summary Obtener cliente por DNI
// @Tags clients
// @Produce json
// @Param dni path string true "DNI/NIF"
// @Success 200 {object} clientResponse
// @Failure 404 {object} httpjson.ErrorResponse "client not found"
// @Router /clients/by-dni/{dni} [get]
func getClientByDNIHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, err := svc.GetByDNI(r.Context(), chi.URLParam(r, "dni"))
		if err != nil {
			httpjson.WriteError(w, err)
			return
		}
		httpjson.WriteJSON(w, http.StatusOK, toClientResponse(c))
	}
}

// updateClientHandler godoc
// @Summary Actualizar cliente
// @Description Solo nombre, teléfono, email, dirección y notas son editables.
// @Tags clients
// @Accept json
// @Produce json
// @Param clientID path string true "ID del cliente"
// @Param payload body updateClientRequest true "Campos a modificar"
// @Success 200 {object} clientResponse
// @Failure 400 {object} httpjson.ErrorResponse "datos inválidos"
// @Failure 404 {object} httpjson.ErrorResponse "client not found"
// @Router /clients/{clientID} [patch]
func updateClientHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req updateClientRequest
		if err := httpjson.Decode(r, &req); err != nil {
			httpjson.WriteError(w, err)
			return
		}

		c, err := svc.Update(r.Context(), chi.URLParam(r, "clientID"), UpdateInput{
			Name:    req.Name,
			Phone:   req.Phone,
			Email:   req.Email,
			Address: req.Address,
			Notes:   req.Notes,
		})
		if err != nil {
			httpjson.WriteError(w, err)
			return
		}
		httpjson.WriteJSON(w, http.StatusOK, toClientResponse(c))
	}
}

// setActiveHandler godoc
// @Summary Dar de baja / reactivar cliente
// @Tags clients
// @Produce json
// @Param clientID path string true "ID del cliente"
// @Success 200 {object} clientResponse
// @Failure 404 {object} httpjson.ErrorResponse "client not found"
// @Router /clients/{clientID}/deactivate [post]
// @Router /clients/{clientID}/reactivate [post]
func setActiveHandler(svc *Service, active bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "clientID")

		var (
			c   Client
			err error
		)
		if active {
			c, err = svc.Reactivate(r.Context(), id)
		} else {
			c, err = svc.Deactivate(r.Context(), id)
		}
		if err != nil {
			httpjson.WriteError(w, err)
			return
		}
		httpjson.WriteJSON(w, http.StatusOK, toClientResponse(c))
	}
}

func toClientResponse(c Client) clientResponse {
	return clientResponse{
		ID:           c.ID,
		Name:         c.Name,
		DNI:          c.DNI,
		Phone:        c.Phone,
		Email:        c.Email,
		Address:      c.Address,
		Notes:        c.Notes,
		Active:       c.Active,
		RegisteredAt: c.RegisteredAt,
	}
}

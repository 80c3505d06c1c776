package appointments

import (
	"net/http"
	"strings"
	"time"

	"vet-clinic/internal/domain/apperr"
	"vet-clinic/internal/platform/httpjson"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/appointments", func(ar chi.Router) {
		ar.Post("/", scheduleHandler(svc))
		ar.Get("/", listAppointmentsHandler(svc))

		ar.Get("/{appointmentID}", getAppointmentHandler(svc))
		ar.Delete("/{appointmentID}", deleteAppointmentHandler(svc))

		// Transiciones de estado
		ar.Post("/{appointmentID}/start", startHandler(svc))
		ar.Post("/{appointmentID}/complete", completeHandler(svc))
		ar.Post("/{appointmentID}/cancel", cancelHandler(svc))
		ar.Post("/{appointmentID}/reschedule", rescheduleHandler(svc))
	})
}

type scheduleRequest struct {
	ClientID        string `json:"client_id" validate:"required"`
	PetID           string `json:"pet_id" validate:"required"`
	Veterinarian    string `json:"veterinarian" validate:"required"`
	StartsAt        string `json:"starts_at" validate:"required"` // RFC3339
	Reason          string `json:"reason" validate:"required"`
	DurationMinutes int    `json:"duration_minutes" validate:"omitempty,min=1,max=480"`
	Notes           string `json:"notes"`
}

type completeRequest struct {
	Diagnosis string `json:"diagnosis" validate:"required"`
	Treatment string `json:"treatment"`
}

type cancelRequest struct {
	Reason string `json:"reason" validate:"required"`
}

type rescheduleRequest struct {
	StartsAt string `json:"starts_at" validate:"required"` // RFC3339
}

type appointmentResponse struct {
	ID                 string     `json:"id"`
	ClientID           string     `json:"client_id"`
	PetID              string     `json:"pet_id"`
	Veterinarian       string     `json:"veterinarian"`
	StartsAt           time.Time  `json:"starts_at"`
	EndsAt             time.Time  `json:"ends_at"`
	DurationMinutes    int        `json:"duration_minutes"`
	Reason             string     `json:"reason"`
	State              State      `json:"state" enums:"Programada,En curso,Completada,Cancelada"`
	Notes              string     `json:"notes,omitempty"`
	Diagnosis          string     `json:"diagnosis,omitempty"`
	Treatment          string     `json:"treatment,omitempty"`
	CancellationReason string     `json:"cancellation_reason,omitempty"`
	CreatedAt          time.Time  `json:"created_at"`
	ModifiedAt         *time.Time `json:"modified_at,omitempty"`
}

// scheduleHandler godoc
// @Summary Programar cita
// @Description Programa una cita para una mascota de un cliente activo. Falla con 409 si el veterinario ya tiene una cita que se solapa ese día.
// @Tags appointments
// @Accept json
// @Produce json
// @Param payload body scheduleRequest true "Datos de la cita; starts_at en formato RFC3339, duración por defecto 30 minutos"
// @Success 201 {object} appointmentResponse
// @Failure 400 {object} httpjson.ErrorResponse "datos inválidos"
// @Failure 404 {object} httpjson.ErrorResponse "cliente o mascota no encontrados"
// @Failure 409 {object} httpjson.ErrorResponse "conflicto de horario"
// @Failure 422 {object} httpjson.ErrorResponse "cliente/mascota inactivos o mascota de otro cliente"
// @Router /appointments [post]
func scheduleHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req scheduleRequest
		if err := httpjson.Decode(r, &req); err != nil {
			httpjson.WriteError(w, err)
			return
		}

		startsAt, err := httpjson.ParseTime(req.StartsAt)
		if err != nil {
			httpjson.WriteError(w, err)
			return
		}

		a, err := svc.Schedule(r.Context(), ScheduleInput{
			ClientID:        req.ClientID,
			PetID:           req.PetID,
			Veterinarian:    req.Veterinarian,
			StartsAt:        startsAt,
			Reason:          req.Reason,
			DurationMinutes: req.DurationMinutes,
			Notes:           req.Notes,
		})
		if err != nil {
			httpjson.WriteError(w, err)
			return
		}

		httpjson.WriteJSON(w, http.StatusCreated, toAppointmentResponse(a))
	}
}

// listAppointmentsHandler godoc
// @Summary Listar citas
// @Description Filtros excluyentes, por prioridad: `day` (+ `veterinarian` opcional), `from`/`to`, `state`. Sin filtros devuelve todas.
// @Tags appointments
// @Produce json
// @Param day query string false "Día YYYY-MM-DD"
// @Param veterinarian query string false "Veterinario (solo con day)"
// @Param from query string false "Desde, RFC3339 (inclusivo)"
// @Param to query string false "Hasta, RFC3339 (inclusivo)"
// @Param state query string false "Estado" Enums(Programada, En curso, Completada, Cancelada)
// @Success 200 {array} appointmentResponse
// @Failure 400 {object} httpjson.ErrorResponse "filtro inválido"
// @Router /appointments [get]
func listAppointmentsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()

		var (
			items []Appointment
			err   error
		)
		switch {
		case q.Get("day") != "":
			var day time.Time
			day, err = httpjson.ParseDate(q.Get("day"), svc.loc)
			if err == nil {
				items, err = svc.ListForDay(r.Context(), day, q.Get("veterinarian"))
			}
		case q.Get("from") != "" || q.Get("to") != "":
			items, err = listRange(r, svc, q.Get("from"), q.Get("to"))
		case q.Get("state") != "":
			items, err = svc.ListByState(r.Context(), State(q.Get("state")))
		default:
			items, err = svc.List(r.Context())
		}
		if err != nil {
			httpjson.WriteError(w, err)
			return
		}

		out := make([]appointmentResponse, 0, len(items))
		for _, a := range items {
			out = append(out, toAppointmentResponse(a))
		}
		httpjson.WriteJSON(w, http.StatusOK, out)
	}
}

func listRange(r *http.Request, svc *Service, fromRaw, toRaw string) ([]Appointment, error) {
	if strings.TrimSpace(fromRaw) == "" || strings.TrimSpace(toRaw) == "" {
		return nil, apperr.Validation("from y to son obligatorios juntos")
	}
	from, err := httpjson.ParseTime(fromRaw)
	if err != nil {
		return nil, err
	}
	to, err := httpjson.ParseTime(toRaw)
	if err != nil {
		return nil, err
	}
	return svc.ListByDateRange(r.Context(), from, to)
}

// getAppointmentHandler godoc
// @Summary Obtener cita
// @Tags appointments
// @Produce json
// @Param appointmentID path string true "ID de la cita"
// @Success 200 {object} appointmentResponse
// @Failure 404 {object} httpjson.ErrorResponse "appointment not found"
// @Router /appointments/{appointmentID} [get]
func getAppointmentHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		a, err := svc.GetByID(r.Context(), chi.URLParam(r, "appointmentID"))
		if err != nil {
			httpjson.WriteError(w, err)
			return
		}
		httpjson.WriteJSON(w, http.StatusOK, toAppointmentResponse(a))
	}
}

// deleteAppointmentHandler godoc
// @Summary Eliminar cita
// @Description Borrado físico de la cita.
// @Tags appointments
// @Param appointmentID path string true "ID de la cita"
// @Success 204 "sin contenido"
// @Failure 404 {object} httpjson.ErrorResponse "appointment not found"
// @Router /appointments/{appointmentID} [delete]
func deleteAppointmentHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "appointmentID")
		deleted, err := svc.Delete(r.Context(), id)
		if err != nil {
			httpjson.WriteError(w, err)
			return
		}
		if !deleted {
			httpjson.WriteError(w, apperr.NotFound("cita %s no encontrada", id))
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// startHandler godoc
// @Summary Iniciar cita
// @Description Programada -> En curso.
// @Tags appointments
// @Produce json
// @Param appointmentID path string true "ID de la cita"
// @Success 200 {object} appointmentResponse
// @Failure 404 {object} httpjson.ErrorResponse "appointment not found"
// @Failure 422 {object} httpjson.ErrorResponse "transición inválida"
// @Router /appointments/{appointmentID}/start [post]
func startHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		a, err := svc.Start(r.Context(), chi.URLParam(r, "appointmentID"))
		if err != nil {
			httpjson.WriteError(w, err)
			return
		}
		httpjson.WriteJSON(w, http.StatusOK, toAppointmentResponse(a))
	}
}

// completeHandler godoc
// @Summary Completar cita
// @Description Programada o En curso -> Completada. Requiere diagnóstico.
// @Tags appointments
// @Accept json
// @Produce json
// @Param appointmentID path string true "ID de la cita"
// @Param payload body completeRequest true "Diagnóstico y tratamiento"
// @Success 200 {object} appointmentResponse
// @Failure 400 {object} httpjson.ErrorResponse "diagnóstico inválido"
// @Failure 404 {object} httpjson.ErrorResponse "appointment not found"
// @Failure 422 {object} httpjson.ErrorResponse "transición inválida"
// @Router /appointments/{appointmentID}/complete [post]
func completeHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req completeRequest
		if err := httpjson.Decode(r, &req); err != nil {
			httpjson.WriteError(w, err)
			return
		}
		a, err := svc.Complete(r.Context(), chi.URLParam(r, "appointmentID"), req.Diagnosis, req.Treatment)
		if err != nil {
			httpjson.WriteError(w, err)
			return
		}
		httpjson.WriteJSON(w, http.StatusOK, toAppointmentResponse(a))
	}
}

// cancelHandler godoc
// @Summary Cancelar cita
// @Description Programada o En curso -> Cancelada. Requiere motivo.
// @Tags appointments
// @Accept json
// @Produce json
// @Param appointmentID path string true "ID de la cita"
// @Param payload body cancelRequest true "Motivo de cancelación"
// @Success 200 {object} appointmentResponse
// @Failure 400 {object} httpjson.ErrorResponse "motivo inválido"
// @Failure 404 {object} httpjson.ErrorResponse "appointment not found"
// @Failure 422 {object} httpjson.ErrorResponse "transición inválida"
// @Router /appointments/{appointmentID}/cancel [post]
func cancelHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req cancelRequest
		if err := httpjson.Decode(r, &req); err != nil {
			httpjson.WriteError(w, err)
			return
		}
		a, err := svc.Cancel(r.Context(), chi.URLParam(r, "appointmentID"), req.Reason)
		if err != nil {
			httpjson.WriteError(w, err)
			return
		}
		httpjson.WriteJSON(w, http.StatusOK, toAppointmentResponse(a))
	}
}

// rescheduleHandler godoc
// @Summary Reprogramar cita
// @Description Mueve la cita a una fecha futura y la devuelve a Programada.
// @Tags appointments
// @Accept json
// @Produce json
// @Param appointmentID path string true "ID de la cita"
// @Param payload body rescheduleRequest true "Nueva fecha, RFC3339"
// @Success 200 {object} appointmentResponse
// @Failure 400 {object} httpjson.ErrorResponse "fecha inválida o pasada"
// @Failure 404 {object} httpjson.ErrorResponse "appointment not found"
// @Failure 409 {object} httpjson.ErrorResponse "conflicto de horario"
// @Failure 422 {object} httpjson.ErrorResponse "transición inválida"
// @Router /appointments/{appointmentID}/reschedule [post]
func rescheduleHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req rescheduleRequest
		if err := httpjson.Decode(r, &req); err != nil {
			httpjson.WriteError(w, err)
			return
		}
		t, err := httpjson.ParseTime(req.StartsAt)
		if err != nil {
			httpjson.WriteError(w, err)
			return
		}
		a, err := svc.Reschedule(r.Context(), chi.URLParam(r, "appointmentID"), t)
		if err != nil {
			httpjson.WriteError(w, err)
			return
		}
		httpjson.WriteJSON(w, http.StatusOK, toAppointmentResponse(a))
	}
}

func toAppointmentResponse(a Appointment) appointmentResponse {
	return appointmentResponse{
		ID:                 a.ID,
		ClientID:           a.ClientID,
		PetID:              a.PetID,
		Veterinarian:       a.Veterinarian,
		StartsAt:           a.StartsAt,
		EndsAt:             a.EndsAt(),
		DurationMinutes:    a.DurationMinutes,
		Reason:             a.Reason,
		State:              a.State,
		Notes:              a.Notes,
		Diagnosis:          a.Diagnosis,
		Treatment:          a.Treatment,
		CancellationReason: a.CancellationReason,
		CreatedAt:          a.CreatedAt,
		ModifiedAt:         a.ModifiedAt,
	}
}

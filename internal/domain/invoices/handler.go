package invoices

import (
	"net/http"
	"strconv"
	"time"

	"vet-clinic/internal/domain/apperr"
	"vet-clinic/internal/platform/httpjson"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/invoices", func(ir chi.Router) {
		ir.Post("/", createInvoiceHandler(svc))
		ir.Get("/", listInvoicesHandler(svc))
		ir.Get("/by-number/{number}", getInvoiceByNumberHandler(svc))

		ir.Get("/{invoiceID}", getInvoiceHandler(svc))
		ir.Get("/{invoiceID}/summary", invoiceSummaryHandler(svc))
		ir.Post("/{invoiceID}/pay", payInvoiceHandler(svc))
	})

	r.Get("/clients/{clientID}/invoices", listClientInvoicesHandler(svc))

	r.Route("/reports", func(rr chi.Router) {
		rr.Get("/income", incomeHandler(svc))
		rr.Get("/top-clients", topClientsHandler(svc))
	})
}

type lineRequest struct {
	Concept    string          `json:"concept" validate:"required"`
	Quantity   int             `json:"quantity" validate:"required,gt=0"`
	UnitPrice  decimal.Decimal `json:"unit_price" swaggertype:"string" example:"50.00"`
	TaxPercent decimal.Decimal `json:"tax_percent" swaggertype:"string" example:"21"`
}

type createInvoiceRequest struct {
	AppointmentID string        `json:"appointment_id" validate:"required"`
	Lines         []lineRequest `json:"lines" validate:"required,min=1,dive"`
	Notes         string        `json:"notes"`
}

type payRequest struct {
	Method PaymentMethod `json:"method" validate:"required" enums:"Efectivo,Tarjeta,Transferencia"`
	PaidAt string        `json:"paid_at"` // RFC3339 opcional
}

type lineResponse struct {
	ID         string `json:"id"`
	Concept    string `json:"concept"`
	Quantity   int    `json:"quantity"`
	UnitPrice  string `json:"unit_price"`
	TaxPercent string `json:"tax_percent"`
	Subtotal   string `json:"subtotal"`
	Tax        string `json:"tax"`
	Total      string `json:"total"`
}

type invoiceResponse struct {
	ID            string         `json:"id"`
	Number        string         `json:"number"`
	AppointmentID string         `json:"appointment_id"`
	ClientID      string         `json:"client_id"`
	IssuedAt      time.Time      `json:"issued_at"`
	Lines         []lineResponse `json:"lines"`
	Subtotal      string         `json:"subtotal"`
	TotalTax      string         `json:"total_tax"`
	Total         string         `json:"total"`
	Paid          bool           `json:"paid"`
	PaidAt        *time.Time     `json:"paid_at,omitempty"`
	PaymentMethod PaymentMethod  `json:"payment_method,omitempty"`
	Notes         string         `json:"notes,omitempty"`
}

// createInvoiceHandler godoc
// @Summary Facturar cita
// @Description Emite una factura para una cita completada. Cada cita se factura una sola vez. Importes como string decimal.
// @Tags invoices
// @Accept json
// @Produce json
// @Param payload body createInvoiceRequest true "Cita y líneas"
// @Success 201 {object} invoiceResponse
// @Failure 400 {object} httpjson.ErrorResponse "líneas inválidas"
// @Failure 404 {object} httpjson.ErrorResponse "cita o cliente no encontrados"
// @Failure 409 {object} httpjson.ErrorResponse "número de factura duplicado"
// @Failure 422 {object} httpjson.ErrorResponse "cita no completada o ya facturada"
// @Router /invoices [post]
func createInvoiceHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createInvoiceRequest
		if err := httpjson.Decode(r, &req); err != nil {
			httpjson.WriteError(w, err)
			return
		}

		lines := make([]LineInput, 0, len(req.Lines))
		for _, l := range req.Lines {
			lines = append(lines, LineInput{
				Concept:    l.Concept,
				Quantity:   l.Quantity,
				UnitPrice:  l.UnitPrice,
				TaxPercent: l.TaxPercent,
			})
		}

		inv, err := svc.CreateFromAppointment(r.Context(), req.AppointmentID, lines, req.Notes)
		if err != nil {
			httpjson.WriteError(w, err)
			return
		}
		httpjson.WriteJSON(w, http.StatusCreated, toInvoiceResponse(inv))
	}
}

// listInvoicesHandler godoc
// @Summary Listar facturas
// @Tags invoices
// @Produce json
// @Success 200 {array} invoiceResponse
// @Router /invoices [get]
func listInvoicesHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.List(r.Context())
		if err != nil {
			httpjson.WriteError(w, err)
			return
		}
		httpjson.WriteJSON(w, http.StatusOK, toInvoiceResponses(items))
	}
}

// listClientInvoicesHandler godoc
// @Summary Facturas de un cliente
// @Tags invoices
// @Produce json
// @Param clientID path string true "ID del cliente"
// @Success 200 {array} invoiceResponse
// @Router /clients/{clientID}/invoices [get]
func listClientInvoicesHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.ListByClient(r.Context(), chi.URLParam(r, "clientID"))
		if err != nil {
			httpjson.WriteError(w, err)
			return
		}
		httpjson.WriteJSON(w, http.StatusOK, toInvoiceResponses(items))
	}
}

// getInvoiceHandler godoc
// @Summary Obtener factura
// @Tags invoices
// @Produce json
// @Param invoiceID path string true "ID de la factura"
// @Success 200 {object} invoiceResponse
// @Failure 404 {object} httpjson.ErrorResponse "invoice not found"
// @Router /invoices/{invoiceID} [get]
func getInvoiceHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		inv, err := svc.GetByID(r.Context(), chi.URLParam(r, "invoiceID"))
		if err != nil {
			httpjson.WriteError(w, err)
			return
		}
		httpjson.WriteJSON(w, http.StatusOK, toInvoiceResponse(inv))
	}
}

// getInvoiceByNumberHandler godoc
// @Summary Obtener factura por número
// @Tags invoices
// @Produce json
// @Param number path string true "Número F-YYYY-NNNNN"
// @Success 200 {object} invoiceResponse
// @Failure 404 {object} httpjson.ErrorResponse "invoice not found"
// @Router /invoices/by-number/{number} [get]
func getInvoiceByNumberHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		inv, err := svc.GetByNumber(r.Context(), chi.URLParam(r, "number"))
		if err != nil {
			httpjson.WriteError(w, err)
			return
		}
		httpjson.WriteJSON(w, http.StatusOK, toInvoiceResponse(inv))
	}
}

// invoiceSummaryHandler godoc
// @Summary Resumen de factura
// @Tags invoices
// @Produce json
// @Param invoiceID path string true "ID de la factura"
// @Success 200 {object} Summary
// @Failure 404 {object} httpjson.ErrorResponse "invoice not found"
// @Router /invoices/{invoiceID}/summary [get]
func invoiceSummaryHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		inv, err := svc.GetByID(r.Context(), chi.URLParam(r, "invoiceID"))
		if err != nil {
			httpjson.WriteError(w, err)
			return
		}
		httpjson.WriteJSON(w, http.StatusOK, inv.Summary())
	}
}

// payInvoiceHandler godoc
// @Summary Marcar factura como pagada
// @Description Sin paid_at se usa la fecha actual.
// @Tags invoices
// @Accept json
// @Produce json
// @Param invoiceID path string true "ID de la factura"
// @Param payload body payRequest true "Método y fecha de pago"
// @Success 200 {object} invoiceResponse
// @Failure 400 {object} httpjson.ErrorResponse "método o fecha inválidos"
// @Failure 404 {object} httpjson.ErrorResponse "invoice not found"
// @Failure 422 {object} httpjson.ErrorResponse "ya pagada o sin líneas"
// @Router /invoices/{invoiceID}/pay [post]
func payInvoiceHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req payRequest
		if err := httpjson.Decode(r, &req); err != nil {
			httpjson.WriteError(w, err)
			return
		}

		var paidAt *time.Time
		if req.PaidAt != "" {
			t, err := httpjson.ParseTime(req.PaidAt)
			if err != nil {
				httpjson.WriteError(w, err)
				return
			}
			paidAt = &t
		}

		inv, err := svc.MarkAsPaid(r.Context(), chi.URLParam(r, "invoiceID"), req.Method, paidAt)
		if err != nil {
			httpjson.WriteError(w, err)
			return
		}
		httpjson.WriteJSON(w, http.StatusOK, toInvoiceResponse(inv))
	}
}

// incomeHandler godoc
// @Summary Ingresos del periodo
// @Tags reports
// @Produce json
// @Param from query string true "Desde, RFC3339 (inclusivo)"
// @Param to query string true "Hasta, RFC3339 (inclusivo)"
// @Success 200 {object} Income
// @Failure 400 {object} httpjson.ErrorResponse "rango inválido"
// @Router /reports/income [get]
func incomeHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		from, err := httpjson.ParseTime(r.URL.Query().Get("from"))
		if err != nil {
			httpjson.WriteError(w, err)
			return
		}
		to, err := httpjson.ParseTime(r.URL.Query().Get("to"))
		if err != nil {
			httpjson.WriteError(w, err)
			return
		}

		income, err := svc.IncomeForPeriod(r.Context(), from, to)
		if err != nil {
			httpjson.WriteError(w, err)
			return
		}
		httpjson.WriteJSON(w, http.StatusOK, income)
	}
}

// topClientsHandler godoc
// @Summary Clientes con mayor facturación
// @Tags reports
// @Produce json
// @Param limit query int false "Máximo de clientes (10 por defecto)"
// @Success 200 {array} ClientTotal
// @Router /reports/top-clients [get]
func topClientsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit := DefaultTopClients
		if raw := r.URL.Query().Get("limit"); raw != "" {
			n, err := strconv.Atoi(raw)
			if err != nil || n <= 0 {
				httpjson.WriteError(w, apperr.Validation("limit debe ser un entero positivo"))
				return
			}
			limit = n
		}

		items, err := svc.TopClients(r.Context(), limit)
		if err != nil {
			httpjson.WriteError(w, err)
			return
		}
		httpjson.WriteJSON(w, http.StatusOK, items)
	}
}

func toInvoiceResponses(items []Invoice) []invoiceResponse {
	out := make([]invoiceResponse, 0, len(items))
	for _, inv := range items {
		out = append(out, toInvoiceResponse(inv))
	}
	return out
}

func toInvoiceResponse(inv Invoice) invoiceResponse {
	lines := make([]lineResponse, 0, len(inv.Lines))
	for _, l := range inv.Lines {
		sub, tax, total := roundedAmounts(l.Subtotal(), l.Tax())
		lines = append(lines, lineResponse{
			ID:         l.ID,
			Concept:    l.Concept,
			Quantity:   l.Quantity,
			UnitPrice:  l.UnitPrice.StringFixed(2),
			TaxPercent: l.TaxPercent.String(),
			Subtotal:   sub,
			Tax:        tax,
			Total:      total,
		})
	}
	sub, tax, total := roundedAmounts(inv.Subtotal(), inv.TotalTax())
	return invoiceResponse{
		ID:            inv.ID,
		Number:        inv.Number,
		AppointmentID: inv.AppointmentID,
		ClientID:      inv.ClientID,
		IssuedAt:      inv.IssuedAt,
		Lines:         lines,
		Subtotal:      sub,
		TotalTax:      tax,
		Total:         total,
		Paid:          inv.Paid,
		PaidAt:        inv.PaidAt,
		PaymentMethod: inv.PaymentMethod,
		Notes:         inv.Notes,
	}
}

// roundedAmounts redondea base e impuesto a céntimos y suma los redondeados,
// así el total mostrado siempre cuadra con sus partes.
func roundedAmounts(subtotal, tax decimal.Decimal) (string, string, string) {
	s := subtotal.Round(2)
	t := tax.Round(2)
	return s.StringFixed(2), t.StringFixed(2), s.Add(t).StringFixed(2)
}

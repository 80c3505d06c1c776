package invoices

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"vet-clinic/internal/platform/httpjson"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInvoiceResponse_TotalsAddUp(t *testing.T) {
	inv := Invoice{ID: "i1", Number: "F-2025-00001", AppointmentID: "a1", ClientID: "c1", IssuedAt: now}
	require.NoError(t, inv.AddLine(mustLine(t, "Gasas", 1, "0.004", "100")))
	require.NoError(t, inv.AddLine(mustLine(t, "Consulta", 2, "50.00", "21")))

	resp := toInvoiceResponse(inv)

	sum := dec(resp.Subtotal).Add(dec(resp.TotalTax))
	assert.Equal(t, sum.StringFixed(2), resp.Total)
	assert.Equal(t, "100.00", resp.Subtotal)
	assert.Equal(t, "21.00", resp.TotalTax)
	assert.Equal(t, "121.00", resp.Total)

	for _, l := range resp.Lines {
		assert.Equal(t, dec(l.Subtotal).Add(dec(l.Tax)).StringFixed(2), l.Total, l.Concept)
	}
}

func TestTopClientsHandler_InvalidLimit(t *testing.T) {
	h := topClientsHandler(&Service{})

	for _, raw := range []string{"abc", "0", "-3"} {
		t.Run(raw, func(t *testing.T) {
			rec := httptest.NewRecorder()
			h(rec, httptest.NewRequest(http.MethodGet, "/reports/top-clients?limit="+raw, nil))

			require.Equal(t, http.StatusBadRequest, rec.Code)
			var body httpjson.ErrorResponse
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
			assert.Contains(t, body.Error, "limit")
		})
	}
}

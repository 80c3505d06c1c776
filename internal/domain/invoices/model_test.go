package invoices

import (
	"testing"
	"time"

	"vet-clinic/internal/domain/apperr"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func mustLine(t *testing.T, concept string, qty int, price, tax string) Line {
	t.Helper()
	l, err := NewLine(concept, qty, dec(price), dec(tax))
	require.NoError(t, err)
	return l
}

func TestLine_Amounts(t *testing.T) {
	l := mustLine(t, "Consulta", 2, "50.00", "21")

	assert.True(t, l.Subtotal().Equal(dec("100.00")), l.Subtotal().String())
	assert.True(t, l.Tax().Equal(dec("21.00")), l.Tax().String())
	assert.True(t, l.Total().Equal(dec("121.00")), l.Total().String())
}

func TestLine_Validate(t *testing.T) {
	cases := []struct {
		name    string
		concept string
		qty     int
		price   string
		tax     string
	}{
		{"short concept", "ab", 1, "10", "21"},
		{"zero quantity", "Vacuna", 0, "10", "21"},
		{"negative price", "Vacuna", 1, "-0.01", "21"},
		{"negative tax", "Vacuna", 1, "10", "-1"},
		{"tax over 100", "Vacuna", 1, "10", "100.01"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewLine(tc.concept, tc.qty, dec(tc.price), dec(tc.tax))
			assert.ErrorIs(t, err, apperr.ErrValidation)
		})
	}

	_, err := NewLine("Vacuna", 1, decimal.Zero, dec("100"))
	assert.NoError(t, err)
}

func TestInvoice_TotalsAreExact(t *testing.T) {
	inv := Invoice{ID: "i1", Number: "F-2025-00001", IssuedAt: now}

	// vacía
	assert.True(t, inv.Total().IsZero())
	assert.True(t, inv.Total().Equal(inv.Subtotal().Add(inv.TotalTax())))

	lines := []Line{
		mustLine(t, "Consulta", 1, "0.10", "21"),
		mustLine(t, "Vacuna", 3, "0.20", "10"),
		mustLine(t, "Antiparasitario", 7, "19.99", "4"),
		mustLine(t, "Champú", 1, "12.345", "21"),
	}
	for _, l := range lines {
		require.NoError(t, inv.AddLine(l))
		assert.True(t, inv.Total().Equal(inv.Subtotal().Add(inv.TotalTax())))
	}
	assert.Equal(t, "i1", inv.Lines[0].InvoiceID)
	// 0.1 + 0.6 + 139.93 + 12.345
	assert.True(t, inv.Subtotal().Equal(dec("152.975")), inv.Subtotal().String())
}

func TestInvoice_RemoveLine(t *testing.T) {
	inv := Invoice{ID: "i1", Number: "F-2025-00001", IssuedAt: now}
	a := mustLine(t, "Consulta", 1, "30", "21")
	b := mustLine(t, "Vacuna", 1, "20", "21")
	require.NoError(t, inv.AddLine(a))
	require.NoError(t, inv.AddLine(b))

	require.NoError(t, inv.RemoveLine(a.ID))
	require.Len(t, inv.Lines, 1)
	assert.Equal(t, b.ID, inv.Lines[0].ID)

	assert.ErrorIs(t, inv.RemoveLine("nope"), apperr.ErrValidation)
}

func TestInvoice_MarkPaid(t *testing.T) {
	t.Run("defaults date and locks lines", func(t *testing.T) {
		inv := Invoice{ID: "i1", Number: "F-2025-00001", AppointmentID: "a1", ClientID: "c1", IssuedAt: now}
		require.NoError(t, inv.AddLine(mustLine(t, "Consulta", 1, "30", "21")))

		require.NoError(t, inv.MarkPaid(PaymentCard, nil, now.Add(time.Hour)))
		require.NotNil(t, inv.PaidAt)
		assert.Equal(t, now.Add(time.Hour), *inv.PaidAt)
		assert.NoError(t, inv.Validate(now.Add(time.Hour)))

		assert.ErrorIs(t, inv.MarkPaid(PaymentCard, nil, now), apperr.ErrBusinessRule)
		assert.ErrorIs(t, inv.AddLine(mustLine(t, "Vacuna", 1, "20", "21")), apperr.ErrBusinessRule)
		assert.ErrorIs(t, inv.RemoveLine(inv.Lines[0].ID), apperr.ErrBusinessRule)
	})

	t.Run("no lines", func(t *testing.T) {
		inv := Invoice{ID: "i1", Number: "F-2025-00001", IssuedAt: now}
		assert.ErrorIs(t, inv.MarkPaid(PaymentCash, nil, now), apperr.ErrBusinessRule)
	})

	t.Run("bad method", func(t *testing.T) {
		inv := Invoice{ID: "i1", Number: "F-2025-00001", IssuedAt: now}
		require.NoError(t, inv.AddLine(mustLine(t, "Consulta", 1, "30", "21")))
		assert.ErrorIs(t, inv.MarkPaid("Bitcoin", nil, now), apperr.ErrValidation)
		assert.False(t, inv.Paid)
	})

	t.Run("paid before issue", func(t *testing.T) {
		inv := Invoice{ID: "i1", Number: "F-2025-00001", IssuedAt: now}
		require.NoError(t, inv.AddLine(mustLine(t, "Consulta", 1, "30", "21")))
		before := now.Add(-time.Hour)
		assert.ErrorIs(t, inv.MarkPaid(PaymentCash, &before, now), apperr.ErrValidation)
	})
}

func TestInvoice_Validate(t *testing.T) {
	base := Invoice{Number: "F-2025-00001", AppointmentID: "a1", ClientID: "c1", IssuedAt: now}
	assert.NoError(t, base.Validate(now))

	future := base
	future.IssuedAt = now.Add(time.Minute)
	assert.ErrorIs(t, future.Validate(now), apperr.ErrValidation)

	paidNoDate := base
	paidNoDate.Paid = true
	paidNoDate.PaymentMethod = PaymentCash
	assert.ErrorIs(t, paidNoDate.Validate(now), apperr.ErrValidation)
}

func TestSummary(t *testing.T) {
	inv := Invoice{ID: "i1", Number: "F-2025-00001", IssuedAt: now}
	require.NoError(t, inv.AddLine(mustLine(t, "Consulta", 2, "50.00", "21")))

	s := inv.Summary()
	assert.Equal(t, "F-2025-00001", s.Number)
	assert.Equal(t, 1, s.LineCount)
	assert.True(t, s.Total.Equal(dec("121")))
	assert.False(t, s.Paid)
}

func TestNumbering(t *testing.T) {
	assert.Equal(t, "F-2025-00001", NextNumber(2025, "", false, 0))
	assert.Equal(t, "F-2025-00002", NextNumber(2025, "F-2025-00001", true, 1))
	assert.Equal(t, "F-2025-00100", NextNumber(2025, "F-2025-00099", true, 99))
	// no interpretable: count+1
	assert.Equal(t, "F-2025-00008", NextNumber(2025, "X-7", true, 7))
	assert.Equal(t, "F-2025-123456", FormatNumber(2025, 123456))
}

func TestHighestNumber(t *testing.T) {
	tests := []struct {
		name    string
		numbers []string
		want    string
		wantOK  bool
	}{
		{"empty", nil, "", false},
		{"five digits", []string{"F-2025-00002", "F-2025-00010", "F-2025-00001"}, "F-2025-00010", true},
		{"past 99999", []string{"F-2025-99999", "F-2025-100000"}, "F-2025-100000", true},
		{"unparsable ignored", []string{"ZZZ", "F-2025-00003"}, "F-2025-00003", true},
		{"only unparsable", []string{"A-1", "B-2"}, "B-2", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := HighestNumber(tt.numbers)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}

	last, _ := HighestNumber([]string{"F-2025-99999", "F-2025-100000"})
	assert.Equal(t, "F-2025-100001", NextNumber(2025, last, true, 2))
}

func TestReports(t *testing.T) {
	paidAt := now
	mk := func(id, client string, issued time.Time, paid bool, price string) Invoice {
		inv := Invoice{ID: id, Number: "F-2025-" + id, ClientID: client, IssuedAt: issued}
		inv.Lines = []Line{mustLine(t, "Consulta", 1, price, "0")}
		if paid {
			inv.Paid = true
			inv.PaidAt = &paidAt
			inv.PaymentMethod = PaymentCash
		}
		return inv
	}
	all := []Invoice{
		mk("00001", "c1", now.AddDate(0, 0, -2), true, "100"),
		mk("00002", "c2", now.AddDate(0, 0, -1), false, "40.50"),
		mk("00003", "c1", now, false, "10"),
		mk("00004", "c3", now.AddDate(0, -2, 0), true, "999"),
	}

	t.Run("income", func(t *testing.T) {
		got := ComputeIncome(all, now.AddDate(0, 0, -7), now)
		assert.Equal(t, 3, got.Count)
		assert.Equal(t, 1, got.PaidCount)
		assert.Equal(t, 2, got.PendingCount)
		assert.True(t, got.Billed.Equal(dec("150.50")))
		assert.True(t, got.Paid.Equal(dec("100")))
		assert.True(t, got.Pending.Equal(dec("50.50")))
	})

	t.Run("top clients", func(t *testing.T) {
		got := RankClients(all, 2)
		require.Len(t, got, 2)
		assert.Equal(t, "c3", got[0].ClientID)
		assert.Equal(t, "c1", got[1].ClientID)
		assert.Equal(t, 2, got[1].Invoices)
		assert.True(t, got[1].Total.Equal(dec("110")))

		assert.Len(t, RankClients(all, 0), 3)
	})
}

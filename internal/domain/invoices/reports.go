package invoices

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

const DefaultTopClients = 10

// Income resume la facturación de un periodo.
type Income struct {
	From time.Time `json:"from"`
	To   time.Time `json:"to"`

	Count        int `json:"count"`
	PaidCount    int `json:"paid_count"`
	PendingCount int `json:"pending_count"`

	Billed  decimal.Decimal `json:"billed"`
	Paid    decimal.Decimal `json:"paid"`
	Pending decimal.Decimal `json:"pending"`
}

// ComputeIncome agrega las facturas con fecha de emisión en [from, to].
func ComputeIncome(all []Invoice, from, to time.Time) Income {
	out := Income{
		From:    from,
		To:      to,
		Billed:  decimal.Zero,
		Paid:    decimal.Zero,
		Pending: decimal.Zero,
	}
	for _, inv := range all {
		if inv.IssuedAt.Before(from) || inv.IssuedAt.After(to) {
			continue
		}
		total := inv.Total()
		out.Count++
		out.Billed = out.Billed.Add(total)
		if inv.Paid {
			out.PaidCount++
			out.Paid = out.Paid.Add(total)
		} else {
			out.PendingCount++
			out.Pending = out.Pending.Add(total)
		}
	}
	return out
}

type ClientTotal struct {
	ClientID string          `json:"client_id"`
	Invoices int             `json:"invoices"`
	Total    decimal.Decimal `json:"total"`
}

// RankClients suma el total facturado por cliente y devuelve los limit mayores.
// Empates: por ClientID para que el orden sea estable.
func RankClients(all []Invoice, limit int) []ClientTotal {
	if limit <= 0 {
		limit = DefaultTopClients
	}

	byClient := map[string]*ClientTotal{}
	for _, inv := range all {
		ct, ok := byClient[inv.ClientID]
		if !ok {
			ct = &ClientTotal{ClientID: inv.ClientID, Total: decimal.Zero}
			byClient[inv.ClientID] = ct
		}
		ct.Invoices++
		ct.Total = ct.Total.Add(inv.Total())
	}

	out := make([]ClientTotal, 0, len(byClient))
	for _, ct := range byClient {
		out = append(out, *ct)
	}
	sort.Slice(out, func(i, j int) bool {
		if c := out[i].Total.Cmp(out[j].Total); c != 0 {
			return c > 0
		}
		return out[i].ClientID < out[j].ClientID
	})

	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

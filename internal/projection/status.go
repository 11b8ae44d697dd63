package projection

import (
	"time"

	"github.com/shopspring/decimal"

	"intellicard/internal/core"
)

// Invoice status labels for the current billing cycle of a card.
const (
	InvoiceOpen   = "aberta"
	InvoiceClosed = "fechada"
)

// InvoiceStatus reports whether a card's current invoice still accepts
// charges. Before the closing day the invoice is open; on or after it, new
// purchases roll to the next statement. The color is an opaque tag the UI
// maps to its palette.
func InvoiceStatus(closingDay int, now time.Time) (label, color string) {
	if now.Day() < closingDay {
		return InvoiceOpen, "emerald"
	}
	return InvoiceClosed, "amber"
}

// UsedLimit sums the full value of every transaction charged on the card,
// recurring or not. It feeds the usage-ratio display against the card's
// total limit.
func UsedLimit(cardID string, txs []core.Transaction) decimal.Decimal {
	used := decimal.Zero
	for _, tx := range txs {
		if tx.CardID == cardID {
			used = used.Add(tx.Value)
		}
	}
	return used
}

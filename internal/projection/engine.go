package projection

import (
	"time"

	"github.com/shopspring/decimal"

	"intellicard/internal/core"
)

// WindowMonths is the fixed length of the forward projection.
const WindowMonths = 12

type (
	// MonthlyProjection is one month of the projection window: the grand
	// total plus the amount billed on each registered card. Amounts are
	// rounded to cents independently; the total is not re-derived from the
	// rounded per-card values.
	MonthlyProjection struct {
		Label          string                     `json:"label"`
		MonthStart     time.Time                  `json:"monthStart"`
		IsCurrentMonth bool                       `json:"isCurrentMonth"`
		Total          decimal.Decimal            `json:"total"`
		PerCard        map[string]decimal.Decimal `json:"perCard"`
	}

	// Engine computes projections. It is stateless and safe for concurrent
	// use; the wall clock is always passed in by the caller.
	Engine struct {
		label LabelFunc
	}
)

// NewEngine builds an engine with the given month-label formatter.
// A nil label falls back to the pt-BR short form ("jan. 24").
func NewEngine(label LabelFunc) *Engine {
	if label == nil {
		label = ShortMonthLabel
	}
	return &Engine{label: label}
}

// ProjectTwelveMonths maps the card and transaction collections to the
// 12-month window anchored at now's calendar month (index 0 = current
// month). Transactions referencing an unknown card contribute nothing.
func (e *Engine) ProjectTwelveMonths(now time.Time, cards []core.Card, txs []core.Transaction) []MonthlyProjection {
	anchor := MonthStart(now)
	byID := cardIndex(cards)

	months := make([]MonthlyProjection, 0, WindowMonths)
	for i := 0; i < WindowMonths; i++ {
		target := anchor.AddDate(0, i, 0)

		mp := MonthlyProjection{
			Label:          e.label(target.Year(), target.Month()),
			MonthStart:     target,
			IsCurrentMonth: i == 0,
			Total:          decimal.Zero,
			PerCard:        make(map[string]decimal.Decimal, len(cards)),
		}
		for _, c := range cards {
			mp.PerCard[c.ID] = decimal.Zero
		}

		for _, tx := range txs {
			card, ok := byID[tx.CardID]
			if !ok {
				continue // orphaned reference, excluded by contract
			}
			amount, _, ok := contribution(tx, card, target)
			if !ok {
				continue
			}
			mp.PerCard[tx.CardID] = mp.PerCard[tx.CardID].Add(amount)
			mp.Total = mp.Total.Add(amount)
		}

		for id, v := range mp.PerCard {
			mp.PerCard[id] = v.Round(2)
		}
		mp.Total = mp.Total.Round(2)

		months = append(months, mp)
	}
	return months
}

// contribution is the single attribution predicate shared by the engine and
// the detail extractor: does tx (billed on card) contribute to the month
// starting at monthStart, with which amount, and as which 0-based
// installment index. Recurring charges report index 0.
func contribution(tx core.Transaction, card core.Card, monthStart time.Time) (decimal.Decimal, int, bool) {
	firstBill := MonthStart(FirstBillingMonth(tx.Date.Time, card.ClosingDay, card.DueDay))

	if tx.IsRecurring {
		// Accrues at full value from first billing onward, uncapped.
		if monthStart.Before(firstBill) {
			return decimal.Decimal{}, 0, false
		}
		return tx.Value, 0, true
	}

	k := monthsBetween(firstBill, monthStart)
	if k < 0 || k >= tx.EffectiveInstallments() {
		return decimal.Decimal{}, 0, false
	}
	installment := tx.Value.Div(decimal.NewFromInt(int64(tx.EffectiveInstallments())))
	return installment, k, true
}

func cardIndex(cards []core.Card) map[string]core.Card {
	byID := make(map[string]core.Card, len(cards))
	for _, c := range cards {
		byID[c.ID] = c
	}
	return byID
}

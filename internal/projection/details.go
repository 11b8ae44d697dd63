package projection

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"intellicard/internal/core"
)

// Detail is one contributing line of a month's statement: a single
// installment of a purchase, or a recurring charge at full value.
type Detail struct {
	Description       string          `json:"description"`
	CardName          string          `json:"cardName"`
	CardColor         string          `json:"cardColor"`
	InstallmentNumber int             `json:"installmentNumber"`
	TotalInstallments int             `json:"totalInstallments"`
	Value             decimal.Decimal `json:"value"`
	IsRecurring       bool            `json:"isRecurring"`
}

// MonthlyDetails lists the line items billed in the month containing
// target, ordered by value descending. Ties keep the transactions'
// encounter order. It uses the same attribution predicate as
// ProjectTwelveMonths, so the sum of a month's details always matches that
// month's projected total.
func (e *Engine) MonthlyDetails(target time.Time, cards []core.Card, txs []core.Transaction) []Detail {
	monthStart := MonthStart(target)
	byID := cardIndex(cards)

	var details []Detail
	for _, tx := range txs {
		card, ok := byID[tx.CardID]
		if !ok {
			continue
		}
		amount, k, ok := contribution(tx, card, monthStart)
		if !ok {
			continue
		}

		d := Detail{
			Description: tx.Description,
			CardName:    card.Name,
			CardColor:   card.Color,
			Value:       amount,
			IsRecurring: tx.IsRecurring,
		}
		if tx.IsRecurring {
			d.InstallmentNumber = 1
			d.TotalInstallments = 1
		} else {
			d.InstallmentNumber = k + 1
			d.TotalInstallments = tx.EffectiveInstallments()
		}
		details = append(details, d)
	}

	sort.SliceStable(details, func(i, j int) bool {
		return details[i].Value.GreaterThan(details[j].Value)
	})
	return details
}

package http

import (
	"strings"

	"github.com/shopspring/decimal"

	"intellicard/internal/core"
)

// Amount decodes a JSON money field. Clients send numbers or strings, with
// dot or comma as the decimal separator: 12.34, "12.34" and "12,34" all
// parse to the same value.
type Amount struct {
	decimal.Decimal
}

func (a *Amount) UnmarshalJSON(b []byte) error {
	s := strings.Trim(strings.TrimSpace(string(b)), `"`)
	if s == "" || s == "null" {
		a.Decimal = decimal.Zero
		return nil
	}
	d, err := core.ParseAmount(s)
	if err != nil {
		return err
	}
	a.Decimal = d
	return nil
}

// cardRequest is the write payload for cards.
type cardRequest struct {
	Name       string `json:"name"`
	TotalLimit Amount `json:"totalLimit"`
	ClosingDay int    `json:"closingDay"`
	DueDay     int    `json:"dueDay"`
	Color      string `json:"color"`
}

func (req cardRequest) toCard(id string) core.Card {
	return core.Card{
		ID:         id,
		Name:       sanitizeInput(req.Name),
		TotalLimit: req.TotalLimit.Decimal,
		ClosingDay: req.ClosingDay,
		DueDay:     req.DueDay,
		Color:      sanitizeInput(req.Color),
	}
}

// transactionRequest is the write payload for transactions.
type transactionRequest struct {
	Description  string    `json:"description"`
	Value        Amount    `json:"value"`
	Date         core.Date `json:"date"`
	CardID       string    `json:"cardId"`
	Installments int       `json:"installments"`
	IsRecurring  bool      `json:"isRecurring"`
}

func (req transactionRequest) toTransaction(id string) core.Transaction {
	return core.Transaction{
		ID:           id,
		Description:  sanitizeInput(req.Description),
		Value:        req.Value.Decimal,
		Date:         req.Date,
		CardID:       strings.TrimSpace(req.CardID),
		Installments: req.Installments,
		IsRecurring:  req.IsRecurring,
	}
}

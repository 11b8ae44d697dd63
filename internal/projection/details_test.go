package projection

import (
	"testing"

	"github.com/shopspring/decimal"

	"intellicard/internal/core"
)

func TestMonthlyDetailsInstallmentNumbering(t *testing.T) {
	cards := []core.Card{testCard()}
	txs := []core.Transaction{{
		ID:           "t1",
		Description:  "notebook",
		Value:        dec("300"),
		Date:         core.NewDate(2024, 1, 10),
		CardID:       "card-a",
		Installments: 3,
	}}

	eng := NewEngine(nil)

	// First billing month is February; March carries installment 2 of 3.
	details := eng.MonthlyDetails(date(2024, 3, 1), cards, txs)
	if len(details) != 1 {
		t.Fatalf("expected 1 detail, got %d", len(details))
	}
	d := details[0]
	if d.InstallmentNumber != 2 || d.TotalInstallments != 3 {
		t.Fatalf("expected installment 2/3, got %d/%d", d.InstallmentNumber, d.TotalInstallments)
	}
	if !d.Value.Equal(dec("100")) {
		t.Fatalf("value = %s, want 100", d.Value)
	}
	if d.CardName != "Card A" || d.CardColor != "#7c3aed" {
		t.Fatalf("card attribution wrong: %+v", d)
	}

	// January precedes the first billing month; May is past the last
	// installment.
	if got := eng.MonthlyDetails(date(2024, 1, 1), cards, txs); len(got) != 0 {
		t.Fatalf("january should be empty, got %d details", len(got))
	}
	if got := eng.MonthlyDetails(date(2024, 5, 1), cards, txs); len(got) != 0 {
		t.Fatalf("may should be empty, got %d details", len(got))
	}
}

func TestMonthlyDetailsInstallmentsSumToValue(t *testing.T) {
	// Summing the per-installment values across all billed months must
	// reproduce the purchase value.
	cards := []core.Card{testCard()}
	value := dec("100")
	txs := []core.Transaction{{
		ID:           "t1",
		Description:  "tv",
		Value:        value,
		Date:         core.NewDate(2024, 1, 2),
		CardID:       "card-a",
		Installments: 3,
	}}

	eng := NewEngine(nil)
	sum := decimal.Zero
	for i := 0; i < 3; i++ {
		for _, d := range eng.MonthlyDetails(date(2024, 1+i, 1), cards, txs) {
			sum = sum.Add(d.Value)
		}
	}
	if sum.Sub(value).Abs().GreaterThan(dec("0.000001")) {
		t.Fatalf("installments sum to %s, want %s", sum, value)
	}
}

func TestMonthlyDetailsRecurringShape(t *testing.T) {
	cards := []core.Card{testCard()}
	txs := []core.Transaction{{
		ID:          "t1",
		Description: "streaming",
		Value:       dec("39.90"),
		Date:        core.NewDate(2024, 3, 1),
		CardID:      "card-a",
		IsRecurring: true,
		// Must be ignored for recurring charges.
		Installments: 12,
	}}

	details := NewEngine(nil).MonthlyDetails(date(2024, 9, 1), cards, txs)
	if len(details) != 1 {
		t.Fatalf("expected 1 detail, got %d", len(details))
	}
	d := details[0]
	if !d.IsRecurring {
		t.Fatalf("detail should be flagged recurring")
	}
	if d.InstallmentNumber != 1 || d.TotalInstallments != 1 {
		t.Fatalf("recurring details are 1/1, got %d/%d", d.InstallmentNumber, d.TotalInstallments)
	}
	if !d.Value.Equal(dec("39.90")) {
		t.Fatalf("recurring bills full value, got %s", d.Value)
	}
}

func TestMonthlyDetailsOrderedByValueDescending(t *testing.T) {
	cards := []core.Card{testCard()}
	txs := []core.Transaction{
		{ID: "t1", Description: "pequeno", Value: dec("10"), Date: core.NewDate(2024, 1, 2), CardID: "card-a", Installments: 1},
		{ID: "t2", Description: "grande", Value: dec("900"), Date: core.NewDate(2024, 1, 2), CardID: "card-a", Installments: 1},
		{ID: "t3", Description: "medio", Value: dec("55.50"), Date: core.NewDate(2024, 1, 2), CardID: "card-a", Installments: 1},
	}

	details := NewEngine(nil).MonthlyDetails(date(2024, 1, 1), cards, txs)
	if len(details) != 3 {
		t.Fatalf("expected 3 details, got %d", len(details))
	}
	for i := 1; i < len(details); i++ {
		if details[i].Value.GreaterThan(details[i-1].Value) {
			t.Fatalf("details not sorted by value descending: %s before %s",
				details[i-1].Value, details[i].Value)
		}
	}
	if details[0].Description != "grande" || details[2].Description != "pequeno" {
		t.Fatalf("unexpected order: %+v", details)
	}
}

func TestMonthlyDetailsStableOnTies(t *testing.T) {
	cards := []core.Card{testCard()}
	txs := []core.Transaction{
		{ID: "t1", Description: "primeiro", Value: dec("42"), Date: core.NewDate(2024, 1, 2), CardID: "card-a", Installments: 1},
		{ID: "t2", Description: "segundo", Value: dec("42"), Date: core.NewDate(2024, 1, 2), CardID: "card-a", Installments: 1},
	}

	details := NewEngine(nil).MonthlyDetails(date(2024, 1, 1), cards, txs)
	if len(details) != 2 {
		t.Fatalf("expected 2 details, got %d", len(details))
	}
	if details[0].Description != "primeiro" || details[1].Description != "segundo" {
		t.Fatalf("tie order not stable: %+v", details)
	}
}

func TestMonthlyDetailsOrphanExcluded(t *testing.T) {
	txs := []core.Transaction{{
		ID: "t1", Description: "orfao", Value: dec("99"),
		Date: core.NewDate(2024, 1, 2), CardID: "gone", Installments: 1,
	}}
	if got := NewEngine(nil).MonthlyDetails(date(2024, 1, 1), nil, txs); len(got) != 0 {
		t.Fatalf("orphaned transaction produced %d details", len(got))
	}
}

func TestUsedLimit(t *testing.T) {
	txs := []core.Transaction{
		{CardID: "card-a", Value: dec("100.50")},
		{CardID: "card-a", Value: dec("39.90"), IsRecurring: true},
		{CardID: "card-b", Value: dec("500")},
	}
	if got := UsedLimit("card-a", txs); !got.Equal(dec("140.40")) {
		t.Fatalf("used limit = %s, want 140.40", got)
	}
	if got := UsedLimit("missing", txs); !got.IsZero() {
		t.Fatalf("unknown card should have zero usage, got %s", got)
	}
}

func TestInvoiceStatus(t *testing.T) {
	if label, _ := InvoiceStatus(15, date(2024, 1, 10)); label != InvoiceOpen {
		t.Fatalf("day 10 before closing 15 should be open, got %s", label)
	}
	if label, _ := InvoiceStatus(15, date(2024, 1, 15)); label != InvoiceClosed {
		t.Fatalf("closing day itself should be closed, got %s", label)
	}
}

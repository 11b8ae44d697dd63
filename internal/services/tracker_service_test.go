package services

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"intellicard/internal/core"
	"intellicard/internal/store/memory"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func newTracker() *TrackerService {
	return NewTrackerService(memory.New())
}

func seedCard(t *testing.T, s *TrackerService, name string) core.Card {
	t.Helper()
	c, err := s.SaveCard(context.Background(), core.Card{
		Name:       name,
		TotalLimit: dec("1000"),
		ClosingDay: 5,
		DueDay:     10,
		Color:      "#111",
	})
	if err != nil {
		t.Fatalf("seed card: %v", err)
	}
	return c
}

func seedTransaction(t *testing.T, s *TrackerService, cardID, desc string) core.Transaction {
	t.Helper()
	tx, err := s.SaveTransaction(context.Background(), core.Transaction{
		Description:  desc,
		Value:        dec("100"),
		Date:         core.NewDate(2024, 1, 10),
		CardID:       cardID,
		Installments: 1,
	})
	if err != nil {
		t.Fatalf("seed transaction: %v", err)
	}
	return tx
}

func TestSaveCardAssignsID(t *testing.T) {
	s := newTracker()
	c := seedCard(t, s, "Nubank")
	if c.ID == "" {
		t.Fatalf("expected generated ID")
	}

	got, err := s.GetCard(context.Background(), c.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Name != "Nubank" {
		t.Fatalf("got %q", got.Name)
	}
}

func TestSaveCardKeepsExplicitID(t *testing.T) {
	s := newTracker()
	c, err := s.SaveCard(context.Background(), core.Card{
		ID:         "fixed",
		Name:       "Visa",
		TotalLimit: dec("500"),
		ClosingDay: 1,
		DueDay:     8,
	})
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if c.ID != "fixed" {
		t.Fatalf("ID rewritten to %q", c.ID)
	}
}

func TestSaveTransactionRequiresExistingCard(t *testing.T) {
	s := newTracker()
	_, err := s.SaveTransaction(context.Background(), core.Transaction{
		Description:  "orfao",
		Value:        dec("10"),
		Date:         core.NewDate(2024, 1, 1),
		CardID:       "missing",
		Installments: 1,
	})
	if !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestSaveTransactionNormalizesRecurring(t *testing.T) {
	s := newTracker()
	c := seedCard(t, s, "Nubank")

	tx, err := s.SaveTransaction(context.Background(), core.Transaction{
		Description: "streaming",
		Value:       dec("39.90"),
		Date:        core.NewDate(2024, 3, 1),
		CardID:      c.ID,
		IsRecurring: true,
		// User-supplied installment counts are meaningless for recurring
		// charges and must be normalized away.
		Installments: 12,
	})
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if tx.Installments != 1 {
		t.Fatalf("installments = %d, want 1", tx.Installments)
	}
}

func TestDeleteCardCascades(t *testing.T) {
	ctx := context.Background()
	s := newTracker()
	c1 := seedCard(t, s, "Nubank")
	c2 := seedCard(t, s, "Visa")
	seedTransaction(t, s, c1.ID, "mercado")
	seedTransaction(t, s, c2.ID, "padaria")

	if err := s.DeleteCard(ctx, c1.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	txs, err := s.ListTransactions(ctx, "", "")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(txs) != 1 || txs[0].CardID != c2.ID {
		t.Fatalf("cascade failed: %+v", txs)
	}
}

func TestListTransactionsFilterAndSearch(t *testing.T) {
	ctx := context.Background()
	s := newTracker()
	c1 := seedCard(t, s, "Nubank")
	c2 := seedCard(t, s, "Visa")
	seedTransaction(t, s, c1.ID, "Mercado Central")
	seedTransaction(t, s, c1.ID, "Padaria")
	seedTransaction(t, s, c2.ID, "mercado da esquina")

	byCard, err := s.ListTransactions(ctx, c1.ID, "")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(byCard) != 2 {
		t.Fatalf("card filter returned %d", len(byCard))
	}

	bySearch, err := s.ListTransactions(ctx, "", "MERCADO")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(bySearch) != 2 {
		t.Fatalf("search returned %d", len(bySearch))
	}

	both, err := s.ListTransactions(ctx, c2.ID, "mercado")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(both) != 1 || both[0].Description != "mercado da esquina" {
		t.Fatalf("combined filter returned %+v", both)
	}
}

func TestOnChangeFiresOnMutations(t *testing.T) {
	ctx := context.Background()
	s := newTracker()
	changes := 0
	s.OnChange(func() { changes++ })

	c := seedCard(t, s, "Nubank")
	tx := seedTransaction(t, s, c.ID, "mercado")
	if err := s.DeleteTransaction(ctx, tx.ID); err != nil {
		t.Fatalf("delete tx: %v", err)
	}
	if err := s.DeleteCard(ctx, c.ID); err != nil {
		t.Fatalf("delete card: %v", err)
	}

	if changes != 4 {
		t.Fatalf("onChange fired %d times, want 4", changes)
	}

	// Failed mutations must not invalidate.
	if err := s.DeleteCard(ctx, "missing"); err == nil {
		t.Fatalf("expected error")
	}
	if changes != 4 {
		t.Fatalf("onChange fired on failed mutation")
	}
}

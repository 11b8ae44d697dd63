package storage

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"

	"intellicard/internal/core"
)

func newTestRepo(t *testing.T) *SQLiteRepository {
	t.Helper()
	repo, err := NewSQLiteRepository(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open repository: %v", err)
	}
	t.Cleanup(func() { _ = repo.Close() })
	return repo
}

func testCard(id string) core.Card {
	return core.Card{
		ID:         id,
		Name:       "Nubank",
		TotalLimit: decimal.NewFromInt(5000),
		ClosingDay: 5,
		DueDay:     12,
		Color:      "#820ad1",
	}
}

func TestCardRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	card := testCard("c1")
	if err := repo.SaveCard(ctx, card); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := repo.GetCard(ctx, "c1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Name != card.Name || !got.TotalLimit.Equal(card.TotalLimit) || got.ClosingDay != card.ClosingDay {
		t.Fatalf("got %+v", got)
	}

	// Upsert on the same id
	card.Name = "Nubank Ultravioleta"
	if err := repo.SaveCard(ctx, card); err != nil {
		t.Fatalf("update: %v", err)
	}
	got, err = repo.GetCard(ctx, "c1")
	if err != nil {
		t.Fatalf("get after update: %v", err)
	}
	if got.Name != "Nubank Ultravioleta" {
		t.Fatalf("name=%q", got.Name)
	}

	cards, err := repo.ListCards(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(cards) != 1 {
		t.Fatalf("listed %d cards", len(cards))
	}

	if _, err := repo.GetCard(ctx, "missing"); !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestTransactionRoundTripAndOrder(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	if err := repo.SaveCard(ctx, testCard("c1")); err != nil {
		t.Fatalf("save card: %v", err)
	}

	older := core.Transaction{
		ID:           "t1",
		Description:  "mercado",
		Value:        decimal.RequireFromString("250.40"),
		Date:         core.NewDate(2024, 1, 10),
		CardID:       "c1",
		Installments: 1,
	}
	newer := core.Transaction{
		ID:          "t2",
		Description: "streaming",
		Value:       decimal.RequireFromString("39.90"),
		Date:        core.NewDate(2024, 3, 2),
		CardID:      "c1",
		IsRecurring: true,
	}
	for _, tx := range []core.Transaction{older, newer} {
		if err := repo.SaveTransaction(ctx, tx); err != nil {
			t.Fatalf("save %s: %v", tx.ID, err)
		}
	}

	txs, err := repo.ListTransactions(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(txs) != 2 {
		t.Fatalf("listed %d transactions", len(txs))
	}
	if txs[0].ID != "t2" || txs[1].ID != "t1" {
		t.Fatalf("order = %s, %s; want newest first", txs[0].ID, txs[1].ID)
	}

	got, err := repo.GetTransaction(ctx, "t2")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !got.IsRecurring || !got.Value.Equal(newer.Value) || !got.Date.Equal(newer.Date.Time) {
		t.Fatalf("got %+v", got)
	}
}

func TestDeleteCardCascades(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	if err := repo.SaveCard(ctx, testCard("c1")); err != nil {
		t.Fatalf("save card: %v", err)
	}
	tx := core.Transaction{
		ID:           "t1",
		Description:  "fone",
		Value:        decimal.NewFromInt(200),
		Date:         core.NewDate(2024, 2, 1),
		CardID:       "c1",
		Installments: 2,
	}
	if err := repo.SaveTransaction(ctx, tx); err != nil {
		t.Fatalf("save tx: %v", err)
	}

	if err := repo.DeleteCard(ctx, "c1"); err != nil {
		t.Fatalf("delete card: %v", err)
	}
	if _, err := repo.GetTransaction(ctx, "t1"); !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("expected cascade delete, got %v", err)
	}

	if err := repo.DeleteCard(ctx, "c1"); !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("double delete: %v", err)
	}
}

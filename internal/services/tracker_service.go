// Package services provides the orchestration layer between the HTTP
// surface and the stores: CRUD with cascade rules, history filtering and
// the memoized projection computation.
package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/google/uuid"

	"intellicard/internal/core"
	"intellicard/internal/store"
)

// TrackerService owns card and transaction lifecycle on top of a store.
type TrackerService struct {
	repo store.Repository

	// onChange is invoked after every successful mutation, letting the
	// projection layer drop its memoized results.
	onChange func()
}

func NewTrackerService(repo store.Repository) *TrackerService {
	return &TrackerService{repo: repo, onChange: func() {}}
}

// OnChange registers the invalidation hook called after mutations.
func (s *TrackerService) OnChange(fn func()) {
	if fn != nil {
		s.onChange = fn
	}
}

func (s *TrackerService) ListCards(ctx context.Context) ([]core.Card, error) {
	cards, err := s.repo.ListCards(ctx)
	if err != nil {
		return nil, fmt.Errorf("list cards: %w", err)
	}
	return cards, nil
}

func (s *TrackerService) GetCard(ctx context.Context, id string) (core.Card, error) {
	return s.repo.GetCard(ctx, id)
}

// SaveCard creates or updates a card, assigning an ID on first save.
func (s *TrackerService) SaveCard(ctx context.Context, c core.Card) (core.Card, error) {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	if err := c.Validate(); err != nil {
		return core.Card{}, err
	}
	if err := s.repo.SaveCard(ctx, c); err != nil {
		return core.Card{}, fmt.Errorf("save card: %w", err)
	}

	slog.InfoContext(ctx, "Card saved",
		"card_id", c.ID,
		"card_name", c.Name)
	s.onChange()
	return c, nil
}

// DeleteCard removes a card and, by cascade, every transaction charged on
// it. Projections recomputed afterwards treat any survivor referencing the
// card as orphaned and exclude it.
func (s *TrackerService) DeleteCard(ctx context.Context, id string) error {
	if err := s.repo.DeleteCard(ctx, id); err != nil {
		return err
	}

	slog.InfoContext(ctx, "Card deleted", "card_id", id)
	s.onChange()
	return nil
}

func (s *TrackerService) GetTransaction(ctx context.Context, id string) (core.Transaction, error) {
	return s.repo.GetTransaction(ctx, id)
}

// SaveTransaction creates or updates a transaction, assigning an ID on
// first save. The referenced card must exist at write time; orphaning can
// only happen later through card deletion races, which the projection
// engine tolerates.
func (s *TrackerService) SaveTransaction(ctx context.Context, t core.Transaction) (core.Transaction, error) {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	if t.IsRecurring {
		t.Installments = 1
	}
	if err := t.Validate(); err != nil {
		return core.Transaction{}, err
	}
	if _, err := s.repo.GetCard(ctx, t.CardID); err != nil {
		return core.Transaction{}, fmt.Errorf("resolve card %s: %w", t.CardID, err)
	}
	if err := s.repo.SaveTransaction(ctx, t); err != nil {
		return core.Transaction{}, fmt.Errorf("save transaction: %w", err)
	}

	slog.InfoContext(ctx, "Transaction saved",
		"transaction_id", t.ID,
		"description", t.Description,
		"value", t.Value.String(),
		"card_id", t.CardID,
		"installments", t.Installments,
		"is_recurring", t.IsRecurring)
	s.onChange()
	return t, nil
}

func (s *TrackerService) DeleteTransaction(ctx context.Context, id string) error {
	if err := s.repo.DeleteTransaction(ctx, id); err != nil {
		return err
	}

	slog.InfoContext(ctx, "Transaction deleted", "transaction_id", id)
	s.onChange()
	return nil
}

// ListTransactions returns the history, optionally narrowed to one card
// and/or a case-insensitive description search, newest first.
func (s *TrackerService) ListTransactions(ctx context.Context, cardID, search string) ([]core.Transaction, error) {
	txs, err := s.repo.ListTransactions(ctx)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}

	search = strings.ToLower(strings.TrimSpace(search))
	filtered := make([]core.Transaction, 0, len(txs))
	for _, t := range txs {
		if cardID != "" && t.CardID != cardID {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(t.Description), search) {
			continue
		}
		filtered = append(filtered, t)
	}

	sort.SliceStable(filtered, func(i, j int) bool {
		return filtered[i].Date.After(filtered[j].Date.Time)
	})
	return filtered, nil
}

package services

import (
	"context"
	"fmt"
	"hash/fnv"
	"log/slog"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"intellicard/internal/cache"
	"intellicard/internal/core"
	"intellicard/internal/projection"
	"intellicard/internal/store"
)

// CardSummary is the drill-down view of a single card: limit usage and the
// state of the current invoice.
type CardSummary struct {
	Card          core.Card       `json:"card"`
	UsedLimit     decimal.Decimal `json:"usedLimit"`
	UsageRatio    decimal.Decimal `json:"usageRatio"`
	InvoiceStatus string          `json:"invoiceStatus"`
	StatusColor   string          `json:"statusColor"`
}

// ProjectionService computes the 12-month projection over the store's
// current collections. Results are memoized keyed on a content fingerprint
// of the inputs plus the anchor month, and dropped on every mutation.
type ProjectionService struct {
	repo   store.Repository
	engine *projection.Engine
	cache  cache.Cache[[]projection.MonthlyProjection]

	// clock anchors the projection window; injectable for tests.
	clock func() time.Time
}

func NewProjectionService(repo store.Repository, engine *projection.Engine, c cache.Cache[[]projection.MonthlyProjection]) *ProjectionService {
	if engine == nil {
		engine = projection.NewEngine(nil)
	}
	return &ProjectionService{
		repo:   repo,
		engine: engine,
		cache:  c,
		clock:  time.Now,
	}
}

// WithClock replaces the wall clock, for deterministic tests.
func (s *ProjectionService) WithClock(clock func() time.Time) *ProjectionService {
	if clock != nil {
		s.clock = clock
	}
	return s
}

// Invalidate drops all memoized projections. Wired as the tracker
// service's mutation hook.
func (s *ProjectionService) Invalidate() {
	if s.cache != nil {
		s.cache.Purge()
	}
}

// Project returns the 12-month projection anchored at the current month.
func (s *ProjectionService) Project(ctx context.Context) ([]projection.MonthlyProjection, error) {
	cards, txs, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}

	now := s.clock()
	key := projectionKey(now, cards, txs)
	if s.cache != nil {
		if months, ok := s.cache.Get(key); ok {
			slog.DebugContext(ctx, "Projection cache hit", "key", key)
			return months, nil
		}
	}

	months := s.engine.ProjectTwelveMonths(now, cards, txs)
	if s.cache != nil {
		s.cache.Set(key, months)
	}
	slog.DebugContext(ctx, "Projection computed",
		"cards", len(cards),
		"transactions", len(txs))
	return months, nil
}

// Details returns the ordered line items billed in the given month.
func (s *ProjectionService) Details(ctx context.Context, year int, month time.Month) ([]projection.Detail, error) {
	cards, txs, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	target := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	return s.engine.MonthlyDetails(target, cards, txs), nil
}

// Summary reports limit usage and invoice status for one card.
func (s *ProjectionService) Summary(ctx context.Context, cardID string) (CardSummary, error) {
	card, err := s.repo.GetCard(ctx, cardID)
	if err != nil {
		return CardSummary{}, err
	}
	txs, err := s.repo.ListTransactions(ctx)
	if err != nil {
		return CardSummary{}, fmt.Errorf("list transactions: %w", err)
	}

	used := projection.UsedLimit(cardID, txs)
	ratio := decimal.Zero
	if card.TotalLimit.IsPositive() {
		ratio = used.Div(card.TotalLimit).Round(4)
	}
	status, color := projection.InvoiceStatus(card.ClosingDay, s.clock())

	return CardSummary{
		Card:          card,
		UsedLimit:     used.Round(2),
		UsageRatio:    ratio,
		InvoiceStatus: status,
		StatusColor:   color,
	}, nil
}

func (s *ProjectionService) snapshot(ctx context.Context) ([]core.Card, []core.Transaction, error) {
	cards, err := s.repo.ListCards(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("list cards: %w", err)
	}
	txs, err := s.repo.ListTransactions(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("list transactions: %w", err)
	}
	return cards, txs, nil
}

// projectionKey fingerprints the input collections plus the anchor month,
// so a stale clock or changed data can never serve a wrong cached window.
func projectionKey(now time.Time, cards []core.Card, txs []core.Transaction) string {
	h := fnv.New64a()
	for _, c := range cards {
		fmt.Fprintf(h, "c|%s|%s|%d|%d\n", c.ID, c.TotalLimit, c.ClosingDay, c.DueDay)
	}
	for _, t := range txs {
		fmt.Fprintf(h, "t|%s|%s|%s|%s|%d|%t\n",
			t.ID, t.Value, t.Date, t.CardID, t.Installments, t.IsRecurring)
	}
	anchor := projection.MonthStart(now).Format("2006-01")
	return anchor + ":" + strconv.FormatUint(h.Sum64(), 16)
}

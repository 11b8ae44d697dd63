// Package storage implements the SQLite persistence backend.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/shopspring/decimal"
	_ "modernc.org/sqlite"

	"intellicard/internal/core"
)

type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	// The pragma rides on the DSN so every pooled connection has foreign
	// keys on; the card-to-transaction cascade depends on it.
	db, err := sql.Open("sqlite", dbPath+"?_pragma=foreign_keys(1)")
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

func (r *SQLiteRepository) ListCards(ctx context.Context) ([]core.Card, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, total_limit, closing_day, due_day, color
		FROM cards
		ORDER BY name, id`)
	if err != nil {
		return nil, fmt.Errorf("list cards: %w", err)
	}
	defer rows.Close()

	var cards []core.Card
	for rows.Next() {
		c, err := scanCard(rows)
		if err != nil {
			return nil, err
		}
		cards = append(cards, c)
	}
	return cards, rows.Err()
}

func (r *SQLiteRepository) GetCard(ctx context.Context, id string) (core.Card, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, name, total_limit, closing_day, due_day, color
		FROM cards
		WHERE id = ?`, id)
	c, err := scanCard(row)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Card{}, core.ErrNotFound
	}
	return c, err
}

func (r *SQLiteRepository) SaveCard(ctx context.Context, c core.Card) error {
	if err := c.Validate(); err != nil {
		return err
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO cards (id, name, total_limit, closing_day, due_day, color)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			name = excluded.name,
			total_limit = excluded.total_limit,
			closing_day = excluded.closing_day,
			due_day = excluded.due_day,
			color = excluded.color,
			updated_at = CURRENT_TIMESTAMP`,
		c.ID, c.Name, c.TotalLimit.String(), c.ClosingDay, c.DueDay, c.Color)
	if err != nil {
		return fmt.Errorf("save card: %w", err)
	}

	slog.InfoContext(ctx, "Card saved",
		"card_id", c.ID,
		"card_name", c.Name,
		"closing_day", c.ClosingDay,
		"due_day", c.DueDay)
	return nil
}

func (r *SQLiteRepository) DeleteCard(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM cards WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete card: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete card rows affected: %w", err)
	}
	if n == 0 {
		return core.ErrNotFound
	}

	slog.InfoContext(ctx, "Card deleted with cascade", "card_id", id)
	return nil
}

func (r *SQLiteRepository) ListTransactions(ctx context.Context) ([]core.Transaction, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, description, value, date, card_id, installments, is_recurring
		FROM transactions
		ORDER BY date DESC, id`)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()

	var txs []core.Transaction
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		txs = append(txs, t)
	}
	return txs, rows.Err()
}

func (r *SQLiteRepository) GetTransaction(ctx context.Context, id string) (core.Transaction, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, description, value, date, card_id, installments, is_recurring
		FROM transactions
		WHERE id = ?`, id)
	t, err := scanTransaction(row)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Transaction{}, core.ErrNotFound
	}
	return t, err
}

func (r *SQLiteRepository) SaveTransaction(ctx context.Context, t core.Transaction) error {
	if err := t.Validate(); err != nil {
		return err
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO transactions (id, description, value, date, card_id, installments, is_recurring)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			description = excluded.description,
			value = excluded.value,
			date = excluded.date,
			card_id = excluded.card_id,
			installments = excluded.installments,
			is_recurring = excluded.is_recurring,
			updated_at = CURRENT_TIMESTAMP`,
		t.ID, t.Description, t.Value.String(), t.Date.String(),
		t.CardID, t.Installments, boolToInt(t.IsRecurring))
	if err != nil {
		return fmt.Errorf("save transaction: %w", err)
	}

	slog.InfoContext(ctx, "Transaction saved",
		"transaction_id", t.ID,
		"description", t.Description,
		"value", t.Value.String(),
		"card_id", t.CardID,
		"installments", t.Installments,
		"is_recurring", t.IsRecurring)
	return nil
}

func (r *SQLiteRepository) DeleteTransaction(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM transactions WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete transaction: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete transaction rows affected: %w", err)
	}
	if n == 0 {
		return core.ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCard(row rowScanner) (core.Card, error) {
	var (
		c        core.Card
		rawLimit string
	)
	if err := row.Scan(&c.ID, &c.Name, &rawLimit, &c.ClosingDay, &c.DueDay, &c.Color); err != nil {
		return core.Card{}, fmt.Errorf("scan card: %w", err)
	}
	limit, err := decimal.NewFromString(rawLimit)
	if err != nil {
		return core.Card{}, fmt.Errorf("parse card limit %q: %w", rawLimit, err)
	}
	c.TotalLimit = limit
	return c, nil
}

func scanTransaction(row rowScanner) (core.Transaction, error) {
	var (
		t           core.Transaction
		rawValue    string
		rawDate     string
		isRecurring int
	)
	if err := row.Scan(&t.ID, &t.Description, &rawValue, &rawDate,
		&t.CardID, &t.Installments, &isRecurring); err != nil {
		return core.Transaction{}, fmt.Errorf("scan transaction: %w", err)
	}
	value, err := decimal.NewFromString(rawValue)
	if err != nil {
		return core.Transaction{}, fmt.Errorf("parse transaction value %q: %w", rawValue, err)
	}
	date, err := core.ParseDate(rawDate)
	if err != nil {
		return core.Transaction{}, fmt.Errorf("parse transaction date %q: %w", rawDate, err)
	}
	t.Value = value
	t.Date = date
	t.IsRecurring = isRecurring != 0
	return t, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

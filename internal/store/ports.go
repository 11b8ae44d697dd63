// Package store defines the persistence ports the services depend on.
package store

import (
	"context"

	"intellicard/internal/core"
)

// Ports for outbound persistence adapters.
type (
	CardStore interface {
		ListCards(ctx context.Context) ([]core.Card, error)
		GetCard(ctx context.Context, id string) (core.Card, error)
		// SaveCard inserts or updates by ID.
		SaveCard(ctx context.Context, c core.Card) error
		// DeleteCard removes the card and cascades to its transactions.
		DeleteCard(ctx context.Context, id string) error
	}

	TransactionStore interface {
		ListTransactions(ctx context.Context) ([]core.Transaction, error)
		GetTransaction(ctx context.Context, id string) (core.Transaction, error)
		// SaveTransaction inserts or updates by ID.
		SaveTransaction(ctx context.Context, t core.Transaction) error
		DeleteTransaction(ctx context.Context, id string) error
	}

	// Repository is the full persistence surface a backend provides.
	Repository interface {
		CardStore
		TransactionStore
	}
)

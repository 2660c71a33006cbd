// Package services holds the write coordinator and aggregation logic
// between the HTTP handlers and the ledger store. Services validate and
// normalize input, delegate persistence to storage write units, and never
// hold state of their own.
package services

import (
	"context"
	"fmt"
	"strings"

	"pennywise/internal/core"
	"pennywise/internal/storage"
)

// TransactionService coordinates ledger entry writes and reads.
type TransactionService struct {
	store *storage.Store
}

func NewTransactionService(store *storage.Store) *TransactionService {
	return &TransactionService{store: store}
}

// CreateTransactionInput carries a new ledger entry. Amount is a pointer so
// an absent field is distinguishable from an explicit zero.
type CreateTransactionInput struct {
	UserID   string
	Title    string
	Amount   *core.Amount
	Category string
}

func (in CreateTransactionInput) validate() error {
	switch {
	case strings.TrimSpace(in.UserID) == "":
		return core.Validationf("user_id is required")
	case strings.TrimSpace(in.Title) == "":
		return core.Validationf("title is required")
	case in.Amount == nil:
		return core.Validationf("amount is required")
	case strings.TrimSpace(in.Category) == "":
		return core.Validationf("category is required")
	}
	return nil
}

// Create validates and appends a new ledger entry, returning the stored row.
func (s *TransactionService) Create(ctx context.Context, in CreateTransactionInput) (core.Transaction, error) {
	if err := in.validate(); err != nil {
		return core.Transaction{}, err
	}
	t, err := s.store.InsertTransaction(ctx, in.UserID, in.Title, *in.Amount, in.Category)
	if err != nil {
		return core.Transaction{}, fmt.Errorf("create transaction: %w", err)
	}
	return t, nil
}

// List returns the owner's ledger entries, newest first.
func (s *TransactionService) List(ctx context.Context, userID string) ([]core.Transaction, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, core.Validationf("user_id is required")
	}
	return s.store.ListTransactions(ctx, userID)
}

// Delete removes one entry scoped to its owner.
func (s *TransactionService) Delete(ctx context.Context, id int64, userID string) error {
	if strings.TrimSpace(userID) == "" {
		return core.Validationf("user_id is required")
	}
	return s.store.DeleteTransaction(ctx, id, userID)
}

// BalanceSummary derives the owner's overall balance from all entries.
func (s *TransactionService) BalanceSummary(ctx context.Context, userID string) (core.BalanceSummary, error) {
	if strings.TrimSpace(userID) == "" {
		return core.BalanceSummary{}, core.Validationf("user_id is required")
	}
	income, expenses, err := s.store.BalanceTotals(ctx, userID)
	if err != nil {
		return core.BalanceSummary{}, fmt.Errorf("balance summary: %w", err)
	}
	return core.BalanceSummary{
		Balance:  core.Amount{Cents: income.Cents - expenses.Cents},
		Income:   income,
		Expenses: expenses,
	}, nil
}

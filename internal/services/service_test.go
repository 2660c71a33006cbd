package services

import (
	"context"
	"path/filepath"
	"testing"

	"pennywise/internal/core"
	"pennywise/internal/storage"
)

func newTestStore(t *testing.T) *storage.Store {
	t.Helper()
	s, err := storage.Open(filepath.Join(t.TempDir(), "ledger.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func amount(cents int64) *core.Amount {
	return &core.Amount{Cents: cents}
}

func seedTransaction(t *testing.T, svc *TransactionService, userID, title string, cents int64, category string) core.Transaction {
	t.Helper()
	tr, err := svc.Create(context.Background(), CreateTransactionInput{
		UserID:   userID,
		Title:    title,
		Amount:   amount(cents),
		Category: category,
	})
	if err != nil {
		t.Fatalf("seed transaction %s: %v", title, err)
	}
	return tr
}

package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"pennywise/internal/core"
)

// InsertTransaction appends a ledger entry and returns the canonical stored
// row. Insert, id fetch and re-read share one transaction.
func (s *Store) InsertTransaction(ctx context.Context, userID, title string, amount core.Amount, category string) (core.Transaction, error) {
	tx, err := s.begin(ctx)
	if err != nil {
		return core.Transaction{}, err
	}
	defer rollback(ctx, tx)

	res, err := tx.ExecContext(ctx,
		`INSERT INTO transactions (user_id, title, amount_cents, category, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		userID, title, amount.Cents, category, storeTime(time.Now()))
	if err != nil {
		return core.Transaction{}, fmt.Errorf("insert transaction: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return core.Transaction{}, fmt.Errorf("transaction id: %w", err)
	}

	created, err := scanTransaction(tx.QueryRowContext(ctx, selectTransaction+` WHERE id = ?`, id))
	if err != nil {
		return core.Transaction{}, fmt.Errorf("read back transaction %d: %w", id, err)
	}

	if err := tx.Commit(); err != nil {
		return core.Transaction{}, fmt.Errorf("commit transaction insert: %w", err)
	}
	return created, nil
}

// ListTransactions returns all entries of one owner, newest first.
func (s *Store) ListTransactions(ctx context.Context, userID string) ([]core.Transaction, error) {
	rows, err := s.db.QueryContext(ctx,
		selectTransaction+` WHERE user_id = ? ORDER BY created_at DESC, id DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()

	list := []core.Transaction{}
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		list = append(list, t)
	}
	return list, rows.Err()
}

// GetTransaction fetches one entry by id regardless of owner.
func (s *Store) GetTransaction(ctx context.Context, id int64) (core.Transaction, error) {
	t, err := scanTransaction(s.db.QueryRowContext(ctx, selectTransaction+` WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return core.Transaction{}, core.ErrNotFound
	}
	if err != nil {
		return core.Transaction{}, fmt.Errorf("get transaction %d: %w", id, err)
	}
	return t, nil
}

// DeleteTransaction removes an entry only when the owner matches. A missing
// row and an ownership mismatch are both ErrNotFound.
func (s *Store) DeleteTransaction(ctx context.Context, id int64, userID string) error {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM transactions WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return fmt.Errorf("delete transaction %d: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete transaction %d: %w", id, err)
	}
	if n == 0 {
		return core.ErrNotFound
	}
	return nil
}

const selectTransaction = `SELECT id, user_id, title, amount_cents, category, created_at FROM transactions`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTransaction(row rowScanner) (core.Transaction, error) {
	var (
		t         core.Transaction
		createdAt string
	)
	if err := row.Scan(&t.ID, &t.UserID, &t.Title, &t.Amount.Cents, &t.Category, &createdAt); err != nil {
		return core.Transaction{}, err
	}
	t.CreatedAt = parseStoreTime(createdAt)
	return t, nil
}

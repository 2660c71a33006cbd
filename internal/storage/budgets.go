package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"pennywise/internal/core"
)

// BudgetPatch carries the optional fields of a budget update. Nil fields
// keep the stored value via COALESCE.
type BudgetPatch struct {
	Category *string
	Amount   *core.Amount
	Period   *core.Period
}

// CreateBudget inserts a budget for one (owner, category) pair. The
// duplicate check, insert and re-read run in the same transaction so a
// concurrent create cannot slip between check and insert.
func (s *Store) CreateBudget(ctx context.Context, userID, category string, amount core.Amount, period core.Period) (core.Budget, error) {
	tx, err := s.begin(ctx)
	if err != nil {
		return core.Budget{}, err
	}
	defer rollback(ctx, tx)

	var exists bool
	err = tx.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM budgets WHERE user_id = ? AND category = ?)`,
		userID, category).Scan(&exists)
	if err != nil {
		return core.Budget{}, fmt.Errorf("check budget category: %w", err)
	}
	if exists {
		return core.Budget{}, core.ErrDuplicateBudget
	}

	now := storeTime(time.Now())
	res, err := tx.ExecContext(ctx,
		`INSERT INTO budgets (user_id, category, amount_cents, period, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		userID, category, amount.Cents, string(period), now, now)
	if err != nil {
		if isUniqueViolation(err) {
			return core.Budget{}, core.ErrDuplicateBudget
		}
		return core.Budget{}, fmt.Errorf("insert budget: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return core.Budget{}, fmt.Errorf("budget id: %w", err)
	}

	created, err := scanBudget(tx.QueryRowContext(ctx, selectBudget+` WHERE id = ?`, id))
	if err != nil {
		return core.Budget{}, fmt.Errorf("read back budget %d: %w", id, err)
	}

	if err := tx.Commit(); err != nil {
		return core.Budget{}, fmt.Errorf("commit budget insert: %w", err)
	}
	return created, nil
}

// UpdateBudget applies a partial update scoped to the owner and returns the
// resulting row. An empty patch still refreshes updated_at.
func (s *Store) UpdateBudget(ctx context.Context, id int64, userID string, patch BudgetPatch) (core.Budget, error) {
	tx, err := s.begin(ctx)
	if err != nil {
		return core.Budget{}, err
	}
	defer rollback(ctx, tx)

	var amountCents *int64
	if patch.Amount != nil {
		amountCents = &patch.Amount.Cents
	}
	var period *string
	if patch.Period != nil {
		p := string(*patch.Period)
		period = &p
	}

	res, err := tx.ExecContext(ctx,
		`UPDATE budgets
		 SET category = COALESCE(?, category),
		     amount_cents = COALESCE(?, amount_cents),
		     period = COALESCE(?, period),
		     updated_at = ?
		 WHERE id = ? AND user_id = ?`,
		patch.Category, amountCents, period, storeTime(time.Now()), id, userID)
	if err != nil {
		if isUniqueViolation(err) {
			return core.Budget{}, core.ErrDuplicateBudget
		}
		return core.Budget{}, fmt.Errorf("update budget %d: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return core.Budget{}, fmt.Errorf("update budget %d: %w", id, err)
	}
	if n == 0 {
		return core.Budget{}, core.ErrNotFound
	}

	updated, err := scanBudget(tx.QueryRowContext(ctx, selectBudget+` WHERE id = ?`, id))
	if err != nil {
		return core.Budget{}, fmt.Errorf("read back budget %d: %w", id, err)
	}

	if err := tx.Commit(); err != nil {
		return core.Budget{}, fmt.Errorf("commit budget update: %w", err)
	}
	return updated, nil
}

// ListBudgets returns all budgets of one owner, newest first.
func (s *Store) ListBudgets(ctx context.Context, userID string) ([]core.Budget, error) {
	rows, err := s.db.QueryContext(ctx,
		selectBudget+` WHERE user_id = ? ORDER BY created_at DESC, id DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("list budgets: %w", err)
	}
	defer rows.Close()

	list := []core.Budget{}
	for rows.Next() {
		b, err := scanBudget(rows)
		if err != nil {
			return nil, fmt.Errorf("scan budget: %w", err)
		}
		list = append(list, b)
	}
	return list, rows.Err()
}

// GetBudget fetches one budget by id regardless of owner.
func (s *Store) GetBudget(ctx context.Context, id int64) (core.Budget, error) {
	b, err := scanBudget(s.db.QueryRowContext(ctx, selectBudget+` WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return core.Budget{}, core.ErrNotFound
	}
	if err != nil {
		return core.Budget{}, fmt.Errorf("get budget %d: %w", id, err)
	}
	return b, nil
}

// DeleteBudget removes a budget only when the owner matches.
func (s *Store) DeleteBudget(ctx context.Context, id int64, userID string) error {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM budgets WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return fmt.Errorf("delete budget %d: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete budget %d: %w", id, err)
	}
	if n == 0 {
		return core.ErrNotFound
	}
	return nil
}

const selectBudget = `SELECT id, user_id, category, amount_cents, period, created_at, updated_at FROM budgets`

func scanBudget(row rowScanner) (core.Budget, error) {
	var (
		b                    core.Budget
		period               string
		createdAt, updatedAt string
	)
	if err := row.Scan(&b.ID, &b.UserID, &b.Category, &b.Amount.Cents, &period, &createdAt, &updatedAt); err != nil {
		return core.Budget{}, err
	}
	b.Period = core.Period(period)
	b.CreatedAt = parseStoreTime(createdAt)
	b.UpdatedAt = parseStoreTime(updatedAt)
	return b, nil
}

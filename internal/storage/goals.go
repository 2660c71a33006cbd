package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"pennywise/internal/core"
)

// GoalPatch carries the optional fields of a savings goal update. Nil
// fields keep the stored value via COALESCE; target_date therefore cannot
// be cleared through an update, only replaced.
type GoalPatch struct {
	Title         *string
	TargetAmount  *core.Amount
	CurrentAmount *core.Amount
	Icon          *string
	TargetDate    *string
}

// CreateGoal inserts a savings goal and returns the canonical stored row.
func (s *Store) CreateGoal(ctx context.Context, userID, title string, target, current core.Amount, icon string, targetDate *string) (core.SavingsGoal, error) {
	tx, err := s.begin(ctx)
	if err != nil {
		return core.SavingsGoal{}, err
	}
	defer rollback(ctx, tx)

	now := storeTime(time.Now())
	res, err := tx.ExecContext(ctx,
		`INSERT INTO savings_goals (user_id, title, target_amount_cents, current_amount_cents, icon, target_date, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		userID, title, target.Cents, current.Cents, icon, targetDate, now, now)
	if err != nil {
		return core.SavingsGoal{}, fmt.Errorf("insert savings goal: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return core.SavingsGoal{}, fmt.Errorf("savings goal id: %w", err)
	}

	created, err := scanGoal(tx.QueryRowContext(ctx, selectGoal+` WHERE id = ?`, id))
	if err != nil {
		return core.SavingsGoal{}, fmt.Errorf("read back savings goal %d: %w", id, err)
	}

	if err := tx.Commit(); err != nil {
		return core.SavingsGoal{}, fmt.Errorf("commit savings goal insert: %w", err)
	}
	return created, nil
}

// UpdateGoal applies a partial update scoped to the owner and returns the
// resulting row.
func (s *Store) UpdateGoal(ctx context.Context, id int64, userID string, patch GoalPatch) (core.SavingsGoal, error) {
	tx, err := s.begin(ctx)
	if err != nil {
		return core.SavingsGoal{}, err
	}
	defer rollback(ctx, tx)

	var targetCents, currentCents *int64
	if patch.TargetAmount != nil {
		targetCents = &patch.TargetAmount.Cents
	}
	if patch.CurrentAmount != nil {
		currentCents = &patch.CurrentAmount.Cents
	}

	res, err := tx.ExecContext(ctx,
		`UPDATE savings_goals
		 SET title = COALESCE(?, title),
		     target_amount_cents = COALESCE(?, target_amount_cents),
		     current_amount_cents = COALESCE(?, current_amount_cents),
		     icon = COALESCE(?, icon),
		     target_date = COALESCE(?, target_date),
		     updated_at = ?
		 WHERE id = ? AND user_id = ?`,
		patch.Title, targetCents, currentCents, patch.Icon, patch.TargetDate,
		storeTime(time.Now()), id, userID)
	if err != nil {
		return core.SavingsGoal{}, fmt.Errorf("update savings goal %d: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return core.SavingsGoal{}, fmt.Errorf("update savings goal %d: %w", id, err)
	}
	if n == 0 {
		return core.SavingsGoal{}, core.ErrNotFound
	}

	updated, err := scanGoal(tx.QueryRowContext(ctx, selectGoal+` WHERE id = ?`, id))
	if err != nil {
		return core.SavingsGoal{}, fmt.Errorf("read back savings goal %d: %w", id, err)
	}

	if err := tx.Commit(); err != nil {
		return core.SavingsGoal{}, fmt.Errorf("commit savings goal update: %w", err)
	}
	return updated, nil
}

// AddToGoal increments a goal's saved amount in place. The increment happens
// inside the UPDATE so concurrent deposits never lose each other.
func (s *Store) AddToGoal(ctx context.Context, id int64, userID string, delta core.Amount) (core.SavingsGoal, error) {
	tx, err := s.begin(ctx)
	if err != nil {
		return core.SavingsGoal{}, err
	}
	defer rollback(ctx, tx)

	res, err := tx.ExecContext(ctx,
		`UPDATE savings_goals
		 SET current_amount_cents = current_amount_cents + ?,
		     updated_at = ?
		 WHERE id = ? AND user_id = ?`,
		delta.Cents, storeTime(time.Now()), id, userID)
	if err != nil {
		return core.SavingsGoal{}, fmt.Errorf("add to savings goal %d: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return core.SavingsGoal{}, fmt.Errorf("add to savings goal %d: %w", id, err)
	}
	if n == 0 {
		return core.SavingsGoal{}, core.ErrNotFound
	}

	updated, err := scanGoal(tx.QueryRowContext(ctx, selectGoal+` WHERE id = ?`, id))
	if err != nil {
		return core.SavingsGoal{}, fmt.Errorf("read back savings goal %d: %w", id, err)
	}

	if err := tx.Commit(); err != nil {
		return core.SavingsGoal{}, fmt.Errorf("commit savings goal deposit: %w", err)
	}
	return updated, nil
}

// ListGoals returns all goals of one owner, newest first.
func (s *Store) ListGoals(ctx context.Context, userID string) ([]core.SavingsGoal, error) {
	rows, err := s.db.QueryContext(ctx,
		selectGoal+` WHERE user_id = ? ORDER BY created_at DESC, id DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("list savings goals: %w", err)
	}
	defer rows.Close()

	list := []core.SavingsGoal{}
	for rows.Next() {
		g, err := scanGoal(rows)
		if err != nil {
			return nil, fmt.Errorf("scan savings goal: %w", err)
		}
		list = append(list, g)
	}
	return list, rows.Err()
}

// GetGoal fetches one goal by id regardless of owner.
func (s *Store) GetGoal(ctx context.Context, id int64) (core.SavingsGoal, error) {
	g, err := scanGoal(s.db.QueryRowContext(ctx, selectGoal+` WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return core.SavingsGoal{}, core.ErrNotFound
	}
	if err != nil {
		return core.SavingsGoal{}, fmt.Errorf("get savings goal %d: %w", id, err)
	}
	return g, nil
}

// DeleteGoal removes a goal only when the owner matches.
func (s *Store) DeleteGoal(ctx context.Context, id int64, userID string) error {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM savings_goals WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return fmt.Errorf("delete savings goal %d: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete savings goal %d: %w", id, err)
	}
	if n == 0 {
		return core.ErrNotFound
	}
	return nil
}

const selectGoal = `SELECT id, user_id, title, target_amount_cents, current_amount_cents, icon, target_date, created_at, updated_at FROM savings_goals`

func scanGoal(row rowScanner) (core.SavingsGoal, error) {
	var (
		g                    core.SavingsGoal
		targetDate           sql.NullString
		createdAt, updatedAt string
	)
	if err := row.Scan(&g.ID, &g.UserID, &g.Title, &g.TargetAmount.Cents, &g.CurrentAmount.Cents, &g.Icon, &targetDate, &createdAt, &updatedAt); err != nil {
		return core.SavingsGoal{}, err
	}
	if targetDate.Valid {
		g.TargetDate = &targetDate.String
	}
	g.CreatedAt = parseStoreTime(createdAt)
	g.UpdatedAt = parseStoreTime(updatedAt)
	return g, nil
}

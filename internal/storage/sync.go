package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"pennywise/internal/core"
)

// Sync record parameter sets. Records arrive pre-validated from the sync
// service; exactly one of the three pointers on SyncRecord is set.
type (
	SyncTransaction struct {
		UserID   string
		Title    string
		Amount   core.Amount
		Category string
	}

	SyncBudget struct {
		UserID   string
		Category string
		Amount   core.Amount
		Period   core.Period
	}

	SyncGoal struct {
		UserID     string
		Title      string
		Target     core.Amount
		Current    core.Amount
		Icon       string
		TargetDate *string
	}

	SyncRecord struct {
		Transaction *SyncTransaction
		Budget      *SyncBudget
		Goal        *SyncGoal
	}
)

// ApplySyncBatch inserts a batch of offline records in one transaction with
// a savepoint per record. A record that fails (a duplicate budget category,
// usually) is rolled back to its savepoint and reported in failed; the rest
// of the batch still commits. Only a batch-level failure aborts everything.
func (s *Store) ApplySyncBatch(ctx context.Context, records []SyncRecord) (applied int, failed []int, err error) {
	tx, err := s.begin(ctx)
	if err != nil {
		return 0, nil, err
	}
	defer rollback(ctx, tx)

	now := storeTime(time.Now())
	for i, rec := range records {
		if _, err := tx.ExecContext(ctx, `SAVEPOINT sync_record`); err != nil {
			return 0, nil, fmt.Errorf("savepoint: %w", err)
		}
		if err := applySyncRecord(ctx, tx, rec, now); err != nil {
			if _, rbErr := tx.ExecContext(ctx, `ROLLBACK TO SAVEPOINT sync_record`); rbErr != nil {
				return 0, nil, fmt.Errorf("rollback to savepoint: %w", rbErr)
			}
			failed = append(failed, i)
		} else {
			applied++
		}
		if _, err := tx.ExecContext(ctx, `RELEASE SAVEPOINT sync_record`); err != nil {
			return 0, nil, fmt.Errorf("release savepoint: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, nil, fmt.Errorf("commit sync batch: %w", err)
	}
	return applied, failed, nil
}

func applySyncRecord(ctx context.Context, tx *sql.Tx, rec SyncRecord, now string) error {
	switch {
	case rec.Transaction != nil:
		t := rec.Transaction
		_, err := tx.ExecContext(ctx,
			`INSERT INTO transactions (user_id, title, amount_cents, category, created_at)
			 VALUES (?, ?, ?, ?, ?)`,
			t.UserID, t.Title, t.Amount.Cents, t.Category, now)
		if err != nil {
			return fmt.Errorf("sync transaction: %w", err)
		}
		return nil
	case rec.Budget != nil:
		b := rec.Budget
		_, err := tx.ExecContext(ctx,
			`INSERT INTO budgets (user_id, category, amount_cents, period, created_at, updated_at)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			b.UserID, b.Category, b.Amount.Cents, string(b.Period), now, now)
		if isUniqueViolation(err) {
			return core.ErrDuplicateBudget
		}
		if err != nil {
			return fmt.Errorf("sync budget: %w", err)
		}
		return nil
	case rec.Goal != nil:
		g := rec.Goal
		_, err := tx.ExecContext(ctx,
			`INSERT INTO savings_goals (user_id, title, target_amount_cents, current_amount_cents, icon, target_date, created_at, updated_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			g.UserID, g.Title, g.Target.Cents, g.Current.Cents, g.Icon, g.TargetDate, now, now)
		if err != nil {
			return fmt.Errorf("sync goal: %w", err)
		}
		return nil
	default:
		return core.Validationf("sync record carries no payload")
	}
}

package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"pennywise/internal/core"
)

// Aggregation queries. These return raw grouped rows; percentage math,
// ranking and status labels live in the reports service. Expenses are
// negative in the ledger, so every spend aggregate works on ABS of the
// negative rows only.

// BalanceTotals returns the owner's all-time income and expense magnitudes.
func (s *Store) BalanceTotals(ctx context.Context, userID string) (income, expenses core.Amount, err error) {
	err = s.db.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(CASE WHEN amount_cents > 0 THEN amount_cents ELSE 0 END), 0),
		        COALESCE(SUM(CASE WHEN amount_cents < 0 THEN -amount_cents ELSE 0 END), 0)
		 FROM transactions
		 WHERE user_id = ?`, userID).Scan(&income.Cents, &expenses.Cents)
	if err != nil {
		return core.Amount{}, core.Amount{}, fmt.Errorf("balance totals: %w", err)
	}
	return income, expenses, nil
}

// BudgetSpendRow joins one budget with the spend charged against its
// category.
type BudgetSpendRow struct {
	ID       int64
	Category string
	Budget   core.Amount
	Period   core.Period
	Spent    core.Amount
	Count    int64
}

// BudgetSpend joins every budget of the owner with its all-time category
// expense. Budgets with no matching transactions still appear with zero
// spend.
func (s *Store) BudgetSpend(ctx context.Context, userID string) ([]BudgetSpendRow, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT b.id, b.category, b.amount_cents, b.period,
		        COALESCE(SUM(-t.amount_cents), 0), COUNT(t.id)
		 FROM budgets b
		 LEFT JOIN transactions t
		   ON t.user_id = b.user_id AND t.category = b.category AND t.amount_cents < 0
		 WHERE b.user_id = ?
		 GROUP BY b.id, b.category, b.amount_cents, b.period
		 ORDER BY b.category`, userID)
	if err != nil {
		return nil, fmt.Errorf("budget spend: %w", err)
	}
	return collectBudgetSpend(rows)
}

// BudgetSpendSince is BudgetSpend bounded to transactions at or after the
// given instant. One shared window applies to all budgets.
func (s *Store) BudgetSpendSince(ctx context.Context, userID string, since time.Time) ([]BudgetSpendRow, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT b.id, b.category, b.amount_cents, b.period,
		        COALESCE(SUM(-t.amount_cents), 0), COUNT(t.id)
		 FROM budgets b
		 LEFT JOIN transactions t
		   ON t.user_id = b.user_id AND t.category = b.category AND t.amount_cents < 0
		   AND t.created_at >= ?
		 WHERE b.user_id = ?
		 GROUP BY b.id, b.category, b.amount_cents, b.period
		 ORDER BY b.id`, storeTime(since), userID)
	if err != nil {
		return nil, fmt.Errorf("budget spend since: %w", err)
	}
	return collectBudgetSpend(rows)
}

// BudgetSpendByPeriod bounds each budget's spend to the budget's own period
// window ending at now. The cutoff is chosen per row inside the join.
func (s *Store) BudgetSpendByPeriod(ctx context.Context, userID string, now time.Time) ([]BudgetSpendRow, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT b.id, b.category, b.amount_cents, b.period,
		        COALESCE(SUM(-t.amount_cents), 0), COUNT(t.id)
		 FROM budgets b
		 LEFT JOIN transactions t
		   ON t.user_id = b.user_id AND t.category = b.category AND t.amount_cents < 0
		   AND t.created_at >= CASE b.period
		       WHEN 'weekly' THEN ?
		       WHEN 'yearly' THEN ?
		       ELSE ?
		       END
		 WHERE b.user_id = ?
		 GROUP BY b.id, b.category, b.amount_cents, b.period
		 ORDER BY b.category`,
		storeTime(core.Weekly.WindowStart(now)),
		storeTime(core.Yearly.WindowStart(now)),
		storeTime(core.Monthly.WindowStart(now)),
		userID)
	if err != nil {
		return nil, fmt.Errorf("budget spend by period: %w", err)
	}
	return collectBudgetSpend(rows)
}

func collectBudgetSpend(rows *sql.Rows) ([]BudgetSpendRow, error) {
	defer rows.Close()
	list := []BudgetSpendRow{}
	for rows.Next() {
		var (
			r      BudgetSpendRow
			period string
		)
		if err := rows.Scan(&r.ID, &r.Category, &r.Budget.Cents, &period, &r.Spent.Cents, &r.Count); err != nil {
			return nil, fmt.Errorf("scan budget spend: %w", err)
		}
		r.Period = core.Period(period)
		list = append(list, r)
	}
	return list, rows.Err()
}

// CategoryStatsRow is one category's expense statistics over a window.
type CategoryStatsRow struct {
	Category string
	Total    core.Amount
	Count    int64
	Avg      float64
	Min      core.Amount
	Max      core.Amount
}

// ExpenseStatsByCategory groups the owner's expenses between start and end
// (inclusive), largest total first.
func (s *Store) ExpenseStatsByCategory(ctx context.Context, userID string, start, end time.Time) ([]CategoryStatsRow, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT category,
		        SUM(-amount_cents), COUNT(*),
		        AVG(-amount_cents), MIN(-amount_cents), MAX(-amount_cents)
		 FROM transactions
		 WHERE user_id = ? AND amount_cents < 0 AND created_at >= ? AND created_at <= ?
		 GROUP BY category
		 ORDER BY SUM(-amount_cents) DESC, category`,
		userID, storeTime(start), storeTime(end))
	if err != nil {
		return nil, fmt.Errorf("expense stats by category: %w", err)
	}
	defer rows.Close()

	list := []CategoryStatsRow{}
	for rows.Next() {
		var r CategoryStatsRow
		if err := rows.Scan(&r.Category, &r.Total.Cents, &r.Count, &r.Avg, &r.Min.Cents, &r.Max.Cents); err != nil {
			return nil, fmt.Errorf("scan category stats: %w", err)
		}
		list = append(list, r)
	}
	return list, rows.Err()
}

// MonthCategoryRow is one category's totals within a single calendar month.
type MonthCategoryRow struct {
	Category     string
	TotalExpense core.Amount
	TotalIncome  core.Amount
	ExpenseCount int64
}

// MonthByCategory groups one calendar month of the owner's ledger by
// category. Year is "YYYY" and month is zero-padded "MM", matching the
// stored timestamp text.
func (s *Store) MonthByCategory(ctx context.Context, userID, year, month string) ([]MonthCategoryRow, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT category,
		        COALESCE(SUM(CASE WHEN amount_cents < 0 THEN -amount_cents ELSE 0 END), 0),
		        COALESCE(SUM(CASE WHEN amount_cents > 0 THEN amount_cents ELSE 0 END), 0),
		        COUNT(CASE WHEN amount_cents < 0 THEN 1 END)
		 FROM transactions
		 WHERE user_id = ? AND strftime('%Y', created_at) = ? AND strftime('%m', created_at) = ?
		 GROUP BY category
		 ORDER BY 2 DESC, category`, userID, year, month)
	if err != nil {
		return nil, fmt.Errorf("month by category: %w", err)
	}
	defer rows.Close()

	list := []MonthCategoryRow{}
	for rows.Next() {
		var r MonthCategoryRow
		if err := rows.Scan(&r.Category, &r.TotalExpense.Cents, &r.TotalIncome.Cents, &r.ExpenseCount); err != nil {
			return nil, fmt.Errorf("scan month category: %w", err)
		}
		list = append(list, r)
	}
	return list, rows.Err()
}

// MonthTotalsRow is one calendar month's income and expense totals.
type MonthTotalsRow struct {
	Month        string
	Income       core.Amount
	Expense      core.Amount
	ExpenseCount int64
}

// MonthlyTotals groups the owner's ledger by calendar month from since
// onward, oldest first. Used as forecast history and the dashboard's
// current-month slice.
func (s *Store) MonthlyTotals(ctx context.Context, userID string, since time.Time) ([]MonthTotalsRow, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT strftime('%Y-%m', created_at) AS month,
		        COALESCE(SUM(CASE WHEN amount_cents > 0 THEN amount_cents ELSE 0 END), 0),
		        COALESCE(SUM(CASE WHEN amount_cents < 0 THEN -amount_cents ELSE 0 END), 0),
		        COUNT(CASE WHEN amount_cents < 0 THEN 1 END)
		 FROM transactions
		 WHERE user_id = ? AND created_at >= ?
		 GROUP BY month
		 ORDER BY month`, userID, storeTime(since))
	if err != nil {
		return nil, fmt.Errorf("monthly totals: %w", err)
	}
	defer rows.Close()

	list := []MonthTotalsRow{}
	for rows.Next() {
		var r MonthTotalsRow
		if err := rows.Scan(&r.Month, &r.Income.Cents, &r.Expense.Cents, &r.ExpenseCount); err != nil {
			return nil, fmt.Errorf("scan monthly totals: %w", err)
		}
		list = append(list, r)
	}
	return list, rows.Err()
}

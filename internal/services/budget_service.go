package services

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"pennywise/internal/core"
	"pennywise/internal/storage"
)

// BudgetService coordinates budget writes and the budget-centric reports.
type BudgetService struct {
	store *storage.Store
	now   func() time.Time
}

func NewBudgetService(store *storage.Store) *BudgetService {
	return &BudgetService{store: store, now: time.Now}
}

// CreateBudgetInput carries a new budget. Period is the raw string; empty
// defaults to monthly.
type CreateBudgetInput struct {
	UserID   string
	Category string
	Amount   *core.Amount
	Period   string
}

// UpdateBudgetInput carries a partial budget update. Nil fields are left
// unchanged.
type UpdateBudgetInput struct {
	UserID   string
	Category *string
	Amount   *core.Amount
	Period   *string
}

// Create validates and stores a new budget. A second budget for the same
// owner and category is rejected with a conflict.
func (s *BudgetService) Create(ctx context.Context, in CreateBudgetInput) (core.Budget, error) {
	switch {
	case strings.TrimSpace(in.UserID) == "":
		return core.Budget{}, core.Validationf("user_id is required")
	case strings.TrimSpace(in.Category) == "":
		return core.Budget{}, core.Validationf("category is required")
	case in.Amount == nil:
		return core.Budget{}, core.Validationf("amount is required")
	}
	period, err := core.ParsePeriod(in.Period)
	if err != nil {
		return core.Budget{}, err
	}
	b, err := s.store.CreateBudget(ctx, in.UserID, in.Category, *in.Amount, period)
	if err != nil {
		if core.IsConflict(err) {
			return core.Budget{}, err
		}
		return core.Budget{}, fmt.Errorf("create budget: %w", err)
	}
	return b, nil
}

// Update applies a partial update scoped to the owner.
func (s *BudgetService) Update(ctx context.Context, id int64, in UpdateBudgetInput) (core.Budget, error) {
	if strings.TrimSpace(in.UserID) == "" {
		return core.Budget{}, core.Validationf("user_id is required")
	}
	patch := storage.BudgetPatch{Category: in.Category, Amount: in.Amount}
	if in.Period != nil {
		period, err := core.ParsePeriod(*in.Period)
		if err != nil {
			return core.Budget{}, err
		}
		patch.Period = &period
	}
	return s.store.UpdateBudget(ctx, id, in.UserID, patch)
}

// List returns the owner's budgets, newest first.
func (s *BudgetService) List(ctx context.Context, userID string) ([]core.Budget, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, core.Validationf("user_id is required")
	}
	return s.store.ListBudgets(ctx, userID)
}

// Get fetches one budget by bare id.
func (s *BudgetService) Get(ctx context.Context, id int64) (core.Budget, error) {
	return s.store.GetBudget(ctx, id)
}

// Delete removes one budget scoped to its owner.
func (s *BudgetService) Delete(ctx context.Context, id int64, userID string) error {
	if strings.TrimSpace(userID) == "" {
		return core.Validationf("user_id is required")
	}
	return s.store.DeleteBudget(ctx, id, userID)
}

// Summary aggregates all budgets of the owner against their all-time
// category spend. Empty data yields zero totals and an empty slice, never
// an error.
func (s *BudgetService) Summary(ctx context.Context, userID string) (core.BudgetSummary, error) {
	if strings.TrimSpace(userID) == "" {
		return core.BudgetSummary{}, core.Validationf("user_id is required")
	}
	rows, err := s.store.BudgetSpend(ctx, userID)
	if err != nil {
		return core.BudgetSummary{}, fmt.Errorf("budget summary: %w", err)
	}

	summary := core.BudgetSummary{CategorySpending: []core.CategorySpending{}}
	for _, r := range rows {
		summary.TotalBudget = summary.TotalBudget.Add(r.Budget)
		summary.TotalSpent = summary.TotalSpent.Add(r.Spent)
		summary.CategorySpending = append(summary.CategorySpending, core.CategorySpending{
			Category:     r.Category,
			BudgetAmount: r.Budget,
			SpentAmount:  r.Spent,
		})
	}
	summary.Remaining = core.Amount{Cents: summary.TotalBudget.Cents - summary.TotalSpent.Cents}
	return summary, nil
}

// Progress reports utilization of each budget within one shared window
// derived from the requested period (default monthly), highest utilization
// first.
func (s *BudgetService) Progress(ctx context.Context, userID, periodStr string) ([]core.BudgetProgress, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, core.Validationf("user_id is required")
	}
	period, err := core.ParsePeriod(periodStr)
	if err != nil {
		return nil, err
	}

	rows, err := s.store.BudgetSpendSince(ctx, userID, period.WindowStart(s.now()))
	if err != nil {
		return nil, fmt.Errorf("budget progress: %w", err)
	}

	progress := make([]core.BudgetProgress, 0, len(rows))
	for _, r := range rows {
		progress = append(progress, core.BudgetProgress{
			ID:           r.ID,
			Category:     r.Category,
			BudgetAmount: r.Budget,
			SpentAmount:  r.Spent,
			Percentage:   core.Percentage(r.Spent, r.Budget),
		})
	}
	sort.SliceStable(progress, func(i, j int) bool {
		if progress[i].Percentage != progress[j].Percentage {
			return progress[i].Percentage > progress[j].Percentage
		}
		return progress[i].ID < progress[j].ID
	})
	return progress, nil
}

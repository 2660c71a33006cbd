package services

import (
	"context"
	"fmt"
	"strings"

	"pennywise/internal/core"
	"pennywise/internal/storage"
)

// GoalService coordinates savings goal writes and the per-owner summary.
type GoalService struct {
	store *storage.Store
}

func NewGoalService(store *storage.Store) *GoalService {
	return &GoalService{store: store}
}

// CreateGoalInput carries a new savings goal. CurrentAmount and Icon are
// optional; TargetDate, when set, must be "YYYY-MM-DD".
type CreateGoalInput struct {
	UserID        string
	Title         string
	TargetAmount  *core.Amount
	CurrentAmount *core.Amount
	Icon          string
	TargetDate    *string
}

// UpdateGoalInput carries a partial goal update. Nil fields are left
// unchanged.
type UpdateGoalInput struct {
	UserID        string
	Title         *string
	TargetAmount  *core.Amount
	CurrentAmount *core.Amount
	Icon          *string
	TargetDate    *string
}

// Create validates and stores a new savings goal.
func (s *GoalService) Create(ctx context.Context, in CreateGoalInput) (core.SavingsGoal, error) {
	switch {
	case strings.TrimSpace(in.UserID) == "":
		return core.SavingsGoal{}, core.Validationf("user_id is required")
	case strings.TrimSpace(in.Title) == "":
		return core.SavingsGoal{}, core.Validationf("title is required")
	case in.TargetAmount == nil:
		return core.SavingsGoal{}, core.Validationf("target_amount is required")
	}
	if in.TargetDate != nil {
		if _, err := core.ParseCivilDate(*in.TargetDate); err != nil {
			return core.SavingsGoal{}, err
		}
	}

	current := core.Amount{}
	if in.CurrentAmount != nil {
		current = *in.CurrentAmount
	}
	icon := in.Icon
	if strings.TrimSpace(icon) == "" {
		icon = core.DefaultGoalIcon
	}

	g, err := s.store.CreateGoal(ctx, in.UserID, in.Title, *in.TargetAmount, current, icon, in.TargetDate)
	if err != nil {
		return core.SavingsGoal{}, fmt.Errorf("create savings goal: %w", err)
	}
	return g, nil
}

// Update applies a partial update scoped to the owner.
func (s *GoalService) Update(ctx context.Context, id int64, in UpdateGoalInput) (core.SavingsGoal, error) {
	if strings.TrimSpace(in.UserID) == "" {
		return core.SavingsGoal{}, core.Validationf("user_id is required")
	}
	if in.TargetDate != nil {
		if _, err := core.ParseCivilDate(*in.TargetDate); err != nil {
			return core.SavingsGoal{}, err
		}
	}
	return s.store.UpdateGoal(ctx, id, in.UserID, storage.GoalPatch{
		Title:         in.Title,
		TargetAmount:  in.TargetAmount,
		CurrentAmount: in.CurrentAmount,
		Icon:          in.Icon,
		TargetDate:    in.TargetDate,
	})
}

// AddMoney deposits a positive amount into a goal. The increment is a
// single atomic UPDATE, so concurrent deposits all land.
func (s *GoalService) AddMoney(ctx context.Context, id int64, userID string, amount *core.Amount) (core.SavingsGoal, error) {
	if strings.TrimSpace(userID) == "" {
		return core.SavingsGoal{}, core.Validationf("user_id is required")
	}
	if amount == nil {
		return core.SavingsGoal{}, core.Validationf("amount is required")
	}
	if amount.Cents <= 0 {
		return core.SavingsGoal{}, core.Validationf("amount must be greater than zero")
	}
	return s.store.AddToGoal(ctx, id, userID, *amount)
}

// List returns the owner's goals, newest first.
func (s *GoalService) List(ctx context.Context, userID string) ([]core.SavingsGoal, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, core.Validationf("user_id is required")
	}
	return s.store.ListGoals(ctx, userID)
}

// Get fetches one goal by bare id.
func (s *GoalService) Get(ctx context.Context, id int64) (core.SavingsGoal, error) {
	return s.store.GetGoal(ctx, id)
}

// Delete removes one goal scoped to its owner.
func (s *GoalService) Delete(ctx context.Context, id int64, userID string) error {
	if strings.TrimSpace(userID) == "" {
		return core.Validationf("user_id is required")
	}
	return s.store.DeleteGoal(ctx, id, userID)
}

// Summary totals the owner's goals.
func (s *GoalService) Summary(ctx context.Context, userID string) (core.SavingsSummary, error) {
	if strings.TrimSpace(userID) == "" {
		return core.SavingsSummary{}, core.Validationf("user_id is required")
	}
	goals, err := s.store.ListGoals(ctx, userID)
	if err != nil {
		return core.SavingsSummary{}, fmt.Errorf("savings summary: %w", err)
	}
	summary := core.SavingsSummary{TotalGoals: int64(len(goals))}
	for _, g := range goals {
		summary.TotalSaved = summary.TotalSaved.Add(g.CurrentAmount)
		summary.TotalTarget = summary.TotalTarget.Add(g.TargetAmount)
	}
	return summary, nil
}

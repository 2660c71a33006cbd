package services

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"pennywise/internal/core"
	"pennywise/internal/storage"
)

// Forecast defaults: six months of history projected three months forward.
const (
	defaultForecastBack    = 6
	defaultForecastForward = 3
	maxForecastForward     = 24
	distributionWindowDays = 30
)

// ReportsService is the aggregation engine: derived, read-only views over
// the ledger. It never mutates state.
type ReportsService struct {
	store *storage.Store
	now   func() time.Time
}

func NewReportsService(store *storage.Store) *ReportsService {
	return &ReportsService{store: store, now: time.Now}
}

// Summary builds the cross-entity dashboard view. The three aggregates are
// independent, so they fan out concurrently.
func (s *ReportsService) Summary(ctx context.Context, userID string) (core.ReportsSummary, error) {
	if strings.TrimSpace(userID) == "" {
		return core.ReportsSummary{}, core.Validationf("user_id is required")
	}

	var (
		summary    core.ReportsSummary
		months     []storage.MonthTotalsRow
		budgetRows []storage.BudgetSpendRow
		goals      []core.SavingsGoal
	)
	now := s.now().UTC()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		months, err = s.store.MonthlyTotals(gctx, userID, monthStart)
		return err
	})
	g.Go(func() error {
		var err error
		budgetRows, err = s.store.BudgetSpend(gctx, userID)
		return err
	})
	g.Go(func() error {
		var err error
		goals, err = s.store.ListGoals(gctx, userID)
		return err
	})
	if err := g.Wait(); err != nil {
		return core.ReportsSummary{}, fmt.Errorf("reports summary: %w", err)
	}

	currentMonth := now.Format("2006-01")
	for _, m := range months {
		if m.Month == currentMonth {
			summary.Monthly.TotalIncome = m.Income
			summary.Monthly.TotalExpense = m.Expense
			summary.Monthly.ExpenseTransactions = m.ExpenseCount
		}
	}
	summary.Budgets.TotalBudgets = int64(len(budgetRows))
	for _, r := range budgetRows {
		if r.Spent.Cents > r.Budget.Cents {
			summary.Budgets.OverBudgetCount++
		}
	}
	summary.Savings.TotalGoals = int64(len(goals))
	for _, goal := range goals {
		if goal.Completed() {
			summary.Savings.CompletedGoals++
		}
		summary.Savings.TotalSaved = summary.Savings.TotalSaved.Add(goal.CurrentAmount)
		summary.Savings.TotalTarget = summary.Savings.TotalTarget.Add(goal.TargetAmount)
	}
	return summary, nil
}

// MonthlyExpenditure breaks one calendar month down by category. Year and
// month default to the current month when zero.
func (s *ReportsService) MonthlyExpenditure(ctx context.Context, userID string, year, month int) ([]core.MonthlyExpenditure, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, core.Validationf("user_id is required")
	}
	now := s.now().UTC()
	if year == 0 {
		year = now.Year()
	}
	if month == 0 {
		month = int(now.Month())
	}
	if month < 1 || month > 12 {
		return nil, core.Validationf("month must be between 1 and 12")
	}

	rows, err := s.store.MonthByCategory(ctx, userID,
		fmt.Sprintf("%04d", year), fmt.Sprintf("%02d", month))
	if err != nil {
		return nil, fmt.Errorf("monthly expenditure: %w", err)
	}

	label := fmt.Sprintf("%04d-%02d", year, month)
	out := []core.MonthlyExpenditure{}
	for _, r := range rows {
		avg := core.Amount{}
		if r.ExpenseCount > 0 {
			avg.Cents = int64(math.Round(float64(r.TotalExpense.Cents) / float64(r.ExpenseCount)))
		}
		out = append(out, core.MonthlyExpenditure{
			Month:        label,
			Category:     r.Category,
			TotalExpense: r.TotalExpense,
			TotalIncome:  r.TotalIncome,
			ExpenseCount: r.ExpenseCount,
			AvgExpense:   avg,
		})
	}
	return out, nil
}

// BudgetAdherence reports each budget against its own period window:
// over_budget at or past the limit, warning from 80% on, on_track below.
func (s *ReportsService) BudgetAdherence(ctx context.Context, userID string) ([]core.BudgetAdherence, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, core.Validationf("user_id is required")
	}
	rows, err := s.store.BudgetSpendByPeriod(ctx, userID, s.now())
	if err != nil {
		return nil, fmt.Errorf("budget adherence: %w", err)
	}

	out := []core.BudgetAdherence{}
	for _, r := range rows {
		pct := core.Percentage(r.Spent, r.Budget)
		status := core.AdherenceOnTrack
		switch {
		case pct >= 100:
			status = core.AdherenceOverBudget
		case pct >= 80:
			status = core.AdherenceWarning
		}
		out = append(out, core.BudgetAdherence{
			Category:            r.Category,
			BudgetAmount:        r.Budget,
			Period:              r.Period,
			SpentAmount:         r.Spent,
			RemainingAmount:     core.Amount{Cents: r.Budget.Cents - r.Spent.Cents},
			AdherencePercentage: pct,
			Status:              status,
			TransactionCount:    r.Count,
		})
	}
	return out, nil
}

// SavingsProgress derives the progress view of every goal of the owner.
func (s *ReportsService) SavingsProgress(ctx context.Context, userID string) ([]core.GoalProgress, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, core.Validationf("user_id is required")
	}
	goals, err := s.store.ListGoals(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("savings progress: %w", err)
	}

	now := s.now().UTC()
	out := []core.GoalProgress{}
	for _, g := range goals {
		out = append(out, goalProgress(g, now))
	}
	return out, nil
}

func goalProgress(g core.SavingsGoal, now time.Time) core.GoalProgress {
	remaining := core.Amount{Cents: g.TargetAmount.Cents - g.CurrentAmount.Cents}
	if remaining.Cents < 0 {
		remaining.Cents = 0
	}

	p := core.GoalProgress{
		ID:                 g.ID,
		Title:              g.Title,
		TargetAmount:       g.TargetAmount,
		CurrentAmount:      g.CurrentAmount,
		RemainingAmount:    remaining,
		ProgressPercentage: core.Percentage(g.CurrentAmount, g.TargetAmount),
		TargetDate:         g.TargetDate,
		Status:             core.GoalOnTrack,
	}

	if g.TargetDate != nil {
		if target, err := core.ParseCivilDate(*g.TargetDate); err == nil {
			days := int(math.Ceil(target.Sub(now).Hours() / 24))
			p.DaysRemaining = &days
			if days > 0 && remaining.Cents > 0 {
				needed, _ := remaining.Decimal().
					DivRound(decimal.NewFromInt(int64(days)), 2).
					Float64()
				p.DailySavingsNeeded = &needed
			}
			if days < 0 && !g.Completed() {
				p.Status = core.GoalOverdue
			}
		}
	}
	if g.Completed() {
		p.Status = core.GoalCompleted
	}
	return p
}

// CategoryDistribution ranks the owner's expense categories over an
// explicit [start, end] window, or the trailing 30 days when absent.
// Percentages are each category's share of the window total.
func (s *ReportsService) CategoryDistribution(ctx context.Context, userID string, start, end *time.Time) ([]core.CategoryDistribution, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, core.Validationf("user_id is required")
	}
	now := s.now().UTC()
	windowEnd := now
	if end != nil {
		windowEnd = *end
	}
	windowStart := windowEnd.AddDate(0, 0, -distributionWindowDays)
	if start != nil {
		windowStart = *start
	}
	if windowStart.After(windowEnd) {
		return nil, core.Validationf("startDate must not be after endDate")
	}

	rows, err := s.store.ExpenseStatsByCategory(ctx, userID, windowStart, windowEnd)
	if err != nil {
		return nil, fmt.Errorf("category distribution: %w", err)
	}

	var total core.Amount
	for _, r := range rows {
		total = total.Add(r.Total)
	}

	out := []core.CategoryDistribution{}
	for i, r := range rows {
		out = append(out, core.CategoryDistribution{
			Category:         r.Category,
			TotalAmount:      r.Total,
			TransactionCount: r.Count,
			AvgAmount:        core.Amount{Cents: int64(math.Round(r.Avg))},
			MinAmount:        r.Min,
			MaxAmount:        r.Max,
			Percentage:       core.Percentage(r.Total, total),
			Rank:             i + 1,
		})
	}
	return out, nil
}

// SavingsForecast projects monthly savings forward from trailing history.
// Confidence starts high and never increases with distance; thin history
// (fewer than 3 recorded months) degrades it one notch across the board.
func (s *ReportsService) SavingsForecast(ctx context.Context, userID string, monthsBack, monthsForward int) ([]core.ForecastPoint, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, core.Validationf("user_id is required")
	}
	if monthsBack <= 0 {
		monthsBack = defaultForecastBack
	}
	if monthsForward <= 0 {
		monthsForward = defaultForecastForward
	}
	if monthsForward > maxForecastForward {
		return nil, core.Validationf("monthsForecast must be at most %d", maxForecastForward)
	}

	now := s.now().UTC()
	history, err := s.store.MonthlyTotals(ctx, userID, now.AddDate(0, -monthsBack, 0))
	if err != nil {
		return nil, fmt.Errorf("savings forecast: %w", err)
	}

	var incomeSum, expenseSum int64
	for _, m := range history {
		incomeSum += m.Income.Cents
		expenseSum += m.Expense.Cents
	}
	var avgIncome, avgExpense core.Amount
	if n := int64(len(history)); n > 0 {
		avgIncome.Cents = int64(math.Round(float64(incomeSum) / float64(n)))
		avgExpense.Cents = int64(math.Round(float64(expenseSum) / float64(n)))
	}
	avgSavings := core.Amount{Cents: avgIncome.Cents - avgExpense.Cents}

	income, expenses, err := s.store.BalanceTotals(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("savings forecast: %w", err)
	}
	balance := income.Cents - expenses.Cents

	thinHistory := len(history) < 3
	points := make([]core.ForecastPoint, 0, monthsForward)
	for m := 1; m <= monthsForward; m++ {
		balance += avgSavings.Cents
		points = append(points, core.ForecastPoint{
			ForecastMonth:    m,
			ForecastDate:     now.AddDate(0, m, 0).Format("2006-01"),
			ProjectedIncome:  avgIncome,
			ProjectedExpense: avgExpense,
			ProjectedSavings: avgSavings,
			ProjectedBalance: core.Amount{Cents: balance},
			ConfidenceLevel:  confidenceAt(m, thinHistory),
		})
	}
	return points, nil
}

// confidenceAt maps forecast distance to a label: the first month is high,
// the second and third medium, everything beyond low. Thin history shifts
// the whole scale down one notch.
func confidenceAt(month int, thinHistory bool) string {
	level := 0
	switch {
	case month <= 1:
		level = 0
	case month <= 3:
		level = 1
	default:
		level = 2
	}
	if thinHistory {
		level++
	}
	switch level {
	case 0:
		return core.ConfidenceHigh
	case 1:
		return core.ConfidenceMedium
	default:
		return core.ConfidenceLow
	}
}

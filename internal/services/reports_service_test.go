package services

import (
	"context"
	"math"
	"testing"
	"time"

	"pennywise/internal/core"
)

func TestCategoryDistributionSharesSumToHundred(t *testing.T) {
	store := newTestStore(t)
	reports := NewReportsService(store)
	transactions := NewTransactionService(store)
	ctx := context.Background()

	seedTransaction(t, transactions, "user-1", "Groceries", -3000, "food")
	seedTransaction(t, transactions, "user-1", "Takeaway", -1000, "food")
	seedTransaction(t, transactions, "user-1", "Flight", -5000, "travel")
	seedTransaction(t, transactions, "user-1", "Book", -1000, "leisure")
	// Income never shows up in the distribution.
	seedTransaction(t, transactions, "user-1", "Salary", 100000, "income")

	got, err := reports.CategoryDistribution(ctx, "user-1", nil, nil)
	if err != nil {
		t.Fatalf("distribution: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("rows = %d, want 3", len(got))
	}

	if got[0].Category != "travel" || got[0].Rank != 1 {
		t.Errorf("first row = %+v, want travel ranked 1", got[0])
	}
	if got[0].TotalAmount.Cents != 5000 || got[0].TransactionCount != 1 {
		t.Errorf("travel stats = %+v", got[0])
	}

	var sum float64
	for _, row := range got {
		sum += row.Percentage
	}
	if math.Abs(sum-100) > 0.01 {
		t.Errorf("percentages sum to %v, want 100 within epsilon", sum)
	}

	food := got[1]
	if food.Category != "food" || food.AvgAmount.Cents != 2000 || food.MinAmount.Cents != 1000 || food.MaxAmount.Cents != 3000 {
		t.Errorf("food stats = %+v", food)
	}
}

func TestCategoryDistributionValidatesWindow(t *testing.T) {
	reports := NewReportsService(newTestStore(t))

	start := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)
	if _, err := reports.CategoryDistribution(context.Background(), "user-1", &start, &end); !core.IsValidation(err) {
		t.Errorf("inverted window = %v, want validation error", err)
	}
}

func TestSavingsProgressStatuses(t *testing.T) {
	store := newTestStore(t)
	reports := NewReportsService(store)
	goals := NewGoalService(store)
	ctx := context.Background()

	past := "2020-01-01"
	future := time.Now().UTC().AddDate(0, 0, 10).Format("2006-01-02")

	if _, err := goals.Create(ctx, CreateGoalInput{UserID: "user-1", Title: "Done", TargetAmount: amount(10000), CurrentAmount: amount(10000)}); err != nil {
		t.Fatalf("create done goal: %v", err)
	}
	if _, err := goals.Create(ctx, CreateGoalInput{UserID: "user-1", Title: "Late", TargetAmount: amount(10000), CurrentAmount: amount(500), TargetDate: &past}); err != nil {
		t.Fatalf("create late goal: %v", err)
	}
	if _, err := goals.Create(ctx, CreateGoalInput{UserID: "user-1", Title: "Ongoing", TargetAmount: amount(10000), CurrentAmount: amount(4000), TargetDate: &future}); err != nil {
		t.Fatalf("create ongoing goal: %v", err)
	}

	got, err := reports.SavingsProgress(ctx, "user-1")
	if err != nil {
		t.Fatalf("progress: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("rows = %d, want 3", len(got))
	}

	byTitle := map[string]core.GoalProgress{}
	for _, p := range got {
		byTitle[p.Title] = p
	}

	done := byTitle["Done"]
	if done.Status != core.GoalCompleted {
		t.Errorf("completed goal status = %q", done.Status)
	}
	if done.RemainingAmount.Cents != 0 || done.ProgressPercentage != 100 {
		t.Errorf("completed goal progress = %+v", done)
	}

	late := byTitle["Late"]
	if late.Status != core.GoalOverdue {
		t.Errorf("overdue goal status = %q", late.Status)
	}
	if late.DaysRemaining == nil || *late.DaysRemaining >= 0 {
		t.Errorf("overdue goal daysRemaining = %v, want negative", late.DaysRemaining)
	}
	if late.DailySavingsNeeded != nil {
		t.Errorf("overdue goal dailySavingsNeeded = %v, want nil", late.DailySavingsNeeded)
	}

	ongoing := byTitle["Ongoing"]
	if ongoing.Status != core.GoalOnTrack {
		t.Errorf("ongoing goal status = %q", ongoing.Status)
	}
	if ongoing.DaysRemaining == nil || *ongoing.DaysRemaining <= 0 {
		t.Errorf("ongoing goal daysRemaining = %v, want positive", ongoing.DaysRemaining)
	}
	if ongoing.DailySavingsNeeded == nil || *ongoing.DailySavingsNeeded <= 0 {
		t.Errorf("ongoing goal dailySavingsNeeded = %v, want positive", ongoing.DailySavingsNeeded)
	}
}

func TestBudgetAdherenceStatuses(t *testing.T) {
	store := newTestStore(t)
	reports := NewReportsService(store)
	budgets := NewBudgetService(store)
	transactions := NewTransactionService(store)
	ctx := context.Background()

	for _, b := range []struct {
		category string
		cents    int64
	}{
		{"food", 10000},
		{"travel", 10000},
		{"leisure", 10000},
	} {
		if _, err := budgets.Create(ctx, CreateBudgetInput{UserID: "user-1", Category: b.category, Amount: amount(b.cents)}); err != nil {
			t.Fatalf("create %s budget: %v", b.category, err)
		}
	}

	seedTransaction(t, transactions, "user-1", "Feast", -12000, "food")   // 120%
	seedTransaction(t, transactions, "user-1", "Flight", -8500, "travel") // 85%
	seedTransaction(t, transactions, "user-1", "Book", -1000, "leisure")  // 10%

	got, err := reports.BudgetAdherence(ctx, "user-1")
	if err != nil {
		t.Fatalf("adherence: %v", err)
	}
	byCategory := map[string]core.BudgetAdherence{}
	for _, row := range got {
		byCategory[row.Category] = row
	}

	if s := byCategory["food"].Status; s != core.AdherenceOverBudget {
		t.Errorf("food status = %q, want over_budget", s)
	}
	if byCategory["food"].RemainingAmount.Cents != -2000 {
		t.Errorf("food remaining = %d, want -2000", byCategory["food"].RemainingAmount.Cents)
	}
	if s := byCategory["travel"].Status; s != core.AdherenceWarning {
		t.Errorf("travel status = %q, want warning", s)
	}
	if s := byCategory["leisure"].Status; s != core.AdherenceOnTrack {
		t.Errorf("leisure status = %q, want on_track", s)
	}
}

func TestMonthlyExpenditure(t *testing.T) {
	store := newTestStore(t)
	reports := NewReportsService(store)
	transactions := NewTransactionService(store)
	ctx := context.Background()

	seedTransaction(t, transactions, "user-1", "Groceries", -3000, "food")
	seedTransaction(t, transactions, "user-1", "Takeaway", -1001, "food")
	seedTransaction(t, transactions, "user-1", "Refund", 500, "food")

	got, err := reports.MonthlyExpenditure(ctx, "user-1", 0, 0)
	if err != nil {
		t.Fatalf("monthly expenditure: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("rows = %d, want 1", len(got))
	}
	row := got[0]
	if row.Month != time.Now().UTC().Format("2006-01") {
		t.Errorf("month = %q, want current month", row.Month)
	}
	if row.TotalExpense.Cents != 4001 || row.TotalIncome.Cents != 500 || row.ExpenseCount != 2 {
		t.Errorf("row = %+v", row)
	}
	// 4001 / 2 rounds to 2001 cents.
	if row.AvgExpense.Cents != 2001 {
		t.Errorf("avgExpense = %d, want 2001", row.AvgExpense.Cents)
	}

	if _, err := reports.MonthlyExpenditure(ctx, "user-1", 2025, 13); !core.IsValidation(err) {
		t.Errorf("month 13 = %v, want validation error", err)
	}
}

func TestSavingsForecastConfidenceNeverIncreases(t *testing.T) {
	store := newTestStore(t)
	reports := NewReportsService(store)
	transactions := NewTransactionService(store)
	ctx := context.Background()

	seedTransaction(t, transactions, "user-1", "Salary", 300000, "income")
	seedTransaction(t, transactions, "user-1", "Rent", -100000, "housing")

	got, err := reports.SavingsForecast(ctx, "user-1", 6, 5)
	if err != nil {
		t.Fatalf("forecast: %v", err)
	}
	if len(got) != 5 {
		t.Fatalf("points = %d, want 5", len(got))
	}

	rank := map[string]int{core.ConfidenceHigh: 3, core.ConfidenceMedium: 2, core.ConfidenceLow: 1}
	for i := 1; i < len(got); i++ {
		if rank[got[i].ConfidenceLevel] > rank[got[i-1].ConfidenceLevel] {
			t.Errorf("confidence rose from %q to %q at month %d",
				got[i-1].ConfidenceLevel, got[i].ConfidenceLevel, got[i].ForecastMonth)
		}
	}
	for i, p := range got {
		if p.ForecastMonth != i+1 {
			t.Errorf("point %d forecastMonth = %d", i, p.ForecastMonth)
		}
	}

	// One recorded month is thin history, so nothing may claim high
	// confidence.
	for _, p := range got {
		if p.ConfidenceLevel == core.ConfidenceHigh {
			t.Errorf("thin history must not yield high confidence (month %d)", p.ForecastMonth)
		}
	}

	// Projected balance advances by the projected savings every month.
	for i := 1; i < len(got); i++ {
		delta := got[i].ProjectedBalance.Cents - got[i-1].ProjectedBalance.Cents
		if delta != got[i].ProjectedSavings.Cents {
			t.Errorf("balance step at month %d = %d, want %d", got[i].ForecastMonth, delta, got[i].ProjectedSavings.Cents)
		}
	}
}

func TestSavingsForecastEmptyHistory(t *testing.T) {
	reports := NewReportsService(newTestStore(t))

	got, err := reports.SavingsForecast(context.Background(), "nobody", 0, 0)
	if err != nil {
		t.Fatalf("forecast: %v", err)
	}
	if len(got) != defaultForecastForward {
		t.Fatalf("points = %d, want %d", len(got), defaultForecastForward)
	}
	for _, p := range got {
		if p.ProjectedIncome.Cents != 0 || p.ProjectedExpense.Cents != 0 || p.ProjectedBalance.Cents != 0 {
			t.Errorf("empty history should project zeros, got %+v", p)
		}
	}
}

func TestReportsSummaryFanOut(t *testing.T) {
	store := newTestStore(t)
	reports := NewReportsService(store)
	budgets := NewBudgetService(store)
	goals := NewGoalService(store)
	transactions := NewTransactionService(store)
	ctx := context.Background()

	seedTransaction(t, transactions, "user-1", "Salary", 300000, "income")
	seedTransaction(t, transactions, "user-1", "Groceries", -15000, "food")
	seedTransaction(t, transactions, "user-1", "Takeaway", -2000, "food")

	if _, err := budgets.Create(ctx, CreateBudgetInput{UserID: "user-1", Category: "food", Amount: amount(10000)}); err != nil {
		t.Fatalf("create budget: %v", err)
	}
	if _, err := goals.Create(ctx, CreateGoalInput{UserID: "user-1", Title: "Done", TargetAmount: amount(1000), CurrentAmount: amount(1000)}); err != nil {
		t.Fatalf("create goal: %v", err)
	}
	if _, err := goals.Create(ctx, CreateGoalInput{UserID: "user-1", Title: "Open", TargetAmount: amount(50000), CurrentAmount: amount(2000)}); err != nil {
		t.Fatalf("create goal: %v", err)
	}

	got, err := reports.Summary(ctx, "user-1")
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	if got.Monthly.TotalIncome.Cents != 300000 || got.Monthly.TotalExpense.Cents != 17000 {
		t.Errorf("monthly = %+v", got.Monthly)
	}
	if got.Monthly.ExpenseTransactions != 2 {
		t.Errorf("expenseTransactions = %d, want 2", got.Monthly.ExpenseTransactions)
	}
	if got.Budgets.TotalBudgets != 1 || got.Budgets.OverBudgetCount != 1 {
		t.Errorf("budgets = %+v", got.Budgets)
	}
	if got.Savings.TotalGoals != 2 || got.Savings.CompletedGoals != 1 {
		t.Errorf("savings = %+v", got.Savings)
	}
	if got.Savings.TotalSaved.Cents != 3000 || got.Savings.TotalTarget.Cents != 51000 {
		t.Errorf("savings totals = %+v", got.Savings)
	}
}

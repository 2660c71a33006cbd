package core

// Derived, read-only views computed by the aggregation engine. Every field
// defaults to its zero value when the owner has no data; queries never
// surface "no rows" as an error.

// BalanceSummary is the owner's overall position across all transactions.
type BalanceSummary struct {
	Balance  Amount `json:"balance"`
	Income   Amount `json:"income"`
	Expenses Amount `json:"expenses"`
}

// CategorySpending is one row of the budget summary join.
type CategorySpending struct {
	Category     string `json:"category"`
	BudgetAmount Amount `json:"budget_amount"`
	SpentAmount  Amount `json:"spent_amount"`
}

// BudgetSummary aggregates all budgets of an owner against total spend.
type BudgetSummary struct {
	TotalBudget      Amount             `json:"totalBudget"`
	TotalSpent       Amount             `json:"totalSpent"`
	Remaining        Amount             `json:"remaining"`
	CategorySpending []CategorySpending `json:"categorySpending"`
}

// BudgetProgress reports utilization of a single budget within its
// period-derived window, ordered highest utilization first.
type BudgetProgress struct {
	ID           int64   `json:"id"`
	Category     string  `json:"category"`
	BudgetAmount Amount  `json:"budget_amount"`
	SpentAmount  Amount  `json:"spent_amount"`
	Percentage   float64 `json:"percentage"`
}

// CategoryDistribution is one ranked row of the expense distribution over a
// window. Percentage is this category's share of the window's total expense.
type CategoryDistribution struct {
	Category         string  `json:"category"`
	TotalAmount      Amount  `json:"totalAmount"`
	TransactionCount int64   `json:"transactionCount"`
	AvgAmount        Amount  `json:"avgAmount"`
	MinAmount        Amount  `json:"minAmount"`
	MaxAmount        Amount  `json:"maxAmount"`
	Percentage       float64 `json:"percentage"`
	Rank             int     `json:"rank"`
}

// Goal progress status values.
const (
	GoalCompleted = "completed"
	GoalOverdue   = "overdue"
	GoalOnTrack   = "on_track"
)

// GoalProgress is the derived progress view of one savings goal.
type GoalProgress struct {
	ID                 int64    `json:"id"`
	Title              string   `json:"title"`
	TargetAmount       Amount   `json:"targetAmount"`
	CurrentAmount      Amount   `json:"currentAmount"`
	RemainingAmount    Amount   `json:"remainingAmount"`
	ProgressPercentage float64  `json:"progressPercentage"`
	TargetDate         *string  `json:"targetDate"`
	DaysRemaining      *int     `json:"daysRemaining"`
	Status             string   `json:"status"`
	DailySavingsNeeded *float64 `json:"dailySavingsNeeded"`
}

// SavingsSummary totals an owner's goals.
type SavingsSummary struct {
	TotalGoals  int64  `json:"totalGoals"`
	TotalSaved  Amount `json:"totalSaved"`
	TotalTarget Amount `json:"totalTarget"`
}

// MonthlyExpenditure is one category row of the month analysis.
type MonthlyExpenditure struct {
	Month        string  `json:"month"`
	Category     string  `json:"category"`
	TotalExpense Amount  `json:"totalExpense"`
	TotalIncome  Amount  `json:"totalIncome"`
	ExpenseCount int64   `json:"expenseCount"`
	AvgExpense   Amount  `json:"avgExpense"`
}

// Budget adherence status values.
const (
	AdherenceOverBudget = "over_budget"
	AdherenceWarning    = "warning"
	AdherenceOnTrack    = "on_track"
)

// BudgetAdherence is the per-budget adherence report row.
type BudgetAdherence struct {
	Category            string  `json:"category"`
	BudgetAmount        Amount  `json:"budgetAmount"`
	Period              Period  `json:"period"`
	SpentAmount         Amount  `json:"spentAmount"`
	RemainingAmount     Amount  `json:"remainingAmount"`
	AdherencePercentage float64 `json:"adherencePercentage"`
	Status              string  `json:"status"`
	TransactionCount    int64   `json:"transactionCount"`
}

// Forecast confidence labels, non-increasing with forecast distance.
const (
	ConfidenceHigh   = "high"
	ConfidenceMedium = "medium"
	ConfidenceLow    = "low"
)

// ForecastPoint is one projected month of the savings trend forecast.
type ForecastPoint struct {
	ForecastMonth    int     `json:"forecastMonth"`
	ForecastDate     string  `json:"forecastDate"`
	ProjectedIncome  Amount  `json:"projectedIncome"`
	ProjectedExpense Amount  `json:"projectedExpense"`
	ProjectedSavings Amount  `json:"projectedSavings"`
	ProjectedBalance Amount  `json:"projectedBalance"`
	ConfidenceLevel  string  `json:"confidenceLevel"`
}

// ReportsSummary is the cross-entity dashboard view: current-month totals,
// over-budget count and goal completion counts in one response.
type ReportsSummary struct {
	Monthly struct {
		TotalExpense        Amount `json:"totalExpense"`
		TotalIncome         Amount `json:"totalIncome"`
		ExpenseTransactions int64  `json:"expenseTransactions"`
	} `json:"monthly"`
	Budgets struct {
		TotalBudgets    int64 `json:"totalBudgets"`
		OverBudgetCount int64 `json:"overBudgetCount"`
	} `json:"budgets"`
	Savings struct {
		TotalGoals     int64  `json:"totalGoals"`
		CompletedGoals int64  `json:"completedGoals"`
		TotalSaved     Amount `json:"totalSaved"`
		TotalTarget    Amount `json:"totalTarget"`
	} `json:"savings"`
}

package core

import (
	"strings"
	"time"
)

const (
	Weekly  Period = "weekly"
	Monthly Period = "monthly"
	Yearly  Period = "yearly"

	// DefaultPeriod is applied when a budget is created without one.
	DefaultPeriod = Monthly

	// DefaultGoalIcon is applied when a savings goal is created without one.
	DefaultGoalIcon = "target"
)

type (
	// Period is the evaluation window of a budget. It bounds the
	// transaction join when deriving spend; it is never stored on
	// transactions themselves.
	Period string

	// Transaction is a single signed ledger entry. Positive amounts are
	// income, negative amounts are expenses. Immutable once created.
	Transaction struct {
		ID        int64     `json:"id"`
		UserID    string    `json:"user_id"`
		Title     string    `json:"title"`
		Amount    Amount    `json:"amount"`
		Category  string    `json:"category"`
		CreatedAt time.Time `json:"created_at"`
	}

	// Budget caps spending for one (user, category) pair. Spend is always
	// derived from transactions, never stored.
	Budget struct {
		ID        int64     `json:"id"`
		UserID    string    `json:"user_id"`
		Category  string    `json:"category"`
		Amount    Amount    `json:"amount"`
		Period    Period    `json:"period"`
		CreatedAt time.Time `json:"created_at"`
		UpdatedAt time.Time `json:"updated_at"`
	}

	// SavingsGoal tracks progress toward a target amount, optionally by a
	// target calendar date ("YYYY-MM-DD").
	SavingsGoal struct {
		ID            int64     `json:"id"`
		UserID        string    `json:"user_id"`
		Title         string    `json:"title"`
		TargetAmount  Amount    `json:"target_amount"`
		CurrentAmount Amount    `json:"current_amount"`
		Icon          string    `json:"icon"`
		TargetDate    *string   `json:"target_date"`
		CreatedAt     time.Time `json:"created_at"`
		UpdatedAt     time.Time `json:"updated_at"`
	}
)

// ParsePeriod validates a period string, defaulting empty input to monthly.
func ParsePeriod(s string) (Period, error) {
	switch Period(strings.TrimSpace(s)) {
	case "":
		return DefaultPeriod, nil
	case Weekly:
		return Weekly, nil
	case Monthly:
		return Monthly, nil
	case Yearly:
		return Yearly, nil
	default:
		return "", Validationf("period must be one of weekly, monthly, yearly")
	}
}

// WindowStart returns the inclusive lower bound of the period window ending
// at now: 7 days back for weekly, 1 calendar month for monthly, 12 months
// for yearly.
func (p Period) WindowStart(now time.Time) time.Time {
	switch p {
	case Weekly:
		return now.AddDate(0, 0, -7)
	case Yearly:
		return now.AddDate(-1, 0, 0)
	default:
		return now.AddDate(0, -1, 0)
	}
}

const civilDateLayout = "2006-01-02"

// ParseCivilDate validates a "YYYY-MM-DD" calendar date.
func ParseCivilDate(s string) (time.Time, error) {
	t, err := time.Parse(civilDateLayout, s)
	if err != nil {
		return time.Time{}, Validationf("date must be in YYYY-MM-DD format")
	}
	return t, nil
}

// Completed reports whether the goal's saved amount has reached its target.
func (g SavingsGoal) Completed() bool {
	return g.CurrentAmount.Cents >= g.TargetAmount.Cents
}

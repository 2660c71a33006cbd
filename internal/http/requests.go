package http

import (
	"pennywise/internal/core"
	"pennywise/internal/services"
)

// Request bodies. Amounts use *core.Amount so absent fields stay
// distinguishable from explicit zeros, and malformed numbers fail at bind
// time with a validation message.

type createTransactionRequest struct {
	UserID   string       `json:"user_id"`
	Title    string       `json:"title"`
	Amount   *core.Amount `json:"amount"`
	Category string       `json:"category"`
}

// ownerRequest scopes DELETE bodies to the calling owner.
type ownerRequest struct {
	UserID string `json:"user_id"`
}

type createBudgetRequest struct {
	UserID   string       `json:"user_id"`
	Category string       `json:"category"`
	Amount   *core.Amount `json:"amount"`
	Period   string       `json:"period"`
}

type updateBudgetRequest struct {
	UserID   string       `json:"user_id"`
	Category *string      `json:"category"`
	Amount   *core.Amount `json:"amount"`
	Period   *string      `json:"period"`
}

type createGoalRequest struct {
	UserID        string       `json:"user_id"`
	Title         string       `json:"title"`
	TargetAmount  *core.Amount `json:"target_amount"`
	CurrentAmount *core.Amount `json:"current_amount"`
	Icon          string       `json:"icon"`
	TargetDate    *string      `json:"target_date"`
}

type updateGoalRequest struct {
	UserID        string       `json:"user_id"`
	Title         *string      `json:"title"`
	TargetAmount  *core.Amount `json:"target_amount"`
	CurrentAmount *core.Amount `json:"current_amount"`
	Icon          *string      `json:"icon"`
	TargetDate    *string      `json:"target_date"`
}

type addMoneyRequest struct {
	UserID string       `json:"user_id"`
	Amount *core.Amount `json:"amount"`
}

type syncTransactionRecord struct {
	Title    string       `json:"title"`
	Amount   *core.Amount `json:"amount"`
	Category string       `json:"category"`
}

type syncBudgetRecord struct {
	Category string       `json:"category"`
	Amount   *core.Amount `json:"amount"`
	Period   string       `json:"period"`
}

type syncGoalRecord struct {
	Title         string       `json:"title"`
	TargetAmount  *core.Amount `json:"target_amount"`
	CurrentAmount *core.Amount `json:"current_amount"`
	Icon          string       `json:"icon"`
	TargetDate    *string      `json:"target_date"`
}

type syncUploadRequest struct {
	UserID       string                  `json:"user_id"`
	LastSyncTime string                  `json:"last_sync_time"`
	Transactions []syncTransactionRecord `json:"transactions"`
	Budgets      []syncBudgetRecord      `json:"budgets"`
	Goals        []syncGoalRecord        `json:"goals"`
}

func (r syncUploadRequest) toInput() services.SyncUploadInput {
	in := services.SyncUploadInput{
		UserID:       r.UserID,
		LastSyncTime: r.LastSyncTime,
	}
	for _, t := range r.Transactions {
		in.Transactions = append(in.Transactions, services.SyncTransactionRecord{
			Title:    t.Title,
			Amount:   t.Amount,
			Category: t.Category,
		})
	}
	for _, b := range r.Budgets {
		in.Budgets = append(in.Budgets, services.SyncBudgetRecord{
			Category: b.Category,
			Amount:   b.Amount,
			Period:   b.Period,
		})
	}
	for _, g := range r.Goals {
		in.Goals = append(in.Goals, services.SyncGoalRecord{
			Title:         g.Title,
			TargetAmount:  g.TargetAmount,
			CurrentAmount: g.CurrentAmount,
			Icon:          g.Icon,
			TargetDate:    g.TargetDate,
		})
	}
	return in
}

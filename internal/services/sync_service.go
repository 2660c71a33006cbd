package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"pennywise/internal/amqp"
	"pennywise/internal/core"
	"pennywise/internal/storage"
)

// SyncService reconciles batches of offline records into the ledger. The
// whole batch is one transaction; individual bad records are skipped via
// savepoints and counted as resolved conflicts instead of failing the
// upload.
type SyncService struct {
	store      *storage.Store
	amqpClient *amqp.Client
}

func NewSyncService(store *storage.Store, amqpClient *amqp.Client) *SyncService {
	return &SyncService{store: store, amqpClient: amqpClient}
}

// Offline record shapes as uploaded by a client that was disconnected.
type (
	SyncTransactionRecord struct {
		Title    string
		Amount   *core.Amount
		Category string
	}

	SyncBudgetRecord struct {
		Category string
		Amount   *core.Amount
		Period   string
	}

	SyncGoalRecord struct {
		Title         string
		TargetAmount  *core.Amount
		CurrentAmount *core.Amount
		Icon          string
		TargetDate    *string
	}

	SyncUploadInput struct {
		UserID       string
		LastSyncTime string
		Transactions []SyncTransactionRecord
		Budgets      []SyncBudgetRecord
		Goals        []SyncGoalRecord
	}
)

// SyncResult reports how the batch landed.
type SyncResult struct {
	RecordsSynced     int `json:"recordsSynced"`
	ConflictsResolved int `json:"conflictsResolved"`
}

// Upload applies one offline batch. Records that fail validation never
// reach the store; records that fail inside the transaction are rolled
// back to their savepoint. Both count as resolved conflicts.
func (s *SyncService) Upload(ctx context.Context, in SyncUploadInput) (SyncResult, error) {
	if strings.TrimSpace(in.UserID) == "" {
		return SyncResult{}, core.Validationf("user_id is required")
	}

	var (
		records   []storage.SyncRecord
		conflicts int
	)
	for _, r := range in.Transactions {
		if strings.TrimSpace(r.Title) == "" || r.Amount == nil || strings.TrimSpace(r.Category) == "" {
			conflicts++
			continue
		}
		records = append(records, storage.SyncRecord{Transaction: &storage.SyncTransaction{
			UserID:   in.UserID,
			Title:    r.Title,
			Amount:   *r.Amount,
			Category: r.Category,
		}})
	}
	for _, r := range in.Budgets {
		period, err := core.ParsePeriod(r.Period)
		if strings.TrimSpace(r.Category) == "" || r.Amount == nil || err != nil {
			conflicts++
			continue
		}
		records = append(records, storage.SyncRecord{Budget: &storage.SyncBudget{
			UserID:   in.UserID,
			Category: r.Category,
			Amount:   *r.Amount,
			Period:   period,
		}})
	}
	for _, r := range in.Goals {
		if strings.TrimSpace(r.Title) == "" || r.TargetAmount == nil {
			conflicts++
			continue
		}
		if r.TargetDate != nil {
			if _, err := core.ParseCivilDate(*r.TargetDate); err != nil {
				conflicts++
				continue
			}
		}
		current := core.Amount{}
		if r.CurrentAmount != nil {
			current = *r.CurrentAmount
		}
		icon := r.Icon
		if strings.TrimSpace(icon) == "" {
			icon = core.DefaultGoalIcon
		}
		records = append(records, storage.SyncRecord{Goal: &storage.SyncGoal{
			UserID:     in.UserID,
			Title:      r.Title,
			Target:     *r.TargetAmount,
			Current:    current,
			Icon:       icon,
			TargetDate: r.TargetDate,
		}})
	}

	applied, failed, err := s.store.ApplySyncBatch(ctx, records)
	if err != nil {
		return SyncResult{}, fmt.Errorf("apply sync batch: %w", err)
	}
	conflicts += len(failed)

	result := SyncResult{RecordsSynced: applied, ConflictsResolved: conflicts}
	slog.InfoContext(ctx, "Sync batch committed",
		"user_id", in.UserID,
		"last_sync_time", in.LastSyncTime,
		"records_synced", result.RecordsSynced,
		"conflicts_resolved", result.ConflictsResolved)

	if err := s.publishSyncCompleted(ctx, in.UserID, result); err != nil {
		slog.ErrorContext(ctx, "Failed to publish sync completed message",
			"user_id", in.UserID, "error", err)
		// The batch is committed; the event is best-effort.
	}
	return result, nil
}

func (s *SyncService) publishSyncCompleted(ctx context.Context, userID string, result SyncResult) error {
	if s.amqpClient == nil {
		slog.WarnContext(ctx, "AMQP client not available, skipping sync completed message")
		return nil
	}
	return s.amqpClient.PublishSyncCompleted(ctx, userID, result.RecordsSynced, result.ConflictsResolved)
}

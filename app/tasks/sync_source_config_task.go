package tasks

import (
	"context"
	"fmt"
	"log/slog"

	"mailcal/app/database"
	"mailcal/app/source"
)

type SyncSourceConfigTask struct {
	Task
	SourceName   string
	SourceConfig *source.Config
	sourceRepo   database.SourceRepository
}

func NewSyncSourceConfigTask(sourceName string, sourceConfig *source.Config, sourceRepo database.SourceRepository) *SyncSourceConfigTask {
	return &SyncSourceConfigTask{
		Task:         NewTask(TaskTypeSyncSourceConfig, sourceName),
		SourceName:   sourceName,
		SourceConfig: sourceConfig,
		sourceRepo:   sourceRepo,
	}
}

func (t *SyncSourceConfigTask) Execute(ctx context.Context) error {

	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	_, err := t.sourceRepo.UpsertSource(
		t.SourceConfig.Name,
		t.SourceConfig.URL)
	if err != nil {
		slog.Error("Task failed", "type", "SyncSourceConfig", "source", t.SourceName, "error", err)
		return fmt.Errorf("failed to sync source config to database: %w", err)
	}

	slog.Info("Task completed",
		"type", "SyncSourceConfig",
		"source", t.SourceName,
		"duration", t.GetDuration())

	return nil
}

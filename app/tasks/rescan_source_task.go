package tasks

import (
	"context"
	"fmt"
	"log/slog"

	"mailcal/app/database"
	"mailcal/app/event"
)

// RescanSourceTask re-runs extraction over every stored message of a
// source, ignoring fingerprints. Used after pattern or configuration
// changes when stored bodies must be re-evaluated.
type RescanSourceTask struct {
	Task
	scanner     *event.Scanner
	messageRepo database.MessageRepository
	eventRepo   database.EventRepository
}

func NewRescanSourceTask(sourceName string, scanner *event.Scanner, messageRepo database.MessageRepository, eventRepo database.EventRepository) *RescanSourceTask {
	return &RescanSourceTask{
		Task:        NewTask(TaskTypeRescanSource, sourceName),
		scanner:     scanner,
		messageRepo: messageRepo,
		eventRepo:   eventRepo,
	}
}

func (t *RescanSourceTask) Execute(ctx context.Context) error {

	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	messages, err := t.messageRepo.GetMessages(t.Ref, 0)
	if err != nil {
		return fmt.Errorf("failed to get source messages: %w", err)
	}

	eventCount := 0
	failureCount := 0
	errorCount := 0

	for _, message := range messages {
		result := t.scanner.Run(message.Body, "")

		storedCount, err := storeEvents(t.eventRepo, message.ID, result.Events)
		if err != nil {
			slog.Error("Failed to store rescanned events", "message_id", message.ID, "error", err)
			errorCount++
			continue
		}

		if err := t.messageRepo.MarkScanned(message.ID, result.Fingerprint); err != nil {
			slog.Error("Failed to mark message scanned", "message_id", message.ID, "error", err)
			errorCount++
			continue
		}

		eventCount += storedCount
		failureCount += len(result.Failures)
	}

	slog.Info("Task completed",
		"type", "RescanSource",
		"source", t.Ref,
		"duration", t.GetDuration(),
		"messages", len(messages),
		"events", eventCount,
		"failures", failureCount,
		"errors", errorCount)

	return nil
}

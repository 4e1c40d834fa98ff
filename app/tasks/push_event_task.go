package tasks

import (
	"context"
	"fmt"
	"log/slog"

	"mailcal/app/database"
	"mailcal/app/event"
)

// PushEventTask creates a calendar entry for one stored event and records
// the outcome on the event row.
type PushEventTask struct {
	Task
	client    CalendarClientInterface
	eventRepo database.EventRepository
}

func NewPushEventTask(eventID string, client CalendarClientInterface, eventRepo database.EventRepository) *PushEventTask {
	return &PushEventTask{
		Task:      NewTask(TaskTypePushEvent, eventID),
		client:    client,
		eventRepo: eventRepo,
	}
}

func (t *PushEventTask) Execute(ctx context.Context) error {

	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	if t.client == nil {
		return fmt.Errorf("calendar push is not configured")
	}

	stored, err := t.eventRepo.GetEvent(t.Ref)
	if err != nil {
		return fmt.Errorf("failed to get event: %w", err)
	}
	if stored == nil {
		return fmt.Errorf("event '%s' not found", t.Ref)
	}

	ev := event.Event{
		Summary:     stored.Summary,
		Description: stored.Description,
		Location:    stored.Location,
		Start:       stored.StartAt,
		End:         stored.EndAt,
		TimeZone:    stored.TimeZone,
		Reminders:   event.DefaultReminders(),
	}

	link, err := t.client.CreateEvent(ctx, ev)
	if err != nil {
		if updateErr := t.eventRepo.UpdateEventPushStatus(stored.ID, "failed", "", err.Error()); updateErr != nil {
			slog.Error("Failed to record push failure", "event_id", stored.ID, "error", updateErr)
		}
		return fmt.Errorf("failed to push event: %w", err)
	}

	if err := t.eventRepo.UpdateEventPushStatus(stored.ID, "pushed", link, ""); err != nil {
		return fmt.Errorf("failed to record push result: %w", err)
	}

	slog.Info("Task completed",
		"type", "PushEvent",
		"event_id", stored.ID,
		"duration", t.GetDuration(),
		"link", link)

	return nil
}

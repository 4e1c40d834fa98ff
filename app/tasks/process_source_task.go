package tasks

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"mailcal/app/content"
	"mailcal/app/database"
	"mailcal/app/event"
	"mailcal/app/source"
)

type ProcessSourceTask struct {
	Task
	SourceConfig *source.Config
	httpClient   *http.Client
	parser       *source.Parser
	extractor    *content.Extractor
	scanner      *event.Scanner
	sourceRepo   database.SourceRepository
	messageRepo  database.MessageRepository
	eventRepo    database.EventRepository
	userAgent    string
}

func NewProcessSourceTask(sourceName string, sourceConfig *source.Config, httpClient *http.Client, parser *source.Parser, extractor *content.Extractor, scanner *event.Scanner, sourceRepo database.SourceRepository, messageRepo database.MessageRepository, eventRepo database.EventRepository, userAgent string) *ProcessSourceTask {
	return &ProcessSourceTask{
		Task:         NewTask(TaskTypeProcessSource, sourceName),
		SourceConfig: sourceConfig,
		httpClient:   httpClient,
		parser:       parser,
		extractor:    extractor,
		scanner:      scanner,
		sourceRepo:   sourceRepo,
		messageRepo:  messageRepo,
		eventRepo:    eventRepo,
		userAgent:    userAgent,
	}
}

func (t *ProcessSourceTask) Execute(ctx context.Context) error {

	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	if !t.SourceConfig.Settings.Enabled {
		slog.Debug("Source disabled, skipping", "source", t.Ref)
		return nil
	}

	src, err := t.sourceRepo.GetSource(t.Ref)
	if err != nil {
		return fmt.Errorf("failed to get source: %w", err)
	}
	if src == nil {
		return fmt.Errorf("source '%s' not found in database", t.Ref)
	}

	data, err := t.fetchSource(ctx, t.SourceConfig.URL)
	if err != nil {
		return fmt.Errorf("failed to fetch source: %w", err)
	}

	metadata, messages, err := t.parser.Run(data)
	if err != nil {
		return fmt.Errorf("failed to parse source feed: %w", err)
	}

	if max := t.SourceConfig.Settings.MaxMessages; max > 0 && len(messages) > max {
		messages = messages[:max]
	}

	unchangedCount := 0
	newEventCount := 0
	failureCount := 0

	for _, message := range messages {
		scanned, unchanged, failures, err := t.processMessage(src.ID, message)
		if err != nil {
			slog.Warn("Failed to process message", "source", t.Ref, "guid", message.GUID, "error", err)
			continue
		}

		if unchanged {
			unchangedCount++
			continue
		}

		newEventCount += scanned
		failureCount += failures
	}

	err = t.storeSourceMetadata(metadata)
	if err != nil {
		return fmt.Errorf("failed to store source metadata: %w", err)
	}

	slog.Info("Task completed",
		"type", "ProcessSource",
		"source", t.Ref,
		"duration", t.GetDuration(),
		"total", len(messages),
		"unchanged", unchangedCount,
		"events", newEventCount,
		"failures", failureCount)

	return nil
}

// processMessage stores one message and rescans it when its body changed
// since the previous fetch. Returns the number of events stored, whether
// the body was unchanged, and the number of normalization failures.
func (t *ProcessSourceTask) processMessage(sourceID string, message source.Message) (int, bool, int, error) {
	body := message.Body
	if content.IsHTML(body) {
		text, err := t.extractor.Run(body)
		if err != nil {
			slog.Debug("Text extraction failed, scanning raw body", "guid", message.GUID, "error", err)
		} else {
			body = text
		}
	}

	stored, err := t.messageRepo.UpsertMessage(sourceID, database.NewMessage{
		GUID:        message.GUID,
		Subject:     message.Subject,
		Body:        body,
		PublishedAt: message.PublishedAt,
	})
	if err != nil {
		return 0, false, 0, fmt.Errorf("failed to upsert message: %w", err)
	}

	result := t.scanner.Run(body, stored.Fingerprint)
	if result.Unchanged {
		return 0, true, 0, nil
	}

	storedCount, err := storeEvents(t.eventRepo, stored.ID, result.Events)
	if err != nil {
		return 0, false, 0, err
	}

	if err := t.messageRepo.MarkScanned(stored.ID, result.Fingerprint); err != nil {
		return 0, false, 0, fmt.Errorf("failed to mark message scanned: %w", err)
	}

	return storedCount, false, len(result.Failures), nil
}

func (t *ProcessSourceTask) fetchSource(ctx context.Context, url string) ([]byte, error) {
	timeoutCtx, cancel := context.WithTimeout(ctx, time.Duration(t.SourceConfig.Settings.Timeout)*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(timeoutCtx, "GET", url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("User-Agent", t.userAgent)

	resp, err := t.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch source: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP error: %d %s", resp.StatusCode, resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	return data, nil
}

func (t *ProcessSourceTask) storeSourceMetadata(metadata *source.Metadata) error {
	now := time.Now().UTC()
	nextFetch := now.Add(time.Duration(t.SourceConfig.Settings.RefreshInterval) * time.Second)

	err := t.sourceRepo.UpdateSourceMetadata(t.Ref, metadata.Title, nextFetch)
	if err != nil {
		return fmt.Errorf("failed to update source metadata and next fetch time: %w", err)
	}

	return nil
}

// storeEvents replaces the stored events of a message with a fresh scan
// result. The replacement is wholesale so removed phrases disappear from
// the calendar surface too.
func storeEvents(eventRepo database.EventRepository, messageID string, events []event.Event) (int, error) {
	if err := eventRepo.DeleteEventsForMessage(messageID); err != nil {
		return 0, fmt.Errorf("failed to clear stored events: %w", err)
	}

	storedCount := 0
	for _, ev := range events {
		inserted, err := eventRepo.InsertEvent(messageID, database.NewEvent{
			Summary:     ev.Summary,
			Description: ev.Description,
			Location:    ev.Location,
			StartAt:     ev.Start,
			EndAt:       ev.End,
			TimeZone:    ev.TimeZone,
			DedupKey:    fmt.Sprintf("%s|%s", ev.Summary, ev.Start.Format(time.RFC3339)),
		})
		if err != nil {
			return storedCount, fmt.Errorf("failed to insert event: %w", err)
		}
		if inserted {
			storedCount++
		}
	}

	return storedCount, nil
}

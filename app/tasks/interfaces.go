package tasks

import (
	"context"

	"mailcal/app/event"
)

// TaskSchedulerInterface defines the interface for task scheduling operations.
// Used by the main application and the API layer to manage background
// task processing.
// Example usage:
//
//	scheduler := NewScheduler(configCache, sourceRepo, messageRepo, eventRepo, httpClient, parser, extractor, scanner)
//	scheduler.Start()
//	defer scheduler.Stop()
//	scheduler.EnqueueTask(NewProcessSourceTask(...))
type TaskSchedulerInterface interface {
	Start()
	Stop()
	EnqueueTask(task TaskInterface) error
}

// CalendarClientInterface is the calendar push boundary. A nil client
// means calendar push is not configured.
type CalendarClientInterface interface {
	CreateEvent(ctx context.Context, ev event.Event) (string, error)
}

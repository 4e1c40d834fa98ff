package api

import (
	"mailcal/app/database"
	"mailcal/app/event"
	"mailcal/app/source"
	"mailcal/app/tasks"
)

type GeneratorInterface interface {
	Run(events []database.Event) (string, error)
}

var _ GeneratorInterface = (*event.Generator)(nil)

type Handler struct {
	sourceRepo     database.SourceRepository
	messageRepo    database.MessageRepository
	eventRepo      database.EventRepository
	generator      GeneratorInterface
	configCache    *source.ConfigCache
	scanner        *event.Scanner
	scheduler      tasks.TaskSchedulerInterface
	calendarClient tasks.CalendarClientInterface
}

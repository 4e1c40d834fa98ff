package event

import (
	"fmt"

	ics "github.com/arran4/golang-ical"

	"mailcal/app/database"
)

// Generator renders stored events as an iCalendar document.
type Generator struct{}

func NewGenerator() *Generator {
	return &Generator{}
}

func (g *Generator) Run(events []database.Event) (string, error) {
	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//mailcal//EN")

	for _, ev := range events {
		item := cal.AddEvent(fmt.Sprintf("%s@mailcal", ev.ID))
		item.SetCreatedTime(ev.CreatedAt)
		item.SetDtStampTime(ev.CreatedAt)
		item.SetStartAt(ev.StartAt)
		item.SetEndAt(ev.EndAt)
		item.SetSummary(ev.Summary)

		if ev.Location != "" {
			item.SetLocation(ev.Location)
		}
		if ev.Description != "" {
			item.SetDescription(ev.Description)
		}
	}

	return cal.Serialize(), nil
}

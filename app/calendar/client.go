package calendar

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	gcal "google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"

	"mailcal/app/event"
)

// Client pushes extracted events into a Google Calendar. It authorizes
// with a previously stored OAuth token; interactive token acquisition is
// out of band.
type Client struct {
	service *gcal.Service
}

func NewClient(ctx context.Context, clientID, clientSecret, tokenFile string) (*Client, error) {
	config := &oauth2.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		RedirectURL:  "urn:ietf:wg:oauth:2.0:oob",
		Scopes:       []string{gcal.CalendarEventsScope},
		Endpoint:     google.Endpoint,
	}

	token, err := tokenFromFile(tokenFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load OAuth token: %w", err)
	}

	service, err := gcal.NewService(ctx, option.WithHTTPClient(config.Client(ctx, token)))
	if err != nil {
		return nil, fmt.Errorf("failed to create calendar service: %w", err)
	}

	return &Client{service: service}, nil
}

// CreateEvent inserts the event into the primary calendar and returns the
// link to the created entry.
func (c *Client) CreateEvent(ctx context.Context, ev event.Event) (string, error) {
	created, err := c.service.Events.Insert("primary", buildPayload(ev)).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("failed to insert calendar event: %w", err)
	}

	return created.HtmlLink, nil
}

func buildPayload(ev event.Event) *gcal.Event {
	payload := &gcal.Event{
		Summary:     ev.Summary,
		Description: ev.Description,
		Location:    ev.Location,
		Start: &gcal.EventDateTime{
			DateTime: ev.Start.Format(time.RFC3339),
			TimeZone: ev.TimeZone,
		},
		End: &gcal.EventDateTime{
			DateTime: ev.End.Format(time.RFC3339),
			TimeZone: ev.TimeZone,
		},
	}

	if len(ev.Reminders) > 0 {
		overrides := make([]*gcal.EventReminder, 0, len(ev.Reminders))
		for _, r := range ev.Reminders {
			overrides = append(overrides, &gcal.EventReminder{Method: r.Method, Minutes: r.Minutes})
		}
		payload.Reminders = &gcal.EventReminders{
			UseDefault:      false,
			Overrides:       overrides,
			ForceSendFields: []string{"UseDefault"},
		}
	}

	return payload
}

func tokenFromFile(path string) (*oauth2.Token, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	token := &oauth2.Token{}
	if err := json.NewDecoder(f).Decode(token); err != nil {
		return nil, fmt.Errorf("failed to decode token file %s: %w", path, err)
	}

	return token, nil
}

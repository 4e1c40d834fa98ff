package source

import (
	"bytes"
	"cmp"
	"fmt"

	"github.com/mmcdole/gofeed"
)

// Parser turns a fetched archive feed (RSS/Atom) into messages. Mailing
// lists and similar inboxes commonly expose their traffic this way; each
// feed entry corresponds to one email.
type Parser struct {
	gofeedParser *gofeed.Parser
}

func NewParser() *Parser {
	return &Parser{
		gofeedParser: gofeed.NewParser(),
	}
}

func (p *Parser) Run(data []byte) (*Metadata, []Message, error) {
	feed, err := p.gofeedParser.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse feed: %w", err)
	}

	metadata := &Metadata{
		Title:       feed.Title,
		Link:        feed.Link,
		Description: feed.Description,
	}

	messages := make([]Message, 0, len(feed.Items))
	for _, item := range feed.Items {
		messages = append(messages, p.normalizeItem(item))
	}

	return metadata, messages, nil
}

func (p *Parser) normalizeItem(item *gofeed.Item) Message {
	message := Message{
		GUID:    cmp.Or(item.GUID, item.Link),
		Subject: item.Title,
		Body:    cmp.Or(item.Content, item.Description),
	}

	if item.PublishedParsed != nil {
		message.PublishedAt = item.PublishedParsed
	}

	return message
}

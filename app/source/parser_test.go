package source

import (
	"testing"
)

func TestParseArchiveFeed(t *testing.T) {
	rssData := `<?xml version="1.0"?>
<rss version="2.0">
  <channel>
    <title>Announce Mailing List</title>
    <link>https://lists.example.com/announce</link>
    <description>Archive of the announce list</description>
    <item>
      <title>[announce] Planning session next week</title>
      <link>https://lists.example.com/announce/msg001</link>
      <description>Team meeting on Monday, January 15, 2024 at 2:00 PM in Room 204.</description>
      <guid>msg-001</guid>
      <pubDate>Mon, 08 Jan 2024 10:00:00 GMT</pubDate>
    </item>
    <item>
      <title>[announce] Minutes from December</title>
      <link>https://lists.example.com/announce/msg002</link>
      <description>Nothing scheduled.</description>
      <guid>msg-002</guid>
      <pubDate>Tue, 09 Jan 2024 11:00:00 GMT</pubDate>
    </item>
  </channel>
</rss>`

	parser := NewParser()
	metadata, messages, err := parser.Run([]byte(rssData))

	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if metadata.Title != "Announce Mailing List" {
		t.Errorf("Expected title 'Announce Mailing List', got: %s", metadata.Title)
	}
	if metadata.Link != "https://lists.example.com/announce" {
		t.Errorf("Expected link 'https://lists.example.com/announce', got: %s", metadata.Link)
	}

	if len(messages) != 2 {
		t.Fatalf("Expected 2 messages, got: %d", len(messages))
	}

	msg := messages[0]
	if msg.GUID != "msg-001" {
		t.Errorf("Expected GUID 'msg-001', got: %s", msg.GUID)
	}
	if msg.Subject != "[announce] Planning session next week" {
		t.Errorf("Expected subject from item title, got: %s", msg.Subject)
	}
	if msg.Body != "Team meeting on Monday, January 15, 2024 at 2:00 PM in Room 204." {
		t.Errorf("Expected body from item description, got: %s", msg.Body)
	}
	if msg.PublishedAt == nil {
		t.Error("Expected published timestamp")
	}
}

func TestParseGUIDFallsBackToLink(t *testing.T) {
	rssData := `<?xml version="1.0"?>
<rss version="2.0">
  <channel>
    <title>Dev List</title>
    <link>https://lists.example.com/dev</link>
    <description>Archive</description>
    <item>
      <title>No GUID here</title>
      <link>https://lists.example.com/dev/msg042</link>
      <description>Body text.</description>
    </item>
  </channel>
</rss>`

	parser := NewParser()
	_, messages, err := parser.Run([]byte(rssData))

	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if len(messages) != 1 {
		t.Fatalf("Expected 1 message, got: %d", len(messages))
	}
	if messages[0].GUID != "https://lists.example.com/dev/msg042" {
		t.Errorf("Expected link as GUID fallback, got: %s", messages[0].GUID)
	}
}

func TestParseAtomFeed(t *testing.T) {
	atomData := `<?xml version="1.0" encoding="utf-8"?>
<feed xmlns="http://www.w3.org/2005/Atom">
  <title>Users List</title>
  <link href="https://lists.example.com/users"/>
  <id>urn:uuid:feed-1</id>
  <updated>2024-01-09T12:00:00Z</updated>
  <entry>
    <title>Conference announcement</title>
    <link href="https://lists.example.com/users/msg1"/>
    <id>urn:uuid:entry-1</id>
    <updated>2024-01-09T12:00:00Z</updated>
    <content type="text">Conference on Friday, March 1, 2024 at 1:00 PM.</content>
  </entry>
</feed>`

	parser := NewParser()
	metadata, messages, err := parser.Run([]byte(atomData))

	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if metadata.Title != "Users List" {
		t.Errorf("Expected title 'Users List', got: %s", metadata.Title)
	}
	if len(messages) != 1 {
		t.Fatalf("Expected 1 message, got: %d", len(messages))
	}
	if messages[0].Body != "Conference on Friday, March 1, 2024 at 1:00 PM." {
		t.Errorf("Expected body from entry content, got: %s", messages[0].Body)
	}
}

func TestParseInvalidData(t *testing.T) {
	parser := NewParser()
	_, _, err := parser.Run([]byte("not a feed at all"))
	if err == nil {
		t.Error("Expected error for unparseable data")
	}
}

package content

import (
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	readability "codeberg.org/readeck/go-readability"
)

// Extractor reduces an HTML message body to plain text. The extraction
// core consumes plain text only; markup never crosses that boundary.
type Extractor struct{}

func NewExtractor() *Extractor {
	return &Extractor{}
}

func (e *Extractor) Run(body string) (string, error) {
	if strings.TrimSpace(body) == "" {
		return "", fmt.Errorf("message body is empty")
	}

	article, err := readability.FromReader(strings.NewReader(body), nil)
	if err != nil {
		return "", fmt.Errorf("failed to extract text: %w", err)
	}

	text := strings.TrimSpace(article.TextContent)
	if text == "" {
		return "", fmt.Errorf("no text extracted from HTML body")
	}

	slog.Debug("Text extracted from HTML body", "text_length", len(text))

	return text, nil
}

var tagRe = regexp.MustCompile(`(?i)<\s*(?:html|body|div|p|br|table|span|a)\b|</\w+>`)

// IsHTML reports whether a message body looks like markup rather than
// plain text.
func IsHTML(body string) bool {
	return tagRe.MatchString(body)
}

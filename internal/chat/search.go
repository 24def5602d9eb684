package chat

import (
	"strings"

	"golang.org/x/text/cases"

	"github.com/parleyhq/chat-engine/internal/domain"
)

// SearchMessages returns the messages whose content or sender username
// contains the query, case-insensitively, in ledger order. A blank query
// matches nothing rather than everything. Unicode case folding keeps
// non-ASCII content searchable without corrupting it.
func SearchMessages(messages []*domain.Message, query string) []*domain.Message {
	if strings.TrimSpace(query) == "" {
		return nil
	}

	folder := cases.Fold()
	needle := folder.String(query)

	var out []*domain.Message
	for _, msg := range messages {
		if strings.Contains(folder.String(msg.Content), needle) ||
			strings.Contains(folder.String(msg.Username), needle) {
			out = append(out, msg)
		}
	}
	return out
}

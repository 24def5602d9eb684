package chat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/parleyhq/chat-engine/internal/domain"
)

func searchFixture() []*domain.Message {
	msgs := []*domain.Message{
		testMessage("1", "u1", "general", "Welcome to the General chat room!", true),
		testMessage("2", "u2", "general", "Has anyone tried the new React 19 features?", true),
		testMessage("3", "u2", "technology", "Привет из Москвы", false),
	}
	msgs[0].Username = "Sarah Johnson"
	msgs[1].Username = "Alex Chen"
	msgs[2].Username = "Emma Wilson"
	return msgs
}

func TestSearchMessages(t *testing.T) {
	messages := searchFixture()

	t.Run("BlankQueryMatchesNothing", func(t *testing.T) {
		assert.Empty(t, SearchMessages(messages, ""))
		assert.Empty(t, SearchMessages(messages, "   "))
	})

	t.Run("CaseInsensitiveContentMatch", func(t *testing.T) {
		results := SearchMessages(messages, "REACT")
		require.Len(t, results, 1)
		assert.Equal(t, "2", results[0].ID)
	})

	t.Run("UsernameMatch", func(t *testing.T) {
		results := SearchMessages(messages, "sarah")
		require.Len(t, results, 1)
		assert.Equal(t, "1", results[0].ID)
	})

	t.Run("UnicodeCaseFolding", func(t *testing.T) {
		results := SearchMessages(messages, "ПРИВЕТ")
		require.Len(t, results, 1)
		assert.Equal(t, "3", results[0].ID)
	})

	t.Run("NoMatchReturnsEmpty", func(t *testing.T) {
		assert.Empty(t, SearchMessages(messages, "kubernetes"))
	})

	t.Run("ResultsKeepLedgerOrder", func(t *testing.T) {
		results := SearchMessages(messages, "e")
		require.NotEmpty(t, results)
		prev := -1
		for _, msg := range results {
			idx := indexOf(messages, msg.ID)
			require.Greater(t, idx, prev)
			prev = idx
		}
	})
}

func indexOf(messages []*domain.Message, id string) int {
	for i, msg := range messages {
		if msg.ID == id {
			return i
		}
	}
	return -1
}

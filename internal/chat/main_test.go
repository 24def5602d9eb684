package chat

import (
	"os"
	"testing"

	"github.com/parleyhq/chat-engine/internal/logger"
)

func TestMain(m *testing.M) {
	logger.Init("disabled")
	os.Exit(m.Run())
}

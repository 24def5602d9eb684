package cli

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/parleyhq/chat-engine/internal/domain"
)

// HeadlessCLI handles JSON-based headless operation
type HeadlessCLI struct {
	handler *CommandHandler
	reader  *bufio.Reader
	writer  io.Writer
	mu      sync.Mutex
}

// NewHeadlessCLI creates a new headless CLI
func NewHeadlessCLI(handler *CommandHandler) *HeadlessCLI {
	return &HeadlessCLI{
		handler: handler,
		reader:  bufio.NewReader(os.Stdin),
		writer:  os.Stdout,
	}
}

// Run starts the headless JSON processing loop
func (cli *HeadlessCLI) Run(ctx context.Context) error {
	// Send ready message
	cli.sendResponse(Response{
		Success: true,
		Data:    map[string]string{"status": "ready", "mode": "headless"},
	})

	// Subscribe to events in background
	eventChan := cli.handler.SubscribeEvents([]domain.EventType{
		domain.EventTypeMessageAppended,
		domain.EventTypeTypingChanged,
		domain.EventTypeRoomSwitched,
		domain.EventTypePresenceUpdated,
	})

	go cli.streamEvents(eventChan)

	// Process incoming JSON requests
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
			line, err := cli.reader.ReadString('\n')
			if err != nil {
				if err == io.EOF {
					return nil
				}
				cli.sendError("", fmt.Sprintf("read error: %v", err))
				continue
			}

			if done := cli.processRequest(ctx, line); done {
				return nil
			}
		}
	}
}

// processRequest handles one JSON line; it reports whether the loop is done.
func (cli *HeadlessCLI) processRequest(ctx context.Context, line string) bool {
	var req Request
	if err := json.Unmarshal([]byte(line), &req); err != nil {
		cli.sendError("", fmt.Sprintf("invalid JSON: %v", err))
		return false
	}

	if req.Command == "" {
		cli.sendError(req.ID, "missing command field")
		return false
	}

	cmd := &Command{
		Name: req.Command,
		Args: cli.paramsToArgs(req.Command, req.Params),
	}

	switch req.Command {
	case "subscribe":
		// Already subscribed, just acknowledge
		cli.sendResponse(Response{
			ID:      req.ID,
			Success: true,
			Data:    map[string]string{"message": "subscribed to events"},
		})
		return false
	case "quit", "exit", "q":
		cli.sendResponse(Response{
			ID:      req.ID,
			Success: true,
			Data:    map[string]string{"message": "goodbye"},
		})
		return true
	}

	result, err := cli.handler.Execute(ctx, cmd)
	if err != nil {
		cli.sendError(req.ID, err.Error())
		return false
	}

	cli.sendResponse(Response{
		ID:      req.ID,
		Success: true,
		Data:    result,
	})
	return false
}

// paramsToArgs flattens the request params into the positional args the
// command handler expects.
func (cli *HeadlessCLI) paramsToArgs(command string, params map[string]interface{}) []string {
	if params == nil {
		return nil
	}

	str := func(key string) string {
		if v, ok := params[key].(string); ok {
			return v
		}
		return ""
	}

	var args []string
	appendIf := func(values ...string) {
		for _, v := range values {
			if v != "" {
				args = append(args, v)
			}
		}
	}

	switch command {
	case "login":
		appendIf(str("email"), str("password"))
	case "register":
		appendIf(str("email"), str("username"), str("password"))
	case "switch", "sw":
		appendIf(str("room"))
	case "send":
		appendIf(str("text"))
	case "messages", "msg":
		appendIf(str("room"))
	case "search":
		appendIf(str("query"))
	case "typing":
		appendIf(str("user"))
		if v, ok := params["typing"].(bool); ok && !v {
			args = append(args, "off")
		}
	}

	return args
}

func (cli *HeadlessCLI) streamEvents(eventChan <-chan domain.Event) {
	for event := range eventChan {
		var payload Event
		switch e := event.(type) {
		case domain.MessageAppendedEvent:
			payload = Event{
				Type:      "message_appended",
				Timestamp: e.EventTime,
				Data:      cli.handler.toMessageInfo(e.Message),
			}
		case domain.TypingChangedEvent:
			payload = Event{
				Type:      "typing_changed",
				Timestamp: e.EventTime,
				Data:      map[string]interface{}{"user_id": e.UserID, "is_typing": e.IsTyping},
			}
		case domain.RoomSwitchedEvent:
			payload = Event{
				Type:      "room_switched",
				Timestamp: e.EventTime,
				Data:      map[string]interface{}{"room_id": e.Room.ID},
			}
		case domain.PresenceUpdatedEvent:
			payload = Event{
				Type:      "presence_updated",
				Timestamp: e.EventTime,
				Data:      map[string]interface{}{"user_id": e.UserID, "is_online": e.IsOnline},
			}
		default:
			continue
		}

		cli.sendEvent(payload)
	}
}

func (cli *HeadlessCLI) sendResponse(resp Response) {
	cli.mu.Lock()
	defer cli.mu.Unlock()

	data, err := json.Marshal(resp)
	if err != nil {
		return
	}
	fmt.Fprintln(cli.writer, string(data))
}

func (cli *HeadlessCLI) sendError(id, message string) {
	cli.sendResponse(Response{
		ID:      id,
		Success: false,
		Error:   message,
	})
}

func (cli *HeadlessCLI) sendEvent(event Event) {
	cli.mu.Lock()
	defer cli.mu.Unlock()

	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}

	envelope := map[string]interface{}{
		"event": event,
	}
	data, err := json.Marshal(envelope)
	if err != nil {
		return
	}
	fmt.Fprintln(cli.writer, string(data))
}

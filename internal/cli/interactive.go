package cli

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/parleyhq/chat-engine/internal/domain"
	"github.com/parleyhq/chat-engine/internal/format"
)

// InteractiveCLI handles interactive command-line interface
type InteractiveCLI struct {
	handler *CommandHandler
	reader  *bufio.Reader
	writer  io.Writer
}

// NewInteractiveCLI creates a new interactive CLI
func NewInteractiveCLI(handler *CommandHandler) *InteractiveCLI {
	return &InteractiveCLI{
		handler: handler,
		reader:  bufio.NewReader(os.Stdin),
		writer:  os.Stdout,
	}
}

// Run starts the interactive CLI loop
func (cli *InteractiveCLI) Run(ctx context.Context) error {
	cli.printWelcome(ctx)

	// Subscribe to events in background
	eventChan := cli.handler.SubscribeEvents([]domain.EventType{
		domain.EventTypeMessageAppended,
		domain.EventTypeTypingChanged,
	})

	go cli.handleEvents(eventChan)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
			cli.print("\n> ")
			line, err := cli.reader.ReadString('\n')
			if err != nil {
				if err == io.EOF {
					return nil
				}
				return err
			}

			line = strings.TrimSpace(line)
			if line == "" {
				continue
			}

			// Bare text is a send to the current room
			if !strings.HasPrefix(line, "/") {
				line = "/send " + line
			}

			if err := cli.processCommand(ctx, line); err != nil {
				if err.Error() == "quit" {
					cli.println("Goodbye!")
					return nil
				}
				cli.printf("Error: %s\n", err)
			}
		}
	}
}

func (cli *InteractiveCLI) printWelcome(ctx context.Context) {
	cli.println("===========================================")
	cli.println("  Chat Engine CLI")
	cli.println("===========================================")
	cli.println("Type /help for available commands")
	cli.println("")

	status, _ := cli.handler.cmdStatus(ctx)
	if s, ok := status.(SessionStatus); ok {
		cli.printf("Status: %s\n", s.Status)
	}
}

func (cli *InteractiveCLI) processCommand(ctx context.Context, input string) error {
	cmd, err := ParseCommand(input)
	if err != nil {
		return err
	}

	result, err := cli.handler.Execute(ctx, cmd)
	if err != nil {
		return err
	}

	// Check for quit command
	if m, ok := result.(map[string]bool); ok && m["quit"] {
		return fmt.Errorf("quit")
	}

	// Format and display result
	cli.displayResult(cmd.Name, result)
	return nil
}

func (cli *InteractiveCLI) displayResult(cmdName string, result interface{}) {
	switch cmdName {
	case "help", "h":
		if m, ok := result.(map[string]string); ok {
			cli.println(m["help"])
		}

	case "status", "s":
		if s, ok := result.(SessionStatus); ok {
			cli.printf("Session: %s\n", s.Status)
			if s.CurrentRoom != "" {
				cli.printf("  Current room: %s\n", s.CurrentRoom)
			}
		}

	case "rooms", "ls":
		if m, ok := result.(map[string]interface{}); ok {
			rooms, _ := m["rooms"].([]RoomInfo)
			cli.printf("%d room(s):\n\n", len(rooms))
			for _, room := range rooms {
				marker := "  "
				if room.Active {
					marker = "* "
				}
				unread := ""
				if room.UnreadCount > 0 {
					unread = fmt.Sprintf(" [%d unread]", room.UnreadCount)
				}
				cli.printf("%s%s %s (%s)%s\n", marker, room.Icon, room.Name, room.ID, unread)
				cli.printf("    %s — %d members, active %s\n", room.Description, room.MemberCount, format.TimeAgo(room.LastActivity))
			}
		}

	case "messages", "msg":
		if m, ok := result.(map[string]interface{}); ok {
			messages, _ := m["messages"].([]MessageInfo)
			room, _ := m["room"].(string)
			cli.printf("%d message(s) in %s:\n\n", len(messages), room)
			for _, msg := range messages {
				cli.printMessage(msg)
			}
		}

	case "send":
		if msg, ok := result.(MessageInfo); ok {
			cli.printf("[%s] You: %s\n", format.ClockTime(msg.Timestamp), msg.Content)
		}

	case "search":
		if m, ok := result.(map[string]interface{}); ok {
			query, _ := m["query"].(string)
			messages, _ := m["messages"].([]MessageInfo)
			cli.printf("Search results for '%s' (%d found):\n\n", query, len(messages))
			for _, msg := range messages {
				cli.printMessage(msg)
			}
		}

	case "users", "who":
		if m, ok := result.(map[string]interface{}); ok {
			users, _ := m["users"].([]UserInfo)
			cli.printf("%d user(s):\n\n", len(users))
			for _, u := range users {
				presence := fmt.Sprintf("last seen %s", format.TimeAgo(u.LastSeen))
				if u.IsOnline {
					presence = "online"
				}
				typing := ""
				if u.IsTyping {
					typing = " (typing...)"
				}
				cli.printf("  %s (%s) — %s%s\n", u.Username, u.ID, presence, typing)
			}
		}

	case "unread":
		if m, ok := result.(map[string]interface{}); ok {
			counts, _ := m["unread"].(map[string]int)
			cli.println("Unread counts:")
			for roomID, n := range counts {
				cli.printf("  %s: %d\n", roomID, n)
			}
		}

	default:
		// Generic output for other commands
		if m, ok := result.(map[string]string); ok {
			if msg, exists := m["message"]; exists {
				cli.println(msg)
				return
			}
		}
		// Pretty print JSON
		data, _ := json.MarshalIndent(result, "", "  ")
		cli.println(string(data))
	}
}

func (cli *InteractiveCLI) printMessage(msg MessageInfo) {
	sender := msg.Username
	if msg.IsMine {
		sender = "You"
	}
	cli.printf("[%s] %s: %s\n", format.ClockTime(msg.Timestamp), sender, msg.Content)
}

func (cli *InteractiveCLI) handleEvents(eventChan <-chan domain.Event) {
	for event := range eventChan {
		switch e := event.(type) {
		case domain.MessageAppendedEvent:
			if e.Message == nil {
				continue
			}
			// Own sends are echoed by displayResult already
			if user := cli.handler.session.CurrentUser(); user != nil && user.ID == e.Message.UserID {
				continue
			}
			cli.printf("\n[%s] %s in #%s: %s\n", format.ClockTime(e.Message.Timestamp), e.Message.Username, e.Message.RoomID, e.Message.Content)
			cli.print("> ")
		case domain.TypingChangedEvent:
			if e.IsTyping {
				cli.printf("\n[%s is typing...]\n", e.UserID)
				cli.print("> ")
			}
		}
	}
}

func (cli *InteractiveCLI) print(s string) {
	fmt.Fprint(cli.writer, s)
}

func (cli *InteractiveCLI) println(s string) {
	fmt.Fprintln(cli.writer, s)
}

func (cli *InteractiveCLI) printf(format string, args ...interface{}) {
	fmt.Fprintf(cli.writer, format, args...)
}

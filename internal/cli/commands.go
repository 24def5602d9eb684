package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/parleyhq/chat-engine/internal/auth"
	"github.com/parleyhq/chat-engine/internal/chat"
	"github.com/parleyhq/chat-engine/internal/domain"
)

// CommandHandler handles CLI commands
type CommandHandler struct {
	session  *chat.Session
	identity *auth.Service
	bus      domain.EventBus
}

// NewCommandHandler creates a new command handler
func NewCommandHandler(session *chat.Session, identity *auth.Service, bus domain.EventBus) *CommandHandler {
	return &CommandHandler{
		session:  session,
		identity: identity,
		bus:      bus,
	}
}

// Command represents a parsed command
type Command struct {
	Name string
	Args []string
}

// ParseCommand parses a command string (e.g., "/switch technology")
func ParseCommand(input string) (*Command, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return nil, fmt.Errorf("empty command")
	}

	if !strings.HasPrefix(input, "/") {
		return nil, fmt.Errorf("commands must start with /")
	}

	parts := strings.Fields(input)
	name := strings.TrimPrefix(parts[0], "/")
	args := parts[1:]

	return &Command{Name: name, Args: args}, nil
}

// Execute executes a command and returns the result
func (h *CommandHandler) Execute(ctx context.Context, cmd *Command) (interface{}, error) {
	switch cmd.Name {
	case "help", "h":
		return h.cmdHelp()
	case "status", "s":
		return h.cmdStatus(ctx)
	case "login":
		return h.cmdLogin(ctx, cmd.Args)
	case "register":
		return h.cmdRegister(ctx, cmd.Args)
	case "logout":
		return h.cmdLogout(ctx)
	case "rooms", "ls":
		return h.cmdRooms()
	case "switch", "sw":
		return h.cmdSwitch(ctx, cmd.Args)
	case "send":
		return h.cmdSend(ctx, cmd.Args)
	case "messages", "msg":
		return h.cmdMessages(cmd.Args)
	case "search":
		return h.cmdSearch(cmd.Args)
	case "users", "who":
		return h.cmdUsers()
	case "typing":
		return h.cmdTyping(cmd.Args)
	case "unread":
		return h.cmdUnread()
	case "away":
		return h.cmdPresence(ctx, false)
	case "back":
		return h.cmdPresence(ctx, true)
	case "quit", "exit", "q":
		return map[string]bool{"quit": true}, nil
	default:
		return nil, fmt.Errorf("unknown command: %s. Type /help for available commands", cmd.Name)
	}
}

// SubscribeEvents exposes the domain event stream to the CLI front-ends.
func (h *CommandHandler) SubscribeEvents(eventTypes []domain.EventType) <-chan domain.Event {
	return h.bus.Subscribe(eventTypes)
}

func (h *CommandHandler) cmdHelp() (interface{}, error) {
	help := `Available commands:

Account:
  /login <email> <password>            Log in as a seed user
  /register <email> <name> <password>  Create a new account
  /logout                              Log out
  /status, /s                          Show session status
  /away                                Set presence to away
  /back                                Set presence to online

Rooms:
  /rooms, /ls              List rooms with unread counts
  /switch, /sw <room-id>   Switch to a room (marks it read)

Messages:
  /send <text>             Send a message to the current room
  /messages, /msg [room]   Show messages (default: current room)
  /search <query>          Search messages by content or sender
  /typing <user-id> [off]  Toggle a typing indicator
  /unread                  Show unread counts

Other:
  /help, /h                Show this help
  /quit, /exit, /q         Exit the CLI`

	return map[string]string{"help": help}, nil
}

func (h *CommandHandler) cmdStatus(ctx context.Context) (interface{}, error) {
	user := h.session.CurrentUser()
	room := h.session.CurrentRoom()

	status := SessionStatus{
		LoggedIn: h.identity.IsAuthenticated(ctx),
	}
	if user != nil {
		status.Username = user.Username
	}
	if room != nil {
		status.CurrentRoom = room.ID
	}
	if status.LoggedIn {
		status.Status = fmt.Sprintf("logged in as %s", status.Username)
	} else {
		status.Status = "not logged in"
	}

	return status, nil
}

func (h *CommandHandler) cmdLogin(ctx context.Context, args []string) (interface{}, error) {
	if len(args) < 2 {
		return nil, fmt.Errorf("usage: /login <email> <password>")
	}

	user, err := h.identity.Login(ctx, args[0], args[1])
	if err != nil {
		return nil, err
	}

	h.session.RefreshIdentity(ctx)

	return map[string]string{"message": fmt.Sprintf("Logged in as %s", user.Username)}, nil
}

func (h *CommandHandler) cmdRegister(ctx context.Context, args []string) (interface{}, error) {
	if len(args) < 3 {
		return nil, fmt.Errorf("usage: /register <email> <username> <password>")
	}

	user, err := h.identity.Register(ctx, args[0], args[1], args[2])
	if err != nil {
		return nil, err
	}

	h.session.RefreshIdentity(ctx)

	return map[string]string{"message": fmt.Sprintf("Registered and logged in as %s", user.Username)}, nil
}

func (h *CommandHandler) cmdLogout(ctx context.Context) (interface{}, error) {
	h.identity.Logout(ctx)
	h.session.RefreshIdentity(ctx)
	return map[string]string{"message": "Logged out"}, nil
}

func (h *CommandHandler) cmdRooms() (interface{}, error) {
	rooms := h.session.Rooms()
	counts := h.session.UnreadCounts()
	current := h.session.CurrentRoom()

	result := make([]RoomInfo, len(rooms))
	for i, room := range rooms {
		result[i] = RoomInfo{
			ID:           room.ID,
			Name:         room.Name,
			Description:  room.Description,
			Icon:         room.Icon,
			MemberCount:  room.MemberCount,
			UnreadCount:  counts[room.ID],
			LastActivity: room.LastActivity,
			Active:       current != nil && current.ID == room.ID,
		}
	}

	return map[string]interface{}{"rooms": result, "count": len(result)}, nil
}

func (h *CommandHandler) cmdSwitch(ctx context.Context, args []string) (interface{}, error) {
	if len(args) < 1 {
		return nil, fmt.Errorf("usage: /switch <room-id>")
	}

	room := h.session.RoomByID(args[0])
	if room == nil {
		return nil, fmt.Errorf("unknown room: %s", args[0])
	}

	h.session.SwitchRoom(ctx, room)

	return map[string]string{"message": fmt.Sprintf("Switched to %s %s", room.Icon, room.Name)}, nil
}

func (h *CommandHandler) cmdSend(ctx context.Context, args []string) (interface{}, error) {
	if len(args) < 1 {
		return nil, fmt.Errorf("usage: /send <text>")
	}

	text := strings.Join(args, " ")

	msg := h.session.SendMessage(ctx, text)
	if msg == nil {
		return nil, fmt.Errorf("message not sent: log in and pick a room first")
	}

	return h.toMessageInfo(msg), nil
}

func (h *CommandHandler) cmdMessages(args []string) (interface{}, error) {
	roomID := ""
	if len(args) > 0 {
		roomID = args[0]
	} else if room := h.session.CurrentRoom(); room != nil {
		roomID = room.ID
	}
	if roomID == "" {
		return nil, fmt.Errorf("usage: /messages <room-id>")
	}
	if h.session.RoomByID(roomID) == nil {
		return nil, fmt.Errorf("unknown room: %s", roomID)
	}

	messages := h.session.Messages(roomID)

	result := make([]MessageInfo, len(messages))
	for i, msg := range messages {
		result[i] = h.toMessageInfo(msg)
	}

	return map[string]interface{}{"room": roomID, "messages": result, "count": len(result)}, nil
}

func (h *CommandHandler) cmdSearch(args []string) (interface{}, error) {
	if len(args) < 1 {
		return nil, fmt.Errorf("usage: /search <query>")
	}

	query := strings.Join(args, " ")
	messages := h.session.SearchMessages(query)

	result := make([]MessageInfo, len(messages))
	for i, msg := range messages {
		result[i] = h.toMessageInfo(msg)
	}

	return map[string]interface{}{"query": query, "messages": result, "count": len(result)}, nil
}

func (h *CommandHandler) cmdUsers() (interface{}, error) {
	users := h.session.Users()
	typing := h.session.TypingUsers()

	result := make([]UserInfo, len(users))
	for i, u := range users {
		result[i] = UserInfo{
			ID:       u.ID,
			Username: u.Username,
			Email:    u.Email,
			IsOnline: u.IsOnline,
			IsTyping: typing[u.ID],
			LastSeen: u.LastSeen,
		}
	}

	return map[string]interface{}{"users": result, "count": len(result)}, nil
}

func (h *CommandHandler) cmdTyping(args []string) (interface{}, error) {
	if len(args) < 1 {
		typing := h.session.TypingUsers()
		names := make([]string, 0, len(typing))
		for id := range typing {
			if u := h.session.UserByID(id); u != nil {
				names = append(names, u.Username)
			} else {
				names = append(names, id)
			}
		}
		return map[string]interface{}{"typing": names, "count": len(names)}, nil
	}

	userID := args[0]
	isTyping := !(len(args) > 1 && args[1] == "off")

	if h.session.UserByID(userID) == nil {
		return nil, fmt.Errorf("unknown user: %s", userID)
	}

	h.session.SetTyping(userID, isTyping)

	state := "typing"
	if !isTyping {
		state = "not typing"
	}
	return map[string]string{"message": fmt.Sprintf("User %s is now %s", userID, state)}, nil
}

func (h *CommandHandler) cmdUnread() (interface{}, error) {
	return map[string]interface{}{"unread": h.session.UnreadCounts()}, nil
}

func (h *CommandHandler) cmdPresence(ctx context.Context, isOnline bool) (interface{}, error) {
	if h.session.CurrentUser() == nil {
		return nil, fmt.Errorf("not logged in")
	}

	h.session.UpdatePresence(ctx, isOnline)

	state := "online"
	if !isOnline {
		state = "away"
	}
	return map[string]string{"message": fmt.Sprintf("Presence set to %s", state)}, nil
}

func (h *CommandHandler) toMessageInfo(msg *domain.Message) MessageInfo {
	mine := false
	if user := h.session.CurrentUser(); user != nil {
		mine = user.ID == msg.UserID
	}
	return MessageInfo{
		ID:        msg.ID,
		RoomID:    msg.RoomID,
		UserID:    msg.UserID,
		Username:  msg.Username,
		Content:   msg.Content,
		Type:      string(msg.Type),
		Timestamp: msg.Timestamp,
		IsMine:    mine,
		IsRead:    msg.IsRead,
	}
}

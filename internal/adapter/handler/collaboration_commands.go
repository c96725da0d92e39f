package handler

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/rl1809/invstrar/internal/core/domain"
	"github.com/rl1809/invstrar/internal/core/service"
)

var (
	alertHeaders   = []string{"ID", "ITEM", "KIND", "SEVERITY", "READ", "MESSAGE"}
	roomHeaders    = []string{"ID", "NAME", "PARTICIPANTS", "MESSAGES"}
	messageHeaders = []string{"TIME", "SENDER", "MESSAGE"}
	meetingHeaders = []string{"ID", "TITLE", "HOST", "SCHEDULED", "STATUS", "PARTICIPANTS", "REC", "SHARE"}
)

func alertRows(alerts ...domain.AlertItem) [][]string {
	rows := make([][]string, 0, len(alerts))
	for _, a := range alerts {
		rows = append(rows, []string{a.ID, a.ItemName, string(a.Kind), string(a.Severity), strconv.FormatBool(a.Read), a.Message})
	}
	return rows
}

func roomRows(rooms ...domain.ChatRoom) [][]string {
	rows := make([][]string, 0, len(rooms))
	for _, r := range rooms {
		rows = append(rows, []string{r.ID, r.Name, strings.Join(r.Participants, ", "), strconv.Itoa(len(r.Messages))})
	}
	return rows
}

func messageRows(msgs ...domain.ChatMessage) [][]string {
	rows := make([][]string, 0, len(msgs))
	for _, m := range msgs {
		rows = append(rows, []string{m.Timestamp.Format("2006-01-02 15:04"), m.Sender, m.Content})
	}
	return rows
}

func meetingRows(meetings ...domain.Meeting) [][]string {
	rows := make([][]string, 0, len(meetings))
	for _, m := range meetings {
		rows = append(rows, []string{
			m.ID, m.Title, m.Host, m.ScheduledAt.Format("2006-01-02 15:04"), string(m.Status),
			strings.Join(m.Participants, ", "), strconv.FormatBool(m.Recording), strconv.FormatBool(m.ScreenSharing),
		})
	}
	return rows
}

func (h *CLIHandler) Alerts(ctx context.Context, args []string) error {
	action, rest, err := subcommand(args, "list", "read", "read-all", "dismiss")
	if err != nil {
		return err
	}
	svc := h.services.Alerts

	switch action {
	case "list":
		fs := newFlagSet("alerts list")
		unread := fs.Bool("unread", false, "only unread alerts")
		if _, _, err := parseFlags(fs, rest); err != nil {
			return err
		}

		var alerts []domain.AlertItem
		if *unread {
			alerts, err = svc.Unread(ctx)
		} else {
			alerts, err = svc.List(ctx)
		}
		if err != nil {
			return err
		}
		return h.emit(alerts, alertHeaders, alertRows(alerts...))

	case "read":
		if err := requireArgs("alerts read", rest, 1); err != nil {
			return err
		}
		a, err := svc.MarkRead(ctx, rest[0])
		if err != nil {
			return err
		}
		return h.emit(a, alertHeaders, alertRows(a))

	case "read-all":
		if err := svc.MarkAllRead(ctx); err != nil {
			return err
		}
		alerts, err := svc.List(ctx)
		if err != nil {
			return err
		}
		return h.emit(alerts, alertHeaders, alertRows(alerts...))

	default:
		if err := requireArgs("alerts dismiss", rest, 1); err != nil {
			return err
		}
		ok, err := svc.Dismiss(ctx, rest[0])
		if err != nil {
			return err
		}
		return h.deleted("alert", rest[0], ok)
	}
}

func (h *CLIHandler) Chat(ctx context.Context, args []string) error {
	action, rest, err := subcommand(args, "rooms", "create", "update", "use", "active", "history", "send", "delete")
	if err != nil {
		return err
	}
	svc := h.services.Chat

	switch action {
	case "rooms":
		fs := newFlagSet("chat rooms")
		query := fs.String("q", "", "substring of a room name, participant or message")
		if _, _, err := parseFlags(fs, rest); err != nil {
			return err
		}
		rooms, err := svc.Search(ctx, *query)
		if err != nil {
			return err
		}
		return h.emit(rooms, roomHeaders, roomRows(rooms...))

	case "create":
		fs := newFlagSet("chat create")
		participants := fs.String("with", "", "comma separated participants")
		args, _, err := parseFlags(fs, rest)
		if err != nil {
			return err
		}
		if err := requireArgs("chat create", args, 1); err != nil {
			return err
		}
		room, err := svc.CreateRoom(ctx, strings.Join(args, " "), splitList(*participants))
		if err != nil {
			return err
		}
		return h.emit(room, roomHeaders, roomRows(room))

	case "update":
		if err := requireArgs("chat update", rest, 1); err != nil {
			return err
		}
		fs := newFlagSet("chat update")
		name := fs.String("name", "", "room name")
		participants := fs.String("with", "", "comma separated participants, replaces the list")
		_, set, err := parseFlags(fs, rest[1:])
		if err != nil {
			return err
		}
		var patch service.RoomPatch
		if set["name"] {
			patch.Name = name
		}
		if set["with"] {
			list := splitList(*participants)
			patch.Participants = &list
		}
		room, err := svc.UpdateRoom(ctx, rest[0], patch)
		if err != nil {
			return err
		}
		return h.emit(room, roomHeaders, roomRows(room))

	case "use":
		if err := requireArgs("chat use", rest, 1); err != nil {
			return err
		}
		if err := svc.SetActiveRoom(ctx, rest[0]); err != nil {
			return err
		}
		room, err := svc.ActiveRoom(ctx)
		if err != nil {
			return err
		}
		return h.emit(room, roomHeaders, roomRows(room))

	case "active":
		room, err := svc.ActiveRoom(ctx)
		if err != nil {
			return err
		}
		return h.emit(room, roomHeaders, roomRows(room))

	case "history":
		var room domain.ChatRoom
		if len(rest) > 0 {
			room, err = svc.Room(ctx, rest[0])
		} else {
			room, err = svc.ActiveRoom(ctx)
		}
		if err != nil {
			return err
		}
		return h.emit(room.Messages, messageHeaders, messageRows(room.Messages...))

	case "send":
		fs := newFlagSet("chat send")
		sender := fs.String("as", "", "sender name")
		roomID := fs.String("room", "", "room id (default active room)")
		args, _, err := parseFlags(fs, rest)
		if err != nil {
			return err
		}
		if *roomID == "" {
			room, err := svc.ActiveRoom(ctx)
			if err != nil {
				return err
			}
			*roomID = room.ID
		}
		msg, err := svc.SendMessage(ctx, *roomID, *sender, strings.Join(args, " "))
		if err != nil {
			return err
		}
		return h.emit(msg, messageHeaders, messageRows(msg))

	default:
		if err := requireArgs("chat delete", rest, 1); err != nil {
			return err
		}
		ok, err := svc.DeleteRoom(ctx, rest[0])
		if err != nil {
			return err
		}
		return h.deleted("chat room", rest[0], ok)
	}
}

func (h *CLIHandler) Meetings(ctx context.Context, args []string) error {
	action, rest, err := subcommand(args, "list", "get", "schedule", "update", "join", "leave", "start", "end", "record", "share", "delete")
	if err != nil {
		return err
	}
	svc := h.services.Meetings

	var m domain.Meeting
	switch action {
	case "list":
		fs := newFlagSet("meetings list")
		query := fs.String("q", "", "substring to search for")
		if _, _, err := parseFlags(fs, rest); err != nil {
			return err
		}
		meetings, err := svc.Search(ctx, *query)
		if err != nil {
			return err
		}
		return h.emit(meetings, meetingHeaders, meetingRows(meetings...))

	case "schedule":
		fs := newFlagSet("meetings schedule")
		title := fs.String("title", "", "meeting title")
		host := fs.String("host", "", "host name")
		at := fs.String("at", "", "start time, RFC3339 (default now)")
		duration := fs.Int("duration", 30, "duration in minutes")
		participants := fs.String("with", "", "comma separated participants")
		if _, _, err := parseFlags(fs, rest); err != nil {
			return err
		}

		var scheduled time.Time
		if *at != "" {
			scheduled, err = time.Parse(time.RFC3339, *at)
			if err != nil {
				return usageError("invalid start time %q", *at)
			}
		}
		m, err = svc.Schedule(ctx, domain.Meeting{
			Title:           *title,
			Host:            *host,
			ScheduledAt:     scheduled,
			DurationMinutes: *duration,
			Participants:    splitList(*participants),
		})

	case "update":
		if err := requireArgs("meetings update", rest, 1); err != nil {
			return err
		}
		fs := newFlagSet("meetings update")
		title := fs.String("title", "", "meeting title")
		host := fs.String("host", "", "host name")
		at := fs.String("at", "", "start time, RFC3339")
		duration := fs.Int("duration", 0, "duration in minutes")
		participants := fs.String("with", "", "comma separated participants, replaces the list")
		_, set, perr := parseFlags(fs, rest[1:])
		if perr != nil {
			return perr
		}

		var patch service.MeetingPatch
		if set["title"] {
			patch.Title = title
		}
		if set["host"] {
			patch.Host = host
		}
		if set["duration"] {
			patch.DurationMinutes = duration
		}
		if set["at"] {
			scheduled, perr := time.Parse(time.RFC3339, *at)
			if perr != nil {
				return usageError("invalid start time %q", *at)
			}
			patch.ScheduledAt = &scheduled
		}
		if set["with"] {
			list := splitList(*participants)
			patch.Participants = &list
		}
		m, err = svc.Update(ctx, rest[0], patch)

	case "join", "leave":
		if err := requireArgs("meetings "+action, rest, 2); err != nil {
			return err
		}
		name := strings.Join(rest[1:], " ")
		if action == "join" {
			m, err = svc.Join(ctx, rest[0], name)
		} else {
			m, err = svc.Leave(ctx, rest[0], name)
		}

	case "delete":
		if err := requireArgs("meetings delete", rest, 1); err != nil {
			return err
		}
		ok, err := svc.Delete(ctx, rest[0])
		if err != nil {
			return err
		}
		return h.deleted("meeting", rest[0], ok)

	default:
		if err := requireArgs("meetings "+action, rest, 1); err != nil {
			return err
		}
		switch action {
		case "get":
			m, err = svc.Get(ctx, rest[0])
		case "start":
			m, err = svc.Start(ctx, rest[0])
		case "end":
			m, err = svc.End(ctx, rest[0])
		case "record":
			m, err = svc.ToggleRecording(ctx, rest[0])
		case "share":
			m, err = svc.ToggleScreenShare(ctx, rest[0])
		}
	}
	if err != nil {
		return err
	}
	return h.emit(m, meetingHeaders, meetingRows(m))
}

func splitList(s string) []string {
	out := []string{}
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

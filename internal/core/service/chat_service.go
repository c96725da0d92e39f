package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/rl1809/invstrar/internal/core/domain"
	"github.com/rl1809/invstrar/internal/port"
)

type RoomPatch struct {
	Name         *string
	Participants *[]string
}

type ChatService struct {
	store port.KeyValueStore
	rooms *collection[domain.ChatRoom]
}

func NewChatService(store port.KeyValueStore, opts Options) *ChatService {
	return &ChatService{
		store: store,
		rooms: newCollection(store, domain.KeyChatRooms, func(r domain.ChatRoom) string { return r.ID }, defaultChatRooms, opts),
	}
}

func (s *ChatService) Rooms(ctx context.Context) ([]domain.ChatRoom, error) {
	return s.rooms.list(ctx)
}

func (s *ChatService) Room(ctx context.Context, id string) (domain.ChatRoom, error) {
	return s.rooms.find(ctx, id)
}

// Search matches room names, participants and message text.
func (s *ChatService) Search(ctx context.Context, query string) ([]domain.ChatRoom, error) {
	return s.rooms.filter(ctx, func(r domain.ChatRoom) bool {
		fields := append([]string{r.Name}, r.Participants...)
		for _, m := range r.Messages {
			fields = append(fields, m.Content)
		}
		return matches(query, fields...)
	})
}

// UpdateRoom renames a room or replaces its participants. Messages are kept.
func (s *ChatService) UpdateRoom(ctx context.Context, id string, patch RoomPatch) (domain.ChatRoom, error) {
	return s.rooms.update(ctx, id, func(r *domain.ChatRoom) error {
		if patch.Name != nil {
			name := strings.TrimSpace(*patch.Name)
			if name == "" {
				return fmt.Errorf("room name is required: %w", ErrValidation)
			}
			r.Name = name
		}
		if patch.Participants != nil {
			r.Participants = append([]string{}, *patch.Participants...)
		}
		return nil
	})
}

func (s *ChatService) CreateRoom(ctx context.Context, name string, participants []string) (domain.ChatRoom, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return domain.ChatRoom{}, fmt.Errorf("room name is required: %w", ErrValidation)
	}
	if participants == nil {
		participants = []string{}
	}

	room := domain.ChatRoom{
		ID:           uuid.New().String(),
		Name:         name,
		Participants: participants,
		Messages:     []domain.ChatMessage{},
	}
	if err := s.rooms.add(ctx, room); err != nil {
		return domain.ChatRoom{}, err
	}
	return room, nil
}

func (s *ChatService) SendMessage(ctx context.Context, roomID, sender, content string) (domain.ChatMessage, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return domain.ChatMessage{}, fmt.Errorf("message content is required: %w", ErrValidation)
	}
	if strings.TrimSpace(sender) == "" {
		return domain.ChatMessage{}, fmt.Errorf("message sender is required: %w", ErrValidation)
	}

	msg := domain.ChatMessage{
		ID:        uuid.New().String(),
		Sender:    sender,
		Content:   content,
		Timestamp: time.Now().UTC(),
	}
	_, err := s.rooms.update(ctx, roomID, func(r *domain.ChatRoom) error {
		r.Messages = append(r.Messages, msg)
		return nil
	})
	if err != nil {
		return domain.ChatMessage{}, err
	}
	return msg, nil
}

func (s *ChatService) SetActiveRoom(ctx context.Context, roomID string) error {
	if _, err := s.rooms.find(ctx, roomID); err != nil {
		return err
	}
	raw, err := json.Marshal(roomID)
	if err != nil {
		return err
	}
	if err := s.store.SetItem(ctx, domain.KeyActiveChatRoom, string(raw)); err != nil {
		return fmt.Errorf("write %s: %w", domain.KeyActiveChatRoom, err)
	}
	return nil
}

// ActiveRoom returns the selected room, falling back to the first room.
func (s *ChatService) ActiveRoom(ctx context.Context) (domain.ChatRoom, error) {
	rooms, err := s.rooms.list(ctx)
	if err != nil {
		return domain.ChatRoom{}, err
	}
	if len(rooms) == 0 {
		return domain.ChatRoom{}, fmt.Errorf("%s: %w", domain.KeyChatRooms, ErrNotFound)
	}

	activeID, err := s.activeRoomID(ctx)
	if err != nil {
		return domain.ChatRoom{}, err
	}
	for _, r := range rooms {
		if r.ID == activeID {
			return r, nil
		}
	}
	return rooms[0], nil
}

func (s *ChatService) DeleteRoom(ctx context.Context, roomID string) (bool, error) {
	ok, err := s.rooms.remove(ctx, roomID)
	if err != nil || !ok {
		return ok, err
	}

	activeID, err := s.activeRoomID(ctx)
	if err != nil {
		return true, err
	}
	if activeID == roomID {
		return true, s.store.RemoveItem(ctx, domain.KeyActiveChatRoom)
	}
	return true, nil
}

func (s *ChatService) activeRoomID(ctx context.Context) (string, error) {
	raw, found, err := s.store.GetItem(ctx, domain.KeyActiveChatRoom)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", domain.KeyActiveChatRoom, err)
	}
	if !found {
		return "", nil
	}

	var id string
	if err := json.Unmarshal([]byte(raw), &id); err != nil {
		return "", fmt.Errorf("decode %s: %w", domain.KeyActiveChatRoom, err)
	}
	return id, nil
}

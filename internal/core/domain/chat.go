package domain

import "time"

type ChatMessage struct {
	ID        string    `json:"id"`
	Sender    string    `json:"sender"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

type ChatRoom struct {
	ID           string        `json:"id"`
	Name         string        `json:"name"`
	Participants []string      `json:"participants"`
	Messages     []ChatMessage `json:"messages"`
}

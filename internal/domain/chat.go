package domain

import "time"

// ChatSummary is one conversation in the admin moderation list.
type ChatSummary struct {
	ID           string    `json:"_id"`
	Participants []Party   `json:"participants"`
	LastMessage  string    `json:"lastMessage"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// ChatMessage is a single message in a conversation.
type ChatMessage struct {
	ID       string    `json:"_id"`
	ChatID   string    `json:"chatId"`
	SenderID string    `json:"senderId"`
	Content  string    `json:"content"`
	SentAt   time.Time `json:"sentAt"`
}

// Chat is one conversation with its messages.
type Chat struct {
	ID           string        `json:"_id"`
	Participants []Party       `json:"participants"`
	Messages     []ChatMessage `json:"messages"`
}

// TypingEvent is the user_typing socket event payload.
type TypingEvent struct {
	ChatID string `json:"chatId"`
	UserID string `json:"userId"`
	Typing bool   `json:"typing"`
}

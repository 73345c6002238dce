package client

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/odlemon/khaya-portal-sub000/internal/domain"
	"github.com/odlemon/khaya-portal-sub000/internal/infra/backend"
)

// ChatClient covers the REST side of chat; live delivery goes through
// the websocket connection in internal/chat.
type ChatClient struct {
	backend *backend.Client
	logger  *zap.Logger
}

func NewChatClient(b *backend.Client, logger *zap.Logger) *ChatClient {
	return &ChatClient{backend: b, logger: logger}
}

func (c *ChatClient) ListChats(ctx context.Context) ([]domain.ChatSummary, error) {
	ctx, span := tracer.Start(ctx, "ChatClient.ListChats")
	defer span.End()

	var chats []domain.ChatSummary
	if err := c.backend.Get(ctx, "/chat/admin/all-chats", &chats); err != nil {
		return nil, err
	}
	return chats, nil
}

func (c *ChatClient) GetChat(ctx context.Context, id string) (*domain.Chat, error) {
	ctx, span := tracer.Start(ctx, "ChatClient.GetChat")
	defer span.End()

	var chat domain.Chat
	if err := c.backend.Get(ctx, fmt.Sprintf("/chat/%s", id), &chat); err != nil {
		return nil, err
	}
	return &chat, nil
}

func (c *ChatClient) SendMessage(ctx context.Context, chatID string, in *domain.ChatMessage) (*domain.ChatMessage, error) {
	ctx, span := tracer.Start(ctx, "ChatClient.SendMessage")
	defer span.End()

	var msg domain.ChatMessage
	if err := c.backend.Post(ctx, fmt.Sprintf("/chat/%s/messages", chatID), in, &msg); err != nil {
		c.logger.Warn("chat message send failed", zap.String("chat_id", chatID), zap.Error(err))
		return nil, err
	}
	return &msg, nil
}

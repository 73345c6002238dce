package service

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.uber.org/zap"

	"github.com/odlemon/khaya-portal-sub000/internal/domain"
	"github.com/odlemon/khaya-portal-sub000/internal/port"
)

var chatTracer = otel.Tracer("service/chat")

// ChatRoom joins and leaves conversation rooms on the realtime socket.
type ChatRoom interface {
	JoinChat(chatID string) error
	LeaveChat(chatID string) error
}

// ChatService moderates conversations. Opening a chat joins its room
// so pushed messages arrive while the moderator reads it.
type ChatService struct {
	api    port.ChatAPI
	room   ChatRoom
	logger *zap.Logger
}

func NewChatService(api port.ChatAPI, room ChatRoom, logger *zap.Logger) *ChatService {
	return &ChatService{api: api, room: room, logger: logger}
}

func (s *ChatService) ListChats(ctx context.Context) ([]domain.ChatSummary, error) {
	ctx, span := chatTracer.Start(ctx, "ChatService.ListChats")
	defer span.End()
	return s.api.ListChats(ctx)
}

// OpenChat fetches a conversation and joins its socket room. A join
// failure is logged but does not block reading the history.
func (s *ChatService) OpenChat(ctx context.Context, chatID string) (*domain.Chat, error) {
	ctx, span := chatTracer.Start(ctx, "ChatService.OpenChat")
	defer span.End()

	chat, err := s.api.GetChat(ctx, chatID)
	if err != nil {
		return nil, err
	}
	if err := s.room.JoinChat(chatID); err != nil {
		s.logger.Warn("chat room join failed", zap.String("chat_id", chatID), zap.Error(err))
	}
	return chat, nil
}

// CloseChat leaves the conversation's socket room.
func (s *ChatService) CloseChat(chatID string) {
	if err := s.room.LeaveChat(chatID); err != nil {
		s.logger.Debug("chat room leave failed", zap.String("chat_id", chatID), zap.Error(err))
	}
}

func (s *ChatService) SendMessage(ctx context.Context, chatID, content string) (*domain.ChatMessage, error) {
	ctx, span := chatTracer.Start(ctx, "ChatService.SendMessage")
	defer span.End()

	if content == "" {
		return nil, &domain.ErrValidation{Field: "content", Message: "message content is required"}
	}
	return s.api.SendMessage(ctx, chatID, &domain.ChatMessage{ChatID: chatID, Content: content})
}

package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"meditranslate-be/internal/entity"
	"meditranslate-be/internal/pkg/logger"
	"meditranslate-be/internal/repository/specification"
	"meditranslate-be/internal/repository/unitofwork"
	"meditranslate-be/pkg/events"
	"meditranslate-be/pkg/nats"
	"meditranslate-be/pkg/translator"

	"github.com/google/uuid"
)

// ErrEmptyConversation is returned when a summary is requested for a
// conversation with no messages. The text is the client-facing error.
var ErrEmptyConversation = errors.New("Conversation is empty. Send a message first!")

type ISummaryService interface {
	// Summarize produces a clinical summary from the stored transcript. The
	// result is returned to the caller only and never persisted.
	Summarize(ctx context.Context, conversationId uuid.UUID) (string, error)
}

type SummaryService struct {
	uowFactory    unitofwork.RepositoryFactory
	gateway       translator.TranslationGateway
	natsPublisher *nats.Publisher
	logger        logger.ILogger
}

func NewSummaryService(
	uowFactory unitofwork.RepositoryFactory,
	gateway translator.TranslationGateway,
	natsPublisher *nats.Publisher,
	logger logger.ILogger,
) ISummaryService {
	return &SummaryService{
		uowFactory:    uowFactory,
		gateway:       gateway,
		natsPublisher: natsPublisher,
		logger:        logger,
	}
}

func (s *SummaryService) Summarize(ctx context.Context, conversationId uuid.UUID) (string, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	messages, err := uow.MessageRepository().FindAll(ctx,
		specification.ByConversationID{ConversationID: conversationId},
		specification.OrderBy{Field: "created_at"},
	)
	if err != nil {
		return "", err
	}

	if len(messages) == 0 {
		return "", ErrEmptyConversation
	}

	transcript := BuildTranscript(messages)

	summary, err := s.gateway.Summarize(ctx, transcript)
	if err != nil {
		s.logger.Error("Summary", "Summary generation failed", map[string]interface{}{
			"conversation_id": conversationId,
			"error":           err.Error(),
		})
		return "", err
	}

	if s.natsPublisher != nil {
		event := events.BaseEvent{
			Type: events.TypeSummaryGenerated,
			Data: map[string]interface{}{
				"conversation_id": conversationId.String(),
				"message_count":   len(messages),
			},
			OccurredAt: time.Now(),
		}
		if err := s.natsPublisher.Publish(ctx, event); err != nil {
			s.logger.Warn("Summary", "Audit event publish failed", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}

	return summary, nil
}

// BuildTranscript renders messages as "ROLE: original text" lines in stored
// order. Translations are deliberately excluded so the scribe works from what
// was actually said.
func BuildTranscript(messages []*entity.Message) string {
	lines := make([]string, len(messages))
	for i, m := range messages {
		lines[i] = strings.ToUpper(m.Role) + ": " + m.OriginalText
	}
	return strings.Join(lines, "\n")
}

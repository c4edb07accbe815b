package service

import (
	"context"

	"meditranslate-be/internal/constant"
	"meditranslate-be/internal/dto"
	"meditranslate-be/internal/entity"
	"meditranslate-be/internal/pkg/logger"
	"meditranslate-be/internal/repository/memory"
	"meditranslate-be/internal/repository/specification"
	"meditranslate-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

type ISessionService interface {
	// Resolve returns the conversation a device should show, creating a fresh
	// one when neither the explicit id nor the remembered pointer is valid.
	Resolve(ctx context.Context, req *dto.ResolveSessionRequest) (*dto.ResolveSessionResponse, error)
}

type SessionService struct {
	uowFactory unitofwork.RepositoryFactory
	sessions   *memory.DeviceSessionRepository
	logger     logger.ILogger
}

func NewSessionService(
	uowFactory unitofwork.RepositoryFactory,
	sessions *memory.DeviceSessionRepository,
	logger logger.ILogger,
) ISessionService {
	return &SessionService{
		uowFactory: uowFactory,
		sessions:   sessions,
		logger:     logger,
	}
}

func (s *SessionService) Resolve(ctx context.Context, req *dto.ResolveSessionRequest) (*dto.ResolveSessionResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	convRepo := uow.ConversationRepository()

	// Explicit selection wins over the remembered pointer.
	var candidate uuid.UUID
	if req.ConversationId != nil {
		candidate = *req.ConversationId
	} else if remembered, ok := s.sessions.Get(req.DeviceId); ok {
		candidate = remembered
	}

	var conversation *entity.Conversation
	if candidate != uuid.Nil {
		found, err := convRepo.FindOne(ctx, specification.ByID{ID: candidate})
		if err != nil {
			// A lookup failure is treated the same as a stale pointer: fall
			// through and start over rather than strand the device.
			s.logger.Warn("Session", "Conversation lookup failed, creating a new one", map[string]interface{}{
				"conversation_id": candidate,
				"error":           err.Error(),
			})
		}
		conversation = found
	}

	created := false
	if conversation == nil {
		conversation = &entity.Conversation{
			Title: constant.NewConversationTitle,
		}
		if err := convRepo.Create(ctx, conversation); err != nil {
			return nil, err
		}
		created = true
		s.logger.Info("Session", "Conversation created", map[string]interface{}{
			"conversation_id": conversation.Id,
			"device_id":       req.DeviceId,
		})
	}

	s.sessions.Save(req.DeviceId, conversation.Id)

	messages, err := uow.MessageRepository().FindAll(ctx,
		specification.ByConversationID{ConversationID: conversation.Id},
		specification.OrderBy{Field: "created_at"},
	)
	if err != nil {
		return nil, err
	}

	history := make([]*dto.MessageResponse, len(messages))
	for i, m := range messages {
		history[i] = messageToResponse(m)
	}

	return &dto.ResolveSessionResponse{
		ConversationId: conversation.Id,
		Title:          conversation.Title,
		CreatedAt:      conversation.CreatedAt,
		Created:        created,
		Messages:       history,
	}, nil
}

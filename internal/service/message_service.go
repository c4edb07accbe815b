package service

import (
	"context"
	"time"

	"meditranslate-be/internal/constant"
	"meditranslate-be/internal/dto"
	"meditranslate-be/internal/entity"
	"meditranslate-be/internal/pkg/logger"
	"meditranslate-be/internal/repository/memory"
	"meditranslate-be/internal/repository/specification"
	"meditranslate-be/internal/repository/unitofwork"
	"meditranslate-be/pkg/events"
	"meditranslate-be/pkg/nats"
	"meditranslate-be/pkg/storage"
	"meditranslate-be/pkg/timeline"
	"meditranslate-be/pkg/translator"

	"github.com/google/uuid"
)

type IMessageService interface {
	// SendText runs the optimistic pipeline: placeholder first, then the
	// translation call, then the durable write. The returned temp id lets the
	// caller correlate the later settled event with its placeholder.
	SendText(ctx context.Context, req *dto.SendMessageRequest) (*dto.SendMessageResponse, error)

	// SendAudio stores the blob before anything else, then transcribes,
	// translates and persists in one pass. There is no optimistic phase.
	SendAudio(ctx context.Context, req *dto.SendAudioRequest) (*dto.SendAudioResponse, error)

	History(ctx context.Context, conversationId uuid.UUID) ([]*dto.MessageResponse, error)
}

type MessageService struct {
	uowFactory    unitofwork.RepositoryFactory
	timelines     *memory.TimelineRepository
	gateway       translator.TranslationGateway
	blobs         storage.BlobStore
	publisher     IPublisherService
	natsPublisher *nats.Publisher // nil when the audit bus is not configured
	topicName     string
	logger        logger.ILogger
}

func NewMessageService(
	uowFactory unitofwork.RepositoryFactory,
	timelines *memory.TimelineRepository,
	gateway translator.TranslationGateway,
	blobs storage.BlobStore,
	publisher IPublisherService,
	natsPublisher *nats.Publisher,
	topicName string,
	logger logger.ILogger,
) IMessageService {
	return &MessageService{
		uowFactory:    uowFactory,
		timelines:     timelines,
		gateway:       gateway,
		blobs:         blobs,
		publisher:     publisher,
		natsPublisher: natsPublisher,
		topicName:     topicName,
		logger:        logger,
	}
}

func (s *MessageService) SendText(ctx context.Context, req *dto.SendMessageRequest) (*dto.SendMessageResponse, error) {
	tl := s.timelines.GetOrCreate(req.ConversationId)

	// Phase 1: the placeholder appears before any network call.
	placeholder := constant.TranslatingPlaceholder
	rec := timeline.Record{
		ConversationId: req.ConversationId,
		Role:           req.Role,
		OriginalText:   req.Text,
		TranslatedText: &placeholder,
		TargetLang:     req.TargetLang,
		CreatedAt:      time.Now(),
	}
	tempId := tl.AppendOptimistic(rec)
	rec.Id = tempId

	s.publishPipelineEvent(dto.PipelineEventMessage{
		Type:           dto.PipelineEventOptimistic,
		ConversationId: req.ConversationId,
		TempId:         tempId,
		Entry: timeline.Entry{
			TempId: tempId,
			State:  constant.TimelineStateOptimistic,
			Record: rec,
		},
	})

	// Phase 2: translation. On failure the placeholder stays in the sequence
	// as a failed entry; nothing reaches the database.
	tl.MarkReconciling(tempId)

	translated, err := s.gateway.Translate(ctx, req.Text, req.TargetLang)
	if err != nil {
		s.failEntry(tl, req.ConversationId, tempId, rec, "Translation failed", err)
		return nil, err
	}

	// Phase 3: durable write, then replace the placeholder in place.
	msg := &entity.Message{
		ConversationId: req.ConversationId,
		Role:           req.Role,
		OriginalText:   req.Text,
		TranslatedText: &translated,
		TargetLang:     req.TargetLang,
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		s.failEntry(tl, req.ConversationId, tempId, rec, "Transaction begin failed", err)
		return nil, err
	}
	if err := uow.MessageRepository().Create(ctx, msg); err != nil {
		uow.Rollback()
		s.failEntry(tl, req.ConversationId, tempId, rec, "Message persist failed", err)
		return nil, err
	}
	if err := uow.Commit(); err != nil {
		s.failEntry(tl, req.ConversationId, tempId, rec, "Transaction commit failed", err)
		return nil, err
	}

	settled := recordFromEntity(msg)
	tl.Settle(tempId, settled)

	s.publishPipelineEvent(dto.PipelineEventMessage{
		Type:           dto.PipelineEventSettled,
		ConversationId: req.ConversationId,
		TempId:         tempId,
		Entry: timeline.Entry{
			State:  constant.TimelineStateSettled,
			Record: settled,
		},
	})

	s.publishAuditEvent(ctx, events.TypeMessageSettled, map[string]interface{}{
		"message_id":      msg.Id.String(),
		"conversation_id": msg.ConversationId.String(),
		"role":            msg.Role,
		"target_lang":     msg.TargetLang,
	})

	return &dto.SendMessageResponse{
		TempId:  tempId,
		Message: messageToResponse(msg),
	}, nil
}

func (s *MessageService) SendAudio(ctx context.Context, req *dto.SendAudioRequest) (*dto.SendAudioResponse, error) {
	// The blob is saved first so the recording survives a transcription
	// failure and can be replayed later.
	audioUrl, err := s.blobs.SaveAudio(ctx, req.ConversationId.String(), req.Audio)
	if err != nil {
		s.logger.Error("Message", "Audio blob save failed", map[string]interface{}{
			"conversation_id": req.ConversationId,
			"error":           err.Error(),
		})
		return nil, err
	}

	result, err := s.gateway.ProcessAudio(ctx, req.Audio, req.MimeType, req.TargetLang)
	if err != nil {
		s.logger.Error("Message", "Audio processing failed", map[string]interface{}{
			"conversation_id": req.ConversationId,
			"audio_url":       audioUrl,
			"error":           err.Error(),
		})
		return nil, err
	}

	msg := &entity.Message{
		ConversationId: req.ConversationId,
		Role:           req.Role,
		OriginalText:   result.Text,
		TranslatedText: &result.Translation,
		AudioUrl:       &audioUrl,
		TargetLang:     req.TargetLang,
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	if err := uow.MessageRepository().Create(ctx, msg); err != nil {
		uow.Rollback()
		return nil, err
	}
	if err := uow.Commit(); err != nil {
		return nil, err
	}

	// Audio skips the optimistic phase: the entry lands already settled.
	tl := s.timelines.GetOrCreate(req.ConversationId)
	settled := recordFromEntity(msg)
	tl.AppendSettled(settled)

	s.publishPipelineEvent(dto.PipelineEventMessage{
		Type:           dto.PipelineEventSettled,
		ConversationId: req.ConversationId,
		Entry: timeline.Entry{
			State:  constant.TimelineStateSettled,
			Record: settled,
		},
	})

	s.publishAuditEvent(ctx, events.TypeAudioMessageStored, map[string]interface{}{
		"message_id":      msg.Id.String(),
		"conversation_id": msg.ConversationId.String(),
		"role":            msg.Role,
		"audio_url":       audioUrl,
	})

	return &dto.SendAudioResponse{
		Text:        result.Text,
		Translation: result.Translation,
		AudioUrl:    audioUrl,
		Message:     messageToResponse(msg),
	}, nil
}

func (s *MessageService) History(ctx context.Context, conversationId uuid.UUID) ([]*dto.MessageResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	messages, err := uow.MessageRepository().FindAll(ctx,
		specification.ByConversationID{ConversationID: conversationId},
		specification.OrderBy{Field: "created_at"},
	)
	if err != nil {
		return nil, err
	}

	responses := make([]*dto.MessageResponse, len(messages))
	for i, m := range messages {
		responses[i] = messageToResponse(m)
	}
	return responses, nil
}

// failEntry marks a placeholder failed and notifies subscribers. The entry is
// left in the sequence; there is no removal or retry path.
func (s *MessageService) failEntry(tl *timeline.Timeline, conversationId uuid.UUID, tempId string, rec timeline.Record, reason string, cause error) {
	tl.MarkFailed(tempId)
	s.logger.Error("Message", reason, map[string]interface{}{
		"conversation_id": conversationId,
		"temp_id":         tempId,
		"error":           cause.Error(),
	})
	s.publishPipelineEvent(dto.PipelineEventMessage{
		Type:           dto.PipelineEventFailed,
		ConversationId: conversationId,
		TempId:         tempId,
		Entry: timeline.Entry{
			TempId: tempId,
			State:  constant.TimelineStateFailed,
			Record: rec,
		},
	})
}

func (s *MessageService) publishPipelineEvent(event dto.PipelineEventMessage) {
	if err := s.publisher.Publish(s.topicName, event); err != nil {
		s.logger.Warn("Message", "Pipeline event publish failed", map[string]interface{}{
			"type":  event.Type,
			"error": err.Error(),
		})
	}
}

// publishAuditEvent forwards to the NATS bus when one is configured. Failures
// are logged only; the bus is not on the critical path.
func (s *MessageService) publishAuditEvent(ctx context.Context, eventType string, data map[string]interface{}) {
	if s.natsPublisher == nil {
		return
	}
	event := events.BaseEvent{
		Type:       eventType,
		Data:       data,
		OccurredAt: time.Now(),
	}
	if err := s.natsPublisher.Publish(ctx, event); err != nil {
		s.logger.Warn("Message", "Audit event publish failed", map[string]interface{}{
			"type":  eventType,
			"error": err.Error(),
		})
	}
}

func recordFromEntity(m *entity.Message) timeline.Record {
	return timeline.Record{
		Id:             m.Id.String(),
		ConversationId: m.ConversationId,
		Role:           m.Role,
		OriginalText:   m.OriginalText,
		TranslatedText: m.TranslatedText,
		AudioUrl:       m.AudioUrl,
		TargetLang:     m.TargetLang,
		CreatedAt:      m.CreatedAt,
	}
}

func messageToResponse(m *entity.Message) *dto.MessageResponse {
	return &dto.MessageResponse{
		Id:             m.Id,
		ConversationId: m.ConversationId,
		Role:           m.Role,
		OriginalText:   m.OriginalText,
		TranslatedText: m.TranslatedText,
		AudioUrl:       m.AudioUrl,
		TargetLang:     m.TargetLang,
		CreatedAt:      m.CreatedAt,
	}
}

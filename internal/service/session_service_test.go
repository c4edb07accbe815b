package service

import (
	"context"
	"testing"
	"time"

	"meditranslate-be/internal/constant"
	"meditranslate-be/internal/dto"
	"meditranslate-be/internal/entity"
	"meditranslate-be/internal/repository/memory"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve_NewDeviceCreatesConversation(t *testing.T) {
	factory := newFakeUowFactory()
	sessions := memory.NewDeviceSessionRepository()
	svc := NewSessionService(factory, sessions, noopLogger{})

	result, err := svc.Resolve(context.Background(), &dto.ResolveSessionRequest{
		DeviceId: "device-1",
	})

	require.NoError(t, err)
	assert.True(t, result.Created)
	assert.Equal(t, constant.NewConversationTitle, result.Title)
	assert.NotEqual(t, uuid.Nil, result.ConversationId)
	assert.Empty(t, result.Messages)

	// The device pointer must now reference the fresh conversation.
	remembered, ok := sessions.Get("device-1")
	require.True(t, ok)
	assert.Equal(t, result.ConversationId, remembered)
}

func TestResolve_RememberedConversationIsReused(t *testing.T) {
	factory := newFakeUowFactory()
	sessions := memory.NewDeviceSessionRepository()
	svc := NewSessionService(factory, sessions, noopLogger{})

	first, err := svc.Resolve(context.Background(), &dto.ResolveSessionRequest{DeviceId: "device-1"})
	require.NoError(t, err)

	second, err := svc.Resolve(context.Background(), &dto.ResolveSessionRequest{DeviceId: "device-1"})
	require.NoError(t, err)

	assert.False(t, second.Created)
	assert.Equal(t, first.ConversationId, second.ConversationId)
	assert.Equal(t, 1, factory.uow.convRepo.createCalls)
}

func TestResolve_StalePointerFallsBackToCreate(t *testing.T) {
	factory := newFakeUowFactory()
	sessions := memory.NewDeviceSessionRepository()
	svc := NewSessionService(factory, sessions, noopLogger{})

	// Pointer to a conversation that no longer exists.
	stale := uuid.New()
	sessions.Save("device-1", stale)

	result, err := svc.Resolve(context.Background(), &dto.ResolveSessionRequest{DeviceId: "device-1"})

	require.NoError(t, err)
	assert.True(t, result.Created)
	assert.NotEqual(t, stale, result.ConversationId)
	assert.Equal(t, 1, factory.uow.convRepo.createCalls)

	// The stale pointer is overwritten, not left dangling.
	remembered, ok := sessions.Get("device-1")
	require.True(t, ok)
	assert.Equal(t, result.ConversationId, remembered)
}

func TestResolve_ExplicitIdWinsOverRememberedPointer(t *testing.T) {
	factory := newFakeUowFactory()
	sessions := memory.NewDeviceSessionRepository()
	svc := NewSessionService(factory, sessions, noopLogger{})

	target := &entity.Conversation{Title: "Follow-up"}
	require.NoError(t, factory.uow.convRepo.Create(context.Background(), target))

	other := &entity.Conversation{Title: constant.NewConversationTitle}
	require.NoError(t, factory.uow.convRepo.Create(context.Background(), other))
	sessions.Save("device-1", other.Id)

	result, err := svc.Resolve(context.Background(), &dto.ResolveSessionRequest{
		DeviceId:       "device-1",
		ConversationId: &target.Id,
	})

	require.NoError(t, err)
	assert.False(t, result.Created)
	assert.Equal(t, target.Id, result.ConversationId)
	assert.Equal(t, "Follow-up", result.Title)

	remembered, _ := sessions.Get("device-1")
	assert.Equal(t, target.Id, remembered)
}

func TestResolve_HistoryIsReturnedInStoredOrder(t *testing.T) {
	factory := newFakeUowFactory()
	sessions := memory.NewDeviceSessionRepository()
	svc := NewSessionService(factory, sessions, noopLogger{})

	conv := &entity.Conversation{Title: constant.NewConversationTitle}
	require.NoError(t, factory.uow.convRepo.Create(context.Background(), conv))

	translated := "Hola"
	factory.uow.msgRepo.messages = []*entity.Message{
		{
			Id:             uuid.New(),
			ConversationId: conv.Id,
			Role:           constant.RoleDoctor,
			OriginalText:   "Hello",
			TranslatedText: &translated,
			TargetLang:     "Spanish",
			CreatedAt:      time.Now(),
		},
	}

	result, err := svc.Resolve(context.Background(), &dto.ResolveSessionRequest{
		DeviceId:       "device-1",
		ConversationId: &conv.Id,
	})

	require.NoError(t, err)
	require.Len(t, result.Messages, 1)
	assert.Equal(t, "Hello", result.Messages[0].OriginalText)
	assert.Equal(t, constant.RoleDoctor, result.Messages[0].Role)
}

package service

import (
	"context"
	"errors"
	"testing"

	"meditranslate-be/internal/constant"
	"meditranslate-be/internal/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildTranscript(t *testing.T) {
	translated := "¿Dónde le duele?"
	messages := []*entity.Message{
		{Role: constant.RoleDoctor, OriginalText: "Where does it hurt?", TranslatedText: &translated},
		{Role: constant.RolePatient, OriginalText: "Me duele el pecho"},
	}

	transcript := BuildTranscript(messages)

	assert.Equal(t, "DOCTOR: Where does it hurt?\nPATIENT: Me duele el pecho", transcript)
	// Only the original text reaches the scribe, never the translation.
	assert.NotContains(t, transcript, translated)
}

func TestSummarize_EmptyConversation(t *testing.T) {
	factory := newFakeUowFactory()
	gateway := &fakeGateway{
		summarizeFn: func(ctx context.Context, transcript string) (string, error) {
			t.Fatal("gateway must not be called for an empty conversation")
			return "", nil
		},
	}
	svc := NewSummaryService(factory, gateway, nil, noopLogger{})

	_, err := svc.Summarize(context.Background(), uuid.New())

	require.ErrorIs(t, err, ErrEmptyConversation)
	assert.Equal(t, "Conversation is empty. Send a message first!", err.Error())
}

func TestSummarize_PassesTranscriptToGateway(t *testing.T) {
	factory := newFakeUowFactory()
	conversationId := uuid.New()
	factory.uow.msgRepo.messages = []*entity.Message{
		{ConversationId: conversationId, Role: constant.RoleDoctor, OriginalText: "How long have you had the fever?"},
		{ConversationId: conversationId, Role: constant.RolePatient, OriginalText: "Three days"},
	}

	var captured string
	gateway := &fakeGateway{
		summarizeFn: func(ctx context.Context, transcript string) (string, error) {
			captured = transcript
			return "## Chief Complaint\nFever", nil
		},
	}
	svc := NewSummaryService(factory, gateway, nil, noopLogger{})

	summary, err := svc.Summarize(context.Background(), conversationId)

	require.NoError(t, err)
	assert.Equal(t, "## Chief Complaint\nFever", summary)
	assert.Equal(t, "DOCTOR: How long have you had the fever?\nPATIENT: Three days", captured)
}

func TestSummarize_GatewayFailurePropagates(t *testing.T) {
	factory := newFakeUowFactory()
	conversationId := uuid.New()
	factory.uow.msgRepo.messages = []*entity.Message{
		{ConversationId: conversationId, Role: constant.RolePatient, OriginalText: "Hello"},
	}

	boom := errors.New("model overloaded")
	gateway := &fakeGateway{
		summarizeFn: func(ctx context.Context, transcript string) (string, error) {
			return "", boom
		},
	}
	svc := NewSummaryService(factory, gateway, nil, noopLogger{})

	_, err := svc.Summarize(context.Background(), conversationId)

	require.ErrorIs(t, err, boom)
}

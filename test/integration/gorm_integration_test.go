package integration

import (
	"context"
	"log"
	"os"
	"testing"

	"meditranslate-be/internal/constant"
	"meditranslate-be/internal/entity"
	"meditranslate-be/internal/repository/specification"
	"meditranslate-be/internal/repository/unitofwork"
	"meditranslate-be/pkg/database"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
)

func TestGormConnection(t *testing.T) {
	// Load .env from root
	err := godotenv.Load("../../.env")
	if err != nil {
		log.Println("No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		t.Skip("Skipping integration test: DB_CONNECTION_STRING not set")
	}

	gormDB, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		t.Fatalf("Failed to connect to DB: %v", err)
	}

	// Verify Wiring
	uowFactory := unitofwork.NewRepositoryFactory(gormDB)
	uow := uowFactory.NewUnitOfWork(context.Background())

	assert.NotNil(t, uow.ConversationRepository())
	assert.NotNil(t, uow.MessageRepository())

	// Basic Ping
	sqlDB, _ := gormDB.DB()
	err = sqlDB.Ping()
	assert.NoError(t, err)
	t.Log("Successfully connected to DB and initialized UnitOfWork Factory")

	t.Run("Check Conversation Repository", func(t *testing.T) {
		count, err := uow.ConversationRepository().Count(context.Background())
		assert.NoError(t, err)
		t.Logf("Conversation count: %d", count)
	})

	t.Run("Check Transactional Message Write", func(t *testing.T) {
		txUow := uowFactory.NewUnitOfWork(context.Background())
		if err := txUow.Begin(context.Background()); err != nil {
			t.Fatalf("Failed to begin transaction: %v", err)
		}
		defer txUow.Rollback()

		conversation := &entity.Conversation{
			Title: constant.NewConversationTitle,
		}
		err := txUow.ConversationRepository().Create(context.Background(), conversation)
		assert.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, conversation.Id)

		translated := "Hola, integración"
		message := &entity.Message{
			ConversationId: conversation.Id,
			Role:           constant.RoleDoctor,
			OriginalText:   "Hello, integration",
			TranslatedText: &translated,
			TargetLang:     "Spanish",
		}
		err = txUow.MessageRepository().Create(context.Background(), message)
		assert.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, message.Id)

		// Rolled back by the deferred call, nothing persists.
	})

	t.Run("Check Case-Insensitive Search", func(t *testing.T) {
		txUow := uowFactory.NewUnitOfWork(context.Background())
		if err := txUow.Begin(context.Background()); err != nil {
			t.Fatalf("Failed to begin transaction: %v", err)
		}
		defer txUow.Rollback()

		conversation := &entity.Conversation{Title: constant.NewConversationTitle}
		assert.NoError(t, txUow.ConversationRepository().Create(context.Background(), conversation))

		marker := "XIntegrationMarkerX-" + uuid.NewString()
		message := &entity.Message{
			ConversationId: conversation.Id,
			Role:           constant.RolePatient,
			OriginalText:   "Some text with " + marker + " inside",
			TargetLang:     "English",
		}
		assert.NoError(t, txUow.MessageRepository().Create(context.Background(), message))

		// ILIKE match with the query lowercased
		hits, err := txUow.MessageRepository().Search(context.Background(),
			specification.OriginalTextContains{Query: "xintegrationmarkerx"},
			specification.OrderBy{Field: "created_at", Desc: true},
		)
		assert.NoError(t, err)
		if assert.NotEmpty(t, hits) {
			assert.Equal(t, constant.NewConversationTitle, hits[0].ConversationTitle)
		}
	})
}

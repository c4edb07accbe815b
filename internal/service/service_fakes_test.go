package service

import (
	"context"
	"time"

	"meditranslate-be/internal/entity"
	"meditranslate-be/internal/repository/contract"
	"meditranslate-be/internal/repository/specification"
	"meditranslate-be/internal/repository/unitofwork"
	"meditranslate-be/pkg/translator"

	"github.com/google/uuid"
)

// In-memory repository fakes. Specifications are interpreted by type instead
// of being applied to a query builder.

type fakeConversationRepo struct {
	conversations map[uuid.UUID]*entity.Conversation
	createCalls   int
	createErr     error
	findErr       error
}

func newFakeConversationRepo() *fakeConversationRepo {
	return &fakeConversationRepo{
		conversations: make(map[uuid.UUID]*entity.Conversation),
	}
}

func (f *fakeConversationRepo) Create(ctx context.Context, conversation *entity.Conversation) error {
	f.createCalls++
	if f.createErr != nil {
		return f.createErr
	}
	conversation.Id = uuid.New()
	conversation.CreatedAt = time.Now()
	f.conversations[conversation.Id] = conversation
	return nil
}

func (f *fakeConversationRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Conversation, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	for _, spec := range specs {
		if byID, ok := spec.(specification.ByID); ok {
			return f.conversations[byID.ID], nil
		}
	}
	return nil, nil
}

func (f *fakeConversationRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Conversation, error) {
	out := make([]*entity.Conversation, 0, len(f.conversations))
	for _, c := range f.conversations {
		out = append(out, c)
	}
	return out, nil
}

func (f *fakeConversationRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	return int64(len(f.conversations)), nil
}

type fakeMessageRepo struct {
	messages  []*entity.Message
	hits      []*entity.SearchHit
	createErr error
	findErr   error
}

func (f *fakeMessageRepo) Create(ctx context.Context, message *entity.Message) error {
	if f.createErr != nil {
		return f.createErr
	}
	message.Id = uuid.New()
	message.CreatedAt = time.Now()
	f.messages = append(f.messages, message)
	return nil
}

func (f *fakeMessageRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Message, error) {
	if len(f.messages) == 0 {
		return nil, nil
	}
	return f.messages[0], nil
}

func (f *fakeMessageRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Message, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	for _, spec := range specs {
		if byConv, ok := spec.(specification.ByConversationID); ok {
			var out []*entity.Message
			for _, m := range f.messages {
				if m.ConversationId == byConv.ConversationID {
					out = append(out, m)
				}
			}
			return out, nil
		}
	}
	return f.messages, nil
}

func (f *fakeMessageRepo) Search(ctx context.Context, specs ...specification.Specification) ([]*entity.SearchHit, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	return f.hits, nil
}

func (f *fakeMessageRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	return int64(len(f.messages)), nil
}

type fakeUnitOfWork struct {
	convRepo *fakeConversationRepo
	msgRepo  *fakeMessageRepo

	begins    int
	commits   int
	rollbacks int
}

func (f *fakeUnitOfWork) Begin(ctx context.Context) error { f.begins++; return nil }
func (f *fakeUnitOfWork) Commit() error                   { f.commits++; return nil }
func (f *fakeUnitOfWork) Rollback() error                 { f.rollbacks++; return nil }

func (f *fakeUnitOfWork) ConversationRepository() contract.ConversationRepository {
	return f.convRepo
}

func (f *fakeUnitOfWork) MessageRepository() contract.MessageRepository {
	return f.msgRepo
}

type fakeUowFactory struct {
	uow *fakeUnitOfWork
}

func newFakeUowFactory() *fakeUowFactory {
	return &fakeUowFactory{
		uow: &fakeUnitOfWork{
			convRepo: newFakeConversationRepo(),
			msgRepo:  &fakeMessageRepo{},
		},
	}
}

func (f *fakeUowFactory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork {
	return f.uow
}

type fakeGateway struct {
	translateFn    func(ctx context.Context, text, targetLang string) (string, error)
	processAudioFn func(ctx context.Context, audio []byte, mimeType, targetLang string) (*translator.AudioResult, error)
	summarizeFn    func(ctx context.Context, transcript string) (string, error)
}

func (f *fakeGateway) Translate(ctx context.Context, text, targetLang string) (string, error) {
	return f.translateFn(ctx, text, targetLang)
}

func (f *fakeGateway) ProcessAudio(ctx context.Context, audio []byte, mimeType, targetLang string) (*translator.AudioResult, error) {
	return f.processAudioFn(ctx, audio, mimeType, targetLang)
}

func (f *fakeGateway) Summarize(ctx context.Context, transcript string) (string, error) {
	return f.summarizeFn(ctx, transcript)
}

type publishedEvent struct {
	Topic   string
	Payload interface{}
}

type fakePublisher struct {
	events []publishedEvent
}

func (f *fakePublisher) Publish(topicName string, payload interface{}) error {
	f.events = append(f.events, publishedEvent{Topic: topicName, Payload: payload})
	return nil
}

type fakeBlobStore struct {
	saved   [][]byte
	url     string
	saveErr error
}

func (f *fakeBlobStore) SaveAudio(ctx context.Context, conversationId string, data []byte) (string, error) {
	if f.saveErr != nil {
		return "", f.saveErr
	}
	f.saved = append(f.saved, data)
	return f.url, nil
}

type noopLogger struct{}

func (noopLogger) Debug(module, message string, details map[string]interface{}) {}
func (noopLogger) Info(module, message string, details map[string]interface{})  {}
func (noopLogger) Warn(module, message string, details map[string]interface{})  {}
func (noopLogger) Error(module, message string, details map[string]interface{}) {}
func (noopLogger) Sync() error                                                  { return nil }

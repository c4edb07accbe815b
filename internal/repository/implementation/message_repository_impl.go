package implementation

import (
	"context"
	"errors"

	"meditranslate-be/internal/entity"
	"meditranslate-be/internal/mapper"
	"meditranslate-be/internal/model"
	"meditranslate-be/internal/repository/contract"
	"meditranslate-be/internal/repository/specification"

	"gorm.io/gorm"
)

type MessageRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ConversationMapper
}

func NewMessageRepository(db *gorm.DB) contract.MessageRepository {
	return &MessageRepositoryImpl{
		db:     db,
		mapper: mapper.NewConversationMapper(),
	}
}

func (r *MessageRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *MessageRepositoryImpl) Create(ctx context.Context, message *entity.Message) error {
	m := r.mapper.MessageToModel(message)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*message = *r.mapper.MessageToEntity(m)
	return nil
}

func (r *MessageRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Message, error) {
	var m model.Message
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.MessageToEntity(&m), nil
}

func (r *MessageRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Message, error) {
	var models []*model.Message
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	entities := make([]*entity.Message, len(models))
	for i, m := range models {
		entities[i] = r.mapper.MessageToEntity(m)
	}
	return entities, nil
}

// Search preloads the parent conversation so the caller can render the
// conversation title and date next to each matching message.
func (r *MessageRepositoryImpl) Search(ctx context.Context, specs ...specification.Specification) ([]*entity.SearchHit, error) {
	var models []*model.Message
	query := r.applySpecifications(r.db.WithContext(ctx).Preload("Conversation"), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}

	hits := make([]*entity.SearchHit, len(models))
	for i, m := range models {
		hit := &entity.SearchHit{
			Message: *r.mapper.MessageToEntity(m),
		}
		if m.Conversation != nil {
			hit.ConversationTitle = m.Conversation.Title
			hit.ConversationCreatedAt = m.Conversation.CreatedAt
		}
		hits[i] = hit
	}
	return hits, nil
}

func (r *MessageRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.Message{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

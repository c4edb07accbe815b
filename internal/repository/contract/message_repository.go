package contract

import (
	"context"

	"meditranslate-be/internal/entity"
	"meditranslate-be/internal/repository/specification"
)

// MessageRepository intentionally exposes no update or delete: a message is
// immutable once persisted.
type MessageRepository interface {
	Create(ctx context.Context, message *entity.Message) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Message, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Message, error)
	// Search returns messages with their conversation metadata preloaded.
	Search(ctx context.Context, specs ...specification.Specification) ([]*entity.SearchHit, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}

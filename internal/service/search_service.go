package service

import (
	"context"

	"meditranslate-be/internal/dto"
	"meditranslate-be/internal/repository/specification"
	"meditranslate-be/internal/repository/unitofwork"
)

type ISearchService interface {
	// Search matches a substring of the original text across every
	// conversation, newest first.
	Search(ctx context.Context, query string) ([]*dto.SearchResultResponse, error)
}

type SearchService struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewSearchService(uowFactory unitofwork.RepositoryFactory) ISearchService {
	return &SearchService{
		uowFactory: uowFactory,
	}
}

func (s *SearchService) Search(ctx context.Context, query string) ([]*dto.SearchResultResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	hits, err := uow.MessageRepository().Search(ctx,
		specification.OriginalTextContains{Query: query},
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}

	results := make([]*dto.SearchResultResponse, len(hits))
	for i, hit := range hits {
		results[i] = &dto.SearchResultResponse{
			Id:             hit.Message.Id,
			ConversationId: hit.Message.ConversationId,
			Role:           hit.Message.Role,
			OriginalText:   hit.Message.OriginalText,
			TranslatedText: hit.Message.TranslatedText,
			AudioUrl:       hit.Message.AudioUrl,
			CreatedAt:      hit.Message.CreatedAt,
			Conversation: dto.SearchConversationMeta{
				Title:     hit.ConversationTitle,
				CreatedAt: hit.ConversationCreatedAt,
			},
		}
	}
	return results, nil
}

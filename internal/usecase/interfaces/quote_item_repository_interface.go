package interfaces

import (
	"context"

	"assistec/internal/domain/entities"
)

// IQuoteItemRepository abstracts DynamoDB persistence for QuoteItem.

type IQuoteItemRepository interface {
	Create(ctx context.Context, it entities.QuoteItem) (entities.QuoteItem, error)
	GetByID(ctx context.Context, id string) (entities.QuoteItem, error)
	ListByQuoteID(ctx context.Context, quoteID string) ([]entities.QuoteItem, error)
	Update(ctx context.Context, it entities.QuoteItem) (entities.QuoteItem, error)
	UpdateApprovalStatusByID(ctx context.Context, id string, status entities.ItemApprovalStatus) (entities.QuoteItem, error)
	SoftDeleteByID(ctx context.Context, id string) (entities.QuoteItem, error)
}

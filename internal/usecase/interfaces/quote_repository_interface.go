package interfaces

import (
	"context"

	"assistec/internal/domain/entities"
)

// IQuoteRepository abstracts DynamoDB persistence for Quote headers.
//
// Conventions shared by all repository ports:
//   - reads filter out soft-deleted rows
//   - "not found" is reported as a zero-value entity with a nil error;
//     use cases translate that into their NotFound errors
//
// NextVersion is a read-latest-then-increment: it is NOT atomic. Two
// concurrent creates against the same service order can observe the same
// latest version and collide. This mirrors the store semantics the system
// was designed against; callers must not assume stronger guarantees.

type IQuoteRepository interface {
	Create(ctx context.Context, q entities.Quote) (entities.Quote, error)
	GetByID(ctx context.Context, id string) (entities.Quote, error)
	ListByServiceOrderID(ctx context.Context, serviceOrderID string) ([]entities.Quote, error)
	GetLatestByServiceOrderID(ctx context.Context, serviceOrderID string) (entities.Quote, error)
	NextVersion(ctx context.Context, serviceOrderID string) (int, error)
	UpdateHeaderByID(ctx context.Context, id string, discountPercent float64, discountJustification, notes string) (entities.Quote, error)
	UpdateAggregatesByID(ctx context.Context, id string, totalParts, totalLabor, totalOverall float64, status entities.QuoteStatus) (entities.Quote, error)
	SoftDeleteByID(ctx context.Context, id string) (entities.Quote, error)
}

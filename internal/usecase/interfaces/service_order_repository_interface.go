package interfaces

import (
	"context"

	"assistec/internal/domain/entities"
)

// IServiceOrderRepository abstracts DynamoDB persistence for ServiceOrder.
//
// The quote engine only needs GetByID (existence check before attaching a
// quote); the remaining operations serve the service-order CRUD endpoints.

type IServiceOrderRepository interface {
	Create(ctx context.Context, so entities.ServiceOrder) (entities.ServiceOrder, error)
	GetByID(ctx context.Context, id string) (entities.ServiceOrder, error)
	UpdateStatusByID(ctx context.Context, id string, status entities.ServiceOrderStatus) (entities.ServiceOrder, error)
}

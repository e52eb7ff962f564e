package interfaces

import (
	"context"

	"assistec/internal/domain/entities"
)

// IProductRepository abstracts DynamoDB persistence for Product.
//
// The item manager only needs GetByID to validate product references.

type IProductRepository interface {
	Create(ctx context.Context, p entities.Product) (entities.Product, error)
	GetByID(ctx context.Context, id string) (entities.Product, error)
}

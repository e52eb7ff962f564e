package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"assistec/internal/domain/entities"
	"assistec/internal/usecase/interfaces"

	"github.com/google/uuid"
)

var (
	ErrProductNotFound      = errors.New("product not found")
	ErrInvalidProductID     = errors.New("invalid product id")
	ErrInvalidProductFields = errors.New("invalid product fields")
)

// CreateProductInput carries the client-settable fields for a stocked part.
type CreateProductInput struct {
	Name          string
	SKU           string
	UnitPrice     float64
	StockQuantity int
}

type IProductUseCase interface {
	Create(ctx context.Context, in CreateProductInput) (entities.Product, error)
	GetByID(ctx context.Context, id string) (entities.Product, error)
}

type ProductUseCase struct {
	repo interfaces.IProductRepository
}

var _ IProductUseCase = (*ProductUseCase)(nil)

func NewProductUseCase(repo interfaces.IProductRepository) *ProductUseCase {
	return &ProductUseCase{repo: repo}
}

func (u *ProductUseCase) Create(ctx context.Context, in CreateProductInput) (entities.Product, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" || in.UnitPrice <= 0 || in.StockQuantity < 0 {
		return entities.Product{}, ErrInvalidProductFields
	}

	now := time.Now().UTC()
	return u.repo.Create(ctx, entities.Product{
		ID:            uuid.NewString(),
		Name:          name,
		SKU:           strings.TrimSpace(in.SKU),
		UnitPrice:     in.UnitPrice,
		StockQuantity: in.StockQuantity,
		CreatedAt:     now,
		UpdatedAt:     now,
	})
}

func (u *ProductUseCase) GetByID(ctx context.Context, id string) (entities.Product, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.Product{}, ErrInvalidProductID
	}

	p, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return entities.Product{}, err
	}
	if p.ID == "" {
		return entities.Product{}, ErrProductNotFound
	}
	return p, nil
}

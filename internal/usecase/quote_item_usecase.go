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
	ErrItemNotFound            = errors.New("quote item not found")
	ErrItemLocked              = errors.New("quote item decision already recorded")
	ErrInvalidItemID           = errors.New("invalid quote item id")
	ErrInvalidItemType         = errors.New("invalid item type")
	ErrInvalidDescription      = errors.New("description must have between 1 and 500 characters")
	ErrInvalidQuantity         = errors.New("quantity must be a positive integer")
	ErrInvalidUnitPrice        = errors.New("unit price must be positive")
	ErrInvalidWarrantyDays     = errors.New("warranty days out of range")
	ErrInvalidStatusTransition = errors.New("invalid approval status transition")
)

const descriptionMaxLen = 500

// CreateQuoteItemInput carries the client-settable fields for a new line item.
// TotalPrice is always derived from Quantity * UnitPrice; WarrantyDays falls
// back to the per-type default when nil.
type CreateQuoteItemInput struct {
	ProductID    string
	ItemType     entities.ItemType
	Description  string
	Quantity     int
	UnitPrice    float64
	WarrantyDays *int
	Notes        string
}

// UpdateQuoteItemInput is a partial-update payload; nil fields are left
// untouched. Setting ProductID to an empty string clears the reference.
type UpdateQuoteItemInput struct {
	ProductID    *string
	ItemType     *entities.ItemType
	Description  *string
	Quantity     *int
	UnitPrice    *float64
	WarrantyDays *int
	Notes        *string
}

// IQuoteItemUseCase exposes the line-item lifecycle: CRUD under the quote
// edit lock, one-shot approval transitions and the aggregation feed used by
// quote recalculation.

type IQuoteItemUseCase interface {
	CreateItem(ctx context.Context, quoteID string, in CreateQuoteItemInput) (entities.QuoteItem, error)
	UpdateItem(ctx context.Context, id string, in UpdateQuoteItemInput) (entities.QuoteItem, error)
	UpdateApprovalStatus(ctx context.Context, id string, status entities.ItemApprovalStatus) (entities.QuoteItem, error)
	DeleteItem(ctx context.Context, id string) error
	CopyItemsToNewVersion(ctx context.Context, sourceQuoteID, targetQuoteID string) ([]entities.QuoteItem, error)
	GetAggregation(ctx context.Context, quoteID string) (Aggregation, error)
	GetByID(ctx context.Context, id string) (entities.QuoteItem, error)
	ListByQuoteID(ctx context.Context, quoteID string) ([]entities.QuoteItem, error)
}

type QuoteItemUseCase struct {
	itemRepo interfaces.IQuoteItemRepository
	products interfaces.IProductRepository
	quotes   *QuoteUseCase
}

var _ IQuoteItemUseCase = (*QuoteItemUseCase)(nil)

func NewQuoteItemUseCase(itemRepo interfaces.IQuoteItemRepository, products interfaces.IProductRepository, quotes *QuoteUseCase) *QuoteItemUseCase {
	return &QuoteItemUseCase{itemRepo: itemRepo, products: products, quotes: quotes}
}

func (u *QuoteItemUseCase) CreateItem(ctx context.Context, quoteID string, in CreateQuoteItemInput) (entities.QuoteItem, error) {
	quoteID = strings.TrimSpace(quoteID)
	if quoteID == "" {
		return entities.QuoteItem{}, ErrInvalidQuoteID
	}

	// Resolving the quote first separates "quote missing" from "quote locked".
	if _, err := u.quotes.GetByID(ctx, quoteID); err != nil {
		return entities.QuoteItem{}, err
	}
	editable, err := u.quotes.CanEdit(ctx, quoteID)
	if err != nil {
		return entities.QuoteItem{}, err
	}
	if !editable {
		return entities.QuoteItem{}, ErrQuoteLocked
	}

	itemType := in.ItemType
	if err := validateItemType(itemType); err != nil {
		return entities.QuoteItem{}, err
	}
	description := strings.TrimSpace(in.Description)
	if err := validateDescription(description); err != nil {
		return entities.QuoteItem{}, err
	}
	if in.Quantity <= 0 {
		return entities.QuoteItem{}, ErrInvalidQuantity
	}
	if in.UnitPrice <= 0 {
		return entities.QuoteItem{}, ErrInvalidUnitPrice
	}

	warrantyDays := defaultWarrantyDays(itemType)
	if in.WarrantyDays != nil {
		warrantyDays = *in.WarrantyDays
	}
	if warrantyDays < 0 || warrantyDays > entities.WarrantyDaysMax {
		return entities.QuoteItem{}, ErrInvalidWarrantyDays
	}

	productID := strings.TrimSpace(in.ProductID)
	if productID != "" {
		if err := u.requireProduct(ctx, productID); err != nil {
			return entities.QuoteItem{}, err
		}
	}

	now := time.Now().UTC()
	item, err := u.itemRepo.Create(ctx, entities.QuoteItem{
		ID:             uuid.NewString(),
		QuoteID:        quoteID,
		ProductID:      productID,
		ItemType:       itemType,
		Description:    description,
		Quantity:       in.Quantity,
		UnitPrice:      in.UnitPrice,
		TotalPrice:     float64(in.Quantity) * in.UnitPrice,
		ApprovalStatus: entities.ItemStatusPending,
		WarrantyDays:   warrantyDays,
		Notes:          in.Notes,
		CreatedAt:      now,
		UpdatedAt:      now,
	})
	if err != nil {
		return entities.QuoteItem{}, err
	}

	if _, err := u.quotes.Recalculate(ctx, quoteID); err != nil {
		return entities.QuoteItem{}, err
	}
	return item, nil
}

func (u *QuoteItemUseCase) UpdateItem(ctx context.Context, id string, in UpdateQuoteItemInput) (entities.QuoteItem, error) {
	item, err := u.getPendingEditable(ctx, id)
	if err != nil {
		return entities.QuoteItem{}, err
	}

	if in.ItemType != nil {
		if err := validateItemType(*in.ItemType); err != nil {
			return entities.QuoteItem{}, err
		}
		item.ItemType = *in.ItemType
	}
	if in.Description != nil {
		description := strings.TrimSpace(*in.Description)
		if err := validateDescription(description); err != nil {
			return entities.QuoteItem{}, err
		}
		item.Description = description
	}
	if in.Quantity != nil {
		if *in.Quantity <= 0 {
			return entities.QuoteItem{}, ErrInvalidQuantity
		}
		item.Quantity = *in.Quantity
	}
	if in.UnitPrice != nil {
		if *in.UnitPrice <= 0 {
			return entities.QuoteItem{}, ErrInvalidUnitPrice
		}
		item.UnitPrice = *in.UnitPrice
	}
	if in.WarrantyDays != nil {
		if *in.WarrantyDays < 0 || *in.WarrantyDays > entities.WarrantyDaysMax {
			return entities.QuoteItem{}, ErrInvalidWarrantyDays
		}
		item.WarrantyDays = *in.WarrantyDays
	}
	if in.ProductID != nil {
		productID := strings.TrimSpace(*in.ProductID)
		if productID != "" {
			if err := u.requireProduct(ctx, productID); err != nil {
				return entities.QuoteItem{}, err
			}
		}
		item.ProductID = productID
	}
	if in.Notes != nil {
		item.Notes = *in.Notes
	}

	// Never trust a stored or submitted total.
	item.TotalPrice = float64(item.Quantity) * item.UnitPrice
	item.UpdatedAt = time.Now().UTC()

	updated, err := u.itemRepo.Update(ctx, item)
	if err != nil {
		return entities.QuoteItem{}, err
	}
	if _, err := u.quotes.Recalculate(ctx, item.QuoteID); err != nil {
		return entities.QuoteItem{}, err
	}
	return updated, nil
}

// UpdateApprovalStatus records the client's decision for a line item. The
// only legal transition is out of pending, exactly once.
func (u *QuoteItemUseCase) UpdateApprovalStatus(ctx context.Context, id string, status entities.ItemApprovalStatus) (entities.QuoteItem, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.QuoteItem{}, ErrInvalidItemID
	}

	switch status {
	case entities.ItemStatusApproved, entities.ItemStatusRejected, entities.ItemStatusClientSuppliesPart:
	default:
		return entities.QuoteItem{}, ErrInvalidStatusTransition
	}

	item, err := u.itemRepo.GetByID(ctx, id)
	if err != nil {
		return entities.QuoteItem{}, err
	}
	if item.ID == "" {
		return entities.QuoteItem{}, ErrItemNotFound
	}
	if item.ApprovalStatus != entities.ItemStatusPending {
		return entities.QuoteItem{}, ErrInvalidStatusTransition
	}

	updated, err := u.itemRepo.UpdateApprovalStatusByID(ctx, item.ID, status)
	if err != nil {
		return entities.QuoteItem{}, err
	}
	if _, err := u.quotes.Recalculate(ctx, item.QuoteID); err != nil {
		return entities.QuoteItem{}, err
	}
	return updated, nil
}

func (u *QuoteItemUseCase) DeleteItem(ctx context.Context, id string) error {
	item, err := u.getPendingEditable(ctx, id)
	if err != nil {
		return err
	}

	if _, err := u.itemRepo.SoftDeleteByID(ctx, item.ID); err != nil {
		return err
	}
	_, err = u.quotes.Recalculate(ctx, item.QuoteID)
	return err
}

func (u *QuoteItemUseCase) CopyItemsToNewVersion(ctx context.Context, sourceQuoteID, targetQuoteID string) ([]entities.QuoteItem, error) {
	sourceQuoteID = strings.TrimSpace(sourceQuoteID)
	targetQuoteID = strings.TrimSpace(targetQuoteID)
	if sourceQuoteID == "" || targetQuoteID == "" {
		return nil, ErrInvalidQuoteID
	}
	return copyQuoteItems(ctx, u.itemRepo, sourceQuoteID, targetQuoteID)
}

func (u *QuoteItemUseCase) GetAggregation(ctx context.Context, quoteID string) (Aggregation, error) {
	quoteID = strings.TrimSpace(quoteID)
	if quoteID == "" {
		return Aggregation{}, ErrInvalidQuoteID
	}

	items, err := u.itemRepo.ListByQuoteID(ctx, quoteID)
	if err != nil {
		return Aggregation{}, err
	}
	return aggregateItems(items), nil
}

func (u *QuoteItemUseCase) GetByID(ctx context.Context, id string) (entities.QuoteItem, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.QuoteItem{}, ErrInvalidItemID
	}

	item, err := u.itemRepo.GetByID(ctx, id)
	if err != nil {
		return entities.QuoteItem{}, err
	}
	if item.ID == "" {
		return entities.QuoteItem{}, ErrItemNotFound
	}
	return item, nil
}

func (u *QuoteItemUseCase) ListByQuoteID(ctx context.Context, quoteID string) ([]entities.QuoteItem, error) {
	quoteID = strings.TrimSpace(quoteID)
	if quoteID == "" {
		return nil, ErrInvalidQuoteID
	}
	return u.itemRepo.ListByQuoteID(ctx, quoteID)
}

// getPendingEditable loads an item and enforces both layers of the edit lock:
// the owning quote must be the latest version and the item itself must still
// be pending.
func (u *QuoteItemUseCase) getPendingEditable(ctx context.Context, id string) (entities.QuoteItem, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.QuoteItem{}, ErrInvalidItemID
	}

	item, err := u.itemRepo.GetByID(ctx, id)
	if err != nil {
		return entities.QuoteItem{}, err
	}
	if item.ID == "" {
		return entities.QuoteItem{}, ErrItemNotFound
	}

	editable, err := u.quotes.CanEdit(ctx, item.QuoteID)
	if err != nil {
		return entities.QuoteItem{}, err
	}
	if !editable {
		return entities.QuoteItem{}, ErrQuoteLocked
	}
	if item.ApprovalStatus != entities.ItemStatusPending {
		return entities.QuoteItem{}, ErrItemLocked
	}
	return item, nil
}

func (u *QuoteItemUseCase) requireProduct(ctx context.Context, productID string) error {
	p, err := u.products.GetByID(ctx, productID)
	if err != nil {
		return err
	}
	if p.ID == "" {
		return ErrProductNotFound
	}
	return nil
}

func validateItemType(t entities.ItemType) error {
	switch t {
	case entities.ItemTypePart, entities.ItemTypeService:
		return nil
	default:
		return ErrInvalidItemType
	}
}

func validateDescription(description string) error {
	if description == "" || len(description) > descriptionMaxLen {
		return ErrInvalidDescription
	}
	return nil
}

func defaultWarrantyDays(t entities.ItemType) int {
	if t == entities.ItemTypeService {
		return entities.WarrantyDaysDefaultService
	}
	return entities.WarrantyDaysDefaultPart
}

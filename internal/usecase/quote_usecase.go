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
	ErrQuoteNotFound                 = errors.New("quote not found")
	ErrQuoteLocked                   = errors.New("quote is not the latest version and cannot be modified")
	ErrInvalidQuoteID                = errors.New("invalid quote id")
	ErrInvalidServiceOrderID         = errors.New("invalid service order id")
	ErrInvalidDiscount               = errors.New("invalid discount percent")
	ErrDiscountJustificationRequired = errors.New("discount justification required")
	ErrDiscountJustificationTooShort = errors.New("discount justification too short")
)

// Discount rule: anything above this percentage needs a written justification
// of at least discountJustificationMinLen characters.
const (
	discountJustificationThreshold = 10.0
	discountJustificationMinLen    = 10
)

// CreateQuoteInput carries the client-settable header fields for a new quote.
// Aggregates and status are always derived, never accepted from a client.
type CreateQuoteInput struct {
	ServiceOrderID        string
	DiscountPercent       float64
	DiscountJustification string
	Notes                 string
}

// UpdateQuoteInput is a partial-update payload; nil fields are left untouched.
type UpdateQuoteInput struct {
	DiscountPercent       *float64
	DiscountJustification *string
	Notes                 *string
}

// IQuoteUseCase exposes the quote header lifecycle: versioned creation,
// header updates, recalculation and the latest-version edit lock.

type IQuoteUseCase interface {
	CreateQuote(ctx context.Context, in CreateQuoteInput) (entities.Quote, error)
	UpdateQuote(ctx context.Context, id string, in UpdateQuoteInput) (entities.Quote, error)
	CreateNewVersion(ctx context.Context, originalID string) (entities.Quote, error)
	DeleteQuote(ctx context.Context, id string) error
	Recalculate(ctx context.Context, quoteID string) (entities.Quote, error)
	CanEdit(ctx context.Context, id string) (bool, error)
	GetByID(ctx context.Context, id string) (entities.Quote, error)
	ListByServiceOrderID(ctx context.Context, serviceOrderID string) ([]entities.Quote, error)
}

type QuoteUseCase struct {
	quoteRepo     interfaces.IQuoteRepository
	itemRepo      interfaces.IQuoteItemRepository
	serviceOrders interfaces.IServiceOrderRepository
}

var _ IQuoteUseCase = (*QuoteUseCase)(nil)

func NewQuoteUseCase(quoteRepo interfaces.IQuoteRepository, itemRepo interfaces.IQuoteItemRepository, serviceOrders interfaces.IServiceOrderRepository) *QuoteUseCase {
	return &QuoteUseCase{quoteRepo: quoteRepo, itemRepo: itemRepo, serviceOrders: serviceOrders}
}

func (u *QuoteUseCase) CreateQuote(ctx context.Context, in CreateQuoteInput) (entities.Quote, error) {
	osID := strings.TrimSpace(in.ServiceOrderID)
	if osID == "" {
		return entities.Quote{}, ErrInvalidServiceOrderID
	}
	if err := validateDiscount(in.DiscountPercent, in.DiscountJustification); err != nil {
		return entities.Quote{}, err
	}

	so, err := u.serviceOrders.GetByID(ctx, osID)
	if err != nil {
		return entities.Quote{}, err
	}
	if so.ID == "" {
		return entities.Quote{}, ErrServiceOrderNotFound
	}

	// Read-latest-then-insert; see IQuoteRepository.NextVersion for the
	// concurrency caveat.
	version, err := u.quoteRepo.NextVersion(ctx, osID)
	if err != nil {
		return entities.Quote{}, err
	}

	now := time.Now().UTC()
	q := entities.Quote{
		ID:                    uuid.NewString(),
		ServiceOrderID:        osID,
		Version:               version,
		Status:                entities.QuoteStatusPending,
		DiscountPercent:       in.DiscountPercent,
		DiscountJustification: strings.TrimSpace(in.DiscountJustification),
		Notes:                 in.Notes,
		CreatedAt:             now,
		UpdatedAt:             now,
	}
	return u.quoteRepo.Create(ctx, q)
}

func (u *QuoteUseCase) UpdateQuote(ctx context.Context, id string, in UpdateQuoteInput) (entities.Quote, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.Quote{}, ErrInvalidQuoteID
	}

	q, err := u.quoteRepo.GetByID(ctx, id)
	if err != nil {
		return entities.Quote{}, err
	}
	if q.ID == "" {
		return entities.Quote{}, ErrQuoteNotFound
	}

	if err := u.requireLatest(ctx, q); err != nil {
		return entities.Quote{}, err
	}

	discount := q.DiscountPercent
	if in.DiscountPercent != nil {
		discount = *in.DiscountPercent
	}
	justification := q.DiscountJustification
	if in.DiscountJustification != nil {
		justification = strings.TrimSpace(*in.DiscountJustification)
	}
	notes := q.Notes
	if in.Notes != nil {
		notes = *in.Notes
	}

	if err := validateDiscount(discount, justification); err != nil {
		return entities.Quote{}, err
	}

	if _, err := u.quoteRepo.UpdateHeaderByID(ctx, q.ID, discount, justification, notes); err != nil {
		return entities.Quote{}, err
	}

	// Discount changes affect TotalOverall, so refresh aggregates right away.
	return u.Recalculate(ctx, q.ID)
}

// CreateNewVersion opens a fresh revision of a quote: a new header copying the
// negotiable fields, all items cloned with their approval decisions reset, and
// the previous version left frozen by the latest-version rule.
func (u *QuoteUseCase) CreateNewVersion(ctx context.Context, originalID string) (entities.Quote, error) {
	originalID = strings.TrimSpace(originalID)
	if originalID == "" {
		return entities.Quote{}, ErrInvalidQuoteID
	}

	original, err := u.quoteRepo.GetByID(ctx, originalID)
	if err != nil {
		return entities.Quote{}, err
	}
	if original.ID == "" {
		return entities.Quote{}, ErrQuoteNotFound
	}

	version, err := u.quoteRepo.NextVersion(ctx, original.ServiceOrderID)
	if err != nil {
		return entities.Quote{}, err
	}

	now := time.Now().UTC()
	created, err := u.quoteRepo.Create(ctx, entities.Quote{
		ID:                    uuid.NewString(),
		ServiceOrderID:        original.ServiceOrderID,
		Version:               version,
		Status:                entities.QuoteStatusPending,
		DiscountPercent:       original.DiscountPercent,
		DiscountJustification: original.DiscountJustification,
		Notes:                 original.Notes,
		CreatedAt:             now,
		UpdatedAt:             now,
	})
	if err != nil {
		return entities.Quote{}, err
	}

	if _, err := copyQuoteItems(ctx, u.itemRepo, original.ID, created.ID); err != nil {
		return entities.Quote{}, err
	}

	return u.Recalculate(ctx, created.ID)
}

func (u *QuoteUseCase) DeleteQuote(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return ErrInvalidQuoteID
	}

	q, err := u.quoteRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if q.ID == "" {
		return ErrQuoteNotFound
	}
	if err := u.requireLatest(ctx, q); err != nil {
		return err
	}

	_, err = u.quoteRepo.SoftDeleteByID(ctx, q.ID)
	return err
}

// Recalculate rebuilds the quote aggregates and derived status from the
// current items. It is idempotent and safe to re-run after a partial failure.
func (u *QuoteUseCase) Recalculate(ctx context.Context, quoteID string) (entities.Quote, error) {
	quoteID = strings.TrimSpace(quoteID)
	if quoteID == "" {
		return entities.Quote{}, ErrInvalidQuoteID
	}

	q, err := u.quoteRepo.GetByID(ctx, quoteID)
	if err != nil {
		return entities.Quote{}, err
	}
	if q.ID == "" {
		return entities.Quote{}, ErrQuoteNotFound
	}

	items, err := u.itemRepo.ListByQuoteID(ctx, q.ID)
	if err != nil {
		return entities.Quote{}, err
	}

	agg := aggregateItems(items)
	total := agg.TotalOverallPreDiscount
	if q.DiscountPercent > 0 {
		total -= total * q.DiscountPercent / 100
	}
	status := deriveQuoteStatus(agg)

	return u.quoteRepo.UpdateAggregatesByID(ctx, q.ID, agg.TotalParts, agg.TotalLabor, total, status)
}

// CanEdit reports whether the quote is the latest version for its service
// order. A missing quote yields false, not an error.
func (u *QuoteUseCase) CanEdit(ctx context.Context, id string) (bool, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return false, nil
	}

	q, err := u.quoteRepo.GetByID(ctx, id)
	if err != nil {
		return false, err
	}
	if q.ID == "" {
		return false, nil
	}

	latest, err := u.quoteRepo.GetLatestByServiceOrderID(ctx, q.ServiceOrderID)
	if err != nil {
		return false, err
	}
	return latest.ID == q.ID, nil
}

func (u *QuoteUseCase) GetByID(ctx context.Context, id string) (entities.Quote, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.Quote{}, ErrInvalidQuoteID
	}

	q, err := u.quoteRepo.GetByID(ctx, id)
	if err != nil {
		return entities.Quote{}, err
	}
	if q.ID == "" {
		return entities.Quote{}, ErrQuoteNotFound
	}
	return q, nil
}

func (u *QuoteUseCase) ListByServiceOrderID(ctx context.Context, serviceOrderID string) ([]entities.Quote, error) {
	serviceOrderID = strings.TrimSpace(serviceOrderID)
	if serviceOrderID == "" {
		return nil, ErrInvalidServiceOrderID
	}
	return u.quoteRepo.ListByServiceOrderID(ctx, serviceOrderID)
}

func (u *QuoteUseCase) requireLatest(ctx context.Context, q entities.Quote) error {
	latest, err := u.quoteRepo.GetLatestByServiceOrderID(ctx, q.ServiceOrderID)
	if err != nil {
		return err
	}
	if latest.ID != q.ID {
		return ErrQuoteLocked
	}
	return nil
}

func validateDiscount(percent float64, justification string) error {
	if percent <= 0 {
		return nil
	}
	if percent > 100 {
		return ErrInvalidDiscount
	}
	if percent > discountJustificationThreshold {
		j := strings.TrimSpace(justification)
		if j == "" {
			return ErrDiscountJustificationRequired
		}
		if len(j) < discountJustificationMinLen {
			return ErrDiscountJustificationTooShort
		}
	}
	return nil
}

// copyQuoteItems clones every active item of sourceQuoteID into
// targetQuoteID with the approval decision reset. Shared by both lifecycle
// managers; an empty source yields an empty result, not an error.
func copyQuoteItems(ctx context.Context, repo interfaces.IQuoteItemRepository, sourceQuoteID, targetQuoteID string) ([]entities.QuoteItem, error) {
	items, err := repo.ListByQuoteID(ctx, sourceQuoteID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	created := make([]entities.QuoteItem, 0, len(items))
	for _, it := range items {
		clone := it
		clone.ID = uuid.NewString()
		clone.QuoteID = targetQuoteID
		clone.ApprovalStatus = entities.ItemStatusPending
		clone.CreatedAt = now
		clone.UpdatedAt = now
		clone.DeletedAt = nil

		saved, err := repo.Create(ctx, clone)
		if err != nil {
			return nil, err
		}
		created = append(created, saved)
	}
	return created, nil
}

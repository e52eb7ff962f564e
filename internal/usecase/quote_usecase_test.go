package usecase

import (
	"context"
	"errors"
	"testing"

	"assistec/internal/domain/entities"
	mock_interfaces "assistec/internal/usecase/interfaces/mocks"

	"go.uber.org/mock/gomock"
)

func TestQuoteUseCase_CreateQuote(t *testing.T) {
	t.Run("invalid service order id", func(t *testing.T) {
		uc := NewQuoteUseCase(nil, nil, nil)
		_, err := uc.CreateQuote(context.Background(), CreateQuoteInput{ServiceOrderID: "   "})
		if !errors.Is(err, ErrInvalidServiceOrderID) {
			t.Fatalf("expected ErrInvalidServiceOrderID, got %v", err)
		}
	})

	t.Run("discount above 100", func(t *testing.T) {
		uc := NewQuoteUseCase(nil, nil, nil)
		_, err := uc.CreateQuote(context.Background(), CreateQuoteInput{ServiceOrderID: "os-1", DiscountPercent: 101})
		if !errors.Is(err, ErrInvalidDiscount) {
			t.Fatalf("expected ErrInvalidDiscount, got %v", err)
		}
	})

	t.Run("discount above threshold without justification", func(t *testing.T) {
		uc := NewQuoteUseCase(nil, nil, nil)
		_, err := uc.CreateQuote(context.Background(), CreateQuoteInput{ServiceOrderID: "os-1", DiscountPercent: 15})
		if !errors.Is(err, ErrDiscountJustificationRequired) {
			t.Fatalf("expected ErrDiscountJustificationRequired, got %v", err)
		}
	})

	t.Run("discount justification too short", func(t *testing.T) {
		uc := NewQuoteUseCase(nil, nil, nil)
		_, err := uc.CreateQuote(context.Background(), CreateQuoteInput{
			ServiceOrderID:        "os-1",
			DiscountPercent:       15,
			DiscountJustification: "too short",
		})
		if !errors.Is(err, ErrDiscountJustificationTooShort) {
			t.Fatalf("expected ErrDiscountJustificationTooShort, got %v", err)
		}
	})

	t.Run("service order not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		quoteRepo := mock_interfaces.NewMockIQuoteRepository(ctrl)
		soRepo := mock_interfaces.NewMockIServiceOrderRepository(ctrl)
		uc := NewQuoteUseCase(quoteRepo, nil, soRepo)

		soRepo.EXPECT().GetByID(gomock.Any(), "os-1").Return(entities.ServiceOrder{}, nil)

		_, err := uc.CreateQuote(context.Background(), CreateQuoteInput{ServiceOrderID: "os-1"})
		if !errors.Is(err, ErrServiceOrderNotFound) {
			t.Fatalf("expected ErrServiceOrderNotFound, got %v", err)
		}
	})

	t.Run("first version starts at 1", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		quoteRepo := mock_interfaces.NewMockIQuoteRepository(ctrl)
		soRepo := mock_interfaces.NewMockIServiceOrderRepository(ctrl)
		uc := NewQuoteUseCase(quoteRepo, nil, soRepo)

		soRepo.EXPECT().GetByID(gomock.Any(), "os-1").Return(entities.ServiceOrder{ID: "os-1"}, nil)
		quoteRepo.EXPECT().NextVersion(gomock.Any(), "os-1").Return(1, nil)
		quoteRepo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, q entities.Quote) (entities.Quote, error) {
				if q.Version != 1 {
					t.Fatalf("expected version 1, got %d", q.Version)
				}
				if q.Status != entities.QuoteStatusPending {
					t.Fatalf("expected pending status, got %s", q.Status)
				}
				if q.TotalParts != 0 || q.TotalLabor != 0 || q.TotalOverall != 0 {
					t.Fatalf("expected zero aggregates, got %+v", q)
				}
				if q.ID == "" {
					t.Fatal("expected generated id")
				}
				return q, nil
			})

		created, err := uc.CreateQuote(context.Background(), CreateQuoteInput{ServiceOrderID: "os-1"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if created.ServiceOrderID != "os-1" {
			t.Fatalf("expected service order os-1, got %s", created.ServiceOrderID)
		}
	})

	t.Run("discount at threshold needs no justification", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		quoteRepo := mock_interfaces.NewMockIQuoteRepository(ctrl)
		soRepo := mock_interfaces.NewMockIServiceOrderRepository(ctrl)
		uc := NewQuoteUseCase(quoteRepo, nil, soRepo)

		soRepo.EXPECT().GetByID(gomock.Any(), "os-1").Return(entities.ServiceOrder{ID: "os-1"}, nil)
		quoteRepo.EXPECT().NextVersion(gomock.Any(), "os-1").Return(3, nil)
		quoteRepo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, q entities.Quote) (entities.Quote, error) { return q, nil })

		created, err := uc.CreateQuote(context.Background(), CreateQuoteInput{ServiceOrderID: "os-1", DiscountPercent: 10})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if created.Version != 3 {
			t.Fatalf("expected version 3, got %d", created.Version)
		}
	})
}

func TestQuoteUseCase_UpdateQuote(t *testing.T) {
	t.Run("not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		quoteRepo := mock_interfaces.NewMockIQuoteRepository(ctrl)
		uc := NewQuoteUseCase(quoteRepo, nil, nil)

		quoteRepo.EXPECT().GetByID(gomock.Any(), "q-1").Return(entities.Quote{}, nil)

		_, err := uc.UpdateQuote(context.Background(), "q-1", UpdateQuoteInput{})
		if !errors.Is(err, ErrQuoteNotFound) {
			t.Fatalf("expected ErrQuoteNotFound, got %v", err)
		}
	})

	t.Run("superseded version is locked", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		quoteRepo := mock_interfaces.NewMockIQuoteRepository(ctrl)
		uc := NewQuoteUseCase(quoteRepo, nil, nil)

		quoteRepo.EXPECT().GetByID(gomock.Any(), "q-1").Return(entities.Quote{ID: "q-1", ServiceOrderID: "os-1", Version: 1}, nil)
		quoteRepo.EXPECT().GetLatestByServiceOrderID(gomock.Any(), "os-1").Return(entities.Quote{ID: "q-2", ServiceOrderID: "os-1", Version: 2}, nil)

		_, err := uc.UpdateQuote(context.Background(), "q-1", UpdateQuoteInput{})
		if !errors.Is(err, ErrQuoteLocked) {
			t.Fatalf("expected ErrQuoteLocked, got %v", err)
		}
	})

	t.Run("discount change triggers recalculation", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		quoteRepo := mock_interfaces.NewMockIQuoteRepository(ctrl)
		itemRepo := mock_interfaces.NewMockIQuoteItemRepository(ctrl)
		uc := NewQuoteUseCase(quoteRepo, itemRepo, nil)

		current := entities.Quote{ID: "q-1", ServiceOrderID: "os-1", Version: 1}
		updated := current
		updated.DiscountPercent = 20
		updated.DiscountJustification = "loyal customer discount"

		discount := 20.0
		justification := "loyal customer discount"

		gomock.InOrder(
			quoteRepo.EXPECT().GetByID(gomock.Any(), "q-1").Return(current, nil),
			quoteRepo.EXPECT().GetLatestByServiceOrderID(gomock.Any(), "os-1").Return(current, nil),
			quoteRepo.EXPECT().UpdateHeaderByID(gomock.Any(), "q-1", 20.0, justification, "").Return(updated, nil),
			quoteRepo.EXPECT().GetByID(gomock.Any(), "q-1").Return(updated, nil),
			itemRepo.EXPECT().ListByQuoteID(gomock.Any(), "q-1").Return([]entities.QuoteItem{
				{ItemType: entities.ItemTypePart, TotalPrice: 100, ApprovalStatus: entities.ItemStatusApproved},
				{ItemType: entities.ItemTypeService, TotalPrice: 200, ApprovalStatus: entities.ItemStatusApproved},
			}, nil),
			quoteRepo.EXPECT().UpdateAggregatesByID(gomock.Any(), "q-1", 100.0, 200.0, 240.0, entities.QuoteStatusFullyApproved).
				DoAndReturn(func(_ context.Context, _ string, parts, labor, total float64, status entities.QuoteStatus) (entities.Quote, error) {
					q := updated
					q.TotalParts = parts
					q.TotalLabor = labor
					q.TotalOverall = total
					q.Status = status
					return q, nil
				}),
		)

		q, err := uc.UpdateQuote(context.Background(), "q-1", UpdateQuoteInput{
			DiscountPercent:       &discount,
			DiscountJustification: &justification,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if q.TotalOverall != 240 {
			t.Fatalf("expected total 240 after 20%% discount, got %v", q.TotalOverall)
		}
	})
}

func TestQuoteUseCase_CreateNewVersion(t *testing.T) {
	t.Run("not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		quoteRepo := mock_interfaces.NewMockIQuoteRepository(ctrl)
		uc := NewQuoteUseCase(quoteRepo, nil, nil)

		quoteRepo.EXPECT().GetByID(gomock.Any(), "missing").Return(entities.Quote{}, nil)

		_, err := uc.CreateNewVersion(context.Background(), "missing")
		if !errors.Is(err, ErrQuoteNotFound) {
			t.Fatalf("expected ErrQuoteNotFound, got %v", err)
		}
	})

	t.Run("copies header and resets item decisions", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		quoteRepo := mock_interfaces.NewMockIQuoteRepository(ctrl)
		itemRepo := mock_interfaces.NewMockIQuoteItemRepository(ctrl)
		uc := NewQuoteUseCase(quoteRepo, itemRepo, nil)

		original := entities.Quote{
			ID:                    "q-1",
			ServiceOrderID:        "os-1",
			Version:               1,
			Status:                entities.QuoteStatusPartiallyApproved,
			DiscountPercent:       15,
			DiscountJustification: "negotiated rate",
			Notes:                 "customer wants original parts",
		}

		quoteRepo.EXPECT().GetByID(gomock.Any(), "q-1").Return(original, nil)
		quoteRepo.EXPECT().NextVersion(gomock.Any(), "os-1").Return(2, nil)
		quoteRepo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, q entities.Quote) (entities.Quote, error) {
				if q.Version != 2 {
					t.Fatalf("expected version 2, got %d", q.Version)
				}
				if q.Status != entities.QuoteStatusPending {
					t.Fatalf("expected pending status, got %s", q.Status)
				}
				if q.DiscountPercent != 15 || q.DiscountJustification != "negotiated rate" || q.Notes != original.Notes {
					t.Fatalf("expected header fields carried over, got %+v", q)
				}
				if q.ID == "q-1" {
					t.Fatal("expected a fresh id for the new version")
				}
				q.ID = "q-2"
				return q, nil
			})

		itemRepo.EXPECT().ListByQuoteID(gomock.Any(), "q-1").Return([]entities.QuoteItem{
			{ID: "it-1", QuoteID: "q-1", ItemType: entities.ItemTypePart, TotalPrice: 100, ApprovalStatus: entities.ItemStatusApproved},
		}, nil)
		itemRepo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, it entities.QuoteItem) (entities.QuoteItem, error) {
				if it.QuoteID != "q-2" {
					t.Fatalf("expected clone attached to q-2, got %s", it.QuoteID)
				}
				if it.ApprovalStatus != entities.ItemStatusPending {
					t.Fatalf("expected decision reset to pending, got %s", it.ApprovalStatus)
				}
				if it.ID == "it-1" {
					t.Fatal("expected a fresh item id")
				}
				return it, nil
			})

		// Recalculation of the new version: all items are pending again.
		quoteRepo.EXPECT().GetByID(gomock.Any(), "q-2").DoAndReturn(
			func(_ context.Context, _ string) (entities.Quote, error) {
				q := original
				q.ID = "q-2"
				q.Version = 2
				q.Status = entities.QuoteStatusPending
				return q, nil
			})
		itemRepo.EXPECT().ListByQuoteID(gomock.Any(), "q-2").Return([]entities.QuoteItem{
			{ID: "it-2", QuoteID: "q-2", ItemType: entities.ItemTypePart, TotalPrice: 100, ApprovalStatus: entities.ItemStatusPending},
		}, nil)
		quoteRepo.EXPECT().UpdateAggregatesByID(gomock.Any(), "q-2", 0.0, 0.0, 0.0, entities.QuoteStatusPending).
			DoAndReturn(func(_ context.Context, _ string, _, _, _ float64, status entities.QuoteStatus) (entities.Quote, error) {
				q := original
				q.ID = "q-2"
				q.Version = 2
				q.Status = status
				q.TotalParts = 0
				q.TotalLabor = 0
				q.TotalOverall = 0
				return q, nil
			})

		created, err := uc.CreateNewVersion(context.Background(), "q-1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if created.Version != 2 || created.Status != entities.QuoteStatusPending {
			t.Fatalf("unexpected new version: %+v", created)
		}
	})
}

func TestQuoteUseCase_DeleteQuote(t *testing.T) {
	t.Run("only latest version can be deleted", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		quoteRepo := mock_interfaces.NewMockIQuoteRepository(ctrl)
		uc := NewQuoteUseCase(quoteRepo, nil, nil)

		quoteRepo.EXPECT().GetByID(gomock.Any(), "q-1").Return(entities.Quote{ID: "q-1", ServiceOrderID: "os-1"}, nil)
		quoteRepo.EXPECT().GetLatestByServiceOrderID(gomock.Any(), "os-1").Return(entities.Quote{ID: "q-2", ServiceOrderID: "os-1"}, nil)

		err := uc.DeleteQuote(context.Background(), "q-1")
		if !errors.Is(err, ErrQuoteLocked) {
			t.Fatalf("expected ErrQuoteLocked, got %v", err)
		}
	})

	t.Run("soft deletes latest", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		quoteRepo := mock_interfaces.NewMockIQuoteRepository(ctrl)
		uc := NewQuoteUseCase(quoteRepo, nil, nil)

		q := entities.Quote{ID: "q-1", ServiceOrderID: "os-1"}
		quoteRepo.EXPECT().GetByID(gomock.Any(), "q-1").Return(q, nil)
		quoteRepo.EXPECT().GetLatestByServiceOrderID(gomock.Any(), "os-1").Return(q, nil)
		quoteRepo.EXPECT().SoftDeleteByID(gomock.Any(), "q-1").Return(q, nil)

		if err := uc.DeleteQuote(context.Background(), "q-1"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})
}

func TestQuoteUseCase_Recalculate(t *testing.T) {
	t.Run("mixed decisions with discount", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		quoteRepo := mock_interfaces.NewMockIQuoteRepository(ctrl)
		itemRepo := mock_interfaces.NewMockIQuoteItemRepository(ctrl)
		uc := NewQuoteUseCase(quoteRepo, itemRepo, nil)

		q := entities.Quote{ID: "q-1", ServiceOrderID: "os-1", DiscountPercent: 20, DiscountJustification: "fleet agreement"}
		quoteRepo.EXPECT().GetByID(gomock.Any(), "q-1").Return(q, nil)
		itemRepo.EXPECT().ListByQuoteID(gomock.Any(), "q-1").Return([]entities.QuoteItem{
			{ItemType: entities.ItemTypePart, TotalPrice: 100, ApprovalStatus: entities.ItemStatusApproved},
			{ItemType: entities.ItemTypeService, TotalPrice: 200, ApprovalStatus: entities.ItemStatusClientSuppliesPart},
			{ItemType: entities.ItemTypePart, TotalPrice: 50, ApprovalStatus: entities.ItemStatusRejected},
		}, nil)
		quoteRepo.EXPECT().UpdateAggregatesByID(gomock.Any(), "q-1", 100.0, 200.0, 240.0, entities.QuoteStatusPartiallyApproved).
			Return(entities.Quote{ID: "q-1", TotalParts: 100, TotalLabor: 200, TotalOverall: 240, Status: entities.QuoteStatusPartiallyApproved}, nil)

		got, err := uc.Recalculate(context.Background(), "q-1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got.Status != entities.QuoteStatusPartiallyApproved {
			t.Fatalf("expected partially_approved, got %s", got.Status)
		}
	})

	t.Run("no items stays pending with zero totals", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		quoteRepo := mock_interfaces.NewMockIQuoteRepository(ctrl)
		itemRepo := mock_interfaces.NewMockIQuoteItemRepository(ctrl)
		uc := NewQuoteUseCase(quoteRepo, itemRepo, nil)

		quoteRepo.EXPECT().GetByID(gomock.Any(), "q-1").Return(entities.Quote{ID: "q-1"}, nil)
		itemRepo.EXPECT().ListByQuoteID(gomock.Any(), "q-1").Return(nil, nil)
		quoteRepo.EXPECT().UpdateAggregatesByID(gomock.Any(), "q-1", 0.0, 0.0, 0.0, entities.QuoteStatusPending).
			Return(entities.Quote{ID: "q-1", Status: entities.QuoteStatusPending}, nil)

		got, err := uc.Recalculate(context.Background(), "q-1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got.Status != entities.QuoteStatusPending {
			t.Fatalf("expected pending, got %s", got.Status)
		}
	})

	t.Run("all rejected stays pending", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		quoteRepo := mock_interfaces.NewMockIQuoteRepository(ctrl)
		itemRepo := mock_interfaces.NewMockIQuoteItemRepository(ctrl)
		uc := NewQuoteUseCase(quoteRepo, itemRepo, nil)

		quoteRepo.EXPECT().GetByID(gomock.Any(), "q-1").Return(entities.Quote{ID: "q-1"}, nil)
		itemRepo.EXPECT().ListByQuoteID(gomock.Any(), "q-1").Return([]entities.QuoteItem{
			{ItemType: entities.ItemTypePart, TotalPrice: 100, ApprovalStatus: entities.ItemStatusRejected},
			{ItemType: entities.ItemTypeService, TotalPrice: 60, ApprovalStatus: entities.ItemStatusRejected},
		}, nil)
		quoteRepo.EXPECT().UpdateAggregatesByID(gomock.Any(), "q-1", 0.0, 0.0, 0.0, entities.QuoteStatusPending).
			Return(entities.Quote{ID: "q-1", Status: entities.QuoteStatusPending}, nil)

		if _, err := uc.Recalculate(context.Background(), "q-1"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})
}

func TestQuoteUseCase_CanEdit(t *testing.T) {
	t.Run("missing quote is not editable", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		quoteRepo := mock_interfaces.NewMockIQuoteRepository(ctrl)
		uc := NewQuoteUseCase(quoteRepo, nil, nil)

		quoteRepo.EXPECT().GetByID(gomock.Any(), "q-1").Return(entities.Quote{}, nil)

		ok, err := uc.CanEdit(context.Background(), "q-1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if ok {
			t.Fatal("expected not editable")
		}
	})

	t.Run("latest version is editable", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		quoteRepo := mock_interfaces.NewMockIQuoteRepository(ctrl)
		uc := NewQuoteUseCase(quoteRepo, nil, nil)

		q := entities.Quote{ID: "q-2", ServiceOrderID: "os-1", Version: 2}
		quoteRepo.EXPECT().GetByID(gomock.Any(), "q-2").Return(q, nil)
		quoteRepo.EXPECT().GetLatestByServiceOrderID(gomock.Any(), "os-1").Return(q, nil)

		ok, err := uc.CanEdit(context.Background(), "q-2")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !ok {
			t.Fatal("expected editable")
		}
	})
}

package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"assistec/internal/domain/entities"
	mock_interfaces "assistec/internal/usecase/interfaces/mocks"

	"go.uber.org/mock/gomock"
)

func disablePaymentMockMode(t *testing.T) {
	t.Helper()
	t.Setenv("PAYMENT_GATEWAY_MOCK", "0")
	t.Setenv("MERCADOPAGO_MOCK", "0")
}

func TestPaymentUseCase_CreateAndApprove(t *testing.T) {
	approvedQuote := entities.Quote{
		ID:             "q-1",
		ServiceOrderID: "os-1",
		Version:        2,
		Status:         entities.QuoteStatusFullyApproved,
		TotalParts:     100,
		TotalLabor:     200,
		TotalOverall:   240,
	}

	t.Run("invalid quote id", func(t *testing.T) {
		disablePaymentMockMode(t)
		uc := NewPaymentUseCase(nil, NewQuoteUseCase(nil, nil, nil), nil)
		_, err := uc.CreateAndApprove(context.Background(), "  ", json.RawMessage(`{}`))
		if !errors.Is(err, ErrInvalidQuoteID) {
			t.Fatalf("expected ErrInvalidQuoteID, got %v", err)
		}
	})

	t.Run("invalid provider payload", func(t *testing.T) {
		disablePaymentMockMode(t)
		uc := NewPaymentUseCase(nil, NewQuoteUseCase(nil, nil, nil), nil)
		_, err := uc.CreateAndApprove(context.Background(), "q-1", json.RawMessage(`{broken`))
		if !errors.Is(err, ErrInvalidProviderPayload) {
			t.Fatalf("expected ErrInvalidProviderPayload, got %v", err)
		}
	})

	t.Run("quote not fully approved", func(t *testing.T) {
		disablePaymentMockMode(t)
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		quoteRepo := mock_interfaces.NewMockIQuoteRepository(ctrl)
		gateway := mock_interfaces.NewMockIPaymentGateway(ctrl)
		uc := NewPaymentUseCase(nil, NewQuoteUseCase(quoteRepo, nil, nil), gateway)

		partial := approvedQuote
		partial.Status = entities.QuoteStatusPartiallyApproved
		quoteRepo.EXPECT().GetByID(gomock.Any(), "q-1").Return(partial, nil)

		_, err := uc.CreateAndApprove(context.Background(), "q-1", json.RawMessage(`{}`))
		if !errors.Is(err, ErrQuoteNotFullyApproved) {
			t.Fatalf("expected ErrQuoteNotFullyApproved, got %v", err)
		}
	})

	t.Run("superseded version cannot be charged", func(t *testing.T) {
		disablePaymentMockMode(t)
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		quoteRepo := mock_interfaces.NewMockIQuoteRepository(ctrl)
		gateway := mock_interfaces.NewMockIPaymentGateway(ctrl)
		uc := NewPaymentUseCase(nil, NewQuoteUseCase(quoteRepo, nil, nil), gateway)

		quoteRepo.EXPECT().GetByID(gomock.Any(), "q-1").Return(approvedQuote, nil).Times(2)
		quoteRepo.EXPECT().GetLatestByServiceOrderID(gomock.Any(), "os-1").Return(entities.Quote{ID: "q-2", ServiceOrderID: "os-1", Version: 3}, nil)

		_, err := uc.CreateAndApprove(context.Background(), "q-1", json.RawMessage(`{}`))
		if !errors.Is(err, ErrQuoteVersionSuperseded) {
			t.Fatalf("expected ErrQuoteVersionSuperseded, got %v", err)
		}
	})

	t.Run("amount comes from the quote not the payload", func(t *testing.T) {
		disablePaymentMockMode(t)
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		quoteRepo := mock_interfaces.NewMockIQuoteRepository(ctrl)
		paymentRepo := mock_interfaces.NewMockIPaymentRepository(ctrl)
		gateway := mock_interfaces.NewMockIPaymentGateway(ctrl)
		uc := NewPaymentUseCase(paymentRepo, NewQuoteUseCase(quoteRepo, nil, nil), gateway)

		quoteRepo.EXPECT().GetByID(gomock.Any(), "q-1").Return(approvedQuote, nil).Times(2)
		quoteRepo.EXPECT().GetLatestByServiceOrderID(gomock.Any(), "os-1").Return(approvedQuote, nil)

		gateway.EXPECT().CreatePayment(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, payload json.RawMessage) (string, string, json.RawMessage, error) {
				var req map[string]any
				if err := json.Unmarshal(payload, &req); err != nil {
					t.Fatalf("gateway payload is not valid json: %v", err)
				}
				if req["transaction_amount"] != 240.0 {
					t.Fatalf("expected transaction_amount 240, got %v", req["transaction_amount"])
				}
				if req["external_reference"] != "q-1" {
					t.Fatalf("expected external_reference q-1, got %v", req["external_reference"])
				}
				return "mp-1", "approved", json.RawMessage(`{"id":"mp-1","status":"approved"}`), nil
			})

		paymentRepo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, p entities.Payment) (entities.Payment, error) {
				if p.ID != "mp-1" || p.QuoteID != "q-1" {
					t.Fatalf("unexpected payment identity: %+v", p)
				}
				if p.Amount != 240 {
					t.Fatalf("expected amount 240, got %v", p.Amount)
				}
				if p.Status != entities.PaymentStatusApproved {
					t.Fatalf("expected approved, got %s", p.Status)
				}
				return p, nil
			})

		created, err := uc.CreateAndApprove(context.Background(), "q-1", json.RawMessage(`{"transaction_amount": 1, "payment_method_id": "pix"}`))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if created.Amount != 240 {
			t.Fatalf("expected amount 240, got %v", created.Amount)
		}
	})

	t.Run("gateway unauthorized", func(t *testing.T) {
		disablePaymentMockMode(t)
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		quoteRepo := mock_interfaces.NewMockIQuoteRepository(ctrl)
		gateway := mock_interfaces.NewMockIPaymentGateway(ctrl)
		uc := NewPaymentUseCase(nil, NewQuoteUseCase(quoteRepo, nil, nil), gateway)

		quoteRepo.EXPECT().GetByID(gomock.Any(), "q-1").Return(approvedQuote, nil).Times(2)
		quoteRepo.EXPECT().GetLatestByServiceOrderID(gomock.Any(), "os-1").Return(approvedQuote, nil)
		gateway.EXPECT().CreatePayment(gomock.Any(), gomock.Any()).Return("", "", nil, errors.New(`{"error":"unauthorized","status":401}`))

		_, err := uc.CreateAndApprove(context.Background(), "q-1", json.RawMessage(`{}`))
		if !errors.Is(err, ErrPaymentGatewayUnauthorized) {
			t.Fatalf("expected ErrPaymentGatewayUnauthorized, got %v", err)
		}
	})

	t.Run("mock mode skips the gateway", func(t *testing.T) {
		t.Setenv("PAYMENT_GATEWAY_MOCK", "true")
		t.Setenv("MERCADOPAGO_MOCK", "0")
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		quoteRepo := mock_interfaces.NewMockIQuoteRepository(ctrl)
		paymentRepo := mock_interfaces.NewMockIPaymentRepository(ctrl)
		uc := NewPaymentUseCase(paymentRepo, NewQuoteUseCase(quoteRepo, nil, nil), nil)

		quoteRepo.EXPECT().GetByID(gomock.Any(), "q-1").Return(approvedQuote, nil)
		paymentRepo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, p entities.Payment) (entities.Payment, error) {
				if p.Amount != 240 || p.Status != entities.PaymentStatusApproved {
					t.Fatalf("unexpected mock payment: %+v", p)
				}
				return p, nil
			})

		if _, err := uc.CreateAndApprove(context.Background(), "q-1", nil); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})
}

func TestPaymentUseCase_GetByID(t *testing.T) {
	t.Run("not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		paymentRepo := mock_interfaces.NewMockIPaymentRepository(ctrl)
		uc := NewPaymentUseCase(paymentRepo, nil, nil)

		paymentRepo.EXPECT().GetByID(gomock.Any(), "pay-404").Return(entities.Payment{}, nil)

		_, err := uc.GetByID(context.Background(), "pay-404")
		if !errors.Is(err, ErrPaymentNotFound) {
			t.Fatalf("expected ErrPaymentNotFound, got %v", err)
		}
	})

	t.Run("success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		paymentRepo := mock_interfaces.NewMockIPaymentRepository(ctrl)
		uc := NewPaymentUseCase(paymentRepo, nil, nil)

		paymentRepo.EXPECT().GetByID(gomock.Any(), "pay-1").Return(entities.Payment{ID: "pay-1", QuoteID: "q-1"}, nil)

		p, err := uc.GetByID(context.Background(), "pay-1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if p.ID != "pay-1" {
			t.Fatalf("unexpected payment: %+v", p)
		}
	})
}

package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"assistec/internal/adapter/http/handlers/mocks"
	"assistec/internal/domain/entities"
	"assistec/internal/usecase"

	"github.com/gin-gonic/gin"
	"go.uber.org/mock/gomock"
)

func TestQuoteItemHandler_CreateItem(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("invalid json", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIQuoteItemUseCase(ctrl)
		h := NewQuoteItemHandler(uc)

		r := gin.New()
		r.POST("/v1/quotes/:id/items", h.CreateItem)

		req := httptest.NewRequest(http.MethodPost, "/v1/quotes/q-1/items", bytes.NewBufferString("{broken"))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("locked quote maps to conflict", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIQuoteItemUseCase(ctrl)
		h := NewQuoteItemHandler(uc)

		uc.EXPECT().CreateItem(gomock.Any(), "q-1", gomock.Any()).Return(entities.QuoteItem{}, usecase.ErrQuoteLocked)

		r := gin.New()
		r.POST("/v1/quotes/:id/items", h.CreateItem)

		body, _ := json.Marshal(map[string]any{
			"item_type": "part", "description": "battery", "quantity": 1, "unit_price": 120.0,
		})
		req := httptest.NewRequest(http.MethodPost, "/v1/quotes/q-1/items", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d", w.Code)
		}
	})

	t.Run("success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIQuoteItemUseCase(ctrl)
		h := NewQuoteItemHandler(uc)

		uc.EXPECT().CreateItem(gomock.Any(), "q-1", gomock.Any()).DoAndReturn(
			func(_ context.Context, quoteID string, in usecase.CreateQuoteItemInput) (entities.QuoteItem, error) {
				if in.ItemType != entities.ItemTypePart {
					t.Fatalf("expected part, got %s", in.ItemType)
				}
				return entities.QuoteItem{
					ID: "it-1", QuoteID: quoteID, ItemType: in.ItemType, Description: in.Description,
					Quantity: in.Quantity, UnitPrice: in.UnitPrice, TotalPrice: 120,
					ApprovalStatus: entities.ItemStatusPending, WarrantyDays: 30,
				}, nil
			})

		r := gin.New()
		r.POST("/v1/quotes/:id/items", h.CreateItem)

		body, _ := json.Marshal(map[string]any{
			"item_type": "part", "description": "battery", "quantity": 1, "unit_price": 120.0,
		})
		req := httptest.NewRequest(http.MethodPost, "/v1/quotes/q-1/items", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
		}

		var got map[string]any
		if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
			t.Fatalf("invalid response body: %v", err)
		}
		if got["id"] != "it-1" || got["approval_status"] != "pending" {
			t.Fatalf("unexpected body: %v", got)
		}
	})
}

func TestQuoteItemHandler_UpdateItemApproval(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("unknown status", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIQuoteItemUseCase(ctrl)
		h := NewQuoteItemHandler(uc)

		r := gin.New()
		r.PATCH("/v1/items/:id/approval", h.UpdateItemApproval)

		req := httptest.NewRequest(http.MethodPatch, "/v1/items/it-1/approval", bytes.NewBufferString(`{"status":"maybe"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusUnprocessableEntity {
			t.Fatalf("expected 422, got %d", w.Code)
		}
	})

	t.Run("already decided maps to unprocessable", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIQuoteItemUseCase(ctrl)
		h := NewQuoteItemHandler(uc)

		uc.EXPECT().UpdateApprovalStatus(gomock.Any(), "it-1", entities.ItemStatusApproved).
			Return(entities.QuoteItem{}, usecase.ErrInvalidStatusTransition)

		r := gin.New()
		r.PATCH("/v1/items/:id/approval", h.UpdateItemApproval)

		req := httptest.NewRequest(http.MethodPatch, "/v1/items/it-1/approval", bytes.NewBufferString(`{"status":"approved"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusUnprocessableEntity {
			t.Fatalf("expected 422, got %d", w.Code)
		}
	})

	t.Run("success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIQuoteItemUseCase(ctrl)
		h := NewQuoteItemHandler(uc)

		uc.EXPECT().UpdateApprovalStatus(gomock.Any(), "it-1", entities.ItemStatusClientSuppliesPart).
			Return(entities.QuoteItem{ID: "it-1", ApprovalStatus: entities.ItemStatusClientSuppliesPart}, nil)

		r := gin.New()
		r.PATCH("/v1/items/:id/approval", h.UpdateItemApproval)

		req := httptest.NewRequest(http.MethodPatch, "/v1/items/it-1/approval", bytes.NewBufferString(`{"status":"client_supplies_part"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
	})
}

func TestQuoteItemHandler_DeleteItem(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("decided item maps to conflict", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIQuoteItemUseCase(ctrl)
		h := NewQuoteItemHandler(uc)

		uc.EXPECT().DeleteItem(gomock.Any(), "it-1").Return(usecase.ErrItemLocked)

		r := gin.New()
		r.DELETE("/v1/items/:id", h.DeleteItem)

		req := httptest.NewRequest(http.MethodDelete, "/v1/items/it-1", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d", w.Code)
		}
	})

	t.Run("success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIQuoteItemUseCase(ctrl)
		h := NewQuoteItemHandler(uc)

		uc.EXPECT().DeleteItem(gomock.Any(), "it-1").Return(nil)

		r := gin.New()
		r.DELETE("/v1/items/:id", h.DeleteItem)

		req := httptest.NewRequest(http.MethodDelete, "/v1/items/it-1", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusNoContent {
			t.Fatalf("expected 204, got %d", w.Code)
		}
	})
}

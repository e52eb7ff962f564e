package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"assistec/internal/adapter/http/handlers/mocks"
	"assistec/internal/domain/entities"
	"assistec/internal/usecase"

	"github.com/gin-gonic/gin"
	"go.uber.org/mock/gomock"
)

func TestQuoteHandler_CreateQuote(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("invalid json", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIQuoteUseCase(ctrl)
		h := NewQuoteHandler(uc)

		r := gin.New()
		r.POST("/v1/quotes", h.CreateQuote)

		req := httptest.NewRequest(http.MethodPost, "/v1/quotes", bytes.NewBufferString("{broken"))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("service order not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIQuoteUseCase(ctrl)
		h := NewQuoteHandler(uc)

		uc.EXPECT().CreateQuote(gomock.Any(), gomock.Any()).Return(entities.Quote{}, usecase.ErrServiceOrderNotFound)

		r := gin.New()
		r.POST("/v1/quotes", h.CreateQuote)

		body, _ := json.Marshal(map[string]any{"service_order_id": "os-404"})
		req := httptest.NewRequest(http.MethodPost, "/v1/quotes", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", w.Code)
		}
	})

	t.Run("success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIQuoteUseCase(ctrl)
		h := NewQuoteHandler(uc)

		uc.EXPECT().CreateQuote(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, in usecase.CreateQuoteInput) (entities.Quote, error) {
				if in.ServiceOrderID != "os-1" {
					t.Fatalf("expected os-1, got %s", in.ServiceOrderID)
				}
				return entities.Quote{ID: "q-1", ServiceOrderID: "os-1", Version: 1, Status: entities.QuoteStatusPending}, nil
			})

		r := gin.New()
		r.POST("/v1/quotes", h.CreateQuote)

		body, _ := json.Marshal(map[string]any{"service_order_id": "os-1"})
		req := httptest.NewRequest(http.MethodPost, "/v1/quotes", bytes.NewBuffer(body))
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
		if got["id"] != "q-1" || got["version"] != 1.0 {
			t.Fatalf("unexpected body: %v", got)
		}
	})
}

func TestQuoteHandler_UpdateQuote(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("superseded version maps to conflict", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIQuoteUseCase(ctrl)
		h := NewQuoteHandler(uc)

		uc.EXPECT().UpdateQuote(gomock.Any(), "q-1", gomock.Any()).Return(entities.Quote{}, usecase.ErrQuoteLocked)

		r := gin.New()
		r.PATCH("/v1/quotes/:id", h.UpdateQuote)

		req := httptest.NewRequest(http.MethodPatch, "/v1/quotes/q-1", bytes.NewBufferString(`{"notes":"x"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d", w.Code)
		}
	})

	t.Run("discount justification error maps to bad request", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIQuoteUseCase(ctrl)
		h := NewQuoteHandler(uc)

		uc.EXPECT().UpdateQuote(gomock.Any(), "q-1", gomock.Any()).Return(entities.Quote{}, usecase.ErrDiscountJustificationRequired)

		r := gin.New()
		r.PATCH("/v1/quotes/:id", h.UpdateQuote)

		req := httptest.NewRequest(http.MethodPatch, "/v1/quotes/q-1", bytes.NewBufferString(`{"discount_percent":15}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})
}

func TestQuoteHandler_CreateQuoteVersion(t *testing.T) {
	gin.SetMode(gin.TestMode)

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	uc := mocks.NewMockIQuoteUseCase(ctrl)
	h := NewQuoteHandler(uc)

	uc.EXPECT().CreateNewVersion(gomock.Any(), "q-1").Return(entities.Quote{ID: "q-2", Version: 2, Status: entities.QuoteStatusPending}, nil)

	r := gin.New()
	r.POST("/v1/quotes/:id/versions", h.CreateQuoteVersion)

	req := httptest.NewRequest(http.MethodPost, "/v1/quotes/q-1/versions", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", w.Code)
	}
}

func TestQuoteHandler_DeleteQuote(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIQuoteUseCase(ctrl)
		h := NewQuoteHandler(uc)

		uc.EXPECT().DeleteQuote(gomock.Any(), "q-1").Return(nil)

		r := gin.New()
		r.DELETE("/v1/quotes/:id", h.DeleteQuote)

		req := httptest.NewRequest(http.MethodDelete, "/v1/quotes/q-1", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusNoContent {
			t.Fatalf("expected 204, got %d", w.Code)
		}
	})

	t.Run("not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIQuoteUseCase(ctrl)
		h := NewQuoteHandler(uc)

		uc.EXPECT().DeleteQuote(gomock.Any(), "q-404").Return(usecase.ErrQuoteNotFound)

		r := gin.New()
		r.DELETE("/v1/quotes/:id", h.DeleteQuote)

		req := httptest.NewRequest(http.MethodDelete, "/v1/quotes/q-404", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", w.Code)
		}
	})
}

func TestQuoteHandler_RecalculateQuote(t *testing.T) {
	gin.SetMode(gin.TestMode)

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	uc := mocks.NewMockIQuoteUseCase(ctrl)
	h := NewQuoteHandler(uc)

	uc.EXPECT().Recalculate(gomock.Any(), "q-1").Return(entities.Quote{
		ID: "q-1", TotalParts: 100, TotalLabor: 200, TotalOverall: 240,
		Status: entities.QuoteStatusPartiallyApproved,
	}, nil)

	r := gin.New()
	r.POST("/v1/quotes/:id/recalculate", h.RecalculateQuote)

	req := httptest.NewRequest(http.MethodPost, "/v1/quotes/q-1/recalculate", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var got map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if got["total_overall"] != 240.0 || got["status"] != string(entities.QuoteStatusPartiallyApproved) {
		t.Fatalf("unexpected body: %v", got)
	}
}

func TestMapQuoteError(t *testing.T) {
	cases := []struct {
		err  error
		code int
	}{
		{usecase.ErrInvalidDiscount, http.StatusBadRequest},
		{usecase.ErrDiscountJustificationTooShort, http.StatusBadRequest},
		{usecase.ErrQuoteNotFound, http.StatusNotFound},
		{usecase.ErrServiceOrderNotFound, http.StatusNotFound},
		{usecase.ErrQuoteLocked, http.StatusConflict},
		{errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		if got := mapQuoteError(tc.err); got.HTTPStatus != tc.code {
			t.Fatalf("%v: expected %d, got %d", tc.err, tc.code, got.HTTPStatus)
		}
	}
}

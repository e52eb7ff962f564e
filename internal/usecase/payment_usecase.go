package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"assistec/internal/domain/entities"
	"assistec/internal/usecase/interfaces"
)

var (
	ErrPaymentNotFound            = errors.New("payment not found")
	ErrInvalidPaymentID           = errors.New("invalid payment id")
	ErrInvalidProviderPayload     = errors.New("invalid payment provider payload")
	ErrQuoteNotFullyApproved      = errors.New("quote not fully approved")
	ErrQuoteVersionSuperseded     = errors.New("quote version superseded by a newer revision")
	ErrPaymentGatewayBadRequest   = errors.New("payment gateway bad request")
	ErrPaymentGatewayUnauthorized = errors.New("payment gateway unauthorized")
)

// IPaymentUseCase encapsulates "charge a fully approved quote".
//
// A charge is only accepted against the latest quote version and only once
// every line item has a decision with at least one approval (fully_approved).
// The transaction amount is always taken from the quote's recalculated
// TotalOverall, never from the caller.

type IPaymentUseCase interface {
	CreateAndApprove(ctx context.Context, quoteID string, providerPayload json.RawMessage) (entities.Payment, error)
	GetByID(ctx context.Context, id string) (entities.Payment, error)
	ListByQuoteID(ctx context.Context, quoteID string) ([]entities.Payment, error)
}

type PaymentUseCase struct {
	repo    interfaces.IPaymentRepository
	quotes  *QuoteUseCase
	gateway interfaces.IPaymentGateway
}

var _ IPaymentUseCase = (*PaymentUseCase)(nil)

func NewPaymentUseCase(repo interfaces.IPaymentRepository, quotes *QuoteUseCase, gateway interfaces.IPaymentGateway) *PaymentUseCase {
	return &PaymentUseCase{repo: repo, quotes: quotes, gateway: gateway}
}

func (u *PaymentUseCase) CreateAndApprove(ctx context.Context, quoteID string, providerPayload json.RawMessage) (entities.Payment, error) {
	log.Printf("[payment][usecase] create-and-approve start raw_quote_id=%q payload_len=%d", quoteID, len(providerPayload))
	mockMode := isPaymentGatewayMockEnabled()
	quoteID = strings.TrimSpace(quoteID)
	if quoteID == "" {
		return entities.Payment{}, ErrInvalidQuoteID
	}
	if len(providerPayload) == 0 || !json.Valid(providerPayload) {
		if !mockMode {
			log.Printf("[payment][usecase] invalid payload quote_id=%s", quoteID)
			return entities.Payment{}, ErrInvalidProviderPayload
		}
		providerPayload = json.RawMessage("{}")
	}
	if u.gateway == nil && !mockMode {
		log.Printf("[payment][usecase] gateway not configured quote_id=%s", quoteID)
		return entities.Payment{}, errors.New("payment gateway not configured")
	}

	quote, err := u.quotes.GetByID(ctx, quoteID)
	if err != nil {
		log.Printf("[payment][usecase] failed loading quote quote_id=%s err=%v", quoteID, err)
		return entities.Payment{}, err
	}
	if !mockMode {
		if quote.Status != entities.QuoteStatusFullyApproved {
			log.Printf("[payment][usecase] quote not fully approved quote_id=%s status=%s", quoteID, quote.Status)
			return entities.Payment{}, ErrQuoteNotFullyApproved
		}
		editable, err := u.quotes.CanEdit(ctx, quoteID)
		if err != nil {
			return entities.Payment{}, err
		}
		if !editable {
			log.Printf("[payment][usecase] quote superseded quote_id=%s", quoteID)
			return entities.Payment{}, ErrQuoteVersionSuperseded
		}
	}
	log.Printf("[payment][usecase] quote loaded quote_id=%s status=%s total_overall=%.2f", quoteID, quote.Status, quote.TotalOverall)

	// The quote's recalculated total is the source of truth for the amount;
	// external_reference lets the provider events be reconciled back to it.
	var reqMap map[string]any
	if err := json.Unmarshal(providerPayload, &reqMap); err == nil {
		if _, ok := reqMap["external_reference"]; !ok {
			reqMap["external_reference"] = quoteID
		}
		if _, ok := reqMap["description"]; !ok {
			reqMap["description"] = fmt.Sprintf("Quote %s v%d", quote.ID, quote.Version)
		}
		reqMap["transaction_amount"] = quote.TotalOverall
		if b, err := json.Marshal(reqMap); err == nil {
			providerPayload = b
		}
	} else {
		log.Printf("[payment][usecase] payload unmarshal failed quote_id=%s err=%v", quoteID, err)
	}

	providerPaymentID := ""
	providerResp := json.RawMessage(nil)

	if mockMode {
		log.Printf("[payment][usecase] mock mode enabled; skipping external payment gateway quote_id=%s", quoteID)
		providerPaymentID = strconv.FormatInt(time.Now().UTC().UnixNano(), 10)
		now := time.Now().UTC().Format(time.RFC3339Nano)
		mockResp := map[string]any{}
		if json.Valid(providerPayload) {
			_ = json.Unmarshal(providerPayload, &mockResp)
		}
		mockResp["id"] = providerPaymentID
		mockResp["status"] = "approved"
		mockResp["status_detail"] = "accredited"
		mockResp["date_created"] = now
		mockResp["date_approved"] = now
		b, mErr := json.Marshal(mockResp)
		if mErr != nil {
			return entities.Payment{}, mErr
		}
		providerResp = b
	} else {
		log.Printf("[payment][usecase] calling payment gateway quote_id=%s", quoteID)
		var providerStatus string
		providerPaymentID, providerStatus, providerResp, err = u.gateway.CreatePayment(ctx, providerPayload)
		if err != nil {
			log.Printf("[payment][usecase] payment gateway failed quote_id=%s err=%v", quoteID, err)
			if isGatewayUnauthorized(err) {
				return entities.Payment{}, ErrPaymentGatewayUnauthorized
			}
			if isGatewayBadRequest(err) {
				return entities.Payment{}, ErrPaymentGatewayBadRequest
			}
			return entities.Payment{}, err
		}
		log.Printf("[payment][usecase] payment gateway success quote_id=%s provider_payment_id=%s provider_status=%s", quoteID, providerPaymentID, providerStatus)
	}

	var parsed map[string]interface{}
	if err := json.Unmarshal(providerResp, &parsed); err != nil {
		log.Printf("[payment][usecase] provider response unmarshal failed quote_id=%s err=%v", quoteID, err)
	}

	created, err := u.repo.Create(ctx, entities.Payment{
		ID:                 providerPaymentID,
		QuoteID:            quote.ID,
		Amount:             quote.TotalOverall,
		Date:               time.Now().UTC(),
		Status:             entities.PaymentStatusApproved,
		ProviderPayloadRaw: providerResp,
		ProviderPayload:    parsed,
	})
	if err != nil {
		log.Printf("[payment][usecase] payment repository create failed quote_id=%s payment_id=%s err=%v", quoteID, providerPaymentID, err)
		return entities.Payment{}, err
	}
	log.Printf("[payment][usecase] create-and-approve success quote_id=%s payment_id=%s status=%s", quoteID, created.ID, created.Status)
	return created, nil
}

func (u *PaymentUseCase) GetByID(ctx context.Context, id string) (entities.Payment, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.Payment{}, ErrInvalidPaymentID
	}

	p, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return entities.Payment{}, err
	}
	if p.ID == "" {
		return entities.Payment{}, ErrPaymentNotFound
	}
	return p, nil
}

func (u *PaymentUseCase) ListByQuoteID(ctx context.Context, quoteID string) ([]entities.Payment, error) {
	quoteID = strings.TrimSpace(quoteID)
	if quoteID == "" {
		return nil, ErrInvalidQuoteID
	}
	return u.repo.ListByQuoteID(ctx, quoteID)
}

func isPaymentGatewayMockEnabled() bool {
	for _, key := range []string{"PAYMENT_GATEWAY_MOCK", "MERCADOPAGO_MOCK"} {
		v := strings.ToLower(strings.TrimSpace(os.Getenv(key)))
		switch v {
		case "1", "true", "yes", "on", "mock":
			return true
		}
	}
	return false
}

func isGatewayBadRequest(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "\"error\":\"bad_request\"") || strings.Contains(msg, "\"status\":400")
}

func isGatewayUnauthorized(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "\"error\":\"unauthorized\"") || strings.Contains(msg, "\"status\":401")
}

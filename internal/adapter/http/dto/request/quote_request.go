package request

import "strings"

// CreateQuoteRequest opens a new quote (version 1, or next version when one
// already exists is done through the dedicated versions route).
type CreateQuoteRequest struct {
	ServiceOrderID        string  `json:"service_order_id" binding:"required"`
	DiscountPercent       float64 `json:"discount_percent"`
	DiscountJustification string  `json:"discount_justification"`
	Notes                 string  `json:"notes"`
}

func (r CreateQuoteRequest) ResolveServiceOrderID() string {
	return strings.TrimSpace(r.ServiceOrderID)
}

// UpdateQuoteRequest is a partial header update; absent fields stay unchanged.
// Aggregates and status are derived and cannot be submitted.
type UpdateQuoteRequest struct {
	DiscountPercent       *float64 `json:"discount_percent"`
	DiscountJustification *string  `json:"discount_justification"`
	Notes                 *string  `json:"notes"`
}

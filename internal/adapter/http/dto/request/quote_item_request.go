package request

import (
	"errors"
	"strings"

	"assistec/internal/domain/entities"
)

var ErrUnknownApprovalStatus = errors.New("unknown approval status")

// CreateQuoteItemRequest adds a part or service line to a quote.
// total_price is never accepted; it is always derived server-side.
type CreateQuoteItemRequest struct {
	ProductID    string  `json:"product_id"`
	ItemType     string  `json:"item_type" binding:"required"`
	Description  string  `json:"description" binding:"required"`
	Quantity     int     `json:"quantity" binding:"required"`
	UnitPrice    float64 `json:"unit_price" binding:"required"`
	WarrantyDays *int    `json:"warranty_days"`
	Notes        string  `json:"notes"`
}

// UpdateQuoteItemRequest is a partial update; absent fields stay unchanged.
type UpdateQuoteItemRequest struct {
	ProductID    *string  `json:"product_id"`
	ItemType     *string  `json:"item_type"`
	Description  *string  `json:"description"`
	Quantity     *int     `json:"quantity"`
	UnitPrice    *float64 `json:"unit_price"`
	WarrantyDays *int     `json:"warranty_days"`
	Notes        *string  `json:"notes"`
}

// UpdateItemApprovalRequest records the client decision for a line item.
type UpdateItemApprovalRequest struct {
	Status string `json:"status" binding:"required"`
}

// ResolveStatus maps the wire value onto the closed approval-status set.
// pending is not a valid target: decisions cannot be undone.
func (r UpdateItemApprovalRequest) ResolveStatus() (entities.ItemApprovalStatus, error) {
	switch entities.ItemApprovalStatus(strings.TrimSpace(r.Status)) {
	case entities.ItemStatusApproved:
		return entities.ItemStatusApproved, nil
	case entities.ItemStatusRejected:
		return entities.ItemStatusRejected, nil
	case entities.ItemStatusClientSuppliesPart:
		return entities.ItemStatusClientSuppliesPart, nil
	default:
		return "", ErrUnknownApprovalStatus
	}
}

package response

import (
	"time"

	"assistec/internal/domain/entities"
)

type QuoteItemResponse struct {
	ID             string    `json:"id"`
	QuoteID        string    `json:"quote_id"`
	ProductID      string    `json:"product_id,omitempty"`
	ItemType       string    `json:"item_type"`
	Description    string    `json:"description"`
	Quantity       int       `json:"quantity"`
	UnitPrice      float64   `json:"unit_price"`
	TotalPrice     float64   `json:"total_price"`
	ApprovalStatus string    `json:"approval_status"`
	WarrantyDays   int       `json:"warranty_days"`
	Notes          string    `json:"notes,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func FromQuoteItem(it entities.QuoteItem) QuoteItemResponse {
	return QuoteItemResponse{
		ID:             it.ID,
		QuoteID:        it.QuoteID,
		ProductID:      it.ProductID,
		ItemType:       string(it.ItemType),
		Description:    it.Description,
		Quantity:       it.Quantity,
		UnitPrice:      it.UnitPrice,
		TotalPrice:     it.TotalPrice,
		ApprovalStatus: string(it.ApprovalStatus),
		WarrantyDays:   it.WarrantyDays,
		Notes:          it.Notes,
		CreatedAt:      it.CreatedAt,
		UpdatedAt:      it.UpdatedAt,
	}
}

func FromQuoteItems(items []entities.QuoteItem) []QuoteItemResponse {
	out := make([]QuoteItemResponse, 0, len(items))
	for _, it := range items {
		out = append(out, FromQuoteItem(it))
	}
	return out
}

package response

import (
	"time"

	"assistec/internal/domain/entities"
)

type QuoteResponse struct {
	ID                    string    `json:"id"`
	ServiceOrderID        string    `json:"service_order_id"`
	Version               int       `json:"version"`
	Status                string    `json:"status"`
	DiscountPercent       float64   `json:"discount_percent"`
	DiscountJustification string    `json:"discount_justification,omitempty"`
	TotalParts            float64   `json:"total_parts"`
	TotalLabor            float64   `json:"total_labor"`
	TotalOverall          float64   `json:"total_overall"`
	Notes                 string    `json:"notes,omitempty"`
	CreatedAt             time.Time `json:"created_at"`
	UpdatedAt             time.Time `json:"updated_at"`
}

func FromQuote(q entities.Quote) QuoteResponse {
	return QuoteResponse{
		ID:                    q.ID,
		ServiceOrderID:        q.ServiceOrderID,
		Version:               q.Version,
		Status:                string(q.Status),
		DiscountPercent:       q.DiscountPercent,
		DiscountJustification: q.DiscountJustification,
		TotalParts:            q.TotalParts,
		TotalLabor:            q.TotalLabor,
		TotalOverall:          q.TotalOverall,
		Notes:                 q.Notes,
		CreatedAt:             q.CreatedAt,
		UpdatedAt:             q.UpdatedAt,
	}
}

func FromQuotes(quotes []entities.Quote) []QuoteResponse {
	out := make([]QuoteResponse, 0, len(quotes))
	for _, q := range quotes {
		out = append(out, FromQuote(q))
	}
	return out
}

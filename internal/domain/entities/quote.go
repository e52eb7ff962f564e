package entities

import "time"

// QuoteStatus is the quote-level approval status.
//
// Domain notes:
//   - Status is derived from the line items' approval states during recalculation;
//     it is never accepted from a client.
//   - QuoteStatusRejected is part of the wire contract but the derivation never
//     assigns it: a quote with every item rejected has zero approved items and
//     stays pending. Kept declared for compatibility.

type QuoteStatus string

const (
	QuoteStatusPending           QuoteStatus = "pending"
	QuoteStatusPartiallyApproved QuoteStatus = "partially_approved"
	QuoteStatusFullyApproved     QuoteStatus = "fully_approved"
	QuoteStatusRejected          QuoteStatus = "rejected"
)

// Quote is one persisted version of an orçamento attached to a service order.
//
// Storage model (DynamoDB):
//   - PK: id
//   - GSI (service_order_id-index): HASH service_order_id, RANGE version
//
// Versioning:
//   - Version is assigned at creation as max(existing)+1 (1 when none exist).
//   - Only the highest version for a service order is editable.
//
// Monetary representation:
//   - TotalParts/TotalLabor/TotalOverall are recalculated aggregates, never
//     accepted from a client.
type Quote struct {
	ID                    string      `json:"id"`
	ServiceOrderID        string      `json:"service_order_id"`
	Version               int         `json:"version"`
	Status                QuoteStatus `json:"status"`
	DiscountPercent       float64     `json:"discount_percent"`
	DiscountJustification string      `json:"discount_justification,omitempty"`
	TotalParts            float64     `json:"total_parts"`
	TotalLabor            float64     `json:"total_labor"`
	TotalOverall          float64     `json:"total_overall"`
	Notes                 string      `json:"notes,omitempty"`
	CreatedAt             time.Time   `json:"created_at"`
	UpdatedAt             time.Time   `json:"updated_at"`
	DeletedAt             *time.Time  `json:"deleted_at,omitempty"`
}

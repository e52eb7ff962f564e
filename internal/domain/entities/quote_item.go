package entities

import "time"

// ItemType distinguishes parts from labor when aggregating quote totals.

type ItemType string

const (
	ItemTypePart    ItemType = "part"
	ItemTypeService ItemType = "service"
)

// ItemApprovalStatus is the per-line-item decision recorded by the client.
//
// Transitions: pending -> {approved, rejected, client_supplies_part}, final.
// client_supplies_part counts as approved for status derivation but a part
// supplied by the client is not billed into TotalParts.

type ItemApprovalStatus string

const (
	ItemStatusPending            ItemApprovalStatus = "pending"
	ItemStatusApproved           ItemApprovalStatus = "approved"
	ItemStatusRejected           ItemApprovalStatus = "rejected"
	ItemStatusClientSuppliesPart ItemApprovalStatus = "client_supplies_part"
)

// Default and maximum warranty windows, in days.
const (
	WarrantyDaysDefaultService = 90
	WarrantyDaysDefaultPart    = 30
	WarrantyDaysMax            = 3650
)

// QuoteItem is a single part or service line inside exactly one quote version.
//
// Storage model (DynamoDB):
//   - PK: id
//   - GSI (quote_id-index): quote_id
//
// TotalPrice is always Quantity * UnitPrice, recomputed on every write.
type QuoteItem struct {
	ID             string             `json:"id"`
	QuoteID        string             `json:"quote_id"`
	ProductID      string             `json:"product_id,omitempty"`
	ItemType       ItemType           `json:"item_type"`
	Description    string             `json:"description"`
	Quantity       int                `json:"quantity"`
	UnitPrice      float64            `json:"unit_price"`
	TotalPrice     float64            `json:"total_price"`
	ApprovalStatus ItemApprovalStatus `json:"approval_status"`
	WarrantyDays   int                `json:"warranty_days"`
	Notes          string             `json:"notes,omitempty"`
	CreatedAt      time.Time          `json:"created_at"`
	UpdatedAt      time.Time          `json:"updated_at"`
	DeletedAt      *time.Time         `json:"deleted_at,omitempty"`
}

package entities

import "time"

// Product is a stocked part that quote items may reference.
//
// Storage model (DynamoDB):
//   - PK: id
type Product struct {
	ID            string     `json:"id"`
	Name          string     `json:"name"`
	SKU           string     `json:"sku,omitempty"`
	UnitPrice     float64    `json:"unit_price"`
	StockQuantity int        `json:"stock_quantity"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
	DeletedAt     *time.Time `json:"deleted_at,omitempty"`
}

package request

// CreateProductRequest registers a stocked part.
type CreateProductRequest struct {
	Name          string  `json:"name" binding:"required"`
	SKU           string  `json:"sku"`
	UnitPrice     float64 `json:"unit_price" binding:"required"`
	StockQuantity int     `json:"stock_quantity"`
}

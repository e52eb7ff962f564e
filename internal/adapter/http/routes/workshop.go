package routes

import (
	"assistec/internal/adapter/http/handlers"

	"github.com/gin-gonic/gin"
)

const (
	PathServiceOrders = "/service-orders"
	PathProducts      = "/products"
	PathQuotes        = "/quotes"
	PathItems         = "/items"
)

func addWorkshopRoutes(
	rg *gin.RouterGroup,
	serviceOrderHandler *handlers.ServiceOrderHandler,
	productHandler *handlers.ProductHandler,
	quoteHandler *handlers.QuoteHandler,
	itemHandler *handlers.QuoteItemHandler,
) {
	serviceOrders := rg.Group(PathServiceOrders)
	{
		serviceOrders.POST("", serviceOrderHandler.CreateServiceOrder)
		serviceOrders.GET("/:id", serviceOrderHandler.GetServiceOrder)
		serviceOrders.PATCH("/:id/status", serviceOrderHandler.UpdateServiceOrderStatus)
		serviceOrders.GET("/:id/quotes", quoteHandler.ListQuotesByServiceOrder)
	}

	products := rg.Group(PathProducts)
	{
		products.POST("", productHandler.CreateProduct)
		products.GET("/:id", productHandler.GetProduct)
	}

	quotes := rg.Group(PathQuotes)
	{
		quotes.POST("", quoteHandler.CreateQuote)
		quotes.GET("/:id", quoteHandler.GetQuote)
		quotes.PATCH("/:id", quoteHandler.UpdateQuote)
		quotes.DELETE("/:id", quoteHandler.DeleteQuote)
		quotes.POST("/:id/versions", quoteHandler.CreateQuoteVersion)
		quotes.POST("/:id/recalculate", quoteHandler.RecalculateQuote)
		quotes.POST("/:id/items", itemHandler.CreateItem)
		quotes.GET("/:id/items", itemHandler.ListItemsByQuote)
	}

	items := rg.Group(PathItems)
	{
		items.PATCH("/:id", itemHandler.UpdateItem)
		items.DELETE("/:id", itemHandler.DeleteItem)
		items.PATCH("/:id/approval", itemHandler.UpdateItemApproval)
	}
}

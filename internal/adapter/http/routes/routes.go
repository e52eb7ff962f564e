package routes

import (
	"log"
	"os"
	"strconv"

	_ "assistec/docs" // This will be auto-generated
	"assistec/internal/adapter/http/handlers"
	repository2 "assistec/internal/adapter/persistence/repository"
	"assistec/internal/infrastructure/database"
	"assistec/internal/infrastructure/payments"
	"assistec/internal/usecase"
	"assistec/internal/usecase/interfaces"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

var router = gin.Default()

const PORT = 8080

// Run will start the server
func Run() {
	setMiddlewares()

	// Swagger documentation endpoint
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	getRoutes()

	err := router.Run(":" + strconv.Itoa(PORT))
	if err != nil {
		log.Fatalf("Failed to startup the application: %v", err.Error())
	}
}

func getRoutes() {
	ddb := database.ConnectDynamoDB()

	serviceOrderRepo := repository2.NewServiceOrderDynamoRepository(ddb)
	productRepo := repository2.NewProductDynamoRepository(ddb)
	quoteRepo := repository2.NewQuoteDynamoRepository(ddb)
	itemRepo := repository2.NewQuoteItemDynamoRepository(ddb)
	paymentRepo := repository2.NewPaymentDynamoRepository(ddb)

	serviceOrderUseCase := usecase.NewServiceOrderUseCase(serviceOrderRepo)
	productUseCase := usecase.NewProductUseCase(productRepo)
	quoteUseCase := usecase.NewQuoteUseCase(quoteRepo, itemRepo, serviceOrderRepo)
	itemUseCase := usecase.NewQuoteItemUseCase(itemRepo, productRepo, quoteUseCase)

	var paymentGateway interfaces.IPaymentGateway
	mpGateway, err := payments.NewMercadoPagoGateway(os.Getenv("MERCADOPAGO_ACCESS_TOKEN"))
	if err != nil {
		log.Printf("Mercado Pago gateway not configured: %v", err)
	} else {
		paymentGateway = mpGateway
	}

	paymentUseCase := usecase.NewPaymentUseCase(paymentRepo, quoteUseCase, paymentGateway)

	serviceOrderHandler := handlers.NewServiceOrderHandler(serviceOrderUseCase)
	productHandler := handlers.NewProductHandler(productUseCase)
	quoteHandler := handlers.NewQuoteHandler(quoteUseCase)
	itemHandler := handlers.NewQuoteItemHandler(itemUseCase)
	paymentHandler := handlers.NewPaymentHandler(paymentUseCase)

	v1 := router.Group("/v1")
	addPingRoutes(v1)
	addWorkshopRoutes(v1, serviceOrderHandler, productHandler, quoteHandler, itemHandler)
	addBillingRoutes(v1, paymentHandler)
}

func setMiddlewares() {
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		log.Printf("Recovered from panic: %v", recovered)
		c.AbortWithStatus(500)
	}))
}

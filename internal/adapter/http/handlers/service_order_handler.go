package handlers

import (
	"errors"
	"net/http"
	"strings"

	request "assistec/internal/adapter/http/dto/request"
	response "assistec/internal/adapter/http/dto/response"
	"assistec/internal/domain/entities"
	"assistec/internal/usecase"
	"assistec/pkg"

	"github.com/gin-gonic/gin"
)

var errInvalidServiceOrderPayload = pkg.NewDomainErrorSimple("INVALID_SERVICE_ORDER_INPUT", "Invalid service order payload", http.StatusBadRequest)

type ServiceOrderHandler struct {
	usecase usecase.IServiceOrderUseCase
}

func NewServiceOrderHandler(uc usecase.IServiceOrderUseCase) *ServiceOrderHandler {
	return &ServiceOrderHandler{usecase: uc}
}

func (h *ServiceOrderHandler) CreateServiceOrder(c *gin.Context) {
	var payload request.CreateServiceOrderRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidServiceOrderPayload.HTTPStatus, errInvalidServiceOrderPayload.ToHTTPError())
		return
	}

	so, err := h.usecase.Create(c.Request.Context(), usecase.CreateServiceOrderInput{
		CustomerName:  payload.CustomerName,
		DeviceBrand:   payload.DeviceBrand,
		DeviceModel:   payload.DeviceModel,
		DeviceSerial:  payload.DeviceSerial,
		ReportedIssue: payload.ReportedIssue,
	})
	if err != nil {
		appErr := mapServiceOrderError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusCreated, response.FromServiceOrder(so))
}

func (h *ServiceOrderHandler) GetServiceOrder(c *gin.Context) {
	so, err := h.usecase.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		appErr := mapServiceOrderError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromServiceOrder(so))
}

func (h *ServiceOrderHandler) UpdateServiceOrderStatus(c *gin.Context) {
	var payload request.UpdateServiceOrderStatusRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidServiceOrderPayload.HTTPStatus, errInvalidServiceOrderPayload.ToHTTPError())
		return
	}

	status := entities.ServiceOrderStatus(strings.ToLower(strings.TrimSpace(payload.Status)))
	so, err := h.usecase.UpdateStatus(c.Request.Context(), c.Param("id"), status)
	if err != nil {
		appErr := mapServiceOrderError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromServiceOrder(so))
}

func mapServiceOrderError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrInvalidServiceOrderID), errors.Is(err, usecase.ErrInvalidServiceOrderFields):
		return pkg.NewDomainErrorSimple("INVALID_SERVICE_ORDER", "Invalid service order data", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrInvalidServiceOrderStatus):
		return pkg.NewDomainErrorSimple("INVALID_SERVICE_ORDER_STATUS", "Unknown service order status", http.StatusUnprocessableEntity)
	case errors.Is(err, usecase.ErrServiceOrderNotFound):
		return pkg.NewDomainErrorSimple("SERVICE_ORDER_NOT_FOUND", "Service order not found", http.StatusNotFound)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}

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

func entitiesItemType(raw string) entities.ItemType {
	return entities.ItemType(strings.ToLower(strings.TrimSpace(raw)))
}

var errInvalidItemPayload = pkg.NewDomainErrorSimple("INVALID_ITEM_INPUT", "Invalid quote item payload", http.StatusBadRequest)

// QuoteItemHandler handles HTTP requests for quote line items and their
// approval decisions.

type QuoteItemHandler struct {
	usecase usecase.IQuoteItemUseCase
}

func NewQuoteItemHandler(uc usecase.IQuoteItemUseCase) *QuoteItemHandler {
	return &QuoteItemHandler{usecase: uc}
}

func (h *QuoteItemHandler) CreateItem(c *gin.Context) {
	var payload request.CreateQuoteItemRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidItemPayload.HTTPStatus, errInvalidItemPayload.ToHTTPError())
		return
	}

	item, err := h.usecase.CreateItem(c.Request.Context(), c.Param("id"), usecase.CreateQuoteItemInput{
		ProductID:    payload.ProductID,
		ItemType:     entitiesItemType(payload.ItemType),
		Description:  payload.Description,
		Quantity:     payload.Quantity,
		UnitPrice:    payload.UnitPrice,
		WarrantyDays: payload.WarrantyDays,
		Notes:        payload.Notes,
	})
	if err != nil {
		appErr := mapQuoteItemError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusCreated, response.FromQuoteItem(item))
}

func (h *QuoteItemHandler) ListItemsByQuote(c *gin.Context) {
	items, err := h.usecase.ListByQuoteID(c.Request.Context(), c.Param("id"))
	if err != nil {
		appErr := mapQuoteItemError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromQuoteItems(items))
}

func (h *QuoteItemHandler) UpdateItem(c *gin.Context) {
	var payload request.UpdateQuoteItemRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidItemPayload.HTTPStatus, errInvalidItemPayload.ToHTTPError())
		return
	}

	in := usecase.UpdateQuoteItemInput{
		ProductID:    payload.ProductID,
		Description:  payload.Description,
		Quantity:     payload.Quantity,
		UnitPrice:    payload.UnitPrice,
		WarrantyDays: payload.WarrantyDays,
		Notes:        payload.Notes,
	}
	if payload.ItemType != nil {
		t := entitiesItemType(*payload.ItemType)
		in.ItemType = &t
	}

	item, err := h.usecase.UpdateItem(c.Request.Context(), c.Param("id"), in)
	if err != nil {
		appErr := mapQuoteItemError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromQuoteItem(item))
}

// UpdateItemApproval records the client's decision for a line item. A decision
// is final; the only way to renegotiate is a new quote version.
func (h *QuoteItemHandler) UpdateItemApproval(c *gin.Context) {
	var payload request.UpdateItemApprovalRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidItemPayload.HTTPStatus, errInvalidItemPayload.ToHTTPError())
		return
	}

	status, err := payload.ResolveStatus()
	if err != nil {
		appErr := pkg.NewDomainErrorSimple("INVALID_APPROVAL_STATUS", "Approval status must be approved, rejected or client_supplies_part", http.StatusUnprocessableEntity)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	item, err := h.usecase.UpdateApprovalStatus(c.Request.Context(), c.Param("id"), status)
	if err != nil {
		appErr := mapQuoteItemError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromQuoteItem(item))
}

func (h *QuoteItemHandler) DeleteItem(c *gin.Context) {
	if err := h.usecase.DeleteItem(c.Request.Context(), c.Param("id")); err != nil {
		appErr := mapQuoteItemError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.Status(http.StatusNoContent)
}

func mapQuoteItemError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrInvalidItemID), errors.Is(err, usecase.ErrInvalidQuoteID):
		return pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrInvalidItemType),
		errors.Is(err, usecase.ErrInvalidDescription),
		errors.Is(err, usecase.ErrInvalidQuantity),
		errors.Is(err, usecase.ErrInvalidUnitPrice),
		errors.Is(err, usecase.ErrInvalidWarrantyDays):
		return pkg.NewDomainErrorSimple("INVALID_ITEM_FIELD", err.Error(), http.StatusBadRequest)
	case errors.Is(err, usecase.ErrProductNotFound):
		return pkg.NewDomainErrorSimple("INVALID_PRODUCT_REFERENCE", "Referenced product does not exist", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrQuoteNotFound):
		return pkg.NewDomainErrorSimple("QUOTE_NOT_FOUND", "Quote not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrItemNotFound):
		return pkg.NewDomainErrorSimple("ITEM_NOT_FOUND", "Quote item not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrQuoteLocked):
		return pkg.NewDomainErrorSimple("QUOTE_VERSION_LOCKED", "Only the latest quote version can be modified", http.StatusConflict)
	case errors.Is(err, usecase.ErrItemLocked):
		return pkg.NewDomainErrorSimple("ITEM_DECISION_RECORDED", "Item already has a recorded decision", http.StatusConflict)
	case errors.Is(err, usecase.ErrInvalidStatusTransition):
		return pkg.NewDomainErrorSimple("INVALID_STATUS_TRANSITION", "Approval decisions can only move out of pending", http.StatusUnprocessableEntity)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}

package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"gstpro/internal/domain"
)

// APIResponse is the standard envelope for all API responses.
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *APIError   `json:"error,omitempty"`
}

// APIError holds error details in the response.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// RespondOK sends a 200 success response.
func RespondOK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, APIResponse{Success: true, Data: data})
}

// RespondError sends an error response with the given status code.
func RespondError(c *gin.Context, status int, code, msg string) {
	c.JSON(status, APIResponse{
		Success: false,
		Error:   &APIError{Code: code, Message: msg},
	})
}

// MapDomainError translates domain errors to HTTP status codes and error codes.
func MapDomainError(err error) (status int, code, msg string) {
	switch {
	case errors.Is(err, domain.ErrMalformedJSON):
		return http.StatusBadRequest, "MALFORMED_JSON", "request body is not valid JSON"
	case errors.Is(err, domain.ErrEmptyArray):
		return http.StatusBadRequest, "EMPTY_ARRAY", "empty array provided"
	case errors.Is(err, domain.ErrMissingSections):
		return http.StatusUnprocessableEntity, "MISSING_SECTIONS", "document is missing required sections"
	case errors.Is(err, domain.ErrInvalidLineItem):
		return http.StatusBadRequest, "INVALID_LINE_ITEM", "line item has invalid quantity, rate or discount"
	case errors.Is(err, domain.ErrUnknownSupplyType):
		return http.StatusBadRequest, "UNKNOWN_SUPPLY_TYPE", "unrecognized supply type"
	case errors.Is(err, domain.ErrInvoiceHasNoItems):
		return http.StatusBadRequest, "NO_ITEMS", "invoice has no line items"
	default:
		return http.StatusInternalServerError, "INTERNAL_ERROR", "an internal error occurred"
	}
}

// HandleError maps a domain error and sends the appropriate error response.
func HandleError(c *gin.Context, err error) {
	status, code, msg := MapDomainError(err)
	if status >= 500 {
		requestID, _ := c.Get("request_id")
		log.Printf("[%s] internal error: %v", requestID, err)
	}
	RespondError(c, status, code, msg)
}

package handler

import (
	"fmt"
	"math"
	"net/http"

	"github.com/gin-gonic/gin"

	"gstpro/internal/domain"
	"gstpro/internal/gst"
)

// InvoiceHandler handles invoice total computation endpoints.
type InvoiceHandler struct {
	engine *gst.Engine
}

// NewInvoiceHandler creates a new InvoiceHandler.
func NewInvoiceHandler(engine *gst.Engine) *InvoiceHandler {
	return &InvoiceHandler{engine: engine}
}

// TotalsRequest is the input for a live invoice total computation.
type TotalsRequest struct {
	Items                     []domain.LineItem `json:"items"`
	SellerState               string            `json:"seller_state"`
	BuyerState                string            `json:"buyer_state"`
	AdditionalDiscountPercent float64           `json:"additional_discount_percent"`
	ReverseCharge             bool              `json:"reverse_charge"`
}

// TotalsResponse carries the computed breakdown plus the display
// strings the invoice UI renders alongside it.
type TotalsResponse struct {
	Breakdown      domain.TaxBreakdown `json:"breakdown"`
	TaxType        domain.TaxType      `json:"tax_type"`
	IsRCM          bool                `json:"is_rcm"`
	AmountInWords  string              `json:"amount_in_words"`
	FormattedTotal string              `json:"formatted_total"`
}

// Totals handles POST /api/v1/invoices/totals
// The engine itself is permissive about bad numbers; the HTTP boundary
// is not. Negative or non-finite quantities and rates are rejected
// here so garbage never reaches stored invoices.
func (h *InvoiceHandler) Totals(c *gin.Context) {
	var req TotalsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "MALFORMED_JSON", "request body is not valid JSON")
		return
	}
	if len(req.Items) == 0 {
		HandleError(c, domain.ErrInvoiceHasNoItems)
		return
	}
	for i, item := range req.Items {
		if err := validateLineItem(i, item); err != nil {
			status, code, _ := MapDomainError(err)
			RespondError(c, status, code, err.Error())
			return
		}
	}

	result := h.engine.CalculateGST(req.Items, gst.TaxRates{}, req.SellerState, req.BuyerState, req.AdditionalDiscountPercent)
	if req.ReverseCharge {
		result.IsRCM = true
	}

	taxType := domain.TaxTypeCGSTSGST
	if result.Breakdown.IGSTAmount > 0 {
		taxType = domain.TaxTypeIGST
	}

	RespondOK(c, TotalsResponse{
		Breakdown:      result.Breakdown,
		TaxType:        taxType,
		IsRCM:          result.IsRCM,
		AmountInWords:  gst.NumberToWords(result.Breakdown.GrandTotal),
		FormattedTotal: gst.FormatIndianCurrency(result.Breakdown.GrandTotal),
	})
}

func validateLineItem(index int, item domain.LineItem) error {
	if item.Quantity < 0 || math.IsNaN(item.Quantity) || math.IsInf(item.Quantity, 0) {
		return fmt.Errorf("%w: item %d has invalid quantity", domain.ErrInvalidLineItem, index)
	}
	if item.Rate < 0 || math.IsNaN(item.Rate) || math.IsInf(item.Rate, 0) {
		return fmt.Errorf("%w: item %d has invalid rate", domain.ErrInvalidLineItem, index)
	}
	if item.DiscountPercent < 0 || item.DiscountPercent > 100 {
		return fmt.Errorf("%w: item %d discount must be between 0 and 100", domain.ErrInvalidLineItem, index)
	}
	return nil
}

package handler

import (
	"github.com/gin-gonic/gin"

	"gstpro/internal/gst"
)

// HsnHandler handles HSN/SAC rate lookup endpoints.
type HsnHandler struct{}

// NewHsnHandler creates a new HsnHandler.
func NewHsnHandler() *HsnHandler {
	return &HsnHandler{}
}

// Lookup handles GET /api/v1/hsn/:code
// Unknown codes fall back to the standard rate; the response carries
// the code validation result alongside so the UI can warn without a
// second round trip.
func (h *HsnHandler) Lookup(c *gin.Context) {
	code := c.Param("code")
	isService := c.Query("service") == "true"

	rates := gst.RatesForHSN(code)
	payload := gin.H{
		"code":  code,
		"rates": rates,
	}
	if err := gst.ValidateHSNSAC(code, isService); err != nil {
		payload["warning"] = err.Error()
	}
	RespondOK(c, payload)
}

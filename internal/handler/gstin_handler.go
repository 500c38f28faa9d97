package handler

import (
	"github.com/gin-gonic/gin"

	"gstpro/internal/gst"
)

// GstinHandler handles GSTIN validation endpoints.
type GstinHandler struct{}

// NewGstinHandler creates a new GstinHandler.
func NewGstinHandler() *GstinHandler {
	return &GstinHandler{}
}

// Validate handles GET /api/v1/gstin/:gstin
// Validation is never fatal: a structurally invalid GSTIN comes back
// with valid=false and a reason, not an error status.
func (h *GstinHandler) Validate(c *gin.Context) {
	info := gst.ValidateGSTIN(c.Param("gstin"))
	RespondOK(c, info)
}

// States handles GET /api/v1/states
func (h *GstinHandler) States(c *gin.Context) {
	RespondOK(c, gst.States())
}

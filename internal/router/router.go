package router

import (
	"github.com/gin-gonic/gin"

	"gstpro/internal/handler"
	"gstpro/internal/middleware"
)

// Setup configures the Gin engine with all routes and middleware.
func Setup(
	corsOrigins []string,
	invoiceH *handler.InvoiceHandler,
	nicH *handler.NicHandler,
	gstinH *handler.GstinHandler,
	hsnH *handler.HsnHandler,
	healthH *handler.HealthHandler,
) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.CORS(corsOrigins))

	// Health check
	r.GET("/healthz", healthH.Liveness)

	v1 := r.Group("/api/v1")

	// Live totals for the invoice editing UI
	invoices := v1.Group("/invoices")
	invoices.POST("/totals", invoiceH.Totals)

	// NIC e-Invoice interchange
	nicGroup := v1.Group("/nic")
	nicGroup.POST("/import", nicH.Import)
	nicGroup.POST("/export", nicH.Export)

	// Reference lookups
	v1.GET("/gstin/:gstin", gstinH.Validate)
	v1.GET("/states", gstinH.States)
	v1.GET("/hsn/:code", hsnH.Lookup)

	return r
}

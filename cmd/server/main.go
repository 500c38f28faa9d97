package main

import (
	"fmt"
	"log"

	"gstpro/internal/config"
	"gstpro/internal/gst"
	"gstpro/internal/handler"
	"gstpro/internal/nic"
	"gstpro/internal/router"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Initialize the tax core
	engine := gst.NewEngine(cfg.Tax.RoundTotal)
	importer := nic.NewImporter(engine)
	exporter := nic.NewExporter()

	// Initialize handlers
	invoiceH := handler.NewInvoiceHandler(engine)
	nicH := handler.NewNicHandler(importer, exporter)
	gstinH := handler.NewGstinHandler()
	hsnH := handler.NewHsnHandler()
	healthH := handler.NewHealthHandler()

	// Setup router
	r := router.Setup(cfg.CORS.AllowedOrigins, invoiceH, nicH, gstinH, hsnH, healthH)

	log.Printf("Server starting on %s", cfg.Server.Port)
	if err := r.Run(cfg.Server.Port); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}

	return nil
}

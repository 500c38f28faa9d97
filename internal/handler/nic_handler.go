package handler

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"gstpro/internal/domain"
	"gstpro/internal/nic"
)

// NicHandler handles NIC e-Invoice import and export endpoints.
type NicHandler struct {
	importer *nic.Importer
	exporter *nic.Exporter
}

// NewNicHandler creates a new NicHandler.
func NewNicHandler(importer *nic.Importer, exporter *nic.Exporter) *NicHandler {
	return &NicHandler{importer: importer, exporter: exporter}
}

// Import handles POST /api/v1/nic/import
// The body is taken raw: the importer does its own shape detection, so
// canonical NIC documents, signed envelopes, arrays and loose
// third-party JSON all land on this one route.
func (h *NicHandler) Import(c *gin.Context) {
	raw, err := io.ReadAll(c.Request.Body)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "MALFORMED_JSON", "could not read request body")
		return
	}

	invoice, err := h.importer.Import(raw)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, invoice)
}

// Export handles POST /api/v1/nic/export
func (h *NicHandler) Export(c *gin.Context) {
	var invoice domain.Invoice
	if err := c.ShouldBindJSON(&invoice); err != nil {
		RespondError(c, http.StatusBadRequest, "MALFORMED_JSON", "request body is not a valid invoice")
		return
	}
	if len(invoice.Items) == 0 {
		HandleError(c, domain.ErrInvoiceHasNoItems)
		return
	}
	RespondOK(c, h.exporter.Export(&invoice))
}

package nic

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gstpro/internal/domain"
)

func testExporter() *Exporter {
	ex := NewExporter()
	ex.now = func() time.Time { return time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC) }
	return ex
}

func sampleInvoice() *domain.Invoice {
	return &domain.Invoice{
		InvoiceNumber: "INV-001",
		InvoiceDate:   "2024-06-01",
		DueDate:       "2024-07-01",
		DocumentType:  domain.DocumentTypeInvoice,
		SupplyType:    domain.SupplyTypeB2B,
		Seller: domain.Party{
			Name: "Acme Traders", Address: "12 MG Road, Fort", GSTIN: "27AAAAA0000A1Z5",
			State: "Maharashtra", StateCode: "27", Pin: "400001",
		},
		Buyer: domain.Party{
			Name: "Bharat Retail", Address: "1 Brigade Road", GSTIN: "29BBBBB0000B1Z4",
			State: "Karnataka", StateCode: "29", Pin: "560001",
		},
		Items: []domain.LineItem{{
			ProductName: "Widget", HSNSAC: "8471", Quantity: 10, Rate: 100,
			TaxRate: 18, IsTaxable: true, Total: 1000, IGSTAmount: 180,
		}},
		Totals: domain.TaxBreakdown{
			SubTotal: 1000, TaxableAmount: 1000, IGSTAmount: 180,
			TotalTax: 180, GrandTotal: 1180,
		},
		PaymentStatus: domain.PaymentStatusUnpaid,
	}
}

func TestExport_Canonical(t *testing.T) {
	doc := testExporter().Export(sampleInvoice())

	assert.Equal(t, SchemaVersion, doc.Version)

	require.NotNil(t, doc.TranDtls)
	assert.Equal(t, "GST", doc.TranDtls.TaxSch)
	assert.Equal(t, "B2B", doc.TranDtls.SupTyp)
	assert.Equal(t, "N", doc.TranDtls.RegRev)

	require.NotNil(t, doc.DocDtls)
	assert.Equal(t, "INV", doc.DocDtls.Typ)
	assert.Equal(t, "INV-001", doc.DocDtls.No)
	assert.Equal(t, "2024-06-01", doc.DocDtls.Dt)

	require.NotNil(t, doc.SellerDtls)
	assert.Equal(t, "27", doc.SellerDtls.Stcd)
	require.NotNil(t, doc.BuyerDtls)
	assert.Equal(t, "29", doc.BuyerDtls.Stcd)
	assert.Equal(t, "29", doc.BuyerDtls.Pos)

	require.Len(t, doc.ItemList, 1)
	item := doc.ItemList[0]
	assert.Equal(t, "1", item.SlNo)
	assert.Equal(t, "N", item.IsServc)
	require.NotNil(t, item.AssAmt)
	assert.InDelta(t, 1000.0, *item.AssAmt, 1e-9)
	require.NotNil(t, item.TotItemVal)
	assert.InDelta(t, 1180.0, *item.TotItemVal, 1e-9)

	require.NotNil(t, doc.ValDtls)
	assert.InDelta(t, 1000.0, doc.ValDtls.AssVal, 1e-9)
	assert.InDelta(t, 180.0, doc.ValDtls.IgstVal, 1e-9)
	assert.InDelta(t, 1180.0, doc.ValDtls.TotInvVal, 1e-9)
}

func TestExport_ReverseChargeFlag(t *testing.T) {
	inv := sampleInvoice()
	inv.ReverseCharge = true

	doc := testExporter().Export(inv)
	assert.Equal(t, "Y", doc.TranDtls.RegRev)
}

func TestExport_UnregisteredBuyerGetsURP(t *testing.T) {
	inv := sampleInvoice()
	inv.Buyer.GSTIN = ""
	inv.SupplyType = domain.SupplyTypeB2C

	doc := testExporter().Export(inv)
	assert.Equal(t, "URP", doc.BuyerDtls.Gstin)
}

func TestExport_ExportSupplyClearsBuyerGSTIN(t *testing.T) {
	inv := sampleInvoice()
	inv.SupplyType = domain.SupplyTypeExportWithoutTax

	doc := testExporter().Export(inv)
	assert.Equal(t, "EXPWOP", doc.TranDtls.SupTyp)
	assert.Empty(t, doc.BuyerDtls.Gstin)
	assert.Equal(t, "96", doc.BuyerDtls.Pos)
	assert.Equal(t, "96", doc.BuyerDtls.Stcd)
}

func TestExport_PayDtls(t *testing.T) {
	t.Run("partial_payment", func(t *testing.T) {
		inv := sampleInvoice()
		inv.PaymentStatus = domain.PaymentStatusPartial
		inv.PaidAmount = 500

		doc := testExporter().Export(inv)
		require.NotNil(t, doc.PayDtls)
		assert.InDelta(t, 500.0, doc.PayDtls.PaidAmt, 1e-9)
		assert.InDelta(t, 680.0, doc.PayDtls.PaymtDue, 1e-9)
	})

	t.Run("paid_means_zero_due", func(t *testing.T) {
		inv := sampleInvoice()
		inv.PaymentStatus = domain.PaymentStatusPaid
		inv.PaidAmount = 1180

		doc := testExporter().Export(inv)
		require.NotNil(t, doc.PayDtls)
		assert.Zero(t, doc.PayDtls.PaymtDue)
	})

	t.Run("absent_without_status", func(t *testing.T) {
		inv := sampleInvoice()
		inv.PaymentStatus = ""

		doc := testExporter().Export(inv)
		assert.Nil(t, doc.PayDtls)
	})
}

func TestExport_StateCodeDerivedFromName(t *testing.T) {
	inv := sampleInvoice()
	inv.Seller.StateCode = ""

	doc := testExporter().Export(inv)
	assert.Equal(t, "27", doc.SellerDtls.Stcd)
}

func TestExport_ApprovalEnvelopeCarriedThrough(t *testing.T) {
	inv := sampleInvoice()
	inv.Approval = &domain.Approval{IRN: "a1b2c3", AckNo: "12345", AckDate: "2024-06-01", Status: "ACT"}

	doc := testExporter().Export(inv)
	assert.Equal(t, "a1b2c3", doc.Irn)
	assert.Equal(t, "12345", doc.AckNo.String())
}

// Importing a canonical document and exporting it again must reproduce
// the declared value totals and item amounts.
func TestRoundTrip_CanonicalValDtlsPreserved(t *testing.T) {
	im := testImporter()

	invoice, err := im.Import([]byte(canonicalDoc()))
	require.NoError(t, err)

	doc := testExporter().Export(invoice)
	require.NotNil(t, doc.ValDtls)
	assert.InDelta(t, 1000.0, doc.ValDtls.AssVal, 1e-6)
	assert.InDelta(t, 180.0, doc.ValDtls.IgstVal, 1e-6)
	assert.InDelta(t, 0.0, doc.ValDtls.CgstVal, 1e-6)
	assert.InDelta(t, 1180.0, doc.ValDtls.TotInvVal, 1e-6)

	require.Len(t, doc.ItemList, 1)
	assert.InDelta(t, 1000.0, *doc.ItemList[0].AssAmt, 1e-6)
	assert.Equal(t, "2024-06-01", doc.DocDtls.Dt)
}

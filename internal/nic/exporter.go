package nic

import (
	"encoding/json"
	"strconv"
	"time"

	"gstpro/internal/domain"
	"gstpro/internal/gst"
)

// SchemaVersion is the NIC e-Invoice schema version we emit.
const SchemaVersion = "1.1"

// Exporter builds canonical NIC documents from internal invoices.
type Exporter struct {
	now func() time.Time
}

// NewExporter returns an Exporter.
func NewExporter() *Exporter {
	return &Exporter{now: time.Now}
}

// Export renders the invoice in the canonical NIC schema. Field names
// and nesting are a bit-exact contract with the government portal;
// dates are re-serialized as YYYY-MM-DD and items get a 1-based SlNo.
func (ex *Exporter) Export(invoice *domain.Invoice) *Document {
	doc := &Document{
		Version: SchemaVersion,
		TranDtls: &TranDtls{
			TaxSch: "GST",
			SupTyp: supplyCode(invoice.SupplyType),
			RegRev: boolFlag(invoice.ReverseCharge),
		},
		DocDtls: &DocDtls{
			Typ:   docTypeCode(invoice.DocumentType),
			No:    invoice.InvoiceNumber,
			Dt:    NormalizeDate(invoice.InvoiceDate, ex.now()),
			DueDt: NormalizeDate(invoice.DueDate, ex.now()),
		},
		SellerDtls: partyToDtls(invoice.Seller),
	}

	buyer := partyToDtls(invoice.Buyer)
	pos := buyer.Stcd
	if invoice.SupplyType.IsExport() {
		// Exports have no Indian place of supply and no buyer GSTIN.
		pos = "96"
		buyer.Gstin = ""
		buyer.Stcd = "96"
	} else if buyer.Gstin == "" {
		buyer.Gstin = "URP"
	}
	doc.BuyerDtls = &BuyerDtls{PartyDtls: *buyer, Pos: pos}

	for i, item := range invoice.Items {
		doc.ItemList = append(doc.ItemList, itemToNIC(i+1, item))
	}

	t := invoice.Totals
	doc.ValDtls = &ValDtls{
		AssVal:    t.TaxableAmount,
		CgstVal:   t.CGSTAmount,
		SgstVal:   t.SGSTAmount,
		IgstVal:   t.IGSTAmount,
		CesVal:    t.CessAmount,
		Discount:  t.Discount,
		RndOffAmt: t.RoundOff,
		TotInvVal: t.GrandTotal,
	}

	if invoice.PaymentStatus != "" {
		due := t.GrandTotal - invoice.PaidAmount
		if invoice.PaymentStatus == domain.PaymentStatusPaid {
			due = 0
		}
		doc.PayDtls = &PayDtls{
			Nm:       invoice.Buyer.Name,
			PaidAmt:  invoice.PaidAmount,
			PaymtDue: due,
		}
	}

	if a := invoice.Approval; a != nil {
		doc.Irn = a.IRN
		doc.AckNo = json.Number(a.AckNo)
		doc.AckDt = a.AckDate
		doc.Status = a.Status
		doc.EwbNo = json.Number(a.EwbNo)
		doc.EwbDt = a.EwbDate
		doc.EwbValidTill = a.EwbValidTill
	}
	return doc
}

func itemToNIC(slNo int, item domain.LineItem) Item {
	gross := item.Quantity * item.Rate
	total := item.Total
	if total == 0 {
		total = gst.LineTotal(item.Quantity, item.Rate, item.DiscountPercent)
	}
	taxTotal := item.CGSTAmount + item.SGSTAmount + item.IGSTAmount + item.CessAmount

	return Item{
		SlNo:       strconv.Itoa(slNo),
		PrdDesc:    item.ProductName,
		IsServc:    boolFlag(item.IsService),
		HsnCd:      item.HSNSAC,
		Qty:        floatPtr(item.Quantity),
		Unit:       item.Unit,
		UnitPrice:  floatPtr(item.Rate),
		TotAmt:     floatPtr(gross),
		Discount:   gross - total,
		AssAmt:     floatPtr(total),
		GstRt:      item.TaxRate,
		IgstAmt:    item.IGSTAmount,
		CgstAmt:    item.CGSTAmount,
		SgstAmt:    item.SGSTAmount,
		CesAmt:     item.CessAmount,
		TotItemVal: floatPtr(total + taxTotal),
	}
}

func partyToDtls(p domain.Party) *PartyDtls {
	stcd := p.StateCode
	if stcd == "" {
		stcd = gst.StateCodeFor(p.State)
	}
	return &PartyDtls{
		Gstin: p.GSTIN,
		LglNm: p.Name,
		Addr1: p.Address,
		Loc:   p.State,
		Pin:   json.Number(p.Pin),
		Stcd:  stcd,
		Em:    p.Email,
		Ph:    p.Phone,
	}
}

func supplyCode(s domain.SupplyType) string {
	if code, ok := domain.NICSupplyCodes[s]; ok {
		return code
	}
	return "B2B"
}

func docTypeCode(d domain.DocumentType) string {
	if code, ok := domain.NICDocTypeCodes[d]; ok {
		return code
	}
	return "INV"
}

func boolFlag(b bool) string {
	if b {
		return "Y"
	}
	return "N"
}

func floatPtr(v float64) *float64 { return &v }

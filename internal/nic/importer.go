package nic

import (
	"encoding/json"
	"fmt"
	"log"
	"math/rand"
	"strings"
	"time"

	"gstpro/internal/domain"
	"gstpro/internal/gst"
)

// Importer normalizes raw NIC, signed-envelope, array-wrapped or loose
// third-party JSON into the internal invoice representation. The clock
// and random source are injectable so fallback invoice numbers are
// reproducible in tests.
type Importer struct {
	engine *gst.Engine
	now    func() time.Time
	randN  func(int) int
}

// NewImporter returns an Importer backed by the given tax engine.
func NewImporter(engine *gst.Engine) *Importer {
	return &Importer{
		engine: engine,
		now:    time.Now,
		randN:  rand.Intn,
	}
}

// Import classifies raw JSON and dispatches to the matching
// normalization path. Structured failures come back as wrapped
// sentinel errors from the domain package; nothing panics on bad
// input data.
func (im *Importer) Import(raw []byte) (*domain.Invoice, error) {
	shape, err := Classify(raw)
	if err != nil {
		return nil, err
	}

	switch shape {
	case ShapeArray:
		return im.importArray(raw)
	case ShapeSignedEnvelope:
		return im.importEnvelope(raw)
	case ShapeCanonical:
		return im.importCanonical(raw)
	case ShapeLoose:
		return im.importLoose(raw)
	default:
		return nil, fmt.Errorf("%w: unhandled shape %s", domain.ErrMalformedJSON, shape)
	}
}

// importArray recurses on the first element of a JSON array wrapper.
func (im *Importer) importArray(raw []byte) (*domain.Invoice, error) {
	var elements []json.RawMessage
	if err := json.Unmarshal(raw, &elements); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrMalformedJSON, err)
	}
	if len(elements) == 0 {
		return nil, domain.ErrEmptyArray
	}
	return im.Import(elements[0])
}

// importEnvelope unwraps the signed payload and recurses on it. A
// token that cannot be decoded is not fatal: the outer envelope often
// carries the full document alongside the signature, so we fall back
// to reading it as canonical NIC. The approval fields of the envelope
// are attached to the result either way.
func (im *Importer) importEnvelope(raw []byte) (*domain.Invoice, error) {
	var envelope Document
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrMalformedJSON, err)
	}

	var invoice *domain.Invoice
	payload, err := DecodeSignedPayload(envelope.SignedInvoice)
	if err == nil {
		invoice, err = im.Import(payload)
	}
	if err != nil {
		log.Printf("WARN: signed payload unusable (%v), reading envelope as canonical", err)
		invoice, err = im.importCanonical(raw)
		if err != nil {
			return nil, err
		}
	}

	invoice.Approval = &domain.Approval{
		IRN:          envelope.Irn,
		AckNo:        envelope.AckNo.String(),
		AckDate:      envelope.AckDt,
		Status:       envelope.Status,
		EwbNo:        envelope.EwbNo.String(),
		EwbDate:      envelope.EwbDt,
		EwbValidTill: envelope.EwbValidTill,
	}
	return invoice, nil
}

// importCanonical normalizes a canonical NIC document. Declared
// ValDtls totals are authoritative and copied verbatim, never
// recomputed from items; the government document is the compliance
// record.
func (im *Importer) importCanonical(raw []byte) (*domain.Invoice, error) {
	var doc Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrMalformedJSON, err)
	}

	var missing []string
	if doc.DocDtls == nil {
		missing = append(missing, "DocDtls")
	}
	if doc.SellerDtls == nil {
		missing = append(missing, "SellerDtls")
	}
	if doc.BuyerDtls == nil {
		missing = append(missing, "BuyerDtls")
	}
	if len(doc.ItemList) == 0 {
		missing = append(missing, "ItemList")
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", domain.ErrMissingSections, strings.Join(missing, ", "))
	}

	invoice := &domain.Invoice{
		InvoiceNumber: doc.DocDtls.No,
		DocumentType:  domain.DocumentTypeFromNIC(doc.DocDtls.Typ),
		Seller:        partyFromDtls(doc.SellerDtls),
		Buyer:         partyFromDtls(&doc.BuyerDtls.PartyDtls),
		PaymentStatus: domain.PaymentStatusUnpaid,
	}
	if invoice.InvoiceNumber == "" {
		invoice.InvoiceNumber = im.fallbackInvoiceNumber()
	}
	if invoice.Buyer.StateCode == "" {
		invoice.Buyer.StateCode = doc.BuyerDtls.Pos
		if name, ok := gst.StateName(doc.BuyerDtls.Pos); ok {
			invoice.Buyer.State = name
		}
	}

	invoice.InvoiceDate = NormalizeDate(doc.DocDtls.Dt, im.now())
	if doc.DocDtls.DueDt != "" {
		invoice.DueDate = NormalizeDate(doc.DocDtls.DueDt, im.now())
	} else {
		invoice.DueDate = addDays(invoice.InvoiceDate, 30)
	}

	invoice.SupplyType = im.deriveSupplyType(&doc)
	if doc.TranDtls != nil && strings.EqualFold(doc.TranDtls.RegRev, "Y") {
		invoice.ReverseCharge = true
	}

	for _, it := range doc.ItemList {
		invoice.Items = append(invoice.Items, lineItemFromNIC(it))
	}

	if doc.ValDtls != nil {
		v := doc.ValDtls
		invoice.Totals = domain.TaxBreakdown{
			SubTotal:      v.AssVal + v.Discount,
			Discount:      v.Discount,
			TaxableAmount: v.AssVal,
			CGSTAmount:    v.CgstVal,
			SGSTAmount:    v.SgstVal,
			IGSTAmount:    v.IgstVal,
			CessAmount:    v.CesVal,
			TotalTax:      v.CgstVal + v.SgstVal + v.IgstVal + v.CesVal,
			RoundOff:      v.RndOffAmt,
			GrandTotal:    v.TotInvVal,
		}
	} else {
		applyIGST := gst.ShouldApplyIGST(invoice.Seller.State, invoice.Buyer.State)
		invoice.Totals = im.engine.CalculateInvoiceTaxes(invoice.Items, gst.TaxRates{}, applyIGST, 0)
	}

	if invoice.Totals.IGSTAmount > 0 {
		invoice.TaxType = domain.TaxTypeIGST
	} else {
		invoice.TaxType = domain.TaxTypeCGSTSGST
	}

	return invoice, nil
}

// deriveSupplyType picks the supply type in precedence order: the
// declared TranDtls code, an SEZ marker embedded in the buyer GSTIN
// (with/without tax decided by whether the two state codes match),
// then registered buyer means B2B, else B2C.
func (im *Importer) deriveSupplyType(doc *Document) domain.SupplyType {
	if doc.TranDtls != nil {
		code := strings.ToUpper(strings.TrimSpace(doc.TranDtls.SupTyp))
		if code != "" && code != "B2B" {
			return domain.SupplyTypeFromNIC(code)
		}
	}

	buyerGSTIN := strings.ToUpper(strings.TrimSpace(doc.BuyerDtls.Gstin))
	if strings.Contains(buyerGSTIN, "SEZ") {
		if doc.SellerDtls.Stcd == doc.BuyerDtls.Stcd {
			return domain.SupplyTypeSEZWithTax
		}
		return domain.SupplyTypeSEZWithoutTax
	}
	if buyerGSTIN != "" && buyerGSTIN != "URP" {
		return domain.SupplyTypeB2B
	}
	return domain.SupplyTypeB2C
}

// fallbackInvoiceNumber mints a placeholder number for documents that
// arrive without one.
func (im *Importer) fallbackInvoiceNumber() string {
	return fmt.Sprintf("BP-INV-%s-%05d", im.now().Format("06"), im.randN(100000))
}

// lineItemFromNIC converts one ItemList entry. Quantity defaults to 1
// when absent or zero so the rate derivation never divides by zero.
func lineItemFromNIC(it Item) domain.LineItem {
	qty := 1.0
	if it.Qty != nil && *it.Qty > 0 {
		qty = *it.Qty
	}

	var rate float64
	switch {
	case it.UnitPrice != nil:
		rate = *it.UnitPrice
	case it.AssAmt != nil:
		rate = *it.AssAmt / qty
	}

	var total float64
	if it.AssAmt != nil {
		total = *it.AssAmt
	} else {
		total = gst.LineTotal(qty, rate, it.Discount)
	}

	return domain.LineItem{
		ProductName:     it.ItemName(),
		HSNSAC:          it.HsnCd,
		Quantity:        qty,
		Rate:            rate,
		Unit:            it.Unit,
		DiscountPercent: it.Discount,
		TaxRate:         it.GstRt,
		IsTaxable:       true,
		IsService:       strings.EqualFold(it.IsServc, "Y"),
		Total:           total,
		CGSTAmount:      it.CgstAmt,
		SGSTAmount:      it.SgstAmt,
		IGSTAmount:      it.IgstAmt,
		CessAmount:      it.CesAmt,
	}
}

// partyFromDtls flattens a NIC party section, joining the two address
// lines with a comma.
func partyFromDtls(p *PartyDtls) domain.Party {
	address := p.Addr1
	if p.Addr2 != "" {
		address += ", " + p.Addr2
	}
	party := domain.Party{
		Name:      p.LglNm,
		Address:   address,
		GSTIN:     p.Gstin,
		StateCode: p.Stcd,
		Pin:       p.Pin.String(),
		Email:     p.Em,
		Phone:     p.Ph,
	}
	if party.Name == "" {
		party.Name = p.TrdNm
	}
	if name, ok := gst.StateName(p.Stcd); ok {
		party.State = name
	} else if p.Loc != "" {
		party.State = p.Loc
	}
	return party
}

// addDays shifts an ISO date string by n days.
func addDays(isoDay string, n int) string {
	t, err := time.Parse(isoDate, isoDay)
	if err != nil {
		return isoDay
	}
	return t.AddDate(0, 0, n).Format(isoDate)
}

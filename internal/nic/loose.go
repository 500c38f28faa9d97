package nic

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"gstpro/internal/domain"
	"gstpro/internal/gst"
)

// ImportedField is a value recovered from a loose document, tagged
// with the key it was found under so normalization decisions stay
// traceable.
type ImportedField[T any] struct {
	Value     T
	SourceKey string
	Found     bool
}

// Or returns the probed value, or fallback when no candidate matched.
func (f ImportedField[T]) Or(fallback T) T {
	if f.Found {
		return f.Value
	}
	return fallback
}

// Candidate key lists per logical field, evaluated in order. First
// match wins; order encodes which vendors' conventions we trust most.
var (
	sellerKeys  = []string{"seller", "business", "supplier", "from", "SellerDtls", "BusinessDetails"}
	buyerKeys   = []string{"buyer", "customer", "client", "to", "BuyerDtls", "CustomerDetails"}
	itemsKeys   = []string{"items", "line_items", "lineItems", "products", "ItemList"}
	numberKeys  = []string{"invoice_number", "invoiceNumber", "invoice_no", "number", "no"}
	dateKeys    = []string{"invoice_date", "invoiceDate", "date", "dt"}
	dueDateKeys = []string{"due_date", "dueDate"}
	discPctKeys = []string{"additional_discount", "discount_percent", "discountPercent"}

	partyNameKeys  = []string{"name", "legal_name", "legalName", "company", "LglNm"}
	partyGstinKeys = []string{"gstin", "gst_number", "gstNumber", "gst", "Gstin"}
	partyAddrKeys  = []string{"address", "addr", "address1", "Addr1"}
	partyStateKeys = []string{"state", "State"}
	partyStcdKeys  = []string{"state_code", "stateCode", "Stcd"}
	partyPinKeys   = []string{"pin", "pincode", "zip", "Pin"}
	partyEmailKeys = []string{"email", "Em"}
	partyPhoneKeys = []string{"phone", "mobile", "Ph"}

	itemNameKeys  = []string{"product_name", "productName", "item_name", "name", "description", "PrdDesc"}
	itemHSNKeys   = []string{"hsn_sac", "hsn", "hsn_code", "hsnCode", "sac", "HsnCd"}
	itemQtyKeys   = []string{"quantity", "qty", "Qty"}
	itemRateKeys  = []string{"rate", "unit_price", "unitPrice", "price", "UnitPrice"}
	itemDiscKeys  = []string{"discount", "discount_percent", "discountPercent", "Discount"}
	itemTaxKeys   = []string{"tax_rate", "taxRate", "gst_rate", "gstRate", "GstRt"}
	itemTotalKeys = []string{"total", "line_total", "amount", "TotItemVal"}
	itemUnitKeys  = []string{"unit", "uom", "Unit"}
)

// importLoose performs best-effort normalization of third-party JSON.
// Unlike the canonical path, totals here are recomputed from the
// normalized items: ad-hoc documents carry no authoritative declared
// values.
func (im *Importer) importLoose(raw []byte) (*domain.Invoice, error) {
	var obj map[string]any
	if err := json.Unmarshal(raw, &obj); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrMalformedJSON, err)
	}

	seller := loosePartyFrom(probeObject(obj, sellerKeys...).Or(nil), "Business")
	buyer := loosePartyFrom(probeObject(obj, buyerKeys...).Or(nil), "Customer")

	invoice := &domain.Invoice{
		InvoiceNumber: probeString(obj, numberKeys...).Or(im.fallbackInvoiceNumber()),
		DocumentType:  domain.DocumentTypeInvoice,
		Seller:        seller,
		Buyer:         buyer,
		PaymentStatus: domain.PaymentStatusUnpaid,
	}

	invoice.InvoiceDate = NormalizeDate(probeString(obj, dateKeys...).Or(""), im.now())
	if due := probeString(obj, dueDateKeys...); due.Found {
		invoice.DueDate = NormalizeDate(due.Value, im.now())
	} else {
		invoice.DueDate = addDays(invoice.InvoiceDate, 30)
	}

	for _, rawItem := range probeArray(obj, itemsKeys...).Or(nil) {
		itemObj, ok := rawItem.(map[string]any)
		if !ok {
			continue
		}
		invoice.Items = append(invoice.Items, looseLineItem(itemObj))
	}

	if buyer.GSTIN != "" && !strings.EqualFold(buyer.GSTIN, "URP") {
		invoice.SupplyType = domain.SupplyTypeB2B
	} else {
		invoice.SupplyType = domain.SupplyTypeB2C
	}

	applyIGST := gst.ShouldApplyIGST(seller.State, buyer.State)
	discount := probeFloat(obj, discPctKeys...).Or(0)
	invoice.Totals = im.engine.CalculateInvoiceTaxes(invoice.Items, gst.TaxRates{}, applyIGST, discount)
	if invoice.Totals.IGSTAmount > 0 {
		invoice.TaxType = domain.TaxTypeIGST
	} else {
		invoice.TaxType = domain.TaxTypeCGSTSGST
	}
	return invoice, nil
}

func loosePartyFrom(obj map[string]any, defaultName string) domain.Party {
	party := domain.Party{
		Name:      probeString(obj, partyNameKeys...).Or(defaultName),
		GSTIN:     probeString(obj, partyGstinKeys...).Or(""),
		Address:   probeString(obj, partyAddrKeys...).Or(""),
		State:     probeString(obj, partyStateKeys...).Or(""),
		StateCode: probeString(obj, partyStcdKeys...).Or(""),
		Pin:       probeString(obj, partyPinKeys...).Or(""),
		Email:     probeString(obj, partyEmailKeys...).Or(""),
		Phone:     probeString(obj, partyPhoneKeys...).Or(""),
	}
	if party.State == "" && party.GSTIN != "" {
		if name := gst.StateFromGSTIN(party.GSTIN); name != "" {
			party.State = name
		}
	}
	if party.StateCode == "" && party.State != "" {
		party.StateCode = gst.StateCodeFor(party.State)
	}
	return party
}

func looseLineItem(obj map[string]any) domain.LineItem {
	qty := probeFloat(obj, itemQtyKeys...).Or(1)
	if qty <= 0 {
		qty = 1
	}
	rate := probeFloat(obj, itemRateKeys...).Or(0)
	discount := probeFloat(obj, itemDiscKeys...).Or(0)

	item := domain.LineItem{
		ProductName:     probeString(obj, itemNameKeys...).Or(""),
		HSNSAC:          probeString(obj, itemHSNKeys...).Or(""),
		Quantity:        qty,
		Rate:            rate,
		Unit:            probeString(obj, itemUnitKeys...).Or(""),
		DiscountPercent: discount,
		TaxRate:         probeFloat(obj, itemTaxKeys...).Or(0),
		IsTaxable:       true,
	}

	if total := probeFloat(obj, itemTotalKeys...); total.Found && total.Value > 0 {
		item.Total = total.Value
		if item.Rate == 0 {
			item.Rate = total.Value / qty
		}
	} else {
		item.Total = gst.LineTotal(qty, rate, discount)
	}
	return item
}

// probeString tries each key in order and returns the first value
// representable as a non-empty string.
func probeString(obj map[string]any, keys ...string) ImportedField[string] {
	for _, key := range keys {
		v, ok := obj[key]
		if !ok || v == nil {
			continue
		}
		switch s := v.(type) {
		case string:
			if strings.TrimSpace(s) != "" {
				return ImportedField[string]{Value: strings.TrimSpace(s), SourceKey: key, Found: true}
			}
		case float64:
			return ImportedField[string]{Value: strconv.FormatFloat(s, 'f', -1, 64), SourceKey: key, Found: true}
		}
	}
	return ImportedField[string]{}
}

// probeFloat tries each key in order, accepting numbers and numeric
// strings.
func probeFloat(obj map[string]any, keys ...string) ImportedField[float64] {
	for _, key := range keys {
		v, ok := obj[key]
		if !ok || v == nil {
			continue
		}
		switch n := v.(type) {
		case float64:
			return ImportedField[float64]{Value: n, SourceKey: key, Found: true}
		case string:
			if parsed, err := strconv.ParseFloat(strings.TrimSpace(n), 64); err == nil {
				return ImportedField[float64]{Value: parsed, SourceKey: key, Found: true}
			}
		}
	}
	return ImportedField[float64]{}
}

func probeObject(obj map[string]any, keys ...string) ImportedField[map[string]any] {
	for _, key := range keys {
		if nested, ok := obj[key].(map[string]any); ok {
			return ImportedField[map[string]any]{Value: nested, SourceKey: key, Found: true}
		}
	}
	return ImportedField[map[string]any]{}
}

func probeArray(obj map[string]any, keys ...string) ImportedField[[]any] {
	for _, key := range keys {
		if nested, ok := obj[key].([]any); ok {
			return ImportedField[[]any]{Value: nested, SourceKey: key, Found: true}
		}
	}
	return ImportedField[[]any]{}
}

package gst

import (
	"math"
	"strings"

	"gstpro/internal/domain"
)

// totalTolerance is the float tolerance when comparing a stored line
// total against its derived value.
const totalTolerance = 0.01

// ItemTax holds the computed tax components for a single line item.
type ItemTax struct {
	TaxableAmount float64 `json:"taxable_amount"`
	CGST          float64 `json:"cgst"`
	SGST          float64 `json:"sgst"`
	IGST          float64 `json:"igst"`
	Cess          float64 `json:"cess"`
}

// Result is an invoice-level computation outcome. IsRCM tags reverse
// charge invoices for downstream reporting; the arithmetic is identical.
type Result struct {
	Breakdown domain.TaxBreakdown `json:"breakdown"`
	IsRCM     bool                `json:"is_rcm"`
}

// ShouldApplyIGST decides the split mode for a supply: different
// seller and buyer states mean inter-state, which attracts IGST.
// Comparison is case-insensitive. This single boolean gates every
// downstream split decision; IGST is never mixed with CGST/SGST for
// the same item.
func ShouldApplyIGST(sourceState, destinationState string) bool {
	return !strings.EqualFold(strings.TrimSpace(sourceState), strings.TrimSpace(destinationState))
}

// LineTotal derives a line amount from quantity, rate and the
// item-level discount percentage. Negative or NaN quantity and rate
// collapse to zero rather than erroring, mirroring permissive form
// entry; the discount is clamped to [0, 100].
func LineTotal(quantity, rate, discountPercent float64) float64 {
	if math.IsNaN(quantity) || math.IsNaN(rate) || quantity < 0 || rate < 0 {
		return 0
	}
	if math.IsNaN(discountPercent) {
		discountPercent = 0
	}
	discountPercent = math.Min(math.Max(discountPercent, 0), 100)
	return quantity * rate * (1 - discountPercent/100)
}

// ResolveTotal returns the trustworthy total for a line item: the
// stored total when it agrees with the derived value within tolerance,
// the derived value otherwise. Stored totals from untrusted input are
// never taken at face value.
func ResolveTotal(item domain.LineItem) float64 {
	derived := LineTotal(item.Quantity, item.Rate, item.DiscountPercent)
	if item.Total == 0 {
		return derived
	}
	if math.Abs(item.Total-derived) <= totalTolerance {
		return item.Total
	}
	return derived
}

// Engine computes GST amounts for items and invoices. It is stateless
// apart from its configuration and safe for concurrent use.
type Engine struct {
	roundTotal bool
}

// NewEngine returns an Engine. When roundTotal is set, invoice grand
// totals are rounded to the nearest rupee with the difference reported
// as RoundOff.
func NewEngine(roundTotal bool) *Engine {
	return &Engine{roundTotal: roundTotal}
}

// ratesFor resolves the effective rates for an item: an explicit
// per-item combined rate wins, then the invoice-level rates, then the
// HSN table default.
func ratesFor(item domain.LineItem, invoiceRates TaxRates) TaxRates {
	if item.TaxRate > 0 {
		return SplitRateWithCess(item.TaxRate, invoiceRates.CessRate)
	}
	if invoiceRates != (TaxRates{}) {
		return invoiceRates
	}
	return RatesForHSN(item.HSNSAC)
}

// CalculateItemTaxes computes the tax components for one line item.
// The item total is already net of its item-level discount and is used
// as the taxable base. Non-taxable items yield zero tax but keep their
// taxable amount. Cess applies regardless of the IGST/CGST choice.
func (e *Engine) CalculateItemTaxes(item domain.LineItem, rates TaxRates, applyIGST bool) ItemTax {
	taxable := ResolveTotal(item)
	tax := ItemTax{TaxableAmount: taxable}
	if !item.IsTaxable {
		return tax
	}

	effective := ratesFor(item, rates)
	if applyIGST {
		tax.IGST = taxable * effective.IGSTRate / 100
	} else {
		tax.CGST = taxable * effective.CGSTRate / 100
		tax.SGST = taxable * effective.SGSTRate / 100
	}
	tax.Cess = taxable * effective.CessRate / 100
	return tax
}

// CalculateInvoiceTaxes aggregates per-item taxes and applies the
// invoice-level additional discount. The discount is applied as a
// proportional retroactive scaling of the already-accumulated tax
// components, not a recomputation from discounted sub-amounts; this
// preserves the historical rounding behavior consumers depend on.
func (e *Engine) CalculateInvoiceTaxes(items []domain.LineItem, rates TaxRates, applyIGST bool, additionalDiscountPercent float64) domain.TaxBreakdown {
	var b domain.TaxBreakdown

	for i := range items {
		tax := e.CalculateItemTaxes(items[i], rates, applyIGST)
		b.SubTotal += tax.TaxableAmount
		b.TaxableAmount += tax.TaxableAmount
		b.CGSTAmount += tax.CGST
		b.SGSTAmount += tax.SGST
		b.IGSTAmount += tax.IGST
		b.CessAmount += tax.Cess
	}

	if math.IsNaN(additionalDiscountPercent) || additionalDiscountPercent < 0 {
		additionalDiscountPercent = 0
	}
	if additionalDiscountPercent > 100 {
		additionalDiscountPercent = 100
	}
	b.Discount = b.SubTotal * additionalDiscountPercent / 100

	if b.Discount > 0 && b.TaxableAmount > 0 {
		ratio := (b.TaxableAmount - b.Discount) / b.TaxableAmount
		b.CGSTAmount *= ratio
		b.SGSTAmount *= ratio
		b.IGSTAmount *= ratio
		b.CessAmount *= ratio
		b.TaxableAmount -= b.Discount
	}

	b.TotalTax = b.CGSTAmount + b.SGSTAmount + b.IGSTAmount + b.CessAmount
	b.GrandTotal = b.TaxableAmount + b.TotalTax

	if e.roundTotal {
		rounded := math.Round(b.GrandTotal)
		b.RoundOff = rounded - b.GrandTotal
		b.GrandTotal = rounded
	}
	return b
}

// CalculateGST runs the full invoice computation, deciding the split
// mode from the seller and buyer states.
func (e *Engine) CalculateGST(items []domain.LineItem, rates TaxRates, sourceState, destinationState string, additionalDiscountPercent float64) Result {
	applyIGST := ShouldApplyIGST(sourceState, destinationState)
	return Result{
		Breakdown: e.CalculateInvoiceTaxes(items, rates, applyIGST, additionalDiscountPercent),
	}
}

// CalculateRCM is CalculateGST for reverse charge supplies. The math
// is identical; the result is tagged so reports can segregate RCM
// liability.
func (e *Engine) CalculateRCM(items []domain.LineItem, rates TaxRates, sourceState, destinationState string, additionalDiscountPercent float64) Result {
	r := e.CalculateGST(items, rates, sourceState, destinationState, additionalDiscountPercent)
	r.IsRCM = true
	return r
}

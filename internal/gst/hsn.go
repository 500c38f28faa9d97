package gst

// TaxRates is a consistent set of GST rate percentages for one
// classification. Intra-state supplies use CGSTRate+SGSTRate, inter-state
// supplies use IGSTRate; the two modes are never summed for one item.
// CessRate applies on top of either mode.
type TaxRates struct {
	CGSTRate float64 `json:"cgst_rate"`
	SGSTRate float64 `json:"sgst_rate"`
	IGSTRate float64 `json:"igst_rate"`
	CessRate float64 `json:"cess_rate"`
}

// SplitRate builds a TaxRates from a single combined GST percentage,
// halving it for the intra-state components.
func SplitRate(taxRate float64) TaxRates {
	return TaxRates{
		CGSTRate: taxRate / 2,
		SGSTRate: taxRate / 2,
		IGSTRate: taxRate,
	}
}

// SplitRateWithCess is SplitRate plus a cess percentage.
func SplitRateWithCess(taxRate, cessRate float64) TaxRates {
	r := SplitRate(taxRate)
	r.CessRate = cessRate
	return r
}

// DefaultRates is the fallback band for HSN/SAC codes not in the table:
// the standard 18% slab, split 9/9 intra-state, no cess.
var DefaultRates = SplitRate(18)

// hsnRates maps HSN/SAC codes to their default GST rate band. Grouped
// by slab: food and textiles 5%, pharma 12%, electronics and services
// 18%, luxury 28% with cess. Entries longer than 4 digits override the
// band of their own 4-digit prefix. Immutable after init.
var hsnRates = map[string]TaxRates{
	// Food staples — 5%
	"0401": SplitRate(5),
	"0402": SplitRate(5),
	"0405": SplitRate(5),
	"0406": SplitRate(5),
	"0713": SplitRate(5),
	"0901": SplitRate(5),
	"0902": SplitRate(5),
	"1006": SplitRate(5),
	"1701": SplitRate(5),
	"1905": SplitRate(5),

	// Textiles and apparel — 5%
	"5007": SplitRate(5),
	"5208": SplitRate(5),
	"5407": SplitRate(5),
	"6101": SplitRate(5),
	"6203": SplitRate(5),
	"6302": SplitRate(5),

	// Pharmaceuticals — 12%
	"3003": SplitRate(12),
	"3004": SplitRate(12),
	"3005": SplitRate(12),
	"3006": SplitRate(12),

	// Electronics and machinery — 18%
	"8414": SplitRate(18),
	"8471": SplitRate(18),
	"8473": SplitRate(18),
	"8504": SplitRate(18),
	"8517": SplitRate(18),
	"8528": SplitRate(18),

	// Luxury and sin goods — 28% plus compensation cess
	"2202": SplitRateWithCess(28, 12),
	"2402": SplitRateWithCess(28, 36),
	"8703": SplitRateWithCess(28, 20),
	// Small petrol cars carry a reduced cess against the 8703 band.
	"87032010": SplitRateWithCess(28, 1),

	// Services (SAC) — 18%
	"9954":   SplitRate(18),
	"9972":   SplitRate(18),
	"9983":   SplitRate(18),
	"998313": SplitRate(18),
	"9963":   SplitRate(18),
	// Catering sits at 5% even though the rest of 9963 is 18%.
	"996331": SplitRate(5),
}

// RatesForHSN returns the default GST rates for an HSN/SAC code.
// Exact match wins over the 4-digit prefix band; unknown codes fall
// back to DefaultRates. The exact-before-prefix order matters: some
// 6- and 8-digit codes intentionally differ from the 4-digit band
// they sit under.
func RatesForHSN(code string) TaxRates {
	if code == "" {
		return DefaultRates
	}
	if rates, ok := hsnRates[code]; ok {
		return rates
	}
	if len(code) > 4 {
		if rates, ok := hsnRates[code[:4]]; ok {
			return rates
		}
	}
	return DefaultRates
}

package nic

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gstpro/internal/domain"
	"gstpro/internal/gst"
)

func testImporter() *Importer {
	im := NewImporter(gst.NewEngine(false))
	im.now = func() time.Time { return time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC) }
	im.randN = func(n int) int { return 42 }
	return im
}

func canonicalDoc() string {
	return `{
		"Version": "1.1",
		"TranDtls": {"TaxSch": "GST", "SupTyp": "B2B", "RegRev": "N"},
		"DocDtls": {"Typ": "INV", "No": "INV-001", "Dt": "2024-06-01"},
		"SellerDtls": {"Gstin": "27AAAAA0000A1Z5", "LglNm": "Acme Traders", "Addr1": "12 MG Road", "Addr2": "Fort", "Loc": "Mumbai", "Pin": 400001, "Stcd": "27"},
		"BuyerDtls": {"Gstin": "29BBBBB0000B1Z4", "LglNm": "Bharat Retail", "Addr1": "1 Brigade Road", "Loc": "Bengaluru", "Pin": 560001, "Stcd": "29", "Pos": "29"},
		"ItemList": [
			{"SlNo": "1", "PrdDesc": "Widget", "IsServc": "N", "HsnCd": "8471", "Qty": 10, "UnitPrice": 100, "AssAmt": 1000, "GstRt": 18, "IgstAmt": 180}
		],
		"ValDtls": {"AssVal": 1000, "CgstVal": 0, "SgstVal": 0, "IgstVal": 180, "TotInvVal": 1180}
	}`
}

func TestImport_Canonical(t *testing.T) {
	im := testImporter()

	invoice, err := im.Import([]byte(canonicalDoc()))
	require.NoError(t, err)

	assert.Equal(t, "INV-001", invoice.InvoiceNumber)
	assert.Equal(t, domain.DocumentTypeInvoice, invoice.DocumentType)
	assert.Equal(t, domain.SupplyTypeB2B, invoice.SupplyType)
	assert.Equal(t, "2024-06-01", invoice.InvoiceDate)
	assert.Equal(t, "2024-07-01", invoice.DueDate)

	assert.Equal(t, "Acme Traders", invoice.Seller.Name)
	assert.Equal(t, "12 MG Road, Fort", invoice.Seller.Address)
	assert.Equal(t, "Maharashtra", invoice.Seller.State)
	assert.Equal(t, "Karnataka", invoice.Buyer.State)

	require.Len(t, invoice.Items, 1)
	assert.Equal(t, "Widget", invoice.Items[0].ProductName)
	assert.InDelta(t, 1000.0, invoice.Items[0].Total, 1e-9)

	// Declared ValDtls are authoritative.
	assert.InDelta(t, 1000.0, invoice.Totals.TaxableAmount, 1e-9)
	assert.InDelta(t, 180.0, invoice.Totals.IGSTAmount, 1e-9)
	assert.InDelta(t, 1180.0, invoice.Totals.GrandTotal, 1e-9)
	assert.Equal(t, domain.TaxTypeIGST, invoice.TaxType)
}

func TestImport_Canonical_ValDtlsTrustedVerbatim(t *testing.T) {
	im := testImporter()
	var doc map[string]any
	require.NoError(t, json.Unmarshal([]byte(canonicalDoc()), &doc))
	// Declared totals deliberately disagree with the items.
	doc["ValDtls"] = map[string]any{"AssVal": 5000.0, "IgstVal": 900.0, "TotInvVal": 5900.0}
	raw, _ := json.Marshal(doc)

	invoice, err := im.Import(raw)
	require.NoError(t, err)
	assert.InDelta(t, 5000.0, invoice.Totals.TaxableAmount, 1e-9)
	assert.InDelta(t, 5900.0, invoice.Totals.GrandTotal, 1e-9)
}

func TestImport_Canonical_MissingSections(t *testing.T) {
	im := testImporter()

	t.Run("empty_item_list", func(t *testing.T) {
		var doc map[string]any
		require.NoError(t, json.Unmarshal([]byte(canonicalDoc()), &doc))
		doc["ItemList"] = []any{}
		raw, _ := json.Marshal(doc)

		_, err := im.Import(raw)
		assert.ErrorIs(t, err, domain.ErrMissingSections)
	})

	// Envelope fallbacks hit the canonical reader directly, without
	// passing classification first, so it must check sections itself.
	t.Run("direct_canonical_missing_buyer", func(t *testing.T) {
		_, err := im.importCanonical([]byte(`{"DocDtls": {"Typ": "INV"}, "SellerDtls": {"LglNm": "A", "Addr1": "x", "Loc": "y", "Stcd": "27"}}`))
		require.ErrorIs(t, err, domain.ErrMissingSections)
		assert.Contains(t, err.Error(), "BuyerDtls")
	})
}

func TestImport_Canonical_FallbackInvoiceNumber(t *testing.T) {
	im := testImporter()
	var doc map[string]any
	require.NoError(t, json.Unmarshal([]byte(canonicalDoc()), &doc))
	doc["DocDtls"] = map[string]any{"Typ": "INV", "Dt": "2024-06-01"}
	raw, _ := json.Marshal(doc)

	invoice, err := im.Import(raw)
	require.NoError(t, err)
	assert.Equal(t, "BP-INV-24-00042", invoice.InvoiceNumber)
}

func TestImport_Array(t *testing.T) {
	im := testImporter()

	t.Run("recurses_on_first_element", func(t *testing.T) {
		invoice, err := im.Import([]byte("[" + canonicalDoc() + "]"))
		require.NoError(t, err)
		assert.Equal(t, "INV-001", invoice.InvoiceNumber)
	})

	t.Run("empty_array_fails", func(t *testing.T) {
		_, err := im.Import([]byte("[]"))
		assert.ErrorIs(t, err, domain.ErrEmptyArray)
	})
}

func TestImport_SignedEnvelope(t *testing.T) {
	im := testImporter()

	claims, _ := json.Marshal(map[string]string{"data": canonicalDoc()})
	token := "eyJhbGciOiJSUzI1NiJ9." + base64.RawURLEncoding.EncodeToString(claims) + ".sig"

	envelope := fmt.Sprintf(`{
		"Irn": "a1b2c3",
		"AckNo": 112010036563310,
		"AckDt": "2024-06-01 11:30:00",
		"Status": "ACT",
		"SignedInvoice": %q,
		"SignedQRCode": "qr"
	}`, token)

	invoice, err := im.Import([]byte(envelope))
	require.NoError(t, err)

	assert.Equal(t, "INV-001", invoice.InvoiceNumber)
	require.NotNil(t, invoice.Approval)
	assert.Equal(t, "a1b2c3", invoice.Approval.IRN)
	assert.Equal(t, "112010036563310", invoice.Approval.AckNo)
	assert.Equal(t, "ACT", invoice.Approval.Status)
}

func TestImport_SignedEnvelope_BadTokenFallsBackToCanonical(t *testing.T) {
	im := testImporter()

	// Full canonical document with approval fields and a garbage token.
	var doc map[string]any
	require.NoError(t, json.Unmarshal([]byte(canonicalDoc()), &doc))
	doc["Irn"] = "a1b2c3"
	doc["AckNo"] = 12345
	doc["SignedInvoice"] = "not-a-jwt"
	raw, _ := json.Marshal(doc)

	invoice, err := im.Import(raw)
	require.NoError(t, err)
	assert.Equal(t, "INV-001", invoice.InvoiceNumber)
	require.NotNil(t, invoice.Approval)
	assert.Equal(t, "a1b2c3", invoice.Approval.IRN)
}

func TestImport_Loose(t *testing.T) {
	im := testImporter()

	raw := `{
		"invoice_number": "TP-77",
		"date": "15/06/2024",
		"seller": {"name": "Acme Traders", "gstin": "27AAAAA0000A1Z5", "state": "Maharashtra"},
		"customer": {"name": "Bharat Retail", "state": "Maharashtra"},
		"items": [
			{"name": "Widget", "qty": 10, "price": 100, "tax_rate": 18, "hsn": "8471"}
		]
	}`

	invoice, err := im.Import([]byte(raw))
	require.NoError(t, err)

	assert.Equal(t, "TP-77", invoice.InvoiceNumber)
	assert.Equal(t, "2024-06-15", invoice.InvoiceDate)
	assert.Equal(t, "Acme Traders", invoice.Seller.Name)
	assert.Equal(t, "Bharat Retail", invoice.Buyer.Name)
	assert.Equal(t, domain.SupplyTypeB2C, invoice.SupplyType)

	// Loose totals are recomputed, never trusted.
	assert.InDelta(t, 1000.0, invoice.Totals.TaxableAmount, 1e-9)
	assert.InDelta(t, 90.0, invoice.Totals.CGSTAmount, 1e-9)
	assert.InDelta(t, 90.0, invoice.Totals.SGSTAmount, 1e-9)
	assert.Equal(t, domain.TaxTypeCGSTSGST, invoice.TaxType)
}

func TestImport_Loose_Defaults(t *testing.T) {
	im := testImporter()

	invoice, err := im.Import([]byte(`{"memo": "nothing useful"}`))
	require.NoError(t, err)
	assert.Equal(t, "Business", invoice.Seller.Name)
	assert.Equal(t, "Customer", invoice.Buyer.Name)
	assert.Equal(t, "BP-INV-24-00042", invoice.InvoiceNumber)
	assert.Empty(t, invoice.Items)
}

func TestImport_MalformedJSON(t *testing.T) {
	im := testImporter()
	_, err := im.Import([]byte("{nope"))
	assert.ErrorIs(t, err, domain.ErrMalformedJSON)
}

func TestDeriveSupplyType(t *testing.T) {
	im := testImporter()

	doc := func(supTyp, buyerGstin, sellerStcd, buyerStcd string) *Document {
		return &Document{
			TranDtls:   &TranDtls{SupTyp: supTyp},
			SellerDtls: &PartyDtls{Stcd: sellerStcd},
			BuyerDtls:  &BuyerDtls{PartyDtls: PartyDtls{Gstin: buyerGstin, Stcd: buyerStcd}},
		}
	}

	assert.Equal(t, domain.SupplyTypeExportWithTax, im.deriveSupplyType(doc("EXPWP", "", "27", "96")))
	assert.Equal(t, domain.SupplyTypeExportWithoutTax, im.deriveSupplyType(doc("EXPWOP", "", "27", "96")))
	assert.Equal(t, domain.SupplyTypeSEZWithTax, im.deriveSupplyType(doc("", "27SEZAA0000A1Z5", "27", "27")))
	assert.Equal(t, domain.SupplyTypeSEZWithoutTax, im.deriveSupplyType(doc("", "29SEZAA0000A1Z4", "27", "29")))
	assert.Equal(t, domain.SupplyTypeB2B, im.deriveSupplyType(doc("", "29BBBBB0000B1Z4", "27", "29")))
	assert.Equal(t, domain.SupplyTypeB2C, im.deriveSupplyType(doc("", "URP", "27", "29")))
	assert.Equal(t, domain.SupplyTypeB2C, im.deriveSupplyType(doc("", "", "27", "29")))
}

func TestLineItemFromNIC_QuantityZeroDefense(t *testing.T) {
	assAmt := 500.0
	item := lineItemFromNIC(Item{PrdDesc: "Service", AssAmt: &assAmt, GstRt: 18})

	assert.InDelta(t, 1.0, item.Quantity, 1e-9)
	assert.InDelta(t, 500.0, item.Rate, 1e-9)
	assert.InDelta(t, 500.0, item.Total, 1e-9)
}

func TestNormalizeDate(t *testing.T) {
	fallback := time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)

	cases := []struct {
		name string
		in   string
		want string
	}{
		{"iso", "2024-06-01", "2024-06-01"},
		{"indian_slash", "01/06/2024", "2024-06-01"},
		{"indian_dash", "01-06-2024", "2024-06-01"},
		{"rfc3339", "2024-06-01T10:00:00Z", "2024-06-01"},
		{"empty_falls_back", "", "2024-06-15"},
		{"garbage_falls_back", "sometime soon", "2024-06-15"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, NormalizeDate(tc.in, fallback))
		})
	}

	t.Run("day_first_beats_month_first", func(t *testing.T) {
		// 04/05 is 4 May in Indian documents, not April 5.
		assert.Equal(t, "2024-05-04", NormalizeDate("04/05/2024", fallback))
	})
}

func TestClassify(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want Shape
	}{
		{"array", `[{"a":1}]`, ShapeArray},
		{"canonical", canonicalDoc(), ShapeCanonical},
		{"envelope", `{"Irn":"x","AckNo":1,"SignedInvoice":"t"}`, ShapeSignedEnvelope},
		{"envelope_qr_only", `{"Irn":"x","AckNo":1,"SignedQRCode":"q"}`, ShapeSignedEnvelope},
		{"loose", `{"seller":{}}`, ShapeLoose},
		{"null_section_not_counted", `{"Version":"1.1","DocDtls":null,"SellerDtls":{},"BuyerDtls":{},"ItemList":[]}`, ShapeLoose},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			shape, err := Classify([]byte(tc.in))
			require.NoError(t, err)
			assert.Equal(t, tc.want, shape)
		})
	}

	t.Run("malformed", func(t *testing.T) {
		_, err := Classify([]byte("{broken"))
		assert.Error(t, err)
	})
}

func TestDecodeSignedPayload(t *testing.T) {
	t.Run("data_as_string", func(t *testing.T) {
		claims, _ := json.Marshal(map[string]string{"data": `{"DocDtls":{"No":"X"}}`})
		token := "h." + base64.RawURLEncoding.EncodeToString(claims) + ".s"

		payload, err := DecodeSignedPayload(token)
		require.NoError(t, err)
		assert.JSONEq(t, `{"DocDtls":{"No":"X"}}`, string(payload))
	})

	t.Run("data_as_object", func(t *testing.T) {
		claims := []byte(`{"data":{"DocDtls":{"No":"X"}}}`)
		token := "h." + base64.StdEncoding.EncodeToString(claims) + ".s"

		payload, err := DecodeSignedPayload(token)
		require.NoError(t, err)
		assert.JSONEq(t, `{"DocDtls":{"No":"X"}}`, string(payload))
	})

	t.Run("no_segments", func(t *testing.T) {
		_, err := DecodeSignedPayload("just-one-segment")
		assert.Error(t, err)
	})

	t.Run("missing_data_claim", func(t *testing.T) {
		claims := []byte(`{"iss":"NIC"}`)
		token := "h." + base64.RawURLEncoding.EncodeToString(claims) + ".s"
		_, err := DecodeSignedPayload(token)
		assert.Error(t, err)
	})
}

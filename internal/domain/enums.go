package domain

// TaxType selects which GST split applies to a transaction.
type TaxType string

const (
	TaxTypeIGST     TaxType = "igst"
	TaxTypeCGSTSGST TaxType = "cgst_sgst"
)

// DocumentType is the kind of GST document being issued.
type DocumentType string

const (
	DocumentTypeInvoice    DocumentType = "invoice"
	DocumentTypeCreditNote DocumentType = "credit_note"
	DocumentTypeDebitNote  DocumentType = "debit_note"
)

// NICDocTypeCodes maps DocumentType to the NIC DocDtls.Typ code.
var NICDocTypeCodes = map[DocumentType]string{
	DocumentTypeInvoice:    "INV",
	DocumentTypeCreditNote: "CRN",
	DocumentTypeDebitNote:  "DBN",
}

// DocumentTypeFromNIC maps a DocDtls.Typ code back to a DocumentType.
// Unknown codes default to a regular invoice.
func DocumentTypeFromNIC(code string) DocumentType {
	switch code {
	case "CRN":
		return DocumentTypeCreditNote
	case "DBN":
		return DocumentTypeDebitNote
	default:
		return DocumentTypeInvoice
	}
}

// SupplyType classifies the supply for GST portal reporting.
type SupplyType string

const (
	SupplyTypeB2B              SupplyType = "B2B"
	SupplyTypeB2C              SupplyType = "B2C"
	SupplyTypeExportWithTax    SupplyType = "EXPORT_WITH_TAX"
	SupplyTypeExportWithoutTax SupplyType = "EXPORT_WITHOUT_TAX"
	SupplyTypeSEZWithTax       SupplyType = "SEZ_WITH_TAX"
	SupplyTypeSEZWithoutTax    SupplyType = "SEZ_WITHOUT_TAX"
	SupplyTypeDeemedExport     SupplyType = "DEEMED_EXPORT"
	SupplyTypeComposite        SupplyType = "COMPOSITE"
)

// IsExport reports whether the supply leaves the country. Export
// invoices carry no Indian place of supply.
func (s SupplyType) IsExport() bool {
	return s == SupplyTypeExportWithTax || s == SupplyTypeExportWithoutTax
}

// NICSupplyCodes maps SupplyType to the NIC TranDtls.SupTyp code.
var NICSupplyCodes = map[SupplyType]string{
	SupplyTypeB2B:              "B2B",
	SupplyTypeB2C:              "B2C",
	SupplyTypeExportWithTax:    "EXPWP",
	SupplyTypeExportWithoutTax: "EXPWOP",
	SupplyTypeSEZWithTax:       "SEZWP",
	SupplyTypeSEZWithoutTax:    "SEZWOP",
	SupplyTypeDeemedExport:     "DEXP",
	SupplyTypeComposite:        "COMP",
}

// SupplyTypeFromNIC maps a TranDtls.SupTyp code back to a SupplyType.
// Unknown codes default to B2B.
func SupplyTypeFromNIC(code string) SupplyType {
	switch code {
	case "B2C":
		return SupplyTypeB2C
	case "EXPWP":
		return SupplyTypeExportWithTax
	case "EXPWOP":
		return SupplyTypeExportWithoutTax
	case "SEZWP":
		return SupplyTypeSEZWithTax
	case "SEZWOP":
		return SupplyTypeSEZWithoutTax
	case "DEXP":
		return SupplyTypeDeemedExport
	case "COMP":
		return SupplyTypeComposite
	default:
		return SupplyTypeB2B
	}
}

// PaymentStatus is the settlement state of an invoice.
type PaymentStatus string

const (
	PaymentStatusUnpaid  PaymentStatus = "unpaid"
	PaymentStatusPartial PaymentStatus = "partial"
	PaymentStatusPaid    PaymentStatus = "paid"
)

package domain

// Party represents a seller or buyer on an invoice.
type Party struct {
	Name      string `json:"name"`
	Address   string `json:"address"`
	GSTIN     string `json:"gstin"`
	State     string `json:"state"`
	StateCode string `json:"state_code"`
	Pin       string `json:"pin"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
}

// LineItem represents a single line item on an invoice.
// Total is net of the item-level discount; tax amounts are computed on it.
type LineItem struct {
	ProductName     string  `json:"product_name"`
	Description     string  `json:"description"`
	HSNSAC          string  `json:"hsn_sac"`
	Quantity        float64 `json:"quantity"`
	Rate            float64 `json:"rate"`
	Unit            string  `json:"unit"`
	DiscountPercent float64 `json:"discount_percent"`
	TaxRate         float64 `json:"tax_rate"`
	IsTaxable       bool    `json:"is_taxable"`
	IsService       bool    `json:"is_service"`
	Total           float64 `json:"total"`
	CGSTAmount      float64 `json:"cgst_amount"`
	SGSTAmount      float64 `json:"sgst_amount"`
	IGSTAmount      float64 `json:"igst_amount"`
	CessAmount      float64 `json:"cess_amount"`
}

// TaxBreakdown holds the aggregated tax amounts for an invoice.
type TaxBreakdown struct {
	SubTotal      float64 `json:"sub_total"`
	Discount      float64 `json:"discount"`
	TaxableAmount float64 `json:"taxable_amount"`
	CGSTAmount    float64 `json:"cgst_amount"`
	SGSTAmount    float64 `json:"sgst_amount"`
	IGSTAmount    float64 `json:"igst_amount"`
	CessAmount    float64 `json:"cess_amount"`
	TotalTax      float64 `json:"total_tax"`
	RoundOff      float64 `json:"round_off"`
	GrandTotal    float64 `json:"grand_total"`
}

// Approval carries the government acknowledgement metadata once an
// invoice has been registered on the e-invoice portal.
type Approval struct {
	IRN          string `json:"irn"`
	AckNo        string `json:"ack_no"`
	AckDate      string `json:"ack_date"`
	Status       string `json:"status"`
	EwbNo        string `json:"ewb_no"`
	EwbDate      string `json:"ewb_date"`
	EwbValidTill string `json:"ewb_valid_till"`
}

// Invoice is the internal invoice representation shared by the tax
// engine and the NIC interchange layer. All values are transient;
// every transformation produces a new Invoice.
type Invoice struct {
	InvoiceNumber string        `json:"invoice_number"`
	InvoiceDate   string        `json:"invoice_date"`
	DueDate       string        `json:"due_date"`
	DocumentType  DocumentType  `json:"document_type"`
	SupplyType    SupplyType    `json:"supply_type"`
	TaxType       TaxType       `json:"tax_type"`
	ReverseCharge bool          `json:"reverse_charge"`
	Seller        Party         `json:"seller"`
	Buyer         Party         `json:"buyer"`
	Items         []LineItem    `json:"items"`
	Totals        TaxBreakdown  `json:"totals"`
	PaymentStatus PaymentStatus `json:"payment_status,omitempty"`
	PaidAmount    float64       `json:"paid_amount"`
	Notes         string        `json:"notes"`
	Approval      *Approval     `json:"approval,omitempty"`
}

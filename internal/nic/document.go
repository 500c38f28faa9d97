// Package nic implements the NIC e-Invoice JSON interchange: a
// tolerant importer for the shapes the government portal and common
// third-party tools emit, and a canonical exporter. Field names and
// nesting follow the NIC schema verbatim.
package nic

import "encoding/json"

// TranDtls carries the transaction-level attributes of a document.
type TranDtls struct {
	TaxSch      string `json:"TaxSch"`
	SupTyp      string `json:"SupTyp"`
	RegRev      string `json:"RegRev,omitempty"`
	EcmGstin    string `json:"EcmGstin,omitempty"`
	IgstOnIntra string `json:"IgstOnIntra,omitempty"`
}

// DocDtls identifies the document itself.
type DocDtls struct {
	Typ   string `json:"Typ"`
	No    string `json:"No"`
	Dt    string `json:"Dt"`
	DueDt string `json:"DueDt,omitempty"`
}

// PartyDtls is the common party shape used for seller, buyer, dispatch
// and ship-to sections.
type PartyDtls struct {
	Gstin string      `json:"Gstin,omitempty"`
	LglNm string      `json:"LglNm"`
	TrdNm string      `json:"TrdNm,omitempty"`
	Addr1 string      `json:"Addr1"`
	Addr2 string      `json:"Addr2,omitempty"`
	Loc   string      `json:"Loc"`
	Pin   json.Number `json:"Pin,omitempty"`
	Stcd  string      `json:"Stcd"`
	Ph    string      `json:"Ph,omitempty"`
	Em    string      `json:"Em,omitempty"`
}

// BuyerDtls extends the party shape with the place of supply.
type BuyerDtls struct {
	PartyDtls
	Pos string `json:"Pos,omitempty"`
}

// ExpDtls holds export-specific shipping bill references.
type ExpDtls struct {
	ShipBNo string      `json:"ShipBNo,omitempty"`
	ShipBDt string      `json:"ShipBDt,omitempty"`
	Port    string      `json:"Port,omitempty"`
	RefClm  string      `json:"RefClm,omitempty"`
	ForCur  string      `json:"ForCur,omitempty"`
	CntCode string      `json:"CntCode,omitempty"`
	ExpDuty json.Number `json:"ExpDuty,omitempty"`
}

// PayDtls carries payment terms and the outstanding amount.
type PayDtls struct {
	Nm       string  `json:"Nm,omitempty"`
	AccDet   string  `json:"AccDet,omitempty"`
	Mode     string  `json:"Mode,omitempty"`
	FinInsBr string  `json:"FinInsBr,omitempty"`
	PayTerm  string  `json:"PayTerm,omitempty"`
	PayInstr string  `json:"PayInstr,omitempty"`
	CrTrn    string  `json:"CrTrn,omitempty"`
	DirDr    string  `json:"DirDr,omitempty"`
	CrDay    int     `json:"CrDay,omitempty"`
	PaidAmt  float64 `json:"PaidAmt"`
	PaymtDue float64 `json:"PaymtDue"`
}

// Item is one ItemList entry. Optional numeric fields are pointers so
// the importer can tell "absent" from "zero" when deriving rates and
// totals. Third-party documents sometimes carry the name under Nm
// instead of PrdDesc; both are accepted.
type Item struct {
	SlNo       string   `json:"SlNo,omitempty"`
	Nm         string   `json:"Nm,omitempty"`
	PrdDesc    string   `json:"PrdDesc,omitempty"`
	IsServc    string   `json:"IsServc,omitempty"`
	HsnCd      string   `json:"HsnCd,omitempty"`
	Qty        *float64 `json:"Qty,omitempty"`
	Unit       string   `json:"Unit,omitempty"`
	UnitPrice  *float64 `json:"UnitPrice,omitempty"`
	TotAmt     *float64 `json:"TotAmt,omitempty"`
	Discount   float64  `json:"Discount,omitempty"`
	AssAmt     *float64 `json:"AssAmt,omitempty"`
	GstRt      float64  `json:"GstRt,omitempty"`
	IgstAmt    float64  `json:"IgstAmt,omitempty"`
	CgstAmt    float64  `json:"CgstAmt,omitempty"`
	SgstAmt    float64  `json:"SgstAmt,omitempty"`
	CesRt      float64  `json:"CesRt,omitempty"`
	CesAmt     float64  `json:"CesAmt,omitempty"`
	StateCesRt float64  `json:"StateCesRt,omitempty"`
	OthChrg    float64  `json:"OthChrg,omitempty"`
	TotItemVal *float64 `json:"TotItemVal,omitempty"`
}

// ValDtls holds the document-level declared value totals. On import
// these are authoritative and never recomputed from items.
type ValDtls struct {
	AssVal    float64 `json:"AssVal"`
	CgstVal   float64 `json:"CgstVal"`
	SgstVal   float64 `json:"SgstVal"`
	IgstVal   float64 `json:"IgstVal"`
	CesVal    float64 `json:"CesVal,omitempty"`
	StCesVal  float64 `json:"StCesVal,omitempty"`
	Discount  float64 `json:"Discount,omitempty"`
	OthChrg   float64 `json:"OthChrg,omitempty"`
	RndOffAmt float64 `json:"RndOffAmt,omitempty"`
	TotInvVal float64 `json:"TotInvVal"`
}

// Document is the full NIC e-Invoice payload. The trailing fields form
// the government approval envelope returned after IRN registration;
// they are absent on documents that have not been submitted.
type Document struct {
	Version    string     `json:"Version,omitempty"`
	TranDtls   *TranDtls  `json:"TranDtls,omitempty"`
	DocDtls    *DocDtls   `json:"DocDtls,omitempty"`
	SellerDtls *PartyDtls `json:"SellerDtls,omitempty"`
	BuyerDtls  *BuyerDtls `json:"BuyerDtls,omitempty"`
	DispDtls   *PartyDtls `json:"DispDtls,omitempty"`
	ShipDtls   *PartyDtls `json:"ShipDtls,omitempty"`
	ExpDtls    *ExpDtls   `json:"ExpDtls,omitempty"`
	ItemList   []Item     `json:"ItemList,omitempty"`
	ValDtls    *ValDtls   `json:"ValDtls,omitempty"`
	PayDtls    *PayDtls   `json:"PayDtls,omitempty"`

	Irn           string      `json:"Irn,omitempty"`
	AckNo         json.Number `json:"AckNo,omitempty"`
	AckDt         string      `json:"AckDt,omitempty"`
	Status        string      `json:"Status,omitempty"`
	SignedInvoice string      `json:"SignedInvoice,omitempty"`
	SignedQRCode  string      `json:"SignedQRCode,omitempty"`
	EwbNo         json.Number `json:"EwbNo,omitempty"`
	EwbDt         string      `json:"EwbDt,omitempty"`
	EwbValidTill  string      `json:"EwbValidTill,omitempty"`
}

// ItemName returns the line description, preferring PrdDesc.
func (it Item) ItemName() string {
	if it.PrdDesc != "" {
		return it.PrdDesc
	}
	return it.Nm
}

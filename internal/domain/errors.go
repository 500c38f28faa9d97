package domain

import "errors"

var (
	ErrMalformedJSON     = errors.New("input is not valid JSON")
	ErrEmptyArray        = errors.New("empty array provided")
	ErrMissingSections   = errors.New("missing required sections in NIC document")
	ErrInvalidLineItem   = errors.New("line item has invalid quantity or rate")
	ErrUnknownSupplyType = errors.New("unknown supply type")
	ErrInvoiceHasNoItems = errors.New("invoice has no line items")
)

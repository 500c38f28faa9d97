package nic

import (
	"bytes"
	"encoding/json"
	"fmt"

	"gstpro/internal/domain"
)

// Shape is the recognized input shape of a raw document. The importer
// dispatches on it exhaustively; adding a new shape is a compile-time
// visible change.
type Shape int

const (
	// ShapeSignedEnvelope is a government approval envelope carrying
	// an embedded signed payload.
	ShapeSignedEnvelope Shape = iota
	// ShapeArray is a JSON array wrapping one or more documents.
	ShapeArray
	// ShapeCanonical is the NIC e-Invoice schema proper.
	ShapeCanonical
	// ShapeLoose is anything else: third-party JSON normalized by
	// field probing.
	ShapeLoose
)

func (s Shape) String() string {
	switch s {
	case ShapeSignedEnvelope:
		return "signed_envelope"
	case ShapeArray:
		return "array"
	case ShapeCanonical:
		return "canonical"
	case ShapeLoose:
		return "loose"
	default:
		return fmt.Sprintf("shape(%d)", int(s))
	}
}

// canonicalSections must all be present for a document to classify as
// canonical NIC.
var canonicalSections = []string{"Version", "DocDtls", "SellerDtls", "BuyerDtls", "ItemList"}

// Classify inspects raw JSON and decides which import path applies.
// Precedence: array, then signed envelope, then canonical, then loose.
func Classify(raw []byte) (Shape, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return ShapeLoose, fmt.Errorf("%w: empty input", domain.ErrMalformedJSON)
	}
	if trimmed[0] == '[' {
		return ShapeArray, nil
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &fields); err != nil {
		return ShapeLoose, fmt.Errorf("%w: %v", domain.ErrMalformedJSON, err)
	}

	if hasField(fields, "AckNo") && hasField(fields, "Irn") &&
		(hasField(fields, "SignedInvoice") || hasField(fields, "SignedQRCode")) {
		return ShapeSignedEnvelope, nil
	}

	canonical := true
	for _, section := range canonicalSections {
		if !hasField(fields, section) {
			canonical = false
			break
		}
	}
	if canonical {
		return ShapeCanonical, nil
	}
	return ShapeLoose, nil
}

// hasField reports whether the key is present with a non-null value.
func hasField(fields map[string]json.RawMessage, key string) bool {
	v, ok := fields[key]
	return ok && !bytes.Equal(bytes.TrimSpace(v), []byte("null"))
}

package nic

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

var errNoDataClaim = errors.New("signed payload has no data claim")

// DecodeSignedPayload extracts the embedded invoice document from a
// JWT-shaped SignedInvoice token: the second dot-separated segment is
// base64-decoded and its "data" claim holds the document, either as an
// object or as a JSON-encoded string. Signature verification is the
// portal's job, not ours; we only unwrap the payload.
func DecodeSignedPayload(token string) (json.RawMessage, error) {
	segments := strings.Split(strings.TrimSpace(token), ".")
	if len(segments) < 2 {
		return nil, fmt.Errorf("token has %d segments, want at least 2", len(segments))
	}

	payload, err := decodeBase64Segment(segments[1])
	if err != nil {
		return nil, fmt.Errorf("decode payload segment: %w", err)
	}

	var claims map[string]json.RawMessage
	if err := json.Unmarshal(payload, &claims); err != nil {
		return nil, fmt.Errorf("parse payload claims: %w", err)
	}

	data, ok := claims["data"]
	if !ok {
		return nil, errNoDataClaim
	}

	// The data claim is usually a JSON string wrapping the document.
	var inner string
	if err := json.Unmarshal(data, &inner); err == nil {
		return json.RawMessage(inner), nil
	}
	return data, nil
}

// decodeBase64Segment tolerates both url-safe and standard alphabets,
// with or without padding.
func decodeBase64Segment(segment string) ([]byte, error) {
	encodings := []*base64.Encoding{
		base64.RawURLEncoding,
		base64.URLEncoding,
		base64.RawStdEncoding,
		base64.StdEncoding,
	}
	var lastErr error
	for _, enc := range encodings {
		decoded, err := enc.DecodeString(segment)
		if err == nil {
			return decoded, nil
		}
		lastErr = err
	}
	return nil, lastErr
}

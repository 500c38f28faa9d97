package gst

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	gstinPattern = regexp.MustCompile(`^\d{2}[A-Z]{5}\d{4}[A-Z][0-9A-Z]Z[0-9A-Z]$`)
	sacPattern   = regexp.MustCompile(`^\d{6}$`)
	hsnPattern   = regexp.MustCompile(`^\d{4}(\d{2}(\d{2})?)?$`)
)

// GstinInfo is the result of structurally validating a GSTIN. It is
// derived once and never mutated; StateCode and StateName are filled
// whenever the first two characters resolve, even for invalid GSTINs,
// so the UI can still show the state next to a warning.
type GstinInfo struct {
	Raw       string `json:"raw"`
	Valid     bool   `json:"valid"`
	StateCode string `json:"state_code,omitempty"`
	StateName string `json:"state_name,omitempty"`
	Message   string `json:"message"`
}

// ValidateGSTIN structurally validates a 15-character GSTIN and derives
// the registration state from its first two digits. Validation failures
// are reported in the returned info, never as an error.
func ValidateGSTIN(gstin string) GstinInfo {
	raw := strings.ToUpper(strings.TrimSpace(gstin))
	info := GstinInfo{Raw: raw}

	if len(raw) != 15 {
		info.Message = fmt.Sprintf("GSTIN must be exactly 15 characters, got %d", len(raw))
		return info
	}

	stateCode := raw[:2]
	stateName, ok := StateName(stateCode)
	if !ok {
		info.Message = fmt.Sprintf("unknown state code %q in GSTIN", stateCode)
		return info
	}
	info.StateCode = stateCode
	info.StateName = stateName

	if !gstinPattern.MatchString(raw) {
		info.Message = "GSTIN does not match the required structure"
		return info
	}

	info.Valid = true
	info.Message = "GSTIN is structurally valid"
	return info
}

// StateFromGSTIN returns the registration state for a GSTIN without
// running full structural validation. Placeholder values such as "URP"
// and anything too short resolve to the empty string.
func StateFromGSTIN(gstin string) string {
	raw := strings.ToUpper(strings.TrimSpace(gstin))
	if len(raw) < 2 {
		return ""
	}
	name, _ := StateName(raw[:2])
	return name
}

// ValidateHSNSAC checks an HSN or SAC classification code. SAC codes
// for services are exactly 6 digits; HSN codes for goods are 4, 6 or 8.
func ValidateHSNSAC(code string, isService bool) error {
	code = strings.TrimSpace(code)
	if code == "" {
		return fmt.Errorf("HSN/SAC code is required")
	}
	if isService {
		if !sacPattern.MatchString(code) {
			return fmt.Errorf("SAC code must be exactly 6 digits")
		}
		return nil
	}
	if !hsnPattern.MatchString(code) {
		return fmt.Errorf("HSN code must be 4, 6 or 8 digits")
	}
	return nil
}

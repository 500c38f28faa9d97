package gst

import "strings"

// stateByCode maps the 2-digit GSTIN state code to the state or UT name.
// Codes 96, 97 and 99 are the special jurisdictions used by the GST
// portal for foreign buyers, other territory and centre jurisdiction.
// Immutable after init.
var stateByCode = map[string]string{
	"01": "Jammu and Kashmir",
	"02": "Himachal Pradesh",
	"03": "Punjab",
	"04": "Chandigarh",
	"05": "Uttarakhand",
	"06": "Haryana",
	"07": "Delhi",
	"08": "Rajasthan",
	"09": "Uttar Pradesh",
	"10": "Bihar",
	"11": "Sikkim",
	"12": "Arunachal Pradesh",
	"13": "Nagaland",
	"14": "Manipur",
	"15": "Mizoram",
	"16": "Tripura",
	"17": "Meghalaya",
	"18": "Assam",
	"19": "West Bengal",
	"20": "Jharkhand",
	"21": "Odisha",
	"22": "Chhattisgarh",
	"23": "Madhya Pradesh",
	"24": "Gujarat",
	"25": "Daman and Diu",
	"26": "Dadra and Nagar Haveli",
	"27": "Maharashtra",
	"28": "Andhra Pradesh (Old)",
	"29": "Karnataka",
	"30": "Goa",
	"31": "Lakshadweep",
	"32": "Kerala",
	"33": "Tamil Nadu",
	"34": "Puducherry",
	"35": "Andaman and Nicobar Islands",
	"36": "Telangana",
	"37": "Andhra Pradesh",
	"38": "Ladakh",
	"96": "Foreign Country",
	"97": "Other Territory",
	"99": "Centre Jurisdiction",
}

// StateName returns the state name for a 2-digit GSTIN state code.
func StateName(code string) (string, bool) {
	name, ok := stateByCode[code]
	return name, ok
}

// StateCodeFor resolves a state name back to its 2-digit code. Matching
// is case-insensitive, exact first and then substring either way, so
// "State of Kerala" still resolves. Unresolvable names map to "97"
// (Other Territory).
func StateCodeFor(name string) string {
	normalized := strings.ToUpper(strings.TrimSpace(name))
	if normalized == "" {
		return "97"
	}
	for code, state := range stateByCode {
		if strings.ToUpper(state) == normalized {
			return code
		}
	}
	for code, state := range stateByCode {
		upper := strings.ToUpper(state)
		if strings.Contains(normalized, upper) || strings.Contains(upper, normalized) {
			return code
		}
	}
	return "97"
}

// States returns a copy of the full code-to-name registry.
func States() map[string]string {
	out := make(map[string]string, len(stateByCode))
	for code, name := range stateByCode {
		out[code] = name
	}
	return out
}

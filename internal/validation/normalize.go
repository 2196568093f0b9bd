package validation

import "strings"

// countryPrefix is the dialing prefix stripped from incoming numbers.
const countryPrefix = "+91"

// NormalizePhone removes spaces and hyphens and strips one leading "+91".
// It does not check that the remainder is numeric; Validate does that.
func NormalizePhone(phone string) string {
	phone = strings.NewReplacer(" ", "", "-", "").Replace(phone)
	return strings.TrimPrefix(phone, countryPrefix)
}

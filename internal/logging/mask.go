package logging

import "strings"

// MaskEmail hides the local part of an address except its first and last
// character: "someone@example.com" -> "s*****e@example.com".
func MaskEmail(email string) string {
	at := strings.LastIndexByte(email, '@')
	if at <= 0 {
		return maskKeepEnds(email)
	}
	return maskKeepEnds(email[:at]) + email[at:]
}

// MaskPhone keeps the last four characters: "9876543210" -> "******3210".
func MaskPhone(phone string) string {
	r := []rune(phone)
	if len(r) <= 4 {
		return strings.Repeat("*", len(r))
	}
	return strings.Repeat("*", len(r)-4) + string(r[len(r)-4:])
}

func maskKeepEnds(s string) string {
	r := []rune(s)
	switch len(r) {
	case 0, 1:
		return s
	case 2:
		return string(r[0]) + "*"
	}
	return string(r[0]) + strings.Repeat("*", len(r)-2) + string(r[len(r)-1])
}

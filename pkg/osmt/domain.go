package osmt

import (
	"fmt"
	"strings"

	"github.com/openskills/skillsync/pkg/errors"
)

// LocalDevHost is the fixed local-development host that bypasses domain
// validation. OSMT's quickstart runs on this address.
const LocalDevHost = "localhost:8080"

// ValidateDomain checks that domain is a syntactically valid host name, with
// a carve-out for LocalDevHost. The returned error message is shown to the
// operator as-is.
func ValidateDomain(domain string) error {
	if domain == LocalDevHost {
		return nil
	}
	if !isValidHost(domain) {
		return &errors.ValidationError{
			Field: "domain",
			Value: domain,
			Message: fmt.Sprintf(
				"this domain appears to be invalid. Double-check that https://%s/api/skills is a valid URL", domain),
		}
	}
	return nil
}

// isValidHost reports whether s looks like a registrable domain name:
// dot-separated labels of letters, digits and hyphens, no label starting or
// ending with a hyphen, and an alphabetic top-level label.
func isValidHost(s string) bool {
	if s == "" || len(s) > 253 {
		return false
	}
	labels := strings.Split(s, ".")
	if len(labels) < 2 {
		return false
	}
	for _, label := range labels {
		if !isValidLabel(label) {
			return false
		}
	}
	tld := labels[len(labels)-1]
	for _, r := range tld {
		if !isAlpha(r) {
			return false
		}
	}
	return true
}

func isValidLabel(label string) bool {
	if label == "" || len(label) > 63 {
		return false
	}
	if strings.HasPrefix(label, "-") || strings.HasSuffix(label, "-") {
		return false
	}
	for _, r := range label {
		if !isAlpha(r) && !isDigit(r) && r != '-' {
			return false
		}
	}
	return true
}

func isAlpha(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

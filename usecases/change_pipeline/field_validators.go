package change_pipeline

import (
	"fmt"
	"slices"
	"strings"

	"github.com/nyaruka/phonenumbers"
)

const msisdnRegion = "ZA"

// IsValidUUID checks the historical uuid shape used for registrant ids:
// 36 characters with dashes in the canonical positions. Legacy registrant
// ids are not all RFC 4122 compliant, so a strict parse would reject
// records that exist in production.
func IsValidUUID(id string) bool {
	if len(id) != 36 {
		return false
	}
	for _, i := range []int{8, 13, 18, 23} {
		if id[i] != '-' {
			return false
		}
	}
	return true
}

// NormalizeMsisdn formats a phone number to E.164 for the default region.
// Numbers that do not parse are returned unchanged so that equality
// comparisons still operate on the raw input.
func NormalizeMsisdn(msisdn string) string {
	parsed, err := phonenumbers.Parse(msisdn, msisdnRegion)
	if err != nil {
		return msisdn
	}
	return phonenumbers.Format(parsed, phonenumbers.E164)
}

func IsValidMsisdn(msisdn string) bool {
	parsed, err := phonenumbers.Parse(msisdn, msisdnRegion)
	if err != nil {
		return false
	}
	return phonenumbers.IsValidNumber(parsed)
}

// IsValidFaccode accepts non-empty numeric facility codes.
func IsValidFaccode(faccode string) bool {
	if faccode == "" {
		return false
	}
	for _, r := range faccode {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func isReasonIn(reason string, allowed []string) bool {
	return slices.Contains(allowed, reason)
}

var (
	saIdUpdateFields     = []string{"id_type", "sa_id_no", "dob"}
	passportUpdateFields = []string{"id_type", "passport_no", "passport_origin", "dob"}
)

// validateIdentityDocument checks an id-document update bundle: the key set
// must match the chosen id_type exactly, nothing more and nothing less.
func validateIdentityDocument(idType string, fields []string) []string {
	switch idType {
	case "sa_id":
		if !sameFieldSet(fields, saIdUpdateFields) {
			return []string{fmt.Sprintf("SA ID update requires fields %s",
				strings.Join(saIdUpdateFields, ", "))}
		}
	case "passport":
		if !sameFieldSet(fields, passportUpdateFields) {
			return []string{fmt.Sprintf("Passport update requires fields %s",
				strings.Join(passportUpdateFields, ", "))}
		}
	default:
		return []string{"ID type should be passport or sa_id"}
	}
	return nil
}

func sameFieldSet(got, want []string) bool {
	if len(got) != len(want) {
		return false
	}
	for _, field := range want {
		if !slices.Contains(got, field) {
			return false
		}
	}
	return true
}

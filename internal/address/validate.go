package address

import (
	"regexp"
	"strings"

	"github.com/fid37is/toolup-store-sub000/internal/domain"
)

var zipPattern = regexp.MustCompile(`^\d{6}$`)

// Validate checks a manually entered address and returns field-scoped
// error messages, empty map when valid. Zip is optional but must be a
// 6-digit code when present.
func Validate(addr domain.Address) map[string]string {
	errs := make(map[string]string)

	required := map[string]string{
		"addressName": addr.AddressName,
		"address":     addr.Address,
		"state":       addr.State,
		"lga":         addr.LGA,
		"city":        addr.City,
	}
	for field, value := range required {
		if strings.TrimSpace(value) == "" {
			errs[field] = "this field is required"
		}
	}

	if addr.Zip != "" && !zipPattern.MatchString(addr.Zip) {
		errs["zip"] = "zip must be a 6-digit code"
	}

	return errs
}

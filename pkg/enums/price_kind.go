package enums

import "fmt"

// PriceKind describes how a product communicates its price.
type PriceKind string

const (
	PriceKindFixed PriceKind = "FIXED"
	PriceKindFrom  PriceKind = "FROM"
	PriceKindAgree PriceKind = "AGREE"
)

var validPriceKinds = []PriceKind{
	PriceKindFixed,
	PriceKindFrom,
	PriceKindAgree,
}

// String implements fmt.Stringer.
func (k PriceKind) String() string {
	return string(k)
}

// IsValid reports whether the value is a known PriceKind.
func (k PriceKind) IsValid() bool {
	for _, candidate := range validPriceKinds {
		if candidate == k {
			return true
		}
	}
	return false
}

// ParsePriceKind converts raw input into a PriceKind.
func ParsePriceKind(value string) (PriceKind, error) {
	for _, candidate := range validPriceKinds {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid price kind %q", value)
}

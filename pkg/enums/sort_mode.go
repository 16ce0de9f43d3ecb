package enums

import "fmt"

// SortMode selects the catalog ordering strategy.
type SortMode string

const (
	SortModeRecent    SortMode = "recent"
	SortModePriceAsc  SortMode = "price_asc"
	SortModePriceDesc SortMode = "price_desc"
	SortModeRelevance SortMode = "relevance"
)

var validSortModes = []SortMode{
	SortModeRecent,
	SortModePriceAsc,
	SortModePriceDesc,
	SortModeRelevance,
}

// String implements fmt.Stringer.
func (m SortMode) String() string {
	return string(m)
}

// IsValid reports whether the value is a known SortMode.
func (m SortMode) IsValid() bool {
	for _, candidate := range validSortModes {
		if candidate == m {
			return true
		}
	}
	return false
}

// ParseSortMode converts raw input into a SortMode, defaulting to relevance.
func ParseSortMode(value string) (SortMode, error) {
	if value == "" {
		return SortModeRelevance, nil
	}
	for _, candidate := range validSortModes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid sort mode %q", value)
}

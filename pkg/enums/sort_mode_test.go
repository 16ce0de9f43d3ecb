package enums

import "testing"

func TestParseSortMode(t *testing.T) {
	mode, err := ParseSortMode("")
	if err != nil || mode != SortModeRelevance {
		t.Fatalf("empty input should default to relevance, got %q err=%v", mode, err)
	}

	mode, err = ParseSortMode("price_asc")
	if err != nil || mode != SortModePriceAsc {
		t.Fatalf("expected price_asc, got %q err=%v", mode, err)
	}

	if _, err := ParseSortMode("alphabetical"); err == nil {
		t.Fatalf("expected rejection of unknown sort mode")
	}
}

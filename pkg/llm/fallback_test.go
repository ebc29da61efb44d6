package llm

import (
	"strings"
	"testing"
)

func TestFallbackResponse_Deterministic(t *testing.T) {
	msg := "сколько стоит вакцинация"
	first := FallbackResponse(msg)
	for i := 0; i < 5; i++ {
		if got := FallbackResponse(msg); got != first {
			t.Fatalf("fallback not deterministic: %q vs %q", got, first)
		}
	}
}

func TestFallbackResponse_SelectsByRuneLength(t *testing.T) {
	// Messages whose rune lengths are congruent modulo the set size must
	// map to the same sentence; a length+1 message maps to the next one.
	n := FallbackResponseCount()
	base := strings.Repeat("а", n)
	same := strings.Repeat("б", 2*n)
	next := strings.Repeat("а", n+1)

	if FallbackResponse(base) != FallbackResponse(same) {
		t.Error("equal rune length modulo set size must select the same sentence")
	}
	if FallbackResponse(base) == FallbackResponse(next) {
		t.Error("adjacent lengths must select different sentences")
	}
}

func TestFallbackResponse_EmptyMessage(t *testing.T) {
	if got := FallbackResponse(""); got != fallbackResponses[0] {
		t.Errorf("empty message should select the first sentence, got %q", got)
	}
}

package state

import "testing"

func TestBestMatchPrefersExactThenPrefix(t *testing.T) {
	labels := []string{"groceries weekly", "rent", "Groceries"}
	if got := BestMatch(labels, "groceries"); got != 2 {
		t.Fatalf("expected exact match 2, got %d", got)
	}
	if got := BestMatch(labels, "ren"); got != 1 {
		t.Fatalf("expected prefix match 1, got %d", got)
	}
	if got := BestMatch(labels, "weekly"); got != 0 {
		t.Fatalf("expected substring match 0, got %d", got)
	}
}

func TestBestMatchFuzzy(t *testing.T) {
	labels := []string{"rent", "utilities electric"}
	if got := BestMatch(labels, "utel"); got != 1 {
		t.Fatalf("expected fuzzy match 1, got %d", got)
	}
	if got := BestMatch(labels, "zzz"); got != -1 {
		t.Fatalf("expected no match, got %d", got)
	}
	if got := BestMatch(labels, "  "); got != -1 {
		t.Fatalf("expected -1 for blank query, got %d", got)
	}
}

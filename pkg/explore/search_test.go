package explore_test

import (
	"testing"

	"github.com/nodelens/nodelens/pkg/explore"
)

func TestResolveEmptyQuery(t *testing.T) {
	g := socialGraph()

	res := explore.Resolve(g, "")
	if res.Selected != "" {
		t.Errorf("empty query: expected no selection, got %q", res.Selected)
	}
	if res.Suggestions != nil {
		t.Errorf("empty query: expected nil suggestions, got %v", res.Suggestions)
	}
}

func TestResolveSubstringSuggestions(t *testing.T) {
	g := socialGraph()

	// "Ali" matches Alice and Alicia but resolves neither.
	res := explore.Resolve(g, "Ali")
	if res.Selected != "" {
		t.Errorf("expected no selection for ambiguous query, got %q", res.Selected)
	}
	if len(res.Suggestions) != 2 {
		t.Fatalf("expected 2 suggestions, got %d: %v", len(res.Suggestions), res.Suggestions)
	}
	for _, want := range []string{"A", "E"} {
		if _, ok := res.Suggestions[want]; !ok {
			t.Errorf("expected %s in suggestions, got %v", want, res.Suggestions)
		}
	}
}

func TestResolveCaseInsensitiveMatching(t *testing.T) {
	g := socialGraph()

	res := explore.Resolve(g, "aLiC")
	if len(res.Suggestions) != 2 {
		t.Errorf("case-insensitive 'aLiC' should match Alice and Alicia, got %v", res.Suggestions)
	}
}

func TestResolveExactUniqueMatchSelects(t *testing.T) {
	g := socialGraph()

	res := explore.Resolve(g, "Bob")
	if res.Selected != "B" {
		t.Errorf("expected B selected for exact query, got %q", res.Selected)
	}
	if res.Suggestions != nil {
		t.Errorf("expected nil suggestions on selection, got %v", res.Suggestions)
	}
}

func TestResolveExactMatchIsCaseSensitive(t *testing.T) {
	g := socialGraph()

	// "bob" filters to the single node Bob, but the full-label equality check
	// is case-sensitive, so it stays a suggestion instead of a selection.
	res := explore.Resolve(g, "bob")
	if res.Selected != "" {
		t.Errorf("lowercase 'bob' must not auto-select, got %q", res.Selected)
	}
	if len(res.Suggestions) != 1 {
		t.Fatalf("expected 1 suggestion, got %v", res.Suggestions)
	}
	if _, ok := res.Suggestions["B"]; !ok {
		t.Errorf("expected B suggested, got %v", res.Suggestions)
	}
}

func TestResolveUniqueSubstringButNotFullLabel(t *testing.T) {
	g := socialGraph()

	// "Caro" uniquely matches Carol yet is not her full label; that must stay
	// a suggestion so typing is never interrupted by premature selection.
	res := explore.Resolve(g, "Caro")
	if res.Selected != "" {
		t.Errorf("partial unique match must not select, got %q", res.Selected)
	}
	if _, ok := res.Suggestions["C"]; !ok {
		t.Errorf("expected C suggested, got %v", res.Suggestions)
	}
}

func TestResolveNoMatchesYieldsEmptySet(t *testing.T) {
	g := socialGraph()

	res := explore.Resolve(g, "zzz")
	if res.Selected != "" {
		t.Errorf("expected no selection, got %q", res.Selected)
	}
	if res.Suggestions == nil {
		t.Fatal("zero matches must yield an empty set, not nil: 'no results' is intentional feedback")
	}
	if len(res.Suggestions) != 0 {
		t.Errorf("expected empty suggestion set, got %v", res.Suggestions)
	}
}

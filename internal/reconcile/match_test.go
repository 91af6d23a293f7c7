package reconcile

import (
	"testing"
	"time"
)

func TestTokenSortRatio(t *testing.T) {
	tests := []struct {
		name    string
		a, b    string
		wantMin float64
		wantMax float64
	}{
		{"identical", "last day of classes", "last day of classes", 100, 100},
		{"word order ignored", "day of classes last", "last day of classes", 100, 100},
		{"both empty", "", "", 100, 100},
		{"one empty", "republic day", "", 0, 0},
		{"plural suffix", "last day of class", "last day of classes", 94, 95},
		{"different", "republic day", "victory day", 0, 91.9},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TokenSortRatio(tt.a, tt.b)
			if got < tt.wantMin || got > tt.wantMax {
				t.Errorf("TokenSortRatio(%q, %q) = %.2f, want in [%v, %v]", tt.a, tt.b, got, tt.wantMin, tt.wantMax)
			}
			if rev := TokenSortRatio(tt.b, tt.a); rev != got {
				t.Errorf("TokenSortRatio is not symmetric: %.2f vs %.2f", got, rev)
			}
		})
	}
}

func TestBestFuzzyMatch_Threshold(t *testing.T) {
	d := day(2025, time.November, 10)
	candidates := []RemoteEvent{
		owned("a", "🧪 Final Exams Begin", "u1", d, d),
	}

	if _, _, ok := bestFuzzyMatch("final exams begins", d, d.AddDays(1), candidates); !ok {
		t.Error("expected near-identical title to match")
	}
	if _, score, ok := bestFuzzyMatch("makeup exams", d, d.AddDays(1), candidates); ok {
		t.Errorf("unexpected match with score %.2f", score)
	}
	if _, _, ok := bestFuzzyMatch("final exams begin", d, d.AddDays(2), candidates); ok {
		t.Error("candidates on other dates must not match")
	}
}

func TestBestFuzzyMatch_TieKeepsFirst(t *testing.T) {
	d := day(2025, time.November, 10)
	candidates := []RemoteEvent{
		owned("first", "Republic Day", "u1", d, d),
		owned("second", "Republic Day", "u2", d, d),
	}

	got, _, ok := bestFuzzyMatch("republic day", d, d.AddDays(1), candidates)
	if !ok || got.ID != "first" {
		t.Errorf("bestFuzzyMatch() = %q, %v, want first", got.ID, ok)
	}
}

package reconcile

import (
	"sort"
	"strings"
	"unicode/utf8"

	"cloud.google.com/go/civil"
	"github.com/hbollon/go-edlib"
	"github.com/pfrederiksen/acal-sync/internal/event"
)

// FuzzyThreshold is the minimum token-sort similarity (0-100) for two titles
// on identical dates to be treated as the same entry.
const FuzzyThreshold = 92.0

// TokenSortRatio scores two strings 0-100 after sorting their whitespace
// separated tokens, so word order does not matter. The score is the
// normalized indel similarity: 2*LCS / (len(a)+len(b)).
func TokenSortRatio(a, b string) float64 {
	a, b = sortTokens(a), sortTokens(b)
	total := utf8.RuneCountInString(a) + utf8.RuneCountInString(b)
	if total == 0 {
		return 100
	}
	return 200 * float64(edlib.LCS(a, b)) / float64(total)
}

func sortTokens(s string) string {
	tokens := strings.Fields(s)
	sort.Strings(tokens)
	return strings.Join(tokens, " ")
}

// bestFuzzyMatch returns the owned entry stored on exactly the same dates
// whose normalized title scores highest against normTitle, if that score
// reaches FuzzyThreshold. Earlier candidates win ties.
func bestFuzzyMatch(normTitle string, start, endExclusive civil.Date, candidates []RemoteEvent) (RemoteEvent, float64, bool) {
	var best RemoteEvent
	bestScore := -1.0
	for _, ev := range candidates {
		if ev.Start != start || ev.EndExclusive != endExclusive {
			continue
		}
		score := TokenSortRatio(normTitle, event.NormalizeTitle(ev.Title))
		if score > bestScore {
			best, bestScore = ev, score
		}
	}
	if bestScore >= FuzzyThreshold {
		return best, bestScore, true
	}
	return RemoteEvent{}, bestScore, false
}

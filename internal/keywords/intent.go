package keywords

import (
	"strings"

	"seopilot/internal/config"
	"seopilot/internal/textutil"
)

// Intent is the coarse search-intent class of a keyword or product.
type Intent string

const (
	IntentInformational Intent = "informational"
	IntentCommercial    Intent = "commercial"
	IntentTransactional Intent = "transactional"
	IntentUnknown       Intent = "unknown"
)

// ClassifyIntent matches the text against the three cue lists and returns the
// class with the most whole-word hits. Ties and zero hits are unknown, so a
// cue embedded in a longer word ("buy" in "buyers") never triggers.
func ClassifyIntent(text string, lex *config.Lexicon) Intent {
	if text == "" || lex == nil {
		return IntentUnknown
	}
	text = strings.ToLower(text)

	scores := map[Intent]int{
		IntentInformational: countCues(text, lex.Informational),
		IntentCommercial:    countCues(text, lex.Commercial),
		IntentTransactional: countCues(text, lex.Transactional),
	}

	best := IntentUnknown
	bestScore := 0
	tied := false
	for _, intent := range []Intent{IntentInformational, IntentCommercial, IntentTransactional} {
		s := scores[intent]
		if s > bestScore {
			best, bestScore, tied = intent, s, false
		} else if s == bestScore && s > 0 {
			tied = true
		}
	}
	if bestScore == 0 || tied {
		return IntentUnknown
	}
	return best
}

func countCues(text string, cues []string) int {
	hits := 0
	for _, cue := range cues {
		if textutil.ContainsWord(text, strings.ToLower(cue)) {
			hits++
		}
	}
	return hits
}

package pronunciation

import (
	"path"
	"regexp"
	"sort"
	"strings"

	"github.com/heartmarshall/pronounce/internal/domain"
)

// audioExtensions is the allow-list of media candidate extensions.
var audioExtensions = map[string]struct{}{
	".ogg": {},
	".oga": {},
	".mp3": {},
	".wav": {},
}

var languageMarker = regexp.MustCompile(`(^|[-_ ()])hu([-_ ()]|$)`)

// Rule adds Delta to a candidate's score when Match reports true.
// Match receives the lower-cased file name (without the File: prefix)
// and the lower-cased word.
type Rule struct {
	Name  string
	Delta int
	Match func(name, word string) bool
}

// DefaultRules returns the scoring table used for Hungarian pronunciation audio.
func DefaultRules() []Rule {
	return []Rule{
		{Name: "ogg", Delta: 20, Match: func(n, _ string) bool {
			return strings.HasSuffix(n, ".ogg") || strings.HasSuffix(n, ".oga")
		}},
		{Name: "mp3", Delta: 10, Match: func(n, _ string) bool { return strings.HasSuffix(n, ".mp3") }},
		{Name: "language-marker", Delta: 40, Match: func(n, _ string) bool { return languageMarker.MatchString(n) }},
		{Name: "hungarian", Delta: 30, Match: contains("hungarian")},
		{Name: "magyar", Delta: 20, Match: contains("magyar")},
		{Name: "pronunciation", Delta: 20, Match: contains("pronun", "pronunc", "ipa", "audio", "speech")},
		{Name: "word", Delta: 25, Match: func(n, w string) bool { return w != "" && strings.Contains(n, w) }},
		{Name: "example", Delta: -40, Match: contains("example", "sentence", "phrase", "dialog", "conversation")},
		{Name: "spelling", Delta: -20, Match: contains("slow", "spelling", "letters", "alphabet")},
	}
}

func contains(terms ...string) func(name, word string) bool {
	return func(name, _ string) bool {
		for _, t := range terms {
			if strings.Contains(name, t) {
				return true
			}
		}
		return false
	}
}

// Scorer filters raw page media down to audio files and ranks them.
// A Scorer is immutable and safe for concurrent use.
type Scorer struct {
	rules []Rule
}

// NewScorer creates a Scorer over a copy of rules.
func NewScorer(rules []Rule) *Scorer {
	return &Scorer{rules: append([]Rule(nil), rules...)}
}

// Candidates normalizes raw titles to canonical file titles and keeps only
// those with an allowed audio extension, preserving input order.
func (s *Scorer) Candidates(raw []string) []string {
	out := make([]string, 0, len(raw))
	for _, r := range raw {
		if r == "" {
			continue
		}
		title := domain.NormalizeFileTitle(r)
		if _, ok := audioExtensions[strings.ToLower(path.Ext(title))]; ok {
			out = append(out, title)
		}
	}
	return out
}

// Score computes the heuristic score of a canonical file title for word.
func (s *Scorer) Score(filename, word string) int {
	name := strings.ToLower(strings.TrimPrefix(filename, domain.FileTitlePrefix))
	w := strings.ToLower(word)

	score := 0
	for _, r := range s.rules {
		if r.Match(name, w) {
			score += r.Delta
		}
	}
	return score
}

// Rank returns every audio candidate with its score, best first.
// Equal scores keep their input order.
func (s *Scorer) Rank(raw []string, word string) []domain.ScoredCandidate {
	titles := s.Candidates(raw)
	ranked := make([]domain.ScoredCandidate, len(titles))
	for i, t := range titles {
		ranked[i] = domain.ScoredCandidate{Filename: t, Score: s.Score(t, word)}
	}
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].Score > ranked[j].Score })
	return ranked
}

// SelectBest returns the highest-scoring audio candidate. The earliest
// candidate wins ties. ok is false when raw holds no audio file.
func (s *Scorer) SelectBest(raw []string, word string) (best domain.ScoredCandidate, ok bool) {
	for _, t := range s.Candidates(raw) {
		score := s.Score(t, word)
		if !ok || score > best.Score {
			best = domain.ScoredCandidate{Filename: t, Score: score}
			ok = true
		}
	}
	return best, ok
}

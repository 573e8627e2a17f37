package domain

// ScoredCandidate is a media filename together with its heuristic score.
type ScoredCandidate struct {
	Filename string
	Score    int
}

// ResolvedAudio is a candidate resolved to an absolute, fetchable URL.
// HostSource is the source (or shared repository) that produced the URL.
type ResolvedAudio struct {
	Filename   string
	URL        string
	HostSource ReferenceSource
}

// ResolutionStatus tags the outcome of a single resolution.
type ResolutionStatus int

const (
	// StatusFound means a combination produced a resolvable URL.
	StatusFound ResolutionStatus = iota + 1
	// StatusNotFound means every combination was attempted without success.
	StatusNotFound
	// StatusInvalidInput means the word was blank; nothing was attempted.
	StatusInvalidInput
	// StatusFailed means an unexpected error stopped the resolution.
	StatusFailed
)

func (s ResolutionStatus) String() string {
	switch s {
	case StatusFound:
		return "found"
	case StatusNotFound:
		return "not_found"
	case StatusInvalidInput:
		return "invalid_input"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Resolution is the result of resolving one word.
//
// Tried is always populated with the combinations actually attempted, in
// order. Source, Variant and Audio are set only for StatusFound; Err only
// for StatusInvalidInput and StatusFailed.
type Resolution struct {
	Status  ResolutionStatus
	Word    string
	Tried   []string
	Source  string
	Variant string
	Audio   *ResolvedAudio
	Err     error
}

// Found reports whether the resolution produced an audio URL.
func (r Resolution) Found() bool {
	return r.Status == StatusFound && r.Audio != nil
}

package domain

// ReferenceSource is a content API consulted for page media. Sources are
// configured once at startup and never mutated.
type ReferenceSource struct {
	Name    string
	BaseURL string
}

// AttemptLabel formats a source/variant combination as recorded in a trail.
func AttemptLabel(source ReferenceSource, variant string) string {
	return source.Name + ":" + variant
}

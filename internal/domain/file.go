package domain

import "strings"

// FileTitlePrefix is the namespace prefix carried by every canonical file title.
const FileTitlePrefix = "File:"

// NormalizeFileTitle returns the title with the canonical file prefix.
// Titles already carrying the prefix are returned unchanged.
func NormalizeFileTitle(title string) string {
	if strings.HasPrefix(title, FileTitlePrefix) {
		return title
	}
	return FileTitlePrefix + title
}

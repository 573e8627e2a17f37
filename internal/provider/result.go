package provider

// PageMedia is the list of files embedded on a page of a content API.
type PageMedia struct {
	PageTitle string
	// Files holds raw file titles as reported by the source, in response order.
	Files []string
}

// FileInfo is the location of a single file as reported by a content API.
type FileInfo struct {
	Title string
	URL   string
	// Repository is the upstream's own label for where the file lives
	// (e.g. "local" or "shared"); informational only.
	Repository string
}

package pronunciation

import "errors"

// ErrUnexpected marks a resolution aborted by a failure outside the
// per-combination search (a recovered panic).
var ErrUnexpected = errors.New("unexpected resolution failure")

// ErrUnknownSource is returned for a source name that is not configured.
var ErrUnknownSource = errors.New("unknown reference source")

// NotFoundMessage describes an exhausted search to callers.
const NotFoundMessage = "No audio files found via MediaWiki images/imageinfo."

package pronunciation

import (
	"context"
	"log/slog"
	"net/url"

	"github.com/heartmarshall/pronounce/internal/domain"
)

// pageMedia lists the files attached to title on source. Upstream failures
// and missing pages both yield no files; one bad source must not abort the
// whole search.
func (s *Service) pageMedia(ctx context.Context, source domain.ReferenceSource, title string) []string {
	media, err := s.media.PageMedia(ctx, source, title)
	if err != nil {
		s.log.WarnContext(ctx, "page media query failed",
			slog.String("source", source.Name),
			slog.String("title", title),
			slog.String("error", err.Error()),
		)
		return nil
	}
	if media == nil {
		return nil
	}
	return media.Files
}

// locate resolves filename to an absolute URL, first on the originating
// source and then on the shared repository. Failures on either host count
// as unresolved.
func (s *Service) locate(ctx context.Context, filename string, origin domain.ReferenceSource) (domain.ResolvedAudio, bool) {
	hosts := []domain.ReferenceSource{origin}
	if s.shared != origin && s.shared.BaseURL != "" {
		hosts = append(hosts, s.shared)
	}

	for _, host := range hosts {
		info, err := s.media.FileInfo(ctx, host, filename)
		if err != nil {
			s.log.WarnContext(ctx, "file info query failed",
				slog.String("host", host.Name),
				slog.String("file", filename),
				slog.String("error", err.Error()),
			)
			continue
		}
		if info == nil || info.URL == "" {
			continue
		}

		abs, ok := absoluteURL(host.BaseURL, info.URL)
		if !ok {
			s.log.WarnContext(ctx, "file url not usable",
				slog.String("host", host.Name),
				slog.String("file", filename),
				slog.String("url", info.URL),
			)
			continue
		}

		return domain.ResolvedAudio{Filename: filename, URL: abs, HostSource: host}, true
	}

	return domain.ResolvedAudio{}, false
}

// absoluteURL resolves raw against base. Protocol-relative URLs
// ("//upload.example.org/a.ogg") take the base scheme.
func absoluteURL(base, raw string) (string, bool) {
	ref, err := url.Parse(raw)
	if err != nil {
		return "", false
	}
	if ref.IsAbs() {
		return ref.String(), true
	}
	b, err := url.Parse(base)
	if err != nil || !b.IsAbs() {
		return "", false
	}
	return b.ResolveReference(ref).String(), true
}

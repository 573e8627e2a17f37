package pronunciation

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"
	"slices"
	"strings"
	"time"

	"github.com/heartmarshall/pronounce/internal/domain"
	"github.com/heartmarshall/pronounce/internal/provider"
)

type mediaProvider interface {
	PageMedia(ctx context.Context, source domain.ReferenceSource, title string) (*provider.PageMedia, error)
	FileInfo(ctx context.Context, source domain.ReferenceSource, fileTitle string) (*provider.FileInfo, error)
}

type resolutionRecorder interface {
	ObserveResolution(status, source string, attempts int, elapsed time.Duration)
}

type nopRecorder struct{}

func (nopRecorder) ObserveResolution(string, string, int, time.Duration) {}

// Config is the immutable search configuration of a Service.
type Config struct {
	// Sources are tried in order; earlier sources have priority.
	Sources []domain.ReferenceSource
	// SharedRepo is consulted when a source cannot resolve its own file.
	SharedRepo domain.ReferenceSource
	// Scorer defaults to NewScorer(DefaultRules()).
	Scorer *Scorer
}

// Service resolves words to pronunciation audio URLs.
//
// Each Resolve call walks sources × variants strictly sequentially and stops
// at the first combination that yields a resolvable URL. Concurrent calls
// share only read-only configuration.
type Service struct {
	log     *slog.Logger
	media   mediaProvider
	sources []domain.ReferenceSource
	shared  domain.ReferenceSource
	scorer  *Scorer
	metrics resolutionRecorder
}

// NewService creates a pronunciation Service. rec may be nil.
func NewService(logger *slog.Logger, media mediaProvider, cfg Config, rec resolutionRecorder) *Service {
	scorer := cfg.Scorer
	if scorer == nil {
		scorer = NewScorer(DefaultRules())
	}
	if rec == nil {
		rec = nopRecorder{}
	}
	return &Service{
		log:     logger.With("service", "pronunciation"),
		media:   media,
		sources: append([]domain.ReferenceSource(nil), cfg.Sources...),
		shared:  cfg.SharedRepo,
		scorer:  scorer,
		metrics: rec,
	}
}

// Sources returns the configured reference sources in priority order.
func (s *Service) Sources() []domain.ReferenceSource {
	return append([]domain.ReferenceSource(nil), s.sources...)
}

// Resolve finds the pronunciation audio for word. It never panics and never
// returns a partially filled result: the Status tells which fields are set,
// and Tried always lists the combinations actually attempted.
//
// A blank word yields StatusInvalidInput without any upstream call. A
// cancelled ctx stops the search before the next combination and yields
// StatusFailed wrapping ctx.Err().
func (s *Service) Resolve(ctx context.Context, word string) (res domain.Resolution) {
	start := time.Now()
	res = domain.Resolution{Word: strings.TrimSpace(word), Tried: []string{}}

	defer func() {
		if r := recover(); r != nil {
			s.log.ErrorContext(ctx, "resolution panicked",
				slog.String("word", res.Word),
				slog.Any("panic", r),
				slog.String("stack", string(debug.Stack())),
			)
			res.Status = domain.StatusFailed
			res.Source = ""
			res.Variant = ""
			res.Audio = nil
			res.Err = fmt.Errorf("%w: %v", ErrUnexpected, r)
		}
		s.observe(ctx, res, time.Since(start))
	}()

	variants, err := ExpandVariants(word)
	if err != nil {
		res.Status = domain.StatusInvalidInput
		res.Err = err
		return res
	}
	original := variants[0]

	for _, source := range s.sources {
		for _, variant := range variants {
			if err := ctx.Err(); err != nil {
				res.Status = domain.StatusFailed
				res.Err = err
				return res
			}

			res.Tried = append(res.Tried, domain.AttemptLabel(source, variant))

			if audio, ok := s.attempt(ctx, source, variant, original); ok {
				res.Status = domain.StatusFound
				res.Source = source.Name
				res.Variant = variant
				res.Audio = &audio
				return res
			}
		}
	}

	if err := ctx.Err(); err != nil {
		res.Status = domain.StatusFailed
		res.Err = err
		return res
	}

	res.Status = domain.StatusNotFound
	return res
}

// attempt runs one source/variant combination. Any failure inside it,
// including a panic, counts as no hit.
func (s *Service) attempt(ctx context.Context, source domain.ReferenceSource, variant, word string) (audio domain.ResolvedAudio, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			s.log.ErrorContext(ctx, "combination panicked, skipping",
				slog.String("source", source.Name),
				slog.String("variant", variant),
				slog.Any("panic", r),
			)
			audio, ok = domain.ResolvedAudio{}, false
		}
	}()

	files := s.pageMedia(ctx, source, variant)
	candidate, found := s.scorer.SelectBest(files, word)
	if !found {
		return domain.ResolvedAudio{}, false
	}

	s.log.DebugContext(ctx, "candidate selected",
		slog.String("source", source.Name),
		slog.String("variant", variant),
		slog.String("file", candidate.Filename),
		slog.Int("score", candidate.Score),
	)

	return s.locate(ctx, candidate.Filename, source)
}

// observe records the outcome. It runs from Resolve's deferred recover, so
// a panicking recorder is logged and swallowed here.
func (s *Service) observe(ctx context.Context, res domain.Resolution, elapsed time.Duration) {
	defer func() {
		if r := recover(); r != nil {
			s.log.ErrorContext(ctx, "recording resolution panicked",
				slog.String("word", res.Word),
				slog.Any("panic", r),
			)
		}
	}()

	s.metrics.ObserveResolution(res.Status.String(), res.Source, len(res.Tried), elapsed)

	attrs := []slog.Attr{
		slog.String("word", res.Word),
		slog.String("status", res.Status.String()),
		slog.Int("attempts", len(res.Tried)),
		slog.Duration("duration", elapsed),
	}
	if res.Audio != nil {
		attrs = append(attrs,
			slog.String("source", res.Source),
			slog.String("file", res.Audio.Filename),
			slog.String("file_host", res.Audio.HostSource.Name),
		)
	}
	if res.Err != nil {
		attrs = append(attrs, slog.String("error", res.Err.Error()))
	}
	s.log.LogAttrs(ctx, slog.LevelInfo, "pronunciation resolved", attrs...)
}

// Rank fetches the media of title on the named source and scores every
// audio candidate against word, best first. Unlike Resolve it reports
// upstream failures and missing pages to the caller.
func (s *Service) Rank(ctx context.Context, sourceName, title, word string) ([]domain.ScoredCandidate, error) {
	idx := slices.IndexFunc(s.sources, func(src domain.ReferenceSource) bool { return src.Name == sourceName })
	if idx < 0 {
		return nil, fmt.Errorf("%w: %q", ErrUnknownSource, sourceName)
	}

	media, err := s.media.PageMedia(ctx, s.sources[idx], title)
	if err != nil {
		return nil, err
	}
	if media == nil {
		return nil, fmt.Errorf("%w: page %q on %s", domain.ErrNotFound, title, sourceName)
	}
	return s.scorer.Rank(media.Files, strings.TrimSpace(word)), nil
}

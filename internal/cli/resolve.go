package cli

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/heartmarshall/pronounce/internal/domain"
)

type resolver interface {
	Resolve(ctx context.Context, word string) domain.Resolution
	Rank(ctx context.Context, sourceName, title, word string) ([]domain.ScoredCandidate, error)
}

// Result is the resolution of one word plus optional diagnostics.
type Result struct {
	domain.Resolution
	// Candidates are the ranked audio files of the winning page, filled
	// only in explain mode.
	Candidates []domain.ScoredCandidate
}

// resolveAll resolves words with at most concurrency lookups in flight.
// Results keep the order of words.
func resolveAll(ctx context.Context, svc resolver, words []string, concurrency int, explain bool, logger *slog.Logger) []Result {
	results := make([]Result, len(words))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for i, word := range words {
		g.Go(func() error {
			res := Result{Resolution: svc.Resolve(gctx, word)}
			if explain && res.Found() {
				ranked, err := svc.Rank(gctx, res.Source, res.Variant, word)
				if err != nil {
					logger.WarnContext(gctx, "explain: rank candidates",
						slog.String("word", res.Word),
						slog.String("error", err.Error()),
					)
				}
				res.Candidates = ranked
			}
			results[i] = res
			return nil
		})
	}
	_ = g.Wait()

	return results
}

package analysis

import (
	"context"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/Demoen/LoL-Win-Prediction-Analyzer/internal/models"
)

// BatchResult is one match's extraction outcome. Per-match failures are
// recorded here rather than aborting the batch.
type BatchResult struct {
	MatchID    string
	Extraction *models.Extraction
	Err        error
}

// ExtractBatch extracts features for all matches with bounded parallelism.
// Extraction is pure, so matches run concurrently with no ordering
// guarantee; results come back in input order regardless. An individual
// match failing never aborts its siblings; only context cancellation stops
// the batch early.
func (e *Extractor) ExtractBatch(ctx context.Context, matches []*models.Match, puuid string, parallelism int) []BatchResult {
	if parallelism < 1 {
		parallelism = 1
	}

	results := make([]BatchResult, len(matches))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(parallelism)

	for i, match := range matches {
		i, match := i, match
		results[i].MatchID = match.MatchID
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				results[i].Err = err
				return nil
			}
			extraction, err := e.Extract(match, puuid)
			if err != nil {
				e.logger.WithError(err).WithField("match_id", match.MatchID).Warn("Skipping match: extraction failed")
				results[i].Err = err
				return nil
			}
			results[i].Extraction = extraction
			return nil
		})
	}

	_ = g.Wait()
	return results
}

// Records filters a batch down to its successful feature records, ordered
// oldest to newest as the training engine requires.
func Records(results []BatchResult) []models.FeatureRecord {
	records := make([]models.FeatureRecord, 0, len(results))
	for i := range results {
		if results[i].Err != nil || results[i].Extraction == nil {
			continue
		}
		records = append(records, results[i].Extraction.Record)
	}
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].GameCreation.Before(records[j].GameCreation)
	})
	return records
}

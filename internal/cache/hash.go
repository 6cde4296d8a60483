// Package cache provides the content-addressed trained-model store.
package cache

import (
	"crypto/sha256"
	"fmt"
	"sort"
	"strings"

	"github.com/Demoen/LoL-Win-Prediction-Analyzer/internal/models"
)

// DataHash fingerprints the exact set of feature records and labels used
// for training. The digest is order-independent (training consumes the
// sequence, the cache keys the set), but every input that affects the
// trained model participates: match identity, label, timestamps (which
// drive the recency window ordering), the full feature vector, and the
// goldPerMinute metadata the consistency score reads.
func DataHash(records []models.FeatureRecord) string {
	digests := make([]string, 0, len(records))
	for i := range records {
		r := &records[i]
		h := sha256.New()
		fmt.Fprintf(h, "%s|%t|%d|%.6f", r.MatchID, r.Win, r.GameCreation.UnixMilli(), r.GoldPerMinute)
		for _, v := range r.Features.Values() {
			fmt.Fprintf(h, "|%.6f", v)
		}
		digests = append(digests, fmt.Sprintf("%x", h.Sum(nil)))
	}
	sort.Strings(digests)

	combined := sha256.Sum256([]byte(strings.Join(digests, "\n")))
	return fmt.Sprintf("%x", combined)
}

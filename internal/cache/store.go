package cache

import (
	"context"
	"fmt"
	"sync"

	gocache "github.com/patrickmn/go-cache"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"

	"github.com/Demoen/LoL-Win-Prediction-Analyzer/internal/metrics"
	"github.com/Demoen/LoL-Win-Prediction-Analyzer/internal/models"
	"github.com/Demoen/LoL-Win-Prediction-Analyzer/internal/training"
)

// Trainer is the training entry point the store wraps. Satisfied by
// *training.Engine.
type Trainer interface {
	Train(ctx context.Context, puuid string, history []models.FeatureRecord) (*training.TrainedModel, error)
}

// ModelStore memoizes trained models by (player, content hash). Entries
// never expire by time; correctness rests entirely on hash fidelity. A
// miss trains fresh and replaces the player's prior entry; concurrent
// requests for the same (player, hash) share a single training run.
type ModelStore struct {
	store   *gocache.Cache
	flight  singleflight.Group
	trainer Trainer
	logger  *logrus.Logger

	mu        sync.RWMutex
	hitCount  uint64
	missCount uint64
}

// NewModelStore creates a content-addressed model store around the given
// trainer.
func NewModelStore(trainer Trainer, logger *logrus.Logger) *ModelStore {
	return &ModelStore{
		store:   gocache.New(gocache.NoExpiration, 0),
		trainer: trainer,
		logger:  logger,
	}
}

// Get returns the cached model for a player iff its hash matches.
func (s *ModelStore) Get(puuid, hash string) *training.TrainedModel {
	if cached, found := s.store.Get(puuid); found {
		if model, ok := cached.(*training.TrainedModel); ok && model.DataHash == hash {
			return model
		}
	}
	return nil
}

// GetOrTrain returns the player's model for the given history, training
// only when the content hash changed. The returned bool reports a cache
// hit. At most one training runs concurrently per (player, hash); later
// callers for the same key await and share the first result.
func (s *ModelStore) GetOrTrain(ctx context.Context, puuid string, history []models.FeatureRecord) (*training.TrainedModel, bool, error) {
	hash := DataHash(history)

	if model := s.Get(puuid, hash); model != nil {
		s.recordHit()
		return model, true, nil
	}

	key := fmt.Sprintf("%s:%s", puuid, hash)
	v, err, _ := s.flight.Do(key, func() (interface{}, error) {
		// A concurrent caller may have stored the model while this one
		// awaited the flight slot.
		if model := s.Get(puuid, hash); model != nil {
			return model, nil
		}
		s.recordMiss()

		model, err := s.trainer.Train(ctx, puuid, history)
		if err != nil {
			return nil, err
		}
		model.DataHash = hash

		s.store.Set(puuid, model, gocache.NoExpiration)
		metrics.CachedModels.Set(float64(s.store.ItemCount()))
		s.logger.WithFields(logrus.Fields{
			"puuid": puuid,
			"hash":  hash[:12],
		}).Debug("Stored freshly trained model")
		return model, nil
	})
	if err != nil {
		return nil, false, err
	}

	return v.(*training.TrainedModel), false, nil
}

// Invalidate drops a player's cached model.
func (s *ModelStore) Invalidate(puuid string) {
	s.store.Delete(puuid)
	metrics.CachedModels.Set(float64(s.store.ItemCount()))
}

// ItemCount returns the number of cached models.
func (s *ModelStore) ItemCount() int {
	return s.store.ItemCount()
}

// Stats returns cache hit/miss counts and their ratio.
func (s *ModelStore) Stats() (hits, misses uint64, ratio float64) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	hits = s.hitCount
	misses = s.missCount
	if total := hits + misses; total > 0 {
		ratio = float64(hits) / float64(total)
	}
	return
}

func (s *ModelStore) recordHit() {
	s.mu.Lock()
	s.hitCount++
	s.mu.Unlock()
	metrics.ModelCacheHitsTotal.Inc()
	s.updateRatio()
}

func (s *ModelStore) recordMiss() {
	s.mu.Lock()
	s.missCount++
	s.mu.Unlock()
	metrics.ModelCacheMissesTotal.Inc()
	s.updateRatio()
}

func (s *ModelStore) updateRatio() {
	_, _, ratio := s.Stats()
	metrics.ModelCacheHitRatio.Set(ratio)
}

package sync

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/lovetrip/crawler/internal"
	"github.com/lovetrip/crawler/internal/db"
	"github.com/lovetrip/crawler/internal/log"
)

// PlaceStore is the persistence surface the upserter needs.
type PlaceStore interface {
	FindPlaceIdByContentId(ctx context.Context, contentId string) (int64, bool, error)
	InsertPlace(ctx context.Context, place *db.PlaceModel) (int64, error)
	UpdatePlace(ctx context.Context, id int64, place *db.PlaceModel) error
}

// BatchResult counts the outcome of one batch.
type BatchResult struct {
	Inserted int
	Updated  int
	Errors   int
}

// Upserter persists places idempotently against a transient-failure-prone
// store. Delays are fields so tests can shrink them.
type Upserter struct {
	store  PlaceStore
	logger log.Logger

	retryInitial time.Duration // base delay of the exponential retry
	maxAttempts  uint64        // attempts per record, retries included
	itemDelay    time.Duration // pause between successive batch items
	pauseAfter   int           // consecutive failures before cooling down
	pauseFor     time.Duration // cooldown duration
	sleep        func(time.Duration)
}

func NewUpserter(store PlaceStore, logger log.Logger) *Upserter {
	return &Upserter{
		store:        store,
		logger:       logger,
		retryInitial: 2 * time.Second,
		maxAttempts:  5,
		itemDelay:    50 * time.Millisecond,
		pauseAfter:   10,
		pauseFor:     5 * time.Second,
		sleep:        time.Sleep,
	}
}

// UpsertPlace persists one place keyed by its tour content id and reports
// whether a new row was created. Transient failures are retried with
// exponential backoff; anything else fails immediately.
func (u *Upserter) UpsertPlace(ctx context.Context, place *db.PlaceModel) (int64, bool, error) {
	var id int64
	var isNew bool

	operation := func() error {
		var err error
		id, isNew, err = u.upsertOnce(ctx, place)
		if err == nil {
			return nil
		}
		if internal.IsTransient(err) {
			return err
		}
		return backoff.Permanent(err)
	}

	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = u.retryInitial
	policy.RandomizationFactor = 0
	policy.Multiplier = 2
	policy.MaxInterval = 1 * time.Minute
	policy.MaxElapsedTime = 0

	err := backoff.Retry(operation, backoff.WithMaxRetries(backoff.WithContext(policy, ctx), u.maxAttempts-1))
	if err != nil {
		return 0, false, err
	}

	return id, isNew, nil
}

func (u *Upserter) upsertOnce(ctx context.Context, place *db.PlaceModel) (int64, bool, error) {
	id, found, err := u.store.FindPlaceIdByContentId(ctx, place.TourContentId)
	if err != nil {
		return 0, false, fmt.Errorf("place lookup failed: %w", err)
	}

	if found {
		if err := u.store.UpdatePlace(ctx, id, place); err != nil {
			return 0, false, fmt.Errorf("place update failed: %w", err)
		}
		return id, false, nil
	}

	newId, err := u.store.InsertPlace(ctx, place)
	if err == nil {
		return newId, true, nil
	}

	// lost the insert race: someone else created the row between the
	// lookup and the insert, so re-query and update instead
	var conflict *internal.ConflictError
	if errors.As(err, &conflict) {
		id, found, ferr := u.store.FindPlaceIdByContentId(ctx, place.TourContentId)
		if ferr != nil {
			return 0, false, fmt.Errorf("re-lookup after conflict failed: %w", ferr)
		}
		if !found {
			return 0, false, fmt.Errorf("conflict on insert but no row found for %s", place.TourContentId)
		}
		if uerr := u.store.UpdatePlace(ctx, id, place); uerr != nil {
			return 0, false, fmt.Errorf("place update after conflict failed: %w", uerr)
		}
		return id, false, nil
	}

	return 0, false, fmt.Errorf("place insert failed: %w", err)
}

// UpsertPlacesBatch persists places sequentially and keeps counting through
// per-item failures. After pauseAfter consecutive failures it cools down for
// pauseFor before continuing, so a store outage does not burn through the
// retry budget in a tight loop.
func (u *Upserter) UpsertPlacesBatch(ctx context.Context, places []*db.PlaceModel) BatchResult {
	var result BatchResult
	consecutiveErrors := 0

	for i, place := range places {
		_, isNew, err := u.UpsertPlace(ctx, place)
		if err != nil {
			result.Errors++
			consecutiveErrors++
			u.logger.WithField("TourContentId", place.TourContentId).
				Errorf("failed to upsert place: %v", err)

			if consecutiveErrors >= u.pauseAfter {
				u.logger.Warnf("%d consecutive failures, pausing for %s", consecutiveErrors, u.pauseFor)
				u.sleep(u.pauseFor)
				consecutiveErrors = 0
			}
		} else {
			consecutiveErrors = 0
			if isNew {
				result.Inserted++
			} else {
				result.Updated++
			}
		}

		if i < len(places)-1 {
			u.sleep(u.itemDelay)
		}
	}

	return result
}

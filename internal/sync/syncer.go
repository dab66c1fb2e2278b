package sync

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/lovetrip/crawler/internal"
	"github.com/lovetrip/crawler/internal/db"
	"github.com/lovetrip/crawler/internal/log"
	"github.com/lovetrip/crawler/internal/tourapi"
	"github.com/lovetrip/crawler/internal/transform"
	"github.com/lovetrip/crawler/internal/util/assert"
	"github.com/sirupsen/logrus"
)

// PageFetcher is the upstream surface the syncer needs.
type PageFetcher interface {
	GetAllPages(ctx context.Context, params tourapi.PageParams) []tourapi.Item
}

// Totals accumulates counters across tasks. It is threaded through the task
// loop explicitly instead of living in package state.
type Totals struct {
	Inserted     int
	Updated      int
	Errors       int
	DatePlaces   int
	TravelPlaces int
}

func (t *Totals) add(result BatchResult, category internal.CourseCategory) {
	t.Inserted += result.Inserted
	t.Updated += result.Updated
	t.Errors += result.Errors

	saved := result.Inserted + result.Updated
	if category == internal.CategoryDate {
		t.DatePlaces += saved
	} else {
		t.TravelPlaces += saved
	}
}

// Syncer runs the crawl: fetch, transform, tag, summarize, upsert,
// one task at a time.
type Syncer struct {
	client      PageFetcher
	transformer *transform.Transformer
	upserter    *Upserter
	summaries   SummaryStore
	logger      log.Logger
	batchSize   int
}

func NewSyncer(client PageFetcher, transformer *transform.Transformer, upserter *Upserter, summaries SummaryStore, logger log.Logger, batchSize int) *Syncer {
	assert.NotNil(client, "syncer requires an upstream client")
	assert.NotNil(upserter, "syncer requires an upserter")
	assert.NotNil(summaries, "syncer requires a summary store")

	if batchSize <= 0 {
		batchSize = 50
	}

	return &Syncer{
		client:      client,
		transformer: transformer,
		upserter:    upserter,
		summaries:   summaries,
		logger:      logger,
		batchSize:   batchSize,
	}
}

// Run executes the task list sequentially and returns the merged totals.
// A task failure is logged, counted and skipped; only an error outside the
// per-task boundary (context cancellation) aborts the run.
func (s *Syncer) Run(ctx context.Context, tasks []internal.SyncTask) (Totals, error) {
	startTime := time.Now()
	var totals Totals

	var dateTasks int
	for _, task := range tasks {
		if task.Category == internal.CategoryDate {
			dateTasks++
		}
	}

	s.logger.WithFields(logrus.Fields{
		"TaskCount":   len(tasks),
		"DateTasks":   dateTasks,
		"TravelTasks": len(tasks) - dateTasks,
	}).Info("starting place sync")

	for i, task := range tasks {
		if err := ctx.Err(); err != nil {
			return totals, err
		}

		taskStart := time.Now()
		region := internal.AreaName(task.AreaCode)

		taskLogger := s.logger.WithFields(logrus.Fields{
			"Task":          i + 1,
			"TaskCount":     len(tasks),
			"AreaCode":      task.AreaCode,
			"Region":        region,
			"ContentTypeId": task.ContentTypeId,
			"ContentType":   tourapi.ContentTypeName(task.ContentTypeId),
			"Category":      task.Category,
		})

		progress := float64(i+1) / float64(len(tasks)) * 100
		color.Cyan("[%d/%d] %s %.1f%% %s/%s (%s)",
			i+1, len(tasks), progressBar(progress), progress,
			region, tourapi.ContentTypeName(task.ContentTypeId), task.Category)

		if i > 0 {
			elapsed := time.Since(startTime)
			avgPerTask := elapsed / time.Duration(i)
			remaining := avgPerTask * time.Duration(len(tasks)-i)
			taskLogger.WithField("EtaMinutes", int(remaining.Minutes())+1).Debug("estimated time remaining")
		}

		result, err := s.runTask(ctx, task, region, taskLogger)
		if err != nil {
			taskLogger.Errorf("task failed: %v", err)
			totals.Errors++
			continue
		}

		totals.add(result, task.Category)
		taskLogger.WithFields(logrus.Fields{
			"Inserted":    result.Inserted,
			"Updated":     result.Updated,
			"Errors":      result.Errors,
			"TaskSeconds": int(time.Since(taskStart).Seconds()),
		}).Info("task completed")
	}

	elapsed := time.Since(startTime)
	saved := totals.Inserted + totals.Updated
	if saved+totals.Errors > 0 {
		rate := float64(saved) / float64(saved+totals.Errors) * 100
		color.Green("sync completed in %.1f minutes: %d inserted, %d updated, %d errors (%.1f%% success)",
			elapsed.Minutes(), totals.Inserted, totals.Updated, totals.Errors, rate)
	}

	s.logger.WithFields(logrus.Fields{
		"Inserted":       totals.Inserted,
		"Updated":        totals.Updated,
		"Errors":         totals.Errors,
		"DatePlaces":     totals.DatePlaces,
		"TravelPlaces":   totals.TravelPlaces,
		"ElapsedMinutes": int(elapsed.Minutes()),
	}).Info("sync completed")

	return totals, nil
}

func (s *Syncer) runTask(ctx context.Context, task internal.SyncTask, region string, logger log.Logger) (BatchResult, error) {
	var result BatchResult

	items := s.client.GetAllPages(ctx, tourapi.PageParams{
		AreaCode:      task.AreaCode,
		ContentTypeId: task.ContentTypeId,
	})
	if err := ctx.Err(); err != nil {
		return result, err
	}

	logger.WithField("ItemCount", len(items)).Info("fetched upstream items")
	if len(items) == 0 {
		logger.Warn("no data for task, skipping")
		return result, nil
	}

	places := make([]*db.PlaceModel, 0, len(items))
	for _, item := range items {
		place := s.transformer.ToPlace(item)
		ensureCategory(place, task.Category)
		places = append(places, place)
	}

	summary := DeriveCourseSummary(region, task.Category, places, task.AreaCode, nil)
	if summary != nil {
		if err := s.summaries.UpsertCourseSummary(ctx, summary); err != nil {
			logger.Warnf("failed to save course summary %s: %v", summary.Id, err)
		}
	}

	batchCount := (len(places) + s.batchSize - 1) / s.batchSize
	for i := 0; i < len(places); i += s.batchSize {
		end := i + s.batchSize
		if end > len(places) {
			end = len(places)
		}
		batch := places[i:end]

		logger.WithFields(logrus.Fields{
			"Batch":      i/s.batchSize + 1,
			"BatchCount": batchCount,
			"BatchSize":  len(batch),
		}).Debug("processing batch")

		batchResult := s.upserter.UpsertPlacesBatch(ctx, batch)
		result.Inserted += batchResult.Inserted
		result.Updated += batchResult.Updated
		result.Errors += batchResult.Errors

		if err := ctx.Err(); err != nil {
			return result, err
		}
	}

	return result, nil
}

// ensureCategory tops up a place's course types with the crawl category,
// covering ETC items the transform left untagged.
func ensureCategory(place *db.PlaceModel, category internal.CourseCategory) {
	for _, courseType := range place.CourseType {
		if courseType == string(category) {
			return
		}
	}

	place.CourseType = append(place.CourseType, string(category))
}

func progressBar(percent float64) string {
	const width = 30

	filled := int(percent / 100 * width)
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}

	return fmt.Sprintf("%s%s", strings.Repeat("█", filled), strings.Repeat("░", width-filled))
}

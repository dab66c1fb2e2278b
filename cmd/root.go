package cmd

import (
	"context"
	"flag"
	"time"

	"github.com/lovetrip/crawler/internal"
	"github.com/lovetrip/crawler/internal/db"
	"github.com/lovetrip/crawler/internal/log"
	"github.com/lovetrip/crawler/internal/sync"
	"github.com/lovetrip/crawler/internal/tourapi"
	"github.com/lovetrip/crawler/internal/transform"
	"github.com/lovetrip/crawler/internal/util"
	"github.com/uptrace/bun"
)

func Run(ctx context.Context, connection bun.IDB, config *util.Config) error {
	var dryRun bool
	flag.BoolVar(&dryRun, "dry", false, "dry run")
	flag.Parse()

	logger := log.GetLogger()

	if dryRun {
		logger = log.AddGlobalField("DryRun", dryRun)
	}

	client := tourapi.NewClient(config, logger)
	transformer := transform.NewTransformer(logger)

	var placeStore sync.PlaceStore
	var summaryStore sync.SummaryStore
	var runStore sync.RunStore
	if dryRun {
		discard := &sync.DiscardStore{}
		placeStore, summaryStore, runStore = discard, discard, discard
	} else {
		store := db.NewStore(connection)
		placeStore, summaryStore, runStore = store, store, store
	}

	upserter := sync.NewUpserter(placeStore, logger)
	syncer := sync.NewSyncer(client, transformer, upserter, summaryStore, logger, config.BatchSize.Int(50))
	recorder := sync.NewRunRecorder(runStore, logger)

	tasks := internal.BuildTaskList()
	logger.WithField("TaskCount", len(tasks)).Info("built task list")

	startTime := time.Now()
	runId := recorder.LogStart(ctx)

	totals, err := syncer.Run(ctx, tasks)

	recorder.LogEnd(ctx, runId, sync.RunResult{
		Totals:   totals,
		Duration: time.Since(startTime),
		Err:      err,
		LogTail:  log.Tail(),
	})

	return err
}

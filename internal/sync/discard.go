package sync

import (
	"context"

	"github.com/lovetrip/crawler/internal/db"
)

// DiscardStore satisfies every store interface without touching the
// database, so a dry run can rehearse a full crawl. Each place counts as an
// insert because nothing is ever found.
type DiscardStore struct {
	nextId int64
}

func (s *DiscardStore) FindPlaceIdByContentId(_ context.Context, _ string) (int64, bool, error) {
	return 0, false, nil
}

func (s *DiscardStore) InsertPlace(_ context.Context, _ *db.PlaceModel) (int64, error) {
	s.nextId++
	return s.nextId, nil
}

func (s *DiscardStore) UpdatePlace(_ context.Context, _ int64, _ *db.PlaceModel) error {
	return nil
}

func (s *DiscardStore) UpsertCourseSummary(_ context.Context, _ *db.CourseSummaryModel) error {
	return nil
}

func (s *DiscardStore) InsertRun(_ context.Context, _ *db.CrawlerRunModel) error {
	return nil
}

func (s *DiscardStore) UpdateRun(_ context.Context, _ *db.CrawlerRunModel) error {
	return nil
}

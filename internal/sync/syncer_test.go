package sync

import (
	"context"
	"reflect"
	"testing"

	"github.com/lovetrip/crawler/internal"
	"github.com/lovetrip/crawler/internal/db"
	"github.com/lovetrip/crawler/internal/tourapi"
	"github.com/lovetrip/crawler/internal/transform"
)

type fakeFetcher struct {
	items map[int][]tourapi.Item // keyed by content type id
	calls []tourapi.PageParams
}

func (f *fakeFetcher) GetAllPages(_ context.Context, params tourapi.PageParams) []tourapi.Item {
	f.calls = append(f.calls, params)
	return f.items[params.ContentTypeId]
}

type fakeSummaryStore struct {
	summaries []*db.CourseSummaryModel
	err       error
}

func (s *fakeSummaryStore) UpsertCourseSummary(_ context.Context, summary *db.CourseSummaryModel) error {
	if s.err != nil {
		return s.err
	}
	s.summaries = append(s.summaries, summary)
	return nil
}

func restaurantItem(contentId, title string) tourapi.Item {
	return tourapi.Item{
		ContentID:     contentId,
		ContentTypeID: "39",
		Title:         title,
		AreaCode:      "1",
		MapX:          "126.97",
		MapY:          "37.56",
	}
}

func TestSyncerRun(t *testing.T) {
	fetcher := &fakeFetcher{items: map[int][]tourapi.Item{
		tourapi.ContentTypeRestaurant: {
			restaurantItem("1", "국밥집"),
			restaurantItem("2", "냉면집"),
			restaurantItem("3", "분식집"),
		},
	}}

	placeStore := newFakePlaceStore()
	var saved []*db.PlaceModel
	placeStore.insertHook = func(p *db.PlaceModel) error {
		saved = append(saved, p)
		return nil
	}
	summaryStore := &fakeSummaryStore{}

	upserter := fastUpserter(placeStore)
	syncer := NewSyncer(fetcher, transform.NewTransformer(testLogger()), upserter, summaryStore, testLogger(), 50)

	tasks := []internal.SyncTask{
		{AreaCode: 1, ContentTypeId: tourapi.ContentTypeRestaurant, Category: internal.CategoryDate},
	}

	totals, err := syncer.Run(context.Background(), tasks)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if totals.Inserted != 3 || totals.Updated != 0 || totals.Errors != 0 {
		t.Errorf("totals = %+v, want 3 inserted", totals)
	}
	if totals.DatePlaces != 3 {
		t.Errorf("DatePlaces = %d, want 3", totals.DatePlaces)
	}

	if len(summaryStore.summaries) != 1 {
		t.Fatalf("saved %d summaries, want 1", len(summaryStore.summaries))
	}
	summary := summaryStore.summaries[0]
	if summary.Id != "date-서울-1" {
		t.Errorf("summary id = %q", summary.Id)
	}
	if summary.PlaceCount != 3 {
		t.Errorf("summary PlaceCount = %d, want 3", summary.PlaceCount)
	}

	for _, p := range saved {
		if !reflect.DeepEqual(p.CourseType, []string{"date"}) {
			t.Errorf("place %s course types = %v, want [date]", p.TourContentId, p.CourseType)
		}
	}
}

func TestSyncerRunSkipsEmptyTasks(t *testing.T) {
	fetcher := &fakeFetcher{items: map[int][]tourapi.Item{}}
	placeStore := newFakePlaceStore()
	summaryStore := &fakeSummaryStore{}

	syncer := NewSyncer(fetcher, transform.NewTransformer(testLogger()), fastUpserter(placeStore), summaryStore, testLogger(), 50)

	totals, err := syncer.Run(context.Background(), []internal.SyncTask{
		{AreaCode: 32, ContentTypeId: tourapi.ContentTypeFestival, Category: internal.CategoryTravel},
	})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if totals != (Totals{}) {
		t.Errorf("totals = %+v, want all zero", totals)
	}
	if len(summaryStore.summaries) != 0 {
		t.Errorf("saved %d summaries, want 0", len(summaryStore.summaries))
	}
}

func TestSyncerRunStopsWhenCancelled(t *testing.T) {
	fetcher := &fakeFetcher{items: map[int][]tourapi.Item{
		tourapi.ContentTypeRestaurant: {restaurantItem("1", "어딘가")},
	}}
	placeStore := newFakePlaceStore()

	syncer := NewSyncer(fetcher, transform.NewTransformer(testLogger()), fastUpserter(placeStore), &fakeSummaryStore{}, testLogger(), 50)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := syncer.Run(ctx, []internal.SyncTask{
		{AreaCode: 1, ContentTypeId: tourapi.ContentTypeRestaurant, Category: internal.CategoryDate},
	})
	if err == nil {
		t.Fatal("expected a context error")
	}
	if len(fetcher.calls) != 0 {
		t.Errorf("fetcher was called %d times after cancellation", len(fetcher.calls))
	}
}

func TestSyncerSummaryFailureDoesNotAbortTask(t *testing.T) {
	fetcher := &fakeFetcher{items: map[int][]tourapi.Item{
		tourapi.ContentTypeRestaurant: {restaurantItem("1", "국밥집")},
	}}
	placeStore := newFakePlaceStore()
	summaryStore := &fakeSummaryStore{err: context.DeadlineExceeded}

	syncer := NewSyncer(fetcher, transform.NewTransformer(testLogger()), fastUpserter(placeStore), summaryStore, testLogger(), 50)

	totals, err := syncer.Run(context.Background(), []internal.SyncTask{
		{AreaCode: 1, ContentTypeId: tourapi.ContentTypeRestaurant, Category: internal.CategoryDate},
	})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if totals.Inserted != 1 {
		t.Errorf("Inserted = %d, want 1", totals.Inserted)
	}
}

func TestEnsureCategory(t *testing.T) {
	place := &db.PlaceModel{CourseType: []string{"travel"}}

	ensureCategory(place, internal.CategoryDate)
	if !reflect.DeepEqual(place.CourseType, []string{"travel", "date"}) {
		t.Errorf("CourseType = %v", place.CourseType)
	}

	ensureCategory(place, internal.CategoryDate)
	if !reflect.DeepEqual(place.CourseType, []string{"travel", "date"}) {
		t.Errorf("CourseType after repeat = %v, want no duplicate", place.CourseType)
	}

	untagged := &db.PlaceModel{}
	ensureCategory(untagged, internal.CategoryTravel)
	if !reflect.DeepEqual(untagged.CourseType, []string{"travel"}) {
		t.Errorf("CourseType = %v", untagged.CourseType)
	}
}

func TestTotalsAdd(t *testing.T) {
	var totals Totals

	totals.add(BatchResult{Inserted: 2, Updated: 1, Errors: 1}, internal.CategoryDate)
	totals.add(BatchResult{Inserted: 4}, internal.CategoryTravel)

	want := Totals{Inserted: 6, Updated: 1, Errors: 1, DatePlaces: 3, TravelPlaces: 4}
	if totals != want {
		t.Errorf("totals = %+v, want %+v", totals, want)
	}
}

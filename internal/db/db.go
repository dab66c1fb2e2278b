package db

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/lovetrip/crawler/internal"
	"github.com/lovetrip/crawler/internal/util"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
	"github.com/uptrace/bun/extra/bundebug"
)

func GetConnection(config *util.Config) (*bun.DB, error) {
	sqlDb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(config.DbConnectionString.Value)))
	db := bun.NewDB(sqlDb, pgdialect.New())

	db.AddQueryHook(bundebug.NewQueryHook(
		bundebug.WithEnabled(false),

		// BUNDEBUG=1 logs failed queries
		// BUNDEBUG=2 logs all queries
		bundebug.FromEnv("BUNDEBUG")))

	if err := db.Ping(); err != nil {
		return nil, err
	}

	return db, nil
}

// IsUniqueViolation reports whether err is a Postgres unique-constraint
// rejection (SQLSTATE 23505).
func IsUniqueViolation(err error) bool {
	var pgErr pgdriver.Error
	if !errors.As(err, &pgErr) {
		return false
	}

	return pgErr.Field('C') == "23505"
}

// Store exposes the crawl's persistence against a bun connection.
type Store struct {
	conn bun.IDB
}

func NewStore(connection bun.IDB) *Store {
	return &Store{conn: connection}
}

// FindPlaceIdByContentId looks up the surrogate id for an external content
// id. The second return value is false when no row exists.
func (s *Store) FindPlaceIdByContentId(ctx context.Context, contentId string) (int64, bool, error) {
	var id int64
	err := s.conn.NewSelect().
		Model((*PlaceModel)(nil)).
		Column("id").
		Where("tour_content_id = ?", contentId).
		Scan(ctx, &id)

	if errors.Is(err, sql.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}

	return id, true, nil
}

func (s *Store) InsertPlace(ctx context.Context, place *PlaceModel) (int64, error) {
	place.UpdatedAt = time.Now()

	_, err := s.conn.NewInsert().
		Model(place).
		Returning("id").
		Exec(ctx)
	if err != nil {
		if IsUniqueViolation(err) {
			return 0, internal.NewConflictError(err)
		}
		return 0, err
	}

	return place.Id, nil
}

func (s *Store) UpdatePlace(ctx context.Context, id int64, place *PlaceModel) error {
	place.Id = id
	place.UpdatedAt = time.Now()

	_, err := s.conn.NewUpdate().
		Model(place).
		ExcludeColumn("id").
		Where("id = ?", id).
		Exec(ctx)

	return err
}

// UpsertCourseSummary refreshes the snapshot for the summary's synthetic id.
func (s *Store) UpsertCourseSummary(ctx context.Context, summary *CourseSummaryModel) error {
	summary.UpdatedAt = time.Now()

	_, err := s.conn.NewInsert().
		Model(summary).
		On("CONFLICT (id) DO UPDATE").
		Set("title = EXCLUDED.title").
		Set("region = EXCLUDED.region").
		Set("course_type = EXCLUDED.course_type").
		Set("description = EXCLUDED.description").
		Set("image_url = EXCLUDED.image_url").
		Set("place_count = EXCLUDED.place_count").
		Set("area_code = EXCLUDED.area_code").
		Set("sigungu_code = EXCLUDED.sigungu_code").
		Set("updated_at = EXCLUDED.updated_at").
		Exec(ctx)

	return err
}

func (s *Store) InsertRun(ctx context.Context, run *CrawlerRunModel) error {
	_, err := s.conn.NewInsert().
		Model(run).
		Exec(ctx)

	return err
}

func (s *Store) UpdateRun(ctx context.Context, run *CrawlerRunModel) error {
	_, err := s.conn.NewUpdate().
		Model(run).
		ExcludeColumn("id", "started_at").
		Where("id = ?", run.Id).
		Exec(ctx)

	return err
}

package db

import (
	"time"

	"github.com/uptrace/bun"
)

// PlaceModel is the canonical place record. tour_content_id carries a unique
// constraint and is the sole dedup key against the upstream.
type PlaceModel struct {
	bun.BaseModel `bun:"table:places,alias:p"`

	Id                int64      `bun:"id,pk,autoincrement"`
	TourContentId     string     `bun:"tour_content_id,notnull,unique"`
	TourContentTypeId int        `bun:"tour_content_type_id,notnull"`
	Name              string     `bun:"name,notnull"`
	Lat               float64    `bun:"lat,notnull"`
	Lng               float64    `bun:"lng,notnull"`
	Type              string     `bun:"type,notnull"`
	Rating            float64    `bun:"rating,notnull"`
	PriceLevel        int        `bun:"price_level,notnull"`
	Description       *string    `bun:"description"`
	ImageUrl          *string    `bun:"image_url"`
	ImageUrl2         *string    `bun:"image_url2"`
	Address           *string    `bun:"address"`
	Phone             *string    `bun:"phone"`
	OpeningHours      *string    `bun:"opening_hours"`
	Homepage          *string    `bun:"homepage"`
	Zipcode           *string    `bun:"zipcode"`
	Overview          *string    `bun:"overview"`
	AreaCode          *int       `bun:"area_code"`
	SigunguCode       *int       `bun:"sigungu_code"`
	Category1         *string    `bun:"category1"`
	Category2         *string    `bun:"category2"`
	Category3         *string    `bun:"category3"`
	MapLevel          *int       `bun:"map_level"`
	CreatedTime       *time.Time `bun:"created_time"`
	ModifiedTime      *time.Time `bun:"modified_time"`
	CourseType        []string   `bun:"course_type,array"`
	UpdatedAt         time.Time  `bun:"updated_at,notnull"`
}

// CourseSummaryModel is a derived snapshot per (region, course type) group.
// It is a write-through cache of descriptive metadata, recomputable from
// places at any time.
type CourseSummaryModel struct {
	bun.BaseModel `bun:"table:course_summaries,alias:cs"`

	Id          string    `bun:"id,pk"`
	Title       string    `bun:"title,notnull"`
	Region      string    `bun:"region,notnull"`
	CourseType  string    `bun:"course_type,notnull"`
	Description *string   `bun:"description"`
	ImageUrl    *string   `bun:"image_url"`
	PlaceCount  int       `bun:"place_count,notnull"`
	AreaCode    *int      `bun:"area_code"`
	SigunguCode *int      `bun:"sigungu_code"`
	UpdatedAt   time.Time `bun:"updated_at,notnull"`
}

// CrawlerRunModel is one orchestrator invocation in the monitoring table.
type CrawlerRunModel struct {
	bun.BaseModel `bun:"table:crawler_runs,alias:cr"`

	Id              string     `bun:"id,pk"`
	StartedAt       time.Time  `bun:"started_at,notnull"`
	CompletedAt     *time.Time `bun:"completed_at"`
	Status          string     `bun:"status,notnull"`
	ItemsInserted   int        `bun:"items_inserted,notnull"`
	ItemsUpdated    int        `bun:"items_updated,notnull"`
	ItemsErrors     int        `bun:"items_errors,notnull"`
	DurationSeconds float64    `bun:"duration_seconds,notnull"`
	ErrorMessage    *string    `bun:"error_message"`
	Logs            []string   `bun:"logs,array"`
}

const (
	RunStatusRunning   = "running"
	RunStatusCompleted = "completed"
	RunStatusFailed    = "failed"
)

package sync

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/lovetrip/crawler/internal"
	"github.com/lovetrip/crawler/internal/db"
	"github.com/lovetrip/crawler/internal/util"
)

// SummaryStore persists derived course summaries.
type SummaryStore interface {
	UpsertCourseSummary(ctx context.Context, summary *db.CourseSummaryModel) error
}

// DeriveCourseSummary aggregates one (region, category) group of places into
// a descriptive snapshot, or nil for an empty group. The result reflects
// exactly the places passed in; re-deriving after the next run refreshes it.
func DeriveCourseSummary(region string, category internal.CourseCategory, places []*db.PlaceModel, areaCode int, sigunguCode *int) *db.CourseSummaryModel {
	if len(places) == 0 {
		return nil
	}

	label := "여행"
	if category == internal.CategoryDate {
		label = "데이트"
	}

	var imageUrl *string
	for _, place := range places {
		if place.ImageUrl != nil {
			imageUrl = place.ImageUrl
			break
		}
	}

	description := fmt.Sprintf("%s %s 코스: %s", region, label, strings.Join(distinctTypes(places), ", "))

	var areaCodePtr *int
	if areaCode > 0 {
		areaCodePtr = &areaCode
	}

	return &db.CourseSummaryModel{
		Id:          summaryId(category, region, areaCode),
		Title:       fmt.Sprintf("%s %s 코스", region, label),
		Region:      region,
		CourseType:  string(category),
		Description: &description,
		ImageUrl:    imageUrl,
		PlaceCount:  len(places),
		AreaCode:    areaCodePtr,
		SigunguCode: sigunguCode,
	}
}

func summaryId(category internal.CourseCategory, region string, areaCode int) string {
	area := "unknown"
	if areaCode > 0 {
		area = strconv.Itoa(areaCode)
	}

	return util.Slugify(fmt.Sprintf("%s-%s-%s", category, region, area))
}

func distinctTypes(places []*db.PlaceModel) []string {
	seen := make(map[string]bool)
	var types []string
	for _, place := range places {
		if !seen[place.Type] {
			seen[place.Type] = true
			types = append(types, place.Type)
		}
	}

	return types
}

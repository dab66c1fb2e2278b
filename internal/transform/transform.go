package transform

import (
	"strconv"
	"strings"
	"time"

	"github.com/lovetrip/crawler/internal"
	"github.com/lovetrip/crawler/internal/db"
	"github.com/lovetrip/crawler/internal/log"
	"github.com/lovetrip/crawler/internal/tourapi"
)

// PlaceType is the internal category tag for a place.
type PlaceType string

const (
	TypeCafe   PlaceType = "CAFE"
	TypeFood   PlaceType = "FOOD"
	TypeView   PlaceType = "VIEW"
	TypeMuseum PlaceType = "MUSEUM"
	TypeEtc    PlaceType = "ETC"
)

// TypeForContentType maps an upstream content type code to a place type.
// Codes outside the table fall through to ETC.
func TypeForContentType(contentTypeId int) PlaceType {
	switch contentTypeId {
	case tourapi.ContentTypeTouristSpot:
		return TypeView
	case tourapi.ContentTypeCulturalFacility:
		return TypeMuseum
	case tourapi.ContentTypeRestaurant:
		return TypeFood
	default:
		return TypeEtc
	}
}

// CourseTypesFor infers the course applicability of a place from its type and
// content type code. ETC places with no other signal stay untagged; the
// orchestrator assigns the crawl category to those.
func CourseTypesFor(placeType PlaceType, contentTypeId int) []string {
	var date, travel bool

	switch placeType {
	case TypeCafe, TypeFood:
		date = true
	case TypeView:
		travel = true
	case TypeMuseum:
		date = true
		travel = true
	}

	switch contentTypeId {
	case tourapi.ContentTypeShopping:
		date = true
	case tourapi.ContentTypeCulturalFacility:
		date = true
		travel = true
	case tourapi.ContentTypeTravelCourse, tourapi.ContentTypeLeisureSports, tourapi.ContentTypeAccommodation:
		travel = true
	}

	var courseTypes []string
	if date {
		courseTypes = append(courseTypes, string(internal.CategoryDate))
	}
	if travel {
		courseTypes = append(courseTypes, string(internal.CategoryTravel))
	}

	return courseTypes
}

// Transformer maps upstream items into place rows, deterministically.
type Transformer struct {
	logger log.Logger
}

func NewTransformer(logger log.Logger) *Transformer {
	return &Transformer{logger: logger}
}

// ToPlace converts one validated upstream item. It never fails: unparsable
// coordinates become 0 (an upstream quirk kept on purpose; consumers filter
// on lat != 0 && lng != 0 themselves) and malformed dates become nil.
func (t *Transformer) ToPlace(item tourapi.Item) *db.PlaceModel {
	contentTypeId, err := strconv.Atoi(item.ContentTypeID)
	if err != nil {
		t.logger.WithField("ContentId", item.ContentID).
			Warnf("item has non-numeric content type %q, treating as ETC", item.ContentTypeID)
		contentTypeId = 0
	}

	placeType := TypeForContentType(contentTypeId)

	lng := parseCoordinate(item.MapX)
	lat := parseCoordinate(item.MapY)

	createdTime := t.parseDate(item.ContentID, "createdtime", item.CreatedTime)
	modifiedTime := t.parseDate(item.ContentID, "modifiedtime", item.ModifiedTime)

	return &db.PlaceModel{
		TourContentId:     item.ContentID,
		TourContentTypeId: contentTypeId,
		Name:              item.Title,
		Lat:               lat,
		Lng:               lng,
		Type:              string(placeType),
		Rating:            0, // upstream has no ratings
		PriceLevel:        0, // upstream has no price levels
		Description:       nil,
		ImageUrl:          optional(item.FirstImage),
		ImageUrl2:         optional(item.FirstImage2),
		Address:           joinOptional(" ", item.Addr1, item.Addr2),
		Phone:             optional(item.Tel),
		OpeningHours:      joinOptional(" / ", item.UseTime, item.RestDate),
		Homepage:          optional(item.Homepage),
		Zipcode:           optional(item.Zipcode),
		Overview:          optional(item.Overview),
		AreaCode:          optionalInt(item.AreaCode),
		SigunguCode:       optionalInt(item.SigunguCode),
		Category1:         optional(item.Cat1),
		Category2:         optional(item.Cat2),
		Category3:         optional(item.Cat3),
		MapLevel:          optionalInt(item.MapLevel),
		CreatedTime:       createdTime,
		ModifiedTime:      modifiedTime,
		CourseType:        CourseTypesFor(placeType, contentTypeId),
	}
}

func (t *Transformer) parseDate(contentId, field, value string) *time.Time {
	if value == "" {
		return nil
	}

	parsed := ParseCompactDate(value)
	if parsed == nil {
		t.logger.WithField("ContentId", contentId).
			Warnf("ignoring malformed %s %q", field, value)
	}

	return parsed
}

func parseCoordinate(s string) float64 {
	if s == "" {
		return 0
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}

	return v
}

func optional(s string) *string {
	if s == "" {
		return nil
	}

	return &s
}

func optionalInt(s string) *int {
	if s == "" {
		return nil
	}

	v, err := strconv.Atoi(s)
	if err != nil {
		return nil
	}

	return &v
}

func joinOptional(sep string, parts ...string) *string {
	nonEmpty := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			nonEmpty = append(nonEmpty, p)
		}
	}

	if len(nonEmpty) == 0 {
		return nil
	}

	joined := strings.Join(nonEmpty, sep)
	return &joined
}

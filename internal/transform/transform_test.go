package transform

import (
	"io"
	"reflect"
	"testing"
	"time"

	"github.com/lovetrip/crawler/internal/log"
	"github.com/lovetrip/crawler/internal/tourapi"
	"github.com/sirupsen/logrus"
)

func testLogger() log.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logrus.NewEntry(logger)
}

func TestTypeForContentType(t *testing.T) {
	tests := []struct {
		contentTypeId int
		want          PlaceType
	}{
		{tourapi.ContentTypeTouristSpot, TypeView},
		{tourapi.ContentTypeCulturalFacility, TypeMuseum},
		{tourapi.ContentTypeRestaurant, TypeFood},
		{tourapi.ContentTypeFestival, TypeEtc},
		{tourapi.ContentTypeTravelCourse, TypeEtc},
		{tourapi.ContentTypeLeisureSports, TypeEtc},
		{tourapi.ContentTypeAccommodation, TypeEtc},
		{tourapi.ContentTypeShopping, TypeEtc},
		{0, TypeEtc},
		{999, TypeEtc},
	}

	for _, tt := range tests {
		if got := TypeForContentType(tt.contentTypeId); got != tt.want {
			t.Errorf("TypeForContentType(%d) = %v, want %v", tt.contentTypeId, got, tt.want)
		}
	}
}

func TestCourseTypesFor(t *testing.T) {
	tests := []struct {
		name          string
		placeType     PlaceType
		contentTypeId int
		want          []string
	}{
		{"tourist spot is travel", TypeView, tourapi.ContentTypeTouristSpot, []string{"travel"}},
		{"restaurant is date", TypeFood, tourapi.ContentTypeRestaurant, []string{"date"}},
		{"cafe is date", TypeCafe, 0, []string{"date"}},
		{"cultural facility is both", TypeMuseum, tourapi.ContentTypeCulturalFacility, []string{"date", "travel"}},
		{"shopping is date", TypeEtc, tourapi.ContentTypeShopping, []string{"date"}},
		{"travel course is travel", TypeEtc, tourapi.ContentTypeTravelCourse, []string{"travel"}},
		{"leisure sports is travel", TypeEtc, tourapi.ContentTypeLeisureSports, []string{"travel"}},
		{"accommodation is travel", TypeEtc, tourapi.ContentTypeAccommodation, []string{"travel"}},
		{"festival stays untagged", TypeEtc, tourapi.ContentTypeFestival, nil},
		{"unknown stays untagged", TypeEtc, 0, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CourseTypesFor(tt.placeType, tt.contentTypeId)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("CourseTypesFor(%v, %d) = %v, want %v", tt.placeType, tt.contentTypeId, got, tt.want)
			}
		})
	}
}

func TestToPlace(t *testing.T) {
	transformer := NewTransformer(testLogger())

	item := tourapi.Item{
		ContentID:     "126508",
		ContentTypeID: "39",
		Title:         "광화문 식당",
		Addr1:         "서울특별시 종로구",
		Addr2:         "세종로 1",
		AreaCode:      "1",
		SigunguCode:   "23",
		MapX:          "126.9779692",
		MapY:          "37.566535",
		Tel:           "02-123-4567",
		FirstImage:    "http://img.example.com/1.jpg",
		Zipcode:       "03154",
		Cat1:          "A05",
		MapLevel:      "6",
		CreatedTime:   "20240115093000",
		ModifiedTime:  "20240620120000",
		UseTime:       "10:00-22:00",
		RestDate:      "월요일 휴무",
	}

	place := transformer.ToPlace(item)

	if place.TourContentId != "126508" {
		t.Errorf("TourContentId = %q, want %q", place.TourContentId, "126508")
	}
	if place.TourContentTypeId != 39 {
		t.Errorf("TourContentTypeId = %d, want 39", place.TourContentTypeId)
	}
	if place.Name != "광화문 식당" {
		t.Errorf("Name = %q", place.Name)
	}
	if place.Type != string(TypeFood) {
		t.Errorf("Type = %q, want %q", place.Type, TypeFood)
	}
	if place.Lng != 126.9779692 || place.Lat != 37.566535 {
		t.Errorf("coordinates = (%v, %v)", place.Lat, place.Lng)
	}
	if place.Address == nil || *place.Address != "서울특별시 종로구 세종로 1" {
		t.Errorf("Address = %v", place.Address)
	}
	if place.OpeningHours == nil || *place.OpeningHours != "10:00-22:00 / 월요일 휴무" {
		t.Errorf("OpeningHours = %v", place.OpeningHours)
	}
	if place.AreaCode == nil || *place.AreaCode != 1 {
		t.Errorf("AreaCode = %v", place.AreaCode)
	}
	if place.SigunguCode == nil || *place.SigunguCode != 23 {
		t.Errorf("SigunguCode = %v", place.SigunguCode)
	}
	if place.MapLevel == nil || *place.MapLevel != 6 {
		t.Errorf("MapLevel = %v", place.MapLevel)
	}
	if place.Description != nil {
		t.Errorf("Description = %v, want nil", place.Description)
	}
	if place.Homepage != nil {
		t.Errorf("Homepage = %v, want nil", place.Homepage)
	}
	if place.Rating != 0 || place.PriceLevel != 0 {
		t.Errorf("Rating/PriceLevel = %v/%v, want zero", place.Rating, place.PriceLevel)
	}

	wantCreated := time.Date(2024, 1, 15, 9, 30, 0, 0, time.UTC)
	if place.CreatedTime == nil || !place.CreatedTime.Equal(wantCreated) {
		t.Errorf("CreatedTime = %v, want %v", place.CreatedTime, wantCreated)
	}
	wantModified := time.Date(2024, 6, 20, 12, 0, 0, 0, time.UTC)
	if place.ModifiedTime == nil || !place.ModifiedTime.Equal(wantModified) {
		t.Errorf("ModifiedTime = %v, want %v", place.ModifiedTime, wantModified)
	}

	if !reflect.DeepEqual(place.CourseType, []string{"date"}) {
		t.Errorf("CourseType = %v, want [date]", place.CourseType)
	}
}

func TestToPlaceNonNumericContentType(t *testing.T) {
	transformer := NewTransformer(testLogger())

	place := transformer.ToPlace(tourapi.Item{
		ContentID:     "1",
		ContentTypeID: "abc",
		Title:         "somewhere",
	})

	if place.Type != string(TypeEtc) {
		t.Errorf("Type = %q, want ETC", place.Type)
	}
	if place.TourContentTypeId != 0 {
		t.Errorf("TourContentTypeId = %d, want 0", place.TourContentTypeId)
	}
	if len(place.CourseType) != 0 {
		t.Errorf("CourseType = %v, want empty", place.CourseType)
	}
}

func TestToPlaceKeepsZeroCoordinates(t *testing.T) {
	transformer := NewTransformer(testLogger())

	place := transformer.ToPlace(tourapi.Item{
		ContentID:     "2",
		ContentTypeID: "12",
		Title:         "nowhere",
		MapX:          "",
		MapY:          "garbage",
	})

	if place.Lat != 0 || place.Lng != 0 {
		t.Errorf("coordinates = (%v, %v), want (0, 0)", place.Lat, place.Lng)
	}
}

func TestToPlaceMalformedDateBecomesNil(t *testing.T) {
	transformer := NewTransformer(testLogger())

	place := transformer.ToPlace(tourapi.Item{
		ContentID:     "3",
		ContentTypeID: "39",
		Title:         "clockless",
		CreatedTime:   "20241315093000",
	})

	if place.CreatedTime != nil {
		t.Errorf("CreatedTime = %v, want nil", place.CreatedTime)
	}
}

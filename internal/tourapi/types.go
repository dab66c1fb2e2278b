package tourapi

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// Upstream content type codes (coarse listing categories).
const (
	ContentTypeTouristSpot      = 12
	ContentTypeCulturalFacility = 14
	ContentTypeFestival         = 15
	ContentTypeTravelCourse     = 25
	ContentTypeLeisureSports    = 28
	ContentTypeAccommodation    = 32
	ContentTypeShopping         = 38
	ContentTypeRestaurant       = 39
)

var contentTypeNames = map[int]string{
	ContentTypeTouristSpot:      "관광지",
	ContentTypeCulturalFacility: "문화시설",
	ContentTypeFestival:         "축제공연행사",
	ContentTypeTravelCourse:     "여행코스",
	ContentTypeLeisureSports:    "레포츠",
	ContentTypeAccommodation:    "숙박",
	ContentTypeShopping:         "쇼핑",
	ContentTypeRestaurant:       "음식점",
}

// ContentTypeName returns the Korean label for a content type code.
func ContentTypeName(id int) string {
	if name, ok := contentTypeNames[id]; ok {
		return name
	}

	return fmt.Sprintf("타입%d", id)
}

// Item is one listing as the upstream returns it: every field a string,
// most of them optional.
type Item struct {
	ContentID     string `json:"contentid"`
	ContentTypeID string `json:"contenttypeid"`
	Title         string `json:"title"`
	Addr1         string `json:"addr1"`
	Addr2         string `json:"addr2"`
	AreaCode      string `json:"areacode"`
	SigunguCode   string `json:"sigungucode"`
	MapX          string `json:"mapx"`
	MapY          string `json:"mapy"`
	Tel           string `json:"tel"`
	FirstImage    string `json:"firstimage"`
	FirstImage2   string `json:"firstimage2"`
	Homepage      string `json:"homepage"`
	Zipcode       string `json:"zipcode"`
	Overview      string `json:"overview"`
	Cat1          string `json:"cat1"`
	Cat2          string `json:"cat2"`
	Cat3          string `json:"cat3"`
	MapLevel      string `json:"mlevel"`
	CreatedTime   string `json:"createdtime"`
	ModifiedTime  string `json:"modifiedtime"`
	UseTime       string `json:"usetime"`
	RestDate      string `json:"restdate"`
}

// Validate checks the minimal shape an item must have to be usable.
func (i *Item) Validate() error {
	if i.ContentID == "" {
		return errors.New("item has no contentid")
	}
	if i.ContentTypeID == "" {
		return errors.New("item has no contenttypeid")
	}
	if i.Title == "" {
		return errors.New("item has no title")
	}

	return nil
}

// envelope is the response wrapper every endpoint shares.
type envelope struct {
	Response struct {
		Header struct {
			ResultCode string `json:"resultCode"`
			ResultMsg  string `json:"resultMsg"`
		} `json:"header"`
		Body struct {
			Items      itemList `json:"items"`
			NumOfRows  int      `json:"numOfRows"`
			PageNo     int      `json:"pageNo"`
			TotalCount int      `json:"totalCount"`
		} `json:"body"`
	} `json:"response"`
}

// itemList tolerates the upstream's three shapes for body.items:
// an object with a single item, an object with an item array,
// and an empty string when a page has no data.
type itemList struct {
	Item []Item
}

func (l *itemList) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte(`""`)) || bytes.Equal(trimmed, []byte("null")) {
		return nil
	}

	var wrapper struct {
		Item json.RawMessage `json:"item"`
	}
	if err := json.Unmarshal(trimmed, &wrapper); err != nil {
		return err
	}
	if len(wrapper.Item) == 0 {
		return nil
	}

	if wrapper.Item[0] == '[' {
		return json.Unmarshal(wrapper.Item, &l.Item)
	}

	var single Item
	if err := json.Unmarshal(wrapper.Item, &single); err != nil {
		return err
	}
	l.Item = []Item{single}

	return nil
}

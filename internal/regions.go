package internal

import "strconv"

// Tour API area codes for the regions the crawl covers.
const (
	AreaSeoul     = 1
	AreaIncheon   = 2
	AreaGyeonggi  = 31
	AreaGangwon   = 32
	AreaChungbuk  = 33
	AreaChungnam  = 34
	AreaGyeongbuk = 35
	AreaGyeongnam = 36
	AreaJeonbuk   = 37
	AreaJeonnam   = 38
	AreaJeju      = 39
)

// AllAreaCodes lists every crawled region in task-construction order.
var AllAreaCodes = []int{
	AreaSeoul,
	AreaIncheon,
	AreaGyeonggi,
	AreaGangwon,
	AreaChungbuk,
	AreaChungnam,
	AreaGyeongbuk,
	AreaGyeongnam,
	AreaJeonbuk,
	AreaJeonnam,
	AreaJeju,
}

var areaNames = map[int]string{
	AreaSeoul:     "서울",
	AreaIncheon:   "인천",
	AreaGyeonggi:  "경기도",
	AreaGangwon:   "강원도",
	AreaChungbuk:  "충청북도",
	AreaChungnam:  "충청남도",
	AreaGyeongbuk: "경상북도",
	AreaGyeongnam: "경상남도",
	AreaJeonbuk:   "전라북도",
	AreaJeonnam:   "전라남도",
	AreaJeju:      "제주도",
}

// AreaName returns the Korean region name for an area code,
// or a numeric placeholder for codes outside the table.
func AreaName(areaCode int) string {
	if name, ok := areaNames[areaCode]; ok {
		return name
	}

	return "지역" + strconv.Itoa(areaCode)
}

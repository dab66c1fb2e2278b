package internal

import "github.com/lovetrip/crawler/internal/tourapi"

// CourseCategory tags which kind of itinerary a crawl task feeds.
type CourseCategory string

const (
	CategoryDate   CourseCategory = "date"
	CategoryTravel CourseCategory = "travel"
)

// SyncTask is one unit of work: crawl one content type in one region under
// one category label. Tasks only live for the duration of a run.
type SyncTask struct {
	AreaCode      int
	ContentTypeId int
	Category      CourseCategory
}

// DateContentTypes are the upstream content types crawled for date courses.
var DateContentTypes = []int{
	tourapi.ContentTypeRestaurant,
	tourapi.ContentTypeShopping,
	tourapi.ContentTypeCulturalFacility,
}

// TravelContentTypes are the upstream content types crawled for travel courses.
var TravelContentTypes = []int{
	tourapi.ContentTypeTouristSpot,
	tourapi.ContentTypeCulturalFacility,
	tourapi.ContentTypeLeisureSports,
	tourapi.ContentTypeAccommodation,
	tourapi.ContentTypeTravelCourse,
	tourapi.ContentTypeFestival,
}

// BuildTaskList crosses every region with the content types of each category,
// date tasks first. Content types relevant to both categories appear twice on
// purpose: the category label drives the course-type tagging and summaries,
// so each category gets its own pass.
func BuildTaskList() []SyncTask {
	tasks := make([]SyncTask, 0, len(AllAreaCodes)*(len(DateContentTypes)+len(TravelContentTypes)))

	for _, areaCode := range AllAreaCodes {
		for _, contentTypeId := range DateContentTypes {
			tasks = append(tasks, SyncTask{
				AreaCode:      areaCode,
				ContentTypeId: contentTypeId,
				Category:      CategoryDate,
			})
		}
	}

	for _, areaCode := range AllAreaCodes {
		for _, contentTypeId := range TravelContentTypes {
			tasks = append(tasks, SyncTask{
				AreaCode:      areaCode,
				ContentTypeId: contentTypeId,
				Category:      CategoryTravel,
			})
		}
	}

	return tasks
}
